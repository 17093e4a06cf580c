package rules

import (
	"context"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainacc "staybase/internal/domain/accommodations"
	domainblocks "staybase/internal/domain/blocks"
	"staybase/internal/domain/identity"
	domainpricing "staybase/internal/domain/pricing"
	"staybase/internal/domain/shared/daterange"
	"staybase/internal/infra/storage/memory"
)

type fixture struct {
	service *Service
	accs    *memory.AccommodationRepository
	rules   *memory.RuleRepository
	blocks  *memory.BlockRepository
	acc     *domainacc.Accommodation
	owner   identity.Caller
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	ruleRepo := memory.NewRuleRepository()
	blockRepo := memory.NewBlockRepository()
	accRepo := memory.NewAccommodationRepository(ruleRepo, blockRepo)

	acc, err := domainacc.New(domainacc.CreateParams{
		ID:        "acc-1",
		Host:      "host-1",
		Name:      "Seaside flat",
		Location:  "Split",
		MinGuests: 1,
		MaxGuests: 4,
		BasePrice: 100,
		Now:       time.Now(),
	})
	require.NoError(t, err)
	require.NoError(t, accRepo.Save(context.Background(), acc))

	return fixture{
		service: &Service{
			Accommodations: accRepo,
			Rules:          ruleRepo,
			Blocks:         blockRepo,
		},
		accs:   accRepo,
		rules:  ruleRepo,
		blocks: blockRepo,
		acc:    acc,
		owner:  identity.Caller{ID: "host-1", Role: identity.RoleHost},
	}
}

func day(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := daterange.ParseDay(value)
	require.NoError(t, err)
	return parsed
}

func (f fixture) createRule(t *testing.T, start, end string) (*domainpricing.Rule, error) {
	t.Helper()
	return f.service.CreateRule(context.Background(), CreateRuleParams{
		AccommodationID: f.acc.ID,
		StartDate:       day(t, start),
		EndDate:         day(t, end),
	}, f.owner)
}

func (f fixture) addReservationBlock(t *testing.T, start, end string) {
	t.Helper()
	period, err := daterange.NewPeriod(day(t, start), day(t, end))
	require.NoError(t, err)
	require.NoError(t, f.blocks.Save(context.Background(), &domainblocks.BlockedPeriod{
		ID:              domainblocks.BlockID("blk-" + start),
		AccommodationID: f.acc.ID,
		Period:          period,
		Reason:          domainblocks.ReasonReservation,
		ReservationID:   "res-" + start,
	}))
}

func TestCreateRule(t *testing.T) {
	f := newFixture(t)

	rule, err := f.createRule(t, "2026-07-01", "2026-07-10")
	require.NoError(t, err)
	assert.NotEmpty(t, rule.ID)
	assert.Equal(t, 1.0, rule.Multiplier)

	stored, err := f.rules.ByID(context.Background(), f.acc.ID, rule.ID)
	require.NoError(t, err)
	assert.Equal(t, rule.Period, stored.Period)
}

func TestCreateRuleRejectsOverlap(t *testing.T) {
	f := newFixture(t)
	_, err := f.createRule(t, "2026-07-01", "2026-07-10")
	require.NoError(t, err)

	tests := []struct {
		name  string
		start string
		end   string
	}{
		{"touching start endpoint", "2026-06-20", "2026-07-01"},
		{"touching end endpoint", "2026-07-10", "2026-07-20"},
		{"contained", "2026-07-03", "2026-07-05"},
		{"containing", "2026-06-01", "2026-08-01"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.createRule(t, tc.start, tc.end)
			assert.ErrorIs(t, err, domainpricing.ErrRuleOverlap)
		})
	}

	// Adjacent but disjoint periods are fine.
	_, err = f.createRule(t, "2026-07-11", "2026-07-20")
	assert.NoError(t, err)
}

func TestCreateRuleRejectsReservedPeriod(t *testing.T) {
	f := newFixture(t)
	f.addReservationBlock(t, "2026-07-05", "2026-07-08")

	_, err := f.createRule(t, "2026-07-01", "2026-07-10")
	assert.ErrorIs(t, err, domainpricing.ErrActiveReservations)

	// A manual block does not protect the period.
	require.NoError(t, f.blocks.Save(context.Background(), &domainblocks.BlockedPeriod{
		ID:              "manual-1",
		AccommodationID: f.acc.ID,
		Period:          mustPeriod(t, "2026-08-01", "2026-08-05"),
		Reason:          domainblocks.ReasonManual,
	}))
	_, err = f.createRule(t, "2026-08-01", "2026-08-10")
	assert.NoError(t, err)
}

func TestCreateRuleOwnershipAndExistence(t *testing.T) {
	f := newFixture(t)

	_, err := f.service.CreateRule(context.Background(), CreateRuleParams{
		AccommodationID: f.acc.ID,
		StartDate:       day(t, "2026-07-01"),
		EndDate:         day(t, "2026-07-10"),
	}, identity.Caller{ID: "someone-else", Role: identity.RoleHost})
	assert.ErrorIs(t, err, domainacc.ErrNotOwned)

	_, err = f.service.CreateRule(context.Background(), CreateRuleParams{
		AccommodationID: "missing",
		StartDate:       day(t, "2026-07-01"),
		EndDate:         day(t, "2026-07-10"),
	}, f.owner)
	assert.ErrorIs(t, err, domainacc.ErrNotFound)
}

func TestCreateRuleRejectsInvalidValues(t *testing.T) {
	f := newFixture(t)

	_, err := f.createRule(t, "2026-07-10", "2026-07-01")
	assert.ErrorIs(t, err, daterange.ErrInvalidPeriod)

	badMultiplier := -1.0
	_, err = f.service.CreateRule(context.Background(), CreateRuleParams{
		AccommodationID: f.acc.ID,
		StartDate:       day(t, "2026-07-01"),
		EndDate:         day(t, "2026-07-10"),
		Multiplier:      &badMultiplier,
	}, f.owner)
	assert.ErrorIs(t, err, domainpricing.ErrMultiplier)

	badOverride := -5.0
	_, err = f.service.CreateRule(context.Background(), CreateRuleParams{
		AccommodationID: f.acc.ID,
		StartDate:       day(t, "2026-07-01"),
		EndDate:         day(t, "2026-07-10"),
		OverridePrice:   &badOverride,
	}, f.owner)
	assert.ErrorIs(t, err, domainpricing.ErrNegativeOverride)
}

func TestUpdateRuleMovesPeriodExcludingSelf(t *testing.T) {
	f := newFixture(t)
	rule, err := f.createRule(t, "2026-07-01", "2026-07-10")
	require.NoError(t, err)

	// Shifting within its own old window must not trip the overlap check.
	newStart := day(t, "2026-07-05")
	updated, err := f.service.UpdateRule(context.Background(), f.acc.ID, rule.ID, UpdateRuleParams{
		StartDate: &newStart,
	}, f.owner)
	require.NoError(t, err)
	assert.Equal(t, newStart, updated.Period.Start)
}

func TestUpdateRuleRejectsOverlapWithOtherRule(t *testing.T) {
	f := newFixture(t)
	_, err := f.createRule(t, "2026-07-01", "2026-07-10")
	require.NoError(t, err)
	second, err := f.createRule(t, "2026-07-15", "2026-07-20")
	require.NoError(t, err)

	newStart := day(t, "2026-07-08")
	_, err = f.service.UpdateRule(context.Background(), f.acc.ID, second.ID, UpdateRuleParams{
		StartDate: &newStart,
	}, f.owner)
	assert.ErrorIs(t, err, domainpricing.ErrRuleOverlap)
}

func TestUpdateRuleClearsOverride(t *testing.T) {
	f := newFixture(t)
	override := 250.0
	rule, err := f.service.CreateRule(context.Background(), CreateRuleParams{
		AccommodationID: f.acc.ID,
		StartDate:       day(t, "2026-07-01"),
		EndDate:         day(t, "2026-07-10"),
		OverridePrice:   &override,
	}, f.owner)
	require.NoError(t, err)

	updated, err := f.service.UpdateRule(context.Background(), f.acc.ID, rule.ID, UpdateRuleParams{
		ClearOverride: true,
	}, f.owner)
	require.NoError(t, err)
	assert.Nil(t, updated.OverridePrice)
}

func TestDeleteRuleProtectedByReservation(t *testing.T) {
	f := newFixture(t)
	rule, err := f.createRule(t, "2026-07-01", "2026-07-10")
	require.NoError(t, err)

	f.addReservationBlock(t, "2026-07-05", "2026-07-08")
	err = f.service.DeleteRule(context.Background(), f.acc.ID, rule.ID, f.owner)
	assert.ErrorIs(t, err, domainpricing.ErrActiveReservations)

	// Still present.
	_, err = f.rules.ByID(context.Background(), f.acc.ID, rule.ID)
	assert.NoError(t, err)
}

func TestDeleteRule(t *testing.T) {
	f := newFixture(t)
	rule, err := f.createRule(t, "2026-07-01", "2026-07-10")
	require.NoError(t, err)

	require.NoError(t, f.service.DeleteRule(context.Background(), f.acc.ID, rule.ID, f.owner))
	_, err = f.rules.ByID(context.Background(), f.acc.ID, rule.ID)
	assert.ErrorIs(t, err, domainpricing.ErrRuleNotFound)
}

func TestListRulesSortedByStart(t *testing.T) {
	f := newFixture(t)
	_, err := f.createRule(t, "2026-09-01", "2026-09-10")
	require.NoError(t, err)
	_, err = f.createRule(t, "2026-07-01", "2026-07-10")
	require.NoError(t, err)
	_, err = f.createRule(t, "2026-08-01", "2026-08-10")
	require.NoError(t, err)

	listed, err := f.service.ListRules(context.Background(), f.acc.ID)
	require.NoError(t, err)
	require.Len(t, listed, 3)
	for i := 1; i < len(listed); i++ {
		assert.True(t, listed[i-1].Period.Start.Before(listed[i].Period.Start))
	}
}

// TestNoOverlapInvariantUnderRandomInserts hammers the create path with
// random intervals and checks the stored set stays pairwise disjoint.
func TestNoOverlapInvariantUnderRandomInserts(t *testing.T) {
	f := newFixture(t)
	rng := rand.New(rand.NewSource(42))
	base := day(t, "2026-01-01")

	for i := 0; i < 200; i++ {
		startOffset := rng.Intn(300)
		length := 1 + rng.Intn(20)
		_, err := f.service.CreateRule(context.Background(), CreateRuleParams{
			AccommodationID: f.acc.ID,
			StartDate:       base.AddDate(0, 0, startOffset),
			EndDate:         base.AddDate(0, 0, startOffset+length),
		}, f.owner)
		if err != nil {
			assert.ErrorIs(t, err, domainpricing.ErrRuleOverlap)
		}
	}

	stored, err := f.service.ListRules(context.Background(), f.acc.ID)
	require.NoError(t, err)
	require.NotEmpty(t, stored)
	for i := 0; i < len(stored); i++ {
		for j := i + 1; j < len(stored); j++ {
			assert.False(t, stored[i].Period.Overlaps(stored[j].Period),
				"rules %s and %s overlap", stored[i].ID, stored[j].ID)
		}
	}
}

func mustPeriod(t *testing.T, start, end string) daterange.Period {
	t.Helper()
	p, err := daterange.NewPeriod(day(t, start), day(t, end))
	require.NoError(t, err)
	return p
}
