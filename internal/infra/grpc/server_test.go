package grpcserver

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	rulesvc "staybase/internal/app/services/rules"
	domainacc "staybase/internal/domain/accommodations"
	domainpricing "staybase/internal/domain/pricing"
	"staybase/internal/domain/shared/daterange"
	"staybase/internal/infra/storage/memory"
	"staybase/proto/accommodationpb"
)

func newTestServer(t *testing.T) (*Server, *memory.RuleRepository, *domainacc.Accommodation) {
	t.Helper()
	ruleRepo := memory.NewRuleRepository()
	blockRepo := memory.NewBlockRepository()
	accRepo := memory.NewAccommodationRepository(ruleRepo, blockRepo)

	acc, err := domainacc.New(domainacc.CreateParams{
		ID:        "acc-1",
		Host:      "host-1",
		Name:      "Stone cottage",
		Location:  "Hvar",
		MinGuests: 2,
		MaxGuests: 5,
		BasePrice: 100,
		Now:       time.Now(),
	})
	require.NoError(t, err)
	require.NoError(t, accRepo.Save(context.Background(), acc))

	server := &Server{
		Accommodations: accRepo,
		Rules: &rulesvc.Service{
			Accommodations: accRepo,
			Rules:          ruleRepo,
			Blocks:         blockRepo,
		},
	}
	return server, ruleRepo, acc
}

func TestGetAccommodationInfo(t *testing.T) {
	server, _, acc := newTestServer(t)

	resp, err := server.GetAccommodationInfo(context.Background(), &accommodationpb.GetAccommodationInfoRequest{
		AccommodationId: string(acc.ID),
	})
	require.NoError(t, err)
	assert.True(t, resp.Exists)
	assert.Equal(t, "Stone cottage", resp.Name)
	assert.Equal(t, int32(2), resp.MinGuests)
	assert.Equal(t, int32(5), resp.MaxGuests)
	assert.Equal(t, 100.0, resp.BasePrice)
}

func TestGetAccommodationInfoUnknownID(t *testing.T) {
	server, _, _ := newTestServer(t)

	resp, err := server.GetAccommodationInfo(context.Background(), &accommodationpb.GetAccommodationInfoRequest{
		AccommodationId: "missing",
	})
	require.NoError(t, err)
	assert.False(t, resp.Exists)
	assert.Empty(t, resp.Id)
}

func TestValidateAndCalculatePrice(t *testing.T) {
	server, ruleRepo, acc := newTestServer(t)
	period, err := daterange.NewPeriod(
		time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 7, 31, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.NoError(t, ruleRepo.Save(context.Background(), &domainpricing.Rule{
		ID: "r1", AccommodationID: acc.ID, Period: period, Multiplier: 1.5,
	}))

	resp, err := server.ValidateAndCalculatePrice(context.Background(), &accommodationpb.ValidateAndCalculatePriceRequest{
		AccommodationId: string(acc.ID),
		CheckIn:         "2026-07-10",
		CheckOut:        "2026-07-12",
		Guests:          2,
	})
	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Equal(t, int32(2), resp.Nights)
	assert.Equal(t, 600.0, resp.TotalPrice)
	assert.Equal(t, 300.0, resp.PricePerNight)
	assert.Equal(t, int32(2), resp.RulesApplied)
}

func TestValidateAndCalculatePriceFailures(t *testing.T) {
	server, _, acc := newTestServer(t)

	tests := []struct {
		name string
		req  *accommodationpb.ValidateAndCalculatePriceRequest
	}{
		{"bad check-in", &accommodationpb.ValidateAndCalculatePriceRequest{
			AccommodationId: string(acc.ID), CheckIn: "bad", CheckOut: "2026-07-12", Guests: 2,
		}},
		{"inverted dates", &accommodationpb.ValidateAndCalculatePriceRequest{
			AccommodationId: string(acc.ID), CheckIn: "2026-07-12", CheckOut: "2026-07-10", Guests: 2,
		}},
		{"unknown accommodation", &accommodationpb.ValidateAndCalculatePriceRequest{
			AccommodationId: "missing", CheckIn: "2026-07-10", CheckOut: "2026-07-12", Guests: 2,
		}},
		{"zero guests", &accommodationpb.ValidateAndCalculatePriceRequest{
			AccommodationId: string(acc.ID), CheckIn: "2026-07-10", CheckOut: "2026-07-12", Guests: 0,
		}},
		{"too many guests", &accommodationpb.ValidateAndCalculatePriceRequest{
			AccommodationId: string(acc.ID), CheckIn: "2026-07-10", CheckOut: "2026-07-12", Guests: 9,
		}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			resp, err := server.ValidateAndCalculatePrice(context.Background(), tc.req)
			require.NoError(t, err)
			assert.False(t, resp.Success)
			assert.NotEmpty(t, resp.Message)
		})
	}
}
