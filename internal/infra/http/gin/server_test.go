package ginserver

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"staybase/internal/app/dto"
	accsvc "staybase/internal/app/services/accommodation"
	"staybase/internal/app/services/blocksvc"
	rulesvc "staybase/internal/app/services/rules"
	domainacc "staybase/internal/domain/accommodations"
	domainblocks "staybase/internal/domain/blocks"
	"staybase/internal/domain/shared/daterange"
	"staybase/internal/infra/config"
	"staybase/internal/infra/obs"
	"staybase/internal/infra/storage/memory"
)

type env struct {
	router http.Handler
	blocks *memory.BlockRepository
}

func newEnv(t *testing.T) env {
	t.Helper()
	ruleRepo := memory.NewRuleRepository()
	blockRepo := memory.NewBlockRepository()
	accRepo := memory.NewAccommodationRepository(ruleRepo, blockRepo)

	accommodationService := &accsvc.Service{Accommodations: accRepo, Rules: ruleRepo}
	ruleService := &rulesvc.Service{Accommodations: accRepo, Rules: ruleRepo, Blocks: blockRepo}
	blockService := &blocksvc.Service{Accommodations: accRepo, Blocks: blockRepo}

	server := NewServer(config.Config{Env: "test", HTTPAddr: ":0"}, obs.Middleware{}, obs.HealthHandlers{}, Handlers{
		Accommodation:      AccommodationHandler{Service: accommodationService},
		Rules:              RuleHandler{Service: ruleService},
		Blocks:             BlockHandler{Service: blockService},
		IdentityMiddleware: IdentityMiddleware(),
	})
	return env{router: server.Handler, blocks: blockRepo}
}

func (e env) do(t *testing.T, method, path string, body any, asHost string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if asHost != "" {
		req.Header.Set("X-User-Id", asHost)
		req.Header.Set("X-User-Role", "host")
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func createBody() map[string]any {
	return map[string]any{
		"name":      "City apartment",
		"location":  "Ljubljana",
		"amenities": []string{"wifi", "parking"},
		"minGuests": 1,
		"maxGuests": 4,
		"basePrice": 110.0,
	}
}

func (e env) createAccommodation(t *testing.T, asHost string) dto.Accommodation {
	t.Helper()
	rec := e.do(t, http.MethodPost, "/api/v1/accommodations", createBody(), asHost)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var out dto.Accommodation
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func TestCreateAccommodationRequiresIdentity(t *testing.T) {
	e := newEnv(t)
	rec := e.do(t, http.MethodPost, "/api/v1/accommodations", createBody(), "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAccommodationLifecycle(t *testing.T) {
	e := newEnv(t)
	created := e.createAccommodation(t, "host-1")
	assert.Equal(t, "City apartment", created.Name)
	assert.Equal(t, "host-1", created.HostID)

	rec := e.do(t, http.MethodGet, "/api/v1/accommodations/"+created.ID, nil, "")
	assert.Equal(t, http.StatusOK, rec.Code)

	body := createBody()
	body["name"] = "Renamed apartment"
	rec = e.do(t, http.MethodPut, "/api/v1/accommodations/"+created.ID, body, "host-2")
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = e.do(t, http.MethodPut, "/api/v1/accommodations/"+created.ID, body, "host-1")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = e.do(t, http.MethodDelete, "/api/v1/accommodations/"+created.ID, nil, "host-1")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = e.do(t, http.MethodGet, "/api/v1/accommodations/"+created.ID, nil, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateAccommodationValidation(t *testing.T) {
	e := newEnv(t)
	body := createBody()
	body["minGuests"] = 5
	body["maxGuests"] = 2
	rec := e.do(t, http.MethodPost, "/api/v1/accommodations", body, "host-1")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRuleEndpoints(t *testing.T) {
	e := newEnv(t)
	acc := e.createAccommodation(t, "host-1")
	base := "/api/v1/accommodations/" + acc.ID + "/rules"

	rec := e.do(t, http.MethodPost, base, map[string]any{
		"startDate": "2026-07-01", "endDate": "2026-07-10", "multiplier": 1.5,
	}, "host-1")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var rule dto.Rule
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &rule))
	assert.Equal(t, "2026-07-01", rule.StartDate)

	// Overlapping period conflicts.
	rec = e.do(t, http.MethodPost, base, map[string]any{
		"startDate": "2026-07-10", "endDate": "2026-07-20",
	}, "host-1")
	assert.Equal(t, http.StatusConflict, rec.Code)

	// Bad wire date.
	rec = e.do(t, http.MethodPost, base, map[string]any{
		"startDate": "01.07.2026", "endDate": "2026-07-20",
	}, "host-1")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// Non-owner mutation.
	rec = e.do(t, http.MethodPatch, base+"/"+rule.ID, map[string]any{"multiplier": 2.0}, "host-2")
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = e.do(t, http.MethodPatch, base+"/"+rule.ID, map[string]any{"multiplier": 2.0}, "host-1")
	require.Equal(t, http.StatusOK, rec.Code)

	// Listing is public.
	rec = e.do(t, http.MethodGet, base, nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var listed []dto.Rule
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listed))
	assert.Len(t, listed, 1)

	rec = e.do(t, http.MethodDelete, base+"/"+rule.ID, nil, "host-1")
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestRuleMutationBlockedByReservation(t *testing.T) {
	e := newEnv(t)
	acc := e.createAccommodation(t, "host-1")

	period, err := daterange.NewPeriod(
		time.Date(2026, 7, 5, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 7, 8, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.NoError(t, e.blocks.Save(context.Background(), &domainblocks.BlockedPeriod{
		ID:              "b1",
		AccommodationID: domainacc.AccommodationID(acc.ID),
		Period:          period,
		Reason:          domainblocks.ReasonReservation,
		ReservationID:   "res-1",
	}))

	rec := e.do(t, http.MethodPost, "/api/v1/accommodations/"+acc.ID+"/rules", map[string]any{
		"startDate": "2026-07-01", "endDate": "2026-07-10",
	}, "host-1")
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestBlockEndpoints(t *testing.T) {
	e := newEnv(t)
	acc := e.createAccommodation(t, "host-1")
	base := "/api/v1/accommodations/" + acc.ID + "/blocks"

	rec := e.do(t, http.MethodPost, base, map[string]any{
		"startDate": "2026-07-01", "endDate": "2026-07-05", "notes": "maintenance",
	}, "host-1")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var block dto.Block
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &block))
	assert.Equal(t, "MANUAL", block.Reason)

	rec = e.do(t, http.MethodGet, base, nil, "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = e.do(t, http.MethodDelete, base+"/"+block.ID, nil, "host-2")
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = e.do(t, http.MethodDelete, base+"/"+block.ID, nil, "host-1")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = e.do(t, http.MethodDelete, base+"/"+block.ID, nil, "host-1")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSearchEndpoint(t *testing.T) {
	e := newEnv(t)
	e.createAccommodation(t, "host-1")

	rec := e.do(t, http.MethodGet, "/api/v1/accommodations?location=ljub&guests=2", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var page dto.Paginated[dto.SearchItem]
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
	assert.Equal(t, 1, page.Total)
	assert.Nil(t, page.Data[0].Pricing)

	// With a stay window each hit carries a quote.
	rec = e.do(t, http.MethodGet, "/api/v1/accommodations?checkIn=2026-07-01&checkOut=2026-07-03&guests=2", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
	require.Equal(t, 1, page.Total)
	require.NotNil(t, page.Data[0].Pricing)
	assert.Equal(t, 2, page.Data[0].Pricing.Nights)
	assert.Equal(t, 440.00, page.Data[0].Pricing.TotalPriceForStay)

	// Malformed dates are rejected.
	rec = e.do(t, http.MethodGet, "/api/v1/accommodations?checkIn=bad&checkOut=2026-07-03", nil, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHealthEndpoints(t *testing.T) {
	e := newEnv(t)
	rec := e.do(t, http.MethodGet, "/livez", nil, "")
	assert.Equal(t, http.StatusOK, rec.Code)
	rec = e.do(t, http.MethodGet, "/readyz", nil, "")
	assert.Equal(t, http.StatusOK, rec.Code)
}
