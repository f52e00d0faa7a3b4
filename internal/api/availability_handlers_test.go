package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"kommotirio/internal/db"
	"kommotirio/internal/schedule"
	"kommotirio/internal/service"
)

type stubBlockStore struct{}

func (stubBlockStore) ListCoveringDate(ctx context.Context, date string) ([]db.BlockedSlot, error) {
	return nil, nil
}

type stubAppointmentStore struct{}

func (stubAppointmentStore) ListActiveForDate(ctx context.Context, date string) ([]db.Appointment, error) {
	return nil, nil
}

func newTestRouter() *mux.Router {
	svc := service.NewAvailabilityService(
		schedule.DefaultBusinessHours(), stubBlockStore{}, stubAppointmentStore{}, zap.NewNop())
	handler := NewAvailabilityHandler(svc)

	r := mux.NewRouter()
	r.HandleFunc("/api/availability", handler.CheckAvailability).Methods("GET")
	r.HandleFunc("/api/availability/next", handler.NextAvailable).Methods("GET")
	return r
}

func TestCheckAvailabilityEndpoint(t *testing.T) {
	r := newTestRouter()

	// 2026-03-03 is an open Tuesday.
	req := httptest.NewRequest(http.MethodGet, "/api/availability?date=2026-03-03&duration=30", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp AvailabilityResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "2026-03-03", resp.Date)
	assert.Equal(t, 30, resp.Duration)
	require.Len(t, resp.Slots, 22)
	assert.Equal(t, "09:00", resp.Slots[0].Time)
	assert.True(t, resp.Slots[0].Available)
}

func TestCheckAvailabilityEndpointBadInput(t *testing.T) {
	r := newTestRouter()

	for _, target := range []string{
		"/api/availability?duration=30",
		"/api/availability?date=03-03-2026&duration=30",
		"/api/availability?date=2026-03-03",
		"/api/availability?date=2026-03-03&duration=abc",
	} {
		req := httptest.NewRequest(http.MethodGet, target, nil)
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code, "expected 400 for %s", target)
	}
}

func TestCheckAvailabilityEndpointNonPositiveDuration(t *testing.T) {
	r := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/availability?date=2026-03-03&duration=0", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestNextAvailableEndpoint(t *testing.T) {
	r := newTestRouter()

	// Starting on a closed Sunday, the next open day is Tuesday the 3rd.
	req := httptest.NewRequest(http.MethodGet, "/api/availability/next?from=2026-03-01&duration=60", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Found bool   `json:"found"`
		Date  string `json:"date"`
		Time  string `json:"time"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.True(t, resp.Found)
	assert.Equal(t, "2026-03-03", resp.Date)
	assert.Equal(t, "09:00", resp.Time)
}
