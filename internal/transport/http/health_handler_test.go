package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lomacli/internal/services"
)

type fakeHealthService struct {
	status *services.HealthStatus
}

func (f *fakeHealthService) Check(ctx context.Context) *services.HealthStatus {
	return f.status
}

func TestGetHealth(t *testing.T) {
	svc := &fakeHealthService{status: &services.HealthStatus{
		Status:    "ok",
		Timestamp: time.Now(),
		Version:   "1.2.3",
		Dataset:   services.DatasetHealth{Loaded: true, Records: 42},
	}}

	r := chi.NewRouter()
	r.Mount("/api/health", NewHealthHandler(svc, testLogger()).Routes())

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/health", nil))

	require.Equal(t, http.StatusOK, rr.Code)

	var status services.HealthStatus
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &status))
	assert.Equal(t, "ok", status.Status)
	assert.Equal(t, "1.2.3", status.Version)
	assert.True(t, status.Dataset.Loaded)
	assert.Equal(t, 42, status.Dataset.Records)
}
