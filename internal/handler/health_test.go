package handler_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/trip-planner/internal/handler"
	"github.com/pkordes/trip-planner/internal/handler/gen"
)

// TestGetHealth_returns200WithOKStatus verifies that GET /healthz returns
// HTTP 200 and a JSON body of {"status":"ok"}.
func TestGetHealth_returns200WithOKStatus(t *testing.T) {
	rec := do(handler.NewHealthHandler().Routes(), http.MethodGet, "/healthz", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var body gen.HealthResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "ok", body.Status)
}

func TestGetOpenAPI_servesEmbeddedDocument(t *testing.T) {
	rec := do(handler.NewHealthHandler().Routes(), http.MethodGet, "/openapi.yaml", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/yaml", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), "openapi: 3.0.3")
	assert.Contains(t, rec.Body.String(), "/trips/{id}/calendar.ics")
}
