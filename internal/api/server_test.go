package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LuminariMUD/wildeditor-sub001/internal/config"
	"github.com/LuminariMUD/wildeditor-sub001/internal/oracle"
	"github.com/LuminariMUD/wildeditor-sub001/internal/testutil"
	"github.com/LuminariMUD/wildeditor-sub001/internal/timeutil"
	"github.com/LuminariMUD/wildeditor-sub001/internal/wilderness"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()

	idx, err := wilderness.NewGeometryIndex(
		[]wilderness.RegionOverlay{{
			ID:   "r-darkwood",
			Name: "Darkwood Forest",
			Kind: wilderness.RegionNaming,
			Ring: []wilderness.Coordinate{
				{X: -20, Y: -20}, {X: 20, Y: -20}, {X: 20, Y: 20}, {X: -20, Y: 20},
			},
		}},
		nil,
	)
	require.NoError(t, err)

	holder := wilderness.NewSnapshotHolder()
	holder.Swap(idx, 1)

	compositor, err := wilderness.NewCompositor(wilderness.DefaultSectorTable(), wilderness.DefaultLimits())
	require.NoError(t, err)

	fixture := &oracle.Fixture{
		Default: wilderness.BaseTerrainSample{
			Elevation:   150,
			Temperature: 20,
			Moisture:    120,
			Sector:      wilderness.SectorForest,
			SectorName:  "Forest",
		},
	}

	eval := wilderness.NewEvaluator(holder, fixture, compositor,
		wilderness.NewMemoryCache(timeutil.NewMockClock(time.Now())),
		wilderness.DefaultEvaluatorConfig())
	return NewServer(eval, &config.TuningConfig{})
}

func TestTerrainAt(t *testing.T) {
	t.Parallel()
	mux := newTestServer(t).ServeMux()

	rec := testutil.NewTestRecorder()
	mux.ServeHTTP(rec, testutil.NewTestRequest(http.MethodGet, "/api/terrain?x=5&y=5"))
	testutil.AssertStatusCode(t, rec.Code, http.StatusOK)

	var terrain wilderness.EffectiveTerrain
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &terrain))
	assert.Equal(t, 150, terrain.Elevation)
	assert.Equal(t, "Darkwood Forest", terrain.GeographicName)
}

func TestTerrainAtRejectsBadInput(t *testing.T) {
	t.Parallel()
	mux := newTestServer(t).ServeMux()

	tests := []struct {
		name   string
		target string
		status int
	}{
		{"missing x", "/api/terrain?y=5", http.StatusBadRequest},
		{"non-numeric y", "/api/terrain?x=5&y=north", http.StatusBadRequest},
		{"out of domain", "/api/terrain?x=5000&y=0", http.StatusBadRequest},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			rec := testutil.NewTestRecorder()
			mux.ServeHTTP(rec, testutil.NewTestRequest(http.MethodGet, tc.target))
			testutil.AssertStatusCode(t, rec.Code, tc.status)
		})
	}
}

func TestTerrainAtMethodNotAllowed(t *testing.T) {
	t.Parallel()
	mux := newTestServer(t).ServeMux()

	rec := testutil.NewTestRecorder()
	mux.ServeHTTP(rec, testutil.NewTestRequest(http.MethodPost, "/api/terrain?x=0&y=0"))
	testutil.AssertStatusCode(t, rec.Code, http.StatusMethodNotAllowed)
}

func TestTerrainBatch(t *testing.T) {
	t.Parallel()
	mux := newTestServer(t).ServeMux()

	rec := testutil.NewTestRecorder()
	mux.ServeHTTP(rec, testutil.NewTestRequest(http.MethodGet,
		"/api/terrain/batch?x_min=0&y_min=0&x_max=2&y_max=1"))
	testutil.AssertStatusCode(t, rec.Code, http.StatusOK)

	var results []wilderness.EffectiveTerrain
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &results))
	require.Len(t, results, 6)
	assert.Equal(t, 0, results[0].X)
	assert.Equal(t, 0, results[0].Y)
	assert.Equal(t, 2, results[2].X)
	assert.Equal(t, 1, results[3].Y, "rows are scanned in y-major order")
}

func TestTerrainBatchRejectsOversizedRect(t *testing.T) {
	t.Parallel()
	mux := newTestServer(t).ServeMux()

	rec := testutil.NewTestRecorder()
	mux.ServeHTTP(rec, testutil.NewTestRequest(http.MethodGet,
		"/api/terrain/batch?x_min=0&y_min=0&x_max=32&y_max=32"))
	testutil.AssertStatusCode(t, rec.Code, http.StatusBadRequest)
}

func TestShowConfig(t *testing.T) {
	t.Parallel()
	mux := newTestServer(t).ServeMux()

	rec := testutil.NewTestRecorder()
	mux.ServeHTTP(rec, testutil.NewTestRequest(http.MethodGet, "/api/config"))
	testutil.AssertStatusCode(t, rec.Code, http.StatusOK)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, float64(wilderness.DomainMax), body["domain_max"])
	assert.Equal(t, float64(1024), body["max_batch_points"])
	assert.Equal(t, "30s", body["cache_ttl"])
	assert.Equal(t, float64(-30), body["temperature_min"])
	assert.Equal(t, float64(100), body["temperature_max"])
	assert.Equal(t, "5s", body["poll_interval"])
}

func TestWriteEngineErrorStatuses(t *testing.T) {
	t.Parallel()

	tests := []struct {
		err    error
		status int
	}{
		{wilderness.ErrOutOfDomain, http.StatusBadRequest},
		{wilderness.ErrRequestTooLarge, http.StatusBadRequest},
		{wilderness.ErrTimeout, http.StatusGatewayTimeout},
		{wilderness.ErrUpstreamUnavailable, http.StatusBadGateway},
	}

	for _, tc := range tests {
		rec := httptest.NewRecorder()
		writeEngineError(rec, tc.err)
		assert.Equal(t, tc.status, rec.Code, tc.err.Error())
	}
}
