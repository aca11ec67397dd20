package internal

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"showtimer/internal/controllers"
	"showtimer/internal/models"
	"showtimer/internal/persistence"
	"showtimer/internal/services"
	"showtimer/internal/structures"
	"showtimer/internal/testutil"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type routeFixture struct {
	conf    *structures.Config
	store   *persistence.Store
	service *services.TimerService
	router  http.Handler
	health  *controllers.HealthController
	routes  []structures.Route
}

func newRouteFixture(t *testing.T) *routeFixture {
	t.Helper()
	conf := &structures.Config{
		Engine: structures.EngineConfig{RefreshInterval: time.Second, AddTimeSeconds: 60},
		Persistence: structures.Persistence{
			FilePath:     filepath.Join(t.TempDir(), "snapshot.json"),
			SaveInterval: time.Second,
			Format:       persistence.FormatJSON,
		},
	}
	logger := &testutil.MockLogger{}
	metrics := &testutil.MockMetrics{}
	clock := testutil.NewFakeClock(time.Date(2026, time.January, 5, 9, 0, 0, 0, time.UTC))

	fm := persistence.NewFileManager(&testutil.MockCompressor{}, persistence.JSONCodec{}, logger)
	store := persistence.NewStore(conf, fm, logger, metrics)
	service := services.NewTimerService(conf, clock, store, logger, metrics)
	t.Cleanup(service.Close)

	tc := controllers.NewTimerController(conf, logger, service, testutil.NewMockCache(), clock)
	router := InitRoutes(tc, conf)
	health := controllers.NewHealthController(store)

	return &routeFixture{
		conf:    conf,
		store:   store,
		service: service,
		health:  health,
		router:  NewHandler(health, store, conf, router, metrics),
		routes:  router.GetRoutes(),
	}
}

func (f *routeFixture) do(method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	rr := httptest.NewRecorder()
	f.router.ServeHTTP(rr, req)
	return rr
}

func TestInitRoutes_RegistersControlSurface(t *testing.T) {
	f := newRouteFixture(t)

	urls := make([]string, 0, len(f.routes))
	for _, r := range f.routes {
		urls = append(urls, r.Url)
	}
	assert.ElementsMatch(t, []string{
		"/timer", "/timer/start", "/timer/pause", "/timer/reset", "/timer/add-time", "/timer/keypad",
	}, urls)
}

func TestHandler_NotReadyUntilLoaded(t *testing.T) {
	f := newRouteFixture(t)

	rr := f.do(http.MethodGet, "/timer?variant=timer", "")
	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)

	rr = f.do(http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)

	f.service.Restore(f.store.Load())

	rr = f.do(http.MethodGet, "/timer?variant=timer", "")
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = f.do(http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestHandler_MethodNotAllowed(t *testing.T) {
	f := newRouteFixture(t)
	f.service.Restore(f.store.Load())

	rr := f.do(http.MethodPost, "/timer?variant=timer", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)

	rr = f.do(http.MethodGet, "/timer/start?variant=timer", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
	assert.Equal(t, http.MethodPost, rr.Header().Get("Allow"))
}

func TestHandler_KeypadThenStartPersists(t *testing.T) {
	f := newRouteFixture(t)
	f.service.Restore(f.store.Load())

	rr := f.do(http.MethodPost, "/timer/keypad?variant=duration&stage=okay", `{"type":"clear"}`)
	require.Equal(t, http.StatusOK, rr.Code)
	for _, d := range []string{"1", "3", "0", "0"} {
		rr = f.do(http.MethodPost, "/timer/keypad?variant=duration&stage=okay", `{"type":"number","value":`+d+`}`)
		require.Equal(t, http.StatusOK, rr.Code)
	}

	rr = f.do(http.MethodPost, "/timer/start?variant=duration", "")
	require.Equal(t, http.StatusNoContent, rr.Code)
	assert.True(t, f.store.Pending())

	require.NoError(t, f.store.Flush())
	assert.False(t, f.store.Pending())

	restored := persistence.NewStore(f.conf, persistence.NewFileManager(&testutil.MockCompressor{}, persistence.JSONCodec{}, &testutil.MockLogger{}), &testutil.MockLogger{}, &testutil.MockMetrics{})
	snap := restored.Load()
	assert.Equal(t, models.StageValue{0, 0, 3, 1}, snap.Duration.Okay)
	assert.True(t, snap.Duration.State.IsRunning())
}

func TestHandler_MetricsEndpointOnlyWhenEnabled(t *testing.T) {
	f := newRouteFixture(t)
	f.service.Restore(f.store.Load())

	rr := f.do(http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
}
