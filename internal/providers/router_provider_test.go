package providers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func statusHandler(code int) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(code)
	})
}

func TestRouterProvider_RegistersRoutes(t *testing.T) {
	rp := NewRouterProvider()
	rp.Get("/timer", statusHandler(http.StatusOK))
	rp.Post("/timer/start", statusHandler(http.StatusNoContent))

	routes := rp.GetRoutes()
	require.Len(t, routes, 2)
	assert.Equal(t, "/timer", routes[0].Url)
	assert.Equal(t, "/timer/start", routes[1].Url)
}

func TestMethodHandler(t *testing.T) {
	handler := methodHandler(http.MethodPost, statusHandler(http.StatusNoContent))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/timer/reset", nil))
	assert.Equal(t, http.StatusNoContent, rr.Code)

	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/timer/reset", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
	assert.Equal(t, http.MethodPost, rr.Header().Get("Allow"))
}

func TestRouterProvider_Mux(t *testing.T) {
	rp := NewRouterProvider()
	rp.Get("/timer", statusHandler(http.StatusOK))
	rp.Post("/timer/pause", statusHandler(http.StatusConflict))
	mux := rp.Mux()

	cases := []struct {
		method string
		target string
		code   int
	}{
		{http.MethodGet, "/timer?variant=clock", http.StatusOK},
		{http.MethodPost, "/timer", http.StatusMethodNotAllowed},
		{http.MethodPost, "/timer/pause?variant=timer", http.StatusConflict},
		{http.MethodGet, "/timer/unknown", http.StatusNotFound},
	}
	for _, tc := range cases {
		rr := httptest.NewRecorder()
		mux.ServeHTTP(rr, httptest.NewRequest(tc.method, tc.target, nil))
		assert.Equal(t, tc.code, rr.Code, tc.method+" "+tc.target)
	}
}
