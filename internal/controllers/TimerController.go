package controllers

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"showtimer/internal/engine"
	"showtimer/internal/models"
	"showtimer/internal/providers"
	"showtimer/internal/services"
	"showtimer/internal/structures"

	json "github.com/goccy/go-json"
)

const maxRequestBodySize = 1 << 10 // 1 KB

type addTimeRequest struct {
	Seconds *int64 `json:"seconds"`
}

type TimerController struct {
	logger         providers.Logger
	service        services.TimerServiceInterface
	cache          providers.CacheProviderInterface
	clock          engine.Clock
	addTimeSeconds int64
}

func NewTimerController(conf *structures.Config, logger providers.Logger, service services.TimerServiceInterface, cache providers.CacheProviderInterface, clock engine.Clock) *TimerController {
	return &TimerController{
		logger:         logger,
		service:        service,
		cache:          cache,
		clock:          clock,
		addTimeSeconds: int64(conf.Engine.AddTimeSeconds),
	}
}

func getVariant(r *http.Request) (models.Variant, error) {
	return models.ParseVariant(r.URL.Query().Get("variant"))
}

func (tc *TimerController) writeJSON(w http.ResponseWriter, data []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (tc *TimerController) writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, models.ErrUnknownVariant),
		errors.Is(err, models.ErrUnknownStage),
		errors.Is(err, models.ErrInvalidAction):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		tc.logger.Errorf(providers.GetLogTypeByRequestType(r.Method), "%s %s: %s", r.Method, r.URL.Path, err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

// serveFromCacheOrCompute answers from the view cache. Keys carry the service
// revision and the current second, so a cached view is never older than one tick.
func (tc *TimerController) serveFromCacheOrCompute(w http.ResponseWriter, r *http.Request, cacheKey string, compute func() (any, error)) {
	if data, ok := tc.cache.Get(cacheKey); ok {
		tc.writeJSON(w, data)
		return
	}

	result, err := compute()
	if err != nil {
		tc.writeError(w, r, err)
		return
	}

	gson, err := json.Marshal(result)
	if err != nil {
		tc.writeError(w, r, err)
		return
	}

	tc.cache.Set(cacheKey, gson)
	tc.writeJSON(w, gson)
}

func (tc *TimerController) viewKey(variant models.Variant) string {
	return fmt.Sprintf("view:%s:%d:%d", variant, tc.service.Revision(), tc.clock.Now().Unix())
}

func (tc *TimerController) GetView(w http.ResponseWriter, r *http.Request) {
	variant, err := getVariant(r)
	if err != nil {
		tc.writeError(w, r, err)
		return
	}
	tc.serveFromCacheOrCompute(w, r, tc.viewKey(variant), func() (any, error) {
		return tc.service.View(variant)
	})
}

func (tc *TimerController) Start(w http.ResponseWriter, r *http.Request) {
	tc.transition(w, r, engine.ControlStart, tc.service.Start)
}

func (tc *TimerController) Pause(w http.ResponseWriter, r *http.Request) {
	tc.transition(w, r, engine.ControlPause, tc.service.Pause)
}

func (tc *TimerController) Reset(w http.ResponseWriter, r *http.Request) {
	tc.transition(w, r, engine.ControlReset, tc.service.Reset)
}

func (tc *TimerController) AddTime(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	var payload addTimeRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil && !errors.Is(err, io.EOF) {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	seconds := tc.addTimeSeconds
	if payload.Seconds != nil {
		seconds = *payload.Seconds
	}
	if seconds > models.MaxDisplaySeconds || seconds < -models.MaxDisplaySeconds {
		http.Error(w, fmt.Sprintf("seconds must be within ±%d", models.MaxDisplaySeconds), http.StatusBadRequest)
		return
	}

	tc.transition(w, r, engine.ControlAddTime, func(variant models.Variant) (bool, error) {
		return tc.service.AddTime(variant, seconds)
	})
}

// transition answers 204 when the control was applied and 409 when it is not legal right now.
func (tc *TimerController) transition(w http.ResponseWriter, r *http.Request, control engine.Control, apply func(models.Variant) (bool, error)) {
	variant, err := getVariant(r)
	if err != nil {
		tc.writeError(w, r, err)
		return
	}

	applied, err := apply(variant)
	if err != nil {
		tc.writeError(w, r, err)
		return
	}
	if !applied {
		http.Error(w, fmt.Sprintf("%s is not available for %s", control, variant), http.StatusConflict)
		return
	}

	tc.logger.Debugf(providers.TypePost, "%s applied to %s", control, variant)
	w.WriteHeader(http.StatusNoContent)
}

func (tc *TimerController) PressKey(w http.ResponseWriter, r *http.Request) {
	variant, err := getVariant(r)
	if err != nil {
		tc.writeError(w, r, err)
		return
	}
	stage, err := models.ParseStage(r.URL.Query().Get("stage"))
	if err != nil {
		tc.writeError(w, r, err)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	var action models.KeypadAction
	if err := json.NewDecoder(r.Body).Decode(&action); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	view, err := tc.service.PressKey(variant, stage, action)
	if err != nil {
		tc.writeError(w, r, err)
		return
	}

	gson, err := json.Marshal(view)
	if err != nil {
		tc.writeError(w, r, err)
		return
	}
	tc.writeJSON(w, gson)
}
