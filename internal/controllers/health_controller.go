package controllers

import (
	"fmt"
	json "github.com/goccy/go-json"
	"net/http"
	"time"
)

// StoreStatus reports the state of the snapshot store.
type StoreStatus interface {
	Ready() bool
	Pending() bool
}

type HealthController struct {
	store     StoreStatus
	startTime time.Time
}

type healthResponse struct {
	Status        string  `json:"status"`
	Uptime        string  `json:"uptime"`
	UptimeSeconds float64 `json:"uptime_seconds"`
	Ready         bool    `json:"ready"`
	PendingFlush  bool    `json:"pending_flush"`
}

func (hc *HealthController) Health(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	uptime := time.Since(hc.startTime)
	resp := healthResponse{
		Status:        "ok",
		Uptime:        formatDuration(uptime),
		UptimeSeconds: uptime.Seconds(),
		Ready:         hc.store.Ready(),
		PendingFlush:  hc.store.Pending(),
	}
	status := http.StatusOK
	if !resp.Ready {
		resp.Status = "starting"
		status = http.StatusServiceUnavailable
	}

	gson, err := json.Marshal(resp)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(gson)
}

func formatDuration(d time.Duration) string {
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60
	return fmt.Sprintf("%dh%dm%ds", hours, minutes, seconds)
}

func NewHealthController(store StoreStatus) *HealthController {
	return &HealthController{
		store:     store,
		startTime: time.Now(),
	}
}
