package router

import (
	"net/http"

	"github.com/leafwall/leafwall/internal/services/health"
)

type healthLiveResponse struct {
	Success bool `json:"success"`
	health.Liveness
}

type healthReadyResponse struct {
	Success bool `json:"success"`
	health.Readiness
}

type healthCheckResponse struct {
	Success bool `json:"success"`
	health.Report
}

func (h *handler) healthLive(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, healthLiveResponse{
		Success:  true,
		Liveness: h.health.Live(),
	})
}

func (h *handler) healthReady(w http.ResponseWriter, r *http.Request) {
	readiness, ready := h.health.Ready(r.Context())
	status := http.StatusOK
	if !ready {
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, healthReadyResponse{
		Success:   ready,
		Readiness: readiness,
	})
}

func (h *handler) healthCheck(w http.ResponseWriter, r *http.Request) {
	report := h.health.Check(r.Context())
	status := http.StatusOK
	if report.Status == "error" {
		status = http.StatusInternalServerError
	}
	writeJSON(w, status, healthCheckResponse{
		Success: report.Status != "error",
		Report:  report,
	})
}
