package router

import (
	"errors"
	"net/http"
	"time"

	"github.com/leafwall/leafwall/internal/domain/leaf"
	"github.com/leafwall/leafwall/internal/services/leaves"
)

type listLeavesResponse struct {
	Success   bool        `json:"success"`
	Leaves    []leaf.Leaf `json:"leaves"`
	Count     int         `json:"count"`
	Timestamp string      `json:"timestamp"`
}

type createLeafResponse struct {
	Success     bool      `json:"success"`
	Leaf        leaf.Leaf `json:"leaf"`
	TotalLeaves int       `json:"totalLeaves"`
	Message     string    `json:"message"`
}

type clearLeavesResponse struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}

type leafStatsResponse struct {
	Success   bool         `json:"success"`
	Stats     leaves.Stats `json:"stats"`
	Timestamp string       `json:"timestamp"`
}

func (h *handler) listLeaves(w http.ResponseWriter, r *http.Request) {
	records, err := h.leaves.List(r.Context())
	if err != nil {
		h.log.WithError(err).Error("Failed to load leaves")
		writeError(w, http.StatusInternalServerError, "failed to load leaves")
		return
	}
	writeJSON(w, http.StatusOK, listLeavesResponse{
		Success:   true,
		Leaves:    records,
		Count:     len(records),
		Timestamp: timestamp(),
	})
}

func (h *handler) createLeaf(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Index    *int           `json:"index"`
		Position *leaf.Position `json:"position"`
		Source   string         `json:"source"`
	}
	if r.Body != nil && r.ContentLength != 0 {
		if err := decodeJSON(r, &payload); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
	}

	record, created, err := h.leaves.Create(r.Context(), leaves.CreateInput{
		Index:    payload.Index,
		Position: payload.Position,
		Source:   payload.Source,
	})
	switch {
	case errors.Is(err, leaves.ErrInvalidIndex):
		writeError(w, http.StatusBadRequest, err.Error())
		return
	case err != nil:
		h.log.WithError(err).Error("Failed to save leaf")
		writeError(w, http.StatusInternalServerError, "failed to save leaf")
		return
	}

	total, err := h.leaves.Count(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load leaves")
		return
	}

	status := http.StatusOK
	message := "Leaf already exists"
	if created {
		status = http.StatusCreated
		message = "Leaf added successfully"
	}
	writeJSON(w, status, createLeafResponse{
		Success:     true,
		Leaf:        record,
		TotalLeaves: total,
		Message:     message,
	})
}

func (h *handler) clearLeaves(w http.ResponseWriter, r *http.Request) {
	if err := h.leaves.Clear(r.Context()); err != nil {
		h.log.WithError(err).Error("Failed to clear leaves")
		writeError(w, http.StatusInternalServerError, "failed to clear leaves")
		return
	}
	writeJSON(w, http.StatusOK, clearLeavesResponse{
		Success:   true,
		Message:   "All leaves cleared",
		Timestamp: timestamp(),
	})
}

func (h *handler) leafStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.leaves.Stats(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to compute stats")
		return
	}
	writeJSON(w, http.StatusOK, leafStatsResponse{
		Success:   true,
		Stats:     stats,
		Timestamp: timestamp(),
	})
}

func timestamp() string {
	return time.Now().UTC().Format(time.RFC3339)
}
