package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/localaihub/hub-service/internal/models"
	"github.com/localaihub/hub-service/internal/services"
)

type HubHandler struct {
	generate *services.GenerateService
	status   *services.StatusService
}

func NewHubHandler(generate *services.GenerateService, status *services.StatusService) *HubHandler {
	return &HubHandler{
		generate: generate,
		status:   status,
	}
}

func (h *HubHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/generate", h.handleGenerate)
	mux.HandleFunc("/status", h.handleStatus)
	mux.HandleFunc("/health", h.handleHealth)
	mux.HandleFunc("/logs", h.handleLogs)
	mux.Handle("/metrics", promhttp.Handler())
}

func (h *HubHandler) handleGenerate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "POST only", http.StatusMethodNotAllowed)
		return
	}

	var req models.GenerationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Please include a 'prompt' in your request")
		return
	}

	result, err := h.generate.Generate(r.Context(), req)
	if err != nil {
		if errors.Is(err, services.ErrEmptyPrompt) {
			writeError(w, http.StatusBadRequest, "Prompt cannot be empty")
			return
		}
		writeError(w, http.StatusInternalServerError, "Something went wrong")
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (h *HubHandler) handleStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.status.Status(r.Context()))
}

func (h *HubHandler) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now().UTC(),
	})
}

func (h *HubHandler) handleLogs(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if s := r.URL.Query().Get("limit"); s != "" {
		if n, err := strconv.Atoi(s); err == nil {
			limit = n
		}
	}

	records, err := h.generate.Recent(limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Could not read logs")
		return
	}

	writeJSON(w, http.StatusOK, records)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
