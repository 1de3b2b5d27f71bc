package models

import "time"

// GenerationRequest is the body of POST /generate. Model is optional; an
// empty string means the configured default model.
type GenerationRequest struct {
	Prompt string `json:"prompt"`
	Model  string `json:"model,omitempty"`
}

// GenerationResult is what callers get back for every completed generation,
// whether the backend answered or the fallback did.
type GenerationResult struct {
	Response         string  `json:"response"`
	Model            string  `json:"model"`
	TimeTakenSeconds float64 `json:"time_taken_seconds"`
	Offline          bool    `json:"offline"`
	RequestID        int64   `json:"request_id"`
}

// InteractionRecord is one line of the append-only interaction log.
// Error carries the backend failure that triggered the fallback, or null
// when the backend answered.
type InteractionRecord struct {
	Timestamp        time.Time `json:"timestamp"`
	TraceID          string    `json:"trace_id"`
	UserInput        string    `json:"user_input"`
	AIResponse       string    `json:"ai_response"`
	Model            string    `json:"model"`
	TimeTakenSeconds float64   `json:"time_taken_seconds"`
	Error            *string   `json:"error"`
	RequestID        int64     `json:"request_id"`
}

// ServerStats is the response of GET /status.
type ServerStats struct {
	Status             string    `json:"status"`
	UptimeSeconds      float64   `json:"uptime_seconds"`
	RequestsHandled    int64     `json:"requests_handled"`
	MemoryUsagePercent float64   `json:"memory_usage_percent"`
	MemoryAvailableGB  float64   `json:"memory_available_gb"`
	OllamaRunning      bool      `json:"ollama_running"`
	LogFile            string    `json:"log_file"`
	Timestamp          time.Time `json:"timestamp"`
}
