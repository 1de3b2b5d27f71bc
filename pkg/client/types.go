package client

import "time"

// GenerationRequest is the body of POST /generate.
type GenerationRequest struct {
	Prompt string `json:"prompt"`
	Model  string `json:"model,omitempty"`
}

// GenerationResult is the server's answer to a generation request.
type GenerationResult struct {
	Response         string  `json:"response"`
	Model            string  `json:"model"`
	TimeTakenSeconds float64 `json:"time_taken_seconds"`
	Offline          bool    `json:"offline"`
	RequestID        int64   `json:"request_id"`
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
