// Package ollama is the HTTP client for a locally running Ollama server.
package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"
)

// ErrorKind classifies why a generation attempt failed. Callers treat every
// kind the same way (fall back); the kind exists for log lines.
type ErrorKind string

const (
	KindUnreachable ErrorKind = "unreachable"
	KindTimeout     ErrorKind = "timeout"
	KindBadStatus   ErrorKind = "bad_status"
	KindBadResponse ErrorKind = "bad_response"
)

// Error is the single failure type the client returns.
type Error struct {
	Kind ErrorKind
	Err  error
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindUnreachable:
		return "Ollama isn't running - please start it!"
	case KindTimeout:
		return "Request took too long"
	default:
		return fmt.Sprintf("Ollama API error: %v", e.Err)
	}
}

func (e *Error) Unwrap() error { return e.Err }

type Client struct {
	baseURL string
	http    *http.Client
	probe   *http.Client
}

// NewClient creates a client for the Ollama server at baseURL. timeout bounds
// generation calls, probeTimeout bounds reachability checks.
func NewClient(baseURL string, timeout, probeTimeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		probe:   &http.Client{Timeout: probeTimeout},
	}
}

type generateRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
}

type generateResponse struct {
	Response string `json:"response"`
}

// Generate asks the model for a completion. A single attempt, no retries:
// the orchestrator falls back immediately on any error.
func (c *Client) Generate(ctx context.Context, prompt, model string) (string, error) {
	body, err := json.Marshal(generateRequest{
		Model:  model,
		Prompt: prompt,
		Stream: false,
	})
	if err != nil {
		return "", &Error{Kind: KindBadResponse, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/generate", bytes.NewReader(body))
	if err != nil {
		return "", &Error{Kind: KindUnreachable, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", &Error{Kind: classifyTransportError(err), Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		return "", &Error{Kind: KindBadStatus, Err: fmt.Errorf("status %d", resp.StatusCode)}
	}

	var out generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", &Error{Kind: KindBadResponse, Err: err}
	}

	if out.Response == "" {
		return "No response generated", nil
	}
	return out.Response, nil
}

// Ping reports whether the Ollama server answers /api/tags within the probe
// timeout. Used by the status endpoint only.
func (c *Client) Ping(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/tags", nil)
	if err != nil {
		return false
	}

	resp, err := c.probe.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	return resp.StatusCode == http.StatusOK
}

func classifyTransportError(err error) ErrorKind {
	if errors.Is(err, context.DeadlineExceeded) {
		return KindTimeout
	}
	var nerr net.Error
	if errors.As(err, &nerr) && nerr.Timeout() {
		return KindTimeout
	}
	return KindUnreachable
}
