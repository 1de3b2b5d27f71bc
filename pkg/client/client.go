// Package client is a small Go client for the LocalAIHub HTTP API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// HubClient provides a client interface for the hub service.
type HubClient interface {
	// Generate sends a prompt and returns the generation result. An empty
	// model means the server's default.
	Generate(ctx context.Context, prompt, model string) (*GenerationResult, error)

	// Status returns server stats and backend reachability.
	Status(ctx context.Context) (*ServerStats, error)

	// Health reports whether the server process is responsive.
	Health(ctx context.Context) error
}

type httpHubClient struct {
	baseURL string
	http    *http.Client
}

// New creates a client for the hub server at baseURL.
func New(baseURL string) HubClient {
	return &httpHubClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *httpHubClient) Generate(ctx context.Context, prompt, model string) (*GenerationResult, error) {
	body, err := json.Marshal(GenerationRequest{
		Prompt: prompt,
		Model:  model,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/generate", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("can't reach the LocalAIHub server: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, decodeError(resp)
	}

	var result GenerationResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	return &result, nil
}

func (c *httpHubClient) Status(ctx context.Context) (*ServerStats, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/status", nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("can't reach the LocalAIHub server: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, decodeError(resp)
	}

	var stats ServerStats
	if err := json.NewDecoder(resp.Body).Decode(&stats); err != nil {
		return nil, fmt.Errorf("failed to parse status: %w", err)
	}
	return &stats, nil
}

func (c *httpHubClient) Health(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("can't reach the LocalAIHub server: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("health check failed: status %d", resp.StatusCode)
	}
	return nil
}

func decodeError(resp *http.Response) error {
	var payload struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err == nil && payload.Error != "" {
		return fmt.Errorf("server error (status %d): %s", resp.StatusCode, payload.Error)
	}
	return fmt.Errorf("server error: status %d", resp.StatusCode)
}
