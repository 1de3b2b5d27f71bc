package services

import (
	"context"
	"errors"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/localaihub/hub-service/internal/fallback"
	"github.com/localaihub/hub-service/internal/logging"
	"github.com/localaihub/hub-service/internal/metrics"
	"github.com/localaihub/hub-service/internal/models"
	"github.com/localaihub/hub-service/internal/stats"
)

// Backend issues one generation call to the model server. Every failure,
// whatever the cause, makes the service fall back; there are no retries
// anywhere on this path.
type Backend interface {
	Generate(ctx context.Context, prompt, model string) (string, error)
}

// ErrEmptyPrompt is the only error Generate surfaces to callers. Everything
// else degrades into a fallback response.
var ErrEmptyPrompt = errors.New("prompt cannot be empty")

// GenerateService orchestrates a generation request: validate, dispatch to
// the backend, fall back on failure, account, persist, respond.
type GenerateService struct {
	backend      Backend
	responder    *fallback.Responder
	log          *logging.Logger
	tracker      *stats.Tracker
	metrics      *metrics.GenerateMetrics
	defaultModel string
}

func NewGenerateService(backend Backend, responder *fallback.Responder, log *logging.Logger, tracker *stats.Tracker, m *metrics.GenerateMetrics, defaultModel string) *GenerateService {
	return &GenerateService{
		backend:      backend,
		responder:    responder,
		log:          log,
		tracker:      tracker,
		metrics:      m,
		defaultModel: defaultModel,
	}
}

// Generate runs one request end to end. Rejected prompts are not counted and
// not logged; every completed request increments the counter exactly once,
// gets the counter value as its id, and appends exactly one log record.
func (s *GenerateService) Generate(ctx context.Context, req models.GenerationRequest) (*models.GenerationResult, error) {
	if strings.TrimSpace(req.Prompt) == "" {
		s.metrics.ObserveOutcome(metrics.OutcomeRejected)
		return nil, ErrEmptyPrompt
	}

	model := req.Model
	if model == "" {
		model = s.defaultModel
	}

	traceID := ulid.Make().String()
	start := time.Now()

	text, err := s.backend.Generate(ctx, req.Prompt, model)

	modelUsed := model
	offline := false
	var errStr *string
	if err != nil {
		text = s.responder.Reply(req.Prompt)
		modelUsed = fallback.ModelName
		offline = true
		msg := err.Error()
		errStr = &msg
		slog.Warn("Backend unavailable, using fallback",
			"trace_id", traceID,
			"model", model,
			"error", err)
	}

	elapsed := time.Since(start)
	reqID := s.tracker.Record()

	outcome := metrics.OutcomeOK
	if offline {
		outcome = metrics.OutcomeFallback
	}
	s.metrics.ObserveOutcome(outcome)
	s.metrics.ObserveLatency(elapsed.Seconds())

	rec := &models.InteractionRecord{
		Timestamp:        start.UTC(),
		TraceID:          traceID,
		UserInput:        req.Prompt,
		AIResponse:       text,
		Model:            modelUsed,
		TimeTakenSeconds: round3(elapsed.Seconds()),
		Error:            errStr,
		RequestID:        reqID,
	}
	if logErr := s.log.Append(rec); logErr != nil {
		// Logging failures never reach the caller.
		slog.Error("Could not save interaction", "trace_id", traceID, "error", logErr)
	}

	return &models.GenerationResult{
		Response:         text,
		Model:            modelUsed,
		TimeTakenSeconds: round3(elapsed.Seconds()),
		Offline:          offline,
		RequestID:        reqID,
	}, nil
}

// Recent returns the newest interaction records for the logs endpoint.
func (s *GenerateService) Recent(limit int) ([]*models.InteractionRecord, error) {
	return s.log.Recent(limit)
}

func round3(v float64) float64 { return math.Round(v*1000) / 1000 }
