package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/nats-io/nats.go"

	"github.com/localaihub/hub-service/internal/config"
	"github.com/localaihub/hub-service/internal/models"
)

// NATSService answers generation requests over NATS request/reply, mirroring
// the HTTP boundary: a JSON GenerationRequest in, a GenerationResult (or an
// {"error": ...} payload) out. Members of the queue group share the load.
type NATSService struct {
	conn *nats.Conn
	svc  *GenerateService
	cfg  *config.Config
}

func NewNATSService(cfg *config.Config, svc *GenerateService) (*NATSService, error) {
	conn, err := nats.Connect(cfg.NatsURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	return &NATSService{
		conn: conn,
		svc:  svc,
		cfg:  cfg,
	}, nil
}

func (s *NATSService) Start(ctx context.Context) error {
	sub, err := s.conn.QueueSubscribe(s.cfg.NatsSubject, s.cfg.NatsQueueGroup, func(msg *nats.Msg) {
		s.handle(ctx, msg)
	})
	if err != nil {
		s.conn.Close()
		return fmt.Errorf("failed to subscribe: %w", err)
	}

	slog.Info("NATS service starting",
		"subject", s.cfg.NatsSubject,
		"queue_group", s.cfg.NatsQueueGroup)

	<-ctx.Done()
	slog.Info("NATS service shutting down")

	_ = sub.Unsubscribe()
	s.conn.Close()
	return nil
}

func (s *NATSService) handle(ctx context.Context, msg *nats.Msg) {
	var req models.GenerationRequest
	if err := json.Unmarshal(msg.Data, &req); err != nil {
		slog.Error("Failed to parse generation request", "error", err, "data", string(msg.Data))
		s.respondError(msg, "invalid JSON")
		return
	}

	result, err := s.svc.Generate(ctx, req)
	if err != nil {
		s.respondError(msg, err.Error())
		return
	}

	data, err := json.Marshal(result)
	if err != nil {
		slog.Error("Failed to marshal generation result", "error", err)
		return
	}
	if err := msg.Respond(data); err != nil {
		slog.Warn("Failed to respond to generation request", "error", err)
	}
}

func (s *NATSService) respondError(msg *nats.Msg, text string) {
	data, _ := json.Marshal(map[string]string{"error": text})
	if err := msg.Respond(data); err != nil {
		slog.Warn("Failed to respond with error", "error", err)
	}
}
