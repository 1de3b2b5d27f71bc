package services

import (
	"context"
	"time"

	"github.com/localaihub/hub-service/internal/models"
	"github.com/localaihub/hub-service/internal/stats"
)

// Pinger probes backend reachability for the status endpoint.
type Pinger interface {
	Ping(ctx context.Context) bool
}

// StatusService assembles the /status response from the stats tracker and a
// live backend probe.
type StatusService struct {
	tracker *stats.Tracker
	backend Pinger
	logFile string
}

func NewStatusService(tracker *stats.Tracker, backend Pinger, logFile string) *StatusService {
	return &StatusService{
		tracker: tracker,
		backend: backend,
		logFile: logFile,
	}
}

func (s *StatusService) Status(ctx context.Context) *models.ServerStats {
	snap := s.tracker.Snapshot()

	return &models.ServerStats{
		Status:             "running",
		UptimeSeconds:      snap.UptimeSeconds,
		RequestsHandled:    snap.RequestsHandled,
		MemoryUsagePercent: snap.MemoryUsagePercent,
		MemoryAvailableGB:  snap.MemoryAvailableGB,
		OllamaRunning:      s.backend.Ping(ctx),
		LogFile:            s.logFile,
		Timestamp:          time.Now().UTC(),
	}
}
