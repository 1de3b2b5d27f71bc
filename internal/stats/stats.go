// Package stats tracks process-wide request counters and host metrics.
package stats

import (
	"math"
	"sync/atomic"
	"time"

	"github.com/shirou/gopsutil/v4/mem"
)

// Tracker owns the request counter. The counter doubles as the request-id
// source: one increment per completed request, so ids are unique and
// strictly increasing for the life of the process.
type Tracker struct {
	startTime time.Time
	requests  atomic.Int64
}

func NewTracker() *Tracker {
	return &Tracker{startTime: time.Now()}
}

// Record counts one completed request and returns its id.
func (t *Tracker) Record() int64 {
	return t.requests.Add(1)
}

// Requests returns the number of completed requests so far.
func (t *Tracker) Requests() int64 {
	return t.requests.Load()
}

func (t *Tracker) StartTime() time.Time {
	return t.startTime
}

func (t *Tracker) Uptime() time.Duration {
	return time.Since(t.startTime)
}

// Snapshot is a point-in-time view for the status endpoint.
type Snapshot struct {
	UptimeSeconds      float64
	RequestsHandled    int64
	MemoryUsagePercent float64
	MemoryAvailableGB  float64
}

// Snapshot samples the counters plus host memory. Memory fields stay zero
// when the OS query fails; the snapshot itself never fails.
func (t *Tracker) Snapshot() Snapshot {
	snap := Snapshot{
		UptimeSeconds:   round1(t.Uptime().Seconds()),
		RequestsHandled: t.Requests(),
	}

	if vm, err := mem.VirtualMemory(); err == nil {
		snap.MemoryUsagePercent = vm.UsedPercent
		snap.MemoryAvailableGB = round2(float64(vm.Available) / (1 << 30))
	}
	return snap
}

func round1(v float64) float64 { return math.Round(v*10) / 10 }
func round2(v float64) float64 { return math.Round(v*100) / 100 }
