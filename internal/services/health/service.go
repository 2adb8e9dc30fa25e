// Package health reports liveness, readiness and aggregate process health.
package health

import (
	"context"
	"os"
	"runtime"
	"time"

	"github.com/shirou/gopsutil/v3/process"

	"github.com/leafwall/leafwall/internal/storage"
	"github.com/leafwall/leafwall/pkg/logger"
)

// Liveness is the fixed payload for the liveness probe.
type Liveness struct {
	Status    string `json:"status"`
	Uptime    string `json:"uptime"`
	Timestamp string `json:"timestamp"`
}

// Readiness reports whether the backing store accepts writes.
type Readiness struct {
	Status    string `json:"status"`
	Storage   string `json:"storage"`
	Error     string `json:"error,omitempty"`
	Timestamp string `json:"timestamp"`
}

// ProcessInfo carries basic process metadata for the aggregate report.
type ProcessInfo struct {
	PID        int    `json:"pid"`
	Goroutines int    `json:"goroutines"`
	RSSBytes   uint64 `json:"rssBytes,omitempty"`
}

// Report is the aggregate health payload.
type Report struct {
	Status      string      `json:"status"`
	Environment string      `json:"environment"`
	Storage     string      `json:"storage"`
	LeafCount   int         `json:"leafCount"`
	Uptime      string      `json:"uptime"`
	Process     ProcessInfo `json:"process"`
	Timestamp   string      `json:"timestamp"`
}

// Service answers health probes by delegating to the record store.
type Service struct {
	store       storage.LeafStore
	environment string
	startTime   time.Time
	log         *logger.Logger
}

// New constructs the health service.
func New(store storage.LeafStore, environment string, log *logger.Logger) *Service {
	if log == nil {
		log = logger.NewDefault("health")
	}
	return &Service{
		store:       store,
		environment: environment,
		startTime:   time.Now(),
		log:         log,
	}
}

// Live never fails; it reports the process is up and for how long.
func (s *Service) Live() Liveness {
	return Liveness{
		Status:    "alive",
		Uptime:    time.Since(s.startTime).Truncate(time.Millisecond).String(),
		Timestamp: now(),
	}
}

// Ready reports whether the store is currently writable.
func (s *Service) Ready(ctx context.Context) (Readiness, bool) {
	r := Readiness{
		Status:    "ready",
		Storage:   s.store.Mode(),
		Timestamp: now(),
	}
	if err := s.store.Writable(ctx); err != nil {
		s.log.WithError(err).Warn("store not writable")
		r.Status = "not_ready"
		r.Error = err.Error()
		return r, false
	}
	return r, true
}

// Check builds the aggregate report. Failures degrade the status field
// instead of propagating.
func (s *Service) Check(ctx context.Context) Report {
	report := Report{
		Status:      "healthy",
		Environment: s.environment,
		Storage:     s.store.Mode(),
		Uptime:      time.Since(s.startTime).Truncate(time.Millisecond).String(),
		Process:     processInfo(),
		Timestamp:   now(),
	}

	leaves, err := s.store.Load(ctx)
	if err != nil {
		s.log.WithError(err).Error("health check: load leaves")
		report.Status = "error"
		return report
	}
	report.LeafCount = len(leaves)

	if err := s.store.Writable(ctx); err != nil {
		report.Status = "degraded"
	}
	return report
}

func processInfo() ProcessInfo {
	info := ProcessInfo{
		PID:        os.Getpid(),
		Goroutines: runtime.NumGoroutine(),
	}
	if proc, err := process.NewProcess(int32(info.PID)); err == nil {
		if mem, err := proc.MemoryInfo(); err == nil && mem != nil {
			info.RSSBytes = mem.RSS
		}
	}
	return info
}

func now() string {
	return time.Now().UTC().Format(time.RFC3339)
}
