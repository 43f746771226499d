package daemon

import (
	"context"
	"log/slog"
	"time"
)

// WakeMonitor detects resume-from-suspend by watching for wall-clock jumps.
// While the machine sleeps the ticker does not fire, so the gap between two
// consecutive observations grows far beyond the polling interval.
type WakeMonitor struct {
	interval time.Duration
	onWake   func()
	logger   *slog.Logger

	last time.Time
}

// NewWakeMonitor creates a wake monitor that calls onWake after a resume.
func NewWakeMonitor(interval time.Duration, onWake func(), logger *slog.Logger) *WakeMonitor {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &WakeMonitor{
		interval: interval,
		onWake:   onWake,
		logger:   logger,
	}
}

// Run starts the monitor loop. Blocks until context is cancelled.
func (m *WakeMonitor) Run(ctx context.Context) {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	m.last = time.Now()
	m.logger.Info("wake monitor started", "interval", m.interval)

	for {
		select {
		case <-ctx.Done():
			m.logger.Info("wake monitor stopped")
			return
		case <-ticker.C:
			if m.observe(time.Now()) {
				m.onWake()
			}
		}
	}
}

// observe records a tick and reports whether the gap since the previous tick
// indicates the machine was asleep in between.
func (m *WakeMonitor) observe(now time.Time) bool {
	gap := now.Sub(m.last)
	m.last = now

	if gap <= 2*m.interval {
		return false
	}
	m.logger.Info("wake from sleep detected", "gap", gap)
	return true
}
