// internal/monitor/runner.go
package monitor

import (
	"context"
	"time"
)

// Run drives the periodic status loop: log the two-token summary, then
// forward at most one line of pending serial telemetry. Read-only with
// respect to status; exits when ctx is cancelled.
func (s *Supervisor) Run(ctx context.Context, interval time.Duration) {
	s.log.Infof("starting connection monitoring...")

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.log.Infof("status: %s", s.board.Snapshot().Summary())

			if line := s.pollSerial(); line != "" {
				s.log.Infof("serial data: %s", line)
			}
		}
	}
}
