// internal/monitor/runner_test.go
package monitor

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/quadlink/linkmon/internal/logging"
	"github.com/quadlink/linkmon/internal/status"
)

var errTest = errors.New("injected failure")

func TestRun_LogsSummaryAndTelemetry(t *testing.T) {
	// First line answers the connect probe, the second is telemetry for
	// the summary loop to forward.
	port := &fakePort{lines: []string{"PONG", "TEMP 21.4"}}

	out := &syncBuffer{}
	board := &status.Board{}
	s := New(logging.NewWriter(out), board, &fakeDriver{connectAfter: -1}, opener(port, nil), 50*time.Millisecond)

	if !s.ConnectSerial("/dev/ttyACM0", 115200) {
		t.Fatalf("setup: serial connect failed")
	}
	board.SetLinkConnected(true)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.Run(ctx, 10*time.Millisecond)
		close(done)
	}()

	deadline := time.After(2 * time.Second)
	for {
		log := out.String()
		if strings.Contains(log, "status: flight link: up | serial: up") &&
			strings.Contains(log, "serial data: TEMP 21.4") {
			break
		}
		select {
		case <-deadline:
			t.Fatalf("expected summary and telemetry lines, log:\n%s", log)
		case <-time.After(5 * time.Millisecond):
		}
	}

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatalf("Run did not stop on context cancel")
	}
}

func TestRun_ReadErrorIsNonFatal(t *testing.T) {
	port := &fakePort{readErr: errTest}

	out := &syncBuffer{}
	board := &status.Board{}
	s := New(logging.NewWriter(out), board, &fakeDriver{connectAfter: -1}, opener(port, nil), 50*time.Millisecond)

	s.mu.Lock()
	s.port = port
	s.mu.Unlock()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.Run(ctx, 5*time.Millisecond)
		close(done)
	}()

	deadline := time.After(2 * time.Second)
	for !strings.Contains(out.String(), "error reading serial data") {
		select {
		case <-deadline:
			t.Fatalf("read error not logged, log:\n%s", out.String())
		case <-time.After(5 * time.Millisecond):
		}
	}

	cancel()
	<-done
}
