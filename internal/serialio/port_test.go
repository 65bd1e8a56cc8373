// internal/serialio/port_test.go
package serialio

import (
	"errors"
	"strings"
	"testing"
	"time"
)

// fakeDevice scripts Read results and records writes.
// A read returning 0 bytes models a device-level timeout, which is how
// go.bug.st/serial reports an expired read timeout.
type fakeDevice struct {
	reads   []string
	writes  []string
	readErr error
	closed  bool
}

func (f *fakeDevice) Read(p []byte) (int, error) {
	if f.readErr != nil {
		return 0, f.readErr
	}
	if len(f.reads) == 0 {
		return 0, nil
	}
	chunk := f.reads[0]
	f.reads = f.reads[1:]
	return copy(p, chunk), nil
}

func (f *fakeDevice) Write(p []byte) (int, error) {
	f.writes = append(f.writes, string(p))
	return len(p), nil
}

func (f *fakeDevice) SetReadTimeout(t time.Duration) error { return nil }

func (f *fakeDevice) Close() error {
	f.closed = true
	return nil
}

// echoDevice feeds written lines back to the reader.
type echoDevice struct {
	fakeDevice
}

func (e *echoDevice) Write(p []byte) (int, error) {
	e.reads = append(e.reads, string(p))
	return len(p), nil
}

// ---- tests ----

func TestWriteLine_AppendsTerminator(t *testing.T) {
	dev := &fakeDevice{}
	c := newConn(dev)

	if err := c.WriteLine("PING"); err != nil {
		t.Fatalf("WriteLine err=%v", err)
	}
	if len(dev.writes) != 1 || dev.writes[0] != "PING\n" {
		t.Fatalf("writes = %q, want [\"PING\\n\"]", dev.writes)
	}
}

func TestReadLine_StripsTerminatorAndCR(t *testing.T) {
	c := newConn(&fakeDevice{reads: []string{"READY\r\n"}})

	line, err := c.ReadLine(time.Second)
	if err != nil {
		t.Fatalf("ReadLine err=%v", err)
	}
	if line != "READY" {
		t.Fatalf("line = %q, want %q", line, "READY")
	}
}

func TestReadLine_AssemblesPartialReads(t *testing.T) {
	c := newConn(&fakeDevice{reads: []string{"REA", "DY\ntrail"}})

	line, err := c.ReadLine(time.Second)
	if err != nil {
		t.Fatalf("ReadLine err=%v", err)
	}
	if line != "READY" {
		t.Fatalf("line = %q, want %q", line, "READY")
	}

	// The bytes after the terminator stay buffered for the next call.
	line, err = c.ReadLine(time.Second)
	if err != nil {
		t.Fatalf("second ReadLine err=%v", err)
	}
	if line != "" {
		t.Fatalf("incomplete line must not be returned, got %q", line)
	}
}

func TestReadLine_TimeoutYieldsEmptyNoError(t *testing.T) {
	c := newConn(&fakeDevice{})

	line, err := c.ReadLine(10 * time.Millisecond)
	if err != nil {
		t.Fatalf("timeout must not be an error, got %v", err)
	}
	if line != "" {
		t.Fatalf("line = %q, want empty on timeout", line)
	}
}

func TestReadLine_PropagatesDeviceError(t *testing.T) {
	c := newConn(&fakeDevice{readErr: errors.New("unplugged")})

	if _, err := c.ReadLine(time.Second); err == nil {
		t.Fatalf("expected read error, got nil")
	}
}

func TestRoundTrip_Echo(t *testing.T) {
	c := newConn(&echoDevice{})

	if err := c.WriteLine("POWER_TEST"); err != nil {
		t.Fatalf("WriteLine err=%v", err)
	}

	line, err := c.ReadLine(time.Second)
	if err != nil {
		t.Fatalf("ReadLine err=%v", err)
	}
	if line != "POWER_TEST" {
		t.Fatalf("round trip = %q, want %q", line, "POWER_TEST")
	}
	if strings.ContainsAny(line, "\r\n") {
		t.Fatalf("terminator not stripped: %q", line)
	}
}

func TestClose_DiscardsBufferedInput(t *testing.T) {
	dev := &fakeDevice{reads: []string{"half a li"}}
	c := newConn(dev)

	// Pull the partial line into the buffer, then close.
	if _, err := c.ReadLine(10 * time.Millisecond); err != nil {
		t.Fatalf("ReadLine err=%v", err)
	}
	if err := c.Close(); err != nil {
		t.Fatalf("Close err=%v", err)
	}
	if !dev.closed {
		t.Fatalf("device not closed")
	}
	if c.pending != nil {
		t.Fatalf("pending buffer not discarded")
	}
}
