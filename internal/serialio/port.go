// internal/serialio/port.go
package serialio

import (
	"fmt"
	"sync"
	"time"

	"go.bug.st/serial"
)

// Port is the line-oriented contract the monitor uses.
// ReadLine returns "" with a nil error when no full line arrived within
// the timeout; a short timeout therefore doubles as the pending-input
// check of the summary loop.
type Port interface {
	WriteLine(text string) error
	ReadLine(timeout time.Duration) (string, error)
	Close() error
}

// device is the slice of serial.Port the Conn needs.
type device interface {
	Read(p []byte) (n int, err error)
	Write(p []byte) (n int, err error)
	SetReadTimeout(t time.Duration) error
	Close() error
}

// Conn frames a raw serial device into '\n'-terminated lines.
// Bytes read past a terminator are kept for the next ReadLine.
type Conn struct {
	mu      sync.Mutex
	dev     device
	pending []byte
}

// Open opens the named serial device at the given baud rate.
func Open(name string, baudRate int) (*Conn, error) {
	port, err := serial.Open(name, &serial.Mode{BaudRate: baudRate})
	if err != nil {
		return nil, fmt.Errorf("serial: open %s: %w", name, err)
	}
	return newConn(port), nil
}

func newConn(dev device) *Conn {
	return &Conn{dev: dev}
}

// WriteLine writes text followed by the line terminator.
func (c *Conn) WriteLine(text string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, err := c.dev.Write([]byte(text + "\n")); err != nil {
		return fmt.Errorf("serial: write: %w", err)
	}
	return nil
}

// ReadLine returns the next full line with the terminator (and any
// trailing CR) stripped. It blocks at most timeout; with nothing to
// return it yields "", nil. Partial lines stay buffered.
func (c *Conn) ReadLine(timeout time.Duration) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	deadline := time.Now().Add(timeout)
	buf := make([]byte, 256)

	for {
		if line, ok := c.takeLine(); ok {
			return line, nil
		}

		remaining := time.Until(deadline)
		if remaining <= 0 {
			return "", nil
		}

		if err := c.dev.SetReadTimeout(remaining); err != nil {
			return "", fmt.Errorf("serial: set read timeout: %w", err)
		}

		n, err := c.dev.Read(buf)
		if err != nil {
			return "", fmt.Errorf("serial: read: %w", err)
		}
		if n == 0 {
			// Device-level timeout expired.
			return "", nil
		}

		c.pending = append(c.pending, buf[:n]...)
	}
}

// takeLine pops one full line from the pending buffer.
func (c *Conn) takeLine() (string, bool) {
	for i, b := range c.pending {
		if b != '\n' {
			continue
		}

		line := c.pending[:i]
		if len(line) > 0 && line[len(line)-1] == '\r' {
			line = line[:len(line)-1]
		}

		out := string(line)
		c.pending = append(c.pending[:0:0], c.pending[i+1:]...)
		return out, true
	}
	return "", false
}

// Close closes the underlying device. Buffered input is discarded.
func (c *Conn) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.pending = nil
	return c.dev.Close()
}
