// internal/link/tello/tello.go
package tello

import (
	"errors"
	"fmt"
	"sync"
	"time"

	drone "github.com/SMerrony/tello"

	"github.com/quadlink/linkmon/internal/discovery"
	"github.com/quadlink/linkmon/internal/link"
)

const (
	// The drone runs an access point at a fixed address; there is no
	// discovery protocol to scan with.
	defaultAddr        = "192.168.10.1"
	defaultDronePort   = 8889
	defaultLocalPort   = 8800
	livenessPollPeriod = time.Second
)

// Driver adapts the Tello client to the link.Driver contract.
// The client's connect call is synchronous, so Open runs it on its own
// goroutine and reports the outcome through the callbacks; a liveness
// watcher turns a dropped control link into a Disconnected notification.
type Driver struct{}

func (d *Driver) Init() error { return nil }

// Scan reports the fixed AP endpoint. Whether anything answers there is
// the connection attempt's problem, not the scan's.
func (d *Driver) Scan() ([]discovery.Endpoint, error) {
	return []discovery.Endpoint{
		{ID: defaultAddr, Description: "Tello flight controller (AP mode)"},
	}, nil
}

func (d *Driver) Open(endpoint string, cb link.Callbacks) (link.Session, error) {
	if endpoint == "" {
		return nil, errors.New("tello: empty endpoint")
	}

	s := &session{
		endpoint: endpoint,
		dev:      new(drone.Tello),
		done:     make(chan struct{}),
	}

	go s.connect(cb)

	return s, nil
}

type session struct {
	endpoint string
	dev      *drone.Tello

	mu        sync.Mutex
	connected bool
	closed    bool
	done      chan struct{}
}

func (s *session) connect(cb link.Callbacks) {
	if err := s.dev.ControlConnect(s.endpoint, defaultDronePort, defaultLocalPort); err != nil {
		if cb.ConnectionFailed != nil {
			cb.ConnectionFailed(s.endpoint, err.Error())
		}
		return
	}

	s.mu.Lock()
	closed := s.closed
	s.connected = !closed
	s.mu.Unlock()
	if closed {
		s.dev.ControlDisconnect()
		return
	}

	if cb.Connected != nil {
		cb.Connected(s.endpoint)
	}

	s.watch(cb)
}

// watch polls the control link and reports the first drop.
func (s *session) watch(cb link.Callbacks) {
	ticker := time.NewTicker(livenessPollPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-s.done:
			return
		case <-ticker.C:
			if s.dev.ControlConnected() {
				continue
			}

			s.mu.Lock()
			s.connected = false
			s.mu.Unlock()

			if cb.Disconnected != nil {
				cb.Disconnected(s.endpoint)
			}
			return
		}
	}
}

// ReadParam serves the monitor's parameter keys from flight data.
// Delivery is asynchronous to match drivers that fetch over the radio.
func (s *session) ReadParam(name string, fn func(name, value string)) error {
	s.mu.Lock()
	connected := s.connected
	s.mu.Unlock()

	if !connected {
		return errors.New("tello: not connected")
	}

	go func() {
		fd := s.dev.GetFlightData()

		var value string
		switch name {
		case link.ParamFirmwareRevision:
			value = fd.Version
		case link.ParamBatteryVoltage:
			// The drone reports charge, not volts.
			value = fmt.Sprintf("%d%%", fd.BatteryPercentage)
		default:
			value = ""
		}

		fn(name, value)
	}()

	return nil
}

func (s *session) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	wasConnected := s.connected
	s.connected = false
	close(s.done)
	s.mu.Unlock()

	if wasConnected {
		s.dev.ControlDisconnect()
	}
	return nil
}
