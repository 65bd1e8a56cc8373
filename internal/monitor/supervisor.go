// internal/monitor/supervisor.go
package monitor

import (
	"sync"
	"time"

	"github.com/quadlink/linkmon/internal/link"
	"github.com/quadlink/linkmon/internal/logging"
	"github.com/quadlink/linkmon/internal/serialio"
	"github.com/quadlink/linkmon/internal/status"
)

// Probe tokens of the serial line protocol.
const (
	ProbeToken       = "PING"
	PowerTestCommand = "POWER_TEST"
)

const (
	defaultConnectPollPeriod = 100 * time.Millisecond
	defaultProbeSettleDelay  = time.Second
	serialPollTimeout        = 50 * time.Millisecond
)

// PortOpener opens the serial peripheral.
type PortOpener func(name string, baudRate int) (serialio.Port, error)

// Supervisor owns the two peripheral handles and is the only writer of
// the status board. Peripheral errors never escape it: every failure
// becomes a log line, a status change, or a false return.
type Supervisor struct {
	log      *logging.Logger
	board    *status.Board
	driver   link.Driver
	openPort PortOpener

	probeTimeout time.Duration
	pollPeriod   time.Duration
	settleDelay  time.Duration

	mu      sync.Mutex
	session link.Session
	port    serialio.Port
}

func New(log *logging.Logger, board *status.Board, driver link.Driver, openPort PortOpener, probeTimeout time.Duration) *Supervisor {
	return &Supervisor{
		log:          log,
		board:        board,
		driver:       driver,
		openPort:     openPort,
		probeTimeout: probeTimeout,
		pollPeriod:   defaultConnectPollPeriod,
		settleDelay:  defaultProbeSettleDelay,
	}
}

// ConnectLink opens the flight link and waits for the driver's
// Connected notification, polling the status board until it arrives or
// timeout elapses. A timeout abandons the attempt but does not cancel
// it: if the driver connects later, the notification still flips the
// status flag.
func (s *Supervisor) ConnectLink(endpoint string, timeout time.Duration) bool {
	s.log.Infof("attempting flight link connection to %s", endpoint)

	sess, err := s.driver.Open(endpoint, link.Callbacks{
		Connected:        s.onLinkConnected,
		Disconnected:     s.onLinkDisconnected,
		ConnectionFailed: s.onLinkConnectionFailed,
	})
	if err != nil {
		s.log.Errorf("failed to open flight link %s: %v", endpoint, err)
		return false
	}

	s.mu.Lock()
	s.session = sess
	s.mu.Unlock()

	deadline := time.Now().Add(timeout)
	for !s.board.Snapshot().LinkConnected {
		if time.Now().After(deadline) {
			s.log.Errorf("flight link connection timeout (%s)", endpoint)
			return false
		}
		time.Sleep(s.pollPeriod)
	}

	return true
}

// ---- LINK NOTIFICATIONS ----
// Delivered on a driver goroutine, possibly concurrently with anything.

func (s *Supervisor) onLinkConnected(endpoint string) {
	s.log.Infof("flight link connected: %s", endpoint)
	s.board.SetLinkConnected(true)
	s.readbackParams()
}

func (s *Supervisor) onLinkDisconnected(endpoint string) {
	s.log.Warnf("flight link disconnected: %s", endpoint)
	s.board.SetLinkConnected(false)
}

func (s *Supervisor) onLinkConnectionFailed(endpoint, reason string) {
	s.log.Errorf("flight link connection failed: %s - %s", endpoint, reason)
	s.board.SetLinkConnected(false)
}

// readbackParams requests firmware revision and battery voltage after a
// connect. Both are observability only; failures are warnings.
func (s *Supervisor) readbackParams() {
	s.mu.Lock()
	sess := s.session
	s.mu.Unlock()

	if sess == nil {
		return
	}

	if err := sess.ReadParam(link.ParamFirmwareRevision, func(_, value string) {
		s.log.Infof("firmware revision: %s", value)
	}); err != nil {
		s.log.Warnf("could not read firmware revision: %v", err)
	}

	if err := sess.ReadParam(link.ParamBatteryVoltage, func(_, value string) {
		s.log.Infof("battery voltage: %s", value)
	}); err != nil {
		s.log.Warnf("could not read battery voltage: %v", err)
	}
}

// ConnectSerial opens the serial peripheral and runs the liveness
// probe. The probe is permissive: an opened port counts as connected
// whether or not the peer answers; a reply additionally marks
// communication active.
func (s *Supervisor) ConnectSerial(name string, baudRate int) bool {
	s.log.Infof("attempting serial connection to %s (baud %d)", name, baudRate)

	port, err := s.openPort(name, baudRate)
	if err != nil {
		s.log.Errorf("failed to open serial port %s: %v", name, err)
		return false
	}

	s.mu.Lock()
	s.port = port
	s.mu.Unlock()
	s.board.SetSerialConnected(true)

	if err := port.WriteLine(ProbeToken); err != nil {
		s.log.Warnf("serial probe write failed: %v", err)
		return true
	}

	reply, err := port.ReadLine(s.probeTimeout)
	switch {
	case err != nil:
		s.log.Warnf("serial probe read failed: %v", err)
	case reply == "":
		s.log.Warnf("serial port open but no reply to probe")
	default:
		s.log.Infof("serial peer replied: %s", reply)
		s.board.SetCommActive(true)
	}

	return true
}

// SendSerialCommand writes one command line to the serial peripheral.
// Returns false when no port is open or the write fails.
func (s *Supervisor) SendSerialCommand(text string) bool {
	s.mu.Lock()
	port := s.port
	s.mu.Unlock()

	if port == nil {
		s.log.Errorf("serial peripheral not connected")
		return false
	}

	if err := port.WriteLine(text); err != nil {
		s.log.Errorf("failed to send serial command %q: %v", text, err)
		return false
	}

	s.log.Infof("sent serial command: %s", text)
	return true
}

// RunDiagnosticProbe exercises both peripherals end to end: a power
// test command on the serial side, a settle delay, then a battery
// read-back over the link. Observability only; it renders no verdict
// and mutates no status.
func (s *Supervisor) RunDiagnosticProbe() {
	snap := s.board.Snapshot()
	if !snap.LinkConnected {
		s.log.Errorf("cannot run diagnostic probe - flight link not connected")
		return
	}
	if !snap.SerialConnected {
		s.log.Errorf("cannot run diagnostic probe - serial peripheral not connected")
		return
	}

	s.log.Infof("running diagnostic probe...")
	s.SendSerialCommand(PowerTestCommand)

	time.Sleep(s.settleDelay)

	s.mu.Lock()
	sess := s.session
	s.mu.Unlock()
	if sess == nil {
		return
	}

	if err := sess.ReadParam(link.ParamBatteryVoltage, func(_, value string) {
		s.log.Infof("diagnostic probe - battery voltage: %s", value)
	}); err != nil {
		s.log.Warnf("diagnostic probe parameter read failed: %v", err)
	}
}

// pollSerial drains at most one pending line from the serial
// peripheral without blocking the caller for long.
func (s *Supervisor) pollSerial() string {
	s.mu.Lock()
	port := s.port
	s.mu.Unlock()

	if port == nil {
		return ""
	}

	line, err := port.ReadLine(serialPollTimeout)
	if err != nil {
		s.log.Warnf("error reading serial data: %v", err)
		return ""
	}
	return line
}

// Close releases both peripherals, best-effort and independently: a
// close failure on one is logged and never blocks closing the other.
func (s *Supervisor) Close() {
	s.log.Infof("cleaning up connections...")

	s.mu.Lock()
	sess, port := s.session, s.port
	s.session, s.port = nil, nil
	s.mu.Unlock()

	if sess != nil {
		if err := sess.Close(); err != nil {
			s.log.Warnf("flight link close failed: %v", err)
		} else {
			s.log.Infof("flight link closed")
		}
	}

	if port != nil {
		if err := port.Close(); err != nil {
			s.log.Warnf("serial port close failed: %v", err)
		} else {
			s.log.Infof("serial port closed")
		}
		s.board.SetSerialConnected(false)
		s.board.SetCommActive(false)
	}
}
