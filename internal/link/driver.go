// internal/link/driver.go
package link

import "github.com/quadlink/linkmon/internal/discovery"

// Callbacks are the connection notifications a driver delivers.
// They arrive on a driver-owned goroutine, at any time relative to the
// caller, so handlers must be safe to invoke reentrantly and must not
// block. Nil callbacks are ignored by drivers.
type Callbacks struct {
	Connected        func(endpoint string)
	Disconnected     func(endpoint string)
	ConnectionFailed func(endpoint string, reason string)
}

// Session is one open link to a flight controller.
type Session interface {
	// ReadParam requests a named parameter. The value is delivered
	// asynchronously on fn from a driver goroutine; a request that cannot
	// be issued at all returns an error instead.
	ReadParam(name string, fn func(name, value string)) error

	Close() error
}

// Driver is the boundary to the flight-control client library.
type Driver interface {
	// Init prepares the underlying radio driver. Called once before any
	// scan or open.
	Init() error

	// Scan enumerates reachable flight controllers.
	Scan() ([]discovery.Endpoint, error)

	// Open starts an asynchronous connection attempt to endpoint.
	// The outcome is reported through cb; Open itself only fails when the
	// attempt cannot even be started. The returned session becomes usable
	// once cb.Connected has fired.
	Open(endpoint string, cb Callbacks) (Session, error)
}

// Parameter keys every driver is expected to serve, best-effort.
const (
	ParamFirmwareRevision = "firmware.revision"
	ParamBatteryVoltage   = "battery.voltage"
)
