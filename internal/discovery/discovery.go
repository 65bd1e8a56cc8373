// internal/discovery/discovery.go
package discovery

import (
	"strings"

	"github.com/quadlink/linkmon/internal/logging"
)

// Endpoint identifies one discoverable peripheral.
// Value type: consumed once to attempt a connection, never cached.
type Endpoint struct {
	ID          string
	Description string
}

// LinkScanner is the scan capability of the flight-control driver.
type LinkScanner interface {
	Scan() ([]Endpoint, error)
}

// PortLister enumerates the host's serial ports with their descriptions.
type PortLister interface {
	List() ([]Endpoint, error)
}

// serialKeywords mark descriptions of boards we treat as the serial
// peripheral. Matched case-insensitively, substring.
var serialKeywords = []string{"esp32", "xiao", "ch340", "cp210"}

// LinkEndpoints scans for flight-control endpoints.
// A scan failure is logged and yields an empty result, never an error.
// Driver ordering is preserved.
func LinkEndpoints(s LinkScanner, log *logging.Logger) []Endpoint {
	log.Infof("scanning for flight link endpoints...")

	eps, err := s.Scan()
	if err != nil {
		log.Errorf("flight link scan failed: %v", err)
		return nil
	}

	log.Infof("found %d flight link endpoint(s)", len(eps))
	for _, ep := range eps {
		log.Infof("  - %s", ep.ID)
	}

	return eps
}

// SerialEndpoints lists serial ports and keeps those whose description
// matches one of the board keywords. Same empty-on-error contract as
// LinkEndpoints.
func SerialEndpoints(l PortLister, log *logging.Logger) []Endpoint {
	log.Infof("scanning for serial ports...")

	ports, err := l.List()
	if err != nil {
		log.Errorf("serial port scan failed: %v", err)
		return nil
	}

	var matched []Endpoint
	for _, p := range ports {
		log.Infof("  - %s: %s", p.ID, p.Description)

		desc := strings.ToLower(p.Description)
		for _, kw := range serialKeywords {
			if strings.Contains(desc, kw) {
				matched = append(matched, p)
				break
			}
		}
	}

	return matched
}
