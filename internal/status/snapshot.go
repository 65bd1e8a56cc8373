// internal/status/snapshot.go
package status

// Snapshot is a point-in-time copy of the Board.
// It contains no logic and no memory of the past beyond current state.
type Snapshot struct {
	LinkConnected   bool
	SerialConnected bool
	CommActive      bool
}

// Summary renders the periodic status line, one token per peripheral.
func (s Snapshot) Summary() string {
	link := "flight link: down"
	if s.LinkConnected {
		link = "flight link: up"
	}

	serial := "serial: down"
	if s.SerialConnected {
		serial = "serial: up"
	}

	return link + " | " + serial
}
