// internal/status/status.go
package status

import "sync"

// Board is the shared connection status record.
// The connection supervisor is its only writer; the summary loop and the
// command dispatcher read snapshots. All three run on different
// goroutines, including whatever goroutine the link driver delivers
// notifications on, so every access goes through the mutex.
//
// The three flags are independent: each one reflects the most recent
// notification or probe result for its peripheral and is never derived
// from the others.
type Board struct {
	mu sync.Mutex

	linkConnected   bool
	serialConnected bool
	commActive      bool
}

func (b *Board) SetLinkConnected(v bool) {
	b.mu.Lock()
	b.linkConnected = v
	b.mu.Unlock()
}

func (b *Board) SetSerialConnected(v bool) {
	b.mu.Lock()
	b.serialConnected = v
	b.mu.Unlock()
}

func (b *Board) SetCommActive(v bool) {
	b.mu.Lock()
	b.commActive = v
	b.mu.Unlock()
}

// Snapshot returns a consistent copy of all three flags.
func (b *Board) Snapshot() Snapshot {
	b.mu.Lock()
	defer b.mu.Unlock()

	return Snapshot{
		LinkConnected:   b.linkConnected,
		SerialConnected: b.serialConnected,
		CommActive:      b.commActive,
	}
}
