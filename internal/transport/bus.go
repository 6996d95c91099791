// Package transport provides an in-memory byte-duplex bus implementing the
// link core's transport contract: an explicit transaction-active signal,
// writes discarded while inactive, reads returning only bytes captured during
// an active transaction.
package transport

import (
	"sync"

	"fhsslink/internal/domain"
)

// Bus is a shared medium connecting a master and its slaves, modelled after a
// select-gated serial bus. The zero value is unusable; call NewBus.
type Bus struct {
	mu      sync.Mutex
	enabled bool
	active  bool
	buf     []byte
}

func NewBus() *Bus {
	return &Bus{enabled: true}
}

// Begin powers the bus. NewBus returns an enabled bus; Begin only matters
// after End.
func (b *Bus) Begin() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.enabled = true
}

// End powers the bus down; subsequent writes and reads fail.
func (b *Bus) End() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.enabled = false
}

func (b *Bus) SetActive(active bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.active = active
}

func (b *Bus) Active() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.enabled && b.active
}

// Write captures p onto the bus. Bytes written while the bus is disabled or
// the transaction inactive are discarded with ErrTransportInactive.
func (b *Bus) Write(p []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.enabled || !b.active {
		return domain.ErrTransportInactive
	}
	b.buf = append(b.buf, p...)
	return nil
}

// ReadExact consumes and returns exactly n bytes captured during an active
// transaction. It fails without consuming anything when fewer than n bytes
// are available.
func (b *Bus) ReadExact(n int) ([]byte, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.enabled {
		return nil, domain.ErrTransportInactive
	}
	if len(b.buf) < n {
		return nil, domain.ErrShortRead
	}
	out := make([]byte, n)
	copy(out, b.buf[:n])
	b.buf = b.buf[n:]
	return out, nil
}

// Len reports how many captured bytes are waiting to be read.
func (b *Bus) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.buf)
}

// Clear drops any captured bytes.
func (b *Bus) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.buf = nil
}
