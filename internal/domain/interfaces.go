package domain

// Transport is a byte-oriented duplex channel with an explicit
// transaction-active signal. Bytes written while the transaction is inactive
// are discarded; reads only see bytes captured during an active transaction.
// The link core depends on this contract alone, not on any particular bus.
type Transport interface {
	// SetActive asserts or releases the transaction signal.
	SetActive(active bool)

	// Active reports whether a transaction is currently asserted.
	Active() bool

	// Write moves len(p) bytes onto the bus. It returns ErrTransportInactive
	// when no transaction is active.
	Write(p []byte) error

	// ReadExact returns exactly n bytes captured during an active
	// transaction, or an error if fewer are available.
	ReadExact(n int) ([]byte, error)
}

// EntropySource produces 32-bit random words on demand. The hardware source
// wraps a TRNG; test doubles are seedable and may queue preset outputs.
type EntropySource interface {
	Word() (uint32, error)
}

// Clock reports elapsed milliseconds. Nodes never read wall time directly so
// tests can drive synchronization with a manual clock.
type Clock interface {
	Now() uint32
}
