package keyexchange

import (
	"errors"

	"fhsslink/internal/crypto"
	"fhsslink/internal/domain"
)

// Slave receives the shared secret from a master.
type Slave struct {
	key      domain.Secret
	received bool
}

func NewSlave() *Slave { return &Slave{} }

// Receive reads exactly the key length from the transport. An unavailable
// transport or a short transfer yields ErrIncompleteKey and leaves the slave
// unchanged; a partial key is never accepted.
func (s *Slave) Receive(t domain.Transport) error {
	b, err := t.ReadExact(domain.KeyLength)
	if err != nil {
		if errors.Is(err, domain.ErrShortRead) || errors.Is(err, domain.ErrTransportInactive) {
			return domain.ErrIncompleteKey
		}
		return err
	}
	copy(s.key[:], b)
	crypto.Wipe(b)
	s.received = true
	return nil
}

// Key returns the received secret; valid only after Receive.
func (s *Slave) Key() domain.Secret { return s.key }

// Received reports whether a key is held.
func (s *Slave) Received() bool { return s.received }

// Reset wipes the key so nothing from this session leaks into the next.
func (s *Slave) Reset() {
	crypto.Wipe(s.key[:])
	s.received = false
}
