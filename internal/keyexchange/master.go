package keyexchange

import (
	"fmt"

	"fhsslink/internal/crypto"
	"fhsslink/internal/domain"
)

// weakRetries bounds regeneration attempts when the entropy source keeps
// producing known-weak keys.
const weakRetries = 4

// Master generates the shared secret and pushes it to slaves.
type Master struct {
	entropy   domain.EntropySource
	key       domain.Secret
	generated bool
}

func NewMaster(entropy domain.EntropySource) *Master {
	return &Master{entropy: entropy}
}

// Generate fills the key with fresh entropy, one byte per source word.
// Known-weak results (all-identical bytes, short repeating patterns) are
// regenerated; a source that cannot produce anything else fails with
// ErrWeakKey.
func (m *Master) Generate() error {
	for attempt := 0; attempt <= weakRetries; attempt++ {
		var key domain.Secret
		for i := range key {
			w, err := m.entropy.Word()
			if err != nil {
				return fmt.Errorf("generate key: %w", err)
			}
			key[i] = byte(w)
		}
		if crypto.Weak(key[:]) {
			continue
		}
		m.key = key
		m.generated = true
		return nil
	}
	return domain.ErrWeakKey
}

// Transmit writes the generated key to the transport inside a transaction.
// It fails with ErrNoKey before Generate has succeeded; repeated calls write
// byte-identical output.
func (m *Master) Transmit(t domain.Transport) error {
	if !m.generated {
		return domain.ErrNoKey
	}
	t.SetActive(true)
	defer t.SetActive(false)
	if err := t.Write(m.key.Slice()); err != nil {
		return fmt.Errorf("transmit key: %w", err)
	}
	return nil
}

// Key returns the current secret; valid only after Generate.
func (m *Master) Key() domain.Secret { return m.key }

// Generated reports whether a key is held.
func (m *Master) Generated() bool { return m.generated }

// Reset wipes the key and returns the master to its initial state.
func (m *Master) Reset() {
	crypto.Wipe(m.key[:])
	m.generated = false
}
