// Package rng provides the entropy sources behind key generation: a hardware
// source backed by the operating system and a deterministic double for
// reproducible tests.
package rng

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"

	"fhsslink/internal/domain"
)

// Hardware reads 32-bit words from the platform random generator.
type Hardware struct{}

func NewHardware() *Hardware { return &Hardware{} }

func (*Hardware) Word() (uint32, error) {
	var b [4]byte
	if _, err := rand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("%w: %v", domain.ErrEntropyUnavailable, err)
	}
	return binary.LittleEndian.Uint32(b[:]), nil
}

// Deterministic is a seedable linear-congruential source with an optional
// queue of preset outputs. Each instance owns its state, so parallel tests
// never interfere with each other.
type Deterministic struct {
	state  uint32
	preset []uint32
	next   int
}

// DefaultSeed is the generator's power-on state when none is given.
const DefaultSeed = 12345

func NewDeterministic(seed uint32) *Deterministic {
	if seed == 0 {
		seed = DefaultSeed
	}
	return &Deterministic{state: seed}
}

// Seed resets the generator state.
func (d *Deterministic) Seed(seed uint32) {
	d.state = seed
}

// SetPreset queues words to be returned before the generator resumes.
func (d *Deterministic) SetPreset(values []uint32) {
	d.preset = values
	d.next = 0
}

// Reset rewinds the preset queue without touching the generator state.
func (d *Deterministic) Reset() {
	d.next = 0
}

func (d *Deterministic) Word() (uint32, error) {
	if d.next < len(d.preset) {
		w := d.preset[d.next]
		d.next++
		return w, nil
	}
	d.state = (1103515245*d.state + 12345) & 0x7fffffff
	return d.state, nil
}

// Failing always reports the entropy source as unavailable. Used to exercise
// error paths.
type Failing struct{}

func (Failing) Word() (uint32, error) { return 0, domain.ErrEntropyUnavailable }
