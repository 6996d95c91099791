// Package packet is the shared integrity building block consumed by every
// component that frames bytes onto the transport: a sentinel-framed record
// with a CRC-16 code, an in-order reception handler, and a bounded
// retransmission counter.
package packet

import (
	"encoding/binary"

	"fhsslink/internal/crypto"
)

const (
	// Sentinel is the framing byte opening every integrity-checked record.
	Sentinel = 0xAA

	// Size is the total framed packet length on the wire.
	Size = 128

	// DataSize is the payload capacity of one packet.
	DataSize = Size - 4 // sentinel + sequence + crc16
)

// Status classifies the outcome of receiving one protocol unit.
type Status uint8

const (
	StatusOK Status = iota
	StatusCorrupted
	StatusMissing
	StatusRetryExceeded
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusCorrupted:
		return "corrupted"
	case StatusMissing:
		return "missing"
	case StatusRetryExceeded:
		return "retry limit exceeded"
	}
	return "unknown"
}

// Packet is one framed unit. Data is fixed-size; short payloads are
// zero-padded at construction.
type Packet struct {
	Header uint8
	Seq    uint8
	Data   [DataSize]byte
	CRC    uint16
}

// New builds a packet for seq, zero-padding or truncating data to capacity
// and computing the integrity code over the framed bytes.
func New(seq uint8, data []byte) Packet {
	p := Packet{Header: Sentinel, Seq: seq}
	copy(p.Data[:], data)
	p.CRC = p.computeCRC()
	return p
}

// computeCRC covers everything before the CRC field.
func (p Packet) computeCRC() uint16 {
	b := p.Encode()
	return crypto.CRC16(b[:Size-2])
}

// Encode serialises the packet: [header][seq][data][crc16 LE].
func (p Packet) Encode() []byte {
	b := make([]byte, Size)
	b[0] = p.Header
	b[1] = p.Seq
	copy(b[2:2+DataSize], p.Data[:])
	binary.LittleEndian.PutUint16(b[Size-2:], p.CRC)
	return b
}

// Decode parses a framed packet; it returns nil for short input. Integrity
// is judged by Handler.Check, not here, so callers can distinguish
// corruption from loss.
func Decode(b []byte) *Packet {
	if len(b) < Size {
		return nil
	}
	var p Packet
	p.Header = b[0]
	p.Seq = b[1]
	copy(p.Data[:], b[2:2+DataSize])
	p.CRC = binary.LittleEndian.Uint16(b[Size-2:])
	return &p
}

// Handler tracks in-order reception over one link.
type Handler struct {
	expected uint8
	last     Packet
	lastOK   bool
	status   Status
	retries  RetryCounter
}

// NewHandler returns a handler expecting sequence zero with the given retry
// ceiling.
func NewHandler(maxRetries int) *Handler {
	return &Handler{retries: RetryCounter{Max: maxRetries}}
}

// Check classifies a packet without mutating reception state: corrupted
// (bad framing byte or CRC), missing (sequence skipped), or ok.
func (h *Handler) Check(p Packet) Status {
	if p.Header != Sentinel {
		return StatusCorrupted
	}
	if p.computeCRC() != p.CRC {
		return StatusCorrupted
	}
	if p.Seq != h.expected {
		return StatusMissing
	}
	return StatusOK
}

// Receive applies a packet: on success it stores the packet, advances the
// expected sequence (wrapping at 256) and resets the retry counter.
func (h *Handler) Receive(p Packet) Status {
	h.status = h.Check(p)
	if h.status == StatusOK {
		h.last = p
		h.lastOK = true
		h.expected++
		h.retries.Reset()
	}
	return h.status
}

// RequestRetry records one retransmission request and reports whether the
// ceiling has been passed.
func (h *Handler) RequestRetry() Status {
	if h.retries.Request() == StatusRetryExceeded {
		return StatusRetryExceeded
	}
	return h.status
}

// Last returns the most recently accepted packet.
func (h *Handler) Last() (Packet, bool) { return h.last, h.lastOK }

// Expected reports the next sequence number the handler will accept.
func (h *Handler) Expected() uint8 { return h.expected }

// Retries reports consecutive retransmission requests since the last
// successful reception.
func (h *Handler) Retries() int { return h.retries.Count() }

// ResetRetries clears the retransmission counter.
func (h *Handler) ResetRetries() { h.retries.Reset() }

// ResetSequence rewinds the expected sequence to zero.
func (h *Handler) ResetSequence() { h.expected = 0 }
