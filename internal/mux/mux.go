package mux

import (
	"fmt"
	"sync"

	"fhsslink/internal/domain"
)

// PoolSize is the number of logical channels available for chunked
// transfers.
const PoolSize = 16

// Multiplexer splits payloads into fixed-size chunks and manages the
// logical channel pool. Sequence numbers run across the multiplexer's
// lifetime so a receiver can order chunks from interleaved transfers.
type Multiplexer struct {
	mu        sync.Mutex
	allocated uint16
	nextSeq   uint32
}

// NewMultiplexer returns a multiplexer with an empty channel pool.
func NewMultiplexer() *Multiplexer {
	return &Multiplexer{}
}

// AllocateChannel claims the lowest free channel in the pool. It returns
// ErrChannelsExhausted when all channels are in use.
func (m *Multiplexer) AllocateChannel() (uint8, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.allocateLocked()
}

func (m *Multiplexer) allocateLocked() (uint8, error) {
	for ch := uint8(0); ch < PoolSize; ch++ {
		if m.allocated&(1<<ch) == 0 {
			m.allocated |= 1 << ch
			return ch, nil
		}
	}
	return 0, domain.ErrChannelsExhausted
}

// ReleaseChannel returns a channel to the pool. Releasing a free or
// out-of-range channel is a no-op.
func (m *Multiplexer) ReleaseChannel(ch uint8) {
	if ch >= PoolSize {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.allocated &^= 1 << ch
}

// Allocated reports whether a channel is currently claimed.
func (m *Multiplexer) Allocated(ch uint8) bool {
	if ch >= PoolSize {
		return false
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.allocated&(1<<ch) != 0
}

// AvailableChannels returns the number of free channels in the pool.
func (m *Multiplexer) AvailableChannels() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	free := 0
	for ch := uint8(0); ch < PoolSize; ch++ {
		if m.allocated&(1<<ch) == 0 {
			free++
		}
	}
	return free
}

// CreateChunk builds a single chunk on the given channel. Payloads longer
// than ChunkPayloadSize are truncated; the CRC covers the chunk's payload
// bytes only.
func (m *Multiplexer) CreateChunk(ch uint8, payload []byte) domain.Chunk {
	if len(payload) > ChunkPayloadSize {
		payload = payload[:ChunkPayloadSize]
	}
	p := make([]byte, len(payload))
	copy(p, payload)

	m.mu.Lock()
	seq := m.nextSeq
	m.nextSeq++
	m.mu.Unlock()

	return domain.Chunk{
		Channel: ch,
		Seq:     seq,
		Payload: p,
		CRC:     ChunkCRC(p),
	}
}

// Split breaks a payload into chunks of at most ChunkPayloadSize bytes.
// Each window claims a channel from the pool for the duration of chunk
// creation and releases it immediately after, so a fully claimed pool
// surfaces as an allocation failure. An empty payload yields zero chunks.
func (m *Multiplexer) Split(payload []byte) ([]domain.Chunk, error) {
	var chunks []domain.Chunk
	for off := 0; off < len(payload); off += ChunkPayloadSize {
		end := off + ChunkPayloadSize
		if end > len(payload) {
			end = len(payload)
		}
		ch, err := m.AllocateChannel()
		if err != nil {
			return nil, fmt.Errorf("split payload at offset %d: %w", off, err)
		}
		chunks = append(chunks, m.CreateChunk(ch, payload[off:end]))
		m.ReleaseChannel(ch)
	}
	return chunks, nil
}

// Transmit splits a payload and writes the encoded chunks over the
// transport inside a single active transaction.
func (m *Multiplexer) Transmit(t domain.Transport, payload []byte) error {
	chunks, err := m.Split(payload)
	if err != nil {
		return err
	}
	t.SetActive(true)
	defer t.SetActive(false)
	for _, c := range chunks {
		if err := t.Write(EncodeChunk(c)); err != nil {
			return fmt.Errorf("transmit chunk %d: %w", c.Seq, err)
		}
	}
	return nil
}

// Reset frees every channel and restarts the sequence counter.
func (m *Multiplexer) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.allocated = 0
	m.nextSeq = 0
}
