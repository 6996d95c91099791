package mux

import (
	"sort"
	"sync"

	"fhsslink/internal/domain"
)

// Demultiplexer collects chunks that may arrive in any order and
// reassembles them into the original payload. Corrupt chunks are rejected
// at the door so reassembly only ever sees verified payloads.
type Demultiplexer struct {
	mu     sync.Mutex
	chunks []domain.Chunk
}

// NewDemultiplexer returns an empty demultiplexer.
func NewDemultiplexer() *Demultiplexer {
	return &Demultiplexer{}
}

// Receive verifies and buffers one chunk. A CRC mismatch returns
// ErrCorruptChunk and the chunk is dropped.
func (d *Demultiplexer) Receive(c domain.Chunk) error {
	if c.CRC != ChunkCRC(c.Payload) {
		return domain.ErrCorruptChunk
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.chunks = append(d.chunks, c)
	return nil
}

// Count returns the number of buffered chunks.
func (d *Demultiplexer) Count() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.chunks)
}

// sortedLocked returns the buffered chunks ordered by sequence number.
func (d *Demultiplexer) sortedLocked() []domain.Chunk {
	out := make([]domain.Chunk, len(d.chunks))
	copy(out, d.chunks)
	sort.Slice(out, func(i, j int) bool { return out[i].Seq < out[j].Seq })
	return out
}

// HasGap reports whether the buffered sequence numbers are
// non-contiguous. Chunks are ordered before the scan, so out-of-order
// arrival alone never registers as a gap.
func (d *Demultiplexer) HasGap() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	chunks := d.sortedLocked()
	for i := 1; i < len(chunks); i++ {
		if chunks[i].Seq != chunks[i-1].Seq+1 {
			return true
		}
	}
	return false
}

// Missing lists the sequence numbers absent from the buffered range, in
// ascending order. A gap-free buffer yields nil.
func (d *Demultiplexer) Missing() []uint32 {
	d.mu.Lock()
	defer d.mu.Unlock()
	chunks := d.sortedLocked()
	var missing []uint32
	for i := 1; i < len(chunks); i++ {
		for seq := chunks[i-1].Seq + 1; seq < chunks[i].Seq; seq++ {
			missing = append(missing, seq)
		}
	}
	return missing
}

// Reassemble concatenates the buffered payloads in sequence order into
// buf and returns the assembled length. It fails with ErrBufferTooSmall
// before writing anything if buf cannot hold the full payload. The buffer
// of chunks is left intact; call Reset to start a new transfer.
func (d *Demultiplexer) Reassemble(buf []byte) (int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	chunks := d.sortedLocked()

	total := 0
	for _, c := range chunks {
		total += len(c.Payload)
	}
	if total > len(buf) {
		return 0, domain.ErrBufferTooSmall
	}

	off := 0
	for _, c := range chunks {
		off += copy(buf[off:], c.Payload)
	}
	return off, nil
}

// Reset discards all buffered chunks.
func (d *Demultiplexer) Reset() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.chunks = nil
}
