package mux

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fhsslink/internal/domain"
	"fhsslink/internal/transport"
)

func TestAllocateLowestFreeChannel(t *testing.T) {
	m := NewMultiplexer()

	ch0, err := m.AllocateChannel()
	require.NoError(t, err)
	assert.Equal(t, uint8(0), ch0)

	ch1, err := m.AllocateChannel()
	require.NoError(t, err)
	assert.Equal(t, uint8(1), ch1)

	m.ReleaseChannel(ch0)
	ch, err := m.AllocateChannel()
	require.NoError(t, err)
	assert.Equal(t, uint8(0), ch, "released channel is reused first")
}

func TestPoolExhaustion(t *testing.T) {
	m := NewMultiplexer()
	for i := 0; i < PoolSize; i++ {
		_, err := m.AllocateChannel()
		require.NoError(t, err)
	}
	require.Zero(t, m.AvailableChannels())

	_, err := m.AllocateChannel()
	assert.ErrorIs(t, err, domain.ErrChannelsExhausted)

	m.ReleaseChannel(5)
	assert.Equal(t, 1, m.AvailableChannels())
	ch, err := m.AllocateChannel()
	require.NoError(t, err)
	assert.Equal(t, uint8(5), ch)
}

func TestAllocatedAndAvailableTracking(t *testing.T) {
	m := NewMultiplexer()
	assert.Equal(t, PoolSize, m.AvailableChannels())
	assert.False(t, m.Allocated(3))

	ch, err := m.AllocateChannel()
	require.NoError(t, err)
	assert.True(t, m.Allocated(ch))
	assert.Equal(t, PoolSize-1, m.AvailableChannels())

	assert.False(t, m.Allocated(PoolSize), "out-of-range channel")
}

func TestCreateChunk(t *testing.T) {
	m := NewMultiplexer()
	payload := []byte("Chunk payload")

	c := m.CreateChunk(2, payload)
	assert.Equal(t, uint8(2), c.Channel)
	assert.Zero(t, c.Seq)
	assert.Equal(t, payload, c.Payload)
	assert.Equal(t, ChunkCRC(payload), c.CRC)

	next := m.CreateChunk(2, payload)
	assert.Equal(t, uint32(1), next.Seq, "sequence counter advances")
}

func TestCreateChunkClampsOversizedPayload(t *testing.T) {
	m := NewMultiplexer()
	payload := bytes.Repeat([]byte{0x55}, ChunkPayloadSize+10)

	c := m.CreateChunk(0, payload)
	assert.Len(t, c.Payload, ChunkPayloadSize)
	assert.Equal(t, ChunkCRC(payload[:ChunkPayloadSize]), c.CRC)
}

func TestSplitWindowsPayload(t *testing.T) {
	m := NewMultiplexer()
	payload := make([]byte, 100)
	for i := range payload {
		payload[i] = byte(i)
	}

	chunks, err := m.Split(payload)
	require.NoError(t, err)
	require.Len(t, chunks, 4)

	assert.Len(t, chunks[0].Payload, 32)
	assert.Len(t, chunks[1].Payload, 32)
	assert.Len(t, chunks[2].Payload, 32)
	assert.Len(t, chunks[3].Payload, 4)

	for i, c := range chunks {
		assert.Equal(t, uint32(i), c.Seq)
	}
	assert.Equal(t, PoolSize, m.AvailableChannels(), "split returns its channels")
}

func TestSplitEmptyPayload(t *testing.T) {
	m := NewMultiplexer()
	chunks, err := m.Split(nil)
	require.NoError(t, err)
	assert.Empty(t, chunks)
}

func TestSplitFailsWhenPoolIsClaimed(t *testing.T) {
	m := NewMultiplexer()
	for i := 0; i < PoolSize; i++ {
		_, err := m.AllocateChannel()
		require.NoError(t, err)
	}

	_, err := m.Split([]byte("payload"))
	assert.ErrorIs(t, err, domain.ErrChannelsExhausted)
}

func TestChunkEncodeDecodeRoundTrip(t *testing.T) {
	m := NewMultiplexer()
	c := m.CreateChunk(7, []byte("wire format"))

	raw := EncodeChunk(c)
	require.Len(t, raw, ChunkSize)

	decoded := DecodeChunk(raw)
	require.NotNil(t, decoded)
	assert.Equal(t, c, *decoded)

	assert.Nil(t, DecodeChunk(raw[:ChunkSize-1]))

	bad := append([]byte(nil), raw...)
	bad[1] = ChunkPayloadSize + 1
	assert.Nil(t, DecodeChunk(bad), "length byte past capacity")
}

func TestReceiveRejectsCorruptChunk(t *testing.T) {
	m := NewMultiplexer()
	d := NewDemultiplexer()

	c := m.CreateChunk(0, []byte("intact"))
	require.NoError(t, d.Receive(c))

	bad := m.CreateChunk(0, []byte("damaged"))
	bad.Payload[0] ^= 0xFF
	assert.ErrorIs(t, d.Receive(bad), domain.ErrCorruptChunk)
	assert.Equal(t, 1, d.Count(), "corrupt chunk is dropped")
}

func TestReassembleInOrder(t *testing.T) {
	m := NewMultiplexer()
	d := NewDemultiplexer()
	payload := bytes.Repeat([]byte("abcdefgh"), 12) // 96 bytes

	chunks, err := m.Split(payload)
	require.NoError(t, err)
	for _, c := range chunks {
		require.NoError(t, d.Receive(c))
	}

	buf := make([]byte, len(payload))
	n, err := d.Reassemble(buf)
	require.NoError(t, err)
	assert.Equal(t, payload, buf[:n])
}

func TestReassembleOutOfOrder(t *testing.T) {
	m := NewMultiplexer()
	d := NewDemultiplexer()
	payload := make([]byte, 100)
	for i := range payload {
		payload[i] = byte(i * 3)
	}

	chunks, err := m.Split(payload)
	require.NoError(t, err)

	// Deliver in reverse.
	for i := len(chunks) - 1; i >= 0; i-- {
		require.NoError(t, d.Receive(chunks[i]))
	}
	assert.False(t, d.HasGap(), "reordering is not a gap")

	buf := make([]byte, len(payload))
	n, err := d.Reassemble(buf)
	require.NoError(t, err)
	assert.Equal(t, payload, buf[:n])
}

func TestGapDetection(t *testing.T) {
	m := NewMultiplexer()
	d := NewDemultiplexer()

	chunks, err := m.Split(make([]byte, 4*ChunkPayloadSize))
	require.NoError(t, err)

	require.NoError(t, d.Receive(chunks[0]))
	require.NoError(t, d.Receive(chunks[3]))
	require.NoError(t, d.Receive(chunks[1]))

	assert.True(t, d.HasGap())
	assert.Equal(t, []uint32{2}, d.Missing())

	require.NoError(t, d.Receive(chunks[2]))
	assert.False(t, d.HasGap())
	assert.Nil(t, d.Missing())
}

func TestReassembleBufferTooSmall(t *testing.T) {
	m := NewMultiplexer()
	d := NewDemultiplexer()

	chunks, err := m.Split(make([]byte, 64))
	require.NoError(t, err)
	for _, c := range chunks {
		require.NoError(t, d.Receive(c))
	}

	buf := make([]byte, 63)
	_, err = d.Reassemble(buf)
	assert.ErrorIs(t, err, domain.ErrBufferTooSmall)
}

func TestDemuxReset(t *testing.T) {
	m := NewMultiplexer()
	d := NewDemultiplexer()
	require.NoError(t, d.Receive(m.CreateChunk(0, []byte("stale"))))

	d.Reset()
	assert.Zero(t, d.Count())

	n, err := d.Reassemble(make([]byte, 8))
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestMuxReset(t *testing.T) {
	m := NewMultiplexer()
	_, err := m.AllocateChannel()
	require.NoError(t, err)
	m.CreateChunk(0, []byte("bump sequence"))

	m.Reset()
	assert.Equal(t, PoolSize, m.AvailableChannels())
	assert.Zero(t, m.CreateChunk(0, []byte("fresh")).Seq)
}

func TestTransmitOverBus(t *testing.T) {
	m := NewMultiplexer()
	d := NewDemultiplexer()
	bus := transport.NewBus()

	payload := []byte("Payload crossing the shared bus in several chunks!")
	require.NoError(t, m.Transmit(bus, payload))
	assert.False(t, bus.Active(), "transaction released after transmit")

	for {
		raw, err := bus.ReadExact(ChunkSize)
		if err != nil {
			assert.ErrorIs(t, err, domain.ErrShortRead)
			break
		}
		c := DecodeChunk(raw)
		require.NotNil(t, c)
		require.NoError(t, d.Receive(*c))
	}

	buf := make([]byte, len(payload))
	n, err := d.Reassemble(buf)
	require.NoError(t, err)
	assert.Equal(t, payload, buf[:n])
}
