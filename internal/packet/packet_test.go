package packet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const maxRetries = 3

func TestNewPacketFramesAndPads(t *testing.T) {
	data := []byte("Test packet data")
	p := New(0, data)

	assert.Equal(t, uint8(Sentinel), p.Header)
	assert.Equal(t, uint8(0), p.Seq)
	assert.Equal(t, data, p.Data[:len(data)])
	assert.Equal(t, make([]byte, DataSize-len(data)), p.Data[len(data):])
	assert.NotZero(t, p.CRC)
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	p := New(7, []byte("round trip"))
	decoded := Decode(p.Encode())

	require.NotNil(t, decoded)
	assert.Equal(t, p, *decoded)

	assert.Nil(t, Decode(p.Encode()[:Size-1]))
}

func TestCheckAcceptsValidPacket(t *testing.T) {
	h := NewHandler(maxRetries)
	assert.Equal(t, StatusOK, h.Check(New(0, []byte("Valid packet"))))
}

func TestCheckDetectsCorruptHeader(t *testing.T) {
	h := NewHandler(maxRetries)
	p := New(0, []byte("Test data"))
	p.Header = 0xBB

	assert.Equal(t, StatusCorrupted, h.Check(p))
}

func TestCheckDetectsCorruptCRC(t *testing.T) {
	h := NewHandler(maxRetries)
	p := New(0, []byte("Test data"))
	p.CRC ^= 0xFFFF

	assert.Equal(t, StatusCorrupted, h.Check(p))
}

func TestCheckDetectsCorruptData(t *testing.T) {
	h := NewHandler(maxRetries)
	p := New(0, []byte("Test data"))
	p.Data[5] ^= 0xFF

	assert.Equal(t, StatusCorrupted, h.Check(p))
}

func TestCheckDetectsSkippedSequence(t *testing.T) {
	h := NewHandler(maxRetries)
	require.Equal(t, StatusOK, h.Receive(New(0, []byte("Data"))))

	assert.Equal(t, StatusMissing, h.Check(New(2, []byte("Data"))))
}

func TestReceiveStoresPacketAndAdvances(t *testing.T) {
	h := NewHandler(maxRetries)
	data := []byte("Reception test")

	require.Equal(t, StatusOK, h.Receive(New(0, data)))

	last, ok := h.Last()
	require.True(t, ok)
	assert.Equal(t, data, last.Data[:len(data)])
	assert.Equal(t, uint8(1), h.Expected())
}

func TestSequentialReception(t *testing.T) {
	h := NewHandler(maxRetries)
	for i := 0; i < 10; i++ {
		require.Equal(t, StatusOK, h.Receive(New(uint8(i), []byte("Sequence"))))
	}
	assert.Equal(t, uint8(10), h.Expected())
}

func TestReceiveResetsRetryCount(t *testing.T) {
	h := NewHandler(maxRetries)
	h.RequestRetry()
	h.RequestRetry()
	require.Equal(t, 2, h.Retries())

	h.Receive(New(0, []byte("Data")))
	assert.Zero(t, h.Retries())
}

func TestRetryCeilingBoundary(t *testing.T) {
	h := NewHandler(maxRetries)

	for i := 0; i < maxRetries; i++ {
		assert.NotEqual(t, StatusRetryExceeded, h.RequestRetry())
		assert.Equal(t, i+1, h.Retries())
	}
	assert.Equal(t, StatusRetryExceeded, h.RequestRetry())
}

func TestRetryCounterReset(t *testing.T) {
	var c RetryCounter
	c.Max = maxRetries

	for i := 0; i <= maxRetries; i++ {
		c.Request()
	}
	require.True(t, c.Exceeded())

	c.Reset()
	assert.False(t, c.Exceeded())
	assert.Zero(t, c.Count())
}

func TestRecoveryFromCorruptPacket(t *testing.T) {
	h := NewHandler(maxRetries)
	require.Equal(t, StatusOK, h.Receive(New(0, []byte("Data"))))

	bad := New(1, []byte("Data"))
	bad.CRC ^= 0xFFFF
	require.Equal(t, StatusCorrupted, h.Receive(bad))

	assert.Equal(t, StatusOK, h.Receive(New(1, []byte("Data"))))
	assert.Equal(t, uint8(2), h.Expected())
}

func TestRecoveryFromMissingPacket(t *testing.T) {
	h := NewHandler(maxRetries)
	require.Equal(t, StatusOK, h.Receive(New(0, []byte("Data"))))

	require.Equal(t, StatusMissing, h.Check(New(2, []byte("Data"))))
	h.RequestRetry()

	require.Equal(t, StatusOK, h.Receive(New(1, []byte("Data"))))
	assert.Equal(t, uint8(2), h.Expected())
}

func TestAlternatingValidCorrupt(t *testing.T) {
	h := NewHandler(maxRetries)
	valid, corrupt := 0, 0

	for i := 0; i < 20; i++ {
		p := New(h.Expected(), []byte("Data"))
		if i%2 == 1 {
			p.CRC ^= 0x0001
		}
		if h.Receive(p) == StatusOK {
			valid++
		} else {
			corrupt++
		}
	}
	assert.Equal(t, 10, valid)
	assert.Equal(t, 10, corrupt)
}

func TestSequenceWrapsAt256(t *testing.T) {
	h := NewHandler(maxRetries)
	for i := 0; i < 256; i++ {
		require.Equal(t, StatusOK, h.Receive(New(uint8(i), []byte("Rollover"))))
	}
	assert.Equal(t, uint8(0), h.Expected())
}

func TestPayloadBounds(t *testing.T) {
	h := NewHandler(maxRetries)

	full := make([]byte, DataSize)
	for i := range full {
		full[i] = 0xAA
	}
	assert.Equal(t, StatusOK, h.Check(New(0, full)))
	assert.Equal(t, StatusOK, h.Check(New(0, nil)))
}
