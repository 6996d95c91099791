package transport

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fhsslink/internal/domain"
)

func TestWriteRequiresActiveTransaction(t *testing.T) {
	bus := NewBus()

	err := bus.Write([]byte{1, 2, 3})
	assert.ErrorIs(t, err, domain.ErrTransportInactive)
	assert.Zero(t, bus.Len())

	bus.SetActive(true)
	require.NoError(t, bus.Write([]byte{1, 2, 3}))
	assert.Equal(t, 3, bus.Len())
}

func TestWriteDiscardedWhileDisabled(t *testing.T) {
	bus := NewBus()
	bus.SetActive(true)
	bus.End()

	assert.ErrorIs(t, bus.Write([]byte{0xAA}), domain.ErrTransportInactive)
	assert.False(t, bus.Active())

	bus.Begin()
	require.NoError(t, bus.Write([]byte{0xAA}))
	assert.True(t, bus.Active())
}

func TestReadExactConsumesInOrder(t *testing.T) {
	bus := NewBus()
	bus.SetActive(true)
	require.NoError(t, bus.Write([]byte{1, 2, 3, 4, 5}))

	first, err := bus.ReadExact(2)
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2}, first)

	rest, err := bus.ReadExact(3)
	require.NoError(t, err)
	assert.Equal(t, []byte{3, 4, 5}, rest)
	assert.Zero(t, bus.Len())
}

func TestReadExactFailsShortWithoutConsuming(t *testing.T) {
	bus := NewBus()
	bus.SetActive(true)
	require.NoError(t, bus.Write([]byte{1, 2}))

	_, err := bus.ReadExact(5)
	assert.ErrorIs(t, err, domain.ErrShortRead)
	assert.Equal(t, 2, bus.Len())
}

func TestClearDropsCapturedBytes(t *testing.T) {
	bus := NewBus()
	bus.SetActive(true)
	require.NoError(t, bus.Write([]byte{9, 9}))

	bus.Clear()
	assert.Zero(t, bus.Len())
	_, err := bus.ReadExact(1)
	assert.Error(t, err)
}
