package bitset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetGetClear(t *testing.T) {
	b := New(20)
	assert.Equal(t, 20, b.Len())

	for _, i := range []int{0, 7, 8, 19} {
		require.NoError(t, b.Set(i))
	}
	for i := 0; i < 20; i++ {
		set, err := b.Get(i)
		require.NoError(t, err)
		want := i == 0 || i == 7 || i == 8 || i == 19
		assert.Equal(t, want, set, "bit %d", i)
	}
	assert.Equal(t, 4, b.Count())

	require.NoError(t, b.Clear(7))
	assert.False(t, b.IsSet(7))
	assert.True(t, b.IsSet(8))
	assert.Equal(t, 3, b.Count())
}

func TestOutOfRange(t *testing.T) {
	b := New(9)

	for _, i := range []int{-1, 9, 100} {
		assert.ErrorIs(t, b.Set(i), ErrOutOfRange)
		assert.ErrorIs(t, b.Clear(i), ErrOutOfRange)
		_, err := b.Get(i)
		assert.ErrorIs(t, err, ErrOutOfRange)
		assert.False(t, b.IsSet(i))
	}
	// a rejected write must not touch the padding bits of the last byte
	assert.Equal(t, 0, b.Count())
}

func TestEmpty(t *testing.T) {
	b := New(0)
	assert.Equal(t, 0, b.Len())
	assert.ErrorIs(t, b.Set(0), ErrOutOfRange)

	assert.Equal(t, 0, New(-3).Len())
}
