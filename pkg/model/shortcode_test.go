package model

import (
	"math/rand"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShortcodeKnownValues(t *testing.T) {
	tests := []struct {
		id   string
		code string
	}{
		{"1", "B"},
		{"64", "BA"},
		{"1270593720437182847", "BGiDkHAgBF_"},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			code, err := CodeFromID(tt.id)
			require.NoError(t, err)
			assert.Equal(t, tt.code, code)

			id, err := IDFromCode(tt.code)
			require.NoError(t, err)
			assert.Equal(t, tt.id, id)
		})
	}
}

func TestShortcodeRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 5000; i++ {
		n := uint64(rng.Int63n(1_000_000_000_000_000))
		got, err := DecodeShortcode(EncodeShortcode(n))
		require.NoError(t, err)
		require.Equal(t, n, got)
	}

	for _, n := range []uint64{1, 63, 64, 4095, 4096, 1_000_000_000_000_000, 1<<63 - 1, 1<<64 - 1} {
		got, err := DecodeShortcode(EncodeShortcode(n))
		require.NoError(t, err)
		assert.Equal(t, n, got, strconv.FormatUint(n, 10))
	}
}

func TestShortcodeZeroIsEmpty(t *testing.T) {
	code, err := CodeFromID("0")
	require.NoError(t, err)
	assert.Equal(t, "", code)

	id, err := IDFromCode("")
	require.NoError(t, err)
	assert.Equal(t, "0", id)
}

func TestCodeFromCompoundID(t *testing.T) {
	plain, err := CodeFromID("1270593720437182847")
	require.NoError(t, err)

	compound, err := CodeFromID("1270593720437182847_3")
	require.NoError(t, err)
	assert.Equal(t, plain, compound)
}

func TestShortcodeErrors(t *testing.T) {
	_, err := CodeFromID("abc")
	assert.Error(t, err)

	_, err = IDFromCode("BGi!")
	assert.Error(t, err)

	_, err = DecodeShortcode("__________________")
	assert.Error(t, err)
}
