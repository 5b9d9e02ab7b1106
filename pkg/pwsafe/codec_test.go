package pwsafe

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestUint32RoundTrip(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	buf := make([]byte, 4)
	for i := 0; i < 1000; i++ {
		v := r.Uint32()
		WriteUint32LE(buf, v)
		require.Equal(t, v, ReadUint32LE(buf))
	}
}

func TestUint16RoundTrip(t *testing.T) {
	r := rand.New(rand.NewSource(2))
	buf := make([]byte, 2)
	for i := 0; i < 1000; i++ {
		v := uint16(r.Uint32())
		WriteUint16LE(buf, v)
		require.Equal(t, v, ReadUint16LE(buf))
	}
}
