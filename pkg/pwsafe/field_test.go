package pwsafe

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHolderSetFieldReplacesInPlace(t *testing.T) {
	var h Holder
	h.Add(0x01, []byte("a"))
	h.Add(0x02, []byte("b"))
	h.Add(0x03, []byte("c"))

	h.SetField(0x02, []byte("b2"))

	require.Equal(t, 3, h.Count())
	f := h.FieldByIndex(1)
	require.Equal(t, byte(0x02), f.Type())
	require.Equal(t, "b2", f.Text())
}

func TestHolderSetFieldAppendsWhenAbsent(t *testing.T) {
	var h Holder
	h.Add(0x01, []byte("a"))
	h.SetField(0x05, []byte("new"))

	require.Equal(t, 2, h.Count())
	require.Equal(t, "new", h.FieldByIndex(1).Text())
}

func TestHolderRemoveFieldDropsAllOccurrences(t *testing.T) {
	var h Holder
	h.Add(0x01, []byte("a"))
	h.Add(0x02, []byte("b"))
	h.Add(0x01, []byte("c"))

	h.RemoveField(0x01)

	require.Equal(t, 1, h.Count())
	require.False(t, h.HasField(0x01))
}

func TestFieldByTypeNotFound(t *testing.T) {
	var h Holder
	_, err := h.FieldByType(0x09)
	require.ErrorIs(t, err, errFieldNotFound)
}

func TestFieldUnknownPayloadLengthTolerated(t *testing.T) {
	f := NewField(0x42, []byte{})
	require.Equal(t, uint16(0), f.Uint16())
	require.Equal(t, uint32(0), f.Uint32())
	require.Equal(t, "", f.Text())
}
