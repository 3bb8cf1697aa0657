package cursor

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestScalarReads(t *testing.T) {
	buf := []byte{
		0x01,                   // bool true
		0xFF,                   // int8 -1
		0x02, 0x00,             // uint16 2
		0xFF, 0xFF, 0xFF, 0xFF, // uint32 max (no sign extension)
	}
	c := New(buf)

	b, err := c.Bool()
	require.NoError(t, err)
	require.True(t, b)

	i8, err := c.Int8()
	require.NoError(t, err)
	require.Equal(t, int8(-1), i8)

	u16, err := c.Uint16()
	require.NoError(t, err)
	require.Equal(t, uint16(2), u16)

	u32, err := c.Uint32()
	require.NoError(t, err)
	require.Equal(t, uint32(0xFFFFFFFF), u32)
}

func TestEndOfBuffer(t *testing.T) {
	c := New([]byte{0x01, 0x02})
	_, err := c.Uint32()
	require.Error(t, err)
}

func TestAdvanceAndBytes(t *testing.T) {
	c := New([]byte{1, 2, 3, 4, 5})
	require.NoError(t, c.Advance(2))
	b, err := c.Bytes(2)
	require.NoError(t, err)
	require.Equal(t, []byte{3, 4}, b)
	require.Equal(t, 4, c.Offset())
	require.Equal(t, 1, c.Len())
}

func TestGUIDRoundTrip(t *testing.T) {
	// .NET GUID layout: Data1 (LE u32), Data2 (LE u16), Data3 (LE u16), Data4 (8 raw bytes)
	buf := []byte{
		0x04, 0x03, 0x02, 0x01, // Data1 = 0x01020304
		0x06, 0x05, // Data2 = 0x0506
		0x08, 0x07, // Data3 = 0x0708
		0x09, 0x0A, 0x0B, 0x0C, 0x0D, 0x0E, 0x0F, 0x10, // Data4
	}
	c := New(buf)
	id, err := c.GUID()
	require.NoError(t, err)
	require.Equal(t, "01020304-0506-0708-090a-0b0c0d0e0f10", id.String())
}
