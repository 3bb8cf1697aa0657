// Package cursor implements a bounds-checked, little-endian cursor over an
// immutable byte slice. It is
// the one place in the repository that touches raw archive bytes directly;
// everything above it (database, runtime, generated code) goes through a
// Cursor.
package cursor

import (
	"encoding/binary"
	"math"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/dcoretech/dcore/errs"
)

// Cursor is a cheap-to-copy view over a byte slice plus a current offset.
// It carries no allocation of its own: copying a Cursor by value is the
// idiomatic way to branch a read (e.g. to peek ahead without consuming).
type Cursor struct {
	buf []byte
	off int
}

// New returns a Cursor positioned at the start of buf.
func New(buf []byte) Cursor {
	return Cursor{buf: buf}
}

// At returns a Cursor over the same backing slice positioned at byte
// offset off. It does not validate off; the first read from the returned
// cursor will fail with ErrEndOfBuffer if off is out of range.
func At(buf []byte, off int) Cursor {
	return Cursor{buf: buf, off: off}
}

// Offset returns the cursor's current byte offset.
func (c Cursor) Offset() int { return c.off }

// Len returns the number of bytes remaining to be read.
func (c Cursor) Len() int { return len(c.buf) - c.off }

// Advance moves the cursor forward by n bytes without reading them.
// It fails with ErrEndOfBuffer if that would pass the end of the slice.
func (c *Cursor) Advance(n int) error {
	if n < 0 || c.off+n > len(c.buf) {
		return errors.Wrapf(errs.ErrEndOfBuffer, "advance(%d) at offset %d of %d", n, c.off, len(c.buf))
	}
	c.off += n
	return nil
}

func (c *Cursor) take(n int) ([]byte, error) {
	if n < 0 || c.off+n > len(c.buf) {
		return nil, errors.Wrapf(errs.ErrEndOfBuffer, "read(%d) at offset %d of %d", n, c.off, len(c.buf))
	}
	b := c.buf[c.off : c.off+n]
	c.off += n
	return b, nil
}

// Bytes returns a bounds-checked, zero-copy view of the next n bytes
// without interpreting them, advancing the cursor past them.
func (c *Cursor) Bytes(n int) ([]byte, error) {
	return c.take(n)
}

// Bool reads one byte and interprets it as a boolean (nonzero is true).
func (c *Cursor) Bool() (bool, error) {
	b, err := c.take(1)
	if err != nil {
		return false, err
	}
	return b[0] != 0, nil
}

// Int8 reads one signed byte.
func (c *Cursor) Int8() (int8, error) {
	b, err := c.take(1)
	if err != nil {
		return 0, err
	}
	return int8(b[0]), nil
}

// Uint8 reads one unsigned byte.
func (c *Cursor) Uint8() (uint8, error) {
	b, err := c.take(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

// Int16 reads a little-endian signed 16-bit integer.
func (c *Cursor) Int16() (int16, error) {
	b, err := c.take(2)
	if err != nil {
		return 0, err
	}
	return int16(binary.LittleEndian.Uint16(b)), nil
}

// Uint16 reads a little-endian unsigned 16-bit integer.
func (c *Cursor) Uint16() (uint16, error) {
	b, err := c.take(2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b), nil
}

// Int32 reads a little-endian signed 32-bit integer.
func (c *Cursor) Int32() (int32, error) {
	b, err := c.take(4)
	if err != nil {
		return 0, err
	}
	return int32(binary.LittleEndian.Uint32(b)), nil
}

// Uint32 reads a little-endian unsigned 32-bit integer. Does not sign
// extend: a value with the high bit set reads back as a large positive
// number.
func (c *Cursor) Uint32() (uint32, error) {
	b, err := c.take(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

// Int64 reads a little-endian signed 64-bit integer.
func (c *Cursor) Int64() (int64, error) {
	b, err := c.take(8)
	if err != nil {
		return 0, err
	}
	return int64(binary.LittleEndian.Uint64(b)), nil
}

// Uint64 reads a little-endian unsigned 64-bit integer.
func (c *Cursor) Uint64() (uint64, error) {
	b, err := c.take(8)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b), nil
}

// Single reads a little-endian IEEE-754 32-bit float.
func (c *Cursor) Single() (float32, error) {
	v, err := c.Uint32()
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(v), nil
}

// Double reads a little-endian IEEE-754 64-bit float.
func (c *Cursor) Double() (float64, error) {
	v, err := c.Uint64()
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(v), nil
}

// GUID reads a 16-byte little-endian GUID, as emitted by the archive's
// native serialiser. uuid.UUID stores bytes big-endian-wise internally
// for its canonical string form, so the four leading fields are
// byte-swapped to match .NET/COM GUID layout, which is what the archive
// format uses for record ids.
func (c *Cursor) GUID() (uuid.UUID, error) {
	b, err := c.take(16)
	if err != nil {
		return uuid.UUID{}, err
	}
	var id uuid.UUID
	// Data1 (4 bytes, LE), Data2 (2 bytes, LE), Data3 (2 bytes, LE), Data4 (8 bytes, BE)
	id[0], id[1], id[2], id[3] = b[3], b[2], b[1], b[0]
	id[4], id[5] = b[5], b[4]
	id[6], id[7] = b[7], b[6]
	copy(id[8:], b[8:16])
	return id, nil
}
