package archivebuilder

import (
	"bytes"
	"math"

	"github.com/google/uuid"
)

// InstanceEncoder builds one instance's raw byte region in property
// declaration order, mirroring exactly what cursor.Cursor's readers
// expect on the other end. Tests use it instead of hand-rolling
// little-endian byte slices.
type InstanceEncoder struct {
	buf bytes.Buffer
}

// NewInstanceEncoder returns an empty encoder.
func NewInstanceEncoder() *InstanceEncoder { return &InstanceEncoder{} }

// Bytes returns the encoded instance region.
func (e *InstanceEncoder) Bytes() []byte { return e.buf.Bytes() }

func (e *InstanceEncoder) Bool(v bool) *InstanceEncoder {
	if v {
		e.buf.WriteByte(1)
	} else {
		e.buf.WriteByte(0)
	}
	return e
}

func (e *InstanceEncoder) Int8(v int8) *InstanceEncoder {
	e.buf.WriteByte(byte(v))
	return e
}

func (e *InstanceEncoder) Uint8(v uint8) *InstanceEncoder {
	e.buf.WriteByte(v)
	return e
}

func (e *InstanceEncoder) Int16(v int16) *InstanceEncoder {
	writeU16(&e.buf, uint16(v))
	return e
}

func (e *InstanceEncoder) Uint16(v uint16) *InstanceEncoder {
	writeU16(&e.buf, v)
	return e
}

func (e *InstanceEncoder) Int32(v int32) *InstanceEncoder {
	writeI32(&e.buf, v)
	return e
}

func (e *InstanceEncoder) Uint32(v uint32) *InstanceEncoder {
	writeU32(&e.buf, v)
	return e
}

func (e *InstanceEncoder) Int64(v int64) *InstanceEncoder {
	writeU64(&e.buf, uint64(v))
	return e
}

func (e *InstanceEncoder) Uint64(v uint64) *InstanceEncoder {
	writeU64(&e.buf, v)
	return e
}

func (e *InstanceEncoder) Single(v float32) *InstanceEncoder {
	writeU32(&e.buf, math.Float32bits(v))
	return e
}

func (e *InstanceEncoder) Double(v float64) *InstanceEncoder {
	writeU64(&e.buf, math.Float64bits(v))
	return e
}

func (e *InstanceEncoder) GUID(id uuid.UUID) *InstanceEncoder {
	writeGUID(&e.buf, id)
	return e
}

// StringRef writes an inline (offset, length) pair for a String, Locale,
// or EnumChoice scalar property.
func (e *InstanceEncoder) StringRef(offset, length uint32) *InstanceEncoder {
	writeU32(&e.buf, offset)
	writeU32(&e.buf, length)
	return e
}

// Reference writes a scalar Reference property's inline (guid,
// instanceIndex) pair.
func (e *InstanceEncoder) Reference(id uuid.UUID, instanceIndex int32) *InstanceEncoder {
	writeGUID(&e.buf, id)
	writeI32(&e.buf, instanceIndex)
	return e
}

// Pointer writes a scalar StrongPointer/WeakPointer property's inline
// (structIndex, instanceIndex) pair.
func (e *InstanceEncoder) Pointer(structIndex, instanceIndex int32) *InstanceEncoder {
	writeI32(&e.buf, structIndex)
	writeI32(&e.buf, instanceIndex)
	return e
}

// ArrayHeader writes an array property's inline (count, firstIndex) pair.
func (e *InstanceEncoder) ArrayHeader(count, firstIndex int32) *InstanceEncoder {
	writeI32(&e.buf, count)
	writeI32(&e.buf, firstIndex)
	return e
}

// Raw appends pre-encoded bytes verbatim — used for embedded (Class)
// scalar properties, whose bytes are just another InstanceEncoder's
// output inlined directly.
func (e *InstanceEncoder) Raw(b []byte) *InstanceEncoder {
	e.buf.Write(b)
	return e
}
