// Package archivebuilder assembles synthetic DataCore archive bytes for
// tests: database.Parse is exercised the same way it would be against a
// real archive, without needing a multi-gigabyte fixture on disk. It is
// test-support infrastructure, not a writer for the on-disk format for
// production use.
package archivebuilder

import (
	"bytes"
	"encoding/binary"
	"math"

	"github.com/google/uuid"

	"github.com/dcoretech/dcore/database"
)

// Builder accumulates schema tables, pools, instance bytes, and main
// records, then serialises them into the exact section layout
// database.Parse expects.
type Builder struct {
	strings bytes.Buffer

	structs     []database.StructDef
	properties  []database.PropertyDef
	enums       []database.EnumDef
	enumOptions []database.EnumOption

	pools database.Pools

	instances map[int32][][]byte // structIndex -> ordered instance byte blobs

	mainRecords []database.MainRecord

	nameRefs map[string]database.StringRef
}

// New returns an empty Builder.
func New() *Builder {
	return &Builder{instances: make(map[int32][][]byte)}
}

// WriteString appends s to the string pool and returns a StringRef to it.
func (b *Builder) WriteString(s string) database.StringRef {
	off := b.strings.Len()
	b.strings.WriteString(s)
	return database.StringRef{Offset: uint32(off), Length: uint32(len(s))}
}

// AddStruct appends a struct definition (with no properties yet; call
// AddProperty with the returned index to add its own properties) and
// returns its struct index.
func (b *Builder) AddStruct(name string, parent int32) int32 {
	idx := int32(len(b.structs))
	b.structs = append(b.structs, database.StructDef{
		Name:               name,
		ParentIndex:        parent,
		FirstPropertyIndex: int32(len(b.properties)),
		PropertyCount:      0,
	})
	return idx
}

// AddProperty appends a property to the struct at structIdx. Properties
// for a given struct must be added contiguously (immediately after its
// AddStruct call and any of its own prior AddProperty calls) since the
// on-disk format addresses them by a (first, count) range.
func (b *Builder) AddProperty(structIdx int32, name string, dt database.DataType, conv database.Conversion, target int32) int32 {
	propIdx := int32(len(b.properties))
	b.properties = append(b.properties, database.PropertyDef{
		Name:        name,
		DataType:    dt,
		Conversion:  conv,
		TargetIndex: target,
	})
	b.structs[structIdx].PropertyCount++
	return propIdx
}

// AddEnum appends an enum definition and returns its enum index.
func (b *Builder) AddEnum(name string) int32 {
	idx := int32(len(b.enums))
	b.enums = append(b.enums, database.EnumDef{
		Name:             name,
		FirstOptionIndex: int32(len(b.enumOptions)),
		OptionCount:      0,
	})
	return idx
}

// AddEnumOption appends an option to the enum at enumIdx.
func (b *Builder) AddEnumOption(enumIdx int32, name string) int32 {
	optIdx := int32(len(b.enumOptions))
	b.enumOptions = append(b.enumOptions, database.EnumOption{Name: b.WriteString(name)})
	b.enums[enumIdx].OptionCount++
	return optIdx
}

// Pools returns the builder's value pools for direct population (e.g.
// append to Pools().Int32 for an Int32 array property's backing data).
func (b *Builder) Pools() *database.Pools { return &b.pools }

// AddInstance appends one instance's pre-encoded byte region for struct
// structIdx and returns its instance index. raw must be exactly
// stride(structIdx) bytes once every struct's properties are final,
// which the caller controls directly (see InstanceEncoder in encode.go).
func (b *Builder) AddInstance(structIdx int32, raw []byte) int32 {
	idx := int32(len(b.instances[structIdx]))
	b.instances[structIdx] = append(b.instances[structIdx], raw)
	return idx
}

// AddMainRecord appends a main-record index entry.
func (b *Builder) AddMainRecord(id uuid.UUID, fileName string, structIdx, instIdx int32) {
	b.mainRecords = append(b.mainRecords, database.MainRecord{
		ID:            id,
		FileName:      b.WriteString(fileName),
		StructIndex:   structIdx,
		InstanceIndex: instIdx,
	})
}

// Build serialises everything added so far into archive bytes ready for
// database.Parse.
func (b *Builder) Build() []byte {
	// Section 0: strings
	var strSec bytes.Buffer
	writeU32(&strSec, uint32(b.strings.Len()))
	strSec.Write(b.strings.Bytes())

	// Section 1: structs
	var structSec bytes.Buffer
	writeU32(&structSec, uint32(len(b.structs)))
	for _, s := range b.structs {
		nameRef := b.findOrWriteStructName(s.Name)
		writeU32(&structSec, nameRef.Offset)
		writeU32(&structSec, nameRef.Length)
		writeI32(&structSec, s.ParentIndex)
		writeI32(&structSec, s.FirstPropertyIndex)
		writeI32(&structSec, s.PropertyCount)
		writeU32(&structSec, s.FingerprintContribution)
	}

	// Section 2: properties
	var propSec bytes.Buffer
	writeU32(&propSec, uint32(len(b.properties)))
	for _, p := range b.properties {
		nameRef := b.findOrWriteStructName(p.Name)
		writeU32(&propSec, nameRef.Offset)
		writeU32(&propSec, nameRef.Length)
		propSec.WriteByte(byte(p.DataType))
		propSec.WriteByte(byte(p.Conversion))
		propSec.Write([]byte{0, 0})
		writeI32(&propSec, p.TargetIndex)
	}

	// Section 3: enums
	var enumSec bytes.Buffer
	writeU32(&enumSec, uint32(len(b.enums)))
	for _, e := range b.enums {
		nameRef := b.findOrWriteStructName(e.Name)
		writeU32(&enumSec, nameRef.Offset)
		writeU32(&enumSec, nameRef.Length)
		writeI32(&enumSec, e.FirstOptionIndex)
		writeI32(&enumSec, e.OptionCount)
	}

	// Section 4: enum options
	var enumOptSec bytes.Buffer
	writeU32(&enumOptSec, uint32(len(b.enumOptions)))
	for _, o := range b.enumOptions {
		writeU32(&enumOptSec, o.Name.Offset)
		writeU32(&enumOptSec, o.Name.Length)
	}

	// Section 5: primitive pools
	var primSec bytes.Buffer
	writeU32(&primSec, uint32(len(b.pools.Bool)))
	for _, v := range b.pools.Bool {
		if v {
			primSec.WriteByte(1)
		} else {
			primSec.WriteByte(0)
		}
	}
	writeU32(&primSec, uint32(len(b.pools.Int8)))
	for _, v := range b.pools.Int8 {
		primSec.WriteByte(byte(v))
	}
	writeU32(&primSec, uint32(len(b.pools.Uint8)))
	primSec.Write(b.pools.Uint8)
	writeU32(&primSec, uint32(len(b.pools.Int16)))
	for _, v := range b.pools.Int16 {
		writeU16(&primSec, uint16(v))
	}
	writeU32(&primSec, uint32(len(b.pools.Uint16)))
	for _, v := range b.pools.Uint16 {
		writeU16(&primSec, v)
	}
	writeU32(&primSec, uint32(len(b.pools.Int32)))
	for _, v := range b.pools.Int32 {
		writeI32(&primSec, v)
	}
	writeU32(&primSec, uint32(len(b.pools.Uint32)))
	for _, v := range b.pools.Uint32 {
		writeU32(&primSec, v)
	}
	writeU32(&primSec, uint32(len(b.pools.Int64)))
	for _, v := range b.pools.Int64 {
		writeU64(&primSec, uint64(v))
	}
	writeU32(&primSec, uint32(len(b.pools.Uint64)))
	for _, v := range b.pools.Uint64 {
		writeU64(&primSec, v)
	}
	writeU32(&primSec, uint32(len(b.pools.Single)))
	for _, v := range b.pools.Single {
		writeU32(&primSec, float32bits(v))
	}
	writeU32(&primSec, uint32(len(b.pools.Double)))
	for _, v := range b.pools.Double {
		writeU64(&primSec, float64bits(v))
	}
	writeU32(&primSec, uint32(len(b.pools.GUID)))
	for _, v := range b.pools.GUID {
		writeGUID(&primSec, v)
	}
	writeU32(&primSec, uint32(len(b.pools.String)))
	for _, v := range b.pools.String {
		writeU32(&primSec, v.Offset)
		writeU32(&primSec, v.Length)
	}
	writeU32(&primSec, uint32(len(b.pools.Locale)))
	for _, v := range b.pools.Locale {
		writeU32(&primSec, v.Offset)
		writeU32(&primSec, v.Length)
	}

	// Section 6: enum value pool
	var enumValSec bytes.Buffer
	writeU32(&enumValSec, uint32(len(b.pools.EnumValue)))
	for _, v := range b.pools.EnumValue {
		writeU32(&enumValSec, v.Offset)
		writeU32(&enumValSec, v.Length)
	}

	// Section 7: reference pool
	var refSec bytes.Buffer
	writeU32(&refSec, uint32(len(b.pools.Reference)))
	for _, v := range b.pools.Reference {
		writeGUID(&refSec, v)
	}

	// Section 8/9: strong/weak pointer pools
	var strongSec, weakSec bytes.Buffer
	writeU32(&strongSec, uint32(len(b.pools.StrongPointer)))
	for _, v := range b.pools.StrongPointer {
		writeI32(&strongSec, v.StructIndex)
		writeI32(&strongSec, v.InstanceIndex)
	}
	writeU32(&weakSec, uint32(len(b.pools.WeakPointer)))
	for _, v := range b.pools.WeakPointer {
		writeI32(&weakSec, v.StructIndex)
		writeI32(&weakSec, v.InstanceIndex)
	}

	// Section 10: instances, struct-index order
	var instSec bytes.Buffer
	writeU32(&instSec, uint32(len(b.structs)))
	for i := range b.structs {
		blobs := b.instances[int32(i)]
		writeU32(&instSec, uint32(len(blobs)))
		for _, blob := range blobs {
			instSec.Write(blob)
		}
	}

	// Section 11: main records
	var mainSec bytes.Buffer
	writeU32(&mainSec, uint32(len(b.mainRecords)))
	for _, r := range b.mainRecords {
		writeGUID(&mainSec, r.ID)
		writeU32(&mainSec, r.FileName.Offset)
		writeU32(&mainSec, r.FileName.Length)
		writeI32(&mainSec, r.StructIndex)
		writeI32(&mainSec, r.InstanceIndex)
	}

	sections := [][]byte{
		strSec.Bytes(),
		structSec.Bytes(),
		propSec.Bytes(),
		enumSec.Bytes(),
		enumOptSec.Bytes(),
		primSec.Bytes(),
		enumValSec.Bytes(),
		refSec.Bytes(),
		strongSec.Bytes(),
		weakSec.Bytes(),
		instSec.Bytes(),
		mainSec.Bytes(),
	}

	headerLen := 4 + 4 + 4 + len(sections)*16
	offset := uint64(headerLen)
	descs := make([]struct{ off, size uint64 }, len(sections))
	for i, s := range sections {
		descs[i] = struct{ off, size uint64 }{offset, uint64(len(s))}
		offset += uint64(len(s))
	}

	var out bytes.Buffer
	out.WriteString("DCOR")
	writeU32(&out, 1) // version
	writeU32(&out, uint32(len(sections)))
	for _, d := range descs {
		writeU64(&out, d.off)
		writeU64(&out, d.size)
	}
	for _, s := range sections {
		out.Write(s)
	}
	return out.Bytes()
}

// findOrWriteStructName returns a StringRef to name, writing it to the
// string pool the first time it is seen. A small dedup map keeps schema
// metadata strings (struct, property and enum names) from being written
// twice when the same name recurs; strings written through WriteString
// are not entered in that map and are never reused here.
func (b *Builder) findOrWriteStructName(name string) database.StringRef {
	if b.nameRefs == nil {
		b.nameRefs = make(map[string]database.StringRef)
	}
	if ref, ok := b.nameRefs[name]; ok {
		return ref
	}
	ref := b.WriteString(name)
	b.nameRefs[name] = ref
	return ref
}

func writeU16(buf *bytes.Buffer, v uint16) {
	var b [2]byte
	binary.LittleEndian.PutUint16(b[:], v)
	buf.Write(b[:])
}

func writeU32(buf *bytes.Buffer, v uint32) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	buf.Write(b[:])
}

func writeI32(buf *bytes.Buffer, v int32) {
	writeU32(buf, uint32(v))
}

func writeU64(buf *bytes.Buffer, v uint64) {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], v)
	buf.Write(b[:])
}

func writeGUID(buf *bytes.Buffer, id uuid.UUID) {
	// Mirrors cursor.Cursor.GUID's .NET-style layout, inverse direction.
	var b [16]byte
	b[0], b[1], b[2], b[3] = id[3], id[2], id[1], id[0]
	b[4], b[5] = id[5], id[4]
	b[6], b[7] = id[7], id[6]
	copy(b[8:], id[8:])
	buf.Write(b[:])
}

func float32bits(f float32) uint32 { return math.Float32bits(f) }

func float64bits(f float64) uint64 { return math.Float64bits(f) }
