package database

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
)

// structFingerprint and enumFingerprint are stable hashes over the struct
// and enum tables, in declaration order. Reordering either table changes
// its fingerprint; permuting any value pool does not, since pools never
// enter the hash.
func structFingerprint(structs []StructDef) uint64 {
	h := xxhash.New()
	var scratch [20]byte
	for _, s := range structs {
		writeString(h, s.Name)
		binary.LittleEndian.PutUint32(scratch[0:4], uint32(s.ParentIndex))
		binary.LittleEndian.PutUint32(scratch[4:8], uint32(s.FirstPropertyIndex))
		binary.LittleEndian.PutUint32(scratch[8:12], uint32(s.PropertyCount))
		binary.LittleEndian.PutUint32(scratch[12:16], s.FingerprintContribution)
		_, _ = h.Write(scratch[:16])
	}
	return h.Sum64()
}

func enumFingerprint(enums []EnumDef, options []EnumOption) uint64 {
	h := xxhash.New()
	var scratch [12]byte
	for _, e := range enums {
		writeString(h, e.Name)
		binary.LittleEndian.PutUint32(scratch[0:4], uint32(e.FirstOptionIndex))
		binary.LittleEndian.PutUint32(scratch[4:8], uint32(e.OptionCount))
		_, _ = h.Write(scratch[:8])
		for i := int32(0); i < e.OptionCount; i++ {
			opt := options[e.FirstOptionIndex+i]
			binary.LittleEndian.PutUint32(scratch[0:4], opt.Name.Offset)
			binary.LittleEndian.PutUint32(scratch[4:8], opt.Name.Length)
			_, _ = h.Write(scratch[:8])
		}
	}
	return h.Sum64()
}

func writeString(h *xxhash.Digest, s string) {
	var lenBuf [4]byte
	binary.LittleEndian.PutUint32(lenBuf[:], uint32(len(s)))
	_, _ = h.Write(lenBuf[:])
	_, _ = h.Write([]byte(s))
}
