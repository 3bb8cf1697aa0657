package database

import "github.com/google/uuid"

// MainRecord is one top-level, GUID-addressable entry in the archive's
// main-record index: a record id, the struct/instance pair identifying
// its materialised data, and a file-name string (its original source
// path within the containing game-data tree).
type MainRecord struct {
	ID             uuid.UUID
	FileName       StringRef
	StructIndex    int32
	InstanceIndex  int32
}
