package gen

import "github.com/dcoretech/dcore/database"

// Manifest describes one Generate call's output: every struct and enum
// rendered, its fingerprint contribution, and which output file it
// landed in. Adapted from the request-list-folded-into-one-object shape
// turbo/snapshotsync's download manifest uses for its own per-item
// descriptors — here the items are generated declarations, not segment
// downloads.
type Manifest struct {
	Package        string               `json:"package"`
	StructCount    int                  `json:"structCount"`
	EnumCount      int                  `json:"enumCount"`
	Structs        []StructManifestItem `json:"structs"`
	Enums          []EnumManifestItem   `json:"enums"`
}

// StructManifestItem is one struct's manifest entry.
type StructManifestItem struct {
	Index                   int32  `json:"index"`
	Name                    string `json:"name"`
	ParentIndex             int32  `json:"parentIndex"`
	FingerprintContribution uint32 `json:"fingerprintContribution"`
	File                    string `json:"file"`
}

// EnumManifestItem is one enum's manifest entry.
type EnumManifestItem struct {
	Index       int32    `json:"index"`
	Name        string   `json:"name"`
	OptionCount int32    `json:"optionCount"`
	Options     []string `json:"options"`
	File        string   `json:"file"`
}

func buildManifest(db *database.Database, data templateData, file string) *Manifest {
	m := &Manifest{
		Package:     data.PackageName,
		StructCount: data.StructCount,
		EnumCount:   data.EnumCount,
	}
	for i, sd := range data.Structs {
		def, err := db.Struct(int32(i))
		if err != nil {
			continue
		}
		m.Structs = append(m.Structs, StructManifestItem{
			Index:                   int32(i),
			Name:                    sd.Name,
			ParentIndex:             def.ParentIndex,
			FingerprintContribution: def.FingerprintContribution,
			File:                    file,
		})
	}
	for i, ed := range data.Enums {
		opts := make([]string, 0, len(ed.Options))
		for _, o := range ed.Options {
			opts = append(opts, o.Text)
		}
		m.Enums = append(m.Enums, EnumManifestItem{
			Index:       int32(i),
			Name:        ed.Name,
			OptionCount: int32(len(ed.Options)),
			Options:     opts,
			File:        file,
		})
	}
	return m
}
