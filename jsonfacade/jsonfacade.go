// Package jsonfacade renders a materialised DataCore value tree to JSON:
// a null reference becomes JSON null, a reference into another archive
// file becomes a {"$ref", "RecordId"} stub instead of being followed,
// and a reference that closes a cycle back onto its own path becomes a
// {"$circularRef"} marker instead of recursing forever. It walks
// whatever value a generated Dispatch function or Read function
// produced, via reflection, so it never needs to import the generated
// package itself.
package jsonfacade

import (
	"github.com/goccy/go-json"

	"github.com/dcoretech/dcore/runtime"
)

// ToTree resolves value into a plain map[string]any / []any / scalar
// tree suitable for any JSON encoder, applying the null/external-ref/
// circular-ref contract at every *runtime.LazyRef it finds along the
// way.
func ToTree(rt *runtime.Runtime, value any) (any, error) {
	w := newWalker(rt)
	return w.walk(value)
}

// Marshal resolves value via ToTree and encodes it with goccy/go-json.
func Marshal(rt *runtime.Runtime, value any) ([]byte, error) {
	tree, err := ToTree(rt, value)
	if err != nil {
		return nil, err
	}
	return json.Marshal(tree)
}

// MarshalIndent is Marshal with indentation, for human-facing output.
func MarshalIndent(rt *runtime.Runtime, value any, prefix, indent string) ([]byte, error) {
	tree, err := ToTree(rt, value)
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(tree, prefix, indent)
}

// MarshalRecord renders one main record's identity alongside its
// resolved data, the shape cmd/dcoredump writes one file per record.
func MarshalRecord(rt *runtime.Runtime, rec runtime.TypedRecord) ([]byte, error) {
	data, err := ToTree(rt, rec.Data)
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(map[string]any{
		"RecordId": rec.ID,
		"FileName": rec.FileName,
		"Type":     rec.Name,
		"Data":     data,
	}, "", "  ")
}
