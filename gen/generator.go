// Package gen renders a parsed database's schema tables into a Go source
// tree: one value type, Read function, and narrowing interface per
// struct; one enum type and EnumParse wrapper per enum; a dispatch
// table; and the schema-identity constants runtime.ValidateSchema
// checks at startup. It never looks at value pools or instance bytes —
// its output depends only on schema shape, never on archive contents, so
// the same schema always produces byte-identical source.
package gen

import (
	"bytes"
	_ "embed"
	"fmt"
	"go/format"
	"text/template"

	"github.com/Masterminds/sprig/v3"

	"github.com/dcoretech/dcore/database"
)

//go:embed templates/package.go.tmpl
var packageTemplateSource string

var packageTemplate = template.Must(
	template.New("package.go.tmpl").Funcs(sprig.TxtFuncMap()).Parse(packageTemplateSource),
)

// Options configures one Generate call.
type Options struct {
	// PackageName is the Go package name (and directory name) the
	// generated file declares, e.g. "gameitems".
	PackageName string
	// DispatcherName overrides the generated dispatch function's name.
	// Defaults to "Dispatch".
	DispatcherName string
	// EmitManifest additionally produces a Manifest describing every
	// generated struct and enum and which file it landed in.
	EmitManifest bool
}

// File is one generated source file: a path relative to the output
// directory and its gofmt'd contents.
type File struct {
	Path     string
	Contents []byte
}

// Result is everything Generate produced.
type Result struct {
	Files    []File
	Manifest *Manifest
}

// generator holds the one Database being rendered plus the name caches
// every field-planning helper consults, so a struct or enum index never
// needs to be resolved to a Go name more than once.
type generator struct {
	db           *database.Database
	structNames  map[int32]string
	structIfaces map[int32]string
	structConsts map[int32]string
	enums        map[int32]enumRefPlan
}

// enumRefPlan is the subset of an enum's rendered shape every field plan
// referencing it needs: its Go type name, the name-to-value lookup map,
// and the Unknown fallback constant.
type enumRefPlan struct {
	Name        string
	MapVarName  string
	UnknownName string
}

// Generate walks db's struct and enum tables and renders one Go source
// file implementing opts.PackageName.
func Generate(db *database.Database, opts Options) (Result, error) {
	if opts.PackageName == "" {
		return Result{}, fmt.Errorf("gen: PackageName is required")
	}
	dispatcherName := opts.DispatcherName
	if dispatcherName == "" {
		dispatcherName = "Dispatch"
	}

	g := &generator{
		db:           db,
		structNames:  make(map[int32]string),
		structIfaces: make(map[int32]string),
		structConsts: make(map[int32]string),
		enums:        make(map[int32]enumRefPlan),
	}
	if err := g.primeNames(); err != nil {
		return Result{}, err
	}

	data, err := g.buildTemplateData(opts.PackageName, dispatcherName)
	if err != nil {
		return Result{}, err
	}

	var buf bytes.Buffer
	if err := packageTemplate.Execute(&buf, data); err != nil {
		return Result{}, fmt.Errorf("gen: render template: %w", err)
	}

	formatted, err := format.Source(buf.Bytes())
	if err != nil {
		return Result{}, fmt.Errorf("gen: gofmt generated source: %w", err)
	}

	result := Result{
		Files: []File{{Path: opts.PackageName + ".go", Contents: formatted}},
	}
	if opts.EmitManifest {
		result.Manifest = buildManifest(db, data, result.Files[0].Path)
	}
	return result, nil
}

// primeNames resolves every struct and enum's Go-facing names up front,
// so field planning never needs to re-derive them mid-walk.
func (g *generator) primeNames() error {
	for i := 0; i < g.db.StructCount(); i++ {
		sd, err := g.db.Struct(int32(i))
		if err != nil {
			return err
		}
		name := exportedName(sd.Name)
		g.structNames[int32(i)] = name
		g.structIfaces[int32(i)] = name + "Ref"
		g.structConsts[int32(i)] = "Struct" + name
	}
	for i := 0; i < g.db.EnumCount(); i++ {
		ed, err := g.db.Enum(int32(i))
		if err != nil {
			return err
		}
		name := exportedName(ed.Name)
		g.enums[int32(i)] = enumRefPlan{
			Name:        name,
			MapVarName:  unexportedName(name) + "ByName",
			UnknownName: name + "Unknown",
		}
	}
	return nil
}

func (g *generator) structGoName(idx int32) (string, error) {
	name, ok := g.structNames[idx]
	if !ok {
		return "", fmt.Errorf("gen: struct index %d out of range", idx)
	}
	return name, nil
}

func (g *generator) structInterfaceName(idx int32) (string, error) {
	name, ok := g.structIfaces[idx]
	if !ok {
		return "", fmt.Errorf("gen: struct index %d out of range", idx)
	}
	return name, nil
}

func (g *generator) structConstName(idx int32) (string, error) {
	name, ok := g.structConsts[idx]
	if !ok {
		return "", fmt.Errorf("gen: struct index %d out of range", idx)
	}
	return name, nil
}

func (g *generator) enumRef(idx int32) (enumRefPlan, error) {
	ep, ok := g.enums[idx]
	if !ok {
		return enumRefPlan{}, fmt.Errorf("gen: enum index %d out of range", idx)
	}
	return ep, nil
}
