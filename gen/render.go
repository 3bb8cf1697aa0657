package gen

import (
	"fmt"
	"strings"
)

// templateData is everything package.go.tmpl needs to render one
// generated source file.
type templateData struct {
	PackageName    string
	DispatcherName string
	Structs           []structData
	Enums             []enumData
	StructCount       int
	EnumCount         int
	StructFingerprint uint64
	EnumFingerprint   uint64
	UsesUUID          bool
}

// structData is one struct's fully rendered shape: its own fields (for
// the type body, the narrowing interface, and the getters), its full
// ancestor-aware read sequence, and the names every other template
// section refers to it by.
type structData struct {
	Name           string
	ConstName      string
	InterfaceName  string
	HasParent      bool
	ParentName     string
	OwnFields      []fieldPlan
	ReaderFuncName string // unexported per-fields reader, e.g. readDerivedFields
	PublicReadName string // cache-aware entry point, e.g. ReadDerived
}

// enumData is one enum's fully rendered shape.
type enumData struct {
	Index         int32
	Name          string
	ConstName     string
	UnknownName   string
	MapVarName    string
	ParseFuncName string
	Options       []enumOptionData
}

type enumOptionData struct {
	ConstName string
	Text      string
}

func (g *generator) buildTemplateData(packageName, dispatcherName string) (templateData, error) {
	data := templateData{
		PackageName:       packageName,
		DispatcherName:    dispatcherName,
		StructCount:       g.db.StructCount(),
		EnumCount:         g.db.EnumCount(),
		StructFingerprint: g.db.StructFingerprint(),
		EnumFingerprint:   g.db.EnumFingerprint(),
	}

	for i := 0; i < g.db.EnumCount(); i++ {
		ed, err := g.buildEnumData(int32(i))
		if err != nil {
			return templateData{}, err
		}
		data.Enums = append(data.Enums, ed)
	}

	for i := 0; i < g.db.StructCount(); i++ {
		sd, err := g.buildStructData(int32(i))
		if err != nil {
			return templateData{}, err
		}
		data.Structs = append(data.Structs, sd)
	}

	for _, sd := range data.Structs {
		for _, f := range sd.OwnFields {
			if strings.Contains(f.FieldType, "uuid.UUID") {
				data.UsesUUID = true
			}
		}
	}

	return data, nil
}

func (g *generator) buildEnumData(idx int32) (enumData, error) {
	def, err := g.db.Enum(idx)
	if err != nil {
		return enumData{}, err
	}
	ref, err := g.enumRef(idx)
	if err != nil {
		return enumData{}, err
	}

	ed := enumData{
		Index:         idx,
		Name:          ref.Name,
		ConstName:     "Enum" + ref.Name,
		UnknownName:   ref.UnknownName,
		MapVarName:    ref.MapVarName,
		ParseFuncName: "Parse" + ref.Name,
	}
	for i := def.FirstOptionIndex; i < def.FirstOptionIndex+def.OptionCount; i++ {
		opt, err := g.db.EnumOption(i)
		if err != nil {
			return enumData{}, err
		}
		text, err := g.db.ResolveString(opt.Name)
		if err != nil {
			return enumData{}, err
		}
		ed.Options = append(ed.Options, enumOptionData{
			ConstName: ref.Name + exportedName(text),
			Text:      text,
		})
	}
	return ed, nil
}

func (g *generator) buildStructData(idx int32) (structData, error) {
	def, err := g.db.Struct(idx)
	if err != nil {
		return structData{}, err
	}
	name, err := g.structGoName(idx)
	if err != nil {
		return structData{}, err
	}
	ifaceName, err := g.structInterfaceName(idx)
	if err != nil {
		return structData{}, err
	}
	constName, err := g.structConstName(idx)
	if err != nil {
		return structData{}, err
	}

	sd := structData{
		Name:           name,
		ConstName:      constName,
		InterfaceName:  ifaceName,
		HasParent:      def.HasParent(),
		ReaderFuncName: "read" + name + "Fields",
		PublicReadName: "Read" + name,
	}
	if def.HasParent() {
		parentName, err := g.structGoName(def.ParentIndex)
		if err != nil {
			return structData{}, err
		}
		sd.ParentName = parentName
	}

	for p := def.FirstPropertyIndex; p < def.FirstPropertyIndex+def.PropertyCount; p++ {
		prop, err := g.db.Property(p)
		if err != nil {
			return structData{}, err
		}
		fp, err := g.planField(prop)
		if err != nil {
			return structData{}, fmt.Errorf("gen: struct %s: %w", name, err)
		}
		sd.OwnFields = append(sd.OwnFields, fp)
	}

	return sd, nil
}
