package gen

import (
	"fmt"

	"github.com/dcoretech/dcore/database"
)

// fieldPlan is one property's rendered shape: the exported struct field,
// its getter (for the struct's own narrowing interface), and the
// statements that read it into a local variable from an already
// positioned *cursor.Cursor.
type fieldPlan struct {
	FieldName  string
	FieldType  string
	GetterName string
	VarName    string
	ReadStmts  []string
}

const errCheck = "if err != nil {\n\t\treturn zero, err\n\t}"

var scalarCursorMethod = map[database.DataType]string{
	database.Bool:   "Bool",
	database.Int8:   "Int8",
	database.Uint8:  "Uint8",
	database.Int16:  "Int16",
	database.Uint16: "Uint16",
	database.Int32:  "Int32",
	database.Uint32: "Uint32",
	database.Int64:  "Int64",
	database.Uint64: "Uint64",
	database.Single: "Single",
	database.Double: "Double",
	database.GUID:   "GUID",
}

var scalarGoType = map[database.DataType]string{
	database.Bool:   "bool",
	database.Int8:   "int8",
	database.Uint8:  "uint8",
	database.Int16:  "int16",
	database.Uint16: "uint16",
	database.Int32:  "int32",
	database.Uint32: "uint32",
	database.Int64:  "int64",
	database.Uint64: "uint64",
	database.Single: "float32",
	database.Double: "float64",
	database.GUID:   "uuid.UUID",
}

// poolFieldName is the database.Pools struct field backing an array
// property of this primitive DataType, which doubles as the suffix of
// its runtime.ReadXxxArray helper.
var poolFieldName = map[database.DataType]string{
	database.Bool:   "Bool",
	database.Int8:   "Int8",
	database.Uint8:  "Uint8",
	database.Int16:  "Int16",
	database.Uint16: "Uint16",
	database.Int32:  "Int32",
	database.Uint32: "Uint32",
	database.Int64:  "Int64",
	database.Uint64: "Uint64",
	database.Single: "Single",
	database.Double: "Double",
	database.GUID:   "GUID",
}

// planField computes one property's field plan, dispatching on whether
// prop is a scalar or an array property.
func (g *generator) planField(prop database.PropertyDef) (fieldPlan, error) {
	name := exportedName(prop.Name)
	varName := unexportedName(prop.Name)

	if prop.Conversion == database.Array {
		return g.planArrayField(prop, name, varName)
	}
	return g.planScalarField(prop, name, varName)
}

func (g *generator) planScalarField(prop database.PropertyDef, name, varName string) (fieldPlan, error) {
	fp := fieldPlan{FieldName: name, GetterName: "Get" + name, VarName: varName}

	if cursorMethod, ok := scalarCursorMethod[prop.DataType]; ok {
		fp.FieldType = scalarGoType[prop.DataType]
		fp.ReadStmts = []string{
			fmt.Sprintf("%s, err := c.%s()", varName, cursorMethod),
			errCheck,
		}
		return fp, nil
	}

	switch prop.DataType {
	case database.String, database.Locale:
		fp.FieldType = "string"
		fp.ReadStmts = []string{
			fmt.Sprintf("%sOff, err := c.Uint32()", varName),
			errCheck,
			fmt.Sprintf("%sLen, err := c.Uint32()", varName),
			errCheck,
			fmt.Sprintf("%s, err := rt.Database().ResolveString(database.StringRef{Offset: %sOff, Length: %sLen})", varName, varName, varName),
			errCheck,
		}
		return fp, nil

	case database.EnumChoice:
		ep, err := g.enumRef(prop.TargetIndex)
		if err != nil {
			return fieldPlan{}, err
		}
		fp.FieldType = ep.Name
		fp.ReadStmts = []string{
			fmt.Sprintf("%sOff, err := c.Uint32()", varName),
			errCheck,
			fmt.Sprintf("%sLen, err := c.Uint32()", varName),
			errCheck,
			fmt.Sprintf("%sText, err := rt.Database().ResolveString(database.StringRef{Offset: %sOff, Length: %sLen})", varName, varName, varName),
			errCheck,
			fmt.Sprintf("%s := runtime.EnumParse(rt, %q, %sText, %s, %s)", varName, ep.Name, varName, ep.MapVarName, ep.UnknownName),
		}
		return fp, nil

	case database.Class:
		targetName, err := g.structGoName(prop.TargetIndex)
		if err != nil {
			return fieldPlan{}, err
		}
		fp.FieldType = targetName
		fp.ReadStmts = []string{
			fmt.Sprintf("%s, err := read%sFields(rt, c)", varName, targetName),
			errCheck,
		}
		return fp, nil

	case database.Reference:
		ifaceName, err := g.structInterfaceName(prop.TargetIndex)
		if err != nil {
			return fieldPlan{}, err
		}
		fp.FieldType = fmt.Sprintf("*runtime.LazyRef[%s]", ifaceName)
		fp.ReadStmts = []string{
			fmt.Sprintf("%sGUID, err := c.GUID()", varName),
			errCheck,
			// The inline instance index after the GUID is skipped:
			// resolution goes through the GUID alone.
			"if _, err := c.Int32(); err != nil {\n\t\treturn zero, err\n\t}",
			fmt.Sprintf("%s := runtime.NewReferenceRef[%s](rt, %sGUID)", varName, ifaceName, varName),
		}
		return fp, nil

	case database.StrongPointer, database.WeakPointer:
		ifaceName, err := g.structInterfaceName(prop.TargetIndex)
		if err != nil {
			return fieldPlan{}, err
		}
		fp.FieldType = fmt.Sprintf("*runtime.LazyRef[%s]", ifaceName)
		fp.ReadStmts = []string{
			fmt.Sprintf("%sStructIdx, err := c.Int32()", varName),
			errCheck,
			fmt.Sprintf("%sInstIdx, err := c.Int32()", varName),
			errCheck,
			fmt.Sprintf("%s := runtime.NewPointerRef[%s](rt, %sStructIdx, %sInstIdx)", varName, ifaceName, varName, varName),
		}
		return fp, nil
	}

	return fieldPlan{}, fmt.Errorf("gen: property %q has unsupported scalar data type %s", prop.Name, prop.DataType)
}

func (g *generator) planArrayField(prop database.PropertyDef, name, varName string) (fieldPlan, error) {
	fp := fieldPlan{FieldName: name, GetterName: "Get" + name, VarName: varName}

	if pool, ok := poolFieldName[prop.DataType]; ok {
		fp.FieldType = "[]" + scalarGoType[prop.DataType]
		fp.ReadStmts = []string{
			fmt.Sprintf("%s, err := runtime.Read%sArray(c, rt.Database().Pools().%s)", varName, pool, pool),
			errCheck,
		}
		return fp, nil
	}

	switch prop.DataType {
	case database.String:
		fp.FieldType = "[]string"
		fp.ReadStmts = []string{
			fmt.Sprintf("%s, err := runtime.ReadStringArray(rt, c, rt.Database().Pools().String)", varName),
			errCheck,
		}
		return fp, nil

	case database.Locale:
		fp.FieldType = "[]string"
		fp.ReadStmts = []string{
			fmt.Sprintf("%s, err := runtime.ReadLocaleArray(rt, c, rt.Database().Pools().Locale)", varName),
			errCheck,
		}
		return fp, nil

	case database.EnumChoice:
		ep, err := g.enumRef(prop.TargetIndex)
		if err != nil {
			return fieldPlan{}, err
		}
		fp.FieldType = "[]" + ep.Name
		fp.ReadStmts = []string{
			fmt.Sprintf("%s, err := runtime.ReadEnumArray(rt, c, %q, %s, %s)", varName, ep.Name, ep.MapVarName, ep.UnknownName),
			errCheck,
		}
		return fp, nil

	case database.Class:
		targetName, err := g.structGoName(prop.TargetIndex)
		if err != nil {
			return fieldPlan{}, err
		}
		targetConst, err := g.structConstName(prop.TargetIndex)
		if err != nil {
			return fieldPlan{}, err
		}
		fp.FieldType = "[]*" + targetName
		fp.ReadStmts = []string{
			fmt.Sprintf("%sCount, err := rt.Database().InstanceCount(%s)", varName, targetConst),
			errCheck,
			fmt.Sprintf("%s, err := runtime.ReadClassArray(rt, c, %s, %sCount, Read%s)", varName, targetConst, varName, targetName),
			errCheck,
		}
		return fp, nil

	case database.Reference:
		ifaceName, err := g.structInterfaceName(prop.TargetIndex)
		if err != nil {
			return fieldPlan{}, err
		}
		fp.FieldType = fmt.Sprintf("[]*runtime.LazyRef[%s]", ifaceName)
		fp.ReadStmts = []string{
			fmt.Sprintf("%s, err := runtime.ReadReferenceArray[%s](rt, c)", varName, ifaceName),
			errCheck,
		}
		return fp, nil

	case database.StrongPointer, database.WeakPointer:
		ifaceName, err := g.structInterfaceName(prop.TargetIndex)
		if err != nil {
			return fieldPlan{}, err
		}
		poolField := "StrongPointer"
		if prop.DataType == database.WeakPointer {
			poolField = "WeakPointer"
		}
		fp.FieldType = fmt.Sprintf("[]*runtime.LazyRef[%s]", ifaceName)
		fp.ReadStmts = []string{
			fmt.Sprintf("%s, err := runtime.ReadPointerArray[%s](rt, c, rt.Database().Pools().%s)", varName, ifaceName, poolField),
			errCheck,
		}
		return fp, nil
	}

	return fieldPlan{}, fmt.Errorf("gen: property %q has unsupported array data type %s", prop.Name, prop.DataType)
}
