package jsonfacade

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/RoaringBitmap/roaring/v2/roaring64"

	"github.com/dcoretech/dcore/database"
	"github.com/dcoretech/dcore/runtime"
)

// walker holds the one Runtime a ToTree call resolves references
// through and the set of (structIndex, instanceIndex) pairs currently on
// the walk's own call stack. Unlike runtime's in-flight tracker, this
// set is not goroutine-keyed: one walker is never shared across
// goroutines.
type walker struct {
	rt   *runtime.Runtime
	path *roaring64.Bitmap
}

func newWalker(rt *runtime.Runtime) *walker {
	return &walker{rt: rt, path: roaring64.New()}
}

// instanceKey packs a (structIndex, instanceIndex) pair the same way
// runtime/cache.go's unexported instanceKey does; duplicated locally
// since that helper isn't exported and the packing itself is a one-line
// invariant, not worth threading an export through for.
func instanceKey(structIndex, instanceIndex int32) uint64 {
	return uint64(uint32(structIndex))<<32 | uint64(uint32(instanceIndex))
}

func (w *walker) walk(v any) (any, error) {
	return w.walkValue(reflect.ValueOf(v))
}

func (w *walker) walkValue(rv reflect.Value) (any, error) {
	if !rv.IsValid() {
		return nil, nil
	}
	if isLazyRefType(rv.Type()) {
		return w.walkLazyRef(rv)
	}

	switch rv.Kind() {
	case reflect.Ptr:
		if rv.IsNil() {
			return nil, nil
		}
		return w.walkValue(rv.Elem())
	case reflect.Interface:
		if rv.IsNil() {
			return nil, nil
		}
		return w.walkValue(rv.Elem())
	case reflect.Struct:
		return w.walkStruct(rv)
	case reflect.Slice, reflect.Array:
		return w.walkSlice(rv)
	}

	if rv.CanInterface() {
		if s, ok := rv.Interface().(fmt.Stringer); ok {
			return s.String(), nil
		}
	}

	switch rv.Kind() {
	case reflect.String:
		return rv.String(), nil
	case reflect.Bool:
		return rv.Bool(), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int(), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return rv.Uint(), nil
	case reflect.Float32, reflect.Float64:
		return rv.Float(), nil
	default:
		return rv.Interface(), nil
	}
}

// walkStruct renders v's exported fields into a map keyed by field name,
// flattening anonymous (embedded) fields into the same map the way
// encoding/json promotes them — an embedded Base's ID field ends up
// alongside Derived's own B field, not nested under a "Base" key.
func (w *walker) walkStruct(rv reflect.Value) (any, error) {
	t := rv.Type()
	out := make(map[string]any, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if f.PkgPath != "" {
			continue // unexported
		}
		fv := rv.Field(i)
		if f.Anonymous {
			embedded, err := w.walkValue(fv)
			if err != nil {
				return nil, err
			}
			if m, ok := embedded.(map[string]any); ok {
				for k, v := range m {
					out[k] = v
				}
				continue
			}
		}
		val, err := w.walkValue(fv)
		if err != nil {
			return nil, err
		}
		out[f.Name] = val
	}
	return out, nil
}

func (w *walker) walkSlice(rv reflect.Value) (any, error) {
	out := make([]any, 0, rv.Len())
	for i := 0; i < rv.Len(); i++ {
		ev, err := w.walkValue(rv.Index(i))
		if err != nil {
			return nil, err
		}
		out = append(out, ev)
	}
	return out, nil
}

// isLazyRefType reports whether t is *runtime.LazyRef[T] for some T,
// matched by package path and name prefix rather than by T (T varies per
// field and per generated package, but the wrapper type never does).
func isLazyRefType(t reflect.Type) bool {
	if t.Kind() != reflect.Ptr {
		return false
	}
	elem := t.Elem()
	return elem.PkgPath() == "github.com/dcoretech/dcore/runtime" && strings.HasPrefix(elem.Name(), "LazyRef")
}

// walkLazyRef applies the null/external-ref/circular-ref/inline contract
// to one *runtime.LazyRef field, calling its exported methods through
// reflection since the generic method set is already monomorphized for
// this field's concrete T regardless of what T is.
func (w *walker) walkLazyRef(rv reflect.Value) (any, error) {
	if rv.IsNil() {
		return nil, nil
	}

	valueOut := rv.MethodByName("Value").Call(nil)
	if errv := valueOut[1]; !errv.IsNil() {
		return nil, errv.Interface().(error)
	}
	resolved := valueOut[0]

	isExternal := rv.MethodByName("IsExternalFile").Call(nil)[0].Bool()
	if isExternal {
		pathOut := rv.MethodByName("ExternalFilePath").Call(nil)
		if hasPath := pathOut[1].Bool(); hasPath {
			ref := pathOut[0].Interface().(database.StringRef)
			path, err := w.rt.Database().ResolveString(ref)
			if err != nil {
				return nil, err
			}
			out := map[string]any{"$ref": path}
			if recID, hasRecID := callRecordID(rv); hasRecID {
				out["RecordId"] = recID
			}
			return out, nil
		}
	}

	structIdx := rv.MethodByName("StructIndex").Call(nil)[0].Interface().(int32)
	instIdx := rv.MethodByName("InstanceIndex").Call(nil)[0].Interface().(int32)
	key := instanceKey(structIdx, instIdx)
	if w.path.Contains(key) {
		return map[string]any{"$circularRef": fmt.Sprintf("(%d, %d)", structIdx, instIdx)}, nil
	}

	w.path.Add(key)
	defer w.path.Remove(key)
	return w.walkValue(resolved)
}

func callRecordID(rv reflect.Value) (any, bool) {
	out := rv.MethodByName("RecordID").Call(nil)
	return out[0].Interface(), out[1].Bool()
}
