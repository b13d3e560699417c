package serde

import (
	"encoding"
	"fmt"
	"reflect"

	gojson "github.com/goccy/go-json"

	"github.com/arloliu/colcache/errs"
)

var (
	jsonMarshalerType   = reflect.TypeFor[gojson.Marshaler]()
	jsonUnmarshalerType = reflect.TypeFor[gojson.Unmarshaler]()
	textMarshalerType   = reflect.TypeFor[encoding.TextMarshaler]()
	textUnmarshalerType = reflect.TypeFor[encoding.TextUnmarshaler]()
)

// checkKind rejects types no marshaller can produce a value of.
func checkKind(t reflect.Type) error {
	switch t.Kind() {
	case reflect.Chan, reflect.Func, reflect.UnsafePointer, reflect.Interface, reflect.Invalid:
		return fmt.Errorf("%w: %v of kind %s cannot be serialized", errs.ErrUnregisteredType, t, t.Kind())
	default:
		return nil
	}
}

// checkReflective reports whether JSON decoding restores every value of t
// exactly. Interface elements come back as float64/map[string]any, and
// unexported or "-" tagged fields come back as zero, so types containing them
// need a dedicated serializer.
func checkReflective(t reflect.Type) error {
	if err := checkKind(t); err != nil {
		return err
	}

	return walkReflective(t, t, make(map[reflect.Type]struct{}))
}

func walkReflective(root, t reflect.Type, seen map[reflect.Type]struct{}) error {
	if _, ok := seen[t]; ok {
		return nil
	}
	seen[t] = struct{}{}

	if codesItself(t) {
		return nil
	}

	switch t.Kind() {
	case reflect.Chan, reflect.Func, reflect.UnsafePointer, reflect.Interface,
		reflect.Complex64, reflect.Complex128:
		return fmt.Errorf("%w: %v holds %v values, which JSON cannot restore; register a dedicated serializer",
			errs.ErrUnregisteredType, root, t)
	case reflect.Pointer, reflect.Slice, reflect.Array:
		return walkReflective(root, t.Elem(), seen)
	case reflect.Map:
		if err := walkReflective(root, t.Key(), seen); err != nil {
			return err
		}

		return walkReflective(root, t.Elem(), seen)
	case reflect.Struct:
		for i := range t.NumField() {
			f := t.Field(i)
			if f.Tag.Get("json") == "-" {
				return fmt.Errorf("%w: %v field %s is skipped by JSON; register a dedicated serializer",
					errs.ErrUnregisteredType, root, f.Name)
			}
			if !f.IsExported() && !(f.Anonymous && f.Type.Kind() == reflect.Struct) {
				return fmt.Errorf("%w: %v has unexported field %s; register a dedicated serializer",
					errs.ErrUnregisteredType, root, f.Name)
			}
			if err := walkReflective(root, f.Type, seen); err != nil {
				return err
			}
		}
	default:
	}

	return nil
}

// codesItself reports whether t brings its own JSON or text encoding in both
// directions.
func codesItself(t reflect.Type) bool {
	pt := reflect.PointerTo(t)
	implements := func(iface reflect.Type) bool {
		return t.Implements(iface) || pt.Implements(iface)
	}

	return (implements(jsonMarshalerType) && implements(jsonUnmarshalerType)) ||
		(implements(textMarshalerType) && implements(textUnmarshalerType))
}
