// Copyright (c) 2024 The pfq-lang authors
// SPDX-License-Identifier: MIT

package pfq

import (
	"fmt"
	"reflect"
)

// shape tags the five mutually-exclusive forms an [Argument] can take.
type shape uint8

const (
	shapeNull shape = iota
	shapeData
	shapeVector
	shapeString
	shapeFunRef
)

// NotCollection is the sentinel nelem value for Argument shapes that do
// not carry a collection (Data, String, FunRef). It mirrors the wire
// format's use of an all-ones index as a "no such index" marker
// (see [TerminalNext]).
const NotCollection = ^uint(0)

// Argument is a tagged union of the five shapes a Descriptor slot can
// hold: Null, Data(POD), Vector(POD), String, or FunRef(index). Exactly
// one shape is valid for any Argument (§3 of the specification); the
// zero value is Null.
//
// Argument values are immutable after construction and safe to share.
type Argument struct {
	shape   shape
	payload any
	size    uint
	nelem   uint
}

// ArgNull returns the empty argument, used to fill unused descriptor
// argument slots.
func ArgNull() Argument {
	return Argument{shape: shapeNull}
}

// ArgData builds a Data argument around a POD value v. It returns
// [ErrInvalidArgument] if v is not a fixed-layout, trivially copyable
// value (see [isPOD]).
func ArgData[T any](v T) (Argument, error) {
	if !isPOD(v) {
		return Argument{}, newConstructionError(ErrInvalidArgument, "ArgData: %T is not a POD value", v)
	}
	return Argument{
		shape:   shapeData,
		payload: v,
		size:    uint(reflect.TypeOf(v).Size()),
		nelem:   NotCollection,
	}, nil
}

// MustArgData is like [ArgData] but panics on error. Intended for call
// sites (tests, examples) that already know the value is well-formed.
func MustArgData[T any](v T) Argument {
	a, err := ArgData(v)
	if err != nil {
		panic(err)
	}
	return a
}

// ArgVector builds a Vector argument around a slice of POD values. An
// empty, non-nil slice is valid and serializes with nelem == 0.
func ArgVector[T any](v []T) (Argument, error) {
	var zero T
	if !isPOD(zero) {
		return Argument{}, newConstructionError(ErrInvalidArgument, "ArgVector: %T is not a POD value", zero)
	}
	cp := make([]T, len(v))
	copy(cp, v)
	return Argument{
		shape:   shapeVector,
		payload: cp,
		size:    uint(reflect.TypeOf(zero).Size()),
		nelem:   uint(len(v)),
	}, nil
}

// MustArgVector is like [ArgVector] but panics on error.
func MustArgVector[T any](v []T) Argument {
	a, err := ArgVector(v)
	if err != nil {
		panic(err)
	}
	return a
}

// ArgString builds a String argument. Per §3, size is always 0 for
// String (the original C implementation relies on a NUL terminator in
// the payload to recover the length on the wire; this package instead
// keeps the string length available in Go through the shapeString tag
// itself, see DESIGN.md's "arg_string" open-question decision).
func ArgString(s string) Argument {
	return Argument{
		shape:   shapeString,
		payload: s,
		nelem:   NotCollection,
	}
}

// ArgFun builds a FunRef argument pointing at descriptor index i. The
// index is only meaningful once assigned by [Serialize]; user code
// never needs to construct one directly (the serializer emits these
// internally as it walks the AST).
func ArgFun(i uint) Argument {
	return Argument{
		shape:   shapeFunRef,
		size:    i,
		nelem:   NotCollection,
	}
}

// IsNull reports whether a is the Null shape.
func (a Argument) IsNull() bool { return a.shape == shapeNull }

// IsFunRef reports whether a is a FunRef, and if so its index.
func (a Argument) IsFunRef() (idx uint, ok bool) {
	if a.shape != shapeFunRef {
		return 0, false
	}
	return a.size, true
}

// Size returns the byte size of a Data/Vector element, the index carried
// by a FunRef, or 0 for Null/String.
func (a Argument) Size() uint { return a.size }

// Nelem returns the element count for Vector, 0 for Null, or
// [NotCollection] for Data/String/FunRef.
func (a Argument) Nelem() uint { return a.nelem }

// Value returns the underlying payload: the POD value for Data, the POD
// slice for Vector, the string for String, or nil for Null/FunRef.
func (a Argument) Value() any { return a.payload }

// String implements the pretty-print contract from §4.1: Null renders
// as the empty string, Data/Vector/String render bracketed, and FunRef
// renders as f[i]. This is for diagnostics only and never affects
// serialized output.
func (a Argument) String() string {
	switch a.shape {
	case shapeNull:
		return ""
	case shapeData:
		return fmt.Sprintf("[%v]", a.payload)
	case shapeVector:
		return fmt.Sprintf("%v", a.payload)
	case shapeString:
		return fmt.Sprintf("[%v]", a.payload)
	case shapeFunRef:
		return fmt.Sprintf("f[%d]", a.size)
	default:
		return ""
	}
}

// toArgument converts an arbitrary value into an [Argument] per §4.2:
// strings become [ArgString], slices of POD become [ArgVector], other
// POD values become [ArgData]. An [Argument] passed in is returned
// unchanged, and nil becomes [ArgNull] (convenient for optional
// argument slots).
func toArgument(v any) (Argument, error) {
	switch val := v.(type) {
	case Argument:
		return val, nil
	case nil:
		return ArgNull(), nil
	case string:
		return ArgString(val), nil
	}

	rv := reflect.ValueOf(v)
	t := rv.Type()

	if t.Kind() == reflect.Slice {
		elemType := t.Elem()
		if !isPODType(elemType) {
			return Argument{}, newConstructionError(ErrInvalidArgument, "vector element type %s is not POD", elemType)
		}
		n := rv.Len()
		cp := reflect.MakeSlice(t, n, n)
		reflect.Copy(cp, rv)
		return Argument{
			shape:   shapeVector,
			payload: cp.Interface(),
			size:    uint(elemType.Size()),
			nelem:   uint(n),
		}, nil
	}

	if !isPODType(t) {
		return Argument{}, newConstructionError(ErrInvalidArgument, "%T is not a POD value", v)
	}
	return Argument{
		shape:   shapeData,
		payload: v,
		size:    uint(t.Size()),
		nelem:   NotCollection,
	}, nil
}

// isPOD reports whether v has a fixed, trivially-copyable layout: no
// pointers, slices, maps, channels, functions or interfaces anywhere in
// its type, recursively through structs and arrays. This is the runtime
// analogue of the original's compile-time
// std::is_trivially_copyable static_assert (see DESIGN.md).
func isPOD(v any) bool {
	return isPODType(reflect.TypeOf(v))
}

func isPODType(t reflect.Type) bool {
	if t == nil {
		return false
	}
	switch t.Kind() {
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64,
		reflect.Complex64, reflect.Complex128:
		return true
	case reflect.Array:
		return isPODType(t.Elem())
	case reflect.Struct:
		for i := 0; i < t.NumField(); i++ {
			if !isPODType(t.Field(i).Type) {
				return false
			}
		}
		return true
	default:
		return false
	}
}
