// Package object holds the values the interpreter works on
package object

import (
	"fmt"
	"math"
	"strconv"
)

// ObjectType can always be displayed as a string
type ObjectType string

// Object is a single interpreter value.  Inspect gives the run-time
// rendering, PRINT style.  Dump gives the debug rendering, VARS style,
// which quotes strings so an empty string stays visible.
type Object interface {
	Type() ObjectType
	Inspect() string
	Dump() string
}

const (
	EMPTY_OBJ   ObjectType = "EMPTY"
	INTEGER_OBJ ObjectType = "INTEGER"
	REAL_OBJ    ObjectType = "REAL"
	BOOLEAN_OBJ ObjectType = "BOOLEAN"
	STRING_OBJ  ObjectType = "STRING"
	ARRAY_OBJ   ObjectType = "ARRAY"
)

// TypeName gives the display form of a type tag for error messages,
// "Integer" rather than "INTEGER".
func TypeName(t ObjectType) string {
	switch t {
	case EMPTY_OBJ:
		return "Empty"
	case INTEGER_OBJ:
		return "Integer"
	case REAL_OBJ:
		return "Real"
	case BOOLEAN_OBJ:
		return "Boolean"
	case STRING_OBJ:
		return "String"
	case ARRAY_OBJ:
		return "Array"
	}
	return string(t)
}

// Console defines where interpreter output lands
type Console interface {
	Print(string)
	Println(string)
}

// Empty is the value of anything never assigned
type Empty struct{}

func (e *Empty) Type() ObjectType { return EMPTY_OBJ }
func (e *Empty) Inspect() string  { return "" }
func (e *Empty) Dump() string     { return "" }

// Integer values
type Integer struct {
	Value int32
}

// Type returns my type
func (i *Integer) Type() ObjectType { return INTEGER_OBJ }

// Inspect returns value as a string
func (i *Integer) Inspect() string { return fmt.Sprintf("%d", i.Value) }
func (i *Integer) Dump() string    { return i.Inspect() }

// Real values
type Real struct {
	Value float64
}

// Type returns my type
func (r *Real) Type() ObjectType { return REAL_OBJ }

// Inspect renders with fifteen significant digits
func (r *Real) Inspect() string { return strconv.FormatFloat(r.Value, 'g', 15, 64) }
func (r *Real) Dump() string    { return r.Inspect() }

// Boolean values
type Boolean struct {
	Value bool
}

func (b *Boolean) Type() ObjectType { return BOOLEAN_OBJ }
func (b *Boolean) Inspect() string {
	if b.Value {
		return "TRUE"
	}
	return "FALSE"
}
func (b *Boolean) Dump() string { return b.Inspect() }

// String values, stored without surrounding quotes
type String struct {
	Value string
}

func (s *String) Type() ObjectType { return STRING_OBJ }
func (s *String) Inspect() string  { return s.Value }
func (s *String) Dump() string     { return `"` + s.Value + `"` }

// Array is created by DIM.  The shape is fixed for the life of the
// array and the cells live in a flat slice, first index varying
// fastest.  Cells start out Empty.
type Array struct {
	Dims  []int
	Cells []Object
}

// NewArray builds an array with every cell set to Empty
func NewArray(dims []int) *Array {
	n := 1
	for _, d := range dims {
		n *= d
	}
	a := &Array{Dims: dims, Cells: make([]Object, n)}
	for i := range a.Cells {
		a.Cells[i] = &Empty{}
	}
	return a
}

func (a *Array) Type() ObjectType { return ARRAY_OBJ }
func (a *Array) Inspect() string  { return "" }
func (a *Array) Dump() string     { return "" }

// Offset maps an index tuple onto the flat cell slice.  Every index
// has to sit inside its own dimension, so A(3,0) on a 3x2 array is out
// of bounds even though the flat position would exist.
func (a *Array) Offset(indexes []int) (int, error) {
	if len(indexes) != len(a.Dims) {
		return 0, fmt.Errorf("Must supply %d indexes to address array", len(a.Dims))
	}
	pos := 0
	multiplier := 1
	inBounds := true
	for n, idx := range indexes {
		if idx < 0 || idx >= a.Dims[n] {
			inBounds = false
		}
		pos += idx * multiplier
		multiplier *= a.Dims[n]
	}
	if !inBounds {
		return 0, fmt.Errorf("Array out of bounds.  Max is ( %s ) you requested ( %s )",
			joinInts(a.Dims), joinInts(indexes))
	}
	return pos, nil
}

func joinInts(vals []int) string {
	out := ""
	for n, v := range vals {
		if n > 0 {
			out += ", "
		}
		out += strconv.Itoa(v)
	}
	return out
}

// PromoteKinds gives the result kind of a binary operation over a
// pair of operand kinds.  EMPTY_OBJ marks a pair with no common kind.
func PromoteKinds(lhs, rhs ObjectType) ObjectType {
	switch lhs {
	case INTEGER_OBJ:
		switch rhs {
		case INTEGER_OBJ:
			return INTEGER_OBJ
		case REAL_OBJ:
			return REAL_OBJ
		case STRING_OBJ:
			return STRING_OBJ
		}
	case REAL_OBJ:
		switch rhs {
		case INTEGER_OBJ, REAL_OBJ:
			return REAL_OBJ
		case STRING_OBJ:
			return STRING_OBJ
		}
	case STRING_OBJ:
		switch rhs {
		case INTEGER_OBJ, REAL_OBJ, STRING_OBJ:
			return STRING_OBJ
		}
	case BOOLEAN_OBJ:
		if rhs == BOOLEAN_OBJ {
			return BOOLEAN_OBJ
		}
	}
	return EMPTY_OBJ
}

// AlmostEqual reports two reals equal when each sits within one
// representable step of the other.  Real comparison always goes
// through here so values that differ only in the last bit compare
// equal.
func AlmostEqual(a, b float64) bool {
	return b >= math.Nextafter(a, math.Inf(-1)) && b <= math.Nextafter(a, math.Inf(1))
}
