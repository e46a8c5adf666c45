package builtins

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/retrolang/dawbasic/berrors"
	"github.com/retrolang/dawbasic/object"
)

func callFn(t *testing.T, name string, args ...object.Object) (object.Object, error) {
	t.Helper()
	assert.True(t, IsBuiltin(name), "builtin %s should exist", name)
	return Call(nil, name, args)
}

func num(t *testing.T, obj object.Object) float64 {
	t.Helper()
	val, err := object.ToFloat(obj)
	assert.NoError(t, err)
	return val
}

func TestRealFunctions(t *testing.T) {
	tests := []struct {
		name string
		arg  object.Object
		want float64
	}{
		{"COS", &object.Integer{Value: 0}, 1},
		{"SIN", &object.Integer{Value: 0}, 0},
		{"TAN", &object.Integer{Value: 0}, 0},
		{"ATN", &object.Integer{Value: 0}, 0},
		{"EXP", &object.Integer{Value: 0}, 1},
		{"LOG", &object.Integer{Value: 1}, 0},
		{"SQR", &object.Integer{Value: 9}, 3},
		{"COS", &object.Real{Value: math.Pi}, -1},
	}

	for _, tt := range tests {
		got, err := callFn(t, tt.name, tt.arg)
		assert.NoError(t, err, tt.name)
		assert.Equal(t, object.REAL_OBJ, got.Type(), tt.name)
		assert.InDelta(t, tt.want, num(t, got), 1e-12, tt.name)
	}
}

func TestArityMessages(t *testing.T) {
	tests := []struct {
		name string
		msg  string
	}{
		{"COS", "COS requires 1 parameter"},
		{"SQR", "SQRT requires 1 parameter"},
		{"SQUARE", "SQR requires 1 parameter"},
		{"ABS", "SIN requires 1 parameter"},
		{"POW", "POW requires 2 parameters"},
		{"LEFT$", "LEFT$ requires 2 parameters"},
		{"MID$", "MID$ requires 3 parameters"},
	}

	for _, tt := range tests {
		_, err := callFn(t, tt.name)
		assert.EqualError(t, err, tt.msg)
	}
}

func TestSquareAndAbs(t *testing.T) {
	got, err := callFn(t, "SQUARE", &object.Integer{Value: 3})
	assert.NoError(t, err)
	assert.Equal(t, &object.Integer{Value: 9}, got)

	got, err = callFn(t, "SQUARE", &object.Real{Value: 1.5})
	assert.NoError(t, err)
	assert.Equal(t, &object.Real{Value: 2.25}, got)

	got, err = callFn(t, "ABS", &object.Integer{Value: -5})
	assert.NoError(t, err)
	assert.Equal(t, &object.Integer{Value: 5}, got)

	got, err = callFn(t, "ABS", &object.Real{Value: -2.5})
	assert.NoError(t, err)
	assert.Equal(t, &object.Real{Value: 2.5}, got)
}

func TestSgn(t *testing.T) {
	got, err := callFn(t, "SGN", &object.Integer{Value: -7})
	assert.NoError(t, err)
	assert.Equal(t, &object.Integer{Value: -1}, got)

	got, err = callFn(t, "SGN", &object.Integer{Value: 0})
	assert.NoError(t, err)
	assert.Equal(t, &object.Integer{Value: 0}, got)

	got, err = callFn(t, "SGN", &object.Real{Value: 0.25})
	assert.NoError(t, err)
	assert.Equal(t, &object.Real{Value: 1}, got)
}

func TestInt(t *testing.T) {
	got, err := callFn(t, "INT", &object.Real{Value: 3.7})
	assert.NoError(t, err)
	assert.Equal(t, &object.Integer{Value: 3}, got)

	// whole valued reals drop to the next integer down
	got, err = callFn(t, "INT", &object.Real{Value: -3.0})
	assert.NoError(t, err)
	assert.Equal(t, &object.Integer{Value: -4}, got)

	got, err = callFn(t, "INT", &object.Integer{Value: 5})
	assert.NoError(t, err)
	assert.Equal(t, &object.Integer{Value: 5}, got)
}

func TestRndAlwaysRefuses(t *testing.T) {
	_, err := callFn(t, "RND", &object.Integer{Value: 1})
	assert.EqualError(t, err, "INT requires 1 or 0 parameters")

	_, err = callFn(t, "RND", &object.Integer{Value: 1}, &object.Integer{Value: 2})
	assert.EqualError(t, err, "Not implemented")
}

func TestNeg(t *testing.T) {
	got, err := callFn(t, "NEG", &object.Integer{Value: 5})
	assert.NoError(t, err)
	assert.Equal(t, &object.Integer{Value: -5}, got)

	got, err = callFn(t, "NEG", &object.Real{Value: 2.5})
	assert.NoError(t, err)
	assert.Equal(t, &object.Real{Value: -2.5}, got)

	_, err = callFn(t, "NEG", &object.String{Value: "X"})
	assert.EqualError(t, err, "Attempt to multiply non-numeric types")
}

func TestPow(t *testing.T) {
	got, err := callFn(t, "POW", &object.Integer{Value: 2}, &object.Integer{Value: 10})
	assert.NoError(t, err)
	assert.Equal(t, &object.Integer{Value: 1024}, got)

	got, err = callFn(t, "POW", &object.Integer{Value: 2}, &object.Real{Value: 0.5})
	assert.NoError(t, err)
	assert.Equal(t, object.REAL_OBJ, got.Type())
	assert.InDelta(t, math.Sqrt2, num(t, got), 1e-12)

	_, err = callFn(t, "POW", &object.String{Value: "A"}, &object.Integer{Value: 2})
	assert.EqualError(t, err, "Cannot convert non-numeric types to a number")
}

func TestNot(t *testing.T) {
	got, err := callFn(t, "NOT", &object.Boolean{Value: true})
	assert.NoError(t, err)
	assert.Equal(t, &object.Boolean{Value: false}, got)

	_, err = callFn(t, "NOT", &object.Integer{Value: 1})
	assert.EqualError(t, err, "Attempt to convert a non-boolean to a boolean")
}

func TestLen(t *testing.T) {
	got, err := callFn(t, "LEN", &object.String{Value: "HELLO"})
	assert.NoError(t, err)
	assert.Equal(t, &object.Integer{Value: 5}, got)

	got, err = callFn(t, "LEN", &object.String{Value: ""})
	assert.NoError(t, err)
	assert.Equal(t, &object.Integer{Value: 0}, got)

	_, err = callFn(t, "LEN", &object.Integer{Value: 5})
	assert.EqualError(t, err, "LEN only works on string data")
}

func TestLeft(t *testing.T) {
	hello := &object.String{Value: "HELLO"}

	got, err := callFn(t, "LEFT$", hello, &object.Integer{Value: 2})
	assert.NoError(t, err)
	assert.Equal(t, &object.String{Value: "HE"}, got)

	got, err = callFn(t, "LEFT$", hello, &object.Integer{Value: 99})
	assert.NoError(t, err)
	assert.Equal(t, &object.String{Value: "HELLO"}, got)

	got, err = callFn(t, "LEFT$", hello, &object.Integer{Value: 0})
	assert.NoError(t, err)
	assert.Equal(t, &object.String{Value: ""}, got)

	_, err = callFn(t, "LEFT$", hello, &object.Integer{Value: -1})
	assert.EqualError(t, err, "The len parameter of LEFT$ must be positive")

	_, err = callFn(t, "LEFT$", &object.Integer{Value: 1}, &object.Integer{Value: 1})
	assert.EqualError(t, err, "The first parameter of LEFT$ must be a string")

	_, err = callFn(t, "LEFT$", hello, &object.Real{Value: 1.0})
	assert.EqualError(t, err, "The second parameter of LEFT$ must be an integer")
}

func TestRight(t *testing.T) {
	hello := &object.String{Value: "HELLO"}

	got, err := callFn(t, "RIGHT$", hello, &object.Integer{Value: 3})
	assert.NoError(t, err)
	assert.Equal(t, &object.String{Value: "LLO"}, got)

	got, err = callFn(t, "RIGHT$", hello, &object.Integer{Value: 0})
	assert.NoError(t, err)
	assert.Equal(t, &object.String{Value: ""}, got)

	got, err = callFn(t, "RIGHT$", hello, &object.Integer{Value: 99})
	assert.NoError(t, err)
	assert.Equal(t, &object.String{Value: "HELLO"}, got)

	_, err = callFn(t, "RIGHT$", hello, &object.Integer{Value: -1})
	assert.EqualError(t, err, "The len parameter of RIGHT$ must be positive")
}

func TestMid(t *testing.T) {
	hello := &object.String{Value: "HELLO"}

	got, err := callFn(t, "MID$", hello, &object.Integer{Value: 2}, &object.Integer{Value: 3})
	assert.NoError(t, err)
	assert.Equal(t, &object.String{Value: "ELL"}, got)

	got, err = callFn(t, "MID$", hello, &object.Integer{Value: 4}, &object.Integer{Value: 99})
	assert.NoError(t, err)
	assert.Equal(t, &object.String{Value: "LO"}, got)

	got, err = callFn(t, "MID$", hello, &object.Integer{Value: 9}, &object.Integer{Value: 1})
	assert.NoError(t, err)
	assert.Equal(t, &object.String{Value: ""}, got)

	_, err = callFn(t, "MID$", hello, &object.Integer{Value: 0}, &object.Integer{Value: 1})
	assert.EqualError(t, err, "The start parameter of MID$ must be greater than zero")

	_, err = callFn(t, "MID$", hello, &object.Integer{Value: 1}, &object.Integer{Value: 0})
	assert.EqualError(t, err, "The len parameter of MID$ must be positive")
}

func TestStr(t *testing.T) {
	got, err := callFn(t, "STR$", &object.Integer{Value: 42})
	assert.NoError(t, err)
	assert.Equal(t, &object.String{Value: "42"}, got)

	got, err = callFn(t, "STR$", &object.Real{Value: 3.14})
	assert.NoError(t, err)
	assert.Equal(t, &object.String{Value: "3.14"}, got)

	_, err = callFn(t, "STR$", &object.String{Value: "5"})
	assert.EqualError(t, err, "STR$ only works on numeric data")
}

func TestVal(t *testing.T) {
	got, err := callFn(t, "VAL", &object.String{Value: "42"})
	assert.NoError(t, err)
	assert.Equal(t, &object.Integer{Value: 42}, got)

	got, err = callFn(t, "VAL", &object.String{Value: " 5 "})
	assert.NoError(t, err)
	assert.Equal(t, &object.Integer{Value: 5}, got)

	got, err = callFn(t, "VAL", &object.String{Value: "-2.5"})
	assert.NoError(t, err)
	assert.Equal(t, &object.Real{Value: -2.5}, got)

	_, err = callFn(t, "VAL", &object.String{Value: "ABC"})
	assert.EqualError(t, err, "Attempt to convert a string of non-numbers to a number")

	_, err = callFn(t, "VAL", &object.Integer{Value: 5})
	assert.EqualError(t, err, "VAL only works on string data")
}

func TestAsc(t *testing.T) {
	got, err := callFn(t, "ASC", &object.String{Value: "A"})
	assert.NoError(t, err)
	assert.Equal(t, &object.Integer{Value: 65}, got)

	got, err = callFn(t, "ASC", &object.String{Value: ""})
	assert.NoError(t, err)
	assert.Equal(t, &object.Integer{Value: 0}, got)

	// high bytes read unsigned
	got, err = callFn(t, "ASC", &object.String{Value: "\xff"})
	assert.NoError(t, err)
	assert.Equal(t, &object.Integer{Value: 255}, got)
}

func TestChr(t *testing.T) {
	got, err := callFn(t, "CHR$", &object.Integer{Value: 65})
	assert.NoError(t, err)
	assert.Equal(t, &object.String{Value: "A"}, got)

	got, err = callFn(t, "CHR$", &object.Integer{Value: 0})
	assert.NoError(t, err)
	assert.Equal(t, &object.String{Value: "\x00"}, got)

	_, err = callFn(t, "CHR$", &object.Integer{Value: 256})
	assert.EqualError(t, err, "Specified ASCII code must be between 0 and 255 inclusive")

	_, err = callFn(t, "CHR$", &object.Integer{Value: -1})
	assert.EqualError(t, err, "Specified ASCII code must be between 0 and 255 inclusive")

	_, err = callFn(t, "CHR$", &object.Real{Value: 65.0})
	assert.EqualError(t, err, "CHR$ only works on integer data")
}

func TestLookupFoldsCase(t *testing.T) {
	assert.True(t, IsBuiltin("left$"))
	assert.True(t, IsBuiltin(" cos "))
	assert.False(t, IsBuiltin("NOSUCH"))
}

func TestCallUnknownIsFatal(t *testing.T) {
	_, err := Call(nil, "NOSUCH", nil)
	assert.EqualError(t, err, "Expected function 'NOSUCH' to exist.  Could not find it")
	assert.False(t, berrors.IsSyntax(err))
}

func TestNamesSorted(t *testing.T) {
	names := Names()
	assert.Equal(t, len(Builtins), len(names))
	for n := 1; n < len(names); n++ {
		assert.Less(t, names[n-1], names[n])
	}
}
