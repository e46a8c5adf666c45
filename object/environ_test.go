package object

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanon(t *testing.T) {
	tests := []struct {
		inp string
		exp string
	}{
		{"hello", "HELLO"},
		{"Current_Line", "CURRENT_LINE"},
		{"A", "A"},
		{"  spaced \t", "SPACED"},
		{"", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.exp, Canon(tt.inp))
	}
}

func TestVariables(t *testing.T) {
	env := NewEnvironment(nil)

	env.SetVariable("score", &Integer{Value: 52})

	obj, ok := env.GetVariable("SCORE")
	assert.True(t, ok)
	assert.Equal(t, "52", obj.Inspect())

	obj, ok = env.Lookup("Score")
	assert.True(t, ok)
	assert.Equal(t, "52", obj.Inspect())

	_, ok = env.GetVariable("missing")
	assert.False(t, ok)

	assert.True(t, env.RemoveVariable("score"))
	assert.False(t, env.RemoveVariable("score"))
	assert.False(t, env.IsSymbol("score"))
}

func TestConstantsWin(t *testing.T) {
	env := NewEnvironment(nil)

	env.SetVariable("pi", &Integer{Value: 3})
	env.SetConstant("PI", &Real{Value: 3.14159265358979}, "Trigometric Pi value")

	// the variable is displaced when the constant lands
	_, ok := env.GetVariable("pi")
	assert.False(t, ok)

	obj, ok := env.Lookup("pi")
	assert.True(t, ok)
	assert.Equal(t, ObjectType(REAL_OBJ), obj.Type())

	assert.True(t, env.IsConstant("Pi"))
	assert.Equal(t, "Trigometric Pi value", env.ConstantDesc("PI"))
}

func TestClearVariables(t *testing.T) {
	env := NewEnvironment(nil)

	env.SetVariable("A", &Integer{Value: 1})
	env.SetVariable("B", &Integer{Value: 2})
	env.SetConstant("TRUE", &Boolean{Value: true}, "")
	env.SetArray("GRID", NewArray([]int{3, 2}))

	env.ClearVariables()

	assert.Empty(t, env.VariableNames())
	assert.True(t, env.IsConstant("TRUE"))

	_, ok := env.GetArray("grid")
	assert.True(t, ok)
}

func TestSortedNames(t *testing.T) {
	env := NewEnvironment(nil)

	env.SetVariable("zebra", &Integer{Value: 1})
	env.SetVariable("apple", &Integer{Value: 2})
	env.SetVariable("mango", &Integer{Value: 3})

	assert.Equal(t, []string{"APPLE", "MANGO", "ZEBRA"}, env.VariableNames())
}
