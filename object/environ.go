package object

import (
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var upper = cases.Upper(language.English)

// Canon folds a symbol name to its canonical upper-cased form.  Every
// namespace lookup goes through here so PRINT x and PRINT X agree.
func Canon(name string) string {
	return upper.String(strings.TrimSpace(name))
}

type constant struct {
	value Object
	desc  string
}

// Environment holds everything a session remembers between lines:
// scalar variables, constants with their descriptions, and DIMmed
// arrays.  The three namespaces are disjoint by construction.
type Environment struct {
	variables map[string]Object
	constants map[string]constant
	arrays    map[string]*Array
	term      Console
}

// NewEnvironment creates a place to store variables
func NewEnvironment(term Console) *Environment {
	return &Environment{
		variables: make(map[string]Object),
		constants: make(map[string]constant),
		arrays:    make(map[string]*Array),
		term:      term,
	}
}

// Terminal allows access to the output console
func (e *Environment) Terminal() Console {
	return e.term
}

// Lookup resolves a bare symbol to its value, constants winning over
// variables.
func (e *Environment) Lookup(name string) (Object, bool) {
	cn := Canon(name)
	if c, ok := e.constants[cn]; ok {
		return c.value, true
	}
	obj, ok := e.variables[cn]
	return obj, ok
}

// IsSymbol reports whether name is a known variable or constant
func (e *Environment) IsSymbol(name string) bool {
	_, ok := e.Lookup(name)
	return ok
}

// SetVariable stores a variable.  Collision rules against keywords,
// functions and constants belong to the caller.
func (e *Environment) SetVariable(name string, val Object) {
	e.variables[Canon(name)] = val
}

// GetVariable fetches a variable without consulting constants
func (e *Environment) GetVariable(name string) (Object, bool) {
	obj, ok := e.variables[Canon(name)]
	return obj, ok
}

// RemoveVariable deletes one variable, reporting whether it existed
func (e *Environment) RemoveVariable(name string) bool {
	cn := Canon(name)
	_, ok := e.variables[cn]
	delete(e.variables, cn)
	return ok
}

// ClearVariables wipes the variable namespace.  Constants and arrays
// survive.
func (e *Environment) ClearVariables() {
	e.variables = make(map[string]Object)
}

// VariableNames lists the variable names in sorted order
func (e *Environment) VariableNames() []string {
	return sortedKeys(e.variables)
}

// SetConstant stores a constant, displacing any variable of the same
// name first.
func (e *Environment) SetConstant(name string, val Object, desc string) {
	cn := Canon(name)
	delete(e.variables, cn)
	e.constants[cn] = constant{value: val, desc: desc}
}

// GetConstant fetches a constant value
func (e *Environment) GetConstant(name string) (Object, bool) {
	c, ok := e.constants[Canon(name)]
	if !ok {
		return nil, false
	}
	return c.value, true
}

// IsConstant reports whether name is in the constant namespace
func (e *Environment) IsConstant(name string) bool {
	_, ok := e.constants[Canon(name)]
	return ok
}

// ConstantDesc gives the description text recorded with a constant
func (e *Environment) ConstantDesc(name string) string {
	return e.constants[Canon(name)].desc
}

// ConstantNames lists the constant names in sorted order
func (e *Environment) ConstantNames() []string {
	return sortedKeys(e.constants)
}

// GetArray fetches a DIMmed array
func (e *Environment) GetArray(name string) (*Array, bool) {
	a, ok := e.arrays[Canon(name)]
	return a, ok
}

// SetArray stores an array under its canonical name
func (e *Environment) SetArray(name string, a *Array) {
	e.arrays[Canon(name)] = a
}

// ArrayNames lists the array names in sorted order
func (e *Environment) ArrayNames() []string {
	return sortedKeys(e.arrays)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
