package object

import (
	"strings"

	"github.com/retrolang/dawbasic/berrors"
)

// ClassifyLiteral decides what kind of value a piece of bare text
// denotes.  Digits make an Integer, digits with one decimal point make
// a Real, anything else reads as a String.  A leading minus sign is
// allowed; a bare sign with no digits is a String.
func ClassifyLiteral(text string) ObjectType {
	text = strings.TrimSpace(text)
	if len(text) == 0 {
		return EMPTY_OBJ
	}

	start := 0
	if text[0] == '-' {
		if len(text) == 1 {
			return STRING_OBJ
		}
		start = 1
	}

	decimal := false
	for n := start; n < len(text); n++ {
		switch {
		case text[n] == '-':
			// an interior sign is not a number
			return STRING_OBJ
		case text[n] == '.':
			if decimal || n == len(text)-1 {
				return STRING_OBJ
			}
			decimal = true
		case text[n] < '0' || text[n] > '9':
			return STRING_OBJ
		}
	}

	if decimal {
		return REAL_OBJ
	}
	return INTEGER_OBJ
}

// ToFloat widens a numeric value out to a Real's float
func ToFloat(obj Object) (float64, error) {
	switch val := obj.(type) {
	case *Integer:
		return float64(val.Value), nil
	case *Real:
		return val.Value, nil
	}
	return 0, berrors.NewSyntax("Cannot convert non-numeric types to a number")
}

// ToBool unwraps a Boolean value
func ToBool(obj Object) (bool, error) {
	if val, ok := obj.(*Boolean); ok {
		return val.Value, nil
	}
	return false, berrors.NewSyntax("Attempt to convert a non-boolean to a boolean")
}
