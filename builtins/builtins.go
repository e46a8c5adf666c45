// Package builtins carries the built in function table.  Each entry
// pairs the callable with the description line FUNCTIONS prints.
package builtins

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/retrolang/dawbasic/berrors"
	"github.com/retrolang/dawbasic/object"
)

// Builtin is one built in function
type Builtin struct {
	Desc string
	Fn   func(env *object.Environment, args []object.Object) (object.Object, error)
}

// realFn builds the one parameter numeric functions that always give
// back a Real.  arityMsg is the exact complaint for a wrong parameter
// count, a few of them name the wrong function.
func realFn(desc, arityMsg string, impl func(float64) float64) *Builtin {
	return &Builtin{
		Desc: desc,
		Fn: func(env *object.Environment, args []object.Object) (object.Object, error) {
			if len(args) != 1 {
				return nil, berrors.NewSyntax(arityMsg)
			}
			val, err := object.ToFloat(args[0])
			if err != nil {
				return nil, err
			}
			return &object.Real{Value: impl(val)}, nil
		},
	}
}

var Builtins = map[string]*Builtin{
	"COS": realFn("COS( Angle ) -> Returns the cosine of angle in radians", "COS requires 1 parameter", math.Cos),
	"SIN": realFn("SIN( Angle ) -> Returns the sine of angle in radians", "SIN requires 1 parameter", math.Sin),
	"TAN": realFn("TAN( Angle ) -> Returns the tangent of angle in radians", "TAN requires 1 parameter", math.Tan),
	"ATN": realFn("ATN( Angle ) -> Returns the arctangent of angle in radians", "ATN requires 1 parameter", math.Atan),
	"EXP": realFn("EXP( Exponent ) -> Resturn e raised to the power of exponent. Where e = 2.71828183...", "EXP requires 1 parameter", math.Exp),
	"LOG": realFn("LOG( x ) -> Returns the natural logarithm of x", "LOG requires 1 parameter", math.Log),
	"SQR": realFn("SQR( x ) -> Returns the square root of x", "SQRT requires 1 parameter", math.Sqrt),

	"SQUARE": {
		Desc: "SQUARE( x ) -> Returns x squared",
		Fn: func(env *object.Environment, args []object.Object) (object.Object, error) {
			if len(args) != 1 {
				return nil, berrors.NewSyntax("SQR requires 1 parameter")
			}
			if val, ok := args[0].(*object.Integer); ok {
				return &object.Integer{Value: val.Value * val.Value}, nil
			}
			num, err := object.ToFloat(args[0])
			if err != nil {
				return nil, err
			}
			return &object.Real{Value: num * num}, nil
		},
	},

	"ABS": {
		Desc: "ABS( x ) -> Returns the absolute value of x",
		Fn: func(env *object.Environment, args []object.Object) (object.Object, error) {
			if len(args) != 1 {
				return nil, berrors.NewSyntax("SIN requires 1 parameter")
			}
			if val, ok := args[0].(*object.Integer); ok {
				res := val.Value
				if res < 0 {
					res = -res
				}
				return &object.Integer{Value: res}, nil
			}
			num, err := object.ToFloat(args[0])
			if err != nil {
				return nil, err
			}
			return &object.Real{Value: math.Abs(num)}, nil
		},
	},

	"SGN": {
		Desc: "SGN( x ) -> Returns the sign of x ( -1 for negative, 0 for 0, and 1 for positive)",
		Fn: func(env *object.Environment, args []object.Object) (object.Object, error) {
			if len(args) != 1 {
				return nil, berrors.NewSyntax("SGN requires 1 parameter")
			}
			num, err := object.ToFloat(args[0])
			if err != nil {
				return nil, err
			}
			sign := 0.0
			if num > 0 {
				sign = 1
			} else if num < 0 {
				sign = -1
			}
			if args[0].Type() == object.INTEGER_OBJ {
				return &object.Integer{Value: int32(sign)}, nil
			}
			return &object.Real{Value: sign}, nil
		},
	},

	"INT": {
		Desc: "INT( x ) -> Returns x truncated to the greatest integer less or equal",
		Fn: func(env *object.Environment, args []object.Object) (object.Object, error) {
			if len(args) != 1 {
				return nil, berrors.NewSyntax("INT requires 1 parameter")
			}
			if args[0].Type() == object.INTEGER_OBJ {
				return args[0], nil
			}
			num, err := object.ToFloat(args[0])
			if err != nil {
				return nil, err
			}
			return &object.Integer{Value: int32(math.Round(num - 0.5))}, nil
		},
	},

	"RND": {
		Desc: "RND( [s] ) -> Returns a random number between 0.0 and 1.0.  An optional seed can be specified",
		Fn: func(env *object.Environment, args []object.Object) (object.Object, error) {
			if len(args) <= 1 {
				return nil, berrors.NewSyntax("INT requires 1 or 0 parameters")
			}
			return nil, berrors.NewSyntax("Not implemented")
		},
	},

	"NEG": {
		Desc: "NEG( x ) -> Returns the negated number",
		Fn: func(env *object.Environment, args []object.Object) (object.Object, error) {
			if len(args) != 1 {
				return nil, berrors.NewSyntax("NEG requires 1 parameter")
			}
			switch val := args[0].(type) {
			case *object.Integer:
				return &object.Integer{Value: -val.Value}, nil
			case *object.Real:
				return &object.Real{Value: -val.Value}, nil
			}
			return nil, berrors.NewSyntax("Attempt to multiply non-numeric types")
		},
	},

	"POW": {
		Desc: "POW( base, exponent ) -> Returns base raised to the power exponent",
		Fn: func(env *object.Environment, args []object.Object) (object.Object, error) {
			if len(args) != 2 {
				return nil, berrors.NewSyntax("POW requires 2 parameters")
			}
			base, err := object.ToFloat(args[0])
			if err != nil {
				return nil, err
			}
			exp, err := object.ToFloat(args[1])
			if err != nil {
				return nil, err
			}
			if object.PromoteKinds(args[0].Type(), args[1].Type()) == object.INTEGER_OBJ {
				return &object.Integer{Value: int32(math.Pow(base, exp))}, nil
			}
			return &object.Real{Value: math.Pow(base, exp)}, nil
		},
	},

	"NOT": {
		Desc: "Boolean negation",
		Fn: func(env *object.Environment, args []object.Object) (object.Object, error) {
			if len(args) != 1 {
				return nil, berrors.NewSyntax("NOT requires 1 parameter")
			}
			val, err := object.ToBool(args[0])
			if err != nil {
				return nil, err
			}
			return &object.Boolean{Value: !val}, nil
		},
	},

	"LEN": {
		Desc: "LEN( s ) -> Returns the length of string s",
		Fn: func(env *object.Environment, args []object.Object) (object.Object, error) {
			if len(args) != 1 {
				return nil, berrors.NewSyntax("LEN requires 1 parameter")
			}
			str, ok := args[0].(*object.String)
			if !ok {
				return nil, berrors.NewSyntax("LEN only works on string data")
			}
			return &object.Integer{Value: int32(len(str.Value))}, nil
		},
	},

	"LEFT$": {
		Desc: "LEFT$( string, len ) -> Returns the left side of the string up to len characters long",
		Fn: func(env *object.Environment, args []object.Object) (object.Object, error) {
			if len(args) != 2 {
				return nil, berrors.NewSyntax("LEFT$ requires 2 parameters")
			}
			str, ok := args[0].(*object.String)
			if !ok {
				return nil, berrors.NewSyntax("The first parameter of LEFT$ must be a string")
			}
			size, ok := args[1].(*object.Integer)
			if !ok {
				return nil, berrors.NewSyntax("The second parameter of LEFT$ must be an integer")
			}
			if size.Value < 0 {
				return nil, berrors.NewSyntax("The len parameter of LEFT$ must be positive")
			}
			cut := int(size.Value)
			if cut > len(str.Value) {
				cut = len(str.Value)
			}
			return &object.String{Value: str.Value[:cut]}, nil
		},
	},

	"RIGHT$": {
		Desc: "RIGHT$( string, len ) -> Returns the right side of the string up to len characters long",
		Fn: func(env *object.Environment, args []object.Object) (object.Object, error) {
			if len(args) != 2 {
				return nil, berrors.NewSyntax("RIGHT$ requires 2 parameters")
			}
			str, ok := args[0].(*object.String)
			if !ok {
				return nil, berrors.NewSyntax("The first parameter of RIGHT$ must be a string")
			}
			size, ok := args[1].(*object.Integer)
			if !ok {
				return nil, berrors.NewSyntax("The second parameter of RIGHT$ must be an integer")
			}
			if size.Value < 0 {
				return nil, berrors.NewSyntax("The len parameter of RIGHT$ must be positive")
			}
			start := len(str.Value) - int(size.Value)
			if start < 0 {
				start = 0
			}
			return &object.String{Value: str.Value[start:]}, nil
		},
	},

	"MID$": {
		Desc: "MID$( string, start, len ) -> Returns the middle of the string from start up to len characters long",
		Fn: func(env *object.Environment, args []object.Object) (object.Object, error) {
			if len(args) != 3 {
				return nil, berrors.NewSyntax("MID$ requires 3 parameters")
			}
			str, ok := args[0].(*object.String)
			if !ok {
				return nil, berrors.NewSyntax("The first parameter of MID$ must be a string")
			}
			start, okStart := args[1].(*object.Integer)
			size, okSize := args[2].(*object.Integer)
			if !okStart || !okSize {
				return nil, berrors.NewSyntax("The parameters start and len of MID$ must be an integer")
			}
			if start.Value < 1 {
				return nil, berrors.NewSyntax("The start parameter of MID$ must be greater than zero")
			}
			if size.Value < 1 {
				return nil, berrors.NewSyntax("The len parameter of MID$ must be positive")
			}
			// BASIC strings start at 1
			from := int(start.Value) - 1
			if from > len(str.Value) {
				from = len(str.Value)
			}
			to := from + int(size.Value)
			if to > len(str.Value) {
				to = len(str.Value)
			}
			return &object.String{Value: str.Value[from:to]}, nil
		},
	},

	"STR$": {
		Desc: "STR$( x ) -> Converts a number to a string",
		Fn: func(env *object.Environment, args []object.Object) (object.Object, error) {
			if len(args) != 1 {
				return nil, berrors.NewSyntax("STR$ requires 1 parameter")
			}
			switch args[0].Type() {
			case object.INTEGER_OBJ, object.REAL_OBJ:
				return &object.String{Value: args[0].Inspect()}, nil
			}
			return nil, berrors.NewSyntax("STR$ only works on numeric data")
		},
	},

	"VAL": {
		Desc: "VAL( s ) -> Converts a string to a number",
		Fn: func(env *object.Environment, args []object.Object) (object.Object, error) {
			if len(args) != 1 {
				return nil, berrors.NewSyntax("VAL requires 1 parameter")
			}
			str, ok := args[0].(*object.String)
			if !ok {
				return nil, berrors.NewSyntax("VAL only works on string data")
			}
			text := strings.TrimSpace(str.Value)
			switch object.ClassifyLiteral(text) {
			case object.INTEGER_OBJ:
				num, err := strconv.ParseInt(text, 10, 32)
				if err != nil {
					return nil, berrors.NewSyntax("Attempt to create a numeric BasicValue from a non-numeric string")
				}
				return &object.Integer{Value: int32(num)}, nil
			case object.REAL_OBJ:
				num, err := strconv.ParseFloat(text, 64)
				if err != nil {
					return nil, berrors.NewSyntax("Attempt to create a numeric BasicValue from a non-numeric string")
				}
				return &object.Real{Value: num}, nil
			}
			return nil, berrors.NewSyntax("Attempt to convert a string of non-numbers to a number")
		},
	},

	"ASC": {
		Desc: "ASC( s ) -> Returns the ASCII code of the first character of a string",
		Fn: func(env *object.Environment, args []object.Object) (object.Object, error) {
			if len(args) != 1 {
				return nil, berrors.NewSyntax("ASC requires 1 parameter")
			}
			str, ok := args[0].(*object.String)
			if !ok {
				return nil, berrors.NewSyntax("ASC only works on string data")
			}
			if len(str.Value) == 0 {
				return &object.Integer{Value: 0}, nil
			}
			return &object.Integer{Value: int32(str.Value[0])}, nil
		},
	},

	"CHR$": {
		Desc: "CHR$( x ) -> Returns a string with the character of the specified ASCII code",
		Fn: func(env *object.Environment, args []object.Object) (object.Object, error) {
			if len(args) != 1 {
				return nil, berrors.NewSyntax("CHR$ requires 1 parameter")
			}
			code, ok := args[0].(*object.Integer)
			if !ok {
				return nil, berrors.NewSyntax("CHR$ only works on integer data")
			}
			if code.Value < 0 || code.Value > 255 {
				return nil, berrors.NewSyntax("Specified ASCII code must be between 0 and 255 inclusive")
			}
			return &object.String{Value: string([]byte{byte(code.Value)})}, nil
		},
	},
}

// Lookup finds a builtin by name
func Lookup(name string) (*Builtin, bool) {
	fn, ok := Builtins[object.Canon(name)]
	return fn, ok
}

// IsBuiltin reports whether name belongs to a built in function
func IsBuiltin(name string) bool {
	_, ok := Lookup(name)
	return ok
}

// Call runs the named builtin against args
func Call(env *object.Environment, name string, args []object.Object) (object.Object, error) {
	fn, ok := Lookup(name)
	if !ok {
		return nil, berrors.NewFatal("Expected function '%s' to exist.  Could not find it", object.Canon(name))
	}
	return fn.Fn(env, args)
}

// Names lists the builtins in sorted order for the FUNCTIONS listing
func Names() []string {
	names := make([]string, 0, len(Builtins))
	for name := range Builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
