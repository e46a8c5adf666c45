package basic

import (
	"github.com/retrolang/dawbasic/berrors"
	"github.com/retrolang/dawbasic/builtins"
	"github.com/retrolang/dawbasic/object"
)

var (
	TRUE  = &object.Boolean{Value: true}
	FALSE = &object.Boolean{Value: false}
)

// operatorRank orders operators for the evaluator stacks.  A lower rank
// binds tighter.  ">>" and "<<" hold reserved slots and are never lexed.
func operatorRank(op string) (int, error) {
	switch op {
	case "NEG":
		return 1, nil
	case "^":
		return 2, nil
	case "*", "/":
		return 3, nil
	case "+", "-", "%":
		return 4, nil
	case ">>", "<<":
		return 5, nil
	case ">", ">=", "<", "<=":
		return 6, nil
	case "=":
		return 7, nil
	case "AND":
		return 8, nil
	case "OR":
		return 9, nil
	}
	return 0, berrors.NewFatal("Unknown operator passed to operator_rank")
}

type binaryFn func(env *object.Environment, lhs, rhs object.Object) (object.Object, error)
type unaryFn func(env *object.Environment, rhs object.Object) (object.Object, error)

var binaryOperators = map[string]binaryFn{
	"*":   opMultiply,
	"/":   opDivide,
	"%":   opModulus,
	"+":   opAdd,
	"-":   opSubtract,
	"^":   opPower,
	"=":   opEqual,
	"<":   opLess,
	"<=":  opLessEqual,
	">":   opGreater,
	">=":  opGreaterEqual,
	"AND": opAnd,
	"OR":  opOr,
}

var unaryOperators = map[string]unaryFn{
	"NEG": opNegate,
}

func boolObj(v bool) *object.Boolean {
	if v {
		return TRUE
	}
	return FALSE
}

func intPair(lhs, rhs object.Object) (int32, int32) {
	return lhs.(*object.Integer).Value, rhs.(*object.Integer).Value
}

func realPair(lhs, rhs object.Object) (float64, float64) {
	l, _ := object.ToFloat(lhs)
	r, _ := object.ToFloat(rhs)
	return l, r
}

func compareKindsError(lhs, rhs object.Object) error {
	return berrors.NewSyntax("Attempt to compare different types %s and %s",
		object.TypeName(lhs.Type()), object.TypeName(rhs.Type()))
}

func opMultiply(env *object.Environment, lhs, rhs object.Object) (object.Object, error) {
	switch object.PromoteKinds(lhs.Type(), rhs.Type()) {
	case object.INTEGER_OBJ:
		l, r := intPair(lhs, rhs)
		return &object.Integer{Value: l * r}, nil
	case object.REAL_OBJ:
		l, r := realPair(lhs, rhs)
		return &object.Real{Value: l * r}, nil
	}
	return nil, berrors.NewSyntax("Attempt to multiply non-numeric types")
}

func opDivide(env *object.Environment, lhs, rhs object.Object) (object.Object, error) {
	switch object.PromoteKinds(lhs.Type(), rhs.Type()) {
	case object.INTEGER_OBJ:
		l, r := intPair(lhs, rhs)
		if r == 0 {
			return nil, berrors.NewSyntax("Attempt to divide by zero")
		}
		return &object.Integer{Value: l / r}, nil
	case object.REAL_OBJ:
		// IEEE rules apply, a zero divisor yields an infinity
		l, r := realPair(lhs, rhs)
		return &object.Real{Value: l / r}, nil
	}
	return nil, berrors.NewSyntax("Attempt to multiply non-numeric types")
}

func opModulus(env *object.Environment, lhs, rhs object.Object) (object.Object, error) {
	if object.PromoteKinds(lhs.Type(), rhs.Type()) != object.INTEGER_OBJ {
		return nil, berrors.NewSyntax("Attempt to do modular arithmetic with non-integers")
	}
	l, r := intPair(lhs, rhs)
	if r == 0 {
		return nil, berrors.NewSyntax("Attempt to divide by zero")
	}
	return &object.Integer{Value: l % r}, nil
}

// opAdd also serves as concatenation when either side is a String.  Each
// side is rendered to text and stripped of one set of outer quotes first.
func opAdd(env *object.Environment, lhs, rhs object.Object) (object.Object, error) {
	switch object.PromoteKinds(lhs.Type(), rhs.Type()) {
	case object.INTEGER_OBJ:
		l, r := intPair(lhs, rhs)
		return &object.Integer{Value: l + r}, nil
	case object.REAL_OBJ:
		l, r := realPair(lhs, rhs)
		return &object.Real{Value: l + r}, nil
	case object.STRING_OBJ:
		l := removeOuterQuotes(lhs.Inspect())
		r := removeOuterQuotes(rhs.Inspect())
		return &object.String{Value: l + r}, nil
	}
	return nil, berrors.NewSyntax("Attempt to add non-numeric types")
}

func opSubtract(env *object.Environment, lhs, rhs object.Object) (object.Object, error) {
	switch object.PromoteKinds(lhs.Type(), rhs.Type()) {
	case object.INTEGER_OBJ:
		l, r := intPair(lhs, rhs)
		return &object.Integer{Value: l - r}, nil
	case object.REAL_OBJ:
		l, r := realPair(lhs, rhs)
		return &object.Real{Value: l - r}, nil
	}
	return nil, berrors.NewSyntax("Attempt to multiply non-numeric types")
}

func opPower(env *object.Environment, lhs, rhs object.Object) (object.Object, error) {
	return builtins.Call(env, "POW", []object.Object{lhs, rhs})
}

func opEqual(env *object.Environment, lhs, rhs object.Object) (object.Object, error) {
	switch object.PromoteKinds(lhs.Type(), rhs.Type()) {
	case object.BOOLEAN_OBJ:
		l, _ := object.ToBool(lhs)
		r, _ := object.ToBool(rhs)
		return boolObj(l == r), nil
	case object.EMPTY_OBJ:
		if lhs.Type() != rhs.Type() {
			return nil, compareKindsError(lhs, rhs)
		}
		return boolObj(true), nil
	case object.INTEGER_OBJ:
		l, r := intPair(lhs, rhs)
		return boolObj(l == r), nil
	case object.REAL_OBJ:
		l, r := realPair(lhs, rhs)
		return boolObj(object.AlmostEqual(l, r)), nil
	case object.STRING_OBJ:
		return boolObj(lhs.Inspect() == rhs.Inspect()), nil
	}
	return nil, berrors.NewFatal("Unknown ValueType")
}

func opLess(env *object.Environment, lhs, rhs object.Object) (object.Object, error) {
	switch object.PromoteKinds(lhs.Type(), rhs.Type()) {
	case object.BOOLEAN_OBJ:
		l, _ := object.ToBool(lhs)
		r, _ := object.ToBool(rhs)
		return boolObj(!l && r), nil
	case object.EMPTY_OBJ:
		if lhs.Type() != rhs.Type() {
			return nil, compareKindsError(lhs, rhs)
		}
		return boolObj(false), nil
	case object.INTEGER_OBJ:
		l, r := intPair(lhs, rhs)
		return boolObj(l < r), nil
	case object.REAL_OBJ:
		l, r := realPair(lhs, rhs)
		return boolObj(l < r && !object.AlmostEqual(l, r)), nil
	case object.STRING_OBJ:
		return boolObj(lhs.Inspect() < rhs.Inspect()), nil
	}
	return nil, berrors.NewFatal("Unknown ValueType")
}

func opLessEqual(env *object.Environment, lhs, rhs object.Object) (object.Object, error) {
	switch object.PromoteKinds(lhs.Type(), rhs.Type()) {
	case object.BOOLEAN_OBJ:
		l, _ := object.ToBool(lhs)
		r, _ := object.ToBool(rhs)
		return boolObj(!l || r), nil
	case object.EMPTY_OBJ:
		if lhs.Type() != rhs.Type() {
			return nil, compareKindsError(lhs, rhs)
		}
		return boolObj(true), nil
	case object.INTEGER_OBJ:
		l, r := intPair(lhs, rhs)
		return boolObj(l <= r), nil
	case object.REAL_OBJ:
		l, r := realPair(lhs, rhs)
		return boolObj(l < r || object.AlmostEqual(l, r)), nil
	case object.STRING_OBJ:
		return boolObj(lhs.Inspect() <= rhs.Inspect()), nil
	}
	return nil, berrors.NewFatal("Unknown ValueType")
}

func opGreater(env *object.Environment, lhs, rhs object.Object) (object.Object, error) {
	switch object.PromoteKinds(lhs.Type(), rhs.Type()) {
	case object.BOOLEAN_OBJ:
		l, _ := object.ToBool(lhs)
		r, _ := object.ToBool(rhs)
		return boolObj(l && !r), nil
	case object.EMPTY_OBJ:
		if lhs.Type() != rhs.Type() {
			return nil, compareKindsError(lhs, rhs)
		}
		return boolObj(false), nil
	case object.INTEGER_OBJ:
		l, r := intPair(lhs, rhs)
		return boolObj(l > r), nil
	case object.REAL_OBJ:
		l, r := realPair(lhs, rhs)
		return boolObj(l > r && !object.AlmostEqual(l, r)), nil
	case object.STRING_OBJ:
		return boolObj(lhs.Inspect() > rhs.Inspect()), nil
	}
	return nil, berrors.NewFatal("Unknown ValueType")
}

func opGreaterEqual(env *object.Environment, lhs, rhs object.Object) (object.Object, error) {
	switch object.PromoteKinds(lhs.Type(), rhs.Type()) {
	case object.BOOLEAN_OBJ:
		l, _ := object.ToBool(lhs)
		r, _ := object.ToBool(rhs)
		return boolObj(l || !r), nil
	case object.EMPTY_OBJ:
		if lhs.Type() != rhs.Type() {
			return nil, compareKindsError(lhs, rhs)
		}
		return boolObj(true), nil
	case object.INTEGER_OBJ:
		l, r := intPair(lhs, rhs)
		return boolObj(l >= r), nil
	case object.REAL_OBJ:
		l, r := realPair(lhs, rhs)
		return boolObj(l > r || object.AlmostEqual(l, r)), nil
	case object.STRING_OBJ:
		return boolObj(lhs.Inspect() >= rhs.Inspect()), nil
	}
	return nil, berrors.NewFatal("Unknown ValueType")
}

// opAnd short-circuits: the right side is only converted when the left
// side holds true, so FALSE AND 5 succeeds while TRUE AND 5 errors.
func opAnd(env *object.Environment, lhs, rhs object.Object) (object.Object, error) {
	l, err := object.ToBool(lhs)
	if err != nil {
		return nil, err
	}
	if !l {
		return boolObj(false), nil
	}
	r, err := object.ToBool(rhs)
	if err != nil {
		return nil, err
	}
	return boolObj(r), nil
}

func opOr(env *object.Environment, lhs, rhs object.Object) (object.Object, error) {
	l, err := object.ToBool(lhs)
	if err != nil {
		return nil, err
	}
	if l {
		return boolObj(true), nil
	}
	r, err := object.ToBool(rhs)
	if err != nil {
		return nil, err
	}
	return boolObj(r), nil
}

func opNegate(env *object.Environment, rhs object.Object) (object.Object, error) {
	switch val := rhs.(type) {
	case *object.Integer:
		return &object.Integer{Value: -val.Value}, nil
	case *object.Real:
		return &object.Real{Value: -val.Value}, nil
	}
	return nil, berrors.NewSyntax("Attempt to apply a negative sign to a non-number")
}
