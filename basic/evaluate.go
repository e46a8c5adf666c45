package basic

import (
	"strconv"
	"strings"

	"github.com/retrolang/dawbasic/berrors"
	"github.com/retrolang/dawbasic/builtins"
	"github.com/retrolang/dawbasic/object"
)

// evaluate reduces one expression to a single value using two explicit
// stacks, no token pass.  Operators pop and apply whenever the incoming
// operator does not bind tighter than the stack top.
func (i *Interpreter) evaluate(text string) (object.Object, error) {
	i.evalDepth++
	defer func() { i.evalDepth-- }()
	if i.evalDepth > maxEvalDepth {
		return nil, berrors.NewSyntax("Expression is nested too deeply")
	}

	var operands []object.Object
	var operators []string

	isHigher := func(op string) (bool, error) {
		if len(operators) == 0 {
			return true, nil
		}
		newRank, err := operatorRank(op)
		if err != nil {
			return false, err
		}
		topRank, err := operatorRank(operators[len(operators)-1])
		if err != nil {
			return false, err
		}
		return newRank < topRank, nil
	}

	popOperand := func() (object.Object, error) {
		if len(operands) == 0 {
			return nil, berrors.NewSyntax("Binary operator with only left hand side, not right")
		}
		top := operands[len(operands)-1]
		operands = operands[:len(operands)-1]
		return top, nil
	}

	apply := func(op string) error {
		rhs, err := popOperand()
		if err != nil {
			return err
		}
		if fn, ok := unaryOperators[op]; ok {
			result, err := fn(i.env, rhs)
			if err != nil {
				return err
			}
			operands = append(operands, result)
			return nil
		}
		fn, ok := binaryOperators[op]
		if !ok {
			return berrors.NewSyntax("Unknown operator %s", op)
		}
		lhs, err := popOperand()
		if err != nil {
			return err
		}
		result, err := fn(i.env, lhs, rhs)
		if err != nil {
			return err
		}
		operands = append(operands, result)
		return nil
	}

	for pos := 0; pos < len(text); pos++ {
		c := text[pos]
		if c == 'a' {
			c = 'A'
		} else if c == 'o' {
			c = 'O'
		}

		switch {
		case c == '"':
			rest := text[pos:]
			strEnd, err := findEndOfString(rest)
			if err != nil {
				return nil, err
			}
			lit := removeOuterQuotes(rest[:strEnd+1])
			lit = strings.ReplaceAll(lit, `\"`, `"`)
			operands = append(operands, &object.String{Value: removeOuterQuotes(lit)})
			pos += strEnd

		case c == '(':
			inner := text[pos+1:]
			brEnd, err := findEndOfBracket(inner)
			if err != nil {
				return nil, err
			}
			val, err := i.evaluate(inner[:brEnd])
			if err != nil {
				return nil, err
			}
			operands = append(operands, val)
			pos += brEnd + 1

		case c == ' ' || c == '\t':
			for pos+1 < len(text) && (text[pos+1] == ' ' || text[pos+1] == '\t') {
				pos++
			}

		case isOperatorChar(c) ||
			(c == 'A' && isLogicalWord(text, pos, "AND")) ||
			(c == 'O' && isLogicalWord(text, pos, "OR")):
			op := string(c)
			switch {
			case c == '-':
				// Unary negation when nothing precedes, or when the
				// operand count says no right operand is pending.
				if (len(operators) == 0 && len(operands) == 0) ||
					(len(operators) != 0 && len(operands)%2 == 1) {
					op = "NEG"
				}
			case c == '<' || c == '>':
				if pos >= len(text)-1 {
					return nil, berrors.NewSyntax("Binary operator with only left hand side, not right")
				}
				if text[pos+1] == '=' {
					pos++
					op += "="
				}
			case c == 'A':
				op = "AND"
				pos += 2
			case c == 'O':
				op = "OR"
				pos++
			}
			for {
				higher, err := isHigher(op)
				if err != nil {
					return nil, err
				}
				if higher {
					break
				}
				prev := operators[len(operators)-1]
				operators = operators[:len(operators)-1]
				if err := apply(prev); err != nil {
					return nil, err
				}
			}
			operators = append(operators, op)

		default:
			rest := text[pos:]
			opEnd, err := findEndOfOperand(rest)
			if err != nil {
				return nil, err
			}
			operand := rest[:opEnd+1]
			name, params, err := i.splitCall(operand)
			if err != nil {
				return nil, err
			}
			switch {
			case len(params) > 0:
				switch {
				case builtins.IsBuiltin(name):
					result, err := builtins.Call(i.env, name, params)
					if err != nil {
						return nil, err
					}
					operands = append(operands, result)
				default:
					arr, ok := i.env.GetArray(name)
					if !ok {
						return nil, berrors.NewSyntax("Unknown symbol name '%s'", name)
					}
					cell, err := arrayCell(arr, params)
					if err != nil {
						return nil, err
					}
					operands = append(operands, cell)
				}
			default:
				if val, ok := i.env.Lookup(name); ok {
					operands = append(operands, val)
					break
				}
				switch object.ClassifyLiteral(operand) {
				case object.INTEGER_OBJ:
					val, err := makeInteger(operand)
					if err != nil {
						return nil, err
					}
					operands = append(operands, val)
				case object.REAL_OBJ:
					val, err := makeReal(operand)
					if err != nil {
						return nil, err
					}
					operands = append(operands, val)
				default:
					return nil, berrors.NewSyntax("Unknown symbol '%s'", operand)
				}
			}
			pos += opEnd
		}
	}

	for len(operators) > 0 {
		prev := operators[len(operators)-1]
		operators = operators[:len(operators)-1]
		if err := apply(prev); err != nil {
			return nil, err
		}
	}

	if len(operands) == 0 {
		return &object.Empty{}, nil
	}
	if len(operands) > 1 {
		return nil, berrors.NewSyntax("Unknown error while parsing line.  Not value left at end of evaluation")
	}
	return operands[0], nil
}

// evaluateParameters evaluates a comma separated argument list.  Commas
// are honored outside quotes only, so an argument containing a call with
// its own commas does not split where one would hope.
func (i *Interpreter) evaluateParameters(text string) ([]object.Object, error) {
	text = removeOuterBracket(text)
	if text == "" {
		return nil, nil
	}

	var params []object.Object
	last := 0
	for pos := 0; pos <= len(text); pos++ {
		if pos < len(text) && text[pos] == '"' {
			strEnd, err := findEndOfString(text[pos:])
			if err != nil {
				return nil, err
			}
			pos += strEnd
			continue
		}
		if pos < len(text) && text[pos] != ',' {
			continue
		}
		val, err := i.evaluate(text[last:pos])
		if err != nil {
			return nil, err
		}
		params = append(params, val)
		last = pos + 1
	}
	return params, nil
}

// splitCall separates a call-shaped operand into its name and evaluated
// arguments.  Text without brackets comes back whole with nil arguments.
func (i *Interpreter) splitCall(text string) (string, []object.Object, error) {
	open := strings.IndexByte(text, '(')
	if open < 0 {
		return text, nil, nil
	}
	if strings.Count(text, "(") != strings.Count(text, ")") {
		return "", nil, berrors.NewSyntax("Unclosed bracket on function '%s'", text)
	}
	last := strings.LastIndexByte(text, ')')
	if last < open {
		return "", nil, berrors.NewSyntax("Unclosed bracket on function '%s'", text)
	}
	params, err := i.evaluateParameters(text[open+1 : last])
	if err != nil {
		return "", nil, err
	}
	return text[:open], params, nil
}

// findEndOfString returns the index of the quote closing the literal that
// starts text.  Escaped quotes do not terminate.
func findEndOfString(text string) (int, error) {
	start := 0
	if len(text) > 0 && text[0] == '"' {
		start = 1
	}
	quotes := 1
	for pos := start; pos < len(text); pos++ {
		if text[pos] == '"' && !(pos != 0 && text[pos-1] == '\\') {
			quotes--
		}
		if quotes <= 0 {
			return pos, nil
		}
	}
	return 0, berrors.NewSyntax("Could not find end of quoted string, not closing quotes")
}

// findEndOfBracket is called on the text following an opening bracket and
// returns the index of its match.  Quoted strings are skipped whole.
func findEndOfBracket(text string) (int, error) {
	count := 1
	for pos := 0; pos < len(text); pos++ {
		switch text[pos] {
		case '"':
			strEnd, err := findEndOfString(text[pos:])
			if err != nil {
				return 0, err
			}
			pos += strEnd
		case '(':
			count++
		case ')':
			count--
			if count == 0 {
				return pos, nil
			}
		}
	}
	return 0, berrors.NewSyntax("Unclosed bracket found")
}

// findEndOfOperand returns the index of the last character belonging to
// the operand that starts text.  Bracketed stretches swallow operator
// characters, commas and quotes so call arguments stay attached.
func findEndOfOperand(text string) (int, error) {
	bracketCount := 0
	hasBrackets := false
	for pos := 0; pos < len(text); pos++ {
		c := text[pos]
		if bracketCount <= 0 {
			switch {
			case c == '"':
				return 0, berrors.NewSyntax("Unexpected quote \" character at position %d", pos)
			case c == ')':
				return 0, berrors.NewSyntax("Unexpected close bracket ) character at position %d", pos)
			case isOperandEnd(c):
				return pos - 1, nil
			case c == '(':
				if hasBrackets {
					return 0, berrors.NewSyntax("Unexpected opening bracket after brackets have closed at position %d", pos)
				}
				bracketCount++
				hasBrackets = true
			}
		} else {
			switch c {
			case '"':
				strEnd, err := findEndOfString(text[pos:])
				if err != nil {
					return 0, err
				}
				pos += strEnd
			case ')':
				bracketCount--
			case '(':
				bracketCount++
			}
		}
	}
	return len(text) - 1, nil
}

func isOperandEnd(c byte) bool {
	switch c {
	case ' ', '\t', '^', '*', '/', '+', '-', '=', '<', '>', '%':
		return true
	}
	return false
}

func isOperatorChar(c byte) bool {
	switch c {
	case '%', '^', '*', '/', '+', '-', '<', '>', '=':
		return true
	}
	return false
}

// isLogicalWord reports whether word starts at pos and is followed by a
// space or tab.  The trailing blank requirement keeps symbols such as
// ANDY out of the operator path.
func isLogicalWord(text string, pos int, word string) bool {
	if pos+len(word) >= len(text) {
		return false
	}
	if !strings.EqualFold(text[pos:pos+len(word)], word) {
		return false
	}
	next := text[pos+len(word)]
	return next == ' ' || next == '\t'
}

func removeOuterChars(text string, lhs, rhs byte) string {
	if len(text) >= 2 && text[0] == lhs && text[len(text)-1] == rhs {
		return text[1 : len(text)-1]
	}
	return text
}

func removeOuterQuotes(text string) string {
	return removeOuterChars(text, '"', '"')
}

func removeOuterBracket(text string) string {
	return removeOuterChars(text, '(', ')')
}

func makeInteger(text string) (object.Object, error) {
	val, err := strconv.ParseInt(strings.TrimSpace(text), 10, 32)
	if err != nil {
		return nil, berrors.NewSyntax("Attempt to create a numeric BasicValue from a non-numeric string")
	}
	return &object.Integer{Value: int32(val)}, nil
}

func makeReal(text string) (object.Object, error) {
	val, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil {
		return nil, berrors.NewSyntax("Attempt to create a numeric BasicValue from a non-numeric string")
	}
	return &object.Real{Value: val}, nil
}

// toIndexes narrows evaluated subscripts to plain ints.
func toIndexes(params []object.Object) ([]int, error) {
	indexes := make([]int, 0, len(params))
	for _, p := range params {
		val, ok := p.(*object.Integer)
		if !ok {
			return nil, berrors.NewSyntax("Array indexes must be INTEGER values")
		}
		indexes = append(indexes, int(val.Value))
	}
	return indexes, nil
}

func arrayCell(arr *object.Array, params []object.Object) (object.Object, error) {
	indexes, err := toIndexes(params)
	if err != nil {
		return nil, err
	}
	cell, err := arr.Offset(indexes)
	if err != nil {
		return nil, berrors.New(berrors.Syntax, err.Error())
	}
	return arr.Cells[cell], nil
}
