package basic

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/retrolang/dawbasic/berrors"
	"github.com/retrolang/dawbasic/builtins"
	"github.com/retrolang/dawbasic/object"
)

// keywordFn handles one statement given the text after the keyword.
// The bool reports whether the session should keep going; errors are
// reported by the caller.
type keywordFn func(args string) (bool, error)

// registerKeywords wires the statement table.  It lives on the
// interpreter because every handler calls back into it.
func (i *Interpreter) registerKeywords() {
	i.keywords = map[string]keywordFn{
		"NEW":       i.kwNew,
		"CLR":       i.kwClr,
		"DELETE":    i.kwDelete,
		"DIM":       i.kwDim,
		"LET":       i.kwLet,
		"STOP":      i.kwStop,
		"CONT":      i.kwCont,
		"GOTO":      i.kwGoto,
		"GOSUB":     i.kwGosub,
		"RETURN":    i.kwReturn,
		"IF":        i.kwIf,
		"THEN":      i.kwThen,
		"PRINT":     i.kwPrint,
		"LIST":      i.kwList,
		"RUN":       i.kwRun,
		"VARS":      i.kwVars,
		"FUNCTIONS": i.kwFunctions,
		"KEYWORDS":  i.kwKeywords,
		"REM":       i.kwRem,
		"QUIT":      i.kwQuit,
		"EXIT":      i.kwExit,
		"END":       i.kwEnd,
	}
}

func (i *Interpreter) isKeyword(name string) bool {
	_, ok := i.keywords[object.Canon(name)]
	return ok
}

// kwNew drops the stored program, the variables and any parked run.
// Arrays and constants survive, matching CLR.
func (i *Interpreter) kwNew(args string) (bool, error) {
	i.child = nil
	i.program.Clear()
	i.env.ClearVariables()
	return true, nil
}

// kwClr clears all variables, or with a name just that one.
func (i *Interpreter) kwClr(args string) (bool, error) {
	if args == "" {
		i.env.ClearVariables()
		return true, nil
	}
	if !i.env.RemoveVariable(args) {
		return false, berrors.NewSyntax("Attempt to delete unknown variable")
	}
	return true, nil
}

func (i *Interpreter) kwDelete(args string) (bool, error) {
	if object.ClassifyLiteral(args) != object.INTEGER_OBJ {
		return false, berrors.NewSyntax("DELETE requires an INTEGER parameter for the line number to delete")
	}
	number, err := strconv.ParseInt(strings.TrimSpace(args), 10, 32)
	if err != nil {
		return false, berrors.NewSyntax("Attempt to create a numeric BasicValue from a non-numeric string")
	}
	// removing an absent line is quiet
	i.program.Remove(int(number))
	return true, nil
}

func (i *Interpreter) kwDim(args string) (bool, error) {
	name, sizes, found := splitInTwo(args, '(')
	if !found {
		return false, berrors.NewSyntax("Could not find parameters surrounded by ( )")
	}
	brEnd, err := findEndOfBracket(sizes)
	if err != nil {
		return false, err
	}
	params, err := i.evaluateParameters(sizes[:brEnd])
	if err != nil {
		return false, err
	}
	if len(params) < 1 || len(params) > 2 {
		return false, berrors.NewSyntax("Must specify at least 1 size parameter to DIM and optionally 2")
	}

	canon := object.Canon(name)
	if i.isKeyword(canon) || builtins.IsBuiltin(canon) || i.env.IsConstant(canon) {
		return false, berrors.NewSyntax("Cannot create an array with the same name as a keyword or function")
	}
	if _, ok := i.env.GetVariable(canon); ok {
		i.env.RemoveVariable(canon)
	} else if _, ok := i.env.GetArray(canon); ok {
		return false, berrors.NewSyntax("Attempt to Re-DIM an existing array")
	}

	dims, err := toSizes(params)
	if err != nil {
		return false, err
	}
	i.env.SetArray(canon, object.NewArray(dims))
	return true, nil
}

func toSizes(params []object.Object) ([]int, error) {
	dims := make([]int, 0, len(params))
	total := 1
	for _, p := range params {
		size, ok := p.(*object.Integer)
		if !ok {
			return nil, berrors.NewSyntax("Array sizes must be INTEGER values")
		}
		if size.Value < 1 {
			return nil, berrors.NewSyntax("Array sizes must be positive")
		}
		total *= int(size.Value)
		if total > maxArrayCells {
			return nil, berrors.NewSyntax("Array dimensions are too large")
		}
		dims = append(dims, int(size.Value))
	}
	return dims, nil
}

func (i *Interpreter) kwLet(args string) (bool, error) {
	_, err := i.letHelper(args, true)
	return err == nil, err
}

func (i *Interpreter) kwStop(args string) (bool, error) {
	if i.runMode == Immediate {
		return false, berrors.NewSyntax("Attempt to STOP from outside a program")
	}
	i.term.Println(fmt.Sprintf("BREAK IN %d", i.curLine))
	i.exiting = true
	return true, nil
}

// kwCont resumes the parked child run at the line after the break.
func (i *Interpreter) kwCont(args string) (bool, error) {
	if i.runMode == Deferred {
		return false, berrors.NewSyntax("Attempt to CONT from inside a program")
	}
	if i.child == nil {
		return false, berrors.NewSyntax("Cannot continue.  End of program reached")
	}
	return i.child.ContinueRun()
}

func (i *Interpreter) kwGoto(args string) (bool, error) {
	if i.runMode == Immediate {
		return false, berrors.NewSyntax("Attempt to GOTO from outside a program")
	}
	if object.ClassifyLiteral(args) != object.INTEGER_OBJ {
		return false, berrors.NewSyntax("Can only GOTO line numbers")
	}
	target, err := strconv.ParseInt(strings.TrimSpace(args), 10, 32)
	if err != nil {
		return false, berrors.NewSyntax("Attempt to create a numeric BasicValue from a non-numeric string")
	}
	if err := i.jumpTo(int(target)); err != nil {
		return false, err
	}
	return true, nil
}

func (i *Interpreter) kwGosub(args string) (bool, error) {
	if i.runMode == Immediate {
		return false, berrors.NewSyntax("Attempt to GOSUB from outside a program")
	}
	if len(i.callStack) >= maxCallDepth {
		return false, berrors.NewSyntax("GOSUB calls nested too deeply")
	}
	// the return line is saved before the target is checked
	i.callStack = append(i.callStack, i.curLine)
	return i.kwGoto(args)
}

func (i *Interpreter) kwReturn(args string) (bool, error) {
	if i.runMode == Immediate {
		return false, berrors.NewSyntax("Attempt to RETURN from outside a program")
	}
	if len(i.callStack) == 0 {
		return false, berrors.NewSyntax("Attempt to RETURN without a preceding GOSUB")
	}
	saved := i.callStack[len(i.callStack)-1]
	i.callStack = i.callStack[:len(i.callStack)-1]
	if _, ok := i.program.Get(saved); !ok {
		return false, berrors.NewSyntax("Attempt to jump to an invalid line")
	}
	i.pending = &pendingJump{to: saved, after: true}
	return true, nil
}

// kwIf evaluates the condition before THEN or GOTO.  When true, the
// remainder is re-dispatched as a statement; a bare integer remainder
// is rewritten as a GOTO first.
func (i *Interpreter) kwIf(args string) (bool, error) {
	clause := -1
scan:
	for pos := 0; pos < len(args); pos++ {
		switch {
		case args[pos] == '"':
			strEnd, err := findEndOfString(args[pos:])
			if err != nil {
				return false, err
			}
			pos += strEnd
		case args[pos] == '(':
			brEnd, err := findEndOfBracket(args[pos+1:])
			if err != nil {
				return false, err
			}
			pos += brEnd + 1
		case isThenGoto(args, pos):
			clause = pos
			break scan
		}
	}
	if clause < 0 {
		return false, berrors.NewSyntax("Unable to find end of condition in IF keyword")
	}

	condition, err := i.evaluate(args[:clause])
	if err != nil {
		return false, err
	}
	truth, err := object.ToBool(condition)
	if err != nil {
		return false, err
	}
	if !truth {
		return true, nil
	}

	action := args[clause+4:]
	if object.ClassifyLiteral(action) == object.INTEGER_OBJ {
		action = "GOTO " + action
	}
	return i.parseLine(action, true), nil
}

// isThenGoto matches THEN or GOTO at pos, any case, no word boundary.
func isThenGoto(text string, pos int) bool {
	for _, word := range [...]string{"THEN", "GOTO"} {
		if pos+len(word) > len(text) {
			continue
		}
		if strings.EqualFold(text[pos:pos+len(word)], word) {
			return true
		}
	}
	return false
}

func (i *Interpreter) kwThen(args string) (bool, error) {
	return false, berrors.NewSyntax("THEN is invalid without a preceeding IF and condition")
}

// kwPrint evaluates everything after the keyword as one expression.
func (i *Interpreter) kwPrint(args string) (bool, error) {
	args = strings.TrimSpace(args)
	if args == "" {
		i.term.Println("")
		return true, nil
	}
	val, err := i.evaluate(args)
	if err != nil {
		return false, err
	}
	i.term.Println(val.Inspect())
	return true, nil
}

func (i *Interpreter) kwList(args string) (bool, error) {
	for _, line := range i.program.Lines() {
		i.term.Print(fmt.Sprintf("%d\t%s\n", line.Number, line.Text))
	}
	i.term.Println("")
	return true, nil
}

// kwRun executes the stored program in a child interpreter.  A plain
// RUN reuses a parked child so its variables carry over; RUN n always
// starts one fresh.  The program text is re-copied either way.
func (i *Interpreter) kwRun(args string) (bool, error) {
	number := -1
	if args != "" && object.ClassifyLiteral(args) == object.INTEGER_OBJ {
		n, err := strconv.ParseInt(strings.TrimSpace(args), 10, 32)
		if err != nil {
			return false, berrors.NewSyntax("Attempt to create a numeric BasicValue from a non-numeric string")
		}
		number = int(n)
	}
	if i.child == nil || number >= 0 {
		if i.runDepth >= maxRunDepth {
			return false, berrors.NewSyntax("RUN nested too deeply")
		}
		i.child = i.newChild()
	}
	i.child.program = i.program.Copy()
	return i.child.Run(number)
}

func (i *Interpreter) kwVars(args string) (bool, error) {
	i.term.Print("Constants:\n" + listConstants(i.env) + "\n")
	i.term.Print("\nVariables:\n" + listVariables(i.env) + "\n")
	return true, nil
}

func (i *Interpreter) kwFunctions(args string) (bool, error) {
	i.term.Println(listFunctions())
	return true, nil
}

func (i *Interpreter) kwKeywords(args string) (bool, error) {
	i.term.Println(i.listKeywords())
	return true, nil
}

func (i *Interpreter) kwRem(args string) (bool, error) {
	return true, nil
}

func (i *Interpreter) kwQuit(args string) (bool, error) {
	i.term.Println("Good bye\n")
	i.exiting = true
	return true, nil
}

func (i *Interpreter) kwExit(args string) (bool, error) {
	i.exiting = true
	return true, nil
}

func (i *Interpreter) kwEnd(args string) (bool, error) {
	if i.runMode == Immediate {
		return false, berrors.NewSyntax("Attempt to END from outside a program")
	}
	i.exiting = true
	return true, nil
}

func listConstants(env *object.Environment) string {
	var sb strings.Builder
	for _, name := range env.ConstantNames() {
		val, _ := env.GetConstant(name)
		sb.WriteString(fmt.Sprintf("%s: %s = %s: %s\n",
			name, object.TypeName(val.Type()), val.Dump(), env.ConstantDesc(name)))
	}
	return sb.String()
}

func listVariables(env *object.Environment) string {
	var sb strings.Builder
	for _, name := range env.VariableNames() {
		val, _ := env.GetVariable(name)
		sb.WriteString(fmt.Sprintf("%s: %s = %s\n",
			name, object.TypeName(val.Type()), val.Dump()))
	}
	for _, name := range env.ArrayNames() {
		arr, _ := env.GetArray(name)
		sb.WriteString(fmt.Sprintf("%s( %s )\n", name, joinDims(arr.Dims)))
	}
	return sb.String()
}

func listFunctions() string {
	var sb strings.Builder
	for _, name := range builtins.Names() {
		fn, _ := builtins.Lookup(name)
		sb.WriteString(fmt.Sprintf("%s: %s\n", name, fn.Desc))
	}
	return sb.String()
}

func (i *Interpreter) listKeywords() string {
	names := make([]string, 0, len(i.keywords))
	for name := range i.keywords {
		names = append(names, name)
	}
	sort.Strings(names)

	var sb strings.Builder
	for _, name := range names {
		sb.WriteString(name + "\n")
	}
	return sb.String()
}

func joinDims(dims []int) string {
	parts := make([]string, len(dims))
	for n, d := range dims {
		parts[n] = strconv.Itoa(d)
	}
	return strings.Join(parts, ", ")
}
