// Package basic interprets a line-numbered BASIC dialect.  Lines arrive
// one at a time: numbered lines go to the stored program, everything
// else executes immediately.  RUN hands the stored program to a nested
// interpreter so a STOPped run can be CONTinued later with its
// variables intact.
package basic

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/retrolang/dawbasic/berrors"
	"github.com/retrolang/dawbasic/builtins"
	"github.com/retrolang/dawbasic/object"
	"github.com/retrolang/dawbasic/prog"
)

// RunMode tells statements whether they run off the prompt or out of a
// stored program.  Flow control is only legal in Deferred mode.
type RunMode int

const (
	Immediate RunMode = iota
	Deferred
)

// Guard rails for the recursive and stack-backed parts, deep enough for
// any sane program, shallow enough to report instead of crash.
const (
	maxEvalDepth  = 512
	maxCallDepth  = 1024
	maxRunDepth   = 16
	maxArrayCells = 1 << 20
)

// Interpreter owns a program, an environment and an output sink.  A RUN
// builds a child interpreter for the stored program; the child sticks
// around after STOP so CONT can pick up where it left off.
type Interpreter struct {
	env     *object.Environment
	program *prog.Program
	term    object.Console

	keywords map[string]keywordFn

	runMode   RunMode
	curLine   int
	pending   *pendingJump
	callStack []int
	child     *Interpreter
	exiting   bool
	hasError  bool

	evalDepth int
	runDepth  int
}

// pendingJump is a cursor move requested mid-line, honored once the
// whole line has finished.  after selects the line following the target
// instead of the target itself.
type pendingJump struct {
	to    int
	after bool
}

// New builds an immediate-mode interpreter writing to term.
func New(term object.Console) *Interpreter {
	i := &Interpreter{
		env:     object.NewEnvironment(term),
		program: prog.New(),
		term:    term,
		runMode: Immediate,
		curLine: -1,
	}
	i.seedConstants()
	i.registerKeywords()
	return i
}

func (i *Interpreter) seedConstants() {
	i.env.SetConstant("TRUE", TRUE, "")
	i.env.SetConstant("FALSE", FALSE, "")
	i.env.SetConstant("PI", &object.Real{Value: math.Pi}, "Trigometric Pi value")
}

// Environment exposes the symbol tables, mostly for inspection surfaces.
func (i *Interpreter) Environment() *object.Environment {
	return i.env
}

// Program exposes the stored program.
func (i *Interpreter) Program() *prog.Program {
	return i.program
}

// LoadSource feeds a block of text through the line parser, one line at
// a time, without the ready prompt.
func (i *Interpreter) LoadSource(src string) bool {
	for _, line := range strings.Split(src, "\n") {
		if !i.parseLine(line, false) {
			return false
		}
	}
	return true
}

// ParseLine consumes one input line.  The return value reports whether
// the session should keep going; QUIT, EXIT and fatal errors turn it
// false.
func (i *Interpreter) ParseLine(text string) bool {
	return i.parseLine(text, true)
}

func (i *Interpreter) parseLine(text string, showReady bool) (alive bool) {
	i.exiting = false

	defer func() {
		if r := recover(); r != nil {
			i.term.Println("")
			i.term.Println(fmt.Sprintf("UNKNOWN ERROR: while parsing: %v", r))
			if i.runMode == Deferred {
				i.term.Println(fmt.Sprintf("ERROR on line %d", i.curLine))
			}
			alive = false
		}
	}()

	first, rest, _ := splitInTwo(text, ' ')
	kind := object.ClassifyLiteral(first)
	if kind == object.INTEGER_OBJ {
		number, err := strconv.ParseInt(first, 10, 32)
		if err != nil {
			return i.reportError(berrors.NewSyntax("Attempt to create a numeric BasicValue from a non-numeric string"), showReady)
		}
		if number < 0 {
			return i.reportError(berrors.NewSyntax("Line numbers cannot be negative"), showReady)
		}
		if rest != "" {
			i.program.Store(int(number), rest)
		} else {
			i.program.Remove(int(number))
		}
		return true
	}
	if kind != object.STRING_OBJ {
		// blank lines and bare numeric fragments fall through quietly
		return true
	}

	statements, err := splitStatements(text)
	if err != nil {
		return i.reportError(err, showReady)
	}

	for _, stmt := range statements {
		keyword, params, _ := splitInTwo(stmt, ' ')
		canon := object.Canon(keyword)

		var ok bool
		var runErr error
		if handler, isKw := i.keywords[canon]; isKw {
			ok, runErr = handler(params)
		} else {
			// not a keyword, try it as a bare assignment
			var assigned bool
			assigned, runErr = i.letHelper(stmt, false)
			ok = true
			if runErr == nil && !assigned {
				runErr = berrors.NewSyntax("Invalid keyword '%s'", canon)
			}
		}
		if runErr != nil {
			return i.reportError(runErr, showReady)
		}
		if i.exiting {
			return i.runMode != Immediate
		}
		if !ok {
			return false
		}
	}

	if showReady && i.runMode == Immediate {
		i.printReady()
	}
	return true
}

// splitStatements cuts a line at colons, ignoring colons inside quoted
// strings.  The separating colon is dropped unless it ends the line or
// another colon follows it.
func splitStatements(text string) ([]string, error) {
	var statements []string
	last := 0
	pos := 0
	for ; pos < len(text); pos++ {
		switch text[pos] {
		case '"':
			strEnd, err := findEndOfString(text[pos:])
			if err != nil {
				return nil, err
			}
			pos += strEnd
		case ':':
			statements = append(statements, text[last:pos])
			if pos+1 < len(text) {
				pos++
			}
			last = pos
		}
	}
	statements = append(statements, text[last:pos])
	return statements, nil
}

// splitInTwo trims text and cuts it at the first sep, both halves
// trimmed again.  found reports whether sep was present at all.
func splitInTwo(text string, sep byte) (first, rest string, found bool) {
	text = strings.TrimSpace(text)
	pos := strings.IndexByte(text, sep)
	if pos < 0 {
		return text, "", false
	}
	return strings.TrimSpace(text[:pos]), strings.TrimSpace(text[pos+1:]), true
}

// letHelper performs an assignment.  With showError false a structural
// mismatch is a quiet no, so the statement loop can fall back to its
// invalid-keyword report; evaluation errors always surface.
func (i *Interpreter) letHelper(text string, showError bool) (bool, error) {
	target, expr, found := splitInTwo(text, '=')
	if !found {
		if showError {
			return false, berrors.NewSyntax("LET requires a variable and an assignment")
		}
		return false, nil
	}
	if builtins.IsBuiltin(target) || i.isKeyword(target) || i.env.IsConstant(target) {
		if showError {
			return false, berrors.NewSyntax("Attempt to set variable with name of built-in symbol")
		}
		return false, nil
	}
	assign, err := i.resolveTarget(target)
	if err != nil {
		return false, err
	}
	val, err := i.evaluate(expr)
	if err != nil {
		return false, err
	}
	assign(val)
	return true, nil
}

// resolveTarget returns a setter for a scalar or array-element target.
// Nothing is created until the setter runs, so a failed right hand side
// leaves no trace.
func (i *Interpreter) resolveTarget(name string) (func(object.Object), error) {
	open := strings.IndexByte(name, '(')
	if open < 0 {
		return func(val object.Object) { i.env.SetVariable(name, val) }, nil
	}

	brEnd, err := findEndOfBracket(name[open+1:])
	if err != nil {
		return nil, err
	}
	params, err := i.evaluateParameters(name[open+1 : open+1+brEnd])
	if err != nil {
		return nil, err
	}
	arrName := name[:open]
	arr, ok := i.env.GetArray(arrName)
	if !ok {
		return nil, berrors.NewSyntax("Unknown symbol name '%s'", arrName)
	}
	indexes, err := toIndexes(params)
	if err != nil {
		return nil, err
	}
	cell, err := arr.Offset(indexes)
	if err != nil {
		return nil, berrors.New(berrors.Syntax, err.Error())
	}
	return func(val object.Object) { arr.Cells[cell] = val }, nil
}

// reportError prints err and decides whether the session survives.
// Syntax errors are recoverable and set the flag the run loop checks;
// fatal ones are not.
func (i *Interpreter) reportError(err error, showReady bool) bool {
	be := berrors.AsBasic(err)
	i.term.Println("")
	i.term.Println(i.annotate(be))
	if be.Kind == berrors.Fatal {
		return false
	}
	if showReady {
		i.printReady()
	}
	i.hasError = true
	return true
}

// annotate prefixes the severity and, for program lines, appends the
// executing line number.
func (i *Interpreter) annotate(be *berrors.BasicError) string {
	prefix := "SYNTAX ERROR: "
	if be.Kind == berrors.Fatal {
		prefix = "FATAL ERROR: "
	}
	msg := prefix + be.Msg
	if i.runMode == Deferred && i.curLine >= 0 {
		msg += fmt.Sprintf("\nError on line %d", i.curLine)
	}
	return msg
}

func (i *Interpreter) printReady() {
	i.term.Println("")
	i.term.Println("READY")
}
