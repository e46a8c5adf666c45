package basic

import (
	"fmt"

	"github.com/retrolang/dawbasic/berrors"
	"github.com/retrolang/dawbasic/object"
	"github.com/retrolang/dawbasic/prog"
)

// newChild builds the interpreter a RUN executes in.  It shares the
// output sink but owns fresh tables, and is born in deferred mode.
func (i *Interpreter) newChild() *Interpreter {
	child := New(i.term)
	child.runMode = Deferred
	child.runDepth = i.runDepth + 1
	return child
}

// jumpTo parks a cursor move on the target line.  The target has to
// exist both now and when the move is honored at the end of the line.
func (i *Interpreter) jumpTo(number int) error {
	if _, ok := i.program.Get(number); !ok {
		return berrors.NewSyntax("Attempt to jump to an invalid line")
	}
	i.pending = &pendingJump{to: number}
	return nil
}

// Run executes the stored program from line number, or from the first
// line when number is negative.  The bool mirrors ParseLine: false only
// for fatal trouble.
func (i *Interpreter) Run(number int) (bool, error) {
	var line prog.Line
	var ok bool
	if number >= 0 {
		line, ok = i.program.Get(number)
		if !ok {
			return false, berrors.NewSyntax("Attempt to jump to an invalid line")
		}
	} else {
		line, ok = i.program.First()
	}
	return i.runFrom(line, ok)
}

// ContinueRun picks the run back up after a STOP, starting at the line
// the cursor would have moved to next.
func (i *Interpreter) ContinueRun() (bool, error) {
	line, ok, err := i.advance(i.curLine)
	if err != nil {
		return false, err
	}
	if !ok {
		return false, berrors.NewSyntax("Cannot continue.  End of program reached")
	}
	return i.runFrom(line, true)
}

func (i *Interpreter) runFrom(line prog.Line, ok bool) (bool, error) {
	i.hasError = false
	for ok {
		i.curLine = line.Number
		i.env.SetConstant("CURRENT_LINE",
			&object.Integer{Value: int32(line.Number)}, "Current Line of program execution")

		if !i.parseLine(line.Text, true) {
			return false, nil
		}
		if i.hasError {
			i.term.Println(fmt.Sprintf("Error was on line %d", line.Number))
			i.hasError = false
			i.pending = nil
			break
		}
		if i.exiting {
			i.exiting = false
			break
		}

		var err error
		line, ok, err = i.advance(line.Number)
		if err != nil {
			i.reportError(err, true)
			i.term.Println(fmt.Sprintf("Error was on line %d", i.curLine))
			i.hasError = false
			break
		}
	}
	return true, nil
}

// advance picks the next line: a pending jump if one is parked, else
// the line following from.  Jump targets are rechecked here because a
// later statement on the same line may have deleted them.
func (i *Interpreter) advance(from int) (prog.Line, bool, error) {
	if i.pending != nil {
		jump := *i.pending
		i.pending = nil
		if jump.after {
			line, ok := i.program.After(jump.to)
			return line, ok, nil
		}
		line, ok := i.program.Get(jump.to)
		if !ok {
			return prog.Line{}, false, berrors.NewSyntax("Attempt to jump to an invalid line")
		}
		return line, true, nil
	}
	line, ok := i.program.After(from)
	return line, ok, nil
}
