// Package terminal is the console sink for a real terminal session.
package terminal

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

// Terminal writes interpreter output to out.  It satisfies the console
// interface the interpreter prints through.
type Terminal struct {
	out io.Writer
}

// New creates a Terminal on the passed writer.
func New(out io.Writer) *Terminal {
	return &Terminal{out: out}
}

// Print sends the passed string as-is.
func (t *Terminal) Print(msg string) {
	fmt.Fprint(t.out, msg)
}

// Println prints the string followed by a newline.
func (t *Terminal) Println(msg string) {
	fmt.Fprintln(t.out, msg)
}

// IsInteractive reports whether the process is talking to a person,
// meaning both stdin and stdout are terminals.
func IsInteractive() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}
