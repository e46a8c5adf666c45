// Package prog holds the stored program, a set of numbered lines kept
// in line number order.
package prog

import (
	"github.com/google/btree"
)

// degree for the underlying btree, programs are small so keep it low
const degree = 4

// sentinel is the anchor line every program carries.  It sits below
// every line number a user can store, listings and runs skip it.
const sentinel = -1

// Line is one stored line of the program
type Line struct {
	Number int
	Text   string
}

// Less orders lines by their line number
func (l Line) Less(than btree.Item) bool {
	return l.Number < than.(Line).Number
}

// Program is the sorted store of program lines
type Program struct {
	lines *btree.BTree
}

// New gives an empty program holding only the anchor line
func New() *Program {
	p := &Program{}
	p.Clear()
	return p
}

// Clear throws away every stored line
func (p *Program) Clear() {
	p.lines = btree.New(degree)
	p.lines.ReplaceOrInsert(Line{Number: sentinel})
}

// Store saves a line, replacing any line already at that number
func (p *Program) Store(number int, text string) {
	p.lines.ReplaceOrInsert(Line{Number: number, Text: text})
}

// Remove drops the line at number.  Numbers below zero are protected
// so the anchor line always survives, unknown numbers do nothing.
func (p *Program) Remove(number int) {
	if number < 0 {
		return
	}
	p.lines.Delete(Line{Number: number})
}

// Get fetches the line stored at exactly number
func (p *Program) Get(number int) (Line, bool) {
	if number < 0 {
		return Line{}, false
	}
	item := p.lines.Get(Line{Number: number})
	if item == nil {
		return Line{}, false
	}
	return item.(Line), true
}

// First gives the lowest numbered line in the program
func (p *Program) First() (Line, bool) {
	return p.from(0)
}

// After gives the line that follows number, skipping any gap
func (p *Program) After(number int) (Line, bool) {
	return p.from(number + 1)
}

func (p *Program) from(number int) (Line, bool) {
	var found Line
	ok := false
	p.lines.AscendGreaterOrEqual(Line{Number: number}, func(item btree.Item) bool {
		found = item.(Line)
		ok = true
		return false
	})
	return found, ok
}

// Lines returns every stored line in ascending order
func (p *Program) Lines() []Line {
	var out []Line
	p.lines.AscendGreaterOrEqual(Line{Number: 0}, func(item btree.Item) bool {
		out = append(out, item.(Line))
		return true
	})
	return out
}

// Len counts the stored lines
func (p *Program) Len() int {
	n := 0
	p.lines.AscendGreaterOrEqual(Line{Number: 0}, func(item btree.Item) bool {
		n++
		return true
	})
	return n
}

// Copy takes a snapshot of the program.  Changes made to either side
// after the copy stay on that side.
func (p *Program) Copy() *Program {
	return &Program{lines: p.lines.Clone()}
}
