package interp

import (
	"fmt"
	"io"

	"github.com/provelang/provescript/internal/ast"
)

// Level distinguishes informational output (results, print) from diagnostic
// output (tactics, registry notices).
type Level int

const (
	LevelInfo Level = iota
	LevelDiag
)

// Printer is the leveled output channel the sequencer and the print-family
// operations write through. When ShowPositions is on, lines are prefixed
// with the source position of the statement being executed.
type Printer struct {
	Out           io.Writer
	ShowPositions bool

	pos ast.Position // position of the current statement, set by the sequencer
}

// SetPosition records the source position used for location-tagged display.
func (p *Printer) SetPosition(pos ast.Position) { p.pos = pos }

func (p *Printer) Printf(level Level, format string, args ...interface{}) {
	if p.Out == nil {
		return
	}
	prefix := ""
	if p.ShowPositions && p.pos.Line > 0 {
		prefix = "[" + p.pos.String() + "] "
	}
	if level == LevelDiag {
		prefix += "-- "
	}
	fmt.Fprintf(p.Out, prefix+format+"\n", args...)
}

// Info writes a result-level line.
func (p *Printer) Info(format string, args ...interface{}) {
	p.Printf(LevelInfo, format, args...)
}

// Diag writes a diagnostic-level line.
func (p *Printer) Diag(format string, args ...interface{}) {
	p.Printf(LevelDiag, format, args...)
}
