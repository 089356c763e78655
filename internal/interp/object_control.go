package interp

import (
	"fmt"

	"github.com/provelang/provescript/internal/ast"
	"github.com/provelang/provescript/internal/schema"
)

// Error is a fatal runtime failure propagated as a value. Nothing below the
// top-level driver recovers: sequencing checks isError at every step and
// unwinds. There is no partial-statement rollback.
type Error struct {
	Message    string
	Position   ast.Position
	StackTrace []StackFrame
}

// StackFrame records one application site for error attribution.
type StackFrame struct {
	Name     string
	Position ast.Position
}

func (e *Error) Type() ObjectType { return ERROR_OBJ }
func (e *Error) Inspect() string {
	var result string
	if e.Position.Line > 0 {
		result = fmt.Sprintf("error at %s: %s", e.Position, e.Message)
	} else {
		result = "error: " + e.Message
	}
	if len(e.StackTrace) > 0 {
		result += "\nstack trace:"
		for i := len(e.StackTrace) - 1; i >= 0; i-- {
			frame := e.StackTrace[i]
			name := frame.Name
			if name == "" {
				name = "<closure>"
			}
			result += fmt.Sprintf("\n  in %s at %s", name, frame.Position)
		}
	}
	return result
}
func (e *Error) RuntimeSchema() schema.Type { return schema.TCon{Name: "Error"} }

func (e *Error) Error() string { return e.Inspect() }
