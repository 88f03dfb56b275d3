package interp

import (
	"github.com/lesfleursdelanuitdev/deadends-go/gedcom/database"
	"github.com/lesfleursdelanuitdev/deadends-go/interp/ast"
)

// Context holds everything interpretation needs beyond the current call
// frame: the bound database, the global symbol table, the program's
// procedure/function declarations, and the current output destination.
// Grounded on DeadEndsLib/Interp/context.c's Context struct, with fileNames
// and parseErrors dropped since parsing is a caller concern (Parse, not
// Context, reports them — see interp/parser.Parser.Errors).
type Context struct {
	Database   *database.Database
	Frame      *Frame
	Globals    *SymbolTable
	Procedures map[string]*ast.ProcDecl
	Functions  map[string]*ast.FuncDecl
	Output     *Output
}

// NewContext builds a Context bound to db and program, writing script
// output through out (see NewOutput for the three output modes).
func NewContext(db *database.Database, program *ast.Program, out *Output) *Context {
	return &Context{
		Database:   db,
		Globals:    NewSymbolTable(),
		Procedures: program.Procedures,
		Functions:  program.Functions,
		Output:     out,
	}
}

// Lookup resolves ident per spec §4.11 "Evaluation": current frame's table
// first, then the global table.
func (c *Context) Lookup(ident string) (PValue, bool) {
	if c.Frame != nil {
		if v, ok := c.Frame.Locals.Get(ident); ok {
			return v, ok
		}
	}
	return c.Globals.Get(ident)
}

// Assign updates ident in-place wherever it already exists (local table
// preferred over global), or creates a new local binding if neither has
// it — and a global binding when there is no active frame (spec §4.11).
func (c *Context) Assign(ident string, value PValue) {
	if c.Frame != nil {
		if c.Frame.Locals.Has(ident) {
			c.Frame.Locals.Set(ident, value)
			return
		}
		if c.Globals.Has(ident) {
			c.Globals.Set(ident, value)
			return
		}
		c.Frame.Locals.Set(ident, value)
		return
	}
	c.Globals.Set(ident, value)
}

// PushFrame enters a new routine activation, returning a function that
// restores the caller's frame.
func (c *Context) PushFrame(call ast.Node) func() {
	frame := NewFrame(call, c.Frame)
	c.Frame = frame
	return func() { c.Frame = frame.Caller }
}
