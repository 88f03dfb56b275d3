package interp

import "github.com/lesfleursdelanuitdev/deadends-go/interp/ast"

// Frame is one routine activation: the call-site node (for diagnostics),
// the routine's own local symbol table, and the caller's frame. Grounded
// on DeadEndsLib/Interp/frame.c, minus the C version's PNode definition
// pointer (the callee's declaration is already reachable from the Context
// lookup that pushed this frame).
type Frame struct {
	Call   ast.Node
	Locals *SymbolTable
	Caller *Frame
}

// NewFrame creates a fresh frame with an empty local symbol table.
func NewFrame(call ast.Node, caller *Frame) *Frame {
	return &Frame{Call: call, Locals: NewSymbolTable(), Caller: caller}
}
