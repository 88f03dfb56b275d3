package interp

import (
	"fmt"

	"github.com/lesfleursdelanuitdev/deadends-go/interp/ast"
)

// ScriptError is a runtime error raised while evaluating a script. It
// carries the originating AST node so the caller can report where
// execution aborted (spec §7 "Scripts signal errors through a per-
// evaluation boolean flag; the evaluator unwinds ... and prints a
// diagnostic carrying the originating source-program node").
type ScriptError struct {
	Node    ast.Node
	Message string
}

func (e *ScriptError) Error() string {
	return fmt.Sprintf("script error at %q: %s", e.Node.String(), e.Message)
}

// newScriptError builds a ScriptError rooted at node.
func newScriptError(node ast.Node, format string, args ...interface{}) *ScriptError {
	return &ScriptError{Node: node, Message: fmt.Sprintf(format, args...)}
}
