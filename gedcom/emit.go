package gedcom

import (
	"bufio"
	"fmt"
	"io"
)

// EmitRecord writes root's subtree to w as GEDCOM text, one line per node,
// in depth-first pre-order with levels reconstructed from Depth (spec §6:
// "Record trees are emitted by pre-order traversal with no indentation by
// default"). Grounded on the teacher's exporter/gedcom.go line-builder
// idiom, simplified to this package's Node shape — a GEDCOM line here is
// just `{level} [{key}] {tag} [{value}]` with single-space separators.
func EmitRecord(w io.Writer, root *Node) error {
	return EmitRecordIndented(w, root, false)
}

// EmitRecordIndented is EmitRecord with spec §6's optional caller flag for
// two-space-per-level indentation before the level number, for callers that
// want the output easier for a human to read.
func EmitRecordIndented(w io.Writer, root *Node, indent bool) error {
	var writeErr error
	Traverse(root, func(n *Node) bool {
		if err := emitLine(w, n, indent); err != nil {
			writeErr = err
			return false
		}
		return true
	})
	return writeErr
}

// EmitDatabase writes header followed by every record root in roots, then
// a trailer, matching spec §6's "HEAD is the first record and TRLR the
// last". It takes the header and roots directly (rather than
// *database.Database) to avoid an import cycle — gedcom/database already
// imports this package.
func EmitDatabase(w io.Writer, header *Node, roots []*Node) error {
	return EmitDatabaseIndented(w, header, roots, false)
}

// EmitDatabaseIndented is EmitDatabase with the same indentation flag as
// EmitRecordIndented.
func EmitDatabaseIndented(w io.Writer, header *Node, roots []*Node, indent bool) error {
	bw := bufio.NewWriter(w)
	if header != nil {
		if err := EmitRecordIndented(bw, header, indent); err != nil {
			return err
		}
	}
	for _, root := range roots {
		if err := EmitRecordIndented(bw, root, indent); err != nil {
			return err
		}
	}
	if err := emitLine(bw, &Node{Tag: InternTag("TRLR")}, indent); err != nil {
		return err
	}
	return bw.Flush()
}

func emitLine(w io.Writer, n *Node, indent bool) error {
	level := Depth(n)
	if indent {
		if _, err := fmt.Fprint(w, spaces(level*2)); err != nil {
			return err
		}
	}
	if n.Key != "" {
		_, err := fmt.Fprintf(w, "%d %s %s", level, n.Key, n.Tag)
		if err != nil {
			return err
		}
	} else {
		if _, err := fmt.Fprintf(w, "%d %s", level, n.Tag); err != nil {
			return err
		}
	}
	if n.Value != "" {
		if _, err := fmt.Fprintf(w, " %s", n.Value); err != nil {
			return err
		}
	}
	_, err := fmt.Fprint(w, "\n")
	return err
}

func spaces(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = ' '
	}
	return string(b)
}
