// Package diag provides source locations and diagnostic records shared by
// every front-end subsystem: the lexer, the parser, the symbol engine, the
// semantic resolver, and (eventually) the emitter.
package diag

import "fmt"

// FileRange is an immutable source span: a file name plus a start and end
// row/column pair. Every AST node and every diagnostic carries one.
type FileRange struct {
	File     string
	StartRow int
	StartCol int
	EndRow   int
	EndCol   int
}

// NoRange is the sentinel "no source" value used by synthesized nodes
// (e.g. compiler-injected default constructors) that have no literal text.
var NoRange = FileRange{}

// HasSource reports whether r carries real source coordinates.
func (r FileRange) HasSource() bool {
	return r != NoRange
}

// Start returns the (row, col) pair the range begins at.
func (r FileRange) Start() (row, col int) { return r.StartRow, r.StartCol }

// End returns the (row, col) pair the range ends at.
func (r FileRange) End() (row, col int) { return r.EndRow, r.EndCol }

// Join returns the smallest range spanning both a and b. If either is
// the sentinel NoRange, the other is returned unchanged.
func Join(a, b FileRange) FileRange {
	if !a.HasSource() {
		return b
	}
	if !b.HasSource() {
		return a
	}
	joined := a
	if before(b.EndRow, b.EndCol, a.EndRow, a.EndCol) {
		joined.EndRow, joined.EndCol = a.EndRow, a.EndCol
	} else {
		joined.EndRow, joined.EndCol = b.EndRow, b.EndCol
	}
	if before(b.StartRow, b.StartCol, a.StartRow, a.StartCol) {
		joined.StartRow, joined.StartCol = b.StartRow, b.StartCol
	}
	return joined
}

func before(row1, col1, row2, col2 int) bool {
	if row1 != row2 {
		return row1 < row2
	}
	return col1 < col2
}

// String renders the range as "file(startRow,startCol)" for diagnostics,
// matching spec.md's `<file>(<row>,<col>): ...` diagnostic format.
func (r FileRange) String() string {
	if !r.HasSource() {
		return ""
	}
	return fmt.Sprintf("%s(%d,%d)", r.File, r.StartRow, r.StartCol)
}
