// Package mex implements a recursive text macro expander. It scans
// source text for backslash-introduced constructs — six builtin control
// forms (def, undef, if, ifdef, include, expandafter) and user-defined
// single-argument macro templates — and writes fully expanded output
// through a Sink.
//
// Input is expected to be comment-stripped already; see
// internal/stripper for the % line-comment rules and source loading.
package mex

import "bytes"

// DefaultMaxDepth bounds how deeply constructs may nest before an
// expansion is abandoned with ErrResourceExhausted. The limit counts
// nesting depth, not total invocations, so arbitrarily long flat chains
// of macro calls never trip it.
const DefaultMaxDepth = 1000

// Loader loads the comment-stripped contents of a file named by
// \include{PATH}. It is a collaborator: the engine performs no file I/O
// of its own.
type Loader interface {
	Load(path string) (string, error)
}

// Expander drives macro expansion against one Table.
type Expander struct {
	// MaxDepth bounds construct nesting. Zero means DefaultMaxDepth.
	MaxDepth int

	table  *Table
	loader Loader
}

// NewExpander returns an Expander using table for macro definitions and
// loader for \include. loader may be nil, in which case \include fails.
func NewExpander(table *Table, loader Loader) *Expander {
	return &Expander{table: table, loader: loader, MaxDepth: DefaultMaxDepth}
}

// Expand scans text left to right, resolving backslash constructs, and
// writes the expanded result to sink. source names the text in
// diagnostics. Any error aborts the expansion immediately; whatever sink
// already received is incomplete and must be discarded by the caller.
func (x *Expander) Expand(source, text string, sink Sink) error {
	return x.expand(newCursor(source, text), sink, 0)
}

// ExpandString expands text in isolation and returns the result.
func (x *Expander) ExpandString(source, text string) (string, error) {
	var buf bytes.Buffer
	if err := x.Expand(source, text, &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}
