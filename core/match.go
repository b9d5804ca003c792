package core

import (
	"github.com/termfx/hintfix/syntax"
)

// Binding is the value captured by one placeholder: either a single node or
// an ordered node sequence (possibly empty) for variadic placeholders.
// Bound nodes are borrowed from the tree snapshot and never mutated; their
// rendered text is always the original source span, never a reprint.
type Binding struct {
	Node     syntax.Node
	Nodes    []syntax.Node
	Sequence bool
}

// ScalarBinding captures a single node.
func ScalarBinding(n syntax.Node) Binding { return Binding{Node: n} }

// SequenceBinding captures an ordered, possibly empty, node sequence.
func SequenceBinding(ns []syntax.Node) Binding { return Binding{Nodes: ns, Sequence: true} }

// Span returns the byte range the binding covers in the original source.
// An empty sequence has a zero-length span and ok is false.
func (b Binding) Span() (start, end int, ok bool) {
	if b.Sequence {
		if len(b.Nodes) == 0 {
			return 0, 0, false
		}
		return b.Nodes[0].StartByte(), b.Nodes[len(b.Nodes)-1].EndByte(), true
	}
	if b.Node == nil {
		return 0, 0, false
	}
	return b.Node.StartByte(), b.Node.EndByte(), true
}

// SourceText renders the binding from the original source. Sequences render
// as the contiguous slice from the first to the last element, so separators
// between elements survive verbatim. Empty sequences render as "".
func (b Binding) SourceText(source []byte) string {
	start, end, ok := b.Span()
	if !ok {
		return ""
	}
	if start < 0 || end > len(source) || start > end {
		return ""
	}
	return string(source[start:end])
}

// Match is one occurrence of a pattern in a tree: the matched node (or the
// first statement of a matched sequence window), the placeholder bindings,
// and the byte span the occurrence covers.
type Match struct {
	Node     syntax.Node
	Bindings map[string]Binding
	Offset   int
	Length   int
}

// Binding returns the capture for name, if any.
func (m Match) Binding(name string) (Binding, bool) {
	b, ok := m.Bindings[name]
	return b, ok
}

// GuardContext is what guard functions see: the match under evaluation, the
// source it came from, and the declared source version of the compilation
// unit. An empty SourceVersion means "1.8".
type GuardContext struct {
	Match         Match
	Source        []byte
	SourceVersion string
}

// Version returns the declared source version, defaulting to "1.8".
func (c *GuardContext) Version() string {
	if c.SourceVersion == "" {
		return "1.8"
	}
	return c.SourceVersion
}

// BindingText renders the named binding from the original source. Unbound
// names render as "".
func (c *GuardContext) BindingText(name string) string {
	b, ok := c.Match.Binding(name)
	if !ok {
		return ""
	}
	return b.SourceText(c.Source)
}
