package matcher

import (
	"github.com/termfx/hintfix/core"
	"github.com/termfx/hintfix/syntax"
)

// bindingSet accumulates placeholder captures during one match attempt.
// The journal records fresh names so failed branches can roll back.
type bindingSet struct {
	m       map[string]core.Binding
	lang    Language
	journal []string
}

func newBindingSet(lang Language) *bindingSet {
	return &bindingSet{m: make(map[string]core.Binding), lang: lang}
}

func (b *bindingSet) mark() int { return len(b.journal) }

func (b *bindingSet) rollback(mark int) {
	for i := len(b.journal) - 1; i >= mark; i-- {
		delete(b.m, b.journal[i])
	}
	b.journal = b.journal[:mark]
}

// bindScalar binds name to n, or checks structural equality against the
// first occurrence when the name is already bound.
func (b *bindingSet) bindScalar(name string, n syntax.Node) bool {
	if prev, ok := b.m[name]; ok {
		if prev.Sequence {
			return len(prev.Nodes) == 1 && b.structuralEqual(prev.Nodes[0], n)
		}
		return b.structuralEqual(prev.Node, n)
	}
	b.m[name] = core.ScalarBinding(n)
	b.journal = append(b.journal, name)
	return true
}

// bindSequence binds name to an ordered (possibly empty) node sequence,
// or checks element-wise structural equality against the first occurrence.
func (b *bindingSet) bindSequence(name string, ns []syntax.Node) bool {
	if prev, ok := b.m[name]; ok {
		if !prev.Sequence || len(prev.Nodes) != len(ns) {
			return false
		}
		for i := range ns {
			if !b.structuralEqual(prev.Nodes[i], ns[i]) {
				return false
			}
		}
		return true
	}
	b.m[name] = core.SequenceBinding(ns)
	b.journal = append(b.journal, name)
	return true
}

// structuralEqual compares two candidate subtrees by shape and token text,
// ignoring comments on both sides.
func (b *bindingSet) structuralEqual(x, y syntax.Node) bool {
	if x == nil || y == nil {
		return x == nil && y == nil
	}
	if x.Kind() != y.Kind() {
		return false
	}
	xs := b.nonComment(x)
	ys := b.nonComment(y)
	if len(xs) == 0 && len(ys) == 0 {
		return x.Text() == y.Text()
	}
	if len(xs) != len(ys) {
		return false
	}
	for i := range xs {
		if !b.structuralEqual(xs[i], ys[i]) {
			return false
		}
	}
	return true
}

func (b *bindingSet) nonComment(n syntax.Node) []syntax.Node {
	var out []syntax.Node
	for i := 0; i < n.ChildCount(); i++ {
		c := n.Child(i)
		if !b.lang.IsComment(c.Kind()) {
			out = append(out, c)
		}
	}
	return out
}
