// Package matcher implements structural pattern matching over syntax
// trees: placeholder binding, variadic expansion with backtracking, and
// sliding-window search for statement sequences.
package matcher

import (
	"github.com/termfx/hintfix/core"
	"github.com/termfx/hintfix/syntax"
)

// Language answers the grammar-specific questions matching needs. A
// provider satisfies it.
type Language interface {
	IsSequenceContext(kind string) bool
	IsStatementContext(kind string) bool
	IsComment(kind string) bool
	PlaceholderName(n syntax.Node) (name string, variadic bool, ok bool)
}

// Matcher matches compiled patterns against candidate nodes.
type Matcher struct {
	lang Language
}

// New creates a matcher for one grammar.
func New(lang Language) *Matcher { return &Matcher{lang: lang} }

// MatchNode matches a single-root compiled pattern against the candidate
// node, returning the placeholder bindings on success.
func (m *Matcher) MatchNode(cp *core.CompiledPattern, candidate syntax.Node) (map[string]core.Binding, bool) {
	root := cp.Root()
	if root == nil || candidate == nil {
		return nil, false
	}
	b := newBindingSet(m.lang)
	if !m.matchNode(root, candidate, b) {
		return nil, false
	}
	return b.m, true
}

// MatchWindow matches a statement-sequence pattern anchored at stmts[0].
// It reports how many leading candidate statements the window consumed;
// trailing statements beyond the window are allowed.
func (m *Matcher) MatchWindow(cp *core.CompiledPattern, stmts []syntax.Node) (int, map[string]core.Binding, bool) {
	if len(cp.Roots) == 0 || len(stmts) == 0 {
		return 0, nil, false
	}
	b := newBindingSet(m.lang)
	consumed, ok := m.matchList(cp.Roots, stmts, b, true)
	if !ok || consumed == 0 {
		return 0, nil, false
	}
	return consumed, b.m, true
}

// FindMatches walks the whole tree and returns every occurrence of the
// pattern in document order. Nested and overlapping occurrences are all
// reported; deciding which to keep is the caller's concern.
func (m *Matcher) FindMatches(tree syntax.Tree, cp *core.CompiledPattern) []core.Match {
	var out []core.Match
	if cp.Pattern.Kind == core.KindStatementSequence {
		syntax.Walk(tree.Root(), func(n syntax.Node) bool {
			if m.lang.IsStatementContext(n.Kind()) {
				out = append(out, m.ContainerMatches(cp, n)...)
			}
			return true
		})
		return out
	}

	root := cp.Root()
	if root == nil {
		return nil
	}
	_, _, rootIsPlaceholder := m.lang.PlaceholderName(root)
	rootKind := root.Kind()
	syntax.Walk(tree.Root(), func(n syntax.Node) bool {
		if rootIsPlaceholder || n.Kind() == rootKind {
			if bindings, ok := m.MatchNode(cp, n); ok {
				out = append(out, core.Match{
					Node:     n,
					Bindings: bindings,
					Offset:   n.StartByte(),
					Length:   n.EndByte() - n.StartByte(),
				})
			}
		}
		return true
	})
	return out
}

// ContainerMatches slides a sequence pattern over the statement list of
// one container node.
func (m *Matcher) ContainerMatches(cp *core.CompiledPattern, container syntax.Node) []core.Match {
	stmts := namedChildren(container)
	var out []core.Match
	for start := 0; start < len(stmts); start++ {
		if m.lang.IsComment(stmts[start].Kind()) {
			continue
		}
		consumed, bindings, ok := m.MatchWindow(cp, stmts[start:])
		if !ok {
			continue
		}
		first := stmts[start]
		last := stmts[start+consumed-1]
		out = append(out, core.Match{
			Node:     first,
			Bindings: bindings,
			Offset:   first.StartByte(),
			Length:   last.EndByte() - first.StartByte(),
		})
	}
	return out
}

// matchNode compares one pattern node against one candidate node, binding
// placeholders along the way.
func (m *Matcher) matchNode(p, c syntax.Node, b *bindingSet) bool {
	if name, variadic, ok := m.lang.PlaceholderName(p); ok {
		if variadic {
			// variadic placeholders are only meaningful inside list
			// contexts, which matchList handles
			return false
		}
		return b.bindScalar(name, c)
	}
	if c == nil || p.Kind() != c.Kind() {
		return false
	}

	var ps, cs []syntax.Node
	if m.lang.IsSequenceContext(p.Kind()) {
		ps = m.namedNonComment(p)
		cs = namedChildren(c)
	} else {
		ps = m.allNonComment(p)
		cs = allChildren(c)
	}
	if len(ps) == 0 && len(cs) == 0 {
		return p.Text() == c.Text()
	}
	_, ok := m.matchList(ps, cs, b, false)
	return ok
}

// matchList matches a pattern child list against a candidate child list.
// Variadic placeholders consume minimally and backtrack; candidate-side
// comments are skipped. In window mode leftover trailing candidates are
// allowed and the consumed count is reported.
func (m *Matcher) matchList(ps, cs []syntax.Node, b *bindingSet, window bool) (int, bool) {
	if len(ps) == 0 {
		if window {
			return 0, true
		}
		for _, c := range cs {
			if !m.lang.IsComment(c.Kind()) {
				return 0, false
			}
		}
		return 0, true
	}

	p0 := ps[0]
	if name, variadic, ok := m.lang.PlaceholderName(p0); ok && variadic {
		for take := 0; take <= len(cs); take++ {
			mark := b.mark()
			if b.bindSequence(name, cs[:take]) {
				if rest, ok := m.matchList(ps[1:], cs[take:], b, window); ok {
					return take + rest, true
				}
			}
			b.rollback(mark)
		}
		return 0, false
	}

	skip := 0
	for skip < len(cs) && m.lang.IsComment(cs[skip].Kind()) {
		skip++
	}
	if skip >= len(cs) {
		return 0, false
	}
	mark := b.mark()
	if m.matchNode(p0, cs[skip], b) {
		if rest, ok := m.matchList(ps[1:], cs[skip+1:], b, window); ok {
			return skip + 1 + rest, true
		}
	}
	b.rollback(mark)
	return 0, false
}

func (m *Matcher) namedNonComment(n syntax.Node) []syntax.Node {
	var out []syntax.Node
	for i := 0; i < n.NamedChildCount(); i++ {
		c := n.NamedChild(i)
		if !m.lang.IsComment(c.Kind()) {
			out = append(out, c)
		}
	}
	return out
}

func (m *Matcher) allNonComment(n syntax.Node) []syntax.Node {
	var out []syntax.Node
	for i := 0; i < n.ChildCount(); i++ {
		c := n.Child(i)
		if !m.lang.IsComment(c.Kind()) {
			out = append(out, c)
		}
	}
	return out
}

func namedChildren(n syntax.Node) []syntax.Node {
	out := make([]syntax.Node, 0, n.NamedChildCount())
	for i := 0; i < n.NamedChildCount(); i++ {
		out = append(out, n.NamedChild(i))
	}
	return out
}

func allChildren(n syntax.Node) []syntax.Node {
	out := make([]syntax.Node, 0, n.ChildCount())
	for i := 0; i < n.ChildCount(); i++ {
		out = append(out, n.Child(i))
	}
	return out
}
