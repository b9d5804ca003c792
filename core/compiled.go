package core

import "github.com/termfx/hintfix/syntax"

// CompiledPattern is a pattern whose text has been parsed by a provider
// into pattern tree nodes ready for structural matching. Roots holds a
// single node for most kinds and the ordered statement list for
// STATEMENT_SEQUENCE patterns. Tree keeps the scaffolded parse alive for
// as long as the roots are in use.
type CompiledPattern struct {
	Pattern Pattern
	Tree    syntax.Tree
	Roots   []syntax.Node
}

// Root returns the single pattern root. For statement sequences it returns
// the first statement.
func (c *CompiledPattern) Root() syntax.Node {
	if len(c.Roots) == 0 {
		return nil
	}
	return c.Roots[0]
}
