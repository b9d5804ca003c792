// Package base wraps tree-sitter parse results in the engine's tree
// contract. Language providers build on it and only contribute grammar
// selection and pattern scaffolding.
package base

import (
	"context"
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/termfx/hintfix/syntax"
)

// Tree adapts a tree-sitter parse to syntax.Tree.
type Tree struct {
	tree *sitter.Tree
	src  []byte
}

// Parse parses src with the given grammar and wraps the result.
func Parse(ctx context.Context, lang *sitter.Language, src []byte) (*Tree, error) {
	parser := sitter.NewParser()
	parser.SetLanguage(lang)
	t, err := parser.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, fmt.Errorf("parse failed: %w", err)
	}
	return &Tree{tree: t, src: src}, nil
}

func (t *Tree) Root() syntax.Node { return wrap(t.tree.RootNode(), t.src) }
func (t *Tree) Source() []byte    { return t.src }

// HasError reports whether the parse produced any error node.
func (t *Tree) HasError() bool {
	return hasErrorNode(t.Root())
}

func hasErrorNode(n syntax.Node) bool {
	if n == nil {
		return false
	}
	if n.Kind() == "ERROR" {
		return true
	}
	for i := 0; i < n.ChildCount(); i++ {
		if hasErrorNode(n.Child(i)) {
			return true
		}
	}
	return false
}

type node struct {
	n   *sitter.Node
	src []byte
}

func wrap(n *sitter.Node, src []byte) syntax.Node {
	if n == nil {
		return nil
	}
	return &node{n: n, src: src}
}

func (nd *node) Kind() string        { return nd.n.Type() }
func (nd *node) Parent() syntax.Node { return wrap(nd.n.Parent(), nd.src) }

func (nd *node) ChildCount() int { return int(nd.n.ChildCount()) }

func (nd *node) Child(i int) syntax.Node {
	if i < 0 || i >= int(nd.n.ChildCount()) {
		return nil
	}
	return wrap(nd.n.Child(i), nd.src)
}

func (nd *node) NamedChildCount() int { return int(nd.n.NamedChildCount()) }

func (nd *node) NamedChild(i int) syntax.Node {
	if i < 0 || i >= int(nd.n.NamedChildCount()) {
		return nil
	}
	return wrap(nd.n.NamedChild(i), nd.src)
}

func (nd *node) StartByte() int { return int(nd.n.StartByte()) }
func (nd *node) EndByte() int   { return int(nd.n.EndByte()) }

func (nd *node) Text() string {
	start, end := nd.StartByte(), nd.EndByte()
	if start < 0 || end > len(nd.src) || start > end {
		return ""
	}
	return string(nd.src[start:end])
}

func (nd *node) IsNamed() bool { return nd.n.IsNamed() }
