// Package syntax defines the tree collaborator contract the engine works
// against. The engine never parses source itself; a provider hands it an
// immutable tree snapshot and the engine only reads kinds, children and
// byte spans from it.
package syntax

// Node is a single vertex in a parsed syntax tree. Implementations wrap a
// concrete parser's node type; all byte offsets refer to the original
// source the tree was parsed from.
type Node interface {
	// Kind returns the grammar production name of this node.
	Kind() string

	// Parent returns the enclosing node, or nil at the root.
	Parent() Node

	// ChildCount and Child expose every child including anonymous tokens
	// (operators, punctuation). Child returns nil out of range.
	ChildCount() int
	Child(i int) Node

	// NamedChildCount and NamedChild expose only named grammar children.
	NamedChildCount() int
	NamedChild(i int) Node

	// StartByte and EndByte delimit the node's span in the original source.
	StartByte() int
	EndByte() int

	// Text returns the original source slice covered by this node.
	Text() string

	// IsNamed reports whether the node is a named production rather than an
	// anonymous token.
	IsNamed() bool
}

// Tree is an immutable snapshot of a parsed source file.
type Tree interface {
	Root() Node
	Source() []byte
}

// Walk visits n and every descendant in document (preorder) order. The
// visitor returns false to prune the subtree below the current node.
func Walk(n Node, visit func(Node) bool) {
	if n == nil {
		return
	}
	if !visit(n) {
		return
	}
	for i := 0; i < n.ChildCount(); i++ {
		Walk(n.Child(i), visit)
	}
}

// Ancestor returns the nearest ancestor of n (inclusive when self is true)
// whose kind matches one of kinds, or nil.
func Ancestor(n Node, self bool, kinds ...string) Node {
	cur := n
	if !self && cur != nil {
		cur = cur.Parent()
	}
	for cur != nil {
		for _, k := range kinds {
			if cur.Kind() == k {
				return cur
			}
		}
		cur = cur.Parent()
	}
	return nil
}
