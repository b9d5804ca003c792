// Package java provides the Java grammar adapter. Pattern fragments are
// not valid compilation units on their own, so compilation wraps them in
// scaffolding (a dummy class or method body) before parsing, then locates
// the fragment's nodes by byte span. Placeholder tokens survive parsing
// because $ is a legal Java identifier character.
package java

import (
	"context"
	"fmt"
	"strings"

	"github.com/smacker/go-tree-sitter/java"

	"github.com/termfx/hintfix/core"
	"github.com/termfx/hintfix/providers/base"
	"github.com/termfx/hintfix/syntax"
)

// Provider implements providers.Provider for Java source.
type Provider struct{}

// New creates the Java provider.
func New() *Provider { return &Provider{} }

func (p *Provider) Language() string     { return "java" }
func (p *Provider) Extensions() []string { return []string{".java"} }

// ParseSource parses a Java compilation unit.
func (p *Provider) ParseSource(ctx context.Context, source []byte) (syntax.Tree, error) {
	return base.Parse(ctx, java.GetLanguage(), source)
}

// CompilePattern parses pattern text into tree nodes ready for matching.
func (p *Provider) CompilePattern(pattern core.Pattern) (*core.CompiledPattern, error) {
	prefix, suffix, text, err := scaffold(pattern)
	if err != nil {
		return nil, err
	}

	wrapped := prefix + text + suffix
	tree, err := base.Parse(context.Background(), java.GetLanguage(), []byte(wrapped))
	if err != nil {
		return nil, err
	}
	if tree.HasError() {
		return nil, fmt.Errorf("pattern %q is not valid %s syntax", pattern.Text, pattern.Kind)
	}

	start := len(prefix)
	end := start + len(text)
	container := covering(tree.Root(), start, end)
	if container == nil {
		return nil, fmt.Errorf("pattern %q produced no tree", pattern.Text)
	}

	if pattern.Kind == core.KindStatementSequence && p.IsStatementContext(container.Kind()) {
		var roots []syntax.Node
		for i := 0; i < container.NamedChildCount(); i++ {
			c := container.NamedChild(i)
			if c.StartByte() >= start && c.EndByte() <= end {
				roots = append(roots, c)
			}
		}
		if len(roots) == 0 {
			return nil, fmt.Errorf("pattern %q contains no statements", pattern.Text)
		}
		return &core.CompiledPattern{Pattern: pattern, Tree: tree, Roots: roots}, nil
	}

	return &core.CompiledPattern{Pattern: pattern, Tree: tree, Roots: []syntax.Node{container}}, nil
}

// scaffold picks the wrapper that makes the fragment parse in context.
func scaffold(pattern core.Pattern) (prefix, suffix, text string, err error) {
	text = strings.TrimSpace(pattern.Text)
	if text == "" {
		return "", "", "", fmt.Errorf("empty pattern text")
	}

	switch pattern.Kind {
	case core.KindExpression, core.KindMethodCall, core.KindConstructor:
		text = strings.TrimSpace(strings.TrimSuffix(text, ";"))
		return "class __P { Object __f = ", "; }", text, nil
	case core.KindStatement, core.KindStatementSequence:
		return "class __P { void __m() { ", " } }", text, nil
	case core.KindBlock:
		return "class __P { void __m() ", " }", text, nil
	case core.KindAnnotation:
		return "", " class __P { }", text, nil
	case core.KindImport:
		if !strings.HasSuffix(text, ";") {
			text += ";"
		}
		return "", "", text, nil
	case core.KindField, core.KindMethodDeclaration:
		return "class __P { ", " }", text, nil
	}
	return "", "", "", fmt.Errorf("unsupported pattern kind %s", pattern.Kind)
}

// covering returns the smallest named node that spans [start, end).
func covering(n syntax.Node, start, end int) syntax.Node {
	if n == nil || n.StartByte() > start || n.EndByte() < end {
		return nil
	}
	cur := n
	for {
		descended := false
		for i := 0; i < cur.NamedChildCount(); i++ {
			c := cur.NamedChild(i)
			if c.StartByte() <= start && c.EndByte() >= end {
				cur = c
				descended = true
				break
			}
		}
		if !descended {
			return cur
		}
	}
}

var statementContexts = map[string]bool{
	"block":                        true,
	"constructor_body":             true,
	"switch_block_statement_group": true,
}

var sequenceContexts = map[string]bool{
	"block":                        true,
	"constructor_body":             true,
	"switch_block_statement_group": true,
	"argument_list":                true,
	"formal_parameters":            true,
	"array_initializer":            true,
	"type_arguments":               true,
}

// IsStatementContext reports whether children of this kind form a
// statement list the sliding window may anchor in.
func (p *Provider) IsStatementContext(kind string) bool { return statementContexts[kind] }

// IsSequenceContext reports whether children of this kind form an ordered
// list where variadic placeholders may expand.
func (p *Provider) IsSequenceContext(kind string) bool { return sequenceContexts[kind] }

func (p *Provider) IsComment(kind string) bool {
	return kind == "line_comment" || kind == "block_comment" || kind == "comment"
}

// PlaceholderName recognizes placeholder tokens in pattern trees. A bare
// identifier $name is a scalar placeholder, $name$ a variadic one. A
// statement consisting solely of a placeholder counts as a statement
// placeholder.
func (p *Provider) PlaceholderName(n syntax.Node) (string, bool, bool) {
	if n == nil {
		return "", false, false
	}
	kind := n.Kind()
	if kind == "expression_statement" && n.NamedChildCount() == 1 {
		return p.PlaceholderName(n.NamedChild(0))
	}
	if kind != "identifier" && kind != "type_identifier" {
		return "", false, false
	}
	text := n.Text()
	if len(text) < 2 || text[0] != '$' {
		return "", false, false
	}
	name := text[1:]
	variadic := false
	if strings.HasSuffix(name, "$") {
		name = name[:len(name)-1]
		variadic = true
	}
	if name == "" {
		return "", false, false
	}
	return name, variadic, true
}
