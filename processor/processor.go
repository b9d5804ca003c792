// Package processor runs rule sets against parsed source files. It
// compiles every source pattern once, indexes the patterns by their root
// node kind, and finds all occurrences in a single tree traversal.
package processor

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"sort"

	"github.com/termfx/hintfix/core"
	"github.com/termfx/hintfix/guards"
	"github.com/termfx/hintfix/matcher"
	"github.com/termfx/hintfix/providers"
	"github.com/termfx/hintfix/syntax"
)

// ctxPollInterval is how many visited nodes pass between cancellation
// checks.
const ctxPollInterval = 256

// Processor applies transformation rules to source. It holds no per-file
// state and is safe to reuse across files.
type Processor struct {
	provider providers.Provider
	matcher  *matcher.Matcher
	resolver core.GuardResolver
	version  string
}

// New creates a processor. sourceVersion is the declared language level of
// the sources; empty means "1.8".
func New(provider providers.Provider, resolver core.GuardResolver, sourceVersion string) *Processor {
	return &Processor{
		provider: provider,
		matcher:  matcher.New(provider),
		resolver: resolver,
		version:  sourceVersion,
	}
}

type compiledRule struct {
	rule  *core.TransformationRule
	cp    *core.CompiledPattern
	index int
}

type indexedResult struct {
	res   core.TransformationResult
	index int
}

// Process parses source, finds every rule occurrence and returns the
// results ordered by position, then by rule declaration order. Occurrences
// whose guards reference unknown functions are skipped; everything else
// keeps going.
func (p *Processor) Process(ctx context.Context, source []byte, rules []core.TransformationRule) ([]core.TransformationResult, error) {
	tree, err := p.provider.ParseSource(ctx, source)
	if err != nil {
		return nil, fmt.Errorf("parse source: %w", err)
	}

	byKind := make(map[string][]compiledRule)
	var sequences, anyKind []compiledRule
	for i := range rules {
		cp, err := p.provider.CompilePattern(rules[i].SourcePattern)
		if err != nil {
			return nil, fmt.Errorf("rule %d: %w", i+1, err)
		}
		cr := compiledRule{rule: &rules[i], cp: cp, index: i}
		switch {
		case cp.Pattern.Kind == core.KindStatementSequence:
			sequences = append(sequences, cr)
		case isPlaceholderRoot(p.provider, cp):
			// a bare placeholder pattern has no anchoring kind; it is
			// attempted at every node, same as the matcher's full search
			anyKind = append(anyKind, cr)
		default:
			byKind[cp.Root().Kind()] = append(byKind[cp.Root().Kind()], cr)
		}
	}

	var found []indexedResult
	try := func(cr compiledRule, n syntax.Node) {
		bindings, ok := p.matcher.MatchNode(cr.cp, n)
		if !ok {
			return
		}
		m := core.Match{
			Node:     n,
			Bindings: bindings,
			Offset:   n.StartByte(),
			Length:   n.EndByte() - n.StartByte(),
		}
		if res, ok := p.evaluate(cr, m, source); ok {
			found = append(found, indexedResult{res: res, index: cr.index})
		}
	}

	visited := 0
	syntax.Walk(tree.Root(), func(n syntax.Node) bool {
		visited++
		if visited%ctxPollInterval == 0 && ctx.Err() != nil {
			return false
		}

		for _, cr := range anyKind {
			try(cr, n)
		}
		for _, cr := range byKind[n.Kind()] {
			try(cr, n)
		}

		if len(sequences) > 0 && p.provider.IsStatementContext(n.Kind()) {
			for _, cr := range sequences {
				for _, m := range p.matcher.ContainerMatches(cr.cp, n) {
					if res, ok := p.evaluate(cr, m, source); ok {
						found = append(found, indexedResult{res: res, index: cr.index})
					}
				}
			}
		}
		return true
	})
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	sort.SliceStable(found, func(i, j int) bool {
		a, b := found[i], found[j]
		if a.res.Match.Offset != b.res.Match.Offset {
			return a.res.Match.Offset < b.res.Match.Offset
		}
		if a.index != b.index {
			return a.index < b.index
		}
		return a.res.Match.Length < b.res.Match.Length
	})

	out := make([]core.TransformationResult, len(found))
	for i, f := range found {
		out[i] = f.res
	}
	return out, nil
}

// evaluate turns a raw match into a result: source guard, alternative
// selection, rendering and import merging. ok is false when the
// occurrence is skipped (guard false or guard evaluation failed).
func (p *Processor) evaluate(cr compiledRule, m core.Match, source []byte) (core.TransformationResult, bool) {
	// the matched node itself is always addressable in guards
	if _, exists := m.Bindings["_"]; !exists {
		m.Bindings["_"] = core.ScalarBinding(m.Node)
	}
	gctx := &core.GuardContext{Match: m, Source: source, SourceVersion: p.version}

	if cr.rule.SourceGuard != nil {
		ok, err := guards.Evaluate(cr.rule.SourceGuard, gctx, p.resolver)
		if err != nil || !ok {
			return core.TransformationResult{}, false
		}
	}

	alt, err := cr.rule.FindMatchingAlternative(func(g core.GuardExpression) (bool, error) {
		return guards.Evaluate(g, gctx, p.resolver)
	})
	if err != nil {
		return core.TransformationResult{}, false
	}

	res := core.TransformationResult{
		Rule:        cr.rule,
		Match:       m,
		Description: cr.rule.Description,
		Line:        1 + bytes.Count(source[:m.Offset], []byte("\n")),
	}
	if alt == nil {
		// hint-only rule, or every guarded alternative evaluated false
		return res, true
	}

	res.Alternative = alt
	res.Replacement = render(alt.Replacement.Text, m, source)
	res.Imports = cr.rule.Imports.Merge(alt.Imports)
	return res, true
}

var (
	emptyLeadingSep  = regexp.MustCompile(`\(\s*,\s*`)
	emptyTrailingSep = regexp.MustCompile(`\s*,\s*\)`)
	emptyMiddleSep   = regexp.MustCompile(`,\s*,`)
)

func isPlaceholderRoot(p providers.Provider, cp *core.CompiledPattern) bool {
	root := cp.Root()
	if root == nil {
		return false
	}
	_, _, ok := p.PlaceholderName(root)
	return ok
}

// render substitutes bindings into replacement text. Every placeholder is
// replaced by the original source span of what it bound; an empty variadic
// binding renders as nothing, and any argument separator it strands is
// cleaned up.
func render(text string, m core.Match, source []byte) string {
	emptied := false
	out := core.ExpandPlaceholders(text, func(name string, variadic bool) (string, bool) {
		b, ok := m.Bindings[name]
		if !ok {
			return "", false
		}
		s := b.SourceText(source)
		if variadic && s == "" {
			emptied = true
		}
		return s, true
	})
	if emptied {
		out = emptyMiddleSep.ReplaceAllString(out, ",")
		out = emptyLeadingSep.ReplaceAllString(out, "(")
		out = emptyTrailingSep.ReplaceAllString(out, ")")
	}
	return out
}
