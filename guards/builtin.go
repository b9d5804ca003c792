package guards

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/termfx/hintfix/core"
	"github.com/termfx/hintfix/syntax"
)

// Builtins returns a registry preloaded with the standard guard functions.
// The registry uses the Override policy so callers can swap any built-in
// for a smarter implementation under the same name.
func Builtins() *Registry {
	r := NewRegistry(Override)
	builtins := map[string]core.GuardFunction{
		"otherwise":            guardOtherwise,
		"matchesAny":           guardMatchesAny,
		"matchesNone":          guardMatchesNone,
		"instanceof":           guardInstanceof,
		"hasNoSideEffect":      guardHasNoSideEffect,
		"referencedIn":         guardReferencedIn,
		"sourceVersionGE":      guardSourceVersionGE,
		"sourceVersionLE":      guardSourceVersionLE,
		"sourceVersionBetween": guardSourceVersionBetween,
		"isStatic":             modifierGuard("static"),
		"isFinal":              modifierGuard("final"),
		"elementKindMatches":   guardElementKindMatches,
		"hasAnnotation":        guardHasAnnotation,
		"isDeprecated":         guardIsDeprecated,
		"parentKindIs":         guardParentKindIs,
		"contains":             guardContains,
		"notContains":          guardNotContains,
		"inMethod":             guardInMethod,
	}
	for name, fn := range builtins {
		// Override policy: registration cannot fail
		_ = r.Register(name, fn)
	}
	return r
}

func guardOtherwise(*core.GuardContext, []string) (bool, error) { return true, nil }

// guardMatchesAny has two forms. With one argument it reports whether the
// placeholder is bound at all. With more it compares the bound node's text
// against each listed literal; string and character literals compare by
// their unquoted content.
func guardMatchesAny(ctx *core.GuardContext, args []string) (bool, error) {
	if len(args) == 0 {
		return false, fmt.Errorf("matchesAny expects a placeholder argument")
	}
	b, ok := binding(ctx, args[0])
	if !ok {
		return false, nil
	}
	if len(args) == 1 {
		if b.Sequence {
			return len(b.Nodes) > 0, nil
		}
		return b.Node != nil, nil
	}
	if b.Sequence || b.Node == nil {
		return false, nil
	}
	text := literalText(b.Node)
	for _, lit := range args[1:] {
		if text == stripQuotes(lit) {
			return true, nil
		}
	}
	return false, nil
}

func guardMatchesNone(ctx *core.GuardContext, args []string) (bool, error) {
	ok, err := guardMatchesAny(ctx, args)
	if err != nil {
		return false, fmt.Errorf("matchesNone expects a placeholder argument")
	}
	return !ok, nil
}

// guardInstanceof is a syntactic approximation: it infers a type for the
// bound node from literals, allocations, casts and visible declarations.
// Hosts with real type information register their own function under the
// same name.
func guardInstanceof(ctx *core.GuardContext, args []string) (bool, error) {
	if len(args) != 2 {
		return false, fmt.Errorf("instanceof expects a placeholder and a type")
	}
	b, ok := binding(ctx, args[0])
	if !ok || b.Sequence || b.Node == nil {
		return false, nil
	}
	inferred := inferType(b.Node)
	if inferred == "" {
		return false, nil
	}
	want := stripQuotes(args[1])
	return typeNamesMatch(inferred, want), nil
}

func guardHasNoSideEffect(ctx *core.GuardContext, args []string) (bool, error) {
	if len(args) != 1 {
		return false, fmt.Errorf("hasNoSideEffect expects one placeholder argument")
	}
	b, ok := binding(ctx, args[0])
	if !ok {
		return false, nil
	}
	pure := true
	for _, n := range boundNodes(b) {
		syntax.Walk(n, func(d syntax.Node) bool {
			switch d.Kind() {
			case "method_invocation", "object_creation_expression",
				"assignment_expression", "update_expression":
				pure = false
				return false
			}
			return pure
		})
	}
	return pure, nil
}

func guardReferencedIn(ctx *core.GuardContext, args []string) (bool, error) {
	if len(args) != 2 {
		return false, fmt.Errorf("referencedIn expects two placeholder arguments")
	}
	needle, ok := binding(ctx, args[0])
	if !ok || needle.Sequence || needle.Node == nil {
		return false, nil
	}
	haystack, ok := binding(ctx, args[1])
	if !ok {
		return false, nil
	}
	kind, text := needle.Node.Kind(), needle.Node.Text()
	found := false
	for _, n := range boundNodes(haystack) {
		syntax.Walk(n, func(d syntax.Node) bool {
			if d.Kind() == kind && d.Text() == text {
				found = true
				return false
			}
			return true
		})
	}
	return found, nil
}

func guardSourceVersionGE(ctx *core.GuardContext, args []string) (bool, error) {
	if len(args) != 1 {
		return false, fmt.Errorf("sourceVersionGE expects one version argument")
	}
	want, err := parseVersion(args[0])
	if err != nil {
		return false, err
	}
	have, err := parseVersion(ctx.Version())
	if err != nil {
		return false, err
	}
	return have >= want, nil
}

func guardSourceVersionLE(ctx *core.GuardContext, args []string) (bool, error) {
	if len(args) != 1 {
		return false, fmt.Errorf("sourceVersionLE expects one version argument")
	}
	want, err := parseVersion(args[0])
	if err != nil {
		return false, err
	}
	have, err := parseVersion(ctx.Version())
	if err != nil {
		return false, err
	}
	return have <= want, nil
}

func guardSourceVersionBetween(ctx *core.GuardContext, args []string) (bool, error) {
	if len(args) != 2 {
		return false, fmt.Errorf("sourceVersionBetween expects two version arguments")
	}
	lo, err := parseVersion(args[0])
	if err != nil {
		return false, err
	}
	hi, err := parseVersion(args[1])
	if err != nil {
		return false, err
	}
	have, err := parseVersion(ctx.Version())
	if err != nil {
		return false, err
	}
	return have >= lo && have <= hi, nil
}

func modifierGuard(modifier string) core.GuardFunction {
	return func(ctx *core.GuardContext, args []string) (bool, error) {
		if len(args) != 1 {
			return false, fmt.Errorf("modifier guard expects one placeholder argument")
		}
		b, ok := binding(ctx, args[0])
		if !ok || b.Sequence || b.Node == nil {
			return false, nil
		}
		decl := enclosingDeclaration(b.Node)
		if decl == nil {
			return false, nil
		}
		return hasModifier(decl, modifier), nil
	}
}

func guardElementKindMatches(ctx *core.GuardContext, args []string) (bool, error) {
	if len(args) != 2 {
		return false, fmt.Errorf("elementKindMatches expects a placeholder and a kind")
	}
	b, ok := binding(ctx, args[0])
	if !ok || b.Sequence || b.Node == nil {
		return false, nil
	}
	return b.Node.Kind() == stripQuotes(args[1]), nil
}

func guardHasAnnotation(ctx *core.GuardContext, args []string) (bool, error) {
	if len(args) != 2 {
		return false, fmt.Errorf("hasAnnotation expects a placeholder and an annotation name")
	}
	b, ok := binding(ctx, args[0])
	if !ok || b.Sequence || b.Node == nil {
		return false, nil
	}
	want := strings.TrimPrefix(stripQuotes(args[1]), "@")
	decl := enclosingDeclaration(b.Node)
	if decl == nil {
		return false, nil
	}
	return hasAnnotation(decl, want), nil
}

func guardIsDeprecated(ctx *core.GuardContext, args []string) (bool, error) {
	return guardHasAnnotation(ctx, append(args[:len(args):len(args)], "Deprecated"))
}

func guardParentKindIs(ctx *core.GuardContext, args []string) (bool, error) {
	if len(args) != 1 {
		return false, fmt.Errorf("parentKindIs expects one kind argument")
	}
	parent := ctx.Match.Node.Parent()
	return parent != nil && parent.Kind() == stripQuotes(args[0]), nil
}

func guardContains(ctx *core.GuardContext, args []string) (bool, error) {
	if len(args) != 1 {
		return false, fmt.Errorf("contains expects one text argument")
	}
	return strings.Contains(enclosingBodyText(ctx), stripQuotes(args[0])), nil
}

func guardNotContains(ctx *core.GuardContext, args []string) (bool, error) {
	ok, err := guardContains(ctx, args)
	if err != nil {
		return false, fmt.Errorf("notContains expects one text argument")
	}
	return !ok, nil
}

func guardInMethod(ctx *core.GuardContext, args []string) (bool, error) {
	if len(args) != 1 {
		return false, fmt.Errorf("inMethod expects one method name argument")
	}
	method := syntax.Ancestor(ctx.Match.Node, true, "method_declaration")
	if method == nil {
		return false, nil
	}
	return methodName(method) == stripQuotes(args[0]), nil
}

// binding resolves a $name argument against the match.
func binding(ctx *core.GuardContext, arg string) (core.Binding, bool) {
	name := strings.TrimPrefix(stripQuotes(arg), "$")
	name = strings.TrimSuffix(name, "$")
	return ctx.Match.Binding(name)
}

func boundNodes(b core.Binding) []syntax.Node {
	if b.Sequence {
		return b.Nodes
	}
	if b.Node == nil {
		return nil
	}
	return []syntax.Node{b.Node}
}

func stripQuotes(s string) string {
	if len(s) >= 2 {
		if (s[0] == '"' && s[len(s)-1] == '"') || (s[0] == '\'' && s[len(s)-1] == '\'') {
			return s[1 : len(s)-1]
		}
	}
	return s
}

// literalText extracts the comparable value of a bound node. Quoted
// literals compare by content, everything else by source text.
func literalText(n syntax.Node) string {
	switch n.Kind() {
	case "string_literal", "character_literal":
		return stripQuotes(n.Text())
	}
	return n.Text()
}

// parseVersion accepts both legacy ("1.8") and modern ("17") numbering.
func parseVersion(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(stripQuotes(s)), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid source version %q", s)
	}
	return v, nil
}

func typeNamesMatch(a, b string) bool {
	if a == b {
		return true
	}
	return strings.HasSuffix(a, "."+b) || strings.HasSuffix(b, "."+a)
}
