package guards

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/termfx/hintfix/core"
	"github.com/termfx/hintfix/matcher"
	"github.com/termfx/hintfix/providers/java"
)

// firstMatch compiles pattern text against source and returns the guard
// context of the first occurrence.
func firstMatch(t *testing.T, source, patternText string, kind core.PatternKind, version string) *core.GuardContext {
	t.Helper()
	provider := java.New()
	tree, err := provider.ParseSource(context.Background(), []byte(source))
	require.NoError(t, err)

	cp, err := provider.CompilePattern(core.Pattern{Text: patternText, Kind: kind})
	require.NoError(t, err)

	matches := matcher.New(provider).FindMatches(tree, cp)
	require.NotEmpty(t, matches, "pattern %q found nothing", patternText)

	m := matches[0]
	if _, ok := m.Bindings["_"]; !ok {
		m.Bindings["_"] = core.ScalarBinding(m.Node)
	}
	return &core.GuardContext{Match: m, Source: []byte(source), SourceVersion: version}
}

const calcSource = `
class Calc {
    int scale = 2;

    int twice(int x) {
        return x + x;
    }

    int mixed(int x, int y) {
        int seed = x * 2;
        return x + (y * 2);
    }
}
`

func TestMatchesAnyAndNone(t *testing.T) {
	ctx := firstMatch(t, calcSource, "$a + $b", core.KindExpression, "17")

	ok, err := guardMatchesAny(ctx, []string{"$a"})
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = guardMatchesAny(ctx, []string{"$missing"})
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = guardMatchesNone(ctx, []string{"$missing"})
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestMatchesAnyLiteralSet(t *testing.T) {
	source := `
class A {
    void m(int mode) {
        handle(mode);
        print("x");
    }
}
`
	idCtx := firstMatch(t, source, "handle($v)", core.KindMethodCall, "17")
	strCtx := firstMatch(t, source, "print($s)", core.KindMethodCall, "17")

	tests := []struct {
		name string
		ctx  *core.GuardContext
		args []string
		want bool
	}{
		{"identifier in set", idCtx, []string{"$v", "mode", "other"}, true},
		{"identifier not in set", idCtx, []string{"$v", `"x"`, `"z"`}, false},
		{"quoted literal arg", idCtx, []string{"$v", `"mode"`}, true},
		{"string literal compares unquoted", strCtx, []string{"$s", `"x"`}, true},
		{"string literal mismatch", strCtx, []string{"$s", `"y"`}, false},
		{"unbound placeholder", idCtx, []string{"$missing", "mode"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := guardMatchesAny(tt.ctx, tt.args)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)

			none, err := guardMatchesNone(tt.ctx, tt.args)
			require.NoError(t, err)
			assert.Equal(t, !tt.want, none)
		})
	}
}

func TestSourceVersionGuards(t *testing.T) {
	ctx := firstMatch(t, calcSource, "$a + $b", core.KindExpression, "17")

	tests := []struct {
		fn   core.GuardFunction
		args []string
		want bool
	}{
		{guardSourceVersionGE, []string{"11"}, true},
		{guardSourceVersionGE, []string{"17"}, true},
		{guardSourceVersionGE, []string{"21"}, false},
		{guardSourceVersionLE, []string{"21"}, true},
		{guardSourceVersionLE, []string{"11"}, false},
		{guardSourceVersionBetween, []string{"11", "21"}, true},
		{guardSourceVersionBetween, []string{"18", "21"}, false},
	}
	for _, tt := range tests {
		got, err := tt.fn(ctx, tt.args)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "args %v", tt.args)
	}
}

func TestSourceVersionDefaultsToLegacy(t *testing.T) {
	ctx := firstMatch(t, calcSource, "$a + $b", core.KindExpression, "")
	got, err := guardSourceVersionLE(ctx, []string{"1.8"})
	require.NoError(t, err)
	assert.True(t, got)
}

func TestInstanceofOnLiterals(t *testing.T) {
	source := `
class A {
    String greet(int n) {
        return "hello" + n;
    }
}
`
	ctx := firstMatch(t, source, "$s + $n", core.KindExpression, "17")

	ok, err := guardInstanceof(ctx, []string{"$s", "String"})
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = guardInstanceof(ctx, []string{"$s", "java.lang.String"})
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = guardInstanceof(ctx, []string{"$s", "Integer"})
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestHasNoSideEffect(t *testing.T) {
	pure := firstMatch(t, calcSource, "$a + $b", core.KindExpression, "17")
	ok, err := guardHasNoSideEffect(pure, []string{"$a"})
	require.NoError(t, err)
	assert.True(t, ok)

	source := `
class A {
    int m() {
        return next() + 1;
    }
    int next() { return 1; }
}
`
	impure := firstMatch(t, source, "$a + $b", core.KindExpression, "17")
	ok, err = guardHasNoSideEffect(impure, []string{"$a"})
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestReferencedIn(t *testing.T) {
	ctx := firstMatch(t, "class A { int m(int x, int y) { return x + (x * 2); } }",
		"$a + $b", core.KindExpression, "17")
	ok, err := guardReferencedIn(ctx, []string{"$a", "$b"})
	require.NoError(t, err)
	assert.True(t, ok)

	ctx = firstMatch(t, "class A { int m(int x, int y) { return x + (y * 2); } }",
		"$a + $b", core.KindExpression, "17")
	ok, err = guardReferencedIn(ctx, []string{"$a", "$b"})
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestContainsSearchesEnclosingMethod(t *testing.T) {
	ctx := firstMatch(t, calcSource, "$v * 2", core.KindExpression, "17")

	ok, err := guardContains(ctx, []string{`"seed"`})
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = guardContains(ctx, []string{`"nowhere"`})
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = guardNotContains(ctx, []string{`"nowhere"`})
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestInMethod(t *testing.T) {
	ctx := firstMatch(t, calcSource, "$a + $b", core.KindExpression, "17")

	ok, err := guardInMethod(ctx, []string{"twice"})
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = guardInMethod(ctx, []string{"mixed"})
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestModifierAndAnnotationGuards(t *testing.T) {
	source := `
class A {
    @Deprecated
    static void legacy() {
        target();
    }
    void target() {}
}
`
	ctx := firstMatch(t, source, "target()", core.KindMethodCall, "17")

	ok, err := modifierGuard("static")(ctx, []string{"$_"})
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = modifierGuard("final")(ctx, []string{"$_"})
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = guardHasAnnotation(ctx, []string{"$_", "Deprecated"})
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = guardIsDeprecated(ctx, []string{"$_"})
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestElementKindAndParentKind(t *testing.T) {
	ctx := firstMatch(t, calcSource, "$a + $b", core.KindExpression, "17")

	ok, err := guardElementKindMatches(ctx, []string{"$_", "binary_expression"})
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = guardParentKindIs(ctx, []string{"return_statement"})
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestOtherwiseIsAlwaysTrue(t *testing.T) {
	got, err := guardOtherwise(nil, nil)
	require.NoError(t, err)
	assert.True(t, got)
}
