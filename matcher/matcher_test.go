package matcher

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/termfx/hintfix/core"
	"github.com/termfx/hintfix/providers/java"
	"github.com/termfx/hintfix/syntax"
)

func compile(t *testing.T, text string, kind core.PatternKind) *core.CompiledPattern {
	t.Helper()
	cp, err := java.New().CompilePattern(core.Pattern{Text: text, Kind: kind})
	require.NoError(t, err)
	return cp
}

func parse(t *testing.T, source string) syntax.Tree {
	t.Helper()
	tree, err := java.New().ParseSource(context.Background(), []byte(source))
	require.NoError(t, err)
	return tree
}

func find(t *testing.T, source, pattern string, kind core.PatternKind) []core.Match {
	t.Helper()
	return New(java.New()).FindMatches(parse(t, source), compile(t, pattern, kind))
}

func bindingText(t *testing.T, source string, m core.Match, name string) string {
	t.Helper()
	b, ok := m.Binding(name)
	require.True(t, ok, "no binding for %s", name)
	return b.SourceText([]byte(source))
}

func TestMatchSimpleCall(t *testing.T) {
	source := `
class A {
    void m() {
        log(user.name());
        other(1);
    }
}
`
	matches := find(t, source, "log($msg)", core.KindMethodCall)
	require.Len(t, matches, 1)
	assert.Equal(t, "user.name()", bindingText(t, source, matches[0], "msg"))
}

func TestRepeatedPlaceholderRequiresStructuralEquality(t *testing.T) {
	source := `
class A {
    int m(int a, int b) {
        int u = a + a;
        int v = a + b;
        return u + v;
    }
}
`
	matches := find(t, source, "$x + $x", core.KindExpression)
	require.Len(t, matches, 1)
	assert.Equal(t, "a", bindingText(t, source, matches[0], "x"))
}

func TestVariadicArgumentList(t *testing.T) {
	source := `
class A {
    void m() {
        run();
        run(a);
        run(a, b, c);
    }
}
`
	matches := find(t, source, "run($args$)", core.KindMethodCall)
	require.Len(t, matches, 3)

	empty, _ := matches[0].Binding("args")
	assert.True(t, empty.Sequence)
	assert.Empty(t, empty.Nodes)
	assert.Equal(t, "", empty.SourceText([]byte(source)))

	assert.Equal(t, "a", bindingText(t, source, matches[1], "args"))
	// the sequence renders as the original span, separators included
	assert.Equal(t, "a, b, c", bindingText(t, source, matches[2], "args"))
}

func TestVariadicBacktracksToBindTrailingScalar(t *testing.T) {
	source := `
class A {
    void m() {
        check(a, b, expected);
    }
}
`
	matches := find(t, source, "check($init$, $last)", core.KindMethodCall)
	require.Len(t, matches, 1)
	assert.Equal(t, "a, b", bindingText(t, source, matches[0], "init"))
	assert.Equal(t, "expected", bindingText(t, source, matches[0], "last"))
}

func TestOperatorTokensAreCompared(t *testing.T) {
	source := `
class A {
    int m(int x) {
        int p = x + 1;
        int q = x - 1;
        return p * q;
    }
}
`
	matches := find(t, source, "$a + $b", core.KindExpression)
	require.Len(t, matches, 1)
	assert.Equal(t, "x", bindingText(t, source, matches[0], "a"))
	assert.Equal(t, "1", bindingText(t, source, matches[0], "b"))
}

func TestNestedOccurrencesAreAllReported(t *testing.T) {
	source := `
class A {
    int m(int x) {
        return f(f(x));
    }
}
`
	matches := find(t, source, "f($a)", core.KindMethodCall)
	require.Len(t, matches, 2)
	// document order: the outer call starts first
	assert.Equal(t, "f(x)", bindingText(t, source, matches[0], "a"))
	assert.Equal(t, "x", bindingText(t, source, matches[1], "a"))
	assert.Less(t, matches[0].Offset, matches[1].Offset)
}

func TestCandidateCommentsAreSkipped(t *testing.T) {
	source := `
class A {
    void m() {
        log(/* why */ value);
    }
}
`
	matches := find(t, source, "log($v)", core.KindMethodCall)
	require.Len(t, matches, 1)
	assert.Equal(t, "value", bindingText(t, source, matches[0], "v"))
}

func TestStatementWindowSlidesOverBlock(t *testing.T) {
	source := `
class A {
    void m(java.io.Closeable c) {
        open(c);
        use(c);
        close(c);
    }
}
`
	matches := find(t, source, "$first; $second;", core.KindStatementSequence)
	// anchored at statements 1 and 2; statement 3 has no successor
	require.Len(t, matches, 2)
	assert.Equal(t, "open(c);", bindingText(t, source, matches[0], "first"))
	assert.Equal(t, "use(c);", bindingText(t, source, matches[0], "second"))
	assert.Equal(t, "use(c);", bindingText(t, source, matches[1], "first"))
}

func TestStatementWindowWithConcreteAnchor(t *testing.T) {
	source := `
class A {
    void m() {
        init();
        doWork();
        cleanup();
        init();
        cleanup();
    }
}
`
	matches := find(t, source, "init(); $between$; cleanup();", core.KindStatementSequence)
	require.Len(t, matches, 2)
	assert.Equal(t, "doWork();", bindingText(t, source, matches[0], "between"))

	empty, _ := matches[1].Binding("between")
	assert.True(t, empty.Sequence)
	assert.Empty(t, empty.Nodes)
}

func TestBlockVariadicMatchesEmptyPrefix(t *testing.T) {
	source := `
class A {
    int one() {
        return 5;
    }
    int two(int x) {
        log(x);
        return x;
    }
}
`
	matches := find(t, source, "{ $before$; return $x; }", core.KindBlock)
	require.Len(t, matches, 2)

	empty, _ := matches[0].Binding("before")
	assert.True(t, empty.Sequence)
	assert.Empty(t, empty.Nodes)
	assert.Equal(t, "5", bindingText(t, source, matches[0], "x"))

	assert.Equal(t, "log(x);", bindingText(t, source, matches[1], "before"))
	assert.Equal(t, "x", bindingText(t, source, matches[1], "x"))
}

func TestWindowSpanCoversAllConsumedStatements(t *testing.T) {
	source := `
class A {
    void m() {
        first();
        second();
    }
}
`
	matches := find(t, source, "$a; $b;", core.KindStatementSequence)
	require.Len(t, matches, 1)

	m := matches[0]
	covered := source[m.Offset : m.Offset+m.Length]
	assert.Equal(t, "first();\n        second();", covered)
}

func TestEmptyStringConcatIdiom(t *testing.T) {
	source := `
class A {
    String m(int i, long j, Object o) {
        String a = "" + i;
        String b = "" + j;
        String c = "" + o;
        String d = "x" + i;
        return a + b + c + d;
    }
}
`
	matches := find(t, source, `"" + $x`, core.KindExpression)
	require.Len(t, matches, 3)
	assert.Equal(t, "i", bindingText(t, source, matches[0], "x"))
	assert.Equal(t, "j", bindingText(t, source, matches[1], "x"))
	assert.Equal(t, "o", bindingText(t, source, matches[2], "x"))
}

func TestMatchNodeRejectsKindMismatch(t *testing.T) {
	tree := parse(t, "class A { void m() { g(1); } }")
	cp := compile(t, "f($a)", core.KindMethodCall)

	m := New(java.New())
	var call syntax.Node
	syntax.Walk(tree.Root(), func(n syntax.Node) bool {
		if n.Kind() == "method_invocation" {
			call = n
			return false
		}
		return true
	})
	require.NotNil(t, call)

	_, ok := m.MatchNode(cp, call)
	assert.False(t, ok, "f($a) must not match g(1)")
}

func TestMatchWindowReportsConsumption(t *testing.T) {
	tree := parse(t, "class A { void m() { a(); b(); c(); } }")
	cp := compile(t, "$x; $y;", core.KindStatementSequence)

	var block syntax.Node
	syntax.Walk(tree.Root(), func(n syntax.Node) bool {
		if n.Kind() == "block" {
			block = n
			return false
		}
		return true
	})
	require.NotNil(t, block)

	stmts := namedChildren(block)
	require.Len(t, stmts, 3)

	consumed, bindings, ok := New(java.New()).MatchWindow(cp, stmts)
	require.True(t, ok)
	assert.Equal(t, 2, consumed)
	assert.Len(t, bindings, 2)
}
