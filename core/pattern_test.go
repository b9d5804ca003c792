package core

import "testing"

func TestPlaceholders(t *testing.T) {
	p := Pattern{Text: "foo($a, $rest$, $a)", Kind: KindMethodCall}
	got := p.Placeholders()
	want := []Placeholder{{Name: "a"}, {Name: "rest", Variadic: true}}
	if len(got) != len(want) {
		t.Fatalf("expected %d placeholders, got %d: %v", len(want), len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("placeholder %d: expected %+v, got %+v", i, want[i], got[i])
		}
	}
}

func TestPlaceholdersNone(t *testing.T) {
	p := Pattern{Text: "new FileReader(name)", Kind: KindConstructor}
	if p.HasPlaceholders() {
		t.Error("expected no placeholders")
	}
	if got := p.Placeholders(); len(got) != 0 {
		t.Errorf("expected empty list, got %v", got)
	}
}

func TestExpandPlaceholders(t *testing.T) {
	out := ExpandPlaceholders("foo($a, $rest$)", func(name string, variadic bool) (string, bool) {
		switch {
		case name == "a" && !variadic:
			return "x", true
		case name == "rest" && variadic:
			return "y, z", true
		}
		return "", false
	})
	if out != "foo(x, y, z)" {
		t.Errorf("unexpected expansion: %q", out)
	}
}

func TestExpandPlaceholdersKeepsUnbound(t *testing.T) {
	out := ExpandPlaceholders("$a + $b", func(name string, variadic bool) (string, bool) {
		if name == "a" {
			return "1", true
		}
		return "", false
	})
	if out != "1 + $b" {
		t.Errorf("unexpected expansion: %q", out)
	}
}

func TestPatternEqual(t *testing.T) {
	a := Pattern{Text: "$x + 1", Kind: KindExpression, ID: "one"}
	b := Pattern{Text: "$x + 1", Kind: KindExpression, ID: "two"}
	if !a.Equal(b) {
		t.Error("identity fields must not affect equality")
	}
	c := Pattern{Text: "$x + 1", Kind: KindStatement}
	if a.Equal(c) {
		t.Error("different kinds must not be equal")
	}
}
