package apply

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/termfx/hintfix/core"
)

func TestRewriteImportsAddAndRemove(t *testing.T) {
	src := []byte(`package demo;

import java.io.FileReader;
import java.io.Reader;

class A {}
`)
	out := RewriteImports(src, core.ImportDirective{
		Add:    []string{"java.io.InputStreamReader", "java.io.FileInputStream"},
		Remove: []string{"java.io.FileReader"},
	})
	want := `package demo;

import java.io.Reader;
import java.io.InputStreamReader;
import java.io.FileInputStream;

class A {}
`
	assert.Equal(t, want, string(out))
}

func TestRewriteImportsSkipsDuplicates(t *testing.T) {
	src := []byte(`package demo;

import java.util.List;

class A {}
`)
	out := RewriteImports(src, core.ImportDirective{
		Add: []string{"java.util.List", "java.util.List"},
	})
	want := `package demo;

import java.util.List;

class A {}
`
	assert.Equal(t, want, string(out))
}

func TestRewriteImportsReplaceStaticInPlace(t *testing.T) {
	src := []byte(`package demo;

import static org.junit.Assert.assertEquals;

class A {}
`)
	out := RewriteImports(src, core.ImportDirective{
		ReplaceStatic: map[string]string{
			"org.junit.Assert.assertEquals": "org.junit.jupiter.api.Assertions.assertEquals",
		},
	})
	want := `package demo;

import static org.junit.jupiter.api.Assertions.assertEquals;

class A {}
`
	assert.Equal(t, want, string(out))
}

func TestRewriteImportsStaticAddAndRemove(t *testing.T) {
	src := []byte(`package demo;

import static java.util.Collections.emptyList;

class A {}
`)
	out := RewriteImports(src, core.ImportDirective{
		AddStatic:    []string{"java.util.List.of"},
		RemoveStatic: []string{"java.util.Collections.emptyList"},
	})
	want := `package demo;

import static java.util.List.of;

class A {}
`
	assert.Equal(t, want, string(out))
}

func TestRewriteImportsOpensSectionBelowPackage(t *testing.T) {
	src := []byte(`package demo;

class A {}
`)
	out := RewriteImports(src, core.ImportDirective{
		Add: []string{"java.util.List"},
	})
	want := `package demo;

import java.util.List;

class A {}
`
	assert.Equal(t, want, string(out))
}

func TestRewriteImportsWithoutPackageDeclaration(t *testing.T) {
	src := []byte("class A {}\n")
	out := RewriteImports(src, core.ImportDirective{
		Add: []string{"java.util.List"},
	})
	assert.Equal(t, "import java.util.List;\nclass A {}\n", string(out))
}

func TestRewriteImportsEmptyDirectiveIsIdentity(t *testing.T) {
	src := []byte("package demo;\n\nclass A {}\n")
	out := RewriteImports(src, core.ImportDirective{})
	assert.Equal(t, string(src), string(out))
}
