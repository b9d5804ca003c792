package base

import (
	"context"
	"testing"

	"github.com/smacker/go-tree-sitter/java"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseProducesTree(t *testing.T) {
	tree, err := Parse(context.Background(), java.GetLanguage(), []byte("class A { int x = 1; }"))
	require.NoError(t, err)
	assert.Equal(t, "program", tree.Root().Kind())
	assert.False(t, tree.HasError())
	assert.Equal(t, "class A { int x = 1; }", string(tree.Source()))
}

func TestHasErrorOnBrokenSource(t *testing.T) {
	tree, err := Parse(context.Background(), java.GetLanguage(), []byte("class A { int x = ; }"))
	require.NoError(t, err)
	assert.True(t, tree.HasError())
}

func TestNodeAccessors(t *testing.T) {
	tree, err := Parse(context.Background(), java.GetLanguage(), []byte("class A {}"))
	require.NoError(t, err)

	root := tree.Root()
	assert.Nil(t, root.Parent())
	assert.True(t, root.IsNamed())
	require.Equal(t, 1, root.NamedChildCount())

	class := root.NamedChild(0)
	assert.Equal(t, "class_declaration", class.Kind())
	assert.Equal(t, "class A {}", class.Text())
	assert.Equal(t, 0, class.StartByte())
	assert.Equal(t, 10, class.EndByte())
	assert.Equal(t, "program", class.Parent().Kind())
}

func TestChildOutOfRange(t *testing.T) {
	tree, err := Parse(context.Background(), java.GetLanguage(), []byte("class A {}"))
	require.NoError(t, err)
	root := tree.Root()
	assert.Nil(t, root.Child(-1))
	assert.Nil(t, root.Child(root.ChildCount()))
	assert.Nil(t, root.NamedChild(99))
}
