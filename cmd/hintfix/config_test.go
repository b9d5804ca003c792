package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultConfig(t *testing.T) {
	c := DefaultConfig()
	assert.Equal(t, ".hintfix/history.db", c.DatabaseURL)
	assert.Equal(t, "17", c.SourceVersion)
	assert.Contains(t, c.Include, "**/*.java")
	assert.NotEmpty(t, c.Exclude)
}

func TestApplyEnvOverrides(t *testing.T) {
	t.Setenv("HINTFIX_DB", "libsql://hist.example.turso.io")
	t.Setenv("HINTFIX_SOURCE_VERSION", "21")

	c := DefaultConfig()
	c.applyEnv()
	assert.Equal(t, "libsql://hist.example.turso.io", c.DatabaseURL)
	assert.Equal(t, "21", c.SourceVersion)
}

func TestApplyEnvKeepsDefaultsWhenUnset(t *testing.T) {
	t.Setenv("HINTFIX_DB", "")
	t.Setenv("HINTFIX_SOURCE_VERSION", "")

	c := DefaultConfig()
	c.applyEnv()
	assert.Equal(t, ".hintfix/history.db", c.DatabaseURL)
	assert.Equal(t, "17", c.SourceVersion)
}
