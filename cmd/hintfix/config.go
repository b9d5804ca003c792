package main

import "os"

// Config holds the CLI configuration
type Config struct {
	// Database
	DatabaseURL string

	// Rule input
	RulesPath string

	// Target selection
	Include []string
	Exclude []string

	// Language level of the sources under rewrite
	SourceVersion string

	// Debug
	Debug bool
}

// DefaultConfig returns a config with sensible defaults
func DefaultConfig() Config {
	return Config{
		DatabaseURL:   ".hintfix/history.db",
		SourceVersion: "17",
		Include:       []string{"**/*.java"},
		Exclude:       []string{"**/target/**", "**/build/**"},
	}
}

// applyEnv lets the environment override file-level defaults.
func (c *Config) applyEnv() {
	if v := os.Getenv("HINTFIX_DB"); v != "" {
		c.DatabaseURL = v
	}
	if v := os.Getenv("HINTFIX_SOURCE_VERSION"); v != "" {
		c.SourceVersion = v
	}
}
