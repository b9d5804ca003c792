package core

import (
	"regexp"
	"strings"
)

// ImportDirective describes the import edits a rewrite requires. Lists keep
// declaration order; Merge deduplicates.
type ImportDirective struct {
	Add           []string
	Remove        []string
	AddStatic     []string
	RemoveStatic  []string
	ReplaceStatic map[string]string
}

// IsEmpty reports whether the directive carries no edits at all.
func (d ImportDirective) IsEmpty() bool {
	return len(d.Add) == 0 && len(d.Remove) == 0 &&
		len(d.AddStatic) == 0 && len(d.RemoveStatic) == 0 &&
		len(d.ReplaceStatic) == 0
}

// Merge combines two directives, preserving the receiver's order first and
// dropping duplicates. Replacement entries from other win on key conflict.
func (d ImportDirective) Merge(other ImportDirective) ImportDirective {
	out := ImportDirective{
		Add:          mergeLists(d.Add, other.Add),
		Remove:       mergeLists(d.Remove, other.Remove),
		AddStatic:    mergeLists(d.AddStatic, other.AddStatic),
		RemoveStatic: mergeLists(d.RemoveStatic, other.RemoveStatic),
	}
	if len(d.ReplaceStatic) > 0 || len(other.ReplaceStatic) > 0 {
		out.ReplaceStatic = make(map[string]string, len(d.ReplaceStatic)+len(other.ReplaceStatic))
		for k, v := range d.ReplaceStatic {
			out.ReplaceStatic[k] = v
		}
		for k, v := range other.ReplaceStatic {
			out.ReplaceStatic[k] = v
		}
	}
	return out
}

func mergeLists(a, b []string) []string {
	if len(a) == 0 && len(b) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(a)+len(b))
	out := make([]string, 0, len(a)+len(b))
	for _, s := range append(append([]string{}, a...), b...) {
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}

// fqnRe recognizes fully qualified type names: one or more lowercase package
// segments followed by a capitalized type segment.
var fqnRe = regexp.MustCompile(`\b[a-z][a-z0-9_]*(?:\.[a-z][a-z0-9_]*)*\.[A-Z][A-Za-z0-9_]*\b`)

// DetectImports scans replacement text for fully qualified type names and
// returns an addImport directive for each distinct one. Fragments adjacent
// to a placeholder marker and java.lang types are skipped.
func DetectImports(text string) ImportDirective {
	var d ImportDirective
	seen := make(map[string]bool)
	for _, loc := range fqnRe.FindAllStringIndex(text, -1) {
		if loc[0] > 0 && text[loc[0]-1] == '$' {
			continue
		}
		fqn := text[loc[0]:loc[1]]
		if strings.Contains(fqn, "$") || strings.HasPrefix(fqn, "java.lang.") {
			continue
		}
		if seen[fqn] {
			continue
		}
		seen[fqn] = true
		d.Add = append(d.Add, fqn)
	}
	return d
}
