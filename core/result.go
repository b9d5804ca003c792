package core

// TransformationResult is one rule occurrence found by the processor. When
// an alternative was selected, Replacement holds the rendered rewrite text
// and Imports the merged import edits; otherwise the result is a diagnostic
// only (hint-only rule, or every guarded alternative evaluated false).
type TransformationResult struct {
	Rule        *TransformationRule
	Match       Match
	Alternative *RewriteAlternative
	Replacement string
	Imports     ImportDirective
	Description string
	Line        int
}

// HasReplacement reports whether an alternative was selected for this
// occurrence.
func (r TransformationResult) HasReplacement() bool { return r.Alternative != nil }
