package core

// RewriteAlternative is one candidate replacement of a rule. Exactly one of
// the following holds: it carries a Condition, it is the Otherwise branch,
// or it is unconditional (nil Condition, Otherwise false) which selection
// treats the same as a satisfied condition.
type RewriteAlternative struct {
	Replacement Pattern
	Condition   GuardExpression
	Otherwise   bool
	Imports     ImportDirective
}

// TransformationRule pairs a source pattern with an ordered list of rewrite
// alternatives. A rule with no alternatives is hint-only: it flags
// occurrences without proposing a rewrite.
type TransformationRule struct {
	Description   string
	SourcePattern Pattern
	SourceGuard   GuardExpression
	Alternatives  []RewriteAlternative
	Imports       ImportDirective
}

// IsHintOnly reports whether the rule flags matches without rewriting.
func (r *TransformationRule) IsHintOnly() bool { return len(r.Alternatives) == 0 }

// FindMatchingAlternative selects the first alternative, in declaration
// order, whose condition evaluates true; an otherwise or unconditional
// alternative is always taken when reached. Returns nil when every guarded
// alternative evaluates false. Evaluation errors abort selection.
func (r *TransformationRule) FindMatchingAlternative(eval func(GuardExpression) (bool, error)) (*RewriteAlternative, error) {
	for i := range r.Alternatives {
		alt := &r.Alternatives[i]
		if alt.Otherwise || alt.Condition == nil {
			return alt, nil
		}
		ok, err := eval(alt.Condition)
		if err != nil {
			return nil, err
		}
		if ok {
			return alt, nil
		}
	}
	return nil, nil
}
