package core

import "regexp"

// PatternKind classifies the syntactic shape a pattern describes. The kind
// decides how the pattern text is compiled and which tree nodes are even
// considered during matching.
type PatternKind int

const (
	KindExpression PatternKind = iota
	KindStatement
	KindBlock
	KindStatementSequence
	KindMethodCall
	KindConstructor
	KindAnnotation
	KindImport
	KindField
	KindMethodDeclaration
)

var patternKindNames = map[PatternKind]string{
	KindExpression:        "EXPRESSION",
	KindStatement:         "STATEMENT",
	KindBlock:             "BLOCK",
	KindStatementSequence: "STATEMENT_SEQUENCE",
	KindMethodCall:        "METHOD_CALL",
	KindConstructor:       "CONSTRUCTOR",
	KindAnnotation:        "ANNOTATION",
	KindImport:            "IMPORT",
	KindField:             "FIELD",
	KindMethodDeclaration: "METHOD_DECLARATION",
}

func (k PatternKind) String() string {
	if s, ok := patternKindNames[k]; ok {
		return s
	}
	return "UNKNOWN"
}

// Pattern is an immutable source fragment with placeholders. Text is the
// literal fragment as written in a hint file; $name is a scalar placeholder
// and $name$ a variadic one.
type Pattern struct {
	Text        string
	Kind        PatternKind
	ID          string
	DisplayName string
}

// placeholderRe matches $name$ before $name so the variadic form wins.
var placeholderRe = regexp.MustCompile(`\$([A-Za-z_][A-Za-z0-9_]*)\$|\$([A-Za-z_][A-Za-z0-9_]*)`)

// Placeholder is one occurrence of a $name or $name$ token in pattern text.
type Placeholder struct {
	Name     string
	Variadic bool
}

// Placeholders returns every distinct placeholder in order of first
// occurrence.
func (p Pattern) Placeholders() []Placeholder {
	var out []Placeholder
	seen := make(map[string]bool)
	for _, m := range placeholderRe.FindAllStringSubmatch(p.Text, -1) {
		ph := Placeholder{Name: m[1], Variadic: true}
		if m[1] == "" {
			ph = Placeholder{Name: m[2], Variadic: false}
		}
		if seen[ph.Name] {
			continue
		}
		seen[ph.Name] = true
		out = append(out, ph)
	}
	return out
}

// ExpandPlaceholders rewrites each placeholder occurrence in text using
// expand. The original token is kept when expand reports no value.
func ExpandPlaceholders(text string, expand func(name string, variadic bool) (string, bool)) string {
	return placeholderRe.ReplaceAllStringFunc(text, func(tok string) string {
		name := tok[1:]
		variadic := false
		if len(name) > 0 && name[len(name)-1] == '$' {
			name = name[:len(name)-1]
			variadic = true
		}
		if out, ok := expand(name, variadic); ok {
			return out
		}
		return tok
	})
}

// HasPlaceholders reports whether the pattern text contains any placeholder.
func (p Pattern) HasPlaceholders() bool {
	return placeholderRe.MatchString(p.Text)
}

// Equal compares patterns by text and kind; identity fields do not
// participate.
func (p Pattern) Equal(other Pattern) bool {
	return p.Text == other.Text && p.Kind == other.Kind
}
