package core

// HintFile is one parsed rule unit: its metadata directives, the units it
// includes, and its rules in declaration order.
type HintFile struct {
	ID          string
	Description string
	Severity    string
	MinVersion  string
	Tags        []string
	Includes    []string
	Rules       []TransformationRule
}
