package core

import (
	"fmt"
	"strings"
)

// ParseError is a hint file syntax error. Line is 1-based within the unit
// being parsed.
type ParseError struct {
	Line    int
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("Line %d: %s", e.Line, e.Message)
}

// CircularIncludeError reports an include cycle. Cycle lists the unit ids
// along the offending chain, ending with the repeated id.
type CircularIncludeError struct {
	Cycle []string
}

func (e *CircularIncludeError) Error() string {
	return "circular include: " + strings.Join(e.Cycle, " -> ")
}

// UnknownGuardFunctionError is returned when guard evaluation reaches a
// function name the resolver does not know. Guard names are late bound, so
// this surfaces at evaluation time, never at parse time.
type UnknownGuardFunctionError struct {
	Name string
}

func (e *UnknownGuardFunctionError) Error() string {
	return fmt.Sprintf("unknown guard function: %s", e.Name)
}
