package core

import (
	"fmt"
	"strings"
)

// GuardExpression is the condition language attached to rules and rewrite
// alternatives. It is a closed union: FunctionCall, And, Or, Not. Names in
// function calls are late bound; nothing is resolved until evaluation.
type GuardExpression interface {
	fmt.Stringer
	guardExpr()
}

// FunctionCall invokes a named guard function with literal arguments.
// Arguments are kept verbatim as written in the hint file: placeholders
// keep their $ prefix and string literals keep their quotes.
type FunctionCall struct {
	Name string
	Args []string
}

// And is short-circuit conjunction.
type And struct {
	Left, Right GuardExpression
}

// Or is short-circuit disjunction.
type Or struct {
	Left, Right GuardExpression
}

// Not inverts its operand.
type Not struct {
	Operand GuardExpression
}

func (FunctionCall) guardExpr() {}
func (And) guardExpr()          {}
func (Or) guardExpr()           {}
func (Not) guardExpr()          {}

func (f FunctionCall) String() string {
	if len(f.Args) == 0 {
		return f.Name
	}
	return f.Name + "(" + strings.Join(f.Args, ", ") + ")"
}

func (a And) String() string { return "(" + a.Left.String() + " && " + a.Right.String() + ")" }
func (o Or) String() string  { return "(" + o.Left.String() + " || " + o.Right.String() + ")" }
func (n Not) String() string { return "!" + n.Operand.String() }

// GuardFunction is the pluggable unit of guard semantics. It receives the
// evaluation context and the call's verbatim arguments.
type GuardFunction func(ctx *GuardContext, args []string) (bool, error)

// GuardResolver maps a function name to its implementation at evaluation
// time. Resolution is deliberately late: parsing never checks names.
type GuardResolver interface {
	Resolve(name string) (GuardFunction, bool)
}

// ResolverFunc adapts a plain function to GuardResolver.
type ResolverFunc func(name string) (GuardFunction, bool)

func (f ResolverFunc) Resolve(name string) (GuardFunction, bool) { return f(name) }
