// Package guards evaluates guard expressions and hosts the registry of
// guard functions, including the built-in set.
package guards

import (
	"fmt"

	"github.com/termfx/hintfix/core"
)

// Evaluate walks a guard expression. Function names are resolved through
// r at this point and nowhere earlier; an unresolved name yields
// UnknownGuardFunctionError. And/Or short-circuit left to right. A nil
// expression is vacuously true.
func Evaluate(expr core.GuardExpression, ctx *core.GuardContext, r core.GuardResolver) (bool, error) {
	switch e := expr.(type) {
	case nil:
		return true, nil
	case core.FunctionCall:
		fn, ok := r.Resolve(e.Name)
		if !ok {
			return false, &core.UnknownGuardFunctionError{Name: e.Name}
		}
		return fn(ctx, e.Args)
	case core.And:
		ok, err := Evaluate(e.Left, ctx, r)
		if err != nil || !ok {
			return false, err
		}
		return Evaluate(e.Right, ctx, r)
	case core.Or:
		ok, err := Evaluate(e.Left, ctx, r)
		if err != nil {
			return false, err
		}
		if ok {
			return true, nil
		}
		return Evaluate(e.Right, ctx, r)
	case core.Not:
		ok, err := Evaluate(e.Operand, ctx, r)
		if err != nil {
			return false, err
		}
		return !ok, nil
	}
	return false, fmt.Errorf("unsupported guard expression %T", expr)
}
