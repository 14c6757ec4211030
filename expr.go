package lsystem

import (
	"fmt"
	"strconv"

	"github.com/Knetic/govaluate"
)

// Expr is a compiled expression over a rule's formal parameters.
// Plain numeric literals skip the evaluator entirely.
type Expr struct {
	src   string
	con   float64
	isCon bool
	eval  *govaluate.EvaluableExpression
}

func CompileExpr(src string) (*Expr, error) {
	if v, err := strconv.ParseFloat(src, 64); err == nil {
		return &Expr{src: src, con: v, isCon: true}, nil
	}
	eval, err := govaluate.NewEvaluableExpression(src)
	if err != nil {
		return nil, fmt.Errorf("compile %q: %w", src, err)
	}
	return &Expr{src: src, eval: eval}, nil
}

func (e *Expr) Source() string {
	return e.src
}

// Number evaluates the expression to a float64 in the given environment.
func (e *Expr) Number(env map[string]interface{}) (float64, error) {
	if e.isCon {
		return e.con, nil
	}
	result, err := e.eval.Evaluate(env)
	if err != nil {
		return 0, err
	}
	v, ok := result.(float64)
	if !ok {
		return 0, fmt.Errorf("%q is not numeric (got %T)", e.src, result)
	}
	return v, nil
}

// Bool evaluates the expression to a bool in the given environment.
func (e *Expr) Bool(env map[string]interface{}) (bool, error) {
	if e.isCon {
		return e.con != 0, nil
	}
	result, err := e.eval.Evaluate(env)
	if err != nil {
		return false, err
	}
	v, ok := result.(bool)
	if !ok {
		return false, fmt.Errorf("%q is not boolean (got %T)", e.src, result)
	}
	return v, nil
}
