package lsystem

import "fmt"

type GrammarErrorCode int

const (
	UndefinedSymbol GrammarErrorCode = iota + 1
	ProbabilityMismatch
)

func (c GrammarErrorCode) String() string {
	switch c {
	case UndefinedSymbol:
		return "undefined symbol"
	case ProbabilityMismatch:
		return "probability mismatch"
	default:
		return "unknown"
	}
}

// GrammarError reports an invalid grammar at rule registration or lookup.
type GrammarError struct {
	Code   GrammarErrorCode
	Token  Token
	Detail string
}

func (e *GrammarError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("grammar error: %s %q", e.Code, e.Token)
	}
	return fmt.Sprintf("grammar error: %s %q: %s", e.Code, e.Token, e.Detail)
}

// StackUnderflowError reports a restore with no saved state: an
// unbalanced ']' (or '}' for polygons) during geometry building.
type StackUnderflowError struct {
	Token Token
	Index int
}

func (e *StackUnderflowError) Error() string {
	return fmt.Sprintf("stack underflow: unbalanced %q at index %d", e.Token, e.Index)
}

// ResourceExceededError reports a derivation that grew past the
// configured word-length or generation cap.
type ResourceExceededError struct {
	Generation int
	Length     int
	Limit      int
}

func (e *ResourceExceededError) Error() string {
	if e.Length == 0 {
		return fmt.Sprintf("resource exceeded: generation %d over cap %d", e.Generation, e.Limit)
	}
	return fmt.Sprintf("resource exceeded: word length %d at generation %d over cap %d", e.Length, e.Generation, e.Limit)
}

// ParameterEvaluationError reports a guard or successor expression
// that could not be evaluated against the predecessor's parameters.
type ParameterEvaluationError struct {
	Token Token
	Expr  string
	Err   error
}

func (e *ParameterEvaluationError) Error() string {
	return fmt.Sprintf("cannot evaluate %q for symbol %q: %v", e.Expr, e.Token, e.Err)
}

func (e *ParameterEvaluationError) Unwrap() error {
	return e.Err
}
