package lsystem

import (
	"strconv"
	"strings"

	"pgregory.net/rand"
)

// SymbolTemplate is one successor element whose parameters are
// expressions over the predecessor's formal parameters.
type SymbolTemplate struct {
	Token  Token
	Params []*Expr
}

func (st SymbolTemplate) String() string {
	if len(st.Params) == 0 {
		return string(st.Token)
	}
	var sb strings.Builder
	sb.WriteString(string(st.Token))
	sb.WriteRune('(')
	for i, p := range st.Params {
		sb.WriteString(p.Source())
		if i+1 != len(st.Params) {
			sb.WriteRune(',')
		}
	}
	sb.WriteRune(')')
	return sb.String()
}

type WeightedSuccessor struct {
	Probability float64
	Successor   []SymbolTemplate
}

// ProductionRule rewrites its predecessor into one of its weighted
// successors. Left/Right restrict application to matching neighbors,
// Condition guards application on the predecessor's parameters.
type ProductionRule struct {
	Predecessor  Token
	FormalParams []string
	Left         Token
	Right        Token
	Condition    *Expr
	Weights      []WeightedSuccessor
}

func NewProductionRule(predecessor Token, weights []WeightedSuccessor) *ProductionRule {
	return &ProductionRule{
		Predecessor: predecessor,
		Weights:     weights,
	}
}

func (r *ProductionRule) WithContext(left, right Token) *ProductionRule {
	r.Left = left
	r.Right = right
	return r
}

func (r *ProductionRule) WithParams(names ...string) *ProductionRule {
	r.FormalParams = names
	return r
}

func (r *ProductionRule) WithCondition(cond *Expr) *ProductionRule {
	r.Condition = cond
	return r
}

func (r *ProductionRule) ContextSensitive() bool {
	return r.Left != "" || r.Right != ""
}

func (r *ProductionRule) String() string {
	var sb strings.Builder
	sb.WriteRune('"')
	if r.Left != "" {
		sb.WriteString(string(r.Left))
		sb.WriteString(" < ")
	}
	sb.WriteString(string(r.Predecessor))
	if len(r.FormalParams) > 0 {
		sb.WriteRune('(')
		sb.WriteString(strings.Join(r.FormalParams, ","))
		sb.WriteRune(')')
	}
	if r.Right != "" {
		sb.WriteString(" > ")
		sb.WriteString(string(r.Right))
	}
	if r.Condition != nil {
		sb.WriteString(" : ")
		sb.WriteString(r.Condition.Source())
	}
	sb.WriteRune('"')
	sb.WriteString(": `")
	for i, wt := range r.Weights {
		sb.WriteString(strconv.FormatFloat(wt.Probability, 'f', 2, 64))
		for _, st := range wt.Successor {
			sb.WriteString(" ")
			sb.WriteString(st.String())
		}
		if i != len(r.Weights)-1 {
			sb.WriteString("; ")
		}
	}
	sb.WriteString("`")
	return sb.String()
}

// env binds the predecessor's actual parameters to the rule's formal
// parameter names for expression evaluation.
func (r *ProductionRule) env(sym Symbol) map[string]interface{} {
	if len(r.FormalParams) == 0 {
		return nil
	}
	env := make(map[string]interface{}, len(r.FormalParams))
	for i, name := range r.FormalParams {
		if i < len(sym.Params) {
			env[name] = sym.Params[i]
		}
	}
	return env
}

// Matches reports whether the rule applies to sym between the given
// neighbors. Context tokens, when set, require an exact match; the
// guard condition is evaluated against the symbol's parameters.
func (r *ProductionRule) Matches(sym Symbol, left, right Token) (bool, error) {
	if sym.Token != r.Predecessor {
		return false, nil
	}
	if r.Left != "" && r.Left != left {
		return false, nil
	}
	if r.Right != "" && r.Right != right {
		return false, nil
	}
	if r.Condition == nil {
		return true, nil
	}
	ok, err := r.Condition.Bool(r.env(sym))
	if err != nil {
		return false, &ParameterEvaluationError{Token: sym.Token, Expr: r.Condition.Source(), Err: err}
	}
	return ok, nil
}

// ChooseSuccessor draws one successor proportionally to the weights.
func (r *ProductionRule) ChooseSuccessor(rng *rand.Rand) []SymbolTemplate {
	if len(r.Weights) == 1 {
		return r.Weights[0].Successor
	}
	total := 0.0
	for _, wt := range r.Weights {
		total += wt.Probability
	}
	random := rng.Float64() * total
	for _, wt := range r.Weights {
		random -= wt.Probability
		if random < 0 {
			return wt.Successor
		}
	}
	return r.Weights[len(r.Weights)-1].Successor
}

// Expand draws a successor and evaluates its parameter expressions
// with the matched symbol's parameters as the environment.
func (r *ProductionRule) Expand(sym Symbol, rng *rand.Rand) (Word, error) {
	return r.expand(sym, r.ChooseSuccessor(rng))
}

func (r *ProductionRule) expand(sym Symbol, succ []SymbolTemplate) (Word, error) {
	out := make(Word, len(succ))
	var env map[string]interface{}
	for i, st := range succ {
		if len(st.Params) == 0 {
			out[i] = Symbol{Token: st.Token}
			continue
		}
		if env == nil {
			env = r.env(sym)
		}
		params := make([]float64, len(st.Params))
		for j, ex := range st.Params {
			v, err := ex.Number(env)
			if err != nil {
				return nil, &ParameterEvaluationError{Token: sym.Token, Expr: ex.Source(), Err: err}
			}
			params[j] = v
		}
		out[i] = Symbol{Token: st.Token, Params: params}
	}
	return out, nil
}
