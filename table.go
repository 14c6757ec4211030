package lsystem

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"pgregory.net/rand"
)

// weightTolerance bounds how far a weighted rule set may drift from
// summing to 1 before registration is rejected.
const weightTolerance = 1e-6

// ProductionTable stores rewrite rules keyed by predecessor. It is
// populated once during grammar construction and immutable afterwards.
type ProductionTable struct {
	rules     map[Token][]*ProductionRule
	finalized bool
}

func NewProductionTable() *ProductionTable {
	return &ProductionTable{rules: make(map[Token][]*ProductionRule)}
}

func (pt *ProductionTable) AddRule(r *ProductionRule) error {
	if pt.finalized {
		return fmt.Errorf("production table is finalized")
	}
	if len(r.Weights) == 0 {
		return &GrammarError{Code: ProbabilityMismatch, Token: r.Predecessor, Detail: "rule has no successors"}
	}
	for _, wt := range r.Weights {
		if wt.Probability <= 0 || math.IsNaN(wt.Probability) {
			return &GrammarError{
				Code:   ProbabilityMismatch,
				Token:  r.Predecessor,
				Detail: fmt.Sprintf("weight %v is not positive", wt.Probability),
			}
		}
	}
	pt.rules[r.Predecessor] = append(pt.rules[r.Predecessor], r)
	return nil
}

func (pt *ProductionTable) HasRules(t Token) bool {
	return len(pt.rules[t]) > 0
}

func (pt *ProductionTable) Rules(t Token) []*ProductionRule {
	return pt.rules[t]
}

func (pt *ProductionTable) Predecessors() []Token {
	tokens := make([]Token, 0, len(pt.rules))
	for t := range pt.rules {
		tokens = append(tokens, t)
	}
	sort.Slice(tokens, func(i, j int) bool { return tokens[i] < tokens[j] })
	return tokens
}

// groupKey identifies the set of alternatives that must sum to 1:
// predecessor plus context plus guard source.
func groupKey(r *ProductionRule) string {
	cond := ""
	if r.Condition != nil {
		cond = r.Condition.Source()
	}
	return strings.Join([]string{string(r.Predecessor), string(r.Left), string(r.Right), cond}, "\x00")
}

// Finalize validates that every weighted rule set sums to 1 within
// tolerance, or rescales the weights in place when normalize is set.
// The table rejects further registrations afterwards.
func (pt *ProductionTable) Finalize(normalize bool) error {
	groups := make(map[string][]*ProductionRule)
	for _, rules := range pt.rules {
		for _, r := range rules {
			k := groupKey(r)
			groups[k] = append(groups[k], r)
		}
	}
	for _, rules := range groups {
		total := 0.0
		for _, r := range rules {
			for _, wt := range r.Weights {
				total += wt.Probability
			}
		}
		if normalize {
			for _, r := range rules {
				for i := range r.Weights {
					r.Weights[i].Probability /= total
				}
			}
			continue
		}
		if math.Abs(total-1) > weightTolerance {
			return &GrammarError{
				Code:   ProbabilityMismatch,
				Token:  rules[0].Predecessor,
				Detail: fmt.Sprintf("weights sum to %v, want 1", total),
			}
		}
	}
	pt.finalized = true
	return nil
}

// Deterministic reports whether every lookup has exactly one possible
// outcome: each predecessor carries a single rule with a single
// successor. Tables with several rules per predecessor are treated as
// stochastic even when contexts or guards are disjoint.
func (pt *ProductionTable) Deterministic() bool {
	for _, rules := range pt.rules {
		if len(rules) > 1 {
			return false
		}
		for _, r := range rules {
			if len(r.Weights) > 1 {
				return false
			}
		}
	}
	return true
}

// Lookup selects a successor for sym between the given neighbors:
// rules are filtered by context (context-sensitive matches take
// precedence over context-free ones) and by guard condition, then one
// successor is drawn proportionally to the remaining weights. The
// second return value is false when no rule applies.
func (pt *ProductionTable) Lookup(sym Symbol, left, right Token, rng *rand.Rand) (Word, bool, error) {
	rules := pt.rules[sym.Token]
	if len(rules) == 0 {
		return nil, false, nil
	}
	var contextual, free []*ProductionRule
	for _, r := range rules {
		ok, err := r.Matches(sym, left, right)
		if err != nil {
			return nil, false, err
		}
		if !ok {
			continue
		}
		if r.ContextSensitive() {
			contextual = append(contextual, r)
		} else {
			free = append(free, r)
		}
	}
	matched := contextual
	if len(matched) == 0 {
		matched = free
	}
	if len(matched) == 0 {
		return nil, false, nil
	}
	if len(matched) == 1 {
		w, err := matched[0].Expand(sym, rng)
		return w, true, err
	}

	total := 0.0
	for _, r := range matched {
		for i := range r.Weights {
			total += r.Weights[i].Probability
		}
	}
	random := rng.Float64() * total
	for _, r := range matched {
		for i := range r.Weights {
			random -= r.Weights[i].Probability
			if random < 0 {
				w, err := r.expand(sym, r.Weights[i].Successor)
				return w, true, err
			}
		}
	}
	last := matched[len(matched)-1]
	w, err := last.expand(sym, last.Weights[len(last.Weights)-1].Successor)
	return w, true, err
}
