package lsystem

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"unicode"
)

// Compact text notation: every symbol is a single rune, optionally
// followed by a parenthesized argument list ("F", "A(1,2)",
// "F(x*2)"). Whitespace separates symbols but is otherwise ignored,
// so "F+F--F+F" and "F + F - - F + F" parse the same.

type rawSymbol struct {
	token Token
	args  []string
}

func tokenizeSymbols(s string) ([]rawSymbol, error) {
	var out []rawSymbol
	runes := []rune(s)
	for i := 0; i < len(runes); {
		r := runes[i]
		if unicode.IsSpace(r) {
			i++
			continue
		}
		if r == '(' || r == ')' || r == ',' {
			return nil, fmt.Errorf("unexpected %q in %q", r, s)
		}
		sym := rawSymbol{token: Token(r)}
		i++
		if i < len(runes) && runes[i] == '(' {
			depth := 0
			start := i + 1
			closed := false
			var args []string
			j := i
			for ; j < len(runes); j++ {
				if closed {
					break
				}
				switch runes[j] {
				case '(':
					depth++
				case ')':
					depth--
					if depth == 0 {
						args = append(args, strings.TrimSpace(string(runes[start:j])))
						closed = true
					}
				case ',':
					if depth == 1 {
						args = append(args, strings.TrimSpace(string(runes[start:j])))
						start = j + 1
					}
				}
			}
			if !closed {
				return nil, fmt.Errorf("unbalanced parentheses in %q", s)
			}
			for _, a := range args {
				if a == "" {
					return nil, fmt.Errorf("empty parameter for %q in %q", sym.token, s)
				}
			}
			sym.args = args
			i = j
		}
		out = append(out, sym)
	}
	return out, nil
}

// ParseWord parses a concrete symbol sequence; parameters must be
// numeric literals.
func ParseWord(s string) (Word, error) {
	raws, err := tokenizeSymbols(s)
	if err != nil {
		return nil, err
	}
	w := make(Word, len(raws))
	for i, rs := range raws {
		var params []float64
		for _, a := range rs.args {
			v, err := strconv.ParseFloat(a, 64)
			if err != nil {
				return nil, fmt.Errorf("parameter %q of %q is not a number", a, rs.token)
			}
			params = append(params, v)
		}
		w[i] = Symbol{Token: rs.token, Params: params}
	}
	return w, nil
}

func parseTemplates(s string) ([]SymbolTemplate, error) {
	raws, err := tokenizeSymbols(s)
	if err != nil {
		return nil, err
	}
	out := make([]SymbolTemplate, len(raws))
	for i, rs := range raws {
		var params []*Expr
		for _, a := range rs.args {
			ex, err := CompileExpr(a)
			if err != nil {
				return nil, err
			}
			params = append(params, ex)
		}
		out[i] = SymbolTemplate{Token: rs.token, Params: params}
	}
	return out, nil
}

// ParseSuccessors parses a rule body: successor alternatives are
// separated by ';' and may carry a leading probability weight
// ("0.5 F(x*2) + A; 0.5 F"). A missing weight means 1.
func ParseSuccessors(str string) ([]WeightedSuccessor, error) {
	groups := strings.Split(strings.ReplaceAll(str, "\n", " "), ";")
	var weighted []WeightedSuccessor
	for _, group := range groups {
		group = strings.TrimSpace(group)
		if group == "" {
			continue
		}
		weight := 1.0
		body := group
		if idx := strings.IndexFunc(group, unicode.IsSpace); idx > 0 {
			if w, err := strconv.ParseFloat(group[:idx], 64); err == nil {
				weight = w
				body = strings.TrimSpace(group[idx:])
			}
		} else if _, err := strconv.ParseFloat(group, 64); err == nil {
			return nil, fmt.Errorf("weight %q has no successor", group)
		}
		succ, err := parseTemplates(body)
		if err != nil {
			return nil, err
		}
		if len(succ) == 0 {
			return nil, fmt.Errorf("empty successor in %q", str)
		}
		weighted = append(weighted, WeightedSuccessor{Probability: weight, Successor: succ})
	}
	if len(weighted) == 0 {
		return nil, fmt.Errorf("rule body %q has no successors", str)
	}
	return weighted, nil
}

// contextToken parses a single bare symbol used as left/right context.
func contextToken(s string) (Token, error) {
	raws, err := tokenizeSymbols(s)
	if err != nil {
		return "", err
	}
	if len(raws) != 1 || len(raws[0].args) != 0 {
		return "", fmt.Errorf("context %q must be a single bare symbol", s)
	}
	return raws[0].token, nil
}

// ParseRule parses a predecessor key and a rule body. The key is
// "A", "A(x,y)", or with context "B < A(x) > C", optionally followed
// by a guard after a colon: "A(x) : x > 1".
func ParseRule(predecessor, body string) (*ProductionRule, error) {
	head := predecessor
	var cond *Expr
	if idx := strings.IndexRune(head, ':'); idx >= 0 {
		src := strings.TrimSpace(head[idx+1:])
		if src == "" {
			return nil, fmt.Errorf("empty condition in %q", predecessor)
		}
		ex, err := CompileExpr(src)
		if err != nil {
			return nil, err
		}
		cond = ex
		head = head[:idx]
	}

	var left, right Token
	if idx := strings.IndexRune(head, '<'); idx >= 0 {
		t, err := contextToken(head[:idx])
		if err != nil {
			return nil, err
		}
		left = t
		head = head[idx+1:]
	}
	if idx := strings.IndexRune(head, '>'); idx >= 0 {
		t, err := contextToken(head[idx+1:])
		if err != nil {
			return nil, err
		}
		right = t
		head = head[:idx]
	}

	raws, err := tokenizeSymbols(head)
	if err != nil {
		return nil, err
	}
	if len(raws) != 1 {
		return nil, fmt.Errorf("predecessor %q must be a single symbol", predecessor)
	}

	weights, err := ParseSuccessors(body)
	if err != nil {
		return nil, fmt.Errorf("rule %q: %w", predecessor, err)
	}
	rule := NewProductionRule(raws[0].token, weights).WithContext(left, right)
	if len(raws[0].args) > 0 {
		rule = rule.WithParams(raws[0].args...)
	}
	if cond != nil {
		rule = rule.WithCondition(cond)
	}
	return rule, nil
}

// ParseRules builds a production table from compact-notation rules.
// Rule predecessors become the variable set; every other token
// appearing in a successor becomes a constant. Keys are processed in
// sorted order so rule registration is deterministic.
func ParseRules(rules map[string]string) (TokenSet, TokenSet, *ProductionTable, error) {
	keys := make([]string, 0, len(rules))
	for k := range rules {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	vars := make(TokenSet)
	consts := make(TokenSet)
	table := NewProductionTable()
	for _, key := range keys {
		rule, err := ParseRule(key, rules[key])
		if err != nil {
			return nil, nil, nil, err
		}
		if err := table.AddRule(rule); err != nil {
			return nil, nil, nil, err
		}
		vars.Add(rule.Predecessor)
	}
	for _, t := range table.Predecessors() {
		for _, r := range table.Rules(t) {
			for _, wt := range r.Weights {
				for _, st := range wt.Successor {
					if !vars.Contains(st.Token) {
						consts.Add(st.Token)
					}
				}
			}
		}
	}
	return vars, consts, table, nil
}
