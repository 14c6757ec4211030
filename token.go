package lsystem

import (
	"strconv"
	"strings"
)

// Token is a single letter of the grammar alphabet.
type Token string

type TokenSet map[Token]struct{}

func (ts TokenSet) Contains(t Token) bool {
	_, exists := ts[t]
	return exists
}

func (ts TokenSet) Add(t Token) {
	ts[t] = struct{}{}
}

func (ts TokenSet) AsSlice() []Token {
	slice := make([]Token, 0, len(ts))
	for t := range ts {
		slice = append(slice, t)
	}
	return slice
}

// Symbol is one element of a word: a token plus optional numeric
// parameters for parametric grammars.
type Symbol struct {
	Token  Token
	Params []float64
}

func Sym(t Token, params ...float64) Symbol {
	return Symbol{Token: t, Params: params}
}

func (s Symbol) String() string {
	if len(s.Params) == 0 {
		return string(s.Token)
	}
	var sb strings.Builder
	sb.WriteString(string(s.Token))
	sb.WriteRune('(')
	for i, p := range s.Params {
		sb.WriteString(strconv.FormatFloat(p, 'f', -1, 64))
		if i+1 != len(s.Params) {
			sb.WriteRune(',')
		}
	}
	sb.WriteRune(')')
	return sb.String()
}

func (s Symbol) equal(o Symbol) bool {
	if s.Token != o.Token || len(s.Params) != len(o.Params) {
		return false
	}
	for i := range s.Params {
		if s.Params[i] != o.Params[i] {
			return false
		}
	}
	return true
}

// Word is a symbol sequence: the axiom, or one derivation generation.
type Word []Symbol

func (w Word) String() string {
	var sb strings.Builder
	for _, s := range w {
		sb.WriteString(s.String())
	}
	return sb.String()
}

func (w Word) Tokens() []Token {
	tokens := make([]Token, len(w))
	for i, s := range w {
		tokens[i] = s.Token
	}
	return tokens
}

// Count returns the number of occurrences of t in w.
func (w Word) Count(t Token) int {
	n := 0
	for _, s := range w {
		if s.Token == t {
			n++
		}
	}
	return n
}

func (w Word) equal(o Word) bool {
	if len(w) != len(o) {
		return false
	}
	for i := range w {
		if !w[i].equal(o[i]) {
			return false
		}
	}
	return true
}

func wordOf(tokens ...Token) Word {
	w := make(Word, len(tokens))
	for i, t := range tokens {
		w[i] = Symbol{Token: t}
	}
	return w
}
