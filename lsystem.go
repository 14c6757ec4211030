package lsystem

import (
	"fmt"
	"image/color"
	"strings"

	"pgregory.net/rand"
)

// DefaultMaxLength caps the derived word length unless the grammar
// overrides it. Naive grammars grow exponentially per generation.
const DefaultMaxLength = 1 << 22

// Grammar is the immutable definition an engine derives from: axiom,
// production table, alphabet designation, and turtle defaults.
type Grammar struct {
	Axiom     Word
	Table     *ProductionTable
	Variables TokenSet
	Constants TokenSet

	Step     float64
	Angle    float64 // degrees
	Width    float64
	Bindings map[Token]Command
	Palette  []color.RGBA

	MaxLength      int
	MaxGenerations int

	normalizeWeights bool
}

type GrammarOption func(*Grammar)

// WithStep sets the default Forward distance.
func WithStep(step float64) GrammarOption {
	return func(g *Grammar) { g.Step = step }
}

// WithAngle sets the default turn/pitch/roll angle in degrees.
func WithAngle(deg float64) GrammarOption {
	return func(g *Grammar) { g.Angle = deg }
}

// WithWidth sets the initial pen width.
func WithWidth(w float64) GrammarOption {
	return func(g *Grammar) { g.Width = w }
}

// WithBindings replaces the symbol-to-turtle-command table.
func WithBindings(b map[Token]Command) GrammarOption {
	return func(g *Grammar) { g.Bindings = b }
}

func WithPalette(p []color.RGBA) GrammarOption {
	return func(g *Grammar) { g.Palette = p }
}

// WithMaxLength caps the derived word length; 0 disables the cap.
func WithMaxLength(n int) GrammarOption {
	return func(g *Grammar) { g.MaxLength = n }
}

// WithMaxGenerations caps how many generations may be derived.
func WithMaxGenerations(n int) GrammarOption {
	return func(g *Grammar) { g.MaxGenerations = n }
}

// WithNormalizedWeights rescales each weighted rule set to sum to 1
// instead of rejecting mismatched sums.
func WithNormalizedWeights() GrammarOption {
	return func(g *Grammar) { g.normalizeWeights = true }
}

// NewGrammar validates and freezes a grammar. Every declared variable
// must have at least one rule; weighted rule sets must sum to 1
// unless WithNormalizedWeights is given.
func NewGrammar(axiom Word, table *ProductionTable, vars, consts TokenSet, opts ...GrammarOption) (*Grammar, error) {
	if len(axiom) == 0 {
		return nil, fmt.Errorf("axiom must be a non-empty word")
	}
	g := &Grammar{
		Axiom:     axiom,
		Table:     table,
		Variables: vars,
		Constants: consts,
		Step:      1,
		Angle:     90,
		Width:     1,
		Bindings:  DefaultBindings(),
		Palette:   DefaultPalette(),
		MaxLength: DefaultMaxLength,
	}
	for _, opt := range opts {
		opt(g)
	}
	if err := table.Finalize(g.normalizeWeights); err != nil {
		return nil, err
	}
	for t := range vars {
		if !table.HasRules(t) {
			return nil, &GrammarError{Code: UndefinedSymbol, Token: t, Detail: "variable has no production rule"}
		}
	}
	return g, nil
}

// NewGrammarFromRules builds a grammar from the compact text syntax:
// the axiom is a word ("F+F"), rule keys are predecessors (optionally
// with context and guard, "B < A(x) > C : x > 1") and rule values are
// weighted successor groups ("0.5 F(x*2); 0.5 F").
func NewGrammarFromRules(axiom string, rules map[string]string, opts ...GrammarOption) (*Grammar, error) {
	vars, consts, table, err := ParseRules(rules)
	if err != nil {
		return nil, err
	}
	w, err := ParseWord(axiom)
	if err != nil {
		return nil, fmt.Errorf("parse axiom: %w", err)
	}
	for _, s := range w {
		if !vars.Contains(s.Token) {
			consts.Add(s.Token)
		}
	}
	return NewGrammar(w, table, vars, consts, opts...)
}

// LSystem derives generations of a grammar. It owns the only RNG used
// for stochastic rule selection; the same seed, grammar, and
// generation count reproduce the same word bit for bit.
type LSystem struct {
	Grammar *Grammar

	rng        *rand.Rand
	seed       uint64
	pool       *BufferPool
	generation int
	finished   bool
}

func New(g *Grammar, seed uint64) *LSystem {
	l := &LSystem{
		Grammar: g,
		seed:    seed,
		pool:    NewBufferPool(max(len(g.Axiom)*2, 64)),
	}
	l.Reset()
	return l
}

// Reset rewinds the engine to the axiom and reseeds the RNG.
func (l *LSystem) Reset() {
	l.rng = rand.New(l.seed)
	l.pool.Reset()
	l.pool.Load(l.Grammar.Axiom)
	l.generation = 0
	l.finished = false
}

func (l *LSystem) Seed() uint64 {
	return l.seed
}

func (l *LSystem) Generation() int {
	return l.generation
}

// Finished reports whether a deterministic derivation reproduced its
// input exactly, making further steps no-ops.
func (l *LSystem) Finished() bool {
	return l.finished
}

// State returns a copy of the current generation's word.
func (l *LSystem) State() Word {
	return l.pool.ReadAll()
}

// Step advances one generation. All symbols are rewritten in
// parallel: context is read from the input generation only, never
// from the partially built successor.
func (l *LSystem) Step() (Word, error) {
	if mg := l.Grammar.MaxGenerations; mg > 0 && l.generation >= mg {
		return nil, &ResourceExceededError{Generation: l.generation + 1, Limit: mg}
	}
	if l.finished {
		l.generation++
		return l.State(), nil
	}
	prev := l.pool.Current()
	l.pool.Swap()
	l.pool.ResetWritingHead()
	maxLen := l.Grammar.MaxLength
	for i, sym := range prev {
		if !l.Grammar.Table.HasRules(sym.Token) {
			l.pool.Append(sym)
		} else {
			var left, right Token
			if i > 0 {
				left = prev[i-1].Token
			}
			if i+1 < len(prev) {
				right = prev[i+1].Token
			}
			succ, matched, err := l.Grammar.Table.Lookup(sym, left, right, l.rng)
			if err != nil {
				l.pool.Swap()
				return nil, fmt.Errorf("generation %d: %w", l.generation+1, err)
			}
			if !matched {
				l.pool.Append(sym)
			} else {
				l.pool.Append(succ...)
			}
		}
		if maxLen > 0 && l.pool.Len() > maxLen {
			length := l.pool.Len()
			l.pool.Swap()
			return nil, &ResourceExceededError{Generation: l.generation + 1, Length: length, Limit: maxLen}
		}
	}
	l.generation++
	// an identity generation is a fixed point only when no symbol has
	// an alternative rewrite; under a stochastic table it is a
	// coincidence of the draw and later generations may still differ
	if prev.equal(l.pool.Current()) && l.Grammar.Table.Deterministic() {
		l.finished = true
	}
	return l.State(), nil
}

// Derive advances the given number of generations and returns the
// resulting word.
func (l *LSystem) Derive(generations int) (Word, error) {
	for i := 0; i < generations; i++ {
		if _, err := l.Step(); err != nil {
			return nil, err
		}
	}
	return l.State(), nil
}

func (l *LSystem) String() string {
	var sb strings.Builder
	sb.WriteString("| axiom=")
	sb.WriteString(l.Grammar.Axiom.String())
	sb.WriteRune('\n')
	for _, t := range l.Grammar.Table.Predecessors() {
		for _, r := range l.Grammar.Table.Rules(t) {
			sb.WriteString("| ")
			sb.WriteString(r.String())
			sb.WriteRune('\n')
		}
	}
	sb.WriteString("+--\n= ")
	sb.WriteString(l.pool.Current().String())
	return sb.String()
}

// Derive rewrites the grammar's axiom for the given number of
// generations with a fresh engine seeded as given.
func Derive(g *Grammar, generations int, seed uint64) (Word, error) {
	return New(g, seed).Derive(generations)
}

// Generate is the combined entry point: derive the grammar, then
// interpret the result into geometry.
func Generate(g *Grammar, generations int, seed uint64) (*Geometry, error) {
	w, err := Derive(g, generations, seed)
	if err != nil {
		return nil, err
	}
	return NewBuilder(g).Build(w)
}
