// Package sat is the public entry point to the CDCL solver: it wraps
// internal/cdcl's core with the Variable/Literal/Options/Verdict surface
// documented for library consumers.
package sat

import (
	"time"

	"github.com/nwidger/cdcl/internal/cdcl"
)

// Variable identifies a propositional variable, numbered from 1.
type Variable int

// Literal is a variable or its negation: a positive value v denotes the
// variable v, -v denotes its negation.
type Literal int

// PositiveLiteral returns the literal asserting v.
func PositiveLiteral(v Variable) Literal {
	return Literal(v)
}

// NegativeLiteral returns the literal asserting the negation of v.
func NegativeLiteral(v Variable) Literal {
	return Literal(-v)
}

// Var returns the variable l refers to.
func (l Literal) Var() Variable {
	if l < 0 {
		return Variable(-l)
	}
	return Variable(l)
}

// IsPositive reports whether l asserts its variable rather than its negation.
func (l Literal) IsPositive() bool {
	return l > 0
}

// Negate returns the opposite literal.
func (l Literal) Negate() Literal {
	return -l
}

func toInternal(l Literal) cdcl.Literal {
	if l.IsPositive() {
		return cdcl.PositiveLiteral(cdcl.Variable(l.Var()))
	}
	return cdcl.NegativeLiteral(cdcl.Variable(l.Var()))
}

// Verdict is the outcome of a Solve call.
type Verdict int

const (
	Unsat Verdict = iota
	Sat
	Unknown
)

func (v Verdict) String() string {
	switch v {
	case Sat:
		return "SAT"
	case Unsat:
		return "UNSAT"
	default:
		return "UNKNOWN"
	}
}

func fromInternal(v cdcl.Verdict) Verdict {
	switch v {
	case cdcl.Sat:
		return Sat
	case cdcl.Unsat:
		return Unsat
	default:
		return Unknown
	}
}

// Options configures a Solver. The zero value disables phase saving; its
// bounds are both 0, so Solve returns Unknown unless initial propagation
// already settles the instance. DefaultOptions disables both cooperative
// stop conditions.
type Options struct {
	VariableDecay float64
	PhaseSaving   bool
	MaxConflicts  int64         // <0 disables the bound
	Timeout       time.Duration // <0 disables the bound
	LogInterval   int64         // conflicts between periodic stats logs; 0 disables
}

// DefaultOptions disables both stop conditions and logs every 10000
// conflicts.
var DefaultOptions = Options{
	VariableDecay: 0.95,
	PhaseSaving:   false,
	MaxConflicts:  -1,
	Timeout:       -1,
	LogInterval:   10000,
}

func (o Options) toInternal() cdcl.Options {
	return cdcl.Options{
		VariableDecay: o.VariableDecay,
		PhaseSaving:   o.PhaseSaving,
		MaxConflicts:  o.MaxConflicts,
		Timeout:       o.Timeout,
		LogInterval:   o.LogInterval,
	}
}

// Solver is a CDCL SAT solver instance.
type Solver struct {
	core *cdcl.Solver
}

// NewSolver returns a Solver configured with opts, over an empty variable
// universe.
func NewSolver(opts Options) *Solver {
	return &Solver{core: cdcl.NewSolver(opts.toInternal())}
}

// NewDefaultSolver returns a Solver configured with DefaultOptions.
func NewDefaultSolver() *Solver {
	return NewSolver(DefaultOptions)
}

// AddVariable grows the variable universe by one and returns the new
// variable's id.
func (s *Solver) AddVariable() Variable {
	return Variable(s.core.AddVariable())
}

// NumVariables returns the size of the variable universe.
func (s *Solver) NumVariables() int {
	return s.core.NumVariables()
}

// AddClause adds an original clause to the problem. lits must reference
// variables already returned by AddVariable and must not be empty;
// violations return an error rather than corrupting solver state.
// Tautologies are not checked and are accepted as given.
func (s *Solver) AddClause(lits []Literal) error {
	converted := make([]cdcl.Literal, len(lits))
	for i, l := range lits {
		converted[i] = toInternal(l)
	}
	return s.core.AddClause(converted)
}

// Solve runs the CDCL search loop to completion and returns the verdict.
func (s *Solver) Solve() Verdict {
	return fromInternal(s.core.Solve())
}

// Model returns the satisfying assignment found by the last successful
// Solve call, if any. model[i] is the value of variable i+1.
func (s *Solver) Model() ([]bool, bool) {
	return s.core.Model()
}
