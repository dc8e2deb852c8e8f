package cdcl

import (
	"log"
	"time"
)

// Verdict is the outcome of a solve.
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

// Options configures a Solver. In the zero value both bounds are 0, so
// Solve returns Unknown unless initial propagation already settles the
// instance; DefaultOptions disables both stop conditions.
type Options struct {
	VariableDecay float64
	PhaseSaving   bool
	MaxConflicts  int64         // < 0 disables the bound
	Timeout       time.Duration // < 0 disables the bound

	// LogInterval controls how often (in conflicts) search
	// statistics are logged. Zero disables periodic logging.
	LogInterval int64
}

// DefaultOptions mirrors the constants SPEC_FULL.md §4.3 fixes for the
// heuristic and disables both stop conditions, matching the "no bound
// unless asked for" contract of §5.
var DefaultOptions = Options{
	VariableDecay: defaultDecay,
	PhaseSaving:   false,
	MaxConflicts:  -1,
	Timeout:       -1,
	LogInterval:   10000,
}

// Solver is the search driver of SPEC_FULL.md §4.5: it exclusively owns an
// Assignment, a Heuristic, and the learned-clause list for the duration of
// a solve, and runs decide -> propagate -> (analyze + backjump)* -> repeat
// until a verdict is reached.
type Solver struct {
	constraints []*Clause
	learnts     []*Clause

	assignment *Assignment
	heuristic  *Heuristic
	analyzer   *Analyzer

	unsat bool // a top-level (level 0) conflict has been reached

	opts      Options
	startTime time.Time

	TotalConflicts     int64
	TotalDecisions     int64
	TotalPropagations  int64
	learnedSizeAverage EMA

	model []bool
}

// NewSolver returns a Solver configured with opts, over an empty variable
// universe. Call AddVariable to grow the universe before adding clauses.
func NewSolver(opts Options) *Solver {
	s := &Solver{
		assignment:         NewAssignment(),
		heuristic:          NewHeuristic(opts.PhaseSaving, opts.VariableDecay),
		analyzer:           NewAnalyzer(0),
		opts:               opts,
		learnedSizeAverage: NewEMA(0.99),
	}
	return s
}

// NewDefaultSolver returns a Solver configured with DefaultOptions.
func NewDefaultSolver() *Solver {
	return NewSolver(DefaultOptions)
}

// AddVariable grows the variable universe by one and returns the new
// variable's id.
func (s *Solver) AddVariable() Variable {
	v := s.assignment.AddVariable()
	s.heuristic.AddVariable()
	s.analyzer.AddVariable()
	return v
}

// NumVariables returns the size of the variable universe.
func (s *Solver) NumVariables() int {
	return s.assignment.Universe()
}

// AddClause adds an original clause to the database. Per SPEC_FULL.md §6,
// the caller is expected to have already filtered tautologies and to
// never pass an empty clause or a clause outside the variable universe;
// AddClause performs the cheap defensive checks anyway and returns an
// *InvalidInputError rather than letting a malformed clause corrupt the
// trail. Clauses may only be added while the assignment is at decision
// level 0 (i.e. before Solve starts backtracking).
func (s *Solver) AddClause(lits []Literal) error {
	if s.assignment.CurrentLevel() != 0 {
		return &InvalidInputError{Msg: "clauses may only be added at decision level 0"}
	}
	if len(lits) == 0 {
		s.unsat = true
		return &InvalidInputError{Msg: "empty clause"}
	}
	for _, l := range lits {
		if int(l.Var()) < 1 || int(l.Var()) > s.assignment.Universe() {
			return &InvalidInputError{Msg: "literal references a variable outside the universe"}
		}
	}

	c := NewClause(lits, false)
	s.constraints = append(s.constraints, c)
	return nil
}

// Model returns the satisfying assignment found by the last successful
// Solve call, if any. This is the optional extended interface of §6.
func (s *Solver) Model() ([]bool, bool) {
	if s.model == nil {
		return nil, false
	}
	out := make([]bool, len(s.model))
	copy(out, s.model)
	return out, true
}

// Value returns the current (possibly partial) value of v.
func (s *Solver) Value(v Variable) LBool {
	return s.assignment.Value(v)
}

// Solve runs the CDCL search loop to completion and returns the verdict.
// If Options.MaxConflicts or Options.Timeout is set and triggers before a
// verdict is reached, Solve returns Unknown.
func (s *Solver) Solve() Verdict {
	s.startTime = time.Now()

	if s.unsat {
		return Unsat
	}

	// Initial propagation, per §4.5 step 1.
	if conflict := s.propagate(); conflict != nil {
		s.unsat = true
		return Unsat
	}

	for {
		if s.assignment.IsComplete() {
			s.saveModel()
			return Sat
		}

		if s.shouldStop() {
			return Unknown
		}

		v, ok := s.heuristic.ChooseVariable(s.assignment)
		if !ok {
			s.saveModel()
			return Sat
		}

		b := s.heuristic.ChooseValue(v)
		s.TotalDecisions++
		s.assignment.Decide(v, b)

		for {
			conflict := s.propagate()
			if conflict == nil {
				break
			}

			s.TotalConflicts++

			if s.assignment.CurrentLevel() == 0 {
				s.unsat = true
				return Unsat
			}

			learned, backjumpLevel := s.analyzer.Analyze(conflict, s.assignment)

			s.learnedSizeAverage.Add(float64(learned.Len()))
			s.heuristic.BumpActivities(learned)
			s.heuristic.DecayActivities()

			s.assignment.Backtrack(backjumpLevel, func(undone Variable) {
				s.heuristic.Reinsert(undone, s.assignment.Value(undone))
			})

			s.learnts = append(s.learnts, learned)
			s.enqueueLearned(learned)

			if s.opts.LogInterval > 0 && s.TotalConflicts%s.opts.LogInterval == 0 {
				s.logStats()
			}
		}
	}
}

// enqueueLearned asserts a freshly learned unit-under-the-current-
// assignment clause's remaining literal, per the backjump-correctness
// property of SPEC_FULL.md §8: after backtracking to the level Analyze
// returned, the learned clause is unit with its sole unassigned literal
// being the asserting literal.
func (s *Solver) enqueueLearned(c *Clause) {
	unit, ok := c.UnitLiteral(s.assignment)
	if !ok {
		invariantViolation("enqueueLearned: learned clause %s is not unit after backjump", c)
	}
	s.assignment.Propagate(unit.Var(), unit.IsPositive(), c)
}

// propagate implements BCP as the full fixed-point scan of SPEC_FULL.md
// §4.5: every clause (original and learned) is scanned once per pass; a
// conflicting clause is returned immediately; a unit clause is propagated
// with itself as antecedent. Passes repeat until one makes no new
// assignment. Returning the first observed conflict, and scanning
// constraints before learnts within a pass, is the deterministic
// processing order the baseline allows without mandating.
func (s *Solver) propagate() *Clause {
	for {
		progress := false
		if c := s.scanOnce(&progress); c != nil {
			return c
		}
		if !progress {
			return nil
		}
	}
}

func (s *Solver) scanOnce(progress *bool) *Clause {
	scan := func(clauses []*Clause) *Clause {
		for _, c := range clauses {
			if c.IsSatisfied(s.assignment) {
				continue
			}
			if c.IsConflicting(s.assignment) {
				return c
			}
			if unit, ok := c.UnitLiteral(s.assignment); ok {
				s.assignment.Propagate(unit.Var(), unit.IsPositive(), c)
				s.TotalPropagations++
				*progress = true
			}
		}
		return nil
	}

	if c := scan(s.constraints); c != nil {
		return c
	}
	return scan(s.learnts)
}

func (s *Solver) shouldStop() bool {
	if s.opts.MaxConflicts >= 0 && s.TotalConflicts >= s.opts.MaxConflicts {
		return true
	}
	if s.opts.Timeout >= 0 && time.Since(s.startTime) >= s.opts.Timeout {
		return true
	}
	return false
}

func (s *Solver) saveModel() {
	model := make([]bool, s.assignment.Universe())
	for v := 1; v <= s.assignment.Universe(); v++ {
		val := s.assignment.Value(Variable(v))
		if val == LUnknown {
			invariantViolation("saveModel: variable %d unassigned in a complete assignment", v)
		}
		model[v-1] = val == LTrue
	}
	s.model = model
}

func (s *Solver) logStats() {
	log.Printf(
		"cdcl: conflicts=%d decisions=%d propagations=%d learnts=%d avg_learnt_size=%.2f elapsed=%s",
		s.TotalConflicts, s.TotalDecisions, s.TotalPropagations, len(s.learnts),
		s.learnedSizeAverage.Value(), time.Since(s.startTime),
	)
}
