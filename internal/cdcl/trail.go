package cdcl

// Assignment is an ordered partial variable assignment with decision levels
// and antecedents, as specified by SPEC_FULL.md §4.2. It is the sole owner
// of the trail for the duration of a solve; the Analyzer reads it but never
// mutates it.
type Assignment struct {
	universe int // number of variables, numbered 1..universe

	value  []LBool  // indexed by Variable-1
	level  []int    // indexed by Variable-1; meaningless until assigned
	reason []*Clause // indexed by Variable-1; nil iff decision or unassigned

	trail      []Variable // assignment order
	trailStart []int      // trailStart[d-1] = index into trail where level d begins

	depth int // current decision level
}

// NewAssignment returns an empty Assignment over an empty variable universe.
// Call AddVariable to grow it before Decide/Propagate are used.
func NewAssignment() *Assignment {
	return &Assignment{}
}

// AddVariable grows the universe by one variable and returns its id. The
// universe only ever grows, and only while the assignment is empty of any
// decisions (the solver calls this during setup, before Solve).
func (a *Assignment) AddVariable() Variable {
	a.universe++
	a.value = append(a.value, LUnknown)
	a.level = append(a.level, 0)
	a.reason = append(a.reason, nil)
	return Variable(a.universe)
}

// Universe returns the number of variables currently known to the
// assignment.
func (a *Assignment) Universe() int {
	return a.universe
}

func (a *Assignment) idx(v Variable) int {
	return int(v) - 1
}

// LitValue returns the value of l under the current assignment.
func (a *Assignment) LitValue(l Literal) LBool {
	v := a.value[a.idx(l.Var())]
	if v == LUnknown {
		return LUnknown
	}
	if l.IsPositive() {
		return v
	}
	return v.Opposite()
}

// Value returns the value assigned to v, or LUnknown if v is unassigned.
func (a *Assignment) Value(v Variable) LBool {
	return a.value[a.idx(v)]
}

// Level returns the decision level at which v was assigned. The result is
// meaningless if v is unassigned.
func (a *Assignment) Level(v Variable) int {
	return a.level[a.idx(v)]
}

// Reason returns the antecedent clause that forced v's assignment, or nil
// if v was a decision (or is unassigned).
func (a *Assignment) Reason(v Variable) *Clause {
	return a.reason[a.idx(v)]
}

// IsAssigned reports whether v currently has a value.
func (a *Assignment) IsAssigned(v Variable) bool {
	return a.value[a.idx(v)] != LUnknown
}

// IsComplete reports whether every variable in the universe is assigned.
func (a *Assignment) IsComplete() bool {
	return len(a.trail) == a.universe
}

// CurrentLevel returns the current decision level (depth).
func (a *Assignment) CurrentLevel() int {
	return a.depth
}

// Trail returns the ordered sequence of assigned variables. The returned
// slice must not be retained across a subsequent Decide/Propagate/Backtrack
// call.
func (a *Assignment) Trail() []Variable {
	return a.trail
}

// UnassignedVariables returns the set complement of the assigned variables
// within the universe.
func (a *Assignment) UnassignedVariables() []Variable {
	out := make([]Variable, 0, a.universe-len(a.trail))
	for v := 1; v <= a.universe; v++ {
		if !a.IsAssigned(Variable(v)) {
			out = append(out, Variable(v))
		}
	}
	return out
}

// Decide records a new decision: v is assigned polarity b, a new decision
// level is opened, and v's reason is nil. v must be unassigned.
func (a *Assignment) Decide(v Variable, b bool) {
	if a.IsAssigned(v) {
		invariantViolation("decide: variable %d is already assigned", v)
	}
	a.depth++
	a.trailStart = append(a.trailStart, len(a.trail))
	a.set(v, b, nil, a.depth)
}

// Propagate records a forced assignment: v is assigned polarity b because
// reason is unit with unit literal (b ? +v : -v) under the current
// assignment. v must be unassigned.
func (a *Assignment) Propagate(v Variable, b bool, reason *Clause) {
	if a.IsAssigned(v) {
		invariantViolation("propagate: variable %d is already assigned", v)
	}
	if reason == nil {
		invariantViolation("propagate: variable %d has nil reason", v)
	}
	unit, ok := reason.UnitLiteral(a)
	if !ok || unit.Var() != v || unit.IsPositive() != b {
		invariantViolation("propagate: clause %s is not unit on literal %d", reason, PositiveLiteral(v))
	}
	a.set(v, b, reason, a.depth)
}

func (a *Assignment) set(v Variable, b bool, reason *Clause, level int) {
	i := a.idx(v)
	a.value[i] = Lift(b)
	a.level[i] = level
	a.reason[i] = reason
	a.trail = append(a.trail, v)
}

// Backtrack pops every trail entry assigned at a level strictly greater
// than targetLevel and sets the current level to targetLevel. Entries at
// levels <= targetLevel, including the decision at level targetLevel
// itself, are left untouched. onUndo, if non-nil, is called for every
// undone variable before it is cleared, letting the heuristic reinsert it
// into its candidate pool.
func (a *Assignment) Backtrack(targetLevel int, onUndo func(Variable)) {
	if targetLevel < 0 || targetLevel > a.depth {
		invariantViolation("backtrack: target level %d outside [0, %d]", targetLevel, a.depth)
	}
	for a.depth > targetLevel {
		start := a.trailStart[a.depth-1]
		for i := len(a.trail) - 1; i >= start; i-- {
			v := a.trail[i]
			if onUndo != nil {
				onUndo(v)
			}
			j := a.idx(v)
			a.value[j] = LUnknown
			a.level[j] = 0
			a.reason[j] = nil
		}
		a.trail = a.trail[:start]
		a.trailStart = a.trailStart[:a.depth-1]
		a.depth--
	}
}
