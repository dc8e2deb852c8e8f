package cdcl

import "strings"

// Valuer is the read-only view of a partial assignment a Clause evaluates
// itself against. Assignment implements it.
type Valuer interface {
	LitValue(l Literal) LBool
}

// Clause is an immutable disjunction of literals. Original clauses are
// created once from the input and never mutated; learned clauses are
// appended during search and, once built, are equally immutable — First-UIP
// analysis produces the full literal set up front.
type Clause struct {
	literals []Literal
	learnt   bool

	// activity is a clause-activity slot. Nothing in this core updates it
	// (it stays 0) or reads it; there is no clause-database reduction
	// policy.
	activity float64
}

// NewClause builds a Clause from lits. lits is copied; the caller's slice
// may be reused afterwards. NewClause does not perform any simplification
// against a partial assignment — original clauses are assumed pre-validated
// by the caller (see SPEC_FULL.md §6), and learned clauses are already
// irreducible by construction (see Analyzer).
func NewClause(lits []Literal, learnt bool) *Clause {
	c := &Clause{
		literals: make([]Literal, len(lits)),
		learnt:   learnt,
	}
	copy(c.literals, lits)
	return c
}

// Literals returns a copy of the clause's literals. A copy is returned,
// rather than the internal slice, to keep the "never mutated" lifecycle
// invariant enforceable even against callers that might otherwise be
// tempted to sort or swap elements in place.
func (c *Clause) Literals() []Literal {
	out := make([]Literal, len(c.literals))
	copy(out, c.literals)
	return out
}

// Len returns the number of literals in the clause.
func (c *Clause) Len() int {
	return len(c.literals)
}

// IsLearnt reports whether the clause was produced by conflict analysis.
func (c *Clause) IsLearnt() bool {
	return c.learnt
}

// IsTautology reports whether the clause contains both a literal and its
// negation, in which case it is trivially satisfied under any assignment.
func (c *Clause) IsTautology() bool {
	seen := make(map[Literal]struct{}, len(c.literals))
	for _, l := range c.literals {
		if _, ok := seen[l.Negate()]; ok {
			return true
		}
		seen[l] = struct{}{}
	}
	return false
}

// Equal reports whether c and other contain the same set of literals,
// ignoring order and duplicates, per the §3 set-of-literals equality rule.
func (c *Clause) Equal(other *Clause) bool {
	if other == nil {
		return false
	}
	a := make(map[Literal]struct{}, len(c.literals))
	for _, l := range c.literals {
		a[l] = struct{}{}
	}
	b := make(map[Literal]struct{}, len(other.literals))
	for _, l := range other.literals {
		b[l] = struct{}{}
	}
	if len(a) != len(b) {
		return false
	}
	for l := range a {
		if _, ok := b[l]; !ok {
			return false
		}
	}
	return true
}

// IsSatisfied reports whether some literal of c evaluates true under A.
func (c *Clause) IsSatisfied(a Valuer) bool {
	for _, l := range c.literals {
		if a.LitValue(l) == LTrue {
			return true
		}
	}
	return false
}

// IsConflicting reports whether every literal of c is assigned and
// evaluates false under A. A satisfied clause is never conflicting.
func (c *Clause) IsConflicting(a Valuer) bool {
	for _, l := range c.literals {
		switch a.LitValue(l) {
		case LTrue:
			return false
		case LUnknown:
			return false
		}
	}
	return true
}

// UnitLiteral returns the clause's unique unassigned literal and true, if
// the clause has exactly one unassigned literal and no true literal (i.e.
// it is unit under A). It returns (0, false) if the clause is satisfied,
// conflicting, or has two or more unassigned literals — aborting the scan
// as soon as a second unassigned literal is seen.
func (c *Clause) UnitLiteral(a Valuer) (Literal, bool) {
	var unit Literal
	found := false
	for _, l := range c.literals {
		switch a.LitValue(l) {
		case LTrue:
			return 0, false
		case LUnknown:
			if found {
				return 0, false // second unassigned literal: not unit
			}
			unit = l
			found = true
		}
	}
	if !found {
		return 0, false // all literals false: conflicting, not unit
	}
	return unit, true
}

func (c *Clause) String() string {
	if len(c.literals) == 0 {
		return "Clause[]"
	}
	sb := strings.Builder{}
	sb.WriteString("Clause[")
	sb.WriteString(c.literals[0].String())
	for _, l := range c.literals[1:] {
		sb.WriteByte(' ')
		sb.WriteString(l.String())
	}
	sb.WriteByte(']')
	return sb.String()
}
