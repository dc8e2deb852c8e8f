package cdcl

import "testing"

// replay replays a sequence of steps onto a fresh Assignment,
// propagating the given reasons so decision levels and antecedents come out
// the way Analyze expects them.
type step struct {
	v      Variable
	b      bool
	reason *Clause // nil means a decision (opens a new level)
}

func replay(universe int, steps []step) *Assignment {
	a := NewAssignment()
	for i := 0; i < universe; i++ {
		a.AddVariable()
	}
	for _, s := range steps {
		if s.reason == nil {
			a.Decide(s.v, s.b)
		} else {
			a.Propagate(s.v, s.b, s.reason)
		}
	}
	return a
}

func TestAnalyzer_Analyze_SingleDecisionLevel(t *testing.T) {
	// Level 1: decide x1=true, propagate x2=true from (x1->x2), conflict
	// found against (x1 -> -x2).
	r1 := NewClause([]Literal{NegativeLiteral(1), PositiveLiteral(2)}, false)
	a := replay(2, []step{
		{1, true, nil},
		{2, true, r1},
	})
	conflict := NewClause([]Literal{NegativeLiteral(1), NegativeLiteral(2)}, false)

	an := NewAnalyzer(2)
	learned, backjump := an.Analyze(conflict, a)

	if backjump != 0 {
		t.Errorf("backjump level = %d, want 0 (single decision level conflict)", backjump)
	}
	want := NewClause([]Literal{NegativeLiteral(1)}, true)
	if !learned.Equal(want) {
		t.Errorf("learned clause = %s, want %s", learned, want)
	}
}

func TestAnalyzer_Analyze_MultiLevelBackjump(t *testing.T) {
	// Level 1: decide x1=false.
	// Level 2: decide x2=true, propagate x3=true from (-x2 v x3),
	//          propagate x4=true from (x1 v -x3 v x4) (which pulls the
	//          level-1 literal x1 into the resolvent), conflict against
	//          (-x2 v -x4).
	rx3 := NewClause([]Literal{NegativeLiteral(2), PositiveLiteral(3)}, false)
	rx4 := NewClause([]Literal{PositiveLiteral(1), NegativeLiteral(3), PositiveLiteral(4)}, false)
	a := replay(4, []step{
		{1, false, nil},
		{2, true, nil},
		{3, true, rx3},
		{4, true, rx4},
	})
	conflict := NewClause([]Literal{NegativeLiteral(2), NegativeLiteral(4)}, false)

	an := NewAnalyzer(4)
	learned, backjump := an.Analyze(conflict, a)

	// Resolving on x4 against rx4 pulls in x1 (level 1, committed to the
	// tail immediately) and x3 (level 2, another outstanding implication
	// point); resolving x3 away against rx3 leaves x2 as the sole
	// remaining level-2 literal, the first UIP. The learned clause is
	// (-x2 v x1) and the backjump target is x1's level, 1.
	want := NewClause([]Literal{NegativeLiteral(2), PositiveLiteral(1)}, true)
	if !learned.Equal(want) {
		t.Errorf("learned clause = %s, want %s", learned, want)
	}
	if backjump != 1 {
		t.Errorf("backjump level = %d, want 1 (level of the other resolvent literal, x1)", backjump)
	}
}

func TestAnalyzer_Analyze_PanicsAtLevelZero(t *testing.T) {
	a := newTestAssignment(2)
	conflict := NewClause([]Literal{PositiveLiteral(1), PositiveLiteral(2)}, false)
	an := NewAnalyzer(2)

	defer func() {
		if recover() == nil {
			t.Errorf("Analyze() at decision level 0 did not panic")
		}
	}()
	an.Analyze(conflict, a)
}

func TestAnalyzer_Analyze_LearnedClauseIsUnitAfterBackjump(t *testing.T) {
	rx3 := NewClause([]Literal{NegativeLiteral(2), PositiveLiteral(3)}, false)
	rx4 := NewClause([]Literal{PositiveLiteral(1), NegativeLiteral(3), PositiveLiteral(4)}, false)
	a := replay(4, []step{
		{1, false, nil},
		{2, true, nil},
		{3, true, rx3},
		{4, true, rx4},
	})
	conflict := NewClause([]Literal{NegativeLiteral(2), NegativeLiteral(4)}, false)

	an := NewAnalyzer(4)
	learned, backjump := an.Analyze(conflict, a)

	a.Backtrack(backjump, func(Variable) {})

	if _, ok := learned.UnitLiteral(a); !ok {
		t.Errorf("learned clause %s is not unit after backtracking to level %d", learned, backjump)
	}
}
