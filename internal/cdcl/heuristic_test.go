package cdcl

import "testing"

func TestHeuristic_ChooseVariable_OrdersByActivity(t *testing.T) {
	h := NewHeuristic(false, 0)
	for i := 0; i < 3; i++ {
		h.AddVariable()
	}
	a := newTestAssignment(3)

	h.BumpActivity(2)
	h.BumpActivity(2)
	h.BumpActivity(1)

	v, ok := h.ChooseVariable(a)
	if !ok {
		t.Fatalf("ChooseVariable() = not ok with variables remaining")
	}
	if v != 2 {
		t.Errorf("ChooseVariable() = %d, want 2 (highest bumped activity)", v)
	}
}

func TestHeuristic_ChooseVariable_SkipsAssigned(t *testing.T) {
	h := NewHeuristic(false, 0)
	for i := 0; i < 2; i++ {
		h.AddVariable()
	}
	a := newTestAssignment(2)

	h.BumpActivity(1)
	h.BumpActivity(1)
	a.Decide(1, true)

	v, ok := h.ChooseVariable(a)
	if !ok {
		t.Fatalf("ChooseVariable() = not ok with variable 2 remaining")
	}
	if v != 2 {
		t.Errorf("ChooseVariable() = %d, want 2 (variable 1 is already assigned)", v)
	}
}

func TestHeuristic_ChooseVariable_FalseWhenExhausted(t *testing.T) {
	h := NewHeuristic(false, 0)
	h.AddVariable()
	a := newTestAssignment(1)
	a.Decide(1, true)

	if _, ok := h.ChooseVariable(a); ok {
		t.Errorf("ChooseVariable() = ok with every variable assigned")
	}
}

func TestHeuristic_ChooseValue(t *testing.T) {
	h := NewHeuristic(false, 0)
	h.AddVariable()
	if got := h.ChooseValue(1); got != false {
		t.Errorf("ChooseValue() without phase saving = %v, want false", got)
	}

	hp := NewHeuristic(true, 0)
	hp.AddVariable()
	if got := hp.ChooseValue(1); got != false {
		t.Errorf("ChooseValue() with phase saving, no prior phase = %v, want false", got)
	}
	hp.Reinsert(1, LTrue)
	if got := hp.ChooseValue(1); got != true {
		t.Errorf("ChooseValue() after Reinsert(1, true) = %v, want true", got)
	}
}

func TestHeuristic_Reinsert_MakesVariableSelectableAgain(t *testing.T) {
	h := NewHeuristic(false, 0)
	h.AddVariable()
	a := newTestAssignment(1)
	a.Decide(1, true)

	if _, ok := h.ChooseVariable(a); ok {
		t.Fatalf("ChooseVariable() = ok before Reinsert")
	}

	a.Backtrack(0, func(v Variable) { h.Reinsert(v, a.Value(v)) })

	v, ok := h.ChooseVariable(a)
	if !ok || v != 1 {
		t.Errorf("ChooseVariable() after Reinsert = (%d, %v), want (1, true)", v, ok)
	}
}

func TestHeuristic_DecayActivities_PreservesOrder(t *testing.T) {
	h := NewHeuristic(false, 0)
	for i := 0; i < 2; i++ {
		h.AddVariable()
	}
	a := newTestAssignment(2)

	h.BumpActivity(1)
	h.DecayActivities()
	h.BumpActivity(2)
	h.BumpActivity(2)

	v, ok := h.ChooseVariable(a)
	if !ok || v != 2 {
		t.Errorf("ChooseVariable() = (%d, %v), want (2, true) after decay changed relative weight", v, ok)
	}
}

func TestHeuristic_Rescale_PreservesOrder(t *testing.T) {
	h := NewHeuristic(false, 0)
	for i := 0; i < 2; i++ {
		h.AddVariable()
	}
	a := newTestAssignment(2)

	h.BumpActivity(1)
	h.scores[1] = rescaleThreshold * 2 // force variable 2 over the rescale threshold
	h.BumpActivity(2)

	if h.scores[1] > rescaleThreshold {
		t.Errorf("score for variable 2 = %g, still above rescaleThreshold after BumpActivity", h.scores[1])
	}

	v, ok := h.ChooseVariable(a)
	if !ok || v != 2 {
		t.Errorf("ChooseVariable() after rescale = (%d, %v), want (2, true): rescale must preserve ordering", v, ok)
	}
}
