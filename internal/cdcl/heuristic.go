package cdcl

import "github.com/rhartert/yagh"

const (
	// initialIncrement is the initial per-bump activity increment.
	initialIncrement = 1.0

	// defaultDecay is the VSIDS decay constant fixed by SPEC_FULL.md §4.3.
	defaultDecay = 0.95

	// rescaleThreshold and rescaleFactor are the constants SPEC_FULL.md
	// §4.3 fixes for this core: no activity may exceed rescaleThreshold on
	// return from any public Heuristic operation.
	rescaleThreshold = 1e100
	rescaleFactor    = 1e-100
)

// Heuristic is a VSIDS-style, activity-weighted decision heuristic: a
// mapping Variable -> activity score, with decay and periodic rescaling.
// Variable selection is backed by a binary heap keyed by negated activity
// (github.com/rhartert/yagh), giving O(log n) bump/select rather than a
// linear scan over all variables.
type Heuristic struct {
	scores []float64 // indexed by Variable-1
	order  *yagh.IntMap[float64]

	increment float64
	decay     float64

	phases      []LBool // last-assigned polarity, used only if phaseSaving
	phaseSaving bool
}

// NewHeuristic returns a Heuristic over an empty variable universe, using
// decay as its activity-decay constant (defaultDecay if decay <= 0). Call
// AddVariable to grow it before ChooseVariable is used.
func NewHeuristic(phaseSaving bool, decay float64) *Heuristic {
	if decay <= 0 {
		decay = defaultDecay
	}
	return &Heuristic{
		order:       yagh.New[float64](0),
		increment:   initialIncrement,
		decay:       decay,
		phaseSaving: phaseSaving,
	}
}

// AddVariable registers one more variable with zero initial activity.
func (h *Heuristic) AddVariable() {
	id := len(h.scores)
	h.scores = append(h.scores, 0)
	h.phases = append(h.phases, LUnknown)
	h.order.GrowBy(1)
	h.order.Put(id, 0)
}

func (h *Heuristic) idx(v Variable) int {
	return int(v) - 1
}

// ChooseVariable returns the unassigned variable with the maximum score,
// ties broken by smallest variable id (the heap's own tie-break, since
// variables are pushed in id order and ids never repeat). It returns
// (0, false) iff every variable is assigned.
func (h *Heuristic) ChooseVariable(a *Assignment) (Variable, bool) {
	for {
		item, ok := h.order.Pop()
		if !ok {
			return 0, false
		}
		v := Variable(item.Elem + 1)
		if a.IsAssigned(v) {
			continue // lazily drop stale heap entries
		}
		return v, true
	}
}

// ChooseValue returns the initial polarity to try for v: constant false per
// the contract's fixed reference behaviour, or the last-saved phase if
// phase-saving is enabled and v has been assigned before.
func (h *Heuristic) ChooseValue(v Variable) bool {
	if !h.phaseSaving {
		return false
	}
	switch h.phases[h.idx(v)] {
	case LTrue:
		return true
	case LFalse:
		return false
	default:
		return false
	}
}

// Reinsert returns v to the pool of selectable variables, recording val as
// its last-assigned phase (if phase-saving is enabled). This must be
// called by the solver whenever Assignment.Backtrack unassigns v.
func (h *Heuristic) Reinsert(v Variable, val LBool) {
	i := h.idx(v)
	if h.phaseSaving {
		h.phases[i] = val
	}
	h.order.Put(int(v)-1, -h.scores[i])
}

// BumpActivity adds the current increment to v's score, rescaling all
// scores if v's score would exceed rescaleThreshold.
func (h *Heuristic) BumpActivity(v Variable) {
	i := h.idx(v)
	h.scores[i] += h.increment
	if h.order.Contains(i) {
		h.order.Put(i, -h.scores[i])
	}
	if h.scores[i] > rescaleThreshold {
		h.rescale()
	}
}

// BumpActivities bumps every variable appearing in c, positively or
// negatively.
func (h *Heuristic) BumpActivities(c *Clause) {
	for _, l := range c.literals {
		h.BumpActivity(l.Var())
	}
}

// DecayActivities grows the increment rather than shrinking every score,
// which is mathematically equivalent to multiplying every score by decay
// but far cheaper; it preserves score ordering.
func (h *Heuristic) DecayActivities() {
	h.increment /= h.decay
	if h.increment > rescaleThreshold {
		h.rescale()
	}
}

// rescale multiplies every score and the increment by rescaleFactor,
// preserving their relative ordering while keeping them bounded.
func (h *Heuristic) rescale() {
	h.increment *= rescaleFactor
	for v, s := range h.scores {
		newScore := s * rescaleFactor
		h.scores[v] = newScore
		if h.order.Contains(v) {
			h.order.Put(v, -newScore)
		}
	}
}
