package cdcl

import "log"

// Analyzer performs First-UIP conflict analysis over the implication graph
// implicit in an Assignment's trail and reasons. It shares a read-only
// handle to the Assignment and never mutates it.
type Analyzer struct {
	seen *ResetSet
}

// NewAnalyzer returns an Analyzer ready to analyze conflicts over a universe
// of the given size.
func NewAnalyzer(universe int) *Analyzer {
	return &Analyzer{seen: NewResetSet(universe)}
}

// AddVariable grows the analyzer's seen-set capacity by one.
func (an *Analyzer) AddVariable() {
	an.seen.Expand()
}

// Analyze implements SPEC_FULL.md §4.4: given a conflicting clause and an
// Assignment at decision level L >= 1, it returns a learned clause with
// exactly one literal at level L (the asserting / First-UIP literal) and
// all others at levels < L, and the backjump level those other literals
// imply.
//
// The walk mirrors the classic First-UIP resolution: every literal touched
// while resolving is marked seen exactly once (the per-variable "seen" flag
// SPEC_FULL.md §9 recommends over a literal-keyed hash set). A literal
// whose variable sits below the conflict level is committed to the learned
// clause's tail immediately and never revisited; a literal at the conflict
// level increments a counter k of outstanding implication points still to
// resolve. Because the trail's decision levels are non-decreasing (the
// trail-monotonicity invariant of Assignment), walking the trail backwards
// is guaranteed to encounter every remaining level-L seen variable before
// it would ever need to fall back into the level-<L prefix, so the scan
// never re-checks level explicitly — it only needs to find the next seen
// variable.
func (an *Analyzer) Analyze(conflict *Clause, a *Assignment) (*Clause, int) {
	level := a.CurrentLevel()
	if level == 0 {
		invariantViolation("analyze: called at decision level 0")
	}
	an.seen.Clear()

	k := 0
	tail := make([]Literal, 0, conflict.Len())

	absorb := func(c *Clause, exclude Variable) {
		for _, lit := range c.Literals() {
			v := lit.Var()
			if v == exclude {
				continue
			}
			if an.seen.Contains(int(v) - 1) {
				continue
			}
			an.seen.Add(int(v) - 1)
			if a.Level(v) == level {
				k++
				continue
			}
			tail = append(tail, lit)
		}
	}

	trail := a.Trail()
	next := len(trail) - 1

	absorb(conflict, 0)

	var pivot Variable
	for {
		var v Variable
		for {
			if next < 0 {
				invariantViolation("analyze: exhausted trail before reaching the first UIP")
			}
			cand := trail[next]
			next--
			if an.seen.Contains(int(cand) - 1) {
				v = cand
				break
			}
		}

		k--
		if k <= 0 {
			pivot = v
			break
		}

		reason := a.Reason(v)
		if reason == nil {
			invariantViolation("analyze: reached decision variable %d with outstanding implication points", v)
		}
		absorb(reason, v)
	}

	var assertingLit Literal
	if a.Value(pivot) == LTrue {
		assertingLit = NegativeLiteral(pivot)
	} else {
		assertingLit = PositiveLiteral(pivot)
	}

	learned := make([]Literal, 0, len(tail)+1)
	learned = append(learned, assertingLit)
	learned = append(learned, tail...)

	// Backjump level per §4.4 step 5. The asserting literal is always at
	// level L, and every tail literal is, by construction above, strictly
	// below L — so the resolvent's maximum level is always L. The spec's
	// "maximum equals L" branch is therefore always taken whenever there
	// is more than one distinct level; the "else" branch is unreachable
	// under this construction and is kept only as the defensive fallback
	// SPEC_FULL.md §9 calls for, logged if it ever fires.
	distinctLevels := map[int]struct{}{level: {}}
	maxTail := -1
	for _, lit := range tail {
		lv := a.Level(lit.Var())
		distinctLevels[lv] = struct{}{}
		if lv > maxTail {
			maxTail = lv
		}
	}

	backjump := 0
	if len(distinctLevels) > 1 {
		overallMax := level // level is always >= every tail level
		if overallMax == level {
			backjump = maxTail
		} else {
			log.Printf("cdcl: conflict analysis defensive fallback triggered (resolvent max level %d != conflict level %d)", overallMax, level)
			backjump = secondHighest(distinctLevels, overallMax)
		}
	}

	return NewClause(learned, true), backjump
}

func secondHighest(levels map[int]struct{}, exclude int) int {
	best := 0
	for lv := range levels {
		if lv == exclude {
			continue
		}
		if lv > best {
			best = lv
		}
	}
	return best
}
