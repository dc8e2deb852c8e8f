// Package parsers adapts internal/dimacs onto the sat package's Solver,
// exactly the seam the yass lineage this core is drawn from keeps between
// its DIMACS reader and its solver-specific literal representation.
package parsers

import (
	"fmt"

	"github.com/nwidger/cdcl/internal/dimacs"
	"github.com/nwidger/cdcl/sat"
)

// SATSolver is the subset of sat.Solver's interface LoadDIMACS needs,
// narrowed so callers can pass a fake in tests without building a real
// solver.
type SATSolver interface {
	AddVariable() sat.Variable
	AddClause([]sat.Literal) error
}

func toLiteral(l int) sat.Literal {
	if l < 0 {
		return sat.NegativeLiteral(sat.Variable(-l))
	}
	return sat.PositiveLiteral(sat.Variable(l))
}

// LoadDIMACS parses the DIMACS CNF file at filename (gzip-decompressed
// transparently if its name ends in ".gz") and loads its formula into
// solver: one AddVariable call per declared variable, one AddClause call
// per clause line. Variable numbering follows DIMACS convention
// (1-indexed), matching sat.Variable directly.
func LoadDIMACS(filename string, solver SATSolver) error {
	inst, err := dimacs.LoadDIMACS(filename)
	if err != nil {
		return err
	}

	for i := 0; i < inst.Variables; i++ {
		solver.AddVariable()
	}
	for _, c := range inst.Clauses {
		lits := make([]sat.Literal, len(c))
		for i, l := range c {
			lits[i] = toLiteral(l)
		}
		if err := solver.AddClause(lits); err != nil {
			return fmt.Errorf("parsers: adding clause %v: %w", c, err)
		}
	}
	return nil
}

// ReadModels returns the list of models (if any) contained in the given
// ".cnf.models" fixture file.
func ReadModels(filename string) ([][]bool, error) {
	return dimacs.ParseModels(filename)
}
