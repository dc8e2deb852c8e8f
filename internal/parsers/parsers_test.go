package parsers

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/nwidger/cdcl/sat"
)

// fakeSolver implements SATSolver purely to observe the calls LoadDIMACS
// makes, without exercising the real solver.
type fakeSolver struct {
	nVars   int
	clauses [][]sat.Literal
}

func (f *fakeSolver) AddVariable() sat.Variable {
	f.nVars++
	return sat.Variable(f.nVars)
}

func (f *fakeSolver) AddClause(lits []sat.Literal) error {
	c := make([]sat.Literal, len(lits))
	copy(c, lits)
	f.clauses = append(f.clauses, c)
	return nil
}

func TestLoadDIMACS(t *testing.T) {
	got := &fakeSolver{}
	if err := LoadDIMACS("testdata/test_instance.cnf", got); err != nil {
		t.Fatalf("LoadDIMACS(): want no error, got %s", err)
	}

	want := &fakeSolver{
		nVars: 2,
		clauses: [][]sat.Literal{
			{sat.PositiveLiteral(1), sat.PositiveLiteral(2)},
			{sat.NegativeLiteral(1), sat.NegativeLiteral(2)},
		},
	}
	if diff := cmp.Diff(want, got, cmp.AllowUnexported(fakeSolver{})); diff != "" {
		t.Errorf("LoadDIMACS(): mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadDIMACS_missingFile(t *testing.T) {
	got := &fakeSolver{}
	if err := LoadDIMACS("testdata/does_not_exist.cnf", got); err == nil {
		t.Errorf("LoadDIMACS(): want error for a missing file, got none")
	}
}

func TestReadModels(t *testing.T) {
	got, err := ReadModels("testdata/test_instance.cnf.models")
	if err != nil {
		t.Fatalf("ReadModels(): want no error, got %s", err)
	}
	want := [][]bool{
		{true, false},
		{false, true},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ReadModels(): mismatch (-want +got):\n%s", diff)
	}
}
