// Package dimacs reads DIMACS CNF and model files, transparently
// decompressing gzip input, by delegating DIMACS-syntax parsing to
// github.com/rhartert/dimacs's streaming builder callback.
package dimacs

import (
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rhartert/dimacs"
)

// Instance is a parsed CNF formula: variables numbered 1..Variables, and
// clauses given as DIMACS-convention literals (positive v asserts v,
// negative v asserts its negation).
type Instance struct {
	Variables int
	Clauses   [][]int
}

func open(filename string) (io.ReadCloser, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	var rc io.ReadCloser = f
	if strings.HasSuffix(filename, ".gz") {
		rc, err = gzip.NewReader(f)
		if err != nil {
			f.Close()
			return nil, err
		}
	}
	return rc, nil
}

// LoadDIMACS reads the CNF instance at filename into an Instance.
func LoadDIMACS(filename string) (*Instance, error) {
	r, err := open(filename)
	if err != nil {
		return nil, fmt.Errorf("dimacs: opening %q: %w", filename, err)
	}
	defer r.Close()

	inst := &Instance{}
	b := &instanceBuilder{inst: inst}
	if err := dimacs.ReadBuilder(r, b); err != nil {
		return nil, fmt.Errorf("dimacs: parsing %q: %w", filename, err)
	}
	return inst, nil
}

type instanceBuilder struct {
	inst *Instance
}

func (b *instanceBuilder) Problem(problem string, nVars int, nClauses int) error {
	if problem != "cnf" {
		return fmt.Errorf("unsupported problem type %q", problem)
	}
	b.inst.Variables = nVars
	b.inst.Clauses = make([][]int, 0, nClauses)
	return nil
}

func (b *instanceBuilder) Clause(lits []int) error {
	clause := make([]int, len(lits))
	copy(clause, lits)
	b.inst.Clauses = append(b.inst.Clauses, clause)
	return nil
}

func (b *instanceBuilder) Comment(_ string) error {
	return nil
}

// ParseModels reads a DIMACS-shaped ".cnf.models" fixture file: one model
// per clause line, where a positive literal i means variable i is true.
func ParseModels(filename string) ([][]bool, error) {
	r, err := open(filename)
	if err != nil {
		return nil, fmt.Errorf("dimacs: opening %q: %w", filename, err)
	}
	defer r.Close()

	b := &modelsBuilder{}
	if err := dimacs.ReadBuilder(r, b); err != nil {
		return nil, fmt.Errorf("dimacs: parsing %q: %w", filename, err)
	}
	return b.models, nil
}

type modelsBuilder struct {
	models [][]bool
}

func (b *modelsBuilder) Problem(problem string, nVars int, nClauses int) error {
	return fmt.Errorf("model files should not have a problem line")
}

func (b *modelsBuilder) Clause(lits []int) error {
	model := make([]bool, len(lits))
	for i, l := range lits {
		model[i] = l > 0
	}
	b.models = append(b.models, model)
	return nil
}

func (b *modelsBuilder) Comment(_ string) error {
	return nil
}
