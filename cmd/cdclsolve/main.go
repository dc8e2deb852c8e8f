// Command cdclsolve reads a DIMACS CNF instance, runs the CDCL solver over
// it, and prints the verdict, timing, and (optionally) the satisfying model.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"runtime/pprof"
	"time"

	"github.com/nwidger/cdcl/internal/cdcl"
	"github.com/nwidger/cdcl/internal/parsers"
	"github.com/nwidger/cdcl/sat"
)

var flagCPUProfile = flag.Bool(
	"cpuprof",
	false,
	"save pprof CPU profile in cpuprof",
)

var flagMemProfile = flag.Bool(
	"memprof",
	false,
	"save pprof memory profile in memprof",
)

var flagPrintModel = flag.Bool(
	"model",
	false,
	"print the satisfying model, if any",
)

var flagMaxConflicts = flag.Int64(
	"max-conflicts",
	-1,
	"stop and report UNKNOWN after this many conflicts (<0 disables)",
)

var flagTimeout = flag.Duration(
	"timeout",
	-1,
	"stop and report UNKNOWN after this much wall time (<0 disables)",
)

type config struct {
	instanceFile string
	memProfile   bool
	cpuProfile   bool
	printModel   bool
	opts         sat.Options
}

func parseConfig() (*config, error) {
	flag.Parse()

	if flag.NArg() == 0 || flag.Arg(0) == "" {
		return nil, fmt.Errorf("missing instance file")
	}

	opts := sat.DefaultOptions
	opts.MaxConflicts = *flagMaxConflicts
	opts.Timeout = *flagTimeout

	return &config{
		instanceFile: flag.Arg(0),
		memProfile:   *flagMemProfile,
		cpuProfile:   *flagCPUProfile,
		printModel:   *flagPrintModel,
		opts:         opts,
	}, nil
}

func run(cfg *config) error {
	s := sat.NewSolver(cfg.opts)

	if err := parsers.LoadDIMACS(cfg.instanceFile, s); err != nil {
		return fmt.Errorf("could not load instance: %s", err)
	}

	fmt.Printf("c variables: %d\n", s.NumVariables())

	t := time.Now()
	verdict := s.Solve()
	elapsed := time.Since(t)

	fmt.Printf("c time (sec): %f\n", elapsed.Seconds())
	fmt.Printf("s %s\n", verdict)

	if verdict == sat.Sat && cfg.printModel {
		model, ok := s.Model()
		if !ok {
			return fmt.Errorf("solver reported SAT but returned no model")
		}
		fmt.Print("v")
		for i, b := range model {
			lit := i + 1
			if !b {
				lit = -lit
			}
			fmt.Printf(" %d", lit)
		}
		fmt.Println(" 0")
	}

	return nil
}

func main() {
	cfg, err := parseConfig()
	if err != nil {
		log.Fatal(err)
	}

	if cfg.cpuProfile {
		f, err := os.Create("cpuprof")
		if err != nil {
			log.Fatal(err)
		}
		pprof.StartCPUProfile(f)
		defer pprof.StopCPUProfile()
	}

	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(*cdcl.InvariantViolationError); ok {
				log.Fatalf("internal invariant violated: %v", r)
			}
			panic(r)
		}
	}()

	if err := run(cfg); err != nil {
		log.Fatal(err)
	}

	if cfg.memProfile {
		f, err := os.Create("memprof")
		if err != nil {
			log.Fatal(err)
		}
		pprof.WriteHeapProfile(f)
		f.Close()
	}
}
