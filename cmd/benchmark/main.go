package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"os"
	"os/exec"
	"runtime"
	"slices"
	"time"

	"github.com/limaJavier/graphsat/pkg/enumerate"
	"github.com/limaJavier/graphsat/pkg/graph"
	"github.com/limaJavier/graphsat/pkg/property"
	"github.com/limaJavier/graphsat/pkg/sat"
	"github.com/samber/lo"
)

const (
	outputPath            = "benchmark_results.csv"
	timeoutPerRun         = time.Minute
	MB            float32 = 1024 * 1024
)

type ResultType int

const (
	exhausted ResultType = iota
	timeout
	failed
)

var resultTypes = map[ResultType]string{
	exhausted: "exhausted",
	timeout:   "timeout",
	failed:    "failed",
}

// Workload is one property enumerated over a random graph
type Workload struct {
	Name  string
	Graph *graph.Graph
	Spec  property.Spec
}

type BenchmarkResult struct {
	Solver      string
	Workload    Workload
	Variables   uint64
	Clauses     int
	Solutions   int
	OracleCalls int
	Duration    int64
	Memory      float32
	Result      ResultType
}

func main() {
	workloads := getWorkloads()
	solvers := getSolvers()
	results := make([]BenchmarkResult, 0, len(workloads)*len(solvers))

	for _, workload := range workloads {
		var reference map[uint64]bool
		for _, solver := range solvers {
			fmt.Printf("Benchmarking workload \"%v\" with solver \"%v\"\n", workload.Name, solver)

			result, fingerprints := measure(workload, solver)
			results = append(results, result)

			// Every oracle must find the same solutions
			if result.Result != exhausted {
				continue
			}
			if reference == nil {
				reference = fingerprints
			} else if !agree(reference, fingerprints) {
				log.Fatalf("solver \"%v\" disagrees on workload \"%v\": %d solutions instead of %d", solver, workload.Name, len(fingerprints), len(reference))
			}
		}
	}

	file, err := os.Create(outputPath)
	if err != nil {
		log.Panicf("cannot create CSV file: %v", err)
	}
	defer file.Close()
	toCsv(file, results)
}

func getWorkloads() []Workload {
	sizes := []struct{ nodes, edges int }{
		{8, 10},
		{10, 20},
		{12, 24},
	}

	workloads := make([]Workload, 0)
	for _, size := range sizes {
		g := lo.Must(graph.Random(size.nodes, size.edges))
		name := fmt.Sprintf("G(%d,%d)", size.nodes, size.edges)
		workloads = append(workloads,
			Workload{Name: name + " 3-coloring", Graph: g, Spec: property.Spec{Kind: property.Coloring, Colors: 3}},
			Workload{Name: name + " 3-coloring (symmetry)", Graph: g, Spec: property.Spec{Kind: property.Coloring, Colors: 3, BreakSymmetry: true}},
			Workload{Name: name + " independent-set", Graph: g, Spec: property.Spec{Kind: property.IndependentSet, Size: size.nodes / 3}},
			Workload{Name: name + " clique", Graph: g, Spec: property.Spec{Kind: property.Clique, Size: 3}},
			Workload{Name: name + " automorphism", Graph: g, Spec: property.Spec{Kind: property.Isomorphism, Target: g}},
		)
	}
	return workloads
}

// getSolvers returns the in-process solvers and the external ones found in PATH
func getSolvers() []string {
	return lo.Filter(sat.SolverNames(), func(name string, _ int) bool {
		if name == sat.Bruteforce {
			return false
		}
		if sat.InProcess(name) {
			return true
		}
		_, err := exec.LookPath(name)
		return err == nil
	})
}

func measure(workload Workload, solverName string) (BenchmarkResult, map[uint64]bool) {
	solver := lo.Must(sat.NewSolver(solverName, nil))
	encoding, err := property.Encode(workload.Graph, workload.Spec)
	if err != nil {
		log.Fatalf("cannot encode workload \"%v\": %v", workload.Name, err)
	}
	enumerator := lo.Must(enumerate.New(encoding, solver))

	ctx, cancel := context.WithTimeout(context.Background(), timeoutPerRun)
	defer cancel()

	var before, after runtime.MemStats
	runtime.ReadMemStats(&before)
	start := time.Now()
	run, err := enumerator.Run(ctx)
	duration := time.Since(start)
	runtime.ReadMemStats(&after)

	result := BenchmarkResult{
		Solver:      solverName,
		Workload:    workload,
		Variables:   run.Variables,
		Clauses:     run.Clauses,
		Solutions:   run.Tree.Len(),
		OracleCalls: run.OracleCalls,
		Duration:    duration.Milliseconds(),
		Memory:      float32(after.TotalAlloc-before.TotalAlloc) / MB,
		Result:      exhausted,
	}
	if err != nil {
		log.Printf("solver \"%v\" failed on workload \"%v\": %v", solverName, workload.Name, err)
		result.Result = failed
	} else if run.Status == enumerate.Cancelled {
		result.Result = timeout
	}

	return result, fingerprints(run)
}

// fingerprints identifies the solutions of a run independently of their order
func fingerprints(run enumerate.Result) map[uint64]bool {
	set := make(map[uint64]bool, run.Tree.Len())
	for _, solution := range run.Tree.All() {
		set[lo.Must(solution.Fingerprint())] = true
	}
	return set
}

func agree(a, b map[uint64]bool) bool {
	if len(a) != len(b) {
		return false
	}
	keys := lo.Keys(a)
	return !slices.ContainsFunc(keys, func(key uint64) bool { return !b[key] })
}

func toCsv(output io.Writer, results []BenchmarkResult) {
	writer := csv.NewWriter(output)
	defer writer.Flush()

	header := []string{"Solver", "Workload", "Property", "Nodes", "Edges", "Variables", "Clauses", "Solutions", "OracleCalls", "Duration(ms)", "Memory(MB)", "Result"}
	if err := writer.Write(header); err != nil {
		log.Panicf("cannot write CSV header: %v", err)
	}

	for _, result := range results {
		record := []string{
			result.Solver,
			result.Workload.Name,
			string(result.Workload.Spec.Kind),
			fmt.Sprintf("%d", result.Workload.Graph.Order()),
			fmt.Sprintf("%d", result.Workload.Graph.Size()),
			fmt.Sprintf("%d", result.Variables),
			fmt.Sprintf("%d", result.Clauses),
			fmt.Sprintf("%d", result.Solutions),
			fmt.Sprintf("%d", result.OracleCalls),
			fmt.Sprintf("%d", result.Duration),
			fmt.Sprintf("%.1f", result.Memory),
			resultTypes[result.Result],
		}
		if err := writer.Write(record); err != nil {
			log.Panicf("cannot write CSV record: %v", err)
		}
	}
}
