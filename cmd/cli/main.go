package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path"
	"slices"
	"strings"
	"time"

	"github.com/limaJavier/graphsat/internal/config"
	"github.com/limaJavier/graphsat/pkg/enumerate"
	"github.com/limaJavier/graphsat/pkg/property"
	"github.com/limaJavier/graphsat/pkg/sat"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Exit codes follow the convention of SAT solvers
const (
	exitFound      = 10
	exitNone       = 20
	exitUnverified = 15
	exitError      = 1
)

// defaultConfigName is looked up next to the executable when --config is not given
const defaultConfigName = "graphsat.yaml"

type options struct {
	graphPath       string
	targetPath      string
	propertyPath    string
	kind            string
	colors          int
	size            int
	pins            []string
	solver          string
	configPath      string
	limit           int
	breakSymmetry   bool
	groupBySymmetry bool
	dimacsPath      string
	outPath         string
	logLevel        string
	timeout         time.Duration
	metrics         bool
}

func main() {
	os.Exit(execute(os.Args[1:], os.Stdout, os.Stderr))
}

// execute runs the command line and returns the process exit code
func execute(args []string, stdout, stderr io.Writer) int {
	exitCode := exitError
	command := newCommand(&exitCode)
	command.SetArgs(args)
	command.SetOut(stdout)
	command.SetErr(stderr)
	if err := command.Execute(); err != nil {
		return exitError
	}
	return exitCode
}

func newCommand(exitCode *int) *cobra.Command {
	opts := &options{}
	command := &cobra.Command{
		Use:   "graphsat",
		Short: "Enumerate every solution of a graph property through a SAT solver",
		Long: `graphsat encodes a graph property (coloring, independent-set, clique or isomorphism) into CNF
and enumerates all of its solutions by querying a SAT solver and blocking every model found.
The solution tree is written as JSON. The exit code is 10 when solutions were found, 20 when
there are none and 15 when a solution failed verification.`,
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(command *cobra.Command, _ []string) error {
			code, err := run(command, opts)
			*exitCode = code
			return err
		},
	}

	flags := command.Flags()
	flags.StringVar(&opts.graphPath, "graph", "", "Path to the input graph (YAML or JSON edge list)")
	flags.StringVar(&opts.targetPath, "target", "", "Path to the target graph of an isomorphism")
	flags.StringVar(&opts.propertyPath, "property-file", "", "Path to a property document; flags override its fields")
	flags.StringVar(&opts.kind, "property", "", fmt.Sprintf("Property to enumerate. Allowed values are: %v", property.Kinds()))
	flags.IntVar(&opts.colors, "colors", 0, "Number of colors of a coloring")
	flags.IntVar(&opts.size, "size", 0, "Minimum size of an independent set or clique")
	flags.StringSliceVar(&opts.pins, "pin", nil, "Pin node v of the graph to node w of the target, written as v=w")
	flags.StringVar(&opts.solver, "solver", "", fmt.Sprintf("SAT solver to use. Allowed values are: %v", sat.SolverNames()))
	flags.StringVar(&opts.configPath, "config", "", "Path to the configuration file, "+defaultConfigName+" next to the executable by default")
	flags.IntVar(&opts.limit, "limit", 0, "Maximum number of solutions, 0 for all of them")
	flags.BoolVar(&opts.breakSymmetry, "break-symmetry", false, "Keep one coloring out of those that only differ by a permutation of colors")
	flags.BoolVar(&opts.groupBySymmetry, "group-by-symmetry", false, "Group the solutions of the output tree by symmetry class")
	flags.StringVar(&opts.dimacsPath, "dimacs", "", "Write the base formula in DIMACS-CNF to this file")
	flags.StringVar(&opts.outPath, "out", "", "Path to the output file; if empty, it'll be written into the Standard Output")
	flags.StringVar(&opts.logLevel, "log-level", "", "Log level (panic, fatal, error, warn, info, debug, trace)")
	flags.DurationVar(&opts.timeout, "timeout", 0, "Stop the enumeration after this duration, 0 for no timeout")
	flags.BoolVar(&opts.metrics, "metrics", false, "Dump the enumeration metrics to the Standard Error when done")
	lo.Must0(command.MarkFlagRequired("graph"))

	return command
}

func run(command *cobra.Command, opts *options) (int, error) {
	flags := command.Flags()

	cfg, err := loadConfig(opts.configPath)
	if err != nil {
		return exitError, err
	}
	if flags.Changed("limit") {
		cfg.Limit = opts.limit
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = opts.logLevel
	}
	if flags.Changed("break-symmetry") {
		cfg.BreakSymmetry = opts.breakSymmetry
	}
	if opts.solver != "" {
		cfg.Solver = strings.ToLower(opts.solver)
	}
	if err := cfg.Validate(); err != nil {
		return exitError, err
	}

	logger := logrus.New()
	logger.SetOutput(command.ErrOrStderr())
	logger.SetLevel(lo.Must(logrus.ParseLevel(cfg.LogLevel)))

	// Extract input
	g, err := readGraph(opts.graphPath)
	if err != nil {
		return exitError, err
	}
	spec, err := buildSpec(flags, opts, cfg)
	if err != nil {
		return exitError, err
	}

	encoding, err := property.Encode(g, spec)
	if err != nil {
		return exitError, errors.Wrap(err, "cannot encode property")
	}
	logger.WithFields(logrus.Fields{
		"property":  spec.Kind,
		"variables": encoding.Registry.Len(),
		"clauses":   len(encoding.Clauses),
	}).Info("property encoded")

	if opts.dimacsPath != "" {
		if err := writeDIMACS(opts.dimacsPath, encoding.SAT()); err != nil {
			return exitError, err
		}
	}

	// Initialize engines
	solver, err := cfg.NewSolver("")
	if err != nil {
		return exitError, err
	}
	registry := prometheus.NewRegistry()
	metrics, err := enumerate.NewMetricsObserver(registry)
	if err != nil {
		return exitError, err
	}
	enumerator, err := enumerate.New(encoding, solver,
		enumerate.WithLimit(cfg.Limit),
		enumerate.WithLogger(logger.WithField("solver", cfg.Solver)),
		enumerate.WithObserver(metrics),
	)
	if err != nil {
		return exitError, err
	}

	ctx := command.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if opts.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.timeout)
		defer cancel()
	}

	result, runErr := enumerator.Run(ctx)
	if runErr != nil {
		logger.WithError(runErr).Error("enumeration failed, writing partial results")
	}

	// Verify every solution against the graph before reporting it
	solutions := 0
	for _, solution := range result.Tree.All() {
		if err := property.Verify(g, spec, solution); err != nil {
			logger.WithError(err).WithField("solution", solution.String()).Error("unsound solution")
			printSummary(command.ErrOrStderr(), result)
			return exitUnverified, nil
		}
		solutions++
	}

	if opts.groupBySymmetry {
		result.Tree = result.Tree.GroupBy(property.SymmetryClass)
	}
	if err := writeResult(command.OutOrStdout(), opts.outPath, result); err != nil {
		return exitError, err
	}
	if opts.metrics {
		if err := dumpMetrics(command.ErrOrStderr(), registry); err != nil {
			return exitError, err
		}
	}

	printSummary(command.ErrOrStderr(), result)
	if runErr != nil {
		return exitError, runErr
	}
	if solutions == 0 {
		return exitNone, nil
	}
	return exitFound, nil
}

// loadConfig reads the given configuration file, or the default one next to the executable
// when it exists
func loadConfig(configPath string) (config.Config, error) {
	if configPath != "" {
		return config.Load(configPath)
	}

	execPath, err := os.Executable()
	if err != nil {
		return config.Default(), nil
	}
	files, err := os.ReadDir(path.Dir(execPath))
	if err != nil {
		return config.Default(), nil
	}
	fileNames := lo.Map(files, func(file os.DirEntry, _ int) string { return file.Name() })
	if !slices.Contains(fileNames, defaultConfigName) {
		return config.Default(), nil
	}
	return config.Load(path.Join(path.Dir(execPath), defaultConfigName))
}

// buildSpec merges the property document with the property flags, flags given explicitly win
func buildSpec(flags *pflag.FlagSet, opts *options, cfg config.Config) (property.Spec, error) {
	document := map[string]any{}
	if opts.propertyPath != "" {
		var err error
		if document, err = readDocument(opts.propertyPath); err != nil {
			return property.Spec{}, err
		}
	}

	if opts.kind != "" {
		document["kind"] = strings.ToLower(opts.kind)
	}
	if flags.Changed("colors") {
		document["colors"] = opts.colors
	}
	if flags.Changed("size") {
		document["size"] = opts.size
	}
	if cfg.BreakSymmetry || flags.Changed("break-symmetry") {
		document["breakSymmetry"] = cfg.BreakSymmetry
	}
	if opts.targetPath != "" {
		edges, err := readEdges(opts.targetPath)
		if err != nil {
			return property.Spec{}, err
		}
		document["target"] = edges
	}
	if len(opts.pins) > 0 {
		mapping, err := parsePins(opts.pins)
		if err != nil {
			return property.Spec{}, err
		}
		document["mapping"] = mapping
	}

	return property.SpecFromMap(document)
}

func writeDIMACS(dimacsPath string, formula sat.SAT) error {
	file, err := os.Create(dimacsPath)
	if err != nil {
		return errors.Wrap(err, "cannot create DIMACS file")
	}
	defer file.Close()
	return formula.WriteDIMACS(file)
}

// writeResult writes the result as JSON to outPath, or to stdout when outPath is empty
func writeResult(stdout io.Writer, outPath string, result enumerate.Result) error {
	resultJson, err := json.Marshal(result)
	if err != nil {
		return errors.Wrap(err, "an error occurred while building output json")
	}

	if outPath == "" {
		_, err := fmt.Fprintln(stdout, string(resultJson))
		return err
	}
	return errors.Wrap(os.WriteFile(outPath, resultJson, 0666), "an error occurred while writing to the output file")
}

func dumpMetrics(writer io.Writer, registry *prometheus.Registry) error {
	families, err := registry.Gather()
	if err != nil {
		return errors.Wrap(err, "cannot gather metrics")
	}
	for _, family := range families {
		if _, err := expfmt.MetricFamilyToText(writer, family); err != nil {
			return errors.Wrap(err, "cannot write metrics")
		}
	}
	return nil
}

func printSummary(writer io.Writer, result enumerate.Result) {
	fmt.Fprintf(writer, "Variables: %v\n", result.Variables)
	fmt.Fprintf(writer, "Clauses: %v\n", result.Clauses)
	fmt.Fprintf(writer, "Oracle calls: %v\n", result.OracleCalls)
	fmt.Fprintf(writer, "Status: %v\n", result.Status)
}
