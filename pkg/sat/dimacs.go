package sat

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/go-air/gini/dimacs"
	"github.com/go-air/gini/z"
	"github.com/pkg/errors"
	"github.com/samber/lo"
)

// WriteDIMACS writes s in DIMACS-CNF format to writer, one clause per line
func (s SAT) WriteDIMACS(writer io.Writer) error {
	line := fmt.Appendf(nil, "p cnf %d %d\n", s.Variables, len(s.Clauses))
	if _, err := writer.Write(line); err != nil {
		return errors.Wrap(err, "cannot write DIMACS")
	}
	for _, clause := range s.Clauses {
		line = line[:0]
		for _, literal := range clause {
			line = strconv.AppendInt(line, literal, 10)
			line = append(line, ' ')
		}
		line = append(line, '0', '\n')
		if _, err := writer.Write(line); err != nil {
			return errors.Wrap(err, "cannot write DIMACS")
		}
	}
	return nil
}

func (s SAT) ToDIMACS() string {
	var builder strings.Builder
	// Writes to a strings.Builder never fail
	_ = s.WriteDIMACS(&builder)
	return builder.String()
}

// satBuilder is a dimacs.CnfVis filling a SAT
type satBuilder struct {
	declared    uint64
	maxVariable uint64
	clauses     [][]int64
	clause      []int64
}

func (builder *satBuilder) Init(variables, clauses int) {
	builder.declared = uint64(variables)
	builder.clauses = make([][]int64, 0, min(clauses, 1<<16))
	builder.clause = []int64{}
}

func (builder *satBuilder) Add(literal z.Lit) {
	if literal == z.LitNull {
		builder.clauses = append(builder.clauses, builder.clause)
		builder.clause = []int64{}
		return
	}
	value := int64(literal.Dimacs())
	builder.clause = append(builder.clause, value)
	builder.maxVariable = max(builder.maxVariable, uint64(abs(value)))
}

// Eof closes a last clause that lacks its terminating 0
func (builder *satBuilder) Eof() {
	if len(builder.clause) > 0 {
		builder.clauses = append(builder.clauses, builder.clause)
		builder.clause = []int64{}
	}
}

// ParseDIMACS reads a DIMACS-CNF formula. Clauses may span several lines and are closed by 0.
// When the problem line is missing the variable count is the highest variable seen.
func ParseDIMACS(reader io.Reader) (SAT, error) {
	content, err := io.ReadAll(reader)
	if err != nil {
		return SAT{}, errors.Wrap(err, "cannot read DIMACS")
	}
	// SATLIB instances end with a "%" line followed by a stray 0
	if index := bytes.Index(content, []byte("\n%")); index >= 0 {
		content = content[:index+1]
	}

	builder := &satBuilder{}
	if err := dimacs.ReadCnf(bytes.NewReader(content), builder); err != nil {
		return SAT{}, errors.Wrap(err, "invalid DIMACS")
	}
	builder.Eof()

	sat := SAT{Variables: builder.maxVariable, Clauses: builder.clauses}
	if hasProblemLine(content) {
		if builder.maxVariable > builder.declared {
			return SAT{}, errors.Errorf("variable %d exceeds the declared count %d", builder.maxVariable, builder.declared)
		}
		sat.Variables = builder.declared
	}
	return sat, nil
}

// hasProblemLine reports whether the first line that is not a comment is the "p cnf" line.
// Without it the reader falls back to a default capacity instead of a variable count.
func hasProblemLine(content []byte) bool {
	line, _ := lo.Find(strings.Split(string(content), "\n"), func(line string) bool {
		return !strings.HasPrefix(line, "c")
	})
	return strings.HasPrefix(line, "p")
}

// ParseSolution extracts the model from the "v" lines of a SAT-competition style output.
// Models may be wrapped over several "v" lines, which dimacs.ReadSolve does not accept.
func ParseSolution(solverOutput string) (SATSolution, error) {
	values := lo.FlatMap(
		lo.Filter(strings.Split(solverOutput, "\n"), func(line string, _ int) bool {
			return len(line) > 0 && line[0] == 'v'
		}),
		func(line string, _ int) []string {
			return strings.Fields(line[1:])
		},
	)

	solution := make(SATSolution, 0, len(values))
	for _, value := range values {
		literal, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid literal %q in solver output", value)
		}
		if literal == 0 {
			break
		}
		solution = append(solution, literal)
	}
	return solution, nil
}
