package enumerate

import (
	"fmt"
	"io"

	"github.com/limaJavier/graphsat/pkg/property"
	"github.com/prometheus/client_golang/prometheus"
)

// Progress is a snapshot of a session taken after every oracle call and once more when the
// session ends
type Progress struct {
	Iteration int
	// Queried is set on the first report that follows an oracle call
	Queried     bool
	OracleCalls int
	Solutions   int
	Clauses     int
	// Solution is the solution found by the last call, nil if there was none
	Solution     *property.Solution
	BlockingSize int
	Done         bool
	Status       Status
}

// Observer receives progress reports. Observers must not influence the enumeration.
type Observer interface {
	Observe(progress Progress)
}

type DefaultObserver struct{}

func (DefaultObserver) Observe(_ Progress) {
}

// LoggingObserver writes one line per report
type LoggingObserver struct {
	Writer io.Writer
}

func (o LoggingObserver) Observe(progress Progress) {
	if progress.Done {
		fmt.Fprintf(o.Writer, "done: %v after %d calls, %d solutions\n", progress.Status, progress.OracleCalls, progress.Solutions)
		return
	}
	fmt.Fprintf(o.Writer, "#%d %v (%d clauses)\n", progress.Solutions, progress.Solution, progress.Clauses)
}

// Observers fans reports out to every observer in order
type Observers []Observer

func (observers Observers) Observe(progress Progress) {
	for _, observer := range observers {
		observer.Observe(progress)
	}
}

// MetricsObserver exports enumeration counters to prometheus. One observer can be shared by
// concurrent sessions.
type MetricsObserver struct {
	calls        prometheus.Counter
	solutions    prometheus.Counter
	sessions     *prometheus.CounterVec
	blockingSize prometheus.Histogram
}

func NewMetricsObserver(registerer prometheus.Registerer) (*MetricsObserver, error) {
	observer := &MetricsObserver{
		calls: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "graphsat_oracle_calls_total",
				Help: "Number of formulas submitted to the oracle",
			},
		),
		solutions: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "graphsat_solutions_total",
				Help: "Number of distinct solutions found",
			},
		),
		sessions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "graphsat_sessions_total",
				Help: "Number of finished enumeration sessions by status",
			},
			[]string{"status"},
		),
		blockingSize: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "graphsat_blocking_clause_size",
				Help:    "Number of literals of the blocking clauses",
				Buckets: prometheus.ExponentialBuckets(1, 2, 10),
			},
		),
	}

	for _, collector := range []prometheus.Collector{observer.calls, observer.solutions, observer.sessions, observer.blockingSize} {
		if err := registerer.Register(collector); err != nil {
			return nil, err
		}
	}
	return observer, nil
}

func (o *MetricsObserver) Observe(progress Progress) {
	if progress.Queried {
		o.calls.Inc()
	}
	if progress.Solution != nil {
		o.solutions.Inc()
		o.blockingSize.Observe(float64(progress.BlockingSize))
	}
	if progress.Done {
		o.sessions.WithLabelValues(progress.Status.String()).Inc()
	}
}
