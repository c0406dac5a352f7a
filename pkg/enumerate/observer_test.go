package enumerate

import (
	"bytes"
	"context"
	"testing"

	"github.com/limaJavier/graphsat/pkg/graph"
	"github.com/limaJavier/graphsat/pkg/property"
	"github.com/limaJavier/graphsat/pkg/sat"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsObserver(t *testing.T) {
	//** Arrange
	registry := prometheus.NewRegistry()
	observer, err := NewMetricsObserver(registry)
	require.NoError(t, err)

	//** Act
	_, err = enumerate(t, cycle(t, 4), property.Spec{Kind: property.Coloring, Colors: 2}, sat.NewGophersatSolver(), WithObserver(observer))
	require.NoError(t, err)
	_, err = enumerate(t, cycle(t, 4), property.Spec{Kind: property.Coloring, Colors: 2}, sat.NewGophersatSolver(), WithObserver(observer), WithLimit(1))
	require.NoError(t, err)

	//** Assert
	assert.Equal(t, float64(3+1), testutil.ToFloat64(observer.calls))
	assert.Equal(t, float64(2+1), testutil.ToFloat64(observer.solutions))
	assert.Equal(t, float64(1), testutil.ToFloat64(observer.sessions.WithLabelValues(Exhausted.String())))
	assert.Equal(t, float64(1), testutil.ToFloat64(observer.sessions.WithLabelValues(LimitReached.String())))
	assert.Equal(t, 5, testutil.CollectAndCount(registry))

	// Registering twice on the same registry fails
	_, err = NewMetricsObserver(registry)
	assert.Error(t, err)
}

func TestLoggingObserver(t *testing.T) {
	var buffer bytes.Buffer

	_, err := enumerate(t, cycle(t, 3), property.Spec{Kind: property.Clique, Size: 3}, sat.NewGophersatSolver(), WithObserver(LoggingObserver{Writer: &buffer}))

	require.NoError(t, err)
	assert.Equal(t, "#1 {1,2,3} (4 clauses)\ndone: exhausted after 2 calls, 1 solutions\n", buffer.String())
}

func TestRunAll(t *testing.T) {
	//** Arrange
	square, triangle := cycle(t, 4), cycle(t, 3)
	encodings := []*property.Encoding{}
	for _, input := range []struct {
		graph *graph.Graph
		spec  property.Spec
	}{
		{square, property.Spec{Kind: property.Coloring, Colors: 2}},
		{triangle, property.Spec{Kind: property.IndependentSet, Size: 1}},
		{square, property.Spec{Kind: property.Isomorphism, Target: square}},
	} {
		encoding, err := property.Encode(input.graph, input.spec)
		require.NoError(t, err)
		encodings = append(encodings, encoding)
	}

	enumerators := make([]*Enumerator, 0, len(encodings))
	for _, encoding := range encodings {
		enumerator, err := New(encoding, sat.NewGophersatSolver())
		require.NoError(t, err)
		enumerators = append(enumerators, enumerator)
	}

	//** Act
	results, err := RunAll(context.Background(), enumerators...)

	//** Assert
	require.NoError(t, err)
	require.Len(t, results, 3)
	assert.Equal(t, 2, results[0].Tree.Len())
	assert.Equal(t, 3, results[1].Tree.Len())
	assert.Equal(t, 8, results[2].Tree.Len())
}
