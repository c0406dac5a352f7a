package main

import (
	"os"
	"strconv"
	"strings"

	"github.com/limaJavier/graphsat/pkg/graph"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// graphDocument is the on-disk graph format. Single-node edges declare isolated nodes.
type graphDocument struct {
	Edges [][]int64 `yaml:"edges"`
}

// readEdges reads a graph document in YAML or JSON
func readEdges(path string) ([][]int64, error) {
	bytes, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot read graph file %s", path)
	}

	var document graphDocument
	if err := yaml.Unmarshal(bytes, &document); err != nil {
		return nil, errors.Wrapf(err, "cannot parse graph file %s", path)
	}
	return document.Edges, nil
}

func readGraph(path string) (*graph.Graph, error) {
	edges, err := readEdges(path)
	if err != nil {
		return nil, err
	}
	g, err := graph.FromEdges(edges)
	return g, errors.Wrapf(err, "invalid graph in %s", path)
}

// readDocument reads an arbitrary YAML or JSON object
func readDocument(path string) (map[string]any, error) {
	bytes, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot read %s", path)
	}
	document := map[string]any{}
	if err := yaml.Unmarshal(bytes, &document); err != nil {
		return nil, errors.Wrapf(err, "cannot parse %s", path)
	}
	return document, nil
}

// parsePins reads pins written as "v=w"
func parsePins(pins []string) (map[string]any, error) {
	mapping := make(map[string]any, len(pins))
	for _, pin := range pins {
		from, to, ok := strings.Cut(pin, "=")
		if !ok {
			return nil, errors.Errorf("pin %q is not of the form v=w", pin)
		}
		if _, err := strconv.ParseInt(strings.TrimSpace(from), 10, 64); err != nil {
			return nil, errors.Wrapf(err, "invalid pinned node in %q", pin)
		}
		if _, err := strconv.ParseInt(strings.TrimSpace(to), 10, 64); err != nil {
			return nil, errors.Wrapf(err, "invalid pinned image in %q", pin)
		}
		mapping[strings.TrimSpace(from)] = strings.TrimSpace(to)
	}
	return mapping, nil
}
