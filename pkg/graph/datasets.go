package graph

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrUnknownDataset is returned by Dataset for unsupported names
var ErrUnknownDataset = errors.New("graph: unknown dataset")

// karateEdges is Zachary's karate club network (34 members, 78 ties)
var karateEdges = [][2]int{
	{0, 1}, {0, 2}, {0, 3}, {0, 4}, {0, 5}, {0, 6}, {0, 7}, {0, 8}, {0, 10}, {0, 11},
	{0, 12}, {0, 13}, {0, 17}, {0, 19}, {0, 21}, {0, 31},
	{1, 2}, {1, 3}, {1, 7}, {1, 13}, {1, 17}, {1, 19}, {1, 21}, {1, 30},
	{2, 3}, {2, 7}, {2, 8}, {2, 9}, {2, 13}, {2, 27}, {2, 28}, {2, 32},
	{3, 7}, {3, 12}, {3, 13},
	{4, 6}, {4, 10},
	{5, 6}, {5, 10}, {5, 16},
	{6, 16},
	{8, 30}, {8, 32}, {8, 33},
	{9, 33},
	{13, 33},
	{14, 32}, {14, 33},
	{15, 32}, {15, 33},
	{18, 32}, {18, 33},
	{19, 33},
	{20, 32}, {20, 33},
	{22, 32}, {22, 33},
	{23, 25}, {23, 27}, {23, 29}, {23, 32}, {23, 33},
	{24, 25}, {24, 27}, {24, 31},
	{25, 31},
	{26, 29}, {26, 33},
	{27, 33},
	{28, 31}, {28, 33},
	{29, 32}, {29, 33},
	{30, 32}, {30, 33},
	{31, 32}, {31, 33},
	{32, 33},
}

// Dataset builds one of the built-in graphs:
//
//	karate    Zachary's karate club
//	star:N    hub "0" joined to leaves "1".."N"
//	clique:N  complete graph on "0".."N-1"
//	path:N    chain "0"-"1"-...-"N-1"
func Dataset(name string) (*Graph, error) {
	kind, arg, hasArg := strings.Cut(strings.ToLower(strings.TrimSpace(name)), ":")

	if kind == "karate" {
		return Karate(), nil
	}

	if !hasArg {
		return nil, fmt.Errorf("%w: %q", ErrUnknownDataset, name)
	}
	n, err := strconv.Atoi(arg)
	if err != nil || n < 1 {
		return nil, fmt.Errorf("%w: %q needs a positive size", ErrUnknownDataset, name)
	}

	switch kind {
	case "star":
		return Star(n), nil
	case "clique":
		return Clique(n), nil
	case "path":
		return Path(n), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDataset, name)
	}
}

// Karate returns Zachary's karate club graph with nodes "0".."33"
func Karate() *Graph {
	g := NewGraph()
	for i := 0; i < 34; i++ {
		g.AddNode(strconv.Itoa(i))
	}
	for _, e := range karateEdges {
		g.AddEdge(strconv.Itoa(e[0]), strconv.Itoa(e[1]))
	}
	return g
}

// Star returns a star with hub "0" and leaves "1".."leaves"
func Star(leaves int) *Graph {
	g := NewGraph()
	g.AddNode("0")
	for i := 1; i <= leaves; i++ {
		g.AddEdge("0", strconv.Itoa(i))
	}
	return g
}

// Clique returns the complete graph on n nodes
func Clique(n int) *Graph {
	g := NewGraph()
	for i := 0; i < n; i++ {
		g.AddNode(strconv.Itoa(i))
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			g.AddEdge(strconv.Itoa(i), strconv.Itoa(j))
		}
	}
	return g
}

// Path returns a chain of n nodes
func Path(n int) *Graph {
	g := NewGraph()
	g.AddNode("0")
	for i := 1; i < n; i++ {
		g.AddEdge(strconv.Itoa(i-1), strconv.Itoa(i))
	}
	return g
}
