package graph

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// LoadEdgeList reads an undirected graph from an edge list file.
// See ReadEdgeList for the accepted formats.
func LoadEdgeList(path string) (*Graph, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open edge list %s: %w", path, err)
	}
	defer file.Close()

	g, err := ReadEdgeList(file)
	if err != nil {
		return nil, fmt.Errorf("could not read edge list %s: %w", path, err)
	}
	return g, nil
}

// ReadEdgeList parses one edge per line. Fields are separated by commas or
// whitespace; extra fields (weights, timestamps) are ignored.
// Blank lines, lines starting with '#' and a "node_1,node_2" style header are
// skipped, as are rows with fewer than two fields.
func ReadEdgeList(r io.Reader) (*Graph, error) {
	g := NewGraph()
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := splitFields(line)
		if len(parts) < 2 {
			continue
		}

		if lineNum == 1 && isHeader(parts[0], parts[1]) {
			continue
		}

		if err := g.AddEdge(parts[0], parts[1]); err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNum, err)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return g, nil
}

func splitFields(line string) []string {
	if strings.Contains(line, ",") {
		raw := strings.Split(line, ",")
		parts := make([]string, 0, len(raw))
		for _, p := range raw {
			if p = strings.TrimSpace(p); p != "" {
				parts = append(parts, p)
			}
		}
		return parts
	}
	return strings.Fields(line)
}

func isHeader(a, b string) bool {
	a, b = strings.ToLower(a), strings.ToLower(b)
	return strings.HasPrefix(a, "node") || strings.HasPrefix(a, "source") || strings.HasPrefix(a, "from") ||
		strings.HasPrefix(b, "node") || strings.HasPrefix(b, "target") || strings.HasPrefix(b, "to")
}
