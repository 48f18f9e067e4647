package solver

import "fmt"

// BuildGraph constructs the adjacency lists of the conflict graph: one
// Instructor edge (overlap InstructorOverlapWeight) per pair of sections
// sharing a non-empty instructor token, merged with the explicit conflict
// list per spec.md §4.2. The result is indexed by section index (matching
// the order of the sections slice), not by Section.ID.
func BuildGraph(sections []Section, conflicts []ConflictInput, cfg Config) ([][]ConflictEdge, error) {
	n := len(sections)
	nameIndex := make(map[string]int, n)
	for i, s := range sections {
		if _, dup := nameIndex[s.Name]; dup {
			return nil, fmt.Errorf("duplicate section name %q", s.Name)
		}
		nameIndex[s.Name] = i
	}

	adj := make([][]ConflictEdge, n)

	for i := 0; i < n; i++ {
		if sections[i].Instructor == "" {
			continue
		}
		for j := i + 1; j < n; j++ {
			if sections[j].Instructor == sections[i].Instructor {
				addEdge(adj, i, j, Instructor, cfg.InstructorOverlapWeight)
			}
		}
	}

	for _, c := range conflicts {
		vi, ok := nameIndex[c.A]
		if !ok {
			return nil, fmt.Errorf("conflict references unknown section %q", c.A)
		}
		vj, ok := nameIndex[c.B]
		if !ok {
			return nil, fmt.Errorf("conflict references unknown section %q", c.B)
		}
		if vi == vj {
			return nil, fmt.Errorf("conflict references section %q against itself", c.A)
		}
		if c.Overlap < 0 {
			return nil, fmt.Errorf("conflict %q-%q: negative overlap factor %d", c.A, c.B, c.Overlap)
		}
		switch c.Severity {
		case Light, Medium, Heavy, Instructor:
		default:
			return nil, fmt.Errorf("conflict %q-%q: unknown severity %v", c.A, c.B, c.Severity)
		}
		mergeEdge(adj, vi, vj, c.Severity, c.Overlap)
	}

	return adj, nil
}

func findEdge(neighbors []ConflictEdge, other int) int {
	for i := range neighbors {
		if neighbors[i].Other == other {
			return i
		}
	}
	return -1
}

// addEdge inserts a fresh edge between v and u in both directions. Callers
// must ensure no edge between v and u already exists.
func addEdge(adj [][]ConflictEdge, v, u int, severity Severity, overlap int) {
	adj[v] = append(adj[v], ConflictEdge{Other: u, Severity: severity, Overlap: overlap})
	adj[u] = append(adj[u], ConflictEdge{Other: v, Severity: severity, Overlap: overlap})
}

// mergeEdge adds overlap to an existing v-u edge (keeping its severity), or
// creates a new one with the given severity if none exists yet.
func mergeEdge(adj [][]ConflictEdge, v, u int, severity Severity, overlap int) {
	if i := findEdge(adj[v], u); i >= 0 {
		adj[v][i].Overlap += overlap
		j := findEdge(adj[u], v)
		adj[u][j].Overlap += overlap
		return
	}
	addEdge(adj, v, u, severity, overlap)
}
