package solver

import (
	"fmt"

	gophersat "github.com/crillab/gophersat/solver"
)

// CertifiedImprovable reports a connected component of Instructor/Heavy
// edges that a heuristic solution leaves with nonzero conflict penalty even
// though an exact zero-conflict assignment exists for that component. It is
// a diagnostic only (SPEC_FULL.md E.3); Certify never mutates the solution.
type CertifiedImprovable struct {
	Sections               []string
	ComponentSize          int
	CurrentConflictPenalty int
}

// Certify re-derives the problem's graph and time model, partitions the
// Instructor/Heavy subgraph into connected components, and SAT-solves each
// component small enough to encode (<= cfg.CertifyMaxComponentSize) for a
// zero-conflict timeslot assignment. Components already at zero conflict
// penalty, or too large to encode, are skipped.
func Certify(problem Problem, solution Solution, cfg Config) ([]CertifiedImprovable, error) {
	sections := make([]Section, len(problem.Sections))
	copy(sections, problem.Sections)
	for i := range sections {
		sections[i].ID = i
	}

	if err := validateProblem(sections, len(problem.Timeslots), len(problem.Rooms)); err != nil {
		return nil, err
	}
	times, err := BuildTimeTable(problem.Timeslots, cfg)
	if err != nil {
		return nil, err
	}
	adj, err := BuildGraph(sections, problem.Conflicts, cfg)
	if err != nil {
		return nil, err
	}
	if len(solution.Assignments) != len(sections) {
		return nil, fmt.Errorf("certify: solution has %d assignments for %d sections", len(solution.Assignments), len(sections))
	}

	var findings []CertifiedImprovable
	for _, comp := range heavyComponents(adj) {
		if len(comp) < 2 || len(comp) > cfg.CertifyMaxComponentSize {
			continue
		}

		current := currentConflictPenalty(comp, adj, times, solution)
		if current == 0 {
			continue
		}

		feasible, err := componentHasZeroConflictAssignment(comp, sections, adj, times)
		if err != nil {
			return nil, err
		}
		if !feasible {
			continue
		}

		names := make([]string, len(comp))
		for i, v := range comp {
			names[i] = sections[v].Name
		}
		findings = append(findings, CertifiedImprovable{
			Sections:               names,
			ComponentSize:          len(comp),
			CurrentConflictPenalty: current,
		})
	}
	return findings, nil
}

// heavyComponents partitions vertices into connected components of the
// subgraph restricted to Instructor/Heavy edges; vertices with no such
// edges form singleton components.
func heavyComponents(adj [][]ConflictEdge) [][]int {
	n := len(adj)
	visited := make([]bool, n)
	var comps [][]int

	for start := 0; start < n; start++ {
		if visited[start] {
			continue
		}
		var comp []int
		queue := []int{start}
		visited[start] = true
		for len(queue) > 0 {
			v := queue[0]
			queue = queue[1:]
			comp = append(comp, v)
			for _, e := range adj[v] {
				if (e.Severity == Instructor || e.Severity == Heavy) && !visited[e.Other] {
					visited[e.Other] = true
					queue = append(queue, e.Other)
				}
			}
		}
		comps = append(comps, comp)
	}
	return comps
}

func currentConflictPenalty(comp []int, adj [][]ConflictEdge, times *TimeTable, solution Solution) int {
	inComp := make(map[int]bool, len(comp))
	for _, v := range comp {
		inComp[v] = true
	}

	total := 0
	for _, v := range comp {
		tv := solution.Assignments[v].Timeslot
		for _, e := range adj[v] {
			u := e.Other
			if u <= v || !inComp[u] {
				continue
			}
			if e.Severity != Instructor && e.Severity != Heavy {
				continue
			}
			tu := solution.Assignments[u].Timeslot
			if times.Overlap(tv, tu) {
				total += SeverityPenalty(e.Severity)
			}
		}
	}
	return total
}

// componentHasZeroConflictAssignment SAT-encodes "each vertex in comp picks
// exactly one acceptable timeslot, no two Instructor/Heavy-linked vertices
// pick overlapping timeslots" and asks gophersat whether it is satisfiable.
func componentHasZeroConflictAssignment(comp []int, sections []Section, adj [][]ConflictEdge, times *TimeTable) (bool, error) {
	varID := make(map[int]map[int]int, len(comp))
	next := 1
	for _, v := range comp {
		varID[v] = make(map[int]int, len(sections[v].AcceptableTimeslots))
		for _, t := range sections[v].AcceptableTimeslots {
			varID[v][t] = next
			next++
		}
	}

	var clauses [][]int
	for _, v := range comp {
		ts := sections[v].AcceptableTimeslots

		atLeastOne := make([]int, len(ts))
		for i, t := range ts {
			atLeastOne[i] = varID[v][t]
		}
		clauses = append(clauses, atLeastOne)

		for i := 0; i < len(ts); i++ {
			for j := i + 1; j < len(ts); j++ {
				clauses = append(clauses, []int{-varID[v][ts[i]], -varID[v][ts[j]]})
			}
		}
	}

	inComp := make(map[int]bool, len(comp))
	for _, v := range comp {
		inComp[v] = true
	}
	for _, v := range comp {
		for _, e := range adj[v] {
			u := e.Other
			if u <= v || !inComp[u] {
				continue
			}
			if e.Severity != Instructor && e.Severity != Heavy {
				continue
			}
			for _, tv := range sections[v].AcceptableTimeslots {
				for _, tu := range sections[u].AcceptableTimeslots {
					if times.Overlap(tv, tu) {
						clauses = append(clauses, []int{-varID[v][tv], -varID[u][tu]})
					}
				}
			}
		}
	}

	problem := gophersat.ParseSlice(clauses)
	s := gophersat.New(problem)
	status := s.Solve()
	return status == gophersat.Sat, nil
}
