package solver

import "sort"

// Improve runs the iterated local-search improver (spec.md §4.7) for
// cfg.ImproverPasses passes. Each pass considers every assigned vertex,
// most-penalized first, and reassigns it to a strictly lower-penalty
// acceptable timeslot if one with a free room exists.
func Improve(s *State, cfg Config) {
	for pass := 0; pass < cfg.ImproverPasses; pass++ {
		improvePass(s, cfg)
	}
}

func improvePass(s *State, cfg Config) {
	for _, v := range assignedByPenaltyDesc(s, cfg) {
		oldT, oldR := s.Assignment(v)
		current := VertexPenalty(s, cfg, v, oldT)

		for _, cand := range s.Sections[v].AcceptableTimeslots {
			if cand == oldT {
				continue
			}
			if s.UnassignedRoomCount(v, cand) == 0 {
				continue
			}

			if candidatePenalty := VertexPenalty(s, cfg, v, cand); candidatePenalty < current {
				s.Unassign(v, oldT, oldR)

				newR := NoRoom
				if rooms := s.UnassignedRooms(v, cand); len(rooms) > 0 {
					newR = rooms[0]
				}
				s.Assign(v, cand, newR)

				oldT, oldR = cand, newR
				current = VertexPenalty(s, cfg, v, oldT)
			}
		}
	}
}

// assignedByPenaltyDesc returns the indices of currently-assigned vertices
// sorted by current per-vertex penalty, descending; ties keep insertion
// order (spec.md §5's determinism requirement).
func assignedByPenaltyDesc(s *State, cfg Config) []int {
	var vertices []int
	for v := range s.Sections {
		if s.IsAssigned(v) {
			vertices = append(vertices, v)
		}
	}

	penalty := make([]float64, len(s.Sections))
	for _, v := range vertices {
		t, _ := s.Assignment(v)
		penalty[v] = VertexPenalty(s, cfg, v, t)
	}

	sort.SliceStable(vertices, func(i, j int) bool {
		return penalty[vertices[i]] > penalty[vertices[j]]
	})
	return vertices
}
