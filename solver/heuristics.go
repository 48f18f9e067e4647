package solver

import (
	"math"
	"strings"
)

// isLabSection reports whether a section's name marks it as a lab, the way
// BVoC singles out labs for a steeper no-room penalty (spec.md §4.4).
func isLabSection(name string) bool {
	return strings.Contains(strings.ToLower(name), "lab")
}

// BVoC computes the bad-value-of-colors urgency score for an uncolored
// vertex v, per spec.md §4.4.
func BVoC(s *State, cfg Config, v int) float64 {
	acceptable := s.Sections[v].AcceptableTimeslots
	var total float64

	if len(acceptable) == 1 {
		total += 10000
	}

	for _, t := range acceptable {
		conflict := s.ConflictPenalty(v, t)
		if conflict > cfg.ConflictPenaltyThreshold {
			total++
		} else {
			total += float64(conflict) / float64(cfg.ConflictPenaltyThreshold)
		}

		proximity := s.ProximityPenalty(v, t)
		if proximity > cfg.ProximityPenaltyThreshold {
			total++
		} else {
			total += proximity / cfg.ProximityPenaltyThreshold
		}

		k := s.UnassignedRoomCount(v, t)
		if k == 0 {
			if isLabSection(s.Sections[v].Name) {
				total += 5000
			} else {
				total += 10
			}
		} else {
			total += math.Pow(2, float64(-2*k))
		}
	}

	return total
}

// SelectVertex picks the uncolored vertex in candidates with the largest
// BVoC, ties broken by the order candidates is given (first one wins).
func SelectVertex(s *State, cfg Config, candidates []int) int {
	best := candidates[0]
	bestScore := BVoC(s, cfg, best)
	for _, v := range candidates[1:] {
		if score := BVoC(s, cfg, v); score > bestScore {
			best, bestScore = v, score
		}
	}
	return best
}

// GoodToBadSwitch counts how many neighbor slot-states would cross the
// conflict/proximity "bad" threshold, or lose their last remaining room, if
// v were placed at (t, r). spec.md §4.4 and §9 (the source's proximity
// variable escaping the inner timeslot loop is not replicated here: both
// checks are evaluated inside the same per-neighbor-timeslot iteration).
func GoodToBadSwitch(s *State, cfg Config, v, t, r int) int {
	count := 0

	for _, e := range s.Adjacency[v] {
		u := e.Other
		severityPenalty := float64(SeverityPenalty(e.Severity))
		overlapFactor := float64(e.Overlap)

		for _, t2 := range s.Sections[u].AcceptableTimeslots {
			if !s.Times.Overlap(t, t2) {
				continue
			}

			currentConflict := float64(s.ConflictPenalty(u, t2))
			if currentConflict <= float64(cfg.ConflictPenaltyThreshold) &&
				currentConflict+severityPenalty > float64(cfg.ConflictPenaltyThreshold) {
				count++
			}

			currentProximity := s.ProximityPenalty(u, t2)
			gap := s.Times.Gap(t, t2) * overlapFactor
			if currentProximity <= cfg.ProximityPenaltyThreshold &&
				currentProximity+gap > cfg.ProximityPenaltyThreshold {
				count++
			}
		}
	}

	if r != NoRoom {
		for w := range s.Sections {
			if w == v || !s.hasRoom[w][r] {
				continue
			}
			for _, t2 := range s.Sections[w].AcceptableTimeslots {
				if s.Times.Overlap(t, t2) && s.isOnlyRoom(w, t2, r) {
					count++
				}
			}
		}
	}

	return count
}

// isOnlyRoom reports whether r is the sole remaining unassigned room for
// vertex w at timeslot t.
func (s *State) isOnlyRoom(w, t, r int) bool {
	free := s.unassignedRooms[w][t]
	return free[r] && s.UnassignedRoomCount(w, t) == 1
}
