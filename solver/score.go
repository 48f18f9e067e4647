package solver

// TotalPenalty evaluates P(A) for the (possibly partial) assignment
// currently recorded in s, per spec.md §4.4. The /2 divisions compensate
// for every edge contributing to both endpoints' running tallies.
func TotalPenalty(s *State, cfg Config) float64 {
	var conflictSum int
	var proximitySum float64
	unassignedRoomCount := 0

	for v := range s.Sections {
		t, r := s.Assignment(v)
		if t == NoTimeslot && r == NoRoom {
			unassignedRoomCount++
			continue
		}
		conflictSum += s.ConflictPenalty(v, t)
		proximitySum += s.ProximityPenalty(v, t)
		if r == NoRoom {
			unassignedRoomCount++
		}
	}

	return cfg.ConflictPenaltyWeight*float64(conflictSum)/2 +
		cfg.ProximityPenaltyWeight*proximitySum/2 +
		float64(cfg.UnassignedRoomPenalty*unassignedRoomCount)
}

// VertexPenalty returns the per-vertex total penalty
// (CONFLICT_WEIGHT·conflict_penalty + PROXIMITY_WEIGHT·proximity_penalty)
// of v at timeslot t, as used to rank vertices in the improver (§4.7). It
// does not include the unassigned-room penalty, which is per-solution, not
// per-timeslot.
func VertexPenalty(s *State, cfg Config, v, t int) float64 {
	if t == NoTimeslot {
		return 0
	}
	return cfg.ConflictPenaltyWeight*float64(s.ConflictPenalty(v, t)) +
		cfg.ProximityPenaltyWeight*s.ProximityPenalty(v, t)
}
