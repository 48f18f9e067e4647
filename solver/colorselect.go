package solver

// SelectColorAndRoom picks the (timeslot, room) pair for vertex v that
// minimizes LC_C·conflict + LC_X·proximity + LC_S·switch, per spec.md
// §4.4. Ties are broken by iteration order (acceptable timeslots in the
// order given, then acceptable rooms in the order given) via a strict
// less-than comparison, so the first-encountered minimum wins. Returns
// (NoTimeslot, NoRoom) if every acceptable timeslot has no free room.
func SelectColorAndRoom(s *State, cfg Config, v int) (int, int) {
	bestT, bestR := NoTimeslot, NoRoom
	bestScore := 0.0
	found := false

	for _, t := range s.Sections[v].AcceptableTimeslots {
		rooms := s.UnassignedRooms(v, t)
		if len(rooms) == 0 {
			continue
		}

		conflict := float64(s.ConflictPenalty(v, t))
		proximity := s.ProximityPenalty(v, t)

		for _, r := range rooms {
			switchCount := float64(GoodToBadSwitch(s, cfg, v, t, r))
			score := cfg.LCConflict*conflict + cfg.LCProximity*proximity + cfg.LCSwitch*switchCount

			if !found || score < bestScore {
				bestT, bestR, bestScore, found = t, r, score, true
			}
		}
	}

	return bestT, bestR
}

// TopColorChoices returns up to n of v's best-scoring (timeslot, room)
// pairs, one room per timeslot (the cheapest room at that timeslot), sorted
// best-first. Used by the beam constructor's expansion step (spec.md
// §4.6: "top NUM_COLORS_PER_VERTEX color choices ... restricted to the
// best room per timeslot").
func TopColorChoices(s *State, cfg Config, v int, n int) []colorChoice {
	var choices []colorChoice

	for _, t := range s.Sections[v].AcceptableTimeslots {
		rooms := s.UnassignedRooms(v, t)
		if len(rooms) == 0 {
			continue
		}

		conflict := float64(s.ConflictPenalty(v, t))
		proximity := s.ProximityPenalty(v, t)

		bestR := rooms[0]
		bestScore := 0.0
		found := false
		for _, r := range rooms {
			switchCount := float64(GoodToBadSwitch(s, cfg, v, t, r))
			score := cfg.LCConflict*conflict + cfg.LCProximity*proximity + cfg.LCSwitch*switchCount
			if !found || score < bestScore {
				bestR, bestScore, found = r, score, true
			}
		}

		choices = append(choices, colorChoice{Timeslot: t, Room: bestR, Score: bestScore})
	}

	sortChoices(choices)
	if len(choices) > n {
		choices = choices[:n]
	}
	return choices
}

type colorChoice struct {
	Timeslot int
	Room     int
	Score    float64
}

func sortChoices(choices []colorChoice) {
	for i := 1; i < len(choices); i++ {
		for j := i; j > 0 && choices[j].Score < choices[j-1].Score; j-- {
			choices[j], choices[j-1] = choices[j-1], choices[j]
		}
	}
}
