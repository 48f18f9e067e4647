package solver

// OnePass runs the greedy one-pass constructor (spec.md §4.5): repeatedly
// select the uncolored vertex with the largest BVoC, compute its best
// (timeslot, room) via the color/room selector, and assign it. Terminates
// after exactly len(s.Sections) iterations.
func OnePass(s *State, cfg Config) {
	uncolored := make([]int, len(s.Sections))
	for i := range uncolored {
		uncolored[i] = i
	}

	for len(uncolored) > 0 {
		v := SelectVertex(s, cfg, uncolored)
		t, r := SelectColorAndRoom(s, cfg, v)
		s.Assign(v, t, r)
		uncolored = removeVertex(uncolored, v)
	}
}

func removeVertex(vertices []int, v int) []int {
	for i, u := range vertices {
		if u == v {
			return append(vertices[:i], vertices[i+1:]...)
		}
	}
	return vertices
}
