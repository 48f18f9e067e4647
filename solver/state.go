package solver

// State holds the incremental per-(vertex, candidate timeslot) bookkeeping
// described in spec.md §4.3: running conflict penalty, running proximity
// penalty, and the set of acceptable rooms not yet claimed by an
// already-assigned, overlapping section. It also tracks each vertex's
// current assignment so constructors and the improver don't need a
// separate solution map while mutating state.
//
// All slices are indexed by section index (position in Sections), not by
// Section.ID; NewState requires the two to already coincide.
type State struct {
	Sections []Section
	Adjacency [][]ConflictEdge
	Times     *TimeTable
	NumRooms  int

	hasRoom [][]bool // hasRoom[v][r]: is room r acceptable for vertex v

	conflictPenalty  [][]int       // [v][t]
	proximityPenalty [][]float64   // [v][t]
	unassignedRooms  [][][]bool    // [v][t][r]: true if r still free for v at t

	assignedTimeslot []int
	assignedRoom     []int
}

// NewState builds the zeroed slot-state for a problem whose graph and time
// table have already been constructed. sections[i].ID must equal i.
func NewState(sections []Section, adj [][]ConflictEdge, numRooms int, times *TimeTable) *State {
	n := len(sections)
	numTimeslots := len(times.overlap)

	s := &State{
		Sections:         sections,
		Adjacency:        adj,
		Times:            times,
		NumRooms:         numRooms,
		hasRoom:          make([][]bool, n),
		conflictPenalty:  make([][]int, n),
		proximityPenalty: make([][]float64, n),
		unassignedRooms:  make([][][]bool, n),
		assignedTimeslot: make([]int, n),
		assignedRoom:     make([]int, n),
	}

	for v := range sections {
		s.hasRoom[v] = make([]bool, numRooms)
		for _, r := range sections[v].AcceptableRooms {
			s.hasRoom[v][r] = true
		}

		s.conflictPenalty[v] = make([]int, numTimeslots)
		s.proximityPenalty[v] = make([]float64, numTimeslots)
		s.unassignedRooms[v] = make([][]bool, numTimeslots)
		for _, t := range sections[v].AcceptableTimeslots {
			free := make([]bool, numRooms)
			for _, r := range sections[v].AcceptableRooms {
				free[r] = true
			}
			s.unassignedRooms[v][t] = free
		}

		s.assignedTimeslot[v] = NoTimeslot
		s.assignedRoom[v] = NoRoom
	}

	return s
}

// Clone deep-copies the state; used by the beam constructor to snapshot a
// partial solution before branching (spec.md §5, §9).
func (s *State) Clone() *State {
	n := len(s.Sections)
	c := &State{
		Sections:         s.Sections,
		Adjacency:        s.Adjacency,
		Times:            s.Times,
		NumRooms:         s.NumRooms,
		hasRoom:          s.hasRoom, // read-only after construction, safe to share
		conflictPenalty:  make([][]int, n),
		proximityPenalty: make([][]float64, n),
		unassignedRooms:  make([][][]bool, n),
		assignedTimeslot: append([]int(nil), s.assignedTimeslot...),
		assignedRoom:     append([]int(nil), s.assignedRoom...),
	}
	for v := 0; v < n; v++ {
		c.conflictPenalty[v] = append([]int(nil), s.conflictPenalty[v]...)
		c.proximityPenalty[v] = append([]float64(nil), s.proximityPenalty[v]...)

		c.unassignedRooms[v] = make([][]bool, len(s.unassignedRooms[v]))
		for t, free := range s.unassignedRooms[v] {
			if free == nil {
				continue
			}
			c.unassignedRooms[v][t] = append([]bool(nil), free...)
		}
	}
	return c
}

// ConflictPenalty returns conflict_penalty(v,t).
func (s *State) ConflictPenalty(v, t int) int { return s.conflictPenalty[v][t] }

// ProximityPenalty returns proximity_penalty(v,t).
func (s *State) ProximityPenalty(v, t int) float64 { return s.proximityPenalty[v][t] }

// UnassignedRoomCount returns |unassigned_rooms(v,t)|.
func (s *State) UnassignedRoomCount(v, t int) int {
	free := s.unassignedRooms[v][t]
	n := 0
	for _, ok := range free {
		if ok {
			n++
		}
	}
	return n
}

// UnassignedRooms returns the acceptable rooms of v still free at t, in the
// order they appear in v's acceptable-room list.
func (s *State) UnassignedRooms(v, t int) []int {
	free := s.unassignedRooms[v][t]
	var out []int
	for _, r := range s.Sections[v].AcceptableRooms {
		if free[r] {
			out = append(out, r)
		}
	}
	return out
}

// IsAssigned reports whether v currently has a recorded assignment.
func (s *State) IsAssigned(v int) bool { return s.assignedTimeslot[v] != NoTimeslot || s.assignedRoom[v] != NoRoom }

// Assignment returns v's current (timeslot, room), sentinels if unassigned.
func (s *State) Assignment(v int) (timeslot, room int) {
	return s.assignedTimeslot[v], s.assignedRoom[v]
}

// Assign records v's placement at (t, r) and propagates the effects of that
// placement onto every neighbor's and every room-sharer's slot-state
// (spec.md §4.3). It is the caller's responsibility to have chosen (t, r)
// via the color/room selector, including the sentinel (NoTimeslot, NoRoom).
func (s *State) Assign(v, t, r int) {
	s.update(v, t, r, 1)
	s.assignedTimeslot[v] = t
	s.assignedRoom[v] = r
}

// Unassign is the exact inverse of Assign(v, t, r): it must be called with
// the same (t, r) that was last assigned to v.
func (s *State) Unassign(v, t, r int) {
	s.update(v, t, r, -1)
	s.assignedTimeslot[v] = NoTimeslot
	s.assignedRoom[v] = NoRoom
}

// update applies (sign=+1) or reverses (sign=-1) the slot-state effects of
// placing v at (t, r).
func (s *State) update(v, t, r, sign int) {
	if t == NoTimeslot && r == NoRoom {
		return
	}

	for _, e := range s.Adjacency[v] {
		u := e.Other
		penalty := SeverityPenalty(e.Severity) * sign
		overlapFactor := float64(e.Overlap * sign)
		for _, t2 := range s.Sections[u].AcceptableTimeslots {
			if s.Times.Overlap(t, t2) {
				s.conflictPenalty[u][t2] += penalty
			}
			s.proximityPenalty[u][t2] += s.Times.Gap(t, t2) * overlapFactor
		}
	}

	if r == NoRoom {
		return
	}
	free := sign < 0
	for w := range s.Sections {
		if w == v || !s.hasRoom[w][r] {
			continue
		}
		for _, t2 := range s.Sections[w].AcceptableTimeslots {
			if !s.Times.Overlap(t, t2) {
				continue
			}
			// On release, keep r taken if another placed section still
			// holds it at a timeslot overlapping t2.
			held := false
			for x := range s.Sections {
				if free && x != v && x != w && s.assignedRoom[x] == r && s.Times.Overlap(s.assignedTimeslot[x], t2) {
					held = true
					break
				}
			}
			if !held {
				s.unassignedRooms[w][t2][r] = free
			}
		}
	}
}
