package solver

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// scenarioTimeslots returns the three standard timeslots used throughout
// spec.md §8's end-to-end scenarios: id 0 = MWF 09:00-09:50, id 1 = MWF
// 10:00-10:50, id 2 = TR 09:00-10:15.
func scenarioTimeslots(t *testing.T) []Timeslot {
	t.Helper()
	raws := []string{
		"0 MWF 09:00 am - 09:50 am",
		"1 MWF 10:00 am - 10:50 am",
		"2 TR 09:00 am - 10:15 am",
	}
	slots := make([]Timeslot, len(raws))
	for i, raw := range raws {
		slots[i] = mustParse(t, raw)
	}
	return slots
}

// S1: two unrelated sections sharing a room but no edge must land on
// different timeslots at zero penalty.
func TestScenarioS1NoConflictTwoVertices(t *testing.T) {
	problem := Problem{
		Timeslots: scenarioTimeslots(t),
		Rooms:     []Room{{ID: 0, Token: "R1"}},
		Sections: []Section{
			{Name: "v1", AcceptableTimeslots: []int{0, 1}, AcceptableRooms: []int{0}},
			{Name: "v2", AcceptableTimeslots: []int{0, 1}, AcceptableRooms: []int{0}},
		},
	}

	sol, err := Solve(problem, DefaultConfig())
	require.NoError(t, err)
	require.Equal(t, 0.0, sol.Penalty)
	require.Equal(t, 0, sol.UnassignedCount)
	require.NotEqual(t, sol.Assignments[0].Timeslot, sol.Assignments[1].Timeslot)
}

// S2: same as S1 but with a Heavy conflict; still resolved at zero penalty
// by landing on different timeslots.
func TestScenarioS2HeavyConflictStillResolved(t *testing.T) {
	problem := Problem{
		Timeslots: scenarioTimeslots(t),
		Rooms:     []Room{{ID: 0, Token: "R1"}},
		Sections: []Section{
			{Name: "v1", AcceptableTimeslots: []int{0, 1}, AcceptableRooms: []int{0}},
			{Name: "v2", AcceptableTimeslots: []int{0, 1}, AcceptableRooms: []int{0}},
		},
		Conflicts: []ConflictInput{{A: "v1", B: "v2", Severity: Heavy, Overlap: 6}},
	}

	sol, err := Solve(problem, DefaultConfig())
	require.NoError(t, err)
	require.Equal(t, 0.0, sol.Penalty)
	require.NotEqual(t, sol.Assignments[0].Timeslot, sol.Assignments[1].Timeslot)
}

// S3: two sections sharing an instructor with a single common timeslot
// force an Instructor conflict: 25*400 = 10000.
func TestScenarioS3SharedInstructorSingleTimeslot(t *testing.T) {
	problem := Problem{
		Timeslots: scenarioTimeslots(t),
		Rooms:     []Room{{ID: 0, Token: "R1"}},
		Sections: []Section{
			{Name: "v1", Instructor: "A", AcceptableTimeslots: []int{0}, AcceptableRooms: []int{0}},
			{Name: "v2", Instructor: "A", AcceptableTimeslots: []int{0}, AcceptableRooms: []int{0}},
		},
	}

	sol, err := Solve(problem, DefaultConfig())
	require.NoError(t, err)
	require.Equal(t, 10000.0, sol.Penalty)
	require.Equal(t, sol.Assignments[0].Timeslot, sol.Assignments[1].Timeslot)
}

// S4: three sections, two timeslots, one room, pairwise Medium conflicts.
// Pigeonhole over the single shared room and two non-overlapping timeslots
// guarantees some section pays a nonzero penalty, either a Medium conflict
// contribution or the unassigned-room charge (spec.md §8 describes one
// concrete resolution; the greedy heuristic's own tie-breaking can land on
// an equally valid alternative, so this asserts the invariant rather than
// one specific execution path).
func TestScenarioS4ThreeVerticesPairwiseMediumConflict(t *testing.T) {
	problem := Problem{
		Timeslots: scenarioTimeslots(t),
		Rooms:     []Room{{ID: 0, Token: "R1"}},
		Sections: []Section{
			{Name: "v1", AcceptableTimeslots: []int{0, 1}, AcceptableRooms: []int{0}},
			{Name: "v2", AcceptableTimeslots: []int{0, 1}, AcceptableRooms: []int{0}},
			{Name: "v3", AcceptableTimeslots: []int{0, 1}, AcceptableRooms: []int{0}},
		},
		Conflicts: []ConflictInput{
			{A: "v1", B: "v2", Severity: Medium, Overlap: 1},
			{A: "v1", B: "v3", Severity: Medium, Overlap: 1},
			{A: "v2", B: "v3", Severity: Medium, Overlap: 1},
		},
	}

	sol, err := Solve(problem, DefaultConfig())
	require.NoError(t, err)
	require.Len(t, sol.Assignments, 3)
	require.Greater(t, sol.Penalty, 0.0, "three sections cannot fit conflict-free into one room across two timeslots")
	require.LessOrEqual(t, sol.UnassignedCount, 1, "at most one section should be left without a room")
}

// S5: first section claims the only room at the only shared timeslot; the
// second is left at (none, none) at the fixed 1000 penalty.
func TestScenarioS5NoFeasibleRoomForSecondVertex(t *testing.T) {
	problem := Problem{
		Timeslots: scenarioTimeslots(t),
		Rooms:     []Room{{ID: 0, Token: "R1"}},
		Sections: []Section{
			{Name: "v1", AcceptableTimeslots: []int{0}, AcceptableRooms: []int{0}},
			{Name: "v2", AcceptableTimeslots: []int{0}, AcceptableRooms: []int{0}},
		},
	}

	sol, err := Solve(problem, DefaultConfig())
	require.NoError(t, err)
	require.Equal(t, 1000.0, sol.Penalty)
	require.Equal(t, 1, sol.UnassignedCount)

	placed, unplaced := sol.Assignments[0], sol.Assignments[1]
	if placed.Room == NoRoom {
		placed, unplaced = unplaced, placed
	}
	require.Equal(t, 0, placed.Timeslot)
	require.Equal(t, 0, placed.Room)
	require.Equal(t, NoRoom, unplaced.Room)
}

// S6: Heavy edge but disjoint days (MWF vs TR): no overlap, no shared-day
// gap, so penalty is zero.
func TestScenarioS6DisjointDaysNoProximity(t *testing.T) {
	problem := Problem{
		Timeslots: scenarioTimeslots(t),
		Rooms:     []Room{{ID: 0, Token: "R1"}},
		Sections: []Section{
			{Name: "v1", AcceptableTimeslots: []int{0, 2}, AcceptableRooms: []int{0}},
			{Name: "v2", AcceptableTimeslots: []int{0, 2}, AcceptableRooms: []int{0}},
		},
		Conflicts: []ConflictInput{{A: "v1", B: "v2", Severity: Heavy, Overlap: 4}},
	}

	sol, err := Solve(problem, DefaultConfig())
	require.NoError(t, err)
	require.Equal(t, 0.0, sol.Penalty)
}

func TestSolveRejectsEmptyAcceptableTimeslots(t *testing.T) {
	problem := Problem{
		Timeslots: scenarioTimeslots(t),
		Rooms:     []Room{{ID: 0, Token: "R1"}},
		Sections:  []Section{{Name: "v1", AcceptableRooms: []int{0}}},
	}
	_, err := Solve(problem, DefaultConfig())
	require.ErrorIs(t, err, ErrEmptyAcceptableTimeslots)
}

func TestSolveRejectsEmptyAcceptableRooms(t *testing.T) {
	problem := Problem{
		Timeslots: scenarioTimeslots(t),
		Rooms:     []Room{{ID: 0, Token: "R1"}},
		Sections:  []Section{{Name: "v1", AcceptableTimeslots: []int{0}}},
	}
	_, err := Solve(problem, DefaultConfig())
	require.ErrorIs(t, err, ErrEmptyAcceptableRooms)
}

func TestSolveRejectsUnknownTimeslotReference(t *testing.T) {
	problem := Problem{
		Timeslots: scenarioTimeslots(t),
		Rooms:     []Room{{ID: 0, Token: "R1"}},
		Sections:  []Section{{Name: "v1", AcceptableTimeslots: []int{99}, AcceptableRooms: []int{0}}},
	}
	_, err := Solve(problem, DefaultConfig())
	require.ErrorIs(t, err, ErrUnknownTimeslot)
}

func TestSolveTotality(t *testing.T) {
	problem := Problem{
		Timeslots: scenarioTimeslots(t),
		Rooms:     []Room{{ID: 0, Token: "R1"}, {ID: 1, Token: "R2"}},
		Sections: []Section{
			{Name: "v1", AcceptableTimeslots: []int{0, 1, 2}, AcceptableRooms: []int{0, 1}},
			{Name: "v2", AcceptableTimeslots: []int{0, 1, 2}, AcceptableRooms: []int{0, 1}},
			{Name: "v3", AcceptableTimeslots: []int{0, 1, 2}, AcceptableRooms: []int{0, 1}},
		},
	}
	sol, err := Solve(problem, DefaultConfig())
	require.NoError(t, err)
	require.Len(t, sol.Assignments, 3)
}

func TestSolveWithBeamSearchProducesTotalAssignment(t *testing.T) {
	problem := Problem{
		Timeslots: scenarioTimeslots(t),
		Rooms:     []Room{{ID: 0, Token: "R1"}},
		Sections: []Section{
			{Name: "v1", AcceptableTimeslots: []int{0, 1}, AcceptableRooms: []int{0}},
			{Name: "v2", AcceptableTimeslots: []int{0, 1}, AcceptableRooms: []int{0}},
		},
		UseBeamSearch: true,
	}
	sol, err := Solve(problem, DefaultConfig())
	require.NoError(t, err)
	require.Len(t, sol.Assignments, 2)
	require.Equal(t, 0.0, sol.Penalty)
}
