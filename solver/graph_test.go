package solver

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuildGraphSynthesizesInstructorEdge(t *testing.T) {
	sections := []Section{
		{Name: "CS101-1", Instructor: "Myers", AcceptableTimeslots: []int{0}, AcceptableRooms: []int{0}},
		{Name: "CS101-2", Instructor: "Myers", AcceptableTimeslots: []int{0}, AcceptableRooms: []int{0}},
		{Name: "CS102-1", Instructor: "Ovens", AcceptableTimeslots: []int{0}, AcceptableRooms: []int{0}},
	}

	adj, err := BuildGraph(sections, nil, DefaultConfig())
	require.NoError(t, err)

	require.Len(t, adj[0], 1)
	require.Equal(t, 1, adj[0][0].Other)
	require.Equal(t, Instructor, adj[0][0].Severity)
	require.Equal(t, InstructorOverlapWeight, adj[0][0].Overlap)
	require.Empty(t, adj[2])
}

func TestBuildGraphIgnoresEmptyInstructorToken(t *testing.T) {
	sections := []Section{
		{Name: "A", Instructor: "", AcceptableTimeslots: []int{0}, AcceptableRooms: []int{0}},
		{Name: "B", Instructor: "", AcceptableTimeslots: []int{0}, AcceptableRooms: []int{0}},
	}
	adj, err := BuildGraph(sections, nil, DefaultConfig())
	require.NoError(t, err)
	require.Empty(t, adj[0])
	require.Empty(t, adj[1])
}

func TestBuildGraphMergesExplicitConflictIntoInstructorEdge(t *testing.T) {
	sections := []Section{
		{Name: "A", Instructor: "Myers", AcceptableTimeslots: []int{0}, AcceptableRooms: []int{0}},
		{Name: "B", Instructor: "Myers", AcceptableTimeslots: []int{0}, AcceptableRooms: []int{0}},
	}
	conflicts := []ConflictInput{{A: "A", B: "B", Severity: Medium, Overlap: 4}}

	adj, err := BuildGraph(sections, conflicts, DefaultConfig())
	require.NoError(t, err)

	require.Len(t, adj[0], 1)
	require.Equal(t, Instructor, adj[0][0].Severity, "severity stays Instructor even though the explicit conflict says Medium")
	require.Equal(t, InstructorOverlapWeight+4, adj[0][0].Overlap)
}

func TestBuildGraphCreatesNewEdgeWhenNoneExists(t *testing.T) {
	sections := []Section{
		{Name: "A", AcceptableTimeslots: []int{0}, AcceptableRooms: []int{0}},
		{Name: "B", AcceptableTimeslots: []int{0}, AcceptableRooms: []int{0}},
	}
	conflicts := []ConflictInput{{A: "A", B: "B", Severity: Heavy, Overlap: 6}}

	adj, err := BuildGraph(sections, conflicts, DefaultConfig())
	require.NoError(t, err)
	require.Len(t, adj[0], 1)
	require.Equal(t, Heavy, adj[0][0].Severity)
	require.Equal(t, 6, adj[0][0].Overlap)
	require.Len(t, adj[1], 1)
	require.Equal(t, 0, adj[1][0].Other)
}

func TestBuildGraphRejectsUnknownSection(t *testing.T) {
	sections := []Section{{Name: "A", AcceptableTimeslots: []int{0}, AcceptableRooms: []int{0}}}
	conflicts := []ConflictInput{{A: "A", B: "ghost", Severity: Light, Overlap: 1}}

	_, err := BuildGraph(sections, conflicts, DefaultConfig())
	require.Error(t, err)
}

func TestBuildGraphRejectsNegativeOverlap(t *testing.T) {
	sections := []Section{
		{Name: "A", AcceptableTimeslots: []int{0}, AcceptableRooms: []int{0}},
		{Name: "B", AcceptableTimeslots: []int{0}, AcceptableRooms: []int{0}},
	}
	conflicts := []ConflictInput{{A: "A", B: "B", Severity: Light, Overlap: -1}}

	_, err := BuildGraph(sections, conflicts, DefaultConfig())
	require.Error(t, err)
}
