package solver

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// wireProblem is the JSON shape described in SPEC_FULL.md E.4.
type wireProblem struct {
	Timeslots     []string       `json:"timeslots"`
	Rooms         []string       `json:"rooms"`
	Sections      []wireSection  `json:"sections"`
	Conflicts     []wireConflict `json:"conflicts"`
	UseBeamSearch bool           `json:"use_beam_search"`
}

type wireSection struct {
	Name                string   `json:"name"`
	Instructor          string   `json:"instructor"`
	AcceptableTimeslots []int    `json:"acceptable_timeslots"`
	AcceptableRooms     []string `json:"acceptable_rooms"`
}

type wireConflict struct {
	A        string `json:"a"`
	B        string `json:"b"`
	Severity string `json:"severity"`
	Overlap  int    `json:"overlap"`
}

// LoadProblem decodes a Problem from its JSON wire format, resolving room
// tokens to the Room ids Section.AcceptableRooms expects.
func LoadProblem(r io.Reader) (Problem, error) {
	var wp wireProblem
	if err := json.NewDecoder(r).Decode(&wp); err != nil {
		return Problem{}, fmt.Errorf("decoding problem: %w", err)
	}

	timeslots := make([]Timeslot, len(wp.Timeslots))
	for i, raw := range wp.Timeslots {
		t, err := ParseTimeslot(raw)
		if err != nil {
			return Problem{}, err
		}
		timeslots[i] = t
	}

	roomIndex := make(map[string]int, len(wp.Rooms))
	rooms := make([]Room, len(wp.Rooms))
	for i, token := range wp.Rooms {
		rooms[i] = Room{ID: i, Token: token}
		roomIndex[token] = i
	}

	sections := make([]Section, len(wp.Sections))
	for i, ws := range wp.Sections {
		acceptableRooms := make([]int, len(ws.AcceptableRooms))
		for j, token := range ws.AcceptableRooms {
			id, ok := roomIndex[token]
			if !ok {
				return Problem{}, fmt.Errorf("section %q: unknown room %q", ws.Name, token)
			}
			acceptableRooms[j] = id
		}
		sections[i] = Section{
			ID:                  i,
			Name:                ws.Name,
			Instructor:          ws.Instructor,
			AcceptableTimeslots: append([]int(nil), ws.AcceptableTimeslots...),
			AcceptableRooms:     acceptableRooms,
		}
	}

	conflicts := make([]ConflictInput, len(wp.Conflicts))
	for i, wc := range wp.Conflicts {
		sev, err := ParseSeverity(wc.Severity)
		if err != nil {
			return Problem{}, fmt.Errorf("conflict %d (%s-%s): %w", i, wc.A, wc.B, err)
		}
		conflicts[i] = ConflictInput{A: wc.A, B: wc.B, Severity: sev, Overlap: wc.Overlap}
	}

	return Problem{
		Timeslots:     timeslots,
		Rooms:         rooms,
		Sections:      sections,
		Conflicts:     conflicts,
		UseBeamSearch: wp.UseBeamSearch,
	}, nil
}

// LoadProblemFile opens path and decodes a Problem from it.
func LoadProblemFile(path string) (Problem, error) {
	f, err := os.Open(path)
	if err != nil {
		return Problem{}, fmt.Errorf("opening problem file: %w", err)
	}
	defer f.Close()
	return LoadProblem(f)
}

type wireAssignment struct {
	Section  string `json:"section"`
	Timeslot string `json:"timeslot,omitempty"`
	Room     string `json:"room,omitempty"`
}

type wireSolution struct {
	Penalty         float64          `json:"penalty"`
	UnassignedCount int              `json:"unassigned_count"`
	Assignments     []wireAssignment `json:"assignments"`
}

// WriteSolution renders sol as JSON, resolving ids back to the names/tokens
// used in the wire-format problem.
func WriteSolution(w io.Writer, problem Problem, sol Solution) error {
	out := make([]wireAssignment, len(sol.Assignments))
	for i, a := range sol.Assignments {
		wa := wireAssignment{Section: problem.Sections[i].Name}
		if a.Timeslot != NoTimeslot {
			wa.Timeslot = problem.Timeslots[a.Timeslot].Name
		}
		if a.Room != NoRoom {
			wa.Room = problem.Rooms[a.Room].Token
		}
		out[i] = wa
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(wireSolution{
		Penalty:         sol.Penalty,
		UnassignedCount: sol.UnassignedCount,
		Assignments:     out,
	})
}
