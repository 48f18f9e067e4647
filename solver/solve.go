package solver

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
)

// Fatal input errors rejected before the solver runs (spec.md §4.8, §7).
var (
	ErrEmptyAcceptableTimeslots = errors.New("section has an empty acceptable-timeslot set")
	ErrEmptyAcceptableRooms     = errors.New("section has an empty acceptable-room set")
	ErrUnknownTimeslot          = errors.New("section references an unknown timeslot id")
	ErrUnknownRoom              = errors.New("section references an unknown room id")
)

func validateProblem(sections []Section, numTimeslots, numRooms int) error {
	for _, s := range sections {
		if len(s.AcceptableTimeslots) == 0 {
			return fmt.Errorf("section %q: %w", s.Name, ErrEmptyAcceptableTimeslots)
		}
		if len(s.AcceptableRooms) == 0 {
			return fmt.Errorf("section %q: %w", s.Name, ErrEmptyAcceptableRooms)
		}
		for _, t := range s.AcceptableTimeslots {
			if t < 0 || t >= numTimeslots {
				return fmt.Errorf("section %q: %w: %d", s.Name, ErrUnknownTimeslot, t)
			}
		}
		for _, r := range s.AcceptableRooms {
			if r < 0 || r >= numRooms {
				return fmt.Errorf("section %q: %w: %d", s.Name, ErrUnknownRoom, r)
			}
		}
	}
	return nil
}

// Solve is the library's single end-to-end entry point (spec.md §6):
// initialize slot-state, run the configured constructor, run the improver,
// and return the total assignment with its penalty. It logs through the
// standard logger; use SolveWithLogger to inject one (useful in tests).
func Solve(problem Problem, cfg Config) (Solution, error) {
	return SolveWithLogger(problem, cfg, log.Default())
}

// SolveWithLogger is Solve with an explicit *log.Logger, matching the
// teacher's log.SetFlags(log.Ltime)-style terse progress lines.
func SolveWithLogger(problem Problem, cfg Config, logger *log.Logger) (Solution, error) {
	runID := uuid.New().String()
	start := time.Now()

	sections := make([]Section, len(problem.Sections))
	copy(sections, problem.Sections)
	for i := range sections {
		sections[i].ID = i
	}

	if err := validateProblem(sections, len(problem.Timeslots), len(problem.Rooms)); err != nil {
		recordSolve(problem.UseBeamSearch, time.Since(start).Seconds(), Solution{}, err)
		return Solution{}, err
	}

	times, err := BuildTimeTable(problem.Timeslots, cfg)
	if err != nil {
		recordSolve(problem.UseBeamSearch, time.Since(start).Seconds(), Solution{}, err)
		return Solution{}, err
	}

	adj, err := BuildGraph(sections, problem.Conflicts, cfg)
	if err != nil {
		recordSolve(problem.UseBeamSearch, time.Since(start).Seconds(), Solution{}, err)
		return Solution{}, err
	}

	state := NewState(sections, adj, len(problem.Rooms), times)

	logger.Printf("run=%s solve starting: sections=%d timeslots=%d rooms=%d beam=%v",
		runID, len(sections), len(problem.Timeslots), len(problem.Rooms), problem.UseBeamSearch)

	if problem.UseBeamSearch {
		state = BeamSearch(state, cfg)
	} else {
		OnePass(state, cfg)
	}
	Improve(state, cfg)

	sol := extractSolution(state, cfg)
	logger.Printf("run=%s solve finished: penalty=%.2f unassigned=%d", runID, sol.Penalty, sol.UnassignedCount)

	recordSolve(problem.UseBeamSearch, time.Since(start).Seconds(), sol, nil)
	return sol, nil
}

func extractSolution(s *State, cfg Config) Solution {
	assignments := make([]Assignment, len(s.Sections))
	unassigned := 0
	for v := range s.Sections {
		t, r := s.Assignment(v)
		assignments[v] = Assignment{Timeslot: t, Room: r}
		if r == NoRoom {
			unassigned++
		}
	}
	return Solution{
		Assignments:     assignments,
		Penalty:         TotalPenalty(s, cfg),
		UnassignedCount: unassigned,
	}
}
