package solver

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

// PrintReport renders a room-by-timeslot grid of the solution, the
// spiritual descendant of the teacher's PrintSchedule: one row per room,
// one column per timeslot, section names in the cells they occupy.
// Unassigned sections are listed separately under a red count line.
func PrintReport(w io.Writer, problem Problem, sol Solution) {
	grid := make([][]string, len(problem.Rooms))
	for i := range grid {
		grid[i] = make([]string, len(problem.Timeslots))
	}

	var unassigned []string
	for i, a := range sol.Assignments {
		name := problem.Sections[i].Name
		if a.Timeslot == NoTimeslot || a.Room == NoRoom {
			unassigned = append(unassigned, name)
			continue
		}
		grid[a.Room][a.Timeslot] = name
	}

	header := color.New(color.FgCyan, color.Bold)
	for _, t := range problem.Timeslots {
		header.Fprintf(w, "%-28s", t.Name)
	}
	fmt.Fprintln(w)

	for r, room := range problem.Rooms {
		fmt.Fprintf(w, "%-10s", room.Token)
		for _, cell := range grid[r] {
			if cell == "" {
				cell = "."
			}
			fmt.Fprintf(w, "%-28s", cell)
		}
		fmt.Fprintln(w)
	}

	penaltyColor := color.New(color.FgGreen)
	if sol.Penalty > 0 {
		penaltyColor = color.New(color.FgYellow)
	}
	penaltyColor.Fprintf(w, "\ntotal penalty: %.2f\n", sol.Penalty)

	if len(unassigned) == 0 {
		color.New(color.FgGreen).Fprintln(w, "every section placed with a room")
		return
	}
	warn := color.New(color.FgRed, color.Bold)
	warn.Fprintf(w, "%d section(s) left without a room:\n", len(unassigned))
	for _, name := range unassigned {
		fmt.Fprintf(w, "  - %s\n", name)
	}
}
