package solver

import (
	"fmt"
	"strconv"
	"strings"
)

// MaxIgnoredGapWidth is the per-component gap (in hours) at or below which
// a gap contributes nothing to the proximity penalty.
const MaxIgnoredGapWidth = 2.0

var dayRunes = map[rune]Weekdays{
	'M': Monday,
	'T': Tuesday,
	'W': Wednesday,
	'R': Thursday,
	'F': Friday,
}

// ParseTimeslot parses one timeslot line of the form
//
//	<id> <DAYS> <start> am|pm - <end> am|pm [; <DAYS> <start> am|pm - <end> am|pm]*
//
// e.g. "0 MWF 09:00 am - 09:50 am" or a compound slot meeting at different
// times on different days, components separated by " ; ".
func ParseTimeslot(raw string) (Timeslot, error) {
	fields := strings.Fields(raw)
	if len(fields) < 7 {
		return Timeslot{}, fmt.Errorf("timeslot %q: expected \"id DAYS start am|pm - end am|pm\"", raw)
	}
	id, err := strconv.Atoi(fields[0])
	if err != nil {
		return Timeslot{}, fmt.Errorf("timeslot %q: bad id: %w", raw, err)
	}

	rest := strings.Join(fields[1:], " ")
	parts := strings.Split(rest, ";")

	var meetings []MeetingInterval
	for _, part := range parts {
		m, err := parseMeetingComponent(strings.TrimSpace(part))
		if err != nil {
			return Timeslot{}, fmt.Errorf("timeslot %q: %w", raw, err)
		}
		meetings = append(meetings, m)
	}

	return Timeslot{ID: id, Name: raw, Meetings: meetings}, nil
}

func parseMeetingComponent(s string) (MeetingInterval, error) {
	fields := strings.Fields(s)
	if len(fields) != 6 || fields[3] != "-" {
		return MeetingInterval{}, fmt.Errorf("malformed meeting component %q", s)
	}

	days, err := parseDays(fields[0])
	if err != nil {
		return MeetingInterval{}, err
	}

	start, err := convertTime(fields[1], fields[2])
	if err != nil {
		return MeetingInterval{}, fmt.Errorf("start time: %w", err)
	}
	end, err := convertTime(fields[4], fields[5])
	if err != nil {
		return MeetingInterval{}, fmt.Errorf("end time: %w", err)
	}
	if end <= start {
		return MeetingInterval{}, fmt.Errorf("meeting component %q: end must be after start", s)
	}

	return MeetingInterval{Days: days, Start: start, End: end}, nil
}

func parseDays(s string) (Weekdays, error) {
	var days Weekdays
	for _, r := range s {
		d, ok := dayRunes[r]
		if !ok {
			return 0, fmt.Errorf("unrecognized weekday %q in %q", string(r), s)
		}
		days |= d
	}
	if days == 0 {
		return 0, fmt.Errorf("empty weekday set in %q", s)
	}
	return days, nil
}

// convertTime turns "09:00" "am" into the decimal hour 9.0, and "01:15" "pm"
// into 13.25.
func convertTime(hm, meridiem string) (float64, error) {
	parts := strings.SplitN(hm, ":", 2)
	if len(parts) != 2 {
		return 0, fmt.Errorf("bad time %q", hm)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("bad hour in %q: %w", hm, err)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("bad minute in %q: %w", hm, err)
	}

	switch strings.ToLower(meridiem) {
	case "pm":
		if hour < 12 {
			hour += 12
		}
	case "am":
		if hour == 12 {
			hour = 0
		}
	default:
		return 0, fmt.Errorf("expected am/pm, found %q", meridiem)
	}

	return float64(hour) + float64(minute)/60.0, nil
}

// overlapMeetings reports whether two meeting intervals share a day and
// their intervals intersect on it (closed-interval test).
func overlapMeetings(a, b MeetingInterval) bool {
	if a.Days&b.Days == 0 {
		return false
	}
	return a.Start <= b.End && b.Start <= a.End
}

// gapMeetings returns the per-day gap contribution between two meeting
// intervals that share at least one day and do not overlap.
func gapMeetings(a, b MeetingInterval, ignoredWidth float64) float64 {
	if a.Days&b.Days == 0 {
		return 0
	}
	d := a.Start - b.End
	if other := b.Start - a.End; other > d {
		d = other
	}
	if d <= ignoredWidth {
		return 0
	}
	return d
}

// TimeTable precomputes the symmetric overlap/gap relations over a fixed
// set of timeslots. The sentinel NoTimeslot is not stored in the tables;
// Overlap and Gap answer for it directly.
type TimeTable struct {
	overlap [][]bool
	gap     [][]float64
}

// BuildTimeTable builds the pairwise overlap/gap tables for a contiguous
// [0,T) id space of timeslots.
func BuildTimeTable(timeslots []Timeslot, cfg Config) (*TimeTable, error) {
	n := len(timeslots)
	byID := make([]Timeslot, n)
	seen := make([]bool, n)
	for _, t := range timeslots {
		if t.ID < 0 || t.ID >= n {
			return nil, fmt.Errorf("timeslot id %d out of range [0,%d)", t.ID, n)
		}
		if seen[t.ID] {
			return nil, fmt.Errorf("duplicate timeslot id %d", t.ID)
		}
		seen[t.ID] = true
		byID[t.ID] = t
	}

	overlap := make([][]bool, n)
	gap := make([][]float64, n)
	for i := range overlap {
		overlap[i] = make([]bool, n)
		gap[i] = make([]float64, n)
	}

	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			o := false
			var g float64
			for _, mi := range byID[i].Meetings {
				for _, mj := range byID[j].Meetings {
					if overlapMeetings(mi, mj) {
						o = true
					} else {
						g += gapMeetings(mi, mj, cfg.MaxIgnoredGapWidth)
					}
				}
			}
			if o {
				g = 0
			}
			overlap[i][j], overlap[j][i] = o, o
			gap[i][j], gap[j][i] = g, g
		}
	}

	return &TimeTable{overlap: overlap, gap: gap}, nil
}

// Overlap reports whether timeslots a and b overlap. NoTimeslot never
// overlaps anything, including itself.
func (tt *TimeTable) Overlap(a, b int) bool {
	if a == NoTimeslot || b == NoTimeslot {
		return false
	}
	return tt.overlap[a][b]
}

// Gap returns the proximity gap between timeslots a and b. NoTimeslot has a
// gap of 0 with everything.
func (tt *TimeTable) Gap(a, b int) float64 {
	if a == NoTimeslot || b == NoTimeslot {
		return 0
	}
	return tt.gap[a][b]
}
