package domain

import "fmt"

// Interval is a half-open [Start, End) pair of hour marks ("HH:00").
// Lexicographic order on the strings matches chronological order within a day.
type Interval struct {
	Start string
	End   string
}

// Overlaps reports whether two half-open intervals intersect. The three
// clauses are kept explicit so the boundary behavior stays visible: intervals
// that merely touch (i.End == other.Start) do not overlap.
func (i Interval) Overlaps(other Interval) bool {
	if i.Start >= other.Start && i.Start < other.End {
		return true
	}
	if i.End > other.Start && i.End <= other.End {
		return true
	}
	return i.Start <= other.Start && i.End >= other.End
}

// HourMarks returns the 24 whole-hour marks of a day, "00:00" through "23:00".
func HourMarks() []string {
	marks := make([]string, 24)
	for h := range marks {
		marks[h] = fmt.Sprintf("%02d:00", h)
	}
	return marks
}
