// Package timeslot computes the bookable windows of a room from its
// existing reservations. It is pure: no storage, no clock, no errors.
package timeslot

import "time"

// Slot is a half-open [Start, End) window.
type Slot struct {
	Start time.Time
	End   time.Time
}

// NextSlot rounds now up to the next half-hour boundary: a minute of
// 30 or less rounds to :30 of the same hour, anything later rounds to
// :00 of the next hour. Seconds and smaller units are discarded.
func NextSlot(now time.Time) time.Time {
	if now.Minute() <= 30 {
		return time.Date(now.Year(), now.Month(), now.Day(), now.Hour(), 30, 0, 0, now.Location())
	}
	return time.Date(now.Year(), now.Month(), now.Day(), now.Hour()+1, 0, 0, 0, now.Location())
}

// Available walks the reserved windows in ascending start order and
// returns the disjoint free slots between the next bookable boundary
// after now and closing. Reserved windows are expected not to overlap
// (enforced at creation); if they do, the cursor never moves backward,
// which effectively merges them. When closing is not after the rounded
// start, the result is empty.
func Available(now time.Time, reserved []Slot, closing time.Time) []Slot {
	cur := NextSlot(now)
	slots := make([]Slot, 0, len(reserved)+1)

	for _, r := range reserved {
		if cur.Before(r.Start) {
			slots = append(slots, Slot{Start: cur, End: r.Start})
		}
		if r.End.After(cur) {
			cur = r.End
		}
	}

	if cur.Before(closing) {
		slots = append(slots, Slot{Start: cur, End: closing})
	}
	return slots
}
