package model

import "time"

// Overlaps reports whether the half-open intervals [s1, e1) and [s2, e2)
// intersect. An interval ending exactly when another starts does not overlap,
// so back-to-back reservations are allowed.
func Overlaps(s1, e1, s2, e2 time.Time) bool {
	return s1.Before(e2) && s2.Before(e1)
}

// OverlapsInterval reports whether the reservation occupies any instant of
// the half-open interval [start, end).
func (r *Reservation) OverlapsInterval(start, end time.Time) bool {
	return Overlaps(r.StartTime, r.EndTime, start, end)
}
