package reservation

import "time"

// CheckInState classifies how close a guest is to the start of a stay.
type CheckInState string

const (
	// CheckInStaying means the stay has already begun.
	CheckInStaying CheckInState = "staying"
	// CheckInToday means arrival is today.
	CheckInToday CheckInState = "today"
	// CheckInTomorrow means arrival is tomorrow.
	CheckInTomorrow CheckInState = "tomorrow"
	// CheckInWithinWeek means arrival is within the next seven days.
	CheckInWithinWeek CheckInState = "within_week"
	// CheckInLater means arrival is more than a week away.
	CheckInLater CheckInState = "later"
)

// Highlighted reports whether the state warrants visual emphasis on an
// active-bookings view.
func (s CheckInState) Highlighted() bool {
	switch s {
	case CheckInStaying, CheckInToday, CheckInTomorrow, CheckInWithinWeek:
		return true
	}
	return false
}

// ClassifyCheckIn buckets a stay relative to the given day. A day inside the
// [arrival, departure] window is an in-progress stay and is checked before the
// arrival buckets, so arriving today during a live stay still reads as
// staying. Outside the window the arrival classifies as today, tomorrow,
// within a week or later.
func ClassifyCheckIn(today, arrival, departure time.Time) CheckInState {
	day := Normalize(today)
	arrivalDay := Normalize(arrival)
	if !day.Before(arrivalDay) && !day.After(Normalize(departure)) {
		return CheckInStaying
	}

	days := int(arrivalDay.Sub(day).Hours() / 24)
	switch {
	case days < 0:
		return CheckInStaying
	case days == 0:
		return CheckInToday
	case days == 1:
		return CheckInTomorrow
	case days <= 7:
		return CheckInWithinWeek
	default:
		return CheckInLater
	}
}
