package reservation

import (
	"errors"
	"math"
	"time"
)

// ErrInvalidDate is returned when a stay calculation receives a zero date.
var ErrInvalidDate = errors.New("reservation: invalid date")

// ErrInvalidAmount is returned when a total calculation receives a negative input.
var ErrInvalidAmount = errors.New("reservation: invalid amount")

// Normalize truncates a timestamp to midnight UTC. All stay arithmetic runs
// on normalized dates so a day is always exactly 24 hours.
func Normalize(t time.Time) time.Time {
	year, month, day := t.UTC().Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// Nights returns the number of nights between arrival and departure.
//
// The order of the two dates does not matter; the distance between them is
// what counts. Equal dates yield zero nights.
func Nights(arrival, departure time.Time) (int, error) {
	if arrival.IsZero() || departure.IsZero() {
		return 0, ErrInvalidDate
	}
	span := Normalize(departure).Sub(Normalize(arrival))
	if span < 0 {
		span = -span
	}
	return int(math.Ceil(span.Hours() / 24)), nil
}

// Total computes the price of a stay: nightly rate times night count plus the
// flat service fee. A zero-night stay still pays the fee.
func Total(nightlyRate int64, nights int, serviceFee int64) (int64, error) {
	if nightlyRate < 0 || nights < 0 || serviceFee < 0 {
		return 0, ErrInvalidAmount
	}
	return nightlyRate*int64(nights) + serviceFee, nil
}

// Quote is a priced stay ready to present to the guest.
type Quote struct {
	NightlyRate int64
	Nights      int
	ServiceFee  int64
	Total       int64
}

// QuoteStay prices a stay between the two dates at the given nightly rate.
func QuoteStay(nightlyRate int64, arrival, departure time.Time, serviceFee int64) (Quote, error) {
	nights, err := Nights(arrival, departure)
	if err != nil {
		return Quote{}, err
	}
	total, err := Total(nightlyRate, nights, serviceFee)
	if err != nil {
		return Quote{}, err
	}
	return Quote{
		NightlyRate: nightlyRate,
		Nights:      nights,
		ServiceFee:  serviceFee,
		Total:       total,
	}, nil
}

// DefaultStay returns the pre-filled search window: arrival today, departure
// one week out, both at midnight UTC.
func DefaultStay(now time.Time) (arrival, departure time.Time) {
	arrival = Normalize(now)
	return arrival, arrival.AddDate(0, 0, 7)
}
