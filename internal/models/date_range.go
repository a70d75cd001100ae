package models

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const DayLayout = "2006-01-02"

var ErrInvalidDate = errors.New("invalid date")

// DateRange is an inclusive range of whole calendar days. From and To hold the start of the
// first and last day in the range's location. A zero From is the empty range.
type DateRange struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`
}

// StartOfDay truncates t to midnight in loc.
func StartOfDay(t time.Time, loc *time.Location) time.Time {
	local := t.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
}

// NewDateRange normalizes a (from, to) pair: a zero to collapses to a single day and a reversed
// pair is swapped. Both ends are moved to whole-day boundaries in from's location.
func NewDateRange(from, to time.Time) DateRange {
	if from.IsZero() {
		return DateRange{}
	}
	loc := from.Location()
	start := StartOfDay(from, loc)
	if to.IsZero() {
		return DateRange{From: start, To: start}
	}
	end := StartOfDay(to, loc)
	if end.Before(start) {
		start, end = end, start
	}
	return DateRange{From: start, To: end}
}

// SingleDay returns the range holding only the day of t.
func SingleDay(t time.Time) DateRange {
	return NewDateRange(t, time.Time{})
}

// ParseDateRange parses YYYY-MM-DD inputs in loc. An empty from is the empty range, not an error.
func ParseDateRange(from, to string, loc *time.Location) (DateRange, error) {
	from = strings.TrimSpace(from)
	to = strings.TrimSpace(to)
	if from == "" {
		return DateRange{}, nil
	}
	fromDay, err := time.ParseInLocation(DayLayout, from, loc)
	if err != nil {
		return DateRange{}, fmt.Errorf("%w: from=%q", ErrInvalidDate, from)
	}
	var toDay time.Time
	if to != "" {
		toDay, err = time.ParseInLocation(DayLayout, to, loc)
		if err != nil {
			return DateRange{}, fmt.Errorf("%w: to=%q", ErrInvalidDate, to)
		}
	}
	return NewDateRange(fromDay, toDay), nil
}

func (r DateRange) IsEmpty() bool {
	return r.From.IsZero()
}

// End returns the exclusive upper bound: midnight after the last day.
func (r DateRange) End() time.Time {
	return r.To.AddDate(0, 0, 1)
}

// Contains reports whether t falls within [From, End).
func (r DateRange) Contains(t time.Time) bool {
	if r.IsEmpty() || t.IsZero() {
		return false
	}
	return !t.Before(r.From) && t.Before(r.End())
}

// ContainsDay reports whether the calendar day of t is in the range.
func (r DateRange) ContainsDay(t time.Time) bool {
	if r.IsEmpty() {
		return false
	}
	return r.Contains(StartOfDay(t, r.From.Location()))
}

// Days lists the start of every day in the range, oldest first.
func (r DateRange) Days() []time.Time {
	if r.IsEmpty() {
		return []time.Time{}
	}
	days := make([]time.Time, 0, int(r.To.Sub(r.From).Hours()/24)+1)
	for day := r.From; !day.After(r.To); day = day.AddDate(0, 0, 1) {
		days = append(days, day)
	}
	return days
}

func (r DateRange) String() string {
	if r.IsEmpty() {
		return "empty"
	}
	return r.From.Format(DayLayout) + ".." + r.To.Format(DayLayout)
}
