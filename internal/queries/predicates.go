package queries

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"rx-analytics/internal/models"
)

// Wildcard values accepted by exact predicates. An empty value is a wildcard as well.
const (
	WildcardAll      = "ALL"
	WildcardAllTitle = "All"
)

var (
	ErrUnknownField  = errors.New("unknown filter field")
	ErrInvalidFilter = errors.New("invalid filter value")
)

// FilterKind selects how a raw filter value is matched against a field.
type FilterKind string

const (
	// KindSubstring is a case-insensitive substring match on a string field.
	KindSubstring FilterKind = "substring"
	// KindExact is a case-insensitive equality on a categorical field, with wildcards.
	KindExact FilterKind = "exact"
	// KindDay is calendar-day equality on a time field such as completed_at.
	KindDay FilterKind = "day"
)

// FieldSpec declares one filterable field of a report.
type FieldSpec struct {
	Name  string     `json:"name"`
	Label string     `json:"label"`
	Kind  FilterKind `json:"kind"`
}

// Predicate matches events on a single field.
type Predicate interface {
	Field() string
	// Value is the raw filter input, as a client would send it back.
	Value() string
	// Wildcard reports whether the predicate matches every event.
	Wildcard() bool
	Match(event *models.Event) bool
}

// ValueMatcher is implemented by string predicates, which can also be evaluated against an
// already-extracted dimension value.
type ValueMatcher interface {
	MatchValue(value string) bool
}

// IsWildcardValue reports whether v selects everything for an exact predicate.
func IsWildcardValue(v string) bool {
	v = strings.TrimSpace(v)
	return v == "" || v == WildcardAll || v == WildcardAllTitle
}

// NewPredicate builds the predicate of the field's kind from a raw value. Day values use the
// YYYY-MM-DD layout in loc.
func NewPredicate(spec FieldSpec, raw string, loc *time.Location) (Predicate, error) {
	switch spec.Kind {
	case KindSubstring:
		return Substring(spec.Name, raw), nil
	case KindExact:
		return Exact(spec.Name, raw), nil
	case KindDay:
		raw = strings.TrimSpace(raw)
		if IsWildcardValue(raw) {
			return OnDay(spec.Name, time.Time{}), nil
		}
		day, err := time.ParseInLocation(models.DayLayout, raw, loc)
		if err != nil {
			return nil, fmt.Errorf("%w: %s=%q", ErrInvalidFilter, spec.Name, raw)
		}
		return OnDay(spec.Name, day), nil
	default:
		return nil, fmt.Errorf("%w: %s has kind %q", ErrUnknownField, spec.Name, spec.Kind)
	}
}

type substringPredicate struct {
	field  string
	raw    string
	needle string
}

// Substring matches events whose field contains needle, ignoring case. An empty needle matches
// everything.
func Substring(field, needle string) Predicate {
	return &substringPredicate{
		field:  field,
		raw:    needle,
		needle: strings.ToLower(strings.TrimSpace(needle)),
	}
}

func (p *substringPredicate) Field() string  { return p.field }
func (p *substringPredicate) Value() string  { return p.raw }
func (p *substringPredicate) Wildcard() bool { return p.needle == "" }

func (p *substringPredicate) Match(event *models.Event) bool {
	return p.MatchValue(event.Field(p.field))
}

func (p *substringPredicate) MatchValue(value string) bool {
	if p.needle == "" {
		return true
	}
	return strings.Contains(strings.ToLower(value), p.needle)
}

type exactPredicate struct {
	field string
	value string
}

// Exact matches events whose field equals value, ignoring case. "ALL", "All" and "" are
// wildcards. A missing field value compares as models.UnknownValue, the same category it is
// grouped under.
func Exact(field, value string) Predicate {
	return &exactPredicate{field: field, value: strings.TrimSpace(value)}
}

func (p *exactPredicate) Field() string { return p.field }

func (p *exactPredicate) Value() string {
	if p.Wildcard() {
		return WildcardAll
	}
	return p.value
}

func (p *exactPredicate) Wildcard() bool { return IsWildcardValue(p.value) }

func (p *exactPredicate) Match(event *models.Event) bool {
	return p.MatchValue(event.Field(p.field))
}

func (p *exactPredicate) MatchValue(value string) bool {
	if p.Wildcard() {
		return true
	}
	if value == "" {
		value = models.UnknownValue
	}
	return strings.EqualFold(value, p.value)
}

type dayPredicate struct {
	field string
	day   time.Time
}

// OnDay matches events whose time field falls on the calendar day of day, in day's location.
// A zero day is a wildcard. Events without the field never match a non-wildcard day.
func OnDay(field string, day time.Time) Predicate {
	if day.IsZero() {
		return &dayPredicate{field: field}
	}
	return &dayPredicate{field: field, day: models.StartOfDay(day, day.Location())}
}

func (p *dayPredicate) Field() string { return p.field }

func (p *dayPredicate) Value() string {
	if p.day.IsZero() {
		return ""
	}
	return p.day.Format(models.DayLayout)
}

func (p *dayPredicate) Wildcard() bool { return p.day.IsZero() }

func (p *dayPredicate) Match(event *models.Event) bool {
	if p.day.IsZero() {
		return true
	}
	t, ok := event.Time(p.field)
	if !ok {
		return false
	}
	return models.SingleDay(p.day).Contains(t)
}
