package queries

import (
	"sort"

	"rx-analytics/internal/models"
)

// FilterSet holds at most one predicate per field and matches an event when every predicate
// does. It is a value: the With and Without helpers return modified copies, and the zero value
// matches everything.
type FilterSet struct {
	predicates map[string]Predicate
}

// NewFilterSet builds a set from predicates. A later predicate replaces an earlier one on the
// same field.
func NewFilterSet(predicates ...Predicate) FilterSet {
	set := FilterSet{predicates: make(map[string]Predicate, len(predicates))}
	for _, p := range predicates {
		if p != nil {
			set.predicates[p.Field()] = p
		}
	}
	return set
}

func (f FilterSet) With(p Predicate) FilterSet {
	out := f.clone()
	if p != nil {
		out.predicates[p.Field()] = p
	}
	return out
}

func (f FilterSet) Without(field string) FilterSet {
	out := f.clone()
	delete(out.predicates, field)
	return out
}

func (f FilterSet) Get(field string) (Predicate, bool) {
	p, ok := f.predicates[field]
	return p, ok
}

// Value returns the raw value filtering field, or WildcardAll when the field is unfiltered.
func (f FilterSet) Value(field string) string {
	p, ok := f.predicates[field]
	if !ok || p.Wildcard() {
		return WildcardAll
	}
	return p.Value()
}

// Active returns the non-wildcard predicates ordered by field name.
func (f FilterSet) Active() []Predicate {
	out := make([]Predicate, 0, len(f.predicates))
	for _, p := range f.predicates {
		if !p.Wildcard() {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Field() < out[j].Field() })
	return out
}

// Values returns field to raw value for every active predicate.
func (f FilterSet) Values() map[string]string {
	out := make(map[string]string, len(f.predicates))
	for _, p := range f.Active() {
		out[p.Field()] = p.Value()
	}
	return out
}

func (f FilterSet) Matches(event *models.Event) bool {
	for _, p := range f.predicates {
		if !p.Match(event) {
			return false
		}
	}
	return true
}

func (f FilterSet) clone() FilterSet {
	out := FilterSet{predicates: make(map[string]Predicate, len(f.predicates)+1)}
	for k, v := range f.predicates {
		out.predicates[k] = v
	}
	return out
}

// Query selects the events received within dateRange that match filters, preserving input
// order. An empty range selects nothing.
func Query(events []*models.Event, dateRange models.DateRange, filters FilterSet) []*models.Event {
	out := make([]*models.Event, 0)
	if dateRange.IsEmpty() {
		return out
	}
	for _, event := range events {
		if event == nil || !dateRange.Contains(event.ReceivedAt) {
			continue
		}
		if filters.Matches(event) {
			out = append(out, event)
		}
	}
	return out
}
