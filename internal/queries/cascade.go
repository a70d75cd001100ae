package queries

import (
	"context"
	"sort"
	"strings"

	"rx-analytics/internal/models"
	"rx-analytics/internal/shared/loggers"
)

// Cascade ties a child filter's valid options to the selected value of its parent, such as city
// under state.
type Cascade struct {
	Parent string `json:"parent"`
	Child  string `json:"child"`
}

// Reset records a child filter that was put back to the wildcard because its parent changed.
type Reset struct {
	Field     string `json:"field"`
	Discarded string `json:"discarded"`
	Parent    string `json:"parent"`
	NewParent string `json:"newParent"`
}

// Options lists, in ascending order, the distinct child values of events whose parent equals
// parentValue. A wildcard parent offers no concrete children.
func (c Cascade) Options(events []*models.Event, parentValue string) []string {
	out := make([]string, 0)
	if IsWildcardValue(parentValue) {
		return out
	}
	parent := Exact(c.Parent, parentValue)
	seen := make(map[string]struct{})
	for _, event := range events {
		if event == nil || !parent.Match(event) {
			continue
		}
		child := event.Field(c.Child)
		if child == "" {
			child = models.UnknownValue
		}
		if _, ok := seen[child]; ok {
			continue
		}
		seen[child] = struct{}{}
		out = append(out, child)
	}
	sort.Strings(out)
	return out
}

// Reconcile returns next with its child reset to the wildcard when the parent value differs
// from previous and the child is no longer among the options under the new parent. The second
// return is nil when nothing was reset.
func (c Cascade) Reconcile(ctx context.Context, events []*models.Event, previous, next FilterSet) (FilterSet, *Reset) {
	prevParent := previous.Value(c.Parent)
	nextParent := next.Value(c.Parent)
	if strings.EqualFold(prevParent, nextParent) {
		return next, nil
	}

	child := next.Value(c.Child)
	if IsWildcardValue(child) {
		return next, nil
	}
	for _, option := range c.Options(events, nextParent) {
		if strings.EqualFold(option, child) {
			return next, nil
		}
	}

	reset := &Reset{Field: c.Child, Discarded: child, Parent: prevParent, NewParent: nextParent}
	loggers.Ctx(ctx).Info().
		Str(loggers.FieldField, c.Child).
		Str("discarded", child).
		Str("parent", c.Parent).
		Str("new_parent_value", nextParent).
		Msg("filter reset to wildcard after parent change")
	return next.With(Exact(c.Child, WildcardAll)), reset
}
