package views

import (
	"maps"
	"time"
)

// View is a consumer's working state over one report: the selected range and filters, the page
// being read and whether it follows the live simulation.
type View struct {
	ID          string            `json:"id"`
	Report      string            `json:"report"`
	State       State             `json:"state"`
	From        string            `json:"from,omitempty"`
	To          string            `json:"to,omitempty"`
	Filters     map[string]string `json:"filters"`
	Page        int               `json:"page"`
	PageSize    int               `json:"pageSize"`
	OnBreakHint *int              `json:"onBreakHint,omitempty"`
	CreatedAt   time.Time         `json:"createdAt"`
	UpdatedAt   time.Time         `json:"updatedAt"`
}

func (v *View) clone() *View {
	out := *v
	out.Filters = maps.Clone(v.Filters)
	if out.Filters == nil {
		out.Filters = map[string]string{}
	}
	if v.OnBreakHint != nil {
		hint := *v.OnBreakHint
		out.OnBreakHint = &hint
	}
	return &out
}

func (v *View) transition(action Action) error {
	next, err := v.State.Next(action)
	if err != nil {
		return err
	}
	v.State = next
	return nil
}

// CreateRequest opens a view. Without From the view starts fresh, with Live it starts on today.
type CreateRequest struct {
	Report      string            `json:"report" validate:"required"`
	From        string            `json:"from" validate:"omitempty,datetime=2006-01-02"`
	To          string            `json:"to" validate:"omitempty,datetime=2006-01-02"`
	Filters     map[string]string `json:"filters"`
	PageSize    int               `json:"pageSize" validate:"min=0"`
	Live        bool              `json:"live"`
	OnBreakHint *int              `json:"onBreakHint" validate:"omitempty,min=0"`
}

// UpdateRequest changes a view. Nil fields are left as they are; Filters replaces the whole set.
type UpdateRequest struct {
	From        *string           `json:"from" validate:"omitempty,datetime=2006-01-02"`
	To          *string           `json:"to" validate:"omitempty,datetime=2006-01-02"`
	Filters     map[string]string `json:"filters"`
	Page        *int              `json:"page" validate:"omitempty,min=1"`
	PageSize    *int              `json:"pageSize" validate:"omitempty,min=1"`
	Live        *bool             `json:"live"`
	OnBreakHint *int              `json:"onBreakHint" validate:"omitempty,min=0"`
}
