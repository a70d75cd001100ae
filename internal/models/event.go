package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type EventKind string

const (
	EventDecode EventKind = "decode"
	EventBreak  EventKind = "break"
	EventCall   EventKind = "call"
)

func (k EventKind) Valid() bool {
	switch k {
	case EventDecode, EventBreak, EventCall:
		return true
	default:
		return false
	}
}

// Dimension tags carried by events.
const (
	TagEmployeeID   = "employee_id"
	TagEmployeeName = "employee_name"
	TagLocation     = "location"
	TagChannel      = "channel"
	TagState        = "state"
	TagCity         = "city"
	TagStoreID      = "store_id"
	TagStatus       = "status"
	TagClient       = "client"
)

// Secondary payloads summed alongside bucket counts.
const (
	PayloadSaleValue = "sale_value"
	PayloadAccuracy  = "accuracy"
)

// Time fields addressable by day predicates.
const (
	FieldReceivedAt  = "received_at"
	FieldCompletedAt = "completed_at"
)

// UnknownValue is the dimension value used when an event lacks a tag.
const UnknownValue = "Unknown"

// Event is an immutable fact produced by the decode floor (or the simulator standing in for it).
//
// Example JSON:
//
//	{
//	  "id": "01J9ZB6Q4F3W1X8KJ2D7N5C0RM",
//	  "kind": "decode",
//	  "receivedAt": "2026-10-15T09:12:44+05:30",
//	  "completedAt": "2026-10-15T09:18:02+05:30",
//	  "durationMinutes": 5.3,
//	  "tags": {
//	    "employee_id": "EMP-014",
//	    "location": "wfh",
//	    "channel": "green",
//	    "state": "Telangana",
//	    "city": "Hyderabad"
//	  },
//	  "payloads": {
//	    "sale_value": "412.50"
//	  }
//	}
type Event struct {
	ID              string                     `json:"id"`
	Kind            EventKind                  `json:"kind"`
	ReceivedAt      time.Time                  `json:"receivedAt"`
	CompletedAt     *time.Time                 `json:"completedAt,omitempty"`
	DurationMinutes float64                    `json:"durationMinutes"`
	Tags            map[string]string          `json:"tags,omitempty"`
	Payloads        map[string]decimal.Decimal `json:"payloads,omitempty"`
}

// Tag returns the trimmed tag value, or "" when absent.
func (e *Event) Tag(name string) string {
	if e.Tags == nil {
		return ""
	}
	return strings.TrimSpace(e.Tags[name])
}

// Field resolves a filterable string field: the event id, its kind, or any tag.
func (e *Event) Field(name string) string {
	switch name {
	case "id":
		return e.ID
	case "kind":
		return string(e.Kind)
	default:
		return e.Tag(name)
	}
}

// Time resolves a time field. The second return is false when the field is unset.
func (e *Event) Time(name string) (time.Time, bool) {
	switch name {
	case FieldReceivedAt:
		return e.ReceivedAt, !e.ReceivedAt.IsZero()
	case FieldCompletedAt:
		if e.CompletedAt == nil {
			return time.Time{}, false
		}
		return *e.CompletedAt, true
	default:
		return time.Time{}, false
	}
}

// Payload returns the named payload, zero when absent.
func (e *Event) Payload(name string) decimal.Decimal {
	if e.Payloads == nil {
		return decimal.Zero
	}
	return e.Payloads[name]
}
