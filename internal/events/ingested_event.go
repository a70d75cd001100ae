package events

import (
	"rx-analytics/internal/models"
)

// IngestedEvent carries one accepted floor event to a single report that consumes its kind.
// An event consumed by several reports is published once per report, and the report name is
// the partition key, so each report sees its events in ingestion order.
//
// Example JSON:
//
//	{
//	  "report": "decode-time",
//	  "batchId": "01ARZ3NDEKTSV4RRFFQ69G5FAV",
//	  "event": {
//	    "id": "01J9ZB6Q4F3W1X8KJ2D7N5C0RM",
//	    "kind": "decode",
//	    "receivedAt": "2026-10-15T09:12:44+05:30",
//	    "durationMinutes": 5.3,
//	    "tags": {"employee_id": "EMP-014", "client": "Chrome"}
//	  }
//	}
type IngestedEvent struct {
	Report  string        `json:"report"`
	BatchID string        `json:"batchId"`
	Event   *models.Event `json:"event"`
}
