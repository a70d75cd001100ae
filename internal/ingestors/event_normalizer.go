package ingestors

import (
	"strings"

	"rx-analytics/internal/models"
	"rx-analytics/internal/shared/ulid"

	"github.com/mileusna/useragent"
)

// EventNormalizer cleans a submitted event in place before it is validated.
type EventNormalizer interface {
	Normalize(event *models.Event, userAgent string)
}

type eventNormalizer struct {
	newID func() string
}

func NewEventNormalizer() EventNormalizer {
	return &eventNormalizer{
		newID: ulid.NewULID,
	}
}

// Normalize trims identifiers and tags, drops empty tags, assigns an id to events submitted
// without one, and tags the event with the submitting client unless it already names one.
func (n *eventNormalizer) Normalize(event *models.Event, userAgent string) {
	event.ID = strings.TrimSpace(event.ID)
	if event.ID == "" {
		event.ID = n.newID()
	}
	event.Kind = models.EventKind(strings.ToLower(strings.TrimSpace(string(event.Kind))))

	tags := make(map[string]string, len(event.Tags)+1)
	for name, value := range event.Tags {
		name = strings.ToLower(strings.TrimSpace(name))
		value = strings.TrimSpace(value)
		if name == "" || value == "" {
			continue
		}
		tags[name] = value
	}
	if _, ok := tags[models.TagClient]; !ok {
		if client := n.normalizeUserAgent(userAgent); client != "" {
			tags[models.TagClient] = client
		}
	}
	event.Tags = tags
}

// normalizeUserAgent parses user agent to extract family, or returns original if parsing fails.
func (n *eventNormalizer) normalizeUserAgent(ua string) string {
	ua = strings.TrimSpace(ua)
	if ua == "" {
		return ""
	}
	parsed := useragent.Parse(ua)
	if parsed.Name != "" {
		return parsed.Name
	}

	// If parsing fails or family is empty, return original
	return ua
}
