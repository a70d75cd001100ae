package aggregators

import (
	"testing"

	"rx-analytics/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestKeyExtractors(t *testing.T) {
	t.Parallel()

	event := &models.Event{Tags: map[string]string{
		models.TagEmployeeID: "EMP-7",
		models.TagState:      "Telangana",
		models.TagCity:       " Hyderabad ",
		models.TagLocation:   "WFH",
		models.TagChannel:    "priority",
		models.TagClient:     "Chrome",
	}}

	tests := []struct {
		name     string
		keys     KeyExtractor
		expected []string
	}{
		{name: "employee", keys: KeyByEmployee(), expected: []string{"EMP-7"}},
		{name: "state and city trims values", keys: KeyByStateCity(), expected: []string{"Telangana", "Hyderabad"}},
		{name: "location canonicalized, unknown channel", keys: KeyByLocationChannel(), expected: []string{"wfh", models.UnknownValue}},
		{name: "client", keys: KeyByClient(), expected: []string{"Chrome"}},
		{name: "constant", keys: KeyConstant("Floor"), expected: []string{"Floor"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, tt.keys.Key(event).Values())
			assert.Equal(t, tt.keys.Key(event), tt.keys.Key(event), "key must be deterministic")
			assert.Len(t, tt.keys.Dimensions(), len(tt.expected))
		})
	}
}

func TestKeyExtractors_MissingValuesAreUnknown(t *testing.T) {
	t.Parallel()

	event := &models.Event{}

	assert.Equal(t, []string{models.UnknownValue}, KeyByEmployee().Key(event).Values())
	assert.Equal(t, []string{models.UnknownValue, models.UnknownValue}, KeyByStateCity().Key(event).Values())
	assert.Equal(t, []string{models.UnknownValue, models.UnknownValue}, KeyByLocationChannel().Key(event).Values())
}

func TestKeyExtractors_DimensionsAreCopies(t *testing.T) {
	t.Parallel()

	keys := KeyByLocationChannel()
	dims := keys.Dimensions()
	dims[0].Tag = "mutated"

	assert.Equal(t, models.TagLocation, keys.Dimensions()[0].Tag)
	assert.Equal(t, []string{LocationInHouse, LocationWFH}, keys.Dimensions()[0].Allowed)
}
