package aggregators

import (
	"strings"

	"rx-analytics/internal/models"
)

// Dimension describes one component of a dimension key. When Allowed is non-empty, values are
// matched case-insensitively against it and anything else becomes models.UnknownValue.
type Dimension struct {
	Tag     string
	Label   string
	Allowed []string
}

// Location and channel categories used by the floor.
const (
	LocationInHouse = "in-house"
	LocationWFH     = "wfh"
	ChannelGreen    = "green"
	ChannelNormal   = "normal"
)

//go:generate mockgen -source=dimension_keys.go -destination=./mocks/dimension_keys_mock.go -package=mocks
type KeyExtractor interface {
	Dimensions() []Dimension
	// Key must be deterministic and side-effect free.
	Key(event *models.Event) models.DimensionKey
}

type tagKeyExtractor struct {
	dims []Dimension
}

func NewTagKeyExtractor(dims ...Dimension) KeyExtractor {
	copied := make([]Dimension, len(dims))
	copy(copied, dims)
	return &tagKeyExtractor{dims: copied}
}

func KeyByEmployee() KeyExtractor {
	return NewTagKeyExtractor(Dimension{Tag: models.TagEmployeeID, Label: "Employee ID"})
}

func KeyByStateCity() KeyExtractor {
	return NewTagKeyExtractor(
		Dimension{Tag: models.TagState, Label: "State"},
		Dimension{Tag: models.TagCity, Label: "City"},
	)
}

func KeyByLocationChannel() KeyExtractor {
	return NewTagKeyExtractor(
		Dimension{Tag: models.TagLocation, Label: "Location", Allowed: []string{LocationInHouse, LocationWFH}},
		Dimension{Tag: models.TagChannel, Label: "Channel", Allowed: []string{ChannelGreen, ChannelNormal}},
	)
}

func KeyByClient() KeyExtractor {
	return NewTagKeyExtractor(Dimension{Tag: models.TagClient, Label: "Client"})
}

func (x *tagKeyExtractor) Dimensions() []Dimension {
	out := make([]Dimension, len(x.dims))
	copy(out, x.dims)
	return out
}

func (x *tagKeyExtractor) Key(event *models.Event) models.DimensionKey {
	values := make([]string, len(x.dims))
	for i, dim := range x.dims {
		values[i] = dim.normalize(event.Tag(dim.Tag))
	}
	return models.NewDimensionKey(values...)
}

func (d Dimension) normalize(value string) string {
	if value == "" {
		return models.UnknownValue
	}
	if len(d.Allowed) == 0 {
		return value
	}
	for _, allowed := range d.Allowed {
		if strings.EqualFold(allowed, value) {
			return allowed
		}
	}
	return models.UnknownValue
}

// constantKeyExtractor folds every event into a single row, used for whole-floor totals.
type constantKeyExtractor struct {
	label string
}

func KeyConstant(label string) KeyExtractor {
	return &constantKeyExtractor{label: label}
}

func (x *constantKeyExtractor) Dimensions() []Dimension {
	return []Dimension{{Label: "Scope"}}
}

func (x *constantKeyExtractor) Key(*models.Event) models.DimensionKey {
	return models.NewDimensionKey(x.label)
}
