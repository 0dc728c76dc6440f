package pipeline

import (
	"fmt"

	"github.com/couchcryptid/metar-compare/internal/domain"
)

// StationComparer turns a fetched observation set into a target-versus-reference comparison.
type StationComparer struct {
	target         string
	reference      string
	targetLabel    string
	referenceLabel string
}

// NewComparer creates a StationComparer. The labels name each location in
// rendered output and error messages.
func NewComparer(target, reference, targetLabel, referenceLabel string) *StationComparer {
	return &StationComparer{
		target:         target,
		reference:      reference,
		targetLabel:    targetLabel,
		referenceLabel: referenceLabel,
	}
}

// Stations returns the station identifiers to request, target first.
func (c *StationComparer) Stations() []string {
	return []string{c.target, c.reference}
}

// Compare groups observations by station, summarizes the latest report for
// each side, and contrasts them. A station without data is a *domain.NotFoundError.
func (c *StationComparer) Compare(observations []domain.Observation) (domain.Comparison, error) {
	grouped := domain.GroupByStation(observations)

	target, err := domain.ExtractStationSummary(grouped, c.target,
		fmt.Sprintf("%s weather data not in expected format", c.targetLabel))
	if err != nil {
		return domain.Comparison{}, err
	}
	reference, err := domain.ExtractStationSummary(grouped, c.reference,
		fmt.Sprintf("%s weather data not in expected format", c.referenceLabel))
	if err != nil {
		return domain.Comparison{}, err
	}

	return domain.Compare(target, reference, c.targetLabel), nil
}
