package domain

import (
	"context"
	"time"
)

// Observation is a single METAR reading as decoded from the feed.
type Observation struct {
	StationID       string  `json:"station_id"`
	ObservationTime string  `json:"observation_time"` // ISO-8601 UTC, e.g. "2024-01-15T18:53:00Z"
	TempC           float64 `json:"temp_c"`
	DewpointC       float64 `json:"dewpoint_c"`
	WindSpeedKt     int     `json:"wind_speed_kt"`
}

// TemperatureSummary holds the derived temperatures for one station's latest observation.
type TemperatureSummary struct {
	StationID       string  `json:"station_id"`
	ObservationTime string  `json:"observation_time"`
	TempC           float64 `json:"temp_c"`
	TempF           float64 `json:"temp_f"`
	WindChillF      float64 `json:"wind_chill_f"`
	HeatIndexF      float64 `json:"heat_index_f"`
}

// Comparison contrasts a target station with a reference station. Differences
// are reference minus target, so a positive value means the target is colder.
type Comparison struct {
	Target         TemperatureSummary `json:"target"`
	Reference      TemperatureSummary `json:"reference"`
	TargetLabel    string             `json:"target_label"`
	TempDiffF      float64            `json:"temp_diff_f"`
	WindChillDiffF float64            `json:"wind_chill_diff_f"`
	HeatIndexDiffF float64            `json:"heat_index_diff_f"`
	GeneratedAt    time.Time          `json:"generated_at"`
}

// ObservationSource supplies current observations for a set of stations.
type ObservationSource interface {
	FetchObservations(ctx context.Context, stations []string) ([]Observation, error)
}
