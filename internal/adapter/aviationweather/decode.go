package aviationweather

import (
	"encoding/json"
	"encoding/xml"
	"errors"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/couchcryptid/metar-compare/internal/domain"
)

// decodeResult holds the usable observations of a response and how many
// records were dropped for missing fields.
type decodeResult struct {
	observations []domain.Observation
	skipped      int
}

// aviationweather.gov XML response types.

type xmlResponse struct {
	XMLName xml.Name `xml:"response"`
	Errors  []string `xml:"errors>error"`
	Data    struct {
		METAR []xmlMETAR `xml:"METAR"`
	} `xml:"data"`
}

// Numeric fields stay text so an empty element reads as absent rather than zero.
type xmlMETAR struct {
	StationID       string `xml:"station_id"`
	ObservationTime string `xml:"observation_time"`
	TempC           string `xml:"temp_c"`
	DewpointC       string `xml:"dewpoint_c"`
	WindSpeedKt     string `xml:"wind_speed_kt"`
}

// aviationweather.gov JSON response types. The API returns a bare array.

type jsonMETAR struct {
	ICAOID     string   `json:"icaoId"`
	ReportTime string   `json:"reportTime"` // "2025-12-10T01:00:00.000Z"
	ObsTime    int64    `json:"obsTime"`    // unix seconds of the observation
	Temp       *float64 `json:"temp"`
	Dewp       *float64 `json:"dewp"`
	Wspd       *float64 `json:"wspd"`
}

func decodeXML(r io.Reader) (decodeResult, error) {
	var resp xmlResponse
	if err := xml.NewDecoder(r).Decode(&resp); err != nil {
		return decodeResult{}, err
	}
	if len(resp.Errors) > 0 {
		return decodeResult{}, errors.New(strings.Join(resp.Errors, "; "))
	}

	var result decodeResult
	for _, m := range resp.Data.METAR {
		wind := 0
		if kt := parseOptionalFloat(m.WindSpeedKt); kt != nil {
			wind = int(math.Round(*kt))
		}
		obs, ok := newObservation(m.StationID, m.ObservationTime,
			parseOptionalFloat(m.TempC), parseOptionalFloat(m.DewpointC), wind)
		if !ok {
			result.skipped++
			continue
		}
		result.observations = append(result.observations, obs)
	}
	return result, nil
}

func decodeJSON(r io.Reader) (decodeResult, error) {
	var records []jsonMETAR
	if err := json.NewDecoder(r).Decode(&records); err != nil {
		return decodeResult{}, err
	}

	var result decodeResult
	for _, m := range records {
		wind := 0
		if m.Wspd != nil {
			wind = int(math.Round(*m.Wspd))
		}
		obs, ok := newObservation(m.ICAOID, jsonObservationTime(m), m.Temp, m.Dewp, wind)
		if !ok {
			result.skipped++
			continue
		}
		result.observations = append(result.observations, obs)
	}
	return result, nil
}

// parseOptionalFloat returns nil for empty or non-numeric element text.
func parseOptionalFloat(s string) *float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}

// jsonObservationTime prefers the exact observation epoch over the nominal
// report hour, formatted like the XML feed so both sort the same way.
func jsonObservationTime(m jsonMETAR) string {
	if m.ObsTime > 0 {
		return time.Unix(m.ObsTime, 0).UTC().Format(time.RFC3339)
	}
	return m.ReportTime
}

func newObservation(station, observed string, tempC, dewpointC *float64, windKt int) (domain.Observation, bool) {
	station = strings.TrimSpace(station)
	observed = strings.TrimSpace(observed)
	if station == "" || observed == "" || tempC == nil || dewpointC == nil {
		return domain.Observation{}, false
	}
	if windKt < 0 {
		windKt = 0
	}
	return domain.Observation{
		StationID:       station,
		ObservationTime: observed,
		TempC:           *tempC,
		DewpointC:       *dewpointC,
		WindSpeedKt:     windKt,
	}, true
}
