package aviationweather

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeXML_SkipsIncompleteRecords(t *testing.T) {
	body := `<response><data>
	  <METAR><station_id>KMDW</station_id><observation_time>2024-01-15T18:53:00Z</observation_time><temp_c>-3</temp_c><dewpoint_c>-6</dewpoint_c><wind_speed_kt>-2</wind_speed_kt></METAR>
	  <METAR><station_id>KMDW</station_id><observation_time>2024-01-15T17:53:00Z</observation_time><dewpoint_c>-6</dewpoint_c></METAR>
	  <METAR><station_id>KRDU</station_id><observation_time>2024-01-15T18:51:00Z</observation_time><temp_c>22</temp_c></METAR>
	  <METAR><observation_time>2024-01-15T18:51:00Z</observation_time><temp_c>22</temp_c><dewpoint_c>10</dewpoint_c></METAR>
	</data></response>`

	result, err := decodeXML(strings.NewReader(body))
	require.NoError(t, err)

	require.Len(t, result.observations, 1)
	assert.Equal(t, 3, result.skipped)
	assert.Equal(t, 0, result.observations[0].WindSpeedKt, "negative wind clamps to calm")
}

func TestDecodeXML_EmptyElementsAreMissing(t *testing.T) {
	body := `<response><data>
	  <METAR><station_id>KMDW</station_id><observation_time>2024-01-15T18:53:00Z</observation_time><temp_c/><dewpoint_c>-6</dewpoint_c><wind_speed_kt>12</wind_speed_kt></METAR>
	  <METAR><station_id>KMDW</station_id><observation_time>2024-01-15T17:53:00Z</observation_time><temp_c>-4</temp_c><dewpoint_c> </dewpoint_c></METAR>
	  <METAR><station_id>KRDU</station_id><observation_time>2024-01-15T18:51:00Z</observation_time><temp_c>22</temp_c><dewpoint_c>10</dewpoint_c><wind_speed_kt/></METAR>
	</data></response>`

	result, err := decodeXML(strings.NewReader(body))
	require.NoError(t, err)

	assert.Equal(t, 2, result.skipped)
	require.Len(t, result.observations, 1)
	assert.Equal(t, "KRDU", result.observations[0].StationID)
	assert.Equal(t, 22.0, result.observations[0].TempC)
	assert.Equal(t, 0, result.observations[0].WindSpeedKt, "empty wind decodes as calm")
}

func TestParseOptionalFloat(t *testing.T) {
	v := parseOptionalFloat(" -3.5 ")
	require.NotNil(t, v)
	assert.Equal(t, -3.5, *v)

	assert.Nil(t, parseOptionalFloat(""))
	assert.Nil(t, parseOptionalFloat("M"))
}

func TestDecodeXML_APIErrors(t *testing.T) {
	body := `<response><errors><error>Query must be constrained by time</error></errors><data/></response>`

	_, err := decodeXML(strings.NewReader(body))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "constrained by time")
}

func TestDecodeXML_Empty(t *testing.T) {
	result, err := decodeXML(strings.NewReader(`<response><errors/><data num_results="0"/></response>`))
	require.NoError(t, err)
	assert.Empty(t, result.observations)
	assert.Zero(t, result.skipped)
}

func TestDecodeJSON(t *testing.T) {
	body := `[
	  {"icaoId":"KMDW","reportTime":"2024-01-15T19:00:00.000Z","obsTime":1705344780,"temp":-3,"dewp":-6,"wspd":12},
	  {"icaoId":"KRDU","reportTime":"2024-01-15T19:00:00.000Z","temp":22,"dewp":10,"wspd":6.6},
	  {"icaoId":"KEMP","reportTime":"2024-01-15T19:00:00.000Z","temp":null,"dewp":10}
	]`

	result, err := decodeJSON(strings.NewReader(body))
	require.NoError(t, err)

	require.Len(t, result.observations, 2)
	assert.Equal(t, 1, result.skipped)
	assert.Equal(t, "2024-01-15T18:53:00Z", result.observations[0].ObservationTime)
	assert.Equal(t, "2024-01-15T19:00:00.000Z", result.observations[1].ObservationTime, "falls back to report time")
	assert.Equal(t, 7, result.observations[1].WindSpeedKt)
}

func TestDecodeJSON_Invalid(t *testing.T) {
	_, err := decodeJSON(strings.NewReader(`{"not":"an array"}`))
	require.Error(t, err)
}
