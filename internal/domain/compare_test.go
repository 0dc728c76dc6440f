package domain

import (
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
)

const testLabel = "Oak Park"

func freezeClock(t *testing.T) clockwork.Clock {
	t.Helper()
	fake := clockwork.NewFakeClockAt(time.Date(2024, time.January, 15, 19, 0, 0, 0, time.UTC))
	SetClock(fake)
	t.Cleanup(func() { SetClock(nil) })
	return fake
}

func TestCompare(t *testing.T) {
	fake := freezeClock(t)

	target := NewTemperatureSummary(Observation{StationID: chicago, TempC: -3, DewpointC: -6, WindSpeedKt: 12})
	reference := NewTemperatureSummary(Observation{StationID: raleigh, TempC: 22, DewpointC: 10, WindSpeedKt: 4})

	c := Compare(target, reference, testLabel)

	assert.Equal(t, target, c.Target)
	assert.Equal(t, reference, c.Reference)
	assert.Equal(t, testLabel, c.TargetLabel)
	assert.InDelta(t, 45.0, c.TempDiffF, 1e-9)
	assert.InDelta(t, 56.43, c.WindChillDiffF, 0.01)
	assert.InDelta(t, 45.0, c.HeatIndexDiffF, 1e-9)
	assert.Equal(t, fake.Now(), c.GeneratedAt)

	assert.Equal(t, []string{
		"Right now it's 45.0ºF colder in Oak Park",
		"Right now the wind chill is 56.4ºF colder in Oak Park",
	}, c.Lines())
}

func TestCompare_Warmer(t *testing.T) {
	freezeClock(t)

	target := NewTemperatureSummary(Observation{StationID: chicago, TempC: 20, DewpointC: 5})
	reference := NewTemperatureSummary(Observation{StationID: raleigh, TempC: 10, DewpointC: 5})

	lines := Compare(target, reference, testLabel).Lines()

	assert.Equal(t, "Right now it's 18.0ºF warmer in Oak Park", lines[0])
	assert.Equal(t, "Right now the wind chill is 18.0ºF warmer in Oak Park", lines[1])
}

func TestCompare_HeatIndexNotRendered(t *testing.T) {
	freezeClock(t)

	target := NewTemperatureSummary(Observation{StationID: chicago, TempC: 31, DewpointC: 20})
	reference := NewTemperatureSummary(Observation{StationID: raleigh, TempC: 22, DewpointC: 10})

	c := Compare(target, reference, testLabel)

	assert.InDelta(t, 71.6-target.HeatIndexF, c.HeatIndexDiffF, 1e-9)
	assert.Equal(t, []string{
		"Right now it's 16.2ºF warmer in Oak Park",
		"Right now the wind chill is 16.2ºF warmer in Oak Park",
	}, c.Lines())
	for _, line := range c.Lines() {
		assert.NotContains(t, line, "heat index")
	}
}

func TestDirection(t *testing.T) {
	assert.Equal(t, "colder", Direction(0.1))
	assert.Equal(t, "warmer", Direction(0))
	assert.Equal(t, "warmer", Direction(-3))
}
