package domain

// NewTemperatureSummary derives Fahrenheit, wind chill, and heat index values
// for a single observation. Metrics that do not apply fall back to the plain
// Fahrenheit temperature.
func NewTemperatureSummary(o Observation) TemperatureSummary {
	tempF := CelsiusToFahrenheit(o.TempC)

	windChillF := tempF
	if wc, ok := WindChill(tempF, o.WindSpeedKt); ok {
		windChillF = wc
	}

	return TemperatureSummary{
		StationID:       o.StationID,
		ObservationTime: o.ObservationTime,
		TempC:           o.TempC,
		TempF:           tempF,
		WindChillF:      windChillF,
		HeatIndexF:      heatIndexOrFallback(o.TempC, o.DewpointC, tempF),
	}
}

// heatIndexOrFallback absorbs an impossible dew point the same way as an
// inapplicable regression.
func heatIndexOrFallback(tempC, dewpointC, tempF float64) float64 {
	rh, err := RelativeHumidity(tempC, dewpointC)
	if err != nil || !HeatIndexApplies(tempC, rh) {
		return tempF
	}
	return HeatIndex(tempC, rh)
}

// ExtractStationSummary selects the most recent observation for stationID and
// summarizes it. A missing or empty group yields a *NotFoundError carrying
// notFoundMessage.
func ExtractStationSummary(grouped map[string][]Observation, stationID, notFoundMessage string) (TemperatureSummary, error) {
	latest, ok := SelectMostRecent(grouped[stationID])
	if !ok {
		return TemperatureSummary{}, &NotFoundError{StationID: stationID, Message: notFoundMessage}
	}
	return NewTemperatureSummary(latest), nil
}
