package domain

import "math"

// mphPerKnot is the statute-mile conversion factor used by the NWS.
const mphPerKnot = 1.15078

// CelsiusToFahrenheit converts a temperature from degrees Celsius to degrees Fahrenheit.
func CelsiusToFahrenheit(celsius float64) float64 {
	return celsius*9/5 + 32
}

// KnotsToMph converts a wind speed in knots to miles per hour, rounded to two decimals.
func KnotsToMph(knots int) float64 {
	return math.Round(mphPerKnot*float64(knots)*100) / 100
}
