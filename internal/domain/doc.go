// Package domain derives perceived-temperature metrics from METAR observations.
//
// # Data Source
//
// Observations come from the aviationweather.gov data API, which serves the
// most recent METAR reports for a set of ICAO station identifiers. Each report
// carries a station id, an ISO-8601 UTC observation time, the dry-bulb and
// dew-point temperatures in Celsius, and the wind speed in knots.
//
// # Derived Metrics
//
// Wind chill uses the 2001 NWS formula and only applies below 50F with at
// least 3 mph of wind:
//
//	WC = 35.74 + 0.6215·T − 35.75·V^0.16 + 0.4275·T·V^0.16   (T in F, V in mph)
//
// Relative humidity uses the Magnus approximation (b = 17.625, c = 243.04):
//
//	RH = 100 · exp(b·Td/(c+Td)) / exp(b·T/(c+T))
//
// Heat index uses the nine-term Rothfusz regression and only applies at or
// above 27 with at least 40% relative humidity.
//
// # Known Discrepancy
//
// The Rothfusz coefficients are published for Fahrenheit input, but the
// regression here is evaluated on Celsius temperatures and the result is
// stored in TemperatureSummary.HeatIndexF unchanged. Heat-adjusted values are
// therefore on a Celsius-like scale while the other fields are Fahrenheit.
//
// # Selection
//
// A fetch returns several reports per station. Observations are grouped by
// station and the report with the lexicographically greatest observation time
// is used; ISO-8601 UTC strings sort chronologically.
package domain
