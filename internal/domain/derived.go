package domain

import "math"

// Magnus formula constants (Alduchov & Eskridge).
const (
	magnusB = 17.625
	magnusC = 243.04
)

// Wind chill applicability thresholds from the NWS 2001 formula.
const (
	windChillMinMph   = 3.0
	windChillMaxTempF = 50.0
)

// Heat index applicability thresholds.
const (
	heatIndexMinTemp = 27.0
	heatIndexMinRH   = 40.0
)

// Rothfusz regression coefficients.
const (
	hiC1 = -8.78469475556
	hiC2 = 1.61139411
	hiC3 = 2.33854883889
	hiC4 = -0.14611605
	hiC5 = -0.012308094
	hiC6 = -0.0164248277778
	hiC7 = 0.002211732
	hiC8 = 0.00072546
	hiC9 = -0.000003582
)

// RelativeHumidity returns RH as a percentage rounded to two decimals using the
// Magnus saturation vapor pressure ratio. A dew point above the temperature is
// physically impossible and yields an *InvalidInputError.
func RelativeHumidity(tempC, dewpointC float64) (float64, error) {
	if dewpointC > tempC {
		return 0, &InvalidInputError{TempC: tempC, DewpointC: dewpointC}
	}
	ratio := math.Exp(magnusB*dewpointC/(magnusC+dewpointC)) /
		math.Exp(magnusB*tempC/(magnusC+tempC))
	return math.Round(10000*ratio) / 100, nil
}

// WindChill returns the NWS wind chill temperature in Fahrenheit. The second
// return value is false when the formula does not apply (wind below 3 mph or
// temperature at or above 50F); callers should fall back to the air temperature.
func WindChill(fahrenheit float64, windKnots int) (float64, bool) {
	mph := KnotsToMph(windKnots)
	if mph < windChillMinMph || fahrenheit >= windChillMaxTempF {
		return 0, false
	}
	v := math.Pow(mph, 0.16)
	return 35.74 + 0.6215*fahrenheit - 35.75*v + 0.4275*fahrenheit*v, true
}

// HeatIndexApplies reports whether the Rothfusz regression is defined for the inputs.
func HeatIndexApplies(celsius, relativeHumidity float64) bool {
	return celsius >= heatIndexMinTemp && relativeHumidity >= heatIndexMinRH
}

// HeatIndex evaluates the Rothfusz regression for a temperature and a relative
// humidity percentage. Outside the regression's regime the temperature is
// returned unchanged.
//
// The inputs are Celsius, while the published regression is calibrated for
// Fahrenheit. The Celsius-space output is kept as is.
func HeatIndex(celsius, relativeHumidity float64) float64 {
	if !HeatIndexApplies(celsius, relativeHumidity) {
		return celsius
	}
	t, r := celsius, relativeHumidity
	return hiC1 + hiC2*t +
		hiC3*r +
		hiC4*t*r +
		hiC5*t*t +
		hiC6*r*r +
		hiC7*t*t*r +
		hiC8*t*r*r +
		hiC9*t*t*r*r
}
