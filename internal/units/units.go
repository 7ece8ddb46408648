// Package units maps the Weather Underground unit-system codes onto the
// unit labels Home Assistant expects, and provides the conversions
// between the two measurement systems.
package units

import "fmt"

// System is a Weather Underground unit-system code, passed verbatim as
// the "units" query parameter on every API request.
type System string

const (
	// Metric: °C, km/h, hPa, km, mm.
	Metric System = "m"
	// Imperial: °F, mph, inHg, mi, in.
	Imperial System = "e"
	// Hybrid (UK): °C with mph wind and mi visibility.
	Hybrid System = "h"
)

// Parse validates a unit-system code from configuration.
func Parse(s string) (System, error) {
	switch System(s) {
	case Metric, Imperial, Hybrid:
		return System(s), nil
	default:
		return "", fmt.Errorf("invalid unit system %q (allowed: m, e, h)", s)
	}
}

// Temperature returns the temperature unit label for the system.
func (s System) Temperature() string {
	if s == Imperial {
		return "°F"
	}
	return "°C"
}

// WindSpeed returns the wind speed unit label for the system.
func (s System) WindSpeed() string {
	if s == Metric {
		return "km/h"
	}
	return "mph"
}

// Pressure returns the barometric pressure unit label for the system.
func (s System) Pressure() string {
	if s == Imperial {
		return "inHg"
	}
	return "hPa"
}

// Visibility returns the visibility distance unit label for the system.
func (s System) Visibility() string {
	if s == Metric {
		return "km"
	}
	return "mi"
}

// Precipitation returns the precipitation amount unit label for the system.
func (s System) Precipitation() string {
	if s == Imperial {
		return "in"
	}
	return "mm"
}

// Conversion factors between the metric and imperial representations of
// the fields the API serves.
const (
	kmPerMile  = 1.609344
	hpaPerInHg = 33.863886666667
	mmPerInch  = 25.4
)

// CToF converts Celsius to Fahrenheit.
func CToF(c float64) float64 { return c*9/5 + 32 }

// FToC converts Fahrenheit to Celsius.
func FToC(f float64) float64 { return (f - 32) * 5 / 9 }

// KmhToMph converts kilometres per hour to miles per hour.
func KmhToMph(v float64) float64 { return v / kmPerMile }

// MphToKmh converts miles per hour to kilometres per hour.
func MphToKmh(v float64) float64 { return v * kmPerMile }

// HpaToInHg converts hectopascals to inches of mercury.
func HpaToInHg(v float64) float64 { return v / hpaPerInHg }

// InHgToHpa converts inches of mercury to hectopascals.
func InHgToHpa(v float64) float64 { return v * hpaPerInHg }

// KmToMi converts kilometres to miles.
func KmToMi(v float64) float64 { return v / kmPerMile }

// MiToKm converts miles to kilometres.
func MiToKm(v float64) float64 { return v * kmPerMile }

// MmToIn converts millimetres to inches.
func MmToIn(v float64) float64 { return v / mmPerInch }

// InToMm converts inches to millimetres.
func InToMm(v float64) float64 { return v * mmPerInch }
