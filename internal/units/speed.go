// Package units converts the km/h speeds vehicles report into display units.
package units

import "strings"

const (
	KMH = "kmh"
	MPH = "mph"
	MPS = "mps"
)

// ValidUnits lists the accepted unit names.
var ValidUnits = []string{KMH, MPH, MPS}

func IsValid(unit string) bool {
	for _, u := range ValidUnits {
		if unit == u {
			return true
		}
	}
	return false
}

// GetValidUnitsString returns the valid units for error messages.
func GetValidUnitsString() string {
	return strings.Join(ValidUnits, ", ")
}

// ConvertSpeed converts a km/h speed to the target units. Unknown units
// leave the value unchanged.
func ConvertSpeed(speedKmh float64, targetUnits string) float64 {
	switch targetUnits {
	case MPH:
		return speedKmh / 1.609344
	case MPS:
		return speedKmh / 3.6
	default:
		return speedKmh
	}
}

// Label is the suffix printed after a converted speed.
func Label(unit string) string {
	switch unit {
	case MPH:
		return "mph"
	case MPS:
		return "m/s"
	default:
		return "km/h"
	}
}
