// Package units provides physical constants for electron optics together with
// the length and voltage unit conversions used when reporting beam parameters.
package units

// Length unit constants
const (
	Metre     = "m"
	Nanometre = "nm"
	Picometre = "pm"
	Angstrom  = "angstrom"
)

// Voltage unit constants
const (
	Volt     = "v"
	Kilovolt = "kv"
)

// ValidLengthUnits contains all valid length unit values
var ValidLengthUnits = []string{Metre, Nanometre, Picometre, Angstrom}

// ValidVoltageUnits contains all valid voltage unit values
var ValidVoltageUnits = []string{Volt, Kilovolt}

// IsValidLength checks if the given unit is a known length unit
func IsValidLength(unit string) bool {
	for _, u := range ValidLengthUnits {
		if unit == u {
			return true
		}
	}
	return false
}

// IsValidVoltage checks if the given unit is a known voltage unit
func IsValidVoltage(unit string) bool {
	for _, u := range ValidVoltageUnits {
		if unit == u {
			return true
		}
	}
	return false
}

// GetValidLengthUnitsString returns a comma-separated string of valid length units for error messages
func GetValidLengthUnitsString() string {
	return "m, nm, pm, angstrom"
}

// ConvertLength converts a length in metres to the target units.
// Unknown units fall back to metres.
func ConvertLength(metres float64, targetUnits string) float64 {
	switch targetUnits {
	case Nanometre:
		return metres * 1e9
	case Picometre:
		return metres * 1e12
	case Angstrom:
		return metres * 1e10
	default:
		return metres
	}
}

// ToVolts converts a voltage in the given units to volts.
// Unknown units are treated as volts.
func ToVolts(value float64, unit string) float64 {
	switch unit {
	case Kilovolt:
		return value * 1e3
	default:
		return value
	}
}
