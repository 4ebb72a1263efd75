package units

import "math"

// Physical constants (CODATA 2018 exact / recommended values).
const (
	// PlanckConstant in J·s
	PlanckConstant = 6.62607015e-34
	// ElementaryCharge is the electron charge magnitude in C
	ElementaryCharge = 1.602176634e-19
	// ElectronMass is the electron rest mass in kg
	ElectronMass = 9.1093837015e-31
)

// CalculateWavelength returns the non-relativistic de Broglie wavelength in
// metres of an electron accelerated through phi0 volts.
func CalculateWavelength(phi0 float64) float64 {
	return PlanckConstant / math.Sqrt(2*math.Abs(ElementaryCharge)*ElectronMass*phi0)
}

// CalculatePhi0 is the inverse of CalculateWavelength: the accelerating
// voltage in volts that yields the given wavelength in metres.
func CalculatePhi0(wavelength float64) float64 {
	return PlanckConstant * PlanckConstant / (2 * wavelength * wavelength * math.Abs(ElementaryCharge) * ElectronMass)
}
