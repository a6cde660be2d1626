package units

import "github.com/pkg/errors"

// Unit provides common values for units used to describe a parameter's value.
// The string values match the unit column of the Generic Dash metadata table.
type Unit string

// The valid units.
const (
	// Rotational Speed
	RPM Unit = "RPM"

	// Velocity
	KPH Unit = "KPH"
	MPH Unit = "MPH"

	// Timing
	Degrees Unit = "°"

	// Temperature
	C Unit = "°C"
	F Unit = "°F"

	// Pressure
	KPA Unit = "kPa"
	PSI Unit = "psi"
	BAR Unit = "bar"

	// Airflow
	GS Unit = "g/s"

	// Fueling
	Lambda Unit = "λ"
	AFR    Unit = "AFR"

	// Electricity
	Volts Unit = "V"

	// Time
	MS Unit = "ms"

	// Misc
	Percent Unit = "%"
	Total   Unit = "total"
	Code    Unit = "code"
	Level   Unit = "level"
	None    Unit = " "
)

// StoichiometricAFR is the gasoline air-fuel ratio used for lambda conversions.
const StoichiometricAFR = 14.7

// ErrInvalidConversion is returned when an invalid unit conversion attempt is made.
var ErrInvalidConversion = errors.New("units are invalid for conversion")

// Convert converts value from one unit to another.
func Convert(value float64, from, to Unit) (float64, error) {
	if from == to {
		return value, nil
	}

	cvs := UnitConversions[from]
	if cvs == nil {
		return 0, errors.Wrapf(ErrInvalidConversion, "%q to %q", from, to)
	}

	cv := cvs[to]
	if cv == nil {
		return 0, errors.Wrapf(ErrInvalidConversion, "%q to %q", from, to)
	}

	return cv(value), nil
}

// UnitConversions provides conversion functions for the package-defined Units.
var UnitConversions = map[Unit]map[Unit]func(v float64) float64{
	KPH: {
		MPH: func(v float64) float64 {
			return v * 0.621371
		},
	},
	MPH: {
		KPH: func(v float64) float64 {
			return v * 1.60934
		},
	},
	C: {
		F: func(v float64) float64 {
			return (v / 5 * 9) + 32
		},
	},
	F: {
		C: func(v float64) float64 {
			return (v - 32) / 9 * 5
		},
	},
	KPA: {
		PSI: func(v float64) float64 {
			return v * 0.145038
		},
		BAR: func(v float64) float64 {
			return v / 100
		},
	},
	PSI: {
		KPA: func(v float64) float64 {
			return v * 6.89476
		},
		BAR: func(v float64) float64 {
			return v * 0.0689476
		},
	},
	BAR: {
		KPA: func(v float64) float64 {
			return v * 100
		},
		PSI: func(v float64) float64 {
			return v * 14.5038
		},
	},
	Lambda: {
		AFR: func(v float64) float64 {
			return v * StoichiometricAFR
		},
	},
	AFR: {
		Lambda: func(v float64) float64 {
			return v / StoichiometricAFR
		},
	},
}
