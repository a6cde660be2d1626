package genericdash

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gavinwade12/linkdash/units"
	"github.com/pkg/errors"
)

// Metadata describes how a parameter should be presented.
type Metadata struct {
	Name          string
	Unit          units.Unit
	DecimalPlaces int
	Minimum       int
	Maximum       int
}

// Format renders v with the parameter's decimal places and unit.
func (m Metadata) Format(v float64) string {
	return strings.TrimSpace(strconv.FormatFloat(v, 'f', m.DecimalPlaces, 64) + " " + string(m.Unit))
}

// packed metadata, one entry per Parameter:
// "name|unit|decimal places|minimum|maximum"
var packedMetadata = [ParameterCount]string{
	"Engine Speed|RPM|0|0|15000",
	"Manifold Abs. Pres.|kPa|0|0|650",
	"Manifold Gauge Pres.|kPa|0|-100|550",
	"Barometric Pressure|kPa|0|0|200",
	"Throttle Position|%|1|0|100",
	"Injector Duty Cycle|%|1|0|100",
	"Secondary Injector DC|%|1|0|100",
	"Injector Pulse Width|ms|2|0|65",
	"Engine Coolant Temp|°C|0|-50|205",
	"Intake Air Temp|°C|0|-20|205",
	"Battery Voltage|V|2|0|65",
	"Mass Air Flow|g/s|1|0|6500",
	"Gear Position| |0|0|15",
	"Injector Timing|°|0|0|719",
	"Ignition Timing|°|1|-100|100",
	"Cam Inlet Position L|°|1|0|60",
	"Cam Inlet Position R|°|1|0|60",
	"Cam Exhaust Position L|°|1|-60|0",
	"Cam Exhaust Position R|°|1|-60|0",
	"Lambda Sensor 1|λ|3|0|3",
	"Lambda Sensor 2|λ|3|0|3",
	"Trigger 1 Errors|total|0|0|255",
	"Fault Codes|code|0|0|255",
	"Fuel Pressure|kPa|0|0|6550",
	"Oil Temp|°C|0|-50|205",
	"Oil Pressure|kPa|0|0|6550",
	"LF Wheel Speed|KPH|1|0|1000",
	"LR Wheel Speed|KPH|1|0|1000",
	"RF Wheel Speed|KPH|1|0|1000",
	"RR Wheel Speed|KPH|1|0|1000",
	"Knock Level Cyl 1|level|0|0|1000",
	"Knock Level Cyl 2|level|0|0|1000",
	"Knock Level Cyl 3|level|0|0|1000",
	"Knock Level Cyl 4|level|0|0|1000",
	"Knock Level Cyl 5|level|0|0|1000",
	"Knock Level Cyl 6|level|0|0|1000",
	"Knock Level Cyl 7|level|0|0|1000",
	"Knock Level Cyl 8|level|0|0|1000",
	"Limit Flags| |0|0|65535",
	"Accelerator Position|%|1|0|100",
	"Ethanol Content|%|0|0|100",
	"Statuses| |0|0|65535",
}

var catalog = mustParseMetadata(packedMetadata[:])

func mustParseMetadata(packed []string) []Metadata {
	md := make([]Metadata, len(packed))
	for i, s := range packed {
		m, err := parseMetadata(s)
		if err != nil {
			panic(fmt.Sprintf("genericdash: metadata for parameter %d: %v", i, err))
		}
		md[i] = m
	}
	return md
}

func parseMetadata(s string) (Metadata, error) {
	fields := strings.Split(s, "|")
	if len(fields) != 5 {
		return Metadata{}, errors.Errorf("expected 5 fields, got %d in %q", len(fields), s)
	}

	var nums [3]int
	for i, f := range fields[2:] {
		n, err := strconv.Atoi(f)
		if err != nil {
			return Metadata{}, errors.Wrapf(err, "parsing field %d of %q", i+2, s)
		}
		nums[i] = n
	}

	return Metadata{
		Name:          fields[0],
		Unit:          units.Unit(fields[1]),
		DecimalPlaces: nums[0],
		Minimum:       nums[1],
		Maximum:       nums[2],
	}, nil
}

// LookupMetadata returns the presentation metadata for p.
func LookupMetadata(p Parameter) (Metadata, error) {
	if !p.valid() {
		return Metadata{}, errors.Wrapf(ErrUnknownParameter, "parameter %d", int(p))
	}
	return catalog[p], nil
}

// ParameterName returns the display name of p.
func ParameterName(p Parameter) (string, error) {
	m, err := LookupMetadata(p)
	return m.Name, err
}

// ParameterUnit returns the unit p is decoded in.
func ParameterUnit(p Parameter) (units.Unit, error) {
	m, err := LookupMetadata(p)
	return m.Unit, err
}

// ParameterDecimalPlaces returns the number of decimal places p is displayed with.
func ParameterDecimalPlaces(p Parameter) (int, error) {
	m, err := LookupMetadata(p)
	return m.DecimalPlaces, err
}

// ParameterMinimum returns the lowest value p is expected to take.
func ParameterMinimum(p Parameter) (int, error) {
	m, err := LookupMetadata(p)
	return m.Minimum, err
}

// ParameterMaximum returns the highest value p is expected to take.
func ParameterMaximum(p Parameter) (int, error) {
	m, err := LookupMetadata(p)
	return m.Maximum, err
}

var limitFlagNames = [LimitFlagCount]string{
	"RPM Limit",
	"MAP Limit",
	"Speed Limit",
	"Max Ign Timing",
	"Anti-Lag Ign Cut",
	"ECU High Voltage",
	"Overrun",
	"Traction Limit",
	"ECU Low Voltage",
	"Launch RPM Limit",
	"Wakeup",
	"GP RPM Limit 1",
	"Max ISC Steps",
	"GP RPM Limit 2",
	"E-Throttle Limit",
	"Cyclic Idle",
}

// LimitFlagName returns the display name of f.
func LimitFlagName(f LimitFlag) (string, error) {
	if !f.valid() {
		return "", errors.Wrapf(ErrUnknownLimitFlag, "flag %d", f)
	}
	return limitFlagNames[f], nil
}
