package genericdash

import (
	"fmt"

	"github.com/gavinwade12/linkdash/units"
	"github.com/pkg/errors"
)

// Parameter identifies a value broadcast over Generic Dash.
type Parameter int

// The known parameters, in the order they appear on the bus.
const (
	EngineSpeed Parameter = iota
	ManifoldAbsolutePressure
	ManifoldGaugePressure
	BarometricPressure
	ThrottlePosition
	InjectorDutyCycle
	SecondaryInjectorDutyCycle
	InjectorPulseWidth
	CoolantTemperature
	IntakeAirTemperature
	BatteryVoltage
	MassAirFlow
	GearPosition
	InjectorTiming
	IgnitionTiming
	CamInletPositionL
	CamInletPositionR
	CamExhaustPositionL
	CamExhaustPositionR
	Lambda1
	Lambda2
	Trigger1ErrorCount
	FaultCodes
	FuelPressure
	OilTemperature
	OilPressure
	LeftFrontWheelSpeed
	LeftRearWheelSpeed
	RightFrontWheelSpeed
	RightRearWheelSpeed
	KnockLevel1
	KnockLevel2
	KnockLevel3
	KnockLevel4
	KnockLevel5
	KnockLevel6
	KnockLevel7
	KnockLevel8
	LimitFlags
	AcceleratorPosition
	EthanolContent
	Statuses

	// ParameterCount is the number of known parameters.
	ParameterCount int = iota
)

// ErrUnknownParameter is returned for a Parameter outside the known set.
var ErrUnknownParameter = errors.New("unknown parameter")

// descriptor locates a parameter's word within the frame store and describes
// how to turn the raw word into an engineering value: raw*scale + bias.
// Words are read as int16 unless the parameter's documented range needs the
// full uint16 span: injector pulse width (0-65 ms at 0.001), mass air flow
// (0-6500 g/s at 0.1) and the limit flag and status bit fields.
type descriptor struct {
	key    string
	slot   int
	offset int
	signed bool
	scale  float64
	bias   float64
}

var descriptors = [ParameterCount]descriptor{
	EngineSpeed:                {"engine_speed", 0, FrameIndexWordA, true, 1, 0},
	ManifoldAbsolutePressure:   {"map", 0, FrameIndexWordB, true, 1, 0},
	ManifoldGaugePressure:      {"mgp", 0, FrameIndexWordC, true, 1, -100},
	BarometricPressure:         {"barometric_pressure", 1, FrameIndexWordA, true, 0.1, 0},
	ThrottlePosition:           {"throttle_position", 1, FrameIndexWordB, true, 0.1, 0},
	InjectorDutyCycle:          {"injector_duty_cycle", 1, FrameIndexWordC, true, 0.1, 0},
	SecondaryInjectorDutyCycle: {"secondary_injector_duty_cycle", 2, FrameIndexWordA, true, 0.1, 0},
	InjectorPulseWidth:         {"injector_pulse_width", 2, FrameIndexWordB, false, 0.001, 0},
	CoolantTemperature:         {"coolant_temperature", 2, FrameIndexWordC, true, 1, -50},
	IntakeAirTemperature:       {"intake_air_temperature", 3, FrameIndexWordA, true, 1, -50},
	BatteryVoltage:             {"battery_voltage", 3, FrameIndexWordB, true, 0.01, 0},
	MassAirFlow:                {"mass_air_flow", 3, FrameIndexWordC, false, 0.1, 0},
	GearPosition:               {"gear_position", 4, FrameIndexWordA, true, 1, 0},
	InjectorTiming:             {"injector_timing", 4, FrameIndexWordB, true, 1, 0},
	IgnitionTiming:             {"ignition_timing", 4, FrameIndexWordC, true, 0.1, -100},
	CamInletPositionL:          {"cam_inlet_position_l", 5, FrameIndexWordA, true, 0.1, 0},
	CamInletPositionR:          {"cam_inlet_position_r", 5, FrameIndexWordB, true, 0.1, 0},
	CamExhaustPositionL:        {"cam_exhaust_position_l", 5, FrameIndexWordC, true, -0.1, 0},
	CamExhaustPositionR:        {"cam_exhaust_position_r", 6, FrameIndexWordA, true, -0.1, 0},
	Lambda1:                    {"lambda_1", 6, FrameIndexWordB, true, 0.001, 0},
	Lambda2:                    {"lambda_2", 6, FrameIndexWordC, true, 0.001, 0},
	Trigger1ErrorCount:         {"trigger_1_errors", 7, FrameIndexWordA, true, 1, 0},
	FaultCodes:                 {"fault_codes", 7, FrameIndexWordB, true, 1, 0},
	FuelPressure:               {"fuel_pressure", 7, FrameIndexWordC, true, 1, 0},
	OilTemperature:             {"oil_temperature", 8, FrameIndexWordA, true, 1, -50},
	OilPressure:                {"oil_pressure", 8, FrameIndexWordB, true, 1, 0},
	LeftFrontWheelSpeed:        {"lf_wheel_speed", 8, FrameIndexWordC, true, 0.1, 0},
	LeftRearWheelSpeed:         {"lr_wheel_speed", 9, FrameIndexWordA, true, 0.1, 0},
	RightFrontWheelSpeed:       {"rf_wheel_speed", 9, FrameIndexWordB, true, 0.1, 0},
	RightRearWheelSpeed:        {"rr_wheel_speed", 9, FrameIndexWordC, true, 0.1, 0},
	KnockLevel1:                {"knock_level_1", 10, FrameIndexWordA, true, 5, 0},
	KnockLevel2:                {"knock_level_2", 10, FrameIndexWordB, true, 5, 0},
	KnockLevel3:                {"knock_level_3", 10, FrameIndexWordC, true, 5, 0},
	KnockLevel4:                {"knock_level_4", 11, FrameIndexWordA, true, 5, 0},
	KnockLevel5:                {"knock_level_5", 11, FrameIndexWordB, true, 5, 0},
	KnockLevel6:                {"knock_level_6", 11, FrameIndexWordC, true, 5, 0},
	KnockLevel7:                {"knock_level_7", 12, FrameIndexWordA, true, 5, 0},
	KnockLevel8:                {"knock_level_8", 12, FrameIndexWordB, true, 5, 0},
	LimitFlags:                 {"limit_flags", 12, FrameIndexWordC, false, 1, 0},
	AcceleratorPosition:        {"accelerator_position", 13, FrameIndexWordA, true, 0.1, 0},
	EthanolContent:             {"ethanol_content", 13, FrameIndexWordB, true, 0.1, 0},
	Statuses:                   {"statuses", 13, FrameIndexWordC, false, 1, 0},
}

func (p Parameter) valid() bool {
	return p >= 0 && int(p) < ParameterCount
}

// Key returns the stable identifier used for the parameter in config files.
func (p Parameter) Key() string {
	if !p.valid() {
		return ""
	}
	return descriptors[p].key
}

func (p Parameter) String() string {
	if !p.valid() {
		return fmt.Sprintf("Parameter(%d)", int(p))
	}
	return descriptors[p].key
}

// Parameters returns every known parameter in bus order.
func Parameters() []Parameter {
	params := make([]Parameter, ParameterCount)
	for i := range params {
		params[i] = Parameter(i)
	}
	return params
}

// ParameterByKey finds the parameter with the given key.
func ParameterByKey(key string) (Parameter, error) {
	for i, d := range descriptors {
		if d.key == key {
			return Parameter(i), nil
		}
	}
	return 0, errors.Wrapf(ErrUnknownParameter, "key %q", key)
}

// Decode returns the scaled value of p from the frames currently held in the
// store. Slots that have never been ingested decode as all-zero bytes.
func (s *FrameStore) Decode(p Parameter) (float64, error) {
	if !p.valid() {
		return 0, errors.Wrapf(ErrUnknownParameter, "parameter %d", int(p))
	}

	d := descriptors[p]
	w := s.word(d.slot, d.offset)

	var raw float64
	if d.signed {
		raw = float64(int16(w))
	} else {
		raw = float64(w)
	}

	return raw*d.scale + d.bias, nil
}

// ParameterValue stores a parameter's value with its current unit.
type ParameterValue struct {
	Value float64
	Unit  units.Unit
}

// ConvertTo converts a parameter value from its current unit to the given unit.
func (v ParameterValue) ConvertTo(u units.Unit) (*ParameterValue, error) {
	if u == v.Unit {
		return &ParameterValue{v.Value, v.Unit}, nil
	}

	val, err := units.Convert(v.Value, v.Unit, u)
	if err != nil {
		return nil, err
	}

	return &ParameterValue{Value: val, Unit: u}, nil
}

// SafeConvertTo converts the value to the given unit, returning a zero value
// in that unit when no conversion exists.
func (v ParameterValue) SafeConvertTo(u units.Unit) ParameterValue {
	pv, _ := v.ConvertTo(u)
	if pv != nil {
		return *pv
	}
	return ParameterValue{Unit: u}
}

// Value decodes p and pairs it with the unit from its metadata.
func (s *FrameStore) Value(p Parameter) (ParameterValue, error) {
	v, err := s.Decode(p)
	if err != nil {
		return ParameterValue{}, err
	}
	return ParameterValue{Value: v, Unit: catalog[p].Unit}, nil
}

// Snapshot decodes the given parameters, or every parameter when none are
// given. Unknown parameters are left out of the result.
func (s *FrameStore) Snapshot(params ...Parameter) map[Parameter]ParameterValue {
	if len(params) == 0 {
		params = Parameters()
	}

	values := make(map[Parameter]ParameterValue, len(params))
	for _, p := range params {
		v, err := s.Value(p)
		if err != nil {
			continue
		}
		values[p] = v
	}
	return values
}
