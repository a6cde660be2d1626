package genericdash

import "github.com/pkg/errors"

// FaultCode identifies a fault reported by the ECU.
type FaultCode uint16

// FaultNone is reported while the ECU has no active fault.
const FaultNone FaultCode = 0

// FaultCodeCount is the number of known fault codes.
const FaultCodeCount int = 124

// ErrUnknownFaultCode is returned for a fault code outside the known set.
var ErrUnknownFaultCode = errors.New("unknown fault code")

// fault descriptions shared by the G4+, G4X and G5 ECUs, indexed by code
var faultDescriptions = [FaultCodeCount]string{
	"No Fault",
	"RPM limit reached",
	"MAP limit reached",
	"Ethanol Sensor Fault",
	"Consult Link Dealership",
	"Consult Link Dealership",
	"Consult Link Dealership",
	"Consult Link Dealership",
	"Consult Link Dealership",
	"Consult Link Dealership",
	"An Volt 1 above Error High Value",
	"An Volt 1 below Error Low Value",
	"An Volt 1 Signal Error",
	"An Volt 2 above Error High Value",
	"An Volt 2 below Error Low Value",
	"An Volt 2 Signal Error",
	"An Volt 3 above Error High Value",
	"An Volt 3 below Error Low Value",
	"An Volt 3 Signal Error",
	"An Volt 4 above Error High Value",
	"An Volt 4 below Error Low Value",
	"An Volt 4 Signal Error",
	"An Volt 5 above Error High Value",
	"An Volt 5 below Error Low Value",
	"An Volt 5 Signal Error",
	"An Volt 6 above Error High Value",
	"An Volt 6 below Error Low Value",
	"An Volt 6 Signal Error",
	"An Volt 7 above Error High Value",
	"An Volt 7 below Error Low Value",
	"An Volt 7 Signal Error",
	"An Volt 8 above Error High Value",
	"An Volt 8 below Error Low Value",
	"An Volt 8 Signal Error",
	"An Volt 9 above Error High Value",
	"An Volt 9 below Error Low Value",
	"An Volt 9 Signal Error",
	"An Volt 10 above Error High Value",
	"An Volt 10 below Error Low Value",
	"An Volt 10 Signal Error",
	"An Volt 11 above Error High Value",
	"An Volt 11 below Error Low Value",
	"An Volt 11 Signal Error",
	"An Temp 1 above Error High Value",
	"An Temp 1 below Error Low Value",
	"An Temp 1 Signal Error",
	"An Temp 2 above Error High Value",
	"An Temp 2 below Error Low Value",
	"An Temp 2 Signal Error",
	"An Temp 3 above Error High Value",
	"An Temp 3 below Error Low Value",
	"An Temp 3 Signal Error",
	"An Temp 4 above Error High Value",
	"An Temp 4 below Error Low Value",
	"An Temp 4 Signal Error",
	"Consult Link Dealership",
	"MAP Above Fault Code Value",
	"MAP Signal Error",
	"See Link Manual",
	"See Link Manual",
	"See Link Manual",
	"See Link Manual",
	"ECT Above Fault Code Value",
	"ECT Signal Error",
	"See Link Manual",
	"See Link Manual",
	"See Link Manual",
	"See Link Manual",
	"Consult Link Dealership",
	"E-Throttle 1 Max %DC Limit",
	"E-Throttle 1 Min %DC Limit",
	"Aux 9/10 Supply Error - E-Throttle",
	"Analog 5V Supply Error - E-Throttle (E-Throttle Sensor Supply Voltage)",
	"Aux 9/10 Supply Error - E-Throttle",
	"Analog 5V Supply Error",
	"E-Throttle 1 TPS /Target Error",
	"TPS(main) /TPS(sub) tracking Error",
	"APS(main) /APS(sub) tracking Error",
	"TPS(Main) Fault - E-Throttle.",
	"TPS(Sub) Fault - E-Throttle",
	"TPS(Main) Above Fault Code Value",
	"TPS(Sub) Above Fault Code Value",
	"TPS(Main) Not Selected",
	"TPS(Sub) Not Selected",
	"Aux9/10 E-Throttle IC Over Temp / Under Voltage",
	"APS(Main) Fault - E-Throttle.",
	"APS(Sub) Fault - E-Throttle",
	"See Link Manual",
	"APS(Sub) Above Fault Code Value",
	"APS(Main) Not Selected",
	"APS(Sub) Not Selected",
	"Consult Link Dealership",
	"APS CAN Signal Lost",
	"E-Throttle 2 Max %DC Limit",
	"E-Throttle 2 Min %DC Limit",
	"E-Throttle 2 TPS 2 /Target Error",
	"TPS 2 (Main) Fault - E-Throttle 2",
	"TPS 2 (Sub) Fault - E-Throttle 2",
	"TPS 2 (Main) / TPS 2 (Sub) tracking Error",
	"Aux 17-20 Supply Error",
	"Aux 17-20 Supply Error - E-Throttle",
	"An Volt 12 above Error High Value",
	"An Volt 12 below Error Low Value",
	"An Volt 12 Signal Error",
	"An Volt 13 above Error High Value",
	"An Volt 13 below Error Low Value",
	"An Volt 13 Signal Error",
	"An Volt 14 above Error High Value",
	"An Volt 14 below Error Low Value",
	"An Volt 14 Signal Error",
	"An Volt 15 above Error High Value",
	"An Volt 15 below Error Low Value",
	"An Volt 15 Signal Error",
	"An Volt 16 above Error High Value",
	"An Volt 16 below Error Low Value",
	"An Volt 16 Signal Error",
	"Analog 5V Supply Error - E-Throttle 2 (E-Throttle 2 Sensor Supply Voltage)",
	"Aux 17-20 E-Throttle IC Over Temp / Under Voltage",
	"DI Fuel Pump Control Low Pressure Fault",
	"DI Fuel Pump Control High Pressure Fault",
	"Ethrottle Control Error",
	"Ethrottle No Relay Selected",
	"Maximum Injector Duty Cycle Reached",
	"DI Driver Fault",
}

// FaultDescription returns the description of a fault code.
func FaultDescription(code FaultCode) (string, error) {
	if int(code) >= FaultCodeCount {
		return "", errors.Wrapf(ErrUnknownFaultCode, "code %d", code)
	}
	return faultDescriptions[code], nil
}

// FaultCode decodes the fault code currently reported by the ECU.
func (s *FrameStore) FaultCode() (FaultCode, error) {
	v, err := s.Decode(FaultCodes)
	if err != nil {
		return 0, err
	}
	if v < 0 || int(v) >= FaultCodeCount {
		return 0, errors.Wrapf(ErrUnknownFaultCode, "code %v", v)
	}
	return FaultCode(v), nil
}
