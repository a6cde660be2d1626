package genericdash

import "github.com/pkg/errors"

// LimitFlag is a bit within the LimitFlags parameter.
type LimitFlag uint8

// The known limit flags. Each value is the flag's bit position.
const (
	LimitRPM LimitFlag = iota
	LimitMAP
	LimitSpeed
	LimitMaximumIgnition
	LimitAntiLagIgnitionCut
	LimitHighSupplyVoltage
	LimitOverrun
	LimitTraction
	LimitLowSupplyVoltage
	LimitLaunchRPM
	LimitWakeup
	LimitGPRPM1
	LimitCLStepper
	LimitGPRPM2
	LimitEThrottle
	LimitCyclicIdle

	// LimitFlagCount is the number of known limit flags.
	LimitFlagCount int = iota
)

// FeatureStatus is a multi-bit field within the Statuses parameter.
type FeatureStatus uint8

// The known feature statuses.
const (
	StatusAntiLag FeatureStatus = iota
	StatusLaunchControl
	StatusTractionControl
	StatusCruiseControl

	// FeatureStatusCount is the number of known feature statuses.
	FeatureStatusCount int = iota
)

var (
	// ErrUnknownLimitFlag is returned for a LimitFlag outside the known set.
	ErrUnknownLimitFlag = errors.New("unknown limit flag")

	// ErrUnknownFeatureStatus is returned for a FeatureStatus outside the known set.
	ErrUnknownFeatureStatus = errors.New("unknown feature status")
)

func (f LimitFlag) valid() bool {
	return int(f) < LimitFlagCount
}

func (s FeatureStatus) valid() bool {
	return int(s) < FeatureStatusCount
}

// bitField is the position of a feature status within the Statuses word.
type bitField struct {
	offset uint
	width  uint
}

func (b bitField) extract(v uint16) uint8 {
	return uint8((v >> b.offset) & (1<<b.width - 1))
}

var featureFields = [FeatureStatusCount]bitField{
	StatusAntiLag:         {offset: 5, width: 3},
	StatusLaunchControl:   {offset: 3, width: 2},
	StatusTractionControl: {offset: 0, width: 3},
	StatusCruiseControl:   {offset: 12, width: 3},
}

func (s *FrameStore) bitfield(p Parameter) uint16 {
	v, _ := s.Decode(p)
	return uint16(int64(v))
}

// LimitFlag reports whether the given limit flag is set.
func (s *FrameStore) LimitFlag(f LimitFlag) (bool, error) {
	if !f.valid() {
		return false, errors.Wrapf(ErrUnknownLimitFlag, "flag %d", f)
	}
	return (s.bitfield(LimitFlags)>>f)&1 == 1, nil
}

// ActiveLimitFlags returns every limit flag currently set.
func (s *FrameStore) ActiveLimitFlags() []LimitFlag {
	flags := s.bitfield(LimitFlags)
	active := []LimitFlag{}
	for f := LimitFlag(0); int(f) < LimitFlagCount; f++ {
		if (flags>>f)&1 == 1 {
			active = append(active, f)
		}
	}
	return active
}

// FeatureStatus returns the state code of the given feature. The code is not
// checked against the feature's known states; see FeatureStateName.
func (s *FrameStore) FeatureStatus(fs FeatureStatus) (uint8, error) {
	if !fs.valid() {
		return 0, errors.Wrapf(ErrUnknownFeatureStatus, "status %d", fs)
	}
	return featureFields[fs].extract(s.bitfield(Statuses)), nil
}

// UnknownState is the name given to a state code a feature doesn't define.
const UnknownState = "Unknown"

var featureNames = [FeatureStatusCount]string{
	StatusAntiLag:         "Anti-Lag",
	StatusLaunchControl:   "Launch Control",
	StatusTractionControl: "Traction Control",
	StatusCruiseControl:   "Cruise Control",
}

var featureStates = [FeatureStatusCount][]string{
	StatusAntiLag: {
		"System Off",
		"Anti-Lag Active",
		"Off - Low RPM",
		"Armed - Cyclic Off",
		"Armed - Cyclic Active",
		"Cyclic Cooldown Active",
		"Disarmed - Cyclic Active",
	},
	StatusLaunchControl: {
		"Off",
		"On - Active",
		"On - Inactive",
	},
	StatusTractionControl: {
		"Off",
		"Off - RPM Lockout",
		"Off - TPS Lockout",
		"Off - Speed Lockout",
		"Ready",
		"Active",
		"Disabled",
	},
	StatusCruiseControl: {
		"Off",
		"Enabled",
		"Active",
		"Startup Lockout",
		"Min RPM",
		"Max RPM",
		"CAN Error",
	},
}

// FeatureName returns the display name of a feature.
func FeatureName(fs FeatureStatus) (string, error) {
	if !fs.valid() {
		return "", errors.Wrapf(ErrUnknownFeatureStatus, "status %d", fs)
	}
	return featureNames[fs], nil
}

// FeatureStateName returns the display name of a feature's state code.
// Codes the feature doesn't define are named UnknownState.
func FeatureStateName(fs FeatureStatus, state uint8) (string, error) {
	if !fs.valid() {
		return "", errors.Wrapf(ErrUnknownFeatureStatus, "status %d", fs)
	}
	states := featureStates[fs]
	if int(state) >= len(states) {
		return UnknownState, nil
	}
	return states[state], nil
}
