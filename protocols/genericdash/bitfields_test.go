package genericdash_test

import (
	"errors"
	"reflect"
	"testing"

	"github.com/gavinwade12/linkdash/protocols/genericdash"
)

func limitFlagsFrame(v uint16) genericdash.Frame {
	return genericdash.Frame{12, 0, 0, 0, 0, 0, byte(v), byte(v >> 8)}
}

func TestFrameStore_LimitFlag(t *testing.T) {
	tests := []struct {
		name  string
		flags uint16
		flag  genericdash.LimitFlag
		want  bool
	}{
		{"rpm limit set", 0b1, genericdash.LimitRPM, true},
		{"rpm limit clear", 0b10, genericdash.LimitRPM, false},
		{"map limit set", 0b10, genericdash.LimitMAP, true},
		{"cyclic idle set", 0x8000, genericdash.LimitCyclicIdle, true},
		{"cyclic idle clear", 0x7fff, genericdash.LimitCyclicIdle, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := storeWith(t, limitFlagsFrame(tt.flags))
			got, err := s.LimitFlag(tt.flag)
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Fatalf("want %v. got: %v.", tt.want, got)
			}
		})
	}

	s := genericdash.NewFrameStore()
	_, err := s.LimitFlag(genericdash.LimitFlag(genericdash.LimitFlagCount))
	if !errors.Is(err, genericdash.ErrUnknownLimitFlag) {
		t.Fatalf("want %v. got: %v.", genericdash.ErrUnknownLimitFlag, err)
	}
}

func TestFrameStore_ActiveLimitFlags(t *testing.T) {
	s := storeWith(t, limitFlagsFrame(1<<genericdash.LimitRPM|1<<genericdash.LimitTraction))
	want := []genericdash.LimitFlag{genericdash.LimitRPM, genericdash.LimitTraction}
	if got := s.ActiveLimitFlags(); !reflect.DeepEqual(got, want) {
		t.Fatalf("want %v. got: %v.", want, got)
	}

	if got := genericdash.NewFrameStore().ActiveLimitFlags(); len(got) != 0 {
		t.Fatalf("want no flags. got: %v.", got)
	}
}

func TestFrameStore_FeatureStatus(t *testing.T) {
	// traction 5, launch 2, anti-lag 1, cruise 3
	statuses := uint16(5 | 2<<3 | 1<<5 | 3<<12)
	s := storeWith(t, genericdash.Frame{13, 0, 0, 0, 0, 0, byte(statuses), byte(statuses >> 8)})

	tests := []struct {
		status genericdash.FeatureStatus
		want   uint8
		name   string
	}{
		{genericdash.StatusTractionControl, 5, "Active"},
		{genericdash.StatusLaunchControl, 2, "On - Inactive"},
		{genericdash.StatusAntiLag, 1, "Anti-Lag Active"},
		{genericdash.StatusCruiseControl, 3, "Startup Lockout"},
	}
	for _, tt := range tests {
		got, err := s.FeatureStatus(tt.status)
		if err != nil {
			t.Fatal(err)
		}
		if got != tt.want {
			t.Fatalf("status %d: want %d. got: %d.", tt.status, tt.want, got)
		}

		name, err := genericdash.FeatureStateName(tt.status, got)
		if err != nil {
			t.Fatal(err)
		}
		if name != tt.name {
			t.Fatalf("want %q. got: %q.", tt.name, name)
		}
	}

	_, err := s.FeatureStatus(genericdash.FeatureStatus(genericdash.FeatureStatusCount))
	if !errors.Is(err, genericdash.ErrUnknownFeatureStatus) {
		t.Fatalf("want %v. got: %v.", genericdash.ErrUnknownFeatureStatus, err)
	}
}

func TestFrameStore_FeatureStatusTractionBits(t *testing.T) {
	s := storeWith(t, genericdash.Frame{13, 0, 0, 0, 0, 0, 0b101, 0})
	got, err := s.FeatureStatus(genericdash.StatusTractionControl)
	if err != nil {
		t.Fatal(err)
	}
	if got != 5 {
		t.Fatalf("want 5. got: %d.", got)
	}
}

func TestFeatureStateName(t *testing.T) {
	tests := []struct {
		name   string
		status genericdash.FeatureStatus
		state  uint8
		want   string
	}{
		{"launch off", genericdash.StatusLaunchControl, 0, "Off"},
		{"launch undefined", genericdash.StatusLaunchControl, 3, genericdash.UnknownState},
		{"anti-lag undefined", genericdash.StatusAntiLag, 7, genericdash.UnknownState},
		{"cruise can error", genericdash.StatusCruiseControl, 6, "CAN Error"},
		{"cruise undefined", genericdash.StatusCruiseControl, 7, genericdash.UnknownState},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := genericdash.FeatureStateName(tt.status, tt.state)
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Fatalf("want %q. got: %q.", tt.want, got)
			}
		})
	}

	if _, err := genericdash.FeatureStateName(genericdash.FeatureStatus(9), 0); !errors.Is(err, genericdash.ErrUnknownFeatureStatus) {
		t.Fatalf("want %v. got: %v.", genericdash.ErrUnknownFeatureStatus, err)
	}
}

func TestFeatureName(t *testing.T) {
	name, err := genericdash.FeatureName(genericdash.StatusTractionControl)
	if err != nil {
		t.Fatal(err)
	}
	if name != "Traction Control" {
		t.Fatalf("want %q. got: %q.", "Traction Control", name)
	}
}
