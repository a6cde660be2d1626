package units_test

import (
	"errors"
	"math"
	"testing"

	"github.com/gavinwade12/linkdash/units"
)

func TestConvert(t *testing.T) {
	tests := []struct {
		name    string
		value   float64
		from    units.Unit
		to      units.Unit
		want    float64
		wantErr bool
	}{
		{"Same unit", 42, units.KPA, units.KPA, 42, false},
		{"Celsius to Fahrenheit", 100, units.C, units.F, 212, false},
		{"Fahrenheit to Celsius", 32, units.F, units.C, 0, false},
		{"kPa to bar", 250, units.KPA, units.BAR, 2.5, false},
		{"Lambda to AFR", 1, units.Lambda, units.AFR, units.StoichiometricAFR, false},
		{"KPH to MPH", 100, units.KPH, units.MPH, 62.1371, false},
		{"Unknown source", 1, units.Code, units.KPA, 0, true},
		{"Unknown target", 1, units.KPA, units.RPM, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := units.Convert(tt.value, tt.from, tt.to)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Convert() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				if !errors.Is(err, units.ErrInvalidConversion) {
					t.Fatalf("want ErrInvalidConversion. got: %v.", err)
				}
				return
			}
			if math.Abs(got-tt.want) > 1e-9 {
				t.Fatalf("Convert() = %v, want %v", got, tt.want)
			}
		})
	}
}
