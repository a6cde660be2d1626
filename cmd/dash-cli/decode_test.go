package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/gavinwade12/linkdash/protocols/genericdash"
)

func TestParseHexFrame(t *testing.T) {
	want := genericdash.Frame{7, 0, 0, 0, 0x0f, 0, 0x2c, 0x01}
	for _, s := range []string{
		"070000000f002c01",
		"07 00 00 00 0f 00 2c 01",
		"0x07 0x00 0x00 0x00 0x0F 0x00 0x2C 0x01",
		"07:00:00:00:0f:00:2c:01",
	} {
		got, err := parseHexFrame(s)
		if err != nil {
			t.Fatalf("%q: %v", s, err)
		}
		if got != want {
			t.Fatalf("%q: want %v. got: %v.", s, want, got)
		}
	}

	for _, s := range []string{"0700", "zz00000000000000", "07000000000000000000"} {
		if _, err := parseHexFrame(s); err == nil {
			t.Fatalf("%q: expected error", s)
		}
	}
}

func TestPrintValues(t *testing.T) {
	store := genericdash.NewFrameStore()
	if err := store.Ingest(genericdash.Frame{7, 0, 0, 0, 0x0f, 0, 0x2c, 0x01}); err != nil {
		t.Fatal(err)
	}

	params, err := parametersByKey([]string{"fuel_pressure"})
	if err != nil {
		t.Fatal(err)
	}

	out := &bytes.Buffer{}
	printValues(out, store, params)
	if got := strings.TrimSpace(out.String()); got != "Fuel Pressure            300 kPa" {
		t.Fatalf("unexpected output %q", got)
	}

	out.Reset()
	printStatus(out, store)
	if !strings.Contains(out.String(), "Fault: 15 An Volt 2 Signal Error") {
		t.Fatalf("fault missing from %q", out.String())
	}
}

func TestParametersByKey(t *testing.T) {
	params, err := parametersByKey(nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(params) != genericdash.ParameterCount {
		t.Fatalf("want %d. got: %d.", genericdash.ParameterCount, len(params))
	}

	if _, err = parametersByKey([]string{"boost"}); err == nil {
		t.Fatal("expected error")
	}
}
