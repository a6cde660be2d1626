package genericdash_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/BurntSushi/toml"
	"github.com/gavinwade12/linkdash/protocols/genericdash"
	"gopkg.in/yaml.v3"
)

func TestExportMetadata(t *testing.T) {
	params := genericdash.ExportMetadata()
	if len(params) != genericdash.ParameterCount {
		t.Fatalf("want %d parameters. got: %d.", genericdash.ParameterCount, len(params))
	}

	fp := params[genericdash.FuelPressure]
	want := genericdash.ExportedParameter{
		Key: "fuel_pressure", Name: "Fuel Pressure", Unit: "kPa", Maximum: 6550,
	}
	if fp != want {
		t.Fatalf("want %+v. got: %+v.", want, fp)
	}
}

func TestSaveMetadataToFile(t *testing.T) {
	decoders := map[string]func(b []byte) ([]genericdash.ExportedParameter, error){
		"metadata.json": func(b []byte) ([]genericdash.ExportedParameter, error) {
			var params []genericdash.ExportedParameter
			err := json.Unmarshal(b, &params)
			return params, err
		},
		"metadata.yaml": func(b []byte) ([]genericdash.ExportedParameter, error) {
			var params []genericdash.ExportedParameter
			err := yaml.Unmarshal(b, &params)
			return params, err
		},
		"metadata.toml": func(b []byte) ([]genericdash.ExportedParameter, error) {
			var doc struct {
				Parameters []genericdash.ExportedParameter `toml:"parameters"`
			}
			_, err := toml.Decode(string(b), &doc)
			return doc.Parameters, err
		},
	}

	dir := t.TempDir()
	for name, decode := range decoders {
		t.Run(name, func(t *testing.T) {
			file := filepath.Join(dir, name)
			if err := genericdash.SaveMetadataToFile(file); err != nil {
				t.Fatal(err)
			}

			b, err := os.ReadFile(file)
			if err != nil {
				t.Fatal(err)
			}
			params, err := decode(b)
			if err != nil {
				t.Fatal(err)
			}
			if len(params) != genericdash.ParameterCount {
				t.Fatalf("want %d parameters. got: %d.", genericdash.ParameterCount, len(params))
			}
			if params[genericdash.Lambda1].Unit != "λ" {
				t.Fatalf("want λ. got: %q.", params[genericdash.Lambda1].Unit)
			}
		})
	}
}

func TestSaveMetadataToFileUnknownType(t *testing.T) {
	err := genericdash.SaveMetadataToFile(filepath.Join(t.TempDir(), "metadata.csv"))
	if err == nil || !strings.Contains(err.Error(), "unknown file type") {
		t.Fatalf("want unknown file type error. got: %v.", err)
	}
}
