package genericdash

import (
	"encoding/json"
	"os"
	"path"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// ExportedParameter is the serialized form of a parameter's metadata.
type ExportedParameter struct {
	Key           string `json:"key" yaml:"key" toml:"key"`
	Name          string `json:"name" yaml:"name" toml:"name"`
	Unit          string `json:"unit" yaml:"unit" toml:"unit"`
	DecimalPlaces int    `json:"decimalPlaces" yaml:"decimal_places" toml:"decimal_places"`
	Minimum       int    `json:"minimum" yaml:"minimum" toml:"minimum"`
	Maximum       int    `json:"maximum" yaml:"maximum" toml:"maximum"`
}

// ExportMetadata returns the metadata catalog in bus order.
func ExportMetadata() []ExportedParameter {
	out := make([]ExportedParameter, ParameterCount)
	for _, p := range Parameters() {
		m := catalog[p]
		out[p] = ExportedParameter{
			Key:           p.Key(),
			Name:          m.Name,
			Unit:          string(m.Unit),
			DecimalPlaces: m.DecimalPlaces,
			Minimum:       m.Minimum,
			Maximum:       m.Maximum,
		}
	}
	return out
}

// SaveMetadataToFile saves the metadata catalog to the given file. The
// format is picked from the file extension.
func SaveMetadataToFile(file string) error {
	var enc func(f *os.File, params []ExportedParameter) error
	switch strings.ToLower(path.Ext(file)) {
	case ".json":
		enc = func(f *os.File, params []ExportedParameter) error {
			e := json.NewEncoder(f)
			e.SetIndent("", "  ")
			return e.Encode(params)
		}
	case ".yaml", ".yml":
		enc = func(f *os.File, params []ExportedParameter) error {
			e := yaml.NewEncoder(f)
			defer e.Close()
			return e.Encode(params)
		}
	case ".toml":
		enc = func(f *os.File, params []ExportedParameter) error {
			return toml.NewEncoder(f).Encode(struct {
				Parameters []ExportedParameter `toml:"parameters"`
			}{params})
		}
	default:
		return errors.New("unknown file type (supported: json, yaml, toml)")
	}

	f, err := os.OpenFile(file, os.O_CREATE|os.O_TRUNC|os.O_RDWR, 0644)
	if err != nil {
		return err
	}
	defer f.Close()

	if err = enc(f, ExportMetadata()); err != nil {
		return errors.Wrapf(err, "encoding metadata to %s", file)
	}
	return nil
}
