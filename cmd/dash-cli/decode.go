package main

import (
	"encoding/hex"
	"fmt"
	"io"
	"strings"

	"github.com/gavinwade12/linkdash/protocols/genericdash"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var decodeParams []string

func init() {
	decodeCmd.Flags().StringSliceVar(&decodeParams, "param", nil, "only print the given parameter keys")
	rootCmd.AddCommand(decodeCmd)
}

var decodeCmd = &cobra.Command{
	Use:   "decode <hex-frame>...",
	Short: "Decode Generic Dash frames given as hex",
	Long: `Ingest each frame in order and print the decoded parameters.
Frames are 8 bytes of hex. Spaces, colons and 0x prefixes are ignored, e.g.
  dash-cli decode "07 00 00 00 0f 00 2c 01"`,
	Args:         cobra.MinimumNArgs(1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		params, err := parametersByKey(decodeParams)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		store := genericdash.NewFrameStore()
		for _, arg := range args {
			f, err := parseHexFrame(arg)
			if err == nil {
				err = store.Ingest(f)
			}
			if err != nil {
				fmt.Fprintf(out, "skipping frame '%s': %v\n", arg, err)
			}
		}

		printValues(out, store, params)
		if len(decodeParams) == 0 {
			printStatus(out, store)
		}
		return nil
	},
}

var hexFrameCleaner = strings.NewReplacer("0x", "", "0X", "", " ", "", ":", "", ",", "")

func parseHexFrame(s string) (genericdash.Frame, error) {
	b, err := hex.DecodeString(hexFrameCleaner.Replace(s))
	if err != nil {
		return genericdash.Frame{}, errors.Wrap(err, "parsing hex")
	}
	return genericdash.FrameFromBytes(b)
}

// parametersByKey resolves parameter keys, returning every parameter when
// no keys are given.
func parametersByKey(keys []string) ([]genericdash.Parameter, error) {
	if len(keys) == 0 {
		return genericdash.Parameters(), nil
	}

	params := make([]genericdash.Parameter, len(keys))
	for i, k := range keys {
		p, err := genericdash.ParameterByKey(k)
		if err != nil {
			return nil, err
		}
		params[i] = p
	}
	return params, nil
}

func printValues(w io.Writer, store *genericdash.FrameStore, params []genericdash.Parameter) {
	for _, p := range params {
		m, err := genericdash.LookupMetadata(p)
		if err != nil {
			continue
		}
		v, err := store.Decode(p)
		if err != nil {
			continue
		}
		fmt.Fprintf(w, "%-24s %s\n", m.Name, m.Format(v))
	}
}

func printStatus(w io.Writer, store *genericdash.FrameStore) {
	flags := []string{}
	for _, f := range store.ActiveLimitFlags() {
		name, _ := genericdash.LimitFlagName(f)
		flags = append(flags, name)
	}
	if len(flags) == 0 {
		flags = append(flags, "none")
	}
	fmt.Fprintf(w, "\nActive limits: %s\n", strings.Join(flags, ", "))

	for fs := genericdash.FeatureStatus(0); int(fs) < genericdash.FeatureStatusCount; fs++ {
		state, err := store.FeatureStatus(fs)
		if err != nil {
			continue
		}
		feature, _ := genericdash.FeatureName(fs)
		name, _ := genericdash.FeatureStateName(fs, state)
		fmt.Fprintf(w, "%-24s %s\n", feature, name)
	}

	code, err := store.FaultCode()
	if err != nil {
		fmt.Fprintf(w, "Fault: %v\n", err)
		return
	}
	desc, _ := genericdash.FaultDescription(code)
	fmt.Fprintf(w, "Fault: %d %s\n", code, desc)
}
