package main

import (
	"fmt"
	"strconv"

	"github.com/gavinwade12/linkdash/protocols/genericdash"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(faultsCmd)
}

var faultsCmd = &cobra.Command{
	Use:          "faults [code...]",
	Short:        "Describe ECU fault codes. All codes are listed when none are given.",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		codes := []genericdash.FaultCode{}
		for _, arg := range args {
			c, err := strconv.ParseUint(arg, 0, 16)
			if err != nil {
				return errors.Wrapf(err, "parsing fault code '%s'", arg)
			}
			codes = append(codes, genericdash.FaultCode(c))
		}
		if len(codes) == 0 {
			for c := 0; c < genericdash.FaultCodeCount; c++ {
				codes = append(codes, genericdash.FaultCode(c))
			}
		}

		for _, c := range codes {
			desc, err := genericdash.FaultDescription(c)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%3d: %s\n", c, desc)
		}
		return nil
	},
}
