package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/gavinwade12/linkdash/protocols/genericdash"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var exportFile string

func init() {
	exportParamsCmd.Flags().StringVar(&exportFile, "file", "", "the file to export to (.json, .yaml or .toml)")

	paramsCmd.AddCommand(listParamsCmd)
	paramsCmd.AddCommand(exportParamsCmd)

	rootCmd.AddCommand(paramsCmd)
}

var paramsCmd = &cobra.Command{
	Use:   "params",
	Short: "Inspect the Generic Dash parameters",
}

var listParamsCmd = &cobra.Command{
	Use:   "list",
	Short: "List every parameter with its metadata",
	RunE: func(cmd *cobra.Command, args []string) error {
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "KEY\tNAME\tUNIT\tDECIMALS\tMIN\tMAX")
		for _, p := range genericdash.ExportMetadata() {
			fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%d\n",
				p.Key, p.Name, p.Unit, p.DecimalPlaces, p.Minimum, p.Maximum)
		}
		return w.Flush()
	},
}

var exportParamsCmd = &cobra.Command{
	Use:          "export",
	Short:        "Export the parameter metadata to a file",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if exportFile == "" {
			return errors.New("no file set")
		}
		if err := genericdash.SaveMetadataToFile(exportFile); err != nil {
			return err
		}
		if !quiet {
			fmt.Fprintf(cmd.OutOrStdout(), "exported %d parameters to %s\n", genericdash.ParameterCount, exportFile)
		}
		return nil
	},
}
