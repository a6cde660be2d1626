package main

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.bug.st/serial/enumerator"
)

func init() {
	portsCmd.AddCommand(listPortsCmd)
	portsCmd.AddCommand(selectPortCmd)

	rootCmd.AddCommand(portsCmd)
}

var portsCmd = &cobra.Command{
	Use:   "ports",
	Short: "Manage the serial ports SLCAN adapters can be reached on",
}

var listPortsCmd = &cobra.Command{
	Use:   "list",
	Short: "List the serial ports on the host",
	RunE: func(cmd *cobra.Command, args []string) error {
		ports, err := enumerator.GetDetailedPortsList()
		if err != nil {
			return errors.Wrap(err, "listing serial ports")
		}

		listPorts(cmd.OutOrStdout(), ports)
		return nil
	},
}

func listPorts(w io.Writer, ports []*enumerator.PortDetails) {
	if len(ports) == 0 {
		fmt.Fprintln(w, "no serial ports found")
		return
	}
	for i, p := range ports {
		selected := ""
		if p.Name == port {
			selected = " (selected)"
		}
		fmt.Fprintf(w, "[%d]: %s%s\n", i, p.Name, selected)
		if p.IsUSB {
			fmt.Fprintf(w, "\tProduct: %s\n\tVID/PID: %s/%s\n\tSerial: %s\n", p.Product, p.VID, p.PID, p.SerialNumber)
		}
	}
}

var selectPortCmd = &cobra.Command{
	Use:          "set",
	Short:        "Set the serial port to use in the config file",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		ports, err := enumerator.GetDetailedPortsList()
		if err != nil {
			return errors.Wrap(err, "listing serial ports")
		}
		if len(ports) == 0 {
			return errors.New("no serial ports found")
		}
		listPorts(cmd.OutOrStdout(), ports)
		fmt.Fprint(cmd.OutOrStdout(), "Port (index): ")

		input, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
		if err != nil && err != io.EOF {
			return err
		}

		i, err := strconv.Atoi(strings.TrimSpace(input))
		if err != nil {
			return errors.Wrap(err, "parsing input as integer")
		}
		if i < 0 || i >= len(ports) {
			return errors.New("invalid selection")
		}

		portName := ports[i].Name
		viper.Set(portSettingName, portName)
		viper.Set(sourceSettingName, sourceSerial)
		fmt.Fprintf(cmd.OutOrStdout(), "Selected '%s'\n", portName)

		return viper.WriteConfig()
	},
}
