package main

import (
	"context"
	"log"
	"os"
	"path"
	"time"

	"github.com/gavinwade12/linkdash/protocols/genericdash"
	"github.com/mitchellh/go-homedir"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.bug.st/serial"
)

const (
	portSettingName      string = "port"
	interfaceSettingName string = "interface"
	sourceSettingName    string = "source"
	canIDSettingName     string = "can_id"
	bitrateSettingName   string = "bitrate"
)

// frame sources
const (
	sourceSerial    = "serial"
	sourceSocketCAN = "socketcan"
	sourceFake      = "fake"
)

var configFile string
var port string
var canInterface string
var source string
var quiet bool
var verbose bool

func init() {
	cobra.OnInitialize(func() {
		initConfig()
		postInitCommands(rootCmd.Commands())
	})

	viper.SetDefault(sourceSettingName, sourceSerial)
	viper.SetDefault(canIDSettingName, genericdash.DefaultCANID)
	viper.SetDefault(bitrateSettingName, genericdash.SLCANBitrate500K)

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default is $HOME/.linkdash.yaml)")
	rootCmd.PersistentFlags().StringVar(&port, portSettingName, "", "serial port of the SLCAN adapter. Example: /dev/ttyACM0")
	rootCmd.PersistentFlags().StringVar(&canInterface, interfaceSettingName, "", "socketcan interface to read from. Example: can0")
	rootCmd.PersistentFlags().StringVar(&source, sourceSettingName, "", "frame source: serial, socketcan or fake")
	rootCmd.PersistentFlags().BoolVar(&quiet, "quiet", false, "quiet all log output")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "provide verbose output")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}

var rootCmd = &cobra.Command{
	Use:           "dash-cli",
	Short:         "A CLI for decoding the Generic Dash CAN stream broadcast by Link ECUs.",
	SilenceErrors: true,
}

func initConfig() {
	if configFile != "" {
		viper.SetConfigFile(path.Base(configFile))
		viper.AddConfigPath(path.Dir(configFile))
	} else {
		home, err := homedir.Dir()
		if err != nil {
			log.Fatalf("finding home directory: %v\n", err)
		}

		viper.AddConfigPath(home)
		viper.SetConfigName(".linkdash")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("linkdash")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok || os.IsNotExist(err) {
			if err = viper.SafeWriteConfig(); err != nil {
				log.Fatalf("creating config file: %v\n", err)
			}
		} else {
			log.Fatalf("reading config file: %v\n", err)
		}
	}
}

func postInitCommands(commands []*cobra.Command) {
	for _, cmd := range commands {
		presetRequiredFlags(cmd)
		if cmd.HasSubCommands() {
			postInitCommands(cmd.Commands())
		}
	}
}

func presetRequiredFlags(cmd *cobra.Command) {
	viper.BindPFlags(cmd.Flags())
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if viper.IsSet(f.Name) && viper.GetString(f.Name) != "" {
			cmd.Flags().Set(f.Name, viper.GetString(f.Name))
		}
	})
}

func dashLogger(cmd *cobra.Command) genericdash.Logger {
	if !verbose || quiet {
		return genericdash.NopLogger
	}
	return genericdash.DefaultLogger(cmd.ErrOrStderr())
}

// openConnection opens the configured frame source.
func openConnection(ctx context.Context, l genericdash.Logger) (genericdash.Connection, error) {
	switch source {
	case sourceSerial, "":
		if port == "" {
			return nil, errors.New("the port setting is required for the serial source")
		}
		conn, err := createSLCANConn(ctx, port, viper.GetString(bitrateSettingName), l)
		if err != nil {
			return nil, err
		}
		return conn, nil
	case sourceSocketCAN:
		if canInterface == "" {
			return nil, errors.New("the interface setting is required for the socketcan source")
		}
		return genericdash.NewSocketCANConnection(ctx, canInterface, l)
	case sourceFake:
		return genericdash.NewFakeConnection(50 * time.Millisecond), nil
	default:
		return nil, errors.Errorf("unknown frame source '%s'", source)
	}
}

func createSLCANConn(ctx context.Context, port, bitrate string, l genericdash.Logger) (*genericdash.SLCANConnection, error) {
	l.Debugf("opening serial port %s", port)
	sp, err := serial.Open(port, &serial.Mode{
		BaudRate: genericdash.SLCANBaudRate,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	})
	if err != nil {
		return nil, errors.Wrapf(err, "opening serial port '%s'", port)
	}

	if err = sp.SetReadTimeout(genericdash.ConnectionReadTimeout); err != nil {
		sp.Close()
		return nil, errors.Wrap(err, "setting serial port read timeout")
	}
	if err = sp.ResetInputBuffer(); err != nil {
		sp.Close()
		return nil, errors.Wrap(err, "resetting input buffer")
	}

	conn := genericdash.NewSLCANConnection(sp, l)
	if err = conn.Open(ctx, bitrate); err != nil {
		conn.Close()
		return nil, errors.Wrap(err, "opening can channel")
	}
	return conn, nil
}
