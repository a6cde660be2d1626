package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"time"

	"github.com/gavinwade12/linkdash/protocols/genericdash"
	"github.com/gavinwade12/linkdash/units"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var logFileFormat string

func init() {
	addLoggedParamCmd.Flags().StringVar(&paramID, "paramID", "", "The parameter key to add, e.g. engine_speed")
	addLoggedParamCmd.Flags().StringVar(&unit, "unit", "", "The desired unit for the parameter (defaults to the parameter's unit)")
	logCmd.AddCommand(addLoggedParamCmd)

	rootCmd.AddCommand(logCmd)

	logCmd.Flags().StringVar(&logFileFormat, "logFileFormat", "dash-{{timestamp}}.csv", "The format used for generating a log file name (path included). Variables can be injected using the format {{variableName}}. Supported variables: timestamp.")
}

type loggedParameter struct {
	Id   string     `mapstructure:"id"`
	Unit units.Unit `mapstructure:"unit"`
}

type loggedColumn struct {
	param    genericdash.Parameter
	unit     units.Unit
	decimals int
}

var logCmd = &cobra.Command{
	Use:          "log",
	Short:        "Log the parameters configured for logging to a CSV file.",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if logFileFormat == "" {
			return errors.New("a log file name format is required")
		}

		var cfgParams []loggedParameter
		if err := viper.UnmarshalKey("logging.parameters", &cfgParams); err != nil {
			return errors.Wrap(err, "getting parameters configured for logging")
		}
		if len(cfgParams) == 0 {
			return errors.New("no parameters are configured for logging")
		}

		headers := []string{"Timestamp"}
		columns := make([]loggedColumn, 0, len(cfgParams))
		params := make([]genericdash.Parameter, 0, len(cfgParams))
		for _, cfgParam := range cfgParams {
			p, err := genericdash.ParameterByKey(cfgParam.Id)
			if err != nil {
				return errors.Wrap(err, "reading logging config")
			}
			m, _ := genericdash.LookupMetadata(p)

			col := loggedColumn{param: p, unit: cfgParam.Unit, decimals: m.DecimalPlaces}
			if col.unit == "" {
				col.unit = m.Unit
			}
			headers = append(headers, fmt.Sprintf("%s (%s)", m.Name, strings.TrimSpace(string(col.unit))))
			columns = append(columns, col)
			params = append(params, p)
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		l := dashLogger(cmd)
		conn, err := openConnection(ctx, l)
		if err != nil {
			return errors.Wrap(err, "opening frame source")
		}
		defer conn.Close()

		logFile := strings.NewReplacer(
			"{{timestamp}}", time.Now().Format("20060102_150405"), //yyyyMMdd_hhmmss
		).Replace(logFileFormat)
		stdOut := cmd.OutOrStdout()
		if !quiet {
			fmt.Fprintf(stdOut, "logging to file: %s\n", logFile)
		}

		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_TRUNC|os.O_RDWR, 0644)
		if err != nil {
			return errors.Wrap(err, "opening file for logging")
		}
		defer f.Close()

		if _, err = f.WriteString(strings.Join(headers, ",") + "\n"); err != nil {
			return errors.Wrap(err, "writing header line to log file")
		}

		canID := viper.GetUint32(canIDSettingName)
		session, err := genericdash.LoggingSession(ctx, conn, genericdash.NewFrameStore(), canID, params, l)
		if err != nil {
			return errors.Wrap(err, "starting logging session")
		}

		rows := 0
		for values := range session {
			row := make([]string, 0, len(columns)+1)
			row = append(row, time.Now().Format(time.RFC3339Nano))
			for _, col := range columns {
				pv := values[col.param].SafeConvertTo(col.unit)
				row = append(row, strconv.FormatFloat(pv.Value, 'f', col.decimals, 64))
			}
			if _, err = f.WriteString(strings.Join(row, ",") + "\n"); err != nil {
				return errors.Wrap(err, "writing parameter values")
			}
			rows++
		}

		if !quiet {
			fmt.Fprintf(stdOut, "logged %d rows\n", rows)
		}
		if ctx.Err() == nil {
			return errors.New("the frame source stopped responding")
		}
		return nil
	},
}

var paramID string
var unit string

var addLoggedParamCmd = &cobra.Command{
	Use:   "add_param",
	Short: "Adds a parameter to the logging config",
	RunE: func(cmd *cobra.Command, args []string) error {
		if paramID == "" {
			return errors.New("no paramID set")
		}

		p, err := genericdash.ParameterByKey(paramID)
		if err != nil {
			return errors.New("invalid paramID")
		}
		paramUnit, _ := genericdash.ParameterUnit(p)
		if unit == "" {
			unit = string(paramUnit)
		}
		if _, err = units.Convert(0, paramUnit, units.Unit(unit)); err != nil {
			return errors.Wrapf(err, "the unit '%s' is not valid for %s", unit, paramID)
		}

		var cfgParams []loggedParameter
		if err := viper.UnmarshalKey("logging.parameters", &cfgParams); err != nil {
			return errors.Wrap(err, "getting parameters configured for logging")
		}
		for _, cp := range cfgParams {
			if cp.Id == paramID {
				return errors.New("the parameter is already configured for logging")
			}
		}

		cfgParams = append(cfgParams, loggedParameter{
			Id:   paramID,
			Unit: units.Unit(unit),
		})

		viper.Set("logging.parameters", cfgParams)
		return viper.WriteConfig()
	},
}
