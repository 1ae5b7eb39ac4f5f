package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/sartorproj/godecomp/timeseries"
)

var (
	inputFile   string
	valueColumn string
	dateColumn  string
	outputFile  string
	verbose     bool

	log = logrus.New()
)

var rootCmd = &cobra.Command{
	Use:   "godecomp",
	Short: "Time series decomposition toolkit",
	Long: `Decompose time series from CSV files into trend, seasonal, and
remainder components using MSTL, STR, or classical decomposition.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		log.SetOutput(os.Stderr)
		if verbose {
			log.SetLevel(logrus.DebugLevel)
		}
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&inputFile, "input", "i", "", "Input CSV file")
	rootCmd.PersistentFlags().StringVar(&valueColumn, "column", "", "Value column name (default: y or value)")
	rootCmd.PersistentFlags().StringVar(&dateColumn, "date-column", "", "Date column name (default: ds or date)")
	rootCmd.PersistentFlags().StringVarP(&outputFile, "output", "o", "", "Output CSV file (default: stdout)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}

// loadInput reads the series named by the persistent flags.
func loadInput() (*timeseries.Series, error) {
	if inputFile == "" {
		return nil, fmt.Errorf("--input is required")
	}
	opts := timeseries.DefaultCSVOptions()
	if valueColumn != "" {
		opts.ValueColumn = valueColumn
	}
	if dateColumn != "" {
		opts.DateColumn = dateColumn
	}
	series, err := timeseries.LoadCSV(inputFile, opts)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", inputFile, err)
	}
	log.WithFields(logrus.Fields{
		"file":   inputFile,
		"points": series.Len(),
	}).Debug("loaded input series")
	return series, nil
}

// writeOutput writes the decomposition columns to the output file or stdout.
func writeOutput(headers []string, columns [][]float64) error {
	var w io.Writer = os.Stdout
	if outputFile != "" {
		f, err := os.Create(outputFile)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}
	if err := timeseries.WriteColumnsCSV(w, headers, columns); err != nil {
		return err
	}
	if outputFile != "" {
		log.WithField("file", outputFile).Debug("wrote decomposition")
	}
	return nil
}
