package cmd

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/sartorproj/godecomp/mstl"
	"github.com/sartorproj/godecomp/stats"
)

var (
	mstlPeriods     []int
	mstlWindows     []int
	mstlIterations  int
	mstlTrendWindow int
	mstlRobust      int
)

var mstlCmd = &cobra.Command{
	Use:   "mstl",
	Short: "Decompose with multiple seasonal-trend decomposition using loess",
	Long: `Decompose a series with one seasonal component per period, extracted
shortest period first. Periods must be given in increasing order.

Example:

  godecomp mstl -i hourly.csv --periods 24,168 -o components.csv`,
	RunE: func(cmd *cobra.Command, args []string) error {
		series, err := loadInput()
		if err != nil {
			return err
		}

		result, err := mstl.Decompose(series.Values, mstl.Config{
			Periods:     mstlPeriods,
			Windows:     mstlWindows,
			Iterations:  mstlIterations,
			TrendWindow: mstlTrendWindow,
			RobustIters: mstlRobust,
		})
		if err != nil {
			return err
		}

		headers := []string{"data", "trend"}
		columns := [][]float64{series.Values, result.Trend}
		for i, season := range result.Seasons {
			headers = append(headers, fmt.Sprintf("seasonal_%d", result.Periods[i]))
			columns = append(columns, season)
		}
		headers = append(headers, "remainder")
		columns = append(columns, result.Remainder)

		for i, season := range result.Seasons {
			log.WithFields(logrus.Fields{
				"period":   result.Periods[i],
				"strength": stats.SeasonalStrength(season, result.Remainder),
			}).Debug("seasonal component")
		}
		log.WithField("strength",
			stats.TrendStrength(result.Trend, result.Remainder)).Debug("trend component")

		return writeOutput(headers, columns)
	},
}

func init() {
	mstlCmd.Flags().IntSliceVar(&mstlPeriods, "periods", nil, "Seasonal periods in increasing order (e.g. 24,168)")
	mstlCmd.Flags().IntSliceVar(&mstlWindows, "windows", nil, "Seasonal loess windows, one per period (default: 7,11,15,...)")
	mstlCmd.Flags().IntVar(&mstlIterations, "iterations", 0, "Refinement passes over the seasonal components (default: 2)")
	mstlCmd.Flags().IntVar(&mstlTrendWindow, "trend-window", 0, "Trend loess window (default: derived from the largest period)")
	mstlCmd.Flags().IntVar(&mstlRobust, "robust-iterations", 0, "Outer robustness iterations (default: 0)")
	rootCmd.AddCommand(mstlCmd)
}
