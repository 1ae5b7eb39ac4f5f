package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sartorproj/godecomp/stats"
)

var (
	classicalPeriod int
	classicalType   string
)

var classicalCmd = &cobra.Command{
	Use:   "classical",
	Short: "Decompose with a centered moving average and fixed seasonal pattern",
	Long: `Classical decomposition: trend is a centered moving average, the
seasonal pattern is the per-phase average of the detrended series and
repeats unchanged. Quick baseline; use mstl or str when the pattern
evolves over time.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		series, err := loadInput()
		if err != nil {
			return err
		}
		if classicalPeriod < 2 {
			return fmt.Errorf("--period must be at least 2, got %d", classicalPeriod)
		}

		result := stats.Decompose(series, classicalPeriod, classicalType)
		if result == nil {
			return fmt.Errorf("series too short for period %d: need at least %d points, have %d",
				classicalPeriod, 2*classicalPeriod, series.Len())
		}

		return writeOutput(
			[]string{"data", "trend", "seasonal", "remainder"},
			[][]float64{
				series.Values,
				result.Trend.Values,
				result.Seasonal.Values,
				result.Residual.Values,
			})
	},
}

func init() {
	classicalCmd.Flags().IntVar(&classicalPeriod, "period", 0, "Seasonal period")
	classicalCmd.Flags().StringVar(&classicalType, "type", "additive", "Decomposition type: additive or multiplicative")
	rootCmd.AddCommand(classicalCmd)
}
