package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/sartorproj/godecomp/stats"
)

var periodsMax int

var periodsCmd = &cobra.Command{
	Use:   "periods",
	Short: "Suggest candidate seasonal periods",
	Long: `Scan the autocorrelation of the differenced series for peaks that
clear the 95% confidence bound and report them as candidate seasonal
periods, strongest first.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		series, err := loadInput()
		if err != nil {
			return err
		}

		candidates := stats.DetectPeriods(series, periodsMax)
		if len(candidates) == 0 {
			fmt.Println("No seasonal periods detected.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "PERIOD\tCORRELATION")
		for _, c := range candidates {
			fmt.Fprintf(w, "%d\t%.3f\n", c.Period, c.Correlation)
		}
		return w.Flush()
	},
}

func init() {
	periodsCmd.Flags().IntVar(&periodsMax, "max-period", 400, "Largest period to consider")
	rootCmd.AddCommand(periodsCmd)
}
