// Package timeseries provides time series data structures and utilities.
//
// This package includes the Series type for representing time series data,
// along with functions for data loading, transformation, and analysis. The
// decomposition packages (mstl, str, stl) operate on plain []float64
// sequences; Series is the carrier for timestamps, CSV I/O, and summary
// statistics around them.
//
// # Creating a Series
//
// Create a time series from a slice:
//
//	values := []float64{100, 102, 105, 103, 108, 110}
//	series := timeseries.New(values)
//
// # Loading from CSV
//
// Load time series data from CSV files:
//
//	// Load a specific column
//	series, err := timeseries.LoadCSVColumn("data.csv", "value")
//
//	// Load with filtering
//	series, err := timeseries.LoadCSVFiltered(
//	    "data.csv",
//	    "country", "Australia",  // filter column and value
//	    "demand",                // value column
//	)
//
// # Grid requirements
//
// The decomposition engines require a regular time grid with no gaps:
//
//	if !series.IsRegular() || series.HasGaps() {
//	    // regularize or impute before decomposing
//	}
//
// # Basic Statistics
//
// Calculate summary statistics:
//
//	mean := series.Mean()
//	std := series.Std()
//	min := series.Min()
//	max := series.Max()
//	median := series.Median()
//
// # Transformations
//
// Transform the time series:
//
//	diff := series.Diff()          // First difference
//	diff2 := series.DiffN(2)       // Second difference
//	ma := series.MovingAverage(7)  // Moving average
//
// # Exporting decompositions
//
// Write aligned component sequences as CSV columns:
//
//	err := timeseries.WriteColumnsCSV(w,
//	    []string{"trend", "seasonal24", "remainder"},
//	    [][]float64{result.Trend, result.Seasons[0], result.Remainder},
//	)
package timeseries
