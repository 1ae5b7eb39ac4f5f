package stats

import (
	"gonum.org/v1/gonum/stat"
)

// SeasonalStrength measures how much of the detrended variation a seasonal
// component explains: max(0, 1 - Var(R) / Var(S+R)). Values near 1 mean a
// strong, well-separated seasonal pattern; values near 0 mean the
// component is indistinguishable from noise.
func SeasonalStrength(seasonal, remainder []float64) float64 {
	return componentStrength(seasonal, remainder)
}

// TrendStrength measures how much of the deseasonalized variation the
// trend explains: max(0, 1 - Var(R) / Var(T+R)).
func TrendStrength(trend, remainder []float64) float64 {
	return componentStrength(trend, remainder)
}

func componentStrength(component, remainder []float64) float64 {
	if len(component) != len(remainder) || len(component) < 2 {
		return 0
	}

	combined := make([]float64, len(component))
	for i := range combined {
		combined[i] = component[i] + remainder[i]
	}

	varCombined := stat.Variance(combined, nil)
	if varCombined == 0 {
		return 0
	}
	s := 1 - stat.Variance(remainder, nil)/varCombined
	if s < 0 {
		return 0
	}
	return s
}
