package stats

import (
	"sort"

	"github.com/sartorproj/godecomp/timeseries"
)

// PeriodCandidate is a candidate seasonal period with the autocorrelation
// supporting it.
type PeriodCandidate struct {
	Period      int
	Correlation float64
}

// DetectPeriods suggests candidate seasonal periods for a series by
// locating local maxima of the differenced series' autocorrelation that
// clear the 95% confidence bound. Candidates are returned strongest
// first. The result is a heuristic shortlist for a caller to validate,
// not a definitive answer: decompose with the candidates and inspect the
// remainder.
func DetectPeriods(series *timeseries.Series, maxPeriod int) []PeriodCandidate {
	if maxPeriod < 2 {
		return nil
	}

	// First-difference to remove trend, which otherwise swamps the
	// autocorrelation at every lag.
	diff := series.Diff()
	if diff.Len() < 3 {
		return nil
	}

	// One extra lag so maxPeriod itself still has a right neighbour for
	// the local maximum test.
	result := ACFWithConfidence(diff, maxPeriod+1)
	if result == nil {
		return nil
	}
	acf := result.Values

	var candidates []PeriodCandidate
	for lag := 2; lag < len(acf)-1 && lag <= maxPeriod; lag++ {
		if acf[lag] <= result.ConfBounds {
			continue
		}
		if acf[lag] > acf[lag-1] && acf[lag] >= acf[lag+1] {
			candidates = append(candidates, PeriodCandidate{
				Period:      lag,
				Correlation: acf[lag],
			})
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Correlation > candidates[j].Correlation
	})
	return candidates
}
