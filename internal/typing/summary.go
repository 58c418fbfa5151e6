package typing

import (
	"math"
	"time"
)

const (
	// FormulaWeighted multiplies character volume by accuracy.
	FormulaWeighted = "weighted"
	// FormulaLinear subtracts a flat penalty per miss.
	FormulaLinear = "linear"

	defaultCorrectWeight = 10
	defaultErrorPenalty  = 5
	charsPerWord         = 5
)

// ScoreFormula selects how the final score is derived from the counters.
// The formula is a product knob, not a fixed rule, so both observed variants
// are supported.
type ScoreFormula struct {
	Mode          string
	CorrectWeight int
	ErrorPenalty  int
}

// DefaultFormula returns the accuracy-weighted scoring policy.
func DefaultFormula() ScoreFormula {
	return ScoreFormula{
		Mode:          FormulaWeighted,
		CorrectWeight: defaultCorrectWeight,
		ErrorPenalty:  defaultErrorPenalty,
	}
}

// Score computes the final score for the given counters. accuracy is a
// percentage in [0, 100].
func (f ScoreFormula) Score(correct, total uint64, accuracy float64) int64 {
	weight := f.CorrectWeight
	if weight <= 0 {
		weight = defaultCorrectWeight
	}

	if f.Mode == FormulaLinear {
		penalty := f.ErrorPenalty
		if penalty < 0 {
			penalty = defaultErrorPenalty
		}
		return int64(correct)*int64(weight) - int64(total-correct)*int64(penalty)
	}

	return int64(math.Floor(float64(correct) * float64(weight) * accuracy / 100))
}

// Summary holds the final derived metrics for one finished session.
type Summary struct {
	CorrectChars   uint64
	TotalChars     uint64
	ElapsedSeconds int64
	Accuracy       float64
	WPM            float64
	Score          int64
}

// ComputeSummary derives accuracy, WPM, and score from the raw counters. It is
// a pure function of its arguments. Elapsed time is floored to one second so
// sub-second sessions never divide by zero; one word is five correct
// characters.
func ComputeSummary(stats Stats, endedAt time.Time, formula ScoreFormula) Summary {
	elapsed := int64(endedAt.Sub(stats.StartedAt) / time.Second)
	if elapsed < 1 {
		elapsed = 1
	}

	accuracy := 0.0
	if stats.TotalChars > 0 {
		accuracy = 100 * float64(stats.CorrectChars) / float64(stats.TotalChars)
	}

	minutes := float64(elapsed) / 60
	wpm := (float64(stats.CorrectChars) / charsPerWord) / minutes

	return Summary{
		CorrectChars:   stats.CorrectChars,
		TotalChars:     stats.TotalChars,
		ElapsedSeconds: elapsed,
		Accuracy:       accuracy,
		WPM:            wpm,
		Score:          formula.Score(stats.CorrectChars, stats.TotalChars, accuracy),
	}
}
