package vision

import (
	"fmt"

	"cofflyze-api/internal/disease"
)

// Result is the interpreted output of one classification.
type Result struct {
	Label      disease.Label `json:"label"`
	Confidence float64       `json:"confidence"`
}

// Interpret picks the argmax of probs (first index wins on ties) and maps
// it through disease.ClassOrder.
func Interpret(probs []float32) (Result, error) {
	if len(probs) != disease.NumClasses {
		return Result{}, fmt.Errorf("expected %d class scores, got %d", disease.NumClasses, len(probs))
	}

	maxIdx := 0
	for i, p := range probs {
		if p > probs[maxIdx] {
			maxIdx = i
		}
	}

	label, err := disease.LabelAt(maxIdx)
	if err != nil {
		return Result{}, err
	}
	return Result{Label: label, Confidence: float64(probs[maxIdx])}, nil
}

// Percent formats a [0,1] confidence as "XX.XX".
func Percent(confidence float64) string {
	return fmt.Sprintf("%.2f", confidence*100)
}
