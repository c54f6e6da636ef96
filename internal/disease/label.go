package disease

import "fmt"

// Label is one of the four classes the leaf classifier can emit.
type Label string

const (
	LabelMiner   Label = "Miner"
	LabelHealthy Label = "Healthy"
	LabelPhoma   Label = "Phoma"
	LabelRust    Label = "Rust"
)

// ClassOrder is the order of the classifier's output vector.
var ClassOrder = [...]Label{LabelMiner, LabelHealthy, LabelPhoma, LabelRust}

// NumClasses is the length of the probability vector the model returns.
const NumClasses = len(ClassOrder)

// LabelAt maps an output index to its label.
func LabelAt(index int) (Label, error) {
	if index < 0 || index >= NumClasses {
		return "", fmt.Errorf("class index %d out of range [0,%d)", index, NumClasses)
	}
	return ClassOrder[index], nil
}

func (l Label) String() string {
	return string(l)
}
