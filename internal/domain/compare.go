package domain

import (
	"fmt"
	"math"
)

// Compare contrasts target against reference. label names the target location
// in the rendered lines, e.g. "Oak Park".
func Compare(target, reference TemperatureSummary, label string) Comparison {
	return Comparison{
		Target:         target,
		Reference:      reference,
		TargetLabel:    label,
		TempDiffF:      reference.TempF - target.TempF,
		WindChillDiffF: reference.WindChillF - target.WindChillF,
		HeatIndexDiffF: reference.HeatIndexF - target.HeatIndexF,
		GeneratedAt:    clock.Now().UTC(),
	}
}

// Direction describes a reference-minus-target difference from the target's point of view.
func Direction(diff float64) string {
	if diff > 0 {
		return "colder"
	}
	return "warmer"
}

// Lines renders the temperature and wind chill differences as sentences.
// HeatIndexDiffF is not rendered since heat index values may mix scales.
func (c Comparison) Lines() []string {
	return []string{
		fmt.Sprintf("Right now it's %.1fºF %s in %s", math.Abs(c.TempDiffF), Direction(c.TempDiffF), c.TargetLabel),
		fmt.Sprintf("Right now the wind chill is %.1fºF %s in %s", math.Abs(c.WindChillDiffF), Direction(c.WindChillDiffF), c.TargetLabel),
	}
}
