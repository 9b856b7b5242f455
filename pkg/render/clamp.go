package render

import (
	"math"

	"golang.org/x/exp/constraints"
)

const (
	marginX      = 50
	marginTop    = 30
	overflowSnap = 30

	labelMarginX   = 20
	labelMarginTop = 25
	labelMarginBot = 10
	labelOffset    = 15
)

func clamp[T constraints.Float](v, lo, hi T) T {
	if v != v {
		return lo
	}
	return max(lo, min(hi, v))
}

// clampX keeps a node inside the horizontal drawing band
func clampX(x, width float64) float64 {
	return clamp(x, marginX, width-marginX)
}

// clampY keeps a node inside the vertical band. A node below the bottom
// edge snaps a little inside instead of sitting on the border.
func clampY(y, height float64) float64 {
	if y > height {
		return height - overflowSnap
	}
	return clamp(y, marginTop, height)
}

// labelPosition places a label above the node at (x, y)
func labelPosition(x, y, width, height float64) (float64, float64) {
	lx := clamp(x, labelMarginX, width-labelMarginX)
	ly := clamp(y, labelMarginTop, height-labelMarginBot) - labelOffset
	return lx, ly
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
