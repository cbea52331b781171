package report

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// goldenAngle spaces successive hues around the color wheel so that
// adjacent ids (typically nested loops or groups) never land on similar
// hues, mirroring the teacher's SubexpColors cycling palette.
const goldenAngle = 137.50776405003785

// ColorAssigner hands out a stable, perceptually-spaced color per integer
// id (a loop-id or group-id), caching assignments so repeated lookups for
// the same id return the same color.
type ColorAssigner struct {
	cache map[int]colorful.Color
}

// NewColorAssigner returns an empty assigner.
func NewColorAssigner() *ColorAssigner {
	return &ColorAssigner{cache: make(map[int]colorful.Color)}
}

// Color returns id's assigned color, assigning one on first use.
func (c *ColorAssigner) Color(id int) colorful.Color {
	if col, ok := c.cache[id]; ok {
		return col
	}
	hue := math.Mod(float64(id)*goldenAngle, 360)
	col := colorful.Hsv(hue, 0.65, 0.85)
	c.cache[id] = col
	return col
}

// Hex returns id's assigned color as a "#rrggbb" string.
func (c *ColorAssigner) Hex(id int) string {
	return c.Color(id).Hex()
}
