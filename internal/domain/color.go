package domain

import "fmt"

// Color is an RGB triple with each channel in [0,1].
type Color struct {
	R float64
	G float64
	B float64
}

// NeutralColor is used wherever a label has no catalog entry.
var NeutralColor = Color{R: 0.57, G: 0.51, B: 0.45}

// Palette is the fixed set of colors new catalog entries are drawn from.
var Palette = []Color{
	{R: 0.98, G: 0.29, B: 0.20},
	{R: 0.72, G: 0.73, B: 0.15},
	{R: 0.98, G: 0.74, B: 0.18},
	{R: 0.51, G: 0.65, B: 0.60},
	{R: 0.83, G: 0.53, B: 0.61},
	{R: 0.56, G: 0.75, B: 0.49},
	{R: 1.00, G: 0.50, B: 0.10},
	{R: 0.27, G: 0.52, B: 0.53},
}

// Validate checks every channel lies within [0,1].
func (c Color) Validate() error {
	for _, ch := range []struct {
		name string
		v    float64
	}{{"r", c.R}, {"g", c.G}, {"b", c.B}} {
		if ch.v < 0 || ch.v > 1 {
			return NewValidationError("color."+ch.name, "%v is outside [0,1]", ch.v)
		}
	}
	return nil
}

func (c Color) String() string {
	return fmt.Sprintf("rgb(%.3f, %.3f, %.3f)", c.R, c.G, c.B)
}
