package clusterrows

import (
	colorful "github.com/lucasb-eyer/go-colorful"
)

const (
	paletteSaturation = 0.75
	paletteLightness  = 0.5
)

// ClusterColors returns n fill colors as "#rrggbb", with hues evenly spaced
// around the color wheel starting at red.
func ClusterColors(n int) []string {
	if n <= 0 {
		return nil
	}
	colors := make([]string, n)
	slice := 360.0 / float64(n)
	for i := range colors {
		colors[i] = colorful.Hsl(slice*float64(i), paletteSaturation, paletteLightness).Hex()
	}
	return colors
}
