package charts

import (
	"math"
	"strconv"
)

// Palette holds one background and one border color per chart label.
type Palette struct {
	Background []string
	Border     []string
}

// GenerateColors spreads count hues evenly around the color wheel. It is a
// pure function of count; count <= 0 yields an empty palette.
func GenerateColors(count int) Palette {
	if count <= 0 {
		return Palette{Background: []string{}, Border: []string{}}
	}

	p := Palette{
		Background: make([]string, 0, count),
		Border:     make([]string, 0, count),
	}
	for i := 0; i < count; i++ {
		h := formatHue(Hue(i, count))
		p.Background = append(p.Background, "hsla("+h+", 70%, 50%, 0.5)")
		p.Border = append(p.Border, "hsl("+h+", 50%, 50%)")
	}
	return p
}

// Hue returns (i*360/count) mod 360. count must be positive.
func Hue(i, count int) float64 {
	return math.Mod(float64(i*360)/float64(count), 360)
}

func formatHue(h float64) string {
	return strconv.FormatFloat(h, 'f', -1, 64)
}
