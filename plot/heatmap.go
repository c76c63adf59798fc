// heatmap.go - Rendering von Attention-Gewichten als Heatmap
//
// Dieses Modul enthaelt:
// - Heatmap: zeichnet alle Koepfe eines Layers in ein Rasterbild
// - viridis: Farbverlauf fuer Gewichtswerte in [0, 1]
//
// Pro Kopf entsteht ein Panel; Panels liegen in einem Raster mit vier
// Spalten wie in der klassischen Transformer-Visualisierung.
package plot

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"github.com/mattn/go-runewidth"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/7blacky7/uebersetzer/model"
)

var ErrUnknownLayer = errors.New("plot: attention weights missing requested layer")

const (
	cellW      = 14
	cellH      = 14
	marginLeft = 90
	marginTop  = 72
	marginBot  = 24
	panelGapX  = 12
	panelGapY  = 12
	panelCols  = 4
	maxYLabel  = 12
)

// viridis-Stuetzstellen, linear interpoliert
var viridisAnchors = []color.RGBA{
	{68, 1, 84, 255},
	{59, 82, 139, 255},
	{33, 145, 140, 255},
	{94, 201, 98, 255},
	{253, 231, 37, 255},
}

func viridis(v float32) color.RGBA {
	if v <= 0 {
		return viridisAnchors[0]
	}
	if v >= 1 {
		return viridisAnchors[len(viridisAnchors)-1]
	}

	pos := v * float32(len(viridisAnchors)-1)
	i := int(pos)
	frac := pos - float32(i)

	a, b := viridisAnchors[i], viridisAnchors[i+1]
	lerp := func(x, y uint8) uint8 {
		return uint8(float32(x) + frac*(float32(y)-float32(x)))
	}

	return color.RGBA{lerp(a.R, b.R), lerp(a.G, b.G), lerp(a.B, b.B), 255}
}

// Heatmap renders the attention weights of one layer. The tensor under
// layer must have shape (1, heads, queryLen, keyLen); xLabels annotate key
// positions, yLabels query positions.
func Heatmap(attention *model.AttentionWeights, layer string, xLabels, yLabels []string) (image.Image, error) {
	if attention == nil {
		return nil, ErrUnknownLayer
	}

	t, ok := attention.Get(layer)
	if !ok {
		return nil, fmt.Errorf("%w: %q (have %v)", ErrUnknownLayer, layer, attention.Keys())
	}

	shape := t.Shape()
	if len(shape) != 4 || shape[0] != 1 {
		return nil, fmt.Errorf("plot: unexpected attention shape %v for layer %q", shape, layer)
	}

	heads, queries, keys := shape[1], shape[2], shape[3]

	cols := min(panelCols, heads)
	rows := (heads + cols - 1) / cols

	panelW := marginLeft + keys*cellW
	panelH := marginTop + queries*cellH + marginBot

	img := image.NewRGBA(image.Rect(0, 0, cols*(panelW+panelGapX), rows*(panelH+panelGapY)))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)

	for head := 0; head < heads; head++ {
		x0 := (head % cols) * (panelW + panelGapX)
		y0 := (head / cols) * (panelH + panelGapY)

		// Zellen
		for q := 0; q < queries; q++ {
			for k := 0; k < keys; k++ {
				c := viridis(t.At(0, head, q, k))
				cell := image.Rect(
					x0+marginLeft+k*cellW,
					y0+marginTop+q*cellH,
					x0+marginLeft+(k+1)*cellW,
					y0+marginTop+(q+1)*cellH,
				)
				draw.Draw(img, cell, image.NewUniform(c), image.Point{}, draw.Src)
			}
		}

		// X-Beschriftung: Zeichen vertikal gestapelt ueber jeder Spalte
		for k := 0; k < keys && k < len(xLabels); k++ {
			label := runewidth.Truncate(xLabels[k], 7, "")
			for j, r := range label {
				drawString(img, string(r),
					x0+marginLeft+k*cellW+(cellW-7)/2,
					y0+12+j*11)
			}
		}

		// Y-Beschriftung: horizontal links neben jeder Zeile
		for q := 0; q < queries && q < len(yLabels); q++ {
			label := runewidth.Truncate(yLabels[q], maxYLabel, "…")
			drawString(img, label, x0+4, y0+marginTop+q*cellH+cellH/2+4)
		}

		drawString(img, fmt.Sprintf("Head %d", head+1), x0+marginLeft, y0+panelH-8)
	}

	return img, nil
}

func drawString(img *image.RGBA, s string, x, y int) {
	d := font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(color.Black),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(s)
}
