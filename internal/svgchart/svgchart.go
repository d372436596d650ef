// Package svgchart renders line charts as standalone SVG documents.
// It exists so benchmark results can be plotted without pulling in a
// graphics dependency; the output is a fixed-layout chart with grid
// lines, axis labels, and a legend.
package svgchart

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"strings"
)

// ErrNoData is returned by Render when the chart has no points.
var ErrNoData = errors.New("svgchart: no data to plot")

const (
	defaultWidth  = 800
	defaultHeight = 480

	padLeft   = 70
	padRight  = 20
	padTop    = 20
	padBottom = 60

	ticksX = 5
	ticksY = 5
)

// defaultColors is the palette used for series that do not set one.
var defaultColors = []string{"#1f77b4", "#ff7f0e", "#2ca02c", "#d62728"}

// Point is a single data point in chart coordinates.
type Point struct {
	X float64
	Y float64
}

// Series is one labeled line. Color is any SVG color string; when
// empty a palette color is assigned by series position.
type Series struct {
	Label  string
	Color  string
	Points []Point
}

// Chart describes a line chart. Width and Height default to 800x480
// when zero. The y axis always starts at zero and extends 10% past
// the largest value, which suits rate plots.
type Chart struct {
	Title  string
	XLabel string
	YLabel string
	Width  int
	Height int
	Series []Series
}

// Render writes the chart as a complete SVG document.
func (c Chart) Render(w io.Writer) error {
	var xmin, xmax, ymax float64
	total := 0
	for _, s := range c.Series {
		for _, p := range s.Points {
			if total == 0 {
				xmin, xmax = p.X, p.X
			}
			xmin = min(xmin, p.X)
			xmax = max(xmax, p.X)
			ymax = max(ymax, p.Y)
			total++
		}
	}
	if total == 0 {
		return ErrNoData
	}
	ymax *= 1.1

	width, height := c.Width, c.Height
	if width <= 0 {
		width = defaultWidth
	}
	if height <= 0 {
		height = defaultHeight
	}
	plotW := float64(width - padLeft - padRight)
	plotH := float64(height - padTop - padBottom)

	// Map normalized [0,1] coordinates to pixels, y growing upward.
	toPx := func(xn, yn float64) (float64, float64) {
		return padLeft + xn*plotW, padTop + (1-yn)*plotH
	}
	xden := xmax - xmin
	if xden == 0 {
		xden = 1
	}
	yden := ymax
	if yden == 0 {
		yden = 1
	}

	var b bytes.Buffer
	fmt.Fprintf(&b, "<svg xmlns=\"http://www.w3.org/2000/svg\" width=\"%d\" height=\"%d\" viewBox=\"0 0 %d %d\">\n",
		width, height, width, height)
	b.WriteString("<rect width=\"100%\" height=\"100%\" fill=\"#ffffff\"/>\n")

	if c.Title != "" {
		fmt.Fprintf(&b, "<text x=\"%d\" y=\"18\" font-size=\"16\" text-anchor=\"middle\" fill=\"#222\">%s</text>\n",
			width/2, escape(c.Title))
	}

	// Grid lines first so the data draws over them
	for i := 0; i <= ticksX; i++ {
		xn := float64(i) / ticksX
		x, y0 := toPx(xn, 0)
		_, y1 := toPx(xn, 1)
		fmt.Fprintf(&b, "<line x1=\"%.1f\" y1=\"%.1f\" x2=\"%.1f\" y2=\"%.1f\" stroke=\"#eee\" />\n", x, y0, x, y1)
	}
	for i := 0; i <= ticksY; i++ {
		yn := float64(i) / ticksY
		x0, y := toPx(0, yn)
		x1, _ := toPx(1, yn)
		fmt.Fprintf(&b, "<line x1=\"%.1f\" y1=\"%.1f\" x2=\"%.1f\" y2=\"%.1f\" stroke=\"#eee\" />\n", x0, y, x1, y)
	}

	for i, s := range c.Series {
		if len(s.Points) == 0 {
			continue
		}
		color := s.Color
		if color == "" {
			color = defaultColors[i%len(defaultColors)]
		}
		fmt.Fprintf(&b, "<polyline fill=\"none\" stroke=\"%s\" stroke-width=\"3\" points=\"", color)
		for j, p := range s.Points {
			if j > 0 {
				b.WriteByte(' ')
			}
			x, y := toPx((p.X-xmin)/xden, p.Y/yden)
			fmt.Fprintf(&b, "%.1f,%.1f", x, y)
		}
		b.WriteString("\" />\n")
	}

	// Tick labels
	for i := 0; i <= ticksX; i++ {
		xn := float64(i) / ticksX
		x, _ := toPx(xn, 0)
		val := int(math.Round(xmin + xn*(xmax-xmin)))
		fmt.Fprintf(&b, "<text x=\"%.1f\" y=\"%d\" font-size=\"12\" text-anchor=\"middle\" fill=\"#444\">%d</text>\n",
			x, height-20, val)
	}
	for i := 0; i <= ticksY; i++ {
		yn := float64(i) / ticksY
		_, y := toPx(0, yn)
		fmt.Fprintf(&b, "<text x=\"%d\" y=\"%.1f\" font-size=\"12\" text-anchor=\"end\" fill=\"#444\">%.3f</text>\n",
			padLeft-8, y+4, yn*ymax)
	}

	if c.XLabel != "" {
		fmt.Fprintf(&b, "<text x=\"%.1f\" y=\"%d\" font-size=\"13\" text-anchor=\"middle\" fill=\"#222\">%s</text>\n",
			padLeft+plotW/2, height-5, escape(c.XLabel))
	}
	if c.YLabel != "" {
		y := padTop + plotH/2
		fmt.Fprintf(&b, "<text x=\"18\" y=\"%.1f\" font-size=\"13\" text-anchor=\"middle\" fill=\"#222\" transform=\"rotate(-90, 18, %.1f)\">%s</text>\n",
			y, y, escape(c.YLabel))
	}

	c.legend(&b, width)

	b.WriteString("</svg>\n")
	_, err := w.Write(b.Bytes())
	return err
}

// legend draws a boxed legend in the top right corner, one row per
// labeled series. Series without labels are skipped; with no labels
// at all the legend is omitted.
func (c Chart) legend(b *bytes.Buffer, width int) {
	type entry struct {
		label string
		color string
	}
	var entries []entry
	for i, s := range c.Series {
		if s.Label == "" {
			continue
		}
		color := s.Color
		if color == "" {
			color = defaultColors[i%len(defaultColors)]
		}
		entries = append(entries, entry{label: s.Label, color: color})
	}
	if len(entries) == 0 {
		return
	}

	lx, ly := width-240, 26
	fmt.Fprintf(b, "<rect x=\"%d\" y=\"%d\" width=\"220\" height=\"%d\" fill=\"#fff\" stroke=\"#ddd\" />\n",
		lx, ly, 20*len(entries)+4)
	for i, e := range entries {
		fmt.Fprintf(b, "<line x1=\"%d\" y1=\"%d\" x2=\"%d\" y2=\"%d\" stroke=\"%s\" stroke-width=\"3\" />\n",
			lx+20, ly+16+20*i, lx+50, ly+16+20*i, e.color)
		fmt.Fprintf(b, "<text x=\"%d\" y=\"%d\" font-size=\"12\" fill=\"#333\">%s</text>\n",
			lx+60, ly+20+20*i, escape(e.label))
	}
}

var escaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

func escape(s string) string {
	return escaper.Replace(s)
}
