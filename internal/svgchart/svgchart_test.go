package svgchart

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func sampleChart() Chart {
	return Chart{
		Title:  "False Positive Rate",
		XLabel: "n (inserted items)",
		YLabel: "false positive probability",
		Series: []Series{
			{
				Label:  "Empirical",
				Color:  "#1f77b4",
				Points: []Point{{X: 1000, Y: 0.009}, {X: 2000, Y: 0.012}, {X: 3000, Y: 0.010}},
			},
			{
				Label:  "Theoretical",
				Color:  "#ff7f0e",
				Points: []Point{{X: 1000, Y: 0.010}, {X: 2000, Y: 0.010}, {X: 3000, Y: 0.010}},
			},
		},
	}
}

func render(t *testing.T, c Chart) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, c.Render(&buf))
	return buf.String()
}

func TestRenderBasic(t *testing.T) {
	s := render(t, sampleChart())

	require.True(t, strings.HasPrefix(s, "<svg "))
	require.True(t, strings.HasSuffix(s, "</svg>\n"))
	require.Contains(t, s, `width="800" height="480"`)
	require.Equal(t, 2, strings.Count(s, "<polyline"))
	require.Contains(t, s, `stroke="#1f77b4"`)
	require.Contains(t, s, `stroke="#ff7f0e"`)
}

func TestRenderNoData(t *testing.T) {
	var buf bytes.Buffer

	err := Chart{}.Render(&buf)
	require.ErrorIs(t, err, ErrNoData)

	err = Chart{Series: []Series{{Label: "empty"}}}.Render(&buf)
	require.ErrorIs(t, err, ErrNoData)

	require.Zero(t, buf.Len())
}

func TestRenderCustomSize(t *testing.T) {
	c := sampleChart()
	c.Width = 640
	c.Height = 360

	s := render(t, c)
	require.Contains(t, s, `width="640" height="360"`)
	require.Contains(t, s, `viewBox="0 0 640 360"`)
}

func TestRenderTitleAndAxisLabels(t *testing.T) {
	s := render(t, sampleChart())

	require.Contains(t, s, ">False Positive Rate</text>")
	require.Contains(t, s, ">n (inserted items)</text>")
	require.Contains(t, s, ">false positive probability</text>")
	require.Contains(t, s, "rotate(-90, 18,")
}

func TestRenderOmitsEmptyText(t *testing.T) {
	c := sampleChart()
	c.Title = ""
	c.XLabel = ""
	c.YLabel = ""

	s := render(t, c)
	require.NotContains(t, s, `font-size="16"`)
	require.NotContains(t, s, `font-size="13"`)
}

func TestRenderLegend(t *testing.T) {
	s := render(t, sampleChart())
	require.Contains(t, s, ">Empirical</text>")
	require.Contains(t, s, ">Theoretical</text>")
	require.Contains(t, s, `stroke="#ddd"`)

	c := sampleChart()
	c.Series[0].Label = ""
	c.Series[1].Label = ""
	s = render(t, c)
	require.NotContains(t, s, `stroke="#ddd"`)
}

func TestRenderDefaultColors(t *testing.T) {
	c := sampleChart()
	c.Series[0].Color = ""
	c.Series[1].Color = ""

	s := render(t, c)
	require.Contains(t, s, `stroke="#1f77b4"`)
	require.Contains(t, s, `stroke="#ff7f0e"`)
}

func TestRenderGridAndTicks(t *testing.T) {
	c := Chart{
		Series: []Series{{
			Points: []Point{{X: 0, Y: 0}, {X: 50, Y: 0.005}, {X: 100, Y: 0.01}},
		}},
	}

	s := render(t, c)
	// 6 vertical and 6 horizontal grid lines
	require.Equal(t, 12, strings.Count(s, `stroke="#eee"`))
	// X ticks run 0..100 in steps of 20
	for _, label := range []string{">0<", ">20<", ">40<", ">60<", ">80<", ">100<"} {
		require.Contains(t, s, label)
	}
	// Top y tick sits 10% above the data maximum
	require.Contains(t, s, ">0.011<")
}

func TestRenderSinglePoint(t *testing.T) {
	c := Chart{Series: []Series{{Points: []Point{{X: 500, Y: 0.02}}}}}

	s := render(t, c)
	require.NotContains(t, s, "NaN")
	require.Contains(t, s, "<polyline")
}

func TestRenderEscapesMarkup(t *testing.T) {
	c := sampleChart()
	c.Title = "a<b & c>d"

	s := render(t, c)
	require.Contains(t, s, "a&lt;b &amp; c&gt;d")
	require.NotContains(t, s, ">a<b")
}
