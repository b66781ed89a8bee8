// Package render draws composed chart data as PNG images for clients that
// want a static rendition instead of the interactive page.
package render

import (
	"bytes"
	"errors"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"prdash/internal/domain/view"
)

// ErrEmpty means the composed output had no points to draw. Callers decide
// how an empty chart is presented; it is not a failure.
var ErrEmpty = errors.New("render: no data points")

var palette = []drawing.Color{
	{R: 0xc2, G: 0x6e, B: 0x75, A: 0xff},
	{R: 0x75, G: 0x30, B: 0x3b, A: 0xff},
	{R: 0x63, G: 0x6e, B: 0xfa, A: 0xff},
	{R: 0xef, G: 0x55, B: 0x3b, A: 0xff},
	{R: 0x00, G: 0xcc, B: 0x96, A: 0xff},
	{R: 0xab, G: 0x63, B: 0xfa, A: 0xff},
}

type Renderer struct {
	Width  int
	Height int
}

func NewRenderer() *Renderer {
	return &Renderer{Width: 1100, Height: 600}
}

// Bars draws one bar per series point, in the order given.
func (r *Renderer) Bars(title string, points []view.SeriesPoint) ([]byte, error) {
	if len(points) == 0 {
		return nil, ErrEmpty
	}

	bars := make([]chart.Value, 0, len(points))
	for _, p := range points {
		bars = append(bars, chart.Value{Label: p.Label, Value: p.Value})
	}

	bc := chart.BarChart{
		Title:    title,
		Width:    r.Width,
		Height:   r.Height,
		BarWidth: 40,
		Bars:     bars,
	}

	var buf bytes.Buffer
	if err := bc.Render(chart.PNG, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Lines draws one cumulative line per year from aligned frame points. The x
// axis spans the full year at the given granularity, not just the observed
// buckets, so partial years keep their calendar position.
func (r *Renderer) Lines(title string, bucket view.Bucket, frames []view.FramePoint) ([]byte, error) {
	if len(frames) == 0 {
		return nil, ErrEmpty
	}

	order := make([]string, 0)
	byLabel := make(map[string]*chart.ContinuousSeries)
	for _, f := range frames {
		s, ok := byLabel[f.Label]
		if !ok {
			s = &chart.ContinuousSeries{Name: f.Label}
			byLabel[f.Label] = s
			order = append(order, f.Label)
		}
		s.XValues = append(s.XValues, float64(f.Bucket))
		s.YValues = append(s.YValues, f.Cumulative)
	}

	series := make([]chart.Series, 0, len(order))
	for i, label := range order {
		s := byLabel[label]
		s.Style = chart.Style{
			StrokeColor: palette[i%len(palette)],
			StrokeWidth: 2,
		}
		series = append(series, s)
	}

	graph := chart.Chart{
		Title:  title,
		Width:  r.Width,
		Height: r.Height,
		XAxis: chart.XAxis{
			Range: &chart.ContinuousRange{
				Min: 0,
				Max: float64(view.BucketCount(bucket)),
			},
		},
		Series: series,
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
