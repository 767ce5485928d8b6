package render

import (
	"fmt"
	"os"
	"path/filepath"

	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/danielsamuels/covid-19-graphs/internal/chart"
)

// Output dimensions match the reference images: 1100x628 at 2x scale.
const (
	imageWidth  = 1100 * 2
	imageHeight = 628 * 2
)

// maxTicks caps how many date labels appear on the x axis.
const maxTicks = 16

var seriesPalette = []drawing.Color{
	{R: 99, G: 110, B: 250, A: 255},
	{R: 239, G: 85, B: 59, A: 255},
}

// PNG writes charts as PNG images into a directory.
type PNG struct {
	Dir string
}

// Render writes the chart as a PNG named filename inside the renderer's
// directory, creating the directory if needed.
func (p *PNG) Render(c chart.Chart, filename string) error {
	if err := os.MkdirAll(p.Dir, 0o755); err != nil {
		return fmt.Errorf("failed to create image directory: %w", err)
	}
	path := filepath.Join(p.Dir, filename)
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create image: %w", err)
	}
	if err := buildGraph(c).Render(gochart.PNG, file); err != nil {
		_ = file.Close()
		return fmt.Errorf("failed to render image: %w", err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to write image: %w", err)
	}
	return nil
}

func buildGraph(c chart.Chart) *gochart.Chart {
	xs := make([]float64, len(c.XLabels))
	for i := range xs {
		xs[i] = float64(i)
	}

	series := make([]gochart.Series, 0, len(c.Series))
	for i, s := range c.Series {
		values := s.Values
		if c.LogY {
			values = floorAtOne(values)
		}
		color := seriesPalette[i%len(seriesPalette)]
		series = append(series, gochart.HistogramSeries{
			Name: s.Name,
			Style: gochart.Style{
				StrokeWidth: 1,
				StrokeColor: color,
				FillColor:   color.WithAlpha(180),
			},
			InnerSeries: gochart.ContinuousSeries{
				XValues: xs[:len(values)],
				YValues: values,
			},
		})
	}

	graph := &gochart.Chart{
		Title:  c.Title,
		Width:  imageWidth,
		Height: imageHeight,
		XAxis: gochart.XAxis{
			Ticks: dateTicks(c.XLabels),
		},
		Series: series,
	}
	if c.LogY {
		graph.YAxis = gochart.YAxis{Range: &gochart.LogarithmicRange{}}
	}
	graph.Elements = []gochart.Renderable{gochart.Legend(graph)}
	return graph
}

// dateTicks thins the date labels so long series stay readable, always keeping
// the first and last day.
func dateTicks(labels []string) []gochart.Tick {
	if len(labels) == 0 {
		return nil
	}
	stride := (len(labels) + maxTicks - 1) / maxTicks
	if stride < 1 {
		stride = 1
	}
	ticks := make([]gochart.Tick, 0, maxTicks+1)
	for i := 0; i < len(labels); i += stride {
		ticks = append(ticks, gochart.Tick{Value: float64(i), Label: labels[i]})
	}
	last := len(labels) - 1
	if ticks[len(ticks)-1].Value != float64(last) {
		ticks = append(ticks, gochart.Tick{Value: float64(last), Label: labels[last]})
	}
	return ticks
}

// floorAtOne lifts non-positive values to 1: a logarithmic axis cannot place
// zero, and cumulative counts never go below it meaningfully on a log chart.
func floorAtOne(values []float64) []float64 {
	out := make([]float64, len(values))
	for i, v := range values {
		if v < 1 {
			v = 1
		}
		out[i] = v
	}
	return out
}
