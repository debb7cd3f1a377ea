// Package plot renders the height history of a stress run as an interactive
// HTML line chart.
package plot

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// ErrNoSamples is returned when there is nothing to draw.
var ErrNoSamples = errors.New("no samples to plot")

const (
	chartWidth  = "100%"
	chartHeight = "500px"
	lineWidth   = 2
)

// Sample is the tree shape measured after Nodes insertions.
type Sample struct {
	Nodes       int `json:"nodes" yaml:"nodes"`
	Height      int `json:"height" yaml:"height"`
	BlackHeight int `json:"black_height" yaml:"black_height"`
}

// HeightBound is the largest height a red-black tree of n nodes may have,
// 2·log2(n+1).
func HeightBound(n int) float64 {
	return 2 * math.Log2(float64(n)+1)
}

// HeightChart builds a line chart of height and black height against size,
// together with the theoretical height bound.
func HeightChart(title string, samples []Sample) *charts.Line {
	labels := make([]string, len(samples))
	height := make([]opts.LineData, len(samples))
	black := make([]opts.LineData, len(samples))
	bound := make([]opts.LineData, len(samples))

	for idx, sample := range samples {
		labels[idx] = strconv.Itoa(sample.Nodes)
		height[idx] = opts.LineData{Value: sample.Height}
		black[idx] = opts.LineData{Value: sample.BlackHeight}
		bound[idx] = opts.LineData{Value: math.Round(HeightBound(sample.Nodes)*100) / 100}
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: title,
			Width:     chartWidth,
			Height:    chartHeight,
		}),
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Nodes"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Levels"}),
	)
	line.SetXAxis(labels)

	line.AddSeries("Height", height, charts.WithLineStyleOpts(opts.LineStyle{Width: lineWidth}))
	line.AddSeries("Black height", black, charts.WithLineStyleOpts(opts.LineStyle{Width: lineWidth}))
	line.AddSeries("2·log2(n+1)", bound, charts.WithLineStyleOpts(opts.LineStyle{Type: "dashed"}))

	return line
}

// Render writes the height chart of samples as a standalone HTML page.
func Render(w io.Writer, title string, samples []Sample) error {
	if len(samples) == 0 {
		return ErrNoSamples
	}

	err := HeightChart(title, samples).Render(w)
	if err != nil {
		return fmt.Errorf("render height chart: %w", err)
	}

	return nil
}
