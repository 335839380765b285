// Copyright 2019 Nick White.
// Use of this source code is governed by the GPLv3
// license that can be found in the LICENSE file.

package glyphpipeline

import (
	"errors"
	"fmt"
	"io"
	"sort"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
	"gonum.org/v1/gonum/stat"
)

const maxticks = 40
const yticknum = 20

// Coverage records how much of the canvas of a glyph image is inked
type Coverage struct {
	Name, Char string
	// Proportion of pixels which are not fully transparent, 0-1
	Value float64
}

// CoverageStats summarises a set of coverages, as percentages
type CoverageStats struct {
	Mean, Low, High float64
}

// Stats calculates the mean coverage and the 10th and 90th percentiles
func Stats(covs []Coverage) CoverageStats {
	var vals []float64
	for _, c := range covs {
		vals = append(vals, c.Value*100)
	}
	if len(vals) == 0 {
		return CoverageStats{}
	}
	sort.Float64s(vals)
	return CoverageStats{
		Mean: stat.Mean(vals, nil),
		Low:  stat.Quantile(0.1, stat.Empirical, vals, nil),
		High: stat.Quantile(0.9, stat.Empirical, vals, nil),
	}
}

// createLine creates a horizontal line with a particular y value for
// a graph
func createLine(xvalues []float64, y float64, c drawing.Color, dashed bool) chart.ContinuousSeries {
	var yvalues []float64
	for range xvalues {
		yvalues = append(yvalues, y)
	}
	s := chart.ContinuousSeries{
		XValues: xvalues,
		YValues: yvalues,
		Style: chart.Style{
			StrokeColor: c,
		},
	}
	if dashed {
		s.Style.StrokeDashArray = []float64{5.0, 5.0}
	}
	return s
}

// Graph creates a graph of the ink coverage of each glyph, in name
// order, with guide lines at the mean and the 10th and 90th
// percentiles. Glyphs outside the percentiles are labelled with
// their position, as they are the ones most likely to have been
// thresholded badly.
func Graph(covs []Coverage, title string, w io.Writer) error {
	if len(covs) < 2 {
		return errors.New("Not enough glyphs to graph")
	}

	sorted := make([]Coverage, len(covs))
	copy(sorted, covs)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Name < sorted[j].Name })

	stats := Stats(sorted)

	var xvalues, yvalues []float64
	var ticks, yticks []chart.Tick
	tickevery := len(sorted) / maxticks
	if tickevery < 1 {
		tickevery = 1
	}
	for i, c := range sorted {
		x := float64(i + 1)
		xvalues = append(xvalues, x)
		yvalues = append(yvalues, c.Value*100)
		if i%tickevery == 0 {
			ticks = append(ticks, chart.Tick{Value: x, Label: fmt.Sprintf("%d", i+1)})
		}
	}
	for i := 0; i <= yticknum; i++ {
		n := float64(i*100) / yticknum
		yticks = append(yticks, chart.Tick{Value: n, Label: fmt.Sprintf("%.0f", n)})
	}

	var annotations []chart.Value2
	for i, y := range yvalues {
		if y > stats.High || y < stats.Low {
			annotations = append(annotations, chart.Value2{Label: fmt.Sprintf("%d", i+1), XValue: xvalues[i], YValue: y})
		}
	}
	last := xvalues[len(xvalues)-1]
	annotations = append(annotations, chart.Value2{Label: fmt.Sprintf("%.1f", stats.Low), XValue: last, YValue: stats.Low})
	annotations = append(annotations, chart.Value2{Label: fmt.Sprintf("%.1f", stats.High), XValue: last, YValue: stats.High})

	graph := chart.Chart{
		Title:  title,
		Width:  1920,
		Height: 1080,
		XAxis: chart.XAxis{
			Name: "Glyph",
			Range: &chart.ContinuousRange{
				Min: 0.0,
			},
			Ticks: ticks,
		},
		YAxis: chart.YAxis{
			Name: "Coverage (%)",
			Range: &chart.ContinuousRange{
				Min: 0.0,
				Max: 100.0,
			},
			Ticks: yticks,
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Style: chart.Style{
					StrokeColor: chart.ColorBlue,
					FillColor:   chart.ColorAlternateBlue,
				},
				XValues: xvalues,
				YValues: yvalues,
			},
			createLine(xvalues, stats.Mean, chart.ColorOrange, false),
			createLine(xvalues, stats.Low, chart.ColorAlternateGray, true),
			createLine(xvalues, stats.High, chart.ColorAlternateGray, true),
			chart.AnnotationSeries{
				Annotations: annotations,
			},
		},
	}
	return graph.Render(chart.PNG, w)
}
