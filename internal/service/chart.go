package service

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/wcharczuk/go-chart/v2"
)

// RenderWeightChart writes a PNG of the monthly weight series with the
// fitted trend line. go-chart needs two points to draw a line, so a
// shorter series is rejected up front.
func RenderWeightChart(points []ChartPoint, outPath string) error {
	if len(points) < 2 {
		return fmt.Errorf("need at least 2 months of weight history to chart")
	}

	xs := make([]float64, len(points))
	weights := make([]float64, len(points))
	trends := make([]float64, len(points))
	ticks := make([]chart.Tick, len(points))
	for i, p := range points {
		xs[i] = float64(i)
		weights[i] = p.Weight
		trends[i] = p.Trend
		ticks[i] = chart.Tick{Value: float64(i), Label: p.Label}
	}

	graph := chart.Chart{
		Title:  "Weight Trend",
		Width:  900,
		Height: 450,
		XAxis: chart.XAxis{
			Ticks: ticks,
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    "Weight",
				XValues: xs,
				YValues: weights,
			},
			chart.ContinuousSeries{
				Name:    "Trend",
				XValues: xs,
				YValues: trends,
				Style: chart.Style{
					StrokeDashArray: []float64{5.0, 5.0},
				},
			},
		},
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}

	if dir := filepath.Dir(outPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create chart directory: %w", err)
		}
	}
	f, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("create chart file: %w", err)
	}
	defer f.Close()
	if err := graph.Render(chart.PNG, f); err != nil {
		return fmt.Errorf("render chart: %w", err)
	}
	return nil
}
