package report

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/bobmcallan/wealthflow/internal/services/metrics"
)

const defaultSliceColor = "9ca3af" // gray-400

// RenderCategoryChart renders the expense breakdown as a PNG pie chart.
// Each slice uses its category colour.
func RenderCategoryChart(breakdown []metrics.CategoryTotal) ([]byte, error) {
	if len(breakdown) == 0 {
		return nil, fmt.Errorf("no expenses to chart")
	}

	values := make([]chart.Value, 0, len(breakdown))
	for _, ct := range breakdown {
		color := strings.TrimPrefix(ct.Category.Color, "#")
		if color == "" {
			color = defaultSliceColor
		}
		values = append(values, chart.Value{
			Label: ct.Category.Name,
			Value: ct.Total.InexactFloat64(),
			Style: chart.Style{
				FillColor:   drawing.ColorFromHex(color),
				StrokeColor: drawing.ColorWhite,
				StrokeWidth: 1,
			},
		})
	}

	pie := chart.PieChart{
		Title:  "Expenses by Category",
		Width:  512,
		Height: 512,
		Values: values,
	}

	var buf bytes.Buffer
	if err := pie.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("chart render failed: %w", err)
	}
	return buf.Bytes(), nil
}

// RenderHoldingsChart renders the market value of each holding, in the home
// currency, as a PNG bar chart.
func RenderHoldingsChart(holdings []metrics.Holding) ([]byte, error) {
	bars := make([]chart.Value, 0, len(holdings))
	for _, h := range holdings {
		if !h.Value.IsPositive() {
			continue
		}
		bars = append(bars, chart.Value{
			Label: h.Stock.Symbol,
			Value: h.Value.InexactFloat64(),
			Style: chart.Style{
				FillColor:   drawing.ColorFromHex("2563eb"), // blue-600
				StrokeColor: drawing.ColorFromHex("2563eb"),
			},
		})
	}
	if len(bars) == 0 {
		return nil, fmt.Errorf("no holdings with market value to chart")
	}

	graph := chart.BarChart{
		Title:  "Holdings by Market Value",
		Width:  900,
		Height: 400,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 10, Right: 20, Bottom: 10},
		},
		BarWidth: 60,
		YAxis: chart.YAxis{
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return fmt.Sprintf("%.0fk", f/1000)
				}
				return ""
			},
		},
		Bars: bars,
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("chart render failed: %w", err)
	}
	return buf.Bytes(), nil
}
