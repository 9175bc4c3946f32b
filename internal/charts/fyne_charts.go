package charts

import (
	"fmt"
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/ramonehamilton/beejlander/internal/cards/collection"
)

// FyneChartConfig holds configuration for Fyne charts.
type FyneChartConfig struct {
	Title     string
	Width     float32
	Height    float32
	ShowGrid  bool
	GridColor color.Color
	BarColor  color.Color
	LandColor color.Color
}

// DefaultFyneChartConfig returns default Fyne chart configuration.
func DefaultFyneChartConfig() FyneChartConfig {
	return FyneChartConfig{
		Title:     "Mana Curve",
		Width:     480,
		Height:    260,
		ShowGrid:  true,
		GridColor: color.RGBA{R: 200, G: 200, B: 200, A: 255},
		BarColor:  color.RGBA{R: 84, G: 112, B: 198, A: 255},
		LandColor: color.RGBA{R: 145, G: 204, B: 117, A: 255},
	}
}

// NewManaCurveChart creates a bar chart widget of a sample's mana curve.
func NewManaCurveChart(cards *collection.Collection, config FyneChartConfig) fyne.CanvasObject {
	if cards == nil {
		return widget.NewLabel("No cards drawn yet")
	}
	return CreateFyneBarChart(ManaCurve(cards), config)
}

// CreateFyneBarChart creates a Fyne bar chart widget. Bars start at zero.
func CreateFyneBarChart(data []DataPoint, config FyneChartConfig) fyne.CanvasObject {
	if len(data) == 0 {
		return widget.NewLabel("No data available")
	}

	maxVal := maxValue(data)
	if maxVal <= 0 {
		maxVal = 1
	}

	// Chart dimensions
	chartWidth := config.Width
	chartHeight := config.Height
	leftMargin := float32(40)
	rightMargin := float32(20)
	topMargin := float32(40)
	bottomMargin := float32(40)

	plotWidth := chartWidth - leftMargin - rightMargin
	plotHeight := chartHeight - topMargin - bottomMargin

	objects := []fyne.CanvasObject{}
	textColor := color.RGBA{R: 66, G: 66, B: 66, A: 255}

	if config.ShowGrid {
		for i := 0; i <= 4; i++ {
			y := topMargin + (plotHeight / 4 * float32(i))
			line := canvas.NewLine(config.GridColor)
			line.Position1 = fyne.NewPos(leftMargin, y)
			line.Position2 = fyne.NewPos(leftMargin+plotWidth, y)
			line.StrokeWidth = 1
			objects = append(objects, line)

			value := maxVal - (maxVal / 4 * float64(i))
			label := canvas.NewText(fmt.Sprintf("%.0f", value), textColor)
			label.TextSize = 10
			label.Move(fyne.NewPos(5, y-7))
			objects = append(objects, label)
		}
	}

	barWidth := plotWidth / float32(len(data)) * 0.8
	barSpacing := plotWidth / float32(len(data))

	for i, point := range data {
		barHeight := plotHeight * float32(point.Value/maxVal)

		x := leftMargin + (barSpacing * float32(i)) + (barSpacing-barWidth)/2
		y := topMargin + plotHeight - barHeight

		fill := config.BarColor
		if point.Label == LandLabel {
			fill = config.LandColor
		}
		bar := canvas.NewRectangle(fill)
		bar.Resize(fyne.NewSize(barWidth, barHeight))
		bar.Move(fyne.NewPos(x, y))
		objects = append(objects, bar)

		label := canvas.NewText(point.Label, textColor)
		label.TextSize = 10
		label.Alignment = fyne.TextAlignCenter
		label.Move(fyne.NewPos(x, topMargin+plotHeight+8))
		label.Resize(fyne.NewSize(barWidth, 16))
		objects = append(objects, label)

		valueLabel := canvas.NewText(fmt.Sprintf("%.0f", point.Value), textColor)
		valueLabel.TextSize = 9
		valueLabel.Alignment = fyne.TextAlignCenter
		valueLabel.Move(fyne.NewPos(x, y-15))
		valueLabel.Resize(fyne.NewSize(barWidth, 14))
		objects = append(objects, valueLabel)
	}

	if config.Title != "" {
		title := canvas.NewText(config.Title, textColor)
		title.TextSize = 14
		title.Alignment = fyne.TextAlignCenter
		title.Move(fyne.NewPos(0, 8))
		title.Resize(fyne.NewSize(chartWidth, 20))
		objects = append(objects, title)
	}

	chart := container.NewWithoutLayout(objects...)
	chart.Resize(fyne.NewSize(chartWidth, chartHeight))

	// NewWithoutLayout reports a zero MinSize; wrap it so layouts reserve room.
	spacer := canvas.NewRectangle(color.Transparent)
	spacer.SetMinSize(fyne.NewSize(chartWidth, chartHeight))
	return container.NewStack(spacer, chart)
}

func maxValue(data []DataPoint) float64 {
	m := 0.0
	for _, point := range data {
		m = max(m, point.Value)
	}
	return m
}
