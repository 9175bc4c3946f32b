// Package charts renders the mana curve of a card sample, either as an
// interactive HTML page or as a fyne widget.
package charts

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"sort"
	"strconv"
	"strings"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/ramonehamilton/beejlander/internal/cards/collection"
)

const (
	// LandLabel groups cards without a mana cost.
	LandLabel = "land"
	// OtherLabel groups costs that are not brace-delimited symbols.
	OtherLabel = "other"
)

// ChartConfig holds configuration for charts.
type ChartConfig struct {
	Title      string   // Chart title
	Subtitle   string   // Chart subtitle
	Width      string   // Chart width (e.g., "900px")
	Height     string   // Chart height (e.g., "500px")
	Theme      string   // Chart theme
	ShowLegend bool     // Show legend
	Colors     []string // Custom colors
}

// DefaultChartConfig returns default chart configuration.
func DefaultChartConfig() ChartConfig {
	return ChartConfig{
		Title:      "Mana Curve",
		Width:      "900px",
		Height:     "500px",
		Theme:      "light",
		ShowLegend: true,
		Colors:     []string{"#5470C6", "#91CC75", "#FAC858", "#EE6666", "#73C0DE"},
	}
}

// DataPoint represents a single data point in a chart.
type DataPoint struct {
	Label string
	Value float64
}

// ManaValue returns the converted mana value of a cost such as "{2}{R}{R}".
// ok is false when cost is not made of brace-delimited symbols.
func ManaValue(cost string) (value int, ok bool) {
	rest := strings.TrimSpace(cost)
	if rest == "" || !strings.HasPrefix(rest, "{") {
		return 0, false
	}

	for rest != "" {
		end := strings.IndexByte(rest, '}')
		if !strings.HasPrefix(rest, "{") || end < 0 {
			return 0, false
		}
		value += symbolValue(rest[1:end])
		rest = rest[end+1:]
	}
	return value, true
}

// symbolValue is the mana value of one symbol: generic numbers count their
// amount, variable costs count nothing, "2/W" style hybrids count 2 and
// every other symbol counts 1.
func symbolValue(sym string) int {
	if n, err := strconv.Atoi(sym); err == nil {
		return n
	}
	switch strings.ToUpper(sym) {
	case "X", "Y", "Z":
		return 0
	}
	if head, _, found := strings.Cut(sym, "/"); found {
		if n, err := strconv.Atoi(head); err == nil {
			return n
		}
	}
	return 1
}

// ManaCurve counts copies per mana value. Points are ordered by ascending
// mana value, followed by "other" and "land" when present.
func ManaCurve(cards *collection.Collection) []DataPoint {
	byValue := make(map[int]int)
	var other, lands int

	for _, e := range cards.Entries() {
		if e.Record.ManaValue == "" {
			lands += e.Count
			continue
		}
		v, ok := ManaValue(e.Record.ManaValue)
		if !ok {
			other += e.Count
			continue
		}
		byValue[v] += e.Count
	}

	values := make([]int, 0, len(byValue))
	for v := range byValue {
		values = append(values, v)
	}
	sort.Ints(values)

	points := make([]DataPoint, 0, len(values)+2)
	for _, v := range values {
		points = append(points, DataPoint{Label: strconv.Itoa(v), Value: float64(byValue[v])})
	}
	if other > 0 {
		points = append(points, DataPoint{Label: OtherLabel, Value: float64(other)})
	}
	if lands > 0 {
		points = append(points, DataPoint{Label: LandLabel, Value: float64(lands)})
	}
	return points
}

// RenderManaCurve writes the mana curve of a sample as an interactive bar
// chart HTML file.
func RenderManaCurve(cards *collection.Collection, config ChartConfig, outputPath string) error {
	if cards == nil {
		return fmt.Errorf("collection is nil")
	}
	if config.Subtitle == "" {
		config.Subtitle = fmt.Sprintf("%d cards, %d distinct", cards.Total(), cards.Len())
	}
	return RenderBarChart(ManaCurve(cards), config, outputPath)
}

// RenderBarChart creates an interactive bar chart HTML file.
func RenderBarChart(data []DataPoint, config ChartConfig, outputPath string) error {
	if len(config.Colors) == 0 {
		config.Colors = DefaultChartConfig().Colors
	}

	bar := charts.NewBar()

	// Set global options
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			Width:  config.Width,
			Height: config.Height,
			Theme:  config.Theme,
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    config.Title,
			Subtitle: config.Subtitle,
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show:    opts.Bool(true),
			Trigger: "axis",
		}),
		charts.WithLegendOpts(opts.Legend{
			Show: opts.Bool(config.ShowLegend),
		}),
		charts.WithColorsOpts(opts.Colors{
			config.Colors[0],
		}),
	)

	// Prepare X-axis labels
	xLabels := make([]string, len(data))
	for i, point := range data {
		xLabels[i] = point.Label
	}

	// Prepare Y-axis data
	yData := make([]opts.BarData, len(data))
	for i, point := range data {
		yData[i] = opts.BarData{Value: point.Value}
	}

	bar.SetXAxis(xLabels).
		AddSeries("Cards", yData).
		SetSeriesOptions(
			charts.WithLabelOpts(opts.Label{
				Show: opts.Bool(true),
			}),
		)

	// Create output file
	f, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create chart file: %w", err)
	}
	defer f.Close()

	if err := bar.Render(f); err != nil {
		return fmt.Errorf("failed to render chart: %w", err)
	}

	return nil
}

// OpenInBrowser opens the given file path in the default web browser.
func OpenInBrowser(filePath string) error {
	// Get absolute path
	absPath, err := filepath.Abs(filePath)
	if err != nil {
		return fmt.Errorf("failed to get absolute path: %w", err)
	}

	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", absPath)
	case "windows":
		cmd = exec.Command("cmd", "/c", "start", absPath)
	case "linux":
		cmd = exec.Command("xdg-open", absPath)
	default:
		return fmt.Errorf("unsupported platform: %s", runtime.GOOS)
	}

	return cmd.Start()
}
