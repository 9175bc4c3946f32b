package gui

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/ramonehamilton/beejlander/internal/cards/collection"
	"github.com/ramonehamilton/beejlander/internal/cards/query"
	"github.com/ramonehamilton/beejlander/internal/charts"
	"github.com/ramonehamilton/beejlander/internal/commands"
	"github.com/ramonehamilton/beejlander/internal/config"
	"github.com/ramonehamilton/beejlander/internal/deckexport"
	"github.com/ramonehamilton/beejlander/internal/metrics"
	"github.com/ramonehamilton/beejlander/internal/sampler"
)

// priceForm holds the filter inputs.
type priceForm struct {
	entries [query.NumPriceFields]*widget.Entry
	silver  *widget.Check
}

func newPriceForm(cfg config.FilterConfig) *priceForm {
	f := &priceForm{
		silver: widget.NewCheck("Include silver-bordered cards", nil),
	}
	f.silver.SetChecked(cfg.IncludeSilverBordered)

	initial := [query.NumPriceFields]string{
		query.FieldCommon:   cfg.CommonPrice,
		query.FieldUncommon: cfg.UncommonPrice,
		query.FieldRare:     cfg.RarePrice,
		query.FieldLand:     cfg.LandPrice,
	}
	for i := range f.entries {
		entry := widget.NewEntry()
		entry.SetPlaceHolder("e.g. 0.25")
		entry.Validator = validatePrice
		entry.SetText(initial[i])
		f.entries[i] = entry
	}
	return f
}

// validatePrice drives the entry's live error colouring.
func validatePrice(s string) error {
	_, err := query.ParsePrice(s)
	return err
}

// values returns the raw entry texts.
func (f *priceForm) values() [query.NumPriceFields]string {
	var out [query.NumPriceFields]string
	for i, e := range f.entries {
		out[i] = e.Text
	}
	return out
}

// filter validates every field and returns the filter or a *query.ConfigError.
func (f *priceForm) filter() (query.FilterConfig, error) {
	return query.ParseFilterConfig(f.silver.Checked, f.values())
}

func (f *priceForm) setEnabled(enabled bool) {
	for _, e := range f.entries {
		if enabled {
			e.Enable()
		} else {
			e.Disable()
		}
	}
	if enabled {
		f.silver.Enable()
	} else {
		f.silver.Disable()
	}
}

func (f *priceForm) widget() *widget.Form {
	items := make([]*widget.FormItem, 0, query.NumPriceFields+1)
	labels := [query.NumPriceFields]string{
		query.FieldCommon:   "Common max (USD)",
		query.FieldUncommon: "Uncommon max (USD)",
		query.FieldRare:     "Rare max (USD)",
		query.FieldLand:     "Land max (USD)",
	}
	for i, e := range f.entries {
		items = append(items, widget.NewFormItem(labels[i], e))
	}
	items = append(items, widget.NewFormItem("", f.silver))
	return widget.NewForm(items...)
}

// sampleView is the main window content.
type sampleView struct {
	app *App

	form     *priceForm
	generate *widget.Button
	cancel   *widget.Button
	progress *widget.ProgressBar
	status   *widget.Label
	result   *fyne.Container

	task *commands.Task[*collection.Collection]
}

func newSampleView(a *App) *sampleView {
	v := &sampleView{
		app:      a,
		form:     newPriceForm(a.cfg.Filter),
		progress: widget.NewProgressBar(),
		status:   widget.NewLabel("Set the price caps and press Generate."),
		result:   container.NewStack(),
	}
	v.generate = widget.NewButton("Generate", v.start)
	v.generate.Importance = widget.HighImportance
	v.cancel = widget.NewButton("Cancel", v.stop)
	v.cancel.Disable()
	v.status.Wrapping = fyne.TextWrapWord
	return v
}

func (v *sampleView) content() fyne.CanvasObject {
	return container.NewVBox(
		widget.NewRichTextFromMarkdown("### Card pool filters"),
		v.form.widget(),
		container.NewHBox(v.generate, v.cancel),
		v.progress,
		v.status,
		widget.NewSeparator(),
		v.result,
	)
}

// start validates the form and launches a sampling run. Runs on the UI thread.
func (v *sampleView) start() {
	if v.task != nil {
		return
	}

	filter, err := v.form.filter()
	if err != nil {
		for _, e := range v.form.entries {
			_ = e.Validate()
		}
		v.app.ShowErrorDialog(err)
		return
	}

	if v.app.fetcher == nil {
		v.app.ShowErrorDialog(fmt.Errorf("no card source configured"))
		return
	}

	runMetrics := metrics.NewRunMetrics()
	s, err := sampler.New(sampler.Config{
		Fetcher:       v.app.fetcher,
		Budget:        v.app.cfg.Budget(),
		Logger:        v.app.logger,
		ProgressEvery: v.app.cfg.Sample.ProgressEvery,
		Metrics:       runMetrics,
		Progress: func(p sampler.Progress) {
			fyne.Do(func() { v.showProgress(p) })
		},
	})
	if err != nil {
		v.app.ShowErrorDialog(err)
		return
	}

	v.app.cfg.SetQueryFilter(filter)
	if err := v.app.cfg.Save(v.app.configPath); err != nil {
		v.app.logger.Warn("Failed to save filter settings", "error", err)
	}

	v.setRunning(true)
	v.progress.SetValue(0)
	v.status.SetText("Fetching cards from Scryfall...")
	v.result.Objects = nil
	v.result.Refresh()

	v.task = commands.StartSample(v.app.ctx, s, filter)
	go v.await(v.task)
}

// stop cancels the running sample. Runs on the UI thread.
func (v *sampleView) stop() {
	if v.task != nil {
		v.status.SetText("Cancelling...")
		v.task.Cancel()
	}
}

// await waits for the run off the UI thread, writes the result and hands
// the outcome back to the UI thread.
func (v *sampleView) await(task *commands.Task[*collection.Collection]) {
	cards, err := task.Wait()

	var path string
	if err == nil {
		path, err = v.save(cards)
	}
	if err != nil {
		v.app.logger.Warn("Sample run failed", "task", task.Name(), "error", err)
	}

	fyne.Do(func() {
		v.task = nil
		v.setRunning(false)

		if err != nil {
			v.progress.SetValue(0)
			title, _ := describeRunError(err)
			v.status.SetText(title)
			v.app.ShowErrorDialog(err)
			return
		}

		v.progress.SetValue(1)
		v.status.SetText(fmt.Sprintf("Saved %d cards (%d distinct) to %s", cards.Total(), cards.Len(), path))
		v.result.Objects = []fyne.CanvasObject{charts.NewManaCurveChart(cards, charts.DefaultFyneChartConfig())}
		v.result.Refresh()
	})
}

// save writes the sample and, if configured, its HTML mana curve.
func (v *sampleView) save(cards *collection.Collection) (string, error) {
	out := v.app.cfg.Output
	opts, err := v.app.cfg.ExportOptions()
	if err != nil {
		return "", err
	}

	path, err := deckexport.WriteFile(out.Path, cards, opts)
	if err != nil {
		return "", err
	}
	v.app.logger.Info("Sample written", "path", path, "cards", cards.Total())

	if out.ChartPath != "" {
		if err := charts.RenderManaCurve(cards, charts.DefaultChartConfig(), out.ChartPath); err != nil {
			v.app.logger.Warn("Failed to render mana curve", "path", out.ChartPath, "error", err)
		}
	}
	return path, nil
}

func (v *sampleView) showProgress(p sampler.Progress) {
	v.progress.SetValue(float64(p.Accepted) / float64(p.Target))
	v.status.SetText(fmt.Sprintf("%d/%d", p.Accepted, p.Target))
}

func (v *sampleView) setRunning(running bool) {
	v.form.setEnabled(!running)
	if running {
		v.generate.Disable()
		v.cancel.Enable()
	} else {
		v.generate.Enable()
		v.cancel.Disable()
	}
}
