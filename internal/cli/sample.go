package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ramonehamilton/beejlander/internal/cards/query"
	"github.com/ramonehamilton/beejlander/internal/charts"
	"github.com/ramonehamilton/beejlander/internal/commands"
	"github.com/ramonehamilton/beejlander/internal/config"
	"github.com/ramonehamilton/beejlander/internal/deckexport"
	"github.com/ramonehamilton/beejlander/internal/metrics"
	"github.com/ramonehamilton/beejlander/internal/sampler"
)

// filterFlags override the [filter] section of the config file.
type filterFlags struct {
	common   string
	uncommon string
	rare     string
	land     string
	silver   bool
}

func (f *filterFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.common, "common", "", "max common price in USD")
	cmd.Flags().StringVar(&f.uncommon, "uncommon", "", "max uncommon price in USD")
	cmd.Flags().StringVar(&f.rare, "rare", "", "max rare price in USD")
	cmd.Flags().StringVar(&f.land, "land", "", "max land price in USD")
	cmd.Flags().BoolVar(&f.silver, "silver", false, "include silver-bordered cards")
}

// apply copies explicitly set flags into cfg.
func (f *filterFlags) apply(cmd *cobra.Command, cfg *config.Config) {
	applyString(cmd, "common", &cfg.Filter.CommonPrice, f.common)
	applyString(cmd, "uncommon", &cfg.Filter.UncommonPrice, f.uncommon)
	applyString(cmd, "rare", &cfg.Filter.RarePrice, f.rare)
	applyString(cmd, "land", &cfg.Filter.LandPrice, f.land)
	if cmd.Flags().Changed("silver") {
		cfg.Filter.IncludeSilverBordered = f.silver
	}
}

type sampleFlags struct {
	filter    filterFlags
	output    string
	format    string
	title     string
	chart     string
	open      bool
	target    int
	tolerance int
	baseURL   string
}

func newSampleCmd(root *rootFlags) *cobra.Command {
	flags := &sampleFlags{}

	cmd := &cobra.Command{
		Use:   "sample",
		Short: "Draw a sample and write it to a file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, err := root.load(cmd)
			if err != nil {
				return err
			}
			flags.apply(cmd, cfg)
			if err := cfg.Validate(); err != nil {
				return err
			}

			filter, err := cfg.QueryFilter()
			if err != nil {
				return err
			}
			exportOpts, err := cfg.ExportOptions()
			if err != nil {
				return err
			}
			client, err := newClient(cfg)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			printFilter(cmd, filter)

			runMetrics := metrics.NewRunMetrics()
			s, err := sampler.New(sampler.Config{
				Fetcher:       client,
				Budget:        cfg.Budget(),
				Logger:        logger,
				ProgressEvery: cfg.Sample.ProgressEvery,
				Metrics:       runMetrics,
				Progress: func(p sampler.Progress) {
					writef(out, "%d/%d\n", p.Accepted, p.Target)
				},
			})
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			writef(out, "Generating queries\n")
			writef(out, "Fetching cards\n")
			task := commands.StartSample(ctx, s, filter)
			cards, err := task.Wait()
			if err != nil {
				return err
			}

			export, err := deckexport.Render(cards, exportOpts)
			if err != nil {
				return err
			}
			path := cfg.Output.Path
			if path == "" {
				path = export.Filename
			}
			writef(out, "Saving cards to '%s'\n", path)
			if _, err := export.Save(path); err != nil {
				return err
			}

			if cfg.Output.ChartPath != "" {
				if err := charts.RenderManaCurve(cards, charts.DefaultChartConfig(), cfg.Output.ChartPath); err != nil {
					return err
				}
				writef(out, "Mana curve written to '%s'\n", cfg.Output.ChartPath)
				if flags.open {
					if err := charts.OpenInBrowser(cfg.Output.ChartPath); err != nil {
						logger.Warn("Failed to open chart", "error", err)
					}
				}
			}

			summary := runMetrics.Summary()
			writef(out, "Done: %d cards, %d distinct, %d requests\n", cards.Total(), cards.Len(), summary.Fetches)
			return nil
		},
	}

	flags.filter.register(cmd)
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "output file (default cards.txt)")
	cmd.Flags().StringVar(&flags.format, "format", "", "output format: plaintext, arena, mtgo, json or csv")
	cmd.Flags().StringVar(&flags.title, "title", "", "title for the output header and suggested file name")
	cmd.Flags().StringVar(&flags.chart, "chart", "", "also write an HTML mana curve to this path")
	cmd.Flags().BoolVar(&flags.open, "open", false, "open the mana curve in a browser")
	cmd.Flags().IntVar(&flags.target, "target", 0, "cards in the sample")
	cmd.Flags().IntVar(&flags.tolerance, "tolerance", 0, "duplicates allowed before re-fetching")
	cmd.Flags().StringVar(&flags.baseURL, "base-url", "", "Scryfall API base URL")

	return cmd
}

func (f *sampleFlags) apply(cmd *cobra.Command, cfg *config.Config) {
	f.filter.apply(cmd, cfg)
	applyString(cmd, "output", &cfg.Output.Path, f.output)
	applyString(cmd, "format", &cfg.Output.Format, f.format)
	applyString(cmd, "title", &cfg.Output.Title, f.title)
	applyString(cmd, "chart", &cfg.Output.ChartPath, f.chart)
	applyString(cmd, "base-url", &cfg.Scryfall.BaseURL, f.baseURL)
	applyInt(cmd, "target", &cfg.Sample.TargetTotal, f.target)
	applyInt(cmd, "tolerance", &cfg.Sample.DuplicateTolerance, f.tolerance)
}

func printFilter(cmd *cobra.Command, f query.FilterConfig) {
	out := cmd.OutOrStdout()
	writef(out, "Running with the following configuration:\n")
	writef(out, "\tInclude silver-bordered cards: %t\n", f.IncludeSilverBordered)
	for field := range query.PriceField(query.NumPriceFields) {
		writef(out, "\t%s price limit: %s\n", capitalize(field.String()), query.FormatPrice(f.Price(field)))
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return string(s[0]-'a'+'A') + s[1:]
}

func applyString(cmd *cobra.Command, name string, target *string, value string) {
	if !cmd.Flags().Changed(name) {
		return
	}
	*target = value
}

func applyInt(cmd *cobra.Command, name string, target *int, value int) {
	if !cmd.Flags().Changed(name) {
		return
	}
	*target = value
}
