package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/ramonehamilton/beejlander/internal/cards/cardtext"
	"github.com/ramonehamilton/beejlander/internal/cards/query"
	"github.com/ramonehamilton/beejlander/internal/cards/scryfall"
	"github.com/ramonehamilton/beejlander/internal/version"
)

func newQueryCmd(root *rootFlags) *cobra.Command {
	var filter filterFlags

	cmd := &cobra.Command{
		Use:   "query",
		Short: "Print the search queries for the configured filter",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, _, err := root.load(cmd)
			if err != nil {
				return err
			}
			filter.apply(cmd, cfg)

			f, err := cfg.QueryFilter()
			if err != nil {
				return err
			}

			client := scryfall.NewClient(scryfall.ClientConfig{BaseURL: cfg.Scryfall.BaseURL})
			queries := query.Build(f)

			out := cmd.OutOrStdout()
			writef(out, "rare:  %s\n", client.RandomCardURL(queries.Rare))
			writef(out, "other: %s\n", client.RandomCardURL(queries.Other))
			return nil
		},
	}
	filter.register(cmd)
	return cmd
}

func newParseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "parse [file]",
		Short: "Parse a card in Scryfall text format from a file or stdin",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var data []byte
			var err error
			if len(args) == 0 || args[0] == "-" {
				data, err = io.ReadAll(cmd.InOrStdin())
			} else {
				data, err = os.ReadFile(args[0])
			}
			if err != nil {
				return fmt.Errorf("read card text: %w", err)
			}

			record, err := cardtext.Parse(string(data))
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			writef(out, "Name:       %s\n", record.Name)
			writef(out, "Mana value: %s\n", record.ManaValue)
			writef(out, "Type line:  %s\n", record.TypeLine)
			writef(out, "Land:       %t\n", cardtext.IsLand(record.TypeLine))
			if record.Text != "" {
				writef(out, "Text:\n%s\n", record.Text)
			}
			return nil
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			writef(cmd.OutOrStdout(), "beejlander %s\n", version.GetVersion())
		},
	}
}
