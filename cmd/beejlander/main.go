// Command beejlander draws a random budget card pool from Scryfall.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/ramonehamilton/beejlander/internal/cli"
	"github.com/ramonehamilton/beejlander/internal/gui"
)

func main() {
	rootCmd := cli.NewRootCmd(runGUI)
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runGUI(opts cli.GUIOptions) error {
	app := gui.NewApp(gui.Options{
		Config:     opts.Config,
		ConfigPath: opts.ConfigPath,
		Fetcher:    opts.Fetcher,
		Logger:     opts.Logger,
	})
	app.Run()
	return nil
}
