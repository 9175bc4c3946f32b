// Package gui is the desktop front-end: a single window that collects the
// price caps, runs a sample in the background and writes the result.
package gui

import (
	"context"
	"log/slog"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/ramonehamilton/beejlander/internal/config"
	"github.com/ramonehamilton/beejlander/internal/sampler"
)

// Options configures the GUI application.
type Options struct {
	Config     *config.Config
	ConfigPath string // where the last used filter is saved; empty uses the default
	Fetcher    sampler.Fetcher
	Logger     *slog.Logger
}

// App represents the GUI application.
type App struct {
	app        fyne.App
	window     fyne.Window
	cfg        *config.Config
	configPath string
	fetcher    sampler.Fetcher
	logger     *slog.Logger
	ctx        context.Context
	cancel     context.CancelFunc
}

// NewApp creates a new GUI application.
func NewApp(opts Options) *App {
	return newApp(app.NewWithID(AppID), opts)
}

func newApp(fyneApp fyne.App, opts Options) *App {
	if opts.Config == nil {
		opts.Config = config.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &App{
		app:        fyneApp,
		cfg:        opts.Config,
		configPath: opts.ConfigPath,
		fetcher:    opts.Fetcher,
		logger:     opts.Logger,
		ctx:        ctx,
		cancel:     cancel,
	}
}

// Run starts the GUI application and blocks until the window is closed.
// Closing the window cancels any running sample.
func (a *App) Run() {
	a.window = a.app.NewWindow(AppName)
	a.window.Resize(fyne.NewSize(560, 620))
	a.window.SetOnClosed(a.cancel)

	a.window.SetMainMenu(fyne.NewMainMenu(
		fyne.NewMenu("Help",
			fyne.NewMenuItem("About", a.showAboutDialog),
		),
	))

	view := newSampleView(a)
	a.window.SetContent(container.NewBorder(
		nil,
		widget.NewLabel(Attribution),
		nil,
		nil,
		view.content(),
	))
	a.window.ShowAndRun()
}
