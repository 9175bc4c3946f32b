package gui

import (
	"errors"
	"fmt"
	"strings"

	"fyne.io/fyne/v2/dialog"

	"github.com/ramonehamilton/beejlander/internal/cards/query"
	"github.com/ramonehamilton/beejlander/internal/cards/scryfall"
	"github.com/ramonehamilton/beejlander/internal/sampler"
)

// describeRunError turns a failed run into a title and a user-facing message.
func describeRunError(err error) (title, message string) {
	switch sampler.StageOf(err) {
	case sampler.StageCancelled:
		return "Sampling Cancelled", "The sample was cancelled. Nothing was written."
	case sampler.StageFetch:
		if scryfall.IsNotFound(err) {
			return "No Matching Cards",
				"Scryfall found no cards for these price caps. Try raising one of the prices.\n\n" + err.Error()
		}
		return "Fetch Failed",
			"Could not get a card from Scryfall. Check your connection and try again.\n\n" + err.Error()
	case sampler.StageParse:
		return "Unexpected Response",
			"Scryfall returned a card this version cannot read.\n\n" + err.Error()
	}

	var cfgErr *query.ConfigError
	if errors.As(err, &cfgErr) {
		return "Invalid Prices", describeConfigError(cfgErr)
	}
	return "Error", err.Error()
}

// describeConfigError lists the rejected price fields.
func describeConfigError(err *query.ConfigError) string {
	var fields []string
	for field := range query.PriceField(query.NumPriceFields) {
		if err.Invalid(field) {
			fields = append(fields, field.String())
		}
	}
	return fmt.Sprintf("Enter a non-negative decimal for: %s.", strings.Join(fields, ", "))
}

// ShowErrorDialog displays an error dialog with helpful information.
func (a *App) ShowErrorDialog(err error) {
	title, message := describeRunError(err)
	dialog.ShowInformation(title, message, a.window)
}

