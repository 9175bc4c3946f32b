package gui

import (
	"context"
	"errors"
	"testing"

	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ramonehamilton/beejlander/internal/cards/query"
	"github.com/ramonehamilton/beejlander/internal/cards/scryfall"
	"github.com/ramonehamilton/beejlander/internal/config"
	"github.com/ramonehamilton/beejlander/internal/sampler"
)

func TestDescribeRunError(t *testing.T) {
	tests := []struct {
		name  string
		err   error
		title string
	}{
		{
			name:  "cancelled",
			err:   &sampler.RunError{Stage: sampler.StageCancelled, Err: context.Canceled},
			title: "Sampling Cancelled",
		},
		{
			name:  "not found",
			err:   &sampler.RunError{Stage: sampler.StageFetch, Err: &scryfall.FetchError{URL: "u", StatusCode: 404, Err: &scryfall.NotFoundError{URL: "u"}}},
			title: "No Matching Cards",
		},
		{
			name:  "fetch",
			err:   &sampler.RunError{Stage: sampler.StageFetch, Err: &scryfall.FetchError{URL: "u", Err: errors.New("dial tcp: refused")}},
			title: "Fetch Failed",
		},
		{
			name:  "parse",
			err:   &sampler.RunError{Stage: sampler.StageParse, Err: errors.New("malformed")},
			title: "Unexpected Response",
		},
		{
			name:  "other",
			err:   errors.New("disk full"),
			title: "Error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			title, message := describeRunError(tt.err)
			assert.Equal(t, tt.title, title)
			assert.NotEmpty(t, message)
		})
	}
}

func TestDescribeRunError_ConfigError(t *testing.T) {
	_, err := query.ParseFilterConfig(false, [query.NumPriceFields]string{"abc", "0.1", "0.25", "-2"})
	require.Error(t, err)

	title, message := describeRunError(err)
	assert.Equal(t, "Invalid Prices", title)
	assert.Equal(t, "Enter a non-negative decimal for: common, land.", message)
}

func TestValidatePrice(t *testing.T) {
	assert.NoError(t, validatePrice("0.25"))
	assert.NoError(t, validatePrice("2"))
	assert.Error(t, validatePrice(""))
	assert.Error(t, validatePrice("abc"))
	assert.Error(t, validatePrice("-1"))
}

func TestPriceForm(t *testing.T) {
	a := test.NewApp()
	defer a.Quit()

	form := newPriceForm(config.DefaultConfig().Filter)
	filter, err := form.filter()
	require.NoError(t, err)
	assert.Equal(t, query.FilterConfig{CommonPrice: 0.1, UncommonPrice: 0.25, RarePrice: 2, LandPrice: 0.2}, filter)

	form.silver.SetChecked(true)
	form.entries[query.FieldRare].SetText("4.5")
	filter, err = form.filter()
	require.NoError(t, err)
	assert.True(t, filter.IncludeSilverBordered)
	assert.Equal(t, 4.5, filter.RarePrice)

	form.entries[query.FieldCommon].SetText("abc")
	_, err = form.filter()
	var cfgErr *query.ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, [query.NumPriceFields]bool{true, false, false, false}, cfgErr.Fields())
}

func TestPriceForm_SetEnabled(t *testing.T) {
	a := test.NewApp()
	defer a.Quit()

	form := newPriceForm(config.DefaultConfig().Filter)
	form.setEnabled(false)
	for _, e := range form.entries {
		assert.True(t, e.Disabled())
	}
	assert.True(t, form.silver.Disabled())

	form.setEnabled(true)
	assert.False(t, form.entries[query.FieldLand].Disabled())
}
