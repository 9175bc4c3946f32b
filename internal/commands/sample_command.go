package commands

import (
	"context"
	"fmt"

	"github.com/ramonehamilton/beejlander/internal/cards/collection"
	"github.com/ramonehamilton/beejlander/internal/cards/query"
	"github.com/ramonehamilton/beejlander/internal/sampler"
)

// SampleRunner is the part of sampler.Sampler a SampleCommand needs.
type SampleRunner interface {
	Run(ctx context.Context, queries query.Queries) (*collection.Collection, error)
}

// SampleCommand draws one card sample for a filter.
type SampleCommand struct {
	BaseCommand
	runner SampleRunner
	filter query.FilterConfig

	result *collection.Collection
}

// NewSampleCommand creates a command sampling with runner and filter.
func NewSampleCommand(runner SampleRunner, filter query.FilterConfig) *SampleCommand {
	return &SampleCommand{
		BaseCommand: BaseCommand{
			name: "sample",
			description: fmt.Sprintf("Draw a card sample (common <= %s, uncommon <= %s, rare <= %s, land <= %s)",
				query.FormatPrice(filter.CommonPrice),
				query.FormatPrice(filter.UncommonPrice),
				query.FormatPrice(filter.RarePrice),
				query.FormatPrice(filter.LandPrice)),
		},
		runner: runner,
		filter: filter,
	}
}

// Execute builds the queries and runs the sampler.
func (c *SampleCommand) Execute(ctx context.Context) error {
	cards, err := c.runner.Run(ctx, query.Build(c.filter))
	if err != nil {
		return err
	}
	c.result = cards
	return nil
}

// Result returns the sample of a successful Execute, or nil.
func (c *SampleCommand) Result() *collection.Collection {
	return c.result
}

// StartSample runs a sampling command in the background. The task's result
// is the finished collection; on failure it is nil and the error is the
// run's *sampler.RunError.
func StartSample(parent context.Context, runner SampleRunner, filter query.FilterConfig) *Task[*collection.Collection] {
	cmd := NewSampleCommand(runner, filter)
	return Start(parent, cmd.GetName(), func(ctx context.Context) (*collection.Collection, error) {
		if err := cmd.Execute(ctx); err != nil {
			return nil, err
		}
		return cmd.Result(), nil
	})
}

var _ SampleRunner = (*sampler.Sampler)(nil)
