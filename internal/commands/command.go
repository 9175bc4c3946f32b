package commands

import (
	"context"
)

// Command represents an encapsulated operation that can be executed.
// Commands are what the front-ends hand to Start to run in the background.
type Command interface {
	// Execute performs the command's operation.
	// Returns an error if the operation fails.
	Execute(ctx context.Context) error

	// GetName returns a human-readable name for this command.
	// Used for logging and debugging.
	GetName() string

	// GetDescription returns a detailed description of what this command does.
	// Used for logging and UI display.
	GetDescription() string
}

// BaseCommand provides a base implementation of the Command interface.
// Embed this in your command structs to get default implementations.
type BaseCommand struct {
	name        string
	description string
}

// GetName returns the command name.
func (c *BaseCommand) GetName() string {
	return c.name
}

// GetDescription returns the command description.
func (c *BaseCommand) GetDescription() string {
	return c.description
}

// StartCommand runs cmd in the background.
func StartCommand(parent context.Context, cmd Command) *Task[struct{}] {
	return Start(parent, cmd.GetName(), func(ctx context.Context) (struct{}, error) {
		return struct{}{}, cmd.Execute(ctx)
	})
}
