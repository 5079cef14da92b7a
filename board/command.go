package board

import "context"

// Command is an optimistic change: apply updates local state immediately,
// persist sends it to storage and undo restores the prior state when
// persisting fails.
type Command struct {
	apply   func()
	persist func(ctx context.Context) error
	undo    func()
}

// Execute applies the command, persists it and compensates on failure.
// The persist error is returned unchanged.
func (c *Command) Execute(ctx context.Context) error {
	c.apply()

	if err := c.persist(ctx); err != nil {
		c.undo()
		return err
	}

	return nil
}
