package executor

import "context"

// Executor runs external commands. The pipeline only ever shells out through
// this interface so tests can substitute a fake.
type Executor interface {
	Execute(ctx context.Context, name string, args ...string) (string, error)
}
