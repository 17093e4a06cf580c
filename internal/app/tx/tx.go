package tx

import "context"

// Runner executes fn atomically with respect to the backing store. Rule and
// block mutations run their overlap check and insert inside one transaction
// to close the check-then-act race.
type Runner interface {
	InTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// NoopRunner runs fn directly; used with stores that have no transactions.
type NoopRunner struct{}

func (NoopRunner) InTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
