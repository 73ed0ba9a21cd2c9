package memory

import "context"

// TxRunner is a pass-through: the in-memory store has no transactions, every
// repository call is already atomic under its own lock.
type TxRunner struct{}

func NewTxRunner() *TxRunner {
	return &TxRunner{}
}

func (TxRunner) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
