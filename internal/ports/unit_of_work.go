package ports

import "context"

// Tx is an opaque transaction handle shared by the tracker repositories.
// Infrastructure controls the concrete type (here, *gorm.DB).
type Tx interface{}

// UnitOfWork brackets multi-repository writes, such as an issue save that
// reserves a key, writes the row and replaces its relation sets.
//
// Callback-style: returning an error causes rollback, returning nil commits.
type UnitOfWork interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type txKey struct{}

// WithTxContext stores a transaction handle in context.
func WithTxContext(ctx context.Context, tx Tx) context.Context {
	return context.WithValue(ctx, txKey{}, tx)
}

// TxFromContext reads a transaction handle from context.
func TxFromContext(ctx context.Context) Tx {
	return ctx.Value(txKey{})
}
