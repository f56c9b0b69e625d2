package txrunner

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/yungbote/knowledge-backend/internal/domain/faults"
	"github.com/yungbote/knowledge-backend/internal/platform/dbctx"
)

// TxRunner scopes a unit of work: fn commits when it returns nil and rolls
// back otherwise.
type TxRunner interface {
	InTx(ctx context.Context, fn func(dbc dbctx.Context) error) error
}

type gormTxRunner struct {
	db *gorm.DB
}

func NewGormTxRunner(db *gorm.DB) TxRunner {
	return &gormTxRunner{db: db}
}

func (r *gormTxRunner) InTx(ctx context.Context, fn func(dbc dbctx.Context) error) error {
	if fn == nil {
		return nil
	}
	if r == nil || r.db == nil {
		return faults.NewError(faults.CodeInternal, "txrunner.in_tx", "transaction runner has nil db", nil)
	}
	if ctx == nil {
		ctx = context.Background()
	}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(dbctx.Context{Ctx: ctx, Tx: tx})
	})
	if err == nil {
		return nil
	}
	var fe *faults.Error
	if errors.As(err, &fe) {
		return err
	}
	// begin/commit failures surface here without a code
	return faults.Wrap(faults.CodeStorage, "txrunner.in_tx", err)
}

// Scoped reuses dbc.Tx when the caller already holds a transaction and opens
// a new one through runner otherwise.
func Scoped(dbc dbctx.Context, runner TxRunner, fn func(dbc dbctx.Context) error) error {
	if dbc.Tx != nil {
		return fn(dbc)
	}
	return runner.InTx(dbc.Context(), fn)
}
