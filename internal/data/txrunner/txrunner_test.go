package txrunner

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yungbote/knowledge-backend/internal/data/repos/testutil"
	types "github.com/yungbote/knowledge-backend/internal/domain"
	"github.com/yungbote/knowledge-backend/internal/domain/faults"
	"github.com/yungbote/knowledge-backend/internal/platform/dbctx"
)

func TestGormTxRunner_CommitAndRollback(t *testing.T) {
	db := testutil.SQLite(t)
	runner := NewGormTxRunner(db)
	ctx := context.Background()

	var committed *types.Dataset
	err := runner.InTx(ctx, func(dbc dbctx.Context) error {
		require.NotNil(t, dbc.Tx)
		committed = testutil.SeedDataset(t, dbc.Ctx, dbc.Tx, "kept")
		return nil
	})
	require.NoError(t, err)

	boom := errors.New("boom")
	var rolledBack *types.Dataset
	err = runner.InTx(ctx, func(dbc dbctx.Context) error {
		rolledBack = testutil.SeedDataset(t, dbc.Ctx, dbc.Tx, "discarded")
		return boom
	})
	assert.ErrorIs(t, err, boom)

	var count int64
	require.NoError(t, db.Model(&types.Dataset{}).Where("id = ?", committed.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)
	require.NoError(t, db.Model(&types.Dataset{}).Where("id = ?", rolledBack.ID).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestGormTxRunner_NilDB(t *testing.T) {
	err := NewGormTxRunner(nil).InTx(context.Background(), func(dbctx.Context) error { return nil })
	assert.Equal(t, faults.CodeInternal, faults.CodeOf(err))
}

func TestScoped_ReusesOuterTx(t *testing.T) {
	db := testutil.SQLite(t)
	tx := testutil.Tx(t, db)
	runner := NewGormTxRunner(db)

	err := Scoped(dbctx.Context{Ctx: context.Background(), Tx: tx}, runner, func(dbc dbctx.Context) error {
		assert.Same(t, tx, dbc.Tx)
		return nil
	})
	require.NoError(t, err)
}
