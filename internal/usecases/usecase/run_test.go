package usecase

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	txtest "github.com/yungbote/knowledge-backend/internal/data/txrunner/testutil"
	"github.com/yungbote/knowledge-backend/internal/domain/faults"
	"github.com/yungbote/knowledge-backend/internal/observability"
	"github.com/yungbote/knowledge-backend/internal/platform/dbctx"
)

func TestRun_CommitsThroughRunner(t *testing.T) {
	tx := &txtest.InjectedTxRunner{}
	out, err := Run(dbctx.Background(), NewRunner(tx, nil, nil), "test.ok", func(dbctx.Context) (int, error) {
		return 7, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 7, out)
	assert.Equal(t, 1, tx.CommitCalls)
}

func TestRun_ReturnsZeroOnError(t *testing.T) {
	tx := &txtest.InjectedTxRunner{}
	boom := errors.New("boom")
	out, err := Run(dbctx.Background(), NewRunner(tx, nil, nil), "test.fail", func(dbctx.Context) (*int, error) {
		v := 1
		return &v, boom
	})
	assert.ErrorIs(t, err, boom)
	assert.Nil(t, out)
	assert.Equal(t, 1, tx.RollbackCalls)
}

func TestRun_CommitFailureSurfaces(t *testing.T) {
	commitErr := errors.New("commit failed")
	tx := &txtest.InjectedTxRunner{FailCommit: commitErr}
	_, err := Run(dbctx.Context{Ctx: context.Background()}, NewRunner(tx, nil, nil), "test.commit", func(dbctx.Context) (bool, error) {
		return true, nil
	})
	assert.ErrorIs(t, err, commitErr)
}

func TestRun_RecordsOutcomeOnInjectedMetrics(t *testing.T) {
	metrics := observability.NewMetrics("kb")
	r := NewRunner(&txtest.InjectedTxRunner{}, metrics, nil)

	_, err := Run(dbctx.Background(), r, "datasets.Get", func(dbctx.Context) (int, error) {
		return 1, nil
	})
	require.NoError(t, err)
	_, err = Run(dbctx.Background(), r, "datasets.Get", func(dbctx.Context) (int, error) {
		return 0, faults.NotFound("datasets.Get", "dataset", "x")
	})
	require.Error(t, err)

	var buf bytes.Buffer
	require.NoError(t, metrics.WritePrometheus(&buf))
	assert.Contains(t, buf.String(), `kb_usecase_calls_total{usecase="datasets.Get",outcome="ok"} 1.000000`)
	assert.Contains(t, buf.String(), `kb_usecase_calls_total{usecase="datasets.Get",outcome="not_found"} 1.000000`)
}

func TestRun_SeparateRunnersDoNotShareMetrics(t *testing.T) {
	a := observability.NewMetrics("kb")
	b := observability.NewMetrics("kb")

	_, err := Run(dbctx.Background(), NewRunner(&txtest.InjectedTxRunner{}, a, nil), "documents.Create", func(dbctx.Context) (int, error) {
		return 1, nil
	})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, b.WritePrometheus(&buf))
	assert.NotContains(t, buf.String(), `usecase="documents.Create"`)
}

func TestRun_SpanCarriesStatusOnError(t *testing.T) {
	rec := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(rec))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })

	r := Runner{tx: &txtest.InjectedTxRunner{}, tracer: tp.Tracer("usecases")}
	_, _ = Run(dbctx.Background(), r, "knowledges.Delete", func(dbctx.Context) (bool, error) {
		return false, errors.New("boom")
	})

	spans := rec.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "knowledges.Delete", spans[0].Name())
	assert.Equal(t, "boom", spans[0].Status().Description)
}
