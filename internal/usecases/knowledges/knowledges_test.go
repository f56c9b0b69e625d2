package knowledges

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yungbote/knowledge-backend/internal/data/repos"
	"github.com/yungbote/knowledge-backend/internal/data/repos/testutil"
	"github.com/yungbote/knowledge-backend/internal/data/txrunner"
	"github.com/yungbote/knowledge-backend/internal/domain/faults"
	"github.com/yungbote/knowledge-backend/internal/pkg/pointers"
	"github.com/yungbote/knowledge-backend/internal/platform/dbctx"
	"github.com/yungbote/knowledge-backend/internal/usecases/datasets"
	"github.com/yungbote/knowledge-backend/internal/usecases/documents"
	"github.com/yungbote/knowledge-backend/internal/usecases/usecase"
)

func TestDatasetDocumentKnowledgeScenario(t *testing.T) {
	db := testutil.SQLite(t)
	log := testutil.Logger(t)
	run := usecase.NewRunner(txrunner.NewGormTxRunner(db), nil, nil)
	datasetRepo := repos.NewDatasetRepo(db, log)
	documentRepo := repos.NewDocumentRepo(db, log)

	dsUC := datasets.New(datasetRepo, run, log)
	docUC := documents.New(datasetRepo, documentRepo, run, log)
	kUC := New(repos.NewKnowledgeRepo(db, log), run, log)
	dbc := dbctx.Background()

	ds, err := dsUC.Create.Execute(dbc, datasets.CreateInput{Name: "D1"})
	require.NoError(t, err)
	doc, err := docUC.Create.Execute(dbc, documents.CreateInput{DatasetID: ds.ID, Title: "T1", Content: "C1"})
	require.NoError(t, err)
	require.Equal(t, ds.ID, doc.DatasetID)

	// stored out of order to exercise sorting
	for _, seq := range []int{2, 3, 1} {
		_, err := kUC.Create.Execute(dbc, CreateInput{
			DocumentID:    doc.ID,
			Sequence:      seq,
			KnowledgeText: "fact",
			IsActive:      pointers.Bool(seq != 2),
		})
		require.NoError(t, err)
	}

	list, err := kUC.List.Execute(dbc, ListInput{DocumentID: doc.ID, Limit: 100})
	require.NoError(t, err)
	require.Len(t, list, 3)
	for i, k := range list {
		assert.Equal(t, i+1, k.Sequence)
		assert.Equal(t, doc.ID, k.DocumentID)
	}
	assert.True(t, list[0].IsActive)
	assert.False(t, list[1].IsActive)
	assert.True(t, list[2].IsActive)

	deleted, err := dsUC.Delete.Execute(dbc, ds.ID)
	require.NoError(t, err)
	require.True(t, deleted)

	_, err = docUC.Get.Execute(dbc, doc.ID)
	assert.True(t, faults.IsNotFound(err))
	for _, k := range list {
		_, err := kUC.Get.Execute(dbc, k.ID)
		assert.True(t, faults.IsNotFound(err), "knowledge %s survived cascade", k.ID)
	}
}

func TestCreateForUnknownDocument(t *testing.T) {
	db := testutil.SQLite(t)
	log := testutil.Logger(t)
	uc := New(repos.NewKnowledgeRepo(db, log), usecase.NewRunner(txrunner.NewGormTxRunner(db), nil, nil), log)

	_, err := uc.Create.Execute(dbctx.Background(), CreateInput{DocumentID: "nope", Sequence: 0, KnowledgeText: "x"})
	assert.Equal(t, faults.CodePreconditionFailed, faults.CodeOf(err))
}

func TestCreateValidation(t *testing.T) {
	db := testutil.SQLite(t)
	log := testutil.Logger(t)
	uc := New(repos.NewKnowledgeRepo(db, log), usecase.NewRunner(txrunner.NewGormTxRunner(db), nil, nil), log)

	cases := []CreateInput{
		{DocumentID: "", Sequence: 0, KnowledgeText: "x"},
		{DocumentID: "d", Sequence: -1, KnowledgeText: "x"},
		{DocumentID: "d", Sequence: 0, KnowledgeText: ""},
	}
	for _, in := range cases {
		_, err := uc.Create.Execute(dbctx.Background(), in)
		assert.True(t, faults.IsValidation(err), "input %+v: got %v", in, err)
	}
}

func TestUpdateAndDelete(t *testing.T) {
	db := testutil.SQLite(t)
	log := testutil.Logger(t)
	uc := New(repos.NewKnowledgeRepo(db, log), usecase.NewRunner(txrunner.NewGormTxRunner(db), nil, nil), log)
	ctx := context.Background()
	dbc := dbctx.Background()

	ds := testutil.SeedDataset(t, ctx, db, "D")
	doc := testutil.SeedDocument(t, ctx, db, ds.ID, "T")
	k := testutil.SeedKnowledge(t, ctx, db, doc.ID, 4)

	updated, err := uc.Update.Execute(dbc, k.ID, UpdateInput{Sequence: pointers.Int(9), Metadata: map[string]any{"page": float64(3)}})
	require.NoError(t, err)
	assert.Equal(t, 9, updated.Sequence)
	assert.Equal(t, k.KnowledgeText, updated.KnowledgeText)

	got, err := uc.Get.Execute(dbc, k.ID)
	require.NoError(t, err)
	assert.Equal(t, 9, got.Sequence)
	assert.Equal(t, float64(3), got.Metadata["page"])

	_, err = uc.Update.Execute(dbc, k.ID, UpdateInput{Sequence: pointers.Int(-2)})
	assert.True(t, faults.IsValidation(err), "got %v", err)
	_, err = uc.Update.Execute(dbc, "missing", UpdateInput{})
	assert.True(t, faults.IsNotFound(err), "got %v", err)

	deleted, err := uc.Delete.Execute(dbc, k.ID)
	require.NoError(t, err)
	assert.True(t, deleted)
	deleted, err = uc.Delete.Execute(dbc, k.ID)
	require.NoError(t, err)
	assert.False(t, deleted)
}
