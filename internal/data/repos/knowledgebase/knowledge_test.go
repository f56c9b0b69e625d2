package knowledgebase

import (
	"context"
	"testing"

	"github.com/yungbote/knowledge-backend/internal/data/repos/testutil"
	types "github.com/yungbote/knowledge-backend/internal/domain"
	"github.com/yungbote/knowledge-backend/internal/domain/faults"
	"github.com/yungbote/knowledge-backend/internal/pkg/pointers"
	"github.com/yungbote/knowledge-backend/internal/platform/dbctx"
)

func TestKnowledgeRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}
	repo := NewKnowledgeRepo(db, testutil.Logger(t))

	ds := testutil.SeedDataset(t, ctx, tx, "kb")
	doc := testutil.SeedDocument(t, ctx, tx, ds.ID, "T1")

	// inserted out of order; listing sorts by sequence
	for _, seq := range []int{3, 1, 2} {
		k := types.NewKnowledge(types.KnowledgeInput{
			DocumentID:    doc.ID,
			Sequence:      seq,
			KnowledgeText: "fact",
			IsActive:      pointers.Bool(seq%2 == 1),
		})
		if _, err := repo.Create(dbc, k); err != nil {
			t.Fatalf("Create seq=%d: %v", seq, err)
		}
	}

	list, err := repo.List(dbc, doc.ID, 0, 10)
	if err != nil || len(list) != 3 {
		t.Fatalf("List: len=%d err=%v", len(list), err)
	}
	for i, k := range list {
		if k.Sequence != i+1 {
			t.Fatalf("List: position %d has sequence %d", i, k.Sequence)
		}
		if k.IsActive != (k.Sequence%2 == 1) {
			t.Fatalf("List: sequence %d has is_active=%v", k.Sequence, k.IsActive)
		}
	}
	if page, err := repo.List(dbc, doc.ID, 1, 1); err != nil || len(page) != 1 || page[0].Sequence != 2 {
		t.Fatalf("List window: got=%v err=%v", page, err)
	}

	target := list[0]
	updated, err := repo.Update(dbc, target.ID, types.KnowledgePatch{KnowledgeText: pointers.String("revised")})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.KnowledgeText != "revised" || updated.Sequence != 1 {
		t.Fatalf("Update: unexpected fields %+v", updated)
	}
	if _, err := repo.Update(dbc, "missing", types.KnowledgePatch{}); !faults.IsNotFound(err) {
		t.Fatalf("Update missing: expected not found, got %v", err)
	}

	if ok, err := repo.Delete(dbc, target.ID); err != nil || !ok {
		t.Fatalf("Delete: ok=%v err=%v", ok, err)
	}
	if got, err := repo.GetByID(dbc, target.ID); err != nil || got != nil {
		t.Fatalf("GetByID after delete: got=%v err=%v", got, err)
	}
}

func TestKnowledgeRepo_DocumentDeleteCascades(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}
	log := testutil.Logger(t)

	ds := testutil.SeedDataset(t, ctx, tx, "kb")
	doc := testutil.SeedDocument(t, ctx, tx, ds.ID, "T1")
	k := testutil.SeedKnowledge(t, ctx, tx, doc.ID, 0)

	if ok, err := NewDocumentRepo(db, log).Delete(dbc, doc.ID); err != nil || !ok {
		t.Fatalf("Delete document: ok=%v err=%v", ok, err)
	}
	if got, err := NewKnowledgeRepo(db, log).GetByID(dbc, k.ID); err != nil || got != nil {
		t.Fatalf("knowledge survived document delete: got=%v err=%v", got, err)
	}
	if got, err := NewDatasetRepo(db, log).GetByID(dbc, ds.ID); err != nil || got == nil {
		t.Fatalf("dataset removed by document delete: got=%v err=%v", got, err)
	}
}
