package knowledgebase

import (
	"context"
	"reflect"
	"testing"
	"time"

	"github.com/yungbote/knowledge-backend/internal/data/repos/testutil"
	types "github.com/yungbote/knowledge-backend/internal/domain"
	"github.com/yungbote/knowledge-backend/internal/domain/faults"
	"github.com/yungbote/knowledge-backend/internal/pkg/pointers"
	"github.com/yungbote/knowledge-backend/internal/platform/dbctx"
)

func TestDatasetRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}
	repo := NewDatasetRepo(db, testutil.Logger(t))

	d1 := types.NewDataset(types.DatasetInput{Name: "D1", Metadata: map[string]any{"k": "v"}})
	created, err := repo.Create(dbc, d1)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.ID == "" {
		t.Fatalf("Create: expected generated id")
	}
	if !created.IsActive {
		t.Fatalf("Create: expected active by default")
	}

	got, err := repo.GetByID(dbc, created.ID)
	if err != nil || got == nil || got.Name != "D1" {
		t.Fatalf("GetByID: got=%v err=%v", got, err)
	}
	if got.Metadata["k"] != "v" {
		t.Fatalf("GetByID: metadata not round-tripped: %v", got.Metadata)
	}

	if got, err := repo.GetByID(dbc, "missing"); err != nil || got != nil {
		t.Fatalf("GetByID missing: got=%v err=%v", got, err)
	}

	inactive := types.NewDataset(types.DatasetInput{Name: "D2", IsActive: pointers.Bool(false)})
	if _, err := repo.Create(dbc, inactive); err != nil {
		t.Fatalf("Create inactive: %v", err)
	}
	stored, err := repo.GetByID(dbc, inactive.ID)
	if err != nil || stored == nil || stored.IsActive {
		t.Fatalf("inactive flag not persisted: got=%v err=%v", stored, err)
	}

	if _, err := repo.Create(dbc, nil); !faults.IsValidation(err) {
		t.Fatalf("Create nil: expected validation error, got %v", err)
	}
}

func TestDatasetRepoMetadataRoundTrip(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	dbc := dbctx.Context{Ctx: context.Background(), Tx: tx}
	repo := NewDatasetRepo(db, testutil.Logger(t))

	meta := map[string]any{
		"n":      float64(1),
		"ratio":  0.25,
		"flag":   true,
		"tags":   []any{"a", "b"},
		"nested": map[string]any{"depth": float64(2)},
	}
	created, err := repo.Create(dbc, types.NewDataset(types.DatasetInput{Name: "numbers", Metadata: meta}))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := repo.GetByID(dbc, created.ID)
	if err != nil || got == nil {
		t.Fatalf("GetByID: got=%v err=%v", got, err)
	}
	if !reflect.DeepEqual(map[string]any(got.Metadata), meta) {
		t.Fatalf("GetByID: metadata = %#v, want %#v", got.Metadata, meta)
	}

	listed, err := repo.List(dbc, DatasetListFilter{Limit: 10})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	for _, d := range listed {
		if d.ID == created.ID && !reflect.DeepEqual(map[string]any(d.Metadata), meta) {
			t.Fatalf("List: metadata = %#v, want %#v", d.Metadata, meta)
		}
	}
}

func TestDatasetRepo_ListPagingAndFilter(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}
	repo := NewDatasetRepo(db, testutil.Logger(t))

	base := time.Now().UTC().Add(-time.Hour)
	var ids []string
	for i := 0; i < 4; i++ {
		d := types.NewDataset(types.DatasetInput{Name: "paged", IsActive: pointers.Bool(i%2 == 0)})
		d.CreatedAt = base.Add(time.Duration(i) * time.Second)
		d.UpdatedAt = d.CreatedAt
		if _, err := repo.Create(dbc, d); err != nil {
			t.Fatalf("Create %d: %v", i, err)
		}
		ids = append(ids, d.ID)
	}

	all, err := repo.List(dbc, DatasetListFilter{Skip: 0, Limit: 100})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	pos := map[string]int{}
	for i, d := range all {
		pos[d.ID] = i
	}
	for i := 1; i < len(ids); i++ {
		if pos[ids[i-1]] >= pos[ids[i]] {
			t.Fatalf("List: expected creation order, got %v", all)
		}
	}

	if got, err := repo.List(dbc, DatasetListFilter{Skip: 0, Limit: 0}); err != nil || len(got) != 0 {
		t.Fatalf("List limit 0: len=%d err=%v", len(got), err)
	}
	if got, err := repo.List(dbc, DatasetListFilter{Skip: 1_000_000, Limit: 10}); err != nil || len(got) != 0 {
		t.Fatalf("List skip past end: len=%d err=%v", len(got), err)
	}
	if got, err := repo.List(dbc, DatasetListFilter{Skip: pos[ids[0]], Limit: 2}); err != nil || len(got) != 2 || got[0].ID != ids[0] || got[1].ID != ids[1] {
		t.Fatalf("List window: got=%v err=%v", got, err)
	}

	inactive, err := repo.List(dbc, DatasetListFilter{Limit: 100, IsActive: pointers.Bool(false)})
	if err != nil {
		t.Fatalf("List inactive: %v", err)
	}
	for _, d := range inactive {
		if d.IsActive {
			t.Fatalf("List inactive: got active dataset %s", d.ID)
		}
	}
	found := 0
	for _, d := range inactive {
		if d.ID == ids[1] || d.ID == ids[3] {
			found++
		}
	}
	if found != 2 {
		t.Fatalf("List inactive: expected both inactive seeds, got %d", found)
	}
}

func TestDatasetRepo_UpdateAndDelete(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}
	repo := NewDatasetRepo(db, testutil.Logger(t))

	d := testutil.SeedDataset(t, ctx, tx, "before")
	past := time.Now().UTC().Add(-24 * time.Hour).Truncate(time.Second)
	testutil.Backdate(t, ctx, tx, &types.Dataset{}, d.ID, past)

	updated, err := repo.Update(dbc, d.ID, types.DatasetPatch{Name: pointers.String("after")})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Name != "after" || updated.Description != "seeded" {
		t.Fatalf("Update: unexpected fields %+v", updated)
	}
	if !updated.UpdatedAt.After(past) {
		t.Fatalf("Update: updated_at did not advance: %v", updated.UpdatedAt)
	}

	reloaded, err := repo.GetByID(dbc, d.ID)
	if err != nil || reloaded == nil {
		t.Fatalf("GetByID after update: got=%v err=%v", reloaded, err)
	}
	if reloaded.Name != "after" || !reloaded.UpdatedAt.After(past) {
		t.Fatalf("Update not persisted: %+v", reloaded)
	}
	if !reloaded.CreatedAt.Equal(past) {
		t.Fatalf("Update touched created_at: %v", reloaded.CreatedAt)
	}

	fixed := time.Date(2030, 1, 2, 3, 4, 5, 0, time.UTC)
	if got, err := repo.Update(dbc, d.ID, types.DatasetPatch{UpdatedAt: &fixed}); err != nil || !got.UpdatedAt.Equal(fixed) {
		t.Fatalf("Update explicit timestamp: got=%v err=%v", got, err)
	}

	if _, err := repo.Update(dbc, "missing", types.DatasetPatch{Name: pointers.String("x")}); !faults.IsNotFound(err) {
		t.Fatalf("Update missing: expected not found, got %v", err)
	}

	ok, err := repo.Delete(dbc, d.ID)
	if err != nil || !ok {
		t.Fatalf("Delete: ok=%v err=%v", ok, err)
	}
	ok, err = repo.Delete(dbc, d.ID)
	if err != nil || ok {
		t.Fatalf("Delete twice: ok=%v err=%v", ok, err)
	}
}

func TestDatasetRepo_DeleteCascades(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}
	log := testutil.Logger(t)

	ds := testutil.SeedDataset(t, ctx, tx, "cascade")
	doc := testutil.SeedDocument(t, ctx, tx, ds.ID, "T1")
	k := testutil.SeedKnowledge(t, ctx, tx, doc.ID, 1)

	if ok, err := NewDatasetRepo(db, log).Delete(dbc, ds.ID); err != nil || !ok {
		t.Fatalf("Delete: ok=%v err=%v", ok, err)
	}
	if got, err := NewDocumentRepo(db, log).GetByID(dbc, doc.ID); err != nil || got != nil {
		t.Fatalf("document survived dataset delete: got=%v err=%v", got, err)
	}
	if got, err := NewKnowledgeRepo(db, log).GetByID(dbc, k.ID); err != nil || got != nil {
		t.Fatalf("knowledge survived dataset delete: got=%v err=%v", got, err)
	}
}
