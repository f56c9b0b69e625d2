package testutil

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/knowledge-backend/internal/domain"
)

func SeedDataset(tb testing.TB, ctx context.Context, tx *gorm.DB, name string) *types.Dataset {
	tb.Helper()
	d := types.NewDataset(types.DatasetInput{Name: name, Description: "seeded"})
	d.ID = uuid.New().String()
	if err := tx.WithContext(ctx).Create(d).Error; err != nil {
		tb.Fatalf("seed dataset: %v", err)
	}
	return d
}

func SeedDocument(tb testing.TB, ctx context.Context, tx *gorm.DB, datasetID, title string) *types.Document {
	tb.Helper()
	d := types.NewDocument(types.DocumentInput{
		DatasetID: datasetID,
		Title:     title,
		Content:   "content of " + title,
	})
	d.ID = uuid.New().String()
	if err := tx.WithContext(ctx).Omit("Dataset").Create(d).Error; err != nil {
		tb.Fatalf("seed document: %v", err)
	}
	return d
}

func SeedKnowledge(tb testing.TB, ctx context.Context, tx *gorm.DB, documentID string, sequence int) *types.Knowledge {
	tb.Helper()
	k := types.NewKnowledge(types.KnowledgeInput{
		DocumentID:    documentID,
		Sequence:      sequence,
		KnowledgeText: fmt.Sprintf("fact %d", sequence),
	})
	k.ID = uuid.New().String()
	if err := tx.WithContext(ctx).Omit("Document").Create(k).Error; err != nil {
		tb.Fatalf("seed knowledge: %v", err)
	}
	return k
}

// Backdate rewrites the timestamps of a seeded row so later writes can be
// compared against a known past instant.
func Backdate(tb testing.TB, ctx context.Context, tx *gorm.DB, model interface{}, id string, at time.Time) {
	tb.Helper()
	if err := tx.WithContext(ctx).
		Model(model).
		Where("id = ?", id).
		Updates(map[string]interface{}{"created_at": at, "updated_at": at}).Error; err != nil {
		tb.Fatalf("backdate %s: %v", id, err)
	}
}
