package knowledgebase

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/knowledge-backend/internal/domain"
	"github.com/yungbote/knowledge-backend/internal/domain/faults"
	"github.com/yungbote/knowledge-backend/internal/platform/dbctx"
	"github.com/yungbote/knowledge-backend/internal/platform/logger"
)

type DocumentRepo interface {
	Create(dbc dbctx.Context, document *types.Document) (*types.Document, error)
	GetByID(dbc dbctx.Context, id string) (*types.Document, error)
	List(dbc dbctx.Context, datasetID string, skip, limit int) ([]*types.Document, error)
	Update(dbc dbctx.Context, id string, patch types.DocumentPatch) (*types.Document, error)
	Delete(dbc dbctx.Context, id string) (bool, error)
}

type documentRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewDocumentRepo(db *gorm.DB, baseLog *logger.Logger) DocumentRepo {
	repoLog := baseLog.With("repo", "DocumentRepo")
	return &documentRepo{db: db, log: repoLog}
}

func (r *documentRepo) Create(dbc dbctx.Context, document *types.Document) (*types.Document, error) {
	const op = "documents.create"
	if document == nil {
		return nil, faults.Validation(op, "document is nil")
	}
	if document.ID == "" {
		document.ID = uuid.New().String()
	}
	if document.Metadata == nil {
		document.Metadata = types.Metadata{}
	}
	document.CreatedAt, document.UpdatedAt = stampCreate(document.CreatedAt, document.UpdatedAt)

	if err := conn(dbc, r.db).Omit("Dataset").Create(document).Error; err != nil {
		return nil, MapError(op, err)
	}
	return document, nil
}

func (r *documentRepo) GetByID(dbc dbctx.Context, id string) (*types.Document, error) {
	if id == "" {
		return nil, nil
	}
	var results []*types.Document
	if err := conn(dbc, r.db).
		Where("id = ?", id).
		Limit(1).
		Find(&results).Error; err != nil {
		return nil, MapError("documents.get", err)
	}
	if len(results) == 0 {
		return nil, nil
	}
	return results[0], nil
}

func (r *documentRepo) List(dbc dbctx.Context, datasetID string, skip, limit int) ([]*types.Document, error) {
	results := []*types.Document{}
	skip, limit, ok := pageBounds(skip, limit)
	if !ok {
		return results, nil
	}
	if err := conn(dbc, r.db).
		Where("dataset_id = ?", datasetID).
		Order("created_at ASC").
		Order("id ASC").
		Offset(skip).
		Limit(limit).
		Find(&results).Error; err != nil {
		return nil, MapError("documents.list", err)
	}
	return results, nil
}

func (r *documentRepo) Update(dbc dbctx.Context, id string, patch types.DocumentPatch) (*types.Document, error) {
	const op = "documents.update"
	existing, err := r.GetByID(dbc, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		r.log.Debug("Update target missing", "document_id", id)
		return nil, faults.NotFound(op, "document", id)
	}

	patch.Apply(existing)
	existing.UpdatedAt = stampUpdate(existing.UpdatedAt, patch.UpdatedAt)

	if err := conn(dbc, r.db).
		Model(&types.Document{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"title":      existing.Title,
			"content":    existing.Content,
			"metadata":   existing.Metadata,
			"is_active":  existing.IsActive,
			"updated_at": existing.UpdatedAt,
		}).Error; err != nil {
		return nil, MapError(op, err)
	}
	return existing, nil
}

func (r *documentRepo) Delete(dbc dbctx.Context, id string) (bool, error) {
	if id == "" {
		return false, nil
	}
	res := conn(dbc, r.db).
		Where("id = ?", id).
		Delete(&types.Document{})
	if res.Error != nil {
		return false, MapError("documents.delete", res.Error)
	}
	return res.RowsAffected > 0, nil
}
