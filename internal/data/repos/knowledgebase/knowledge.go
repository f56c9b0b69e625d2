package knowledgebase

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/knowledge-backend/internal/domain"
	"github.com/yungbote/knowledge-backend/internal/domain/faults"
	"github.com/yungbote/knowledge-backend/internal/platform/dbctx"
	"github.com/yungbote/knowledge-backend/internal/platform/logger"
)

type KnowledgeRepo interface {
	Create(dbc dbctx.Context, knowledge *types.Knowledge) (*types.Knowledge, error)
	GetByID(dbc dbctx.Context, id string) (*types.Knowledge, error)
	List(dbc dbctx.Context, documentID string, skip, limit int) ([]*types.Knowledge, error)
	Update(dbc dbctx.Context, id string, patch types.KnowledgePatch) (*types.Knowledge, error)
	Delete(dbc dbctx.Context, id string) (bool, error)
}

type knowledgeRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewKnowledgeRepo(db *gorm.DB, baseLog *logger.Logger) KnowledgeRepo {
	repoLog := baseLog.With("repo", "KnowledgeRepo")
	return &knowledgeRepo{db: db, log: repoLog}
}

func (r *knowledgeRepo) Create(dbc dbctx.Context, knowledge *types.Knowledge) (*types.Knowledge, error) {
	const op = "knowledges.create"
	if knowledge == nil {
		return nil, faults.Validation(op, "knowledge is nil")
	}
	if knowledge.ID == "" {
		knowledge.ID = uuid.New().String()
	}
	if knowledge.Metadata == nil {
		knowledge.Metadata = types.Metadata{}
	}
	knowledge.CreatedAt, knowledge.UpdatedAt = stampCreate(knowledge.CreatedAt, knowledge.UpdatedAt)

	if err := conn(dbc, r.db).Omit("Document").Create(knowledge).Error; err != nil {
		return nil, MapError(op, err)
	}
	return knowledge, nil
}

func (r *knowledgeRepo) GetByID(dbc dbctx.Context, id string) (*types.Knowledge, error) {
	if id == "" {
		return nil, nil
	}
	var results []*types.Knowledge
	if err := conn(dbc, r.db).
		Where("id = ?", id).
		Limit(1).
		Find(&results).Error; err != nil {
		return nil, MapError("knowledges.get", err)
	}
	if len(results) == 0 {
		return nil, nil
	}
	return results[0], nil
}

func (r *knowledgeRepo) List(dbc dbctx.Context, documentID string, skip, limit int) ([]*types.Knowledge, error) {
	results := []*types.Knowledge{}
	skip, limit, ok := pageBounds(skip, limit)
	if !ok {
		return results, nil
	}
	if err := conn(dbc, r.db).
		Where("document_id = ?", documentID).
		Order("sequence ASC").
		Order("created_at ASC").
		Order("id ASC").
		Offset(skip).
		Limit(limit).
		Find(&results).Error; err != nil {
		return nil, MapError("knowledges.list", err)
	}
	return results, nil
}

func (r *knowledgeRepo) Update(dbc dbctx.Context, id string, patch types.KnowledgePatch) (*types.Knowledge, error) {
	const op = "knowledges.update"
	existing, err := r.GetByID(dbc, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		r.log.Debug("Update target missing", "knowledge_id", id)
		return nil, faults.NotFound(op, "knowledge", id)
	}

	patch.Apply(existing)
	existing.UpdatedAt = stampUpdate(existing.UpdatedAt, patch.UpdatedAt)

	if err := conn(dbc, r.db).
		Model(&types.Knowledge{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"sequence":       existing.Sequence,
			"knowledge_text": existing.KnowledgeText,
			"metadata":       existing.Metadata,
			"is_active":      existing.IsActive,
			"updated_at":     existing.UpdatedAt,
		}).Error; err != nil {
		return nil, MapError(op, err)
	}
	return existing, nil
}

func (r *knowledgeRepo) Delete(dbc dbctx.Context, id string) (bool, error) {
	if id == "" {
		return false, nil
	}
	res := conn(dbc, r.db).
		Where("id = ?", id).
		Delete(&types.Knowledge{})
	if res.Error != nil {
		return false, MapError("knowledges.delete", res.Error)
	}
	return res.RowsAffected > 0, nil
}
