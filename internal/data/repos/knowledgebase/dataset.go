package knowledgebase

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/knowledge-backend/internal/domain"
	"github.com/yungbote/knowledge-backend/internal/domain/faults"
	"github.com/yungbote/knowledge-backend/internal/platform/dbctx"
	"github.com/yungbote/knowledge-backend/internal/platform/logger"
)

type DatasetListFilter struct {
	Skip  int
	Limit int
	// IsActive restricts the result when set.
	IsActive *bool
}

type DatasetRepo interface {
	Create(dbc dbctx.Context, dataset *types.Dataset) (*types.Dataset, error)
	GetByID(dbc dbctx.Context, id string) (*types.Dataset, error)
	List(dbc dbctx.Context, filter DatasetListFilter) ([]*types.Dataset, error)
	Update(dbc dbctx.Context, id string, patch types.DatasetPatch) (*types.Dataset, error)
	Delete(dbc dbctx.Context, id string) (bool, error)
}

type datasetRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewDatasetRepo(db *gorm.DB, baseLog *logger.Logger) DatasetRepo {
	repoLog := baseLog.With("repo", "DatasetRepo")
	return &datasetRepo{db: db, log: repoLog}
}

func (r *datasetRepo) Create(dbc dbctx.Context, dataset *types.Dataset) (*types.Dataset, error) {
	const op = "datasets.create"
	if dataset == nil {
		return nil, faults.Validation(op, "dataset is nil")
	}
	if dataset.ID == "" {
		dataset.ID = uuid.New().String()
	}
	if dataset.Metadata == nil {
		dataset.Metadata = types.Metadata{}
	}
	dataset.CreatedAt, dataset.UpdatedAt = stampCreate(dataset.CreatedAt, dataset.UpdatedAt)

	if err := conn(dbc, r.db).Create(dataset).Error; err != nil {
		return nil, MapError(op, err)
	}
	return dataset, nil
}

func (r *datasetRepo) GetByID(dbc dbctx.Context, id string) (*types.Dataset, error) {
	if id == "" {
		return nil, nil
	}
	var results []*types.Dataset
	if err := conn(dbc, r.db).
		Where("id = ?", id).
		Limit(1).
		Find(&results).Error; err != nil {
		return nil, MapError("datasets.get", err)
	}
	if len(results) == 0 {
		return nil, nil
	}
	return results[0], nil
}

func (r *datasetRepo) List(dbc dbctx.Context, filter DatasetListFilter) ([]*types.Dataset, error) {
	results := []*types.Dataset{}
	skip, limit, ok := pageBounds(filter.Skip, filter.Limit)
	if !ok {
		return results, nil
	}

	q := conn(dbc, r.db).Model(&types.Dataset{})
	if filter.IsActive != nil {
		q = q.Where("is_active = ?", *filter.IsActive)
	}
	if err := q.
		Order("created_at ASC").
		Order("id ASC").
		Offset(skip).
		Limit(limit).
		Find(&results).Error; err != nil {
		return nil, MapError("datasets.list", err)
	}
	return results, nil
}

func (r *datasetRepo) Update(dbc dbctx.Context, id string, patch types.DatasetPatch) (*types.Dataset, error) {
	const op = "datasets.update"
	existing, err := r.GetByID(dbc, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		r.log.Debug("Update target missing", "dataset_id", id)
		return nil, faults.NotFound(op, "dataset", id)
	}

	patch.Apply(existing)
	existing.UpdatedAt = stampUpdate(existing.UpdatedAt, patch.UpdatedAt)

	if err := conn(dbc, r.db).
		Model(&types.Dataset{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"name":        existing.Name,
			"description": existing.Description,
			"metadata":    existing.Metadata,
			"is_active":   existing.IsActive,
			"updated_at":  existing.UpdatedAt,
		}).Error; err != nil {
		return nil, MapError(op, err)
	}
	return existing, nil
}

func (r *datasetRepo) Delete(dbc dbctx.Context, id string) (bool, error) {
	if id == "" {
		return false, nil
	}
	res := conn(dbc, r.db).
		Where("id = ?", id).
		Delete(&types.Dataset{})
	if res.Error != nil {
		return false, MapError("datasets.delete", res.Error)
	}
	return res.RowsAffected > 0, nil
}

// stampCreate fills missing creation timestamps, keeping created <= updated.
func stampCreate(createdAt, updatedAt time.Time) (time.Time, time.Time) {
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	createdAt = createdAt.Truncate(time.Microsecond)
	updatedAt = updatedAt.Truncate(time.Microsecond)
	if updatedAt.IsZero() || updatedAt.Before(createdAt) {
		updatedAt = createdAt
	}
	return createdAt, updatedAt
}

// stampUpdate returns the caller-supplied timestamp when present, otherwise
// now, nudged past the stored value so updated_at strictly advances at the
// microsecond precision postgres keeps.
func stampUpdate(stored time.Time, supplied *time.Time) time.Time {
	if supplied != nil && !supplied.IsZero() {
		return supplied.UTC()
	}
	ts := time.Now().UTC().Truncate(time.Microsecond)
	floor := stored.UTC().Truncate(time.Microsecond)
	if !ts.After(floor) {
		ts = floor.Add(time.Microsecond)
	}
	return ts
}
