// Package datasets implements the dataset use cases. Each use case runs in a
// single unit of work and never retries.
package datasets

import (
	"go.opentelemetry.io/otel/attribute"

	"github.com/yungbote/knowledge-backend/internal/data/repos"
	types "github.com/yungbote/knowledge-backend/internal/domain"
	"github.com/yungbote/knowledge-backend/internal/domain/faults"
	"github.com/yungbote/knowledge-backend/internal/platform/dbctx"
	"github.com/yungbote/knowledge-backend/internal/platform/logger"
	"github.com/yungbote/knowledge-backend/internal/usecases/usecase"
)

type UseCases struct {
	Create *CreateUseCase
	Get    *GetUseCase
	List   *ListUseCase
	Update *UpdateUseCase
	Delete *DeleteUseCase
}

func New(repo repos.DatasetRepo, run usecase.Runner, baseLog *logger.Logger) UseCases {
	return UseCases{
		Create: NewCreateUseCase(repo, run, baseLog),
		Get:    NewGetUseCase(repo, run),
		List:   NewListUseCase(repo, run),
		Update: NewUpdateUseCase(repo, run, baseLog),
		Delete: NewDeleteUseCase(repo, run, baseLog),
	}
}

type CreateInput struct {
	Name        string
	Description string
	Metadata    map[string]any
	IsActive    *bool
}

type CreateUseCase struct {
	repo repos.DatasetRepo
	run  usecase.Runner
	log  *logger.Logger
}

func NewCreateUseCase(repo repos.DatasetRepo, run usecase.Runner, baseLog *logger.Logger) *CreateUseCase {
	return &CreateUseCase{repo: repo, run: run, log: baseLog.With("usecase", "datasets.Create")}
}

func (uc *CreateUseCase) Execute(dbc dbctx.Context, in CreateInput) (*types.Dataset, error) {
	const op = "datasets.Create"
	return usecase.Run(dbc, uc.run, op, func(dbc dbctx.Context) (*types.Dataset, error) {
		dataset := types.NewDataset(types.DatasetInput{
			Name:        in.Name,
			Description: in.Description,
			Metadata:    in.Metadata,
			IsActive:    in.IsActive,
		})
		if err := dataset.Validate(op); err != nil {
			return nil, err
		}
		created, err := uc.repo.Create(dbc, dataset)
		if err != nil {
			uc.log.Warn("Create dataset failed", "error", err)
			return nil, err
		}
		uc.log.Debug("Dataset created", "dataset_id", created.ID)
		return created, nil
	})
}

type GetUseCase struct {
	repo repos.DatasetRepo
	run  usecase.Runner
}

func NewGetUseCase(repo repos.DatasetRepo, run usecase.Runner) *GetUseCase {
	return &GetUseCase{repo: repo, run: run}
}

// Execute returns faults.CodeNotFound when no dataset has the given id.
func (uc *GetUseCase) Execute(dbc dbctx.Context, id string) (*types.Dataset, error) {
	const op = "datasets.Get"
	return usecase.Run(dbc, uc.run, op, func(dbc dbctx.Context) (*types.Dataset, error) {
		dataset, err := uc.repo.GetByID(dbc, id)
		if err != nil {
			return nil, err
		}
		if dataset == nil {
			return nil, faults.NotFound(op, "dataset", id)
		}
		return dataset, nil
	}, attribute.String("dataset.id", id))
}

type ListInput struct {
	Skip     int
	Limit    int
	IsActive *bool
}

type ListUseCase struct {
	repo repos.DatasetRepo
	run  usecase.Runner
}

func NewListUseCase(repo repos.DatasetRepo, run usecase.Runner) *ListUseCase {
	return &ListUseCase{repo: repo, run: run}
}

func (uc *ListUseCase) Execute(dbc dbctx.Context, in ListInput) ([]*types.Dataset, error) {
	return usecase.Run(dbc, uc.run, "datasets.List", func(dbc dbctx.Context) ([]*types.Dataset, error) {
		return uc.repo.List(dbc, repos.DatasetListFilter{
			Skip:     in.Skip,
			Limit:    in.Limit,
			IsActive: in.IsActive,
		})
	}, attribute.Int("page.skip", in.Skip), attribute.Int("page.limit", in.Limit))
}

// UpdateInput fields left nil keep their stored value.
type UpdateInput struct {
	Name        *string
	Description *string
	Metadata    map[string]any
	IsActive    *bool
}

type UpdateUseCase struct {
	repo repos.DatasetRepo
	run  usecase.Runner
	log  *logger.Logger
}

func NewUpdateUseCase(repo repos.DatasetRepo, run usecase.Runner, baseLog *logger.Logger) *UpdateUseCase {
	return &UpdateUseCase{repo: repo, run: run, log: baseLog.With("usecase", "datasets.Update")}
}

func (uc *UpdateUseCase) Execute(dbc dbctx.Context, id string, in UpdateInput) (*types.Dataset, error) {
	const op = "datasets.Update"
	return usecase.Run(dbc, uc.run, op, func(dbc dbctx.Context) (*types.Dataset, error) {
		patch := types.DatasetPatch{
			Name:        in.Name,
			Description: in.Description,
			Metadata:    in.Metadata,
			IsActive:    in.IsActive,
		}
		if err := patch.Validate(op); err != nil {
			return nil, err
		}
		updated, err := uc.repo.Update(dbc, id, patch)
		if err != nil {
			return nil, err
		}
		uc.log.Debug("Dataset updated", "dataset_id", id)
		return updated, nil
	}, attribute.String("dataset.id", id))
}

type DeleteUseCase struct {
	repo repos.DatasetRepo
	run  usecase.Runner
	log  *logger.Logger
}

func NewDeleteUseCase(repo repos.DatasetRepo, run usecase.Runner, baseLog *logger.Logger) *DeleteUseCase {
	return &DeleteUseCase{repo: repo, run: run, log: baseLog.With("usecase", "datasets.Delete")}
}

// Execute reports whether a dataset was removed. Its documents and their
// knowledge go with it.
func (uc *DeleteUseCase) Execute(dbc dbctx.Context, id string) (bool, error) {
	return usecase.Run(dbc, uc.run, "datasets.Delete", func(dbc dbctx.Context) (bool, error) {
		deleted, err := uc.repo.Delete(dbc, id)
		if err != nil {
			return false, err
		}
		if deleted {
			uc.log.Info("Dataset deleted", "dataset_id", id)
		}
		return deleted, nil
	}, attribute.String("dataset.id", id))
}
