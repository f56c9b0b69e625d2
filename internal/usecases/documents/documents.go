package documents

import (
	"strings"

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

func New(datasetRepo repos.DatasetRepo, documentRepo repos.DocumentRepo, run usecase.Runner, baseLog *logger.Logger) UseCases {
	return UseCases{
		Create: NewCreateUseCase(datasetRepo, documentRepo, run, baseLog),
		Get:    NewGetUseCase(documentRepo, run),
		List:   NewListUseCase(documentRepo, run),
		Update: NewUpdateUseCase(documentRepo, run, baseLog),
		Delete: NewDeleteUseCase(documentRepo, run, baseLog),
	}
}

type CreateInput struct {
	// DatasetID may be empty or name a dataset that does not exist; either
	// way a dataset titled after the document is created first.
	DatasetID string
	Title     string
	Content   string
	Metadata  map[string]any
	IsActive  *bool
}

type CreateUseCase struct {
	datasetRepo  repos.DatasetRepo
	documentRepo repos.DocumentRepo
	run          usecase.Runner
	log          *logger.Logger
}

func NewCreateUseCase(datasetRepo repos.DatasetRepo, documentRepo repos.DocumentRepo, run usecase.Runner, baseLog *logger.Logger) *CreateUseCase {
	return &CreateUseCase{
		datasetRepo:  datasetRepo,
		documentRepo: documentRepo,
		run:          run,
		log:          baseLog.With("usecase", "documents.Create"),
	}
}

func (uc *CreateUseCase) Execute(dbc dbctx.Context, in CreateInput) (*types.Document, error) {
	const op = "documents.Create"
	return usecase.Run(dbc, uc.run, op, func(dbc dbctx.Context) (*types.Document, error) {
		if strings.TrimSpace(in.Title) == "" {
			return nil, faults.Validation(op, "title is required")
		}
		if strings.TrimSpace(in.Content) == "" {
			return nil, faults.Validation(op, "content is required")
		}

		datasetID, err := uc.resolveDataset(dbc, in.DatasetID, in.Title)
		if err != nil {
			return nil, err
		}

		document := types.NewDocument(types.DocumentInput{
			DatasetID: datasetID,
			Title:     in.Title,
			Content:   in.Content,
			Metadata:  in.Metadata,
			IsActive:  in.IsActive,
		})
		if err := document.Validate(op); err != nil {
			return nil, err
		}
		created, err := uc.documentRepo.Create(dbc, document)
		if err != nil {
			uc.log.Warn("Create document failed", "dataset_id", datasetID, "error", err)
			return nil, err
		}
		return created, nil
	}, attribute.String("dataset.id", in.DatasetID))
}

// resolveDataset returns the id of an existing dataset, or creates one named
// after the document title. Two concurrent creates naming the same missing
// dataset may each create one.
func (uc *CreateUseCase) resolveDataset(dbc dbctx.Context, datasetID, title string) (string, error) {
	if datasetID != "" {
		existing, err := uc.datasetRepo.GetByID(dbc, datasetID)
		if err != nil {
			return "", err
		}
		if existing != nil {
			return existing.ID, nil
		}
	}

	dataset, err := uc.datasetRepo.Create(dbc, types.NewDataset(types.DatasetInput{
		Name:        title,
		Description: types.DescriptionAutoCreated,
	}))
	if err != nil {
		return "", err
	}
	uc.log.Info("Auto-created dataset for document", "requested_dataset_id", datasetID, "dataset_id", dataset.ID)
	usecase.Event(dbc, "dataset.auto_created",
		attribute.String("dataset.id", dataset.ID),
		attribute.String("dataset.requested_id", datasetID),
	)
	return dataset.ID, nil
}

type GetUseCase struct {
	repo repos.DocumentRepo
	run  usecase.Runner
}

func NewGetUseCase(repo repos.DocumentRepo, run usecase.Runner) *GetUseCase {
	return &GetUseCase{repo: repo, run: run}
}

func (uc *GetUseCase) Execute(dbc dbctx.Context, id string) (*types.Document, error) {
	const op = "documents.Get"
	return usecase.Run(dbc, uc.run, op, func(dbc dbctx.Context) (*types.Document, error) {
		document, err := uc.repo.GetByID(dbc, id)
		if err != nil {
			return nil, err
		}
		if document == nil {
			return nil, faults.NotFound(op, "document", id)
		}
		return document, nil
	}, attribute.String("document.id", id))
}

type ListInput struct {
	DatasetID string
	Skip      int
	Limit     int
}

type ListUseCase struct {
	repo repos.DocumentRepo
	run  usecase.Runner
}

func NewListUseCase(repo repos.DocumentRepo, run usecase.Runner) *ListUseCase {
	return &ListUseCase{repo: repo, run: run}
}

// Execute lists the documents of one dataset. An unknown dataset yields an
// empty page.
func (uc *ListUseCase) Execute(dbc dbctx.Context, in ListInput) ([]*types.Document, error) {
	return usecase.Run(dbc, uc.run, "documents.List", func(dbc dbctx.Context) ([]*types.Document, error) {
		return uc.repo.List(dbc, in.DatasetID, in.Skip, in.Limit)
	}, attribute.String("dataset.id", in.DatasetID), attribute.Int("page.skip", in.Skip), attribute.Int("page.limit", in.Limit))
}

type UpdateInput struct {
	Title    *string
	Content  *string
	Metadata map[string]any
	IsActive *bool
}

type UpdateUseCase struct {
	repo repos.DocumentRepo
	run  usecase.Runner
	log  *logger.Logger
}

func NewUpdateUseCase(repo repos.DocumentRepo, run usecase.Runner, baseLog *logger.Logger) *UpdateUseCase {
	return &UpdateUseCase{repo: repo, run: run, log: baseLog.With("usecase", "documents.Update")}
}

func (uc *UpdateUseCase) Execute(dbc dbctx.Context, id string, in UpdateInput) (*types.Document, error) {
	const op = "documents.Update"
	return usecase.Run(dbc, uc.run, op, func(dbc dbctx.Context) (*types.Document, error) {
		patch := types.DocumentPatch{
			Title:    in.Title,
			Content:  in.Content,
			Metadata: in.Metadata,
			IsActive: in.IsActive,
		}
		if err := patch.Validate(op); err != nil {
			return nil, err
		}
		updated, err := uc.repo.Update(dbc, id, patch)
		if err != nil {
			return nil, err
		}
		uc.log.Debug("Document updated", "document_id", id)
		return updated, nil
	}, attribute.String("document.id", id))
}

type DeleteUseCase struct {
	repo repos.DocumentRepo
	run  usecase.Runner
	log  *logger.Logger
}

func NewDeleteUseCase(repo repos.DocumentRepo, run usecase.Runner, baseLog *logger.Logger) *DeleteUseCase {
	return &DeleteUseCase{repo: repo, run: run, log: baseLog.With("usecase", "documents.Delete")}
}

func (uc *DeleteUseCase) Execute(dbc dbctx.Context, id string) (bool, error) {
	return usecase.Run(dbc, uc.run, "documents.Delete", func(dbc dbctx.Context) (bool, error) {
		deleted, err := uc.repo.Delete(dbc, id)
		if err != nil {
			return false, err
		}
		if deleted {
			uc.log.Info("Document deleted", "document_id", id)
		}
		return deleted, nil
	}, attribute.String("document.id", id))
}
