package knowledges

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

func New(repo repos.KnowledgeRepo, run usecase.Runner, baseLog *logger.Logger) UseCases {
	return UseCases{
		Create: NewCreateUseCase(repo, run, baseLog),
		Get:    NewGetUseCase(repo, run),
		List:   NewListUseCase(repo, run),
		Update: NewUpdateUseCase(repo, run, baseLog),
		Delete: NewDeleteUseCase(repo, run, baseLog),
	}
}

type CreateInput struct {
	DocumentID    string
	Sequence      int
	KnowledgeText string
	Metadata      map[string]any
	IsActive      *bool
}

type CreateUseCase struct {
	repo repos.KnowledgeRepo
	run  usecase.Runner
	log  *logger.Logger
}

func NewCreateUseCase(repo repos.KnowledgeRepo, run usecase.Runner, baseLog *logger.Logger) *CreateUseCase {
	return &CreateUseCase{repo: repo, run: run, log: baseLog.With("usecase", "knowledges.Create")}
}

// Execute stores a knowledge fragment. An unknown document surfaces as
// faults.CodePreconditionFailed from the storage layer.
func (uc *CreateUseCase) Execute(dbc dbctx.Context, in CreateInput) (*types.Knowledge, error) {
	const op = "knowledges.Create"
	return usecase.Run(dbc, uc.run, op, func(dbc dbctx.Context) (*types.Knowledge, error) {
		knowledge := types.NewKnowledge(types.KnowledgeInput{
			DocumentID:    in.DocumentID,
			Sequence:      in.Sequence,
			KnowledgeText: in.KnowledgeText,
			Metadata:      in.Metadata,
			IsActive:      in.IsActive,
		})
		if err := knowledge.Validate(op); err != nil {
			return nil, err
		}
		created, err := uc.repo.Create(dbc, knowledge)
		if err != nil {
			uc.log.Warn("Create knowledge failed", "document_id", in.DocumentID, "error", err)
			return nil, err
		}
		return created, nil
	}, attribute.String("document.id", in.DocumentID), attribute.Int("knowledge.sequence", in.Sequence))
}

type GetUseCase struct {
	repo repos.KnowledgeRepo
	run  usecase.Runner
}

func NewGetUseCase(repo repos.KnowledgeRepo, run usecase.Runner) *GetUseCase {
	return &GetUseCase{repo: repo, run: run}
}

func (uc *GetUseCase) Execute(dbc dbctx.Context, id string) (*types.Knowledge, error) {
	const op = "knowledges.Get"
	return usecase.Run(dbc, uc.run, op, func(dbc dbctx.Context) (*types.Knowledge, error) {
		knowledge, err := uc.repo.GetByID(dbc, id)
		if err != nil {
			return nil, err
		}
		if knowledge == nil {
			return nil, faults.NotFound(op, "knowledge", id)
		}
		return knowledge, nil
	}, attribute.String("knowledge.id", id))
}

type ListInput struct {
	DocumentID string
	Skip       int
	Limit      int
}

type ListUseCase struct {
	repo repos.KnowledgeRepo
	run  usecase.Runner
}

func NewListUseCase(repo repos.KnowledgeRepo, run usecase.Runner) *ListUseCase {
	return &ListUseCase{repo: repo, run: run}
}

// Execute lists a document's knowledge ordered by sequence.
func (uc *ListUseCase) Execute(dbc dbctx.Context, in ListInput) ([]*types.Knowledge, error) {
	return usecase.Run(dbc, uc.run, "knowledges.List", func(dbc dbctx.Context) ([]*types.Knowledge, error) {
		return uc.repo.List(dbc, in.DocumentID, in.Skip, in.Limit)
	}, attribute.String("document.id", in.DocumentID), attribute.Int("page.skip", in.Skip), attribute.Int("page.limit", in.Limit))
}

type UpdateInput struct {
	Sequence      *int
	KnowledgeText *string
	Metadata      map[string]any
	IsActive      *bool
}

type UpdateUseCase struct {
	repo repos.KnowledgeRepo
	run  usecase.Runner
	log  *logger.Logger
}

func NewUpdateUseCase(repo repos.KnowledgeRepo, run usecase.Runner, baseLog *logger.Logger) *UpdateUseCase {
	return &UpdateUseCase{repo: repo, run: run, log: baseLog.With("usecase", "knowledges.Update")}
}

func (uc *UpdateUseCase) Execute(dbc dbctx.Context, id string, in UpdateInput) (*types.Knowledge, error) {
	const op = "knowledges.Update"
	return usecase.Run(dbc, uc.run, op, func(dbc dbctx.Context) (*types.Knowledge, error) {
		patch := types.KnowledgePatch{
			Sequence:      in.Sequence,
			KnowledgeText: in.KnowledgeText,
			Metadata:      in.Metadata,
			IsActive:      in.IsActive,
		}
		if err := patch.Validate(op); err != nil {
			return nil, err
		}
		updated, err := uc.repo.Update(dbc, id, patch)
		if err != nil {
			return nil, err
		}
		uc.log.Debug("Knowledge updated", "knowledge_id", id)
		return updated, nil
	}, attribute.String("knowledge.id", id))
}

type DeleteUseCase struct {
	repo repos.KnowledgeRepo
	run  usecase.Runner
	log  *logger.Logger
}

func NewDeleteUseCase(repo repos.KnowledgeRepo, run usecase.Runner, baseLog *logger.Logger) *DeleteUseCase {
	return &DeleteUseCase{repo: repo, run: run, log: baseLog.With("usecase", "knowledges.Delete")}
}

func (uc *DeleteUseCase) Execute(dbc dbctx.Context, id string) (bool, error) {
	return usecase.Run(dbc, uc.run, "knowledges.Delete", func(dbc dbctx.Context) (bool, error) {
		deleted, err := uc.repo.Delete(dbc, id)
		if err != nil {
			return false, err
		}
		if deleted {
			uc.log.Info("Knowledge deleted", "knowledge_id", id)
		}
		return deleted, nil
	}, attribute.String("knowledge.id", id))
}
