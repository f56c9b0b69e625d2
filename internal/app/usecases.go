package app

import (
	"github.com/yungbote/knowledge-backend/internal/platform/logger"
	"github.com/yungbote/knowledge-backend/internal/usecases/datasets"
	"github.com/yungbote/knowledge-backend/internal/usecases/documents"
	"github.com/yungbote/knowledge-backend/internal/usecases/knowledges"
	"github.com/yungbote/knowledge-backend/internal/usecases/usecase"
)

type UseCases struct {
	Datasets   datasets.UseCases
	Documents  documents.UseCases
	Knowledges knowledges.UseCases
}

func wireUseCases(r Repos, run usecase.Runner, log *logger.Logger) UseCases {
	log.Info("Wiring use cases...")
	return UseCases{
		Datasets:   datasets.New(r.Dataset, run, log),
		Documents:  documents.New(r.Dataset, r.Document, run, log),
		Knowledges: knowledges.New(r.Knowledge, run, log),
	}
}
