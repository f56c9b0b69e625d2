package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/knowledge-backend/internal/data/repos"
	"github.com/yungbote/knowledge-backend/internal/platform/logger"
)

type Repos struct {
	Dataset   repos.DatasetRepo
	Document  repos.DocumentRepo
	Knowledge repos.KnowledgeRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		Dataset:   repos.NewDatasetRepo(db, log),
		Document:  repos.NewDocumentRepo(db, log),
		Knowledge: repos.NewKnowledgeRepo(db, log),
	}
}
