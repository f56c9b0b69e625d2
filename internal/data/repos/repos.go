package repos

import (
	"gorm.io/gorm"

	"github.com/yungbote/knowledge-backend/internal/data/repos/knowledgebase"
	"github.com/yungbote/knowledge-backend/internal/platform/logger"
)

type DatasetRepo = knowledgebase.DatasetRepo
type DatasetListFilter = knowledgebase.DatasetListFilter
type DocumentRepo = knowledgebase.DocumentRepo
type KnowledgeRepo = knowledgebase.KnowledgeRepo

var MapError = knowledgebase.MapError

func NewDatasetRepo(db *gorm.DB, baseLog *logger.Logger) DatasetRepo {
	return knowledgebase.NewDatasetRepo(db, baseLog)
}
func NewDocumentRepo(db *gorm.DB, baseLog *logger.Logger) DocumentRepo {
	return knowledgebase.NewDocumentRepo(db, baseLog)
}
func NewKnowledgeRepo(db *gorm.DB, baseLog *logger.Logger) KnowledgeRepo {
	return knowledgebase.NewKnowledgeRepo(db, baseLog)
}
