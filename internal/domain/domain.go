package domain

import (
	"github.com/yungbote/knowledge-backend/internal/domain/knowledgebase"
)

const DescriptionAutoCreated = knowledgebase.DescriptionAutoCreated

type Metadata = knowledgebase.Metadata

type Dataset = knowledgebase.Dataset
type DatasetInput = knowledgebase.DatasetInput
type DatasetPatch = knowledgebase.DatasetPatch

type Document = knowledgebase.Document
type DocumentInput = knowledgebase.DocumentInput
type DocumentPatch = knowledgebase.DocumentPatch

type Knowledge = knowledgebase.Knowledge
type KnowledgeInput = knowledgebase.KnowledgeInput
type KnowledgePatch = knowledgebase.KnowledgePatch

var (
	NewDataset   = knowledgebase.NewDataset
	NewDocument  = knowledgebase.NewDocument
	NewKnowledge = knowledgebase.NewKnowledge
)

// Models lists every persisted type in foreign-key order for AutoMigrate.
func Models() []interface{} {
	return []interface{}{
		&Dataset{},
		&Document{},
		&Knowledge{},
	}
}
