package knowledgebase

import (
	"time"

	"github.com/yungbote/knowledge-backend/internal/domain/faults"
)

// Knowledge is an ordered text fragment of a document. Sequence is a
// zero-based index; listing orders by it.
type Knowledge struct {
	ID         string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	DocumentID string    `gorm:"type:varchar(36);not null;index:idx_knowledges_document_sequence,priority:1" json:"document_id"`
	Document   *Document `gorm:"constraint:OnDelete:CASCADE;foreignKey:DocumentID;references:ID" json:"document,omitempty"`

	Sequence      int      `gorm:"column:sequence;not null;index:idx_knowledges_document_sequence,priority:2" json:"sequence"`
	KnowledgeText string   `gorm:"column:knowledge_text;type:text;not null" json:"knowledge_text"`
	Metadata      Metadata `gorm:"column:metadata" json:"metadata"`
	IsActive      bool     `gorm:"column:is_active;not null" json:"is_active"`

	CreatedAt time.Time `gorm:"column:created_at;not null;autoCreateTime:false" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;not null;autoUpdateTime:false" json:"updated_at"`
}

func (Knowledge) TableName() string { return "knowledges" }

type KnowledgeInput struct {
	DocumentID    string
	Sequence      int
	KnowledgeText string
	Metadata      map[string]any
	IsActive      *bool
}

func NewKnowledge(in KnowledgeInput) *Knowledge {
	ts := now()
	return &Knowledge{
		DocumentID:    in.DocumentID,
		Sequence:      in.Sequence,
		KnowledgeText: in.KnowledgeText,
		Metadata:      newMetadata(in.Metadata),
		IsActive:      activeOrDefault(in.IsActive),
		CreatedAt:     ts,
		UpdatedAt:     ts,
	}
}

func (k *Knowledge) Validate(op string) error {
	if err := requireText(op, "document_id", k.DocumentID); err != nil {
		return err
	}
	if k.Sequence < 0 {
		return faults.Validation(op, "sequence must be >= 0")
	}
	return requireText(op, "knowledge_text", k.KnowledgeText)
}

type KnowledgePatch struct {
	Sequence      *int
	KnowledgeText *string
	Metadata      map[string]any
	IsActive      *bool
	UpdatedAt     *time.Time
}

func (p KnowledgePatch) Empty() bool {
	return p.Sequence == nil && p.KnowledgeText == nil && p.Metadata == nil && p.IsActive == nil
}

func (p KnowledgePatch) Validate(op string) error {
	if p.Sequence != nil && *p.Sequence < 0 {
		return faults.Validation(op, "sequence must be >= 0")
	}
	return requireTextIfSet(op, "knowledge_text", p.KnowledgeText)
}

func (p KnowledgePatch) Apply(k *Knowledge) {
	if p.Sequence != nil {
		k.Sequence = *p.Sequence
	}
	if p.KnowledgeText != nil {
		k.KnowledgeText = *p.KnowledgeText
	}
	if p.Metadata != nil {
		k.Metadata = newMetadata(p.Metadata)
	}
	if p.IsActive != nil {
		k.IsActive = *p.IsActive
	}
}
