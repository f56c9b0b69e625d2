package knowledgebase

import (
	"time"
)

// Document is a titled content unit owned by exactly one dataset.
type Document struct {
	ID        string   `gorm:"type:varchar(36);primaryKey" json:"id"`
	DatasetID string   `gorm:"type:varchar(36);not null;index" json:"dataset_id"`
	Dataset   *Dataset `gorm:"constraint:OnDelete:CASCADE;foreignKey:DatasetID;references:ID" json:"dataset,omitempty"`

	Title    string   `gorm:"column:title;type:varchar(255);not null" json:"title"`
	Content  string   `gorm:"column:content;type:text;not null" json:"content"`
	Metadata Metadata `gorm:"column:metadata" json:"metadata"`
	IsActive bool     `gorm:"column:is_active;not null" json:"is_active"`

	CreatedAt time.Time `gorm:"column:created_at;not null;index;autoCreateTime:false" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;not null;autoUpdateTime:false" json:"updated_at"`
}

func (Document) TableName() string { return "documents" }

type DocumentInput struct {
	DatasetID string
	Title     string
	Content   string
	Metadata  map[string]any
	IsActive  *bool
}

func NewDocument(in DocumentInput) *Document {
	ts := now()
	return &Document{
		DatasetID: in.DatasetID,
		Title:     in.Title,
		Content:   in.Content,
		Metadata:  newMetadata(in.Metadata),
		IsActive:  activeOrDefault(in.IsActive),
		CreatedAt: ts,
		UpdatedAt: ts,
	}
}

func (d *Document) Validate(op string) error {
	if err := requireText(op, "dataset_id", d.DatasetID); err != nil {
		return err
	}
	if err := requireText(op, "title", d.Title); err != nil {
		return err
	}
	return requireText(op, "content", d.Content)
}

// DocumentPatch never carries the dataset id; ownership is fixed at creation.
type DocumentPatch struct {
	Title     *string
	Content   *string
	Metadata  map[string]any
	IsActive  *bool
	UpdatedAt *time.Time
}

func (p DocumentPatch) Empty() bool {
	return p.Title == nil && p.Content == nil && p.Metadata == nil && p.IsActive == nil
}

func (p DocumentPatch) Validate(op string) error {
	if err := requireTextIfSet(op, "title", p.Title); err != nil {
		return err
	}
	return requireTextIfSet(op, "content", p.Content)
}

func (p DocumentPatch) Apply(d *Document) {
	if p.Title != nil {
		d.Title = *p.Title
	}
	if p.Content != nil {
		d.Content = *p.Content
	}
	if p.Metadata != nil {
		d.Metadata = newMetadata(p.Metadata)
	}
	if p.IsActive != nil {
		d.IsActive = *p.IsActive
	}
}
