package knowledgebase

import (
	"time"
)

// DescriptionAutoCreated marks datasets created implicitly by document creation.
const DescriptionAutoCreated = "auto-created from document creation"

// Dataset is the top-level named collection owning documents.
type Dataset struct {
	ID          string   `gorm:"type:varchar(36);primaryKey" json:"id"`
	Name        string   `gorm:"column:name;type:varchar(255);not null" json:"name"`
	Description string   `gorm:"column:description;type:text" json:"description"`
	Metadata    Metadata `gorm:"column:metadata" json:"metadata"`
	IsActive    bool     `gorm:"column:is_active;not null" json:"is_active"`

	CreatedAt time.Time `gorm:"column:created_at;not null;index;autoCreateTime:false" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;not null;autoUpdateTime:false" json:"updated_at"`
}

func (Dataset) TableName() string { return "datasets" }

type DatasetInput struct {
	Name        string
	Description string
	Metadata    map[string]any
	IsActive    *bool
}

// NewDataset builds an unsaved dataset stamped with the current time.
func NewDataset(in DatasetInput) *Dataset {
	ts := now()
	return &Dataset{
		Name:        in.Name,
		Description: in.Description,
		Metadata:    newMetadata(in.Metadata),
		IsActive:    activeOrDefault(in.IsActive),
		CreatedAt:   ts,
		UpdatedAt:   ts,
	}
}

func (d *Dataset) Validate(op string) error {
	return requireText(op, "name", d.Name)
}

// DatasetPatch is a sparse update: nil fields keep the stored value. A nil
// Metadata map means "not provided"; an empty non-nil map clears it.
type DatasetPatch struct {
	Name        *string
	Description *string
	Metadata    map[string]any
	IsActive    *bool
	UpdatedAt   *time.Time
}

func (p DatasetPatch) Empty() bool {
	return p.Name == nil && p.Description == nil && p.Metadata == nil && p.IsActive == nil
}

func (p DatasetPatch) Validate(op string) error {
	return requireTextIfSet(op, "name", p.Name)
}

// Apply copies the provided fields onto d. UpdatedAt is left to the caller.
func (p DatasetPatch) Apply(d *Dataset) {
	if p.Name != nil {
		d.Name = *p.Name
	}
	if p.Description != nil {
		d.Description = *p.Description
	}
	if p.Metadata != nil {
		d.Metadata = newMetadata(p.Metadata)
	}
	if p.IsActive != nil {
		d.IsActive = *p.IsActive
	}
}
