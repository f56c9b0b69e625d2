package knowledgebase

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yungbote/knowledge-backend/internal/domain/faults"
	"github.com/yungbote/knowledge-backend/internal/pkg/pointers"
)

func TestNewDatasetDefaults(t *testing.T) {
	before := time.Now().UTC()
	d := NewDataset(DatasetInput{Name: "D1"})

	assert.Empty(t, d.ID)
	assert.Equal(t, "D1", d.Name)
	assert.Equal(t, "", d.Description)
	require.NotNil(t, d.Metadata)
	assert.Empty(t, d.Metadata)
	assert.True(t, d.IsActive)
	assert.False(t, d.CreatedAt.Before(before))
	assert.True(t, d.CreatedAt.Equal(d.UpdatedAt))
}

func TestNewDatasetDoesNotShareMetadata(t *testing.T) {
	meta := map[string]any{"lang": "ja"}
	d := NewDataset(DatasetInput{Name: "D1", Metadata: meta, IsActive: pointers.Bool(false)})
	meta["lang"] = "en"

	assert.Equal(t, "ja", d.Metadata["lang"])
	assert.False(t, d.IsActive)

	a := NewDataset(DatasetInput{Name: "a"})
	b := NewDataset(DatasetInput{Name: "b"})
	a.Metadata["k"] = "v"
	assert.NotContains(t, b.Metadata, "k")
}

func TestDatasetValidate(t *testing.T) {
	err := NewDataset(DatasetInput{Name: "  "}).Validate("datasets.create")
	require.Error(t, err)
	assert.True(t, faults.IsValidation(err))
	assert.NoError(t, NewDataset(DatasetInput{Name: "ok"}).Validate("datasets.create"))
}

func TestDatasetPatchAppliesOnlyProvidedFields(t *testing.T) {
	d := NewDataset(DatasetInput{Name: "orig", Description: "desc", Metadata: map[string]any{"a": 1}})

	DatasetPatch{Description: pointers.String("")}.Apply(d)
	assert.Equal(t, "orig", d.Name)
	assert.Equal(t, "", d.Description)
	assert.Equal(t, 1, d.Metadata["a"])
	assert.True(t, d.IsActive)

	DatasetPatch{Metadata: map[string]any{}, IsActive: pointers.Bool(false)}.Apply(d)
	assert.Empty(t, d.Metadata)
	assert.False(t, d.IsActive)
}

func TestDatasetPatchEmptyAndValidate(t *testing.T) {
	assert.True(t, DatasetPatch{}.Empty())
	assert.True(t, DatasetPatch{UpdatedAt: pointers.Ptr(time.Now())}.Empty())
	assert.False(t, DatasetPatch{Metadata: map[string]any{}}.Empty())

	assert.NoError(t, DatasetPatch{}.Validate("op"))
	assert.True(t, faults.IsValidation(DatasetPatch{Name: pointers.String("")}.Validate("op")))
}
