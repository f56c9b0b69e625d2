package knowledgebase

import (
	"context"
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"maps"
	"strings"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/schema"

	"github.com/yungbote/knowledge-backend/internal/domain/faults"
)

// Metadata is a free-form JSON object column. It is stored like
// datatypes.JSONMap but scans numbers back as float64, the same values
// encoding/json produces for request bodies.
type Metadata map[string]any

func (m Metadata) Value() (driver.Value, error) {
	return datatypes.JSONMap(m).Value()
}

func (m *Metadata) Scan(value any) error {
	var b []byte
	switch v := value.(type) {
	case nil:
		*m = Metadata{}
		return nil
	case []byte:
		b = v
	case string:
		b = []byte(v)
	default:
		return fmt.Errorf("metadata: unsupported scan type %T", value)
	}
	out := Metadata{}
	if len(b) > 0 {
		if err := json.Unmarshal(b, &out); err != nil {
			return fmt.Errorf("metadata: %w", err)
		}
	}
	*m = out
	return nil
}

func (Metadata) GormDataType() string {
	return datatypes.JSONMap{}.GormDataType()
}

func (Metadata) GormDBDataType(db *gorm.DB, field *schema.Field) string {
	return datatypes.JSONMap{}.GormDBDataType(db, field)
}

func (m Metadata) GormValue(ctx context.Context, db *gorm.DB) clause.Expr {
	return datatypes.JSONMap(m).GormValue(ctx, db)
}

// newMetadata copies m into a fresh map so entities never share the
// caller's map. A nil map becomes an empty one.
func newMetadata(m map[string]any) Metadata {
	if m == nil {
		return Metadata{}
	}
	return Metadata(maps.Clone(m))
}

func now() time.Time { return time.Now().UTC() }

func activeOrDefault(v *bool) bool {
	if v == nil {
		return true
	}
	return *v
}

func requireText(op, field, v string) error {
	if strings.TrimSpace(v) == "" {
		return faults.Validation(op, field+" is required")
	}
	return nil
}

// requireTextIfSet rejects a provided-but-blank value in a patch.
func requireTextIfSet(op, field string, v *string) error {
	if v == nil {
		return nil
	}
	return requireText(op, field, *v)
}
