package knowledgebase

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
	"gorm.io/gorm"

	"github.com/yungbote/knowledge-backend/internal/domain/faults"
	"github.com/yungbote/knowledge-backend/internal/platform/dbctx"
)

// MapError classifies driver failures into fault codes. The original error
// stays reachable through errors.Is / errors.As.
func MapError(op string, err error) error {
	if err == nil {
		return nil
	}
	var fe *faults.Error
	if errors.As(err, &fe) {
		return err
	}
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return faults.Wrap(faults.CodeNotFound, op, err)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return faults.Wrap(faults.CodeConflict, op, err)
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return faults.Wrap(faults.CodePreconditionFailed, op, err)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return faults.Wrap(faults.CodeStorage, op, err)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch strings.TrimSpace(pgErr.Code) {
		case pgerrcode.UniqueViolation:
			return faults.Wrap(faults.CodeConflict, op, err)
		case pgerrcode.ForeignKeyViolation:
			return faults.Wrap(faults.CodePreconditionFailed, op, err)
		case pgerrcode.NotNullViolation, pgerrcode.CheckViolation:
			return faults.Wrap(faults.CodeValidation, op, err)
		}
	}

	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) {
		switch liteErr.ExtendedCode {
		case sqlite3.ErrConstraintUnique, sqlite3.ErrConstraintPrimaryKey:
			return faults.Wrap(faults.CodeConflict, op, err)
		case sqlite3.ErrConstraintForeignKey:
			return faults.Wrap(faults.CodePreconditionFailed, op, err)
		case sqlite3.ErrConstraintNotNull, sqlite3.ErrConstraintCheck:
			return faults.Wrap(faults.CodeValidation, op, err)
		}
	}

	return faults.Wrap(faults.CodeStorage, op, err)
}

func conn(dbc dbctx.Context, fallback *gorm.DB) *gorm.DB {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = fallback
	}
	return transaction.WithContext(dbc.Context())
}

func pageBounds(skip, limit int) (int, int, bool) {
	if limit <= 0 {
		return 0, 0, false
	}
	if skip < 0 {
		skip = 0
	}
	return skip, limit, true
}
