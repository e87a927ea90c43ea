package repositories

import (
	"errors"
	"fmt"

	apperrors "hospital-meals/pkg/errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgconn"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

const (
	pgForeignKeyViolation = "23503"
	pgUniqueViolation     = "23505"
)

// имена ограничений из migrations/00001_init.sql
var foreignKeyEntities = map[string]string{
	"orders_patient_id_fkey": "patient",
	"orders_item_id_fkey":    "menu_item",
}

// mapWriteError переводит нарушения ограничений Postgres в ошибки приложения.
func mapWriteError(op string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgForeignKeyViolation:
			if entity, ok := foreignKeyEntities[pgErr.ConstraintName]; ok {
				return &apperrors.ReferenceError{Entity: entity, Err: err}
			}
			return fmt.Errorf("%s: на запись есть ссылки: %w", op, apperrors.ErrConflict)
		case pgUniqueViolation:
			return fmt.Errorf("%s: запись уже существует (%s): %w", op, pgErr.ConstraintName, apperrors.ErrConflict)
		}
	}
	return fmt.Errorf("%s: %w", op, err)
}

func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation
}
