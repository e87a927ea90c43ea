package repositories

import (
	"context"
	"fmt"

	"hospital-meals/internal/entities"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

const (
	auditTable        = "audit_logs"
	defaultAuditLimit = 100
	maxAuditLimit     = 1000
)

type AuditRepositoryInterface interface {
	Record(ctx context.Context, entry entities.AuditLog) error
	List(ctx context.Context, filter entities.AuditFilter) ([]entities.AuditLog, error)
}

type AuditRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewAuditRepository(storage *pgxpool.Pool, logger *zap.Logger) AuditRepositoryInterface {
	return &AuditRepository{storage: storage, logger: logger}
}

func (r *AuditRepository) Record(ctx context.Context, entry entities.AuditLog) error {
	builder := psql.Insert(auditTable).
		Columns("entity", "entity_id", "action", "details", "user_id")
	values := []interface{}{entry.Entity, entry.EntityID, entry.Action, entry.Details, entry.UserID}
	if !entry.CreatedAt.IsZero() {
		builder = builder.Columns("created_at")
		values = append(values, entry.CreatedAt)
	}

	query, args, err := builder.Values(values...).ToSql()
	if err != nil {
		return fmt.Errorf("ошибка сборки запроса аудита: %w", err)
	}
	if _, err := r.storage.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("ошибка записи аудита %s/%s: %w", entry.Entity, entry.Action, err)
	}
	return nil
}

// List отдаёт последние записи журнала, новые первыми.
func (r *AuditRepository) List(ctx context.Context, filter entities.AuditFilter) ([]entities.AuditLog, error) {
	limit := filter.Limit
	if limit == 0 {
		limit = defaultAuditLimit
	}
	if limit > maxAuditLimit {
		limit = maxAuditLimit
	}

	builder := psql.Select("id", "entity", "entity_id", "action", "details", "user_id", "created_at").From(auditTable)
	if filter.Entity != "" {
		builder = builder.Where(sq.Eq{"entity": filter.Entity})
	}
	if filter.EntityID != 0 {
		builder = builder.Where(sq.Eq{"entity_id": filter.EntityID})
	}

	query, args, err := builder.OrderBy("created_at DESC", "id DESC").Limit(limit).ToSql()
	if err != nil {
		return nil, fmt.Errorf("ошибка сборки запроса журнала: %w", err)
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения журнала: %w", err)
	}
	defer rows.Close()

	logs := make([]entities.AuditLog, 0)
	for rows.Next() {
		var l entities.AuditLog
		if err := rows.Scan(&l.ID, &l.Entity, &l.EntityID, &l.Action, &l.Details, &l.UserID, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("ошибка чтения записи журнала: %w", err)
		}
		logs = append(logs, l)
	}
	return logs, rows.Err()
}
