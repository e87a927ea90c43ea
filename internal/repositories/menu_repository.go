package repositories

import (
	"context"
	"fmt"

	"hospital-meals/internal/entities"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

const menuTable = "menu_items"

type MenuRepositoryInterface interface {
	List(ctx context.Context) ([]entities.MenuItem, error)
	ReplaceAll(ctx context.Context, tx pgx.Tx, items []entities.MenuItem) ([]entities.MenuItem, error)
}

type MenuRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewMenuRepository(storage *pgxpool.Pool, logger *zap.Logger) MenuRepositoryInterface {
	return &MenuRepository{storage: storage, logger: logger}
}

func (r *MenuRepository) List(ctx context.Context) ([]entities.MenuItem, error) {
	query, args, err := psql.Select("id", "name", "category", "dietary").From(menuTable).OrderBy("category", "name", "id").ToSql()
	if err != nil {
		return nil, fmt.Errorf("ошибка сборки запроса меню: %w", err)
	}
	return r.queryItems(ctx, r.storage, query, args)
}

// ReplaceAll удаляет все заказы и позиции меню и вставляет новые позиции.
// Выполняется только внутри переданной транзакции.
func (r *MenuRepository) ReplaceAll(ctx context.Context, tx pgx.Tx, items []entities.MenuItem) ([]entities.MenuItem, error) {
	if _, err := tx.Exec(ctx, "DELETE FROM "+orderTable); err != nil {
		return nil, fmt.Errorf("ошибка удаления заказов: %w", err)
	}
	if _, err := tx.Exec(ctx, "DELETE FROM "+menuTable); err != nil {
		return nil, fmt.Errorf("ошибка удаления меню: %w", err)
	}
	if len(items) == 0 {
		return []entities.MenuItem{}, nil
	}

	builder := psql.Insert(menuTable).Columns("name", "category", "dietary")
	for _, item := range items {
		builder = builder.Values(item.Name, item.Category, item.Dietary)
	}
	query, args, err := builder.Suffix("RETURNING id, name, category, dietary").ToSql()
	if err != nil {
		return nil, fmt.Errorf("ошибка сборки запроса вставки меню: %w", err)
	}

	inserted, err := r.queryItems(ctx, tx, query, args)
	if err != nil {
		return nil, err
	}
	r.logger.Info("Меню заменено", zap.Int("items", len(inserted)))
	return inserted, nil
}

func (r *MenuRepository) queryItems(ctx context.Context, q querier, query string, args []interface{}) ([]entities.MenuItem, error) {
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка запроса меню: %w", err)
	}
	defer rows.Close()

	items := make([]entities.MenuItem, 0)
	for rows.Next() {
		var item entities.MenuItem
		if err := rows.Scan(&item.ID, &item.Name, &item.Category, &item.Dietary); err != nil {
			return nil, fmt.Errorf("ошибка чтения позиции меню: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}
