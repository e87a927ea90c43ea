package repositories

import (
	"context"
	"errors"
	"fmt"

	"hospital-meals/internal/entities"
	apperrors "hospital-meals/pkg/errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

const tiffinTable = "tiffin_orders"

var tiffinColumns = []string{
	"id", "patient_name", "ward", "food_type", "quantity", "order_date",
	"status", "notes", "created_by", "created_at", "updated_at",
}

type TiffinRepositoryInterface interface {
	Create(ctx context.Context, order *entities.TiffinOrder) (uint64, error)
	Update(ctx context.Context, order *entities.TiffinOrder) error
	UpdateStatus(ctx context.Context, order *entities.TiffinOrder) error
	Delete(ctx context.Context, id uint64) error
	FindByID(ctx context.Context, id uint64) (*entities.TiffinOrder, error)
	List(ctx context.Context, filter entities.TiffinFilter) ([]entities.TiffinOrder, error)
}

type TiffinRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewTiffinRepository(storage *pgxpool.Pool, logger *zap.Logger) TiffinRepositoryInterface {
	return &TiffinRepository{storage: storage, logger: logger}
}

func scanTiffin(row pgx.Row) (*entities.TiffinOrder, error) {
	var (
		t      entities.TiffinOrder
		status string
	)
	err := row.Scan(
		&t.ID, &t.PatientName, &t.Ward, &t.FoodType, &t.Quantity, &t.OrderDate,
		&status, &t.Notes, &t.CreatedBy, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	t.Status = entities.TiffinStatus(status)
	return &t, nil
}

func (r *TiffinRepository) Create(ctx context.Context, order *entities.TiffinOrder) (uint64, error) {
	query, args, err := psql.Insert(tiffinTable).
		Columns("patient_name", "ward", "food_type", "quantity", "order_date", "status", "notes", "created_by", "created_at", "updated_at").
		Values(order.PatientName, order.Ward, order.FoodType, order.Quantity, order.OrderDateString(),
			string(order.Status), order.Notes, order.CreatedBy, order.CreatedAt, order.UpdatedAt).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("ошибка сборки запроса создания тиффин-заказа: %w", err)
	}

	var id uint64
	if err := r.storage.QueryRow(ctx, query, args...).Scan(&id); err != nil {
		return 0, mapWriteError("создание тиффин-заказа", err)
	}
	return id, nil
}

// Update перезаписывает все редактируемые поля заказа.
func (r *TiffinRepository) Update(ctx context.Context, order *entities.TiffinOrder) error {
	query, args, err := psql.Update(tiffinTable).
		SetMap(map[string]interface{}{
			"patient_name": order.PatientName,
			"ward":         order.Ward,
			"food_type":    order.FoodType,
			"quantity":     order.Quantity,
			"order_date":   order.OrderDateString(),
			"status":       string(order.Status),
			"notes":        order.Notes,
			"updated_at":   order.UpdatedAt,
		}).
		Where(sq.Eq{"id": order.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("ошибка сборки запроса обновления тиффин-заказа: %w", err)
	}
	return r.execOne(ctx, order.ID, query, args)
}

func (r *TiffinRepository) UpdateStatus(ctx context.Context, order *entities.TiffinOrder) error {
	query, args, err := psql.Update(tiffinTable).
		Set("status", string(order.Status)).
		Set("updated_at", order.UpdatedAt).
		Where(sq.Eq{"id": order.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("ошибка сборки запроса статуса тиффин-заказа: %w", err)
	}
	return r.execOne(ctx, order.ID, query, args)
}

func (r *TiffinRepository) Delete(ctx context.Context, id uint64) error {
	query, args, err := psql.Delete(tiffinTable).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("ошибка сборки запроса удаления тиффин-заказа: %w", err)
	}
	return r.execOne(ctx, id, query, args)
}

func (r *TiffinRepository) execOne(ctx context.Context, id uint64, query string, args []interface{}) error {
	tag, err := r.storage.Exec(ctx, query, args...)
	if err != nil {
		return mapWriteError("изменение тиффин-заказа", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError(entities.AuditEntityTiffin, id)
	}
	return nil
}

func (r *TiffinRepository) FindByID(ctx context.Context, id uint64) (*entities.TiffinOrder, error) {
	query, args, err := psql.Select(tiffinColumns...).From(tiffinTable).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("ошибка сборки запроса тиффин-заказа: %w", err)
	}

	order, err := scanTiffin(r.storage.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError(entities.AuditEntityTiffin, id)
		}
		return nil, fmt.Errorf("ошибка получения тиффин-заказа %d: %w", id, err)
	}
	return order, nil
}

// List сортирует по дате заказа, затем по времени создания, новые первыми.
func (r *TiffinRepository) List(ctx context.Context, filter entities.TiffinFilter) ([]entities.TiffinOrder, error) {
	builder := psql.Select(tiffinColumns...).From(tiffinTable)
	if filter.Status != "" {
		builder = builder.Where(sq.Eq{"status": filter.Status})
	}
	if filter.Ward != "" {
		builder = builder.Where(sq.Eq{"ward": filter.Ward})
	}
	if filter.OrderDate != "" {
		builder = builder.Where("order_date = ?::date", filter.OrderDate)
	}

	query, args, err := builder.OrderBy("order_date DESC", "created_at DESC", "id DESC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("ошибка сборки запроса списка тиффин-заказов: %w", err)
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения тиффин-заказов: %w", err)
	}
	defer rows.Close()

	orders := make([]entities.TiffinOrder, 0)
	for rows.Next() {
		order, err := scanTiffin(rows)
		if err != nil {
			return nil, fmt.Errorf("ошибка чтения тиффин-заказа: %w", err)
		}
		orders = append(orders, *order)
	}
	return orders, rows.Err()
}
