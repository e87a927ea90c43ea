package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"hospital-meals/internal/entities"
	apperrors "hospital-meals/pkg/errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

const orderTable = "orders"

var orderViewColumns = []string{
	"o.id", "o.patient_id", "o.item_id", "o.status", "o.consumption_status", "o.waste_percent",
	"o.special_instructions", "o.created_by", "o.created_at", "o.updated_at", "o.consumption_recorded_at",
	"p.full_name", "p.ward", "p.bed", "p.room_number", "p.dietary_restrictions", "p.allergies",
	"m.name",
}

type OrderRepositoryInterface interface {
	Create(ctx context.Context, order *entities.Order) (uint64, error)
	UpdateStatus(ctx context.Context, id uint64, status entities.OrderStatus, updatedAt time.Time) error
	UpdateConsumption(ctx context.Context, id uint64, consumption entities.ConsumptionStatus, wastePercent int, recordedAt time.Time) error
	FindByID(ctx context.Context, id uint64) (*entities.OrderView, error)
	List(ctx context.Context, filter entities.OrderFilter) ([]entities.OrderView, error)
}

type OrderRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewOrderRepository(storage *pgxpool.Pool, logger *zap.Logger) OrderRepositoryInterface {
	return &OrderRepository{storage: storage, logger: logger}
}

func orderViewQuery() sq.SelectBuilder {
	return psql.Select(orderViewColumns...).
		From(orderTable + " o").
		Join("patients p ON p.id = o.patient_id").
		Join("menu_items m ON m.id = o.item_id")
}

func scanOrderView(row pgx.Row) (*entities.OrderView, error) {
	var (
		v           entities.OrderView
		status      string
		consumption string
	)
	err := row.Scan(
		&v.ID, &v.PatientID, &v.ItemID, &status, &consumption, &v.WastePercent,
		&v.SpecialInstructions, &v.CreatedBy, &v.CreatedAt, &v.UpdatedAt, &v.ConsumptionRecordedAt,
		&v.PatientName, &v.Ward, &v.Bed, &v.RoomNumber, &v.DietaryRestrictions, &v.Allergies,
		&v.ItemName,
	)
	if err != nil {
		return nil, err
	}
	v.Status = entities.OrderStatus(status)
	v.ConsumptionStatus = entities.ConsumptionStatus(consumption)
	return &v, nil
}

// Create сохраняет заказ и возвращает его id. Несуществующий пациент или
// блюдо превращаются в ReferenceError.
func (r *OrderRepository) Create(ctx context.Context, order *entities.Order) (uint64, error) {
	query, args, err := psql.Insert(orderTable).
		Columns("patient_id", "item_id", "status", "consumption_status", "waste_percent",
			"special_instructions", "created_by", "created_at", "updated_at").
		Values(order.PatientID, order.ItemID, string(order.Status), string(order.ConsumptionStatus), order.WastePercent,
			order.SpecialInstructions, order.CreatedBy, order.CreatedAt, order.UpdatedAt).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("ошибка сборки запроса создания заказа: %w", err)
	}

	var id uint64
	if err := r.storage.QueryRow(ctx, query, args...).Scan(&id); err != nil {
		return 0, mapWriteError("создание заказа", err)
	}
	return id, nil
}

func (r *OrderRepository) UpdateStatus(ctx context.Context, id uint64, status entities.OrderStatus, updatedAt time.Time) error {
	query, args, err := psql.Update(orderTable).
		Set("status", string(status)).
		Set("updated_at", updatedAt).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("ошибка сборки запроса смены статуса: %w", err)
	}
	return r.execOne(ctx, id, query, args)
}

// UpdateConsumption фиксирует потребление и долю отходов. Время обновления
// и время фиксации совпадают.
func (r *OrderRepository) UpdateConsumption(ctx context.Context, id uint64, consumption entities.ConsumptionStatus, wastePercent int, recordedAt time.Time) error {
	query, args, err := psql.Update(orderTable).
		Set("consumption_status", string(consumption)).
		Set("waste_percent", wastePercent).
		Set("consumption_recorded_at", recordedAt).
		Set("updated_at", recordedAt).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("ошибка сборки запроса учёта потребления: %w", err)
	}
	return r.execOne(ctx, id, query, args)
}

func (r *OrderRepository) execOne(ctx context.Context, id uint64, query string, args []interface{}) error {
	tag, err := r.storage.Exec(ctx, query, args...)
	if err != nil {
		return mapWriteError("обновление заказа", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError(entities.AuditEntityOrder, id)
	}
	return nil
}

func (r *OrderRepository) FindByID(ctx context.Context, id uint64) (*entities.OrderView, error) {
	query, args, err := orderViewQuery().Where(sq.Eq{"o.id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("ошибка сборки запроса заказа: %w", err)
	}

	view, err := scanOrderView(r.storage.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError(entities.AuditEntityOrder, id)
		}
		return nil, fmt.Errorf("ошибка получения заказа %d: %w", id, err)
	}
	return view, nil
}

// List возвращает заказы от новых к старым.
func (r *OrderRepository) List(ctx context.Context, filter entities.OrderFilter) ([]entities.OrderView, error) {
	builder := orderViewQuery()
	if filter.Status != "" {
		builder = builder.Where(sq.Eq{"o.status": filter.Status})
	}
	if filter.Ward != "" {
		builder = builder.Where(sq.Eq{"p.ward": filter.Ward})
	}

	query, args, err := builder.OrderBy("o.created_at DESC", "o.id DESC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("ошибка сборки запроса списка заказов: %w", err)
	}
	r.logger.Debug("Список заказов", zap.String("query", query), zap.Any("args", args))

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения списка заказов: %w", err)
	}
	defer rows.Close()

	orders := make([]entities.OrderView, 0)
	for rows.Next() {
		view, err := scanOrderView(rows)
		if err != nil {
			return nil, fmt.Errorf("ошибка чтения заказа: %w", err)
		}
		orders = append(orders, *view)
	}
	return orders, rows.Err()
}
