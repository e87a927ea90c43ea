package repositories

import (
	"context"
	"fmt"
	"time"

	"hospital-meals/internal/entities"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// дни считаются в UTC, чтобы отчёт не зависел от часового пояса сервера БД
const (
	dayExpr  = "to_char((o.created_at AT TIME ZONE 'UTC')::date, 'YYYY-MM-DD')"
	weekExpr = "to_char(date_trunc('week', o.created_at AT TIME ZONE 'UTC'), 'IYYY-\"W\"IW')"
	wasteDay = "to_char((o.consumption_recorded_at AT TIME ZONE 'UTC')::date, 'YYYY-MM-DD')"
	dietExpr = "COALESCE(NULLIF(TRIM(p.dietary_restrictions), ''), 'None')"
)

type ReportRepositoryInterface interface {
	DailyCounts(ctx context.Context, since time.Time) ([]entities.DailyCount, error)
	WeeklyCounts(ctx context.Context, since time.Time) ([]entities.WeeklyCount, error)
	TopDishes(ctx context.Context, limit uint64) ([]entities.DishCount, error)
	ByDietaryRestriction(ctx context.Context) ([]entities.DietaryCount, error)
	WasteByWardDaily(ctx context.Context, since time.Time) ([]entities.WardWaste, error)
}

type reportRepository struct {
	db *pgxpool.Pool
}

func NewReportRepository(db *pgxpool.Pool) ReportRepositoryInterface {
	return &reportRepository{db: db}
}

func (r *reportRepository) DailyCounts(ctx context.Context, since time.Time) ([]entities.DailyCount, error) {
	builder := psql.Select(dayExpr+" AS day", "COUNT(*)").
		From("orders o").
		Where(sq.GtOrEq{"o.created_at": since}).
		GroupBy("day").
		OrderBy("day ASC")

	return collect(ctx, r.db, builder, "дневной отчёт", func(rows pgx.Rows) (entities.DailyCount, error) {
		var c entities.DailyCount
		err := rows.Scan(&c.Day, &c.Count)
		return c, err
	})
}

func (r *reportRepository) WeeklyCounts(ctx context.Context, since time.Time) ([]entities.WeeklyCount, error) {
	builder := psql.Select(weekExpr+" AS week", "COUNT(*)").
		From("orders o").
		Where(sq.GtOrEq{"o.created_at": since}).
		GroupBy("week").
		OrderBy("week ASC")

	return collect(ctx, r.db, builder, "недельный отчёт", func(rows pgx.Rows) (entities.WeeklyCount, error) {
		var c entities.WeeklyCount
		err := rows.Scan(&c.Week, &c.Count)
		return c, err
	})
}

// TopDishes - самые заказываемые блюда, при равенстве по алфавиту.
func (r *reportRepository) TopDishes(ctx context.Context, limit uint64) ([]entities.DishCount, error) {
	builder := psql.Select("m.id", "m.name", "COUNT(o.id) AS cnt").
		From("orders o").
		Join("menu_items m ON m.id = o.item_id").
		GroupBy("m.id", "m.name").
		OrderBy("cnt DESC", "m.name ASC").
		Limit(limit)

	return collect(ctx, r.db, builder, "топ блюд", func(rows pgx.Rows) (entities.DishCount, error) {
		var c entities.DishCount
		err := rows.Scan(&c.ItemID, &c.ItemName, &c.Count)
		return c, err
	})
}

func (r *reportRepository) ByDietaryRestriction(ctx context.Context) ([]entities.DietaryCount, error) {
	builder := psql.Select(dietExpr+" AS restriction", "COUNT(o.id) AS cnt").
		From("orders o").
		Join("patients p ON p.id = o.patient_id").
		GroupBy("restriction").
		OrderBy("cnt DESC", "restriction ASC")

	return collect(ctx, r.db, builder, "отчёт по диетам", func(rows pgx.Rows) (entities.DietaryCount, error) {
		var c entities.DietaryCount
		err := rows.Scan(&c.Restriction, &c.Count)
		return c, err
	})
}

// WasteByWardDaily учитывает только заказы с зафиксированным потреблением.
func (r *reportRepository) WasteByWardDaily(ctx context.Context, since time.Time) ([]entities.WardWaste, error) {
	builder := psql.Select(wasteDay+" AS day", "p.ward", "AVG(o.waste_percent)::float8").
		From("orders o").
		Join("patients p ON p.id = o.patient_id").
		Where(sq.NotEq{"o.consumption_recorded_at": nil}).
		Where(sq.GtOrEq{"o.consumption_recorded_at": since}).
		GroupBy("day", "p.ward").
		OrderBy("day ASC", "p.ward ASC")

	return collect(ctx, r.db, builder, "отходы по отделениям", func(rows pgx.Rows) (entities.WardWaste, error) {
		var w entities.WardWaste
		err := rows.Scan(&w.Day, &w.Ward, &w.WastePercent)
		return w, err
	})
}

func collect[T any](ctx context.Context, q querier, builder sq.SelectBuilder, name string, scan func(pgx.Rows) (T, error)) ([]T, error) {
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("ошибка сборки запроса (%s): %w", name, err)
	}

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка выполнения запроса (%s): %w", name, err)
	}
	defer rows.Close()

	result := make([]T, 0)
	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return nil, fmt.Errorf("ошибка чтения строки (%s): %w", name, err)
		}
		result = append(result, item)
	}
	return result, rows.Err()
}
