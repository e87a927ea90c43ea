package services

import (
	"context"
	"time"

	"hospital-meals/internal/dto"
	"hospital-meals/internal/entities"
	"hospital-meals/internal/repositories"
	"hospital-meals/pkg/config"

	jnow "github.com/jinzhu/now"
	"go.uber.org/zap"
)

const (
	maxReportDays  = 366
	maxReportWeeks = 104
	maxReportTop   = 500
)

type ReportServiceInterface interface {
	DailyCounts(ctx context.Context, days int) ([]entities.DailyCount, error)
	WeeklyCounts(ctx context.Context, weeks int) ([]entities.WeeklyCount, error)
	TopDishes(ctx context.Context, limit int) ([]entities.DishCount, error)
	ByDietaryRestriction(ctx context.Context) ([]entities.DietaryCount, error)
	WasteByWardDaily(ctx context.Context, days int) ([]entities.WardWaste, error)
	Summary(ctx context.Context, params dto.ReportParamsDTO) (*dto.ReportSummaryDTO, error)
	ExportSummary(ctx context.Context) (*dto.ReportSummaryDTO, error)
}

type reportService struct {
	repo   repositories.ReportRepositoryInterface
	cfg    config.ReportConfig
	clock  func() time.Time
	logger *zap.Logger
}

func NewReportService(repo repositories.ReportRepositoryInterface, cfg config.ReportConfig, logger *zap.Logger) ReportServiceInterface {
	return &reportService{repo: repo, cfg: cfg, clock: time.Now, logger: logger}
}

func orDefault(v, def, max int) int {
	if v <= 0 {
		return def
	}
	if v > max {
		return max
	}
	return v
}

// windowStart - начало суток (UTC) за span-1 дней до сегодняшнего.
func (s *reportService) windowStart(span int) time.Time {
	today := jnow.With(s.clock().UTC()).BeginningOfDay()
	return today.AddDate(0, 0, -(span - 1))
}

func (s *reportService) DailyCounts(ctx context.Context, days int) ([]entities.DailyCount, error) {
	days = orDefault(days, s.cfg.DefaultDays, maxReportDays)
	return s.repo.DailyCounts(ctx, s.windowStart(days))
}

func (s *reportService) WeeklyCounts(ctx context.Context, weeks int) ([]entities.WeeklyCount, error) {
	weeks = orDefault(weeks, s.cfg.DefaultWeeks, maxReportWeeks)
	return s.repo.WeeklyCounts(ctx, s.windowStart(weeks*7))
}

func (s *reportService) TopDishes(ctx context.Context, limit int) ([]entities.DishCount, error) {
	limit = orDefault(limit, s.cfg.DefaultTop, maxReportTop)
	return s.repo.TopDishes(ctx, uint64(limit))
}

func (s *reportService) ByDietaryRestriction(ctx context.Context) ([]entities.DietaryCount, error) {
	return s.repo.ByDietaryRestriction(ctx)
}

func (s *reportService) WasteByWardDaily(ctx context.Context, days int) ([]entities.WardWaste, error) {
	days = orDefault(days, s.cfg.DefaultDays, maxReportDays)
	return s.repo.WasteByWardDaily(ctx, s.windowStart(days))
}

// Summary собирает все отчёты разом.
func (s *reportService) Summary(ctx context.Context, params dto.ReportParamsDTO) (*dto.ReportSummaryDTO, error) {
	summary := &dto.ReportSummaryDTO{
		Days:  orDefault(params.Days, s.cfg.DefaultDays, maxReportDays),
		Weeks: orDefault(params.Weeks, s.cfg.DefaultWeeks, maxReportWeeks),
		Limit: orDefault(params.Limit, s.cfg.DefaultTop, maxReportTop),
	}

	var err error
	if summary.Daily, err = s.DailyCounts(ctx, summary.Days); err != nil {
		return nil, err
	}
	if summary.Weekly, err = s.WeeklyCounts(ctx, summary.Weeks); err != nil {
		return nil, err
	}
	if summary.TopDishes, err = s.TopDishes(ctx, summary.Limit); err != nil {
		return nil, err
	}
	if summary.ByDiet, err = s.ByDietaryRestriction(ctx); err != nil {
		return nil, err
	}
	if summary.WasteByWardDaily, err = s.WasteByWardDaily(ctx, summary.Days); err != nil {
		return nil, err
	}

	s.logger.Debug("Сводный отчёт сформирован",
		zap.Int("days", summary.Days),
		zap.Int("weeks", summary.Weeks),
		zap.Int("limit", summary.Limit),
	)
	return summary, nil
}

// ExportSummary - окна выгрузок шире окон экрана.
func (s *reportService) ExportSummary(ctx context.Context) (*dto.ReportSummaryDTO, error) {
	return s.Summary(ctx, dto.ReportParamsDTO{
		Days:  s.cfg.ExportDays,
		Weeks: s.cfg.ExportWeeks,
		Limit: s.cfg.ExportTop,
	})
}
