package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"hospital-meals/internal/dto"
	"hospital-meals/internal/entities"
	"hospital-meals/internal/events"
	"hospital-meals/internal/repositories"
	apperrors "hospital-meals/pkg/errors"

	"github.com/go-redis/redis/v8"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

const menuCacheKey = "menu:items"

type MenuServiceInterface interface {
	ListItems(ctx context.Context) ([]entities.MenuItem, error)
	Replace(ctx context.Context, payload dto.ReplaceMenuDTO, actorID uint64) ([]entities.MenuItem, error)
}

type MenuService struct {
	menuRepo  repositories.MenuRepositoryInterface
	txManager repositories.TxManagerInterface
	cache     repositories.CacheRepositoryInterface
	audit     AuditLoggerInterface
	bus       EventPublisher
	cacheTTL  time.Duration
	logger    *zap.Logger
}

func NewMenuService(
	menuRepo repositories.MenuRepositoryInterface,
	txManager repositories.TxManagerInterface,
	cache repositories.CacheRepositoryInterface,
	audit AuditLoggerInterface,
	bus EventPublisher,
	cacheTTL time.Duration,
	logger *zap.Logger,
) *MenuService {
	return &MenuService{
		menuRepo:  menuRepo,
		txManager: txManager,
		cache:     cache,
		audit:     audit,
		bus:       bus,
		cacheTTL:  cacheTTL,
		logger:    logger,
	}
}

// ListItems читает меню из Redis, а при промахе или ошибке кеша - из БД.
func (s *MenuService) ListItems(ctx context.Context) ([]entities.MenuItem, error) {
	cached, err := s.cache.Get(ctx, menuCacheKey)
	switch {
	case err == nil:
		var items []entities.MenuItem
		if jsonErr := json.Unmarshal([]byte(cached), &items); jsonErr == nil {
			return items, nil
		}
		s.logger.Warn("Повреждённое меню в кеше, читаем из БД")
	case !errors.Is(err, redis.Nil):
		s.logger.Warn("Кеш меню недоступен", zap.Error(err))
	}

	items, err := s.menuRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	if raw, err := json.Marshal(items); err == nil {
		if err := s.cache.Set(ctx, menuCacheKey, raw, s.cacheTTL); err != nil {
			s.logger.Warn("Не удалось сохранить меню в кеш", zap.Error(err))
		}
	}
	return items, nil
}

func resolveMenuItems(payload dto.ReplaceMenuDTO) ([]entities.MenuItem, string, error) {
	if payload.Preset != "" {
		preset, ok := MenuPresets[payload.Preset]
		if !ok {
			return nil, "", apperrors.NewValidationError("preset", "неизвестный набор меню %q", payload.Preset)
		}
		items := make([]entities.MenuItem, len(preset))
		copy(items, preset)
		return items, "replaced_with_" + payload.Preset, nil
	}

	if len(payload.Items) == 0 {
		return nil, "", apperrors.NewValidationError("items", "нужно указать набор меню или список блюд")
	}
	items := make([]entities.MenuItem, 0, len(payload.Items))
	for _, it := range payload.Items {
		items = append(items, entities.MenuItem{
			Name:     strings.TrimSpace(it.Name),
			Category: strings.TrimSpace(it.Category),
			Dietary:  strings.TrimSpace(it.Dietary),
		})
	}
	return items, "replaced_custom", nil
}

// Replace заменяет меню целиком в одной транзакции. Вместе со старым меню
// удаляются все заказы. При ошибке данные не меняются и уведомления нет.
func (s *MenuService) Replace(ctx context.Context, payload dto.ReplaceMenuDTO, actorID uint64) ([]entities.MenuItem, error) {
	items, action, err := resolveMenuItems(payload)
	if err != nil {
		return nil, err
	}

	var inserted []entities.MenuItem
	err = s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		var txErr error
		inserted, txErr = s.menuRepo.ReplaceAll(ctx, tx, items)
		return txErr
	})
	if err != nil {
		s.logger.Error("Замена меню отменена", zap.String("action", action), zap.Error(err))
		return nil, &apperrors.TransactionError{Op: "menu.replace", Err: fmt.Errorf("%s: %w", action, err)}
	}

	recordAudit(ctx, s.audit, s.logger, entities.AuditEntityMenu, 0, action,
		map[string]interface{}{"count": len(inserted)}, actorID)

	if err := s.cache.Del(ctx, menuCacheKey); err != nil {
		s.logger.Warn("Не удалось сбросить кеш меню", zap.Error(err))
	}
	s.bus.Publish(ctx, events.NewMenuReloaded())

	s.logger.Info("Меню заменено", zap.String("action", action), zap.Int("items", len(inserted)))
	return inserted, nil
}
