package services

import (
	"context"
	"strings"
	"sync"
	"time"

	"hospital-meals/internal/dto"
	"hospital-meals/internal/entities"
	"hospital-meals/internal/events"
	"hospital-meals/internal/repositories"
	apperrors "hospital-meals/pkg/errors"

	"github.com/aarondl/null/v8"
	"go.uber.org/zap"
)

type OrderServiceInterface interface {
	CreateOrder(ctx context.Context, payload dto.CreateOrderDTO, actorID uint64) (*entities.OrderView, error)
	SetStatus(ctx context.Context, id uint64, status string, actorID uint64) (*entities.OrderView, error)
	RecordConsumption(ctx context.Context, id uint64, value string, actorID uint64) (*entities.OrderView, error)
	ListOrders(ctx context.Context, filter entities.OrderFilter) ([]entities.OrderView, error)
	FindOrder(ctx context.Context, id uint64) (*entities.OrderView, error)
}

// OrderService - жизненный цикл заказа: проверка, запись, аудит, уведомление.
// Изменяющие вызовы выполняются по одному, поэтому события уходят в порядке
// завершения операций.
type OrderService struct {
	orderRepo repositories.OrderRepositoryInterface
	audit     AuditLoggerInterface
	bus       EventPublisher
	logger    *zap.Logger
	mu        sync.Mutex
	now       func() time.Time
}

func NewOrderService(
	orderRepo repositories.OrderRepositoryInterface,
	audit AuditLoggerInterface,
	bus EventPublisher,
	logger *zap.Logger,
) *OrderService {
	return &OrderService{
		orderRepo: orderRepo,
		audit:     audit,
		bus:       bus,
		logger:    logger,
		now:       time.Now,
	}
}

func (s *OrderService) CreateOrder(ctx context.Context, payload dto.CreateOrderDTO, actorID uint64) (*entities.OrderView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now().UTC()
	order := &entities.Order{
		PatientID:         payload.PatientID,
		ItemID:            payload.ItemID,
		Status:            entities.OrderStatusPlaced,
		ConsumptionStatus: entities.ConsumptionUnknown,
		WastePercent:      0,
		CreatedBy:         actorID,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if instructions := strings.TrimSpace(payload.SpecialInstructions); instructions != "" {
		order.SpecialInstructions = null.StringFrom(instructions)
	}

	id, err := s.orderRepo.Create(ctx, order)
	if err != nil {
		s.logger.Warn("Не удалось создать заказ",
			zap.Uint64("patientID", payload.PatientID),
			zap.Uint64("itemID", payload.ItemID),
			zap.Error(err),
		)
		return nil, err
	}

	view, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	recordAudit(ctx, s.audit, s.logger, entities.AuditEntityOrder, id, "created",
		map[string]interface{}{"patientId": payload.PatientID, "itemId": payload.ItemID}, actorID)
	s.bus.Publish(ctx, events.NewOrderCreated(view))

	s.logger.Info("Заказ создан", zap.Uint64("orderID", id), zap.Uint64("actorID", actorID))
	return view, nil
}

// SetStatus записывает любой допустимый статус поверх текущего,
// в том числе возврат на предыдущий этап.
func (s *OrderService) SetStatus(ctx context.Context, id uint64, status string, actorID uint64) (*entities.OrderView, error) {
	next, ok := entities.ParseOrderStatus(status)
	if !ok {
		return nil, apperrors.NewValidationError("status", "недопустимый статус заказа %q", status)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.orderRepo.UpdateStatus(ctx, id, next, s.now().UTC()); err != nil {
		return nil, err
	}

	view, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	recordAudit(ctx, s.audit, s.logger, entities.AuditEntityOrder, id, "status_changed",
		map[string]interface{}{"status": next}, actorID)
	s.bus.Publish(ctx, events.NewStatusChanged(view))

	s.logger.Info("Статус заказа изменён", zap.Uint64("orderID", id), zap.String("status", string(next)))
	return view, nil
}

// RecordConsumption принимает любое значение: неизвестное приводится к unknown.
// Время фиксации проставляется при каждом вызове.
func (s *OrderService) RecordConsumption(ctx context.Context, id uint64, value string, actorID uint64) (*entities.OrderView, error) {
	consumption := entities.NormalizeConsumption(value)
	waste := consumption.WastePercent()

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.orderRepo.UpdateConsumption(ctx, id, consumption, waste, s.now().UTC()); err != nil {
		return nil, err
	}

	view, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	recordAudit(ctx, s.audit, s.logger, entities.AuditEntityOrder, id, "consumption_recorded",
		map[string]interface{}{"consumptionStatus": consumption, "wastePercent": waste}, actorID)
	s.bus.Publish(ctx, events.NewConsumptionRecorded(view))

	return view, nil
}

func (s *OrderService) ListOrders(ctx context.Context, filter entities.OrderFilter) ([]entities.OrderView, error) {
	return s.orderRepo.List(ctx, filter)
}

func (s *OrderService) FindOrder(ctx context.Context, id uint64) (*entities.OrderView, error) {
	return s.orderRepo.FindByID(ctx, id)
}
