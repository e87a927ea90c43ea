package services

import (
	"context"
	"strings"
	"sync"
	"time"

	"hospital-meals/internal/dto"
	"hospital-meals/internal/entities"
	"hospital-meals/internal/repositories"
	apperrors "hospital-meals/pkg/errors"

	"go.uber.org/zap"
)

type TiffinServiceInterface interface {
	Create(ctx context.Context, payload dto.CreateTiffinOrderDTO, actorID uint64) (*entities.TiffinOrder, error)
	Update(ctx context.Context, id uint64, payload dto.UpdateTiffinOrderDTO, actorID uint64) (*entities.TiffinOrder, error)
	UpdateStatus(ctx context.Context, id uint64, status string, actorID uint64) (*entities.TiffinOrder, error)
	Delete(ctx context.Context, id uint64, actorID uint64) error
	List(ctx context.Context, filter entities.TiffinFilter) ([]entities.TiffinOrder, error)
	Find(ctx context.Context, id uint64) (*entities.TiffinOrder, error)
}

// TiffinService ведёт тиффин-заказы. Уведомлений в шину они не порождают.
type TiffinService struct {
	tiffinRepo repositories.TiffinRepositoryInterface
	audit      AuditLoggerInterface
	logger     *zap.Logger
	mu         sync.Mutex
	now        func() time.Time
}

func NewTiffinService(tiffinRepo repositories.TiffinRepositoryInterface, audit AuditLoggerInterface, logger *zap.Logger) *TiffinService {
	return &TiffinService{
		tiffinRepo: tiffinRepo,
		audit:      audit,
		logger:     logger,
		now:        time.Now,
	}
}

func parseOrderDate(v string) (time.Time, error) {
	date, err := time.Parse(entities.DateLayout, strings.TrimSpace(v))
	if err != nil {
		return time.Time{}, apperrors.NewValidationError("order_date", "ожидается дата в формате YYYY-MM-DD, получено %q", v)
	}
	return date, nil
}

func normalizeQuantity(q int) int {
	if q < 1 {
		return 1
	}
	return q
}

func tiffinSnapshot(t *entities.TiffinOrder) map[string]interface{} {
	return map[string]interface{}{
		"patientName": t.PatientName,
		"ward":        t.Ward,
		"foodType":    t.FoodType,
		"quantity":    t.Quantity,
		"orderDate":   t.OrderDateString(),
		"status":      t.Status,
	}
}

func (s *TiffinService) Create(ctx context.Context, payload dto.CreateTiffinOrderDTO, actorID uint64) (*entities.TiffinOrder, error) {
	date, err := parseOrderDate(payload.OrderDate)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now().UTC()
	order := &entities.TiffinOrder{
		PatientName: strings.TrimSpace(payload.PatientName),
		Ward:        strings.TrimSpace(payload.Ward),
		FoodType:    strings.TrimSpace(payload.FoodType),
		Quantity:    normalizeQuantity(payload.Quantity),
		OrderDate:   date,
		Status:      entities.TiffinStatusPending,
		Notes:       payload.Notes,
		CreatedBy:   actorRef(actorID),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	id, err := s.tiffinRepo.Create(ctx, order)
	if err != nil {
		s.logger.Error("Не удалось создать тиффин-заказ", zap.Error(err))
		return nil, err
	}
	order.ID = id

	recordAudit(ctx, s.audit, s.logger, entities.AuditEntityTiffin, id, "created", tiffinSnapshot(order), actorID)
	return s.tiffinRepo.FindByID(ctx, id)
}

// Update заменяет все поля, включая статус. Пустой статус означает pending.
func (s *TiffinService) Update(ctx context.Context, id uint64, payload dto.UpdateTiffinOrderDTO, actorID uint64) (*entities.TiffinOrder, error) {
	date, err := parseOrderDate(payload.OrderDate)
	if err != nil {
		return nil, err
	}
	status := entities.TiffinStatusPending
	if payload.Status != "" {
		parsed, ok := entities.ParseTiffinStatus(payload.Status)
		if !ok {
			return nil, apperrors.NewValidationError("status", "недопустимый статус тиффин-заказа %q", payload.Status)
		}
		status = parsed
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	order := &entities.TiffinOrder{
		ID:          id,
		PatientName: strings.TrimSpace(payload.PatientName),
		Ward:        strings.TrimSpace(payload.Ward),
		FoodType:    strings.TrimSpace(payload.FoodType),
		Quantity:    normalizeQuantity(payload.Quantity),
		OrderDate:   date,
		Status:      status,
		Notes:       payload.Notes,
		UpdatedAt:   s.now().UTC(),
	}
	if err := s.tiffinRepo.Update(ctx, order); err != nil {
		return nil, err
	}

	recordAudit(ctx, s.audit, s.logger, entities.AuditEntityTiffin, id, "updated", tiffinSnapshot(order), actorID)
	return s.tiffinRepo.FindByID(ctx, id)
}

func (s *TiffinService) UpdateStatus(ctx context.Context, id uint64, status string, actorID uint64) (*entities.TiffinOrder, error) {
	next, ok := entities.ParseTiffinStatus(status)
	if !ok {
		return nil, apperrors.NewValidationError("status", "недопустимый статус тиффин-заказа %q", status)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.tiffinRepo.UpdateStatus(ctx, &entities.TiffinOrder{ID: id, Status: next, UpdatedAt: s.now().UTC()}); err != nil {
		return nil, err
	}

	recordAudit(ctx, s.audit, s.logger, entities.AuditEntityTiffin, id, "status_changed",
		map[string]interface{}{"status": next}, actorID)
	return s.tiffinRepo.FindByID(ctx, id)
}

func (s *TiffinService) Delete(ctx context.Context, id uint64, actorID uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.tiffinRepo.Delete(ctx, id); err != nil {
		return err
	}

	recordAudit(ctx, s.audit, s.logger, entities.AuditEntityTiffin, id, "deleted", nil, actorID)
	s.logger.Info("Тиффин-заказ удалён", zap.Uint64("tiffinID", id))
	return nil
}

func (s *TiffinService) List(ctx context.Context, filter entities.TiffinFilter) ([]entities.TiffinOrder, error) {
	if filter.OrderDate != "" {
		if _, err := parseOrderDate(filter.OrderDate); err != nil {
			return nil, err
		}
	}
	if filter.Status != "" {
		if _, ok := entities.ParseTiffinStatus(filter.Status); !ok {
			return nil, apperrors.NewValidationError("status", "недопустимый статус тиффин-заказа %q", filter.Status)
		}
	}
	return s.tiffinRepo.List(ctx, filter)
}

func (s *TiffinService) Find(ctx context.Context, id uint64) (*entities.TiffinOrder, error) {
	return s.tiffinRepo.FindByID(ctx, id)
}
