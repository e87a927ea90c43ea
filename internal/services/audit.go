package services

import (
	"context"
	"encoding/json"

	"hospital-meals/internal/entities"
	"hospital-meals/internal/repositories"
	"hospital-meals/pkg/eventbus"

	"github.com/aarondl/null/v8"
	"go.uber.org/zap"
)

// AuditLoggerInterface - журнал изменений. Ошибки записи в журнал
// не прерывают операцию.
type AuditLoggerInterface interface {
	Record(ctx context.Context, entry entities.AuditLog) error
}

// EventPublisher - то, куда движки отправляют уведомления (eventbus.Bus).
type EventPublisher interface {
	Publish(ctx context.Context, event eventbus.Event)
}

type AuditServiceInterface interface {
	List(ctx context.Context, filter entities.AuditFilter) ([]entities.AuditLog, error)
}

type AuditService struct {
	auditRepo repositories.AuditRepositoryInterface
	logger    *zap.Logger
}

func NewAuditService(auditRepo repositories.AuditRepositoryInterface, logger *zap.Logger) AuditServiceInterface {
	return &AuditService{auditRepo: auditRepo, logger: logger}
}

func (s *AuditService) List(ctx context.Context, filter entities.AuditFilter) ([]entities.AuditLog, error) {
	return s.auditRepo.List(ctx, filter)
}

// actorRef - 0 означает, что действие выполнено без пользователя.
func actorRef(id uint64) null.Uint64 {
	if id == 0 {
		return null.Uint64{}
	}
	return null.Uint64From(id)
}

func auditDetails(details interface{}) string {
	if details == nil {
		return ""
	}
	raw, err := json.Marshal(details)
	if err != nil {
		return ""
	}
	return string(raw)
}

// recordAudit пишет в журнал и только логирует ошибку.
func recordAudit(ctx context.Context, audit AuditLoggerInterface, logger *zap.Logger, entity string, entityID uint64, action string, details interface{}, actorID uint64) {
	entry := entities.AuditLog{
		Entity:   entity,
		EntityID: entityID,
		Action:   action,
		Details:  auditDetails(details),
		UserID:   actorRef(actorID),
	}
	if err := audit.Record(ctx, entry); err != nil {
		logger.Warn("Не удалось записать событие в журнал аудита",
			zap.String("entity", entity),
			zap.Uint64("entityID", entityID),
			zap.String("action", action),
			zap.Error(err),
		)
	}
}
