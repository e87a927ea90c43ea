package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"hospital-meals/internal/dto"
	"hospital-meals/internal/entities"
	"hospital-meals/internal/repositories"

	"github.com/aarondl/null/v8"
	"go.uber.org/zap"
)

type PatientServiceInterface interface {
	List(ctx context.Context) ([]entities.Patient, error)
	Find(ctx context.Context, id uint64) (*entities.Patient, error)
	Create(ctx context.Context, payload dto.CreatePatientDTO, actorID uint64) (*entities.Patient, error)
	Update(ctx context.Context, id uint64, payload dto.UpdatePatientDTO, actorID uint64) (*entities.Patient, error)
	Delete(ctx context.Context, id uint64, actorID uint64) error
}

type PatientService struct {
	patientRepo repositories.PatientRepositoryInterface
	audit       AuditLoggerInterface
	logger      *zap.Logger
	now         func() time.Time
}

func NewPatientService(patientRepo repositories.PatientRepositoryInterface, audit AuditLoggerInterface, logger *zap.Logger) *PatientService {
	return &PatientService{patientRepo: patientRepo, audit: audit, logger: logger, now: time.Now}
}

func (s *PatientService) List(ctx context.Context) ([]entities.Patient, error) {
	return s.patientRepo.List(ctx)
}

func (s *PatientService) Find(ctx context.Context, id uint64) (*entities.Patient, error) {
	return s.patientRepo.FindByID(ctx, id)
}

// Create генерирует MRN вида MRN-<unix millis>, если он не передан.
func (s *PatientService) Create(ctx context.Context, payload dto.CreatePatientDTO, actorID uint64) (*entities.Patient, error) {
	mrn := strings.TrimSpace(payload.MRN)
	if mrn == "" {
		mrn = fmt.Sprintf("MRN-%d", s.now().UnixMilli())
	}

	patient := &entities.Patient{
		MRN:                 mrn,
		FullName:            strings.TrimSpace(payload.FullName),
		Ward:                strings.TrimSpace(payload.Ward),
		Bed:                 payload.Bed,
		RoomNumber:          payload.RoomNumber,
		DietaryRestrictions: payload.DietaryRestrictions,
		Allergies:           payload.Allergies,
	}

	id, err := s.patientRepo.Create(ctx, patient)
	if err != nil {
		s.logger.Warn("Не удалось добавить пациента", zap.String("mrn", mrn), zap.Error(err))
		return nil, err
	}
	patient.ID = id

	recordAudit(ctx, s.audit, s.logger, entities.AuditEntityPatient, id, "created",
		map[string]interface{}{"fullName": patient.FullName, "ward": patient.Ward}, actorID)
	return patient, nil
}

func applyString(dst *string, v null.String) {
	if v.Valid {
		*dst = strings.TrimSpace(v.String)
	}
}

// Update меняет только переданные поля.
func (s *PatientService) Update(ctx context.Context, id uint64, payload dto.UpdatePatientDTO, actorID uint64) (*entities.Patient, error) {
	patient, err := s.patientRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	applyString(&patient.FullName, payload.FullName)
	applyString(&patient.Ward, payload.Ward)
	applyString(&patient.Bed, payload.Bed)
	applyString(&patient.RoomNumber, payload.RoomNumber)
	applyString(&patient.DietaryRestrictions, payload.DietaryRestrictions)
	applyString(&patient.Allergies, payload.Allergies)

	if err := s.patientRepo.Update(ctx, patient); err != nil {
		return nil, err
	}

	recordAudit(ctx, s.audit, s.logger, entities.AuditEntityPatient, id, "updated",
		map[string]interface{}{"fullName": patient.FullName, "ward": patient.Ward}, actorID)
	return patient, nil
}

func (s *PatientService) Delete(ctx context.Context, id uint64, actorID uint64) error {
	if err := s.patientRepo.Delete(ctx, id); err != nil {
		return err
	}
	recordAudit(ctx, s.audit, s.logger, entities.AuditEntityPatient, id, "deleted", nil, actorID)
	return nil
}
