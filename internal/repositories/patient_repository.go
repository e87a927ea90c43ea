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

const patientTable = "patients"

var patientColumns = []string{"id", "mrn", "full_name", "ward", "bed", "room_number", "dietary_restrictions", "allergies"}

type PatientRepositoryInterface interface {
	List(ctx context.Context) ([]entities.Patient, error)
	FindByID(ctx context.Context, id uint64) (*entities.Patient, error)
	Create(ctx context.Context, patient *entities.Patient) (uint64, error)
	Update(ctx context.Context, patient *entities.Patient) error
	Delete(ctx context.Context, id uint64) error
}

type PatientRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewPatientRepository(storage *pgxpool.Pool, logger *zap.Logger) PatientRepositoryInterface {
	return &PatientRepository{storage: storage, logger: logger}
}

func scanPatient(row pgx.Row) (*entities.Patient, error) {
	var p entities.Patient
	if err := row.Scan(&p.ID, &p.MRN, &p.FullName, &p.Ward, &p.Bed, &p.RoomNumber, &p.DietaryRestrictions, &p.Allergies); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PatientRepository) List(ctx context.Context) ([]entities.Patient, error) {
	query, args, err := psql.Select(patientColumns...).From(patientTable).OrderBy("full_name", "id").ToSql()
	if err != nil {
		return nil, fmt.Errorf("ошибка сборки запроса пациентов: %w", err)
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения пациентов: %w", err)
	}
	defer rows.Close()

	patients := make([]entities.Patient, 0)
	for rows.Next() {
		p, err := scanPatient(rows)
		if err != nil {
			return nil, fmt.Errorf("ошибка чтения пациента: %w", err)
		}
		patients = append(patients, *p)
	}
	return patients, rows.Err()
}

func (r *PatientRepository) FindByID(ctx context.Context, id uint64) (*entities.Patient, error) {
	query, args, err := psql.Select(patientColumns...).From(patientTable).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("ошибка сборки запроса пациента: %w", err)
	}
	p, err := scanPatient(r.storage.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError(entities.AuditEntityPatient, id)
		}
		return nil, fmt.Errorf("ошибка получения пациента %d: %w", id, err)
	}
	return p, nil
}

// Create возвращает ErrConflict, если MRN уже занят.
func (r *PatientRepository) Create(ctx context.Context, patient *entities.Patient) (uint64, error) {
	query, args, err := psql.Insert(patientTable).
		Columns("mrn", "full_name", "ward", "bed", "room_number", "dietary_restrictions", "allergies").
		Values(patient.MRN, patient.FullName, patient.Ward, patient.Bed, patient.RoomNumber, patient.DietaryRestrictions, patient.Allergies).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("ошибка сборки запроса создания пациента: %w", err)
	}

	var id uint64
	if err := r.storage.QueryRow(ctx, query, args...).Scan(&id); err != nil {
		return 0, mapWriteError("создание пациента", err)
	}
	return id, nil
}

func (r *PatientRepository) Update(ctx context.Context, patient *entities.Patient) error {
	query, args, err := psql.Update(patientTable).
		SetMap(map[string]interface{}{
			"mrn":                  patient.MRN,
			"full_name":            patient.FullName,
			"ward":                 patient.Ward,
			"bed":                  patient.Bed,
			"room_number":          patient.RoomNumber,
			"dietary_restrictions": patient.DietaryRestrictions,
			"allergies":            patient.Allergies,
		}).
		Where(sq.Eq{"id": patient.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("ошибка сборки запроса обновления пациента: %w", err)
	}

	tag, err := r.storage.Exec(ctx, query, args...)
	if err != nil {
		return mapWriteError("обновление пациента", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError(entities.AuditEntityPatient, patient.ID)
	}
	return nil
}

// Delete не удаляет пациента, у которого есть заказы: вернётся ErrConflict.
func (r *PatientRepository) Delete(ctx context.Context, id uint64) error {
	query, args, err := psql.Delete(patientTable).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("ошибка сборки запроса удаления пациента: %w", err)
	}

	tag, err := r.storage.Exec(ctx, query, args...)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("у пациента %d есть заказы: %w", id, apperrors.ErrConflict)
		}
		return fmt.Errorf("удаление пациента: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError(entities.AuditEntityPatient, id)
	}
	return nil
}
