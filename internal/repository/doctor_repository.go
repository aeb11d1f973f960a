package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/clinic-directory/internal/domain"
)

// DoctorRepository defines persistence access for doctor extensions.
type DoctorRepository interface {
	Create(ctx context.Context, doctor *domain.Doctor) error
	Update(ctx context.Context, doctor *domain.Doctor) error
	GetByID(ctx context.Context, id string) (*domain.Doctor, error)
	GetByAccountID(ctx context.Context, accountID string) (*domain.Doctor, error)
	GetByLicense(ctx context.Context, licenseNumber string) (*domain.Doctor, error)
	ListBySpecialty(ctx context.Context, specialtyID string) ([]*domain.Doctor, error)
}

type doctorRepository struct {
	pool *pgxpool.Pool
}

// NewDoctorRepository returns a Postgres-backed implementation.
func NewDoctorRepository(pool *pgxpool.Pool) DoctorRepository {
	return &doctorRepository{pool: pool}
}

const doctorColumns = "id, account_id, specialty_id, license_number, consultation_fee"

func (r *doctorRepository) Create(ctx context.Context, doctor *domain.Doctor) error {
	const query = `
        INSERT INTO doctors (id, account_id, specialty_id, license_number, consultation_fee)
        VALUES ($1, $2, $3, $4, $5)`

	_, err := r.pool.Exec(ctx, query,
		doctor.ID,
		doctor.AccountID,
		doctor.SpecialtyID,
		doctor.LicenseNumber,
		doctor.ConsultationFee,
	)
	return translateError(err)
}

func (r *doctorRepository) Update(ctx context.Context, doctor *domain.Doctor) error {
	const query = `
        UPDATE doctors
        SET specialty_id=$1, license_number=$2, consultation_fee=$3
        WHERE id=$4`

	cmd, err := r.pool.Exec(ctx, query,
		doctor.SpecialtyID,
		doctor.LicenseNumber,
		doctor.ConsultationFee,
		doctor.ID,
	)
	if err != nil {
		return translateError(err)
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *doctorRepository) GetByID(ctx context.Context, id string) (*domain.Doctor, error) {
	return r.getOne(ctx, "SELECT "+doctorColumns+" FROM doctors WHERE id=$1", id)
}

func (r *doctorRepository) GetByAccountID(ctx context.Context, accountID string) (*domain.Doctor, error) {
	return r.getOne(ctx, "SELECT "+doctorColumns+" FROM doctors WHERE account_id=$1", accountID)
}

func (r *doctorRepository) GetByLicense(ctx context.Context, licenseNumber string) (*domain.Doctor, error) {
	return r.getOne(ctx, "SELECT "+doctorColumns+" FROM doctors WHERE license_number=$1", licenseNumber)
}

func (r *doctorRepository) ListBySpecialty(ctx context.Context, specialtyID string) ([]*domain.Doctor, error) {
	rows, err := r.pool.Query(ctx, "SELECT "+doctorColumns+" FROM doctors WHERE specialty_id=$1", specialtyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var doctors []*domain.Doctor
	for rows.Next() {
		var doctor domain.Doctor
		if err := rows.Scan(
			&doctor.ID,
			&doctor.AccountID,
			&doctor.SpecialtyID,
			&doctor.LicenseNumber,
			&doctor.ConsultationFee,
		); err != nil {
			return nil, err
		}
		doctors = append(doctors, &doctor)
	}
	return doctors, rows.Err()
}

func (r *doctorRepository) getOne(ctx context.Context, query string, arg any) (*domain.Doctor, error) {
	var doctor domain.Doctor
	if err := r.pool.QueryRow(ctx, query, arg).Scan(
		&doctor.ID,
		&doctor.AccountID,
		&doctor.SpecialtyID,
		&doctor.LicenseNumber,
		&doctor.ConsultationFee,
	); err != nil {
		return nil, err
	}
	return &doctor, nil
}
