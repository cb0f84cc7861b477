package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jwalitptl/patient-portal/internal/model"
)

func (r *appointmentRepository) Create(ctx context.Context, appointment *model.Appointment) error {
	query := `
		INSERT INTO appointments (
			id, patient_id, doctor_id, appointment_date,
			reason, status, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	appointment.ID = uuid.New()
	appointment.CreatedAt = time.Now()
	appointment.UpdatedAt = appointment.CreatedAt

	_, err := r.db.ExecContext(ctx, query,
		appointment.ID,
		appointment.PatientID,
		appointment.DoctorID,
		appointment.AppointmentDate,
		appointment.Reason,
		appointment.Status,
		appointment.CreatedAt,
		appointment.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create appointment: %w", err)
	}
	return nil
}

func (r *appointmentRepository) ListForPatient(ctx context.Context, patientID uuid.UUID) ([]*model.AppointmentDetail, error) {
	query := `
		SELECT a.id, a.patient_id, a.doctor_id, a.appointment_date,
			   a.reason, a.status, a.created_at, a.updated_at,
			   d.name AS doctor_name,
			   d.specialization,
			   dep.name AS department_name
		FROM appointments a
		JOIN doctors d ON a.doctor_id = d.id
		JOIN departments dep ON d.department_id = dep.id
		WHERE a.patient_id = $1
		ORDER BY a.appointment_date DESC
	`
	appointments := []*model.AppointmentDetail{}
	err := r.db.SelectContext(ctx, &appointments, query, patientID)
	if err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}
	return appointments, nil
}

// CancelOwned is a single conditional update so that concurrent cancels, or
// a cancel racing a clinical status change, cannot both win: whichever
// statement matches the row first transitions it, the rest see zero rows.
func (r *appointmentRepository) CancelOwned(ctx context.Context, patientID, appointmentID uuid.UUID) (bool, error) {
	query := `
		UPDATE appointments
		SET status = $1, updated_at = $2
		WHERE id = $3
		  AND patient_id = $4
		  AND status IN ($5, $6)
	`
	result, err := r.db.ExecContext(ctx, query,
		model.AppointmentStatusCancelled,
		time.Now(),
		appointmentID,
		patientID,
		model.AppointmentStatusPending,
		model.AppointmentStatusConfirmed,
	)
	if err != nil {
		return false, fmt.Errorf("failed to cancel appointment: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return rows > 0, nil
}
