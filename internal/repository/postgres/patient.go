package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jwalitptl/patient-portal/internal/model"
)

func (r *patientRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*model.Patient, error) {
	query := `
		SELECT id, user_id, name, email, created_at, updated_at
		FROM patients
		WHERE user_id = $1
	`
	var patient model.Patient
	err := r.db.GetContext(ctx, &patient, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get patient by user: %w", err)
	}
	return &patient, nil
}
