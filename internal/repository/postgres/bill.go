package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jwalitptl/patient-portal/internal/model"
)

func (r *billRepository) ListForPatient(ctx context.Context, patientID uuid.UUID) ([]*model.Bill, error) {
	query := `
		SELECT id, patient_id, amount_cents, status, description, bill_date
		FROM bills
		WHERE patient_id = $1
		ORDER BY bill_date DESC
	`
	bills := []*model.Bill{}
	err := r.db.SelectContext(ctx, &bills, query, patientID)
	if err != nil {
		return nil, fmt.Errorf("failed to list bills: %w", err)
	}
	return bills, nil
}
