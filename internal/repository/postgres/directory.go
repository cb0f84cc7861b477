package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jwalitptl/patient-portal/internal/model"
)

func (r *directoryRepository) ListDepartments(ctx context.Context) ([]*model.Department, error) {
	// lower(name) first so ordering is case-insensitive, plain name second
	// to keep it stable for equal names.
	query := `
		SELECT id, name
		FROM departments
		ORDER BY lower(name) ASC, name ASC
	`
	departments := []*model.Department{}
	err := r.db.SelectContext(ctx, &departments, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list departments: %w", err)
	}
	return departments, nil
}

func (r *directoryRepository) ListDoctorsByDepartment(ctx context.Context, departmentID uuid.UUID) ([]*model.Doctor, error) {
	query := `
		SELECT id, name, specialization, department_id
		FROM doctors
		WHERE department_id = $1
		ORDER BY name ASC
	`
	doctors := []*model.Doctor{}
	err := r.db.SelectContext(ctx, &doctors, query, departmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list doctors: %w", err)
	}
	return doctors, nil
}
