package model

import (
	"github.com/google/uuid"
)

// Department is static reference data used to populate booking choices.
type Department struct {
	ID   uuid.UUID `db:"id" json:"department_id"`
	Name string    `db:"name" json:"name"`
}

// Doctor belongs to exactly one department. Membership is immutable
// reference data from the portal's perspective.
type Doctor struct {
	ID             uuid.UUID `db:"id" json:"doctor_id"`
	Name           string    `db:"name" json:"name"`
	Specialization string    `db:"specialization" json:"specialization"`
	DepartmentID   uuid.UUID `db:"department_id" json:"department_id"`
}

// DoctorOption is the wire shape of the doctor-picker endpoint.
type DoctorOption struct {
	DoctorID       uuid.UUID `db:"id" json:"doctor_id"`
	Name           string    `db:"name" json:"name"`
	Specialization string    `db:"specialization" json:"specialization"`
}
