package model

import (
	"time"

	"github.com/google/uuid"
)

type AppointmentStatus string

const (
	AppointmentStatusPending   AppointmentStatus = "Pending"
	AppointmentStatusConfirmed AppointmentStatus = "Confirmed"
	AppointmentStatusCompleted AppointmentStatus = "Completed"
	AppointmentStatusCancelled AppointmentStatus = "Cancelled"
)

// Cancellable reports whether a patient may still cancel from this status.
// Confirmed→Completed and Pending→Confirmed transitions belong to clinical
// staff and never pass through the portal.
func (s AppointmentStatus) Cancellable() bool {
	return s == AppointmentStatusPending || s == AppointmentStatusConfirmed
}

type Appointment struct {
	ID              uuid.UUID         `db:"id" json:"appointment_id"`
	PatientID       uuid.UUID         `db:"patient_id" json:"patient_id"`
	DoctorID        uuid.UUID         `db:"doctor_id" json:"doctor_id"`
	AppointmentDate time.Time         `db:"appointment_date" json:"appointment_date"`
	Reason          string            `db:"reason" json:"reason"`
	Status          AppointmentStatus `db:"status" json:"status"`
	CreatedAt       time.Time         `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time         `db:"updated_at" json:"updated_at"`
}

// AppointmentDetail is an appointment row joined with the doctor and
// department reference data for the patient's appointment list.
type AppointmentDetail struct {
	Appointment
	DoctorName     string `db:"doctor_name" json:"doctor_name"`
	Specialization string `db:"specialization" json:"specialization"`
	DepartmentName string `db:"department_name" json:"department_name"`
}

// CreateAppointmentRequest is the booking form payload. The date arrives
// as the browser's datetime-local string; the service parses it.
type CreateAppointmentRequest struct {
	DoctorID        string `json:"doctor_id" binding:"required"`
	AppointmentDate string `json:"appointment_date" binding:"required"`
	Reason          string `json:"reason" binding:"required"`
}
