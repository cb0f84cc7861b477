package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/jwalitptl/patient-portal/internal/model"
)

// All repository interfaces in one file
type (
	// PatientRepository resolves the patient row behind a login account.
	PatientRepository interface {
		GetByUserID(ctx context.Context, userID uuid.UUID) (*model.Patient, error)
	}

	// DirectoryRepository serves the department/doctor reference data.
	DirectoryRepository interface {
		ListDepartments(ctx context.Context) ([]*model.Department, error)
		ListDoctorsByDepartment(ctx context.Context, departmentID uuid.UUID) ([]*model.Doctor, error)
	}

	AppointmentRepository interface {
		Create(ctx context.Context, appointment *model.Appointment) error
		ListForPatient(ctx context.Context, patientID uuid.UUID) ([]*model.AppointmentDetail, error)
		// CancelOwned atomically moves the appointment to Cancelled iff it
		// belongs to the patient and is still Pending or Confirmed. Returns
		// false when no row matched, with nothing mutated.
		CancelOwned(ctx context.Context, patientID, appointmentID uuid.UUID) (bool, error)
	}

	BillRepository interface {
		ListForPatient(ctx context.Context, patientID uuid.UUID) ([]*model.Bill, error)
	}
)
