package appointment

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jwalitptl/patient-portal/internal/model"
	"github.com/jwalitptl/patient-portal/internal/repository"
	apperrors "github.com/jwalitptl/patient-portal/pkg/errors"
)

// Accepted booking date layouts. The form submits the browser's
// datetime-local format; API clients tend to send RFC 3339.
var dateLayouts = []string{
	"2006-01-02T15:04",
	"2006-01-02T15:04:05",
	time.RFC3339,
}

const msgMissingFields = "please fill in all required fields"

type Service struct {
	repo repository.AppointmentRepository
}

func NewService(repo repository.AppointmentRepository) *Service {
	return &Service{repo: repo}
}

// Create books a new appointment in state Pending. There is no idempotency
// guard: a double form-submit books twice, a documented limitation carried
// over from the original portal.
func (s *Service) Create(ctx context.Context, patientID uuid.UUID, req *model.CreateAppointmentRequest) (*model.Appointment, error) {
	if patientID == uuid.Nil {
		return nil, apperrors.Validation(msgMissingFields)
	}

	reason := strings.TrimSpace(req.Reason)
	if req.DoctorID == "" || req.AppointmentDate == "" || reason == "" {
		return nil, apperrors.Validation(msgMissingFields)
	}

	doctorID, err := uuid.Parse(req.DoctorID)
	if err != nil {
		return nil, apperrors.Validation("invalid doctor selection")
	}

	date, err := parseAppointmentDate(req.AppointmentDate)
	if err != nil {
		return nil, apperrors.Validation("invalid appointment date")
	}

	apt := &model.Appointment{
		PatientID:       patientID,
		DoctorID:        doctorID,
		AppointmentDate: date,
		Reason:          reason,
		Status:          model.AppointmentStatusPending,
	}

	if err := s.repo.Create(ctx, apt); err != nil {
		return nil, apperrors.System("failed to book appointment, please try again", err)
	}
	return apt, nil
}

// ListForPatient returns the caller's appointments joined with doctor and
// department reference data, most recent appointment date first.
func (s *Service) ListForPatient(ctx context.Context, patientID uuid.UUID) ([]*model.AppointmentDetail, error) {
	appointments, err := s.repo.ListForPatient(ctx, patientID)
	if err != nil {
		return nil, apperrors.System("error fetching appointments", err)
	}
	return appointments, nil
}

// Cancel transitions the appointment to Cancelled. The repository performs
// ownership, status and update in one conditional statement, so of any
// number of concurrent cancel attempts exactly one wins; the rest, along
// with cancels of missing, foreign, Completed or already-Cancelled
// appointments, get InvalidTransition and nothing is mutated.
func (s *Service) Cancel(ctx context.Context, patientID, appointmentID uuid.UUID) error {
	cancelled, err := s.repo.CancelOwned(ctx, patientID, appointmentID)
	if err != nil {
		return apperrors.System("error cancelling appointment", err)
	}
	if !cancelled {
		return apperrors.InvalidTransition("invalid appointment or cannot be cancelled")
	}
	return nil
}

func parseAppointmentDate(value string) (time.Time, error) {
	var lastErr error
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, value)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}
