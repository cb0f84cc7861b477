package billing

import (
	"context"

	"github.com/google/uuid"

	"github.com/jwalitptl/patient-portal/internal/model"
	"github.com/jwalitptl/patient-portal/internal/repository"
	apperrors "github.com/jwalitptl/patient-portal/pkg/errors"
)

type Service struct {
	repo repository.BillRepository
}

func NewService(repo repository.BillRepository) *Service {
	return &Service{repo: repo}
}

// Summary loads the patient's bills, newest first, and derives the
// total/paid/pending sums. Amounts are integer cents throughout, so the
// invariant total == paid + pending holds exactly. A patient with no
// bills gets an empty list and zero totals, not an error.
func (s *Service) Summary(ctx context.Context, patientID uuid.UUID) (*model.BillingSummary, error) {
	bills, err := s.repo.ListForPatient(ctx, patientID)
	if err != nil {
		return nil, apperrors.System("error fetching bills, please try again later", err)
	}

	summary := &model.BillingSummary{Bills: bills}
	for _, bill := range bills {
		summary.TotalCents += bill.AmountCents
		if bill.Status == model.BillStatusPaid {
			summary.PaidCents += bill.AmountCents
		} else {
			summary.PendingCents += bill.AmountCents
		}
	}
	return summary, nil
}
