package billing

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/patient-portal/internal/model"
	apperrors "github.com/jwalitptl/patient-portal/pkg/errors"
)

type fakeBillRepo struct {
	bills []*model.Bill
	err   error
}

func (f *fakeBillRepo) ListForPatient(ctx context.Context, patientID uuid.UUID) ([]*model.Bill, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.bills, nil
}

func bill(amountCents int64, status model.BillStatus) *model.Bill {
	return &model.Bill{
		ID:          uuid.New(),
		AmountCents: amountCents,
		Status:      status,
		BillDate:    time.Now(),
	}
}

func TestSummaryNoBills(t *testing.T) {
	svc := NewService(&fakeBillRepo{bills: []*model.Bill{}})

	summary, err := svc.Summary(context.Background(), uuid.New())
	require.NoError(t, err)

	assert.Empty(t, summary.Bills)
	assert.Zero(t, summary.TotalCents)
	assert.Zero(t, summary.PaidCents)
	assert.Zero(t, summary.PendingCents)
}

func TestSummaryPaidPendingPartition(t *testing.T) {
	svc := NewService(&fakeBillRepo{bills: []*model.Bill{
		bill(10000, model.BillStatusPaid),
		bill(5000, model.BillStatusPending),
	}})

	summary, err := svc.Summary(context.Background(), uuid.New())
	require.NoError(t, err)

	assert.Equal(t, int64(15000), summary.TotalCents)
	assert.Equal(t, int64(10000), summary.PaidCents)
	assert.Equal(t, int64(5000), summary.PendingCents)
	assert.Len(t, summary.Bills, 2)
}

func TestSummaryNonPaidStatusesCountAsPending(t *testing.T) {
	// anything that is not Paid lands in the pending bucket
	svc := NewService(&fakeBillRepo{bills: []*model.Bill{
		bill(2500, model.BillStatusPaid),
		bill(1200, model.BillStatusPending),
		bill(800, model.BillStatus("Overdue")),
		bill(99, model.BillStatus("Disputed")),
	}})

	summary, err := svc.Summary(context.Background(), uuid.New())
	require.NoError(t, err)

	assert.Equal(t, int64(2500), summary.PaidCents)
	assert.Equal(t, int64(2099), summary.PendingCents)
	assert.Equal(t, summary.TotalCents, summary.PaidCents+summary.PendingCents)
}

func TestSummaryInvariantHolds(t *testing.T) {
	amounts := []int64{1, 33, 1999, 100000, 7}
	statuses := []model.BillStatus{
		model.BillStatusPaid,
		model.BillStatusPending,
		model.BillStatusPaid,
		model.BillStatus("Overdue"),
		model.BillStatusPending,
	}

	bills := make([]*model.Bill, len(amounts))
	for i := range amounts {
		bills[i] = bill(amounts[i], statuses[i])
	}
	svc := NewService(&fakeBillRepo{bills: bills})

	summary, err := svc.Summary(context.Background(), uuid.New())
	require.NoError(t, err)

	assert.Equal(t, summary.TotalCents, summary.PaidCents+summary.PendingCents)
	assert.GreaterOrEqual(t, summary.PaidCents, int64(0))
	assert.GreaterOrEqual(t, summary.PendingCents, int64(0))
}

func TestSummaryStorageFault(t *testing.T) {
	svc := NewService(&fakeBillRepo{err: assert.AnError})

	_, err := svc.Summary(context.Background(), uuid.New())
	assert.True(t, apperrors.IsCode(err, apperrors.ErrSystem))
}
