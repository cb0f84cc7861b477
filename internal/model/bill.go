package model

import (
	"time"

	"github.com/google/uuid"
)

type BillStatus string

const (
	BillStatusPaid    BillStatus = "Paid"
	BillStatusPending BillStatus = "Pending"
)

// Bill is read-only from the portal's perspective. Amounts are integer
// cents so summary totals never accumulate float rounding drift.
type Bill struct {
	ID          uuid.UUID  `db:"id" json:"bill_id"`
	PatientID   uuid.UUID  `db:"patient_id" json:"patient_id"`
	AmountCents int64      `db:"amount_cents" json:"amount_cents"`
	Status      BillStatus `db:"status" json:"status"`
	Description string     `db:"description" json:"description"`
	BillDate    time.Time  `db:"bill_date" json:"bill_date"`
}

// BillingSummary is the derived, non-persisted aggregate of a patient's
// bills. Invariant: TotalCents == PaidCents + PendingCents.
type BillingSummary struct {
	Bills        []*Bill `json:"bills"`
	TotalCents   int64   `json:"total_cents"`
	PaidCents    int64   `json:"paid_cents"`
	PendingCents int64   `json:"pending_cents"`
}
