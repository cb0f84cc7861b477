package model

import (
	"time"

	"github.com/google/uuid"
)

// Patient is the clinic-side record for a portal account. Exactly one
// patient row exists per login account; the portal never mutates it.
type Patient struct {
	ID        uuid.UUID `db:"id" json:"patient_id"`
	UserID    uuid.UUID `db:"user_id" json:"user_id"`
	Name      string    `db:"name" json:"name"`
	Email     string    `db:"email" json:"email"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}
