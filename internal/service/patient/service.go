package patient

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"

	"github.com/jwalitptl/patient-portal/internal/model"
	"github.com/jwalitptl/patient-portal/internal/repository"
	apperrors "github.com/jwalitptl/patient-portal/pkg/errors"
)

const (
	resolveCacheTTL     = 5 * time.Minute
	resolveCacheCleanup = 15 * time.Minute
)

// Service maps an authenticated account to its patient record. Every
// portal operation requires this resolution to have succeeded first.
type Service struct {
	repo  repository.PatientRepository
	cache *cache.Cache
}

func NewService(repo repository.PatientRepository) *Service {
	return &Service{
		repo:  repo,
		cache: cache.New(resolveCacheTTL, resolveCacheCleanup),
	}
}

// Resolve returns the patient record linked to the account. The mapping
// is immutable for the life of a login session, so cache hits are safe.
func (s *Service) Resolve(ctx context.Context, userID uuid.UUID) (*model.Patient, error) {
	if v, ok := s.cache.Get(userID.String()); ok {
		return v.(*model.Patient), nil
	}

	patient, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("patient", err)
		}
		return nil, apperrors.System("system error occurred", err)
	}

	s.cache.Set(userID.String(), patient, cache.DefaultExpiration)
	return patient, nil
}
