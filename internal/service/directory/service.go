package directory

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/jwalitptl/patient-portal/internal/model"
	"github.com/jwalitptl/patient-portal/internal/repository"
	apperrors "github.com/jwalitptl/patient-portal/pkg/errors"
	"github.com/jwalitptl/patient-portal/pkg/logger"
)

// Service serves the department/doctor reference data that populates the
// booking form. Doctor lists are cached in Redis because the department
// picker re-fetches them on every selection change; cache faults fall
// through to the database, never to the caller.
type Service struct {
	repo     repository.DirectoryRepository
	redis    *redis.Client
	cacheTTL time.Duration
	log      *logger.Logger
}

func NewService(repo repository.DirectoryRepository, redisClient *redis.Client, cacheTTL time.Duration, log *logger.Logger) *Service {
	return &Service{
		repo:     repo,
		redis:    redisClient,
		cacheTTL: cacheTTL,
		log:      log,
	}
}

func (s *Service) ListDepartments(ctx context.Context) ([]*model.Department, error) {
	departments, err := s.repo.ListDepartments(ctx)
	if err != nil {
		return nil, apperrors.System("error loading departments", err)
	}
	return departments, nil
}

// ListDoctorsByDepartment returns the doctors of one department, name
// ascending. An empty or unparsable department id yields an empty list,
// not an error; that is the contract behind the doctor-picker endpoint.
func (s *Service) ListDoctorsByDepartment(ctx context.Context, departmentID string) ([]*model.Doctor, error) {
	id, err := uuid.Parse(departmentID)
	if err != nil {
		return []*model.Doctor{}, nil
	}

	if doctors, ok := s.cachedDoctors(ctx, id); ok {
		return doctors, nil
	}

	doctors, err := s.repo.ListDoctorsByDepartment(ctx, id)
	if err != nil {
		return nil, apperrors.System("error loading doctors", err)
	}

	s.cacheDoctors(ctx, id, doctors)
	return doctors, nil
}

func doctorCacheKey(departmentID uuid.UUID) string {
	return fmt.Sprintf("directory:doctors:%s", departmentID)
}

func (s *Service) cachedDoctors(ctx context.Context, departmentID uuid.UUID) ([]*model.Doctor, bool) {
	if s.redis == nil {
		return nil, false
	}

	payload, err := s.redis.Get(ctx, doctorCacheKey(departmentID)).Bytes()
	if err != nil {
		if err != redis.Nil {
			s.log.Warn(err, "doctor cache read failed")
		}
		return nil, false
	}

	var doctors []*model.Doctor
	if err := json.Unmarshal(payload, &doctors); err != nil {
		s.log.Warn(err, "doctor cache payload corrupt")
		return nil, false
	}
	return doctors, true
}

func (s *Service) cacheDoctors(ctx context.Context, departmentID uuid.UUID, doctors []*model.Doctor) {
	if s.redis == nil {
		return
	}

	payload, err := json.Marshal(doctors)
	if err != nil {
		s.log.Warn(err, "failed to marshal doctors for cache")
		return
	}
	if err := s.redis.Set(ctx, doctorCacheKey(departmentID), payload, s.cacheTTL).Err(); err != nil {
		s.log.Warn(err, "doctor cache write failed")
	}
}
