package appointment

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/patient-portal/internal/model"
	apperrors "github.com/jwalitptl/patient-portal/pkg/errors"
)

type fakeAppointmentRepo struct {
	mu        sync.Mutex
	created   []*model.Appointment
	createErr error

	owners   map[uuid.UUID]uuid.UUID
	statuses map[uuid.UUID]model.AppointmentStatus

	cancelErr error

	listResult []*model.AppointmentDetail
	listErr    error
	listCalls  int
}

func newFakeAppointmentRepo() *fakeAppointmentRepo {
	return &fakeAppointmentRepo{
		owners:   make(map[uuid.UUID]uuid.UUID),
		statuses: make(map[uuid.UUID]model.AppointmentStatus),
	}
}

func (f *fakeAppointmentRepo) Create(ctx context.Context, apt *model.Appointment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	apt.ID = uuid.New()
	apt.CreatedAt = time.Now()
	apt.UpdatedAt = apt.CreatedAt
	f.created = append(f.created, apt)
	f.owners[apt.ID] = apt.PatientID
	f.statuses[apt.ID] = apt.Status
	return nil
}

func (f *fakeAppointmentRepo) ListForPatient(ctx context.Context, patientID uuid.UUID) ([]*model.AppointmentDetail, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls++
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.listResult, nil
}

func (f *fakeAppointmentRepo) CancelOwned(ctx context.Context, patientID, appointmentID uuid.UUID) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.cancelErr != nil {
		return false, f.cancelErr
	}
	if f.owners[appointmentID] != patientID {
		return false, nil
	}
	if !f.statuses[appointmentID].Cancellable() {
		return false, nil
	}
	f.statuses[appointmentID] = model.AppointmentStatusCancelled
	return true, nil
}

func (f *fakeAppointmentRepo) seed(patientID uuid.UUID, status model.AppointmentStatus) uuid.UUID {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := uuid.New()
	f.owners[id] = patientID
	f.statuses[id] = status
	return id
}

func (f *fakeAppointmentRepo) status(id uuid.UUID) model.AppointmentStatus {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.statuses[id]
}

func validRequest() *model.CreateAppointmentRequest {
	return &model.CreateAppointmentRequest{
		DoctorID:        uuid.New().String(),
		AppointmentDate: "2025-06-01T10:00",
		Reason:          "checkup",
	}
}

func TestCreateAppointment(t *testing.T) {
	repo := newFakeAppointmentRepo()
	svc := NewService(repo)
	patientID := uuid.New()

	req := validRequest()
	apt, err := svc.Create(context.Background(), patientID, req)
	require.NoError(t, err)

	assert.Equal(t, model.AppointmentStatusPending, apt.Status)
	assert.Equal(t, patientID, apt.PatientID)
	assert.Equal(t, req.DoctorID, apt.DoctorID.String())
	assert.Equal(t, "checkup", apt.Reason)
	assert.Equal(t, time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC), apt.AppointmentDate)
	assert.NotEqual(t, uuid.Nil, apt.ID)
	assert.Len(t, repo.created, 1)
}

func TestCreateAppointmentMissingFields(t *testing.T) {
	cases := map[string]*model.CreateAppointmentRequest{
		"no doctor": {AppointmentDate: "2025-06-01T10:00", Reason: "checkup"},
		"no date":   {DoctorID: uuid.New().String(), Reason: "checkup"},
		"no reason": {DoctorID: uuid.New().String(), AppointmentDate: "2025-06-01T10:00"},
		"blank reason": {
			DoctorID:        uuid.New().String(),
			AppointmentDate: "2025-06-01T10:00",
			Reason:          "   ",
		},
	}

	for name, req := range cases {
		t.Run(name, func(t *testing.T) {
			repo := newFakeAppointmentRepo()
			svc := NewService(repo)

			apt, err := svc.Create(context.Background(), uuid.New(), req)
			assert.Nil(t, apt)
			assert.True(t, apperrors.IsCode(err, apperrors.ErrValidation))
			assert.EqualError(t, err, "please fill in all required fields")
			assert.Empty(t, repo.created, "validation failure must not touch storage")
		})
	}
}

func TestCreateAppointmentInvalidDate(t *testing.T) {
	repo := newFakeAppointmentRepo()
	svc := NewService(repo)

	req := validRequest()
	req.AppointmentDate = "next tuesday"

	_, err := svc.Create(context.Background(), uuid.New(), req)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrValidation))
	assert.Empty(t, repo.created)
}

func TestCreateAppointmentDateLayouts(t *testing.T) {
	for _, value := range []string{
		"2025-06-01T10:00",
		"2025-06-01T10:00:00",
		"2025-06-01T10:00:00Z",
	} {
		repo := newFakeAppointmentRepo()
		svc := NewService(repo)

		req := validRequest()
		req.AppointmentDate = value

		apt, err := svc.Create(context.Background(), uuid.New(), req)
		require.NoError(t, err, value)
		assert.Equal(t, 10, apt.AppointmentDate.Hour())
	}
}

func TestCreateAppointmentStorageFault(t *testing.T) {
	repo := newFakeAppointmentRepo()
	repo.createErr = assert.AnError
	svc := NewService(repo)

	_, err := svc.Create(context.Background(), uuid.New(), validRequest())
	assert.True(t, apperrors.IsCode(err, apperrors.ErrSystem))
	// the raw cause stays wrapped, never in the user-facing message
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.NotContains(t, appErr.Message, assert.AnError.Error())
}

func TestCancelAppointment(t *testing.T) {
	repo := newFakeAppointmentRepo()
	svc := NewService(repo)
	patientID := uuid.New()

	for _, status := range []model.AppointmentStatus{
		model.AppointmentStatusPending,
		model.AppointmentStatusConfirmed,
	} {
		id := repo.seed(patientID, status)
		require.NoError(t, svc.Cancel(context.Background(), patientID, id))
		assert.Equal(t, model.AppointmentStatusCancelled, repo.status(id))
	}
}

func TestCancelAppointmentTerminalStates(t *testing.T) {
	repo := newFakeAppointmentRepo()
	svc := NewService(repo)
	patientID := uuid.New()

	for _, status := range []model.AppointmentStatus{
		model.AppointmentStatusCompleted,
		model.AppointmentStatusCancelled,
	} {
		id := repo.seed(patientID, status)
		err := svc.Cancel(context.Background(), patientID, id)
		assert.True(t, apperrors.IsCode(err, apperrors.ErrInvalidTransition))
		assert.Equal(t, status, repo.status(id), "terminal status must not change")
	}
}

func TestCancelAppointmentNotOwned(t *testing.T) {
	repo := newFakeAppointmentRepo()
	svc := NewService(repo)

	id := repo.seed(uuid.New(), model.AppointmentStatusPending)
	err := svc.Cancel(context.Background(), uuid.New(), id)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrInvalidTransition))
	assert.Equal(t, model.AppointmentStatusPending, repo.status(id))
}

func TestCancelAppointmentMissing(t *testing.T) {
	repo := newFakeAppointmentRepo()
	svc := NewService(repo)

	err := svc.Cancel(context.Background(), uuid.New(), uuid.New())
	assert.True(t, apperrors.IsCode(err, apperrors.ErrInvalidTransition))
}

func TestCancelAppointmentConcurrentSingleWinner(t *testing.T) {
	repo := newFakeAppointmentRepo()
	svc := NewService(repo)
	patientID := uuid.New()
	id := repo.seed(patientID, model.AppointmentStatusPending)

	const attempts = 16
	var wg sync.WaitGroup
	errs := make([]error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = svc.Cancel(context.Background(), patientID, id)
		}(i)
	}
	wg.Wait()

	wins := 0
	for _, err := range errs {
		if err == nil {
			wins++
		} else {
			assert.True(t, apperrors.IsCode(err, apperrors.ErrInvalidTransition))
		}
	}
	assert.Equal(t, 1, wins, "exactly one concurrent cancel may succeed")
	assert.Equal(t, model.AppointmentStatusCancelled, repo.status(id))
}

func TestListForPatient(t *testing.T) {
	repo := newFakeAppointmentRepo()
	repo.listResult = []*model.AppointmentDetail{
		{
			Appointment:    model.Appointment{ID: uuid.New(), Status: model.AppointmentStatusPending},
			DoctorName:     "Meredith Grey",
			Specialization: "Cardiology",
			DepartmentName: "Cardiology",
		},
	}
	svc := NewService(repo)

	list, err := svc.ListForPatient(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Len(t, list, 1)
	assert.Equal(t, "Meredith Grey", list[0].DoctorName)
}

func TestListForPatientStorageFault(t *testing.T) {
	repo := newFakeAppointmentRepo()
	repo.listErr = assert.AnError
	svc := NewService(repo)

	_, err := svc.ListForPatient(context.Background(), uuid.New())
	assert.True(t, apperrors.IsCode(err, apperrors.ErrSystem))
}
