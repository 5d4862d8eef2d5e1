package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"kampusku_backend/internals/databases/gateway"
	attendanceModel "kampusku_backend/internals/features/attendance/model"
)

func TestResolveReturnsExistingSession(t *testing.T) {
	courseID := uuid.New()
	date := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	existing := attendanceModel.ClassSessionModel{
		ID:          uuid.New(),
		CourseID:    courseID,
		SemesterID:  uuid.New(),
		SessionDate: datatypes.Date(date),
	}
	sessions := &fakeSessionStore{sessions: []attendanceModel.ClassSessionModel{existing}}
	resolver := NewSessionResolver(sessions, &fakeEnrollmentStore{}, &fakeSemesterStore{})

	got, err := resolver.Resolve(context.Background(), courseID, date)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, existing.ID, got.ID)
	// No insert happened, the store still holds exactly one session.
	assert.Len(t, sessions.sessions, 1)
}

func TestResolveCreatesSessionFromEnrollmentSemester(t *testing.T) {
	courseID := uuid.New()
	enrollmentSem := uuid.New()
	activeSem := uuid.New()
	sessions := &fakeSessionStore{}
	enrollments := &fakeEnrollmentStore{courseSemester: &enrollmentSem}
	semesters := &fakeSemesterStore{active: &SemesterRef{ID: activeSem, Name: "Genap 2026"}}
	resolver := NewSessionResolver(sessions, enrollments, semesters)

	got, err := resolver.Resolve(context.Background(), courseID, time.Now())
	require.NoError(t, err)
	// Enrollment semester wins over the active one.
	assert.Equal(t, enrollmentSem, got.SemesterID)
	assert.Len(t, sessions.sessions, 1)
}

func TestResolveFallsBackToActiveSemester(t *testing.T) {
	courseID := uuid.New()
	activeSem := uuid.New()
	sessions := &fakeSessionStore{}
	enrollments := &fakeEnrollmentStore{} // no enrollments for this course
	semesters := &fakeSemesterStore{active: &SemesterRef{ID: activeSem, Name: "Genap 2026"}}
	resolver := NewSessionResolver(sessions, enrollments, semesters)

	got, err := resolver.Resolve(context.Background(), courseID, time.Now())
	require.NoError(t, err)
	assert.Equal(t, activeSem, got.SemesterID)
}

func TestResolveNoSemesterAvailable(t *testing.T) {
	resolver := NewSessionResolver(&fakeSessionStore{}, &fakeEnrollmentStore{}, &fakeSemesterStore{})

	got, err := resolver.Resolve(context.Background(), uuid.New(), time.Now())
	assert.Nil(t, got)
	assert.ErrorIs(t, err, ErrNoSemesterAvailable)
}

func TestResolveInsertRaceReturnsWinner(t *testing.T) {
	courseID := uuid.New()
	semID := uuid.New()
	date := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	winner := &attendanceModel.ClassSessionModel{
		ID:          uuid.New(),
		CourseID:    courseID,
		SemesterID:  semID,
		SessionDate: datatypes.Date(date),
	}
	sessions := &fakeSessionStore{failInsertOnce: winner}
	enrollments := &fakeEnrollmentStore{courseSemester: &semID}
	resolver := NewSessionResolver(sessions, enrollments, &fakeSemesterStore{})

	got, err := resolver.Resolve(context.Background(), courseID, date)
	require.NoError(t, err)
	assert.Equal(t, winner.ID, got.ID)
}

func TestResolveInsertFailureWrapsContext(t *testing.T) {
	courseID := uuid.New()
	semID := uuid.New()
	boom := errors.New("connection reset")
	sessions := &fakeSessionStore{insertErr: boom}
	enrollments := &fakeEnrollmentStore{courseSemester: &semID}
	resolver := NewSessionResolver(sessions, enrollments, &fakeSemesterStore{})

	_, err := resolver.Resolve(context.Background(), courseID, time.Now())
	require.Error(t, err)
	var sce *SessionCreateError
	require.ErrorAs(t, err, &sce)
	assert.Equal(t, courseID.String(), sce.CourseID)
	assert.ErrorIs(t, err, boom)
}

func TestResolveLookupFailureDegradesToCreation(t *testing.T) {
	semID := uuid.New()
	sessions := &fakeSessionStore{findErr: errors.New("transient network blip")}
	enrollments := &fakeEnrollmentStore{courseSemester: &semID}
	resolver := NewSessionResolver(sessions, enrollments, &fakeSemesterStore{})

	got, err := resolver.Resolve(context.Background(), uuid.New(), time.Now())
	require.NoError(t, err)
	assert.Equal(t, semID, got.SemesterID)
	assert.Len(t, sessions.sessions, 1)
}

func TestResolveLookupPolicyViolationPropagates(t *testing.T) {
	denied := &gateway.StoreError{
		Label:   "class_sessions:findByCourseDate",
		Message: "new row violates row-level security policy",
		Code:    gateway.CodeInsufficientPrivilege,
	}
	semID := uuid.New()
	sessions := &fakeSessionStore{findErr: denied}
	enrollments := &fakeEnrollmentStore{courseSemester: &semID}
	resolver := NewSessionResolver(sessions, enrollments, &fakeSemesterStore{})

	_, err := resolver.Resolve(context.Background(), uuid.New(), time.Now())
	se := gateway.AsStoreError(err)
	require.NotNil(t, se)
	assert.True(t, se.PolicyViolation())
	assert.Empty(t, sessions.sessions)
}

func TestResolveWithSemesterLookupFailureDegradesToCreation(t *testing.T) {
	semID := uuid.New()
	sessions := &fakeSessionStore{findErr: errors.New("transient network blip")}
	resolver := NewSessionResolver(sessions, &fakeEnrollmentStore{}, &fakeSemesterStore{})

	got, err := resolver.ResolveWithSemester(context.Background(), uuid.New(), time.Now(), semID)
	require.NoError(t, err)
	assert.Equal(t, semID, got.SemesterID)
}

func TestResolveStrategyFailureDegradesToNextStrategy(t *testing.T) {
	activeSem := uuid.New()
	enrollments := &fakeEnrollmentStore{semesterErr: errors.New("semester lookup failed")}
	resolver := NewSessionResolver(&fakeSessionStore{}, enrollments, &fakeSemesterStore{active: &SemesterRef{ID: activeSem}})

	got, err := resolver.Resolve(context.Background(), uuid.New(), time.Now())
	require.NoError(t, err)
	assert.Equal(t, activeSem, got.SemesterID)
}

func TestResolvePolicyViolationPropagates(t *testing.T) {
	denied := &gateway.StoreError{
		Label:   "enrollments:semesterForCourse",
		Message: "permission denied for table enrollments",
		Code:    gateway.CodeInsufficientPrivilege,
	}
	enrollments := &fakeEnrollmentStore{semesterErr: denied}
	resolver := NewSessionResolver(&fakeSessionStore{}, enrollments, &fakeSemesterStore{active: &SemesterRef{ID: uuid.New()}})

	_, err := resolver.Resolve(context.Background(), uuid.New(), time.Now())
	se := gateway.AsStoreError(err)
	require.NotNil(t, se)
	assert.True(t, se.PolicyViolation())
}

func TestResolveWithSemesterSkipsStrategies(t *testing.T) {
	courseID := uuid.New()
	semID := uuid.New()
	sessions := &fakeSessionStore{}
	// Strategies would all fail; the caller-supplied semester must win.
	resolver := NewSessionResolver(sessions, &fakeEnrollmentStore{}, &fakeSemesterStore{})

	got, err := resolver.ResolveWithSemester(context.Background(), courseID, time.Now(), semID)
	require.NoError(t, err)
	assert.Equal(t, semID, got.SemesterID)
}
