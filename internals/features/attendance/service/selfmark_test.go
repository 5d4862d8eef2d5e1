package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	attendanceModel "kampusku_backend/internals/features/attendance/model"
)

func selfMarkFixture() (*AttendanceService, *fakeSessionStore, *fakeAttendanceStore, uuid.UUID, uuid.UUID) {
	studentID := uuid.New()
	courseID := uuid.New()
	semID := uuid.New()
	sessions := &fakeSessionStore{}
	attendance := &fakeAttendanceStore{}
	enrollments := &fakeEnrollmentStore{
		studentSemester: map[uuid.UUID]uuid.UUID{studentID: semID},
		courseSemester:  &semID,
	}
	svc := newServiceWithFakes(sessions, enrollments, &fakeSemesterStore{}, attendance, &fakeProfileStore{})
	return svc, sessions, attendance, studentID, courseID
}

func TestMarkSelfHappyPath(t *testing.T) {
	svc, sessions, attendance, studentID, courseID := selfMarkFixture()

	rec, err := svc.MarkSelf(context.Background(), studentID, courseID, time.Now(), "")
	require.NoError(t, err)
	assert.Equal(t, "present", rec.Status)
	assert.Equal(t, studentID, rec.StudentID)
	// A session was created on the fly for today.
	assert.Len(t, sessions.sessions, 1)
	assert.Len(t, attendance.records, 1)
}

func TestMarkSelfHonorsChosenStatus(t *testing.T) {
	svc, _, attendance, studentID, courseID := selfMarkFixture()

	rec, err := svc.MarkSelf(context.Background(), studentID, courseID, time.Now(), "late")
	require.NoError(t, err)
	assert.Equal(t, "late", rec.Status)
	assert.Equal(t, "late", attendance.records[0].Status)
}

func TestMarkSelfNormalizesStatus(t *testing.T) {
	svc, _, _, studentID, courseID := selfMarkFixture()

	rec, err := svc.MarkSelf(context.Background(), studentID, courseID, time.Now(), " ABSENT ")
	require.NoError(t, err)
	assert.Equal(t, "absent", rec.Status)
}

func TestMarkSelfRejectsUnknownStatus(t *testing.T) {
	svc, _, attendance, studentID, courseID := selfMarkFixture()

	_, err := svc.MarkSelf(context.Background(), studentID, courseID, time.Now(), "izin")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "tidak dikenal")
	assert.Empty(t, attendance.records)
}

func TestMarkSelfRejectsOtherDates(t *testing.T) {
	svc, _, attendance, studentID, courseID := selfMarkFixture()

	_, err := svc.MarkSelf(context.Background(), studentID, courseID, time.Now().AddDate(0, 0, -1), "")
	assert.ErrorIs(t, err, ErrInvalidDate)

	_, err = svc.MarkSelf(context.Background(), studentID, courseID, time.Now().AddDate(0, 0, 1), "")
	assert.ErrorIs(t, err, ErrInvalidDate)
	assert.Empty(t, attendance.records)
}

func TestMarkSelfNotEnrolled(t *testing.T) {
	svc, _, _, _, courseID := selfMarkFixture()

	_, err := svc.MarkSelf(context.Background(), uuid.New(), courseID, time.Now(), "")
	assert.ErrorIs(t, err, ErrNotEnrolled)
}

func TestMarkSelfAlreadyMarked(t *testing.T) {
	svc, _, _, studentID, courseID := selfMarkFixture()

	_, err := svc.MarkSelf(context.Background(), studentID, courseID, time.Now(), "")
	require.NoError(t, err)

	_, err = svc.MarkSelf(context.Background(), studentID, courseID, time.Now(), "")
	assert.ErrorIs(t, err, ErrAlreadyMarked)
}

func TestMarkSelfInsertRaceMapsToAlreadyMarked(t *testing.T) {
	svc, _, attendance, studentID, courseID := selfMarkFixture()

	// First call creates the session; afterwards a direct Insert for the
	// same (session, student) must hit the unique constraint.
	rec, err := svc.MarkSelf(context.Background(), studentID, courseID, time.Now(), "")
	require.NoError(t, err)

	// Simulate the race directly: Insert hits the unique constraint.
	dup := &attendanceModel.AttendanceModel{
		SessionID: rec.SessionID,
		StudentID: studentID,
		Status:    "present",
	}
	err = attendance.Insert(context.Background(), dup)
	require.Error(t, err)

	_, err = svc.MarkSelf(context.Background(), studentID, courseID, time.Now(), "")
	assert.ErrorIs(t, err, ErrAlreadyMarked)
}

func TestMarkSelfReusesExistingSession(t *testing.T) {
	svc, sessions, _, studentID, courseID := selfMarkFixture()

	_, err := svc.MarkSelf(context.Background(), studentID, courseID, time.Now(), "")
	require.NoError(t, err)

	other := uuid.New()
	svc.Enrollments.(*fakeEnrollmentStore).studentSemester[other] = uuid.New()
	_, err = svc.MarkSelf(context.Background(), other, courseID, time.Now(), "")
	require.NoError(t, err)

	// Both marks landed on the same session for today.
	assert.Len(t, sessions.sessions, 1)
}
