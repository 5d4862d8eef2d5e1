package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	attendanceModel "kampusku_backend/internals/features/attendance/model"
)

func TestLoadRosterDefaultsToAbsentAndSortsByName(t *testing.T) {
	courseID := uuid.New()
	semID := uuid.New()
	budi := uuid.New()
	ani := uuid.New()
	citra := uuid.New()

	enrollments := &fakeEnrollmentStore{
		roster: []EnrolledStudent{
			{StudentID: budi, FullName: "Budi"},
			{StudentID: citra, FullName: "citra"},
			{StudentID: ani, FullName: "Ani"},
		},
		courseSemester: &semID,
	}
	svc := newServiceWithFakes(&fakeSessionStore{}, enrollments, &fakeSemesterStore{}, &fakeAttendanceStore{}, &fakeProfileStore{})

	roster, err := svc.LoadRoster(context.Background(), courseID, time.Now())
	require.NoError(t, err)
	require.Len(t, roster.Entries, 3)
	// Case-insensitive name order: Ani, Budi, citra.
	assert.Equal(t, []uuid.UUID{ani, budi, citra}, []uuid.UUID{
		roster.Entries[0].StudentID,
		roster.Entries[1].StudentID,
		roster.Entries[2].StudentID,
	})
	for _, e := range roster.Entries {
		assert.Equal(t, "absent", e.Status)
	}
}

func TestLoadRosterMergesExistingRecords(t *testing.T) {
	courseID := uuid.New()
	semID := uuid.New()
	present := uuid.New()
	late := uuid.New()
	unmarked := uuid.New()
	sessionID := uuid.New()

	sessions := &fakeSessionStore{}
	// Pre-create today's session so records can point at it.
	require.NoError(t, sessions.Insert(context.Background(), &attendanceModel.ClassSessionModel{
		ID:          sessionID,
		CourseID:    courseID,
		SessionDate: datatypes.Date(time.Now()),
	}))

	enrollments := &fakeEnrollmentStore{
		roster: []EnrolledStudent{
			{StudentID: present, FullName: "Putri"},
			{StudentID: late, FullName: "Lukman"},
			{StudentID: unmarked, FullName: "Zain"},
		},
		courseSemester: &semID,
	}
	attendance := &fakeAttendanceStore{records: []attendanceModel.AttendanceModel{
		{ID: uuid.New(), SessionID: sessionID, StudentID: present, Status: "present"},
		{ID: uuid.New(), SessionID: sessionID, StudentID: late, Status: "late"},
	}}
	svc := newServiceWithFakes(sessions, enrollments, &fakeSemesterStore{}, attendance, &fakeProfileStore{})

	roster, err := svc.LoadRoster(context.Background(), courseID, time.Now())
	require.NoError(t, err)

	byID := map[uuid.UUID]string{}
	for _, e := range roster.Entries {
		byID[e.StudentID] = e.Status
	}
	assert.Equal(t, "present", byID[present])
	assert.Equal(t, "late", byID[late])
	assert.Equal(t, "absent", byID[unmarked])
}

func TestLoadRosterDeduplicatesEnrollments(t *testing.T) {
	courseID := uuid.New()
	semID := uuid.New()
	dup := uuid.New()

	enrollments := &fakeEnrollmentStore{
		roster: []EnrolledStudent{
			{StudentID: dup, FullName: "Rina"},
			{StudentID: dup, FullName: "Rina"},
		},
		courseSemester: &semID,
	}
	svc := newServiceWithFakes(&fakeSessionStore{}, enrollments, &fakeSemesterStore{}, &fakeAttendanceStore{}, &fakeProfileStore{})

	roster, err := svc.LoadRoster(context.Background(), courseID, time.Now())
	require.NoError(t, err)
	assert.Len(t, roster.Entries, 1)
}

func TestLoadRosterBackfillsMissingNamesInOneBatch(t *testing.T) {
	courseID := uuid.New()
	semID := uuid.New()
	known := uuid.New()
	anon1 := uuid.New()
	anon2 := uuid.New()

	enrollments := &fakeEnrollmentStore{
		roster: []EnrolledStudent{
			{StudentID: known, FullName: "Dewi"},
			{StudentID: anon1, FullName: ""},
			{StudentID: anon2, FullName: "  "},
		},
		courseSemester: &semID,
	}
	profiles := &fakeProfileStore{names: map[uuid.UUID]string{anon1: "Agus"}}
	svc := newServiceWithFakes(&fakeSessionStore{}, enrollments, &fakeSemesterStore{}, &fakeAttendanceStore{}, profiles)

	roster, err := svc.LoadRoster(context.Background(), courseID, time.Now())
	require.NoError(t, err)
	require.Len(t, roster.Entries, 3)
	assert.Equal(t, 1, profiles.calls, "backfill harus satu query batch")

	byID := map[uuid.UUID]string{}
	for _, e := range roster.Entries {
		byID[e.StudentID] = e.StudentName
	}
	assert.Equal(t, "Agus", byID[anon1])
	assert.Equal(t, "(tanpa nama)", byID[anon2])
}

func TestLoadRosterEmptyCourse(t *testing.T) {
	semID := uuid.New()
	enrollments := &fakeEnrollmentStore{courseSemester: &semID}
	profiles := &fakeProfileStore{}
	svc := newServiceWithFakes(&fakeSessionStore{}, enrollments, &fakeSemesterStore{}, &fakeAttendanceStore{}, profiles)

	roster, err := svc.LoadRoster(context.Background(), uuid.New(), time.Now())
	require.NoError(t, err)
	assert.Empty(t, roster.Entries)
	assert.Zero(t, profiles.calls)
}

func TestLoadRosterEnrollmentFailure(t *testing.T) {
	semID := uuid.New()
	enrollments := &fakeEnrollmentStore{courseSemester: &semID, rosterErr: assert.AnError}
	svc := newServiceWithFakes(&fakeSessionStore{}, enrollments, &fakeSemesterStore{}, &fakeAttendanceStore{}, &fakeProfileStore{})

	_, err := svc.LoadRoster(context.Background(), uuid.New(), time.Now())
	assert.ErrorIs(t, err, ErrRosterUnavailable)
}

func TestSaveAttendanceSkipsEmptyStatuses(t *testing.T) {
	sessionID := uuid.New()
	kept := uuid.New()
	attendance := &fakeAttendanceStore{}
	svc := newServiceWithFakes(&fakeSessionStore{}, &fakeEnrollmentStore{}, &fakeSemesterStore{}, attendance, &fakeProfileStore{})

	n, err := svc.SaveAttendance(context.Background(), sessionID, []StatusInput{
		{StudentID: kept, Status: "present"},
		{StudentID: uuid.New(), Status: ""},
		{StudentID: uuid.New(), Status: "   "},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	require.Len(t, attendance.upserted, 1)
	require.Len(t, attendance.upserted[0], 1)
	assert.Equal(t, kept, attendance.upserted[0][0].StudentID)
}

func TestSaveAttendanceAllEmpty(t *testing.T) {
	attendance := &fakeAttendanceStore{}
	svc := newServiceWithFakes(&fakeSessionStore{}, &fakeEnrollmentStore{}, &fakeSemesterStore{}, attendance, &fakeProfileStore{})

	_, err := svc.SaveAttendance(context.Background(), uuid.New(), []StatusInput{
		{StudentID: uuid.New(), Status: ""},
	})
	assert.ErrorIs(t, err, ErrNoRecordsToSave)
	assert.Empty(t, attendance.upserted)
}

func TestSaveAttendanceRejectsUnknownStatus(t *testing.T) {
	svc := newServiceWithFakes(&fakeSessionStore{}, &fakeEnrollmentStore{}, &fakeSemesterStore{}, &fakeAttendanceStore{}, &fakeProfileStore{})

	_, err := svc.SaveAttendance(context.Background(), uuid.New(), []StatusInput{
		{StudentID: uuid.New(), Status: "hadir-banget"},
	})
	assert.Error(t, err)
}

func TestSaveAttendanceOverwritesPrevious(t *testing.T) {
	sessionID := uuid.New()
	studentID := uuid.New()
	attendance := &fakeAttendanceStore{records: []attendanceModel.AttendanceModel{
		{ID: uuid.New(), SessionID: sessionID, StudentID: studentID, Status: "absent"},
	}}
	svc := newServiceWithFakes(&fakeSessionStore{}, &fakeEnrollmentStore{}, &fakeSemesterStore{}, attendance, &fakeProfileStore{})

	n, err := svc.SaveAttendance(context.Background(), sessionID, []StatusInput{
		{StudentID: studentID, Status: "PRESENT"},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	require.Len(t, attendance.records, 1)
	assert.Equal(t, "present", attendance.records[0].Status)
}
