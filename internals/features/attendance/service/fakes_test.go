package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"kampusku_backend/internals/databases/gateway"
	attendanceModel "kampusku_backend/internals/features/attendance/model"
)

// In-memory fakes implementing the store interfaces. Each fake can be
// primed with rows and with forced errors to exercise failure paths.

type fakeSessionStore struct {
	sessions  []attendanceModel.ClassSessionModel
	insertErr error
	findErr   error
	// failInsertOnce simulates losing an insert race: the first Insert
	// returns a unique violation and plants the winning row.
	failInsertOnce *attendanceModel.ClassSessionModel
}

func (f *fakeSessionStore) FindByCourseDate(_ context.Context, courseID uuid.UUID, date time.Time) (*attendanceModel.ClassSessionModel, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	want := time.Time(datatypes.Date(date)).Format("2006-01-02")
	for i := range f.sessions {
		s := f.sessions[i]
		if s.CourseID == courseID && time.Time(s.SessionDate).Format("2006-01-02") == want {
			return &s, nil
		}
	}
	return nil, nil
}

func (f *fakeSessionStore) Insert(_ context.Context, session *attendanceModel.ClassSessionModel) error {
	if f.failInsertOnce != nil {
		winner := *f.failInsertOnce
		f.failInsertOnce = nil
		f.sessions = append(f.sessions, winner)
		return &gateway.StoreError{Label: "class_sessions:insert", Code: gateway.CodeUniqueViolation}
	}
	if f.insertErr != nil {
		return f.insertErr
	}
	if session.ID == uuid.Nil {
		session.ID = uuid.New()
	}
	f.sessions = append(f.sessions, *session)
	return nil
}

type fakeEnrollmentStore struct {
	roster          []EnrolledStudent
	rosterErr       error
	studentSemester map[uuid.UUID]uuid.UUID // keyed by student_id
	courseSemester  *uuid.UUID
	semesterErr     error
}

func (f *fakeEnrollmentStore) ListByCourse(_ context.Context, _ uuid.UUID) ([]EnrolledStudent, error) {
	if f.rosterErr != nil {
		return nil, f.rosterErr
	}
	return f.roster, nil
}

func (f *fakeEnrollmentStore) SemesterForStudent(_ context.Context, studentID, _ uuid.UUID) (*uuid.UUID, error) {
	if f.semesterErr != nil {
		return nil, f.semesterErr
	}
	if id, ok := f.studentSemester[studentID]; ok {
		return &id, nil
	}
	return nil, nil
}

func (f *fakeEnrollmentStore) SemesterForCourse(_ context.Context, _ uuid.UUID) (*uuid.UUID, error) {
	if f.semesterErr != nil {
		return nil, f.semesterErr
	}
	return f.courseSemester, nil
}

type fakeSemesterStore struct {
	active *SemesterRef
	err    error
}

func (f *fakeSemesterStore) GetActive(_ context.Context) (*SemesterRef, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.active, nil
}

type fakeAttendanceStore struct {
	records   []attendanceModel.AttendanceModel
	insertErr error
	upserted  [][]attendanceModel.AttendanceModel
}

func (f *fakeAttendanceStore) ListBySession(_ context.Context, sessionID uuid.UUID) ([]attendanceModel.AttendanceModel, error) {
	var out []attendanceModel.AttendanceModel
	for _, r := range f.records {
		if r.SessionID == sessionID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeAttendanceStore) FindBySessionStudent(_ context.Context, sessionID, studentID uuid.UUID) (*attendanceModel.AttendanceModel, error) {
	for i := range f.records {
		r := f.records[i]
		if r.SessionID == sessionID && r.StudentID == studentID {
			return &r, nil
		}
	}
	return nil, nil
}

func (f *fakeAttendanceStore) Insert(_ context.Context, record *attendanceModel.AttendanceModel) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	for _, r := range f.records {
		if r.SessionID == record.SessionID && r.StudentID == record.StudentID {
			return &gateway.StoreError{Label: "attendance:insert", Code: gateway.CodeUniqueViolation}
		}
	}
	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
	f.records = append(f.records, *record)
	return nil
}

func (f *fakeAttendanceStore) UpsertBatch(_ context.Context, records []attendanceModel.AttendanceModel) error {
	f.upserted = append(f.upserted, records)
	for _, rec := range records {
		replaced := false
		for i := range f.records {
			if f.records[i].SessionID == rec.SessionID && f.records[i].StudentID == rec.StudentID {
				f.records[i].Status = rec.Status
				f.records[i].MarkedAt = rec.MarkedAt
				replaced = true
				break
			}
		}
		if !replaced {
			if rec.ID == uuid.Nil {
				rec.ID = uuid.New()
			}
			f.records = append(f.records, rec)
		}
	}
	return nil
}

type fakeProfileStore struct {
	names map[uuid.UUID]string
	err   error
	calls int
}

func (f *fakeProfileStore) StudentNamesByIDs(_ context.Context, ids []uuid.UUID) (map[uuid.UUID]string, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	out := make(map[uuid.UUID]string)
	for _, id := range ids {
		if n, ok := f.names[id]; ok {
			out[id] = n
		}
	}
	return out, nil
}

// newServiceWithFakes wires a full AttendanceService over fakes.
func newServiceWithFakes(sessions *fakeSessionStore, enrollments *fakeEnrollmentStore, semesters *fakeSemesterStore, attendance *fakeAttendanceStore, profiles *fakeProfileStore) *AttendanceService {
	resolver := NewSessionResolver(sessions, enrollments, semesters)
	return NewAttendanceService(resolver, enrollments, attendance, profiles)
}
