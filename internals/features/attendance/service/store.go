package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"kampusku_backend/internals/databases/gateway"
	attendanceModel "kampusku_backend/internals/features/attendance/model"
)

// EnrolledStudent satu baris roster mentah dari enrollment, nama bisa
// kosong kalau join profil tidak mengembalikan apa-apa (lihat backfill).
type EnrolledStudent struct {
	StudentID uuid.UUID
	FullName  string
}

// SemesterRef hanya id + nama, cukup untuk resolusi sesi.
type SemesterRef struct {
	ID   uuid.UUID
	Name string
}

// Store interface tipis di atas tabel; implementasi GORM di bawah,
// test memakai fake in-memory.
type SessionStore interface {
	FindByCourseDate(ctx context.Context, courseID uuid.UUID, date time.Time) (*attendanceModel.ClassSessionModel, error)
	Insert(ctx context.Context, session *attendanceModel.ClassSessionModel) error
}

type EnrollmentStore interface {
	ListByCourse(ctx context.Context, courseID uuid.UUID) ([]EnrolledStudent, error)
	SemesterForStudent(ctx context.Context, studentID, courseID uuid.UUID) (*uuid.UUID, error)
	SemesterForCourse(ctx context.Context, courseID uuid.UUID) (*uuid.UUID, error)
}

type SemesterStore interface {
	GetActive(ctx context.Context) (*SemesterRef, error)
}

type AttendanceStore interface {
	ListBySession(ctx context.Context, sessionID uuid.UUID) ([]attendanceModel.AttendanceModel, error)
	FindBySessionStudent(ctx context.Context, sessionID, studentID uuid.UUID) (*attendanceModel.AttendanceModel, error)
	Insert(ctx context.Context, record *attendanceModel.AttendanceModel) error
	UpsertBatch(ctx context.Context, records []attendanceModel.AttendanceModel) error
}

type ProfileStore interface {
	StudentNamesByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]string, error)
}

// ---- Implementasi GORM ----

type gormSessionStore struct{ db *gorm.DB }

func NewSessionStore(db *gorm.DB) SessionStore { return &gormSessionStore{db: db} }

func (s *gormSessionStore) FindByCourseDate(ctx context.Context, courseID uuid.UUID, date time.Time) (*attendanceModel.ClassSessionModel, error) {
	var session attendanceModel.ClassSessionModel
	err := gateway.Execute("class_sessions:findByCourseDate", map[string]any{
		"course_id":    courseID,
		"session_date": date.Format("2006-01-02"),
	}, func() error {
		return s.db.WithContext(ctx).
			Where("course_id = ? AND session_date = ?", courseID, datatypes.Date(date)).
			First(&session).Error
	})
	if err != nil {
		if gateway.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return &session, nil
}

func (s *gormSessionStore) Insert(ctx context.Context, session *attendanceModel.ClassSessionModel) error {
	return gateway.Execute("class_sessions:insert", map[string]any{
		"course_id":   session.CourseID,
		"semester_id": session.SemesterID,
	}, func() error {
		return s.db.WithContext(ctx).Create(session).Error
	})
}

type gormEnrollmentStore struct{ db *gorm.DB }

func NewEnrollmentStore(db *gorm.DB) EnrollmentStore { return &gormEnrollmentStore{db: db} }

func (s *gormEnrollmentStore) ListByCourse(ctx context.Context, courseID uuid.UUID) ([]EnrolledStudent, error) {
	var rows []struct {
		StudentID uuid.UUID
		FullName  *string
	}
	err := gateway.Execute("enrollments:rosterByCourse", map[string]any{"course_id": courseID}, func() error {
		return s.db.WithContext(ctx).
			Table("enrollments").
			Select("enrollments.student_id, profiles.full_name").
			Joins("LEFT JOIN profiles ON profiles.id = enrollments.student_id").
			Where("enrollments.course_id = ?", courseID).
			Scan(&rows).Error
	})
	if err != nil {
		return nil, err
	}
	out := make([]EnrolledStudent, 0, len(rows))
	for _, r := range rows {
		name := ""
		if r.FullName != nil {
			name = *r.FullName
		}
		out = append(out, EnrolledStudent{StudentID: r.StudentID, FullName: name})
	}
	return out, nil
}

func (s *gormEnrollmentStore) SemesterForStudent(ctx context.Context, studentID, courseID uuid.UUID) (*uuid.UUID, error) {
	var row struct{ SemesterID uuid.UUID }
	err := gateway.Execute("enrollments:semesterForStudent", map[string]any{
		"student_id": studentID,
		"course_id":  courseID,
	}, func() error {
		return s.db.WithContext(ctx).
			Table("enrollments").
			Select("semester_id").
			Where("student_id = ? AND course_id = ?", studentID, courseID).
			Order("created_at DESC").
			Limit(1).
			Take(&row).Error
	})
	if err != nil {
		if gateway.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return &row.SemesterID, nil
}

func (s *gormEnrollmentStore) SemesterForCourse(ctx context.Context, courseID uuid.UUID) (*uuid.UUID, error) {
	var row struct{ SemesterID uuid.UUID }
	err := gateway.Execute("enrollments:semesterForCourse", map[string]any{"course_id": courseID}, func() error {
		return s.db.WithContext(ctx).
			Table("enrollments").
			Select("semester_id").
			Where("course_id = ?", courseID).
			Order("created_at DESC").
			Limit(1).
			Take(&row).Error
	})
	if err != nil {
		if gateway.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return &row.SemesterID, nil
}

type gormSemesterStore struct{ db *gorm.DB }

func NewSemesterStore(db *gorm.DB) SemesterStore { return &gormSemesterStore{db: db} }

func (s *gormSemesterStore) GetActive(ctx context.Context) (*SemesterRef, error) {
	var row struct {
		ID   uuid.UUID
		Name string
	}
	err := gateway.Execute("semesters:getActive", nil, func() error {
		return s.db.WithContext(ctx).
			Table("semesters").
			Select("id, name").
			Where("is_active = ?", true).
			Order("start_date DESC").
			Limit(1).
			Take(&row).Error
	})
	if err != nil {
		if gateway.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return &SemesterRef{ID: row.ID, Name: row.Name}, nil
}

type gormAttendanceStore struct{ db *gorm.DB }

func NewAttendanceStore(db *gorm.DB) AttendanceStore { return &gormAttendanceStore{db: db} }

func (s *gormAttendanceStore) ListBySession(ctx context.Context, sessionID uuid.UUID) ([]attendanceModel.AttendanceModel, error) {
	var records []attendanceModel.AttendanceModel
	err := gateway.Execute("attendance:listBySession", map[string]any{"session_id": sessionID}, func() error {
		return s.db.WithContext(ctx).
			Where("session_id = ?", sessionID).
			Find(&records).Error
	})
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (s *gormAttendanceStore) FindBySessionStudent(ctx context.Context, sessionID, studentID uuid.UUID) (*attendanceModel.AttendanceModel, error) {
	var record attendanceModel.AttendanceModel
	err := gateway.Execute("attendance:findBySessionStudent", map[string]any{
		"session_id": sessionID,
		"student_id": studentID,
	}, func() error {
		return s.db.WithContext(ctx).
			Where("session_id = ? AND student_id = ?", sessionID, studentID).
			First(&record).Error
	})
	if err != nil {
		if gateway.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return &record, nil
}

func (s *gormAttendanceStore) Insert(ctx context.Context, record *attendanceModel.AttendanceModel) error {
	return gateway.Execute("attendance:insert", map[string]any{
		"session_id": record.SessionID,
		"student_id": record.StudentID,
	}, func() error {
		return s.db.WithContext(ctx).Create(record).Error
	})
}

// UpsertBatch menulis seluruh roster sekali jalan; konflik pada
// (session_id, student_id) memperbarui status dan marked_at.
func (s *gormAttendanceStore) UpsertBatch(ctx context.Context, records []attendanceModel.AttendanceModel) error {
	return gateway.Execute("attendance:upsertBatch", map[string]any{"count": len(records)}, func() error {
		return s.db.WithContext(ctx).
			Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "session_id"}, {Name: "student_id"}},
				DoUpdates: clause.AssignmentColumns([]string{"status", "marked_at"}),
			}).
			Create(&records).Error
	})
}

type gormProfileStore struct{ db *gorm.DB }

func NewProfileStore(db *gorm.DB) ProfileStore { return &gormProfileStore{db: db} }

// StudentNamesByIDs mengambil nama profil student secara batch, satu
// query untuk semua id yang belum punya nama di roster.
func (s *gormProfileStore) StudentNamesByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]string, error) {
	if len(ids) == 0 {
		return map[uuid.UUID]string{}, nil
	}
	var rows []struct {
		ID       uuid.UUID
		FullName string
	}
	err := gateway.Execute("profiles:studentNamesByIDs", map[string]any{"count": len(ids)}, func() error {
		return s.db.WithContext(ctx).
			Table("profiles").
			Select("id, full_name").
			Where("id IN ? AND role = ?", ids, "student").
			Scan(&rows).Error
	})
	if err != nil {
		return nil, err
	}
	out := make(map[uuid.UUID]string, len(rows))
	for _, r := range rows {
		out[r.ID] = r.FullName
	}
	return out, nil
}
