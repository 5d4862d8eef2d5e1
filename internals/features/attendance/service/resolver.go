package service

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"kampusku_backend/internals/databases/gateway"
	attendanceModel "kampusku_backend/internals/features/attendance/model"
)

// SemesterStrategy satu cara menurunkan semester untuk sesi baru.
// Resolve mengembalikan nil tanpa error bila strategi tidak punya jawaban,
// sehingga rantai lanjut ke strategi berikutnya.
type SemesterStrategy interface {
	Name() string
	Resolve(ctx context.Context, courseID uuid.UUID) (*uuid.UUID, error)
}

// enrollmentSemesterStrategy: pakai semester dari enrollment terbaru course.
type enrollmentSemesterStrategy struct {
	enrollments EnrollmentStore
}

func (s *enrollmentSemesterStrategy) Name() string { return "enrollment" }

func (s *enrollmentSemesterStrategy) Resolve(ctx context.Context, courseID uuid.UUID) (*uuid.UUID, error) {
	return s.enrollments.SemesterForCourse(ctx, courseID)
}

// activeSemesterStrategy: fallback ke semester yang is_active.
type activeSemesterStrategy struct {
	semesters SemesterStore
}

func (s *activeSemesterStrategy) Name() string { return "active-semester" }

func (s *activeSemesterStrategy) Resolve(ctx context.Context, courseID uuid.UUID) (*uuid.UUID, error) {
	sem, err := s.semesters.GetActive(ctx)
	if err != nil {
		return nil, err
	}
	if sem == nil {
		return nil, nil
	}
	return &sem.ID, nil
}

// SessionResolver mencari-atau-membuat sesi kehadiran untuk
// (course_id, session_date). Urutan strategi menentukan prioritas
// sumber semester.
type SessionResolver struct {
	sessions   SessionStore
	strategies []SemesterStrategy
}

func NewSessionResolver(sessions SessionStore, enrollments EnrollmentStore, semesters SemesterStore) *SessionResolver {
	return &SessionResolver{
		sessions: sessions,
		strategies: []SemesterStrategy{
			&enrollmentSemesterStrategy{enrollments: enrollments},
			&activeSemesterStrategy{semesters: semesters},
		},
	}
}

// NewSessionResolverWithStrategies untuk rantai strategi kustom (dipakai test).
func NewSessionResolverWithStrategies(sessions SessionStore, strategies ...SemesterStrategy) *SessionResolver {
	return &SessionResolver{sessions: sessions, strategies: strategies}
}

// Resolve mengembalikan sesi yang sudah ada untuk tanggal tsb, atau
// membuatnya dengan semester hasil rantai strategi. Pada race insert
// (unique violation), sesi yang menang dibaca ulang dan dikembalikan —
// tidak pernah error duplikat ke caller.
func (r *SessionResolver) Resolve(ctx context.Context, courseID uuid.UUID, date time.Time) (*attendanceModel.ClassSessionModel, error) {
	existing, err := r.lookupExisting(ctx, courseID, date)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	semesterID, err := r.deriveSemester(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if semesterID == nil {
		return nil, ErrNoSemesterAvailable
	}
	return r.findOrCreate(ctx, courseID, date, *semesterID)
}

// ResolveWithSemester seperti Resolve tapi semester sudah diketahui
// (mis. dari enrollment student saat self-marking), tanpa rantai strategi.
func (r *SessionResolver) ResolveWithSemester(ctx context.Context, courseID uuid.UUID, date time.Time, semesterID uuid.UUID) (*attendanceModel.ClassSessionModel, error) {
	existing, err := r.lookupExisting(ctx, courseID, date)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}
	return r.findOrCreate(ctx, courseID, date, semesterID)
}

// lookupExisting mencari sesi yang sudah ada. Error lookup yang BUKAN
// pelanggaran policy dicatat lalu diperlakukan sebagai tidak-ketemu,
// jadi alur tetap lanjut ke pembuatan sesi; unique index pada
// (course_id, session_date) menjamin duplikat tertangkap saat insert.
func (r *SessionResolver) lookupExisting(ctx context.Context, courseID uuid.UUID, date time.Time) (*attendanceModel.ClassSessionModel, error) {
	existing, err := r.sessions.FindByCourseDate(ctx, courseID, date)
	if err != nil {
		if se := gateway.AsStoreError(err); se != nil && se.PolicyViolation() {
			return nil, err
		}
		log.Printf("[attendance] lookup sesi gagal course=%s date=%s err=%v, lanjut ke pembuatan sesi",
			courseID, date.Format("2006-01-02"), err)
		return nil, nil
	}
	return existing, nil
}

func (r *SessionResolver) findOrCreate(ctx context.Context, courseID uuid.UUID, date time.Time, semesterID uuid.UUID) (*attendanceModel.ClassSessionModel, error) {
	session := &attendanceModel.ClassSessionModel{
		CourseID:    courseID,
		SemesterID:  semesterID,
		SessionDate: datatypes.Date(date),
	}
	if err := r.sessions.Insert(ctx, session); err != nil {
		if se := gateway.AsStoreError(err); se != nil && se.UniqueViolation() {
			// Konkuren: pembuat lain menang. Pakai sesinya.
			winner, findErr := r.sessions.FindByCourseDate(ctx, courseID, date)
			if findErr == nil && winner != nil {
				return winner, nil
			}
		}
		return nil, &SessionCreateError{
			CourseID:    courseID.String(),
			SessionDate: date.Format("2006-01-02"),
			Err:         err,
		}
	}
	return session, nil
}

// deriveSemester menjalankan rantai strategi berurutan. Error strategi
// yang BUKAN pelanggaran policy dicatat lalu dianggap tidak-ketemu
// supaya strategi berikutnya tetap dicoba; pelanggaran policy diteruskan.
func (r *SessionResolver) deriveSemester(ctx context.Context, courseID uuid.UUID) (*uuid.UUID, error) {
	for _, strategy := range r.strategies {
		id, err := strategy.Resolve(ctx, courseID)
		if err != nil {
			if se := gateway.AsStoreError(err); se != nil && se.PolicyViolation() {
				return nil, err
			}
			log.Printf("[attendance] strategy=%s gagal course=%s err=%v, lanjut ke strategi berikutnya",
				strategy.Name(), courseID, err)
			continue
		}
		if id != nil {
			log.Printf("[attendance] semester resolved via strategy=%s course=%s", strategy.Name(), courseID)
			return id, nil
		}
	}
	return nil, nil
}
