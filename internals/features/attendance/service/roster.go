package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"kampusku_backend/internals/constants"
	attendanceModel "kampusku_backend/internals/features/attendance/model"
)

// RosterEntry satu baris yang dilihat faculty: student + status saat ini.
type RosterEntry struct {
	StudentID   uuid.UUID `json:"student_id"`
	StudentName string    `json:"student_name"`
	Status      string    `json:"status"`
}

// Roster hasil resolusi sesi + merge kehadiran.
type Roster struct {
	Session *attendanceModel.ClassSessionModel `json:"session"`
	Entries []RosterEntry                      `json:"entries"`
}

// AttendanceService alur inti kehadiran: load roster, simpan massal,
// dan self-marking student.
type AttendanceService struct {
	Resolver    *SessionResolver
	Enrollments EnrollmentStore
	Attendance  AttendanceStore
	Profiles    ProfileStore
}

func NewAttendanceService(resolver *SessionResolver, enrollments EnrollmentStore, attendance AttendanceStore, profiles ProfileStore) *AttendanceService {
	return &AttendanceService{
		Resolver:    resolver,
		Enrollments: enrollments,
		Attendance:  attendance,
		Profiles:    profiles,
	}
}

// LoadRoster menyelesaikan sesi untuk (course, tanggal) lalu menggabungkan
// roster enrollment dengan record kehadiran yang sudah ada. Student tanpa
// record mendapat status "absent". Duplikat enrollment di-dedupe per
// student, nama kosong di-backfill satu query batch dari profiles.
func (s *AttendanceService) LoadRoster(ctx context.Context, courseID uuid.UUID, date time.Time) (*Roster, error) {
	session, err := s.Resolver.Resolve(ctx, courseID, date)
	if err != nil {
		return nil, err
	}

	enrolled, err := s.Enrollments.ListByCourse(ctx, courseID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRosterUnavailable, err)
	}

	// Dedupe per student_id; baris pertama menang.
	seen := make(map[uuid.UUID]bool, len(enrolled))
	entries := make([]RosterEntry, 0, len(enrolled))
	var missing []uuid.UUID
	for _, e := range enrolled {
		if seen[e.StudentID] {
			continue
		}
		seen[e.StudentID] = true
		name := strings.TrimSpace(e.FullName)
		if name == "" {
			missing = append(missing, e.StudentID)
		}
		entries = append(entries, RosterEntry{
			StudentID:   e.StudentID,
			StudentName: name,
			Status:      "absent",
		})
	}

	if len(missing) > 0 {
		names, err := s.Profiles.StudentNamesByIDs(ctx, missing)
		if err == nil {
			for i := range entries {
				if entries[i].StudentName == "" {
					if n, ok := names[entries[i].StudentID]; ok && n != "" {
						entries[i].StudentName = n
					} else {
						entries[i].StudentName = "(tanpa nama)"
					}
				}
			}
		} else {
			for i := range entries {
				if entries[i].StudentName == "" {
					entries[i].StudentName = "(tanpa nama)"
				}
			}
		}
	}

	records, err := s.Attendance.ListBySession(ctx, session.ID)
	if err != nil {
		return nil, err
	}
	byStudent := make(map[uuid.UUID]string, len(records))
	for _, rec := range records {
		byStudent[rec.StudentID] = rec.Status
	}
	for i := range entries {
		if status, ok := byStudent[entries[i].StudentID]; ok {
			entries[i].Status = status
		}
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return strings.ToLower(entries[i].StudentName) < strings.ToLower(entries[j].StudentName)
	})

	return &Roster{Session: session, Entries: entries}, nil
}

// StatusInput satu baris dari form faculty.
type StatusInput struct {
	StudentID uuid.UUID
	Status    string
}

// SaveAttendance menulis roster satu sesi secara massal. Baris dengan
// status kosong dilewati; kalau semuanya kosong, ErrNoRecordsToSave.
// Status yang tidak dikenal ditolak sebelum menyentuh DB.
func (s *AttendanceService) SaveAttendance(ctx context.Context, sessionID uuid.UUID, inputs []StatusInput) (int, error) {
	now := time.Now()
	records := make([]attendanceModel.AttendanceModel, 0, len(inputs))
	for _, in := range inputs {
		status := strings.ToLower(strings.TrimSpace(in.Status))
		if status == "" {
			continue
		}
		if !constants.IsValidAttendanceStatus(status) {
			return 0, fmt.Errorf("status kehadiran tidak dikenal: %q", in.Status)
		}
		records = append(records, attendanceModel.AttendanceModel{
			SessionID: sessionID,
			StudentID: in.StudentID,
			Status:    status,
			MarkedAt:  now,
		})
	}
	if len(records) == 0 {
		return 0, ErrNoRecordsToSave
	}
	if err := s.Attendance.UpsertBatch(ctx, records); err != nil {
		return 0, err
	}
	return len(records), nil
}
