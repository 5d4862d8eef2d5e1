package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"kampusku_backend/internals/constants"
	"kampusku_backend/internals/databases/gateway"
	attendanceModel "kampusku_backend/internals/features/attendance/model"
)

// sameDay membandingkan tanggal kalender lokal, bukan instant.
func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// MarkSelf menandai kehadiran oleh student sendiri; status kosong
// berarti "present". Hanya berlaku untuk hari ini, hanya untuk course
// tempat student terdaftar, dan hanya sekali per sesi (race ditangani
// lewat unique violation, bukan retry).
func (s *AttendanceService) MarkSelf(ctx context.Context, studentID, courseID uuid.UUID, date time.Time, status string) (*attendanceModel.AttendanceModel, error) {
	if !sameDay(date, time.Now()) {
		return nil, ErrInvalidDate
	}

	status = strings.ToLower(strings.TrimSpace(status))
	if status == "" {
		status = "present"
	}
	if !constants.IsValidAttendanceStatus(status) {
		return nil, fmt.Errorf("status kehadiran tidak dikenal: %q", status)
	}

	semesterID, err := s.Enrollments.SemesterForStudent(ctx, studentID, courseID)
	if err != nil {
		return nil, err
	}
	if semesterID == nil {
		return nil, ErrNotEnrolled
	}

	session, err := s.Resolver.ResolveWithSemester(ctx, courseID, date, *semesterID)
	if err != nil {
		return nil, err
	}

	existing, err := s.Attendance.FindBySessionStudent(ctx, session.ID, studentID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrAlreadyMarked
	}

	record := &attendanceModel.AttendanceModel{
		SessionID: session.ID,
		StudentID: studentID,
		Status:    status,
		MarkedAt:  time.Now(),
	}
	if err := s.Attendance.Insert(ctx, record); err != nil {
		if se := gateway.AsStoreError(err); se != nil && se.UniqueViolation() {
			// Dua tab / dua klik bersamaan: insert kedua kalah.
			return nil, ErrAlreadyMarked
		}
		return nil, err
	}
	return record, nil
}
