package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"kampusku_backend/internals/databases/gateway"
	gradeModel "kampusku_backend/internals/features/grades/model"
)

var (
	ErrAssignmentNotFound = errors.New("assignment tidak ditemukan")
	ErrNoGradesToSave     = errors.New("tidak ada nilai untuk disimpan")
)

// GradeEntry satu baris lembar penilaian: student + skor saat ini (nil
// kalau belum dinilai).
type GradeEntry struct {
	StudentID   uuid.UUID `json:"student_id"`
	StudentName string    `json:"student_name"`
	Marks       *float64  `json:"marks"`
}

type GradeSheet struct {
	Assignment *gradeModel.AssignmentModel `json:"assignment"`
	Entries    []GradeEntry                `json:"entries"`
}

type GradeService struct {
	DB *gorm.DB
}

func NewGradeService(db *gorm.DB) *GradeService {
	return &GradeService{DB: db}
}

// LoadSheet menggabungkan roster enrollment course milik assignment
// dengan nilai yang sudah ada. Pola sama dengan roster kehadiran:
// default kosong, dedupe per student, urut nama.
func (s *GradeService) LoadSheet(ctx context.Context, assignmentID uuid.UUID) (*GradeSheet, error) {
	var assignment gradeModel.AssignmentModel
	err := gateway.Execute("assignments:getByID", map[string]any{"id": assignmentID}, func() error {
		return s.DB.WithContext(ctx).First(&assignment, "id = ?", assignmentID).Error
	})
	if err != nil {
		if gateway.IsNotFound(err) {
			return nil, ErrAssignmentNotFound
		}
		return nil, err
	}

	var roster []struct {
		StudentID uuid.UUID
		FullName  *string
	}
	err = gateway.Execute("enrollments:gradeRoster", map[string]any{"course_id": assignment.CourseID}, func() error {
		return s.DB.WithContext(ctx).
			Table("enrollments").
			Select("enrollments.student_id, profiles.full_name").
			Joins("LEFT JOIN profiles ON profiles.id = enrollments.student_id").
			Where("enrollments.course_id = ?", assignment.CourseID).
			Scan(&roster).Error
	})
	if err != nil {
		return nil, fmt.Errorf("roster penilaian tidak dapat dimuat: %w", err)
	}

	var grades []gradeModel.GradeModel
	err = gateway.Execute("grades:listByAssignment", map[string]any{"assignment_id": assignmentID}, func() error {
		return s.DB.WithContext(ctx).
			Where("assignment_id = ?", assignmentID).
			Find(&grades).Error
	})
	if err != nil {
		return nil, err
	}
	byStudent := make(map[uuid.UUID]float64, len(grades))
	for _, g := range grades {
		byStudent[g.StudentID] = g.Marks
	}

	seen := make(map[uuid.UUID]bool, len(roster))
	entries := make([]GradeEntry, 0, len(roster))
	for _, r := range roster {
		if seen[r.StudentID] {
			continue
		}
		seen[r.StudentID] = true
		name := "(tanpa nama)"
		if r.FullName != nil && strings.TrimSpace(*r.FullName) != "" {
			name = strings.TrimSpace(*r.FullName)
		}
		entry := GradeEntry{StudentID: r.StudentID, StudentName: name}
		if marks, ok := byStudent[r.StudentID]; ok {
			m := marks
			entry.Marks = &m
		}
		entries = append(entries, entry)
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return strings.ToLower(entries[i].StudentName) < strings.ToLower(entries[j].StudentName)
	})

	return &GradeSheet{Assignment: &assignment, Entries: entries}, nil
}

// MarksInput satu baris dari form penilaian; Marks nil dilewati.
type MarksInput struct {
	StudentID uuid.UUID
	Marks     *float64
}

// SaveGrades menulis nilai massal satu assignment. Skor di luar rentang
// [0, max_marks] ditolak sebelum menyentuh DB.
func (s *GradeService) SaveGrades(ctx context.Context, assignmentID uuid.UUID, inputs []MarksInput) (int, error) {
	var assignment gradeModel.AssignmentModel
	err := gateway.Execute("assignments:getByID", map[string]any{"id": assignmentID}, func() error {
		return s.DB.WithContext(ctx).First(&assignment, "id = ?", assignmentID).Error
	})
	if err != nil {
		if gateway.IsNotFound(err) {
			return 0, ErrAssignmentNotFound
		}
		return 0, err
	}

	now := time.Now()
	records := make([]gradeModel.GradeModel, 0, len(inputs))
	for _, in := range inputs {
		if in.Marks == nil {
			continue
		}
		if *in.Marks < 0 || *in.Marks > assignment.MaxMarks {
			return 0, fmt.Errorf("nilai %.2f di luar rentang 0-%.2f", *in.Marks, assignment.MaxMarks)
		}
		records = append(records, gradeModel.GradeModel{
			AssignmentID: assignmentID,
			StudentID:    in.StudentID,
			Marks:        *in.Marks,
			GradedAt:     now,
		})
	}
	if len(records) == 0 {
		return 0, ErrNoGradesToSave
	}

	err = gateway.Execute("grades:upsertBatch", map[string]any{
		"assignment_id": assignmentID,
		"count":         len(records),
	}, func() error {
		return s.DB.WithContext(ctx).
			Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "assignment_id"}, {Name: "student_id"}},
				DoUpdates: clause.AssignmentColumns([]string{"marks_obtained", "graded_at"}),
			}).
			Create(&records).Error
	})
	if err != nil {
		return 0, err
	}
	return len(records), nil
}
