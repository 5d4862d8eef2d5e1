package dto

type CreateEnrollmentRequest struct {
	StudentID  string `json:"student_id" validate:"required,uuid"`
	CourseID   string `json:"course_id" validate:"required,uuid"`
	SemesterID string `json:"semester_id" validate:"required,uuid"`
}

// SelfEnrollRequest dipakai student: student_id diambil dari token,
// semester_id opsional (fallback ke semester aktif).
type SelfEnrollRequest struct {
	CourseID   string `json:"course_id" validate:"required,uuid"`
	SemesterID string `json:"semester_id" validate:"omitempty,uuid"`
}
