package dto

type LoadRosterRequest struct {
	CourseID string `json:"course_id" query:"course_id" validate:"required,uuid"`
	// Date format YYYY-MM-DD; kosong berarti hari ini.
	Date string `json:"date" query:"date" validate:"omitempty,datetime=2006-01-02"`
}

type StatusRow struct {
	StudentID string `json:"student_id" validate:"required,uuid"`
	Status    string `json:"status" validate:"omitempty,oneof=present absent late"`
}

type SaveAttendanceRequest struct {
	SessionID string      `json:"session_id" validate:"required,uuid"`
	Records   []StatusRow `json:"records" validate:"required,min=1,dive"`
}

type SelfMarkRequest struct {
	CourseID string `json:"course_id" validate:"required,uuid"`
	Date     string `json:"date" validate:"omitempty,datetime=2006-01-02"`
	// Kosong berarti "present".
	Status string `json:"status" validate:"omitempty,oneof=present absent late"`
}
