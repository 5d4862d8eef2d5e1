package dto

type CreateAssignmentRequest struct {
	CourseID string   `json:"course_id" validate:"required,uuid"`
	Title    string   `json:"title" validate:"required,min=2,max=255"`
	MaxMarks *float64 `json:"max_marks" validate:"omitempty,gt=0,lte=1000"`
	DueDate  string   `json:"due_date" validate:"omitempty,datetime=2006-01-02"`
}

type GradeRow struct {
	StudentID string `json:"student_id" validate:"required,uuid"`
	// Marks nil berarti baris dilewati (belum dinilai).
	Marks *float64 `json:"marks" validate:"omitempty,gte=0"`
}

type SaveGradesRequest struct {
	AssignmentID string     `json:"assignment_id" validate:"required,uuid"`
	Grades       []GradeRow `json:"grades" validate:"required,min=1,dive"`
}
