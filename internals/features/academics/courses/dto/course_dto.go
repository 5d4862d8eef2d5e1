package dto

import (
	"strings"

	"github.com/google/uuid"

	courseModel "kampusku_backend/internals/features/academics/courses/model"
)

type CreateCourseRequest struct {
	Code         string  `json:"code" validate:"required,min=2,max=20"`
	Name         string  `json:"name" validate:"required,min=3,max=255"`
	Credits      int     `json:"credits" validate:"required,min=1,max=12"`
	Description  string  `json:"description" validate:"omitempty,max=2000"`
	DepartmentID *string `json:"department_id" validate:"omitempty,uuid"`
	FacultyID    *string `json:"faculty_id" validate:"omitempty,uuid"`
}

func (r *CreateCourseRequest) Normalize() {
	r.Code = strings.ToUpper(strings.TrimSpace(r.Code))
	r.Name = strings.TrimSpace(r.Name)
	r.Description = strings.TrimSpace(r.Description)
}

func (r *CreateCourseRequest) ToModel() (*courseModel.CourseModel, error) {
	m := &courseModel.CourseModel{
		Code:        r.Code,
		Name:        r.Name,
		Credits:     r.Credits,
		Description: r.Description,
	}
	if r.DepartmentID != nil && *r.DepartmentID != "" {
		id, err := uuid.Parse(*r.DepartmentID)
		if err != nil {
			return nil, err
		}
		m.DepartmentID = &id
	}
	if r.FacultyID != nil && *r.FacultyID != "" {
		id, err := uuid.Parse(*r.FacultyID)
		if err != nil {
			return nil, err
		}
		m.FacultyID = &id
	}
	return m, nil
}

type UpdateCourseRequest struct {
	Code         *string `json:"code" validate:"omitempty,min=2,max=20"`
	Name         *string `json:"name" validate:"omitempty,min=3,max=255"`
	Credits      *int    `json:"credits" validate:"omitempty,min=1,max=12"`
	Description  *string `json:"description" validate:"omitempty,max=2000"`
	DepartmentID *string `json:"department_id" validate:"omitempty,uuid"`
	FacultyID    *string `json:"faculty_id" validate:"omitempty,uuid"`
}

// Updates menyusun map kolom yang diubah saja (partial update).
func (r *UpdateCourseRequest) Updates() (map[string]interface{}, error) {
	updates := make(map[string]interface{})
	if r.Code != nil {
		updates["code"] = strings.ToUpper(strings.TrimSpace(*r.Code))
	}
	if r.Name != nil {
		updates["name"] = strings.TrimSpace(*r.Name)
	}
	if r.Credits != nil {
		updates["credits"] = *r.Credits
	}
	if r.Description != nil {
		updates["description"] = strings.TrimSpace(*r.Description)
	}
	if r.DepartmentID != nil {
		if *r.DepartmentID == "" {
			updates["department_id"] = nil
		} else {
			id, err := uuid.Parse(*r.DepartmentID)
			if err != nil {
				return nil, err
			}
			updates["department_id"] = id
		}
	}
	if r.FacultyID != nil {
		if *r.FacultyID == "" {
			updates["faculty_id"] = nil
		} else {
			id, err := uuid.Parse(*r.FacultyID)
			if err != nil {
				return nil, err
			}
			updates["faculty_id"] = id
		}
	}
	return updates, nil
}
