// file: internals/features/academics/semesters/dto/semester_dto.go
package dto

import (
	"strings"
	"time"

	"gorm.io/datatypes"

	"kampusku_backend/internals/features/academics/semesters/model"
)

/* =========================================================
   1) REQUEST DTO — tanggal dikirim sebagai "YYYY-MM-DD"
========================================================= */

type CreateSemesterRequest struct {
	Name      string `json:"name" validate:"required,max=100"`
	StartDate string `json:"start_date" validate:"omitempty,datetime=2006-01-02"`
	EndDate   string `json:"end_date" validate:"omitempty,datetime=2006-01-02"`
	IsActive  *bool  `json:"is_active" validate:"omitempty"`
}

type UpdateSemesterRequest struct {
	Name      *string `json:"name" validate:"omitempty,max=100"`
	StartDate *string `json:"start_date" validate:"omitempty,datetime=2006-01-02"`
	EndDate   *string `json:"end_date" validate:"omitempty,datetime=2006-01-02"`
	IsActive  *bool   `json:"is_active" validate:"omitempty"`
}

func parseDate(s string) datatypes.Date {
	t, _ := time.Parse("2006-01-02", s)
	return datatypes.Date(t)
}

func (r *CreateSemesterRequest) ToModel() *model.SemesterModel {
	m := &model.SemesterModel{
		Name: strings.TrimSpace(r.Name),
	}
	if r.StartDate != "" {
		m.StartDate = parseDate(r.StartDate)
	}
	if r.EndDate != "" {
		m.EndDate = parseDate(r.EndDate)
	}
	if r.IsActive != nil {
		m.IsActive = *r.IsActive
	}
	return m
}

func (r *UpdateSemesterRequest) Updates() map[string]any {
	updates := map[string]any{}
	if r.Name != nil {
		updates["name"] = strings.TrimSpace(*r.Name)
	}
	if r.StartDate != nil {
		updates["start_date"] = parseDate(*r.StartDate)
	}
	if r.EndDate != nil {
		updates["end_date"] = parseDate(*r.EndDate)
	}
	if r.IsActive != nil {
		updates["is_active"] = *r.IsActive
	}
	return updates
}
