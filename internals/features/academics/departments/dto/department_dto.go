// file: internals/features/academics/departments/dto/department_dto.go
package dto

import (
	"strings"

	"kampusku_backend/internals/features/academics/departments/model"
)

/* =========================================================
   1) REQUEST DTO
========================================================= */

// Create
type CreateDepartmentRequest struct {
	Code string `json:"code" validate:"required,max=20"`
	Name string `json:"name" validate:"required,max=255"`
}

// Update (partial)
type UpdateDepartmentRequest struct {
	Code *string `json:"code" validate:"omitempty,max=20"`
	Name *string `json:"name" validate:"omitempty,max=255"`
}

func (r *CreateDepartmentRequest) Normalize() {
	r.Code = strings.ToUpper(strings.TrimSpace(r.Code))
	r.Name = strings.TrimSpace(r.Name)
}

func (r *CreateDepartmentRequest) ToModel() *model.DepartmentModel {
	return &model.DepartmentModel{
		Code: r.Code,
		Name: r.Name,
	}
}

// Updates mengembalikan map kolom→nilai untuk partial update.
func (r *UpdateDepartmentRequest) Updates() map[string]any {
	updates := map[string]any{}
	if r.Code != nil {
		updates["code"] = strings.ToUpper(strings.TrimSpace(*r.Code))
	}
	if r.Name != nil {
		updates["name"] = strings.TrimSpace(*r.Name)
	}
	return updates
}
