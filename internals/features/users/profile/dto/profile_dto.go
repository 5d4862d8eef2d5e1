package dto

type UpdateProfileRequest struct {
	FullName *string `json:"full_name" validate:"omitempty,min=2,max=255"`
}

type ChangeRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=admin faculty student"`
}
