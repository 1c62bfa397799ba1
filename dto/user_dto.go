package dto

type PagePermissionDTO struct {
	PageID      string   `json:"pageId" binding:"required"`
	Permissions []string `json:"permissions" binding:"required"`
}

type CreateUserDTO struct {
	Email           string              `json:"email" binding:"required,email"`
	Name            string              `json:"name" binding:"required"`
	Password        string              `json:"password" binding:"required,min=8"`
	Role            string              `json:"role" binding:"required"`
	Approved        bool                `json:"approved"`
	PagePermissions []PagePermissionDTO `json:"pagePermissions"`
}

// UpdateUserDTO — all fields are optional pointers
type UpdateUserDTO struct {
	Name            *string              `json:"name,omitempty"`
	Role            *string              `json:"role,omitempty"`
	Approved        *bool                `json:"approved,omitempty"`
	Password        *string              `json:"password,omitempty"`
	PagePermissions *[]PagePermissionDTO `json:"pagePermissions,omitempty"`
}

// TogglePermissionDTO flips a single action on a single page.
type TogglePermissionDTO struct {
	PageID  string `json:"pageId" binding:"required"`
	Action  string `json:"action" binding:"required"`
	Enabled *bool  `json:"enabled" binding:"required"`
}
