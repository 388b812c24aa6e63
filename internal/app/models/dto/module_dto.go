package dto

// CreateModuleRequest carries the fields for a new catalog entry; the
// id is generated server-side. Codes are not checked for uniqueness.
type CreateModuleRequest struct {
	Name     string `json:"name" binding:"required" example:"Computer Science 101"`
	Code     string `json:"code" binding:"required" example:"CS101"`
	Semester int    `json:"semester" binding:"required" example:"1"`
	Lecturer string `json:"lecturer" binding:"required" example:"Dr. A"`
}
