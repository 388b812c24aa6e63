package dto

import "github.com/wiseman/studentrecords/internal/app/models"

// EnrollRequest is the set of module codes a student enrolls into
type EnrollRequest struct {
	ModuleCodes []string `json:"moduleCodes" binding:"required" example:"CS101,CS102"`
}

// EnrollResponse echoes the created enrollment records
type EnrollResponse struct {
	Message     string               `json:"message" example:"Modules enrolled successfully"`
	Enrollments []*models.Enrollment `json:"enrollments"`
}

// UpdateMarksRequest carries optional replacement marks for a single
// enrollment; nil fields leave the stored value untouched.
type UpdateMarksRequest struct {
	SemesterMark *float64 `json:"semesterMark,omitempty" example:"61.5"`
	ExamMark     *float64 `json:"examMark,omitempty" example:"55"`
	FinalMark    *float64 `json:"finalMark,omitempty" example:"58.2"`
}

// StudentDetailResponse is the composed student view
type StudentDetailResponse struct {
	User            *UserResponse            `json:"user"`
	EnrolledModules []*models.EnrolledModule `json:"enrolledModules"`
}

// NewStudentDetailResponse maps the domain view onto its public shape
func NewStudentDetailResponse(detail *models.StudentDetail) *StudentDetailResponse {
	if detail == nil {
		return nil
	}
	return &StudentDetailResponse{
		User:            NewUserResponse(detail.User),
		EnrolledModules: detail.EnrolledModules,
	}
}
