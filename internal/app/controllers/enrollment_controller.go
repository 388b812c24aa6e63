package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/wiseman/studentrecords/internal/app/models/dto"
	"github.com/wiseman/studentrecords/internal/app/services"
	"github.com/wiseman/studentrecords/internal/middleware"
)

// EnrollmentController handles enrollment and student detail operations
type EnrollmentController struct {
	enrollmentService services.EnrollmentService
	studentService    services.StudentService
	logger            zerolog.Logger
}

// NewEnrollmentController creates a new EnrollmentController
func NewEnrollmentController(enrollmentService services.EnrollmentService, studentService services.StudentService, logger zerolog.Logger) *EnrollmentController {
	return &EnrollmentController{
		enrollmentService: enrollmentService,
		studentService:    studentService,
		logger:            logger,
	}
}

// EnrollStudent handles bulk module enrollment for a student
// @Summary Enroll a student into modules
// @Description Creates one enrollment per module code with zeroed marks. Repeating a request converges on the same records.
// @Tags students
// @Accept json
// @Produce json
// @Param username path string true "Student username"
// @Param request body dto.EnrollRequest true "Module codes"
// @Success 201 {object} dto.APIResponse{data=dto.EnrollResponse} "Modules enrolled"
// @Failure 400 {object} dto.ErrorResponse "Empty module code set"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /students/{username}/enrollments [post]
func (c *EnrollmentController) EnrollStudent(ctx *gin.Context) {
	username := ctx.Param("username")

	var req dto.EnrollRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.logger.Warn().Err(err).Str("username", username).Msg("Invalid enrollment payload")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	enrollments, err := c.enrollmentService.Enroll(ctx.Request.Context(), username, req.ModuleCodes)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data: dto.EnrollResponse{
			Message:     "Modules enrolled successfully",
			Enrollments: enrollments,
		},
		Timestamp: time.Now(),
	})
}

// GetStudentDetail returns the composed student view
// @Summary Get student detail
// @Description Retrieves the user record with their registered enrollments merged with catalog data
// @Tags students
// @Produce json
// @Param username path string true "Student username"
// @Success 200 {object} dto.APIResponse{data=dto.StudentDetailResponse} "Student detail retrieved"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /students/{username} [get]
func (c *EnrollmentController) GetStudentDetail(ctx *gin.Context) {
	username := ctx.Param("username")

	detail, err := c.studentService.StudentDetail(ctx.Request.Context(), username)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.NewStudentDetailResponse(detail),
		Timestamp: time.Now(),
	})
}

// UpdateMarks replaces marks on a single enrollment
// @Summary Update enrollment marks
// @Description Read-modify-writes the enrollment identified by id; omitted marks keep their stored value
// @Tags enrollments
// @Accept json
// @Produce json
// @Param id path string true "Enrollment id"
// @Param request body dto.UpdateMarksRequest true "Replacement marks"
// @Success 200 {object} dto.APIResponse{data=models.Enrollment} "Marks updated"
// @Failure 400 {object} dto.ErrorResponse "No marks provided"
// @Failure 404 {object} dto.ErrorResponse "Enrollment not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /enrollments/{id}/marks [put]
func (c *EnrollmentController) UpdateMarks(ctx *gin.Context) {
	id := ctx.Param("id")

	var req dto.UpdateMarksRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	enrollment, err := c.enrollmentService.UpdateMarks(ctx.Request.Context(), id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      enrollment,
		Timestamp: time.Now(),
	})
}

// Deregister clears the registration flag on an enrollment
// @Summary Deregister an enrollment
// @Description Marks the enrollment as no longer registered. The record is kept; there is no hard delete.
// @Tags enrollments
// @Produce json
// @Param id path string true "Enrollment id"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Enrollment deregistered"
// @Failure 404 {object} dto.ErrorResponse "Enrollment not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /enrollments/{id} [delete]
func (c *EnrollmentController) Deregister(ctx *gin.Context) {
	id := ctx.Param("id")

	if err := c.enrollmentService.Deregister(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.SuccessResponse{Message: "Enrollment deregistered"},
		Timestamp: time.Now(),
	})
}
