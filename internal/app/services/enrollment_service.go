package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/wiseman/studentrecords/internal/app/models"
	"github.com/wiseman/studentrecords/internal/app/models/dto"
	"github.com/wiseman/studentrecords/internal/app/repositories"
	"github.com/wiseman/studentrecords/internal/pkg/apperrors"
)

// enrollmentNamespace seeds the deterministic enrollment ids. Changing
// it would orphan every stored enrollment.
var enrollmentNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("studentrecords/enrollments"))

// EnrollmentID derives the composite record id for a (student, module)
// pair. The same pair always maps to the same id, so retried or
// concurrent enrollment requests converge on one record instead of
// appending duplicates.
func EnrollmentID(studentUsername, moduleCode string) string {
	return uuid.NewSHA1(enrollmentNamespace, []byte(studentUsername+"/"+moduleCode)).String()
}

// EnrollmentService defines the enrollment ledger operations
type EnrollmentService interface {
	Enroll(ctx context.Context, studentUsername string, moduleCodes []string) ([]*models.Enrollment, error)
	EnrollmentsFor(ctx context.Context, studentUsername string) ([]*models.Enrollment, error)
	UpdateMarks(ctx context.Context, enrollmentID string, req *dto.UpdateMarksRequest) (*models.Enrollment, error)
	Deregister(ctx context.Context, enrollmentID string) error
}

// enrollmentServiceImpl implements the EnrollmentService interface
type enrollmentServiceImpl struct {
	enrollmentRepo *repositories.EnrollmentRepository
	userRepo       *repositories.UserRepository
	logger         zerolog.Logger
}

// NewEnrollmentService creates a new enrollment service instance
func NewEnrollmentService(enrollmentRepo *repositories.EnrollmentRepository, userRepo *repositories.UserRepository, logger zerolog.Logger) EnrollmentService {
	return &enrollmentServiceImpl{
		enrollmentRepo: enrollmentRepo,
		userRepo:       userRepo,
		logger:         logger,
	}
}

// Enroll creates one enrollment per module code, marks zeroed and
// registered. Each write is independent; a failure partway through
// leaves the earlier records in place, and a retry converges on the
// same composite ids rather than duplicating them.
func (s *enrollmentServiceImpl) Enroll(ctx context.Context, studentUsername string, moduleCodes []string) ([]*models.Enrollment, error) {
	if strings.TrimSpace(studentUsername) == "" {
		return nil, fmt.Errorf("%w: student username cannot be empty", apperrors.ErrValidationFailed)
	}

	codes := make([]string, 0, len(moduleCodes))
	for _, code := range moduleCodes {
		if strings.TrimSpace(code) != "" {
			codes = append(codes, code)
		}
	}
	if len(codes) == 0 {
		return nil, apperrors.ErrNoModulesSelected
	}

	// The student must exist before any record is written
	if _, err := s.userRepo.GetByUsername(ctx, studentUsername); err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("error resolving student: %w", err)
	}

	enrollments := make([]*models.Enrollment, 0, len(codes))
	for _, code := range codes {
		enrollment := &models.Enrollment{
			ID:           EnrollmentID(studentUsername, code),
			StudentID:    studentUsername,
			ModuleID:     code,
			SemesterMark: 0,
			ExamMark:     0,
			FinalMark:    0,
			IsRegistered: true,
		}

		if err := s.enrollmentRepo.Put(ctx, enrollment); err != nil {
			return nil, fmt.Errorf("error enrolling into %s: %w", code, err)
		}
		enrollments = append(enrollments, enrollment)
	}

	s.logger.Info().
		Str("student", studentUsername).
		Int("modules", len(enrollments)).
		Msg("Student enrolled")
	return enrollments, nil
}

// EnrollmentsFor returns every enrollment of a student, registered or
// not. Callers filter as needed.
func (s *enrollmentServiceImpl) EnrollmentsFor(ctx context.Context, studentUsername string) ([]*models.Enrollment, error) {
	if strings.TrimSpace(studentUsername) == "" {
		return nil, fmt.Errorf("%w: student username cannot be empty", apperrors.ErrValidationFailed)
	}

	enrollments, err := s.enrollmentRepo.GetByStudent(ctx, studentUsername)
	if err != nil {
		return nil, fmt.Errorf("error retrieving enrollments: %w", err)
	}
	return enrollments, nil
}

// UpdateMarks read-modify-writes the single record identified by
// enrollmentID. Nil marks in the request keep the stored value.
func (s *enrollmentServiceImpl) UpdateMarks(ctx context.Context, enrollmentID string, req *dto.UpdateMarksRequest) (*models.Enrollment, error) {
	if req == nil || (req.SemesterMark == nil && req.ExamMark == nil && req.FinalMark == nil) {
		return nil, fmt.Errorf("%w: no marks provided", apperrors.ErrValidationFailed)
	}

	enrollment, err := s.enrollmentRepo.GetByID(ctx, enrollmentID)
	if err != nil {
		if errors.Is(err, apperrors.ErrEnrollmentNotFound) {
			return nil, apperrors.ErrEnrollmentNotFound
		}
		return nil, fmt.Errorf("error retrieving enrollment: %w", err)
	}

	if req.SemesterMark != nil {
		enrollment.SemesterMark = *req.SemesterMark
	}
	if req.ExamMark != nil {
		enrollment.ExamMark = *req.ExamMark
	}
	if req.FinalMark != nil {
		enrollment.FinalMark = *req.FinalMark
	}

	if err := s.enrollmentRepo.Put(ctx, enrollment); err != nil {
		return nil, fmt.Errorf("error updating marks: %w", err)
	}

	return enrollment, nil
}

// Deregister clears the registration flag. The record stays in the
// ledger; there is no transition back.
func (s *enrollmentServiceImpl) Deregister(ctx context.Context, enrollmentID string) error {
	enrollment, err := s.enrollmentRepo.GetByID(ctx, enrollmentID)
	if err != nil {
		if errors.Is(err, apperrors.ErrEnrollmentNotFound) {
			return apperrors.ErrEnrollmentNotFound
		}
		return fmt.Errorf("error retrieving enrollment: %w", err)
	}

	enrollment.IsRegistered = false
	if err := s.enrollmentRepo.Put(ctx, enrollment); err != nil {
		return fmt.Errorf("error deregistering enrollment: %w", err)
	}

	s.logger.Info().
		Str("enrollmentId", enrollmentID).
		Str("student", enrollment.StudentID).
		Str("module", enrollment.ModuleID).
		Msg("Enrollment deregistered")
	return nil
}
