package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/wiseman/studentrecords/internal/app/models"
	"github.com/wiseman/studentrecords/internal/app/repositories"
	"github.com/wiseman/studentrecords/internal/pkg/apperrors"
)

// StudentService composes the student detail view from the user
// record, the enrollment ledger and the module catalog.
type StudentService interface {
	StudentDetail(ctx context.Context, username string) (*models.StudentDetail, error)
}

// studentServiceImpl implements the StudentService interface
type studentServiceImpl struct {
	userRepo       *repositories.UserRepository
	moduleRepo     *repositories.ModuleRepository
	enrollmentRepo *repositories.EnrollmentRepository
	logger         zerolog.Logger
}

// NewStudentService creates a new student service instance
func NewStudentService(userRepo *repositories.UserRepository, moduleRepo *repositories.ModuleRepository, enrollmentRepo *repositories.EnrollmentRepository, logger zerolog.Logger) StudentService {
	return &studentServiceImpl{
		userRepo:       userRepo,
		moduleRepo:     moduleRepo,
		enrollmentRepo: enrollmentRepo,
		logger:         logger,
	}
}

// StudentDetail resolves the user, fetches their enrollments and joins
// each registered one with its catalog entry. An enrollment whose
// module code resolves to nothing is skipped, not an error. The view
// is a read-time composition over independent point reads, so it is an
// eventually-consistent snapshot rather than a linearizable one.
// Only registered enrollments appear in the view.
func (s *studentServiceImpl) StudentDetail(ctx context.Context, username string) (*models.StudentDetail, error) {
	if strings.TrimSpace(username) == "" {
		return nil, fmt.Errorf("%w: username cannot be empty", apperrors.ErrValidationFailed)
	}

	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("error resolving student: %w", err)
	}

	enrollments, err := s.enrollmentRepo.GetByStudent(ctx, user.Username)
	if err != nil {
		return nil, fmt.Errorf("error retrieving enrollments: %w", err)
	}

	// One catalog lookup per enrollment. O(n) round-trips, fine at
	// this scale.
	enrolled := make([]*models.EnrolledModule, 0, len(enrollments))
	for _, enrollment := range enrollments {
		if !enrollment.IsRegistered {
			continue
		}

		module, err := s.moduleRepo.GetByCode(ctx, enrollment.ModuleID)
		if err != nil {
			if errors.Is(err, apperrors.ErrModuleNotFound) {
				s.logger.Warn().
					Str("student", user.Username).
					Str("moduleCode", enrollment.ModuleID).
					Msg("Enrollment references unknown module, skipping")
				continue
			}
			return nil, fmt.Errorf("error resolving module %s: %w", enrollment.ModuleID, err)
		}

		enrolled = append(enrolled, &models.EnrolledModule{
			EnrollmentID: enrollment.ID,
			ModuleCode:   enrollment.ModuleID,
			ModuleName:   module.Name,
			Lecturer:     module.Lecturer,
			Semester:     module.Semester,
			SemesterMark: enrollment.SemesterMark,
			ExamMark:     enrollment.ExamMark,
			FinalMark:    enrollment.FinalMark,
		})
	}

	return &models.StudentDetail{
		User:            user,
		EnrolledModules: enrolled,
	}, nil
}
