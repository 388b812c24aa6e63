package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/wiseman/studentrecords/internal/app/models"
	"github.com/wiseman/studentrecords/internal/app/models/dto"
	"github.com/wiseman/studentrecords/internal/app/repositories"
	"github.com/wiseman/studentrecords/internal/pkg/apperrors"
)

// ModuleService defines the module catalog operations
type ModuleService interface {
	AddModule(ctx context.Context, req *dto.CreateModuleRequest) (*models.Module, error)
	ListModules(ctx context.Context) ([]*models.Module, error)
}

// moduleServiceImpl implements the ModuleService interface
type moduleServiceImpl struct {
	moduleRepo *repositories.ModuleRepository
}

// NewModuleService creates a new module service instance
func NewModuleService(moduleRepo *repositories.ModuleRepository) ModuleService {
	return &moduleServiceImpl{
		moduleRepo: moduleRepo,
	}
}

// validateModule validates catalog data before the write
func (s *moduleServiceImpl) validateModule(req *dto.CreateModuleRequest) error {
	if req == nil {
		return fmt.Errorf("%w: module is nil", apperrors.ErrValidationFailed)
	}
	if strings.TrimSpace(req.Name) == "" {
		return fmt.Errorf("%w: name cannot be empty", apperrors.ErrValidationFailed)
	}
	if strings.TrimSpace(req.Code) == "" {
		return fmt.Errorf("%w: code cannot be empty", apperrors.ErrValidationFailed)
	}
	if req.Semester <= 0 {
		return fmt.Errorf("%w: semester must be positive", apperrors.ErrValidationFailed)
	}
	return nil
}

// AddModule assigns a fresh id, persists and returns the stored record.
// Codes are deliberately not unique; a duplicate code creates a second
// distinct catalog entry.
func (s *moduleServiceImpl) AddModule(ctx context.Context, req *dto.CreateModuleRequest) (*models.Module, error) {
	if err := s.validateModule(req); err != nil {
		return nil, err
	}

	module := &models.Module{
		ID:       uuid.NewString(),
		Name:     req.Name,
		Code:     req.Code,
		Semester: req.Semester,
		Lecturer: req.Lecturer,
	}

	if err := s.moduleRepo.Create(ctx, module); err != nil {
		return nil, fmt.Errorf("error creating module: %w", err)
	}
	return module, nil
}

// ListModules returns the full catalog. Order is not guaranteed.
func (s *moduleServiceImpl) ListModules(ctx context.Context) ([]*models.Module, error) {
	modules, err := s.moduleRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("error retrieving modules: %w", err)
	}
	return modules, nil
}
