package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/wiseman/studentrecords/internal/app/models"
	"github.com/wiseman/studentrecords/internal/docstore"
	"github.com/wiseman/studentrecords/internal/pkg/apperrors"
)

// ModuleRepository handles catalog entries in the document store
type ModuleRepository struct {
	store docstore.Store
}

// NewModuleRepository creates a new ModuleRepository
func NewModuleRepository(store docstore.Store) *ModuleRepository {
	return &ModuleRepository{store: store}
}

// Create persists a new module keyed by its generated id. Codes are not
// checked for uniqueness; duplicates are stored as distinct records.
func (r *ModuleRepository) Create(ctx context.Context, module *models.Module) error {
	doc, err := docstore.NewDocument(module.ID, module)
	if err != nil {
		return err
	}
	if err := r.store.Put(ctx, docstore.CollectionModules, doc); err != nil {
		return fmt.Errorf("error creating module: %w", err)
	}
	return nil
}

// GetByID retrieves a module by its record id
func (r *ModuleRepository) GetByID(ctx context.Context, id string) (*models.Module, error) {
	doc, err := r.store.Get(ctx, docstore.CollectionModules, id)
	if err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return nil, apperrors.ErrModuleNotFound
		}
		return nil, fmt.Errorf("error getting module by id: %w", err)
	}

	module := &models.Module{}
	if err := doc.Decode(module); err != nil {
		return nil, err
	}
	return module, nil
}

// GetByCode scans for a module with the given code. When duplicate
// codes exist the first match wins, same as the username lookup.
func (r *ModuleRepository) GetByCode(ctx context.Context, code string) (*models.Module, error) {
	docs, err := r.store.Query(ctx, docstore.CollectionModules, docstore.Filter{"code": code})
	if err != nil {
		return nil, fmt.Errorf("error querying modules by code: %w", err)
	}
	if len(docs) == 0 {
		return nil, apperrors.ErrModuleNotFound
	}

	module := &models.Module{}
	if err := docs[0].Decode(module); err != nil {
		return nil, err
	}
	return module, nil
}

// GetAll scans the whole catalog. Order is not guaranteed.
func (r *ModuleRepository) GetAll(ctx context.Context) ([]*models.Module, error) {
	docs, err := r.store.Query(ctx, docstore.CollectionModules, nil)
	if err != nil {
		return nil, fmt.Errorf("error scanning modules: %w", err)
	}

	modules := make([]*models.Module, 0, len(docs))
	for _, doc := range docs {
		module := &models.Module{}
		if err := doc.Decode(module); err != nil {
			return nil, err
		}
		modules = append(modules, module)
	}
	return modules, nil
}
