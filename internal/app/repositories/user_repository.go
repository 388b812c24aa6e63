package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/wiseman/studentrecords/internal/app/models"
	"github.com/wiseman/studentrecords/internal/docstore"
	"github.com/wiseman/studentrecords/internal/pkg/apperrors"
)

// UserRepository handles user records in the document store
type UserRepository struct {
	store docstore.Store
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(store docstore.Store) *UserRepository {
	return &UserRepository{store: store}
}

// CreateUser persists a new user record keyed by its generated id
func (r *UserRepository) CreateUser(ctx context.Context, user *models.User) error {
	doc, err := docstore.NewDocument(user.ID, user)
	if err != nil {
		return err
	}
	if err := r.store.Put(ctx, docstore.CollectionUsers, doc); err != nil {
		return fmt.Errorf("error creating user: %w", err)
	}
	return nil
}

// UpdateUser replaces the stored record for an existing user
func (r *UserRepository) UpdateUser(ctx context.Context, user *models.User) error {
	doc, err := docstore.NewDocument(user.ID, user)
	if err != nil {
		return err
	}
	if err := r.store.Put(ctx, docstore.CollectionUsers, doc); err != nil {
		return fmt.Errorf("error updating user: %w", err)
	}
	return nil
}

// GetByID retrieves a user by its record id
func (r *UserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	doc, err := r.store.Get(ctx, docstore.CollectionUsers, id)
	if err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("error getting user by id: %w", err)
	}

	user := &models.User{}
	if err := doc.Decode(user); err != nil {
		return nil, err
	}
	return user, nil
}

// GetByUsername scans for the user with the given username. Usernames
// are expected unique; if the store holds several the first match wins.
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	docs, err := r.store.Query(ctx, docstore.CollectionUsers, docstore.Filter{"username": username})
	if err != nil {
		return nil, fmt.Errorf("error querying users by username: %w", err)
	}
	if len(docs) == 0 {
		return nil, apperrors.ErrUserNotFound
	}

	user := &models.User{}
	if err := docs[0].Decode(user); err != nil {
		return nil, err
	}
	return user, nil
}

// UsernameExists reports whether a user with the username is stored
func (r *UserRepository) UsernameExists(ctx context.Context, username string) (bool, error) {
	docs, err := r.store.Query(ctx, docstore.CollectionUsers, docstore.Filter{"username": username})
	if err != nil {
		return false, fmt.Errorf("error checking username existence: %w", err)
	}
	return len(docs) > 0, nil
}
