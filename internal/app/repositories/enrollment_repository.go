package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/wiseman/studentrecords/internal/app/models"
	"github.com/wiseman/studentrecords/internal/docstore"
	"github.com/wiseman/studentrecords/internal/pkg/apperrors"
)

// EnrollmentRepository handles enrollment records in the document store
type EnrollmentRepository struct {
	store docstore.Store
}

// NewEnrollmentRepository creates a new EnrollmentRepository
func NewEnrollmentRepository(store docstore.Store) *EnrollmentRepository {
	return &EnrollmentRepository{store: store}
}

// Put upserts an enrollment keyed by its id. Enrollment ids are
// deterministic composites of (studentId, moduleId), so a repeated or
// concurrent write for the same pair converges on one record instead
// of duplicating it.
func (r *EnrollmentRepository) Put(ctx context.Context, enrollment *models.Enrollment) error {
	doc, err := docstore.NewDocument(enrollment.ID, enrollment)
	if err != nil {
		return err
	}
	if err := r.store.Put(ctx, docstore.CollectionEnrollments, doc); err != nil {
		return fmt.Errorf("error writing enrollment: %w", err)
	}
	return nil
}

// GetByID retrieves an enrollment by its record id
func (r *EnrollmentRepository) GetByID(ctx context.Context, id string) (*models.Enrollment, error) {
	doc, err := r.store.Get(ctx, docstore.CollectionEnrollments, id)
	if err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return nil, apperrors.ErrEnrollmentNotFound
		}
		return nil, fmt.Errorf("error getting enrollment by id: %w", err)
	}

	enrollment := &models.Enrollment{}
	if err := doc.Decode(enrollment); err != nil {
		return nil, err
	}
	return enrollment, nil
}

// GetByStudent scans for all enrollments of a student, registered or
// not. The studentId field holds the student's username.
func (r *EnrollmentRepository) GetByStudent(ctx context.Context, studentUsername string) ([]*models.Enrollment, error) {
	docs, err := r.store.Query(ctx, docstore.CollectionEnrollments, docstore.Filter{"studentId": studentUsername})
	if err != nil {
		return nil, fmt.Errorf("error querying enrollments by student: %w", err)
	}

	enrollments := make([]*models.Enrollment, 0, len(docs))
	for _, doc := range docs {
		enrollment := &models.Enrollment{}
		if err := doc.Decode(enrollment); err != nil {
			return nil, err
		}
		enrollments = append(enrollments, enrollment)
	}
	return enrollments, nil
}
