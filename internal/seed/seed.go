package seed

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/wiseman/studentrecords/internal/app/models"
	"github.com/wiseman/studentrecords/internal/app/repositories"
	"github.com/wiseman/studentrecords/internal/pkg/auth"
)

const (
	defaultAdminUsername = "admin"
	defaultAdminPassword = "Admin123!"
)

// CreateDefaultData seeds the store with a default admin account and a
// handful of catalog entries so a fresh deployment is usable. Existing
// data is left untouched.
func CreateDefaultData(ctx context.Context, repos *repositories.Repositories, lgr zerolog.Logger) error {
	if err := createDefaultAdmin(ctx, repos.UserRepository, lgr); err != nil {
		return err
	}
	if err := createDefaultModules(ctx, repos.ModuleRepository, lgr); err != nil {
		return err
	}
	return nil
}

func createDefaultAdmin(ctx context.Context, userRepo *repositories.UserRepository, lgr zerolog.Logger) error {
	exists, err := userRepo.UsernameExists(ctx, defaultAdminUsername)
	if err != nil {
		return fmt.Errorf("error checking for default admin: %w", err)
	}
	if exists {
		lgr.Debug().Msg("Default admin already present, skipping")
		return nil
	}

	hashedPassword, err := auth.HashPassword(defaultAdminPassword)
	if err != nil {
		return fmt.Errorf("error hashing default admin password: %w", err)
	}

	admin := &models.User{
		ID:       uuid.NewString(),
		Username: defaultAdminUsername,
		Password: hashedPassword,
		Name:     "Default",
		Surname:  "Admin",
		Role:     models.RoleAdmin,
	}

	if err := userRepo.CreateUser(ctx, admin); err != nil {
		return fmt.Errorf("error creating default admin: %w", err)
	}

	lgr.Info().Str("username", defaultAdminUsername).Msg("Default admin account created")
	return nil
}

func createDefaultModules(ctx context.Context, moduleRepo *repositories.ModuleRepository, lgr zerolog.Logger) error {
	existing, err := moduleRepo.GetAll(ctx)
	if err != nil {
		return fmt.Errorf("error checking catalog: %w", err)
	}
	if len(existing) > 0 {
		lgr.Debug().Int("count", len(existing)).Msg("Catalog already populated, skipping")
		return nil
	}

	defaults := []*models.Module{
		{Name: "Introduction to Programming", Code: "CS101", Semester: 1, Lecturer: "Dr. Ada Lovelace"},
		{Name: "Data Structures", Code: "CS201", Semester: 2, Lecturer: "Dr. Edsger Dijkstra"},
		{Name: "Database Systems", Code: "CS301", Semester: 3, Lecturer: "Dr. Edgar Codd"},
	}

	for _, module := range defaults {
		module.ID = uuid.NewString()
		if err := moduleRepo.Create(ctx, module); err != nil {
			return fmt.Errorf("error seeding module %s: %w", module.Code, err)
		}
	}

	lgr.Info().Int("count", len(defaults)).Msg("Default modules created")
	return nil
}
