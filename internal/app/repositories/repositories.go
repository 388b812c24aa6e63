package repositories

import (
	"github.com/wiseman/studentrecords/internal/docstore"
)

// Repositories holds all the repository instances. Every repository
// shares the single injected store handle; nothing opens its own
// connection.
type Repositories struct {
	UserRepository       *UserRepository
	ModuleRepository     *ModuleRepository
	EnrollmentRepository *EnrollmentRepository
}

// NewRepositories initializes all repositories over one store
func NewRepositories(store docstore.Store) *Repositories {
	return &Repositories{
		UserRepository:       NewUserRepository(store),
		ModuleRepository:     NewModuleRepository(store),
		EnrollmentRepository: NewEnrollmentRepository(store),
	}
}
