package bootstrap

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appControllers "github.com/wiseman/studentrecords/internal/app/controllers"
	appRepos "github.com/wiseman/studentrecords/internal/app/repositories"
	appRoutes "github.com/wiseman/studentrecords/internal/app/routes"
	appServices "github.com/wiseman/studentrecords/internal/app/services"
	"github.com/wiseman/studentrecords/internal/config"
	"github.com/wiseman/studentrecords/internal/db"
	"github.com/wiseman/studentrecords/internal/docstore"
	"github.com/wiseman/studentrecords/internal/pkg/logger"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	AuthService          appServices.AuthService
	ModuleService        appServices.ModuleService
	EnrollmentService    appServices.EnrollmentService
	StudentService       appServices.StudentService
	AuthController       *appControllers.AuthController
	ModuleController     *appControllers.ModuleController
	EnrollmentController *appControllers.EnrollmentController
	Repos                *appRepos.Repositories
	Store                docstore.Store
	Logger               zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.LogLevel(strings.ToLower(cfg.Logging.Level))
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
	})

	lgr := log.Logger
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupStore builds the shared document store handle for the selected
// driver. One handle serves the whole process; the returned closer
// releases it at shutdown.
func SetupStore(cfg *config.Config, lgr zerolog.Logger) (docstore.Store, func(), error) {
	switch strings.ToLower(cfg.Store.Driver) {
	case "memory":
		lgr.Info().Msg("Using in-memory document store")
		return docstore.NewMemoryStore(), func() {}, nil

	case "postgres":
		lgr.Info().Msg("Establishing document store connection...")
		database, err := db.NewPostgresDB(cfg)
		if err != nil {
			lgr.Error().Err(err).Msg("Failed to connect to document store")
			return nil, nil, err
		}

		store := docstore.NewPostgresStore(database.Pool)

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := store.EnsureCollections(ctx); err != nil {
			lgr.Error().Err(err).Msg("Failed to provision collections")
			database.Close()
			return nil, nil, err
		}

		lgr.Info().Msg("Document store ready")
		return store, database.Close, nil

	default:
		return nil, nil, fmt.Errorf("unsupported store driver: %s", cfg.Store.Driver)
	}
}

// BuildDependencies initializes repositories, services and controllers
// over the single injected store handle.
func BuildDependencies(cfg *config.Config, store docstore.Store, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr, Store: store}

	deps.Repos = appRepos.NewRepositories(store)

	deps.AuthService = appServices.NewAuthService(deps.Repos.UserRepository, lgr)
	deps.ModuleService = appServices.NewModuleService(deps.Repos.ModuleRepository)
	deps.EnrollmentService = appServices.NewEnrollmentService(deps.Repos.EnrollmentRepository, deps.Repos.UserRepository, lgr)
	deps.StudentService = appServices.NewStudentService(deps.Repos.UserRepository, deps.Repos.ModuleRepository, deps.Repos.EnrollmentRepository, lgr)

	deps.AuthController = appControllers.NewAuthController(deps.AuthService, lgr)
	deps.ModuleController = appControllers.NewModuleController(deps.ModuleService)
	deps.EnrollmentController = appControllers.NewEnrollmentController(deps.EnrollmentService, deps.StudentService, lgr)

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.Default()

	appRoutes.SetupRouter(router,
		deps.AuthController,
		deps.ModuleController,
		deps.EnrollmentController,
	)

	return router
}
