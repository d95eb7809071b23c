package bootstrap

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appControllers "github.com/mailam-cse/achievers-portal/internal/app/controllers"
	appMigrations "github.com/mailam-cse/achievers-portal/internal/app/migrations"
	appRepos "github.com/mailam-cse/achievers-portal/internal/app/repositories"
	appRoutes "github.com/mailam-cse/achievers-portal/internal/app/routes"
	appServices "github.com/mailam-cse/achievers-portal/internal/app/services"
	"github.com/mailam-cse/achievers-portal/internal/config"
	"github.com/mailam-cse/achievers-portal/internal/db"
	appMiddleware "github.com/mailam-cse/achievers-portal/internal/middleware"
	pkgAuth "github.com/mailam-cse/achievers-portal/internal/pkg/auth"
	"github.com/mailam-cse/achievers-portal/internal/pkg/filestorage"
	"github.com/mailam-cse/achievers-portal/internal/pkg/helpers"
	"github.com/mailam-cse/achievers-portal/internal/pkg/logger"
	"github.com/mailam-cse/achievers-portal/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	Repos               *appRepos.Repositories
	FileStorage         *filestorage.LocalStorage
	JWTService          *pkgAuth.JWTService
	AuthService         *appServices.AuthService
	AchievementService  *appServices.AchievementService
	ProfileService      *appServices.ProfileService
	ContactService      *appServices.ContactService
	AuthMiddleware      *appMiddleware.AuthMiddleware
	PublicController    *appControllers.PublicController
	AuthController      *appControllers.AuthController
	DashboardController *appControllers.DashboardController
	ProfileController   *appControllers.ProfileController
	AdminController     *appControllers.AdminController
	Logger              zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger
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

// SetupDatabase establishes the database connection, runs migrations and
// seeds the default superuser.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*pgxpool.Pool, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	dbPool := database.Pool

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := dbPool.Ping(ctx); err != nil {
		lgr.Error().Err(err).Msg("Failed to ping database")
		dbPool.Close()
		return nil, err
	}

	lgr.Info().Msg("Running database migrations...")
	migrationsDir := "migrations"
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		dbPool.Close()
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}
	migrator := appMigrations.NewMigrator(dbPool)
	if err := migrator.ApplyDirectory(context.Background(), migrationsDir); err != nil {
		dbPool.Close()
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}

	if err := seed.CreateDefaultData(context.Background(), dbPool, lgr); err != nil {
		// Startup continues; the account can be created by hand.
		lgr.Error().Err(err).Msg("Failed to seed default data, proceeding anyway...")
	}

	return dbPool, nil
}

// BuildDependencies initializes repositories, services, middleware and
// controllers over the shared pool.
func BuildDependencies(cfg *config.Config, dbPool *pgxpool.Pool, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(dbPool)

	var err error
	uploadsURL := strings.TrimRight(cfg.Server.BaseURL, "/") + "/uploads"
	deps.FileStorage, err = filestorage.NewLocalStorage(cfg.Server.StoragePath, uploadsURL)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize file storage: %w", err)
	}

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:   cfg.Session.Secret,
		SessionTTL:  helpers.ParseDuration(cfg.Session.TTL, 24*time.Hour),
		TokenIssuer: cfg.Session.Issuer,
	})

	deps.AuthService = appServices.NewAuthService(deps.Repos.UserRepository, deps.Repos.ProfileRepository, deps.JWTService, lgr)
	deps.AchievementService = appServices.NewAchievementService(
		deps.Repos.AchievementRepository,
		deps.Repos.UserRepository,
		deps.Repos.ContactRepository,
		deps.FileStorage,
		lgr,
	)
	deps.ProfileService = appServices.NewProfileService(deps.Repos.ProfileRepository, deps.FileStorage, lgr)
	deps.ContactService = appServices.NewContactService(deps.Repos.ContactRepository, lgr)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService, deps.Repos.UserRepository, cfg.Session.CookieName)

	deps.PublicController = appControllers.NewPublicController(deps.AchievementService, deps.ContactService, lgr)
	deps.AuthController = appControllers.NewAuthController(deps.AuthService, cfg.Session.CookieName, lgr)
	deps.DashboardController = appControllers.NewDashboardController(deps.AchievementService, lgr)
	deps.ProfileController = appControllers.NewProfileController(deps.ProfileService, lgr)
	deps.AdminController = appControllers.NewAdminController(deps.AchievementService, deps.ContactService, lgr)

	return deps, nil
}

// SetupRouter configures the Gin engine with templates, middleware and routes
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	}

	router := gin.New()
	router.LoadHTMLGlob(filepath.Join("web", "templates", "*.html"))
	router.MaxMultipartMemory = 8 << 20

	appRoutes.SetupRouter(
		router,
		deps.PublicController,
		deps.AuthController,
		deps.DashboardController,
		deps.ProfileController,
		deps.AdminController,
		deps.AuthMiddleware,
	)

	return router
}
