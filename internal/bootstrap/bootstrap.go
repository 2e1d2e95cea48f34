package bootstrap

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	appControllers "github.com/yigit/resourcehub/internal/app/controllers"
	appMigrations "github.com/yigit/resourcehub/internal/app/migrations"
	appRepos "github.com/yigit/resourcehub/internal/app/repositories"
	appRoutes "github.com/yigit/resourcehub/internal/app/routes"
	appServices "github.com/yigit/resourcehub/internal/app/services"
	"github.com/yigit/resourcehub/internal/config"
	"github.com/yigit/resourcehub/internal/db"
	appMiddleware "github.com/yigit/resourcehub/internal/middleware"
	pkgAuth "github.com/yigit/resourcehub/internal/pkg/auth"
	"github.com/yigit/resourcehub/internal/pkg/filestorage"
	"github.com/yigit/resourcehub/internal/pkg/helpers"
	"github.com/yigit/resourcehub/internal/pkg/logger"
	"github.com/yigit/resourcehub/internal/pkg/websocket"
	"github.com/yigit/resourcehub/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	ResourceService    appServices.ResourceService
	ResourceController *appControllers.ResourceController
	AuthMiddleware     *appMiddleware.AuthMiddleware
	Repos              *appRepos.Repositories
	JWTService         *pkgAuth.JWTService // nil when no secret is configured
	FileStorage        *filestorage.LocalStorage
	EventHub           *websocket.Hub
	EventHandler       *websocket.Handler
	Logger             zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := config.GetEnv("CONFIG_PATH", "configs/config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Str("path", configPath).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	lgr := logger.Configure(logger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
	})
	lgr.Info().Str("logLevel", cfg.Logging.Level).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection and runs migrations.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*pgxpool.Pool, error) {
	lgr.Info().Msg("Establishing database connection...")
	ctx := context.Background()

	dbPool, err := db.NewPool(ctx, cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	lgr.Info().Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(dbPool, appMigrations.Files(), lgr)
	if err := migrator.Migrate(ctx); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		dbPool.Close()
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}
	lgr.Info().Msg("Database migrations successfully applied.")

	return dbPool, nil
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, dbPool *pgxpool.Pool, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(dbPool)

	var err error
	deps.FileStorage, err = filestorage.NewLocalStorage(cfg.Server.StoragePath, cfg.Server.AssetPrefix)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to initialize file storage")
		return nil, fmt.Errorf("failed to initialize file storage: %w", err)
	}

	if cfg.JWT.Secret != "" {
		deps.JWTService = NewJWTService(cfg)
	} else {
		lgr.Warn().Msg("JWT secret not set, write endpoints are unauthenticated")
	}

	deps.EventHub = websocket.NewHub(logger.Component("events"))
	deps.EventHandler = websocket.NewHandler(deps.EventHub, cfg.Origins(), logger.Component("events"))

	deps.ResourceService = appServices.NewResourceService(deps.Repos.ResourceRepository, deps.FileStorage, deps.EventHub)
	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService)
	deps.ResourceController = appControllers.NewResourceController(deps.ResourceService, cfg.MaxUploadBytes())

	if cfg.Server.SeedDemo {
		if err := seed.CreateDemoData(context.Background(), deps.ResourceService, lgr); err != nil {
			// Demo data is optional, so startup continues
			lgr.Error().Err(err).Msg("Failed to create demo data, proceeding anyway...")
		}
	}

	return deps, nil
}

// NewJWTService builds the token service from configuration.
func NewJWTService(cfg *config.Config) *pkgAuth.JWTService {
	return pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:   cfg.JWT.Secret,
		TokenExp:    helpers.ParseDuration(cfg.JWT.TokenExpiration, 24*time.Hour),
		TokenIssuer: cfg.JWT.Issuer,
	})
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

	router := gin.New()
	router.Use(gin.Recovery(), appMiddleware.RequestLogger())
	router.MaxMultipartMemory = cfg.MaxUploadBytes()

	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Origins(),
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	appRoutes.SetupSwagger(router)

	router.Static(cfg.Server.AssetPrefix, cfg.Server.StoragePath)
	lgr.Info().
		Str("path", cfg.Server.StoragePath).
		Str("prefix", cfg.Server.AssetPrefix).
		Msg("Static file serving configured for uploads directory")

	appRoutes.SetupRouter(router, deps.ResourceController, deps.EventHandler, deps.AuthMiddleware, cfg.MaxUploadBytes())

	return router
}
