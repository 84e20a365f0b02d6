package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/revyse/core/internal/config"
	"github.com/revyse/core/internal/database"
	"github.com/revyse/core/internal/middleware"
	pkgcron "github.com/revyse/core/internal/pkg/cron"
	jwtpkg "github.com/revyse/core/internal/pkg/jwt"
	"github.com/revyse/core/internal/pkg/llm"
	pkgredis "github.com/revyse/core/internal/pkg/redis"
)

// App holds all application dependencies.
type App struct {
	cfg       *config.AppConfig
	router    *gin.Engine
	db        *gorm.DB
	rc        *pkgredis.Client
	logger    *zap.Logger
	cancel    context.CancelFunc
	sched     *pkgcron.Scheduler
	providers []llm.Provider
}

// New initializes the application: config → DB → Redis → providers → routes.
func New(logger *zap.Logger, cfg *config.AppConfig) (*App, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}

	if secret := strings.TrimSpace(cfg.JWTSecret); secret != "" {
		jwtpkg.SetSecret(secret)
	} else {
		logger.Warn("jwt_secret is empty, using built-in default secret")
	}

	db, err := database.Connect(cfg, cfg.AutoMigrate)
	if err != nil {
		return nil, fmt.Errorf("database: %w", err)
	}

	var rc *pkgredis.Client
	if cfg.Redis.Enabled {
		rc, err = pkgredis.Connect(cfg.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("redis: %w", err)
		}
	}

	providers, err := llm.FromConfig(cfg.AI)
	if err != nil {
		return nil, fmt.Errorf("ai providers: %w", err)
	}
	if len(providers) == 0 {
		logger.Warn("no AI providers enabled, generation endpoints will fail")
	}

	if cfg.IsDev() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.HandleMethodNotAllowed = true
	router.Use(gin.Recovery())
	router.Use(middleware.Logger(logger))

	corsConfig := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}
	if len(cfg.AllowedOrigins) > 0 && !cfg.IsDev() {
		patterns := cfg.AllowedOrigins
		corsConfig.AllowOriginFunc = func(origin string) bool {
			host := extractOriginHost(origin)
			for _, pattern := range patterns {
				if matchOriginPattern(pattern, host) {
					return true
				}
			}
			return false
		}
	} else {
		corsConfig.AllowOriginFunc = func(origin string) bool { return true }
	}
	router.Use(cors.New(corsConfig))

	ctx, cancel := context.WithCancel(context.Background())
	sched := pkgcron.New()

	app := &App{
		cfg:       cfg,
		router:    router,
		db:        db,
		rc:        rc,
		logger:    logger,
		cancel:    cancel,
		sched:     sched,
		providers: providers,
	}
	app.registerRoutes()
	go sched.Start(ctx)

	return app, nil
}

// Addr returns the listen address.
func (a *App) Addr() string { return fmt.Sprintf(":%d", a.cfg.Port) }

// Router returns the HTTP handler.
func (a *App) Router() http.Handler { return a.router }

// Shutdown cleans up background goroutines.
func (a *App) Shutdown() { a.cancel() }
