package app

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/revyse/core/internal/middleware"
	"github.com/revyse/core/internal/modules/auth"
	"github.com/revyse/core/internal/modules/content/courses"
	"github.com/revyse/core/internal/modules/content/materials"
	"github.com/revyse/core/internal/modules/learning/flashcards"
	"github.com/revyse/core/internal/modules/learning/nudges"
	"github.com/revyse/core/internal/modules/learning/quizzes"
	"github.com/revyse/core/internal/modules/learning/streaks"
	"github.com/revyse/core/internal/modules/learning/summaries"
	"github.com/revyse/core/internal/modules/processing/ai"
	"github.com/revyse/core/internal/modules/system/core/health"
	"github.com/revyse/core/internal/pkg/response"
	"github.com/revyse/core/internal/pkg/taskqueue"
)

const apiPrefix = "/api/v1"

func (a *App) registerRoutes() {
	r := a.router
	db := a.db
	cfg := a.cfg
	authMW := middleware.Auth()

	r.NoRoute(func(c *gin.Context) {
		response.NotFound(c)
	})
	r.NoMethod(func(c *gin.Context) {
		response.MethodNotAllowed(c)
	})

	var taskSvc *taskqueue.Service
	if a.rc != nil {
		r.Use(middleware.RateLimit(a.rc.Raw()))
		taskSvc = taskqueue.NewService(a.rc)
	}

	var cache ai.Cache
	if cfg.AI.Cache.Backend == "redis" && a.rc != nil {
		cache = ai.NewRedisCache(a.rc, cfg.AI.Cache.MaxAge)
	} else {
		cache = ai.NewMemoryCache(cfg.AI.Cache.MaxEntries)
	}

	aiSvc := ai.NewService(db, a.providers, cache, ai.NewLedger(), taskSvc, a.logger.Named("ai"), cfg.AI.RequestTimeout)

	matSvc := materials.NewService(db)
	streakSvc := streaks.NewService(db, cfg.Streak.AtRiskAfter)
	nudgeSvc := nudges.NewService(db, aiSvc, streakSvc, a.logger.Named("nudges"))

	api := r.Group(apiPrefix)

	health.RegisterRoutes(api, db, a.rc, a.sched, len(a.providers), authMW)
	api.GET("/ping", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"data": "pong"}) })
	api.GET("/server-time", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"data": time.Now().UnixMilli()})
	})

	auth.NewHandler(auth.NewService(db, cfg.TokenTTL)).RegisterRoutes(api, authMW)

	courses.NewHandler(courses.NewService(db)).RegisterRoutes(api, authMW)
	materials.NewHandler(matSvc).RegisterRoutes(api, authMW)

	summaries.NewHandler(summaries.NewService(db, aiSvc, matSvc, streakSvc, a.logger.Named("summaries"))).RegisterRoutes(api, authMW)
	quizzes.NewHandler(quizzes.NewService(db, aiSvc, matSvc, streakSvc, a.logger.Named("quizzes"))).RegisterRoutes(api, authMW)
	flashcards.NewHandler(flashcards.NewService(db, aiSvc, matSvc, streakSvc, a.logger.Named("flashcards"))).RegisterRoutes(api, authMW)
	streaks.NewHandler(streakSvc).RegisterRoutes(api, authMW)
	nudges.NewHandler(nudgeSvc).RegisterRoutes(api, authMW)

	ai.NewHandler(aiSvc).RegisterRoutes(api, authMW)

	registerCronJobs(a.sched, aiSvc, nudgeSvc, cfg, a.logger)
}
