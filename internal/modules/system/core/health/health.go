package health

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/revyse/core/internal/pkg/cron"
	pkgredis "github.com/revyse/core/internal/pkg/redis"
	"github.com/revyse/core/internal/pkg/response"
)

// RegisterRoutes wires the public health probe and the admin cron
// surface. rc may be nil when Redis is not configured.
func RegisterRoutes(rg *gin.RouterGroup, db *gorm.DB, rc *pkgredis.Client, sched *cron.Scheduler, providerCount int, authMW gin.HandlerFunc) {
	rg.GET("/health", func(c *gin.Context) {
		sqlDB, err := db.DB()
		dbOK := err == nil && sqlDB.PingContext(c.Request.Context()) == nil

		redisOK := true
		redisConfigured := rc != nil
		if redisConfigured {
			redisOK = rc.Ping(c.Request.Context()) == nil
		}

		status := "ok"
		code := http.StatusOK
		if !dbOK || !redisOK {
			status = "degraded"
			code = http.StatusServiceUnavailable
		}

		c.JSON(code, gin.H{
			"status":       status,
			"database":     dbOK,
			"redis":        redisOK,
			"redis_in_use": redisConfigured,
			"ai_providers": providerCount,
		})
	})

	cronGroup := rg.Group("/health/cron", authMW)
	{
		cronGroup.GET("", func(c *gin.Context) {
			items := sched.List()
			byName := make(map[string]cron.ListItem, len(items))
			for _, item := range items {
				byName[item.Name] = item
			}
			response.OK(c, byName)
		})

		cronGroup.POST("/run/:name", func(c *gin.Context) {
			if err := sched.Run(c.Request.Context(), c.Param("name")); err != nil {
				response.NotFoundMsg(c, err.Error())
				return
			}
			response.OK(c, gin.H{"message": "job triggered"})
		})

		cronGroup.GET("/task/:name", func(c *gin.Context) {
			result, err := sched.GetTask(c.Param("name"))
			if err != nil {
				response.NotFoundMsg(c, err.Error())
				return
			}
			response.OK(c, result)
		})
	}
}
