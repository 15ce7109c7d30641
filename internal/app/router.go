package app

import (
	"lingo_quiz_backend/internal/config"
	"lingo_quiz_backend/internal/middleware"
	"lingo_quiz_backend/internal/model"
	"lingo_quiz_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	router.GET("/metrics", monitoring.PrometheusHandler())

	// 公共路由(无需登录)
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)
	}

	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg))
	{
		authGroup.GET("/profile", c.auth.GetProfile)

		// 测试卷
		authGroup.GET("/tests", c.test.ListTests)
		authGroup.GET("/tests/:id", c.test.GetTest)
		teacherOnly := authGroup.Group("")
		teacherOnly.Use(middleware.RoleMiddleware(model.Teacher))
		{
			teacherOnly.POST("/tests", c.test.CreateTest)
			teacherOnly.PUT("/tests/:id", c.test.UpdateTest)
			teacherOnly.DELETE("/tests/:id", c.test.DeleteTest)
		}

		// 测试结果
		authGroup.POST("/results", c.testResult.CreateResult)
		authGroup.GET("/results", c.testResult.ListResults)
		authGroup.GET("/results/me", c.testResult.GetMyResults)
		authGroup.GET("/results/:id", c.testResult.GetResult)
		authGroup.PUT("/results/:id", c.testResult.UpdateResult)
		authGroup.PATCH("/results/:id/status", c.testResult.UpdateStatus)
		authGroup.DELETE("/results/:id", c.testResult.SoftDelete)

		// 行为遥测（仅按结果ID操作）
		authGroup.POST("/results/:id/behaviors", c.testResult.AppendBehavior)
		authGroup.POST("/results/:id/session/start", c.testResult.StartSession)
		authGroup.POST("/results/:id/session/end", c.testResult.EndSession)

		// 统计与排行榜
		authGroup.GET("/statistics/me", c.testResult.GetMyStatistics)
		authGroup.GET("/leaderboards/weekly", c.leaderboard.Weekly)
		authGroup.GET("/leaderboards/monthly", c.leaderboard.Monthly)
		authGroup.GET("/leaderboards/period", c.leaderboard.Period)
		authGroup.GET("/leaderboards/performers", c.leaderboard.Performers)
		authGroup.GET("/leaderboards/test-takers", c.leaderboard.TestTakers)
	}

	// 管理员相关接口
	admin := router.Group("/api/admin")
	admin.Use(middleware.AuthMiddleware(cfg), middleware.RoleMiddleware(model.Admin))
	{
		admin.DELETE("/results/:id/permanent", c.testResult.HardDelete)
		admin.POST("/results/:id/restore", c.testResult.Restore)
		admin.GET("/users/:userId/statistics", c.testResult.GetUserStatistics)
	}
}
