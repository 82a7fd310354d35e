package httpserver

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"pulsevo/internal/handler"
)

type Router struct {
	Engine *gin.Engine
}

func NewRouter(
	dashboardHandler *handler.DashboardHandler,
	taskHandler *handler.TaskHandler,
	userHandler *handler.UserHandler,
	insightHandler *handler.InsightHandler,
	chatHandler *handler.ChatHandler,
	settingsHandler *handler.SettingsHandler,
	jwtSecret string,
	jwtAudience string,
	db *pgxpool.Pool,
) *Router {
	r := gin.Default()
	r.Use(TraceMiddleware(), MetricsMiddleware())

	// Health and metrics endpoints (无需认证)
	r.GET("/api/health", settingsHandler.Health)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	r.GET("/readyz", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c, 1*time.Second)
		defer cancel()

		if err := db.Ping(ctx); err != nil {
			c.JSON(500, gin.H{"status": "db_not_ready", "error": err.Error()})
			return
		}

		c.JSON(200, gin.H{"status": "ready"})
	})

	// Protected
	api := r.Group("/api")
	api.Use(AuthMiddleware(jwtSecret, jwtAudience))
	{
		api.GET("/overview", dashboardHandler.GetOverview)
		api.GET("/distribution", dashboardHandler.GetDistribution)
		api.GET("/trends", dashboardHandler.GetTrends)
		api.GET("/teams", dashboardHandler.GetTeams)
		api.GET("/team-performance", dashboardHandler.GetTeamPerformance)

		api.GET("/tasks", taskHandler.GetTasks)
		api.GET("/tasks/:id", taskHandler.GetTask)
		api.GET("/projects", taskHandler.GetProjects)
		api.GET("/projects/stats", taskHandler.GetProjectStats)

		api.GET("/users", userHandler.GetUsers)
		api.GET("/users/:id", userHandler.GetUser)

		ai := api.Group("/ai")
		{
			ai.GET("/summary", insightHandler.GetSummary)
			ai.GET("/closure-performance", insightHandler.GetClosurePerformance)
			ai.GET("/due-compliance", insightHandler.GetDueCompliance)
			ai.GET("/predictions", insightHandler.GetPredictions)
			ai.GET("/team-benchmarking", insightHandler.GetTeamBenchmarking)
			ai.GET("/productivity-trends", insightHandler.GetProductivityTrends)
			ai.GET("/sentiment", insightHandler.GetSentiment)
			ai.GET("/dashboard", insightHandler.GetDashboard)
		}

		api.POST("/chat", chatHandler.HandleChat)

		api.GET("/settings", settingsHandler.GetSettings)
		api.POST("/settings", settingsHandler.SaveSettings)
	}

	return &Router{Engine: r}
}

func (r *Router) Run(port string) error {
	return r.Engine.Run(port)
}
