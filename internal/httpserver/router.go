package httpserver

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"

	"projecthub/internal/handler"
	"projecthub/pkg/mq"
)

type Router struct {
	Engine *gin.Engine
}

func NewRouter(
	authHandler *handler.AuthHandler,
	projectHandler *handler.ProjectHandler,
	taskHandler *handler.TaskHandler,
	milestoneHandler *handler.MilestoneHandler,
	meetingHandler *handler.MeetingHandler,
	inviteHandler *handler.InviteHandler,
	jwtSecret string,
	logger *zap.Logger,
	db *mongo.Client,
	publisher *mq.Publisher,
) *Router {
	r := gin.Default()

	// 添加请求日志中间件
	r.Use(func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery

		c.Next()

		latency := time.Since(start)
		logger.Info("HTTP Request",
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.String("query", query),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", latency),
			zap.String("client_ip", c.ClientIP()),
			zap.String("user_agent", c.Request.UserAgent()),
		)
	})
	r.Use(MetricsMiddleware())

	// Health endpoints (放在最前面)
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	r.HEAD("/healthz", func(c *gin.Context) {
		c.Status(200)
	})
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	r.HEAD("/health", func(c *gin.Context) {
		c.Status(200)
	})

	r.GET("/readyz", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c, 1*time.Second)
		defer cancel()

		if err := db.Ping(ctx, readpref.Primary()); err != nil {
			c.JSON(500, gin.H{"status": "db_not_ready", "error": err.Error()})
			return
		}

		if publisher != nil && !publisher.IsConnected() {
			c.JSON(500, gin.H{"status": "mq_not_ready"})
			return
		}

		c.JSON(200, gin.H{"status": "ready"})
	})

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Public
	r.POST("/register", authHandler.Register)
	r.POST("/login", authHandler.Login)
	r.GET("/invite/:code", inviteHandler.ResolveInvite)
	r.POST("/invite/:code/join", inviteHandler.JoinProject)

	// Protected
	auth := r.Group("/")
	auth.Use(AuthMiddleware(jwtSecret))
	{
		auth.GET("/me", authHandler.Me)
		auth.PUT("/profile", authHandler.CompleteProfile)
		auth.GET("/username-available", authHandler.UsernameAvailable)

		auth.POST("/projects", projectHandler.CreateProject)
		auth.GET("/projects", projectHandler.ListProjects)
		auth.GET("/projects/:id", projectHandler.GetProject)
		auth.GET("/projects/:id/members", projectHandler.Members)
		auth.GET("/projects/:id/progress", projectHandler.Progress)
		auth.GET("/projects/:id/progress/stream", projectHandler.StreamProgress)
		auth.GET("/projects/:id/activity", projectHandler.Activity)

		auth.POST("/projects/:id/tasks", taskHandler.CreateTask)
		auth.GET("/projects/:id/tasks", taskHandler.ListProjectTasks)
		auth.GET("/projects/:id/tasks/stream", taskHandler.StreamProjectTasks)
		auth.GET("/tasks", taskHandler.ListMyTasks)
		auth.GET("/tasks/stream", taskHandler.StreamMyTasks)
		auth.POST("/tasks/:id/status", taskHandler.UpdateStatus)
		auth.DELETE("/tasks/:id", taskHandler.DeleteTask)

		auth.POST("/projects/:id/milestones", milestoneHandler.CreateMilestone)
		auth.GET("/projects/:id/milestones", milestoneHandler.ListMilestones)
		auth.GET("/projects/:id/milestones/stream", milestoneHandler.StreamMilestones)
		auth.POST("/milestones/:id/toggle", milestoneHandler.ToggleMilestone)
		auth.DELETE("/milestones/:id", milestoneHandler.DeleteMilestone)

		auth.POST("/projects/:id/meetings", meetingHandler.CreateMeeting)
		auth.GET("/projects/:id/meetings", meetingHandler.ListMeetings)
		auth.GET("/projects/:id/meetings/stream", meetingHandler.StreamMeetings)
		auth.DELETE("/meetings/:id", meetingHandler.DeleteMeeting)
	}

	return &Router{Engine: r}
}

func (r *Router) Run(port string) error {
	return r.Engine.Run(port)
}
