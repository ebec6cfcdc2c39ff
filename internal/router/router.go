package router

import (
	"synergysphere/config"
	"synergysphere/internal/handler"
	"synergysphere/internal/middleware"
	"synergysphere/internal/repository"
	"synergysphere/internal/service"
	"synergysphere/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Deps struct {
	Config *config.Config
	DB     *gorm.DB
	Log    *zap.Logger
	Hub    *ws.Hub
	// Signaler defaults to Hub; main swaps in the Redis relay when configured.
	Signaler service.Signaler
	Limiter  *middleware.ClientRateLimiter
}

func Setup(d Deps) *gin.Engine {
	cfg := d.Config
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	if d.Hub == nil {
		d.Hub = ws.NewHub()
	}
	if d.Signaler == nil {
		d.Signaler = d.Hub
	}
	if d.Limiter == nil {
		d.Limiter = middleware.NewClientRateLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(d.Log))
	r.Use(middleware.CORS(cfg.Server.AllowedOrigins))

	// Repositories
	notificationRepo := repository.NewNotificationRepository(d.DB)
	activityRepo := repository.NewActivityRepository(d.DB)
	projectRepo := repository.NewProjectRepository(d.DB)
	profileRepo := repository.NewProfileRepository(d.DB)
	taskRepo := repository.NewTaskRepository(d.DB)
	messageRepo := repository.NewMessageRepository(d.DB)
	commentRepo := repository.NewCommentRepository(d.DB)

	// Services
	notifSvc := service.NewNotificationService(notificationRepo, d.Signaler, d.Log)
	activitySvc := service.NewActivityService(activityRepo, projectRepo)
	fanout := service.NewFanOut(notifSvc, activitySvc, d.Log)
	teamSvc := service.NewTeamService(projectRepo, profileRepo, fanout)
	taskSvc := service.NewTaskService(taskRepo, commentRepo, projectRepo, fanout)
	messageSvc := service.NewMessageService(messageRepo, projectRepo, fanout)

	// Handlers
	notificationHandler := handler.NewNotificationHandler(notifSvc)
	activityHandler := handler.NewActivityHandler(activitySvc)
	projectHandler := handler.NewProjectHandler(teamSvc)
	taskHandler := handler.NewTaskHandler(taskSvc)
	messageHandler := handler.NewMessageHandler(messageSvc)
	profileHandler := handler.NewProfileHandler(profileRepo)
	healthHandler := handler.NewHealthHandler(d.DB)

	r.GET("/healthz", healthHandler.Healthz)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/ws/notifications", ws.NotificationsWS(&cfg.JWT, d.Hub, cfg.Server.AllowedOrigins, d.Log))

	api := r.Group("/api/v1")
	api.Use(middleware.RateLimit(d.Limiter))
	api.Use(middleware.AuthRequired(&cfg.JWT))
	{
		me := api.Group("/me")
		me.GET("/profile", profileHandler.Get)
		me.PUT("/profile", profileHandler.Upsert)
		me.GET("/notifications", notificationHandler.List)
		me.GET("/notifications/unread-count", notificationHandler.UnreadCount)
		me.POST("/notifications/read", notificationHandler.MarkRead)
		me.POST("/notifications/read-all", notificationHandler.MarkAllRead)
		me.DELETE("/notifications/:id", notificationHandler.Delete)

		projects := api.Group("/projects")
		projects.POST("", projectHandler.Create)
		projects.PUT("/:project_id", projectHandler.Update)
		projects.GET("/:project_id/members", projectHandler.ListMembers)
		projects.POST("/:project_id/members", projectHandler.InviteMember)
		projects.PUT("/:project_id/members/:user_id", projectHandler.UpdateMemberRole)
		projects.DELETE("/:project_id/members/:user_id", projectHandler.RemoveMember)
		projects.GET("/:project_id/activities", activityHandler.List)
		projects.POST("/:project_id/tasks", taskHandler.Create)
		projects.GET("/:project_id/messages", messageHandler.List)
		projects.POST("/:project_id/messages", messageHandler.Post)

		tasks := api.Group("/tasks")
		tasks.PUT("/:task_id/assignee", taskHandler.Assign)
		tasks.POST("/:task_id/complete", taskHandler.Complete)
		tasks.GET("/:task_id/comments", taskHandler.ListComments)
		tasks.POST("/:task_id/comments", taskHandler.AddComment)
	}

	return r
}
