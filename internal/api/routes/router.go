package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/encodergroup/portal-go/internal/api/handlers"
	"github.com/encodergroup/portal-go/internal/api/middleware"
	"github.com/encodergroup/portal-go/internal/application"
	"github.com/encodergroup/portal-go/internal/notify"
)

func RegisterRoutes(r *gin.Engine, services *application.Services, hub *notify.Hub) {
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS())

	authHandler := handlers.NewAuthHandler(services.Users)
	userHandler := handlers.NewUserHandler(services.Users)
	requestHandler := handlers.NewRequestHandler(services.Requests)
	meetingHandler := handlers.NewMeetingHandler(services.Meetings)
	taskHandler := handlers.NewTaskHandler(services.Tasks)
	notificationHandler := handlers.NewNotificationHandler(services.Notifications)
	receiptHandler := handlers.NewReceiptHandler(services.Receipts)
	auditHandler := handlers.NewAuditHandler(services.Audit)
	wsHandler := handlers.NewWSHandler(hub)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := r.Group("/api/v1")

	auth := v1.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
		auth.POST("/logout", authHandler.Logout)
		auth.GET("/me", middleware.JWTAuthMiddleware(), authHandler.Me)
	}

	authed := v1.Group("")
	authed.Use(middleware.JWTAuthMiddleware())
	{
		requests := authed.Group("/requests")
		{
			requests.GET("/statuses", requestHandler.Statuses)
			requests.POST("", requestHandler.Create)
			requests.GET("", requestHandler.List)
			requests.GET("/:id", requestHandler.Get)
			requests.PUT("/:id", requestHandler.Update)
			requests.DELETE("/:id", requestHandler.Delete)
			requests.POST("/:id/submit", requestHandler.Submit)
			requests.POST("/:id/comments", requestHandler.AddComment)
			requests.POST("/:id/attachments", requestHandler.Upload)
			requests.GET("/:id/attachments/:attachmentId", requestHandler.Download)
			requests.GET("/:id/meetings", meetingHandler.ForRequest)
			requests.GET("/:id/tasks", taskHandler.Board)
			requests.POST("/:id/tasks", taskHandler.Create)

			requests.POST("/:id/advance", middleware.Admin(), requestHandler.Advance)
			requests.PUT("/:id/status", middleware.Admin(), requestHandler.SetStatus)
			requests.PUT("/:id/assign", middleware.Admin(), requestHandler.Assign)
		}

		tasks := authed.Group("/tasks")
		{
			tasks.PUT("/:taskId", taskHandler.Update)
			tasks.PUT("/:taskId/move", taskHandler.Move)
			tasks.DELETE("/:taskId", taskHandler.Delete)
		}

		meetings := authed.Group("/meetings")
		{
			meetings.POST("", meetingHandler.Schedule)
			meetings.GET("/upcoming", meetingHandler.Upcoming)
			meetings.POST("/:id/cancel", meetingHandler.Cancel)
		}

		receipts := authed.Group("/receipts")
		{
			receipts.POST("", receiptHandler.Create)
			receipts.GET("", receiptHandler.List)
			receipts.GET("/stats", receiptHandler.Stats)
			receipts.GET("/:id", receiptHandler.Get)
			receipts.PUT("/:id", receiptHandler.Update)
			receipts.PATCH("/:id/status", receiptHandler.SetStatus)
			receipts.DELETE("/:id", receiptHandler.Delete)
			receipts.GET("/:id/image", receiptHandler.Image)
		}

		notifications := authed.Group("/notifications")
		{
			notifications.GET("", notificationHandler.List)
			notifications.PUT("/read-all", notificationHandler.MarkAllRead)
			notifications.PUT("/:id/read", notificationHandler.MarkRead)
		}

		authed.PUT("/users/:id", userHandler.Update)

		admin := authed.Group("/admin")
		admin.Use(middleware.Admin())
		{
			admin.GET("/users", userHandler.List)
			admin.PUT("/users/:id/active", userHandler.SetActive)
			admin.GET("/audit", auditHandler.List)
		}

		authed.GET("/ws/notifications", wsHandler.Connect)
	}
}
