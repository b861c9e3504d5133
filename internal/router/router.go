package router

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/stemsi/lms-backend/internal/config"
	"github.com/stemsi/lms-backend/internal/handler"
	"github.com/stemsi/lms-backend/internal/middleware"
	"github.com/stemsi/lms-backend/internal/model"
	"github.com/stemsi/lms-backend/internal/response"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Instructor   *handler.InstructorHandler
	Student      *handler.StudentHandler
	Enrollment   *handler.EnrollmentHandler
	Notification *handler.NotificationHandler
	WS           *handler.WSHandler
	System       *handler.SystemHandler
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
// ctx bounds background housekeeping owned by the router.
func SetupRouter(
	ctx context.Context,
	tokens middleware.TokenValidator,
	handlers *Handlers,
	cfg *config.Config,
) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.Default()

	// ─── CORS ──────────────────────────────────────────────────────────
	// If AllowedOrigins is set in config, restrict to that list;
	// otherwise allow all (*) so dev works without extra config.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID", "Retry-After"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	router.Use(response.RequestIDMiddleware())
	router.Use(middleware.Metrics())
	router.Use(middleware.BrotliWithConfig(middleware.BrotliConfig{
		MinLength: middleware.DefaultBrotliConfig.MinLength,
		Quality:   middleware.DefaultBrotliConfig.Quality,
		SkipPaths: []string{"/metrics", "/api/v1/admin/system"},
	}))

	router.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api/v1")
	api.Use(middleware.NoStore())

	authoringLimiter := middleware.NewRateLimiter(ctx, cfg.AuthoringRateLimit, time.Minute)

	// ─── 1. Instructor Group ───────────────────────────────────────────
	instructor := api.Group("/instructor")
	instructor.Use(middleware.RequireJWT(tokens, model.RoleInstructor, model.RoleAdmin))
	{
		instructor.POST("/tests", authoringLimiter.Middleware(), handlers.Instructor.CreateTest)
		instructor.GET("/tests", handlers.Instructor.ListTests)
		instructor.GET("/tests/:id/submissions", handlers.Instructor.ListTestSubmissions)

		instructor.POST("/assignments", handlers.Instructor.CreateAssignment)
		instructor.GET("/assignments", handlers.Instructor.ListAssignments)
		instructor.GET("/assignments/:id/submissions", handlers.Instructor.ListAssignmentSubmissions)
	}

	// ─── 2. Student Group ──────────────────────────────────────────────
	student := api.Group("/student")
	student.Use(middleware.RequireJWT(tokens, model.RoleStudent, model.RoleAdmin))
	{
		student.POST("/tests/submit", handlers.Student.SubmitTest)
		student.POST("/assignments/submit", handlers.Student.SubmitAssignment)

		student.GET("/:studentId/tests", handlers.Student.ListTests)
		student.GET("/:studentId/assignments", handlers.Student.ListAssignments)
		student.GET("/:studentId/test-submissions", handlers.Student.ListTestSubmissions)
		student.GET("/:studentId/assignment-submissions", handlers.Student.ListAssignmentSubmissions)
	}

	// ─── 3. Enrollment Group ───────────────────────────────────────────
	staffOnly := middleware.RequireRole(model.RoleInstructor, model.RoleAdmin)

	enrollments := api.Group("/enrollments")
	enrollments.Use(middleware.RequireJWT(tokens))
	{
		enrollments.POST("/enroll", handlers.Enrollment.Enroll)
		enrollments.PUT("/:id/progress", handlers.Enrollment.UpdateProgress)
		enrollments.PUT("/:id/complete", handlers.Enrollment.CompleteCourse)
		enrollments.PUT("/:id/drop", handlers.Enrollment.DropCourse)

		enrollments.GET("", staffOnly, handlers.Enrollment.ListEnrollments)
		enrollments.GET("/:id", handlers.Enrollment.GetEnrollment)
		enrollments.GET("/student/:studentId", handlers.Enrollment.ListByStudent)
		enrollments.GET("/course/:courseId", staffOnly, handlers.Enrollment.ListByCourse)
	}

	// ─── 4. Notification Group ─────────────────────────────────────────
	notifications := api.Group("/notifications")
	notifications.Use(middleware.RequireJWT(tokens))
	{
		notifications.GET("/user/:userId", handlers.Notification.ListByUser)
		notifications.GET("/user/:userId/unread-count", handlers.Notification.UnreadCount)
		notifications.PUT("/user/:userId/read-all", handlers.Notification.MarkAllAsRead)
		notifications.PUT("/:id/read", handlers.Notification.MarkAsRead)
	}

	// ─── 5. Admin Group ────────────────────────────────────────────────
	admin := api.Group("/admin")
	admin.Use(middleware.RequireJWT(tokens, model.RoleAdmin))
	{
		admin.GET("/system/status", handlers.System.SystemStatusSSE)
	}

	// ─── 6. WebSocket Group (query token auth) ─────────────────────────
	ws := router.Group("/ws/v1")
	ws.Use(middleware.RequireWSAuth(tokens))
	{
		ws.GET("/notifications", handlers.WS.NotificationStream)
	}

	return router
}
