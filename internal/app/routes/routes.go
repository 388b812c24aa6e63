package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/wiseman/studentrecords/internal/app/controllers"
	"github.com/wiseman/studentrecords/internal/app/models/dto"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	moduleController *controllers.ModuleController,
	enrollmentController *controllers.EnrollmentController,
) {
	// API version group
	v1 := router.Group("/api/v1")

	// --- Auth routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/login", authController.Login)
		auth.POST("/register", authController.Register)
	}

	// --- User routes ---
	users := v1.Group("/users")
	{
		users.POST("/:id/password", authController.UpdatePassword)
	}

	// --- Module catalog routes ---
	modules := v1.Group("/modules")
	{
		modules.POST("", moduleController.CreateModule)
		modules.GET("", moduleController.ListModules)
	}

	// --- Student routes ---
	students := v1.Group("/students")
	{
		students.GET("/:username", enrollmentController.GetStudentDetail)
		students.POST("/:username/enrollments", enrollmentController.EnrollStudent)
	}

	// --- Enrollment routes ---
	enrollments := v1.Group("/enrollments")
	{
		enrollments.PUT("/:id/marks", enrollmentController.UpdateMarks)
		enrollments.DELETE("/:id", enrollmentController.Deregister)
	}

	// Health check endpoint (public)
	v1.GET("/health", func(c *gin.Context) {
		c.JSON(200, dto.APIResponse{
			Data: gin.H{"status": "ok"},
		})
	})
}
