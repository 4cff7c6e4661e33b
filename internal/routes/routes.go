package routes

import (
	"github.com/gin-gonic/gin"

	"tasktrack/internal/handlers"
)

func SetupRoutes(r *gin.Engine, taskHandler *handlers.TaskHandler) *gin.Engine {
	r.GET("/health", handlers.Health)

	tasks := r.Group("/tasks")
	{
		tasks.GET("", taskHandler.List)
		tasks.POST("", taskHandler.Create)
		tasks.GET("/:id", taskHandler.GetByID)
		tasks.PUT("/:id", taskHandler.Update)
		tasks.DELETE("/:id", taskHandler.Delete)
	}

	return r
}
