// Package api exposes the REST surface: thin handlers that parse input,
// call the services and shape responses into the standard envelope.
package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"todolist/internal/service"
)

// NewRouter builds the HTTP routing tree over the given services.
func NewRouter(projects *service.ProjectService, tasks *service.TaskService) *gin.Engine {
	router := gin.New()
	router.Use(RequestID(), RequestLogger(), gin.Recovery())

	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "Welcome to TodoList API",
			"health":  "/health",
		})
	})
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy", "message": "TodoList API is running"})
	})

	ph := &projectHandler{projects: projects}
	th := &taskHandler{tasks: tasks, projects: projects}

	v1 := router.Group("/api/v1")

	projectRoutes := v1.Group("/projects")
	projectRoutes.POST("", ph.create)
	projectRoutes.GET("", ph.list)
	projectRoutes.GET("/:id", ph.get)
	projectRoutes.PUT("/:id", ph.update)
	projectRoutes.DELETE("/:id", ph.delete)

	taskRoutes := v1.Group("/tasks")
	taskRoutes.POST("", th.create)
	taskRoutes.GET("", th.list)
	taskRoutes.GET("/overdue", th.listOverdue)
	taskRoutes.GET("/project/:id", th.listByProject)
	taskRoutes.GET("/:id", th.get)
	taskRoutes.PUT("/:id", th.update)
	taskRoutes.PATCH("/:id/status", th.changeStatus)
	taskRoutes.POST("/:id/close", th.close)
	taskRoutes.DELETE("/:id", th.delete)

	return router
}
