package http

import "github.com/gin-gonic/gin"

// RegisterTaskRoutes registra las rutas HTTP del tablero de tareas.
func RegisterTaskRoutes(r gin.IRouter, handler *TaskHandler) {
	tasks := r.Group("/tasks")
	{
		tasks.GET("", handler.ListTasks)
		tasks.GET("/board", handler.Board)
		tasks.GET("/stats", handler.Stats)
		tasks.PATCH("/:id/column", handler.MoveTask) // Mover una tarjeta de columna
	}
}
