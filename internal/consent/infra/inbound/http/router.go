package http

import "github.com/gin-gonic/gin"

// RegisterApplicationRoutes registra las rutas HTTP de solicitudes.
func RegisterApplicationRoutes(r gin.IRouter, handler *ApplicationHandler) {
	apps := r.Group("/applications")
	{
		apps.GET("", handler.ListApplications)
		apps.GET("/stats", handler.Stats)
		apps.GET("/:id", handler.GetApplication)
	}
}
