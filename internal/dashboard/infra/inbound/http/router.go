package http

import "github.com/gin-gonic/gin"

// RegisterDashboardRoutes registra las rutas del panel municipal.
func RegisterDashboardRoutes(r gin.IRouter, handler *DashboardHandler) {
	dash := r.Group("/dashboard")
	{
		dash.GET("/summary", handler.Summary)
		dash.GET("/trend", handler.Trend)
	}
}
