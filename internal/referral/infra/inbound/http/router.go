package http

import "github.com/gin-gonic/gin"

// RegisterReferralRoutes registra las rutas HTTP de consultas internas.
func RegisterReferralRoutes(r gin.IRouter, handler *ReferralHandler) {
	refs := r.Group("/referrals")
	{
		refs.GET("", handler.ListReferrals)
		refs.GET("/stats", handler.Stats)
	}
}
