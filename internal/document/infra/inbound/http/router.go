package http

import "github.com/gin-gonic/gin"

// RegisterDocumentRoutes registra las rutas HTTP del registro documental.
// El alta solo se expone si el almacén la admite.
func RegisterDocumentRoutes(r gin.IRouter, handler *DocumentHandler) {
	docs := r.Group("/documents")
	{
		docs.GET("", handler.ListDocuments)
		docs.GET("/stats", handler.Stats)
		if handler.service.Writable() {
			docs.POST("", handler.RegisterDocument)
		}
	}
}
