package utils

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	sharedDomain "github.com/davicafu/consentlab/internal/shared/domain"
	"github.com/davicafu/consentlab/internal/shared/platform/listview"
)

// ErrorResponse define la estructura estándar para las respuestas de error.
type ErrorResponse struct {
	Message string `json:"message"`
}

// PageResponse es el sobre de cualquier vista de listado.
type PageResponse[T any] struct {
	Items       []T  `json:"items"`
	CurrentPage int  `json:"currentPage"`
	PageSize    int  `json:"pageSize"`
	TotalPages  int  `json:"totalPages"`
	TotalItems  int  `json:"totalItems"`
	HasNext     bool `json:"hasNext"`
	HasPrevious bool `json:"hasPrevious"`
	// Destinos de los enlaces siguiente/anterior, ya acotados.
	NextPage     int `json:"nextPage"`
	PreviousPage int `json:"previousPage"`
}

// NewPageResponse copia el resultado de listview al sobre HTTP.
func NewPageResponse[T any](page listview.PageResult[T]) PageResponse[T] {
	items := page.Items
	if items == nil {
		items = []T{}
	}
	return PageResponse[T]{
		Items:       items,
		CurrentPage: page.CurrentPage,
		PageSize:    page.PageSize,
		TotalPages:  page.TotalPages,
		TotalItems:  page.TotalItems,
		HasNext:     page.HasNext(),
		HasPrevious: page.HasPrevious(),

		NextPage:     listview.NextPage(page.State(), page.TotalPages).CurrentPage,
		PreviousPage: listview.PreviousPage(page.State()).CurrentPage,
	}
}

// SendSuccess envía una respuesta exitosa con un payload de datos.
func SendSuccess(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, gin.H{
		"data": data,
	})
}

// SendPage envía una página con el sobre estándar.
func SendPage[T any](c *gin.Context, page listview.PageResult[T]) {
	SendSuccess(c, http.StatusOK, NewPageResponse(page))
}

// SendError envía una respuesta de error con un formato estandarizado.
func SendError(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, gin.H{
		"error": ErrorResponse{
			Message: message,
		},
	})
}

// StatusFor mapea los errores centinela a códigos HTTP.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, sharedDomain.ErrInvalidArgument):
		return http.StatusBadRequest
	case errors.Is(err, sharedDomain.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// SendFromError responde según el tipo de error. Los 500 no exponen el detalle.
func SendFromError(c *gin.Context, err error) {
	status := StatusFor(err)
	if status == http.StatusInternalServerError {
		SendInternalServerError(c, "internal server error")
		return
	}
	SendError(c, status, err.Error())
}

// --- Helpers específicos para errores comunes ---

func SendBadRequest(c *gin.Context, message string) {
	SendError(c, http.StatusBadRequest, message)
}

func SendNotFound(c *gin.Context, message string) {
	SendError(c, http.StatusNotFound, message)
}

func SendInternalServerError(c *gin.Context, message string) {
	SendError(c, http.StatusInternalServerError, message)
}
