package http

import (
	"fmt"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	sharedDomain "github.com/davicafu/consentlab/internal/shared/domain"
	"github.com/davicafu/consentlab/internal/shared/platform/listview"
	"github.com/davicafu/consentlab/internal/shared/platform/query"
)

// PageLimits son los tamaños de página permitidos por el servidor.
type PageLimits struct {
	DefaultSize int
	MaxSize     int
}

// ListParams son los parámetros comunes de cualquier endpoint de listado.
type ListParams struct {
	Page   listview.PageState
	Sort   query.Sort
	Search string
}

// Query construye la ListQuery con los criterios propios del contexto.
func (p ListParams) Query(criteria sharedDomain.Criteria) query.ListQuery {
	return query.ListQuery{Criteria: criteria, Sort: p.Sort, Page: p.Page}
}

type listRequest struct {
	Page     *int   `form:"page"`
	PageSize *int   `form:"page_size"`
	Limit    *int   `form:"limit"`
	Offset   *int   `form:"offset"`
	Sort     string `form:"sort"`
	Order    string `form:"order"`
	Search   string `form:"search" binding:"max=200"`
}

// ParseListParams lee page/page_size/sort/order/search de la query string.
// limit/offset se aceptan para clientes antiguos cuando no viene page.
// Cualquier valor fuera de contrato se devuelve como ErrInvalidArgument.
func ParseListParams(c *gin.Context, limits PageLimits) (ListParams, error) {
	var req listRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		return ListParams{}, fmt.Errorf("%w: %s", listview.ErrInvalidArgument, err.Error())
	}

	page, err := pageState(req, limits)
	if err != nil {
		return ListParams{}, err
	}
	if page.PageSize > limits.MaxSize {
		return ListParams{}, fmt.Errorf("%w: page size must be <= %d, got %d",
			listview.ErrInvalidArgument, limits.MaxSize, page.PageSize)
	}

	dir, err := listview.ParseDirection(req.Order)
	if err != nil {
		return ListParams{}, err
	}
	field := strings.TrimSpace(req.Sort)
	// "-campo" es atajo de orden descendente
	if strings.HasPrefix(field, "-") {
		field = strings.TrimPrefix(field, "-")
		dir = listview.Desc
	}

	return ListParams{
		Page:   page,
		Sort:   query.Sort{Field: field, Desc: dir == listview.Desc},
		Search: strings.TrimSpace(req.Search),
	}, nil
}

func pageState(req listRequest, limits PageLimits) (listview.PageState, error) {
	if req.Page == nil && req.Limit != nil {
		offset := 0
		if req.Offset != nil {
			offset = *req.Offset
		}
		return query.OffsetPagination{Limit: *req.Limit, Offset: offset}.PageState()
	}

	size := limits.DefaultSize
	if req.PageSize != nil {
		size = *req.PageSize
	}
	page, err := listview.NewPageState(size)
	if err != nil {
		return listview.PageState{}, err
	}
	if req.Page != nil {
		page.CurrentPage = *req.Page
	}
	return page, page.Validate()
}

// TimeParam lee un parámetro opcional como RFC3339 o como fecha (2006-01-02).
func TimeParam(c *gin.Context, name string) (*time.Time, error) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return nil, nil
	}
	for _, layout := range []string{time.RFC3339, time.DateOnly} {
		if t, err := time.Parse(layout, raw); err == nil {
			return &t, nil
		}
	}
	return nil, fmt.Errorf("%w: %s must be RFC3339 or YYYY-MM-DD, got %q", listview.ErrInvalidArgument, name, raw)
}

// ListParam separa un parámetro "a,b,c" ignorando vacíos.
func ListParam(c *gin.Context, name string) []string {
	var out []string
	for _, part := range strings.Split(c.Query(name), ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
