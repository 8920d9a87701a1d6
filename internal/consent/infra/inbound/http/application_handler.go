package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/davicafu/consentlab/internal/consent/application"
	consentDomain "github.com/davicafu/consentlab/internal/consent/domain"
	sharedDomain "github.com/davicafu/consentlab/internal/shared/domain"
	sharedHTTP "github.com/davicafu/consentlab/internal/shared/infra/inbound/http"
	"github.com/davicafu/consentlab/pkg/utils"
)

// ApplicationHandler encapsula los endpoints HTTP de la tabla de solicitudes.
type ApplicationHandler struct {
	service *application.ApplicationService
	limits  sharedHTTP.PageLimits
}

func NewApplicationHandler(service *application.ApplicationService, limits sharedHTTP.PageLimits) *ApplicationHandler {
	return &ApplicationHandler{service: service, limits: limits}
}

// ListApplications endpoint GET /applications con filtros, orden y paginación
func (h *ApplicationHandler) ListApplications(c *gin.Context) {
	params, err := sharedHTTP.ParseListParams(c, h.limits)
	if err != nil {
		utils.SendFromError(c, err)
		return
	}
	criteria, err := applicationCriteria(c, params.Search)
	if err != nil {
		utils.SendFromError(c, err)
		return
	}

	page, err := h.service.ListApplications(c.Request.Context(), params.Query(criteria))
	if err != nil {
		utils.SendFromError(c, err)
		return
	}
	utils.SendPage(c, page)
}

// GetApplication endpoint GET /applications/:id (id o referencia)
func (h *ApplicationHandler) GetApplication(c *gin.Context) {
	app, err := h.service.GetApplication(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.SendFromError(c, err)
		return
	}
	utils.SendSuccess(c, http.StatusOK, app)
}

// Stats endpoint GET /applications/stats?group_by=status
func (h *ApplicationHandler) Stats(c *gin.Context) {
	params, err := sharedHTTP.ParseListParams(c, h.limits)
	if err != nil {
		utils.SendFromError(c, err)
		return
	}
	criteria, err := applicationCriteria(c, params.Search)
	if err != nil {
		utils.SendFromError(c, err)
		return
	}

	field := c.DefaultQuery("group_by", "status")
	counts, err := h.service.Stats(c.Request.Context(), criteria, field)
	if err != nil {
		utils.SendFromError(c, err)
		return
	}
	utils.SendSuccess(c, http.StatusOK, gin.H{"groupBy": field, "counts": counts})
}

// --- Filtros desde query params ---
func applicationCriteria(c *gin.Context, search string) (sharedDomain.Criteria, error) {
	var criterias []sharedDomain.Criteria

	if raw := sharedHTTP.ListParam(c, "status"); len(raw) > 0 {
		statuses := make([]consentDomain.Status, 0, len(raw))
		for _, s := range raw {
			st, err := consentDomain.ParseStatus(s)
			if err != nil {
				return nil, err
			}
			statuses = append(statuses, st)
		}
		criterias = append(criterias, consentDomain.StatusCriteria{Statuses: statuses})
	}
	if dept := c.Query("department"); dept != "" {
		criterias = append(criterias, consentDomain.DepartmentCriteria{Department: dept})
	}
	if typ := c.Query("type"); typ != "" {
		criterias = append(criterias, consentDomain.TypeCriteria{Type: typ})
	}
	if search != "" {
		criterias = append(criterias, consentDomain.SearchCriteria(search))
	}

	from, err := sharedHTTP.TimeParam(c, "lodged_from")
	if err != nil {
		return nil, err
	}
	to, err := sharedHTTP.TimeParam(c, "lodged_to")
	if err != nil {
		return nil, err
	}
	if from != nil || to != nil {
		criterias = append(criterias, consentDomain.LodgedRangeCriteria{From: from, To: to})
	}

	return sharedDomain.And(criterias...), nil
}
