package http

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/davicafu/consentlab/internal/dashboard/application"
	dashboardDomain "github.com/davicafu/consentlab/internal/dashboard/domain"
	sharedDomain "github.com/davicafu/consentlab/internal/shared/domain"
	sharedHTTP "github.com/davicafu/consentlab/internal/shared/infra/inbound/http"
	"github.com/davicafu/consentlab/pkg/utils"
)

// trendWindow es el rango por defecto de /dashboard/trend.
const trendWindow = 30 * 24 * time.Hour

type DashboardHandler struct {
	service *application.DashboardService
}

func NewDashboardHandler(service *application.DashboardService) *DashboardHandler {
	return &DashboardHandler{service: service}
}

// Summary endpoint GET /dashboard/summary
func (h *DashboardHandler) Summary(c *gin.Context) {
	summary, err := h.service.Summary(c.Request.Context())
	if err != nil {
		utils.SendFromError(c, err)
		return
	}
	utils.SendSuccess(c, http.StatusOK, summary)
}

// Trend endpoint GET /dashboard/trend?dataset=applications&field=status&key=Approved
func (h *DashboardHandler) Trend(c *gin.Context) {
	dataset, field, key := c.Query("dataset"), c.DefaultQuery("field", "status"), c.Query("key")
	if dataset == "" || key == "" {
		utils.SendFromError(c, fmt.Errorf("%w: dataset and key are required", sharedDomain.ErrInvalidArgument))
		return
	}
	from, err := sharedHTTP.TimeParam(c, "from")
	if err != nil {
		utils.SendFromError(c, err)
		return
	}
	to, err := sharedHTTP.TimeParam(c, "to")
	if err != nil {
		utils.SendFromError(c, err)
		return
	}
	end := time.Now().UTC()
	if to != nil {
		end = *to
	}
	start := end.Add(-trendWindow)
	if from != nil {
		start = *from
	}

	points, err := h.service.Trend(c.Request.Context(), dataset, field, key, start, end)
	if errors.Is(err, dashboardDomain.ErrSnapshotsDisabled) {
		utils.SendError(c, http.StatusServiceUnavailable, err.Error())
		return
	}
	if err != nil {
		utils.SendFromError(c, err)
		return
	}
	utils.SendSuccess(c, http.StatusOK, gin.H{"dataset": dataset, "field": field, "key": key, "points": points})
}
