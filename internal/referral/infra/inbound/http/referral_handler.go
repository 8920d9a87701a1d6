package http

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/davicafu/consentlab/internal/referral/application"
	referralDomain "github.com/davicafu/consentlab/internal/referral/domain"
	sharedDomain "github.com/davicafu/consentlab/internal/shared/domain"
	sharedHTTP "github.com/davicafu/consentlab/internal/shared/infra/inbound/http"
	"github.com/davicafu/consentlab/internal/shared/platform/listview"
	"github.com/davicafu/consentlab/pkg/utils"
)

type ReferralHandler struct {
	service *application.ReferralService
	limits  sharedHTTP.PageLimits
}

func NewReferralHandler(service *application.ReferralService, limits sharedHTTP.PageLimits) *ReferralHandler {
	return &ReferralHandler{service: service, limits: limits}
}

// ListReferrals endpoint GET /referrals
func (h *ReferralHandler) ListReferrals(c *gin.Context) {
	params, err := sharedHTTP.ParseListParams(c, h.limits)
	if err != nil {
		utils.SendFromError(c, err)
		return
	}
	criteria, err := referralCriteria(c, params.Search)
	if err != nil {
		utils.SendFromError(c, err)
		return
	}

	page, err := h.service.ListReferrals(c.Request.Context(), params.Query(criteria))
	if err != nil {
		utils.SendFromError(c, err)
		return
	}
	utils.SendPage(c, page)
}

// Stats endpoint GET /referrals/stats?group_by=department
func (h *ReferralHandler) Stats(c *gin.Context) {
	criteria, err := referralCriteria(c, c.Query("search"))
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

func referralCriteria(c *gin.Context, search string) (sharedDomain.Criteria, error) {
	var criterias []sharedDomain.Criteria

	if dept := c.Query("department"); dept != "" {
		criterias = append(criterias, referralDomain.DepartmentCriteria{Department: dept})
	}
	if raw := c.Query("status"); raw != "" {
		st, err := referralDomain.ParseStatus(raw)
		if err != nil {
			return nil, err
		}
		criterias = append(criterias, referralDomain.StatusCriteria{Status: st})
	}
	if who := c.Query("assigned_to"); who != "" {
		criterias = append(criterias, referralDomain.AssigneeCriteria{Assignee: who})
	}
	if raw := c.Query("overdue"); raw != "" {
		overdue, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: overdue must be true or false, got %q", listview.ErrInvalidArgument, raw)
		}
		criterias = append(criterias, referralDomain.OverdueCriteria{Overdue: overdue})
	}
	if search != "" {
		criterias = append(criterias, referralDomain.SearchCriteria(search))
	}
	return sharedDomain.And(criterias...), nil
}
