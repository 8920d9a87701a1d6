package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	sharedDomain "github.com/davicafu/consentlab/internal/shared/domain"
	sharedHTTP "github.com/davicafu/consentlab/internal/shared/infra/inbound/http"
	"github.com/davicafu/consentlab/internal/task/application"
	taskDomain "github.com/davicafu/consentlab/internal/task/domain"
	"github.com/davicafu/consentlab/pkg/utils"
)

type TaskHandler struct {
	service *application.TaskService
	limits  sharedHTTP.PageLimits
}

func NewTaskHandler(service *application.TaskService, limits sharedHTTP.PageLimits) *TaskHandler {
	return &TaskHandler{service: service, limits: limits}
}

// ListTasks endpoint GET /tasks
func (h *TaskHandler) ListTasks(c *gin.Context) {
	params, err := sharedHTTP.ParseListParams(c, h.limits)
	if err != nil {
		utils.SendFromError(c, err)
		return
	}
	criteria, err := taskCriteria(c, params.Search)
	if err != nil {
		utils.SendFromError(c, err)
		return
	}

	page, err := h.service.ListTasks(c.Request.Context(), params.Query(criteria))
	if err != nil {
		utils.SendFromError(c, err)
		return
	}
	utils.SendPage(c, page)
}

// Board endpoint GET /tasks/board
func (h *TaskHandler) Board(c *gin.Context) {
	criteria, err := taskCriteria(c, c.Query("search"))
	if err != nil {
		utils.SendFromError(c, err)
		return
	}
	board, err := h.service.Board(c.Request.Context(), criteria)
	if err != nil {
		utils.SendFromError(c, err)
		return
	}
	utils.SendSuccess(c, http.StatusOK, board)
}

// Stats endpoint GET /tasks/stats?group_by=priority
func (h *TaskHandler) Stats(c *gin.Context) {
	criteria, err := taskCriteria(c, c.Query("search"))
	if err != nil {
		utils.SendFromError(c, err)
		return
	}
	field := c.DefaultQuery("group_by", "column")
	counts, err := h.service.Stats(c.Request.Context(), criteria, field)
	if err != nil {
		utils.SendFromError(c, err)
		return
	}
	utils.SendSuccess(c, http.StatusOK, gin.H{"groupBy": field, "counts": counts})
}

// MoveTask endpoint PATCH /tasks/:id/column
func (h *TaskHandler) MoveTask(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.SendBadRequest(c, "invalid task ID")
		return
	}
	var req struct {
		Column string `json:"column" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendBadRequest(c, err.Error())
		return
	}

	task, err := h.service.MoveTask(c.Request.Context(), id, req.Column)
	if err != nil {
		utils.SendFromError(c, err)
		return
	}
	utils.SendSuccess(c, http.StatusOK, task)
}

func taskCriteria(c *gin.Context, search string) (sharedDomain.Criteria, error) {
	var criterias []sharedDomain.Criteria

	if raw := sharedHTTP.ListParam(c, "column"); len(raw) > 0 {
		cols := make([]taskDomain.Column, 0, len(raw))
		for _, r := range raw {
			col, err := taskDomain.ParseColumn(r)
			if err != nil {
				return nil, err
			}
			cols = append(cols, col)
		}
		criterias = append(criterias, taskDomain.ColumnCriteria{Columns: cols})
	}
	if raw := c.Query("priority"); raw != "" {
		p, err := taskDomain.ParsePriority(raw)
		if err != nil {
			return nil, err
		}
		criterias = append(criterias, taskDomain.PriorityCriteria{Priority: p})
	}
	if who := c.Query("assignee"); who != "" {
		criterias = append(criterias, taskDomain.AssigneeCriteria{Assignee: who})
	}
	if ref := c.Query("application_ref"); ref != "" {
		criterias = append(criterias, taskDomain.ApplicationCriteria{Reference: ref})
	}

	from, err := sharedHTTP.TimeParam(c, "due_from")
	if err != nil {
		return nil, err
	}
	to, err := sharedHTTP.TimeParam(c, "due_to")
	if err != nil {
		return nil, err
	}
	if from != nil || to != nil {
		criterias = append(criterias, taskDomain.DueRangeCriteria{Start: from, End: to})
	}
	if search != "" {
		criterias = append(criterias, taskDomain.SearchCriteria(search))
	}
	return sharedDomain.And(criterias...), nil
}
