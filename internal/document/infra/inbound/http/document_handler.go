package http

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/davicafu/consentlab/internal/document/application"
	documentDomain "github.com/davicafu/consentlab/internal/document/domain"
	sharedDomain "github.com/davicafu/consentlab/internal/shared/domain"
	sharedHTTP "github.com/davicafu/consentlab/internal/shared/infra/inbound/http"
	"github.com/davicafu/consentlab/pkg/utils"
)

type DocumentHandler struct {
	service *application.DocumentService
	limits  sharedHTTP.PageLimits
}

func NewDocumentHandler(service *application.DocumentService, limits sharedHTTP.PageLimits) *DocumentHandler {
	return &DocumentHandler{service: service, limits: limits}
}

// ListDocuments endpoint GET /documents
func (h *DocumentHandler) ListDocuments(c *gin.Context) {
	params, err := sharedHTTP.ParseListParams(c, h.limits)
	if err != nil {
		utils.SendFromError(c, err)
		return
	}
	criteria, err := documentCriteria(c, params.Search)
	if err != nil {
		utils.SendFromError(c, err)
		return
	}

	page, err := h.service.ListDocuments(c.Request.Context(), params.Query(criteria))
	if err != nil {
		utils.SendFromError(c, err)
		return
	}
	utils.SendPage(c, page)
}

// Stats endpoint GET /documents/stats?group_by=classification
func (h *DocumentHandler) Stats(c *gin.Context) {
	criteria, err := documentCriteria(c, c.Query("search"))
	if err != nil {
		utils.SendFromError(c, err)
		return
	}
	field := c.DefaultQuery("group_by", "classification")
	counts, err := h.service.Stats(c.Request.Context(), criteria, field)
	if err != nil {
		utils.SendFromError(c, err)
		return
	}
	utils.SendSuccess(c, http.StatusOK, gin.H{"groupBy": field, "counts": counts})
}

// RegisterDocument endpoint POST /documents
func (h *DocumentHandler) RegisterDocument(c *gin.Context) {
	var req struct {
		Name           string `json:"name" binding:"required"`
		Classification string `json:"classification" binding:"required"`
		ApplicationRef string `json:"applicationRef" binding:"required"`
		UploadedBy     string `json:"uploadedBy"`
		SizeBytes      int64  `json:"sizeBytes" binding:"gte=0"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendBadRequest(c, err.Error())
		return
	}
	class, err := documentDomain.ParseClassification(req.Classification)
	if err != nil {
		utils.SendFromError(c, err)
		return
	}

	doc, err := h.service.RegisterDocument(c.Request.Context(), documentDomain.Document{
		Name:           req.Name,
		Classification: class,
		ApplicationRef: req.ApplicationRef,
		UploadedBy:     req.UploadedBy,
		SizeBytes:      req.SizeBytes,
	})
	if err != nil {
		utils.SendFromError(c, err)
		return
	}
	utils.SendSuccess(c, http.StatusCreated, doc)
}

func documentCriteria(c *gin.Context, search string) (sharedDomain.Criteria, error) {
	var criterias []sharedDomain.Criteria

	if raw := c.Query("classification"); raw != "" {
		class, err := documentDomain.ParseClassification(raw)
		if err != nil {
			return nil, err
		}
		criterias = append(criterias, documentDomain.ClassificationCriteria{Classification: class})
	}
	if ref := c.Query("application_ref"); ref != "" {
		criterias = append(criterias, documentDomain.ApplicationCriteria{Reference: ref})
	}
	if ext := c.Query("extension"); ext != "" {
		criterias = append(criterias, sharedDomain.Where("extension", sharedDomain.OpILike, ext))
	}
	if search != "" {
		criterias = append(criterias, documentDomain.NameLikeCriteria{Name: search})
	}
	if len(search) > 200 {
		return nil, fmt.Errorf("%w: search too long", sharedDomain.ErrInvalidArgument)
	}
	return sharedDomain.And(criterias...), nil
}
