package template

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/medagenda/agenda-api/internal/model"
	"github.com/medagenda/agenda-api/internal/service/template"
	apperrors "github.com/medagenda/agenda-api/pkg/errors"
	"github.com/medagenda/agenda-api/pkg/httputil"
)

type Handler struct {
	service *template.Service
}

func NewHandler(service *template.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	templates := r.Group("/templates")
	{
		templates.POST("", h.CreateTemplate)
		templates.GET("", h.ListTemplates)
		templates.PUT("/:id", h.UpdateTemplate)
		templates.POST("/:id/deactivate", h.DeactivateTemplate)
	}
	blocks := r.Group("/blocks")
	{
		blocks.POST("", h.CreateBlock)
		blocks.GET("", h.ListBlocks)
		blocks.DELETE("/:id", h.DeleteBlock)
	}
}

func (h *Handler) CreateTemplate(c *gin.Context) {
	var req model.CreateTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, apperrors.NewBadRequest(err.Error(), err))
		return
	}

	tpl, err := h.service.CreateTemplate(c.Request.Context(), &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithCreated(c, tpl)
}

func (h *Handler) UpdateTemplate(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.NewBadRequest("invalid template ID", err))
		return
	}

	var req model.UpdateTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, apperrors.NewBadRequest(err.Error(), err))
		return
	}

	tpl, err := h.service.UpdateTemplate(c.Request.Context(), id, &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, tpl)
}

func (h *Handler) DeactivateTemplate(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.NewBadRequest("invalid template ID", err))
		return
	}

	tpl, err := h.service.DeactivateTemplate(c.Request.Context(), id)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, tpl)
}

func (h *Handler) ListTemplates(c *gin.Context) {
	professionalID, err := uuid.Parse(c.Query("professional_id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.NewBadRequest("invalid professional ID", err))
		return
	}

	templates, err := h.service.ListTemplates(c.Request.Context(), professionalID)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, templates)
}

func (h *Handler) CreateBlock(c *gin.Context) {
	var req model.CreateBlockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, apperrors.NewBadRequest(err.Error(), err))
		return
	}

	block, err := h.service.CreateBlock(c.Request.Context(), &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithCreated(c, block)
}

func (h *Handler) DeleteBlock(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.NewBadRequest("invalid block ID", err))
		return
	}

	if err := h.service.DeleteBlock(c.Request.Context(), id); err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, nil)
}

func (h *Handler) ListBlocks(c *gin.Context) {
	professionalID, err := uuid.Parse(c.Query("professional_id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.NewBadRequest("invalid professional ID", err))
		return
	}

	blocks, err := h.service.ListBlocks(c.Request.Context(), professionalID)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, blocks)
}
