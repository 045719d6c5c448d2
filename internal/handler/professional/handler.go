package professional

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/medagenda/agenda-api/internal/model"
	"github.com/medagenda/agenda-api/internal/service/professional"
	apperrors "github.com/medagenda/agenda-api/pkg/errors"
	"github.com/medagenda/agenda-api/pkg/httputil"
)

type Handler struct {
	service *professional.Service
}

func NewHandler(service *professional.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	professionals := r.Group("/professionals")
	{
		professionals.POST("", h.CreateProfessional)
		professionals.GET("", h.ListProfessionals)
		professionals.GET("/:id", h.GetProfessional)
	}
}

func (h *Handler) CreateProfessional(c *gin.Context) {
	var req model.CreateProfessionalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, apperrors.NewBadRequest(err.Error(), err))
		return
	}

	created, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithCreated(c, created)
}

func (h *Handler) GetProfessional(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.NewBadRequest("invalid professional ID", err))
		return
	}

	p, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, p)
}

func (h *Handler) ListProfessionals(c *gin.Context) {
	professionals, err := h.service.List(c.Request.Context())
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, professionals)
}
