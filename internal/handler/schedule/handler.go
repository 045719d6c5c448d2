package schedule

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/medagenda/agenda-api/internal/service/schedule"
	apperrors "github.com/medagenda/agenda-api/pkg/errors"
	"github.com/medagenda/agenda-api/pkg/httputil"
)

type Handler struct {
	service *schedule.Service
}

func NewHandler(service *schedule.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	sched := r.Group("/schedule")
	{
		sched.GET("/slots", h.ListSlots)
	}
}

func (h *Handler) ListSlots(c *gin.Context) {
	professionalID, err := uuid.Parse(c.Query("professional_id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.NewBadRequest("invalid professional ID", err))
		return
	}

	from, err := parseInstantOrDate(c.Query("from"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.NewBadRequest("invalid from parameter", err))
		return
	}
	to, err := parseInstantOrDate(c.Query("to"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.NewBadRequest("invalid to parameter", err))
		return
	}

	slots, err := h.service.ListSlots(c.Request.Context(), professionalID, from, to)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, slots)
}

// parseInstantOrDate accepts RFC3339 instants or bare dates.
func parseInstantOrDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}
