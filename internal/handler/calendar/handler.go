package calendar

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/medagenda/agenda-api/internal/service/calendar"
	apperrors "github.com/medagenda/agenda-api/pkg/errors"
	"github.com/medagenda/agenda-api/pkg/httputil"
)

type Handler struct {
	service *calendar.Service
}

func NewHandler(service *calendar.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	cal := r.Group("/calendar")
	{
		cal.GET("/day", h.DayView)
		cal.GET("/week", h.WeekView)
		cal.GET("/month", h.MonthView)
	}
}

func (h *Handler) DayView(c *gin.Context) {
	professionalID, date, ok := h.parseQuery(c, "date", "2006-01-02")
	if !ok {
		return
	}

	view, err := h.service.DayView(c.Request.Context(), professionalID, date)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, view)
}

func (h *Handler) WeekView(c *gin.Context) {
	professionalID, weekStart, ok := h.parseQuery(c, "week_start", "2006-01-02")
	if !ok {
		return
	}

	view, err := h.service.WeekView(c.Request.Context(), professionalID, weekStart)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, view)
}

func (h *Handler) MonthView(c *gin.Context) {
	professionalID, month, ok := h.parseQuery(c, "month", "2006-01")
	if !ok {
		return
	}

	view, err := h.service.MonthView(c.Request.Context(), professionalID, month)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, view)
}

func (h *Handler) parseQuery(c *gin.Context, param, layout string) (uuid.UUID, time.Time, bool) {
	professionalID, err := uuid.Parse(c.Query("professional_id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.NewBadRequest("invalid professional ID", err))
		return uuid.Nil, time.Time{}, false
	}

	anchor, err := time.Parse(layout, c.Query(param))
	if err != nil {
		httputil.RespondWithError(c, apperrors.NewBadRequest("invalid "+param+" parameter", err))
		return uuid.Nil, time.Time{}, false
	}

	return professionalID, anchor, true
}
