package booking

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/medagenda/agenda-api/internal/model"
	"github.com/medagenda/agenda-api/internal/service/booking"
	apperrors "github.com/medagenda/agenda-api/pkg/errors"
	"github.com/medagenda/agenda-api/pkg/httputil"
)

type Handler struct {
	service *booking.Service
}

func NewHandler(service *booking.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	bookings := r.Group("/bookings")
	{
		bookings.POST("", h.CreateBooking)
		bookings.GET("", h.ListBookings)
		bookings.GET("/:id", h.GetBooking)
		bookings.POST("/:id/confirm", h.ConfirmBooking)
		bookings.POST("/:id/cancel", h.CancelBooking)
		bookings.POST("/:id/complete", h.CompleteBooking)
		bookings.POST("/:id/no-show", h.MarkNoShow)
	}
}

func (h *Handler) CreateBooking(c *gin.Context) {
	var req model.CreateBookingRequest
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

func (h *Handler) GetBooking(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.NewBadRequest("invalid booking ID", err))
		return
	}

	b, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, b)
}

func (h *Handler) ListBookings(c *gin.Context) {
	professionalID, err := uuid.Parse(c.Query("professional_id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.NewBadRequest("invalid professional ID", err))
		return
	}

	filters := &model.BookingFilters{ProfessionalID: professionalID}

	if status := c.Query("status"); status != "" {
		filters.Statuses = []model.BookingStatus{model.BookingStatus(status)}
	}
	if from := c.Query("from"); from != "" {
		t, err := time.Parse(time.RFC3339, from)
		if err != nil {
			httputil.RespondWithError(c, apperrors.NewBadRequest("invalid from parameter", err))
			return
		}
		filters.StartDate = t
	}
	if to := c.Query("to"); to != "" {
		t, err := time.Parse(time.RFC3339, to)
		if err != nil {
			httputil.RespondWithError(c, apperrors.NewBadRequest("invalid to parameter", err))
			return
		}
		filters.EndDate = t
	}

	bookings, err := h.service.List(c.Request.Context(), filters)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, bookings)
}

func (h *Handler) ConfirmBooking(c *gin.Context) {
	h.transition(c, h.service.Confirm)
}

func (h *Handler) CompleteBooking(c *gin.Context) {
	h.transition(c, h.service.Complete)
}

func (h *Handler) MarkNoShow(c *gin.Context) {
	h.transition(c, h.service.MarkNoShow)
}

func (h *Handler) CancelBooking(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.NewBadRequest("invalid booking ID", err))
		return
	}

	var req model.CancelBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, apperrors.NewBadRequest(err.Error(), err))
		return
	}

	cancelled, err := h.service.Cancel(c.Request.Context(), id, req.CancelledBy, req.Reason)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, cancelled)
}

func (h *Handler) transition(c *gin.Context, fn func(ctx context.Context, id uuid.UUID) (*model.Booking, error)) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.NewBadRequest("invalid booking ID", err))
		return
	}

	b, err := fn(c.Request.Context(), id)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, b)
}
