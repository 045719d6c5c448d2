package schedule

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/medagenda/agenda-api/internal/model"
	"github.com/medagenda/agenda-api/internal/repository"
	"github.com/medagenda/agenda-api/pkg/clock"
	apperrors "github.com/medagenda/agenda-api/pkg/errors"
	"github.com/medagenda/agenda-api/pkg/metrics"
)

// Service derives offerable time slots from availability templates,
// exception blocks and bookings. Generation is a pure function of the
// store snapshots, the query range and "now"; nothing is persisted.
type Service struct {
	templates repository.TemplateRepository
	blocks    repository.BlockRepository
	bookings  repository.BookingRepository
	clock     clock.Clock
	metrics   *metrics.Metrics
}

func NewService(
	templates repository.TemplateRepository,
	blocks repository.BlockRepository,
	bookings repository.BookingRepository,
	clk clock.Clock,
	m *metrics.Metrics,
) *Service {
	return &Service{
		templates: templates,
		blocks:    blocks,
		bookings:  bookings,
		clock:     clk,
		metrics:   m,
	}
}

// GenerateSlots expands every template matching a calendar date in
// [rangeStart, rangeEnd] and tags each slot. An unknown professional
// yields an empty sequence, not an error: no template means no
// availability.
func (s *Service) GenerateSlots(ctx context.Context, professionalID uuid.UUID, rangeStart, rangeEnd, now time.Time) ([]model.Slot, error) {
	if rangeStart.After(rangeEnd) {
		return nil, apperrors.NewInvalidRange("range start is after range end")
	}

	started := time.Now()

	templates, err := s.templates.ListForProfessional(ctx, professionalID)
	if err != nil {
		return nil, fmt.Errorf("failed to list templates: %w", err)
	}
	if len(templates) == 0 {
		return []model.Slot{}, nil
	}

	firstDay := midnight(rangeStart)
	lastDay := midnight(rangeEnd)

	blocks, err := s.blocks.ListForRange(ctx, professionalID, firstDay, lastDay.AddDate(0, 0, 1))
	if err != nil {
		return nil, fmt.Errorf("failed to list exception blocks: %w", err)
	}

	bookings, err := s.bookings.List(ctx, &model.BookingFilters{
		ProfessionalID: professionalID,
		Statuses:       model.OccupyingStatuses(),
		StartDate:      firstDay,
		EndDate:        lastDay.AddDate(0, 0, 1),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}

	var slots []model.Slot
	for day := firstDay; !day.After(lastDay); day = day.AddDate(0, 0, 1) {
		for _, slot := range expandDay(day, professionalID, templates) {
			slots = append(slots, classify(slot, blocks, bookings, now))
		}
	}

	if s.metrics != nil {
		s.metrics.SlotGenerationLatency.Observe(time.Since(started).Seconds())
		for _, slot := range slots {
			s.metrics.SlotsGenerated.WithLabelValues(string(slot.State)).Inc()
		}
	}

	log.Debug().
		Str("professional_id", professionalID.String()).
		Int("slots", len(slots)).
		Time("range_start", rangeStart).
		Time("range_end", rangeEnd).
		Msg("generated slots")

	return slots, nil
}

// ListSlots is the query-facing wrapper; "now" comes from the injected
// clock instead of a caller parameter.
func (s *Service) ListSlots(ctx context.Context, professionalID uuid.UUID, rangeStart, rangeEnd time.Time) ([]model.Slot, error) {
	return s.GenerateSlots(ctx, professionalID, rangeStart, rangeEnd, s.clock.Now())
}
