package calendar

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"

	"github.com/medagenda/agenda-api/internal/model"
	"github.com/medagenda/agenda-api/internal/repository"
	"github.com/medagenda/agenda-api/pkg/clock"
	"github.com/medagenda/agenda-api/pkg/metrics"
)

// SlotSource produces the slot sequence the views are projected from.
type SlotSource interface {
	GenerateSlots(ctx context.Context, professionalID uuid.UUID, rangeStart, rangeEnd, now time.Time) ([]model.Slot, error)
}

// PatientDirectory resolves display labels for patient ids. The
// directory is an external collaborator; the core stores only the id.
type PatientDirectory interface {
	DisplayName(ctx context.Context, patientID uuid.UUID) (string, error)
}

// Config controls the fixed display window and locale policy.
type Config struct {
	DayStartHour      int
	DayEndHour        int
	IncludeSunday     bool
	MonthPreviewLimit int
	LabelMaxLen       int
	CacheTTL          time.Duration
}

func DefaultConfig() Config {
	return Config{
		DayStartHour:      8,
		DayEndHour:        20,
		IncludeSunday:     false,
		MonthPreviewLimit: 3,
		LabelMaxLen:       24,
		CacheTTL:          30 * time.Second,
	}
}

// Service builds day, week and month views over the slot generator
// output. All three are side-effect-free projections; results may be
// memoized for a short TTL keyed by view, professional and anchor date.
type Service struct {
	slots     SlotSource
	bookings  repository.BookingRepository
	directory PatientDirectory
	clock     clock.Clock
	metrics   *metrics.Metrics
	cfg       Config
	cache     *gocache.Cache
}

func NewService(
	slots SlotSource,
	bookings repository.BookingRepository,
	directory PatientDirectory,
	clk clock.Clock,
	m *metrics.Metrics,
	cfg Config,
) *Service {
	var cache *gocache.Cache
	if cfg.CacheTTL > 0 {
		cache = gocache.New(cfg.CacheTTL, 2*cfg.CacheTTL)
	}
	return &Service{
		slots:     slots,
		bookings:  bookings,
		directory: directory,
		clock:     clk,
		metrics:   m,
		cfg:       cfg,
		cache:     cache,
	}
}

// DayView returns the hourly rows for one professional and date.
func (s *Service) DayView(ctx context.Context, professionalID uuid.UUID, date time.Time) (*model.DayView, error) {
	key := fmt.Sprintf("day:%s:%s", professionalID, date.Format("2006-01-02"))
	if view, ok := s.cached(key); ok {
		return view.(*model.DayView), nil
	}

	day := midnight(date)
	cells, err := s.buildDayCells(ctx, professionalID, day)
	if err != nil {
		return nil, err
	}

	view := &model.DayView{
		ProfessionalID: professionalID,
		Date:           day.Format("2006-01-02"),
		Rows:           cells,
	}
	s.store(key, view, "day")
	return view, nil
}

// WeekView returns Monday-start day columns sharing the day view's
// hourly rows. Sunday is included only when the locale policy asks
// for it.
func (s *Service) WeekView(ctx context.Context, professionalID uuid.UUID, weekStart time.Time) (*model.WeekView, error) {
	monday := mondayOf(weekStart)

	key := fmt.Sprintf("week:%s:%s", professionalID, monday.Format("2006-01-02"))
	if view, ok := s.cached(key); ok {
		return view.(*model.WeekView), nil
	}

	days := 7
	if !s.cfg.IncludeSunday {
		days = 6
	}

	view := &model.WeekView{
		ProfessionalID: professionalID,
		WeekStart:      monday.Format("2006-01-02"),
	}
	for i := 0; i < days; i++ {
		day := monday.AddDate(0, 0, i)
		cells, err := s.buildDayCells(ctx, professionalID, day)
		if err != nil {
			return nil, err
		}
		view.Days = append(view.Days, model.WeekDay{
			Date:      day.Format("2006-01-02"),
			DayOfWeek: int(day.Weekday()),
			Cells:     cells,
		})
	}
	s.store(key, view, "week")
	return view, nil
}

// MonthView returns one cell per calendar day, padded with leading and
// trailing days of adjacent months to complete full Monday-start weeks.
func (s *Service) MonthView(ctx context.Context, professionalID uuid.UUID, monthAnchor time.Time) (*model.MonthView, error) {
	first := time.Date(monthAnchor.Year(), monthAnchor.Month(), 1, 0, 0, 0, 0, monthAnchor.Location())

	key := fmt.Sprintf("month:%s:%s", professionalID, first.Format("2006-01"))
	if view, ok := s.cached(key); ok {
		return view.(*model.MonthView), nil
	}

	gridStart := mondayOf(first)
	lastDay := first.AddDate(0, 1, -1)
	gridEnd := mondayOf(lastDay).AddDate(0, 0, 7) // exclusive

	bookings, err := s.bookings.List(ctx, &model.BookingFilters{
		ProfessionalID: professionalID,
		StartDate:      gridStart,
		EndDate:        gridEnd,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}

	counts := make(map[string]int)
	previews := make(map[string][]string)
	for _, b := range bookings {
		// Same occupancy rule as the day and week views: cancelled and
		// no-show bookings claim no time and are not counted.
		if !b.Occupies() {
			continue
		}
		day := b.StartTime.In(first.Location()).Format("2006-01-02")
		counts[day]++
		if len(previews[day]) < s.cfg.MonthPreviewLimit {
			previews[day] = append(previews[day], s.patientLabel(ctx, b.PatientID))
		}
	}

	view := &model.MonthView{
		ProfessionalID: professionalID,
		Month:          first.Format("2006-01"),
	}
	for week := gridStart; week.Before(gridEnd); week = week.AddDate(0, 0, 7) {
		var row []model.MonthCell
		for i := 0; i < 7; i++ {
			day := week.AddDate(0, 0, i)
			dayKey := day.Format("2006-01-02")
			row = append(row, model.MonthCell{
				Date:         dayKey,
				InMonth:      day.Month() == first.Month(),
				BookingCount: counts[dayKey],
				Previews:     previews[dayKey],
			})
		}
		view.Weeks = append(view.Weeks, row)
	}
	s.store(key, view, "month")
	return view, nil
}

// buildDayCells projects one day's slots onto the fixed hourly display
// window. When a template's slot duration is finer than an hour, the
// first occupied sub-slot in the hour determines the row's booking.
func (s *Service) buildDayCells(ctx context.Context, professionalID uuid.UUID, day time.Time) ([]model.CalendarCell, error) {
	now := s.clock.Now()

	slots, err := s.slots.GenerateSlots(ctx, professionalID, day, day, now)
	if err != nil {
		return nil, err
	}

	bookingByID, err := s.dayBookings(ctx, professionalID, day)
	if err != nil {
		return nil, err
	}

	var cells []model.CalendarCell
	for hour := s.cfg.DayStartHour; hour < s.cfg.DayEndHour; hour++ {
		start := day.Add(time.Duration(hour) * time.Hour)
		end := start.Add(time.Hour)
		cell := model.CalendarCell{
			StartTime: start,
			EndTime:   end,
			Past:      !end.After(now),
		}

		for _, slot := range slots {
			if !model.Overlaps(slot.StartTime, slot.EndTime, start, end) {
				continue
			}
			cell.InSchedule = true
			if slot.State == model.SlotStateBlocked {
				cell.Blocked = true
			}
			if slot.State == model.SlotStateOccupied && cell.Booking == nil && slot.BookingID != nil {
				if b, ok := bookingByID[*slot.BookingID]; ok {
					cell.Booking = &model.BookingPreview{
						BookingID:    b.ID,
						PatientID:    b.PatientID,
						PatientLabel: s.patientLabel(ctx, b.PatientID),
						Status:       b.Status,
					}
				}
			}
		}
		cells = append(cells, cell)
	}
	return cells, nil
}

func (s *Service) dayBookings(ctx context.Context, professionalID uuid.UUID, day time.Time) (map[uuid.UUID]*model.Booking, error) {
	bookings, err := s.bookings.List(ctx, &model.BookingFilters{
		ProfessionalID: professionalID,
		Statuses:       model.OccupyingStatuses(),
		StartDate:      day,
		EndDate:        day.AddDate(0, 0, 1),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	byID := make(map[uuid.UUID]*model.Booking, len(bookings))
	for _, b := range bookings {
		byID[b.ID] = b
	}
	return byID, nil
}

// patientLabel resolves and truncates the display label. Lookup
// failures degrade to a shortened id rather than failing the view.
func (s *Service) patientLabel(ctx context.Context, patientID uuid.UUID) string {
	name, err := s.directory.DisplayName(ctx, patientID)
	if err != nil || name == "" {
		name = patientID.String()[:8]
	}
	runes := []rune(name)
	if s.cfg.LabelMaxLen > 0 && len(runes) > s.cfg.LabelMaxLen {
		return string(runes[:s.cfg.LabelMaxLen-1]) + "…"
	}
	return name
}

func (s *Service) cached(key string) (interface{}, bool) {
	if s.cache == nil {
		return nil, false
	}
	view, ok := s.cache.Get(key)
	if s.metrics != nil {
		result := "miss"
		if ok {
			result = "hit"
		}
		s.metrics.CalendarCacheHits.WithLabelValues(result).Inc()
	}
	return view, ok
}

func (s *Service) store(key string, view interface{}, kind string) {
	if s.cache != nil {
		s.cache.Set(key, view, gocache.DefaultExpiration)
	}
	if s.metrics != nil {
		s.metrics.CalendarViews.WithLabelValues(kind).Inc()
	}
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// mondayOf returns the Monday on or before t, at midnight.
func mondayOf(t time.Time) time.Time {
	day := midnight(t)
	offset := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -offset)
}
