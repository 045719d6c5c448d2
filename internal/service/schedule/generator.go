package schedule

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/medagenda/agenda-api/internal/model"
)

// expandDay partitions every matching template window on the given
// calendar date into fixed-duration candidate slots. When several
// templates cover the same weekday, the last-created one wins: its
// slots claim their intervals first, and candidates from older
// templates that overlap a claimed interval are suppressed. The
// resulting slots never overlap, even when the windows are misaligned.
func expandDay(day time.Time, professionalID uuid.UUID, templates []*model.AvailabilityTemplate) []model.Slot {
	weekday := int(day.Weekday())

	var matching []*model.AvailabilityTemplate
	for _, tpl := range templates {
		if tpl.Active && tpl.DayOfWeek == weekday && tpl.CoversDate(day) {
			matching = append(matching, tpl)
		}
	}
	if len(matching) == 0 {
		return nil
	}

	// Newest first.
	sort.Slice(matching, func(i, j int) bool {
		return matching[j].CreatedAt.Before(matching[i].CreatedAt)
	})

	var slots []model.Slot
	for _, tpl := range matching {
		dur := tpl.SlotDurationMinutes
		if dur <= 0 {
			continue
		}
		// A trailing window shorter than the slot duration is dropped.
		for m := tpl.StartMinute; m+dur <= tpl.EndMinute; m += dur {
			start := day.Add(time.Duration(m) * time.Minute)
			end := start.Add(time.Duration(dur) * time.Minute)
			if overlapsAny(slots, start, end) {
				continue
			}
			slots = append(slots, model.Slot{
				ProfessionalID: professionalID,
				StartTime:      start,
				EndTime:        end,
				State:          model.SlotStateAvailable,
			})
		}
	}

	sort.Slice(slots, func(i, j int) bool {
		return slots[i].StartTime.Before(slots[j].StartTime)
	})
	return slots
}

func overlapsAny(slots []model.Slot, start, end time.Time) bool {
	for _, s := range slots {
		if model.Overlaps(s.StartTime, s.EndTime, start, end) {
			return true
		}
	}
	return false
}

// classify assigns the slot state from blocks, bookings and "now".
// Blocked and Occupied win over Past; an otherwise-available past slot
// reports SlotStatePast. The past flag is set on every elapsed slot so
// historical views stay accurate.
func classify(slot model.Slot, blocks []*model.ExceptionBlock, bookings []*model.Booking, now time.Time) model.Slot {
	slot.Past = !slot.EndTime.After(now)

	for _, block := range blocks {
		if model.Overlaps(block.StartTime, block.EndTime, slot.StartTime, slot.EndTime) {
			slot.State = model.SlotStateBlocked
			return slot
		}
	}

	// Overlapping bookings on one slot are a data-integrity condition;
	// the earliest-created one is surfaced.
	var owner *model.Booking
	for _, booking := range bookings {
		if !booking.Occupies() {
			continue
		}
		if !model.Overlaps(booking.StartTime, booking.EndTime, slot.StartTime, slot.EndTime) {
			continue
		}
		if owner == nil || booking.CreatedAt.Before(owner.CreatedAt) {
			owner = booking
		}
	}
	if owner != nil {
		id := owner.ID
		slot.State = model.SlotStateOccupied
		slot.BookingID = &id
		return slot
	}

	if slot.Past {
		slot.State = model.SlotStatePast
		return slot
	}

	slot.State = model.SlotStateAvailable
	return slot
}

// midnight truncates t to the start of its calendar date.
func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
