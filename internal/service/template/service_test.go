package template_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medagenda/agenda-api/internal/model"
	"github.com/medagenda/agenda-api/internal/repository/memory"
	"github.com/medagenda/agenda-api/internal/service/template"
	apperrors "github.com/medagenda/agenda-api/pkg/errors"
)

func newService() *template.Service {
	store := memory.NewStore()
	return template.NewService(memory.NewTemplateRepository(store), memory.NewBlockRepository(store))
}

func TestCreateTemplate(t *testing.T) {
	svc := newService()

	tpl, err := svc.CreateTemplate(context.Background(), &model.CreateTemplateRequest{
		ProfessionalID:      uuid.New(),
		DayOfWeek:           1,
		StartTime:           "09:00",
		EndTime:             "12:30",
		SlotDurationMinutes: 30,
	})
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, tpl.ID)
	assert.Equal(t, 9*60, tpl.StartMinute)
	assert.Equal(t, 12*60+30, tpl.EndMinute)
	assert.True(t, tpl.Active)
	assert.Nil(t, tpl.ValidFrom)
}

func TestCreateTemplateRejectsInvertedWindow(t *testing.T) {
	svc := newService()

	_, err := svc.CreateTemplate(context.Background(), &model.CreateTemplateRequest{
		ProfessionalID:      uuid.New(),
		DayOfWeek:           1,
		StartTime:           "12:00",
		EndTime:             "09:00",
		SlotDurationMinutes: 30,
	})
	assert.True(t, apperrors.IsInvalidInterval(err))
}

func TestCreateTemplateRejectsMalformedTime(t *testing.T) {
	svc := newService()

	_, err := svc.CreateTemplate(context.Background(), &model.CreateTemplateRequest{
		ProfessionalID:      uuid.New(),
		DayOfWeek:           1,
		StartTime:           "25:99",
		EndTime:             "12:00",
		SlotDurationMinutes: 30,
	})
	assert.True(t, apperrors.IsCode(err, apperrors.ErrBadRequest))
}

func TestCreateTemplateValidityBounds(t *testing.T) {
	svc := newService()

	tpl, err := svc.CreateTemplate(context.Background(), &model.CreateTemplateRequest{
		ProfessionalID:      uuid.New(),
		DayOfWeek:           2,
		StartTime:           "08:00",
		EndTime:             "12:00",
		SlotDurationMinutes: 20,
		ValidFrom:           "2025-01-01",
		ValidTo:             "2025-06-30",
	})
	require.NoError(t, err)
	require.NotNil(t, tpl.ValidFrom)
	require.NotNil(t, tpl.ValidTo)
	assert.Equal(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), *tpl.ValidFrom)

	_, err = svc.CreateTemplate(context.Background(), &model.CreateTemplateRequest{
		ProfessionalID:      uuid.New(),
		DayOfWeek:           2,
		StartTime:           "08:00",
		EndTime:             "12:00",
		SlotDurationMinutes: 20,
		ValidFrom:           "2025-06-30",
		ValidTo:             "2025-01-01",
	})
	assert.True(t, apperrors.IsInvalidInterval(err))
}

func TestUpdateTemplate(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	tpl, err := svc.CreateTemplate(ctx, &model.CreateTemplateRequest{
		ProfessionalID:      uuid.New(),
		DayOfWeek:           1,
		StartTime:           "09:00",
		EndTime:             "12:00",
		SlotDurationMinutes: 30,
	})
	require.NoError(t, err)

	end := "17:00"
	duration := 45
	updated, err := svc.UpdateTemplate(ctx, tpl.ID, &model.UpdateTemplateRequest{
		EndTime:             &end,
		SlotDurationMinutes: &duration,
	})
	require.NoError(t, err)
	assert.Equal(t, 17*60, updated.EndMinute)
	assert.Equal(t, 45, updated.SlotDurationMinutes)

	// Patches may not invert the window.
	badEnd := "08:00"
	_, err = svc.UpdateTemplate(ctx, tpl.ID, &model.UpdateTemplateRequest{EndTime: &badEnd})
	assert.True(t, apperrors.IsInvalidInterval(err))

	_, err = svc.UpdateTemplate(ctx, uuid.New(), &model.UpdateTemplateRequest{EndTime: &end})
	assert.True(t, apperrors.IsNotFound(err))
}

func TestDeactivateTemplate(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	tpl, err := svc.CreateTemplate(ctx, &model.CreateTemplateRequest{
		ProfessionalID:      uuid.New(),
		DayOfWeek:           1,
		StartTime:           "09:00",
		EndTime:             "12:00",
		SlotDurationMinutes: 30,
	})
	require.NoError(t, err)

	deactivated, err := svc.DeactivateTemplate(ctx, tpl.ID)
	require.NoError(t, err)
	assert.False(t, deactivated.Active)

	listed, err := svc.ListTemplates(ctx, tpl.ProfessionalID)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.False(t, listed[0].Active)
}

func TestCreateBlock(t *testing.T) {
	svc := newService()
	ctx := context.Background()
	pro := uuid.New()
	start := time.Date(2025, 3, 10, 13, 0, 0, 0, time.UTC)

	block, err := svc.CreateBlock(ctx, &model.CreateBlockRequest{
		ProfessionalID: pro,
		StartTime:      start,
		EndTime:        start.Add(2 * time.Hour),
		Reason:         "conference",
	})
	require.NoError(t, err)
	require.NotNil(t, block.Reason)
	assert.Equal(t, "conference", *block.Reason)

	_, err = svc.CreateBlock(ctx, &model.CreateBlockRequest{
		ProfessionalID: pro,
		StartTime:      start,
		EndTime:        start,
	})
	assert.True(t, apperrors.IsInvalidInterval(err))

	blocks, err := svc.ListBlocks(ctx, pro)
	require.NoError(t, err)
	require.Len(t, blocks, 1)

	require.NoError(t, svc.DeleteBlock(ctx, block.ID))
	blocks, err = svc.ListBlocks(ctx, pro)
	require.NoError(t, err)
	assert.Empty(t, blocks)

	assert.True(t, apperrors.IsNotFound(svc.DeleteBlock(ctx, block.ID)))
}
