package postgres

import (
	"github.com/jmoiron/sqlx"
	"github.com/medagenda/agenda-api/internal/repository"
)

type templateRepository struct {
	db *sqlx.DB
}

type blockRepository struct {
	db *sqlx.DB
}

type bookingRepository struct {
	db *sqlx.DB
}

type professionalRepository struct {
	db *sqlx.DB
}

func NewTemplateRepository(db *sqlx.DB) repository.TemplateRepository {
	return &templateRepository{db: db}
}

func NewBlockRepository(db *sqlx.DB) repository.BlockRepository {
	return &blockRepository{db: db}
}

func NewBookingRepository(db *sqlx.DB) repository.BookingRepository {
	return &bookingRepository{db: db}
}

func NewProfessionalRepository(db *sqlx.DB) repository.ProfessionalRepository {
	return &professionalRepository{db: db}
}
