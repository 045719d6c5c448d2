package model

type Professional struct {
	Base
	Name     string `db:"name" json:"name"`
	Email    string `db:"email" json:"email"`
	Timezone string `db:"timezone" json:"timezone"`
	Status   string `db:"status" json:"status"`
}

type CreateProfessionalRequest struct {
	Name     string `json:"name" binding:"required,max=255"`
	Email    string `json:"email" binding:"required,email"`
	Timezone string `json:"timezone" binding:"omitempty,max=64"`
}
