package models

import (
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Teacher is the person running a club's classes.
type Teacher struct {
	bun.BaseModel `bun:"table:teachers,alias:t"`

	ID       uuid.UUID `bun:"id,pk,type:uuid,default:gen_random_uuid()" json:"id"`
	Name     string    `bun:"name,notnull" json:"name"`
	Bio      *string   `bun:"bio" json:"bio,omitempty"`
	Phone    *string   `bun:"phone" json:"phone,omitempty"`
	Email    *string   `bun:"email" json:"email,omitempty"`
	PhotoURL *string   `bun:"photo_url" json:"photo_url,omitempty"`
}
