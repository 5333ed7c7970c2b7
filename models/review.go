package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Review is a visitor review for a club. Append-only via the API.
type Review struct {
	bun.BaseModel `bun:"table:reviews,alias:r"`

	ID         uuid.UUID `bun:"id,pk,type:uuid,default:gen_random_uuid()" json:"id"`
	ClubID     uuid.UUID `bun:"club_id,notnull,type:uuid" json:"clubID"`
	AuthorName string    `bun:"author_name,nullzero" json:"author_name,omitempty"`
	Rating     int       `bun:"rating,notnull" json:"rating"`
	Text       string    `bun:"text,nullzero" json:"text,omitempty"`
	CreatedAt  time.Time `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`
}
