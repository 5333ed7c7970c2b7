package models

import (
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Image is an uploaded media file attached to a club.
type Image struct {
	bun.BaseModel `bun:"table:images,alias:i"`

	ID      uuid.UUID `bun:"id,pk,type:uuid,default:gen_random_uuid()" json:"id"`
	ClubID  uuid.UUID `bun:"club_id,notnull,type:uuid" json:"clubID"`
	URL     string    `bun:"url,notnull" json:"url"`
	Alt     *string   `bun:"alt" json:"alt,omitempty"`
	IsCover bool      `bun:"is_cover,notnull,default:false" json:"isCover"`
}
