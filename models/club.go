package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Club is a directory listing for a local activity/business.
type Club struct {
	bun.BaseModel `bun:"table:clubs,alias:c"`

	ID           uuid.UUID         `bun:"id,pk,type:uuid,default:gen_random_uuid()" json:"id"`
	Name         string            `bun:"name,notnull" json:"name"`
	Slug         string            `bun:"slug,notnull,unique" json:"slug"`
	Description  string            `bun:"description,nullzero" json:"description,omitempty"`
	MainImageURL *string           `bun:"main_image_url" json:"mainImageURL,omitempty"`
	PriceCents   *int              `bun:"price_cents" json:"priceCents,omitempty"`
	Currency     string            `bun:"currency,notnull,default:'RUB'" json:"currency"`
	Category     *string           `bun:"category" json:"category,omitempty"`
	MinAge       *int              `bun:"min_age" json:"minAge,omitempty"`
	MaxAge       *int              `bun:"max_age" json:"maxAge,omitempty"`
	PriceNotes   *string           `bun:"price_notes" json:"priceNotes,omitempty"`
	Phone        string            `bun:"phone,nullzero" json:"phone,omitempty"`
	WebSite      string            `bun:"web_site,nullzero" json:"webSite,omitempty"`
	SocialLinks  map[string]string `bun:"social_links,type:jsonb" json:"socialLinks,omitempty"`
	Tags         []string          `bun:"tags,type:jsonb" json:"tags"`
	GroupSize    *int              `bun:"group_size" json:"groupSize,omitempty"`
	TeacherID    *uuid.UUID        `bun:"teacher_id,type:uuid" json:"teacherID,omitempty"`
	AddressID    *uuid.UUID        `bun:"address_id,type:uuid" json:"addressID,omitempty"`
	Lat          *float64          `bun:"lat" json:"lat,omitempty"`
	Lon          *float64          `bun:"lon" json:"lon,omitempty"`
	CreatedAt    time.Time         `bun:"created_at,notnull,default:current_timestamp" json:"createdAt"`
	UpdatedAt    time.Time         `bun:"updated_at,notnull,default:current_timestamp" json:"updatedAt"`

	Address   *Address    `bun:"rel:belongs-to,join:address_id=id" json:"-"`
	Teacher   *Teacher    `bun:"rel:belongs-to,join:teacher_id=id" json:"-"`
	Images    []*Image    `bun:"rel:has-many,join:id=club_id" json:"-"`
	Schedules []*Schedule `bun:"rel:has-many,join:id=club_id" json:"-"`
	Reviews   []*Review   `bun:"rel:has-many,join:id=club_id" json:"-"`
}
