package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Blog post publication states.
const (
	StatusDraft     = "draft"
	StatusPublished = "published"
)

// BlogPost is an article on the site blog. Drafts are hidden from public
// reads. The snake_case json tags are the wire contract the site frontend
// reads (cover_image, created_at, published_at).
type BlogPost struct {
	bun.BaseModel `bun:"table:blog_posts,alias:bp"`

	ID            uuid.UUID  `bun:"id,pk,type:uuid,default:gen_random_uuid()" json:"id"`
	Title         string     `bun:"title,notnull" json:"title"`
	Slug          string     `bun:"slug,notnull,unique" json:"slug"`
	Content       string     `bun:"content,nullzero" json:"content,omitempty"`
	Excerpt       string     `bun:"excerpt,nullzero" json:"excerpt,omitempty"`
	CoverImageURL *string    `bun:"cover_image_url" json:"cover_image,omitempty"`
	Status        string     `bun:"status,notnull,default:'draft'" json:"status"`
	PublishedAt   *time.Time `bun:"published_at" json:"published_at,omitempty"`
	CreatedAt     time.Time  `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`
	UpdatedAt     time.Time  `bun:"updated_at,notnull,default:current_timestamp" json:"updated_at"`
}

// SetStatus transitions the post, stamping published_at on the first
// publish. Re-publishing keeps the original timestamp; reverting to draft
// does not clear it.
func (p *BlogPost) SetStatus(status string, now time.Time) {
	p.Status = status
	if status == StatusPublished && p.PublishedAt == nil {
		p.PublishedAt = &now
	}
}
