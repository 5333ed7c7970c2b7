package models

import (
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Schedule is one recurring time slot for a club. Rows where weekday,
// start, end and note are all empty are never persisted.
type Schedule struct {
	bun.BaseModel `bun:"table:schedules,alias:s"`

	ID        uuid.UUID `bun:"id,pk,type:uuid,default:gen_random_uuid()" json:"id"`
	ClubID    uuid.UUID `bun:"club_id,notnull,type:uuid" json:"clubID"`
	Weekday   *int      `bun:"weekday" json:"weekday,omitempty"`
	StartTime *string   `bun:"start_time" json:"startTime,omitempty"`
	EndTime   *string   `bun:"end_time" json:"endTime,omitempty"`
	Note      *string   `bun:"note" json:"note,omitempty"`
}
