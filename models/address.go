package models

import (
	"strings"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Address holds the split street/city form of a club's free-text location.
type Address struct {
	bun.BaseModel `bun:"table:addresses,alias:a"`

	ID       uuid.UUID `bun:"id,pk,type:uuid,default:gen_random_uuid()" json:"id"`
	Street   string    `bun:"street,nullzero" json:"street,omitempty"`
	City     string    `bun:"city,nullzero" json:"city,omitempty"`
	Postcode *string   `bun:"postcode" json:"postcode,omitempty"`
	Region   *string   `bun:"region" json:"region,omitempty"`
	Lat      *float64  `bun:"lat" json:"lat,omitempty"`
	Lon      *float64  `bun:"lon" json:"lon,omitempty"`
}

// Location joins street and city back into the display form used by the API.
func (a *Address) Location() string {
	if a == nil {
		return ""
	}
	parts := make([]string, 0, 2)
	for _, p := range []string{a.Street, a.City} {
		if t := strings.TrimSpace(p); t != "" {
			parts = append(parts, t)
		}
	}
	return strings.Join(parts, ", ")
}
