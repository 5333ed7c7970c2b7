package handlers

import (
	"encoding/json"
	"math"
	"strings"

	"github.com/mapkadev/mapka/parse"
)

// Field models one key of a partial-update payload. Set is true when the
// key was present at all, Null when the client sent an explicit null.
// Unset means "leave alone", null means "clear".
type Field[T any] struct {
	Set   bool
	Null  bool
	Value T
}

// UnmarshalJSON is only invoked for keys present in the payload, which is
// what makes the presence tracking work.
func (f *Field[T]) UnmarshalJSON(b []byte) error {
	f.Set = true
	if string(b) == "null" {
		f.Null = true
		return nil
	}
	return json.Unmarshal(b, &f.Value)
}

// str returns the trimmed value, or "" when unset or null.
func (f Field[T]) str() string {
	if !f.Set || f.Null {
		return ""
	}
	if s, ok := any(f.Value).(string); ok {
		return strings.TrimSpace(s)
	}
	return ""
}

// clubPayload is the create/update body for a club. Field names mirror
// what the admin panel sends; several keys have a snake_case twin.
type clubPayload struct {
	Name          Field[string]                `json:"name"`
	Slug          Field[string]                `json:"slug"`
	Description   Field[string]                `json:"description"`
	Image         Field[string]                `json:"image"`
	PriceRub      Field[any]                   `json:"price_rub"`
	PriceCents    Field[any]                   `json:"price_cents"`
	Location      Field[string]                `json:"location"`
	Lat           Field[any]                   `json:"lat"`
	Lon           Field[any]                   `json:"lon"`
	Phone         Field[string]                `json:"phone"`
	WebSite       Field[string]                `json:"webSite"`
	Website       Field[string]                `json:"website"`
	SocialLinks   Field[any]                   `json:"socialLinks"`
	SocialLinks2  Field[any]                   `json:"social_links"`
	Tags          Field[any]                   `json:"tags"`
	Category      Field[string]                `json:"category"`
	MinAge        Field[any]                   `json:"minAge"`
	MinAge2       Field[any]                   `json:"min_age"`
	MaxAge        Field[any]                   `json:"maxAge"`
	MaxAge2       Field[any]                   `json:"max_age"`
	PriceNotes    Field[string]                `json:"priceNotes"`
	PriceNotes2   Field[string]                `json:"price_notes"`
	GroupSize     Field[any]                   `json:"group_size"`
	TeacherID     Field[string]                `json:"teacher_id"`
	Schedules     Field[[]parse.ScheduleInput] `json:"schedules"`
	IsFavorite    Field[bool]                  `json:"isFavorite"`
}

// first returns the first of the two alias fields that is present.
func first[T any](a, b Field[T]) Field[T] {
	if a.Set {
		return a
	}
	return b
}

// priceCents resolves the price in minor units. The second return reports
// whether the payload addressed price at all; a present-but-malformed
// value clears the price rather than erroring.
func priceCents(p *clubPayload) (*int, bool) {
	switch {
	case p.PriceRub.Set:
		if p.PriceRub.Null {
			return nil, true
		}
		if rub := parse.Float(p.PriceRub.Value); rub != nil && *rub >= 0 {
			c := int(math.Round(*rub * 100))
			return &c, true
		}
		return nil, true
	case p.PriceCents.Set:
		if p.PriceCents.Null {
			return nil, true
		}
		if c := parse.Int(p.PriceCents.Value); c != nil && *c >= 0 {
			return c, true
		}
		return nil, true
	}
	return nil, false
}

// intField resolves an optional integer key with a snake_case alias.
func intField(a, b Field[any]) (*int, bool) {
	f := first(a, b)
	if !f.Set {
		return nil, false
	}
	if f.Null {
		return nil, true
	}
	return parse.Int(f.Value), true
}

// normalizeTags keeps a payload tag list usable regardless of what shape
// the client sent; anything but a list of strings is silently dropped.
func normalizeTags(v any) []string {
	list, ok := v.([]any)
	if !ok {
		return []string{}
	}
	out := make([]string, 0, len(list))
	for _, item := range list {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// normalizeSocial keeps a social-links mapping usable regardless of shape;
// non-string values are dropped, non-mappings become empty.
func normalizeSocial(v any) map[string]string {
	m, ok := v.(map[string]any)
	if !ok {
		return map[string]string{}
	}
	out := make(map[string]string, len(m))
	for k, item := range m {
		if s, ok := item.(string); ok {
			out[k] = s
		}
	}
	return out
}

// coords extracts explicit lat/lon from the payload. Both must parse for
// the pair to count – lat and lon are only ever stored together.
func coords(p *clubPayload) (lat, lon *float64, present bool) {
	if !p.Lat.Set && !p.Lon.Set {
		return nil, nil, false
	}
	lat = parse.Float(p.Lat.Value)
	lon = parse.Float(p.Lon.Value)
	if p.Lat.Null || p.Lon.Null || lat == nil || lon == nil {
		return nil, nil, true
	}
	return lat, lon, true
}
