package handlers

import (
	"strings"

	"github.com/mapkadev/mapka/models"
	"github.com/mapkadev/mapka/parse"
	"github.com/mapkadev/mapka/snapshot"
)

// ScheduleView is the wire form of a schedule row: display day name plus
// an "HH:MM-HH:MM" range, with the free-text note carried through.
type ScheduleView struct {
	Day  string `json:"day"`
	Time string `json:"time"`
	Note string `json:"note"`
}

// ClubView is the canonical JSON shape of a club. Everything the API
// returns and everything the snapshot embeds goes through this one
// mapping – there is no second serializer.
type ClubView struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Slug        string            `json:"slug"`
	Description string            `json:"description"`
	Image       string            `json:"image"`
	Location    string            `json:"location"`
	IsFavorite  bool              `json:"isFavorite"`
	Tags        []string          `json:"tags"`
	PriceCents  *int              `json:"price_cents"`
	PriceRub    *float64          `json:"price_rub"`
	Phone       string            `json:"phone"`
	WebSite     string            `json:"webSite"`
	SocialLinks map[string]string `json:"socialLinks"`
	Schedules   []ScheduleView    `json:"schedules"`
	Category    *string           `json:"category,omitempty"`
	MinAge      *int              `json:"min_age,omitempty"`
	MaxAge      *int              `json:"max_age,omitempty"`
	PriceNotes  *string           `json:"price_notes,omitempty"`
	GroupSize   *int              `json:"group_size,omitempty"`
	Lat         *float64          `json:"lat,omitempty"`
	Lon         *float64          `json:"lon,omitempty"`
	Teacher     *models.Teacher   `json:"teacher,omitempty"`
}

// ClubToView maps a loaded club entity to its wire form. baseOrigin turns
// relative image paths into absolute URLs.
func ClubToView(c *models.Club, baseOrigin string) ClubView {
	image := ""
	if c.MainImageURL != nil && *c.MainImageURL != "" {
		image = *c.MainImageURL
	} else if len(c.Images) > 0 {
		image = c.Images[0].URL
	}
	if strings.HasPrefix(image, "/") {
		image = strings.TrimRight(baseOrigin, "/") + image
	}

	tags := c.Tags
	if tags == nil {
		tags = []string{}
	}
	social := c.SocialLinks
	if social == nil {
		social = map[string]string{}
	}

	var priceRub *float64
	if c.PriceCents != nil {
		r := float64(*c.PriceCents) / 100
		priceRub = &r
	}

	schedules := make([]ScheduleView, 0, len(c.Schedules))
	for _, s := range c.Schedules {
		day := ""
		if s.Weekday != nil {
			day = parse.WeekdayName(*s.Weekday)
		}
		note := ""
		if s.Note != nil {
			note = *s.Note
		}
		schedules = append(schedules, ScheduleView{
			Day:  day,
			Time: parse.TimeRange(s.StartTime, s.EndTime),
			Note: note,
		})
	}

	return ClubView{
		ID:          c.ID.String(),
		Name:        c.Name,
		Slug:        c.Slug,
		Description: c.Description,
		Image:       image,
		Location:    c.Address.Location(),
		Tags:        tags,
		PriceCents:  c.PriceCents,
		PriceRub:    priceRub,
		Phone:       c.Phone,
		WebSite:     c.WebSite,
		SocialLinks: social,
		Schedules:   schedules,
		Category:    c.Category,
		MinAge:      c.MinAge,
		MaxAge:      c.MaxAge,
		PriceNotes:  c.PriceNotes,
		GroupSize:   c.GroupSize,
		Lat:         c.Lat,
		Lon:         c.Lon,
		Teacher:     c.Teacher,
	}
}

// snapshotPage extracts the fields the static page template embeds.
func snapshotPage(v ClubView) snapshot.Page {
	return snapshot.Page{
		Name:        v.Name,
		Description: v.Description,
		Image:       v.Image,
		Location:    v.Location,
		Tags:        v.Tags,
	}
}
