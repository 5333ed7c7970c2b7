package handlers

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/mapkadev/mapka/models"
)

func TestClubToView(t *testing.T) {
	img := "/media/board.jpg"
	cents := 15000
	wd := 0
	start, end := "10:00", "11:00"

	c := &models.Club{
		ID:           uuid.New(),
		Name:         "Шахматный клуб",
		Slug:         "shahmaty",
		Description:  "Занятия для детей",
		MainImageURL: &img,
		PriceCents:   &cents,
		Phone:        "+7 900 000-00-00",
		Tags:         []string{"шахматы"},
		Address:      &models.Address{Street: "ул. Ленина 5", City: "Калуга"},
		Schedules: []*models.Schedule{
			{Weekday: &wd, StartTime: &start, EndTime: &end},
		},
	}

	v := ClubToView(c, "https://example.ru")

	assert.Equal(t, c.ID.String(), v.ID)
	assert.Equal(t, "https://example.ru/media/board.jpg", v.Image)
	assert.Equal(t, "ул. Ленина 5, Калуга", v.Location)
	assert.Equal(t, []string{"шахматы"}, v.Tags)
	assert.Equal(t, 15000, *v.PriceCents)
	assert.Equal(t, 150.0, *v.PriceRub)
	assert.False(t, v.IsFavorite)

	if assert.Len(t, v.Schedules, 1) {
		assert.Equal(t, "Понедельник", v.Schedules[0].Day)
		assert.Equal(t, "10:00-11:00", v.Schedules[0].Time)
		assert.Equal(t, "", v.Schedules[0].Note)
	}
}

func TestClubToViewImageFallback(t *testing.T) {
	c := &models.Club{
		ID:   uuid.New(),
		Name: "x",
		Slug: "x",
		Images: []*models.Image{
			{URL: "/media/first.jpg"},
			{URL: "/media/second.jpg"},
		},
	}
	v := ClubToView(c, "https://example.ru")
	assert.Equal(t, "https://example.ru/media/first.jpg", v.Image)
}

func TestClubToViewAbsoluteImageKept(t *testing.T) {
	img := "https://cdn.example.ru/pic.jpg"
	c := &models.Club{ID: uuid.New(), Name: "x", Slug: "x", MainImageURL: &img}
	v := ClubToView(c, "https://example.ru")
	assert.Equal(t, img, v.Image)
}

func TestClubToViewEmptyCollections(t *testing.T) {
	c := &models.Club{ID: uuid.New(), Name: "x", Slug: "x"}
	v := ClubToView(c, "")

	// Clients iterate these; null would break them.
	assert.NotNil(t, v.Tags)
	assert.Empty(t, v.Tags)
	assert.NotNil(t, v.SocialLinks)
	assert.NotNil(t, v.Schedules)
	assert.Empty(t, v.Schedules)

	assert.Equal(t, "", v.Location)
	assert.Nil(t, v.PriceRub)
	assert.Equal(t, "", v.Image)
}

func TestSnapshotPage(t *testing.T) {
	v := ClubView{
		Name:        "Клуб",
		Description: "desc",
		Image:       "https://example.ru/media/x.jpg",
		Location:    "ул. Ленина 5, Калуга",
		Tags:        []string{"a", "b"},
	}
	p := snapshotPage(v)
	assert.Equal(t, v.Name, p.Name)
	assert.Equal(t, v.Description, p.Description)
	assert.Equal(t, v.Image, p.Image)
	assert.Equal(t, v.Location, p.Location)
	assert.Equal(t, v.Tags, p.Tags)
}
