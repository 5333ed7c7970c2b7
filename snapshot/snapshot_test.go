package snapshot

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(t.TempDir(), zap.NewNop())
	require.NoError(t, err)
	return s
}

func TestWriteAndRemove(t *testing.T) {
	s := newTestStore(t)

	page := Page{
		Name:        "Шахматный клуб",
		Description: "Занятия для детей",
		Image:       "/media/board.jpg",
		Location:    "ул. Ленина 5, Калуга",
		Tags:        []string{"шахматы", "дети"},
	}
	require.NoError(t, s.Write("shahmaty", page))

	raw, err := os.ReadFile(s.Path("shahmaty"))
	require.NoError(t, err)
	html := string(raw)
	assert.Contains(t, html, "<h1>Шахматный клуб</h1>")
	assert.Contains(t, html, "Адрес: ул. Ленина 5, Калуга")
	assert.Contains(t, html, `<span class="tag-btn">шахматы</span>`)
	assert.Contains(t, html, `lang="ru"`)

	require.NoError(t, s.Remove("shahmaty"))
	_, err = os.Stat(s.Path("shahmaty"))
	assert.True(t, os.IsNotExist(err))
}

func TestRemoveMissingIsNoop(t *testing.T) {
	s := newTestStore(t)
	assert.NoError(t, s.Remove("never-written"))
	assert.NoError(t, s.Remove(""))
}

func TestWriteEmptySlugIsNoop(t *testing.T) {
	dir := t.TempDir()
	s, err := NewStore(dir, zap.NewNop())
	require.NoError(t, err)

	require.NoError(t, s.Write("", Page{Name: "x"}))
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestWriteOverwrites(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Write("club", Page{Name: "Старое имя"}))
	require.NoError(t, s.Write("club", Page{Name: "Новое имя"}))

	raw, err := os.ReadFile(s.Path("club"))
	require.NoError(t, err)
	assert.Contains(t, string(raw), "Новое имя")
	assert.NotContains(t, string(raw), "Старое имя")
}

func TestRenderEscapesHTML(t *testing.T) {
	s := newTestStore(t)
	html, err := s.Render(Page{
		Name:        `<script>alert("x")</script>`,
		Description: "a < b",
	})
	require.NoError(t, err)
	assert.NotContains(t, string(html), "<script>alert")
	assert.Contains(t, string(html), "&lt;script&gt;")
}

func TestPathStaysInsideDir(t *testing.T) {
	dir := t.TempDir()
	s, err := NewStore(dir, zap.NewNop())
	require.NoError(t, err)

	for _, slug := range []string{"../escape", "a/b", `a\b`, "....//x"} {
		p := s.Path(slug)
		rel, err := filepath.Rel(dir, p)
		require.NoError(t, err, "slug %q", slug)
		assert.False(t, strings.HasPrefix(rel, ".."), "slug %q resolved to %q", slug, p)
	}
}
