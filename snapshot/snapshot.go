// Package snapshot renders and caches the static HTML page for a club.
// Writes and removals are best-effort: callers log the returned error and
// carry on, a broken snapshot never fails the API request that caused it.
package snapshot

import (
	"bytes"
	"html/template"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

// Page carries the fields embedded into a club's static page.
type Page struct {
	Name        string
	Description string
	Image       string
	Location    string
	Tags        []string
}

const pageTemplate = `<!doctype html>
<html lang="ru">
<head><meta charset="utf-8"><meta name="viewport" content="width=device-width,initial-scale=1">
<title>{{.Name}}</title></head><body>
<main>
  <h1>{{.Name}}</h1>
  <p>{{.Description}}</p>
  <img src="{{.Image}}" alt="" style="max-width:640px;width:100%;height:auto" />
  <p>Адрес: {{.Location}}</p>
  <div>Теги: {{range .Tags}}<span class="tag-btn">{{.}}</span>{{end}}</div>
</main>
</body></html>`

// Store writes per-club HTML files into a content directory.
type Store struct {
	dir  string
	tmpl *template.Template
	log  *zap.Logger
}

// NewStore creates the content directory if needed and parses the template.
func NewStore(dir string, log *zap.Logger) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	tmpl, err := template.New("club").Parse(pageTemplate)
	if err != nil {
		return nil, err
	}
	return &Store{dir: dir, tmpl: tmpl, log: log}, nil
}

// Render produces the page HTML without touching the filesystem.
func (s *Store) Render(p Page) ([]byte, error) {
	var buf bytes.Buffer
	if err := s.tmpl.Execute(&buf, p); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Write renders and stores the page for slug, overwriting any previous file.
func (s *Store) Write(slug string, p Page) error {
	if slug == "" {
		return nil
	}
	html, err := s.Render(p)
	if err != nil {
		return err
	}
	return os.WriteFile(s.Path(slug), html, 0o644)
}

// Remove deletes the cached page for slug. Removing a missing file is a no-op.
func (s *Store) Remove(slug string) error {
	if slug == "" {
		return nil
	}
	err := os.Remove(s.Path(slug))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// Path returns the on-disk location for a slug's page.
func (s *Store) Path(slug string) string {
	return filepath.Join(s.dir, sanitizeSlug(slug)+".html")
}

// WriteBestEffort logs a failed write instead of returning it.
func (s *Store) WriteBestEffort(slug string, p Page) {
	if err := s.Write(slug, p); err != nil {
		s.log.Warn("snapshot write failed", zap.String("slug", slug), zap.Error(err))
	}
}

// RemoveBestEffort logs a failed removal instead of returning it.
func (s *Store) RemoveBestEffort(slug string) {
	if err := s.Remove(slug); err != nil {
		s.log.Warn("snapshot remove failed", zap.String("slug", slug), zap.Error(err))
	}
}

// sanitizeSlug keeps a slug from escaping the content directory.
func sanitizeSlug(slug string) string {
	r := strings.NewReplacer("/", "_", "\\", "_", "..", "_")
	return r.Replace(slug)
}
