package handlers

import (
	"errors"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreatePostRequiresTitle(t *testing.T) {
	h := New(nil, nil, nil, nil, nil)

	for _, body := range []string{`{}`, `{"title":""}`, `{"title":"  "}`, `{"title":null}`} {
		t.Run(body, func(t *testing.T) {
			err := h.CreatePost(jsonContext(body))
			var httpErr *echo.HTTPError
			require.ErrorAs(t, err, &httpErr)
			assert.Equal(t, http.StatusBadRequest, httpErr.Code)
		})
	}
}

func TestUniqueSlug(t *testing.T) {
	t.Run("free base returned as-is", func(t *testing.T) {
		slug, err := uniqueSlug("novosti", func(string) (bool, error) { return false, nil })
		require.NoError(t, err)
		assert.Equal(t, "novosti", slug)
	})

	t.Run("suffix counts from 2", func(t *testing.T) {
		taken := map[string]bool{"novosti": true, "novosti-2": true}
		slug, err := uniqueSlug("novosti", func(s string) (bool, error) { return taken[s], nil })
		require.NoError(t, err)
		assert.Equal(t, "novosti-3", slug)
	})

	t.Run("probe error propagates", func(t *testing.T) {
		boom := errors.New("db down")
		_, err := uniqueSlug("novosti", func(string) (bool, error) { return false, boom })
		assert.ErrorIs(t, err, boom)
	})
}
