package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// jsonContext builds an echo context carrying a JSON body, for handler
// paths that reject the request before touching any dependency.
func jsonContext(body string) echo.Context {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	return e.NewContext(req, httptest.NewRecorder())
}

func TestCreateClubRequiresName(t *testing.T) {
	h := New(nil, nil, nil, nil, nil)

	for _, body := range []string{
		`{}`,
		`{"name":""}`,
		`{"name":"   "}`,
		`{"name":null}`,
		`{"slug":"no-name","description":"x"}`,
	} {
		t.Run(body, func(t *testing.T) {
			err := h.CreateClub(jsonContext(body))
			var httpErr *echo.HTTPError
			require.ErrorAs(t, err, &httpErr)
			assert.Equal(t, http.StatusBadRequest, httpErr.Code)
		})
	}
}
