package geocode

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func geocoderJSON(pos string) string {
	return fmt.Sprintf(`{"response":{"GeoObjectCollection":{"featureMember":[
		{"GeoObject":{"Point":{"pos":"%s"}}}
	]}}}`, pos)
}

func TestLookup(t *testing.T) {
	var calls atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		assert.Equal(t, "ул. Ленина 5, Калуга", r.URL.Query().Get("geocode"))
		assert.Equal(t, "1", r.URL.Query().Get("results"))
		fmt.Fprint(w, geocoderJSON("36.27 54.51"))
	}))
	defer srv.Close()

	g := New(Options{Endpoint: srv.URL, RPS: 1000}, zap.NewNop())

	p, ok := g.Lookup(context.Background(), "ул. Ленина 5, Калуга")
	require.True(t, ok)
	assert.InDelta(t, 54.51, p.Lat, 1e-9)
	assert.InDelta(t, 36.27, p.Lon, 1e-9)
}

func TestLookupCaches(t *testing.T) {
	var calls atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		fmt.Fprint(w, geocoderJSON("36.27 54.51"))
	}))
	defer srv.Close()

	g := New(Options{Endpoint: srv.URL, RPS: 1000}, zap.NewNop())

	for _, addr := range []string{
		"ул. Ленина 5",
		"  УЛ.  ленина   5 ",
		"ул. ленина 5",
	} {
		_, ok := g.Lookup(context.Background(), addr)
		require.True(t, ok, "addr %q", addr)
	}
	assert.Equal(t, int64(1), calls.Load())
}

func TestLookupEmptyAddress(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("provider should not be called for empty input")
	}))
	defer srv.Close()

	g := New(Options{Endpoint: srv.URL, RPS: 1000}, zap.NewNop())
	_, ok := g.Lookup(context.Background(), "   ")
	assert.False(t, ok)
}

func TestLookupErrorsAreMisses(t *testing.T) {
	tests := []struct {
		name string
		body string
		code int
	}{
		{name: "server error", body: "boom", code: http.StatusInternalServerError},
		{name: "empty result set", body: `{"response":{"GeoObjectCollection":{"featureMember":[]}}}`, code: http.StatusOK},
		{name: "malformed pos", body: geocoderJSON("not-a-pair"), code: http.StatusOK},
		{name: "invalid json", body: "{", code: http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.code)
				fmt.Fprint(w, tt.body)
			}))
			defer srv.Close()

			g := New(Options{Endpoint: srv.URL, RPS: 1000}, zap.NewNop())
			_, ok := g.Lookup(context.Background(), "ул. Ленина 5")
			assert.False(t, ok)
		})
	}
}

func TestLookupFailureNotCached(t *testing.T) {
	var calls atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		fmt.Fprint(w, geocoderJSON("36.27 54.51"))
	}))
	defer srv.Close()

	g := New(Options{Endpoint: srv.URL, RPS: 1000}, zap.NewNop())

	_, ok := g.Lookup(context.Background(), "ул. Ленина 5")
	require.False(t, ok)

	p, ok := g.Lookup(context.Background(), "ул. Ленина 5")
	require.True(t, ok)
	assert.InDelta(t, 54.51, p.Lat, 1e-9)
	assert.Equal(t, int64(2), calls.Load())
}

func TestParsePos(t *testing.T) {
	p, err := parsePos("36.27 54.51")
	require.NoError(t, err)
	assert.Equal(t, Point{Lat: 54.51, Lon: 36.27}, p)

	for _, bad := range []string{"", "36.27", "a b", "1 2 3"} {
		_, err := parsePos(bad)
		assert.Error(t, err, "pos %q", bad)
	}
}
