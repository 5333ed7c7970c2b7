// Package geocode resolves free-text addresses to coordinates through an
// external provider. Every failure mode – network, bad payload, empty
// result – is reported as a plain miss; geocoding is never fatal to the
// request that triggered it.
package geocode

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/puzpuzpuz/xsync/v3"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Point is a resolved coordinate pair.
type Point struct {
	Lat float64
	Lon float64
}

type cacheEntry struct {
	point   Point
	fetched time.Time
}

// Geocoder wraps the provider behind an in-process cache. The cache is
// keyed by normalized address text and entries expire after TTL; the
// unique-address set of a town directory is small, so there is no
// eviction beyond that.
type Geocoder struct {
	client    *http.Client
	cache     *xsync.MapOf[string, cacheEntry]
	limiter   *rate.Limiter
	log       *zap.Logger
	endpoint  string
	apiKey    string
	userAgent string
	ttl       time.Duration
}

// Options configures a Geocoder. Zero values get sensible defaults.
type Options struct {
	Endpoint  string
	APIKey    string
	UserAgent string
	TTL       time.Duration
	// RPS throttles outbound provider calls. Public geocoders ban
	// clients that exceed ~1 req/s.
	RPS float64
	Client *http.Client
}

// New builds a Geocoder.
func New(opts Options, log *zap.Logger) *Geocoder {
	if opts.Client == nil {
		opts.Client = &http.Client{Timeout: 10 * time.Second}
	}
	if opts.TTL <= 0 {
		opts.TTL = 30 * 24 * time.Hour
	}
	if opts.RPS <= 0 {
		opts.RPS = 1
	}
	return &Geocoder{
		client:    opts.Client,
		cache:     xsync.NewMapOf[string, cacheEntry](),
		limiter:   rate.NewLimiter(rate.Limit(opts.RPS), 1),
		log:       log,
		endpoint:  opts.Endpoint,
		apiKey:    opts.APIKey,
		userAgent: opts.UserAgent,
		ttl:       opts.TTL,
	}
}

// Lookup resolves an address. ok is false on empty input, provider errors
// and empty result sets.
func (g *Geocoder) Lookup(ctx context.Context, address string) (Point, bool) {
	key := normalizeAddress(address)
	if key == "" {
		return Point{}, false
	}

	if entry, hit := g.cache.Load(key); hit && time.Since(entry.fetched) < g.ttl {
		return entry.point, true
	}

	if err := g.limiter.Wait(ctx); err != nil {
		return Point{}, false
	}

	point, err := g.fetch(ctx, address)
	if err != nil {
		g.log.Warn("geocode failed", zap.String("address", address), zap.Error(err))
		return Point{}, false
	}

	g.cache.Store(key, cacheEntry{point: point, fetched: time.Now()})
	return point, true
}

// geocoderResponse mirrors the provider's GeoObject envelope. The first
// member's Point.pos carries "longitude latitude".
type geocoderResponse struct {
	Response struct {
		GeoObjectCollection struct {
			FeatureMember []struct {
				GeoObject struct {
					Point struct {
						Pos string `json:"pos"`
					} `json:"Point"`
				} `json:"GeoObject"`
			} `json:"featureMember"`
		} `json:"GeoObjectCollection"`
	} `json:"response"`
}

func (g *Geocoder) fetch(ctx context.Context, address string) (Point, error) {
	q := url.Values{}
	q.Set("geocode", address)
	q.Set("format", "json")
	q.Set("results", "1")
	if g.apiKey != "" {
		q.Set("apikey", g.apiKey)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.endpoint+"?"+q.Encode(), nil)
	if err != nil {
		return Point{}, err
	}
	if g.userAgent != "" {
		req.Header.Set("User-Agent", g.userAgent)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return Point{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Point{}, errStatus(resp.StatusCode)
	}

	var body geocoderResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return Point{}, err
	}

	members := body.Response.GeoObjectCollection.FeatureMember
	if len(members) == 0 {
		return Point{}, errNoResult
	}
	return parsePos(members[0].GeoObject.Point.Pos)
}

// parsePos parses the provider's "lon lat" pair.
func parsePos(pos string) (Point, error) {
	parts := strings.Fields(pos)
	if len(parts) != 2 {
		return Point{}, errBadPos
	}
	lon, err := strconv.ParseFloat(parts[0], 64)
	if err != nil {
		return Point{}, errBadPos
	}
	lat, err := strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return Point{}, errBadPos
	}
	return Point{Lat: lat, Lon: lon}, nil
}

// normalizeAddress builds the cache key: trimmed, lowercased, inner
// whitespace collapsed.
func normalizeAddress(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}
