// Package nav proxies geocoding (Nominatim) and routing (OSRM) with a
// great-circle fallback when routing is unavailable. Geocode failure is fatal
// to the caller; route failure never is.
package nav

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/KeithOruwari19/walkingbuddy/internal/domain"
	"github.com/KeithOruwari19/walkingbuddy/internal/metrics"
)

var (
	ErrGeocodeFailed = errors.New("geocode failed")
	ErrRouteFailed   = errors.New("route failed")
	ErrInvalidMode   = errors.New("mode must be walking or driving")
)

const earthRadiusKM = 6371.0

type Client struct {
	GeocodeURL string
	RouteURL   string
	UserAgent  string

	geocodeClient *http.Client
	routeClient   *http.Client
}

func NewClient(geocodeURL, routeURL, userAgent string, geocodeTimeout, routeTimeout time.Duration) *Client {
	return &Client{
		GeocodeURL:    geocodeURL,
		RouteURL:      routeURL,
		UserAgent:     userAgent,
		geocodeClient: &http.Client{Timeout: geocodeTimeout},
		routeClient:   &http.Client{Timeout: routeTimeout},
	}
}

// Geocode resolves a free-form address to coordinates via Nominatim.
func (c *Client) Geocode(ctx context.Context, address string) (domain.Coord, error) {
	q := url.Values{}
	q.Set("q", address)
	q.Set("format", "json")
	q.Set("limit", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.GeocodeURL+"/search?"+q.Encode(), nil)
	if err != nil {
		return domain.Coord{}, fmt.Errorf("%w: %v", ErrGeocodeFailed, err)
	}
	// Nominatim requires an identifying User-Agent.
	req.Header.Set("User-Agent", c.UserAgent)

	resp, err := c.geocodeClient.Do(req)
	if err != nil {
		return domain.Coord{}, fmt.Errorf("%w: %v", ErrGeocodeFailed, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return domain.Coord{}, fmt.Errorf("%w: status %d", ErrGeocodeFailed, resp.StatusCode)
	}

	var results []struct {
		Lat string `json:"lat"`
		Lon string `json:"lon"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return domain.Coord{}, fmt.Errorf("%w: %v", ErrGeocodeFailed, err)
	}
	if len(results) == 0 {
		return domain.Coord{}, fmt.Errorf("%w: no result for %q", ErrGeocodeFailed, address)
	}

	lat, err := strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return domain.Coord{}, fmt.Errorf("%w: bad latitude %q", ErrGeocodeFailed, results[0].Lat)
	}
	lon, err := strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return domain.Coord{}, fmt.Errorf("%w: bad longitude %q", ErrGeocodeFailed, results[0].Lon)
	}
	return domain.Coord{lat, lon}, nil
}

type RouteResult struct {
	Polyline  []domain.Coord    `json:"polyline"`
	DistanceM float64           `json:"distance_m"`
	DurationS float64           `json:"duration_s"`
	Steps     []json.RawMessage `json:"steps"`
	Source    string            `json:"source"`
	Fallback  bool              `json:"fallback"`
}

type osrmResponse struct {
	Code   string `json:"code"`
	Routes []struct {
		Distance float64 `json:"distance"`
		Duration float64 `json:"duration"`
		Geometry struct {
			Coordinates [][2]float64 `json:"coordinates"`
		} `json:"geometry"`
		Legs []struct {
			Steps []json.RawMessage `json:"steps"`
		} `json:"legs"`
	} `json:"routes"`
}

// Route asks OSRM for a path between two coordinates. Mode is "walking" or
// "driving". The returned polyline is in [lat, lon] order.
func (c *Client) Route(ctx context.Context, from, to domain.Coord, mode string) (*RouteResult, error) {
	if mode != "walking" && mode != "driving" {
		return nil, ErrInvalidMode
	}
	// OSRM takes lon,lat pairs.
	coords := fmt.Sprintf("%f,%f;%f,%f", from.Lon(), from.Lat(), to.Lon(), to.Lat())
	u := fmt.Sprintf("%s/route/v1/%s/%s?overview=full&geometries=geojson&steps=true", c.RouteURL, mode, coords)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRouteFailed, err)
	}
	resp, err := c.routeClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRouteFailed, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", ErrRouteFailed, resp.StatusCode)
	}

	var body osrmResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRouteFailed, err)
	}
	if body.Code != "Ok" || len(body.Routes) == 0 {
		return nil, fmt.Errorf("%w: code %q", ErrRouteFailed, body.Code)
	}

	rt := body.Routes[0]
	poly := make([]domain.Coord, 0, len(rt.Geometry.Coordinates))
	for _, lonlat := range rt.Geometry.Coordinates {
		poly = append(poly, domain.Coord{lonlat[1], lonlat[0]})
	}
	var steps []json.RawMessage
	if len(rt.Legs) > 0 {
		steps = rt.Legs[0].Steps
	}
	return &RouteResult{
		Polyline:  poly,
		DistanceM: rt.Distance,
		DurationS: rt.Duration,
		Steps:     steps,
		Source:    "osrm",
	}, nil
}

// RouteOrFallback tries OSRM first and degrades to a straight great-circle
// segment when routing is unavailable. It never returns an error.
func (c *Client) RouteOrFallback(ctx context.Context, from, to domain.Coord, mode string) *RouteResult {
	res, err := c.Route(ctx, from, to, mode)
	if err == nil {
		return res
	}
	log.Warn().Str("module", "nav").Err(err).Msg("route failed, using haversine fallback")
	metrics.RouteFallbacks.Inc()
	return FallbackRoute(from, to)
}

// FallbackRoute produces a two-point path with the haversine distance.
// Duration is unknown and left at zero.
func FallbackRoute(from, to domain.Coord) *RouteResult {
	km := HaversineKM(from, to)
	return &RouteResult{
		Polyline:  []domain.Coord{from, to},
		DistanceM: math.Round(km*1000*10) / 10,
		Steps:     []json.RawMessage{},
		Source:    "haversine_fallback",
		Fallback:  true,
	}
}

// HaversineKM returns the great-circle distance between two coordinates.
func HaversineKM(a, b domain.Coord) float64 {
	lat1, lon1 := radians(a.Lat()), radians(a.Lon())
	lat2, lon2 := radians(b.Lat()), radians(b.Lon())
	dlat := lat2 - lat1
	dlon := lon2 - lon1
	hav := math.Pow(math.Sin(dlat/2), 2) + math.Cos(lat1)*math.Cos(lat2)*math.Pow(math.Sin(dlon/2), 2)
	return 2 * earthRadiusKM * math.Asin(math.Sqrt(hav))
}

func radians(deg float64) float64 { return deg * math.Pi / 180 }
