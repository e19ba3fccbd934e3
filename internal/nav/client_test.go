package nav

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/KeithOruwari19/walkingbuddy/internal/domain"
)

func newTestClient(geocodeURL, routeURL string) *Client {
	return NewClient(geocodeURL, routeURL, "walkingbuddy-test", 2*time.Second, 2*time.Second)
}

func TestGeocode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/search", r.URL.Path)
		require.Equal(t, "Laurier Library", r.URL.Query().Get("q"))
		require.Equal(t, "walkingbuddy-test", r.Header.Get("User-Agent"))
		w.Write([]byte(`[{"lat":"43.4723","lon":"-80.5262"}]`))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL, srv.URL)
	coord, err := c.Geocode(context.Background(), "Laurier Library")
	require.NoError(t, err)
	require.InDelta(t, 43.4723, coord.Lat(), 1e-9)
	require.InDelta(t, -80.5262, coord.Lon(), 1e-9)
}

func TestGeocodeNoResult(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL, srv.URL)
	_, err := c.Geocode(context.Background(), "nowhere at all")
	require.ErrorIs(t, err, ErrGeocodeFailed)
}

func TestGeocodeServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := newTestClient(srv.URL, srv.URL)
	_, err := c.Geocode(context.Background(), "anywhere")
	require.ErrorIs(t, err, ErrGeocodeFailed)
}

func TestRoute(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Contains(t, r.URL.Path, "/route/v1/walking/")
		require.Equal(t, "geojson", r.URL.Query().Get("geometries"))
		// OSRM geometry is lon,lat.
		w.Write([]byte(`{"code":"Ok","routes":[{"distance":1250.5,"duration":900.2,` +
			`"geometry":{"coordinates":[[-80.5262,43.4723],[-80.5270,43.4765]]},` +
			`"legs":[{"steps":[{"name":"University Ave"}]}]}]}`))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL, srv.URL)
	res, err := c.Route(context.Background(), domain.Coord{43.4723, -80.5262}, domain.Coord{43.4765, -80.5270}, "walking")
	require.NoError(t, err)
	require.Equal(t, "osrm", res.Source)
	require.False(t, res.Fallback)
	require.InDelta(t, 1250.5, res.DistanceM, 1e-9)
	require.InDelta(t, 900.2, res.DurationS, 1e-9)
	require.Len(t, res.Steps, 1)

	// Polyline comes back in lat,lon order.
	require.Len(t, res.Polyline, 2)
	require.InDelta(t, 43.4723, res.Polyline[0].Lat(), 1e-9)
	require.InDelta(t, -80.5262, res.Polyline[0].Lon(), 1e-9)
}

func TestRouteBadMode(t *testing.T) {
	c := newTestClient("http://unused", "http://unused")
	_, err := c.Route(context.Background(), domain.Coord{}, domain.Coord{}, "flying")
	require.ErrorIs(t, err, ErrInvalidMode)
}

func TestRouteNotOk(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"code":"NoRoute","routes":[]}`))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL, srv.URL)
	_, err := c.Route(context.Background(), domain.Coord{43.47, -80.52}, domain.Coord{43.48, -80.53}, "driving")
	require.ErrorIs(t, err, ErrRouteFailed)
}

func TestRouteOrFallback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	from := domain.Coord{43.4723, -80.5262}
	to := domain.Coord{43.4765, -80.5270}

	c := newTestClient(srv.URL, srv.URL)
	res := c.RouteOrFallback(context.Background(), from, to, "walking")
	require.True(t, res.Fallback)
	require.Equal(t, "haversine_fallback", res.Source)
	require.Equal(t, []domain.Coord{from, to}, res.Polyline)
	require.InDelta(t, HaversineKM(from, to)*1000, res.DistanceM, 0.1)
}

func TestHaversineKM(t *testing.T) {
	// Waterloo to Toronto city hall, roughly 94 km.
	waterloo := domain.Coord{43.4643, -80.5204}
	toronto := domain.Coord{43.6534, -79.3841}
	d := HaversineKM(waterloo, toronto)
	require.InDelta(t, 94, d, 3)

	require.Zero(t, HaversineKM(waterloo, waterloo))
}
