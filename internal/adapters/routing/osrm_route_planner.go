package routing

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"math"
	"net/http"
	"strings"
	"time"

	"eld-trip-service/internal/adapters/cache"
	"eld-trip-service/internal/domain"
	"eld-trip-service/internal/metrics"
	"eld-trip-service/internal/platform/obs"
	"eld-trip-service/internal/ports"

	"golang.org/x/time/rate"
)

// OSRMRoutePlanner implements ports.RoutePlanner using the public OSRM
// routing service with Nominatim geocoding.
//
// It coordinates:
//   - Address normalization
//   - Redis-backed geocode and route caching
//   - Rate-limited geocoding per Nominatim's usage policy
//   - External API calls with retry/backoff
//
// The planner is safe for concurrent use.
type OSRMRoutePlanner struct {
	session        *http.Client
	baseURL        string
	nominatimURL   string
	profile        string
	userAgent      string
	geocodeLimiter *rate.Limiter
	geocodeCache   *cache.RedisGeocodeCache
	routeCache     *cache.RedisRouteCache
}

type OSRMConfig struct {
	BaseURL      string
	NominatimURL string
	UserAgent    string
}

func NewOSRMRoutePlanner(
	cfg OSRMConfig,
	geocodeCache *cache.RedisGeocodeCache,
	routeCache *cache.RedisRouteCache,
) *OSRMRoutePlanner {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = "https://router.project-osrm.org"
	}
	nominatimURL := cfg.NominatimURL
	if nominatimURL == "" {
		nominatimURL = "https://nominatim.openstreetmap.org"
	}
	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = "eld-trip-service/1.0"
	}

	return &OSRMRoutePlanner{
		session:      &http.Client{Timeout: 15 * time.Second},
		baseURL:      baseURL,
		nominatimURL: nominatimURL,
		profile:      "driving",
		userAgent:    userAgent,
		// Nominatim allows at most one request per second.
		geocodeLimiter: rate.NewLimiter(rate.Every(time.Second), 1),
		geocodeCache:   geocodeCache,
		routeCache:     routeCache,
	}
}

// normalize ensures consistent cache keys by collapsing whitespace.
func (p *OSRMRoutePlanner) normalize(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// PlanRoute computes the driving route current -> pickup -> dropoff.
// When the trip already starts at the pickup the deadhead waypoint is
// dropped, so the route never contains a zero-length leg.
func (p *OSRMRoutePlanner) PlanRoute(
	ctx context.Context,
	current, pickup, dropoff string,
) (_ *domain.Route, err error) {
	defer obs.Time(ctx, "osrm.PlanRoute")(&err)

	current = p.normalize(current)
	pickup = p.normalize(pickup)
	dropoff = p.normalize(dropoff)
	if current == "" || pickup == "" || dropoff == "" {
		return nil, errors.New("plan route: locations must be non-empty")
	}

	cacheKey := current + "|" + pickup + "|" + dropoff
	if p.routeCache != nil {
		route, ok, err := p.routeCache.Get(ctx, cacheKey)
		if err != nil {
			log.Printf("route cache read failed: key=%q err=%v", cacheKey, err)
		} else if ok {
			metrics.RoutingRequests.WithLabelValues("route", "hit").Inc()
			return route, nil
		}
	}

	names := []string{current, pickup, dropoff}
	pickupLegIndex := 1
	if current == pickup {
		names = []string{pickup, dropoff}
		pickupLegIndex = 0
	}

	coords, err := p.geocodeMany(ctx, names)
	if err != nil {
		return nil, fmt.Errorf("plan route: %w", err)
	}

	waypoints := make([]domain.Waypoint, 0, len(names))
	for _, n := range names {
		c, ok := coords[n]
		if !ok {
			return nil, fmt.Errorf("plan route: missing coordinates for %q", n)
		}
		waypoints = append(waypoints, domain.Waypoint{Name: n, Coords: c})
	}

	route, err := p.fetchRoute(ctx, waypoints)
	if err != nil {
		return nil, fmt.Errorf("plan route: %w", err)
	}
	route.PickupLegIndex = pickupLegIndex
	metrics.RoutingRequests.WithLabelValues("route", "miss").Inc()

	if p.routeCache != nil {
		if err := p.routeCache.Put(ctx, cacheKey, route); err != nil {
			log.Printf("route cache write failed: key=%q err=%v", cacheKey, err)
		}
	}

	return route, nil
}

type osrmResponse struct {
	Code   string `json:"code"`
	Routes []struct {
		Distance float64 `json:"distance"`
		Duration float64 `json:"duration"`
		Geometry struct {
			Coordinates [][]float64 `json:"coordinates"`
		} `json:"geometry"`
		Legs []struct {
			Distance float64 `json:"distance"`
			Duration float64 `json:"duration"`
		} `json:"legs"`
	} `json:"routes"`
}

// fetchRoute retrieves the full driving route through the waypoints from the
// OSRM route endpoint.
func (p *OSRMRoutePlanner) fetchRoute(
	ctx context.Context,
	waypoints []domain.Waypoint,
) (*domain.Route, error) {
	parts := make([]string, 0, len(waypoints))
	for _, w := range waypoints {
		parts = append(parts, fmt.Sprintf("%f,%f", w.Coords.Lon, w.Coords.Lat))
	}

	endpoint := fmt.Sprintf(
		"%s/route/v1/%s/%s?overview=full&geometries=geojson",
		p.baseURL, p.profile, strings.Join(parts, ";"),
	)

	resp, err := p.doWithRetry(ctx, func() (*http.Request, error) {
		return p.newRequest(ctx, endpoint)
	})
	if err != nil {
		// OSRM reports unroutable waypoints as a 400 response.
		var he *httpStatusError
		if errors.As(err, &he) && he.Code == http.StatusBadRequest {
			return nil, fmt.Errorf("%w: %s", ports.ErrNoRoute, he.Body)
		}
		return nil, fmt.Errorf("route request: %w", err)
	}
	defer resp.Body.Close()

	var decoded osrmResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("decode route response: %w", err)
	}

	if decoded.Code != "Ok" || len(decoded.Routes) == 0 {
		return nil, fmt.Errorf("%w: osrm code %q", ports.ErrNoRoute, decoded.Code)
	}

	best := decoded.Routes[0]
	if len(best.Legs) != len(waypoints)-1 {
		return nil, fmt.Errorf(
			"route has %d legs for %d waypoints",
			len(best.Legs), len(waypoints),
		)
	}

	legs := make([]domain.RouteLeg, 0, len(best.Legs))
	for _, l := range best.Legs {
		legs = append(legs, domain.RouteLeg{
			DistanceMeters: int(math.Round(l.Distance)),
			Duration:       time.Duration(math.Round(l.Duration)) * time.Second,
		})
	}

	return &domain.Route{
		Waypoints:           waypoints,
		Legs:                legs,
		TotalDistanceMeters: int(math.Round(best.Distance)),
		TotalDuration:       time.Duration(math.Round(best.Duration)) * time.Second,
		Geometry:            best.Geometry.Coordinates,
	}, nil
}
