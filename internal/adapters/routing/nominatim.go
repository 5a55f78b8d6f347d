package routing

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"

	"eld-trip-service/internal/domain"
	"eld-trip-service/internal/metrics"
	"eld-trip-service/internal/platform/obs"
)

// Nominatim returns coordinates as JSON strings, not numbers.
type nominatimResult struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

// geocodeMany resolves addresses via Nominatim, consulting the geocode cache
// first. Lookups against the live service are rate limited to stay inside
// Nominatim's usage policy.
func (p *OSRMRoutePlanner) geocodeMany(
	ctx context.Context,
	addresses []string,
) (_ map[string]domain.Coordinates, err error) {
	defer obs.Time(ctx, "nominatim.geocodeMany")(&err)

	out := make(map[string]domain.Coordinates, len(addresses))

	for _, a := range addresses {
		if _, ok := out[a]; ok {
			continue
		}

		if p.geocodeCache != nil {
			coords, ok, err := p.geocodeCache.Get(ctx, a)
			if err != nil {
				log.Printf("geocode cache read failed: addr=%q err=%v", a, err)
			} else if ok {
				metrics.RoutingRequests.WithLabelValues("geocode", "hit").Inc()
				out[a] = coords
				continue
			}
		}

		coords, err := p.geocodeOne(ctx, a)
		if err != nil {
			return nil, err
		}
		metrics.RoutingRequests.WithLabelValues("geocode", "miss").Inc()
		out[a] = coords

		if p.geocodeCache != nil {
			if err := p.geocodeCache.Put(ctx, a, coords); err != nil {
				log.Printf("geocode cache write failed: addr=%q err=%v", a, err)
			}
		}
	}

	return out, nil
}

func (p *OSRMRoutePlanner) geocodeOne(ctx context.Context, address string) (domain.Coordinates, error) {
	if err := p.geocodeLimiter.Wait(ctx); err != nil {
		return domain.Coordinates{}, fmt.Errorf("geocode rate limiter: %w", err)
	}

	q := url.Values{}
	q.Set("q", address)
	q.Set("format", "json")
	q.Set("limit", "1")
	endpoint := p.nominatimURL + "/search?" + q.Encode()

	resp, err := p.doWithRetry(ctx, func() (*http.Request, error) {
		return p.newRequest(ctx, endpoint)
	})
	if err != nil {
		return domain.Coordinates{}, fmt.Errorf("geocode %q: %w", address, err)
	}
	defer resp.Body.Close()

	var results []nominatimResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return domain.Coordinates{}, fmt.Errorf("geocode %q: decode response: %w", address, err)
	}

	if len(results) == 0 {
		return domain.Coordinates{}, fmt.Errorf("geocode %q: no results", address)
	}

	lat, err := strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return domain.Coordinates{}, fmt.Errorf("geocode %q: parse lat: %w", address, err)
	}
	lon, err := strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return domain.Coordinates{}, fmt.Errorf("geocode %q: parse lon: %w", address, err)
	}

	return domain.Coordinates{Lon: lon, Lat: lat}, nil
}
