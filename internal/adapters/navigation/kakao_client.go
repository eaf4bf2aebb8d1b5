package navigation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"hub-route-service/internal/adapters/cache"
	"hub-route-service/internal/domain"
	"hub-route-service/internal/platform/obs"
)

// KakaoNaviClient implements LegProvider against a Kakao Mobility style
// directions API.
//
// It coordinates:
//   - Coordinate-keyed request building
//   - A persistent leg cache to avoid repeated directions calls
//   - External API calls with retry/backoff
//
// The client is safe for concurrent use. Every failure mode of a leg
// lookup (transport error, bad status, malformed body, empty routes)
// wraps domain.ErrExternal.
type KakaoNaviClient struct {
	session  *http.Client
	apiKey   string
	baseURL  string
	legCache *cache.SQLLegCache
}

func NewKakaoNaviClient(apiKey string, legCache *cache.SQLLegCache) (*KakaoNaviClient, error) {
	if apiKey == "" {
		return nil, errors.New("kakao api key is empty")
	}

	return &KakaoNaviClient{
		session:  &http.Client{Timeout: 10 * time.Second},
		apiKey:   apiKey,
		baseURL:  "https://apis-navi.kakaomobility.com",
		legCache: legCache,
	}, nil
}

type directionsResponse struct {
	Routes []struct {
		Summary struct {
			Distance int `json:"distance"`
			Duration int `json:"duration"`
		} `json:"summary"`
	} `json:"routes"`
}

// coordParam renders coordinates as the API's "<longitude>,<latitude>"
// query value, which doubles as the leg cache key.
func coordParam(c domain.Coordinates) string {
	return strconv.FormatFloat(c.Lon, 'f', -1, 64) + "," + strconv.FormatFloat(c.Lat, 'f', -1, 64)
}

// ComputeLeg returns the first returned route's summary distance and
// duration for one origin->destination leg.
func (k *KakaoNaviClient) ComputeLeg(ctx context.Context, origin, destination domain.Coordinates) (_ domain.RouteLeg, err error) {
	defer obs.Time(ctx, "kakao.ComputeLeg")(&err)

	from := coordParam(origin)
	to := coordParam(destination)

	if k.legCache != nil {
		leg, ok, err := k.legCache.Get(ctx, from, to)
		if err != nil {
			log.Printf("leg cache read failed: %v", err)
		} else if ok {
			return leg, nil
		}
	}

	endpoint := k.baseURL + "/v1/directions"

	resp, err := k.doWithRetry(ctx, func() (*http.Request, error) {
		req, err := k.newRequest(ctx, endpoint)
		if err != nil {
			return nil, err
		}
		q := url.Values{}
		q.Set("origin", from)
		q.Set("destination", to)
		req.URL.RawQuery = q.Encode()
		return req, nil
	})
	if err != nil {
		return domain.RouteLeg{}, fmt.Errorf("%w: directions request %s -> %s: %v", domain.ErrExternal, from, to, err)
	}
	defer resp.Body.Close()

	var decoded directionsResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return domain.RouteLeg{}, fmt.Errorf("%w: decode directions response: %v", domain.ErrExternal, err)
	}

	if len(decoded.Routes) == 0 {
		return domain.RouteLeg{}, fmt.Errorf("%w: directions response has no routes for %s -> %s", domain.ErrExternal, from, to)
	}

	summary := decoded.Routes[0].Summary
	leg := domain.RouteLeg{
		DistanceMeters:  summary.Distance,
		DurationSeconds: summary.Duration,
	}

	if k.legCache != nil {
		if err := k.legCache.Put(ctx, from, to, leg); err != nil {
			log.Printf("leg cache write failed: %v", err)
		}
	}

	return leg, nil
}
