package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"wanderlust/internal/models/trip_models"
	"wanderlust/internal/observability"
	mem "wanderlust/pkg/memcache"
	"wanderlust/pkg/utils"
)

type PlaceHours struct {
	PlaceID string
	Types   []string
	// Hours is nil when the place publishes no opening hours.
	Hours *trip_models.WeeklyHours
}

type PlacesClientInterface interface {
	LookupHours(ctx context.Context, name, address string) (*PlaceHours, error)
}

// GooglePlacesClient resolves a place by text search and reads its opening hours from
// the details endpoint.
type GooglePlacesClient struct {
	HTTP       *http.Client
	APIKey     string
	BaseURL    string
	Cache      mem.HoursCache
	DefaultTTL time.Duration
	Logger     *zap.Logger
}

func NewGooglePlacesClient(apiKey, baseURL string, cache mem.HoursCache, ttl time.Duration, logger *zap.Logger) *GooglePlacesClient {
	if ttl <= 0 {
		ttl = 7 * 24 * time.Hour
	}
	return &GooglePlacesClient{
		HTTP:       &http.Client{Timeout: 10 * time.Second},
		APIKey:     apiKey,
		BaseURL:    strings.TrimRight(baseURL, "/"),
		Cache:      cache,
		DefaultTTL: ttl,
		Logger:     logger,
	}
}

type placesPoint struct {
	Day  int    `json:"day"`
	Time string `json:"time"`
}

type placesResponse struct {
	Status       string `json:"status"`
	ErrorMessage string `json:"error_message"`
	Results      []struct {
		PlaceID string `json:"place_id"`
	} `json:"results"`
	Result struct {
		PlaceID      string   `json:"place_id"`
		Types        []string `json:"types"`
		OpeningHours *struct {
			WeekdayText []string `json:"weekday_text"`
			Periods     []struct {
				Open  placesPoint  `json:"open"`
				Close *placesPoint `json:"close"`
			} `json:"periods"`
		} `json:"opening_hours"`
	} `json:"result"`
}

func (c *GooglePlacesClient) LookupHours(ctx context.Context, name, address string) (*PlaceHours, error) {
	key := mem.HoursKey(name, address)
	if c.Cache != nil {
		if hours, ok := c.Cache.Get(ctx, key); ok {
			observability.RecordHoursLookup(observability.LookupCacheHit)
			return &PlaceHours{Hours: hours}, nil
		}
	}

	placeID, err := c.findPlace(ctx, strings.TrimSpace(name+" "+address))
	if err != nil {
		c.recordFailure(err)
		return nil, err
	}

	var details placesResponse
	q := url.Values{}
	q.Set("place_id", placeID)
	q.Set("fields", "place_id,types,opening_hours")
	if err := c.get(ctx, "/details/json", q, &details); err != nil {
		c.recordFailure(err)
		return nil, err
	}

	place := &PlaceHours{PlaceID: placeID, Types: details.Result.Types}
	if oh := details.Result.OpeningHours; oh != nil {
		hours := &trip_models.WeeklyHours{WeekdayText: oh.WeekdayText}
		for _, p := range oh.Periods {
			period := trip_models.Period{Open: trip_models.PeriodPoint{Day: p.Open.Day, Time: p.Open.Time}}
			if p.Close != nil {
				period.Close = &trip_models.PeriodPoint{Day: p.Close.Day, Time: p.Close.Time}
			}
			hours.Periods = append(hours.Periods, period)
		}
		if !hours.IsEmpty() {
			place.Hours = hours
		}
	}

	if place.Hours != nil && c.Cache != nil {
		c.Cache.Set(ctx, key, place.Hours, c.DefaultTTL)
	}
	observability.RecordHoursLookup(observability.LookupFetched)
	return place, nil
}

func (c *GooglePlacesClient) findPlace(ctx context.Context, query string) (string, error) {
	var search placesResponse
	q := url.Values{}
	q.Set("query", query)
	if err := c.get(ctx, "/textsearch/json", q, &search); err != nil {
		return "", err
	}
	if len(search.Results) == 0 || search.Results[0].PlaceID == "" {
		return "", fmt.Errorf("%w: %q", utils.ErrPlaceNotFound, query)
	}
	return search.Results[0].PlaceID, nil
}

func (c *GooglePlacesClient) get(ctx context.Context, path string, q url.Values, out *placesResponse) error {
	q.Set("key", c.APIKey)
	endpoint := c.BaseURL + path + "?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, http.NoBody)
	if err != nil {
		return fmt.Errorf("%w: %v", utils.ErrPlacesUnavailable, err)
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", utils.ErrPlacesUnavailable, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		return fmt.Errorf("%w: bad status %s", utils.ErrPlacesUnavailable, resp.Status)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decode: %v", utils.ErrPlacesUnavailable, err)
	}

	switch out.Status {
	case "OK":
		return nil
	case "ZERO_RESULTS", "NOT_FOUND":
		return utils.ErrPlaceNotFound
	default:
		return fmt.Errorf("%w: %s %s", utils.ErrPlacesUnavailable, out.Status, out.ErrorMessage)
	}
}

func (c *GooglePlacesClient) recordFailure(err error) {
	if errors.Is(err, utils.ErrPlaceNotFound) {
		observability.RecordHoursLookup(observability.LookupNotFound)
		return
	}
	observability.RecordHoursLookup(observability.LookupFailed)
	if c.Logger != nil {
		c.Logger.Warn("places lookup failed", zap.Error(err))
	}
}
