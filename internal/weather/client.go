package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/casahub/smarthomes/internal/metrics"
	"github.com/casahub/smarthomes/internal/model"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// Client fetches current conditions from OpenWeatherMap, with a redis cache in
// front keyed by rounded coordinates. A nil redis client disables caching.
type Client struct {
	http     *http.Client
	baseURL  string
	apiKey   string
	rdb      *redis.Client
	cacheTTL time.Duration
}

func NewClient(baseURL, apiKey string, timeout time.Duration, rdb *redis.Client, cacheTTL time.Duration) *Client {
	return &Client{
		http:     &http.Client{Timeout: timeout},
		baseURL:  baseURL,
		apiKey:   apiKey,
		rdb:      rdb,
		cacheTTL: cacheTTL,
	}
}

// CurrentByCoordinates returns current weather for the coordinates, or
// (nil, nil) when the upstream is unavailable. Upstream failures are absorbed
// so a broken weather provider never breaks home views.
func (c *Client) CurrentByCoordinates(ctx context.Context, lat, lon decimal.Decimal) (*model.Weather, error) {
	key := cacheKey(lat, lon)

	if cached := c.fromCache(ctx, key); cached != nil {
		metrics.WeatherCacheHitsTotal.WithLabelValues("cache").Inc()
		return cached, nil
	}

	weather, err := c.fetch(ctx, lat, lon)
	if err != nil {
		metrics.WeatherCacheHitsTotal.WithLabelValues("error").Inc()
		log.Warn().Err(err).Msg("weather upstream failed")
		return nil, nil
	}
	metrics.WeatherCacheHitsTotal.WithLabelValues("upstream").Inc()

	c.toCache(ctx, key, weather)
	return weather, nil
}

func (c *Client) fetch(ctx context.Context, lat, lon decimal.Decimal) (*model.Weather, error) {
	q := url.Values{}
	q.Set("lat", lat.String())
	q.Set("lon", lon.String())
	q.Set("appid", c.apiKey)
	q.Set("units", "metric")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build weather request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("weather request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("weather upstream status %d", resp.StatusCode)
	}

	var payload openWeatherResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode weather response: %w", err)
	}

	return payload.toWeather(), nil
}

func (c *Client) fromCache(ctx context.Context, key string) *model.Weather {
	if c.rdb == nil {
		return nil
	}
	val, err := c.rdb.Get(ctx, key).Result()
	if err != nil {
		return nil
	}
	var w model.Weather
	if err := json.Unmarshal([]byte(val), &w); err != nil {
		return nil
	}
	return &w
}

func (c *Client) toCache(ctx context.Context, key string, w *model.Weather) {
	if c.rdb == nil || w == nil {
		return
	}
	data, err := json.Marshal(w)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, key, data, c.cacheTTL).Err(); err != nil {
		log.Debug().Err(err).Str("key", key).Msg("weather cache write failed")
	}
}

// cacheKey rounds to two decimal places (~1km) so nearby homes share entries.
func cacheKey(lat, lon decimal.Decimal) string {
	return "weather:" + lat.Round(2).String() + ":" + lon.Round(2).String()
}

type openWeatherResponse struct {
	Main struct {
		Temp      float64 `json:"temp"`
		FeelsLike float64 `json:"feels_like"`
		Humidity  int     `json:"humidity"`
	} `json:"main"`
	Weather []struct {
		Description string `json:"description"`
		Icon        string `json:"icon"`
	} `json:"weather"`
	Wind struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
	Name string `json:"name"`
}

func (r *openWeatherResponse) toWeather() *model.Weather {
	w := &model.Weather{
		Temperature: decimal.NewFromFloat(r.Main.Temp),
		FeelsLike:   decimal.NewFromFloat(r.Main.FeelsLike),
		Humidity:    r.Main.Humidity,
		WindSpeed:   decimal.NewFromFloat(r.Wind.Speed),
		City:        r.Name,
	}
	if len(r.Weather) > 0 {
		w.Description = r.Weather[0].Description
		w.Icon = r.Weather[0].Icon
	}
	return w
}

// NewRedisClientFromConfig builds a redis client, or nil when addr is empty.
func NewRedisClientFromConfig(addr, password string, db int) *redis.Client {
	if addr == "" {
		return nil
	}
	return redis.NewClient(&redis.Options{Addr: addr, Password: password, DB: db})
}
