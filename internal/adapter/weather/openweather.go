// Package weather implements domain.WeatherProvider against the OpenWeather
// current-conditions API.
package weather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"hydration/internal/domain"

	"golang.org/x/sync/singleflight"
)

// ErrFetch wraps every failure to obtain usable conditions from the provider.
var ErrFetch = errors.New("weather fetch failed")

// Client is an OpenWeather-compatible HTTP client.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
	group   singleflight.Group
}

var _ domain.WeatherProvider = (*Client)(nil)

// NewClient creates a Client. baseURL is the API root, e.g.
// https://api.openweathermap.org/data/2.5.
func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		http:    &http.Client{Timeout: timeout},
	}
}

type currentResponse struct {
	Name string `json:"name"`
	Main struct {
		Temp      *float64 `json:"temp"`
		FeelsLike *float64 `json:"feels_like"`
		Humidity  *float64 `json:"humidity"`
	} `json:"main"`
}

// CurrentWeather fetches metric conditions for q. Concurrent identical
// queries share one upstream request.
func (c *Client) CurrentWeather(ctx context.Context, q domain.WeatherQuery) (*domain.Weather, error) {
	params := url.Values{}
	params.Set("units", "metric")
	params.Set("appid", c.apiKey)
	switch {
	case q.Lat != nil && q.Lon != nil:
		params.Set("lat", strconv.FormatFloat(*q.Lat, 'f', 4, 64))
		params.Set("lon", strconv.FormatFloat(*q.Lon, 'f', 4, 64))
	case q.City != "":
		params.Set("q", q.City)
	default:
		return nil, fmt.Errorf("%w: no location", ErrFetch)
	}
	endpoint := c.baseURL + "/weather?" + params.Encode()

	// The shared fetch outlives any single caller; the client timeout bounds it.
	ch := c.group.DoChan(endpoint, func() (any, error) {
		return c.fetch(context.WithoutCancel(ctx), endpoint)
	})
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%w: %v", ErrFetch, ctx.Err())
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		w := *res.Val.(*domain.Weather)
		return &w, nil
	}
}

func (c *Client) fetch(ctx context.Context, endpoint string) (*domain.Weather, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetch, err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetch, err)
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("%w: upstream status %d", ErrFetch, resp.StatusCode)
	}

	var body currentResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("%w: decode: %v", ErrFetch, err)
	}
	if body.Main.Temp == nil || body.Main.Humidity == nil {
		return nil, fmt.Errorf("%w: incomplete response", ErrFetch)
	}
	w := &domain.Weather{
		Temperature: *body.Main.Temp,
		Humidity:    *body.Main.Humidity,
		FeelsLike:   *body.Main.Temp,
		Location:    body.Name,
	}
	if body.Main.FeelsLike != nil {
		w.FeelsLike = *body.Main.FeelsLike
	}
	return w, nil
}
