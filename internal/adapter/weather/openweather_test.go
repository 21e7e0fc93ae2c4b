package weather

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"hydration/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientCurrentWeatherByCity(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/weather", r.URL.Path)
		assert.Equal(t, "Lisbon", r.URL.Query().Get("q"))
		assert.Equal(t, "metric", r.URL.Query().Get("units"))
		assert.Equal(t, "key", r.URL.Query().Get("appid"))
		_, _ = w.Write([]byte(`{"name":"Lisbon","main":{"temp":29.5,"feels_like":31.2,"humidity":40}}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL+"/", "key", time.Second)
	w, err := c.CurrentWeather(context.Background(), domain.WeatherQuery{City: "Lisbon"})
	require.NoError(t, err)
	assert.Equal(t, domain.Weather{Temperature: 29.5, Humidity: 40, FeelsLike: 31.2, Location: "Lisbon"}, *w)
}

func TestClientCurrentWeatherByCoordinates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "52.5200", r.URL.Query().Get("lat"))
		assert.Equal(t, "13.4050", r.URL.Query().Get("lon"))
		assert.Empty(t, r.URL.Query().Get("q"))
		_, _ = w.Write([]byte(`{"name":"Berlin","main":{"temp":8,"humidity":70}}`))
	}))
	defer srv.Close()

	lat, lon := 52.52, 13.405
	w, err := NewClient(srv.URL, "key", time.Second).CurrentWeather(context.Background(), domain.WeatherQuery{Lat: &lat, Lon: &lon})
	require.NoError(t, err)
	assert.Equal(t, 8.0, w.FeelsLike)
}

func TestClientErrors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr string
	}{
		{"upstream error", http.StatusUnauthorized, `{"message":"bad key"}`, "upstream status 401"},
		{"garbage", http.StatusOK, `not json`, "decode"},
		{"missing fields", http.StatusOK, `{"name":"X","main":{}}`, "incomplete response"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.body))
			}))
			defer srv.Close()

			_, err := NewClient(srv.URL, "key", time.Second).CurrentWeather(context.Background(), domain.WeatherQuery{City: "X"})
			require.ErrorIs(t, err, ErrFetch)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestClientRequiresLocation(t *testing.T) {
	_, err := NewClient("http://unused", "key", time.Second).CurrentWeather(context.Background(), domain.WeatherQuery{})
	assert.ErrorIs(t, err, ErrFetch)
}

func TestClientSharedFetchSurvivesCanceledCaller(t *testing.T) {
	var hits atomic.Int32
	arrived := make(chan struct{}, 1)
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		arrived <- struct{}{}
		<-release
		_, _ = w.Write([]byte(`{"name":"Oslo","main":{"temp":4,"humidity":60}}`))
	}))
	defer srv.Close()
	defer close(release)

	c := NewClient(srv.URL, "key", 5*time.Second)
	q := domain.WeatherQuery{City: "Oslo"}

	ctx, cancel := context.WithCancel(context.Background())
	firstErr := make(chan error, 1)
	go func() {
		_, err := c.CurrentWeather(ctx, q)
		firstErr <- err
	}()
	<-arrived

	cancel()
	err := <-firstErr
	require.ErrorIs(t, err, ErrFetch)
	assert.ErrorContains(t, err, context.Canceled.Error())

	secondDone := make(chan struct{})
	var (
		w         *domain.Weather
		secondErr error
	)
	go func() {
		defer close(secondDone)
		w, secondErr = c.CurrentWeather(context.Background(), q)
	}()

	// Let the second caller join the flight still held open by the server.
	time.Sleep(50 * time.Millisecond)
	release <- struct{}{}
	<-secondDone

	require.NoError(t, secondErr)
	assert.Equal(t, "Oslo", w.Location)
	assert.Equal(t, int32(1), hits.Load())
}
