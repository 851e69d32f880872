package googleplaces

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/ggorockee/happyhours/internal/config"
)

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

func jsonResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Header:     http.Header{"Content-Type": []string{"application/json"}},
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}

func newFakeClient(fn roundTripFunc) *Client {
	cfg := &config.PlacesConfig{APIKey: "test-key", BaseURL: "https://places.test/api/place/"}
	c := NewWithHTTPClient(cfg, &http.Client{Transport: fn})
	c.sleep = func(time.Duration) {}
	return c
}

func TestNearbySearchRequest(t *testing.T) {
	var got *http.Request
	c := newFakeClient(func(r *http.Request) (*http.Response, error) {
		got = r
		return jsonResponse(http.StatusOK, `{"status":"OK","results":[]}`), nil
	})

	_, err := c.NearbySearch(context.Background(), NearbyRequest{
		Latitude: 19.076, Longitude: 72.8777, Radius: 5000, Type: "bar", Keyword: "rooftop",
	})
	if err != nil {
		t.Fatalf("NearbySearch error = %v", err)
	}

	if got.URL.Path != "/api/place/nearbysearch/json" {
		t.Errorf("Unexpected path %s", got.URL.Path)
	}
	q := got.URL.Query()
	checks := map[string]string{
		"location": "19.076,72.8777",
		"radius":   "5000",
		"type":     "bar",
		"keyword":  "rooftop",
		"key":      "test-key",
	}
	for k, want := range checks {
		if q.Get(k) != want {
			t.Errorf("query %s = %q, want %q", k, q.Get(k), want)
		}
	}
}

func TestNearbySearchOmitsEmptyParams(t *testing.T) {
	c := newFakeClient(func(r *http.Request) (*http.Response, error) {
		q := r.URL.Query()
		if q.Has("type") || q.Has("keyword") {
			t.Errorf("Expected no type/keyword, got %s", r.URL.RawQuery)
		}
		return jsonResponse(http.StatusOK, `{"status":"OK","results":[]}`), nil
	})

	if _, err := c.NearbySearch(context.Background(), NearbyRequest{Radius: 100}); err != nil {
		t.Fatal(err)
	}
}

func TestNearbySearchDecodesPlaces(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{
			"status": "OK",
			"results": [
				{"place_id": "p1", "name": "Toit", "vicinity": "Indiranagar",
				 "geometry": {"location": {"lat": 12.97, "lng": 77.64}},
				 "rating": 4.6, "types": ["bar", "restaurant"], "business_status": "OPERATIONAL"},
				{"place_id": "p2", "name": "Nameless", "formatted_address": "Somewhere",
				 "geometry": {"location": {"lat": 1, "lng": 2}}, "types": []}
			]
		}`)
	}))
	defer srv.Close()

	c := NewWithHTTPClient(&config.PlacesConfig{APIKey: "k", BaseURL: srv.URL}, srv.Client())
	places, err := c.NearbySearch(context.Background(), NearbyRequest{Radius: 1000})
	if err != nil {
		t.Fatalf("NearbySearch error = %v", err)
	}
	if len(places) != 2 {
		t.Fatalf("Expected 2 places, got %d", len(places))
	}
	if places[0].Rating == nil || *places[0].Rating != 4.6 || places[0].Geometry.Location.Lng != 77.64 {
		t.Errorf("Unexpected first place %+v", places[0])
	}
	if places[1].Rating != nil {
		t.Error("Expected missing rating to stay nil")
	}
}

func TestNearbySearchStatuses(t *testing.T) {
	tests := []struct {
		name      string
		code      int
		body      string
		wantErr   bool
		wantCount int
	}{
		{"zero results", http.StatusOK, `{"status":"ZERO_RESULTS","results":[]}`, false, 0},
		{"request denied", http.StatusOK, `{"status":"REQUEST_DENIED","error_message":"bad key"}`, true, 0},
		{"http error", http.StatusInternalServerError, `oops`, true, 0},
		{"malformed", http.StatusOK, `{"status":`, true, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newFakeClient(func(*http.Request) (*http.Response, error) {
				return jsonResponse(tt.code, tt.body), nil
			})
			places, err := c.NearbySearch(context.Background(), NearbyRequest{Radius: 1})
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && (places == nil || len(places) != tt.wantCount) {
				t.Errorf("Expected %d places, got %v", tt.wantCount, places)
			}
		})
	}
}

func TestNearbySearchStatusErrorType(t *testing.T) {
	c := newFakeClient(func(*http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusOK, `{"status":"INVALID_REQUEST"}`), nil
	})

	_, err := c.NearbySearch(context.Background(), NearbyRequest{})
	var se *StatusError
	if !errors.As(err, &se) || se.Status != "INVALID_REQUEST" {
		t.Errorf("Expected StatusError, got %v", err)
	}
}

func TestNearbySearchRetriesRateLimit(t *testing.T) {
	calls := 0
	c := newFakeClient(func(*http.Request) (*http.Response, error) {
		calls++
		if calls < 2 {
			return jsonResponse(http.StatusTooManyRequests, ``), nil
		}
		return jsonResponse(http.StatusOK, `{"status":"OK","results":[{"place_id":"x","name":"X"}]}`), nil
	})

	places, err := c.NearbySearch(context.Background(), NearbyRequest{})
	if err != nil || len(places) != 1 {
		t.Fatalf("Expected recovery after 429, got %v, %v", places, err)
	}
	if calls != 2 {
		t.Errorf("Expected 2 calls, got %d", calls)
	}
}

func TestNearbySearchGivesUpAfterStrikes(t *testing.T) {
	calls := 0
	c := newFakeClient(func(*http.Request) (*http.Response, error) {
		calls++
		return jsonResponse(http.StatusOK, `{"status":"OVER_QUERY_LIMIT"}`), nil
	})

	if _, err := c.NearbySearch(context.Background(), NearbyRequest{}); err == nil {
		t.Fatal("Expected error after repeated rate limiting")
	}
	if calls != strikeLimit {
		t.Errorf("Expected %d calls, got %d", strikeLimit, calls)
	}
}

func TestNearbySearchWithoutKey(t *testing.T) {
	c := NewWithHTTPClient(&config.PlacesConfig{BaseURL: "http://unused"}, &http.Client{
		Transport: roundTripFunc(func(*http.Request) (*http.Response, error) {
			t.Fatal("Provider must not be called without a key")
			return nil, nil
		}),
	})

	if _, err := c.NearbySearch(context.Background(), NearbyRequest{}); err == nil {
		t.Error("Expected error without API key")
	}
}
