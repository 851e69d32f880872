// Package googleplaces is a small client for the Google Places Nearby
// Search endpoint.
package googleplaces

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/ggorockee/happyhours/internal/config"
	"github.com/ggorockee/happyhours/internal/logger"
)

const (
	StatusOK          = "OK"
	StatusZeroResults = "ZERO_RESULTS"

	// strikeLimit 429가 이 횟수 이상이면 포기
	strikeLimit = 3
	// initialBackoff 첫 백오프
	initialBackoff = 400 * time.Millisecond
	// backoffFactor 지수 백오프 계수
	backoffFactor = 1.7
	// maxBackoff 최대 대기
	maxBackoff = 6 * time.Second
)

// StatusError is returned when the response body carries a status other
// than OK or ZERO_RESULTS.
type StatusError struct {
	Status  string
	Message string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("google places status %s: %s", e.Status, e.Message)
	}
	return "google places status " + e.Status
}

// HTTPError is returned for a non-200 HTTP response.
type HTTPError struct {
	StatusCode int
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("google places http status %d", e.StatusCode)
}

// LatLng 좌표
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Geometry 장소 위치
type Geometry struct {
	Location LatLng `json:"location"`
}

// Place Nearby Search 결과 한 건
type Place struct {
	PlaceID          string   `json:"place_id"`
	Name             string   `json:"name"`
	Vicinity         string   `json:"vicinity"`
	FormattedAddress string   `json:"formatted_address"`
	Geometry         Geometry `json:"geometry"`
	Rating           *float64 `json:"rating"`
	Types            []string `json:"types"`
	BusinessStatus   string   `json:"business_status"`
}

type nearbyResponse struct {
	Status       string  `json:"status"`
	ErrorMessage string  `json:"error_message"`
	Results      []Place `json:"results"`
}

// NearbyRequest 검색 파라미터
type NearbyRequest struct {
	Latitude  float64
	Longitude float64
	Radius    int    // meters
	Type      string // 비어 있으면 전송하지 않음
	Keyword   string // 비어 있으면 전송하지 않음
}

// Client Google Places API 클라이언트
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	sleep      func(time.Duration)
	log        *zap.SugaredLogger
}

// New 새로운 Client 생성
func New(cfg *config.PlacesConfig) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return NewWithHTTPClient(cfg, &http.Client{Timeout: timeout})
}

// NewWithHTTPClient 주어진 http.Client로 생성 (테스트용)
func NewWithHTTPClient(cfg *config.PlacesConfig, hc *http.Client) *Client {
	return &Client{
		apiKey:     cfg.APIKey,
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: hc,
		sleep:      time.Sleep,
		log:        logger.GetLogger("googleplaces"),
	}
}

// NearbySearch calls <base>/nearbysearch/json. ZERO_RESULTS is reported
// as an empty list.
func (c *Client) NearbySearch(ctx context.Context, req NearbyRequest) ([]Place, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("google places API key not configured")
	}

	strikes := 0
	backoff := initialBackoff

	for {
		places, err := c.nearbyOnce(ctx, req)
		if err == nil {
			return places, nil
		}

		if !isRateLimited(err) {
			return nil, err
		}
		strikes++
		if strikes >= strikeLimit {
			c.log.Warnf("429 %d회, 재시도 중단", strikes)
			return nil, err
		}

		wait := time.Duration(math.Min(float64(maxBackoff), float64(backoff)))
		c.log.Warnf("Rate limited: %s 후 재시도 (strike %d/%d)", wait, strikes, strikeLimit)
		c.sleep(wait)
		backoff = time.Duration(float64(backoff) * backoffFactor)

		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
	}
}

func (c *Client) nearbyOnce(ctx context.Context, req NearbyRequest) ([]Place, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/nearbysearch/json", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	q := httpReq.URL.Query()
	q.Set("location", fmt.Sprintf("%s,%s",
		strconv.FormatFloat(req.Latitude, 'f', -1, 64),
		strconv.FormatFloat(req.Longitude, 'f', -1, 64)))
	q.Set("radius", strconv.Itoa(req.Radius))
	if req.Type != "" {
		q.Set("type", req.Type)
	}
	if req.Keyword != "" {
		q.Set("keyword", req.Keyword)
	}
	q.Set("key", c.apiKey)
	httpReq.URL.RawQuery = q.Encode()

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("google places request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &HTTPError{StatusCode: resp.StatusCode}
	}

	var body nearbyResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	switch body.Status {
	case StatusOK:
		return body.Results, nil
	case StatusZeroResults:
		return []Place{}, nil
	default:
		return nil, &StatusError{Status: body.Status, Message: body.ErrorMessage}
	}
}

func isRateLimited(err error) bool {
	switch e := err.(type) {
	case *HTTPError:
		return e.StatusCode == http.StatusTooManyRequests
	case *StatusError:
		return e.Status == "OVER_QUERY_LIMIT"
	}
	return false
}
