package sentiment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
)

// HTTPClient implements Classifier against a sentiment inference service.
type HTTPClient struct {
	baseURL *url.URL
	client  *http.Client
	logger  *zap.Logger
}

// NewHTTPClient constructs a new HTTP-backed classifier client.
func NewHTTPClient(baseURL string, timeout time.Duration, logger *zap.Logger) (*HTTPClient, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	parsed, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse sentiment url: %w", err)
	}
	return &HTTPClient{
		baseURL: parsed,
		client: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				Proxy: http.ProxyFromEnvironment,
				DialContext: (&net.Dialer{
					Timeout:   timeout,
					KeepAlive: 30 * time.Second,
				}).DialContext,
				TLSHandshakeTimeout:   timeout,
				ResponseHeaderTimeout: timeout,
				ExpectContinueTimeout: 1 * time.Second,
			},
		},
		logger: logger,
	}, nil
}

type scoreRequest struct {
	Text string `json:"text"`
}

type scoreResponse struct {
	Score float64 `json:"score"`
}

// Score sends the text to the inference service and returns its positivity
// score. Responses outside [0,1] are rejected as unusable.
func (c *HTTPClient) Score(ctx context.Context, text string) (float64, error) {
	endpoint := c.baseURL.ResolveReference(&url.URL{Path: "/score"})

	payload, err := json.Marshal(scoreRequest{Text: text})
	if err != nil {
		return 0, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint.String(), bytes.NewReader(payload))
	if err != nil {
		return 0, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Warn("classifier returned unexpected status", zap.Int("status", resp.StatusCode))
		return 0, fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	}

	var body scoreResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return 0, fmt.Errorf("decode classifier response: %w", err)
	}
	if body.Score < 0 || body.Score > 1 {
		return 0, fmt.Errorf("classifier score %v outside [0,1]", body.Score)
	}
	return body.Score, nil
}
