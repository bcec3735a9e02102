package amadeus

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"travel-search-service/internal/metrics"
)

// Client implements ports.FlightProvider against the Amadeus Self-Service APIs.
//
// It coordinates:
//   - OAuth2 client-credentials token refresh
//   - Rate limiting across all endpoints
//   - External API calls with retry/backoff
//
// The client is safe for concurrent use.
type Client struct {
	session      *http.Client
	host         string
	clientID     string
	clientSecret string
	currency     string
	limiter      *rate.Limiter

	mu          sync.Mutex
	token       string
	tokenExpiry time.Time
}

// Refresh the token slightly before the provider expires it.
const tokenExpiryMargin = 30 * time.Second

func NewClient(host, clientID, clientSecret, currency string, rps float64, burst int) (*Client, error) {
	if clientID == "" || clientSecret == "" {
		return nil, errors.New("amadeus client id and secret are required")
	}
	if host == "" {
		host = "https://test.api.amadeus.com"
	}
	if currency == "" {
		currency = "EUR"
	}

	return &Client{
		session:      &http.Client{Timeout: 20 * time.Second},
		host:         host,
		clientID:     clientID,
		clientSecret: clientSecret,
		currency:     currency,
		limiter:      rate.NewLimiter(rate.Limit(rps), burst),
	}, nil
}

type httpStatusError struct {
	Code int
	Body string
}

func (e *httpStatusError) Error() string {
	return fmt.Sprintf("Code %d: %s", e.Code, e.Body)
}

// accessToken returns a valid bearer token, refreshing it when expired.
func (c *Client) accessToken(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.token != "" && time.Now().Before(c.tokenExpiry.Add(-tokenExpiryMargin)) {
		return c.token, nil
	}

	form := url.Values{}
	form.Set("grant_type", "client_credentials")
	form.Set("client_id", c.clientID)
	form.Set("client_secret", c.clientSecret)

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		c.host+"/v1/security/oauth2/token",
		strings.NewReader(form.Encode()),
	)
	if err != nil {
		return "", fmt.Errorf("create token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.session.Do(req)
	if err != nil {
		metrics.UpstreamRequests.WithLabelValues("amadeus", "token", "error").Inc()
		return "", fmt.Errorf("token request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		metrics.UpstreamRequests.WithLabelValues("amadeus", "token", "error").Inc()
		return "", &httpStatusError{Code: resp.StatusCode, Body: strings.TrimSpace(string(b))}
	}

	var decoded struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int    `json:"expires_in"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", fmt.Errorf("decode token response: %w", err)
	}
	if decoded.AccessToken == "" {
		return "", errors.New("token response contained no access token")
	}

	metrics.UpstreamRequests.WithLabelValues("amadeus", "token", "ok").Inc()
	c.token = decoded.AccessToken
	c.tokenExpiry = time.Now().Add(time.Duration(decoded.ExpiresIn) * time.Second)
	return c.token, nil
}

func (c *Client) newRequest(ctx context.Context, method, endpoint string, query url.Values) (*http.Request, error) {
	token, err := c.accessToken(ctx)
	if err != nil {
		return nil, fmt.Errorf("get access token: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")
	if query != nil {
		req.URL.RawQuery = query.Encode()
	}

	return req, nil
}

func (c *Client) do(req *http.Request) (*http.Response, error) {
	resp, err := c.session.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= 400 {
		b, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		return nil, &httpStatusError{
			Code: resp.StatusCode,
			Body: strings.TrimSpace(string(b)),
		}
	}
	return resp, nil
}

// doWithRetry retries transient failures (network errors, 429/5xx responses)
// using exponential backoff while respecting context cancellation. Every
// attempt waits on the shared rate limiter first.
func (c *Client) doWithRetry(
	ctx context.Context,
	operation string,
	makeReq func() (*http.Request, error),
) (*http.Response, error) {
	const maxAttempts = 4
	backoff := 200 * time.Millisecond

	var lastErr error

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limit wait: %w", err)
		}

		req, err := makeReq()
		if err != nil {
			return nil, fmt.Errorf("make request: %w", err)
		}

		resp, err := c.do(req)
		if err == nil {
			metrics.UpstreamRequests.WithLabelValues("amadeus", operation, "ok").Inc()
			return resp, nil
		}
		lastErr = err

		retry := false
		var he *httpStatusError
		if errors.As(err, &he) {
			switch he.Code {
			case 429, 500, 502, 503, 504:
				retry = true
			}
		}

		var netErr net.Error
		if !retry && errors.As(err, &netErr) {
			retry = true
		}

		if !retry || attempt == maxAttempts {
			metrics.UpstreamRequests.WithLabelValues("amadeus", operation, "error").Inc()
			return nil, lastErr
		}

		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}

		backoff *= 2
	}

	metrics.UpstreamRequests.WithLabelValues("amadeus", operation, "error").Inc()
	return nil, lastErr
}
