package apifootball

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/today-api/internal/domain/football"
	"github.com/riskibarqy/today-api/internal/platform/logging"
	"github.com/riskibarqy/today-api/internal/platform/resilience"
	"github.com/riskibarqy/today-api/internal/usecase"
	"github.com/sony/gobreaker"
	"github.com/valyala/bytebufferpool"
	"github.com/valyala/fasthttp"
	"golang.org/x/sync/singleflight"
)

const (
	defaultBaseURL = "https://v3.football.api-sports.io"
	defaultTimeout = 5 * time.Second
	apiKeyHeader   = "x-apisports-key"
	maxBodyBytes   = 8 << 20
)

var (
	errTransient = crerr.New("api-football transient failure")

	// ErrMalformedBody marks a 2xx body that is not a JSON object with a
	// response field.
	ErrMalformedBody = crerr.New("api-football malformed body")
)

type ClientConfig struct {
	HTTPClient     *fasthttp.Client
	BaseURL        string
	APIKey         string
	Timeout        time.Duration
	MaxRetries     int
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client talks to the API-Football v3 REST API. Every call carries its own
// timeout; the caller's context is only used for logging and retry backoff.
type Client struct {
	httpClient     *fasthttp.Client
	baseURL        string
	apiKey         string
	timeout        time.Duration
	maxRetries     int
	logger         *logging.Logger
	breaker        *gobreaker.CircuitBreaker
	circuitEnabled bool
	flight         singleflight.Group
}

var _ football.Provider = (*Client)(nil)

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}
	logger = logger.Named("apifootball")

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &fasthttp.Client{
			Name:                "today-api",
			ReadTimeout:         timeout,
			WriteTimeout:        timeout,
			MaxConnsPerHost:     512,
			MaxResponseBodySize: maxBodyBytes,
		}
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	return &Client{
		httpClient:     httpClient,
		baseURL:        baseURL,
		apiKey:         strings.TrimSpace(cfg.APIKey),
		timeout:        timeout,
		maxRetries:     max(cfg.MaxRetries, 0),
		logger:         logger,
		breaker:        resilience.NewCircuitBreaker("api-football", cfg.CircuitBreaker, isTransient, logger),
		circuitEnabled: cfg.CircuitBreaker.Enabled,
	}
}

// Get issues GET {base}/{path}?{query}. Identical requests already in flight
// share one round trip; each caller decodes its own copy of the body.
func (c *Client) Get(ctx context.Context, path string, query football.Query) (football.Envelope, error) {
	fullURL := c.buildURL(path, query)

	out, err, _ := c.flight.Do(fullURL, func() (any, error) {
		return c.execute(ctx, fullURL)
	})
	if err != nil {
		return football.Empty(), err
	}

	raw, ok := out.([]byte)
	if !ok {
		return football.Empty(), fmt.Errorf("unexpected response payload type %T", out)
	}

	var body map[string]any
	if err := sonic.Unmarshal(raw, &body); err != nil {
		return football.Empty(), crerr.Mark(crerr.Wrapf(err, "decode %s body=%s", path, abbreviateBody(raw)), ErrMalformedBody)
	}
	env, ok := football.FromBody(body)
	if !ok {
		return football.Empty(), crerr.Mark(crerr.Newf("%s: body has no response field: %s", path, abbreviateBody(raw)), ErrMalformedBody)
	}

	return env, nil
}

func (c *Client) execute(ctx context.Context, fullURL string) ([]byte, error) {
	if !c.circuitEnabled {
		return c.executeRequest(ctx, fullURL)
	}

	out, err := c.breaker.Execute(func() (any, error) {
		return c.executeRequest(ctx, fullURL)
	})
	if err != nil {
		if resilience.IsOpen(err) {
			c.logger.WarnContext(ctx, "api-football circuit breaker rejected request", "state", c.breaker.State().String())
			return nil, fmt.Errorf("%w: football data provider is temporarily unavailable", usecase.ErrDependencyUnavailable)
		}
		return nil, err
	}

	return out.([]byte), nil
}

func (c *Client) executeRequest(ctx context.Context, fullURL string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		raw, status, err := c.roundTrip(fullURL)
		switch {
		case err != nil:
			lastErr = crerr.Mark(crerr.Newf("send request: %s", c.sanitize(err.Error())), errTransient)
		case status >= 200 && status < 300:
			return raw, nil
		case isRetryableStatus(status):
			lastErr = crerr.Mark(crerr.Newf("provider status=%d body=%s", status, abbreviateBody(raw)), errTransient)
		default:
			lastErr = crerr.Newf("provider status=%d body=%s", status, abbreviateBody(raw))
		}
		if !isTransient(lastErr) || attempt == c.maxRetries {
			break
		}

		timer := time.NewTimer(time.Duration(attempt+1) * 500 * time.Millisecond)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	c.logger.WarnContext(ctx, "api-football request failed", "url", fullURL, "error", lastErr)
	return nil, lastErr
}

func (c *Client) roundTrip(fullURL string) ([]byte, int, error) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(fullURL)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set(fasthttp.HeaderAccept, "application/json")
	req.Header.Set(apiKeyHeader, c.apiKey)

	if err := c.httpClient.DoTimeout(req, resp, c.timeout); err != nil {
		return nil, 0, err
	}

	// resp is recycled on return; keep our own copy of the body.
	return append([]byte(nil), resp.Body()...), resp.StatusCode(), nil
}

func (c *Client) buildURL(path string, query football.Query) string {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	_, _ = buf.WriteString(c.baseURL)
	_ = buf.WriteByte('/')
	_, _ = buf.WriteString(strings.Trim(strings.TrimSpace(path), "/"))

	values := url.Values{}
	for key, value := range query {
		if strings.TrimSpace(value) == "" {
			continue
		}
		values.Set(key, value)
	}
	if encoded := values.Encode(); encoded != "" {
		_ = buf.WriteByte('?')
		_, _ = buf.WriteString(encoded)
	}

	return buf.String()
}

func (c *Client) sanitize(value string) string {
	value = strings.TrimSpace(value)
	if c.apiKey != "" {
		value = strings.ReplaceAll(value, c.apiKey, "REDACTED")
	}
	return value
}

func isTransient(err error) bool {
	return crerr.Is(err, errTransient)
}

func isRetryableStatus(code int) bool {
	return code == fasthttp.StatusTooManyRequests || code >= 500
}

func abbreviateBody(body []byte) string {
	const limit = 256
	text := strings.TrimSpace(string(body))
	if len(text) <= limit {
		return text
	}
	return text[:limit] + "..."
}
