package todayapi

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/today-api/internal/platform/logging"
	"github.com/valyala/bytebufferpool"
	"github.com/valyala/fasthttp"
)

const (
	defaultBaseURL = "http://localhost:8000"
	defaultTimeout = 10 * time.Second
)

// ErrStatus marks a non-200 answer from the proxy.
var ErrStatus = crerr.New("today-api unexpected status")

type ClientConfig struct {
	HTTPClient *fasthttp.Client
	BaseURL    string
	Timeout    time.Duration
	Logger     *logging.Logger
}

// Client calls a running proxy the way a browser or script would.
type Client struct {
	httpClient *fasthttp.Client
	baseURL    string
	timeout    time.Duration
	logger     *logging.Logger
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &fasthttp.Client{Name: "today-api-tools"}
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	return &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
		timeout:    timeout,
		logger:     logger.Named("todayapi"),
	}
}

// Status performs a GET and returns only the status code.
func (c *Client) Status(ctx context.Context, target string) (int, error) {
	status, _, err := c.do(ctx, target)
	return status, err
}

// List performs a GET and decodes the response list of the envelope.
func List[T any](ctx context.Context, c *Client, path string, query url.Values) ([]T, error) {
	target := path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	status, body, err := c.do(ctx, target)
	if err != nil {
		return nil, err
	}
	if status != fasthttp.StatusOK {
		return nil, crerr.Mark(fmt.Errorf("GET %s returned %d", target, status), ErrStatus)
	}

	var envelope struct {
		Response []T    `json:"response"`
		Error    string `json:"error"`
	}
	if err := sonic.Unmarshal(body, &envelope); err != nil {
		return nil, crerr.Wrapf(err, "decode %s", target)
	}
	if envelope.Error != "" {
		c.logger.WarnContext(ctx, "proxy returned advisory error", "path", path, "error", envelope.Error)
	}
	return envelope.Response, nil
}

func (c *Client) do(ctx context.Context, target string) (int, []byte, error) {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)
	_, _ = buf.WriteString(c.baseURL)
	if !strings.HasPrefix(target, "/") {
		_ = buf.WriteByte('/')
	}
	_, _ = buf.WriteString(target)

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(buf.String())
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set("Accept", "application/json")

	started := time.Now()
	if err := c.httpClient.DoTimeout(req, resp, c.timeout); err != nil {
		return 0, nil, crerr.Wrapf(err, "GET %s", target)
	}
	c.logger.DebugContext(ctx, "proxy call", "path", target, "status", resp.StatusCode(), "duration_ms", time.Since(started).Milliseconds())

	body := append([]byte(nil), resp.Body()...)
	return resp.StatusCode(), body, nil
}
