package usgs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/couchcryptid/quake-feed-service/internal/domain"
	"github.com/couchcryptid/quake-feed-service/internal/observability"
	"github.com/jonboulle/clockwork"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

var errReadTimeout = errors.New("read timed out")

// Client fetches feed pages from the USGS event service. It implements
// store.Fetcher.
type Client struct {
	httpClient  *http.Client
	userAgent   string
	readTimeout time.Duration
	clock       clockwork.Clock
	metrics     *observability.Metrics
	logger      *slog.Logger
}

// NewClient creates a feed client. connectTimeout bounds dialing and the TLS
// handshake; readTimeout bounds the wait for response headers and every gap
// between body reads.
func NewClient(connectTimeout, readTimeout time.Duration, userAgent string, metrics *observability.Metrics, logger *slog.Logger) *Client {
	transport := &http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		DialContext:           (&net.Dialer{Timeout: connectTimeout, KeepAlive: 30 * time.Second}).DialContext,
		TLSHandshakeTimeout:   connectTimeout,
		ResponseHeaderTimeout: readTimeout,
		MaxIdleConns:          10,
		IdleConnTimeout:       90 * time.Second,
	}

	return &Client{
		httpClient: &http.Client{
			Transport: otelhttp.NewTransport(transport),
		},
		userAgent:   userAgent,
		readTimeout: readTimeout,
		clock:       clockwork.NewRealClock(),
		metrics:     metrics,
		logger:      logger,
	}
}

// Fetch issues a single GET for feedURL and returns the body of a 200
// response. Every failure is a *domain.FetchError.
func (c *Client) Fetch(ctx context.Context, feedURL string) ([]byte, error) {
	start := c.clock.Now()
	body, err := c.doRequest(ctx, feedURL)
	c.metrics.FetchDuration.Observe(c.clock.Since(start).Seconds())

	if err != nil {
		c.metrics.FetchRequests.WithLabelValues("error").Inc()
		c.logger.Warn("feed request failed", "url", feedURL, "error", err)
		return nil, err
	}

	c.metrics.FetchRequests.WithLabelValues("success").Inc()
	c.metrics.FetchBytes.Observe(float64(len(body)))
	c.logger.Debug("feed request complete", "url", feedURL, "bytes", len(body))
	return body, nil
}

func (c *Client) doRequest(ctx context.Context, feedURL string) ([]byte, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, feedURL, nil)
	if err != nil {
		return nil, &domain.FetchError{URL: feedURL, Err: fmt.Errorf("create request: %w", err)}
	}
	req.Header.Set("Accept", "application/geo+json, application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &domain.FetchError{URL: feedURL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &domain.FetchError{URL: feedURL, StatusCode: resp.StatusCode}
	}

	r := watchReads(resp.Body, c.clock, c.readTimeout, cancel)
	defer r.stop()

	body, err := io.ReadAll(r)
	if err != nil {
		return nil, &domain.FetchError{URL: feedURL, Err: fmt.Errorf("read body: %w", err)}
	}
	return body, nil
}

// idleReader cancels the request when no read completes within timeout.
type idleReader struct {
	r       io.Reader
	timeout time.Duration
	timer   clockwork.Timer
	expired atomic.Bool
}

func watchReads(r io.Reader, clock clockwork.Clock, timeout time.Duration, cancel context.CancelFunc) *idleReader {
	ir := &idleReader{r: r, timeout: timeout}
	ir.timer = clock.AfterFunc(timeout, func() {
		ir.expired.Store(true)
		cancel()
	})
	return ir
}

func (ir *idleReader) Read(p []byte) (int, error) {
	n, err := ir.r.Read(p)
	if ir.expired.Load() {
		return n, errReadTimeout
	}
	if n > 0 {
		ir.timer.Reset(ir.timeout)
	}
	return n, err
}

func (ir *idleReader) stop() {
	ir.timer.Stop()
}
