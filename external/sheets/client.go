package sheets

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/smfc-manager/internal/domain/player"
	"github.com/riskibarqy/smfc-manager/internal/platform/logging"
	"github.com/riskibarqy/smfc-manager/internal/platform/resilience"
	"github.com/riskibarqy/smfc-manager/internal/usecase"
	"github.com/valyala/fasthttp"
)

const (
	defaultTimeout      = 15 * time.Second
	maxResponseBodySize = 4 << 20
	maxRedirects        = 5
)

var errSheetsTransient = crerr.New("sheets transient failure")

type ClientConfig struct {
	RosterCSVURL   string
	MatchesCSVURL  string
	Timeout        time.Duration
	MaxRetries     int
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client reads the "publish to web" CSV exports of the club spreadsheet.
type Client struct {
	http           *fasthttp.Client
	rosterURL      string
	matchesURL     string
	timeout        time.Duration
	maxRetries     int
	logger         *logging.Logger
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
	backoff        func(attempt int) time.Duration
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
	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)

	c := &Client{
		http: &fasthttp.Client{
			Name:                "smfc-manager-sheets",
			ReadTimeout:         timeout,
			WriteTimeout:        timeout,
			MaxResponseBodySize: maxResponseBodySize,
		},
		rosterURL:      strings.TrimSpace(cfg.RosterCSVURL),
		matchesURL:     strings.TrimSpace(cfg.MatchesCSVURL),
		timeout:        timeout,
		maxRetries:     max(cfg.MaxRetries, 0),
		logger:         logger.Named("external.sheets"),
		breaker:        resilience.NewCircuitBreakerFromConfig(breakerCfg),
		circuitEnabled: breakerCfg.Enabled,
		backoff:        func(attempt int) time.Duration { return time.Duration(attempt+1) * time.Second },
	}
	c.breaker.OnStateChange(func(from, to resilience.CircuitState) {
		c.logger.Warn("sheets circuit breaker state changed", "from", string(from), "to", string(to))
	})
	return c
}

func (c *Client) FetchRoster(ctx context.Context) ([]player.Record, error) {
	rows, err := c.fetchRows(ctx, c.rosterURL)
	if err != nil {
		return nil, crerr.Wrap(err, "fetch roster sheet")
	}
	out := make([]player.Record, 0, len(rows))
	for _, row := range rows {
		out = append(out, player.Record(row))
	}
	return out, nil
}

func (c *Client) FetchMatches(ctx context.Context) ([]map[string]string, error) {
	if c.matchesURL == "" {
		return nil, nil
	}
	rows, err := c.fetchRows(ctx, c.matchesURL)
	if err != nil {
		return nil, crerr.Wrap(err, "fetch match history sheet")
	}
	return rows, nil
}

func (c *Client) fetchRows(ctx context.Context, url string) ([]map[string]string, error) {
	if url == "" {
		return nil, crerr.New("sheet url is not configured")
	}

	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "sheets circuit breaker rejected request", "state", string(c.breaker.State()))
			return nil, fmt.Errorf("%w: spreadsheet is temporarily unavailable", usecase.ErrDependencyUnavailable)
		}
	}

	raw, err := c.executeRequest(ctx, url)
	if c.circuitEnabled {
		if err != nil && crerr.Is(err, errSheetsTransient) {
			c.breaker.RecordFailure()
		} else {
			c.breaker.RecordSuccess()
		}
	}
	if err != nil {
		return nil, err
	}

	rows, err := ParseCSV(bytes.NewReader(raw))
	if err != nil {
		return nil, crerr.Wrap(err, "decode sheet csv")
	}
	return rows, nil
}

func (c *Client) executeRequest(ctx context.Context, url string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		body, status, err := c.get(url)
		switch {
		case err != nil:
			lastErr = crerr.Mark(crerr.Wrap(err, "send request"), errSheetsTransient)
		case status >= 200 && status < 300:
			return body, nil
		case isRetryableStatus(status):
			lastErr = crerr.Mark(crerr.Newf("sheet status=%d", status), errSheetsTransient)
		default:
			return nil, crerr.Newf("sheet status=%d body=%s", status, abbreviate(body))
		}

		if attempt == c.maxRetries {
			break
		}
		timer := time.NewTimer(c.backoff(attempt))
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	c.logger.WarnContext(ctx, "sheets request failed", "url", url, "attempts", c.maxRetries+1, "error", lastErr)
	return nil, lastErr
}

func (c *Client) get(url string) ([]byte, int, error) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(url)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set("Accept", "text/csv")

	if err := c.http.DoRedirects(req, resp, maxRedirects); err != nil {
		return nil, 0, err
	}
	body := append([]byte(nil), resp.Body()...)
	return body, resp.StatusCode(), nil
}

// ParseCSV reads a header row followed by data rows into column-keyed maps.
// Blank rows are dropped and short rows leave missing columns empty.
func ParseCSV(r io.Reader) ([]map[string]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return []map[string]string{}, nil
	}
	if err != nil {
		return nil, err
	}
	for i := range header {
		header[i] = strings.TrimSpace(strings.TrimPrefix(header[i], "\ufeff"))
	}

	var out []map[string]string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if isBlank(record) {
			continue
		}
		row := make(map[string]string, len(header))
		for i, key := range header {
			if key == "" {
				continue
			}
			if i < len(record) {
				row[key] = strings.TrimSpace(record[i])
			} else {
				row[key] = ""
			}
		}
		out = append(out, row)
	}
	return out, nil
}

func isBlank(record []string) bool {
	for _, v := range record {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

func isRetryableStatus(status int) bool {
	return status == fasthttp.StatusTooManyRequests || status >= 500
}

func abbreviate(body []byte) string {
	const limit = 256
	text := strings.TrimSpace(string(body))
	if len(text) > limit {
		return text[:limit] + "..."
	}
	return text
}
