package feed

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/fantasy-points/internal/domain/player"
	"github.com/riskibarqy/fantasy-points/internal/domain/scoring"
	"github.com/riskibarqy/fantasy-points/internal/domain/team"
	"github.com/riskibarqy/fantasy-points/internal/platform/logging"
	"github.com/riskibarqy/fantasy-points/internal/platform/resilience"
	"github.com/riskibarqy/fantasy-points/internal/usecase"
	"github.com/sourcegraph/conc/pool"
	"github.com/valyala/fasthttp"
)

const (
	DefaultBaseURL     = "https://fgp-data-us.s3.us-east-1.amazonaws.com/json/mls_mls"
	defaultTimeout     = 20 * time.Second
	defaultConcurrency = 8
	maxResponseBytes   = 8 << 20
)

var (
	errFeedTransient = crerr.New("fantasy feed transient failure")
	errFeedNotFound  = crerr.New("fantasy feed resource not found")
)

type ClientConfig struct {
	BaseURL        string
	Timeout        time.Duration
	MaxRetries     int
	Concurrency    int
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client reads the public fantasy feed: squads, players and per-player
// match stats.
type Client struct {
	http        *fasthttp.Client
	baseURL     string
	timeout     time.Duration
	maxRetries  int
	concurrency int
	logger      *logging.Logger
	breaker     *resilience.CircuitBreaker
	flight      resilience.Flight[[]byte]
	now         func() time.Time
	backoff     func(attempt int) time.Duration
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
	concurrency := cfg.Concurrency
	if concurrency < 1 {
		concurrency = defaultConcurrency
	}
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	breaker := cfg.CircuitBreaker.Breaker().
		WithFailureFilter(isFeedCircuitFailure).
		OnStateChange(func(from, to resilience.CircuitState) {
			logger.Warn("fantasy feed circuit breaker state changed", "from", from, "to", to)
		})

	return &Client{
		http: &fasthttp.Client{
			Name:                "fantasy-points",
			ReadTimeout:         timeout,
			WriteTimeout:        timeout,
			MaxConnsPerHost:     concurrency * 2,
			MaxResponseBodySize: maxResponseBytes,
		},
		baseURL:     baseURL,
		timeout:     timeout,
		maxRetries:  max(cfg.MaxRetries, 0),
		concurrency: concurrency,
		logger:      logger,
		breaker:     breaker,
		now:         time.Now,
		backoff: func(attempt int) time.Duration {
			return time.Duration(attempt+1) * time.Second
		},
	}
}

func (c *Client) ListTeams(ctx context.Context) ([]team.Team, error) {
	var items []squadItem
	if err := c.doJSON(ctx, "/squads.json", &items); err != nil {
		return nil, fmt.Errorf("fetch squads: %w", err)
	}

	out := make([]team.Team, 0, len(items))
	for _, item := range items {
		if item.ID == 0 {
			continue
		}
		out = append(out, item.toDomain())
	}
	return out, nil
}

func (c *Client) ListPlayers(ctx context.Context) ([]player.Player, error) {
	var items []playerItem
	if err := c.doJSON(ctx, "/players.json", &items); err != nil {
		return nil, fmt.Errorf("fetch players: %w", err)
	}

	out := make([]player.Player, 0, len(items))
	for _, item := range items {
		p := item.toDomain()
		if err := p.Validate(); err != nil {
			c.logger.DebugContext(ctx, "skip invalid feed player", "player_id", item.ID, "error", err)
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

type playerHistory struct {
	playerID int64
	matches  []scoring.MatchStatRecord
}

// ListMatchStats fetches histories concurrently. A player whose stats file
// does not exist has an empty history.
func (c *Client) ListMatchStats(ctx context.Context, playerIDs []int64) (map[int64][]scoring.MatchStatRecord, error) {
	p := pool.NewWithResults[playerHistory]().
		WithContext(ctx).
		WithMaxGoroutines(c.concurrency).
		WithCancelOnError().
		WithFirstError()

	for _, playerID := range playerIDs {
		p.Go(func(ctx context.Context) (playerHistory, error) {
			matches, err := c.fetchPlayerMatches(ctx, playerID)
			if err != nil {
				return playerHistory{}, fmt.Errorf("fetch stats for player %d: %w", playerID, err)
			}
			return playerHistory{playerID: playerID, matches: matches}, nil
		})
	}

	histories, err := p.Wait()
	if err != nil {
		return nil, err
	}

	out := make(map[int64][]scoring.MatchStatRecord, len(histories))
	for _, h := range histories {
		out[h.playerID] = h.matches
	}
	return out, nil
}

func (c *Client) fetchPlayerMatches(ctx context.Context, playerID int64) ([]scoring.MatchStatRecord, error) {
	var items []matchStatItem
	err := c.doJSON(ctx, "/stats/players/"+strconv.FormatInt(playerID, 10)+".json", &items)
	if crerr.Is(err, errFeedNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	out := make([]scoring.MatchStatRecord, 0, len(items))
	for _, item := range items {
		record, ok := item.toDomain()
		if !ok {
			continue
		}
		out = append(out, record)
	}
	return out, nil
}

func (c *Client) doJSON(ctx context.Context, path string, target any) error {
	raw, _, err := c.flight.Do(ctx, path, func() ([]byte, error) {
		var raw []byte
		execErr := c.breaker.Execute(func() error {
			var reqErr error
			raw, reqErr = c.executeRequest(ctx, c.requestURL(path))
			return reqErr
		})
		return raw, execErr
	})
	if crerr.Is(err, resilience.ErrCircuitOpen) {
		c.logger.WarnContext(ctx, "fantasy feed circuit breaker rejected request", "path", path, "state", c.breaker.State())
		return fmt.Errorf("%w: fantasy feed is temporarily unavailable", usecase.ErrDependencyUnavailable)
	}
	if err != nil {
		if crerr.Is(err, errFeedTransient) {
			return fmt.Errorf("%w: %v", usecase.ErrDependencyUnavailable, err)
		}
		return err
	}

	if err := sonic.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("decode feed payload %s: %w", path, err)
	}
	return nil
}

func (c *Client) requestURL(path string) string {
	return c.baseURL + path + "?_=" + strconv.FormatInt(c.now().UnixMilli(), 10)
}

func (c *Client) executeRequest(ctx context.Context, fullURL string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		raw, status, err := c.get(ctx, fullURL)
		switch {
		case err != nil:
			lastErr = crerr.Mark(crerr.Wrap(err, "send request"), errFeedTransient)
		case status >= 200 && status < 300:
			return raw, nil
		case status == http.StatusNotFound || status == http.StatusForbidden:
			// S3 answers 403 for missing keys on a public bucket.
			return nil, crerr.Mark(crerr.Newf("feed status=%d", status), errFeedNotFound)
		case isRetryableStatus(status):
			lastErr = crerr.Mark(crerr.Newf("feed status=%d body=%s", status, abbreviateBody(raw)), errFeedTransient)
		default:
			return nil, crerr.Newf("feed status=%d body=%s", status, abbreviateBody(raw))
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

	c.logger.WarnContext(ctx, "fantasy feed request failed", "url", fullURL, "error", lastErr)
	return nil, lastErr
}

func (c *Client) get(ctx context.Context, fullURL string) ([]byte, int, error) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(fullURL)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set("Accept", "application/json")

	deadline := time.Now().Add(c.timeout)
	if ctxDeadline, ok := ctx.Deadline(); ok && ctxDeadline.Before(deadline) {
		deadline = ctxDeadline
	}
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}
	if err := c.http.DoDeadline(req, resp, deadline); err != nil {
		return nil, 0, err
	}

	body := append([]byte(nil), resp.Body()...)
	return body, resp.StatusCode(), nil
}

func isFeedCircuitFailure(err error) bool {
	if err == nil {
		return false
	}
	return crerr.Is(err, errFeedTransient)
}

func isRetryableStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= http.StatusInternalServerError
}

func abbreviateBody(body []byte) string {
	text := strings.TrimSpace(string(body))
	if len(text) <= 240 {
		return text
	}
	return text[:240] + "..."
}
