package blocklist

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/danmuck/mcwire/internal/observability"
	"github.com/rs/zerolog/log"
	"github.com/sony/gobreaker/v2"
)

const (
	DefaultURL     = "https://sessionserver.mojang.com/blockedservers"
	DefaultTimeout = 10 * time.Second

	maxBodyBytes = 8 << 20
	tripAfter    = 3
)

// StatusError is a non-200 reply from the list endpoint.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("blocklist: unexpected status %d", e.Code)
}

type FetcherConfig struct {
	URL     string
	Timeout time.Duration
	// Client overrides the default client built from Timeout.
	Client *http.Client
}

// Fetcher downloads the list. Consecutive failures open a circuit breaker
// that fails fast with gobreaker.ErrOpenState until its timeout passes.
type Fetcher struct {
	url     string
	client  *http.Client
	breaker *gobreaker.CircuitBreaker[*List]
}

func NewFetcher(cfg FetcherConfig) *Fetcher {
	if cfg.URL == "" {
		cfg.URL = DefaultURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	client := cfg.Client
	if client == nil {
		client = &http.Client{Timeout: cfg.Timeout}
	}
	settings := gobreaker.Settings{
		Name:        "blocklist",
		MaxRequests: 1,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= tripAfter
		},
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			log.Warn().Str("breaker", name).Stringer("from", from).Stringer("to", to).Msg("circuit breaker state change")
		},
	}
	return &Fetcher{
		url:     cfg.URL,
		client:  client,
		breaker: gobreaker.NewCircuitBreaker[*List](settings),
	}
}

// Load fetches and parses the current list.
func (f *Fetcher) Load(ctx context.Context) (*List, error) {
	return f.breaker.Execute(func() (*List, error) {
		return f.fetch(ctx)
	})
}

func (f *Fetcher) State() gobreaker.State {
	return f.breaker.State()
}

func (f *Fetcher) fetch(ctx context.Context) (l *List, err error) {
	start := time.Now()
	status := 0
	defer func() {
		hashes := 0
		if l != nil {
			hashes = l.Len()
		}
		observability.RecordBlocklistFetch(status, hashes, time.Since(start), err == nil)
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.url, nil)
	if err != nil {
		return nil, fmt.Errorf("blocklist: build request: %w", err)
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("blocklist: fetch %s: %w", f.url, err)
	}
	defer resp.Body.Close()

	status = resp.StatusCode
	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
		return nil, &StatusError{Code: resp.StatusCode}
	}
	l, err = Parse(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, err
	}
	log.Debug().
		Str("url", f.url).
		Int("hashes", l.Len()).
		Dur("duration", time.Since(start)).
		Msg("blocklist loaded")
	return l, nil
}
