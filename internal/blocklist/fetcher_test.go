package blocklist

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/danmuck/mcwire/internal/testutil/testlog"
	"github.com/sony/gobreaker/v2"
	"github.com/stretchr/testify/require"
)

func TestFetcherLoadsList(t *testing.T) {
	testlog.Start(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, "%s\n%s\n", Hash("*.blocked.example"), Hash("10.1.2.*"))
	}))
	defer srv.Close()

	f := NewFetcher(FetcherConfig{URL: srv.URL, Timeout: time.Second})
	l, err := f.Load(context.Background())
	require.NoError(t, err)
	require.Equal(t, 2, l.Len())
	require.True(t, l.IsBlocked("play.blocked.example"))
	require.True(t, l.IsBlocked("10.1.2.3"))
	require.Equal(t, gobreaker.StateClosed, f.State())
}

func TestFetcherStatusError(t *testing.T) {
	testlog.Start(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := NewFetcher(FetcherConfig{URL: srv.URL}).Load(context.Background())
	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	require.Equal(t, http.StatusServiceUnavailable, statusErr.Code)
}

func TestFetcherBreakerOpensAfterConsecutiveFailures(t *testing.T) {
	testlog.Start(t)
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	f := NewFetcher(FetcherConfig{URL: srv.URL})
	for i := 0; i < tripAfter; i++ {
		_, err := f.Load(context.Background())
		require.Error(t, err)
	}
	require.Equal(t, gobreaker.StateOpen, f.State())

	_, err := f.Load(context.Background())
	require.ErrorIs(t, err, gobreaker.ErrOpenState)
	require.Equal(t, int32(tripAfter), hits.Load(), "open breaker must not reach the server")
}

func TestFetcherCanceledContextDoesNotTrip(t *testing.T) {
	testlog.Start(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintln(w, Hash("x"))
	}))
	defer srv.Close()

	f := NewFetcher(FetcherConfig{URL: srv.URL})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	for i := 0; i < tripAfter+1; i++ {
		_, err := f.Load(ctx)
		require.ErrorIs(t, err, context.Canceled)
	}
	require.Equal(t, gobreaker.StateClosed, f.State())
}

func TestFetcherMalformedBody(t *testing.T) {
	testlog.Start(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintln(w, "<html>")
	}))
	defer srv.Close()

	_, err := NewFetcher(FetcherConfig{URL: srv.URL}).Load(context.Background())
	require.ErrorIs(t, err, ErrMalformedHash)
}
