// Cinemora - Web Series Reviews and Catalog
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemora

package tvmaze

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/tomtom215/cinemora/internal/cache"
	"github.com/tomtom215/cinemora/internal/config"
)

const searchBody = `[
  {"score": 0.9, "show": {"id": 1, "name": "Sacred Games", "type": "Scripted", "language": "Hindi",
    "genres": ["Crime"], "premiered": "2018-07-06", "summary": "<p>Mumbai.</p>",
    "webChannel": {"id": 1, "name": "Netflix", "country": null}}},
  {"score": 0.5, "show": {"id": 2, "name": "Bold Tales", "type": "Scripted",
    "webChannel": {"id": 1, "name": "Netflix"}}},
  {"score": 0.4, "show": {"id": 3, "name": "Local News", "type": "News",
    "network": {"id": 9, "name": "Doordarshan"}}}
]`

func newTestClient(t *testing.T, handler http.HandlerFunc, c cache.Cacher) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client := NewClient(&config.TVMazeConfig{
		BaseURL:       srv.URL,
		SearchTimeout: 5 * time.Second,
		PageTimeout:   5 * time.Second,
		CacheTTL:      time.Minute,
		UserAgent:     "cinemora-test",
	}, c)
	client.retryBaseDelay = time.Millisecond
	return client
}

func TestSearchShowsFiltersAndCaches(t *testing.T) {
	var calls atomic.Int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		if r.URL.Path != "/search/shows" || r.URL.Query().Get("q") != "Sacred" {
			t.Errorf("unexpected request %s", r.URL)
		}
		if r.Header.Get("User-Agent") != "cinemora-test" {
			t.Errorf("User-Agent = %q", r.Header.Get("User-Agent"))
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(searchBody))
	}, cache.New(time.Minute))

	ctx := context.Background()
	got, err := client.SearchShows(ctx, "  Sacred ")
	if err != nil {
		t.Fatalf("SearchShows: %v", err)
	}
	if len(got) != 1 || got[0].Title != "Sacred Games" {
		t.Fatalf("SearchShows = %+v, want only Sacred Games", got)
	}

	if _, err := client.SearchShows(ctx, "sacred"); err != nil {
		t.Fatal(err)
	}
	if n := calls.Load(); n != 1 {
		t.Errorf("upstream calls = %d, want 1 (second lookup cached)", n)
	}
}

func TestSearchShowsBlankQuery(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("blank query must not reach upstream")
	}, nil)
	got, err := client.SearchShows(context.Background(), "   ")
	if err != nil || len(got) != 0 {
		t.Errorf("SearchShows(blank) = %v, %v", got, err)
	}
}

func TestGetShow(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/shows/1":
			_, _ = w.Write([]byte(`{"id": 1, "name": "Panchayat", "webChannel": {"name": "Amazon Prime Video"}}`))
		case "/shows/2":
			_, _ = w.Write([]byte(`{"id": 2, "name": "Late Show", "network": {"name": "CBS"}}`))
		default:
			http.NotFound(w, r)
		}
	}, nil)
	ctx := context.Background()

	got, err := client.GetShow(ctx, 1)
	if err != nil || got == nil || got.Title != "Panchayat" {
		t.Fatalf("GetShow(1) = %+v, %v", got, err)
	}

	got, err = client.GetShow(ctx, 2)
	if err != nil || got != nil {
		t.Errorf("GetShow(filtered) = %+v, %v; want nil, nil", got, err)
	}

	_, err = client.GetShow(ctx, 99)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("GetShow(missing) error = %v, want ErrNotFound", err)
	}
}

func TestSharedLookupSurvivesCanceledCaller(t *testing.T) {
	started := make(chan struct{}, 4)
	release := make(chan struct{})
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		started <- struct{}{}
		<-release
		_, _ = w.Write([]byte(searchBody))
	}, nil)

	firstCtx, cancelFirst := context.WithCancel(context.Background())
	firstErr := make(chan error, 1)
	go func() {
		_, err := client.SearchShows(firstCtx, "Sacred")
		firstErr <- err
	}()
	<-started

	type result struct {
		n   int
		err error
	}
	second := make(chan result, 1)
	go func() {
		got, err := client.SearchShows(context.Background(), "Sacred")
		second <- result{len(got), err}
	}()
	time.Sleep(20 * time.Millisecond) // let the second caller join the flight

	cancelFirst()
	if err := <-firstErr; !errors.Is(err, context.Canceled) {
		t.Errorf("canceled caller error = %v, want context.Canceled", err)
	}

	close(release)
	select {
	case res := <-second:
		if res.err != nil || res.n != 1 {
			t.Errorf("waiting caller = %d results, %v; want 1, nil", res.n, res.err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("waiting caller never returned")
	}
}

func TestShowsPage(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("page") == "0" {
			_, _ = w.Write([]byte(`[{"id": 1, "name": "A"}, {"id": 2, "name": "B"}]`))
			return
		}
		http.NotFound(w, r)
	}, nil)
	ctx := context.Background()

	shows, err := client.ShowsPage(ctx, 0)
	if err != nil || len(shows) != 2 {
		t.Fatalf("ShowsPage(0) = %d shows, %v", len(shows), err)
	}

	shows, err = client.ShowsPage(ctx, 5)
	if err != nil || len(shows) != 0 {
		t.Errorf("ShowsPage(past end) = %d shows, %v; want empty, nil", len(shows), err)
	}
}

func TestRetriesOnTooManyRequests(t *testing.T) {
	var calls atomic.Int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		_, _ = w.Write([]byte(`[]`))
	}, nil)

	shows, err := client.ShowsPage(context.Background(), 0)
	if err != nil {
		t.Fatalf("ShowsPage: %v", err)
	}
	if len(shows) != 0 || calls.Load() != 3 {
		t.Errorf("calls = %d, want 3", calls.Load())
	}
}

func TestGivesUpAfterRetries(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}, nil)

	_, err := client.ShowsPage(context.Background(), 0)
	if !errors.Is(err, ErrUnavailable) {
		t.Errorf("error = %v, want ErrUnavailable", err)
	}
}

func TestServerErrorIsUnavailable(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream exploded", http.StatusBadGateway)
	}, nil)

	_, err := client.SearchShows(context.Background(), "anything")
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("error = %v, want ErrUnavailable", err)
	}
	if !strings.Contains(err.Error(), "upstream exploded") {
		t.Errorf("error %q does not carry the response body", err)
	}
	if state := client.BreakerState(); state != "closed" {
		t.Errorf("breaker = %s, want closed after one failure", state)
	}
}
