// Cinemora - Web Series Reviews and Catalog
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemora

package audit

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"
	"time"

	_ "github.com/duckdb/duckdb-go/v2"
	"github.com/goccy/go-json"
)

// storeFactories lets the same behaviour tests run against every Store.
var storeFactories = map[string]func(t *testing.T) Store{
	"memory": func(*testing.T) Store { return NewMemoryStore(100) },
	"duckdb": func(t *testing.T) Store {
		t.Helper()
		db, err := sql.Open("duckdb", "")
		if err != nil {
			t.Fatalf("open duckdb: %v", err)
		}
		t.Cleanup(func() { _ = db.Close() })
		store := NewDuckDBStore(db)
		if err := store.CreateTable(context.Background()); err != nil {
			t.Fatalf("CreateTable() error = %v", err)
		}
		return store
	},
}

var baseTime = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func seedEvents(t *testing.T, s Store) {
	t.Helper()
	events := []*Event{
		{ID: "e1", Timestamp: baseTime, Type: EventTypeSignup, Severity: SeverityInfo, Outcome: OutcomeSuccess,
			Actor: Actor{ID: "1", Email: "a@x.test", Role: "user"}, Source: Source{IPAddress: "10.0.0.1"}, Description: "signup"},
		{ID: "e2", Timestamp: baseTime.Add(time.Minute), Type: EventTypeLoginFailure, Severity: SeverityWarning, Outcome: OutcomeFailure,
			Source: Source{IPAddress: "10.0.0.2", UserAgent: "curl/8"}, Description: "bad password",
			Metadata: json.RawMessage(`{"email":"b@x.test"}`)},
		{ID: "e3", Timestamp: baseTime.Add(2 * time.Minute), Type: EventTypeSeriesCreated, Severity: SeverityInfo, Outcome: OutcomeSuccess,
			Actor: Actor{ID: "9", Email: "admin@x.test", Role: "admin"}, Target: &Target{Type: "series", ID: "42", Name: "Panchayat"},
			Source: Source{IPAddress: "10.0.0.9"}, Description: "series created", RequestID: "req-3"},
		{ID: "e4", Timestamp: baseTime.Add(3 * time.Minute), Type: EventTypeLoginSuccess, Severity: SeverityInfo, Outcome: OutcomeSuccess,
			Actor: Actor{ID: "1", Email: "a@x.test", Role: "user"}, Source: Source{IPAddress: "10.0.0.1"}, Description: "login"},
	}
	for _, e := range events {
		if err := s.Save(context.Background(), e); err != nil {
			t.Fatalf("Save(%s) error = %v", e.ID, err)
		}
	}
}

func ids(events []Event) string {
	out := ""
	for i, e := range events {
		if i > 0 {
			out += ","
		}
		out += e.ID
	}
	return out
}

func TestStoreQuery(t *testing.T) {
	since := baseTime.Add(90 * time.Second)
	tests := []struct {
		name   string
		filter QueryFilter
		want   string
	}{
		{"all newest first", QueryFilter{}, "e4,e3,e2,e1"},
		{"by type", QueryFilter{Types: []EventType{EventTypeLoginFailure, EventTypeLoginSuccess}}, "e4,e2"},
		{"by outcome", QueryFilter{Outcome: OutcomeFailure}, "e2"},
		{"by actor", QueryFilter{ActorID: "1"}, "e4,e1"},
		{"by target", QueryFilter{TargetID: "42"}, "e3"},
		{"since", QueryFilter{StartTime: &since}, "e4,e3"},
		{"until", QueryFilter{EndTime: &since}, "e2,e1"},
		{"limit and offset", QueryFilter{Limit: 2, Offset: 1}, "e3,e2"},
	}

	for storeName, factory := range storeFactories {
		t.Run(storeName, func(t *testing.T) {
			s := factory(t)
			seedEvents(t, s)
			for _, tt := range tests {
				t.Run(tt.name, func(t *testing.T) {
					got, err := s.Query(context.Background(), tt.filter)
					if err != nil {
						t.Fatalf("Query() error = %v", err)
					}
					if ids(got) != tt.want {
						t.Errorf("Query() = %s, want %s", ids(got), tt.want)
					}

					count, err := s.Count(context.Background(), QueryFilter{
						Types: tt.filter.Types, Outcome: tt.filter.Outcome, ActorID: tt.filter.ActorID,
						TargetID: tt.filter.TargetID, StartTime: tt.filter.StartTime, EndTime: tt.filter.EndTime,
					})
					if err != nil {
						t.Fatalf("Count() error = %v", err)
					}
					if tt.filter.Limit == 0 && count != int64(len(got)) {
						t.Errorf("Count() = %d, want %d", count, len(got))
					}
				})
			}
		})
	}
}

func TestStoreGetRoundTrip(t *testing.T) {
	for storeName, factory := range storeFactories {
		t.Run(storeName, func(t *testing.T) {
			s := factory(t)
			seedEvents(t, s)

			got, err := s.Get(context.Background(), "e3")
			if err != nil {
				t.Fatalf("Get() error = %v", err)
			}
			if got.Target == nil || got.Target.Name != "Panchayat" || got.Actor.Role != "admin" || got.RequestID != "req-3" {
				t.Errorf("Get() = %+v", got)
			}
			if !got.Timestamp.Equal(baseTime.Add(2 * time.Minute)) {
				t.Errorf("Timestamp = %v", got.Timestamp)
			}

			failed, err := s.Get(context.Background(), "e2")
			if err != nil {
				t.Fatalf("Get() error = %v", err)
			}
			if failed.Actor.ID != "" || failed.Target != nil || failed.Source.UserAgent != "curl/8" {
				t.Errorf("anonymous event = %+v", failed)
			}
			var meta map[string]string
			if err := json.Unmarshal(failed.Metadata, &meta); err != nil || meta["email"] != "b@x.test" {
				t.Errorf("Metadata = %s (%v)", failed.Metadata, err)
			}

			if _, err := s.Get(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
				t.Errorf("Get(missing) error = %v, want ErrNotFound", err)
			}
		})
	}
}

func TestStoreDelete(t *testing.T) {
	for storeName, factory := range storeFactories {
		t.Run(storeName, func(t *testing.T) {
			s := factory(t)
			seedEvents(t, s)

			removed, err := s.Delete(context.Background(), baseTime.Add(90*time.Second))
			if err != nil {
				t.Fatalf("Delete() error = %v", err)
			}
			if removed != 2 {
				t.Errorf("Delete() removed %d, want 2", removed)
			}
			left, _ := s.Query(context.Background(), QueryFilter{})
			if ids(left) != "e4,e3" {
				t.Errorf("remaining = %s, want e4,e3", ids(left))
			}
		})
	}
}

func TestMemoryStoreBounded(t *testing.T) {
	s := NewMemoryStore(10)
	for i := 0; i < 25; i++ {
		_ = s.Save(context.Background(), &Event{ID: fmt.Sprintf("e%d", i), Timestamp: baseTime})
	}
	if s.Len() > 10 {
		t.Errorf("Len() = %d, want <= 10", s.Len())
	}
	newest, _ := s.Query(context.Background(), QueryFilter{Limit: 1})
	if len(newest) != 1 || newest[0].ID != "e24" {
		t.Errorf("newest = %v", newest)
	}
}
