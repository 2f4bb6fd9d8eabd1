// Cinemora - Web Series Reviews and Catalog
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemora

package audit

import (
	"context"
	"errors"
	"time"

	"github.com/goccy/go-json"
)

// EventType categorizes audit events.
type EventType string

const (
	EventTypeSignup       EventType = "auth.signup"
	EventTypeLoginSuccess EventType = "auth.login_success"
	EventTypeLoginFailure EventType = "auth.login_failure"

	EventTypeProfileUpdated EventType = "user.profile_updated"

	EventTypeSeriesCreated EventType = "series.created"
	EventTypeSeriesUpdated EventType = "series.updated"
	EventTypeSeriesDeleted EventType = "series.deleted"
)

// Severity indicates how interesting an event is to an operator.
type Severity string

const (
	SeverityInfo     Severity = "info"
	SeverityWarning  Severity = "warning"
	SeverityCritical Severity = "critical"
)

// Outcome indicates whether an action succeeded.
type Outcome string

const (
	OutcomeSuccess Outcome = "success"
	OutcomeFailure Outcome = "failure"
)

// ErrNotFound is returned by Store.Get for an unknown id.
var ErrNotFound = errors.New("audit event not found")

// Event is one audit record.
type Event struct {
	ID          string          `json:"id"`
	Timestamp   time.Time       `json:"timestamp"`
	Type        EventType       `json:"type"`
	Severity    Severity        `json:"severity"`
	Outcome     Outcome         `json:"outcome"`
	Actor       Actor           `json:"actor"`
	Target      *Target         `json:"target,omitempty"`
	Source      Source          `json:"source"`
	Description string          `json:"description"`
	Metadata    json.RawMessage `json:"metadata,omitempty"`
	RequestID   string          `json:"requestId,omitempty"`
}

// Actor is the account that performed the action. ID is empty for
// anonymous requests such as a failed login.
type Actor struct {
	ID    string `json:"id,omitempty"`
	Email string `json:"email,omitempty"`
	Role  string `json:"role,omitempty"`
}

// Target is the object of the action.
type Target struct {
	Type string `json:"type"`
	ID   string `json:"id"`
	Name string `json:"name,omitempty"`
}

// Source describes where the request came from.
type Source struct {
	IPAddress string `json:"ipAddress"`
	UserAgent string `json:"userAgent,omitempty"`
}

// Store persists audit events.
type Store interface {
	Save(ctx context.Context, event *Event) error
	Get(ctx context.Context, id string) (*Event, error)
	// Query returns matching events, newest first.
	Query(ctx context.Context, filter QueryFilter) ([]Event, error)
	Count(ctx context.Context, filter QueryFilter) (int64, error)
	// Delete removes events older than the cutoff and returns how many.
	Delete(ctx context.Context, olderThan time.Time) (int64, error)
}

// QueryFilter narrows an audit query. Zero values match everything.
type QueryFilter struct {
	Types     []EventType
	Outcome   Outcome
	ActorID   string
	TargetID  string
	StartTime *time.Time
	EndTime   *time.Time
	Limit     int
	Offset    int
}

// DefaultQueryLimit is used when a filter has no limit.
const DefaultQueryLimit = 100
