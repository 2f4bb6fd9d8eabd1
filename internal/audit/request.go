// Cinemora - Web Series Reviews and Catalog
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemora

package audit

import (
	"net"
	"net/http"
	"strconv"

	"github.com/goccy/go-json"

	"github.com/tomtom215/cinemora/internal/auth"
	"github.com/tomtom215/cinemora/internal/middleware"
)

// SourceFromRequest extracts the client address and user agent. The
// address is taken from RemoteAddr, which RealIP has already rewritten
// behind a proxy.
func SourceFromRequest(r *http.Request) Source {
	ip := r.RemoteAddr
	if host, _, err := net.SplitHostPort(ip); err == nil {
		ip = host
	}
	return Source{IPAddress: ip, UserAgent: r.UserAgent()}
}

// ActorFromRequest returns the authenticated caller, or an empty actor.
func ActorFromRequest(r *http.Request) Actor {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		return Actor{}
	}
	return Actor{ID: strconv.FormatInt(claims.UserID, 10), Email: claims.Email, Role: claims.Role}
}

// NewRequestEvent builds an event carrying the request's actor, source and
// request id.
func NewRequestEvent(r *http.Request, eventType EventType, outcome Outcome, description string) *Event {
	return &Event{
		Type:        eventType,
		Outcome:     outcome,
		Actor:       ActorFromRequest(r),
		Source:      SourceFromRequest(r),
		Description: description,
		RequestID:   middleware.GetRequestID(r.Context()),
	}
}

// WithTarget sets the event target and returns the event.
func (e *Event) WithTarget(targetType string, id int64, name string) *Event {
	e.Target = &Target{Type: targetType, ID: strconv.FormatInt(id, 10), Name: name}
	return e
}

// WithActor overrides the actor, for events raised before the caller holds
// a token.
func (e *Event) WithActor(id int64, email, role string) *Event {
	e.Actor = Actor{ID: strconv.FormatInt(id, 10), Email: email, Role: role}
	return e
}

// WithMetadata attaches v as JSON metadata. Values that fail to marshal are
// dropped.
func (e *Event) WithMetadata(v any) *Event {
	if data, err := json.Marshal(v); err == nil {
		e.Metadata = data
	}
	return e
}
