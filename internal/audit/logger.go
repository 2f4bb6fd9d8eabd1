// Cinemora - Web Series Reviews and Catalog
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemora

package audit

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/tomtom215/cinemora/internal/config"
	"github.com/tomtom215/cinemora/internal/logging"
	"github.com/tomtom215/cinemora/internal/metrics"
)

const saveTimeout = 5 * time.Second

// Logger buffers audit events and writes them from Serve. A nil *Logger
// discards everything, so callers need not check whether auditing is on.
type Logger struct {
	cfg    config.AuditConfig
	store  Store
	events chan *Event
	now    func() time.Time
}

// NewLogger creates a logger writing to store. Events are accepted before
// Serve starts and written once it runs.
func NewLogger(store Store, cfg *config.AuditConfig) *Logger {
	c := *cfg
	if c.BufferSize < 1 {
		c.BufferSize = 1000
	}
	if c.CleanupInterval <= 0 {
		c.CleanupInterval = 24 * time.Hour
	}
	return &Logger{
		cfg:    c,
		store:  store,
		events: make(chan *Event, c.BufferSize),
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// Enabled reports whether events are being recorded.
func (l *Logger) Enabled() bool {
	return l != nil && l.cfg.Enabled
}

// Log fills in the id, timestamp and severity if missing and queues the
// event. It never blocks: when the buffer is full the event is dropped.
func (l *Logger) Log(event *Event) {
	if !l.Enabled() || event == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = l.now()
	}
	if event.Severity == "" {
		event.Severity = SeverityInfo
		if event.Outcome == OutcomeFailure {
			event.Severity = SeverityWarning
		}
	}

	select {
	case l.events <- event:
		metrics.RecordAuditEvent(string(event.Type), string(event.Outcome), false)
	default:
		metrics.RecordAuditEvent(string(event.Type), string(event.Outcome), true)
		logging.Warn().Str("event_id", event.ID).Str("type", string(event.Type)).Msg("Audit event buffer full, dropping event")
	}
}

// Serve writes queued events and purges expired ones until ctx is done,
// then flushes what is still buffered. It implements suture.Service.
func (l *Logger) Serve(ctx context.Context) error {
	ticker := time.NewTicker(l.cfg.CleanupInterval)
	defer ticker.Stop()

	logger := logging.WithComponent("audit")
	logger.Info().Dur("retention", l.cfg.Retention).Msg("Audit logger started")

	for {
		select {
		case <-ctx.Done():
			n := l.Flush()
			logger.Info().Int("flushed", n).Msg("Audit logger stopped")
			return ctx.Err()
		case event := <-l.events:
			l.write(event)
		case <-ticker.C:
			if _, err := l.Purge(ctx); err != nil {
				logger.Error().Err(err).Msg("Audit retention cleanup failed")
			}
		}
	}
}

// String implements fmt.Stringer for supervisor logs.
func (l *Logger) String() string {
	return "audit-logger"
}

// Flush synchronously writes every buffered event and returns how many.
func (l *Logger) Flush() int {
	n := 0
	for {
		select {
		case event := <-l.events:
			l.write(event)
			n++
		default:
			return n
		}
	}
}

// Purge deletes events older than the retention period.
func (l *Logger) Purge(ctx context.Context) (int64, error) {
	if l.cfg.Retention <= 0 {
		return 0, nil
	}
	removed, err := l.store.Delete(ctx, l.now().Add(-l.cfg.Retention))
	if err != nil {
		return 0, err
	}
	metrics.RecordAuditPurge(removed)
	if removed > 0 {
		logging.Info().Int64("count", removed).Msg("Purged expired audit events")
	}
	return removed, nil
}

// Query returns matching events, newest first, with the total match count.
func (l *Logger) Query(ctx context.Context, filter QueryFilter) ([]Event, int64, error) {
	total, err := l.store.Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	events, err := l.store.Query(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	return events, total, nil
}

func (l *Logger) write(event *Event) {
	ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
	defer cancel()
	if err := l.store.Save(ctx, event); err != nil {
		logging.Error().Err(err).Str("event_id", event.ID).Msg("Failed to save audit event")
	}
}
