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
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/cinemora/internal/logging"
)

// DuckDBStore implements Store on the catalog database.
type DuckDBStore struct {
	db *sql.DB
}

// NewDuckDBStore wraps an open connection. Call CreateTable before use.
func NewDuckDBStore(db *sql.DB) *DuckDBStore {
	return &DuckDBStore{db: db}
}

var auditSchema = []string{
	`CREATE TABLE IF NOT EXISTS audit_events (
		id TEXT PRIMARY KEY,
		timestamp TIMESTAMP NOT NULL,
		type TEXT NOT NULL,
		severity TEXT NOT NULL,
		outcome TEXT NOT NULL,
		actor_id TEXT,
		actor_email TEXT,
		actor_role TEXT,
		target_type TEXT,
		target_id TEXT,
		target_name TEXT,
		source_ip TEXT NOT NULL,
		source_user_agent TEXT,
		description TEXT NOT NULL,
		metadata TEXT,
		request_id TEXT
	)`,
	`CREATE INDEX IF NOT EXISTS idx_audit_timestamp ON audit_events(timestamp)`,
	`CREATE INDEX IF NOT EXISTS idx_audit_type ON audit_events(type)`,
	`CREATE INDEX IF NOT EXISTS idx_audit_actor_id ON audit_events(actor_id)`,
}

// CreateTable creates the audit_events table and its indexes.
func (s *DuckDBStore) CreateTable(ctx context.Context) error {
	for _, stmt := range auditSchema {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to create audit schema: %w", err)
		}
	}
	logging.Debug().Msg("Audit events table created/verified")
	return nil
}

const auditColumns = `id, timestamp, type, severity, outcome,
	actor_id, actor_email, actor_role,
	target_type, target_id, target_name,
	source_ip, source_user_agent, description, metadata, request_id`

// Save inserts one event.
func (s *DuckDBStore) Save(ctx context.Context, event *Event) error {
	if event == nil {
		return errors.New("event cannot be nil")
	}

	var targetType, targetID, targetName *string
	if event.Target != nil {
		targetType, targetID, targetName = &event.Target.Type, &event.Target.ID, nullable(event.Target.Name)
	}
	var metadata *string
	if len(event.Metadata) > 0 {
		m := string(event.Metadata)
		metadata = &m
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO audit_events (`+auditColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		event.ID, event.Timestamp.UTC(), string(event.Type), string(event.Severity), string(event.Outcome),
		nullable(event.Actor.ID), nullable(event.Actor.Email), nullable(event.Actor.Role),
		targetType, targetID, targetName,
		event.Source.IPAddress, nullable(event.Source.UserAgent),
		event.Description, metadata, nullable(event.RequestID),
	)
	if err != nil {
		return fmt.Errorf("failed to save audit event: %w", err)
	}
	return nil
}

// Get returns the event with the given id.
func (s *DuckDBStore) Get(ctx context.Context, id string) (*Event, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+auditColumns+` FROM audit_events WHERE id = ?`, id)
	event, err := scanEvent(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return event, err
}

// Query returns matching events, newest first.
func (s *DuckDBStore) Query(ctx context.Context, filter QueryFilter) ([]Event, error) {
	where, args := buildFilterConditions(filter)
	limit := filter.Limit
	if limit <= 0 {
		limit = DefaultQueryLimit
	}
	query := fmt.Sprintf(`SELECT %s FROM audit_events%s ORDER BY timestamp DESC, id DESC LIMIT %d OFFSET %d`,
		auditColumns, where, limit, max(filter.Offset, 0))

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query audit events: %w", err)
	}
	defer rows.Close()

	events := make([]Event, 0)
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, *event)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating audit events: %w", err)
	}
	return events, nil
}

// Count returns the number of matching events.
func (s *DuckDBStore) Count(ctx context.Context, filter QueryFilter) (int64, error) {
	where, args := buildFilterConditions(filter)
	var n int64
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM audit_events`+where, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count audit events: %w", err)
	}
	return n, nil
}

// Delete removes events older than the cutoff.
func (s *DuckDBStore) Delete(ctx context.Context, olderThan time.Time) (int64, error) {
	result, err := s.db.ExecContext(ctx, `DELETE FROM audit_events WHERE timestamp < ?`, olderThan.UTC())
	if err != nil {
		return 0, fmt.Errorf("failed to delete audit events: %w", err)
	}
	return result.RowsAffected()
}

func buildFilterConditions(filter QueryFilter) (string, []interface{}) {
	var conditions []string
	var args []interface{}

	if len(filter.Types) > 0 {
		placeholders := make([]string, len(filter.Types))
		for i, t := range filter.Types {
			placeholders[i] = "?"
			args = append(args, string(t))
		}
		conditions = append(conditions, "type IN ("+strings.Join(placeholders, ",")+")")
	}
	if filter.Outcome != "" {
		conditions = append(conditions, "outcome = ?")
		args = append(args, string(filter.Outcome))
	}
	if filter.ActorID != "" {
		conditions = append(conditions, "actor_id = ?")
		args = append(args, filter.ActorID)
	}
	if filter.TargetID != "" {
		conditions = append(conditions, "target_id = ?")
		args = append(args, filter.TargetID)
	}
	if filter.StartTime != nil {
		conditions = append(conditions, "timestamp >= ?")
		args = append(args, filter.StartTime.UTC())
	}
	if filter.EndTime != nil {
		conditions = append(conditions, "timestamp <= ?")
		args = append(args, filter.EndTime.UTC())
	}

	if len(conditions) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conditions, " AND "), args
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanEvent(row rowScanner) (*Event, error) {
	var (
		e                                Event
		eventType, severity, outcome     string
		actorID, actorEmail, actorRole   sql.NullString
		targetType, targetID, targetName sql.NullString
		userAgent, metadata, requestID   sql.NullString
	)
	err := row.Scan(&e.ID, &e.Timestamp, &eventType, &severity, &outcome,
		&actorID, &actorEmail, &actorRole,
		&targetType, &targetID, &targetName,
		&e.Source.IPAddress, &userAgent, &e.Description, &metadata, &requestID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan audit event: %w", err)
	}

	e.Timestamp = e.Timestamp.UTC()
	e.Type, e.Severity, e.Outcome = EventType(eventType), Severity(severity), Outcome(outcome)
	e.Actor = Actor{ID: actorID.String, Email: actorEmail.String, Role: actorRole.String}
	if targetID.Valid {
		e.Target = &Target{Type: targetType.String, ID: targetID.String, Name: targetName.String}
	}
	e.Source.UserAgent = userAgent.String
	if metadata.Valid && json.Valid([]byte(metadata.String)) {
		e.Metadata = json.RawMessage(metadata.String)
	}
	e.RequestID = requestID.String
	return &e, nil
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
