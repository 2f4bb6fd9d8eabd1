// Cinemora - Web Series Reviews and Catalog
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemora

/*
Package audit records security-relevant events: sign-ups, logins, profile
changes and admin catalog writes.

Events are handed to a Logger, which buffers them and writes them to a
Store from its own goroutine so request handlers never wait on the
database. The Logger runs as a supervised service; the same loop purges
events older than the configured retention.

Two stores are provided:

  - DuckDBStore persists events in the audit_events table next to the
    catalog.
  - MemoryStore keeps a bounded in-process list, used in tests.

Admins read the trail through GET /api/admin/audit.

Example:

	store := audit.NewDuckDBStore(db.Conn())
	if err := store.CreateTable(ctx); err != nil {
		return err
	}
	logger := audit.NewLogger(store, &cfg.Audit)
	tree.AddMaintenanceService(logger)

	logger.Log(&audit.Event{
		Type:    audit.EventTypeLoginFailure,
		Outcome: audit.OutcomeFailure,
		Source:  audit.SourceFromRequest(r),
	})
*/
package audit
