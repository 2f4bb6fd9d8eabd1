// Cinemora - Web Series Reviews and Catalog
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemora

/*
Package websocket implements the live activity feed served at /api/ws.

A Hub tracks connected clients and fans out messages when reviews are
written or the catalog changes, so open series pages can refresh ratings
without polling. The feed is read-only: the only message a client may
send is a ping, answered with a pong.

Message format:

	{"type": "review_created", "data": {"seriesId": 42, "averageRating": 8.5, ...}}

Message types:

  - review_created, review_updated, review_deleted: ReviewEvent
  - series_created, series_updated, series_deleted: SeriesEvent
  - catalog_changed: emitted after bulk changes, data is null
  - ping, pong: keepalive

The Hub runs as a supervised service (RunWithContext); on shutdown every
client receives a close frame. Broadcasts never block the caller: when the
hub's queue or a client's send buffer is full the message is dropped for
that recipient.
*/
package websocket
