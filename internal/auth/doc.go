// Cinemora - Web Series Reviews and Catalog
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemora

// Package auth issues and verifies the bearer tokens used by the API and
// hashes account passwords.
//
// Tokens are HS256 JWTs carrying the account id, email and role. Their
// lifetime is SESSION_TIMEOUT (seven days by default). There is no server
// side session state; logging out is a client concern.
//
// Middleware.Authenticate guards routes that need a signed-in user and
// answers 401 with one of:
//
//	No token provided      header missing
//	Invalid token format   header is not "Bearer <token>"
//	Invalid token          bad signature, algorithm or payload
//	Token expired          exp has passed
//
// Role checks live in package authz.
package auth
