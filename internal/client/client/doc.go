// Package client talks to the mockup generation service.
//
// # Overview
//
// The package provides:
//  1. The Client interface used by the services layer: LoadUser,
//     ListMockups, GenerateMockup, EditMockup and GetMockup.
//  2. HTTPClient, a JSON-over-HTTP implementation. Every call asks the
//     TokenSource for a bearer token immediately before sending, so token
//     freshness stays with the auth collaborator. There are no retries and
//     no timeout beyond the caller's context.
//  3. Local persistence bootstrap (InitDatabase, RunMigrations) wiring an
//     SQLite database with embedded goose migrations.
//
// # Error Handling
//
// A non-2xx response becomes a *RequestError carrying the status and the
// "message" field of the JSON error body, or "request failed with status N"
// when the body has none. Transport failures wrap ErrUnavailable. A missing
// token surfaces as ErrAuthTokenMissing before any request is made.
package client
