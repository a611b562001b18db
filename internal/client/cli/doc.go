// Package cli provides the interactive screenmock command-line client.
//
// It wires configuration, local storage, the generation service client, the
// credit ledger and the session controller into a REPL. Typical flow: paste a
// session token, generate a mockup for the configured device, preview and
// edit it, export the result.
//
// Key features:
//   - Login / Logout (session token kept in the local database)
//   - Credits view with manual refresh and a background watcher
//   - Generate / Edit / Open / List / Show mockups
//   - Export to a local directory or an S3 bucket, local history
//
// The REPL is started via App.Root(ctx), which blocks until the user exits.
package cli
