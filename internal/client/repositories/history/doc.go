// Package history keeps a local record of every artifact the session has
// shown, so a previous screen can be re-opened or exported offline.
//
// Rows are append-only. Record trims the table to a configured number of
// rows in the same transaction as the insert.
package history
