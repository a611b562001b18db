// Package models defines the client-side data types: the credit ledger,
// generated artifacts, mockup listings and the wire records exchanged with
// the generation service.
package models
