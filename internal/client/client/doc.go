// Package client contains client-side building blocks for SurLink.
//
// # Overview
//
// The package provides:
//  1. A transport-agnostic contract (see the ScannerClient interface) for the
//     two remote services: the classifier (Analyze, ClassifierHealth) and the
//     optional explainer (Explain, ExplainerHealth).
//  2. A JSON-over-HTTP implementation (see HTTPClient).
//  3. Local persistence bootstrap (InitDatabase, RunMigrations) that opens the
//     SQLite or PostgreSQL records store and applies embedded goose migrations.
//
// # Error Handling
//
// Transport failures map to ErrUnavailable, non-2xx responses to ErrBadStatus
// and undecodable bodies to ErrDecode. Explain and ExplainerHealth return
// ErrNotConfigured when no explainer URL is set. Match them with errors.Is.
//
// HTTPClient is safe for concurrent use. Every call honours ctx cancellation.
package client
