// Package records implements the keyed-record store behind every persisted
// client value (stats, theme, accounts, session, feedback).
//
// Values are opaque byte slices. Get returns (nil, nil) for a missing key so
// callers can treat absence and a fresh install the same way.
package records
