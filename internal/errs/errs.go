// Package errs defines the error shapes the API returns to clients.
//
// Every failure leaves the API as an HTTPError serialized to JSON, so
// clients can rely on one structure for field errors, machine-readable codes
// and optional action hints.
package errs
