package watch

import "context"

// Repository persists the ordered history of suspicious domain records.
// Records are unique by domain string and kept in insertion order.
type Repository interface {
	// Append adds a record to the end of the history. Appending a domain
	// that is already tracked fails with errors.ErrDuplicateDomain.
	Append(ctx context.Context, rec Record) error

	// All returns the full history in insertion order.
	All(ctx context.Context) ([]Record, error)

	// Domains returns a snapshot of the tracked domain strings.
	Domains(ctx context.Context) (map[string]struct{}, error)

	// Trim drops the oldest records until at most keep remain, returning
	// how many were dropped.
	Trim(ctx context.Context, keep int) (int, error)
}
