package dataset

import "context"

type Repository interface {
	// All returns every loaded record. Implementations must return a copy
	// the caller can hold without aliasing the underlying set.
	All(ctx context.Context) ([]PullRequestRecord, error)

	// Catalog returns the fixed source configuration the records were
	// loaded against.
	Catalog(ctx context.Context) (*Catalog, error)
}
