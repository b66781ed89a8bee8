// Package csvstore loads the pre-computed PR activity CSV into an immutable
// in-memory record set and serves it as the dataset repository.
package csvstore

import (
	"context"

	"prdash/internal/domain/dataset"
)

// Store holds the record set loaded at startup. It is never written to after
// construction, so concurrent reads need no synchronisation.
type Store struct {
	records []dataset.PullRequestRecord
	catalog *dataset.Catalog
}

func NewStore(records []dataset.PullRequestRecord, catalog *dataset.Catalog) *Store {
	return &Store{
		records: append([]dataset.PullRequestRecord(nil), records...),
		catalog: catalog,
	}
}

func (s *Store) All(ctx context.Context) ([]dataset.PullRequestRecord, error) {
	return append([]dataset.PullRequestRecord(nil), s.records...), nil
}

func (s *Store) Catalog(ctx context.Context) (*dataset.Catalog, error) {
	return s.catalog, nil
}
