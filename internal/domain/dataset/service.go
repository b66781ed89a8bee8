package dataset

import (
	"context"
	"sort"
)

type Service interface {
	List(ctx context.Context) ([]Info, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) List(ctx context.Context) ([]Info, error) {
	records, err := s.repo.All(ctx)
	if err != nil {
		return nil, err
	}
	catalog, err := s.repo.Catalog(ctx)
	if err != nil {
		return nil, err
	}

	counts := make(map[Source]int)
	years := make(map[Source]map[int]struct{})
	for _, r := range records {
		counts[r.Source]++
		y, ok := r.MergedYear()
		if !ok {
			continue
		}
		if years[r.Source] == nil {
			years[r.Source] = make(map[int]struct{})
		}
		years[r.Source][y] = struct{}{}
	}

	out := make([]Info, 0, len(catalog.Sources()))
	for _, src := range catalog.Sources() {
		info := Info{
			Source:  src,
			Label:   catalog.Label(src),
			Records: counts[src],
		}
		for y := range years[src] {
			info.Years = append(info.Years, y)
		}
		sort.Ints(info.Years)
		out = append(out, info)
	}
	return out, nil
}
