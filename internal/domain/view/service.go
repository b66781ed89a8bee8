package view

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"strings"

	"prdash/internal/domain"
	"prdash/internal/domain/dataset"
)

type Service interface {
	Compose(ctx context.Context, sel Selection) (Result, error)
	PerUser(ctx context.Context, sel Selection) ([]SeriesPoint, error)
	YearOverYear(ctx context.Context, sel Selection) ([]FramePoint, error)
	ReviewActivity(ctx context.Context, sel Selection) ([]SeriesPoint, error)
}

type service struct {
	repo    dataset.Repository
	aliases AliasResolver
	events  domain.EventBus
}

func NewService(repo dataset.Repository, aliases AliasResolver, events domain.EventBus) Service {
	return &service{repo: repo, aliases: aliases, events: events}
}

func (s *service) Compose(ctx context.Context, sel Selection) (Result, error) {
	res := Result{Mode: sel.Mode}

	var err error
	switch sel.Mode {
	case ModePerUser:
		res.Series, err = s.PerUser(ctx, sel)
	case ModeYearOverYear:
		res.Frames, err = s.YearOverYear(ctx, sel)
	case ModeReviewActivity:
		res.Series, err = s.ReviewActivity(ctx, sel)
	default:
		return Result{}, &domain.DomainError{
			Code:       domain.ErrorCodeInvalidMode,
			Message:    fmt.Sprintf("unknown comparison mode %q", sel.Mode),
			HTTPStatus: http.StatusBadRequest,
		}
	}
	if err != nil {
		return Result{}, err
	}

	res.Title, err = s.title(ctx, sel)
	if err != nil {
		return Result{}, err
	}

	if s.events != nil {
		s.events.Publish(ctx, domain.Event{
			Type: "chart.composed",
			Payload: map[string]any{
				"mode":    string(sel.Mode),
				"sources": sourceStrings(sel.Sources),
				"metric":  string(metricOrDefault(sel.Metric)),
			},
		})
	}

	return res, nil
}

// PerUser counts merged activity per author within one target year. Output is
// ordered by value descending, display name ascending on ties, so repeated
// calls with the same inputs lay the chart out identically.
func (s *service) PerUser(ctx context.Context, sel Selection) ([]SeriesPoint, error) {
	records, err := s.selectMerged(ctx, sel)
	if err != nil {
		return nil, err
	}
	metric, err := metricValid(sel.Metric)
	if err != nil {
		return nil, err
	}

	records = restrictToYear(records, targetYear(sel, records))
	allowed := authorSet(sel.Authors)

	totals := make(map[string]float64)
	for _, r := range records {
		display := s.aliases.Resolve(r.Author)
		if !authorAllowed(allowed, display, r.Author) {
			continue
		}
		totals[display] += weightOf(r, metric)
	}
	return sortedSeries(totals), nil
}

// YearOverYear partitions merged activity by year and then by calendar
// bucket. Every year in the output shares the same bucket grid, zero-filled
// where a year has no records, so animation frames stay aligned.
func (s *service) YearOverYear(ctx context.Context, sel Selection) ([]FramePoint, error) {
	records, err := s.selectMerged(ctx, sel)
	if err != nil {
		return nil, err
	}
	metric, err := metricValid(sel.Metric)
	if err != nil {
		return nil, err
	}
	bucket, err := bucketValid(sel.Bucket)
	if err != nil {
		return nil, err
	}

	years := sel.Years
	if len(years) == 0 {
		seen := make(map[int]struct{})
		for _, r := range records {
			if y, ok := r.MergedYear(); ok {
				seen[y] = struct{}{}
			}
		}
		for y := range seen {
			years = append(years, y)
		}
	} else {
		years = dedupInts(years)
	}
	sort.Ints(years)

	wanted := make(map[int]struct{}, len(years))
	for _, y := range years {
		wanted[y] = struct{}{}
	}

	// weights[year][bucket] and the shared grid extent.
	weights := make(map[int]map[int]float64, len(years))
	maxBucket := 0
	for _, r := range records {
		y, ok := r.MergedYear()
		if !ok {
			continue
		}
		if _, want := wanted[y]; !want {
			continue
		}
		b := bucketOf(*r.MergedAt, bucket)
		if weights[y] == nil {
			weights[y] = make(map[int]float64)
		}
		weights[y][b] += weightOf(r, metric)
		if b > maxBucket {
			maxBucket = b
		}
	}
	if maxBucket == 0 {
		return nil, nil
	}

	frames := make([]FramePoint, 0, maxBucket*len(years))
	running := make(map[int]float64, len(years))
	for b := 1; b <= maxBucket; b++ {
		for _, y := range years {
			v := weights[y][b]
			running[y] += v
			frames = append(frames, FramePoint{
				Bucket:     b,
				Label:      strconv.Itoa(y),
				Value:      v,
				Cumulative: running[y],
			})
		}
	}
	return frames, nil
}

// ReviewActivity counts requested reviews per reviewer within one target
// year, expanding each record's reviewer list. Each request counts once
// regardless of the weight metric.
func (s *service) ReviewActivity(ctx context.Context, sel Selection) ([]SeriesPoint, error) {
	records, err := s.selectMerged(ctx, sel)
	if err != nil {
		return nil, err
	}
	if _, err := metricValid(sel.Metric); err != nil {
		return nil, err
	}

	records = restrictToYear(records, targetYear(sel, records))
	allowed := authorSet(sel.Authors)

	totals := make(map[string]float64)
	for _, r := range records {
		for _, login := range r.RequestedReviewers {
			display := s.aliases.Resolve(login)
			if !authorAllowed(allowed, display, login) {
				continue
			}
			totals[display]++
		}
	}
	return sortedSeries(totals), nil
}

// selectMerged resolves the dataset selection against the catalog and keeps
// merged records only. An unknown source is a selection error; an empty
// selection is an empty (valid) subset.
func (s *service) selectMerged(ctx context.Context, sel Selection) ([]dataset.PullRequestRecord, error) {
	catalog, err := s.repo.Catalog(ctx)
	if err != nil {
		return nil, err
	}
	for _, src := range sel.Sources {
		if !catalog.Has(src) {
			return nil, &domain.DomainError{
				Code:       domain.ErrorCodeInvalidSelection,
				Message:    fmt.Sprintf("unknown dataset %q", src),
				HTTPStatus: http.StatusBadRequest,
			}
		}
	}
	if len(sel.Sources) == 0 {
		return nil, nil
	}

	records, err := s.repo.All(ctx)
	if err != nil {
		return nil, err
	}

	want := make(map[dataset.Source]struct{}, len(sel.Sources))
	for _, src := range sel.Sources {
		want[src] = struct{}{}
	}

	out := records[:0:0]
	for _, r := range records {
		if _, ok := want[r.Source]; !ok {
			continue
		}
		if r.MergedAt == nil {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

func (s *service) title(ctx context.Context, sel Selection) (string, error) {
	catalog, err := s.repo.Catalog(ctx)
	if err != nil {
		return "", err
	}

	if len(sel.Sources) == 0 {
		return "No Data", nil
	}
	labels := make([]string, 0, len(sel.Sources))
	for _, src := range sel.Sources {
		labels = append(labels, catalog.Label(src))
	}
	prefix := strings.Join(labels, " + ")

	switch sel.Mode {
	case ModeYearOverYear:
		return fmt.Sprintf("Cumulative %s PRs through the year", prefix), nil
	case ModePerUser:
		if sel.Year != 0 {
			return fmt.Sprintf("%s PRs by User (%d)", prefix, sel.Year), nil
		}
		return fmt.Sprintf("%s PRs by User", prefix), nil
	case ModeReviewActivity:
		if sel.Year != 0 {
			return fmt.Sprintf("%s Reviews by User (%d)", prefix, sel.Year), nil
		}
		return fmt.Sprintf("%s Reviews by User", prefix), nil
	}
	return prefix, nil
}

func targetYear(sel Selection, records []dataset.PullRequestRecord) int {
	if sel.Year != 0 {
		return sel.Year
	}
	latest := 0
	for _, r := range records {
		if y, ok := r.MergedYear(); ok && y > latest {
			latest = y
		}
	}
	return latest
}

func restrictToYear(records []dataset.PullRequestRecord, year int) []dataset.PullRequestRecord {
	out := records[:0:0]
	for _, r := range records {
		if y, ok := r.MergedYear(); ok && y == year {
			out = append(out, r)
		}
	}
	return out
}

func weightOf(r dataset.PullRequestRecord, m Metric) float64 {
	switch m {
	case MetricLinesAdded:
		return float64(r.Additions)
	case MetricNetLines:
		return float64(r.Additions - r.Deletions)
	case MetricComments:
		return float64(r.ReviewComments + 1)
	default:
		return 1
	}
}

func metricOrDefault(m Metric) Metric {
	if m == "" {
		return MetricPRCount
	}
	return m
}

func metricValid(m Metric) (Metric, error) {
	m = metricOrDefault(m)
	switch m {
	case MetricPRCount, MetricLinesAdded, MetricNetLines, MetricComments:
		return m, nil
	}
	return "", &domain.DomainError{
		Code:       domain.ErrorCodeInvalidMode,
		Message:    fmt.Sprintf("unknown weight metric %q", m),
		HTTPStatus: http.StatusBadRequest,
	}
}

func bucketValid(b Bucket) (Bucket, error) {
	if b == "" {
		return BucketDay, nil
	}
	switch b {
	case BucketDay, BucketWeek, BucketMonth:
		return b, nil
	}
	return "", &domain.DomainError{
		Code:       domain.ErrorCodeInvalidMode,
		Message:    fmt.Sprintf("unknown bucket granularity %q", b),
		HTTPStatus: http.StatusBadRequest,
	}
}

func sortedSeries(totals map[string]float64) []SeriesPoint {
	out := make([]SeriesPoint, 0, len(totals))
	for label, v := range totals {
		out = append(out, SeriesPoint{Label: label, Value: v})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Value != out[j].Value {
			return out[i].Value > out[j].Value
		}
		return out[i].Label < out[j].Label
	})
	return out
}

func dedupInts(in []int) []int {
	seen := make(map[int]struct{}, len(in))
	out := make([]int, 0, len(in))
	for _, v := range in {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

func authorSet(authors []string) map[string]struct{} {
	if len(authors) == 0 {
		return nil
	}
	set := make(map[string]struct{}, len(authors))
	for _, a := range authors {
		set[a] = struct{}{}
	}
	return set
}

// authorAllowed treats a nil set as "everyone"; a populated set matches the
// display name or the raw login so the filter works with or without aliases.
func authorAllowed(set map[string]struct{}, display, login string) bool {
	if set == nil {
		return true
	}
	if _, ok := set[display]; ok {
		return true
	}
	_, ok := set[login]
	return ok
}

func sourceStrings(in []dataset.Source) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		out = append(out, string(s))
	}
	return out
}
