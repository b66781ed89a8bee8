package view

import "prdash/internal/domain/dataset"

// Mode selects the grouping applied to the record set.
type Mode string

const (
	ModePerUser        Mode = "per-user"
	ModeYearOverYear   Mode = "year-comparison"
	ModeReviewActivity Mode = "review-activity"
)

// Metric selects the weight contributed by each record.
type Metric string

const (
	MetricPRCount    Metric = "pr_count"
	MetricLinesAdded Metric = "lines_added"
	MetricNetLines   Metric = "net_lines"
	MetricComments   Metric = "comments"
)

// Bucket is the time granularity used to align years in year-over-year mode.
type Bucket string

const (
	BucketDay   Bucket = "day"
	BucketWeek  Bucket = "week"
	BucketMonth Bucket = "month"
)

// Selection carries every user-chosen parameter of one chart. The zero Year
// means "latest year present in the selected records"; an empty Years slice
// means "every year present". An empty Authors set means "everyone"; entries
// match either the resolved display name or the raw login.
type Selection struct {
	Sources []dataset.Source
	Mode    Mode
	Metric  Metric
	Bucket  Bucket
	Year    int
	Years   []int
	Authors []string
}

// SeriesPoint is one bar of a grouped chart.
type SeriesPoint struct {
	Label string
	Value float64
}

// FramePoint is one aligned animation sample: the weight landing in a bucket
// and the running total up to it, for one year.
type FramePoint struct {
	Bucket     int
	Label      string
	Value      float64
	Cumulative float64
}

// Result is the composed output for one selection; exactly one of the two
// slices is populated depending on the mode.
type Result struct {
	Title  string
	Mode   Mode
	Series []SeriesPoint
	Frames []FramePoint
}

// AliasResolver maps a raw author login to its display name. Implementations
// fall back to the login itself when no alias is configured.
type AliasResolver interface {
	Resolve(login string) string
}
