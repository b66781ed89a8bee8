package dataset

import "time"

// Source identifies one configured dataset bucket. Several repositories may
// feed the same source.
type Source string

// PullRequestRecord is one row of the loaded activity file. Records are
// created once at startup and never mutated afterwards.
type PullRequestRecord struct {
	Repo               string
	Source             Source
	Author             string
	Additions          int
	Deletions          int
	ReviewComments     int
	RequestedReviewers []string
	CreatedAt          time.Time
	MergedAt           *time.Time
}

// Info summarises one source for the dataset listing endpoint.
type Info struct {
	Source  Source
	Label   string
	Records int
	Years   []int
}

// MergedYear reports the calendar year of the merge timestamp; ok is false
// for records that were never merged.
func (r PullRequestRecord) MergedYear() (int, bool) {
	if r.MergedAt == nil {
		return 0, false
	}
	return r.MergedAt.Year(), true
}
