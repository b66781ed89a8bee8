package csvstore

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/hashicorp/go-multierror"

	"prdash/internal/domain/dataset"
)

// Column names of the export file. The schema is fixed and validated up
// front; a mismatch fails the load rather than surfacing on first use.
const (
	colRepo           = "base.repo.name"
	colAuthor         = "user.login"
	colCreatedAt      = "created_at"
	colMergedAt       = "merged_at"
	colAdditions      = "additions"
	colDeletions      = "deletions"
	colReviewComments = "review_comment_count"
	colReviewers      = "requested_reviewers"
)

var requiredColumns = []string{
	colRepo, colAuthor, colCreatedAt, colMergedAt,
	colAdditions, colDeletions, colReviewComments, colReviewers,
}

// The reviewer column is a serialized list of user objects; only the login
// fields matter here.
var reviewerLoginRe = regexp.MustCompile(`['"]login['"]\s*:\s*['"]([^'"]+)['"]`)

var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Options controls load-time cleaning of the record set.
type Options struct {
	Catalog *dataset.Catalog

	// BotLogins are dropped entirely.
	BotLogins []string

	// MaxAdditions drops records above the cap when positive; oversized
	// rows in the export are assumed to be artifacts.
	MaxAdditions int
}

// Load reads the activity CSV at path into a Store. All schema and row
// errors are collected and reported together.
func Load(path string, opts Options) (*Store, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open data file: %w", err)
	}
	defer f.Close()

	records, err := parse(f, opts)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return NewStore(records, opts.Catalog), nil
}

func parse(r io.Reader, opts Options) ([]dataset.PullRequestRecord, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	idx := make(map[string]int, len(header))
	for i, name := range header {
		idx[strings.TrimSpace(name)] = i
	}

	var schemaErr *multierror.Error
	for _, col := range requiredColumns {
		if _, ok := idx[col]; !ok {
			schemaErr = multierror.Append(schemaErr, fmt.Errorf("missing column %q", col))
		}
	}
	if err := schemaErr.ErrorOrNil(); err != nil {
		return nil, fmt.Errorf("schema mismatch: %w", err)
	}

	bots := make(map[string]struct{}, len(opts.BotLogins))
	for _, b := range opts.BotLogins {
		bots[b] = struct{}{}
	}

	var (
		records []dataset.PullRequestRecord
		rowErr  *multierror.Error
		line    = 1
	)
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			rowErr = multierror.Append(rowErr, fmt.Errorf("line %d: %w", line, err))
			continue
		}

		rec, err := parseRow(row, idx, opts.Catalog)
		if err != nil {
			rowErr = multierror.Append(rowErr, fmt.Errorf("line %d: %w", line, err))
			continue
		}

		if _, bot := bots[rec.Author]; bot {
			continue
		}
		if opts.MaxAdditions > 0 && rec.Additions > opts.MaxAdditions {
			continue
		}
		records = append(records, rec)
	}
	if err := rowErr.ErrorOrNil(); err != nil {
		return nil, err
	}
	return records, nil
}

func parseRow(row []string, idx map[string]int, catalog *dataset.Catalog) (dataset.PullRequestRecord, error) {
	field := func(col string) string {
		i := idx[col]
		if i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	createdAt, err := parseTime(field(colCreatedAt))
	if err != nil {
		return dataset.PullRequestRecord{}, fmt.Errorf("%s: %w", colCreatedAt, err)
	}

	var mergedAt *time.Time
	if raw := field(colMergedAt); raw != "" {
		t, err := parseTime(raw)
		if err != nil {
			return dataset.PullRequestRecord{}, fmt.Errorf("%s: %w", colMergedAt, err)
		}
		mergedAt = &t
	}

	additions, err := parseCount(field(colAdditions))
	if err != nil {
		return dataset.PullRequestRecord{}, fmt.Errorf("%s: %w", colAdditions, err)
	}
	deletions, err := parseCount(field(colDeletions))
	if err != nil {
		return dataset.PullRequestRecord{}, fmt.Errorf("%s: %w", colDeletions, err)
	}
	comments, err := parseCount(field(colReviewComments))
	if err != nil {
		return dataset.PullRequestRecord{}, fmt.Errorf("%s: %w", colReviewComments, err)
	}

	repo := field(colRepo)
	return dataset.PullRequestRecord{
		Repo:               repo,
		Source:             catalog.SourceFor(repo),
		Author:             field(colAuthor),
		Additions:          additions,
		Deletions:          deletions,
		ReviewComments:     comments,
		RequestedReviewers: parseReviewers(field(colReviewers)),
		CreatedAt:          createdAt,
		MergedAt:           mergedAt,
	}, nil
}

func parseTime(raw string) (time.Time, error) {
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", raw)
}

// parseCount tolerates the float formatting the export writes for integer
// columns with gaps; an empty field counts as zero.
func parseCount(raw string) (int, error) {
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid count %q", raw)
	}
	return int(v), nil
}

func parseReviewers(raw string) []string {
	if raw == "" || raw == "[]" {
		return nil
	}
	matches := reviewerLoginRe.FindAllStringSubmatch(raw, -1)
	if len(matches) == 0 {
		return nil
	}
	logins := make([]string, 0, len(matches))
	for _, m := range matches {
		logins = append(logins, m[1])
	}
	return logins
}
