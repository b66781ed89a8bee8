package csvstore

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"prdash/internal/domain/dataset"
)

const header = "base.repo.name,user.login,created_at,merged_at,additions,deletions,review_comment_count,requested_reviewers\n"

func testCatalog() *dataset.Catalog {
	return dataset.NewCatalog([]dataset.Definition{
		{Source: "main", Label: "Main", Repos: []string{"main-repo"}},
	}, "rest", "Rest")
}

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "prs.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_ParsesRecords(t *testing.T) {
	path := writeCSV(t, header+
		`main-repo,alice,2025-02-28T10:00:00Z,2025-03-01T12:00:00Z,120,30,4,"[{'login': 'bob'}, {'login': 'carol'}]"`+"\n"+
		"other-repo,bob,2025-03-01T09:00:00Z,,5,0,0,[]\n")

	store, err := Load(path, Options{Catalog: testCatalog()})
	require.NoError(t, err)

	records, err := store.All(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 2)

	first := records[0]
	assert.Equal(t, "main-repo", first.Repo)
	assert.Equal(t, dataset.Source("main"), first.Source)
	assert.Equal(t, "alice", first.Author)
	assert.Equal(t, 120, first.Additions)
	assert.Equal(t, 30, first.Deletions)
	assert.Equal(t, 4, first.ReviewComments)
	assert.Equal(t, []string{"bob", "carol"}, first.RequestedReviewers)
	require.NotNil(t, first.MergedAt)
	assert.Equal(t, 2025, first.MergedAt.Year())

	second := records[1]
	assert.Equal(t, dataset.Source("rest"), second.Source)
	assert.Nil(t, second.MergedAt)
	assert.Nil(t, second.RequestedReviewers)
}

func TestLoad_SchemaMismatchReportsEveryMissingColumn(t *testing.T) {
	path := writeCSV(t, "base.repo.name,user.login,created_at\nmain-repo,alice,2025-01-01\n")

	_, err := Load(path, Options{Catalog: testCatalog()})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "schema mismatch")
	assert.Contains(t, err.Error(), `"merged_at"`)
	assert.Contains(t, err.Error(), `"additions"`)
	assert.Contains(t, err.Error(), `"requested_reviewers"`)
}

func TestLoad_DropsBotsAndOutliers(t *testing.T) {
	path := writeCSV(t, header+
		"main-repo,alice,2025-01-01,2025-01-02,100,0,0,[]\n"+
		"main-repo,ci-bot[bot],2025-01-01,2025-01-02,1,0,0,[]\n"+
		"main-repo,bob,2025-01-01,2025-01-02,50000,0,0,[]\n")

	store, err := Load(path, Options{
		Catalog:      testCatalog(),
		BotLogins:    []string{"ci-bot[bot]"},
		MaxAdditions: 30000,
	})
	require.NoError(t, err)

	records, err := store.All(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "alice", records[0].Author)
}

func TestLoad_CountColumnsTolerateFloatsAndBlanks(t *testing.T) {
	path := writeCSV(t, header+
		"main-repo,alice,2025-01-01,2025-01-02,12.0,,3.0,[]\n")

	store, err := Load(path, Options{Catalog: testCatalog()})
	require.NoError(t, err)

	records, err := store.All(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, 12, records[0].Additions)
	assert.Equal(t, 0, records[0].Deletions)
	assert.Equal(t, 3, records[0].ReviewComments)
}

func TestLoad_BadRowsReportedWithLineNumbers(t *testing.T) {
	path := writeCSV(t, header+
		"main-repo,alice,2025-01-01,2025-01-02,1,0,0,[]\n"+
		"main-repo,bob,not-a-date,,1,0,0,[]\n"+
		"main-repo,carol,2025-01-01,2025-01-02,abc,0,0,[]\n")

	_, err := Load(path, Options{Catalog: testCatalog()})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 3")
	assert.Contains(t, err.Error(), "line 4")
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.csv"), Options{Catalog: testCatalog()})
	require.Error(t, err)
}

func TestParseReviewers(t *testing.T) {
	assert.Nil(t, parseReviewers(""))
	assert.Nil(t, parseReviewers("[]"))
	assert.Equal(t, []string{"bob"}, parseReviewers(`[{'login': 'bob', 'id': 42}]`))
	assert.Equal(t, []string{"bob", "carol"}, parseReviewers(`[{"login": "bob"}, {"login": "carol"}]`))
}

func TestLoadCatalog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "datasets.yml")
	require.NoError(t, os.WriteFile(path, []byte(`
default: rest
default_label: Everything Else
datasets:
  - source: main
    label: Main
    repos: [main-repo]
`), 0o644))

	catalog, err := LoadCatalog(path)
	require.NoError(t, err)
	assert.Equal(t, dataset.Source("main"), catalog.SourceFor("main-repo"))
	assert.Equal(t, dataset.Source("rest"), catalog.SourceFor("anything"))
	assert.Equal(t, "Everything Else", catalog.Label("rest"))
}

func TestLoadCatalog_EmptyConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "datasets.yml")
	require.NoError(t, os.WriteFile(path, []byte("datasets: []\n"), 0o644))

	_, err := LoadCatalog(path)
	require.Error(t, err)
}
