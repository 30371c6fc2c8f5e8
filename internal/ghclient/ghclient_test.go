package ghclient

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMergedWindow(t *testing.T) {
	start := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, time.December, 1, 23, 59, 59, 0, time.UTC)
	assert.Equal(t, "2024-06-01..2024-12-01", mergedWindow(start, end))
}

func TestExtractOwners(t *testing.T) {
	payload := []byte(`[
		{"repository": {"name": "api", "nameWithOwner": "acme/api"}},
		{"repository": {"name": "web", "nameWithOwner": "zeta/web"}},
		{"repository": {"name": "cli", "nameWithOwner": "acme/cli"}},
		{"repository": {"name": "odd", "nameWithOwner": "noslash"}}
	]`)
	assert.Equal(t, []string{"acme", "zeta"}, ExtractOwners(payload))
}

func TestExtractOwnersEmpty(t *testing.T) {
	assert.Empty(t, ExtractOwners([]byte(`[]`)))
	assert.Empty(t, ExtractOwners([]byte(`not json`)))
}

func TestFindGhBinaryMissing(t *testing.T) {
	t.Setenv("PATH", t.TempDir())
	// The common install paths may exist on a dev machine; only assert the
	// error message when discovery truly fails.
	path, err := findGhBinary()
	if err != nil {
		assert.Empty(t, path)
		assert.Contains(t, err.Error(), "GitHub CLI not found")
	}
}
