// Package ghclient fetches contribution records through the GitHub CLI.
package ghclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"sort"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"github.com/myimpact/impact/internal/contract"
	"github.com/myimpact/impact/schema"
)

// searchLimit caps one gh search invocation, matching the GitHub CLI maximum.
const searchLimit = 200

// orgSearchLimit caps the repository-only query used for org discovery.
const orgSearchLimit = 100

// prFields are the JSON fields requested for full record fetches.
const prFields = "title,url,body,closedAt,createdAt,number,repository"

// reviewedFields adds the author for collaborator metrics.
const reviewedFields = "title,url,closedAt,createdAt,author,repository"

// commonGhPaths are checked before falling back to PATH lookup, since GUI
// launches on macOS often miss the Homebrew bin directories.
var commonGhPaths = []string{
	"/opt/homebrew/bin/gh",
	"/usr/local/bin/gh",
	"/usr/bin/gh",
	"/opt/local/bin/gh",
}

// Client implements the contract.ActivityClient interface by executing the
// local 'gh' binary installed on the machine.
type Client struct {
	binPath string
}

var _ contract.ActivityClient = &Client{} // Compile-time check

// NewClient creates a GitHub CLI client, locating the gh binary.
func NewClient() (*Client, error) {
	path, err := findGhBinary()
	if err != nil {
		return nil, err
	}
	return &Client{binPath: path}, nil
}

// findGhBinary probes the common install locations, then PATH.
func findGhBinary() (string, error) {
	for _, p := range commonGhPaths {
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			return p, nil
		}
	}
	if path, err := exec.LookPath("gh"); err == nil {
		return path, nil
	}
	return "", &contract.BoundaryError{Message: "GitHub CLI not found. Please install it from https://cli.github.com"}
}

// run executes a gh command and returns its stdout. A non-zero exit
// surfaces the CLI's stderr verbatim so the user sees the real diagnostic.
func (c *Client) run(ctx context.Context, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, c.binPath, args...)
	out, err := cmd.Output()
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		stderr := strings.TrimSpace(string(exitErr.Stderr))
		return nil, &contract.BoundaryError{Message: fmt.Sprintf("GitHub CLI error: %s", stderr)}
	} else if err != nil {
		return nil, fmt.Errorf("gh command failed: %w. Ensure gh is installed and available on your PATH", err)
	}
	return out, nil
}

// mergedWindow renders the window for the --merged-at qualifier.
func mergedWindow(start, end time.Time) string {
	return start.Format("2006-01-02") + ".." + end.Format("2006-01-02")
}

// FetchMerged implements the ActivityClient interface.
func (c *Client) FetchMerged(ctx context.Context, start, end time.Time, org string) ([]schema.PullRequest, error) {
	args := []string{
		"search", "prs",
		"--author", "@me",
		"--merged-at", mergedWindow(start, end),
		"--json", prFields,
		"--limit", fmt.Sprint(searchLimit),
	}
	if org != "" {
		args = append(args, "--owner", org)
	}
	out, err := c.run(ctx, args...)
	if err != nil {
		return nil, err
	}

	var prs []schema.PullRequest
	if err := json.Unmarshal(out, &prs); err != nil {
		return nil, &contract.BoundaryError{Message: fmt.Sprintf("Failed to parse GitHub response: %v", err)}
	}
	return prs, nil
}

// FetchReviewed implements the ActivityClient interface.
func (c *Client) FetchReviewed(ctx context.Context, start, end time.Time, org string) ([]schema.ReviewedPullRequest, error) {
	args := []string{
		"search", "prs",
		"--reviewed-by", "@me",
		"--merged-at", mergedWindow(start, end),
		"--json", reviewedFields,
		"--limit", fmt.Sprint(searchLimit),
	}
	if org != "" {
		args = append(args, "--owner", org)
	}
	out, err := c.run(ctx, args...)
	if err != nil {
		return nil, err
	}

	var prs []schema.ReviewedPullRequest
	if err := json.Unmarshal(out, &prs); err != nil {
		return nil, &contract.BoundaryError{Message: fmt.Sprintf("Failed to parse GitHub response: %v", err)}
	}
	return prs, nil
}

// FetchOrganizations implements the ActivityClient interface. It runs a
// repository-only query and extracts the distinct owner prefixes.
func (c *Client) FetchOrganizations(ctx context.Context, start, end time.Time) ([]string, error) {
	args := []string{
		"search", "prs",
		"--author", "@me",
		"--merged-at", mergedWindow(start, end),
		"--json", "repository",
		"--limit", fmt.Sprint(orgSearchLimit),
	}
	out, err := c.run(ctx, args...)
	if err != nil {
		return nil, err
	}
	return ExtractOwners(out), nil
}

// ExtractOwners pulls the distinct owner names out of a repository-only
// gh search payload, sorted ascending.
func ExtractOwners(payload []byte) []string {
	seen := make(map[string]struct{})
	gjson.GetBytes(payload, "#.repository.nameWithOwner").ForEach(func(_, value gjson.Result) bool {
		full := value.String()
		if i := strings.IndexByte(full, '/'); i > 0 {
			seen[full[:i]] = struct{}{}
		}
		return true
	})

	owners := make([]string, 0, len(seen))
	for owner := range seen {
		owners = append(owners, owner)
	}
	sort.Strings(owners)
	return owners
}
