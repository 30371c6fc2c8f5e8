package schema

// Repository identifies the repository a pull request belongs to.
type Repository struct {
	Name          string `json:"name"`
	NameWithOwner string `json:"nameWithOwner"`
}

// PullRequest is a merged pull request authored by the user.
// Field names mirror the GitHub search payload so records decode directly
// and round-trip unchanged through report persistence.
type PullRequest struct {
	Title      string     `json:"title"`
	URL        string     `json:"url"`
	Body       *string    `json:"body,omitempty"`
	ClosedAt   string     `json:"closedAt"`
	CreatedAt  string     `json:"createdAt,omitempty"`
	Number     *int       `json:"number,omitempty"`
	Repository Repository `json:"repository"`
}

// Author identifies the author of a reviewed pull request.
type Author struct {
	Login string `json:"login"`
}

// ReviewedPullRequest is a pull request the user reviewed. It only feeds
// collaborator and count metrics, never the time-bucketed charts.
type ReviewedPullRequest struct {
	Title      string     `json:"title"`
	URL        string     `json:"url"`
	ClosedAt   *string    `json:"closedAt"`
	CreatedAt  string     `json:"createdAt"`
	Author     Author     `json:"author"`
	Repository Repository `json:"repository"`
}

// Owner returns the organization portion of the fully qualified repo name,
// i.e. everything before the first slash.
func (r Repository) Owner() string {
	for i := 0; i < len(r.NameWithOwner); i++ {
		if r.NameWithOwner[i] == '/' {
			return r.NameWithOwner[:i]
		}
	}
	return r.NameWithOwner
}
