package types

import (
	"context"
	"net/url"

	"github.com/cockroachdb/errors"

	"jobsbot/internal/domain"
)

// ErrFetchFailed marks transport and HTTP-status failures reaching the
// job board. It is distinct from an empty result set.
var ErrFetchFailed = errors.New("job board fetch failed")

// SortMostRecent is the only sort order the bot ever requests.
const SortMostRecent = "posted_at desc"

// SearchQuery is the immutable input to a single search.
type SearchQuery struct {
	CampusID string // empty = all campuses
	Keyword  string // empty = no keyword
	Sort     string
}

// Values encodes the query into the job board's search form fields.
func (q SearchQuery) Values() url.Values {
	v := url.Values{}
	v.Set("utf8", "✓")
	v.Set("query", q.Keyword)
	v.Set("query_v0_posted_at_date", "")
	v.Set("435", "")
	v.Set("225", "")
	v.Set("commit", "Search")
	if q.CampusID != "" {
		v.Add("2201[]", q.CampusID)
	}
	sort := q.Sort
	if sort == "" {
		sort = SortMostRecent
	}
	v.Set("sort", sort)
	return v
}

// Searcher fetches one page of postings for a query.
type Searcher interface {
	Name() string
	Fetch(ctx context.Context, q SearchQuery) ([]domain.JobPosting, error)
}
