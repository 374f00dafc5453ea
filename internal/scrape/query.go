package scrape

import (
	"strings"

	"jobsbot/internal/domain"
	"jobsbot/internal/scrape/types"
)

// BuildQuery maps a campus name and keyword onto a SearchQuery.
// A blank campus searches every campus; an unrecognized one returns
// an error wrapping domain.ErrUnknownCampus.
func BuildQuery(campusName, keyword string) (types.SearchQuery, error) {
	q := types.SearchQuery{
		Keyword: strings.TrimSpace(keyword),
		Sort:    types.SortMostRecent,
	}
	if strings.TrimSpace(campusName) == "" {
		return q, nil
	}
	id, err := domain.LookupCampus(campusName)
	if err != nil {
		return types.SearchQuery{}, err
	}
	q.CampusID = id
	return q, nil
}
