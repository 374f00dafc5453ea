package domain

import (
	"strings"

	"github.com/cockroachdb/errors"
)

// ErrUnknownCampus is returned when a campus name is outside the fixed set.
var ErrUnknownCampus = errors.New("unknown campus")

// Campus IDs as understood by the job board's "2201[]" search field.
const (
	CampusNewBrunswick = "3"
	CampusNewark       = "1"
	CampusCamden       = "2"
)

// campusIDs is keyed by lowercased display name. Read-only.
var campusIDs = map[string]string{
	"new brunswick": CampusNewBrunswick,
	"newark":        CampusNewark,
	"camden":        CampusCamden,
}

// CampusNames lists the campuses in the order they are offered to users.
var CampusNames = []string{"New Brunswick", "Newark", "Camden"}

// LookupCampus resolves a human campus name to the board's campus ID.
// Matching ignores case and surrounding whitespace.
func LookupCampus(name string) (string, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if id, ok := campusIDs[key]; ok {
		return id, nil
	}
	return "", errors.Wrapf(ErrUnknownCampus, "%q", name)
}
