package domain

// Sentinels substituted when a listing block lacks the matching markup.
const (
	UntitledJob     = "Untitled Job"
	NoDepartment    = "N/A"
	MissingLinkHref = "#"
)

// JobPosting is one row from the job board's search results.
type JobPosting struct {
	Title            string `json:"title"`
	DepartmentCampus string `json:"department_campus"`
	Link             string `json:"link"`
}

// WithSentinels fills any empty field with its sentinel value.
func (j JobPosting) WithSentinels() JobPosting {
	if j.Title == "" {
		j.Title = UntitledJob
	}
	if j.DepartmentCampus == "" {
		j.DepartmentCampus = NoDepartment
	}
	if j.Link == "" {
		j.Link = MissingLinkHref
	}
	return j
}
