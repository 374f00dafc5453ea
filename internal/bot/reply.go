package bot

import (
	"fmt"
	"strings"

	"jobsbot/internal/domain"
)

// MaxListings caps how many postings a reply ever shows.
const MaxListings = 5

const DefaultHomeURL = "https://jobs.rutgers.edu/"

const (
	msgFetchFailed = "I'm sorry, I'm having trouble connecting to the job site right now. Please try again later."
	msgUnexpected  = "An unexpected error occurred while fetching job openings. Please try again later."
	msgGreeting    = "Hi! I can help you find job openings at Rutgers. Tell me a campus (New Brunswick, Newark or Camden) and, optionally, a keyword."
	msgGoodbye     = "Thanks for stopping by. Good luck with your job search!"
	msgFallback    = "Sorry, I can only help with Rutgers job openings. Try something like \"show me jobs in Newark\"."
)

// Formatter renders search results as a chat message.
type Formatter struct {
	MaxResults int    // clamped to 1..MaxListings; 0 means MaxListings
	HomeURL    string // closing pointer; DefaultHomeURL when empty
}

// FormatReply formats with the default limit and home URL.
func FormatReply(jobs []domain.JobPosting, fetchErr error, campus, keyword string) string {
	return Formatter{}.Format(jobs, fetchErr, campus, keyword)
}

// Format returns the apology when fetchErr is non-nil, the not-found
// message when jobs is empty, and otherwise one bullet per posting in
// site order followed by a pointer to the job board.
func (f Formatter) Format(jobs []domain.JobPosting, fetchErr error, campus, keyword string) string {
	if fetchErr != nil {
		return msgFetchFailed
	}
	if len(jobs) == 0 {
		return notFound(campus, keyword)
	}

	limit := f.MaxResults
	if limit <= 0 || limit > MaxListings {
		limit = MaxListings
	}
	if len(jobs) > limit {
		jobs = jobs[:limit]
	}
	home := f.HomeURL
	if home == "" {
		home = DefaultHomeURL
	}

	lines := make([]string, 0, len(jobs))
	for _, j := range jobs {
		lines = append(lines, FormatLine(j))
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Here are some of the latest Rutgers job openings%s:\n", criteria(campus, keyword))
	b.WriteString(strings.Join(lines, "\n"))
	fmt.Fprintf(&b, "\nYou can visit %s for more details.", home)
	return b.String()
}

// FormatLine renders "* <title> (<department_campus>) - <link>".
func FormatLine(j domain.JobPosting) string {
	j = j.WithSentinels()
	return fmt.Sprintf("* %s (%s) - %s", j.Title, j.DepartmentCampus, j.Link)
}

func notFound(campus, keyword string) string {
	if keyword != "" {
		return fmt.Sprintf("I couldn't find any job openings%s at Rutgers at the moment. Please try a different keyword/campus or search later.", criteria(campus, keyword))
	}
	return fmt.Sprintf("I couldn't find any job openings%s at Rutgers at the moment. Please try again later or check the official website.", criteria(campus, keyword))
}

func criteria(campus, keyword string) string {
	var b strings.Builder
	if keyword != "" {
		fmt.Fprintf(&b, " for '%s'", keyword)
	}
	if campus != "" {
		fmt.Fprintf(&b, " in '%s'", campus)
	}
	return b.String()
}

func campusPrompt() string {
	return fmt.Sprintf("Which campus are you interested in (e.g., %s)?", strings.Join(domain.CampusNames, ", "))
}

func unknownCampus(name string) string {
	return fmt.Sprintf("I don't recognize '%s' as a valid Rutgers campus. Please try a valid campus like %s.", name, joinOr(domain.CampusNames))
}

func joinOr(xs []string) string {
	switch len(xs) {
	case 0:
		return ""
	case 1:
		return xs[0]
	}
	return strings.Join(xs[:len(xs)-1], ", ") + ", or " + xs[len(xs)-1]
}
