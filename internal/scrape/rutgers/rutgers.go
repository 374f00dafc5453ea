package rutgers

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"jobsbot/internal/domain"
	"jobsbot/internal/scrape/types"
	"jobsbot/internal/scrape/util"
)

const (
	DefaultBaseURL    = "https://jobs.rutgers.edu"
	DefaultSearchPath = "/postings/search"
	DefaultUserAgent  = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/125.0.0.0 Safari/537.36"
	DefaultTimeout    = 15 * time.Second

	maxBodyBytes  = 5 << 20
	debugHeadSize = 2000
)

// Selectors for the PeopleAdmin search results page.
const (
	selListing   = "div#search_results div.job-item.job-item-posting"
	selTitle     = "div.job-title.col-md-4 h3 a"
	selDeptCells = "div.col-md-8 div.tbody-cell.col-6"
)

type Config struct {
	BaseURL    string // scheme://host of the job board
	SearchPath string
	UserAgent  string
	Timeout    time.Duration
}

type Scraper struct {
	cfg Config
	hc  *http.Client
	log *zap.SugaredLogger
}

func New(cfg Config, log *zap.SugaredLogger) *Scraper {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.SearchPath == "" {
		cfg.SearchPath = DefaultSearchPath
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = DefaultUserAgent
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	return &Scraper{
		cfg: cfg,
		hc:  &http.Client{Timeout: cfg.Timeout},
		log: log,
	}
}

func (s *Scraper) Name() string { return "rutgers" }

// SearchURL is the fully encoded request URL for q.
func (s *Scraper) SearchURL(q types.SearchQuery) string {
	return s.cfg.BaseURL + s.cfg.SearchPath + "?" + q.Values().Encode()
}

// Fetch issues one GET for q and parses every listing on the page.
// Transport and status failures are marked with types.ErrFetchFailed.
// An empty slice with a nil error means the board has no matches.
func (s *Scraper) Fetch(ctx context.Context, q types.SearchQuery) ([]domain.JobPosting, error) {
	u := s.SearchURL(q)
	s.log.Infow("requesting job board", "url", u)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, errors.Mark(errors.Wrap(err, "rutgers build request"), types.ErrFetchFailed)
	}
	req.Header.Set("User-Agent", s.cfg.UserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	res, err := s.hc.Do(req)
	if err != nil {
		s.log.Errorw("job board request failed", "err", err)
		return nil, errors.Mark(errors.Wrap(err, "rutgers get search"), types.ErrFetchFailed)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		s.log.Errorw("job board returned error status", "status", res.StatusCode)
		return nil, errors.Mark(errors.Newf("rutgers search status %d", res.StatusCode), types.ErrFetchFailed)
	}

	body, err := io.ReadAll(io.LimitReader(res.Body, maxBodyBytes))
	if err != nil {
		return nil, errors.Mark(errors.Wrap(err, "rutgers read body"), types.ErrFetchFailed)
	}
	s.log.Debugf("raw html (first %d bytes):\n%s", debugHeadSize, head(body, debugHeadSize))

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, errors.Mark(errors.Wrap(err, "rutgers parse html"), types.ErrFetchFailed)
	}

	jobs := ParseListings(doc, s.cfg.BaseURL)
	s.log.Infow("parsed listings", "count", len(jobs), "campus_id", q.CampusID, "keyword", q.Keyword)
	for _, j := range jobs {
		s.log.Debugw("scraped job", "title", j.Title, "dept_campus", j.DepartmentCampus, "link", j.Link)
	}
	return jobs, nil
}

// ParseListings extracts postings in document order. Links are resolved
// against base.
func ParseListings(doc *goquery.Document, base string) []domain.JobPosting {
	items := doc.Find(selListing)
	jobs := make([]domain.JobPosting, 0, items.Length())
	items.Each(func(_ int, item *goquery.Selection) {
		jobs = append(jobs, parseListing(item, base))
	})
	return jobs
}

// parseListing never fails: a block that does not match the expected
// markup comes back with sentinel fields.
func parseListing(item *goquery.Selection, base string) (job domain.JobPosting) {
	defer func() {
		if r := recover(); r != nil {
			job = domain.JobPosting{}.WithSentinels()
		}
	}()

	titleSel := item.Find(selTitle).First()
	title, _ := titleText(titleSel)
	link, _ := titleLink(titleSel, base)

	return domain.JobPosting{
		Title:            title,
		DepartmentCampus: departmentCampus(item),
		Link:             link,
	}.WithSentinels()
}

func titleText(a *goquery.Selection) (string, bool) {
	if a.Length() == 0 {
		return "", false
	}
	t := util.CleanText(a.Text())
	return t, t != ""
}

func titleLink(a *goquery.Selection, base string) (string, bool) {
	if a.Length() == 0 {
		return "", false
	}
	href, ok := a.Attr("href")
	if !ok {
		return "", false
	}
	abs := util.AbsoluteURL(base, href)
	return abs, abs != ""
}

func departmentCampus(item *goquery.Selection) string {
	var parts []string
	item.Find(selDeptCells).Each(func(_ int, cell *goquery.Selection) {
		parts = append(parts, cell.Text())
	})
	return util.JoinLabels(parts)
}

func head(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return fmt.Sprintf("%s…", b[:n])
}
