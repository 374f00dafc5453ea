package bot

import (
	"context"
	"runtime/debug"
	"strings"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"jobsbot/internal/config"
	"jobsbot/internal/domain"
	"jobsbot/internal/scrape"
	"jobsbot/internal/scrape/types"
)

// Slot names on the job search intent.
const (
	SlotCampus  = "campus"
	SlotKeyword = "keyword"
)

// Router turns one fulfillment event into one reply. It holds no
// per-request state and is safe for concurrent use.
type Router struct {
	intents   config.BotConfig
	searcher  types.Searcher
	formatter Formatter
	log       *zap.SugaredLogger
}

func NewRouter(cfg config.Config, searcher types.Searcher, log *zap.SugaredLogger) *Router {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	f := Formatter{
		MaxResults: cfg.Board.MaxResults,
		HomeURL:    strings.TrimRight(cfg.Board.BaseURL, "/") + "/",
	}
	return &Router{
		intents:   cfg.Bot,
		searcher:  searcher,
		formatter: f,
		log:       log,
	}
}

// Handle always returns a well-formed response. Panics and unexpected
// errors become a generic apology with intent state Failed.
func (r *Router) Handle(ctx context.Context, ev Event) (resp Response) {
	defer func() {
		if rec := recover(); rec != nil {
			r.log.Errorw("panic handling event",
				"intent", ev.SessionState.Intent.Name,
				"session_id", ev.SessionID,
				"err", rec,
				"stack", string(debug.Stack()))
			resp = reply(ev, DialogAction{Type: DialogClose}, StateFailed, msgUnexpected)
		}
	}()

	name := ev.SessionState.Intent.Name
	r.log.Debugw("event received", "intent", name, "session_id", ev.SessionID, "transcript", ev.InputTranscript)

	switch name {
	case r.intents.SearchIntent:
		out, err := r.searchJobs(ctx, ev)
		if err != nil {
			r.log.Errorw("unexpected error searching jobs", "intent", name, "session_id", ev.SessionID, "err", err)
			return reply(ev, DialogAction{Type: DialogClose}, StateFailed, msgUnexpected)
		}
		return out
	case r.intents.GreetingIntent:
		return reply(ev, DialogAction{Type: DialogClose}, StateFulfilled, msgGreeting)
	case r.intents.GoodbyeIntent:
		return reply(ev, DialogAction{Type: DialogClose}, StateFulfilled, msgGoodbye)
	default:
		r.log.Infow("unrecognized intent", "intent", name)
		return reply(ev, DialogAction{Type: DialogClose}, StateFulfilled, msgFallback)
	}
}

// searchJobs returns an error only for faults that are neither a user
// input problem nor a job board fetch failure.
func (r *Router) searchJobs(ctx context.Context, ev Event) (Response, error) {
	campus := ev.SlotValue(SlotCampus)
	keyword := ev.SlotValue(SlotKeyword)
	r.log.Debugw("search slots", "campus", campus, "keyword", keyword)

	if campus == "" {
		return reply(ev, DialogAction{Type: DialogElicitSlot, SlotToElicit: SlotCampus}, StateInProgress, campusPrompt()), nil
	}

	q, err := scrape.BuildQuery(campus, keyword)
	if errors.Is(err, domain.ErrUnknownCampus) {
		r.log.Infow("unknown campus", "campus", campus)
		return reply(ev, DialogAction{Type: DialogClose}, StateFulfilled, unknownCampus(campus)), nil
	}
	if err != nil {
		return Response{}, errors.Wrap(err, "build query")
	}
	r.log.Infow("searching jobs", "campus", campus, "campus_id", q.CampusID, "keyword", keyword)

	jobs, err := r.searcher.Fetch(ctx, q)
	if err != nil && !errors.Is(err, types.ErrFetchFailed) {
		return Response{}, errors.Wrapf(err, "%s fetch", r.searcher.Name())
	}
	if err != nil {
		r.log.Warnw("job board fetch failed", "source", r.searcher.Name(), "err", err)
	} else {
		r.log.Infow("jobs found", "count", len(jobs), "campus", campus, "keyword", keyword)
	}

	return reply(ev, DialogAction{Type: DialogClose}, StateFulfilled, r.formatter.Format(jobs, err, campus, keyword)), nil
}

// Search runs a single search outside the conversational flow. A blank
// campus searches every campus.
func (r *Router) Search(ctx context.Context, campus, keyword string) (string, error) {
	q, err := scrape.BuildQuery(campus, keyword)
	if errors.Is(err, domain.ErrUnknownCampus) {
		return unknownCampus(campus), err
	}
	if err != nil {
		return "", err
	}
	jobs, err := r.searcher.Fetch(ctx, q)
	if err != nil && !errors.Is(err, types.ErrFetchFailed) {
		return "", errors.Wrapf(err, "%s fetch", r.searcher.Name())
	}
	return r.formatter.Format(jobs, err, campus, keyword), err
}
