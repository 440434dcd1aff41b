package report

import (
	"context"
	stderrors "errors"
	"fmt"
	"sort"
	"time"

	"github.com/charmbracelet/log"
	gh "github.com/google/go-github/v74/github"
	"github.com/google/uuid"

	"github.com/ghstats/ghstats/pkg/errors"
	"github.com/ghstats/ghstats/pkg/integrations/github"
	"github.com/ghstats/ghstats/pkg/observability"
)

// GitHub is the subset of [github.Client] the reports use.
type GitHub interface {
	User(ctx context.Context) (*gh.User, error)
	Repos(ctx context.Context, org string) ([]*gh.Repository, error)
	CodeFrequency(ctx context.Context, owner, name string) ([]github.WeeklyChange, error)
	CountCommitsSince(ctx context.Context, owner, name string, since time.Time) (int, error)
	ListPulls(ctx context.Context, owner, name string) ([]*gh.PullRequest, error)
	ListReviews(ctx context.Context, owner, name string, number int) ([]*gh.PullRequestReview, error)
	SearchIssues(ctx context.Context, query string) (*gh.IssuesSearchResult, error)
	ListProjects(ctx context.Context) ([]github.Project, error)
	Profile(ctx context.Context) (*github.Profile, map[string]error, error)
	ContributionCalendar(ctx context.Context, login string, from, to time.Time) (*github.Calendar, error)
}

var _ GitHub = (*github.Client)(nil)

// Runner executes reports against one GitHub account.
//
// The Runner holds no per-run state; concurrent reports are safe as long as
// the GitHub implementation is.
type Runner struct {
	GitHub GitHub
	Logger *log.Logger

	// Org selects an organization's repositories instead of the user's.
	Org string

	// Now is the clock; time.Now when nil.
	Now func() time.Time
}

// NewRunner creates a runner. A nil logger uses log.Default().
func NewRunner(client GitHub, org string, logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{GitHub: client, Logger: logger, Org: org, Now: time.Now}
}

func (r *Runner) now() time.Time {
	if r.Now == nil {
		return time.Now()
	}
	return r.Now()
}

// Repo identifies a repository.
type Repo struct {
	Owner string
	Name  string
}

func (r Repo) String() string { return r.Owner + "/" + r.Name }

// ParseRepos parses "owner/name" or bare "name" references; bare names use
// defaultOwner.
func ParseRepos(refs []string, defaultOwner string) ([]Repo, error) {
	out := make([]Repo, 0, len(refs))
	for _, ref := range refs {
		owner, name, err := errors.ParseRepoRef(ref, defaultOwner)
		if err != nil {
			return nil, err
		}
		out = append(out, Repo{Owner: owner, Name: name})
	}
	return out, nil
}

func repoOf(r *gh.Repository) Repo {
	return Repo{Owner: r.GetOwner().GetLogin(), Name: r.GetName()}
}

// Repos lists the repositories reports iterate over: the organization's
// when Org is set, otherwise the authenticated user's.
func (r *Runner) Repos(ctx context.Context) ([]Repo, error) {
	repos, err := r.GitHub.Repos(ctx, r.Org)
	if err != nil {
		return nil, err
	}
	out := make([]Repo, 0, len(repos))
	for _, repo := range repos {
		out = append(out, repoOf(repo))
	}
	return out, nil
}

// ItemFailure is an item that could not be processed.
type ItemFailure struct {
	Item string
	Err  error
}

// Skip is an item that was deliberately not processed.
type Skip struct {
	Item   string
	Reason string
}

// Meta describes one report run.
type Meta struct {
	RunID     string
	Report    string
	Started   time.Time
	Duration  time.Duration
	Succeeded int
	Skipped   []Skip
	Failures  []ItemFailure
}

// Err returns an error when items failed and none succeeded.
func (m *Meta) Err() error {
	if len(m.Failures) == 0 || m.Succeeded > 0 {
		return nil
	}
	errs := make([]error, 0, len(m.Failures))
	for _, f := range m.Failures {
		errs = append(errs, fmt.Errorf("%s: %w", f.Item, f.Err))
	}
	code := errors.GetCode(m.Failures[0].Err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	return errors.Wrap(code, stderrors.Join(errs...), "%s: all %d items failed", m.Report, len(m.Failures))
}

// run tracks one report execution.
type run struct {
	meta   Meta
	logger *log.Logger
	done   bool
}

func (r *Runner) start(ctx context.Context, name string) *run {
	id := uuid.NewString()
	observability.Report().OnReportStart(ctx, name)
	return &run{
		meta:   Meta{RunID: id, Report: name, Started: r.now()},
		logger: r.Logger.With("run", id[:8], "report", name),
	}
}

func (rn *run) ok() { rn.meta.Succeeded++ }

func (rn *run) skip(ctx context.Context, item, reason string) {
	rn.logger.Info("skipping", "item", item, "reason", reason)
	rn.meta.Skipped = append(rn.meta.Skipped, Skip{Item: item, Reason: reason})
	observability.Report().OnItemSkipped(ctx, rn.meta.Report, item, reason)
}

func (rn *run) fail(item string, err error) {
	rn.logger.Warn("item failed", "item", item, "error", errors.UserMessage(err))
	rn.meta.Failures = append(rn.meta.Failures, ItemFailure{Item: item, Err: err})
}

// record routes err to skip or fail and reports whether the item succeeded.
func (rn *run) record(ctx context.Context, item string, err error) bool {
	switch {
	case err == nil:
		return true
	case stderrors.Is(err, github.ErrEmptyRepository):
		rn.skip(ctx, item, "empty repository")
	default:
		rn.fail(item, err)
	}
	return false
}

// failMap records profile-style partial errors in a stable order.
func (rn *run) failMap(prefix string, errs map[string]error) {
	keys := make([]string, 0, len(errs))
	for k := range errs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		rn.fail(prefix+k, errs[k])
	}
}

func (rn *run) finish(ctx context.Context, now time.Time) Meta {
	if rn.done {
		return rn.meta
	}
	rn.done = true
	rn.meta.Duration = now.Sub(rn.meta.Started)
	items := rn.meta.Succeeded + len(rn.meta.Failures) + len(rn.meta.Skipped)
	observability.Report().OnReportComplete(ctx, rn.meta.Report, items, len(rn.meta.Failures), rn.meta.Duration)
	rn.logger.Debug("report complete",
		"succeeded", rn.meta.Succeeded,
		"skipped", len(rn.meta.Skipped),
		"failed", len(rn.meta.Failures),
		"duration", rn.meta.Duration)
	return rn.meta
}

// stop finishes a run that returned early with an error. Deferred right
// after start.
func (rn *run) stop(ctx context.Context, now func() time.Time) {
	if !rn.done {
		rn.logger.Debug("report aborted")
		rn.finish(ctx, now())
	}
}

func canceled(ctx context.Context, report string) error {
	if err := ctx.Err(); err != nil {
		return errors.Wrap(errors.ErrCodeCanceled, err, "%s report canceled", report)
	}
	return nil
}

// login returns user, or the authenticated user's login when empty.
func (r *Runner) login(ctx context.Context, user string) (string, error) {
	if user != "" {
		return user, errors.ValidateLogin(user)
	}
	u, err := r.GitHub.User(ctx)
	if err != nil {
		return "", err
	}
	return u.GetLogin(), nil
}
