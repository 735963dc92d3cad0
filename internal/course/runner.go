// Package course applies a glossary to every page of a Canvas course.
//
// Pages are processed one at a time. A page that cannot be fetched,
// enriched or saved is recorded in the report and the run moves on to the
// next page; only failing to list the course pages stops a run.
package course

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/phuslu/log"

	glossary "github.com/alnah/go-glossary"
	"github.com/alnah/go-glossary/internal/canvas"
	"github.com/alnah/go-glossary/internal/logging"
	"github.com/alnah/go-glossary/internal/metrics"
)

// Sentinel errors for course operations.
var (
	ErrMissingCourseID      = errors.New("course id cannot be empty")
	ErrGlossaryPageNotFound = errors.New("glossary page not found")
	ErrListPages            = errors.New("failed to list course pages")
)

// Failure stages recorded in PageError.Stage.
const (
	StageFetch  = "fetch"
	StageEnrich = "enrich"
	StageUpdate = "update"
)

// PageStore is the part of the Canvas API the runner needs.
type PageStore interface {
	ListPages(ctx context.Context, courseID string) ([]canvas.PageSummary, error)
	GetPage(ctx context.Context, courseID, pageURL string) (*canvas.Page, error)
	UpdatePage(ctx context.Context, courseID, pageURL, body string) (*canvas.Page, error)
}

// Compile-time interface implementation check.
var _ PageStore = (*canvas.Client)(nil)

// Options identify the course and control persistence.
type Options struct {
	CourseID     string
	GlossaryPage string // Title of the glossary page, matched case-insensitively; skipped during runs
	DryRun       bool   // Enrich and count, but never call UpdatePage
}

// Change describes a page whose body differs after enrichment.
type Change struct {
	Title     string
	URL       string
	Before    string
	After     string
	Added     int
	Refreshed int
}

// PageError records a per-page failure.
type PageError struct {
	Title string
	URL   string
	Stage string
	Err   error
}

func (e *PageError) Error() string {
	return fmt.Sprintf("page %q: %s: %v", e.Title, e.Stage, e.Err)
}

func (e *PageError) Unwrap() error {
	return e.Err
}

// Report summarizes a run.
type Report struct {
	Scanned   int // Pages whose body was enriched
	Updated   int // Pages whose body changed (saved, or would be in dry-run)
	Unchanged int
	Skipped   int // Glossary page and pages without a body
	Added     int // Annotations inserted across updated pages
	Refreshed int // Tooltips replaced across updated pages
	Failures  []*PageError
}

// Failed reports whether any page failed.
func (r *Report) Failed() bool {
	return len(r.Failures) > 0
}

// Runner enriches the pages of one course.
type Runner struct {
	store    PageStore
	opts     Options
	enricher *glossary.Enricher
	logger   *log.Logger
	metrics  *metrics.Metrics
	onChange func(Change)
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithEnricher sets the enricher used for every page.
func WithEnricher(e *glossary.Enricher) RunnerOption {
	return func(r *Runner) {
		r.enricher = e
	}
}

// WithLogger sets the logger
func WithLogger(logger *log.Logger) RunnerOption {
	return func(r *Runner) {
		r.logger = logger
	}
}

// WithMetrics records run counters on m.
func WithMetrics(m *metrics.Metrics) RunnerOption {
	return func(r *Runner) {
		r.metrics = m
	}
}

// WithChangeHook calls fn for every page whose body changed, before it is saved.
func WithChangeHook(fn func(Change)) RunnerOption {
	return func(r *Runner) {
		r.onChange = fn
	}
}

// NewRunner creates a runner for the course in opts.
func NewRunner(store PageStore, opts Options, ropts ...RunnerOption) (*Runner, error) {
	if strings.TrimSpace(opts.CourseID) == "" {
		return nil, ErrMissingCourseID
	}

	r := &Runner{
		store:    store,
		opts:     opts,
		enricher: glossary.NewEnricher(),
		logger:   logging.Silent(),
		metrics:  metrics.New(),
	}
	for _, opt := range ropts {
		opt(r)
	}
	return r, nil
}

// FetchGlossary finds the configured glossary page and parses its
// description list. A page with an empty body yields an empty glossary.
// ErrGlossaryPageNotFound is returned when no page has the configured title.
func (r *Runner) FetchGlossary(ctx context.Context) (*glossary.Glossary, error) {
	if r.opts.GlossaryPage == "" {
		return nil, fmt.Errorf("%w: no glossary page title configured", ErrGlossaryPageNotFound)
	}

	pages, err := r.store.ListPages(ctx, r.opts.CourseID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrListPages, err)
	}

	for _, summary := range pages {
		if !r.isGlossaryPage(summary.Title) {
			continue
		}

		page, err := r.store.GetPage(ctx, r.opts.CourseID, summary.URL)
		if err != nil {
			return nil, fmt.Errorf("fetching glossary page %q: %w", summary.Title, err)
		}
		if page.Body == nil {
			return glossary.New(), nil
		}

		g, err := glossary.ParseGlossary(*page.Body)
		if err != nil {
			return nil, fmt.Errorf("parsing glossary page %q: %w", summary.Title, err)
		}
		r.logger.Info().Str("page", summary.Title).Int("terms", g.Len()).Msg("glossary loaded")
		return g, nil
	}

	return nil, fmt.Errorf("%w: %q", ErrGlossaryPageNotFound, r.opts.GlossaryPage)
}

// Run enriches every page of the course except the glossary page and saves
// the pages whose body changed. Per-page failures are collected in the
// report; the returned error is non-nil only when the run could not start
// or the context was cancelled.
func (r *Runner) Run(ctx context.Context, g *glossary.Glossary) (*Report, error) {
	if g == nil {
		return nil, glossary.ErrNilGlossary
	}
	r.metrics.GlossaryTerms.Set(float64(g.Len()))

	pages, err := r.store.ListPages(ctx, r.opts.CourseID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrListPages, err)
	}

	report := &Report{}
	for _, summary := range pages {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		r.processPage(ctx, summary, g, report)
	}

	r.logger.Info().
		Int("scanned", report.Scanned).
		Int("updated", report.Updated).
		Int("failed", len(report.Failures)).
		Bool("dry_run", r.opts.DryRun).
		Msg("course run finished")
	return report, nil
}

// processPage handles one page; failures are recorded, never returned.
func (r *Runner) processPage(ctx context.Context, summary canvas.PageSummary, g *glossary.Glossary, report *Report) {
	if r.isGlossaryPage(summary.Title) {
		report.Skipped++
		r.metrics.PagesSkipped.WithLabelValues("glossary_page").Inc()
		return
	}

	page, err := r.store.GetPage(ctx, r.opts.CourseID, summary.URL)
	if err != nil {
		r.fail(report, summary, StageFetch, err)
		return
	}
	if page.Body == nil || *page.Body == "" {
		report.Skipped++
		r.metrics.PagesSkipped.WithLabelValues("empty_body").Inc()
		return
	}

	report.Scanned++
	r.metrics.PagesScanned.Inc()

	before := *page.Body
	res, err := r.enricher.EnrichDocument(before, g)
	if err != nil {
		r.fail(report, summary, StageEnrich, err)
		return
	}
	if res.HTML == before {
		report.Unchanged++
		return
	}

	if r.onChange != nil {
		r.onChange(Change{
			Title:     summary.Title,
			URL:       summary.URL,
			Before:    before,
			After:     res.HTML,
			Added:     res.Added,
			Refreshed: res.Refreshed,
		})
	}

	if !r.opts.DryRun {
		if _, err := r.store.UpdatePage(ctx, r.opts.CourseID, summary.URL, res.HTML); err != nil {
			r.fail(report, summary, StageUpdate, err)
			return
		}
	}

	report.Updated++
	report.Added += res.Added
	report.Refreshed += res.Refreshed
	r.metrics.PagesUpdated.Inc()
	r.metrics.AnnotationsAdded.Add(float64(res.Added))
	r.metrics.AnnotationsRefreshed.Add(float64(res.Refreshed))

	r.logger.Info().
		Str("page", summary.Title).
		Int("added", res.Added).
		Int("refreshed", res.Refreshed).
		Bool("dry_run", r.opts.DryRun).
		Msg("page updated")
}

func (r *Runner) fail(report *Report, summary canvas.PageSummary, stage string, err error) {
	pe := &PageError{Title: summary.Title, URL: summary.URL, Stage: stage, Err: err}
	report.Failures = append(report.Failures, pe)
	r.metrics.PageFailures.WithLabelValues(stage).Inc()
	r.logger.Warn().Str("page", summary.Title).Str("stage", stage).Err(err).Msg("page failed")
}

func (r *Runner) isGlossaryPage(title string) bool {
	return r.opts.GlossaryPage != "" && strings.EqualFold(strings.TrimSpace(title), strings.TrimSpace(r.opts.GlossaryPage))
}
