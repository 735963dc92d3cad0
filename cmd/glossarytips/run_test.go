package main

// Notes:
// - run is exercised end to end with an in-memory page store injected
//   through Environment.NewStore; no HTTP server is started.
// - Configuration comes from injected environment variables so tests can
//   run in parallel.

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/phuslu/log"
	flag "github.com/spf13/pflag"

	"github.com/alnah/go-glossary/internal/canvas"
	"github.com/alnah/go-glossary/internal/config"
	"github.com/alnah/go-glossary/internal/course"
)

type memoryStore struct {
	mu        sync.Mutex
	pages     []canvas.Page
	updateErr error
	updates   map[string]string
}

func newMemoryStore(pages ...canvas.Page) *memoryStore {
	return &memoryStore{pages: pages, updates: map[string]string{}}
}

func (s *memoryStore) ListPages(context.Context, string) ([]canvas.PageSummary, error) {
	out := make([]canvas.PageSummary, len(s.pages))
	for i, p := range s.pages {
		out[i] = canvas.PageSummary{URL: p.URL, Title: p.Title}
	}
	return out, nil
}

func (s *memoryStore) GetPage(_ context.Context, _, pageURL string) (*canvas.Page, error) {
	for _, p := range s.pages {
		if p.URL == pageURL {
			cp := p
			return &cp, nil
		}
	}
	return nil, &canvas.APIError{StatusCode: 404}
}

func (s *memoryStore) UpdatePage(_ context.Context, _, pageURL, body string) (*canvas.Page, error) {
	if s.updateErr != nil {
		return nil, s.updateErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.updates[pageURL] = body
	return &canvas.Page{URL: pageURL, Body: &body}, nil
}

func coursePage(url, title, body string) canvas.Page {
	return canvas.Page{URL: url, Title: title, Body: &body}
}

type testEnv struct {
	*Environment
	stdout *bytes.Buffer
	stderr *bytes.Buffer
}

func newTestEnv(store course.PageStore, vars map[string]string) *testEnv {
	base := map[string]string{
		"GLOSSARYTIPS_URL":           "https://canvas.example.edu",
		"GLOSSARYTIPS_TOKEN":         "secret",
		"GLOSSARYTIPS_COURSE_ID":     "42",
		"GLOSSARYTIPS_GLOSSARY_PAGE": "Glossary",
	}
	for k, v := range vars {
		base[k] = v
	}

	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
	return &testEnv{
		Environment: &Environment{
			Stdout:  stdout,
			Stderr:  stderr,
			Getenv:  func(k string) string { return base[k] },
			Environ: func() []string { return nil },
			NewStore: func(*config.Config, *log.Logger) (course.PageStore, error) {
				return store, nil
			},
		},
		stdout: stdout,
		stderr: stderr,
	}
}

func defaultCourse() *memoryStore {
	return newMemoryStore(
		coursePage("glossary", "Glossary", `<dl><dt>Python</dt><dd>A language.</dd></dl>`),
		coursePage("week-1", "Week 1", `<p>Python is fun.</p>`),
		coursePage("week-2", "Week 2", `<p>Nothing here.</p>`),
	)
}

// ---------------------------------------------------------------------------
// TestRun - End-to-end CLI runs
// ---------------------------------------------------------------------------

func TestRun_UpdatesPages(t *testing.T) {
	t.Parallel()

	store := defaultCourse()
	env := newTestEnv(store, nil)

	if err := run(context.Background(), nil, env.Environment); err != nil {
		t.Fatalf("unexpected error: %v\nstderr: %s", err, env.stderr)
	}

	if got := env.stdout.String(); got != "Updated 1 pages.\n" {
		t.Errorf("stdout = %q", got)
	}
	want := `<p><span title="A language." style="border-bottom: 1px dotted #000">Python</span> is fun.</p>`
	if got := store.updates["week-1"]; got != want {
		t.Errorf("week-1 = %s, want %s", got, want)
	}
	if len(store.updates) != 1 {
		t.Errorf("updates = %v, want only week-1", store.updates)
	}
}

func TestRun_DryRun(t *testing.T) {
	t.Parallel()

	store := defaultCourse()
	env := newTestEnv(store, nil)

	if err := run(context.Background(), []string{"--dry-run"}, env.Environment); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := env.stdout.String(); got != "Would update 1 pages.\n" {
		t.Errorf("stdout = %q", got)
	}
	if len(store.updates) != 0 {
		t.Errorf("dry run saved pages: %v", store.updates)
	}
}

func TestRun_PrintHTML(t *testing.T) {
	t.Parallel()

	env := newTestEnv(defaultCourse(), nil)

	if err := run(context.Background(), []string{"-n", "--print-html", "--no-color"}, env.Environment); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out := env.stdout.String()
	if !strings.Contains(out, "--- Week 1 (week-1): 1 added, 0 refreshed") {
		t.Errorf("missing preview header in %q", out)
	}
	if !strings.Contains(out, `<span title="A language."`) {
		t.Errorf("missing enriched body in %q", out)
	}
}

func TestRun_Quiet(t *testing.T) {
	t.Parallel()

	env := newTestEnv(defaultCourse(), nil)
	if err := run(context.Background(), []string{"-q"}, env.Environment); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if env.stdout.Len() != 0 {
		t.Errorf("quiet run printed %q", env.stdout.String())
	}
}

func TestRun_GlossaryPageMissing(t *testing.T) {
	t.Parallel()

	store := newMemoryStore(coursePage("week-1", "Week 1", `<p>Python</p>`))
	env := newTestEnv(store, nil)

	if err := run(context.Background(), nil, env.Environment); err != nil {
		t.Fatalf("missing glossary page should not fail the run: %v", err)
	}
	if got := env.stdout.String(); got != "Updated 0 pages.\n" {
		t.Errorf("stdout = %q", got)
	}
	if !strings.Contains(env.stderr.String(), "glossary page not found") {
		t.Errorf("expected warning, stderr = %q", env.stderr.String())
	}
	if len(store.updates) != 0 {
		t.Errorf("pages updated without a glossary: %v", store.updates)
	}
}

func TestRun_GlossaryFile(t *testing.T) {
	t.Parallel()

	store := newMemoryStore(coursePage("week-1", "Week 1", `<p>machine learning</p>`))
	env := newTestEnv(store, map[string]string{"GLOSSARYTIPS_GLOSSARY_PAGE": ""})

	path := filepath.Join(t.TempDir(), "terms.yaml")
	content := "- term: learning\n  definition: L\n- term: machine learning\n  definition: ML\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("setup: %v", err)
	}

	args := []string{"--glossary-file", path, "--order", "longest-first"}
	if err := run(context.Background(), args, env.Environment); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := `<p><span title="ML" style="border-bottom: 1px dotted #000">machine learning</span></p>`
	if got := store.updates["week-1"]; got != want {
		t.Errorf("week-1 = %s, want %s", got, want)
	}
}

func TestRun_MetricsFile(t *testing.T) {
	t.Parallel()

	env := newTestEnv(defaultCourse(), nil)
	path := filepath.Join(t.TempDir(), "glossarytips.prom")

	if err := run(context.Background(), []string{"--metrics-file", path}, env.Environment); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("metrics file not written: %v", err)
	}
	if !strings.Contains(string(data), "glossarytips_pages_updated_total 1") {
		t.Errorf("metrics = %s", data)
	}
}

func TestRun_ConfigFile(t *testing.T) {
	t.Parallel()

	store := defaultCourse()
	env := newTestEnv(store, map[string]string{
		"GLOSSARYTIPS_URL":           "",
		"GLOSSARYTIPS_COURSE_ID":     "",
		"GLOSSARYTIPS_GLOSSARY_PAGE": "",
	})

	path := filepath.Join(t.TempDir(), "course.yaml")
	content := "canvas:\n  url: https://canvas.example.edu\ncourse:\n  id: 42\n  glossaryPage: glossary\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("setup: %v", err)
	}

	if err := run(context.Background(), []string{"--config", path}, env.Environment); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := store.updates["week-1"]; !ok {
		t.Error("week-1 not updated")
	}
}

// ---------------------------------------------------------------------------
// TestRun_Errors - Failures and exit codes
// ---------------------------------------------------------------------------

func TestRun_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		args     []string
		vars     map[string]string
		store    func() *memoryStore
		wantErr  error
		wantCode int
	}{
		{
			name:     "missing token",
			vars:     map[string]string{"GLOSSARYTIPS_TOKEN": ""},
			wantErr:  config.ErrMissingField,
			wantCode: ExitUsage,
		},
		{
			name:     "unknown flag",
			args:     []string{"--bogus"},
			wantErr:  ErrInvalidFlags,
			wantCode: ExitUsage,
		},
		{
			name:     "positional argument",
			args:     []string{"extra"},
			wantErr:  ErrUnexpectedArgs,
			wantCode: ExitUsage,
		},
		{
			name:     "invalid order",
			args:     []string{"--order", "random"},
			wantErr:  config.ErrInvalidValue,
			wantCode: ExitUsage,
		},
		{
			name:     "config not found",
			args:     []string{"--config", "/nonexistent/course.yaml"},
			wantErr:  config.ErrConfigNotFound,
			wantCode: ExitUsage,
		},
		{
			name: "page update rejected",
			store: func() *memoryStore {
				s := defaultCourse()
				s.updateErr = &canvas.APIError{StatusCode: 403}
				return s
			},
			wantErr:  ErrPartialRun,
			wantCode: ExitPartial,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			store := defaultCourse()
			if tt.store != nil {
				store = tt.store()
			}
			env := newTestEnv(store, tt.vars)

			err := run(context.Background(), tt.args, env.Environment)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("error = %v, want %v", err, tt.wantErr)
			}
			if got := exitCodeFor(err); got != tt.wantCode {
				t.Errorf("exitCodeFor() = %d, want %d", got, tt.wantCode)
			}
		})
	}
}

func TestRun_PartialRunReportsFailures(t *testing.T) {
	t.Parallel()

	store := defaultCourse()
	store.updateErr = &canvas.APIError{StatusCode: 500, Message: "oops"}
	env := newTestEnv(store, nil)

	err := run(context.Background(), nil, env.Environment)
	if !errors.Is(err, ErrPartialRun) {
		t.Fatalf("error = %v, want ErrPartialRun", err)
	}
	if !strings.Contains(env.stderr.String(), `failed: page "Week 1": update`) {
		t.Errorf("stderr = %q", env.stderr.String())
	}
}

func TestRun_Version(t *testing.T) {
	t.Parallel()

	env := newTestEnv(defaultCourse(), nil)
	if err := run(context.Background(), []string{"--version"}, env.Environment); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(env.stdout.String(), "glossarytips ") {
		t.Errorf("stdout = %q", env.stdout.String())
	}
}

func TestRun_Help(t *testing.T) {
	t.Parallel()

	env := newTestEnv(defaultCourse(), nil)
	err := run(context.Background(), []string{"--help"}, env.Environment)
	if !errors.Is(err, flag.ErrHelp) {
		t.Errorf("error = %v, want flag.ErrHelp", err)
	}
	if !strings.Contains(env.stderr.String(), "Usage:") {
		t.Errorf("usage not printed: %q", env.stderr.String())
	}
}
