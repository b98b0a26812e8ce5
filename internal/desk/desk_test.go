package desk

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/goleak"

	"worldpulse/internal/ai"
	"worldpulse/internal/models"
	"worldpulse/internal/newsroom"
	"worldpulse/internal/store"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

var quiet = slog.New(slog.NewTextHandler(io.Discard, nil))

// fakePipeline walks the writing and visualizing steps. When gate is set it
// blocks in the writing step until gate is closed or ctx ends.
type fakePipeline struct {
	gate    chan struct{}
	entered chan struct{}
	once    sync.Once
	err     error
}

func (f *fakePipeline) Generate(ctx context.Context, req newsroom.Request) (models.Article, error) {
	req.OnStep(newsroom.StepWriting)
	if f.entered != nil {
		f.once.Do(func() { close(f.entered) })
	}
	if f.gate != nil {
		select {
		case <-f.gate:
		case <-ctx.Done():
			return models.Article{}, ctx.Err()
		}
	}
	if f.err != nil {
		return models.Article{}, f.err
	}
	req.OnStep(newsroom.StepVisualizing)
	return models.Article{
		ID:          "gen-1",
		Title:       req.Topic,
		Slug:        "generated-story",
		Excerpt:     "e",
		Content:     "c",
		Category:    req.Category,
		PublishedAt: time.Now(),
	}, nil
}

type stubModerator struct {
	res *ai.ModerationResult
	err error
}

func (s stubModerator) CheckPrompt(context.Context, string) (*ai.ModerationResult, error) {
	return s.res, s.err
}

type harness struct {
	desk      *Desk
	articles  *store.ContentStore
	logs      *store.LogStore
	mu        sync.Mutex
	published []string
}

func newHarness(t *testing.T, p Generator, mod Moderator) *harness {
	t.Helper()
	h := &harness{
		articles: store.NewContentStore(nil),
		logs:     store.NewLogStore(),
	}
	h.desk = New(Config{
		Pipeline:  p,
		Moderator: mod,
		Articles:  h.articles,
		Logs:      h.logs,
		Model:     "gemini-3-pro-preview",
		Timeout:   5 * time.Second,
		Logger:    quiet,
		AfterPublish: func(_ context.Context, a models.Article) {
			h.mu.Lock()
			h.published = append(h.published, a.Slug)
			h.mu.Unlock()
		},
	})
	t.Cleanup(h.desk.Close)
	return h
}

func wait(t *testing.T, job *Job) (models.Article, error) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	a, err := job.Wait(ctx)
	if errors.Is(err, context.DeadlineExceeded) && ctx.Err() != nil {
		t.Fatal("job did not settle")
	}
	return a, err
}

func TestSubmitValidation(t *testing.T) {
	tests := []struct {
		name     string
		topic    string
		category models.Category
		want     error
	}{
		{name: "empty topic", topic: "", category: models.CategoryWorld, want: ErrEmptyTopic},
		{name: "whitespace topic", topic: "  \t ", category: models.CategoryWorld, want: ErrEmptyTopic},
		{name: "unknown category", topic: "x", category: "Weather", want: ErrInvalidCategory},
		{name: "wildcard category", topic: "x", category: models.CategoryAll, want: ErrInvalidCategory},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t, &fakePipeline{}, nil)
			if _, err := h.desk.Submit(tt.topic, tt.category); !errors.Is(err, tt.want) {
				t.Errorf("Submit: got %v, want %v", err, tt.want)
			}
			if n := len(h.logs.List()); n != 0 {
				t.Errorf("rejected submission created %d logs", n)
			}
			if h.desk.Snapshot().Busy {
				t.Error("desk left idle state")
			}
		})
	}
}

func TestSubmitSuccess(t *testing.T) {
	h := newHarness(t, &fakePipeline{}, stubModerator{res: &ai.ModerationResult{Safe: true}})

	job, err := h.desk.Submit("  Lunar mining treaty ", models.CategoryScience)
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	a, err := wait(t, job)
	if err != nil {
		t.Fatalf("Wait: %v", err)
	}
	if a.Title != "Lunar mining treaty" || a.Category != models.CategoryScience {
		t.Errorf("article: %+v", a)
	}

	if _, ok := h.articles.FindBySlug("generated-story"); !ok {
		t.Error("article not in store")
	}
	if diff := cmp.Diff([]string{"generated-story"}, h.published); diff != "" {
		t.Errorf("AfterPublish mismatch (-want +got):\n%s", diff)
	}

	snap := h.desk.Snapshot()
	if snap.Busy || snap.Step != newsroom.StepIdle || snap.Topic != "" || snap.LastError != "" || snap.Pending != 0 {
		t.Errorf("snapshot after success: %+v", snap)
	}
	if len(snap.Logs) != 1 {
		t.Fatalf("logs: got %d", len(snap.Logs))
	}
	log := snap.Logs[0]
	if log.ID != job.LogID || log.Status != models.GenerationSuccess || log.ArticleSlug != "generated-story" || log.Model != "gemini-3-pro-preview" {
		t.Errorf("log: %+v", log)
	}
}

func TestSubmitWhileBusy(t *testing.T) {
	p := &fakePipeline{gate: make(chan struct{}), entered: make(chan struct{})}
	h := newHarness(t, p, nil)

	job, err := h.desk.Submit("first", models.CategoryWorld)
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	<-p.entered

	snap := h.desk.Snapshot()
	if !snap.Busy || snap.Step != newsroom.StepWriting || snap.StepLabel != "DRAFTING EDITORIAL BRIEF..." {
		t.Errorf("snapshot while writing: %+v", snap)
	}
	if snap.Pending != 1 {
		t.Errorf("pending while writing: got %d, want 1", snap.Pending)
	}

	if _, err := h.desk.Submit("second", models.CategoryBusiness); !errors.Is(err, ErrBusy) {
		t.Errorf("second Submit: got %v, want ErrBusy", err)
	}
	if n := len(h.logs.List()); n != 1 {
		t.Errorf("busy submission created a log: %d entries", n)
	}
	if got := h.desk.Snapshot().Topic; got != "first" {
		t.Errorf("busy submission changed topic to %q", got)
	}

	close(p.gate)
	if _, err := wait(t, job); err != nil {
		t.Fatalf("Wait: %v", err)
	}
	if _, err := h.desk.Submit("third", models.CategoryWorld); err != nil {
		t.Errorf("Submit after settle: %v", err)
	}
}

func TestSubmitFailurePreservesTopic(t *testing.T) {
	tests := []struct {
		name    string
		p       *fakePipeline
		mod     Moderator
		wantErr error
	}{
		{name: "draft failure", p: &fakePipeline{err: newsroom.ErrDraftFailed}, wantErr: newsroom.ErrDraftFailed},
		{name: "flagged topic", p: &fakePipeline{}, mod: stubModerator{res: &ai.ModerationResult{Categories: []string{"violence"}}}, wantErr: ErrFlagged},
		{name: "moderation outage", p: &fakePipeline{}, mod: stubModerator{err: errors.New("502")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t, tt.p, tt.mod)
			job, err := h.desk.Submit("Contested topic", models.CategoryPolitics)
			if err != nil {
				t.Fatalf("Submit: %v", err)
			}
			_, err = wait(t, job)
			if err == nil {
				t.Fatal("expected job error")
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("error: got %v, want %v", err, tt.wantErr)
			}

			snap := h.desk.Snapshot()
			if snap.Busy || snap.Topic != "Contested topic" || snap.Category != models.CategoryPolitics {
				t.Errorf("snapshot after failure: %+v", snap)
			}
			if snap.LastError == "" {
				t.Error("failure reason not exposed")
			}
			if h.articles.Len() != 0 || len(h.published) != 0 {
				t.Error("failed job touched the store")
			}
			if log := snap.Logs[0]; log.Status != models.GenerationFailed || log.Error == "" {
				t.Errorf("log: %+v", log)
			}
		})
	}
}

func TestCloseDiscardsInFlightJob(t *testing.T) {
	p := &fakePipeline{gate: make(chan struct{}), entered: make(chan struct{})}
	h := newHarness(t, p, nil)

	job, err := h.desk.Submit("late story", models.CategoryWorld)
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	<-p.entered
	h.desk.Close()

	select {
	case <-job.Done():
	default:
		t.Fatal("Close returned before the job settled")
	}
	if _, err := job.Wait(context.Background()); err == nil {
		t.Error("cancelled job reported success")
	}
	if h.articles.Len() != 0 {
		t.Error("job published after Close")
	}
	if log := h.logs.List()[0]; log.Status != models.GenerationFailed {
		t.Errorf("log status: %s", log.Status)
	}
	if _, err := h.desk.Submit("again", models.CategoryWorld); !errors.Is(err, ErrClosed) {
		t.Errorf("Submit after Close: got %v, want ErrClosed", err)
	}
	h.desk.Close()
}

// ignoringPipeline finishes successfully even when its context is cancelled.
type ignoringPipeline struct {
	entered chan struct{}
	release chan struct{}
}

func (p *ignoringPipeline) Generate(ctx context.Context, req newsroom.Request) (models.Article, error) {
	close(p.entered)
	<-p.release
	return models.Article{ID: "x", Title: "t", Slug: "t", Excerpt: "e", Content: "c", Category: req.Category}, nil
}

func TestResultAfterCloseNeverPublishes(t *testing.T) {
	p := &ignoringPipeline{entered: make(chan struct{}), release: make(chan struct{})}
	h := newHarness(t, p, nil)

	job, err := h.desk.Submit("story", models.CategoryWorld)
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	<-p.entered

	closed := make(chan struct{})
	go func() {
		h.desk.Close()
		close(closed)
	}()
	// Close marks the desk before waiting, so once the job can finish it
	// must observe the closed flag.
	for {
		h.desk.mu.Lock()
		c := h.desk.closed
		h.desk.mu.Unlock()
		if c {
			break
		}
		time.Sleep(time.Millisecond)
	}
	close(p.release)
	<-closed

	if _, err := job.Wait(context.Background()); !errors.Is(err, ErrClosed) {
		t.Errorf("error: got %v, want ErrClosed", err)
	}
	if h.articles.Len() != 0 || len(h.published) != 0 {
		t.Error("result published after Close")
	}
}

func TestJobWaitHonoursContext(t *testing.T) {
	p := &fakePipeline{gate: make(chan struct{}), entered: make(chan struct{})}
	h := newHarness(t, p, nil)
	job, err := h.desk.Submit("slow", models.CategoryWorld)
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := job.Wait(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("Wait: got %v, want context.Canceled", err)
	}
	close(p.gate)
	if _, err := wait(t, job); err != nil {
		t.Errorf("job: %v", err)
	}
}

func TestJobTimeout(t *testing.T) {
	p := &fakePipeline{gate: make(chan struct{})}
	h := newHarness(t, p, nil)
	h.desk.cfg.Timeout = 10 * time.Millisecond

	job, err := h.desk.Submit("stuck", models.CategoryWorld)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := wait(t, job); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("error: got %v, want deadline exceeded", err)
	}
	if got := h.desk.Snapshot().LastError; got != "timed out" {
		t.Errorf("reason: got %q", got)
	}
}

func TestScreen(t *testing.T) {
	apiDown := errors.New("moderation api down")
	tests := []struct {
		name    string
		mod     Moderator
		wantErr error
	}{
		{"no moderator", nil, nil},
		{"safe", stubModerator{res: &ai.ModerationResult{Safe: true}}, nil},
		{"nil result", stubModerator{}, nil},
		{"flagged", stubModerator{res: &ai.ModerationResult{Categories: []string{"violence"}}}, ErrFlagged},
		{"check fails closed", stubModerator{err: apiDown}, apiDown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Screen(context.Background(), tt.mod, "topic")
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("Screen: unexpected error %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Screen: got %v, want %v", err, tt.wantErr)
			}
		})
	}
}
