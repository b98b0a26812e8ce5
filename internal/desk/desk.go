// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package desk runs admin-triggered article generation one job at a time
// and tracks its progress for the dashboard.
package desk

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"worldpulse/internal/ai"
	"worldpulse/internal/models"
	"worldpulse/internal/newsroom"
	"worldpulse/internal/store"
)

var (
	ErrEmptyTopic      = errors.New("topic is required")
	ErrInvalidCategory = errors.New("invalid category")
	ErrBusy            = errors.New("a generation is already in progress")
	ErrFlagged         = errors.New("topic rejected by moderation")
	ErrClosed          = errors.New("desk is closed")
)

// DefaultTimeout bounds one job when Config.Timeout is zero.
const DefaultTimeout = 3 * time.Minute

// Generator produces an article for a request.
type Generator interface {
	Generate(ctx context.Context, req newsroom.Request) (models.Article, error)
}

// Moderator screens a topic before any model is asked to write about it.
type Moderator interface {
	CheckPrompt(ctx context.Context, prompt string) (*ai.ModerationResult, error)
}

// ArticleSink stores published articles and returns the stored version.
type ArticleSink interface {
	Add(a models.Article) (models.Article, error)
}

// Config wires a Desk.
type Config struct {
	Pipeline  Generator
	Moderator Moderator // optional
	Articles  ArticleSink
	Logs      *store.LogStore
	// Model is recorded on every log entry and shown on the dashboard.
	Model   string
	Timeout time.Duration
	// AfterPublish runs once an article is in the store.
	AfterPublish func(ctx context.Context, a models.Article)
	Logger       *slog.Logger
}

// Snapshot is the dashboard view of the desk.
type Snapshot struct {
	Step      newsroom.Step          `json:"step"`
	StepLabel string                 `json:"stepLabel"`
	Busy      bool                   `json:"busy"`
	Topic     string                 `json:"topic"`
	Category  models.Category        `json:"category"`
	LastError string                 `json:"lastError,omitempty"`
	Model     string                 `json:"model"`
	Pending   int                    `json:"pending"`
	Logs      []models.GenerationLog `json:"logs"`
}

// Desk owns the generation state machine:
// idle → analyzing → writing → visualizing → idle.
type Desk struct {
	cfg    Config
	logger *slog.Logger

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu        sync.Mutex
	step      newsroom.Step
	topic     string
	category  models.Category
	lastError string
	closed    bool
}

// New creates an idle Desk.
func New(cfg Config) *Desk {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.Logs == nil {
		cfg.Logs = store.NewLogStore()
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Desk{
		cfg:      cfg,
		logger:   logger,
		ctx:      ctx,
		cancel:   cancel,
		step:     newsroom.StepIdle,
		category: models.DefaultCategory,
	}
}

// Job is a submitted generation.
type Job struct {
	LogID string

	done    chan struct{}
	article models.Article
	err     error
}

// Done is closed when the job has settled.
func (j *Job) Done() <-chan struct{} { return j.done }

// Wait blocks until the job settles or ctx is done.
func (j *Job) Wait(ctx context.Context) (models.Article, error) {
	select {
	case <-j.done:
		return j.article, j.err
	case <-ctx.Done():
		return models.Article{}, ctx.Err()
	}
}

// Submit starts a generation for topic in category. Only one job runs at a
// time; a submission while busy is rejected with ErrBusy and leaves no trace.
func (d *Desk) Submit(topic string, category models.Category) (*Job, error) {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return nil, ErrEmptyTopic
	}
	if !category.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidCategory, category)
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return nil, ErrClosed
	}
	if d.step != newsroom.StepIdle {
		return nil, ErrBusy
	}

	d.step = newsroom.StepAnalyzing
	d.topic = topic
	d.category = category
	d.lastError = ""

	entry := d.cfg.Logs.Create(topic, category, d.cfg.Model)
	job := &Job{LogID: entry.ID, done: make(chan struct{})}

	d.wg.Add(1)
	go d.run(job, topic, category)

	d.logger.Info("generation started", "topic", topic, "category", category, "log_id", entry.ID)
	return job, nil
}

func (d *Desk) run(job *Job, topic string, category models.Category) {
	defer d.wg.Done()
	defer close(job.done)

	ctx, cancel := context.WithTimeout(d.ctx, d.cfg.Timeout)
	defer cancel()

	start := time.Now()
	article, err := d.produce(ctx, topic, category)
	if err == nil {
		article, err = d.publish(ctx, job.LogID, article)
	}
	if err != nil {
		d.fail(job.LogID, err)
		d.logger.Warn("generation failed", "topic", topic, "log_id", job.LogID,
			"duration", time.Since(start).Round(time.Millisecond), "error", err)
		job.err = err
		return
	}

	d.logger.Info("article published", "slug", article.Slug, "log_id", job.LogID,
		"duration", time.Since(start).Round(time.Millisecond))
	job.article = article
}

// Screen runs topic past m. A flagged topic yields ErrFlagged; a failed
// check is returned as an error so the topic is never written about
// unscreened. A nil Moderator passes everything.
func Screen(ctx context.Context, m Moderator, topic string) error {
	if m == nil {
		return nil
	}
	res, err := m.CheckPrompt(ctx, topic)
	if err != nil {
		return fmt.Errorf("moderation check: %w", err)
	}
	if res != nil && !res.Safe {
		return fmt.Errorf("%w: %s", ErrFlagged, res.Reason())
	}
	return nil
}

func (d *Desk) produce(ctx context.Context, topic string, category models.Category) (models.Article, error) {
	if err := Screen(ctx, d.cfg.Moderator, topic); err != nil {
		return models.Article{}, err
	}

	return d.cfg.Pipeline.Generate(ctx, newsroom.Request{
		Topic:    topic,
		Category: category,
		OnStep:   d.setStep,
	})
}

// publish stores the article unless the desk was closed while it was being
// produced. Holding mu across the store write orders it against Close.
func (d *Desk) publish(ctx context.Context, logID string, a models.Article) (models.Article, error) {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return models.Article{}, ErrClosed
	}
	stored, err := d.cfg.Articles.Add(a)
	if err != nil {
		d.mu.Unlock()
		return models.Article{}, fmt.Errorf("publish: %w", err)
	}
	if err := d.cfg.Logs.Settle(logID, models.GenerationSuccess, stored.Slug); err != nil {
		d.logger.Error("settle generation log", "log_id", logID, "error", err)
	}
	d.step = newsroom.StepIdle
	d.topic = ""
	d.mu.Unlock()

	if d.cfg.AfterPublish != nil {
		d.cfg.AfterPublish(context.WithoutCancel(ctx), stored)
	}
	return stored, nil
}

func (d *Desk) fail(logID string, cause error) {
	reason := failureReason(cause)

	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.cfg.Logs.Settle(logID, models.GenerationFailed, reason); err != nil {
		d.logger.Error("settle generation log", "log_id", logID, "error", err)
	}
	d.step = newsroom.StepIdle
	d.lastError = reason
}

func failureReason(err error) string {
	switch {
	case errors.Is(err, ErrClosed):
		return "cancelled: desk shut down before publishing"
	case errors.Is(err, context.DeadlineExceeded):
		return "timed out"
	default:
		return err.Error()
	}
}

func (d *Desk) setStep(s newsroom.Step) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.step != newsroom.StepIdle {
		d.step = s
	}
}

// Snapshot returns the current desk state.
func (d *Desk) Snapshot() Snapshot {
	d.mu.Lock()
	s := Snapshot{
		Step:      d.step,
		StepLabel: d.step.Label(),
		Busy:      d.step != newsroom.StepIdle,
		Topic:     d.topic,
		Category:  d.category,
		LastError: d.lastError,
		Model:     d.cfg.Model,
	}
	d.mu.Unlock()

	s.Logs = d.cfg.Logs.List()
	s.Pending = d.cfg.Logs.Pending()
	return s
}

// Close cancels in-flight work and waits for it to settle. Jobs settling
// after Close are marked failed and never publish.
func (d *Desk) Close() {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.closed = true
	d.mu.Unlock()

	d.cancel()
	d.wg.Wait()
}
