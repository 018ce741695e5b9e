package batch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/sunthewhat/easy-cert-generator/internal/metrics"
	"github.com/sunthewhat/easy-cert-generator/type/shared/model"
)

type FailurePolicy string

const (
	// Isolate records a failed participant and keeps going.
	Isolate FailurePolicy = "isolate"
	// AbortOnError stops at the first failed participant and discards the archive.
	AbortOnError FailurePolicy = "abort"
)

func ParseFailurePolicy(s string) FailurePolicy {
	if strings.EqualFold(strings.TrimSpace(s), string(AbortOnError)) {
		return AbortOnError
	}
	return Isolate
}

type Options struct {
	// Workers > 1 renders ahead on a bounded pool. Results are still folded
	// into the archive and progress strictly in participant order.
	Workers      int
	Policy       FailurePolicy
	Disambiguate bool
}

// DocumentRenderer produces one finished document for one participant.
type DocumentRenderer interface {
	Document(ctx context.Context, tmpl *model.Template, cfg model.GenerationConfig, p model.Participant) ([]byte, error)
}

type ItemResult struct {
	Participant model.Participant `json:"participant"`
	Filename    string            `json:"filename,omitempty"`
	Document    []byte            `json:"-"`
	Err         error             `json:"-"`
}

func (r ItemResult) OK() bool {
	return r.Err == nil
}

type Result struct {
	Archive     []byte
	ArchiveName string
	Items       []ItemResult
	Generated   int
	Failed      int
	// Collisions lists entry names written more than once; the last write won.
	Collisions []string
}

// Failures returns the items that did not produce a document.
func (r *Result) Failures() []ItemResult {
	var failed []ItemResult
	for _, item := range r.Items {
		if !item.OK() {
			failed = append(failed, item)
		}
	}
	return failed
}

type Orchestrator struct {
	renderer DocumentRenderer
	opts     Options
}

func New(renderer DocumentRenderer, opts Options) *Orchestrator {
	if opts.Policy == "" {
		opts.Policy = Isolate
	}
	if opts.Workers < 1 {
		opts.Workers = 1
	}
	return &Orchestrator{renderer: renderer, opts: opts}
}

func (o *Orchestrator) Options() Options {
	return o.opts
}

// GenerateOne renders a single participant and returns the document with its
// suggested filename. Batch progress is not touched.
func (o *Orchestrator) GenerateOne(ctx context.Context, tmpl *model.Template, cfg model.GenerationConfig, p model.Participant) ([]byte, string, error) {
	if tmpl == nil {
		return nil, "", ErrNoTemplate
	}
	doc, err := o.renderer.Document(ctx, tmpl.Clone(), cfg, p)
	if err != nil {
		slog.Error("Failed to generate certificate", "participant_id", p.ID, "name", p.Name, "error", err)
		return nil, "", err
	}
	return doc, DocumentFilename(p.Name), nil
}

// GenerateBatch renders every participant in order into one archive.
// The template and participant list are copied before any work starts.
// tracker may be nil.
func (o *Orchestrator) GenerateBatch(ctx context.Context, tmpl *model.Template, cfg model.GenerationConfig, participants []model.Participant, tracker *Tracker) (*Result, error) {
	if tmpl == nil {
		return nil, ErrNoTemplate
	}
	if tracker == nil {
		tracker = NewTracker(nil)
	}

	snapshot := tmpl.Clone()
	list := make([]model.Participant, len(participants))
	copy(list, participants)

	if err := tracker.Start(len(list)); err != nil {
		return nil, err
	}

	started := time.Now()
	slog.Info("Batch generation started",
		"template_id", snapshot.ID,
		"total", len(list),
		"workers", o.opts.Workers,
		"policy", o.opts.Policy)

	runCtx, cancel := context.WithCancel(ctx)

	var pending []chan ItemResult
	var wg sync.WaitGroup
	if o.opts.Workers > 1 && len(list) > 1 {
		pending = o.dispatch(runCtx, &wg, snapshot, cfg, list)
	}
	// Workers must be gone before returning so nothing renders after the call.
	defer wg.Wait()
	defer cancel()

	archive := NewArchive()
	result := &Result{
		ArchiveName: ArchiveFilename(cfg.CourseTitle),
		Items:       make([]ItemResult, 0, len(list)),
	}

	for i, p := range list {
		if err := ctx.Err(); err != nil {
			tracker.Fail(cancelledMessage)
			metrics.RecordBatch("cancelled", time.Since(started), 0)
			slog.Warn("Batch generation cancelled", "completed", i, "total", len(list))
			return nil, fmt.Errorf("%w: %w", ErrCancelled, err)
		}

		tracker.Begin(p.Name)

		var item ItemResult
		if pending != nil {
			select {
			case item = <-pending[i]:
			case <-ctx.Done():
				tracker.Fail(cancelledMessage)
				metrics.RecordBatch("cancelled", time.Since(started), 0)
				slog.Warn("Batch generation cancelled", "completed", i, "total", len(list))
				return nil, fmt.Errorf("%w: %w", ErrCancelled, ctx.Err())
			}
		} else {
			item = o.render(runCtx, snapshot, cfg, p)
		}

		if item.Err != nil {
			slog.Error("Failed to generate certificate",
				"participant_id", p.ID,
				"name", p.Name,
				"index", i,
				"error", item.Err)
			if o.opts.Policy == AbortOnError {
				tracker.Fail(UserMessage)
				metrics.RecordBatch(string(model.StatusFailed), time.Since(started), 0)
				return nil, fmt.Errorf("%w: participant %q: %w", ErrAborted, p.Name, item.Err)
			}
			result.Items = append(result.Items, item)
			result.Failed++
			tracker.Advance(true)
			continue
		}

		item.Filename = o.entryName(archive, p)
		if archive.Add(item.Filename, item.Document) {
			slog.Warn("Archive entry overwritten by participant with same file name",
				"filename", item.Filename,
				"participant_id", p.ID,
				"name", p.Name)
			result.Collisions = append(result.Collisions, item.Filename)
		}
		item.Participant.Generated = true
		result.Items = append(result.Items, item)
		result.Generated++
		tracker.Advance(false)
	}

	data, err := archive.Bytes()
	if err != nil {
		slog.Error("Failed to assemble certificate archive", "error", err)
		tracker.Fail(UserMessage)
		metrics.RecordBatch(string(model.StatusFailed), time.Since(started), len(result.Collisions))
		return nil, err
	}
	result.Archive = data
	tracker.Complete()
	metrics.RecordBatch(string(model.StatusCompleted), time.Since(started), len(result.Collisions))

	slog.Info("Batch generation completed",
		"total", len(list),
		"generated", result.Generated,
		"failed", result.Failed,
		"collisions", len(result.Collisions),
		"entries", archive.Len(),
		"duration", time.Since(started))

	return result, nil
}

func (o *Orchestrator) render(ctx context.Context, tmpl *model.Template, cfg model.GenerationConfig, p model.Participant) ItemResult {
	started := time.Now()
	doc, err := o.renderer.Document(ctx, tmpl, cfg, p)
	metrics.RecordDocument(time.Since(started), err == nil)
	return ItemResult{Participant: p, Document: doc, Err: err}
}

// dispatch starts the worker pool and returns one buffered channel per
// participant, each receiving exactly one result unless ctx is cancelled.
func (o *Orchestrator) dispatch(ctx context.Context, wg *sync.WaitGroup, tmpl *model.Template, cfg model.GenerationConfig, list []model.Participant) []chan ItemResult {
	pending := make([]chan ItemResult, len(list))
	for i := range pending {
		pending[i] = make(chan ItemResult, 1)
	}

	jobs := make(chan int)
	workers := min(o.opts.Workers, len(list))
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				pending[i] <- o.render(ctx, tmpl, cfg, list[i])
			}
		}()
	}

	go func() {
		defer close(jobs)
		for i := range list {
			select {
			case jobs <- i:
			case <-ctx.Done():
				return
			}
		}
	}()

	return pending
}

func (o *Orchestrator) entryName(archive *Archive, p model.Participant) string {
	name := DocumentFilename(p.Name)
	if o.opts.Disambiguate && archive.Has(name) && p.VerificationID != "" {
		return disambiguatedFilename(p.Name, p.VerificationID)
	}
	return name
}

// IsInputError reports whether err was returned before any work started.
func IsInputError(err error) bool {
	return errors.Is(err, ErrNoTemplate) || errors.Is(err, ErrBatchRunning)
}
