package batch

import (
	"sync"

	"github.com/sunthewhat/easy-cert-generator/type/shared/model"
)

// Tracker owns one BatchProgress and enforces its transitions:
// idle -> running -> completed|failed, and back to running only through Start.
// Completed never decreases within a run. Every change is pushed to the
// optional observer while the lock is held, so observers see changes in order.
type Tracker struct {
	mu       sync.Mutex
	progress model.BatchProgress
	observer func(model.BatchProgress)
}

func NewTracker(observer func(model.BatchProgress)) *Tracker {
	return &Tracker{
		progress: model.BatchProgress{Status: model.StatusIdle},
		observer: observer,
	}
}

func (t *Tracker) Snapshot() model.BatchProgress {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.progress
}

func (t *Tracker) Start(total int) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.progress.Status == model.StatusRunning {
		return ErrBatchRunning
	}
	t.progress = model.BatchProgress{
		Total:  total,
		Status: model.StatusRunning,
	}
	t.emit()
	return nil
}

// Begin labels the item about to be processed.
func (t *Tracker) Begin(label string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.progress.Status != model.StatusRunning {
		return
	}
	t.progress.Current = label
	t.emit()
}

// Advance records one processed item.
func (t *Tracker) Advance(failed bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.progress.Status != model.StatusRunning || t.progress.Completed >= t.progress.Total {
		return
	}
	t.progress.Completed++
	if failed {
		t.progress.Failed++
	}
	t.emit()
}

func (t *Tracker) Complete() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.progress.Status != model.StatusRunning {
		return
	}
	t.progress.Status = model.StatusCompleted
	t.progress.Current = ""
	t.emit()
}

func (t *Tracker) Fail(message string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.progress.Status != model.StatusRunning {
		return
	}
	t.progress.Status = model.StatusFailed
	t.progress.Error = message
	t.emit()
}

// Reset returns an idle tracker. A running batch cannot be reset.
func (t *Tracker) Reset() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.progress.Status == model.StatusRunning {
		return ErrBatchRunning
	}
	t.progress = model.BatchProgress{Status: model.StatusIdle}
	t.emit()
	return nil
}

func (t *Tracker) emit() {
	if t.observer != nil {
		t.observer(t.progress)
	}
}
