package workflow

import (
	"context"
	"sync"
	"time"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/notewind/notewind/internal/api"
	"github.com/notewind/notewind/internal/model"
)

const defaultErrClearAfter = 5 * time.Second

// ValidationError is a local precondition failure: it never reaches the
// network and its text is already user-facing.
type ValidationError struct {
	msg  string
	kind error
}

func (e *ValidationError) Error() string { return e.msg }
func (e *ValidationError) Unwrap() error { return e.kind }

func validation(kind error, msg string) error {
	return &ValidationError{msg: msg, kind: kind}
}

// SubmitFunc performs the actual creation call for one source kind.
type SubmitFunc[P any] func(ctx context.Context, payload P) (*model.Note, error)

// Workflow wraps one "create note from X" call with the shared
// loading/error/success contract. The four source kinds are instances of
// this one type, differing only in payload and submit function.
type Workflow[P any] struct {
	name        string
	fallbackMsg string
	validate    func(P) error
	submit      SubmitFunc[P]
	onCreated   func(*model.Note)
	clearAfter  time.Duration

	mu       sync.Mutex
	inflight int
	errMsg   string
	errSeq   uint64
}

type Option[P any] func(*Workflow[P])

// WithOnCreated registers the completion callback invoked after a
// successful creation (typically: silent list refresh + streak update).
func WithOnCreated[P any](fn func(*model.Note)) Option[P] {
	return func(w *Workflow[P]) {
		w.onCreated = fn
	}
}

// WithErrClearAfter overrides the error auto-dismiss window.
func WithErrClearAfter[P any](d time.Duration) Option[P] {
	return func(w *Workflow[P]) {
		if d > 0 {
			w.clearAfter = d
		}
	}
}

func newWorkflow[P any](name, fallbackMsg string, validate func(P) error, submit SubmitFunc[P], opts ...Option[P]) *Workflow[P] {
	w := &Workflow[P]{
		name:        name,
		fallbackMsg: fallbackMsg,
		validate:    validate,
		submit:      submit,
		clearAfter:  defaultErrClearAfter,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Create runs the workflow once. A validation failure returns before any
// network call and never toggles the in-progress flag. A submit failure is
// converted to a display string, preferring the server's message, and
// auto-clears after the configured window.
func (w *Workflow[P]) Create(ctx context.Context, payload P) (*model.Note, error) {
	if w.validate != nil {
		if err := w.validate(payload); err != nil {
			w.setError(err.Error())
			return nil, err
		}
	}
	w.mu.Lock()
	w.inflight++
	w.errMsg = ""
	w.errSeq++
	w.mu.Unlock()

	note, err := w.submit(ctx, payload)

	w.mu.Lock()
	w.inflight--
	w.mu.Unlock()

	if err != nil {
		logutil.GetLogger(ctx).Error("note creation failed",
			zap.String("workflow", w.name), zap.Error(err))
		msg := api.MessageFrom(err)
		if msg == "" {
			msg = w.fallbackMsg
		}
		w.setError(msg)
		return nil, err
	}
	if w.onCreated != nil {
		w.onCreated(note)
	}
	return note, nil
}

func (w *Workflow[P]) setError(msg string) {
	w.mu.Lock()
	w.errMsg = msg
	w.errSeq++
	seq := w.errSeq
	w.mu.Unlock()

	time.AfterFunc(w.clearAfter, func() {
		w.mu.Lock()
		defer w.mu.Unlock()
		if w.errSeq == seq {
			w.errMsg = ""
		}
	})
}

func (w *Workflow[P]) Name() string { return w.name }

func (w *Workflow[P]) Creating() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.inflight > 0
}

func (w *Workflow[P]) Err() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.errMsg
}
