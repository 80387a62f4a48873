package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/multisorteios/rifa-admin/internal/core/domain"
	"github.com/multisorteios/rifa-admin/internal/core/ports"
)

// MsgCommunicationFailure is shown when the backend cannot be reached.
const MsgCommunicationFailure = "Falha ao se comunicar com o servidor"

// notifyFailure queues the operator-facing message for a failed backend call.
// Auth failures queue nothing: they end in a redirect.
func notifyFailure(ctx context.Context, ui *UIStore, err error, fallback string) {
	if le, ok := domain.IsLogical(err); ok {
		msg := le.Message
		if msg == "" {
			msg = fallback
		}
		ui.Notify(ctx, domain.NotifyError, msg)
		return
	}
	switch {
	case errors.Is(err, domain.ErrUnauthenticated), errors.Is(err, domain.ErrForbidden):
	case errors.Is(err, domain.ErrBackendUnavailable):
		ui.Notify(ctx, domain.NotifyError, MsgCommunicationFailure)
	default:
		ui.Notify(ctx, domain.NotifyError, fallback)
	}
}

// mutate runs one full round trip with no optimistic update: loading is
// tracked, and the outcome is reported as a notification.
func mutate(ctx context.Context, ui *UIStore, success, failure string, call func(ctx context.Context) error) error {
	done := ui.Track(ctx)
	defer done()

	if err := call(ctx); err != nil {
		notifyFailure(ctx, ui, err, failure)
		return err
	}
	if success != "" {
		ui.Notify(ctx, domain.NotifySuccess, success)
	}
	return nil
}

// query is mutate for reads: only failures are reported.
func query[T any](ctx context.Context, ui *UIStore, failure string, call func(ctx context.Context) (T, error)) (T, error) {
	done := ui.Track(ctx)
	defer done()

	v, err := call(ctx)
	if err != nil {
		notifyFailure(ctx, ui, err, failure)
	}
	return v, err
}

// FetchPage loads one page of a listing.
type FetchPage[T any] func(ctx context.Context) (*domain.PagedResult[T], error)

// PageController keeps the current page of one listing. Each fetch takes a
// new generation; a response whose generation is no longer the latest is
// discarded and never overwrites Current.
type PageController[T any] struct {
	name    string
	ui      *UIStore
	metrics ports.Metrics

	mu       sync.Mutex
	gen      uint64
	current  *domain.PagedResult[T]
	lastSeen time.Time
}

func NewPageController[T any](name string, ui *UIStore, metrics ports.Metrics) *PageController[T] {
	if metrics == nil {
		metrics = ports.NopMetrics{}
	}
	return &PageController[T]{name: name, ui: ui, metrics: metrics}
}

// Fetch runs fetch as the latest generation. On a logical failure the
// previous page is kept and an error notification is queued.
func (pc *PageController[T]) Fetch(ctx context.Context, fetch FetchPage[T]) (*domain.PagedResult[T], error) {
	pc.mu.Lock()
	pc.gen++
	gen := pc.gen
	pc.mu.Unlock()

	done := pc.ui.Track(ctx)
	page, err := fetch(ctx)
	done()

	pc.mu.Lock()
	defer pc.mu.Unlock()
	if gen != pc.gen {
		pc.metrics.StaleResponse(pc.name)
		return nil, domain.ErrStaleResponse
	}
	if err != nil {
		notifyFailure(ctx, pc.ui, err, "Erro ao carregar "+pc.name)
		return nil, err
	}
	if page == nil {
		page = &domain.PagedResult[T]{}
	}
	if page.Content == nil {
		page.Content = []T{}
	}
	pc.current = page
	return page, nil
}

// Current returns the last accepted page, or nil.
func (pc *PageController[T]) Current() *domain.PagedResult[T] {
	pc.mu.Lock()
	defer pc.mu.Unlock()
	return pc.current
}

// ControllerRegistry keeps one PageController per browser context. A
// controller untouched for longer than the idle timeout is dropped together
// with its page.
type ControllerRegistry[T any] struct {
	name    string
	ui      *UIStore
	metrics ports.Metrics
	idle    time.Duration
	now     func() time.Time

	mu          sync.Mutex
	controllers map[string]*PageController[T]
	sweptAt     time.Time
}

func NewControllerRegistry[T any](name string, ui *UIStore, metrics ports.Metrics) *ControllerRegistry[T] {
	idle := defaultUIIdle
	if ui != nil {
		idle = ui.idle
	}
	return &ControllerRegistry[T]{
		name:        name,
		ui:          ui,
		metrics:     metrics,
		idle:        idle,
		now:         time.Now,
		controllers: make(map[string]*PageController[T]),
	}
}

// For returns the controller of the browser context carried by ctx,
// creating it on first use.
func (r *ControllerRegistry[T]) For(ctx context.Context) *PageController[T] {
	id := domain.BrowserContextFrom(ctx)
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	r.sweep(now)
	pc, ok := r.controllers[id]
	if !ok {
		pc = NewPageController[T](r.name, r.ui, r.metrics)
		r.controllers[id] = pc
	}
	pc.touch(now)
	return pc
}

// Lookup returns the controller of the context only if it already exists.
func (r *ControllerRegistry[T]) Lookup(ctx context.Context) (*PageController[T], bool) {
	id := domain.BrowserContextFrom(ctx)
	r.mu.Lock()
	defer r.mu.Unlock()

	pc, ok := r.controllers[id]
	if ok {
		pc.touch(r.now())
	}
	return pc, ok
}

func (r *ControllerRegistry[T]) sweep(now time.Time) {
	if now.Sub(r.sweptAt) <= r.idle {
		return
	}
	for id, pc := range r.controllers {
		if pc.idleSince(now) > r.idle {
			delete(r.controllers, id)
		}
	}
	r.sweptAt = now
}

func (pc *PageController[T]) touch(now time.Time) {
	pc.mu.Lock()
	pc.lastSeen = now
	pc.mu.Unlock()
}

func (pc *PageController[T]) idleSince(now time.Time) time.Duration {
	pc.mu.Lock()
	defer pc.mu.Unlock()
	return now.Sub(pc.lastSeen)
}
