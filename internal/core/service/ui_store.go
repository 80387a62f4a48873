package service

import (
	"context"
	"sync"
	"time"

	"github.com/multisorteios/rifa-admin/internal/core/domain"
)

// maxQueuedNotifications bounds each context's queue; the oldest entries are
// dropped first.
const maxQueuedNotifications = 50

const defaultUIIdle = 30 * time.Minute

type uiEntry struct {
	inFlight      int
	sidebarOpen   bool
	modalOpen     bool
	notifications []domain.Notification
	lastSeen      time.Time
}

// UIStore holds the transient UI flags and notification queue of every
// browser context. Nothing here is persisted; a context idle for longer
// than the idle timeout with nothing in flight is forgotten.
type UIStore struct {
	mu      sync.Mutex
	entries map[string]*uiEntry
	idle    time.Duration
	sweptAt time.Time
	now     func() time.Time
}

// UIOption customises a UIStore.
type UIOption func(*UIStore)

// WithUIIdleTimeout sets how long an untouched context is kept.
func WithUIIdleTimeout(d time.Duration) UIOption {
	return func(u *UIStore) {
		if d > 0 {
			u.idle = d
		}
	}
}

func NewUIStore(opts ...UIOption) *UIStore {
	u := &UIStore{
		entries: make(map[string]*uiEntry),
		idle:    defaultUIIdle,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// entry returns the context's entry, creating it. Only writers call it.
func (u *UIStore) entry(ctx context.Context) *uiEntry {
	now := u.now()
	if now.Sub(u.sweptAt) > u.idle {
		for k, e := range u.entries {
			if e.inFlight == 0 && now.Sub(e.lastSeen) > u.idle {
				delete(u.entries, k)
			}
		}
		u.sweptAt = now
	}

	id := domain.BrowserContextFrom(ctx)
	e, ok := u.entries[id]
	if !ok {
		e = &uiEntry{}
		u.entries[id] = e
	}
	e.lastSeen = now
	return e
}

// peek returns the context's entry without creating it.
func (u *UIStore) peek(ctx context.Context) (*uiEntry, bool) {
	e, ok := u.entries[domain.BrowserContextFrom(ctx)]
	if ok {
		e.lastSeen = u.now()
	}
	return e, ok
}

// Track marks a backend call in flight; call done when it settles.
// Loading stays true while any tracked call of the context is pending.
func (u *UIStore) Track(ctx context.Context) (done func()) {
	u.mu.Lock()
	e := u.entry(ctx)
	e.inFlight++
	u.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			u.mu.Lock()
			defer u.mu.Unlock()
			if e.inFlight > 0 {
				e.inFlight--
			}
		})
	}
}

func (u *UIStore) update(ctx context.Context, fn func(e *uiEntry)) {
	u.mu.Lock()
	defer u.mu.Unlock()
	fn(u.entry(ctx))
}

func (u *UIStore) OpenSidebar(ctx context.Context) {
	u.update(ctx, func(e *uiEntry) { e.sidebarOpen = true })
}

func (u *UIStore) CloseSidebar(ctx context.Context) {
	u.update(ctx, func(e *uiEntry) { e.sidebarOpen = false })
}

func (u *UIStore) OpenModal(ctx context.Context) {
	u.update(ctx, func(e *uiEntry) { e.modalOpen = true })
}

func (u *UIStore) CloseModal(ctx context.Context) {
	u.update(ctx, func(e *uiEntry) { e.modalOpen = false })
}

// Snapshot returns the current flags of the context.
func (u *UIStore) Snapshot(ctx context.Context) domain.UIState {
	u.mu.Lock()
	defer u.mu.Unlock()
	e, ok := u.peek(ctx)
	if !ok {
		return domain.UIState{}
	}
	return domain.UIState{
		Loading:     e.inFlight > 0,
		SidebarOpen: e.sidebarOpen,
		ModalOpen:   e.modalOpen,
	}
}

// Notify queues a notification for the context.
func (u *UIStore) Notify(ctx context.Context, level domain.NotificationLevel, message string) {
	if message == "" {
		return
	}
	u.update(ctx, func(e *uiEntry) {
		e.notifications = append(e.notifications, domain.Notification{
			Level:     level,
			Message:   message,
			CreatedAt: u.now().UTC(),
		})
		if n := len(e.notifications); n > maxQueuedNotifications {
			e.notifications = append([]domain.Notification(nil), e.notifications[n-maxQueuedNotifications:]...)
		}
	})
}

// Drain returns and clears the queued notifications in arrival order.
func (u *UIStore) Drain(ctx context.Context) []domain.Notification {
	u.mu.Lock()
	defer u.mu.Unlock()
	e, ok := u.peek(ctx)
	if !ok {
		return []domain.Notification{}
	}
	out := e.notifications
	e.notifications = nil
	if out == nil {
		out = []domain.Notification{}
	}
	return out
}
