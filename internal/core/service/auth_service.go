package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/multisorteios/rifa-admin/internal/core/domain"
	"github.com/multisorteios/rifa-admin/internal/core/ports"
	"github.com/multisorteios/rifa-admin/pkg/logger"
)

// Durable storage keys, one set per browser context.
const (
	StorageKeyToken           = "token"
	StorageKeyUser            = "user"
	StorageKeyTheme           = "theme"
	StorageKeySelectedEmpresa = "selectedEmpresaInfo"
)

const (
	loginResultSuccess = "success"
	loginResultDenied  = "denied"
	loginResultError   = "error"
)

const (
	defaultSessionTTL  = 30 * 24 * time.Hour
	defaultIdleTimeout = 30 * time.Minute

	// Logged-out contexts keep their anonymous state briefly; after that
	// durable storage answers again.
	anonymousTTL  = 10 * time.Minute
	sweepInterval = time.Minute
)

type authEntry struct {
	state   domain.AuthState
	session *domain.Session
	// version changes on every write; resolve only commits over the version it read.
	version   uint64
	expiresAt time.Time
	lastSeen  time.Time
}

func (e *authEntry) live(now time.Time, idle time.Duration) bool {
	return now.Before(e.expiresAt) && now.Sub(e.lastSeen) <= idle
}

// AuthService owns the session of every browser context: login, logout,
// boot-time revalidation and the forced logout run on backend 401s.
//
// Only contexts that logged in or out are kept in memory. An entry is
// dropped once idle for the idle timeout or older than the session TTL,
// and the next request resolves it again from durable storage.
type AuthService struct {
	backend ports.AuthBackend
	storage ports.ClientStorage
	metrics ports.Metrics
	logger  zerolog.Logger
	ttl     time.Duration
	idle    time.Duration
	now     func() time.Time

	mu      sync.Mutex
	entries map[string]*authEntry
	seq     uint64
	sweptAt time.Time
	boot    singleflight.Group
}

// AuthOption customises an AuthService.
type AuthOption func(*AuthService)

// WithSessionTTL caps how long a resolved session is trusted in memory. Keep
// it at or below the durable storage TTL.
func WithSessionTTL(d time.Duration) AuthOption {
	return func(s *AuthService) {
		if d > 0 {
			s.ttl = d
		}
	}
}

// WithIdleTimeout drops contexts that made no request for d.
func WithIdleTimeout(d time.Duration) AuthOption {
	return func(s *AuthService) {
		if d > 0 {
			s.idle = d
		}
	}
}

func NewAuthService(backend ports.AuthBackend, storage ports.ClientStorage, metrics ports.Metrics, logger zerolog.Logger, opts ...AuthOption) *AuthService {
	if metrics == nil {
		metrics = ports.NopMetrics{}
	}
	s := &AuthService{
		backend: backend,
		storage: storage,
		metrics: metrics,
		logger:  logger,
		ttl:     defaultSessionTTL,
		idle:    defaultIdleTimeout,
		now:     time.Now,
		entries: make(map[string]*authEntry),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// HashPassword returns the lowercase hex SHA-256 the backend expects as password.
func HashPassword(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}

// Login authenticates against the backend and persists the session. Every
// failure (wrong credentials, network, bad payload) yields false.
func (s *AuthService) Login(ctx context.Context, login, password string) bool {
	id := domain.BrowserContextFrom(ctx)
	log := logger.WithBrowserContext(s.logger, id).With().Str("login", login).Logger()

	session, err := s.backend.Login(ctx, login, HashPassword(password))
	if err != nil {
		var le *domain.LogicalError
		if errors.As(err, &le) || errors.Is(err, domain.ErrInvalidCredentials) {
			s.metrics.LoginAttempt(loginResultDenied)
			log.Info().Err(err).Msg("login rejected")
		} else {
			s.metrics.LoginAttempt(loginResultError)
			log.Error().Err(err).Msg("login failed")
		}
		return false
	}

	raw, err := json.Marshal(session)
	if err != nil {
		s.metrics.LoginAttempt(loginResultError)
		log.Error().Err(err).Msg("encode session")
		return false
	}
	err = s.storage.SetMany(ctx, id, map[string]string{
		StorageKeyUser:  string(raw),
		StorageKeyToken: session.Token,
	})
	if err != nil {
		s.metrics.LoginAttempt(loginResultError)
		log.Error().Err(err).Msg("persist session")
		return false
	}

	s.put(id, domain.AuthAuthenticated, session, s.ttl)
	s.metrics.LoginAttempt(loginResultSuccess)
	log.Info().Str("profile", session.Profile).Msg("operator logged in")
	return true
}

// Logout clears the session in memory and storage. Theme and company
// preferences survive.
func (s *AuthService) Logout(ctx context.Context) {
	id := domain.BrowserContextFrom(ctx)
	s.clear(ctx, id)
	s.logger.Info().Str("browser_context", id).Msg("operator logged out")
}

// HandleUnauthorized is the backend adapter's 401 hook.
func (s *AuthService) HandleUnauthorized(ctx context.Context) {
	id := domain.BrowserContextFrom(ctx)
	s.clear(ctx, id)
	s.metrics.ForcedLogout()
	s.logger.Warn().Str("browser_context", id).Msg("session rejected by backend, forced logout")
}

// HandleForbidden is the backend adapter's 403 hook. The session stays; the
// refusal is logged with the operator it was issued to.
func (s *AuthService) HandleForbidden(ctx context.Context) {
	id := domain.BrowserContextFrom(ctx)
	log := logger.WithBrowserContext(s.logger, id)
	ev := log.Warn()
	if session, ok := s.Current(ctx); ok {
		ev = ev.Str("login", session.Login).Str("profile", session.Profile)
	}
	ev.Msg("backend refused the operation for this profile")
}

func (s *AuthService) clear(ctx context.Context, id string) {
	s.put(id, domain.AuthAnonymous, nil, anonymousTTL)
	s.discard(ctx, id)
}

func (s *AuthService) discard(ctx context.Context, id string) {
	if err := s.storage.Delete(ctx, id, StorageKeyUser, StorageKeyToken); err != nil {
		s.logger.Error().Err(err).Str("browser_context", id).Msg("clear stored session")
	}
}

// ValidateToken asks the backend whether the token is still valid. An empty
// override validates the current session's token. Any failure yields false.
func (s *AuthService) ValidateToken(ctx context.Context, tokenOverride string) bool {
	token := tokenOverride
	if token == "" {
		if session, ok := s.Current(ctx); ok {
			token = session.Token
		}
	}
	if token == "" {
		return false
	}
	if err := s.backend.ValidateToken(ctx, token); err != nil {
		s.logger.Debug().Err(err).Msg("token validation failed")
		return false
	}
	return true
}

// Initialize resolves the context's AuthState from durable storage. A stored
// session is only accepted after the backend revalidates its token. Once
// resolved the state is cached; concurrent callers share one resolution.
func (s *AuthService) Initialize(ctx context.Context) domain.AuthState {
	id := domain.BrowserContextFrom(ctx)
	if state := s.State(ctx); state != domain.AuthUnknown {
		return state
	}

	v, _, _ := s.boot.Do(id, func() (any, error) {
		if state := s.State(ctx); state != domain.AuthUnknown {
			return state, nil
		}
		return s.resolve(ctx, id), nil
	})
	return v.(domain.AuthState)
}

func (s *AuthService) resolve(ctx context.Context, id string) domain.AuthState {
	log := logger.WithBrowserContext(s.logger, id)
	seen := s.version(id)

	raw, ok, err := s.storage.Get(ctx, id, StorageKeyUser)
	if err != nil {
		// Unresolved; the next request retries.
		log.Error().Err(err).Msg("read stored session")
		return domain.AuthAnonymous
	}
	if !ok {
		// Nothing cached: a context that never logged in costs no memory.
		return s.stateOf(id, domain.AuthAnonymous)
	}

	var session domain.Session
	if err := json.Unmarshal([]byte(raw), &session); err != nil || session.Token == "" {
		log.Warn().Err(err).Msg("discarding unreadable stored session")
		return s.reject(ctx, id, seen)
	}

	if !s.ValidateToken(ctx, session.Token) {
		log.Info().Msg("stored session no longer valid, discarding")
		return s.reject(ctx, id, seen)
	}

	if !s.commit(id, seen, domain.AuthAuthenticated, &session, s.ttl) {
		log.Debug().Msg("session changed during revalidation, keeping the newer one")
		return s.stateOf(id, domain.AuthAnonymous)
	}
	// The memory entry must not outlive the durable one.
	if err := s.storage.Touch(ctx, id); err != nil {
		log.Warn().Err(err).Msg("refresh stored session expiry")
	}
	return domain.AuthAuthenticated
}

// reject drops a stored session that failed revalidation, unless a login
// or logout replaced the context's entry meanwhile.
func (s *AuthService) reject(ctx context.Context, id string, seen uint64) domain.AuthState {
	if !s.commit(id, seen, domain.AuthAnonymous, nil, anonymousTTL) {
		return s.stateOf(id, domain.AuthAnonymous)
	}
	s.discard(ctx, id)
	return domain.AuthAnonymous
}

// State returns the cached AuthState without resolving it.
func (s *AuthService) State(ctx context.Context) domain.AuthState {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e := s.lookup(domain.BrowserContextFrom(ctx)); e != nil {
		return e.state
	}
	return domain.AuthUnknown
}

// Current returns the authenticated session of the context.
func (s *AuthService) Current(ctx context.Context) (*domain.Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e := s.lookup(domain.BrowserContextFrom(ctx))
	if e == nil || e.session == nil {
		return nil, false
	}
	clone := *e.session
	return &clone, true
}

// Token implements the backend adapter's TokenSource.
func (s *AuthService) Token(ctx context.Context) (string, bool) {
	session, ok := s.Current(ctx)
	if !ok || session.Token == "" {
		return "", false
	}
	return session.Token, true
}

// lookup returns the live entry of id and marks it seen. Callers hold s.mu.
func (s *AuthService) lookup(id string) *authEntry {
	e, ok := s.entries[id]
	if !ok {
		return nil
	}
	now := s.now()
	if !e.live(now, s.idle) {
		return nil
	}
	e.lastSeen = now
	return e
}

func (s *AuthService) version(id string) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e := s.lookup(id); e != nil {
		return e.version
	}
	return 0
}

func (s *AuthService) stateOf(id string, fallback domain.AuthState) domain.AuthState {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e := s.lookup(id); e != nil {
		return e.state
	}
	return fallback
}

// put replaces the entry of id unconditionally.
func (s *AuthService) put(id string, state domain.AuthState, session *domain.Session, ttl time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.store(id, state, session, ttl)
}

// commit replaces the entry of id only if its version is still seen.
func (s *AuthService) commit(id string, seen uint64, state domain.AuthState, session *domain.Session, ttl time.Duration) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	var current uint64
	if e := s.lookup(id); e != nil {
		current = e.version
	}
	if current != seen {
		return false
	}
	s.store(id, state, session, ttl)
	return true
}

func (s *AuthService) store(id string, state domain.AuthState, session *domain.Session, ttl time.Duration) {
	now := s.now()
	s.sweep(now)
	s.seq++
	s.entries[id] = &authEntry{
		state:     state,
		session:   session,
		version:   s.seq,
		expiresAt: now.Add(ttl),
		lastSeen:  now,
	}
}

func (s *AuthService) sweep(now time.Time) {
	if now.Sub(s.sweptAt) < sweepInterval {
		return
	}
	for id, e := range s.entries {
		if !e.live(now, s.idle) {
			delete(s.entries, id)
		}
	}
	s.sweptAt = now
}

// Theme returns the stored theme, light by default.
func (s *AuthService) Theme(ctx context.Context) string {
	v, ok, err := s.storage.Get(ctx, domain.BrowserContextFrom(ctx), StorageKeyTheme)
	if err != nil || !ok || v != domain.ThemeDark {
		return domain.ThemeLight
	}
	return v
}

// SetTheme persists the theme; anything but dark is stored as light.
func (s *AuthService) SetTheme(ctx context.Context, theme string) error {
	if theme != domain.ThemeDark {
		theme = domain.ThemeLight
	}
	return s.storage.Set(ctx, domain.BrowserContextFrom(ctx), StorageKeyTheme, theme)
}

// SelectedEmpresa returns the stored company selection, if any.
func (s *AuthService) SelectedEmpresa(ctx context.Context) (*domain.SelectedEmpresa, bool) {
	raw, ok, err := s.storage.Get(ctx, domain.BrowserContextFrom(ctx), StorageKeySelectedEmpresa)
	if err != nil || !ok {
		return nil, false
	}
	var e domain.SelectedEmpresa
	if err := json.Unmarshal([]byte(raw), &e); err != nil {
		return nil, false
	}
	return &e, true
}

// SetSelectedEmpresa persists the company selection.
func (s *AuthService) SetSelectedEmpresa(ctx context.Context, e domain.SelectedEmpresa) error {
	raw, err := json.Marshal(e)
	if err != nil {
		return err
	}
	return s.storage.Set(ctx, domain.BrowserContextFrom(ctx), StorageKeySelectedEmpresa, string(raw))
}
