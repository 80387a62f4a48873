package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/multisorteios/rifa-admin/internal/core/domain"
)

type memStorage struct {
	mu      sync.Mutex
	data    map[string]map[string]string
	err     error
	failKey string // writes touching this key fail
	touched int
}

func newMemStorage() *memStorage {
	return &memStorage{data: make(map[string]map[string]string)}
}

func (m *memStorage) Get(_ context.Context, contextID, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return "", false, m.err
	}
	v, ok := m.data[contextID][key]
	return v, ok, nil
}

func (m *memStorage) Set(_ context.Context, contextID, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.write(contextID, map[string]string{key: value})
}

func (m *memStorage) SetMany(_ context.Context, contextID string, values map[string]string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.write(contextID, values)
}

func (m *memStorage) write(contextID string, values map[string]string) error {
	if m.err != nil {
		return m.err
	}
	if _, ok := values[m.failKey]; ok && m.failKey != "" {
		return fmt.Errorf("write %s: connection reset", m.failKey)
	}
	if m.data[contextID] == nil {
		m.data[contextID] = make(map[string]string)
	}
	for k, v := range values {
		m.data[contextID][k] = v
	}
	return nil
}

func (m *memStorage) Touch(context.Context, string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.touched++
	return nil
}

func (m *memStorage) Delete(_ context.Context, contextID string, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, k := range keys {
		delete(m.data[contextID], k)
	}
	return nil
}

type stubAuthBackend struct {
	mu            sync.Mutex
	loginFn       func(ctx context.Context, login, passwordHash string) (*domain.Session, error)
	validateFn    func(ctx context.Context, token string) error
	validateCalls int
}

func (s *stubAuthBackend) Login(ctx context.Context, login, passwordHash string) (*domain.Session, error) {
	return s.loginFn(ctx, login, passwordHash)
}

func (s *stubAuthBackend) ValidateToken(ctx context.Context, token string) error {
	s.mu.Lock()
	s.validateCalls++
	s.mu.Unlock()
	return s.validateFn(ctx, token)
}

type countingMetrics struct {
	mu            sync.Mutex
	logins        map[string]int
	forcedLogouts int
	stale         int
	prints        map[string]int
}

func newCountingMetrics() *countingMetrics {
	return &countingMetrics{logins: map[string]int{}, prints: map[string]int{}}
}

func (c *countingMetrics) LoginAttempt(result string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.logins[result]++
}

func (c *countingMetrics) ForcedLogout() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.forcedLogouts++
}

func (c *countingMetrics) StaleResponse(string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stale++
}

func (c *countingMetrics) PrintFile(kind, result string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.prints[kind+":"+result]++
}

func browserCtx(id string) context.Context {
	return domain.WithBrowserContext(context.Background(), id)
}

func storedSession(t *testing.T, s *memStorage, id string, session domain.Session) {
	t.Helper()
	raw, err := json.Marshal(session)
	if err != nil {
		t.Fatalf("marshal session: %v", err)
	}
	_ = s.Set(context.Background(), id, StorageKeyUser, string(raw))
	_ = s.Set(context.Background(), id, StorageKeyToken, session.Token)
}

func TestHashPassword(t *testing.T) {
	// sha256("1234")
	want := "03ac674216f3e15c761ee1a5e255f067953623c8b388b4459e13f978d7c846f4"
	if got := HashPassword("1234"); got != want {
		t.Fatalf("expected %s, got %s", want, got)
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	storage := newMemStorage()
	metrics := newCountingMetrics()
	backend := &stubAuthBackend{
		loginFn: func(_ context.Context, login, hash string) (*domain.Session, error) {
			if login != "0001" || hash != HashPassword("secret") {
				t.Fatalf("unexpected credentials: %s %s", login, hash)
			}
			return &domain.Session{UserID: 7, Login: login, Name: "Ana", Token: "tok", Profile: domain.ProfileAdmin}, nil
		},
	}
	svc := NewAuthService(backend, storage, metrics, zerolog.Nop())
	ctx := browserCtx("ctx-1")

	if !svc.Login(ctx, "0001", "secret") {
		t.Fatalf("expected login to succeed")
	}
	if svc.State(ctx) != domain.AuthAuthenticated {
		t.Fatalf("expected authenticated, got %s", svc.State(ctx))
	}
	if tok, ok := svc.Token(ctx); !ok || tok != "tok" {
		t.Fatalf("unexpected token %q %v", tok, ok)
	}
	if v, _, _ := storage.Get(ctx, "ctx-1", StorageKeyToken); v != "tok" {
		t.Fatalf("token not persisted: %q", v)
	}
	raw, ok, _ := storage.Get(ctx, "ctx-1", StorageKeyUser)
	if !ok {
		t.Fatalf("user not persisted")
	}
	var stored domain.Session
	if err := json.Unmarshal([]byte(raw), &stored); err != nil || stored.UserID != 7 || stored.Name != "Ana" {
		t.Fatalf("unexpected stored user %q (%v)", raw, err)
	}
	if metrics.logins[loginResultSuccess] != 1 {
		t.Fatalf("expected one successful login, got %v", metrics.logins)
	}
}

func TestAuthService_Login_FailuresReturnFalse(t *testing.T) {
	cases := map[string]error{
		"logical":   &domain.LogicalError{Endpoint: "/login", Message: "Usuário ou senha inválidos"},
		"denied":    domain.ErrInvalidCredentials,
		"transport": fmt.Errorf("%w: dial tcp", domain.ErrBackendUnavailable),
	}
	for name, loginErr := range cases {
		t.Run(name, func(t *testing.T) {
			storage := newMemStorage()
			backend := &stubAuthBackend{
				loginFn: func(context.Context, string, string) (*domain.Session, error) { return nil, loginErr },
			}
			svc := NewAuthService(backend, storage, nil, zerolog.Nop())
			ctx := browserCtx("ctx-1")

			if svc.Login(ctx, "0001", "bad") {
				t.Fatalf("expected login to fail")
			}
			if _, ok := svc.Current(ctx); ok {
				t.Fatalf("no session expected")
			}
			if _, ok, _ := storage.Get(ctx, "ctx-1", StorageKeyUser); ok {
				t.Fatalf("nothing must be persisted on failure")
			}
		})
	}
}

func TestAuthService_Initialize_NoStoredUser(t *testing.T) {
	backend := &stubAuthBackend{validateFn: func(context.Context, string) error { return nil }}
	svc := NewAuthService(backend, newMemStorage(), nil, zerolog.Nop())

	if got := svc.Initialize(browserCtx("ctx-1")); got != domain.AuthAnonymous {
		t.Fatalf("expected anonymous, got %s", got)
	}
	if backend.validateCalls != 0 {
		t.Fatalf("no validation expected without a stored user")
	}
}

func TestAuthService_Initialize_ValidStoredUser(t *testing.T) {
	storage := newMemStorage()
	storedSession(t, storage, "ctx-1", domain.Session{UserID: 3, Login: "0003", Token: "good"})
	backend := &stubAuthBackend{validateFn: func(_ context.Context, token string) error {
		if token != "good" {
			t.Fatalf("unexpected token %q", token)
		}
		return nil
	}}
	svc := NewAuthService(backend, storage, nil, zerolog.Nop())
	ctx := browserCtx("ctx-1")

	if got := svc.Initialize(ctx); got != domain.AuthAuthenticated {
		t.Fatalf("expected authenticated, got %s", got)
	}
	s, ok := svc.Current(ctx)
	if !ok || s.UserID != 3 {
		t.Fatalf("unexpected session %+v", s)
	}

	// Cached: no second validation.
	svc.Initialize(ctx)
	if backend.validateCalls != 1 {
		t.Fatalf("expected one validation, got %d", backend.validateCalls)
	}
}

func TestAuthService_Initialize_InvalidTokenDiscardsSession(t *testing.T) {
	storage := newMemStorage()
	storedSession(t, storage, "ctx-1", domain.Session{UserID: 3, Token: "expired"})
	backend := &stubAuthBackend{validateFn: func(context.Context, string) error {
		return &domain.LogicalError{Endpoint: "/validatetoken"}
	}}
	svc := NewAuthService(backend, storage, nil, zerolog.Nop())
	ctx := browserCtx("ctx-1")

	if got := svc.Initialize(ctx); got != domain.AuthAnonymous {
		t.Fatalf("expected anonymous, got %s", got)
	}
	if _, ok, _ := storage.Get(ctx, "ctx-1", StorageKeyUser); ok {
		t.Fatalf("stored user should be discarded")
	}
}

func TestAuthService_Initialize_ConcurrentCallersShareValidation(t *testing.T) {
	storage := newMemStorage()
	storedSession(t, storage, "ctx-1", domain.Session{Token: "good"})
	release := make(chan struct{})
	backend := &stubAuthBackend{validateFn: func(context.Context, string) error {
		<-release
		return nil
	}}
	svc := NewAuthService(backend, storage, nil, zerolog.Nop())
	ctx := browserCtx("ctx-1")

	var wg sync.WaitGroup
	results := make([]domain.AuthState, 4)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = svc.Initialize(ctx)
		}(i)
	}
	close(release)
	wg.Wait()

	for _, r := range results {
		if r != domain.AuthAuthenticated {
			t.Fatalf("unexpected states %v", results)
		}
	}
}

func TestAuthService_HandleUnauthorizedForcesLogout(t *testing.T) {
	storage := newMemStorage()
	metrics := newCountingMetrics()
	backend := &stubAuthBackend{
		loginFn: func(context.Context, string, string) (*domain.Session, error) {
			return &domain.Session{Token: "tok"}, nil
		},
	}
	svc := NewAuthService(backend, storage, metrics, zerolog.Nop())
	ctx := browserCtx("ctx-1")
	_ = svc.SetTheme(ctx, domain.ThemeDark)

	if !svc.Login(ctx, "0001", "x") {
		t.Fatalf("login should succeed")
	}
	svc.HandleUnauthorized(ctx)

	if svc.State(ctx) != domain.AuthAnonymous {
		t.Fatalf("expected anonymous after forced logout")
	}
	if _, ok := svc.Token(ctx); ok {
		t.Fatalf("token must be gone after forced logout")
	}
	if _, ok, _ := storage.Get(ctx, "ctx-1", StorageKeyToken); ok {
		t.Fatalf("stored token must be cleared")
	}
	if svc.Theme(ctx) != domain.ThemeDark {
		t.Fatalf("preferences must survive logout")
	}
	if metrics.forcedLogouts != 1 {
		t.Fatalf("expected one forced logout")
	}
}

func TestAuthService_ContextsAreIsolated(t *testing.T) {
	backend := &stubAuthBackend{
		loginFn: func(context.Context, string, string) (*domain.Session, error) {
			return &domain.Session{Token: "tok-a"}, nil
		},
	}
	svc := NewAuthService(backend, newMemStorage(), nil, zerolog.Nop())

	svc.Login(browserCtx("a"), "0001", "x")
	if _, ok := svc.Token(browserCtx("b")); ok {
		t.Fatalf("context b must not see context a's session")
	}
}

func TestAuthService_ValidateToken_FailClosed(t *testing.T) {
	backend := &stubAuthBackend{validateFn: func(context.Context, string) error {
		return errors.New("boom")
	}}
	svc := NewAuthService(backend, newMemStorage(), nil, zerolog.Nop())
	ctx := browserCtx("ctx-1")

	if svc.ValidateToken(ctx, "") {
		t.Fatalf("no token must validate as false")
	}
	if svc.ValidateToken(ctx, "abc") {
		t.Fatalf("backend errors must validate as false")
	}
}

func TestAuthService_Preferences(t *testing.T) {
	svc := NewAuthService(&stubAuthBackend{}, newMemStorage(), nil, zerolog.Nop())
	ctx := browserCtx("ctx-1")

	if svc.Theme(ctx) != domain.ThemeLight {
		t.Fatalf("default theme must be light")
	}
	_ = svc.SetTheme(ctx, "neon")
	if svc.Theme(ctx) != domain.ThemeLight {
		t.Fatalf("unknown themes fall back to light")
	}

	if _, ok := svc.SelectedEmpresa(ctx); ok {
		t.Fatalf("no company selected yet")
	}
	if err := svc.SetSelectedEmpresa(ctx, domain.SelectedEmpresa{ID: "4", Nome: "Sorte Já"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	e, ok := svc.SelectedEmpresa(ctx)
	if !ok || e.ID != "4" || e.Nome != "Sorte Já" {
		t.Fatalf("unexpected selection %+v", e)
	}
}

func TestAuthService_Login_FailedTokenWriteLeavesNothingStored(t *testing.T) {
	storage := newMemStorage()
	storage.failKey = StorageKeyToken
	backend := &stubAuthBackend{
		loginFn: func(context.Context, string, string) (*domain.Session, error) {
			return &domain.Session{UserID: 7, Token: "tok"}, nil
		},
		validateFn: func(context.Context, string) error { return nil },
	}
	metrics := newCountingMetrics()
	svc := NewAuthService(backend, storage, metrics, zerolog.Nop())
	ctx := browserCtx("ctx-1")

	if svc.Login(ctx, "0001", "secret") {
		t.Fatalf("login must fail when the session cannot be persisted")
	}
	if _, ok, _ := storage.Get(ctx, "ctx-1", StorageKeyUser); ok {
		t.Fatalf("user must not be stored without its token")
	}
	if metrics.logins[loginResultError] != 1 {
		t.Fatalf("expected one errored login, got %v", metrics.logins)
	}

	restarted := NewAuthService(backend, storage, nil, zerolog.Nop())
	if got := restarted.Initialize(ctx); got != domain.AuthAnonymous {
		t.Fatalf("expected anonymous after restart, got %s", got)
	}
	if backend.validateCalls != 0 {
		t.Fatalf("nothing stored means nothing to revalidate")
	}
}

func TestAuthService_AnonymousContextsAreNotRetained(t *testing.T) {
	backend := &stubAuthBackend{validateFn: func(context.Context, string) error { return nil }}
	svc := NewAuthService(backend, newMemStorage(), nil, zerolog.Nop())

	for i := 0; i < 1000; i++ {
		ctx := browserCtx(fmt.Sprintf("visitor-%d", i))
		if got := svc.Initialize(ctx); got != domain.AuthAnonymous {
			t.Fatalf("expected anonymous, got %s", got)
		}
		svc.Current(ctx)
		svc.Token(ctx)
	}

	svc.mu.Lock()
	defer svc.mu.Unlock()
	if n := len(svc.entries); n != 0 {
		t.Fatalf("expected no retained entries, got %d", n)
	}
}

func TestAuthService_IdleEntriesAreRevalidatedAndSwept(t *testing.T) {
	storage := newMemStorage()
	backend := &stubAuthBackend{
		loginFn: func(_ context.Context, login, _ string) (*domain.Session, error) {
			return &domain.Session{Login: login, Token: "tok-" + login}, nil
		},
		validateFn: func(context.Context, string) error { return nil },
	}
	clock := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	svc := NewAuthService(backend, storage, nil, zerolog.Nop(), WithIdleTimeout(30*time.Minute))
	svc.now = func() time.Time { return clock }

	a := browserCtx("a")
	if !svc.Login(a, "0001", "x") {
		t.Fatalf("login should succeed")
	}

	clock = clock.Add(31 * time.Minute)
	if got := svc.State(a); got != domain.AuthUnknown {
		t.Fatalf("idle entry must be forgotten, got %s", got)
	}
	if got := svc.Initialize(a); got != domain.AuthAuthenticated {
		t.Fatalf("stored session must be restored, got %s", got)
	}
	if backend.validateCalls != 1 {
		t.Fatalf("restoring must revalidate, got %d calls", backend.validateCalls)
	}
	if storage.touched != 1 {
		t.Fatalf("restoring must refresh the stored expiry, got %d", storage.touched)
	}

	b := browserCtx("b")
	clock = clock.Add(31 * time.Minute)
	svc.Login(b, "0002", "x")

	svc.mu.Lock()
	_, kept := svc.entries["a"]
	n := len(svc.entries)
	svc.mu.Unlock()
	if kept || n != 1 {
		t.Fatalf("expected only b after sweep, a kept=%v entries=%d", kept, n)
	}
}

func TestAuthService_SessionTTLCapsActiveEntries(t *testing.T) {
	backend := &stubAuthBackend{
		loginFn: func(context.Context, string, string) (*domain.Session, error) {
			return &domain.Session{Token: "tok"}, nil
		},
	}
	clock := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	svc := NewAuthService(backend, newMemStorage(), nil, zerolog.Nop(),
		WithSessionTTL(time.Hour), WithIdleTimeout(time.Hour))
	svc.now = func() time.Time { return clock }
	ctx := browserCtx("ctx-1")
	svc.Login(ctx, "0001", "x")

	// Active every 20 minutes, yet trusted for one TTL only.
	for i := 0; i < 3; i++ {
		clock = clock.Add(20 * time.Minute)
		svc.Token(ctx)
	}
	clock = clock.Add(time.Minute)
	if _, ok := svc.Token(ctx); ok {
		t.Fatalf("entry must expire after the session TTL")
	}
}

func TestAuthService_RevalidationDoesNotOverwriteConcurrentLogin(t *testing.T) {
	storage := newMemStorage()
	storedSession(t, storage, "ctx-1", domain.Session{Token: "old"})
	started := make(chan struct{})
	release := make(chan struct{})
	backend := &stubAuthBackend{
		loginFn: func(context.Context, string, string) (*domain.Session, error) {
			return &domain.Session{UserID: 9, Token: "new"}, nil
		},
		validateFn: func(_ context.Context, token string) error {
			if token == "old" {
				close(started)
				<-release
				return &domain.LogicalError{Endpoint: "/validatetoken"}
			}
			return nil
		},
	}
	svc := NewAuthService(backend, storage, nil, zerolog.Nop())
	ctx := browserCtx("ctx-1")

	result := make(chan domain.AuthState)
	go func() { result <- svc.Initialize(ctx) }()
	<-started

	if !svc.Login(ctx, "0009", "x") {
		t.Fatalf("login should succeed")
	}
	close(release)

	if got := <-result; got != domain.AuthAuthenticated {
		t.Fatalf("revalidation must report the newer login, got %s", got)
	}
	if tok, ok := svc.Token(ctx); !ok || tok != "new" {
		t.Fatalf("expected the new session to survive, got %q %v", tok, ok)
	}
	if v, ok, _ := storage.Get(ctx, "ctx-1", StorageKeyToken); !ok || v != "new" {
		t.Fatalf("stored token must be the new one, got %q %v", v, ok)
	}
}

func TestAuthService_HandleForbiddenKeepsSessionAndLogs(t *testing.T) {
	backend := &stubAuthBackend{
		loginFn: func(context.Context, string, string) (*domain.Session, error) {
			return &domain.Session{Login: "0042", Token: "tok", Profile: "COBRADOR"}, nil
		},
	}
	var buf bytes.Buffer
	svc := NewAuthService(backend, newMemStorage(), nil, zerolog.New(&buf))
	ctx := browserCtx("ctx-1")
	svc.Login(ctx, "0042", "x")
	buf.Reset()

	svc.HandleForbidden(ctx)

	if svc.State(ctx) != domain.AuthAuthenticated {
		t.Fatalf("a 403 must not end the session")
	}
	out := buf.String()
	for _, want := range []string{`"level":"warn"`, `"browser_context":"ctx-1"`, `"login":"0042"`, `"profile":"COBRADOR"`} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %s in log line %s", want, out)
		}
	}
}
