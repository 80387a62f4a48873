package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/multisorteios/rifa-admin/internal/api/handler"
	"github.com/multisorteios/rifa-admin/internal/api/middleware"
	"github.com/multisorteios/rifa-admin/internal/core/service"
	"github.com/multisorteios/rifa-admin/internal/infrastructure/backend"
)

type memStorage struct {
	mu   sync.Mutex
	data map[string]map[string]string
}

func newMemStorage() *memStorage {
	return &memStorage{data: make(map[string]map[string]string)}
}

func (m *memStorage) Get(_ context.Context, contextID, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[contextID][key]
	return v, ok, nil
}

func (m *memStorage) Set(ctx context.Context, contextID, key, value string) error {
	return m.SetMany(ctx, contextID, map[string]string{key: value})
}

func (m *memStorage) SetMany(_ context.Context, contextID string, values map[string]string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.data[contextID] == nil {
		m.data[contextID] = make(map[string]string)
	}
	for k, v := range values {
		m.data[contextID][k] = v
	}
	return nil
}

func (m *memStorage) Touch(context.Context, string) error { return nil }

func (m *memStorage) Delete(_ context.Context, contextID string, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, k := range keys {
		delete(m.data[contextID], k)
	}
	return nil
}

// fakeBackend answers the handful of endpoints the flows below touch.
type fakeBackend struct {
	profile string
	revoked atomic.Bool
}

func (f *fakeBackend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	switch r.URL.Path {
	case "/login":
		var body struct{ Login, Password string }
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body.Password != service.HashPassword("secret") {
			_, _ = w.Write([]byte(`{"success":false,"errorMessage":"Usuário ou senha inválidos"}`))
			return
		}
		_, _ = w.Write([]byte(`{"success":true,"data":{"userId":1,"login":"` + body.Login +
			`","name":"Operador","token":"tok-1","profile":"` + f.profile + `"}}`))
	case "/validatetoken":
		_, _ = w.Write([]byte(`{"success":true}`))
	case "/listarvendedor":
		if f.revoked.Load() || r.Header.Get("Authorization") != "Bearer tok-1" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_, _ = w.Write([]byte(`{"success":true,"data":{"content":[{"id":1,"nome":"Ana","ativo":true}],"totalPages":1,"totalElements":1,"number":0}}`))
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

type testApp struct {
	t       *testing.T
	handler http.Handler
	cookie  *http.Cookie
	backend *fakeBackend
	storage *memStorage
}

func newTestApp(t *testing.T, profile string) *testApp {
	t.Helper()

	fb := &fakeBackend{profile: profile}
	srv := httptest.NewServer(fb)
	t.Cleanup(srv.Close)

	log := zerolog.Nop()
	storage := newMemStorage()
	client := backend.New(srv.URL)
	ui := service.NewUIStore()
	auth := service.NewAuthService(client, storage, nil, log)
	client.SetTokenSource(auth)
	client.SetUnauthorizedHook(auth.HandleUnauthorized)

	e := NewRouter(Dependencies{
		Sessions:   auth,
		UI:         ui,
		People:     service.NewPeopleService(client, ui, nil, log),
		Cookie:     middleware.BrowserContextConfig{Secret: "test-secret"},
		Health:     map[string]handler.DependencyCheck{"backend": client.Ping},
		Logger:     log,
		Registerer: prometheus.NewRegistry(),
	})
	return &testApp{t: t, handler: e, backend: fb, storage: storage}
}

func (a *testApp) do(method, target, body string) *httptest.ResponseRecorder {
	a.t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if a.cookie != nil {
		req.AddCookie(a.cookie)
	}
	rec := httptest.NewRecorder()
	a.handler.ServeHTTP(rec, req)

	for _, ck := range rec.Result().Cookies() {
		if ck.Name == middleware.ContextCookie {
			a.cookie = ck
		}
	}
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("invalid json %q: %v", rec.Body.String(), err)
	}
	return out
}

func TestRouter_LoginThenListSellers(t *testing.T) {
	app := newTestApp(t, "ADMIN")

	rec := app.do(http.MethodGet, "/vendedores", "")
	if rec.Code != http.StatusUnauthorized || decode(t, rec)["redirect"] != "/login" {
		t.Fatalf("anonymous list: expected 401 to /login, got %d %s", rec.Code, rec.Body.String())
	}
	if app.cookie == nil {
		t.Fatal("expected a browser context cookie")
	}

	rec = app.do(http.MethodPost, "/auth/login", `{"login":"1234","password":"secret"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("login: expected 200, got %d %s", rec.Code, rec.Body.String())
	}
	if got := decode(t, rec)["state"]; got != "authenticated" {
		t.Fatalf("login state: %v", got)
	}

	rec = app.do(http.MethodGet, "/vendedores?page=0&size=10", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("list: expected 200, got %d %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), `"nome":"Ana"`) {
		t.Fatalf("unexpected list body: %s", rec.Body.String())
	}

	rec = app.do(http.MethodGet, "/cobradores/current", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("admin collectors: expected 200, got %d", rec.Code)
	}
}

func TestRouter_WrongPassword(t *testing.T) {
	app := newTestApp(t, "ADMIN")

	rec := app.do(http.MethodPost, "/auth/login", `{"login":"1234","password":"nope"}`)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if decode(t, rec)["error"] != "Credenciais inválidas" {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestRouter_BackendRejectsToken_ForcesLogout(t *testing.T) {
	app := newTestApp(t, "ADMIN")

	if rec := app.do(http.MethodPost, "/auth/login", `{"login":"1234","password":"secret"}`); rec.Code != http.StatusOK {
		t.Fatalf("login: %d %s", rec.Code, rec.Body.String())
	}

	app.backend.revoked.Store(true)

	rec := app.do(http.MethodGet, "/vendedores", "")
	if rec.Code != http.StatusUnauthorized || decode(t, rec)["redirect"] != "/login" {
		t.Fatalf("expected 401 to /login, got %d %s", rec.Code, rec.Body.String())
	}

	rec = app.do(http.MethodGet, "/auth/session", "")
	body := decode(t, rec)
	if body["state"] != "anonymous" || body["redirect"] != "/login" {
		t.Fatalf("expected anonymous session after forced logout: %s", rec.Body.String())
	}

	for id, kv := range app.storage.data {
		if _, ok := kv[service.StorageKeyToken]; ok {
			t.Fatalf("token of context %s survived the forced logout", id)
		}
	}
}

func TestRouter_CollectorsRequireAdmin(t *testing.T) {
	app := newTestApp(t, "VENDEDOR")

	if rec := app.do(http.MethodPost, "/auth/login", `{"login":"1234","password":"secret"}`); rec.Code != http.StatusOK {
		t.Fatalf("login: %d %s", rec.Code, rec.Body.String())
	}

	rec := app.do(http.MethodGet, "/cobradores/current", "")
	if rec.Code != http.StatusForbidden || decode(t, rec)["redirect"] != "/acessonegado" {
		t.Fatalf("expected 403 to /acessonegado, got %d %s", rec.Code, rec.Body.String())
	}
}

func TestRouter_ThemePreferenceIsPublic(t *testing.T) {
	app := newTestApp(t, "ADMIN")

	rec := app.do(http.MethodPut, "/preferences/theme", `{"theme":"light"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("set theme: %d %s", rec.Code, rec.Body.String())
	}
	rec = app.do(http.MethodGet, "/preferences/theme", "")
	if decode(t, rec)["theme"] != "light" {
		t.Fatalf("theme not persisted: %s", rec.Body.String())
	}
}

func TestRouter_Health(t *testing.T) {
	app := newTestApp(t, "ADMIN")

	if rec := app.do(http.MethodGet, "/health", ""); rec.Code != http.StatusOK {
		t.Fatalf("liveness: %d", rec.Code)
	}
	rec := app.do(http.MethodGet, "/health/ready", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("readiness: %d %s", rec.Code, rec.Body.String())
	}
	if app.cookie != nil {
		t.Fatal("operational routes must not issue a browser context")
	}
}
