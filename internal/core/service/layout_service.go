package service

import (
	"context"
	"errors"
	"hash/fnv"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/multisorteios/rifa-admin/internal/core/domain"
	"github.com/multisorteios/rifa-admin/internal/core/ports"
)

const (
	printCodeLength = 5
	layoutLockCount = 64
	maxHistory      = 50

	printResultOK     = "ok"
	printResultFailed = "failed"
)

// SessionSource yields the authenticated session of the calling context.
type SessionSource interface {
	Current(ctx context.Context) (*domain.Session, bool)
}

// LayoutService drives the print-layout positioning editor. The editor
// state of each browser context lives in the LayoutRepository; every
// operation on one context is serialized.
type LayoutService struct {
	backend  ports.LayoutBackend
	repo     ports.LayoutRepository
	auditor  ports.PrintAuditor
	history  ports.PrintAuditRepository
	sessions SessionSource
	ui       *UIStore
	metrics  ports.Metrics
	logger   zerolog.Logger
	now      func() time.Time

	locks [layoutLockCount]sync.Mutex
}

func NewLayoutService(
	backend ports.LayoutBackend,
	repo ports.LayoutRepository,
	auditor ports.PrintAuditor,
	history ports.PrintAuditRepository,
	sessions SessionSource,
	ui *UIStore,
	metrics ports.Metrics,
	logger zerolog.Logger,
) *LayoutService {
	if metrics == nil {
		metrics = ports.NopMetrics{}
	}
	return &LayoutService{
		backend:  backend,
		repo:     repo,
		auditor:  auditor,
		history:  history,
		sessions: sessions,
		ui:       ui,
		metrics:  metrics,
		logger:   logger,
		now:      time.Now,
	}
}

func (s *LayoutService) lock(ctx context.Context) func() {
	h := fnv.New32a()
	_, _ = h.Write([]byte(domain.BrowserContextFrom(ctx)))
	m := &s.locks[h.Sum32()%layoutLockCount]
	m.Lock()
	return m.Unlock
}

func (s *LayoutService) session(ctx context.Context) (*domain.Session, error) {
	session, ok := s.sessions.Current(ctx)
	if !ok || session.Token == "" {
		s.ui.Notify(ctx, domain.NotifyError, "Token de autenticação não disponível. Faça login novamente.")
		return nil, domain.ErrUnauthenticated
	}
	return session, nil
}

// Load fetches the saved layout for the orientation and position count and
// replaces the editor state with it.
func (s *LayoutService) Load(ctx context.Context, o domain.Orientation, count int) (*domain.PrintLayout, error) {
	if count < domain.MinPositions || count > domain.MaxPositions {
		s.ui.Notify(ctx, domain.NotifyWarn, "Selecione a quantidade de posições (1 a 8).")
		return nil, domain.ErrInvalidPositionCount
	}
	if !o.Valid() {
		return nil, &domain.ValidationError{Fields: map[string]string{"orientation": "Orientação inválida"}}
	}
	session, err := s.session(ctx)
	if err != nil {
		return nil, err
	}

	unlock := s.lock(ctx)
	defer unlock()

	layout, err := query(ctx, s.ui, "Não foi possível conectar ao servidor para carregar o layout.", func(ctx context.Context) (*domain.PrintLayout, error) {
		return s.backend.LoadLayout(ctx, session.Token, o, count)
	})
	if err != nil {
		return nil, err
	}
	layout.MarkSubmitted("")

	if err := s.repo.Save(ctx, domain.BrowserContextFrom(ctx), layout); err != nil {
		return nil, err
	}
	s.ui.Notify(ctx, domain.NotifySuccess, "Layout carregado com sucesso!")
	return layout, nil
}

// Drag moves one token of a pair by the pointer delta.
func (s *LayoutService) Drag(ctx context.Context, pair int, token domain.PrintToken, dx, dy float64) (*domain.PrintLayout, error) {
	unlock := s.lock(ctx)
	defer unlock()

	id := domain.BrowserContextFrom(ctx)
	layout, err := s.repo.Load(ctx, id)
	if err != nil {
		return nil, err
	}
	if layout == nil {
		return nil, domain.ErrLayoutNotConfigured
	}
	if err := layout.Drag(pair, token, dx, dy); err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, id, layout); err != nil {
		return nil, err
	}
	return layout, nil
}

// exportable checks the editor can be submitted and returns the rounded positions.
func (s *LayoutService) exportable(ctx context.Context, layout *domain.PrintLayout) ([]domain.PrintPosition, error) {
	positions, err := layout.Export()
	switch {
	case errors.Is(err, domain.ErrLayoutNotConfigured):
		s.ui.Notify(ctx, domain.NotifyWarn, "Por favor, configure o layout antes de gerar o arquivo.")
	case errors.Is(err, domain.ErrIncompleteLayout):
		s.ui.Notify(ctx, domain.NotifyError, "Erro: Posições de todos os Canhotos/Bilhetes não foram encontradas.")
	}
	return positions, err
}

// SubmitForPrintTest generates the test print PDF and returns its link.
func (s *LayoutService) SubmitForPrintTest(ctx context.Context) (string, error) {
	unlock := s.lock(ctx)
	defer unlock()

	id := domain.BrowserContextFrom(ctx)
	layout, err := s.repo.Load(ctx, id)
	if err != nil {
		return "", err
	}
	positions, err := s.exportable(ctx, layout)
	if err != nil {
		return "", err
	}
	session, err := s.session(ctx)
	if err != nil {
		return "", err
	}

	link, err := query(ctx, s.ui, "Não foi possível conectar ao servidor para gerar o arquivo de teste.", func(ctx context.Context) (string, error) {
		return s.backend.GeneratePrintTest(ctx, session.Token, positions)
	})
	if errors.Is(err, domain.ErrMissingDownloadLink) {
		s.ui.Notify(ctx, domain.NotifyError, "Erro: Link de download não encontrado na resposta do teste de impressão.")
	}
	s.audit(ctx, session, domain.PrintJobTest, layout.Orientation, positions, "", link, err)
	if err != nil {
		return "", err
	}

	layout.MarkSubmitted(link)
	if err := s.repo.Save(ctx, id, layout); err != nil {
		return "", err
	}
	s.ui.Notify(ctx, domain.NotifySuccess, "Link para o arquivo de teste de impressão gerado. Clique no link abaixo para baixar.")
	return link, nil
}

// SubmitForPrint generates the production print file. The operator code
// must have exactly five characters; it is checked before any network call.
func (s *LayoutService) SubmitForPrint(ctx context.Context, code string) error {
	unlock := s.lock(ctx)
	defer unlock()

	id := domain.BrowserContextFrom(ctx)
	layout, err := s.repo.Load(ctx, id)
	if err != nil {
		return err
	}
	if layout == nil || layout.State == domain.EditorUnconfigured {
		s.ui.Notify(ctx, domain.NotifyWarn, "Por favor, configure o layout antes de gerar o arquivo.")
		return domain.ErrLayoutNotConfigured
	}
	if utf8.RuneCountInString(code) != printCodeLength {
		s.ui.Notify(ctx, domain.NotifyWarn, "O código deve ter 5 caracteres.")
		return domain.ErrInvalidPrintCode
	}
	positions, err := s.exportable(ctx, layout)
	if err != nil {
		return err
	}
	session, err := s.session(ctx)
	if err != nil {
		return err
	}

	err = mutate(ctx, s.ui, "Arquivo de impressão gerado com sucesso!", "Não foi possível conectar ao servidor para gerar o arquivo de impressão.", func(ctx context.Context) error {
		return s.backend.GeneratePrint(ctx, session.Token, code, positions)
	})
	s.audit(ctx, session, domain.PrintJobProduction, layout.Orientation, positions, code, "", err)
	if err != nil {
		return err
	}

	layout.MarkSubmitted("")
	return s.repo.Save(ctx, id, layout)
}

// Reset discards the editor state.
func (s *LayoutService) Reset(ctx context.Context) error {
	unlock := s.lock(ctx)
	defer unlock()
	return s.repo.Delete(ctx, domain.BrowserContextFrom(ctx))
}

// Current returns the editor state; an empty context reads as unconfigured.
func (s *LayoutService) Current(ctx context.Context) (*domain.PrintLayout, error) {
	layout, err := s.repo.Load(ctx, domain.BrowserContextFrom(ctx))
	if err != nil {
		return nil, err
	}
	if layout == nil {
		return &domain.PrintLayout{State: domain.EditorUnconfigured, Positions: []domain.PositionPair{}}, nil
	}
	return layout, nil
}

// History lists the latest print submissions of the context, newest first.
func (s *LayoutService) History(ctx context.Context, limit int64) ([]domain.PrintJob, error) {
	if limit <= 0 || limit > maxHistory {
		limit = maxHistory
	}
	jobs, err := s.history.ListByContext(ctx, domain.BrowserContextFrom(ctx), limit)
	if err != nil {
		return nil, err
	}
	if jobs == nil {
		jobs = []domain.PrintJob{}
	}
	return jobs, nil
}

func (s *LayoutService) audit(ctx context.Context, session *domain.Session, kind string, o domain.Orientation, positions []domain.PrintPosition, code, link string, callErr error) {
	result := printResultOK
	job := domain.PrintJob{
		ID:             uuid.NewString(),
		BrowserContext: domain.BrowserContextFrom(ctx),
		UserID:         session.UserID,
		Login:          session.Login,
		Kind:           kind,
		Orientation:    o,
		Positions:      positions,
		Code:           code,
		Link:           link,
		Success:        callErr == nil,
		SubmittedAt:    s.now().UTC(),
	}
	if callErr != nil {
		result = printResultFailed
		job.ErrorMessage = callErr.Error()
	}
	s.metrics.PrintFile(kind, result)
	s.auditor.Record(job)

	s.logger.Info().
		Str("browser_context", job.BrowserContext).
		Str("kind", kind).
		Str("result", result).
		Int("positions", len(positions)).
		Msg("print file submitted")
}
