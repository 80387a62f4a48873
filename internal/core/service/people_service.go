package service

import (
	"context"
	"strings"
	"unicode"

	"github.com/rs/zerolog"

	"github.com/multisorteios/rifa-admin/internal/core/domain"
	"github.com/multisorteios/rifa-admin/internal/core/ports"
)

// PeopleService manages sellers (vendedores) and collectors (cobradores).
type PeopleService struct {
	backend    ports.PeopleBackend
	ui         *UIStore
	vendedores *ControllerRegistry[domain.Vendedor]
	cobradores *ControllerRegistry[domain.Cobrador]
	logger     zerolog.Logger
}

func NewPeopleService(backend ports.PeopleBackend, ui *UIStore, metrics ports.Metrics, logger zerolog.Logger) *PeopleService {
	return &PeopleService{
		backend:    backend,
		ui:         ui,
		vendedores: NewControllerRegistry[domain.Vendedor]("vendedores", ui, metrics),
		cobradores: NewControllerRegistry[domain.Cobrador]("cobradores", ui, metrics),
		logger:     logger,
	}
}

// DigitsOnly strips everything but digits, e.g. "(11) 91234-5678" -> "11912345678".
func DigitsOnly(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) {
			return r
		}
		return -1
	}, s)
}

func (s *PeopleService) ListVendedores(ctx context.Context, f domain.PersonFilter, p domain.PageRequest) (*domain.PagedResult[domain.Vendedor], error) {
	return s.vendedores.For(ctx).Fetch(ctx, func(ctx context.Context) (*domain.PagedResult[domain.Vendedor], error) {
		return s.backend.ListVendedores(ctx, f, p)
	})
}

// CurrentVendedores returns the last accepted sellers page of the context.
func (s *PeopleService) CurrentVendedores(ctx context.Context) *domain.PagedResult[domain.Vendedor] {
	pc, ok := s.vendedores.Lookup(ctx)
	if !ok {
		return nil
	}
	return pc.Current()
}

func (s *PeopleService) GetVendedor(ctx context.Context, id int64) (*domain.Vendedor, error) {
	return query(ctx, s.ui, "Erro ao carregar vendedor", func(ctx context.Context) (*domain.Vendedor, error) {
		return s.backend.GetVendedor(ctx, id)
	})
}

// SaveVendedor creates (ID 0) or updates a seller.
func (s *PeopleService) SaveVendedor(ctx context.Context, v domain.Vendedor) error {
	v.Whatsapp = DigitsOnly(v.Whatsapp)
	err := mutate(ctx, s.ui, "Vendedor salvo com sucesso", "Erro ao salvar vendedor", func(ctx context.Context) error {
		return s.backend.SaveVendedor(ctx, v)
	})
	if err == nil {
		s.logger.Info().Int64("vendedor_id", v.ID).Str("login", v.Login).Msg("vendedor saved")
	}
	return err
}

func (s *PeopleService) VendedorOptions(ctx context.Context) ([]domain.IdLabel, error) {
	return query(ctx, s.ui, "Erro ao carregar vendedores.", s.backend.ListVendedorIDLabels)
}

func (s *PeopleService) ListCobradores(ctx context.Context, f domain.PersonFilter, p domain.PageRequest) (*domain.PagedResult[domain.Cobrador], error) {
	return s.cobradores.For(ctx).Fetch(ctx, func(ctx context.Context) (*domain.PagedResult[domain.Cobrador], error) {
		return s.backend.ListCobradores(ctx, f, p)
	})
}

// CurrentCobradores returns the last accepted collectors page of the context.
func (s *PeopleService) CurrentCobradores(ctx context.Context) *domain.PagedResult[domain.Cobrador] {
	pc, ok := s.cobradores.Lookup(ctx)
	if !ok {
		return nil
	}
	return pc.Current()
}

func (s *PeopleService) GetCobrador(ctx context.Context, id int64) (*domain.Cobrador, error) {
	return query(ctx, s.ui, "Erro ao carregar cobrador", func(ctx context.Context) (*domain.Cobrador, error) {
		return s.backend.GetCobrador(ctx, id)
	})
}

// SaveCobrador creates (ID 0) or updates a collector.
func (s *PeopleService) SaveCobrador(ctx context.Context, c domain.Cobrador) error {
	c.Whatsapp = DigitsOnly(c.Whatsapp)
	err := mutate(ctx, s.ui, "Cobrador salvo com sucesso", "Erro ao salvar cobrador", func(ctx context.Context) error {
		return s.backend.SaveCobrador(ctx, c)
	})
	if err == nil {
		s.logger.Info().Int64("cobrador_id", c.ID).Str("login", c.Login).Msg("cobrador saved")
	}
	return err
}
