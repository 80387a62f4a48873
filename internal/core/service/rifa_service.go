package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/multisorteios/rifa-admin/internal/core/domain"
	"github.com/multisorteios/rifa-admin/internal/core/ports"
)

const (
	isoDate     = "2006-01-02"
	backendDate = "02/01/2006"

	// Online sales deadline: datetime-local on the API, DD/MM/YYYY HH:mm on the backend.
	isoDateTime     = "2006-01-02T15:04"
	backendDateTime = "02/01/2006 15:04"
)

const (
	MsgComissaoExcedeValor = "A soma das comissões não pode ser igual ou maior que o valor do bilhete."
	MsgHoraLimiteAusente   = "Selecione a data/hora limite para a venda"
	MsgCidadeApostador     = `Para prêmios com situação "VDD", a cidade do apostador é obrigatória.`
)

// RifaService covers raffles, stub booklets, tickets, results and the
// home-page dashboard.
type RifaService struct {
	backend ports.RifaBackend
	ui      *UIStore
	logger  zerolog.Logger
}

func NewRifaService(backend ports.RifaBackend, ui *UIStore, logger zerolog.Logger) *RifaService {
	return &RifaService{backend: backend, ui: ui, logger: logger}
}

func (s *RifaService) Dashboard(ctx context.Context) ([]domain.DashboardEmpresa, error) {
	return query(ctx, s.ui, "Erro ao carregar painel", s.backend.Dashboard)
}

func (s *RifaService) Modelo(ctx context.Context, empresaID, rifaModeloID int64) (*domain.RifaModelo, error) {
	return query(ctx, s.ui, "Erro ao carregar modelo de rifa", func(ctx context.Context) (*domain.RifaModelo, error) {
		return s.backend.BuscarRifaModelo(ctx, empresaID, rifaModeloID)
	})
}

func (s *RifaService) Register(ctx context.Context, r domain.NovaRifa) error {
	err := mutate(ctx, s.ui, "Rifa cadastrada com sucesso", "Erro ao cadastrar rifa", func(ctx context.Context) error {
		return s.backend.CadastrarRifa(ctx, r)
	})
	if err == nil {
		s.logger.Info().
			Int64("empresa_id", r.EmpresaID).
			Int64("rifa_modelo_id", r.RifaModeloID).
			Str("modalidade", r.ModalidadeVenda).
			Msg("rifa registered")
	}
	return err
}

func (s *RifaService) Detail(ctx context.Context, empresaID, rifaID int64) (*domain.Rifa, error) {
	return query(ctx, s.ui, "Erro ao carregar rifa", func(ctx context.Context) (*domain.Rifa, error) {
		return s.backend.BuscarRifa(ctx, empresaID, rifaID)
	})
}

func (s *RifaService) Taloes(ctx context.Context, rifaID int64) ([]domain.TalaoResumo, error) {
	return query(ctx, s.ui, "Erro ao carregar talões", func(ctx context.Context) ([]domain.TalaoResumo, error) {
		return s.backend.ListTaloes(ctx, rifaID)
	})
}

func (s *RifaService) Talao(ctx context.Context, rifaID, talaoID int64) (*domain.Talao, error) {
	return query(ctx, s.ui, "Erro ao buscar talão", func(ctx context.Context) (*domain.Talao, error) {
		return s.backend.BuscarTalao(ctx, rifaID, talaoID)
	})
}

func (s *RifaService) CreateTaloes(ctx context.Context, req domain.NovosTaloes) error {
	if req.QuantidadeTaloes <= 0 || req.QuantidadeBilhetes <= 0 {
		return &domain.ValidationError{Fields: map[string]string{
			"quantidadeTaloes": "Informe quantidade de talões e bilhetes",
		}}
	}
	return mutate(ctx, s.ui, "Talões criados com sucesso", "Falha ao criar talões", func(ctx context.Context) error {
		return s.backend.CriarTaloes(ctx, req)
	})
}

func (s *RifaService) TalaoOptions(ctx context.Context, rifaID int64) ([]domain.IdLabel, error) {
	return query(ctx, s.ui, "Erro ao listar talões", func(ctx context.Context) ([]domain.IdLabel, error) {
		return s.backend.ListTalaoIDLabels(ctx, rifaID)
	})
}

func (s *RifaService) Bilhetes(ctx context.Context, q domain.BilheteQuery) (*domain.BilheteLookup, error) {
	return query(ctx, s.ui, "Erro ao buscar bilhetes", func(ctx context.Context) (*domain.BilheteLookup, error) {
		return s.backend.ListBilhetes(ctx, q)
	})
}

// Resultado fetches the result of a draw slot; date is YYYY-MM-DD. A nil
// result means nothing is registered yet.
func (s *RifaService) Resultado(ctx context.Context, horario, date string) (*domain.Resultado, error) {
	if err := validateHorario(horario); err != nil {
		return nil, err
	}
	if _, err := time.Parse(isoDate, date); err != nil {
		return nil, &domain.ValidationError{Fields: map[string]string{"data": "Data inválida"}}
	}
	return query(ctx, s.ui, "Erro ao buscar resultado", func(ctx context.Context) (*domain.Resultado, error) {
		return s.backend.BuscarResultado(ctx, horario, date)
	})
}

// SaveResultado stores the prize numbers of a draw slot; date is YYYY-MM-DD
// and is sent to the backend as DD/MM/YYYY.
func (s *RifaService) SaveResultado(ctx context.Context, horario, date string, premios []string) error {
	if err := validateHorario(horario); err != nil {
		return err
	}
	day, err := time.Parse(isoDate, date)
	if err != nil {
		return &domain.ValidationError{Fields: map[string]string{"data": "Data inválida"}}
	}
	if err := ValidatePremios(premios); err != nil {
		return err
	}
	r := domain.Resultado{Data: day.Format(backendDate), Horario: horario, Premios: premios}
	return mutate(ctx, s.ui, "Resultado salvo com sucesso", "Erro ao salvar resultado", func(ctx context.Context) error {
		return s.backend.SalvarResultado(ctx, r)
	})
}

// RegisterPremiacao submits the payout data of a raffle's prizes. Every
// prize needs a situation and a sold prize (VDD) needs the bettor's city;
// nothing is sent otherwise. finalized reports whether the backend closed
// the raffle.
func (s *RifaService) RegisterPremiacao(ctx context.Context, r domain.RegistroPremiacao) (bool, error) {
	for _, item := range r.ItemPremiacaoList {
		if item.Situacao == "" || (item.Situacao == domain.SituacaoVendido && strings.TrimSpace(item.CidadeApostador) == "") {
			s.ui.Notify(ctx, domain.NotifyError, MsgCidadeApostador)
			return false, &domain.ValidationError{Fields: map[string]string{"cidadeApostador": MsgCidadeApostador}}
		}
	}

	done := s.ui.Track(ctx)
	defer done()

	finalized, err := s.backend.RegistrarDadosPremiacao(ctx, r)
	if err != nil {
		notifyFailure(ctx, s.ui, err, "Erro ao finalizar")
		return false, err
	}
	if finalized {
		s.ui.Notify(ctx, domain.NotifySuccess, "Rifa finalizada com sucesso!")
	} else {
		s.ui.Notify(ctx, domain.NotifySuccess, "Dados salvos. A rifa ainda não foi finalizada")
	}
	s.logger.Info().
		Int64("rifa_id", r.RifaID).
		Int("premios", len(r.ItemPremiacaoList)).
		Bool("finalized", finalized).
		Msg("premiacao registered")
	return finalized, nil
}

// VendaConfig returns the online sales setup with the deadline as
// YYYY-MM-DDTHH:mm.
func (s *RifaService) VendaConfig(ctx context.Context, rifaID int64) (*domain.ConfiguracaoVenda, error) {
	cfg, err := query(ctx, s.ui, "Erro ao carregar configuração", func(ctx context.Context) (*domain.ConfiguracaoVenda, error) {
		return s.backend.ConfiguracaoVendaWhatsapp(ctx, rifaID)
	})
	if err != nil || cfg == nil {
		return cfg, err
	}
	if t, perr := time.Parse(backendDateTime, cfg.HoraLimiteVenda); perr == nil {
		cfg.HoraLimiteVenda = t.Format(isoDateTime)
	} else if cfg.HoraLimiteVenda != "" {
		s.logger.Warn().Int64("rifa_id", rifaID).Str("hora_limite", cfg.HoraLimiteVenda).Msg("unexpected sales deadline format")
	}
	return cfg, nil
}

// SaveVendaConfig validates and stores the online sales setup. The deadline
// is YYYY-MM-DDTHH:mm and goes to the backend as DD/MM/YYYY HH:mm.
func (s *RifaService) SaveVendaConfig(ctx context.Context, cfg domain.NovaConfiguracaoVenda) error {
	if cfg.ComissaoVendedor+cfg.ComissaoCobrador >= cfg.ValorBilhete {
		s.ui.Notify(ctx, domain.NotifyError, MsgComissaoExcedeValor)
		return &domain.ValidationError{Fields: map[string]string{"comissaoVendedor": MsgComissaoExcedeValor}}
	}
	if cfg.HoraLimiteVenda == "" {
		s.ui.Notify(ctx, domain.NotifyError, MsgHoraLimiteAusente)
		return &domain.ValidationError{Fields: map[string]string{"horaLimiteVenda": MsgHoraLimiteAusente}}
	}
	deadline, err := time.Parse(isoDateTime, cfg.HoraLimiteVenda)
	if err != nil {
		return &domain.ValidationError{Fields: map[string]string{"horaLimiteVenda": "Data/hora inválida"}}
	}
	cfg.HoraLimiteVenda = deadline.Format(backendDateTime)

	err = mutate(ctx, s.ui, "Configuração salva com sucesso", "Erro ao salvar configuração", func(ctx context.Context) error {
		return s.backend.ConfigurarVendaWhatsapp(ctx, cfg)
	})
	if err == nil {
		s.logger.Info().Int64("rifa_id", cfg.RifaID).Str("hora_limite", cfg.HoraLimiteVenda).Msg("online sales configured")
	}
	return err
}

// Vendas returns one page of the raffle's online sales. The backend answers
// with every sale, so the page is cut here.
func (s *RifaService) Vendas(ctx context.Context, rifaID int64, p domain.PageRequest) (*domain.PagedResult[domain.VendaWhatsapp], error) {
	p = p.Normalize()
	all, err := query(ctx, s.ui, "Erro ao listar vendas", func(ctx context.Context) ([]domain.VendaWhatsapp, error) {
		return s.backend.ListarVendasWhatsapp(ctx, rifaID, p)
	})
	if err != nil {
		return nil, err
	}
	return paginate(all, p), nil
}

func paginate[T any](all []T, p domain.PageRequest) *domain.PagedResult[T] {
	start := min(p.Page*p.Size, len(all))
	end := min(start+p.Size, len(all))
	return &domain.PagedResult[T]{
		Content:       append([]T{}, all[start:end]...),
		TotalPages:    (len(all) + p.Size - 1) / p.Size,
		TotalElements: int64(len(all)),
		Number:        p.Page,
	}
}

// SetVendaOnline opens or closes online sales of the raffle.
func (s *RifaService) SetVendaOnline(ctx context.Context, rifaID int64, enabled bool) error {
	success, failure, call := "Venda habilitada", "Erro ao habilitar venda", s.backend.HabilitarVendaOnline
	if !enabled {
		success, failure, call = "Venda desabilitada", "Erro ao desabilitar venda", s.backend.DesabilitarVendaOnline
	}
	err := mutate(ctx, s.ui, success, failure, func(ctx context.Context) error {
		return call(ctx, rifaID)
	})
	if err == nil {
		s.logger.Info().Int64("rifa_id", rifaID).Bool("enabled", enabled).Msg("online sales toggled")
	}
	return err
}

func validateHorario(h string) error {
	if h != domain.HorarioFederal && h != domain.HorarioBahia19 {
		return &domain.ValidationError{Fields: map[string]string{"horario": "Horário inválido"}}
	}
	return nil
}

// ValidatePremios requires every filled prize to have the same length, 4 or
// 5 digits. Blank prizes are allowed.
func ValidatePremios(premios []string) error {
	invalid := &domain.ValidationError{Fields: map[string]string{
		"premios": "Todos os números devem ter a mesma quantidade de dígitos (4 ou 5)",
	}}
	if len(premios) > domain.MaxPremios {
		return invalid
	}
	size := 0
	for _, p := range premios {
		if p == "" {
			continue
		}
		if DigitsOnly(p) != p || (len(p) != 4 && len(p) != 5) {
			return invalid
		}
		if size == 0 {
			size = len(p)
		}
		if len(p) != size {
			return invalid
		}
	}
	return nil
}
