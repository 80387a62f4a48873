package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/multisorteios/rifa-admin/internal/core/domain"
	"github.com/multisorteios/rifa-admin/internal/core/ports"
)

// ServaService manages numbers reserved for sellers before sale.
type ServaService struct {
	backend ports.ServaBackend
	ui      *UIStore
	logger  zerolog.Logger
}

func NewServaService(backend ports.ServaBackend, ui *UIStore, logger zerolog.Logger) *ServaService {
	return &ServaService{backend: backend, ui: ui, logger: logger}
}

func servaNumero(numero string) (string, error) {
	n := DigitsOnly(numero)
	if n == "" {
		return "", &domain.ValidationError{Fields: map[string]string{"numero": "Número inválido"}}
	}
	return n, nil
}

func (s *ServaService) List(ctx context.Context, key domain.ServaKey, cambistaID int64) ([]domain.Serva, error) {
	return query(ctx, s.ui, "Erro ao buscar servas", func(ctx context.Context) ([]domain.Serva, error) {
		return s.backend.ListServas(ctx, key, cambistaID)
	})
}

func (s *ServaService) Register(ctx context.Context, key domain.ServaKey, numero string, cambistaID int64) error {
	n, err := servaNumero(numero)
	if err != nil {
		return err
	}
	if cambistaID <= 0 {
		return &domain.ValidationError{Fields: map[string]string{"cambistaId": "Selecione um vendedor"}}
	}
	return mutate(ctx, s.ui, fmt.Sprintf("Número %s cadastrado com sucesso", n), "Erro ao cadastrar número", func(ctx context.Context) error {
		return s.backend.CadastrarServa(ctx, key, n, cambistaID)
	})
}

func (s *ServaService) Remove(ctx context.Context, key domain.ServaKey, numero string) error {
	n, err := servaNumero(numero)
	if err != nil {
		return err
	}
	return mutate(ctx, s.ui, fmt.Sprintf("Número %s removido com sucesso", n), "Erro ao remover número", func(ctx context.Context) error {
		return s.backend.RemoverServa(ctx, key, n)
	})
}

func (s *ServaService) Consult(ctx context.Context, key domain.ServaKey, numero string) (*domain.Serva, error) {
	n, err := servaNumero(numero)
	if err != nil {
		return nil, err
	}
	return query(ctx, s.ui, "Erro ao consultar número", func(ctx context.Context) (*domain.Serva, error) {
		return s.backend.ConsultarServa(ctx, key, n)
	})
}

// RegisterBatch registers many numbers for one seller. Numbers are cleaned
// to digits and blanks are dropped before the call.
func (s *ServaService) RegisterBatch(ctx context.Context, lote domain.ServaLote) (*domain.ServaLoteResultado, error) {
	numeros := make([]string, 0, len(lote.Numeros))
	for _, n := range lote.Numeros {
		if d := DigitsOnly(n); d != "" {
			numeros = append(numeros, d)
		}
	}
	if lote.CambistaID <= 0 || len(numeros) == 0 {
		return nil, &domain.ValidationError{Fields: map[string]string{"numeros": "Preencha os campos obrigatórios"}}
	}
	lote.Numeros = numeros

	res, err := query(ctx, s.ui, "Erro ao cadastrar lote", func(ctx context.Context) (*domain.ServaLoteResultado, error) {
		return s.backend.CadastrarServaLote(ctx, lote)
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info().
		Int64("rifa_modelo_id", lote.RifaModeloID).
		Int64("cambista_id", lote.CambistaID).
		Int("numeros", len(numeros)).
		Msg("serva batch registered")
	return res, nil
}
