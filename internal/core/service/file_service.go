package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/multisorteios/rifa-admin/internal/core/domain"
	"github.com/multisorteios/rifa-admin/internal/core/ports"
)

// FileService lists companies and produces reconciliation, result and
// print-preparation files.
type FileService struct {
	backend ports.FileBackend
	ui      *UIStore
	logger  zerolog.Logger
}

func NewFileService(backend ports.FileBackend, ui *UIStore, logger zerolog.Logger) *FileService {
	return &FileService{backend: backend, ui: ui, logger: logger}
}

func (s *FileService) Empresas(ctx context.Context) ([]domain.Empresa, error) {
	return query(ctx, s.ui, "Erro ao carregar empresas", s.backend.ListEmpresas)
}

func (s *FileService) RifasPorEmpresa(ctx context.Context, empresaID int64) ([]domain.RifaResumo, error) {
	return query(ctx, s.ui, "Erro ao carregar rifas", func(ctx context.Context) ([]domain.RifaResumo, error) {
		return s.backend.ListRifasPorEmpresa(ctx, empresaID)
	})
}

// PrepararImpressao queues the print files of the given raffles.
func (s *FileService) PrepararImpressao(ctx context.Context, rifaIDs []int64) error {
	if len(rifaIDs) == 0 {
		return &domain.ValidationError{Fields: map[string]string{"rifaIdList": "Selecione ao menos uma rifa"}}
	}
	err := mutate(ctx, s.ui, "Arquivo preparado com sucesso", "Erro ao enviar para impressão", func(ctx context.Context) error {
		return s.backend.PrepararArquivoImpressao(ctx, rifaIDs)
	})
	if err == nil {
		s.logger.Info().Ints64("rifa_ids", rifaIDs).Msg("print files prepared")
	}
	return err
}

// ArquivoResultado returns the download URL of a raffle's prize file.
func (s *FileService) ArquivoResultado(ctx context.Context, rifaID int64) (string, error) {
	return s.download(ctx, func(ctx context.Context) (string, error) {
		return s.backend.GerarArquivoResultado(ctx, rifaID)
	})
}

// ArquivoConferencia returns the download URL of the reconciliation file,
// for one seller or, with vendedorID 0, for all of them.
func (s *FileService) ArquivoConferencia(ctx context.Context, rifaID, vendedorID int64) (string, error) {
	return s.download(ctx, func(ctx context.Context) (string, error) {
		return s.backend.GerarArquivoConferencia(ctx, rifaID, vendedorID)
	})
}

func (s *FileService) download(ctx context.Context, call func(ctx context.Context) (string, error)) (string, error) {
	var link string
	err := mutate(ctx, s.ui, "Download realizado com sucesso", "Erro ao gerar arquivo", func(ctx context.Context) error {
		var err error
		link, err = call(ctx)
		return err
	})
	return link, err
}
