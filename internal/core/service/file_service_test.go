package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/multisorteios/rifa-admin/internal/core/domain"
)

type stubFileBackend struct {
	vendedorID int64
	linkErr    error
	prepared   []int64
}

func (s *stubFileBackend) ListEmpresas(context.Context) ([]domain.Empresa, error) {
	return []domain.Empresa{{ID: 1, Nome: "Sorte Já"}}, nil
}

func (s *stubFileBackend) ListRifasPorEmpresa(context.Context, int64) ([]domain.RifaResumo, error) {
	return nil, nil
}

func (s *stubFileBackend) PrepararArquivoImpressao(_ context.Context, ids []int64) error {
	s.prepared = ids
	return nil
}

func (s *stubFileBackend) GerarArquivoResultado(context.Context, int64) (string, error) {
	return "https://files.example/resultado.xlsx", s.linkErr
}

func (s *stubFileBackend) GerarArquivoConferencia(_ context.Context, _, vendedorID int64) (string, error) {
	s.vendedorID = vendedorID
	if s.linkErr != nil {
		return "", s.linkErr
	}
	return "https://files.example/conferencia.pdf", nil
}

func TestFileService_ArquivoConferencia(t *testing.T) {
	backend := &stubFileBackend{}
	ui := NewUIStore()
	svc := NewFileService(backend, ui, zerolog.Nop())
	ctx := browserCtx("ctx-1")

	link, err := svc.ArquivoConferencia(ctx, 10, 4)
	if err != nil || link != "https://files.example/conferencia.pdf" || backend.vendedorID != 4 {
		t.Fatalf("unexpected outcome %q %v %d", link, err, backend.vendedorID)
	}
	if notes := ui.Drain(ctx); len(notes) != 1 || notes[0].Level != domain.NotifySuccess {
		t.Fatalf("unexpected notifications %+v", notes)
	}
}

func TestFileService_MissingLinkFails(t *testing.T) {
	backend := &stubFileBackend{linkErr: domain.ErrMissingDownloadLink}
	ui := NewUIStore()
	svc := NewFileService(backend, ui, zerolog.Nop())
	ctx := browserCtx("ctx-1")

	if _, err := svc.ArquivoResultado(ctx, 10); !errors.Is(err, domain.ErrMissingDownloadLink) {
		t.Fatalf("expected ErrMissingDownloadLink, got %v", err)
	}
	if notes := ui.Drain(ctx); len(notes) != 1 || notes[0].Level != domain.NotifyError {
		t.Fatalf("unexpected notifications %+v", notes)
	}
}

func TestFileService_PrepararImpressaoRequiresRifas(t *testing.T) {
	backend := &stubFileBackend{}
	svc := NewFileService(backend, NewUIStore(), zerolog.Nop())
	ctx := browserCtx("ctx-1")

	var ve *domain.ValidationError
	if err := svc.PrepararImpressao(ctx, nil); !errors.As(err, &ve) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if err := svc.PrepararImpressao(ctx, []int64{3, 4}); err != nil || len(backend.prepared) != 2 {
		t.Fatalf("unexpected outcome %v %v", err, backend.prepared)
	}
}
