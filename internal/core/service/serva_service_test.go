package service

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/rs/zerolog"

	"github.com/multisorteios/rifa-admin/internal/core/domain"
)

type stubServaBackend struct {
	calls  int
	lote   domain.ServaLote
	numero string
}

func (s *stubServaBackend) ListServas(context.Context, domain.ServaKey, int64) ([]domain.Serva, error) {
	s.calls++
	return []domain.Serva{{Numero: "1234"}}, nil
}

func (s *stubServaBackend) CadastrarServa(_ context.Context, _ domain.ServaKey, numero string, _ int64) error {
	s.calls++
	s.numero = numero
	return nil
}

func (s *stubServaBackend) RemoverServa(_ context.Context, _ domain.ServaKey, numero string) error {
	s.calls++
	s.numero = numero
	return nil
}

func (s *stubServaBackend) ConsultarServa(_ context.Context, _ domain.ServaKey, numero string) (*domain.Serva, error) {
	s.calls++
	return &domain.Serva{Numero: numero}, nil
}

func (s *stubServaBackend) CadastrarServaLote(_ context.Context, lote domain.ServaLote) (*domain.ServaLoteResultado, error) {
	s.calls++
	s.lote = lote
	return &domain.ServaLoteResultado{Cadastrados: lote.Numeros}, nil
}

func TestServaService_RegisterBatchCleansNumbers(t *testing.T) {
	backend := &stubServaBackend{}
	svc := NewServaService(backend, NewUIStore(), zerolog.Nop())

	res, err := svc.RegisterBatch(browserCtx("ctx-1"), domain.ServaLote{
		CambistaID: 3,
		Numeros:    []string{" 12-34 ", "", "5678"},
		Inverter:   true,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(backend.lote.Numeros, []string{"1234", "5678"}) || !backend.lote.Inverter {
		t.Fatalf("unexpected batch %+v", backend.lote)
	}
	if len(res.Cadastrados) != 2 {
		t.Fatalf("unexpected result %+v", res)
	}
}

func TestServaService_RejectsBeforeNetwork(t *testing.T) {
	backend := &stubServaBackend{}
	svc := NewServaService(backend, NewUIStore(), zerolog.Nop())
	ctx := browserCtx("ctx-1")
	key := domain.ServaKey{EmpresaID: 1, RifaModeloID: 2}

	var ve *domain.ValidationError
	if _, err := svc.RegisterBatch(ctx, domain.ServaLote{CambistaID: 3, Numeros: []string{"", "--"}}); !errors.As(err, &ve) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if err := svc.Register(ctx, key, "1234", 0); !errors.As(err, &ve) {
		t.Fatalf("expected validation error without seller, got %v", err)
	}
	if _, err := svc.Consult(ctx, key, "abc"); !errors.As(err, &ve) {
		t.Fatalf("expected validation error for non-numeric number, got %v", err)
	}
	if backend.calls != 0 {
		t.Fatalf("no backend call expected, got %d", backend.calls)
	}
}

func TestServaService_RemoveNotifies(t *testing.T) {
	backend := &stubServaBackend{}
	ui := NewUIStore()
	svc := NewServaService(backend, ui, zerolog.Nop())
	ctx := browserCtx("ctx-1")

	if err := svc.Remove(ctx, domain.ServaKey{EmpresaID: 1, RifaModeloID: 2}, "0042"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	notes := ui.Drain(ctx)
	if backend.numero != "0042" || len(notes) != 1 || notes[0].Message != "Número 0042 removido com sucesso" {
		t.Fatalf("unexpected outcome %q %+v", backend.numero, notes)
	}
}
