package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/multisorteios/rifa-admin/internal/core/domain"
	"github.com/multisorteios/rifa-admin/internal/core/ports"
)

// stubRifaService implements the payout and online sales operations; the
// rest of ports.RifaService is left nil.
type stubRifaService struct {
	ports.RifaService

	registered  *domain.RegistroPremiacao
	finalized   bool
	config      *domain.ConfiguracaoVenda
	savedConfig *domain.NovaConfiguracaoVenda
	saveErr     error
	pageArgs    domain.PageRequest
	page        *domain.PagedResult[domain.VendaWhatsapp]
	toggled     []bool
}

func (s *stubRifaService) RegisterPremiacao(_ context.Context, r domain.RegistroPremiacao) (bool, error) {
	s.registered = &r
	return s.finalized, nil
}

func (s *stubRifaService) VendaConfig(context.Context, int64) (*domain.ConfiguracaoVenda, error) {
	return s.config, nil
}

func (s *stubRifaService) SaveVendaConfig(_ context.Context, cfg domain.NovaConfiguracaoVenda) error {
	s.savedConfig = &cfg
	return s.saveErr
}

func (s *stubRifaService) Vendas(_ context.Context, _ int64, p domain.PageRequest) (*domain.PagedResult[domain.VendaWhatsapp], error) {
	s.pageArgs = p
	return s.page, nil
}

func (s *stubRifaService) SetVendaOnline(_ context.Context, _ int64, enabled bool) error {
	s.toggled = append(s.toggled, enabled)
	return nil
}

func withRifaID(c echo.Context, id string) echo.Context {
	c.SetParamNames("rifaId")
	c.SetParamValues(id)
	return c
}

func TestRifaHandler_RegisterPremiacao(t *testing.T) {
	stub := &stubRifaService{finalized: true}
	h := NewRifaHandler(stub)

	c, rec := newJSONContext(http.MethodPost, "/rifas/3/premiacao", `{"itemPremiacaoList":[
		{"numero":"1234","situacao":"VDD","cidadeApostador":"Ilhéus","cidadeVendedor":"Itabuna","ordem":1},
		{"numero":"5678","situacao":"NVD","ordem":2}]}`)
	if err := h.RegisterPremiacao(withRifaID(c, "3")); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp premiacaoResponse
	_ = json.Unmarshal(rec.Body.Bytes(), &resp)
	if !resp.Finalized || resp.Message != "Rifa finalizada com sucesso!" {
		t.Fatalf("unexpected response %+v", resp)
	}

	got := stub.registered
	if got == nil || got.RifaID != 3 || len(got.ItemPremiacaoList) != 2 {
		t.Fatalf("unexpected registration %+v", got)
	}
	want := domain.ItemPremiacaoRegistro{Numero: "1234", Situacao: "VDD", CidadeApostador: "Ilhéus", CidadeVendedor: "Itabuna", Ordem: 1}
	if got.ItemPremiacaoList[0] != want {
		t.Fatalf("unexpected first item %+v", got.ItemPremiacaoList[0])
	}
}

func TestRifaHandler_RegisterPremiacaoRejectsUnknownSituation(t *testing.T) {
	stub := &stubRifaService{}
	h := NewRifaHandler(stub)

	c, _ := newJSONContext(http.MethodPost, "/rifas/3/premiacao", `{"itemPremiacaoList":[{"numero":"1234","situacao":"XYZ"}]}`)
	err := h.RegisterPremiacao(withRifaID(c, "3"))
	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if stub.registered != nil {
		t.Fatalf("invalid payloads must not reach the service")
	}
}

func TestRifaHandler_VendaConfigEmptyIsNoContent(t *testing.T) {
	h := NewRifaHandler(&stubRifaService{})

	c, rec := newJSONContext(http.MethodGet, "/rifas/3/venda-online", "")
	if err := h.VendaConfig(withRifaID(c, "3")); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
}

func TestRifaHandler_SaveVendaConfig(t *testing.T) {
	stub := &stubRifaService{}
	h := NewRifaHandler(stub)

	c, rec := newJSONContext(http.MethodPut, "/rifas/3/venda-online",
		`{"horaLimiteVenda":"2026-03-07T18:30","valorBilhete":10,"comissaoVendedor":2,"comissaoCobrador":1,"imageBase64":"data:image/png;base64,AA=="}`)
	if err := h.SaveVendaConfig(withRifaID(c, "3")); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	want := domain.NovaConfiguracaoVenda{
		RifaID: 3, HoraLimiteVenda: "2026-03-07T18:30", ValorBilhete: 10,
		ComissaoVendedor: 2, ComissaoCobrador: 1, ImageBase64: "data:image/png;base64,AA==",
	}
	if stub.savedConfig == nil || *stub.savedConfig != want {
		t.Fatalf("unexpected config %+v", stub.savedConfig)
	}

	stub.saveErr = &domain.ValidationError{Fields: map[string]string{"horaLimiteVenda": "Selecione a data/hora limite para a venda"}}
	c, _ = newJSONContext(http.MethodPut, "/rifas/3/venda-online", `{"valorBilhete":10}`)
	var ve *domain.ValidationError
	if err := h.SaveVendaConfig(withRifaID(c, "3")); !errors.As(err, &ve) {
		t.Fatalf("expected the service's validation error, got %v", err)
	}
}

func TestRifaHandler_VendasPaging(t *testing.T) {
	stub := &stubRifaService{page: &domain.PagedResult[domain.VendaWhatsapp]{
		Content:       []domain.VendaWhatsapp{{Cliente: "Maria", Numeros: []string{"0101"}}},
		TotalPages:    3,
		TotalElements: 21,
		Number:        1,
	}}
	h := NewRifaHandler(stub)

	c, rec := newJSONContext(http.MethodGet, "/rifas/3/venda-online/vendas?page=1&size=10", "")
	if err := h.Vendas(withRifaID(c, "3")); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if stub.pageArgs.Page != 1 || stub.pageArgs.Size != 10 {
		t.Fatalf("unexpected page request %+v", stub.pageArgs)
	}
	var resp pageResponse[domain.VendaWhatsapp]
	_ = json.Unmarshal(rec.Body.Bytes(), &resp)
	if !resp.HasNext || !resp.HasPrevious || resp.Content[0].Cliente != "Maria" {
		t.Fatalf("unexpected response %+v", resp)
	}
}

func TestRifaHandler_ToggleVendaOnline(t *testing.T) {
	stub := &stubRifaService{}
	h := NewRifaHandler(stub)

	c, _ := newJSONContext(http.MethodPut, "/rifas/3/venda-online/habilitar", "")
	if err := h.EnableVendaOnline(withRifaID(c, "3")); err != nil {
		t.Fatalf("enable: %v", err)
	}
	c, _ = newJSONContext(http.MethodPut, "/rifas/3/venda-online/desabilitar", "")
	if err := h.DisableVendaOnline(withRifaID(c, "3")); err != nil {
		t.Fatalf("disable: %v", err)
	}
	if len(stub.toggled) != 2 || !stub.toggled[0] || stub.toggled[1] {
		t.Fatalf("unexpected toggles %v", stub.toggled)
	}

	c, _ = newJSONContext(http.MethodPut, "/rifas/x/venda-online/habilitar", "")
	if err := h.EnableVendaOnline(withRifaID(c, "x")); err == nil {
		t.Fatalf("expected a bad request for a non-numeric id")
	}
}
