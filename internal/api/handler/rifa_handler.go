package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/multisorteios/rifa-admin/internal/core/domain"
	"github.com/multisorteios/rifa-admin/internal/core/ports"
)

// RifaHandler serves raffles, stubs, tickets, results and the dashboard.
type RifaHandler struct {
	service ports.RifaService
}

func NewRifaHandler(service ports.RifaService) *RifaHandler {
	return &RifaHandler{service: service}
}

// Dashboard handles GET /dashboard.
//
// @Summary      Company summaries for the home page
// @Tags         rifas
// @Produce      json
// @Success      200  {array}   domain.DashboardEmpresa
// @Failure      502  {object}  errorResponse
// @Router       /dashboard [get]
func (h *RifaHandler) Dashboard(c echo.Context) error {
	items, err := h.service.Dashboard(c.Request().Context())
	if err != nil {
		return err
	}
	if items == nil {
		items = []domain.DashboardEmpresa{}
	}
	return c.JSON(http.StatusOK, items)
}

// Modelo handles GET /empresas/:empresaId/modelos/:modeloId.
//
// @Summary      Get a raffle template
// @Tags         rifas
// @Produce      json
// @Param        empresaId  path      int  true  "Company id"
// @Param        modeloId   path      int  true  "Template id"
// @Success      200        {object}  domain.RifaModelo
// @Router       /empresas/{empresaId}/modelos/{modeloId} [get]
func (h *RifaHandler) Modelo(c echo.Context) error {
	empresaID, err := pathID(c, "empresaId")
	if err != nil {
		return err
	}
	modeloID, err := pathID(c, "modeloId")
	if err != nil {
		return err
	}
	m, err := h.service.Modelo(c.Request().Context(), empresaID, modeloID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, m)
}

// Register handles POST /rifas.
//
// @Summary      Register a raffle
// @Tags         rifas
// @Accept       json
// @Produce      json
// @Param        body  body      novaRifaRequest  true  "Raffle"
// @Success      201   {object}  messageResponse
// @Failure      422   {object}  errorResponse
// @Router       /rifas [post]
func (h *RifaHandler) Register(c echo.Context) error {
	var req novaRifaRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	err := h.service.Register(c.Request().Context(), domain.NovaRifa{
		EmpresaID:                   req.EmpresaID,
		RifaModeloID:                req.RifaModeloID,
		ModalidadeVenda:             req.ModalidadeVenda,
		DataSorteio:                 req.DataSorteio,
		QuantidadeNumeros:           req.QuantidadeNumeros,
		QuantidadeBilhetesTalao:     req.QuantidadeBilhetesTalao,
		QuantidadeNumerosPorBilhete: req.QuantidadeNumerosPorBilhete,
		CambistaList:                req.CambistaList,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, messageResponse{Message: "Rifa cadastrada com sucesso"})
}

// Detail handles GET /empresas/:empresaId/rifas/:rifaId.
//
// @Summary      Raffle detail with prize list
// @Tags         rifas
// @Produce      json
// @Param        empresaId  path      int  true  "Company id"
// @Param        rifaId     path      int  true  "Raffle id"
// @Success      200        {object}  domain.Rifa
// @Router       /empresas/{empresaId}/rifas/{rifaId} [get]
func (h *RifaHandler) Detail(c echo.Context) error {
	empresaID, err := pathID(c, "empresaId")
	if err != nil {
		return err
	}
	rifaID, err := pathID(c, "rifaId")
	if err != nil {
		return err
	}
	r, err := h.service.Detail(c.Request().Context(), empresaID, rifaID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, r)
}

// Taloes handles GET /rifas/:rifaId/taloes.
//
// @Summary      List stub booklets
// @Tags         taloes
// @Produce      json
// @Param        rifaId  path     int  true  "Raffle id"
// @Success      200     {array}  domain.TalaoResumo
// @Router       /rifas/{rifaId}/taloes [get]
func (h *RifaHandler) Taloes(c echo.Context) error {
	rifaID, err := pathID(c, "rifaId")
	if err != nil {
		return err
	}
	items, err := h.service.Taloes(c.Request().Context(), rifaID)
	if err != nil {
		return err
	}
	if items == nil {
		items = []domain.TalaoResumo{}
	}
	return c.JSON(http.StatusOK, items)
}

// Talao handles GET /rifas/:rifaId/taloes/:talaoId.
//
// @Summary      Stub booklet detail
// @Tags         taloes
// @Produce      json
// @Param        rifaId   path      int  true  "Raffle id"
// @Param        talaoId  path      int  true  "Booklet id"
// @Success      200      {object}  domain.Talao
// @Router       /rifas/{rifaId}/taloes/{talaoId} [get]
func (h *RifaHandler) Talao(c echo.Context) error {
	rifaID, err := pathID(c, "rifaId")
	if err != nil {
		return err
	}
	talaoID, err := pathID(c, "talaoId")
	if err != nil {
		return err
	}
	t, err := h.service.Talao(c.Request().Context(), rifaID, talaoID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, t)
}

// CreateTaloes handles POST /rifas/:rifaId/taloes.
//
// @Summary      Create stub booklets
// @Tags         taloes
// @Accept       json
// @Produce      json
// @Param        rifaId  path      int                 true  "Raffle id"
// @Param        body    body      novosTaloesRequest  true  "Quantities"
// @Success      201     {object}  messageResponse
// @Failure      422     {object}  errorResponse
// @Router       /rifas/{rifaId}/taloes [post]
func (h *RifaHandler) CreateTaloes(c echo.Context) error {
	rifaID, err := pathID(c, "rifaId")
	if err != nil {
		return err
	}
	var req novosTaloesRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	err = h.service.CreateTaloes(c.Request().Context(), domain.NovosTaloes{
		RifaID:             rifaID,
		QuantidadeTaloes:   req.QuantidadeTaloes,
		QuantidadeBilhetes: req.QuantidadeBilhetes,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, messageResponse{Message: "Talões criados com sucesso"})
}

// TalaoOptions handles GET /rifas/:rifaId/taloes/options.
//
// @Summary      Booklet id/label list
// @Tags         taloes
// @Produce      json
// @Param        rifaId  path     int  true  "Raffle id"
// @Success      200     {array}  domain.IdLabel
// @Router       /rifas/{rifaId}/taloes/options [get]
func (h *RifaHandler) TalaoOptions(c echo.Context) error {
	rifaID, err := pathID(c, "rifaId")
	if err != nil {
		return err
	}
	opts, err := h.service.TalaoOptions(c.Request().Context(), rifaID)
	if err != nil {
		return err
	}
	if opts == nil {
		opts = []domain.IdLabel{}
	}
	return c.JSON(http.StatusOK, opts)
}

// Bilhetes handles GET /rifas/:rifaId/bilhetes.
//
// @Summary      Ticket lookup
// @Tags         bilhetes
// @Produce      json
// @Param        rifaId      path      int     true   "Raffle id"
// @Param        empresaId   query     int     false  "Company id"
// @Param        cambistaId  query     int     false  "Seller id"
// @Param        talaoId     query     int     false  "Booklet id"
// @Param        numero      query     string  false  "Ticket number"
// @Success      200         {object}  domain.BilheteLookup
// @Router       /rifas/{rifaId}/bilhetes [get]
func (h *RifaHandler) Bilhetes(c echo.Context) error {
	rifaID, err := pathID(c, "rifaId")
	if err != nil {
		return err
	}
	q := domain.BilheteQuery{RifaID: rifaID, Numero: c.QueryParam("numero")}
	if q.EmpresaID, err = queryInt64(c, "empresaId"); err != nil {
		return err
	}
	if q.CambistaID, err = queryInt64(c, "cambistaId"); err != nil {
		return err
	}
	if q.TalaoID, err = queryInt64(c, "talaoId"); err != nil {
		return err
	}

	res, err := h.service.Bilhetes(c.Request().Context(), q)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, res)
}

// Resultado handles GET /resultados.
//
// @Summary      Draw result of a time slot
// @Tags         resultados
// @Produce      json
// @Param        horario  query     string  true  "FED or 19B"
// @Param        data     query     string  true  "YYYY-MM-DD"
// @Success      200      {object}  domain.Resultado
// @Success      204
// @Failure      422      {object}  errorResponse
// @Router       /resultados [get]
func (h *RifaHandler) Resultado(c echo.Context) error {
	r, err := h.service.Resultado(c.Request().Context(), c.QueryParam("horario"), c.QueryParam("data"))
	if err != nil {
		return err
	}
	if r == nil {
		return c.NoContent(http.StatusNoContent)
	}
	return c.JSON(http.StatusOK, r)
}

// SaveResultado handles PUT /resultados.
//
// @Summary      Save a draw result
// @Tags         resultados
// @Accept       json
// @Produce      json
// @Param        body  body      resultadoRequest  true  "Result"
// @Success      200   {object}  messageResponse
// @Failure      422   {object}  errorResponse
// @Router       /resultados [put]
func (h *RifaHandler) SaveResultado(c echo.Context) error {
	var req resultadoRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	if err := h.service.SaveResultado(c.Request().Context(), req.Horario, req.Data, req.Premios); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Resultado salvo com sucesso"})
}

// RegisterPremiacao handles POST /rifas/:rifaId/premiacao.
//
// @Summary      Register the payout data of a raffle's prizes
// @Tags         resultados
// @Accept       json
// @Produce      json
// @Param        rifaId  path      int               true  "Raffle id"
// @Param        body    body      premiacaoRequest  true  "Prize lines"
// @Success      200     {object}  premiacaoResponse
// @Failure      422     {object}  errorResponse
// @Router       /rifas/{rifaId}/premiacao [post]
func (h *RifaHandler) RegisterPremiacao(c echo.Context) error {
	rifaID, err := pathID(c, "rifaId")
	if err != nil {
		return err
	}
	var req premiacaoRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	reg := domain.RegistroPremiacao{
		RifaID:            rifaID,
		ItemPremiacaoList: make([]domain.ItemPremiacaoRegistro, 0, len(req.Itens)),
	}
	for _, it := range req.Itens {
		reg.ItemPremiacaoList = append(reg.ItemPremiacaoList, domain.ItemPremiacaoRegistro(it))
	}

	finalized, err := h.service.RegisterPremiacao(c.Request().Context(), reg)
	if err != nil {
		return err
	}
	msg := "Dados salvos. A rifa ainda não foi finalizada"
	if finalized {
		msg = "Rifa finalizada com sucesso!"
	}
	return c.JSON(http.StatusOK, premiacaoResponse{Finalized: finalized, Message: msg})
}

// VendaConfig handles GET /rifas/:rifaId/venda-online.
//
// @Summary      Online sales setup of a raffle
// @Tags         venda-online
// @Produce      json
// @Param        rifaId  path      int  true  "Raffle id"
// @Success      200     {object}  domain.ConfiguracaoVenda
// @Success      204
// @Router       /rifas/{rifaId}/venda-online [get]
func (h *RifaHandler) VendaConfig(c echo.Context) error {
	rifaID, err := pathID(c, "rifaId")
	if err != nil {
		return err
	}
	cfg, err := h.service.VendaConfig(c.Request().Context(), rifaID)
	if err != nil {
		return err
	}
	if cfg == nil {
		return c.NoContent(http.StatusNoContent)
	}
	return c.JSON(http.StatusOK, cfg)
}

// SaveVendaConfig handles PUT /rifas/:rifaId/venda-online.
//
// @Summary      Save the online sales setup
// @Tags         venda-online
// @Accept       json
// @Produce      json
// @Param        rifaId  path      int                 true  "Raffle id"
// @Param        body    body      vendaConfigRequest  true  "Setup; horaLimiteVenda is YYYY-MM-DDTHH:mm"
// @Success      200     {object}  messageResponse
// @Failure      422     {object}  errorResponse
// @Router       /rifas/{rifaId}/venda-online [put]
func (h *RifaHandler) SaveVendaConfig(c echo.Context) error {
	rifaID, err := pathID(c, "rifaId")
	if err != nil {
		return err
	}
	var req vendaConfigRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	err = h.service.SaveVendaConfig(c.Request().Context(), domain.NovaConfiguracaoVenda{
		RifaID:           rifaID,
		HoraLimiteVenda:  req.HoraLimiteVenda,
		ValorBilhete:     req.ValorBilhete,
		ComissaoVendedor: req.ComissaoVendedor,
		ComissaoCobrador: req.ComissaoCobrador,
		ImageBase64:      req.ImageBase64,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Configuração salva com sucesso"})
}

// Vendas handles GET /rifas/:rifaId/venda-online/vendas.
//
// @Summary      Online sales of a raffle
// @Tags         venda-online
// @Produce      json
// @Param        rifaId  path      int  true   "Raffle id"
// @Param        page    query     int  false  "0-based page"
// @Param        size    query     int  false  "Page size"
// @Success      200     {object}  pageResponse[domain.VendaWhatsapp]
// @Router       /rifas/{rifaId}/venda-online/vendas [get]
func (h *RifaHandler) Vendas(c echo.Context) error {
	rifaID, err := pathID(c, "rifaId")
	if err != nil {
		return err
	}
	p, err := pageRequest(c)
	if err != nil {
		return err
	}
	page, err := h.service.Vendas(c.Request().Context(), rifaID, p)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toPageResponse(page))
}

// EnableVendaOnline handles PUT /rifas/:rifaId/venda-online/habilitar.
//
// @Summary      Open online sales
// @Tags         venda-online
// @Produce      json
// @Param        rifaId  path      int  true  "Raffle id"
// @Success      200     {object}  messageResponse
// @Router       /rifas/{rifaId}/venda-online/habilitar [put]
func (h *RifaHandler) EnableVendaOnline(c echo.Context) error {
	return h.setVendaOnline(c, true, "Venda habilitada")
}

// DisableVendaOnline handles PUT /rifas/:rifaId/venda-online/desabilitar.
//
// @Summary      Close online sales
// @Tags         venda-online
// @Produce      json
// @Param        rifaId  path      int  true  "Raffle id"
// @Success      200     {object}  messageResponse
// @Router       /rifas/{rifaId}/venda-online/desabilitar [put]
func (h *RifaHandler) DisableVendaOnline(c echo.Context) error {
	return h.setVendaOnline(c, false, "Venda desabilitada")
}

func (h *RifaHandler) setVendaOnline(c echo.Context, enabled bool, msg string) error {
	rifaID, err := pathID(c, "rifaId")
	if err != nil {
		return err
	}
	if err := h.service.SetVendaOnline(c.Request().Context(), rifaID, enabled); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: msg})
}
