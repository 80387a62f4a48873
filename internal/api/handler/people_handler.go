package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/multisorteios/rifa-admin/internal/core/domain"
	"github.com/multisorteios/rifa-admin/internal/core/ports"
)

// PeopleHandler serves the sellers and collectors pages.
type PeopleHandler struct {
	service ports.PeopleService
}

func NewPeopleHandler(service ports.PeopleService) *PeopleHandler {
	return &PeopleHandler{service: service}
}

// ListVendedores handles GET /vendedores.
//
// @Summary      List sellers
// @Tags         vendedores
// @Produce      json
// @Param        nome   query     string  false  "Name filter"
// @Param        ativo  query     bool    false  "Active filter"
// @Param        page   query     int     false  "Page (0-based)"
// @Param        size   query     int     false  "Page size (default 10)"
// @Success      200    {object}  pageResponse[domain.Vendedor]
// @Failure      409    {object}  errorResponse
// @Failure      422    {object}  errorResponse
// @Failure      502    {object}  errorResponse
// @Router       /vendedores [get]
func (h *PeopleHandler) ListVendedores(c echo.Context) error {
	f, p, err := listParams(c)
	if err != nil {
		return err
	}
	page, err := h.service.ListVendedores(c.Request().Context(), f, p)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toPageResponse(page))
}

// CurrentVendedores handles GET /vendedores/current.
//
// @Summary      Last accepted sellers page
// @Tags         vendedores
// @Produce      json
// @Success      200  {object}  pageResponse[domain.Vendedor]
// @Router       /vendedores/current [get]
func (h *PeopleHandler) CurrentVendedores(c echo.Context) error {
	return c.JSON(http.StatusOK, toPageResponse(h.service.CurrentVendedores(c.Request().Context())))
}

// GetVendedor handles GET /vendedores/:id.
//
// @Summary      Get a seller
// @Tags         vendedores
// @Produce      json
// @Param        id   path      int  true  "Seller id"
// @Success      200  {object}  domain.Vendedor
// @Failure      422  {object}  errorResponse
// @Router       /vendedores/{id} [get]
func (h *PeopleHandler) GetVendedor(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	v, err := h.service.GetVendedor(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, v)
}

// SaveVendedor handles POST /vendedores and PUT /vendedores/:id.
//
// @Summary      Create or update a seller
// @Tags         vendedores
// @Accept       json
// @Produce      json
// @Param        id    path      int              false  "Seller id (update only)"
// @Param        body  body      vendedorRequest  true   "Seller form"
// @Success      200   {object}  messageResponse
// @Failure      422   {object}  errorResponse
// @Router       /vendedores [post]
// @Router       /vendedores/{id} [put]
func (h *PeopleHandler) SaveVendedor(c echo.Context) error {
	id, err := optionalPathID(c)
	if err != nil {
		return err
	}
	var req vendedorRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	v := domain.Vendedor{
		ID:         id,
		Nome:       req.Nome,
		Login:      req.Login,
		Email:      req.Email,
		Whatsapp:   req.Whatsapp,
		Comissao:   req.Comissao,
		Ativo:      req.Ativo,
		CobradorID: req.CobradorID,
	}
	if err := h.service.SaveVendedor(c.Request().Context(), v); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Vendedor salvo com sucesso", Redirect: "/vendedores"})
}

// VendedorOptions handles GET /vendedores/options.
//
// @Summary      Seller id/label list
// @Tags         vendedores
// @Produce      json
// @Success      200  {array}  domain.IdLabel
// @Router       /vendedores/options [get]
func (h *PeopleHandler) VendedorOptions(c echo.Context) error {
	opts, err := h.service.VendedorOptions(c.Request().Context())
	if err != nil {
		return err
	}
	if opts == nil {
		opts = []domain.IdLabel{}
	}
	return c.JSON(http.StatusOK, opts)
}

// ListCobradores handles GET /cobradores.
//
// @Summary      List collectors
// @Tags         cobradores
// @Produce      json
// @Security     AdminProfile
// @Param        nome   query     string  false  "Name filter"
// @Param        ativo  query     bool    false  "Active filter"
// @Param        page   query     int     false  "Page (0-based)"
// @Param        size   query     int     false  "Page size (default 10)"
// @Success      200    {object}  pageResponse[domain.Cobrador]
// @Failure      403    {object}  errorResponse
// @Router       /cobradores [get]
func (h *PeopleHandler) ListCobradores(c echo.Context) error {
	f, p, err := listParams(c)
	if err != nil {
		return err
	}
	page, err := h.service.ListCobradores(c.Request().Context(), f, p)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toPageResponse(page))
}

// CurrentCobradores handles GET /cobradores/current.
//
// @Summary      Last accepted collectors page
// @Tags         cobradores
// @Produce      json
// @Success      200  {object}  pageResponse[domain.Cobrador]
// @Router       /cobradores/current [get]
func (h *PeopleHandler) CurrentCobradores(c echo.Context) error {
	return c.JSON(http.StatusOK, toPageResponse(h.service.CurrentCobradores(c.Request().Context())))
}

// GetCobrador handles GET /cobradores/:id.
//
// @Summary      Get a collector
// @Tags         cobradores
// @Produce      json
// @Param        id   path      int  true  "Collector id"
// @Success      200  {object}  domain.Cobrador
// @Router       /cobradores/{id} [get]
func (h *PeopleHandler) GetCobrador(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	v, err := h.service.GetCobrador(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, v)
}

// SaveCobrador handles POST /cobradores and PUT /cobradores/:id.
//
// @Summary      Create or update a collector
// @Tags         cobradores
// @Accept       json
// @Produce      json
// @Param        id    path      int            false  "Collector id (update only)"
// @Param        body  body      personRequest  true   "Collector form"
// @Success      200   {object}  messageResponse
// @Failure      422   {object}  errorResponse
// @Router       /cobradores [post]
// @Router       /cobradores/{id} [put]
func (h *PeopleHandler) SaveCobrador(c echo.Context) error {
	id, err := optionalPathID(c)
	if err != nil {
		return err
	}
	var req personRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	cb := domain.Cobrador{
		ID:       id,
		Nome:     req.Nome,
		Login:    req.Login,
		Email:    req.Email,
		Whatsapp: req.Whatsapp,
		Comissao: req.Comissao,
		Ativo:    req.Ativo,
	}
	if err := h.service.SaveCobrador(c.Request().Context(), cb); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Cobrador salvo com sucesso", Redirect: "/cobradores"})
}

func listParams(c echo.Context) (domain.PersonFilter, domain.PageRequest, error) {
	f, err := personFilter(c)
	if err != nil {
		return f, domain.PageRequest{}, err
	}
	p, err := pageRequest(c)
	return f, p, err
}

// optionalPathID returns 0 on create routes, where :id is absent.
func optionalPathID(c echo.Context) (int64, error) {
	if c.Param("id") == "" {
		return 0, nil
	}
	return pathID(c, "id")
}
