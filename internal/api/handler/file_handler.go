package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/multisorteios/rifa-admin/internal/core/domain"
	"github.com/multisorteios/rifa-admin/internal/core/ports"
)

// FileHandler serves the company listings and the file generation routes.
type FileHandler struct {
	service ports.FileService
}

func NewFileHandler(service ports.FileService) *FileHandler {
	return &FileHandler{service: service}
}

// Empresas handles GET /empresas.
//
// @Summary      List companies
// @Tags         arquivos
// @Produce      json
// @Success      200  {array}  domain.Empresa
// @Router       /empresas [get]
func (h *FileHandler) Empresas(c echo.Context) error {
	items, err := h.service.Empresas(c.Request().Context())
	if err != nil {
		return err
	}
	if items == nil {
		items = []domain.Empresa{}
	}
	return c.JSON(http.StatusOK, items)
}

// RifasPorEmpresa handles GET /empresas/:empresaId/rifas.
//
// @Summary      List the raffles of a company
// @Tags         arquivos
// @Produce      json
// @Param        empresaId  path     int  true  "Company id"
// @Success      200        {array}  domain.RifaResumo
// @Router       /empresas/{empresaId}/rifas [get]
func (h *FileHandler) RifasPorEmpresa(c echo.Context) error {
	empresaID, err := pathID(c, "empresaId")
	if err != nil {
		return err
	}
	items, err := h.service.RifasPorEmpresa(c.Request().Context(), empresaID)
	if err != nil {
		return err
	}
	if items == nil {
		items = []domain.RifaResumo{}
	}
	return c.JSON(http.StatusOK, items)
}

// PrepararImpressao handles POST /arquivos/impressao.
//
// @Summary      Prepare the print file of selected raffles
// @Tags         arquivos
// @Accept       json
// @Produce      json
// @Param        body  body      prepararImpressaoRequest  true  "Raffle ids"
// @Success      200   {object}  messageResponse
// @Failure      422   {object}  errorResponse
// @Router       /arquivos/impressao [post]
func (h *FileHandler) PrepararImpressao(c echo.Context) error {
	var req prepararImpressaoRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	if err := h.service.PrepararImpressao(c.Request().Context(), req.RifaIDs); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Arquivo de impressão preparado"})
}

// ArquivoResultado handles GET /arquivos/resultado.
//
// @Summary      Generate the result file of a raffle
// @Tags         arquivos
// @Produce      json
// @Param        rifaId  query     int  true  "Raffle id"
// @Success      200     {object}  downloadResponse
// @Failure      502     {object}  errorResponse
// @Router       /arquivos/resultado [get]
func (h *FileHandler) ArquivoResultado(c echo.Context) error {
	rifaID, err := requiredQueryInt64(c, "rifaId")
	if err != nil {
		return err
	}
	link, err := h.service.ArquivoResultado(c.Request().Context(), rifaID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, downloadResponse{Link: link})
}

// ArquivoConferencia handles GET /arquivos/conferencia.
//
// @Summary      Generate the reconciliation file of a raffle
// @Tags         arquivos
// @Produce      json
// @Param        rifaId      query     int  true   "Raffle id"
// @Param        vendedorId  query     int  false  "Seller id"
// @Success      200         {object}  downloadResponse
// @Failure      502         {object}  errorResponse
// @Router       /arquivos/conferencia [get]
func (h *FileHandler) ArquivoConferencia(c echo.Context) error {
	rifaID, err := requiredQueryInt64(c, "rifaId")
	if err != nil {
		return err
	}
	vendedorID, err := queryInt64(c, "vendedorId")
	if err != nil {
		return err
	}
	link, err := h.service.ArquivoConferencia(c.Request().Context(), rifaID, vendedorID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, downloadResponse{Link: link})
}
