package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/multisorteios/rifa-admin/internal/core/domain"
	"github.com/multisorteios/rifa-admin/internal/core/ports"
)

// ServaHandler serves the reserved-number tabs.
type ServaHandler struct {
	service ports.ServaService
}

func NewServaHandler(service ports.ServaService) *ServaHandler {
	return &ServaHandler{service: service}
}

func servaKey(c echo.Context) (domain.ServaKey, error) {
	empresaID, err := requiredQueryInt64(c, "empresaId")
	if err != nil {
		return domain.ServaKey{}, err
	}
	modeloID, err := requiredQueryInt64(c, "rifaModeloId")
	if err != nil {
		return domain.ServaKey{}, err
	}
	return domain.ServaKey{EmpresaID: empresaID, RifaModeloID: modeloID}, nil
}

// List handles GET /servas.
//
// @Summary      List reserved numbers
// @Tags         servas
// @Produce      json
// @Param        empresaId     query     int  true   "Company id"
// @Param        rifaModeloId  query     int  true   "Raffle template id"
// @Param        cambistaId    query     int  false  "Seller id"
// @Success      200           {array}   domain.Serva
// @Failure      400           {object}  errorResponse
// @Router       /servas [get]
func (h *ServaHandler) List(c echo.Context) error {
	key, err := servaKey(c)
	if err != nil {
		return err
	}
	cambistaID, err := queryInt64(c, "cambistaId")
	if err != nil {
		return err
	}
	servas, err := h.service.List(c.Request().Context(), key, cambistaID)
	if err != nil {
		return err
	}
	if servas == nil {
		servas = []domain.Serva{}
	}
	return c.JSON(http.StatusOK, servas)
}

// Register handles POST /servas.
//
// @Summary      Reserve a number for a seller
// @Tags         servas
// @Accept       json
// @Produce      json
// @Param        body  body      servaRequest  true  "Reservation"
// @Success      201   {object}  messageResponse
// @Failure      422   {object}  errorResponse
// @Router       /servas [post]
func (h *ServaHandler) Register(c echo.Context) error {
	var req servaRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	key := domain.ServaKey{EmpresaID: req.EmpresaID, RifaModeloID: req.RifaModeloID}
	if err := h.service.Register(c.Request().Context(), key, req.Numero, req.CambistaID); err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, messageResponse{Message: "Serva cadastrada com sucesso"})
}

// Remove handles DELETE /servas/:numero.
//
// @Summary      Release a reserved number
// @Tags         servas
// @Produce      json
// @Param        numero        path      string  true  "Number"
// @Param        empresaId     query     int     true  "Company id"
// @Param        rifaModeloId  query     int     true  "Raffle template id"
// @Success      200           {object}  messageResponse
// @Failure      422           {object}  errorResponse
// @Router       /servas/{numero} [delete]
func (h *ServaHandler) Remove(c echo.Context) error {
	key, err := servaKey(c)
	if err != nil {
		return err
	}
	if err := h.service.Remove(c.Request().Context(), key, c.Param("numero")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Serva removida com sucesso"})
}

// Consult handles GET /servas/:numero.
//
// @Summary      Look a reserved number up
// @Tags         servas
// @Produce      json
// @Param        numero        path      string  true  "Number"
// @Param        empresaId     query     int     true  "Company id"
// @Param        rifaModeloId  query     int     true  "Raffle template id"
// @Success      200           {object}  domain.Serva
// @Failure      422           {object}  errorResponse
// @Router       /servas/{numero} [get]
func (h *ServaHandler) Consult(c echo.Context) error {
	key, err := servaKey(c)
	if err != nil {
		return err
	}
	s, err := h.service.Consult(c.Request().Context(), key, c.Param("numero"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, s)
}

// RegisterBatch handles POST /servas/lote.
//
// @Summary      Reserve a batch of numbers
// @Tags         servas
// @Accept       json
// @Produce      json
// @Param        body  body      servaLoteRequest  true  "Batch"
// @Success      201   {object}  domain.ServaLoteResultado
// @Failure      422   {object}  errorResponse
// @Router       /servas/lote [post]
func (h *ServaHandler) RegisterBatch(c echo.Context) error {
	var req servaLoteRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	res, err := h.service.RegisterBatch(c.Request().Context(), domain.ServaLote{
		EmpresaID:    req.EmpresaID,
		RifaModeloID: req.RifaModeloID,
		CambistaID:   req.CambistaID,
		Numeros:      req.Numeros,
		Inverter:     req.Inverter,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, res)
}
