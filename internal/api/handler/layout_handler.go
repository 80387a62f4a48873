package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/multisorteios/rifa-admin/internal/core/domain"
	"github.com/multisorteios/rifa-admin/internal/core/ports"
)

// LayoutHandler serves the print-layout positioning editor.
type LayoutHandler struct {
	service ports.LayoutService
}

func NewLayoutHandler(service ports.LayoutService) *LayoutHandler {
	return &LayoutHandler{service: service}
}

// Current handles GET /layout.
//
// @Summary      Editor state
// @Tags         layout
// @Produce      json
// @Success      200  {object}  domain.PrintLayout
// @Router       /layout [get]
func (h *LayoutHandler) Current(c echo.Context) error {
	l, err := h.service.Current(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, l)
}

// Load handles POST /layout/load.
//
// @Summary      Load the saved layout
// @Tags         layout
// @Accept       json
// @Produce      json
// @Param        body  body      loadLayoutRequest  true  "Orientation and position count (1..8)"
// @Success      200   {object}  domain.PrintLayout
// @Failure      400   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /layout/load [post]
func (h *LayoutHandler) Load(c echo.Context) error {
	var req loadLayoutRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	l, err := h.service.Load(c.Request().Context(), req.Orientation, req.PositionCount)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, l)
}

// Drag handles POST /layout/drag.
//
// @Summary      Move a token by a pointer delta
// @Tags         layout
// @Accept       json
// @Produce      json
// @Param        body  body      dragRequest  true  "Pair index, token and delta"
// @Success      200   {object}  domain.PrintLayout
// @Failure      400   {object}  errorResponse
// @Router       /layout/drag [post]
func (h *LayoutHandler) Drag(c echo.Context) error {
	var req dragRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	l, err := h.service.Drag(c.Request().Context(), req.Pair, req.Token, req.DX, req.DY)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, l)
}

// SubmitForPrintTest handles POST /layout/print-test.
//
// @Summary      Generate a test print file
// @Tags         layout
// @Produce      json
// @Success      200  {object}  printTestResponse
// @Failure      400  {object}  errorResponse
// @Failure      422  {object}  errorResponse
// @Router       /layout/print-test [post]
func (h *LayoutHandler) SubmitForPrintTest(c echo.Context) error {
	link, err := h.service.SubmitForPrintTest(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, printTestResponse{Link: link})
}

// SubmitForPrint handles POST /layout/print.
//
// @Summary      Generate the production print file
// @Tags         layout
// @Accept       json
// @Produce      json
// @Param        body  body      submitPrintRequest  true  "Five-character print code"
// @Success      200   {object}  messageResponse
// @Failure      400   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /layout/print [post]
func (h *LayoutHandler) SubmitForPrint(c echo.Context) error {
	var req submitPrintRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	if err := h.service.SubmitForPrint(c.Request().Context(), req.Code); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Arquivo de impressão gerado com sucesso"})
}

// Reset handles DELETE /layout.
//
// @Summary      Discard the editor state
// @Tags         layout
// @Success      204
// @Router       /layout [delete]
func (h *LayoutHandler) Reset(c echo.Context) error {
	if err := h.service.Reset(c.Request().Context()); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// History handles GET /layout/history.
//
// @Summary      Print submissions of this browser context
// @Tags         layout
// @Produce      json
// @Param        limit  query    int  false  "Max records (default and cap 50)"
// @Success      200    {array}  domain.PrintJob
// @Router       /layout/history [get]
func (h *LayoutHandler) History(c echo.Context) error {
	limit, err := queryInt64(c, "limit")
	if err != nil {
		return err
	}
	jobs, err := h.service.History(c.Request().Context(), limit)
	if err != nil {
		return err
	}
	if jobs == nil {
		jobs = []domain.PrintJob{}
	}
	return c.JSON(http.StatusOK, jobs)
}
