package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/multisorteios/rifa-admin/internal/core/domain"
	"github.com/multisorteios/rifa-admin/internal/core/ports"
)

// UIHandler exposes the transient UI flags, notifications and the menu.
type UIHandler struct {
	ui ports.UIService
}

func NewUIHandler(ui ports.UIService) *UIHandler {
	return &UIHandler{ui: ui}
}

// State returns the UI flags of the browser context.
//
// @Summary      UI state
// @Tags         ui
// @Produce      json
// @Success      200  {object}  domain.UIState
// @Router       /ui [get]
func (h *UIHandler) State(c echo.Context) error {
	return c.JSON(http.StatusOK, h.ui.Snapshot(c.Request().Context()))
}

// Sidebar opens or closes the sidebar.
//
// @Summary      Toggle sidebar
// @Tags         ui
// @Accept       json
// @Produce      json
// @Param        body  body      toggleRequest  true  "Desired state"
// @Success      200   {object}  domain.UIState
// @Router       /ui/sidebar [put]
func (h *UIHandler) Sidebar(c echo.Context) error {
	var req toggleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	ctx := c.Request().Context()
	if req.Open {
		h.ui.OpenSidebar(ctx)
	} else {
		h.ui.CloseSidebar(ctx)
	}
	return c.JSON(http.StatusOK, h.ui.Snapshot(ctx))
}

// Modal opens or closes the modal.
//
// @Summary      Toggle modal
// @Tags         ui
// @Accept       json
// @Produce      json
// @Param        body  body      toggleRequest  true  "Desired state"
// @Success      200   {object}  domain.UIState
// @Router       /ui/modal [put]
func (h *UIHandler) Modal(c echo.Context) error {
	var req toggleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	ctx := c.Request().Context()
	if req.Open {
		h.ui.OpenModal(ctx)
	} else {
		h.ui.CloseModal(ctx)
	}
	return c.JSON(http.StatusOK, h.ui.Snapshot(ctx))
}

// Notifications drains the queued notifications, oldest first.
//
// @Summary      Drain notifications
// @Tags         ui
// @Produce      json
// @Success      200  {array}  domain.Notification
// @Router       /ui/notifications [get]
func (h *UIHandler) Notifications(c echo.Context) error {
	return c.JSON(http.StatusOK, h.ui.Drain(c.Request().Context()))
}

// Menu lists the sidebar entries visible to the session.
//
// @Summary      Sidebar menu
// @Tags         ui
// @Produce      json
// @Success      200  {object}  menuResponse
// @Failure      401  {object}  errorResponse
// @Router       /ui/menu [get]
func (h *UIHandler) Menu(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, menuResponse{Items: domain.MenuFor(sess)})
}
