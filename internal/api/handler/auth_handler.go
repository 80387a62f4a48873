package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/multisorteios/rifa-admin/internal/core/domain"
	"github.com/multisorteios/rifa-admin/internal/core/ports"
)

const (
	redirectHome  = "/"
	redirectLogin = "/login"
)

// AuthHandler serves the session lifecycle and the stored preferences.
type AuthHandler struct {
	sessions ports.SessionService
}

func NewAuthHandler(sessions ports.SessionService) *AuthHandler {
	return &AuthHandler{sessions: sessions}
}

// Login authenticates the operator of the browser context.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials (plain password)"
// @Success      200   {object}  sessionResponse
// @Failure      401   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Failure      429   {object}  errorResponse
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	ctx := c.Request().Context()

	if h.sessions.Initialize(ctx) == domain.AuthAuthenticated {
		sess, _ := h.sessions.Current(ctx)
		return c.JSON(http.StatusOK, sessionResponse{State: domain.AuthAuthenticated, Session: sess, Redirect: redirectHome})
	}

	var req loginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	if !h.sessions.Login(ctx, req.Login, req.Password) {
		return c.JSON(http.StatusUnauthorized, errorResponse{Error: "Credenciais inválidas"})
	}

	sess, _ := h.sessions.Current(ctx)
	return c.JSON(http.StatusOK, sessionResponse{State: domain.AuthAuthenticated, Session: sess, Redirect: redirectHome})
}

// Logout ends the session of the browser context.
//
// @Summary      Logout
// @Tags         auth
// @Produce      json
// @Success      200  {object}  messageResponse
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	h.sessions.Logout(c.Request().Context())
	return c.JSON(http.StatusOK, messageResponse{Message: "Sessão encerrada", Redirect: redirectLogin})
}

// Session resolves and reports the boot state of the browser context.
//
// @Summary      Current session
// @Tags         auth
// @Produce      json
// @Success      200  {object}  sessionResponse
// @Router       /auth/session [get]
func (h *AuthHandler) Session(c echo.Context) error {
	ctx := c.Request().Context()
	state := h.sessions.Initialize(ctx)

	resp := sessionResponse{State: state}
	if state == domain.AuthAuthenticated {
		resp.Session, _ = h.sessions.Current(ctx)
	} else {
		resp.Redirect = redirectLogin
	}
	return c.JSON(http.StatusOK, resp)
}

// ValidateToken checks a token, or the session token when none is given.
//
// @Summary      Validate a backend token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      validateTokenRequest  false  "Token override"
// @Success      200   {object}  validateTokenResponse
// @Router       /auth/validate [post]
func (h *AuthHandler) ValidateToken(c echo.Context) error {
	var req validateTokenRequest
	if c.Request().ContentLength > 0 {
		if err := c.Bind(&req); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
		}
	}
	valid := h.sessions.ValidateToken(c.Request().Context(), req.Token)
	return c.JSON(http.StatusOK, validateTokenResponse{Valid: valid})
}

// Theme returns the stored theme.
//
// @Summary      Get theme
// @Tags         preferences
// @Produce      json
// @Success      200  {object}  themeResponse
// @Router       /preferences/theme [get]
func (h *AuthHandler) Theme(c echo.Context) error {
	return c.JSON(http.StatusOK, themeResponse{Theme: h.sessions.Theme(c.Request().Context())})
}

// SetTheme stores the theme of the browser context.
//
// @Summary      Set theme
// @Tags         preferences
// @Accept       json
// @Produce      json
// @Param        body  body      themeRequest  true  "dark or light"
// @Success      200   {object}  themeResponse
// @Failure      422   {object}  errorResponse
// @Router       /preferences/theme [put]
func (h *AuthHandler) SetTheme(c echo.Context) error {
	var req themeRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	ctx := c.Request().Context()
	if err := h.sessions.SetTheme(ctx, req.Theme); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, themeResponse{Theme: h.sessions.Theme(ctx)})
}

// SelectedEmpresa returns the company the operator is working on.
//
// @Summary      Get selected company
// @Tags         preferences
// @Produce      json
// @Success      200  {object}  domain.SelectedEmpresa
// @Success      204
// @Router       /preferences/empresa [get]
func (h *AuthHandler) SelectedEmpresa(c echo.Context) error {
	e, ok := h.sessions.SelectedEmpresa(c.Request().Context())
	if !ok {
		return c.NoContent(http.StatusNoContent)
	}
	return c.JSON(http.StatusOK, e)
}

// SetSelectedEmpresa stores the company the operator is working on.
//
// @Summary      Select company
// @Tags         preferences
// @Accept       json
// @Produce      json
// @Param        body  body      empresaRequest  true  "Company"
// @Success      200   {object}  domain.SelectedEmpresa
// @Failure      422   {object}  errorResponse
// @Router       /preferences/empresa [put]
func (h *AuthHandler) SetSelectedEmpresa(c echo.Context) error {
	var req empresaRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	e := domain.SelectedEmpresa{ID: req.ID, Nome: req.Nome}
	if err := h.sessions.SetSelectedEmpresa(c.Request().Context(), e); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, e)
}
