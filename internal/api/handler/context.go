package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/multisorteios/rifa-admin/internal/api/middleware"
	"github.com/multisorteios/rifa-admin/internal/core/domain"
)

// ctxSession returns the session placed by RequireSession and fails fast
// when the route was mounted without it.
func ctxSession(c echo.Context) (*domain.Session, error) {
	s, ok := middleware.SessionFrom(c)
	if !ok {
		return nil, domain.ErrUnauthenticated
	}
	return s, nil
}

// bindAndValidate binds the request body into req and runs the validator.
func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	return c.Validate(req)
}

func pathID(c echo.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid "+name)
	}
	return id, nil
}

// queryInt64 parses an optional numeric query parameter; absent means 0.
func queryInt64(c echo.Context, name string) (int64, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid "+name)
	}
	return v, nil
}

// requiredQueryInt64 parses a mandatory positive numeric query parameter.
func requiredQueryInt64(c echo.Context, name string) (int64, error) {
	v, err := queryInt64(c, name)
	if err != nil {
		return 0, err
	}
	if v <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, name+" is required")
	}
	return v, nil
}

func queryInt(c echo.Context, name string) (int, error) {
	v, err := queryInt64(c, name)
	return int(v), err
}

// pageRequest reads page and size; defaults are applied by the backend adapter.
func pageRequest(c echo.Context) (domain.PageRequest, error) {
	page, err := queryInt(c, "page")
	if err != nil {
		return domain.PageRequest{}, err
	}
	size, err := queryInt(c, "size")
	if err != nil {
		return domain.PageRequest{}, err
	}
	return domain.PageRequest{Page: page, Size: size}, nil
}

// personFilter reads nome and the optional ativo flag.
func personFilter(c echo.Context) (domain.PersonFilter, error) {
	f := domain.PersonFilter{Nome: c.QueryParam("nome")}
	if raw := c.QueryParam("ativo"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return f, echo.NewHTTPError(http.StatusBadRequest, "invalid ativo")
		}
		f.Ativo = &v
	}
	return f, nil
}
