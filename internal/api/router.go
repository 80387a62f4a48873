package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/multisorteios/rifa-admin/docs"
	"github.com/multisorteios/rifa-admin/internal/api/handler"
	"github.com/multisorteios/rifa-admin/internal/api/middleware"
	"github.com/multisorteios/rifa-admin/internal/core/domain"
	"github.com/multisorteios/rifa-admin/internal/core/ports"
)

// Dependencies are the services and settings the router wires into handlers.
type Dependencies struct {
	Sessions ports.SessionService
	UI       ports.UIService
	People   ports.PeopleService
	Servas   ports.ServaService
	Rifas    ports.RifaService
	Files    ports.FileService
	Layout   ports.LayoutService

	Cookie       middleware.BrowserContextConfig
	LoginLimiter *middleware.LoginLimiter
	Health       map[string]handler.DependencyCheck
	Logger       zerolog.Logger

	// Registerer receives the HTTP metrics; nil means the default registry.
	Registerer prometheus.Registerer
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(d.Logger))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "rifa_admin",
		Registerer: d.Registerer,
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/metrics"
		},
	}))

	// --- Operational endpoints (no browser context) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(d.Health)

	e.GET("/health", healthHandler.Liveness)            // liveness
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	authHandler := handler.NewAuthHandler(d.Sessions)
	uiHandler := handler.NewUIHandler(d.UI)
	peopleHandler := handler.NewPeopleHandler(d.People)
	servaHandler := handler.NewServaHandler(d.Servas)
	rifaHandler := handler.NewRifaHandler(d.Rifas)
	fileHandler := handler.NewFileHandler(d.Files)
	layoutHandler := handler.NewLayoutHandler(d.Layout)

	limiter := d.LoginLimiter
	if limiter == nil {
		limiter = middleware.NewLoginLimiter(0, 0)
	}

	// --- Browser-context routes, public ---
	app := e.Group("", middleware.BrowserContext(d.Cookie))

	app.POST("/auth/login", authHandler.Login, limiter.Middleware())
	app.POST("/auth/logout", authHandler.Logout)
	app.GET("/auth/session", authHandler.Session)
	app.POST("/auth/validate", authHandler.ValidateToken)

	app.GET("/preferences/theme", authHandler.Theme)
	app.PUT("/preferences/theme", authHandler.SetTheme)

	app.GET("/ui", uiHandler.State)
	app.PUT("/ui/sidebar", uiHandler.Sidebar)
	app.PUT("/ui/modal", uiHandler.Modal)
	app.GET("/ui/notifications", uiHandler.Notifications)

	// --- Private routes ---
	private := app.Group("", middleware.RequireSession(d.Sessions))

	private.GET("/ui/menu", uiHandler.Menu)
	private.GET("/preferences/empresa", authHandler.SelectedEmpresa)
	private.PUT("/preferences/empresa", authHandler.SetSelectedEmpresa)

	private.GET("/dashboard", rifaHandler.Dashboard)

	private.GET("/vendedores", peopleHandler.ListVendedores)
	private.GET("/vendedores/current", peopleHandler.CurrentVendedores)
	private.GET("/vendedores/options", peopleHandler.VendedorOptions)
	private.GET("/vendedores/:id", peopleHandler.GetVendedor)
	private.POST("/vendedores", peopleHandler.SaveVendedor)
	private.PUT("/vendedores/:id", peopleHandler.SaveVendedor)

	cobradores := private.Group("/cobradores", middleware.RBAC(domain.ProfileAdmin))
	cobradores.GET("", peopleHandler.ListCobradores)
	cobradores.GET("/current", peopleHandler.CurrentCobradores)
	cobradores.GET("/:id", peopleHandler.GetCobrador)
	cobradores.POST("", peopleHandler.SaveCobrador)
	cobradores.PUT("/:id", peopleHandler.SaveCobrador)

	private.GET("/servas", servaHandler.List)
	private.POST("/servas", servaHandler.Register)
	private.POST("/servas/lote", servaHandler.RegisterBatch)
	private.GET("/servas/:numero", servaHandler.Consult)
	private.DELETE("/servas/:numero", servaHandler.Remove)

	private.GET("/empresas", fileHandler.Empresas)
	private.GET("/empresas/:empresaId/rifas", fileHandler.RifasPorEmpresa)
	private.GET("/empresas/:empresaId/rifas/:rifaId", rifaHandler.Detail)
	private.GET("/empresas/:empresaId/modelos/:modeloId", rifaHandler.Modelo)

	private.POST("/rifas", rifaHandler.Register)
	private.GET("/rifas/:rifaId/taloes", rifaHandler.Taloes)
	private.POST("/rifas/:rifaId/taloes", rifaHandler.CreateTaloes)
	private.GET("/rifas/:rifaId/taloes/options", rifaHandler.TalaoOptions)
	private.GET("/rifas/:rifaId/taloes/:talaoId", rifaHandler.Talao)
	private.GET("/rifas/:rifaId/bilhetes", rifaHandler.Bilhetes)
	private.POST("/rifas/:rifaId/premiacao", rifaHandler.RegisterPremiacao)

	private.GET("/rifas/:rifaId/venda-online", rifaHandler.VendaConfig)
	private.PUT("/rifas/:rifaId/venda-online", rifaHandler.SaveVendaConfig)
	private.GET("/rifas/:rifaId/venda-online/vendas", rifaHandler.Vendas)
	private.PUT("/rifas/:rifaId/venda-online/habilitar", rifaHandler.EnableVendaOnline)
	private.PUT("/rifas/:rifaId/venda-online/desabilitar", rifaHandler.DisableVendaOnline)

	private.GET("/resultados", rifaHandler.Resultado)
	private.PUT("/resultados", rifaHandler.SaveResultado)

	private.POST("/arquivos/impressao", fileHandler.PrepararImpressao)
	private.GET("/arquivos/resultado", fileHandler.ArquivoResultado)
	private.GET("/arquivos/conferencia", fileHandler.ArquivoConferencia)

	private.GET("/layout", layoutHandler.Current)
	private.DELETE("/layout", layoutHandler.Reset)
	private.POST("/layout/load", layoutHandler.Load)
	private.POST("/layout/drag", layoutHandler.Drag)
	private.POST("/layout/print-test", layoutHandler.SubmitForPrintTest)
	private.POST("/layout/print", layoutHandler.SubmitForPrint)
	private.GET("/layout/history", layoutHandler.History)

	return e
}

// requestLogger writes one zerolog line per request.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := log.Info()
			if v.Error != nil {
				ev = log.Warn().Err(v.Error)
			}
			ev.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}
