package ports

import (
	"context"

	"github.com/multisorteios/rifa-admin/internal/core/domain"
)

// SessionService manages the operator session and stored preferences of a
// browser context.
type SessionService interface {
	Login(ctx context.Context, login, password string) bool
	Logout(ctx context.Context)
	Initialize(ctx context.Context) domain.AuthState
	Current(ctx context.Context) (*domain.Session, bool)
	ValidateToken(ctx context.Context, tokenOverride string) bool

	Theme(ctx context.Context) string
	SetTheme(ctx context.Context, theme string) error
	SelectedEmpresa(ctx context.Context) (*domain.SelectedEmpresa, bool)
	SetSelectedEmpresa(ctx context.Context, e domain.SelectedEmpresa) error
}

// UIService exposes the transient UI flags and notifications.
type UIService interface {
	Snapshot(ctx context.Context) domain.UIState
	OpenSidebar(ctx context.Context)
	CloseSidebar(ctx context.Context)
	OpenModal(ctx context.Context)
	CloseModal(ctx context.Context)
	Notify(ctx context.Context, level domain.NotificationLevel, message string)
	Drain(ctx context.Context) []domain.Notification
}

// PeopleService lists and edits sellers and collectors.
type PeopleService interface {
	ListVendedores(ctx context.Context, f domain.PersonFilter, p domain.PageRequest) (*domain.PagedResult[domain.Vendedor], error)
	CurrentVendedores(ctx context.Context) *domain.PagedResult[domain.Vendedor]
	GetVendedor(ctx context.Context, id int64) (*domain.Vendedor, error)
	SaveVendedor(ctx context.Context, v domain.Vendedor) error
	VendedorOptions(ctx context.Context) ([]domain.IdLabel, error)

	ListCobradores(ctx context.Context, f domain.PersonFilter, p domain.PageRequest) (*domain.PagedResult[domain.Cobrador], error)
	CurrentCobradores(ctx context.Context) *domain.PagedResult[domain.Cobrador]
	GetCobrador(ctx context.Context, id int64) (*domain.Cobrador, error)
	SaveCobrador(ctx context.Context, c domain.Cobrador) error
}

// ServaService manages reserved numbers.
type ServaService interface {
	List(ctx context.Context, key domain.ServaKey, cambistaID int64) ([]domain.Serva, error)
	Register(ctx context.Context, key domain.ServaKey, numero string, cambistaID int64) error
	Remove(ctx context.Context, key domain.ServaKey, numero string) error
	Consult(ctx context.Context, key domain.ServaKey, numero string) (*domain.Serva, error)
	RegisterBatch(ctx context.Context, lote domain.ServaLote) (*domain.ServaLoteResultado, error)
}

// RifaService covers raffles, stubs, tickets, results and the dashboard.
type RifaService interface {
	Dashboard(ctx context.Context) ([]domain.DashboardEmpresa, error)
	Modelo(ctx context.Context, empresaID, rifaModeloID int64) (*domain.RifaModelo, error)
	Register(ctx context.Context, r domain.NovaRifa) error
	Detail(ctx context.Context, empresaID, rifaID int64) (*domain.Rifa, error)

	Taloes(ctx context.Context, rifaID int64) ([]domain.TalaoResumo, error)
	Talao(ctx context.Context, rifaID, talaoID int64) (*domain.Talao, error)
	CreateTaloes(ctx context.Context, req domain.NovosTaloes) error
	TalaoOptions(ctx context.Context, rifaID int64) ([]domain.IdLabel, error)

	Bilhetes(ctx context.Context, q domain.BilheteQuery) (*domain.BilheteLookup, error)

	Resultado(ctx context.Context, horario, date string) (*domain.Resultado, error)
	SaveResultado(ctx context.Context, horario, date string, premios []string) error
	RegisterPremiacao(ctx context.Context, r domain.RegistroPremiacao) (finalized bool, err error)

	VendaConfig(ctx context.Context, rifaID int64) (*domain.ConfiguracaoVenda, error)
	SaveVendaConfig(ctx context.Context, cfg domain.NovaConfiguracaoVenda) error
	Vendas(ctx context.Context, rifaID int64, p domain.PageRequest) (*domain.PagedResult[domain.VendaWhatsapp], error)
	SetVendaOnline(ctx context.Context, rifaID int64, enabled bool) error
}

// FileService lists companies and generates downloadable files.
type FileService interface {
	Empresas(ctx context.Context) ([]domain.Empresa, error)
	RifasPorEmpresa(ctx context.Context, empresaID int64) ([]domain.RifaResumo, error)
	PrepararImpressao(ctx context.Context, rifaIDs []int64) error
	ArquivoResultado(ctx context.Context, rifaID int64) (string, error)
	ArquivoConferencia(ctx context.Context, rifaID, vendedorID int64) (string, error)
}

// LayoutService drives the print-layout positioning editor.
type LayoutService interface {
	Load(ctx context.Context, o domain.Orientation, count int) (*domain.PrintLayout, error)
	Drag(ctx context.Context, pair int, token domain.PrintToken, dx, dy float64) (*domain.PrintLayout, error)
	SubmitForPrintTest(ctx context.Context) (string, error)
	SubmitForPrint(ctx context.Context, code string) error
	Reset(ctx context.Context) error
	Current(ctx context.Context) (*domain.PrintLayout, error)
	History(ctx context.Context, limit int64) ([]domain.PrintJob, error)
}
