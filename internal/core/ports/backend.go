package ports

import (
	"context"

	"github.com/multisorteios/rifa-admin/internal/core/domain"
)

// The raffle backend is an external REST collaborator. Implementations return
// *domain.LogicalError for success=false envelopes, domain.ErrUnauthenticated
// and domain.ErrForbidden for 401/403, and wrap domain.ErrBackendUnavailable
// for everything else that goes wrong on the wire.

// AuthBackend authenticates operators.
type AuthBackend interface {
	// Login exchanges credentials for a session. passwordHash is the hex SHA-256 of the password.
	Login(ctx context.Context, login, passwordHash string) (*domain.Session, error)
	ValidateToken(ctx context.Context, token string) error
}

// LayoutBackend loads saved print layouts and generates print files.
type LayoutBackend interface {
	LoadLayout(ctx context.Context, token string, o domain.Orientation, count int) (*domain.PrintLayout, error)
	// GeneratePrintTest returns the download URL of the test PDF.
	GeneratePrintTest(ctx context.Context, token string, positions []domain.PrintPosition) (string, error)
	GeneratePrint(ctx context.Context, token, code string, positions []domain.PrintPosition) error
}

// PeopleBackend manages sellers and collectors.
type PeopleBackend interface {
	ListVendedores(ctx context.Context, f domain.PersonFilter, p domain.PageRequest) (*domain.PagedResult[domain.Vendedor], error)
	GetVendedor(ctx context.Context, id int64) (*domain.Vendedor, error)
	SaveVendedor(ctx context.Context, v domain.Vendedor) error
	ListVendedorIDLabels(ctx context.Context) ([]domain.IdLabel, error)

	ListCobradores(ctx context.Context, f domain.PersonFilter, p domain.PageRequest) (*domain.PagedResult[domain.Cobrador], error)
	GetCobrador(ctx context.Context, id int64) (*domain.Cobrador, error)
	SaveCobrador(ctx context.Context, c domain.Cobrador) error
}

// ServaBackend manages reserved numbers.
type ServaBackend interface {
	ListServas(ctx context.Context, key domain.ServaKey, cambistaID int64) ([]domain.Serva, error)
	CadastrarServa(ctx context.Context, key domain.ServaKey, numero string, cambistaID int64) error
	RemoverServa(ctx context.Context, key domain.ServaKey, numero string) error
	ConsultarServa(ctx context.Context, key domain.ServaKey, numero string) (*domain.Serva, error)
	CadastrarServaLote(ctx context.Context, lote domain.ServaLote) (*domain.ServaLoteResultado, error)
}

// RifaBackend manages raffles, stubs, tickets and results.
type RifaBackend interface {
	Dashboard(ctx context.Context) ([]domain.DashboardEmpresa, error)
	BuscarRifaModelo(ctx context.Context, empresaID, rifaModeloID int64) (*domain.RifaModelo, error)
	CadastrarRifa(ctx context.Context, r domain.NovaRifa) error
	BuscarRifa(ctx context.Context, empresaID, rifaID int64) (*domain.Rifa, error)

	ListTaloes(ctx context.Context, rifaID int64) ([]domain.TalaoResumo, error)
	BuscarTalao(ctx context.Context, rifaID, talaoID int64) (*domain.Talao, error)
	CriarTaloes(ctx context.Context, req domain.NovosTaloes) error
	ListTalaoIDLabels(ctx context.Context, rifaID int64) ([]domain.IdLabel, error)

	ListBilhetes(ctx context.Context, q domain.BilheteQuery) (*domain.BilheteLookup, error)

	BuscarResultado(ctx context.Context, horario, data string) (*domain.Resultado, error)
	SalvarResultado(ctx context.Context, r domain.Resultado) error
	// RegistrarDadosPremiacao reports whether the raffle got finalized.
	RegistrarDadosPremiacao(ctx context.Context, r domain.RegistroPremiacao) (bool, error)

	ConfiguracaoVendaWhatsapp(ctx context.Context, rifaID int64) (*domain.ConfiguracaoVenda, error)
	ConfigurarVendaWhatsapp(ctx context.Context, cfg domain.NovaConfiguracaoVenda) error
	// ListarVendasWhatsapp returns every sale; the backend ignores paging.
	ListarVendasWhatsapp(ctx context.Context, rifaID int64, p domain.PageRequest) ([]domain.VendaWhatsapp, error)
	HabilitarVendaOnline(ctx context.Context, rifaID int64) error
	DesabilitarVendaOnline(ctx context.Context, rifaID int64) error
}

// FileBackend produces reconciliation and print artifacts.
type FileBackend interface {
	ListEmpresas(ctx context.Context) ([]domain.Empresa, error)
	ListRifasPorEmpresa(ctx context.Context, empresaID int64) ([]domain.RifaResumo, error)
	PrepararArquivoImpressao(ctx context.Context, rifaIDs []int64) error
	// GerarArquivoResultado and GerarArquivoConferencia return a download URL.
	GerarArquivoResultado(ctx context.Context, rifaID int64) (string, error)
	GerarArquivoConferencia(ctx context.Context, rifaID, vendedorID int64) (string, error)
}
