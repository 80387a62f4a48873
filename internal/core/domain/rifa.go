package domain

// Read models of the raffle backend. They are opaque projections: no business
// rule is evaluated on them client-side.

// Vendedor is a seller ("cambista").
type Vendedor struct {
	ID           int64   `json:"id"`
	Nome         string  `json:"nome"`
	Login        string  `json:"login"`
	Email        string  `json:"email"`
	Whatsapp     string  `json:"whatsapp"`
	Comissao     float64 `json:"comissao"`
	Ativo        bool    `json:"ativo"`
	CobradorID   int64   `json:"cobradorId,omitempty"`
	CobradorNome string  `json:"cobradorNome,omitempty"`
}

// Cobrador is a collector supervising sellers.
type Cobrador struct {
	ID       int64   `json:"id"`
	Nome     string  `json:"nome"`
	Login    string  `json:"login"`
	Email    string  `json:"email"`
	Whatsapp string  `json:"whatsapp"`
	Comissao float64 `json:"comissao"`
	Ativo    bool    `json:"ativo"`
}

// PersonFilter filters seller and collector listings. Nil Ativo means any.
type PersonFilter struct {
	Nome  string
	Ativo *bool
}

// Serva is a number reserved for a seller before sale.
type Serva struct {
	RifaModeloID int64  `json:"rifaModeloId"`
	Numero       string `json:"numero"`
	CambistaID   int64  `json:"cambistaId,omitempty"`
	Cambista     string `json:"cambista,omitempty"`
}

// ServaKey identifies a serva scope.
type ServaKey struct {
	EmpresaID    int64
	RifaModeloID int64
}

// ServaLote registers a batch of numbers for one seller.
type ServaLote struct {
	EmpresaID    int64    `json:"empresaId"`
	RifaModeloID int64    `json:"rifaModeloId"`
	CambistaID   int64    `json:"cambistaId"`
	Numeros      []string `json:"numeros"`
	Inverter     bool     `json:"inverter"`
}

// ServaLoteResultado summarizes a batch registration.
type ServaLoteResultado struct {
	Cadastrados []string `json:"cadastrados"`
	Rejeitados  []string `json:"rejeitados"`
}

// RifaModelo is a raffle template.
type RifaModelo struct {
	ID                int64  `json:"id"`
	Tipo              string `json:"tipo"`
	Descricao         string `json:"descricao"`
	QuantidadeServas  int    `json:"quantidadeServas"`
	QuantidadeDigitos int    `json:"quantidadeDigitos"`
}

const (
	ModalidadeImpressa   = "IMP"
	ModalidadeHibrida    = "HIB"
	ModalidadePlataforma = "PLA"
)

// NovaRifa is the payload to register a raffle.
type NovaRifa struct {
	EmpresaID                   int64   `json:"empresaId"`
	RifaModeloID                int64   `json:"rifaModeloId"`
	ModalidadeVenda             string  `json:"modalidadeVenda"`
	DataSorteio                 string  `json:"dataSorteio"`
	QuantidadeNumeros           int     `json:"quantidadeNumeros"`
	QuantidadeBilhetesTalao     int     `json:"quantidadeBilhetesTalao"`
	QuantidadeNumerosPorBilhete int     `json:"quantidadeNumerosPorBilhete"`
	CambistaList                []int64 `json:"cambistaList"`
}

// ItemPremiacao is one prize line of a raffle.
type ItemPremiacao struct {
	Numero          string `json:"numero"`
	Talao           string `json:"talao"`
	Vendedor        string `json:"vendedor"`
	Ordem           int    `json:"ordem"`
	Descricao       string `json:"descricao"`
	CidadeApostador string `json:"cidadeApostador"`
	CidadeVendedor  string `json:"cidadeVendedor"`
	Situacao        string `json:"situacao"`
}

// Rifa is a raffle with its prize list.
type Rifa struct {
	RifaID            int64           `json:"rifaId"`
	Empresa           string          `json:"empresa"`
	Data              string          `json:"data"`
	Horario           string          `json:"horario"`
	ItemPremiacaoList []ItemPremiacao `json:"itemPremiacaoList"`
}

// RifaResumo is a raffle entry in per-company listings.
type RifaResumo struct {
	ID        int64  `json:"id"`
	Descricao string `json:"descricao"`
	Data      string `json:"data"`
}

// TalaoResumo is the list projection of a stub booklet.
type TalaoResumo struct {
	ID       int64  `json:"id"`
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
}

// Talao is a stub booklet with its tickets.
type Talao struct {
	ID       int64     `json:"id"`
	Numero   string    `json:"numero"`
	Vendedor string    `json:"vendedor"`
	Bilhetes []Bilhete `json:"bilhetes"`
}

// NovosTaloes requests the creation of stub booklets for a raffle.
type NovosTaloes struct {
	RifaID             int64 `json:"rifaId"`
	QuantidadeTaloes   int   `json:"quantidadeTaloes"`
	QuantidadeBilhetes int   `json:"quantidadeBilhetes"`
}

// Bilhete is a sold ticket.
type Bilhete struct {
	ID       *int64 `json:"id"`
	RifaID   int64  `json:"rifaId"`
	Talao    string `json:"talao"`
	Vendedor string `json:"vendedor"`
	Numero   string `json:"numero"`
}

// BilheteQuery looks tickets up by raffle and optional narrowing keys.
type BilheteQuery struct {
	EmpresaID  int64
	RifaID     int64
	CambistaID int64
	TalaoID    int64
	Numero     string
}

// BilheteLookup is either a list of matches or a single detailed ticket.
type BilheteLookup struct {
	Mode   string    `json:"mode"`
	Items  []IdLabel `json:"items,omitempty"`
	Single *Bilhete  `json:"single,omitempty"`
}

const (
	HorarioFederal = "FED"
	HorarioBahia19 = "19B"
)

// MaxPremios is the highest prize index of a draw result.
const MaxPremios = 10

// Resultado is a draw result. Premios holds the prize numbers in order; on
// the wire they are flattened to _1Premio.._10Premio. Data is DD/MM/YYYY.
type Resultado struct {
	Data     string   `json:"data"`
	Horario  string   `json:"horario"`
	Premios  []string `json:"premios"`
	RifaList []Rifa   `json:"rifaList,omitempty"`
}

// Empresa is a company running raffles.
type Empresa struct {
	ID   int64  `json:"id"`
	Nome string `json:"nome"`
}

// DashboardEmpresa is the home-page summary of one company.
type DashboardEmpresa struct {
	EmpresaID   int64        `json:"empresaId"`
	Nome        string       `json:"nome"`
	RifaModelos []RifaModelo `json:"rifaModelos"`
	Rifas       []RifaResumo `json:"rifas"`
}

// Prize situations of a finished draw.
const (
	SituacaoIndefinida = "IND"
	SituacaoVendido    = "VDD"
	SituacaoNaoVendido = "NVD"
	SituacaoNaoPago    = "NPG"
)

// ItemPremiacaoRegistro is one prize line submitted when finalizing a raffle.
type ItemPremiacaoRegistro struct {
	Numero          string `json:"numero"`
	Situacao        string `json:"situacao"`
	CidadeApostador string `json:"cidadeApostador"`
	CidadeVendedor  string `json:"cidadeVendedor"`
	Ordem           int    `json:"ordem"`
}

// RegistroPremiacao is the payout data of a raffle's prizes.
type RegistroPremiacao struct {
	RifaID            int64                   `json:"rifaId"`
	ItemPremiacaoList []ItemPremiacaoRegistro `json:"itemPremiacaoList"`
}

// ConfiguracaoVenda is the online (WhatsApp) sales setup of a raffle.
// HoraLimiteVenda is DD/MM/YYYY HH:mm on the backend.
type ConfiguracaoVenda struct {
	HoraLimiteVenda  string  `json:"horaLimiteVenda"`
	ValorBilhete     float64 `json:"valorBilhete"`
	ComissaoVendedor float64 `json:"comissaoVendedor"`
	ComissaoCobrador float64 `json:"comissaoCobrador"`
	VendaHabilitada  bool    `json:"vendaHabilitada"`
	LinkImagem       string  `json:"linkImagem"`
}

// NovaConfiguracaoVenda saves the online sales setup. ImageBase64 is the
// data URL of the sales banner; empty keeps the current one.
type NovaConfiguracaoVenda struct {
	RifaID           int64   `json:"rifaId"`
	HoraLimiteVenda  string  `json:"horaLimiteVenda"`
	ValorBilhete     float64 `json:"valorBilhete"`
	ComissaoVendedor float64 `json:"comissaoVendedor"`
	ComissaoCobrador float64 `json:"comissaoCobrador"`
	ImageBase64      string  `json:"imageBase64"`
}

// VendaWhatsapp is one online sale.
type VendaWhatsapp struct {
	Vendedor      string   `json:"vendedor"`
	DataHoraVenda string   `json:"dataHoraVenda"`
	Quantidade    int      `json:"quantidade"`
	Numeros       []string `json:"numeros"`
	Valor         float64  `json:"valor"`
	Cidade        string   `json:"cidade"`
	Cliente       string   `json:"cliente"`
	Telefone      string   `json:"telefone"`
}
