package handler

import "github.com/multisorteios/rifa-admin/internal/core/domain"

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error    string            `json:"error"`
	Redirect string            `json:"redirect,omitempty"`
	Fields   map[string]string `json:"fields,omitempty"`
}

// messageResponse acknowledges a mutation.
type messageResponse struct {
	Message  string `json:"message"`
	Redirect string `json:"redirect,omitempty"`
}

// --- Session ---

type loginRequest struct {
	Login    string `json:"login"    validate:"required"`
	Password string `json:"password" validate:"required"`
}

type sessionResponse struct {
	State    domain.AuthState `json:"state"`
	Session  *domain.Session  `json:"session,omitempty"`
	Redirect string           `json:"redirect,omitempty"`
}

type validateTokenRequest struct {
	Token string `json:"token"`
}

type validateTokenResponse struct {
	Valid bool `json:"valid"`
}

type themeRequest struct {
	Theme string `json:"theme" validate:"required,oneof=dark light"`
}

type themeResponse struct {
	Theme string `json:"theme"`
}

type empresaRequest struct {
	ID   string `json:"id"   validate:"required"`
	Nome string `json:"nome" validate:"required"`
}

// --- UI ---

type toggleRequest struct {
	Open bool `json:"open"`
}

type menuResponse struct {
	Items []domain.MenuItem `json:"items"`
}

// --- People ---

type personRequest struct {
	Nome     string  `json:"nome"     validate:"required"`
	Login    string  `json:"login"    validate:"login4"`
	Email    string  `json:"email"    validate:"simpleemail"`
	Whatsapp string  `json:"whatsapp" validate:"whatsapp"`
	Comissao float64 `json:"comissao" validate:"min=0"`
	Ativo    bool    `json:"ativo"`
}

type vendedorRequest struct {
	personRequest
	CobradorID int64 `json:"cobradorId"`
}

type pageResponse[T any] struct {
	Content       []T   `json:"content"`
	TotalPages    int   `json:"totalPages"`
	TotalElements int64 `json:"totalElements"`
	Number        int   `json:"number"`
	HasNext       bool  `json:"hasNext"`
	HasPrevious   bool  `json:"hasPrevious"`
}

func toPageResponse[T any](p *domain.PagedResult[T]) pageResponse[T] {
	if p == nil {
		return pageResponse[T]{Content: []T{}}
	}
	content := p.Content
	if content == nil {
		content = []T{}
	}
	return pageResponse[T]{
		Content:       content,
		TotalPages:    p.TotalPages,
		TotalElements: p.TotalElements,
		Number:        p.Number,
		HasNext:       p.HasNext(),
		HasPrevious:   p.HasPrevious(),
	}
}

// --- Servas ---

type servaRequest struct {
	EmpresaID    int64  `json:"empresaId"    validate:"gt=0"`
	RifaModeloID int64  `json:"rifaModeloId" validate:"gt=0"`
	Numero       string `json:"numero"       validate:"required"`
	CambistaID   int64  `json:"cambistaId"`
}

type servaLoteRequest struct {
	EmpresaID    int64    `json:"empresaId"    validate:"gt=0"`
	RifaModeloID int64    `json:"rifaModeloId" validate:"gt=0"`
	CambistaID   int64    `json:"cambistaId"`
	Numeros      []string `json:"numeros"`
	Inverter     bool     `json:"inverter"`
}

// --- Rifas ---

type novaRifaRequest struct {
	EmpresaID                   int64   `json:"empresaId"                   validate:"gt=0"`
	RifaModeloID                int64   `json:"rifaModeloId"                validate:"gt=0"`
	ModalidadeVenda             string  `json:"modalidadeVenda"             validate:"oneof=IMP HIB PLA"`
	DataSorteio                 string  `json:"dataSorteio"                 validate:"required"`
	QuantidadeNumeros           int     `json:"quantidadeNumeros"           validate:"gt=0"`
	QuantidadeBilhetesTalao     int     `json:"quantidadeBilhetesTalao"     validate:"gt=0"`
	QuantidadeNumerosPorBilhete int     `json:"quantidadeNumerosPorBilhete" validate:"gt=0"`
	CambistaList                []int64 `json:"cambistaList"`
}

type novosTaloesRequest struct {
	QuantidadeTaloes   int `json:"quantidadeTaloes"`
	QuantidadeBilhetes int `json:"quantidadeBilhetes"`
}

type resultadoRequest struct {
	Horario string   `json:"horario" validate:"oneof=FED 19B"`
	Data    string   `json:"data"    validate:"required"`
	Premios []string `json:"premios"`
}

type premiacaoItemRequest struct {
	Numero          string `json:"numero"          validate:"required"`
	Situacao        string `json:"situacao"        validate:"omitempty,oneof=IND VDD NVD NPG"`
	CidadeApostador string `json:"cidadeApostador"`
	CidadeVendedor  string `json:"cidadeVendedor"`
	Ordem           int    `json:"ordem"`
}

type premiacaoRequest struct {
	Itens []premiacaoItemRequest `json:"itemPremiacaoList" validate:"required,min=1,dive"`
}

type premiacaoResponse struct {
	Finalized bool   `json:"finalized"`
	Message   string `json:"message"`
}

// --- Online sales ---

type vendaConfigRequest struct {
	HoraLimiteVenda  string  `json:"horaLimiteVenda"`
	ValorBilhete     float64 `json:"valorBilhete"     validate:"gt=0"`
	ComissaoVendedor float64 `json:"comissaoVendedor" validate:"min=0"`
	ComissaoCobrador float64 `json:"comissaoCobrador" validate:"min=0"`
	ImageBase64      string  `json:"imageBase64"`
}

// --- Files ---

type prepararImpressaoRequest struct {
	RifaIDs []int64 `json:"rifaIds"`
}

type downloadResponse struct {
	Link string `json:"link"`
}

// --- Layout ---

type loadLayoutRequest struct {
	Orientation   domain.Orientation `json:"orientation"   validate:"oneof=PORTRAIT LANDSCAPE"`
	PositionCount int                `json:"positionCount"`
}

type dragRequest struct {
	Pair  int               `json:"pair"  validate:"min=0"`
	Token domain.PrintToken `json:"token" validate:"oneof=stub ticket"`
	DX    float64           `json:"dx"`
	DY    float64           `json:"dy"`
}

type submitPrintRequest struct {
	Code string `json:"code"`
}

type printTestResponse struct {
	Link string `json:"link"`
}
