package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/multisorteios/rifa-admin/internal/core/domain"
)

const (
	pathListBilhetes  = "/listarbilhetes"
	premioKeyFormat   = "_%dPremio"
	bilheteModeList   = "LIST"
	bilheteModeSingle = "SINGLE"
)

func int64Param(v int64) string { return strconv.FormatInt(v, 10) }

// Dashboard calls GET /dashboard.
func (c *Client) Dashboard(ctx context.Context) ([]domain.DashboardEmpresa, error) {
	return expect[[]domain.DashboardEmpresa](ctx, c, request{
		method: http.MethodGet,
		path:   "/dashboard",
	})
}

// BuscarRifaModelo calls GET /buscarrifamodelo.
func (c *Client) BuscarRifaModelo(ctx context.Context, empresaID, rifaModeloID int64) (*domain.RifaModelo, error) {
	return expect[*domain.RifaModelo](ctx, c, request{
		method: http.MethodGet,
		path:   "/buscarrifamodelo",
		query: url.Values{
			"empresaId":    {int64Param(empresaID)},
			"rifaModeloId": {int64Param(rifaModeloID)},
		},
	})
}

// CadastrarRifa calls POST /cadastrarrifa.
func (c *Client) CadastrarRifa(ctx context.Context, r domain.NovaRifa) error {
	_, err := expect[json.RawMessage](ctx, c, request{
		method: http.MethodPost,
		path:   "/cadastrarrifa",
		body:   r,
	})
	return err
}

// BuscarRifa calls GET /buscarrifa.
func (c *Client) BuscarRifa(ctx context.Context, empresaID, rifaID int64) (*domain.Rifa, error) {
	return expect[*domain.Rifa](ctx, c, request{
		method: http.MethodGet,
		path:   "/buscarrifa",
		query: url.Values{
			"empresaId": {int64Param(empresaID)},
			"rifaId":    {int64Param(rifaID)},
		},
	})
}

// ListTaloes calls GET /listartaloes.
func (c *Client) ListTaloes(ctx context.Context, rifaID int64) ([]domain.TalaoResumo, error) {
	return expect[[]domain.TalaoResumo](ctx, c, request{
		method: http.MethodGet,
		path:   "/listartaloes",
		query:  url.Values{"rifaId": {int64Param(rifaID)}},
	})
}

// BuscarTalao calls GET /buscartalao.
func (c *Client) BuscarTalao(ctx context.Context, rifaID, talaoID int64) (*domain.Talao, error) {
	return expect[*domain.Talao](ctx, c, request{
		method: http.MethodGet,
		path:   "/buscartalao",
		query: url.Values{
			"rifaId":  {int64Param(rifaID)},
			"talaoId": {int64Param(talaoID)},
		},
	})
}

// CriarTaloes calls POST /criartaloes.
func (c *Client) CriarTaloes(ctx context.Context, req domain.NovosTaloes) error {
	_, err := expect[json.RawMessage](ctx, c, request{
		method: http.MethodPost,
		path:   "/criartaloes",
		body:   req,
	})
	return err
}

// ListTalaoIDLabels calls GET /listartalaoidlabel.
func (c *Client) ListTalaoIDLabels(ctx context.Context, rifaID int64) ([]domain.IdLabel, error) {
	return expect[[]domain.IdLabel](ctx, c, request{
		method: http.MethodGet,
		path:   "/listartalaoidlabel",
		query:  url.Values{"rifaId": {int64Param(rifaID)}},
	})
}

// bilheteEnvelope carries the result mode next to success, outside data.
type bilheteEnvelope struct {
	Success      bool            `json:"success"`
	ErrorMessage string          `json:"errorMessage"`
	Mode         string          `json:"mode"`
	Data         json.RawMessage `json:"data"`
}

// ListBilhetes calls GET /listarbilhetes. Depending on how narrow the query
// is the backend answers with a LIST of id/labels or a SINGLE ticket.
func (c *Client) ListBilhetes(ctx context.Context, q domain.BilheteQuery) (*domain.BilheteLookup, error) {
	params := url.Values{
		"empresaId": {int64Param(q.EmpresaID)},
		"rifaId":    {int64Param(q.RifaID)},
	}
	if q.CambistaID > 0 {
		params.Set("cambistaId", int64Param(q.CambistaID))
	}
	if q.TalaoID > 0 {
		params.Set("talaoId", int64Param(q.TalaoID))
	}
	if q.Numero != "" {
		params.Set("numero", q.Numero)
	}

	start := time.Now()
	raw, err := c.send(ctx, request{method: http.MethodGet, path: pathListBilhetes, query: params})
	if err != nil {
		c.observe(pathListBilhetes, outcomeOf(err), start)
		return nil, err
	}
	var env bilheteEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		c.observe(pathListBilhetes, OutcomeError, start)
		return nil, fmt.Errorf("%w: decode %s: %v", domain.ErrBackendUnavailable, pathListBilhetes, err)
	}
	if !env.Success {
		c.observe(pathListBilhetes, OutcomeLogical, start)
		return nil, &domain.LogicalError{Endpoint: pathListBilhetes, Message: env.ErrorMessage}
	}
	c.observe(pathListBilhetes, OutcomeOK, start)

	out := &domain.BilheteLookup{Mode: env.Mode}
	switch env.Mode {
	case bilheteModeSingle:
		var b domain.Bilhete
		if err := json.Unmarshal(env.Data, &b); err != nil {
			return nil, fmt.Errorf("%w: decode %s: %v", domain.ErrBackendUnavailable, pathListBilhetes, err)
		}
		out.Single = &b
	default:
		out.Mode = bilheteModeList
		if len(env.Data) > 0 && string(env.Data) != "null" {
			if err := json.Unmarshal(env.Data, &out.Items); err != nil {
				return nil, fmt.Errorf("%w: decode %s: %v", domain.ErrBackendUnavailable, pathListBilhetes, err)
			}
		}
	}
	return out, nil
}

// BuscarResultado calls GET /buscarresultado. A nil result with a nil error
// means no result is registered for that slot yet.
func (c *Client) BuscarResultado(ctx context.Context, horario, data string) (*domain.Resultado, error) {
	fields, err := expect[map[string]json.RawMessage](ctx, c, request{
		method: http.MethodGet,
		path:   "/buscarresultado",
		query:  url.Values{"horario": {horario}, "dataResultado": {data}},
	})
	if err != nil || fields == nil {
		return nil, err
	}
	return decodeResultado(fields), nil
}

func decodeResultado(fields map[string]json.RawMessage) *domain.Resultado {
	r := &domain.Resultado{}
	_ = json.Unmarshal(fields["data"], &r.Data)
	_ = json.Unmarshal(fields["horario"], &r.Horario)
	_ = json.Unmarshal(fields["rifaList"], &r.RifaList)

	last := 0
	premios := make([]string, domain.MaxPremios)
	for i := 1; i <= domain.MaxPremios; i++ {
		var v string
		if err := json.Unmarshal(fields[fmt.Sprintf(premioKeyFormat, i)], &v); err == nil && v != "" {
			premios[i-1] = v
			last = i
		}
	}
	r.Premios = premios[:last]
	return r
}

// SalvarResultado calls POST /salvarresultado with the prizes flattened to
// _1Premio.._NPremio.
func (c *Client) SalvarResultado(ctx context.Context, r domain.Resultado) error {
	body := map[string]string{
		"horario": r.Horario,
		"data":    r.Data,
	}
	for i, n := range r.Premios {
		body[fmt.Sprintf(premioKeyFormat, i+1)] = n
	}
	_, err := expect[json.RawMessage](ctx, c, request{
		method: http.MethodPost,
		path:   "/salvarresultado",
		body:   body,
	})
	return err
}

// RegistrarDadosPremiacao calls POST /registrardadospremiacao. data is true
// once every prize is settled and the raffle is finalized.
func (c *Client) RegistrarDadosPremiacao(ctx context.Context, r domain.RegistroPremiacao) (bool, error) {
	return expect[bool](ctx, c, request{
		method: http.MethodPost,
		path:   "/registrardadospremiacao",
		body:   r,
	})
}

// ConfiguracaoVendaWhatsapp calls GET /configuracaovendawhatsapp.
func (c *Client) ConfiguracaoVendaWhatsapp(ctx context.Context, rifaID int64) (*domain.ConfiguracaoVenda, error) {
	return expect[*domain.ConfiguracaoVenda](ctx, c, request{
		method: http.MethodGet,
		path:   "/configuracaovendawhatsapp",
		query:  url.Values{"rifaId": {int64Param(rifaID)}},
	})
}

// ConfigurarVendaWhatsapp calls POST /configurarvendawhatsapp.
func (c *Client) ConfigurarVendaWhatsapp(ctx context.Context, cfg domain.NovaConfiguracaoVenda) error {
	_, err := expect[json.RawMessage](ctx, c, request{
		method: http.MethodPost,
		path:   "/configurarvendawhatsapp",
		body:   cfg,
	})
	return err
}

// ListarVendasWhatsapp calls GET /listarvendaswhatsapp.
func (c *Client) ListarVendasWhatsapp(ctx context.Context, rifaID int64, p domain.PageRequest) ([]domain.VendaWhatsapp, error) {
	return expect[[]domain.VendaWhatsapp](ctx, c, request{
		method: http.MethodGet,
		path:   "/listarvendaswhatsapp",
		query: url.Values{
			"rifaId": {int64Param(rifaID)},
			"page":   {strconv.Itoa(p.Page)},
			"size":   {strconv.Itoa(p.Size)},
		},
	})
}

// HabilitarVendaOnline calls PUT /habilitarvendaonline.
func (c *Client) HabilitarVendaOnline(ctx context.Context, rifaID int64) error {
	return c.toggleVendaOnline(ctx, "/habilitarvendaonline", rifaID)
}

// DesabilitarVendaOnline calls PUT /desabilitarvendaonline.
func (c *Client) DesabilitarVendaOnline(ctx context.Context, rifaID int64) error {
	return c.toggleVendaOnline(ctx, "/desabilitarvendaonline", rifaID)
}

func (c *Client) toggleVendaOnline(ctx context.Context, path string, rifaID int64) error {
	_, err := expect[json.RawMessage](ctx, c, request{
		method: http.MethodPut,
		path:   path,
		query:  url.Values{"rifaId": {int64Param(rifaID)}},
	})
	return err
}
