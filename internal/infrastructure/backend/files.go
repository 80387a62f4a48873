package backend

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/multisorteios/rifa-admin/internal/core/domain"
)

type prepararImpressaoRequest struct {
	RifaIDList []int64 `json:"rifaIdList"`
}

// ListEmpresas calls GET /listarempresas.
func (c *Client) ListEmpresas(ctx context.Context) ([]domain.Empresa, error) {
	return expect[[]domain.Empresa](ctx, c, request{
		method: http.MethodGet,
		path:   "/listarempresas",
	})
}

// ListRifasPorEmpresa calls GET /listarrifasporempresa.
func (c *Client) ListRifasPorEmpresa(ctx context.Context, empresaID int64) ([]domain.RifaResumo, error) {
	return expect[[]domain.RifaResumo](ctx, c, request{
		method: http.MethodGet,
		path:   "/listarrifasporempresa",
		query:  url.Values{"empresaId": {int64Param(empresaID)}},
	})
}

// PrepararArquivoImpressao calls POST /preparararquivoimpressao.
func (c *Client) PrepararArquivoImpressao(ctx context.Context, rifaIDs []int64) error {
	_, err := expect[json.RawMessage](ctx, c, request{
		method: http.MethodPost,
		path:   "/preparararquivoimpressao",
		body:   prepararImpressaoRequest{RifaIDList: rifaIDs},
	})
	return err
}

// GerarArquivoResultado calls GET /gerararquivoresultado.
func (c *Client) GerarArquivoResultado(ctx context.Context, rifaID int64) (string, error) {
	return downloadLink(ctx, c, request{
		method: http.MethodGet,
		path:   "/gerararquivoresultado",
		query:  url.Values{"rifaId": {int64Param(rifaID)}},
	})
}

// GerarArquivoConferencia calls POST /gerararquivoconferencia. vendedorID 0
// generates the file for every seller of the raffle.
func (c *Client) GerarArquivoConferencia(ctx context.Context, rifaID, vendedorID int64) (string, error) {
	q := url.Values{"rifaId": {int64Param(rifaID)}}
	if vendedorID > 0 {
		q.Set("vendedorId", int64Param(vendedorID))
	}
	return downloadLink(ctx, c, request{
		method: http.MethodPost,
		path:   "/gerararquivoconferencia",
		query:  q,
	})
}

func downloadLink(ctx context.Context, c *Client, r request) (string, error) {
	link, err := expect[*string](ctx, c, r)
	if err != nil {
		return "", err
	}
	if link == nil || *link == "" {
		return "", domain.ErrMissingDownloadLink
	}
	return *link, nil
}
