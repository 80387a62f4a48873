package backend

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"

	"github.com/multisorteios/rifa-admin/internal/core/domain"
)

func servaQuery(key domain.ServaKey) url.Values {
	return url.Values{
		"empresaId":    {strconv.FormatInt(key.EmpresaID, 10)},
		"rifaModeloId": {strconv.FormatInt(key.RifaModeloID, 10)},
	}
}

// ListServas calls GET /listarservas for one seller.
func (c *Client) ListServas(ctx context.Context, key domain.ServaKey, cambistaID int64) ([]domain.Serva, error) {
	q := servaQuery(key)
	q.Set("cambistaId", strconv.FormatInt(cambistaID, 10))
	return expect[[]domain.Serva](ctx, c, request{
		method: http.MethodGet,
		path:   "/listarservas",
		query:  q,
	})
}

// CadastrarServa calls POST /cadastrarserva. The backend reads everything
// from the query string.
func (c *Client) CadastrarServa(ctx context.Context, key domain.ServaKey, numero string, cambistaID int64) error {
	q := servaQuery(key)
	q.Set("numero", numero)
	q.Set("cambistaId", strconv.FormatInt(cambistaID, 10))
	_, err := expect[json.RawMessage](ctx, c, request{
		method: http.MethodPost,
		path:   "/cadastrarserva",
		query:  q,
	})
	return err
}

// RemoverServa calls DELETE /removerserva.
func (c *Client) RemoverServa(ctx context.Context, key domain.ServaKey, numero string) error {
	q := servaQuery(key)
	q.Set("numero", numero)
	_, err := expect[json.RawMessage](ctx, c, request{
		method: http.MethodDelete,
		path:   "/removerserva",
		query:  q,
	})
	return err
}

// ConsultarServa calls GET /consultarserva.
func (c *Client) ConsultarServa(ctx context.Context, key domain.ServaKey, numero string) (*domain.Serva, error) {
	q := servaQuery(key)
	q.Set("numero", numero)
	return expect[*domain.Serva](ctx, c, request{
		method: http.MethodGet,
		path:   "/consultarserva",
		query:  q,
	})
}

// CadastrarServaLote calls POST /cadastrarservalote.
func (c *Client) CadastrarServaLote(ctx context.Context, lote domain.ServaLote) (*domain.ServaLoteResultado, error) {
	return expect[*domain.ServaLoteResultado](ctx, c, request{
		method: http.MethodPost,
		path:   "/cadastrarservalote",
		body:   lote,
	})
}
