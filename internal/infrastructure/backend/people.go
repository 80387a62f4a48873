package backend

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"

	"github.com/multisorteios/rifa-admin/internal/core/domain"
)

func personQuery(f domain.PersonFilter, p domain.PageRequest) url.Values {
	p = p.Normalize()
	q := url.Values{
		"nome":    {f.Nome},
		"page":    {strconv.Itoa(p.Page)},
		"size":    {strconv.Itoa(p.Size)},
		"orderBy": {p.OrderBy},
		"order":   {p.Order},
	}
	if f.Ativo != nil {
		q.Set("ativo", strconv.FormatBool(*f.Ativo))
	}
	return q
}

func idQuery(id int64) url.Values {
	return url.Values{"id": {strconv.FormatInt(id, 10)}}
}

// ListVendedores calls GET /listarvendedor.
func (c *Client) ListVendedores(ctx context.Context, f domain.PersonFilter, p domain.PageRequest) (*domain.PagedResult[domain.Vendedor], error) {
	return expect[*domain.PagedResult[domain.Vendedor]](ctx, c, request{
		method: http.MethodGet,
		path:   "/listarvendedor",
		query:  personQuery(f, p),
	})
}

// GetVendedor calls GET /buscarvendedor.
func (c *Client) GetVendedor(ctx context.Context, id int64) (*domain.Vendedor, error) {
	return expect[*domain.Vendedor](ctx, c, request{
		method: http.MethodGet,
		path:   "/buscarvendedor",
		query:  idQuery(id),
	})
}

// SaveVendedor calls POST /cadastrarvendedor; it creates or updates depending on ID.
func (c *Client) SaveVendedor(ctx context.Context, v domain.Vendedor) error {
	_, err := expect[json.RawMessage](ctx, c, request{
		method: http.MethodPost,
		path:   "/cadastrarvendedor",
		body:   v,
	})
	return err
}

// ListVendedorIDLabels calls GET /listarvendedoridlabel.
func (c *Client) ListVendedorIDLabels(ctx context.Context) ([]domain.IdLabel, error) {
	return expect[[]domain.IdLabel](ctx, c, request{
		method: http.MethodGet,
		path:   "/listarvendedoridlabel",
	})
}

// ListCobradores calls GET /listarcobrador.
func (c *Client) ListCobradores(ctx context.Context, f domain.PersonFilter, p domain.PageRequest) (*domain.PagedResult[domain.Cobrador], error) {
	return expect[*domain.PagedResult[domain.Cobrador]](ctx, c, request{
		method: http.MethodGet,
		path:   "/listarcobrador",
		query:  personQuery(f, p),
	})
}

// GetCobrador calls GET /buscarcobrador.
func (c *Client) GetCobrador(ctx context.Context, id int64) (*domain.Cobrador, error) {
	return expect[*domain.Cobrador](ctx, c, request{
		method: http.MethodGet,
		path:   "/buscarcobrador",
		query:  idQuery(id),
	})
}

// SaveCobrador calls POST /cadastrarcobrador.
func (c *Client) SaveCobrador(ctx context.Context, cb domain.Cobrador) error {
	_, err := expect[json.RawMessage](ctx, c, request{
		method: http.MethodPost,
		path:   "/cadastrarcobrador",
		body:   cb,
	})
	return err
}
