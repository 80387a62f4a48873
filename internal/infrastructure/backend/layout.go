package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/multisorteios/rifa-admin/internal/core/domain"
)

const (
	pathLoadLayout     = "/carregarlayout"
	pathPrintTest      = "/gerararquivotesteimpressao"
	pathPrintProduce   = "/gerararquivoimpressao"
	fieldOrientation   = "orientacao"
	fieldQuantity      = "quantidade"
	stubXFieldFormat   = "xCanhoto%d"
	stubYFieldFormat   = "yCanhoto%d"
	ticketXFieldFormat = "xBilhete%d"
	ticketYFieldFormat = "yBilhete%d"
)

// LoadLayout calls GET /carregarlayout and maps the flat, 1-based
// xCanhoto{i}/yCanhoto{i}/xBilhete{i}/yBilhete{i} fields onto 0-based
// position pairs. A pair with any missing or non-numeric field stays
// unplaced at the origin.
func (c *Client) LoadLayout(ctx context.Context, token string, o domain.Orientation, count int) (*domain.PrintLayout, error) {
	fields, err := expect[map[string]json.RawMessage](ctx, c, request{
		method: http.MethodGet,
		path:   pathLoadLayout,
		query: url.Values{
			"token":      {token},
			"orientacao": {strconv.Itoa(o.APIValue())},
			"quantidade": {strconv.Itoa(count)},
		},
	})
	if err != nil {
		return nil, err
	}
	if fields == nil {
		return nil, &domain.LogicalError{Endpoint: pathLoadLayout, Message: "Erro ao carregar layout: Dados inválidos."}
	}
	return c.decodeLayout(fields, o, count)
}

func (c *Client) decodeLayout(fields map[string]json.RawMessage, requested domain.Orientation, requestedCount int) (*domain.PrintLayout, error) {
	orientation := requested
	var rawOrientation string
	if err := json.Unmarshal(fields[fieldOrientation], &rawOrientation); err == nil {
		if o, ok := domain.OrientationFromBackend(rawOrientation); ok {
			orientation = o
		}
	}

	count := requestedCount
	if n, ok := numberField(fields, fieldQuantity); ok && n > 0 {
		count = int(n)
	}

	layout, err := domain.NewPrintLayout(orientation, count)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrBackendUnavailable, pathLoadLayout, err)
	}

	for i := 1; i <= count; i++ {
		sx, ok1 := numberField(fields, fmt.Sprintf(stubXFieldFormat, i))
		sy, ok2 := numberField(fields, fmt.Sprintf(stubYFieldFormat, i))
		tx, ok3 := numberField(fields, fmt.Sprintf(ticketXFieldFormat, i))
		ty, ok4 := numberField(fields, fmt.Sprintf(ticketYFieldFormat, i))
		if !ok1 || !ok2 || !ok3 || !ok4 {
			c.log.Warn().Int("pair", i).Msg("incomplete or invalid position data, pair left at origin")
			continue
		}
		_ = layout.Place(i-1, pixel(sx), pixel(sy), pixel(tx), pixel(ty))
	}
	return layout, nil
}

func pixel(v float64) float64 {
	return float64(domain.RoundPixel(v))
}

// numberField reads a JSON number; null, strings and absent keys are rejected.
func numberField(fields map[string]json.RawMessage, key string) (float64, bool) {
	raw, ok := fields[key]
	if !ok {
		return 0, false
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return 0, false
	}
	f, ok := v.(float64)
	return f, ok
}

// GeneratePrintTest calls POST /gerararquivotesteimpressao and returns the PDF link.
func (c *Client) GeneratePrintTest(ctx context.Context, token string, positions []domain.PrintPosition) (string, error) {
	return downloadLink(ctx, c, request{
		method: http.MethodPost,
		path:   pathPrintTest,
		query:  url.Values{"token": {token}},
		body:   positions,
	})
}

// GeneratePrint calls POST /gerararquivoimpressao with the operator code.
func (c *Client) GeneratePrint(ctx context.Context, token, code string, positions []domain.PrintPosition) error {
	_, err := expect[json.RawMessage](ctx, c, request{
		method: http.MethodPost,
		path:   pathPrintProduce,
		query:  url.Values{"token": {token}, "codigo": {code}},
		body:   positions,
	})
	return err
}
