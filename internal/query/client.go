package query

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Path es la ruta del endpoint de consultas.
const Path = "/api/query"

// ErrQueryFailed cubre cualquier falla al consultar el endpoint: red,
// status fuera de 2xx o cuerpo invalido.
var ErrQueryFailed = errors.New("query failed")

// Client define la interfaz para enviar una consulta y recibir la respuesta.
type Client interface {
	Query(ctx context.Context, text string) (string, error)
}

// HTTPClient implementa Client contra POST /api/query.
type HTTPClient struct {
	baseURL string
	client  *http.Client
	logger  *zap.Logger
}

// NewHTTPClient construye un cliente apuntando a baseURL. Un timeout de cero
// deja la consulta sin limite de tiempo.
func NewHTTPClient(baseURL string, timeout time.Duration, logger *zap.Logger) *HTTPClient {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

// WithHTTPClient reemplaza el *http.Client usado para las consultas.
func (c *HTTPClient) WithHTTPClient(hc *http.Client) *HTTPClient {
	if hc != nil {
		c.client = hc
	}
	return c
}

func (c *HTTPClient) Query(ctx context.Context, text string) (string, error) {
	bodyBytes, err := json.Marshal(queryRequest{Query: text})
	if err != nil {
		return "", fmt.Errorf("%w: marshal request: %v", ErrQueryFailed, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+Path, bytes.NewReader(bodyBytes))
	if err != nil {
		return "", fmt.Errorf("%w: create request: %v", ErrQueryFailed, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: do request: %v", ErrQueryFailed, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: read response: %v", ErrQueryFailed, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Debug("query endpoint error status",
			zap.Int("status", resp.StatusCode),
			zap.ByteString("body", respBody),
		)
		return "", fmt.Errorf("%w: status=%d", ErrQueryFailed, resp.StatusCode)
	}

	var qr queryResponse
	if err := json.Unmarshal(respBody, &qr); err != nil {
		return "", fmt.Errorf("%w: unmarshal response: %v", ErrQueryFailed, err)
	}
	if qr.Response == nil {
		return "", fmt.Errorf("%w: missing response field", ErrQueryFailed)
	}

	return *qr.Response, nil
}

type queryRequest struct {
	Query string `json:"query"`
}

type queryResponse struct {
	Response *string `json:"response"`
}
