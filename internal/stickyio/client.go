// Package stickyio реализует транспортный клиент внешней системы заказов:
// POST-запросы с JSON-телом, basic-авторизацией и ответом в виде
// нетипизированного документа.
package stickyio

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/magabrotheeeer/subscription-portal/internal/decode"
)

// DefaultTimeout — таймаут HTTP-клиента по умолчанию.
const DefaultTimeout = 60 * time.Second

// Client — HTTP-клиент внешней системы заказов.
type Client struct {
	baseURL    string
	username   string
	password   string
	httpClient *http.Client
}

// NewClient создаёт новый клиент. Если timeout не задан, используется DefaultTimeout.
func NewClient(baseURL, username, password string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		username:   username,
		password:   password,
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *Client) newRequest(ctx context.Context, method, path string, body any) (*http.Request, error) {
	url := c.baseURL + "/" + strings.TrimLeft(path, "/")
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return nil, err
		}
	}
	req, err := http.NewRequestWithContext(ctx, method, url, &buf)
	if err != nil {
		return nil, err
	}
	req.SetBasicAuth(c.username, c.password)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	return req, nil
}

// Post отправляет body на path и возвращает ответ как decode.Document.
// Числа в документе декодируются как json.Number.
// Любая ошибка сети, HTTP-статус вне 2xx или невалидный JSON
// возвращаются как *TransportError.
func (c *Client) Post(ctx context.Context, path string, body any) (decode.Document, error) {
	req, err := c.newRequest(ctx, http.MethodPost, path, body)
	if err != nil {
		return nil, &TransportError{Path: path, Err: err}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &TransportError{Path: path, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, &TransportError{
			Path:       path,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("unexpected status: %s", resp.Status),
		}
	}

	dec := json.NewDecoder(resp.Body)
	dec.UseNumber()
	var doc decode.Document
	if err := dec.Decode(&doc); err != nil {
		return nil, &TransportError{Path: path, StatusCode: resp.StatusCode, Err: fmt.Errorf("decode response: %w", err)}
	}
	if doc == nil {
		doc = decode.Document{}
	}
	return doc, nil
}
