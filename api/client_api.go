// client_api.go - API-Methoden des Clients
// Enthaelt: Translate, Tokenize, History, Version, Heartbeat
package api

import (
	"context"
	"fmt"
	"net/http"
)

// Translate sends one sentence to the server and returns its translation.
func (c *Client) Translate(ctx context.Context, req *TranslateRequest) (*TranslateResponse, error) {
	var resp TranslateResponse
	if err := c.do(ctx, http.MethodPost, "/api/translate", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Tokenize returns the subword ids the server assigns to text.
func (c *Client) Tokenize(ctx context.Context, req *TokenizeRequest) (*TokenizeResponse, error) {
	var resp TokenizeResponse
	if err := c.do(ctx, http.MethodPost, "/api/tokenize", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// History lists recorded translations. limit <= 0 returns everything.
func (c *Client) History(ctx context.Context, limit int) (*HistoryResponse, error) {
	path := "/api/history"
	if limit > 0 {
		path = fmt.Sprintf("%s?limit=%d", path, limit)
	}

	var resp HistoryResponse
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Version returns the server version.
func (c *Client) Version(ctx context.Context) (string, error) {
	var resp VersionResponse
	if err := c.do(ctx, http.MethodGet, "/api/version", nil, &resp); err != nil {
		return "", err
	}
	return resp.Version, nil
}

// Heartbeat checks if the server is running.
func (c *Client) Heartbeat(ctx context.Context) error {
	return c.do(ctx, http.MethodHead, "/", nil, nil)
}
