package server

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/quic-go/quic-go/http3"
)

// Client talks to a running parse server over HTTP/3.
type Client struct {
	base string
	http *http.Client
	tr   *http3.RoundTripper
}

// NewClient creates a client for baseURL, e.g. "https://localhost:4433".
// A nil tlsCfg skips certificate verification, matching the self-signed
// default of the server.
func NewClient(baseURL string, tlsCfg *tls.Config, timeout time.Duration) *Client {
	if tlsCfg == nil {
		tlsCfg = &tls.Config{InsecureSkipVerify: true, MinVersion: tls.VersionTLS13} //nolint:gosec
	}
	if !strings.Contains(baseURL, "://") {
		baseURL = "https://" + baseURL
	}
	tr := &http3.RoundTripper{TLSClientConfig: tlsCfg}
	return &Client{
		base: strings.TrimRight(baseURL, "/"),
		http: &http.Client{Transport: tr, Timeout: timeout},
		tr:   tr,
	}
}

// Parse sends source to the server and decodes the response.
func (c *Client) Parse(ctx context.Context, filename, source string) (*ParseResponse, error) {
	body, err := json.Marshal(ParseRequest{Filename: filename, Source: source})
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+"/parse", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("parse request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		var e struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(data, &e) == nil && e.Error != "" {
			return nil, fmt.Errorf("server returned %d: %s", resp.StatusCode, e.Error)
		}
		return nil, fmt.Errorf("server returned %d", resp.StatusCode)
	}

	var out ParseResponse
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("invalid response: %w", err)
	}
	return &out, nil
}

// Close releases the underlying QUIC connections.
func (c *Client) Close() error {
	return c.tr.Close()
}
