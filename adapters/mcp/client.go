// Package mcp provides the AI-insight collaborator client. Every call
// degrades to an empty or identity result on failure; errors never escape
// to the pipeline.
package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"reportanalysis/internal"
	"reportanalysis/internal/config"
	"reportanalysis/ports"
)

// Client talks to an insight server over HTTP JSON.
type Client struct {
	serverURL string
	enabled   bool
	connected bool
	http      *http.Client
	log       *internal.Logger
}

var _ ports.InsightClient = (*Client)(nil)

// New builds a client and probes connectivity once. A disabled configuration
// or unreachable server yields a client that reports Connected() == false.
func New(cfg config.InsightConfig, log *internal.Logger) *Client {
	if log == nil {
		log = internal.DefaultLogger
	}
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	c := &Client{
		serverURL: strings.TrimRight(cfg.ServerURL, "/"),
		enabled:   cfg.Enabled,
		http:      &http.Client{Timeout: timeout},
		log:       log,
	}
	if c.enabled && c.serverURL != "" {
		c.connected = c.probe()
	}
	log.Info("[Insight] client initialized (enabled: %v, connected: %v)", c.enabled, c.connected)
	return c
}

func (c *Client) probe() bool {
	resp, err := c.http.Get(c.serverURL + "/health")
	if err != nil {
		c.log.Warn("[Insight] server unreachable: %v", err)
		return false
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)
	return resp.StatusCode >= 200 && resp.StatusCode < 300
}

// Connected reports whether the insight server answered the startup probe.
func (c *Client) Connected() bool { return c.connected }

// GenerateInsights asks the server for insights over a bounded data sample.
func (c *Client) GenerateInsights(ctx context.Context, sample map[string]any) map[string]any {
	if !c.connected {
		return map[string]any{}
	}
	out, err := c.post(ctx, "/insights", sample)
	if err != nil {
		c.log.Warn("[Insight] generate insights failed: %v", err)
		return map[string]any{}
	}
	return out
}

// Analyze requests collaborator-side analysis of the given context.
func (c *Client) Analyze(ctx context.Context, analysisContext map[string]any) map[string]any {
	if !c.connected {
		return map[string]any{}
	}
	out, err := c.post(ctx, "/analyze", analysisContext)
	if err != nil {
		c.log.Warn("[Insight] analyze failed: %v", err)
		return map[string]any{}
	}
	return out
}

// Enhance returns the server-augmented report data, or the input unchanged.
func (c *Client) Enhance(ctx context.Context, reportData map[string]any) map[string]any {
	if !c.connected {
		return reportData
	}
	out, err := c.post(ctx, "/enhance", reportData)
	if err != nil {
		c.log.Warn("[Insight] enhance failed: %v", err)
		return reportData
	}
	return out
}

func (c *Client) post(ctx context.Context, endpoint string, payload map[string]any) (map[string]any, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.serverURL+endpoint, bytes.NewReader(raw))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &httpError{status: resp.Status}
	}
	var out map[string]any
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, err
	}
	return out, nil
}

type httpError struct {
	status string
}

func (e *httpError) Error() string { return "unexpected status " + e.status }
