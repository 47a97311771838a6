package mcp

import (
	"context"

	"reportanalysis/ports"
)

// NoopClient is the default collaborator: never connected, always empty or
// identity results.
type NoopClient struct{}

var _ ports.InsightClient = NoopClient{}

func (NoopClient) Connected() bool { return false }

func (NoopClient) GenerateInsights(context.Context, map[string]any) map[string]any {
	return map[string]any{}
}

func (NoopClient) Analyze(context.Context, map[string]any) map[string]any {
	return map[string]any{}
}

func (NoopClient) Enhance(_ context.Context, reportData map[string]any) map[string]any {
	return reportData
}
