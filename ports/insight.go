package ports

import "context"

// InsightClient is the AI collaborator capability interface. Implementations
// must never let their own failures escape: every method degrades to an empty
// or identity result, and callers branch only on Connected.
type InsightClient interface {
	// Connected reports whether a live collaborator is reachable.
	Connected() bool

	// GenerateInsights produces supplementary insights from a bounded data
	// sample. Empty when not connected or on any failure.
	GenerateInsights(ctx context.Context, sample map[string]any) map[string]any

	// Analyze performs collaborator-side analysis of the given context.
	// Empty when not connected or on any failure.
	Analyze(ctx context.Context, analysisContext map[string]any) map[string]any

	// Enhance augments prepared report data. Identity when not connected or
	// on any failure.
	Enhance(ctx context.Context, reportData map[string]any) map[string]any
}
