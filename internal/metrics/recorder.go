package metrics

import (
	"context"
	"time"
)

// Recorder fans metrics out to Sentry spans and CloudWatch.
// A nil *Recorder is valid and records nothing.
type Recorder struct {
	sentry     *SentryMetrics
	cloudwatch *Client
}

// NewRecorder combines the two sinks; either may be nil
func NewRecorder(sentryMetrics *SentryMetrics, cloudwatch *Client) *Recorder {
	return &Recorder{sentry: sentryMetrics, cloudwatch: cloudwatch}
}

// RecordAPIRequest records one HTTP request
func (r *Recorder) RecordAPIRequest(ctx context.Context, endpoint string, statusCode int, duration time.Duration) {
	if r == nil {
		return
	}
	if r.sentry != nil {
		r.sentry.RecordAPIRequest(ctx, endpoint, statusCode, duration)
	}
	if r.cloudwatch != nil {
		r.cloudwatch.RecordAPIRequest(endpoint, statusCode, duration)
	}
}

// RecordGeneration records one LLM-backed operation and, when the call reached the
// provider, its token usage
func (r *Recorder) RecordGeneration(ctx context.Context, operation string, usage Usage, duration time.Duration, success bool) {
	if r == nil {
		return
	}
	if r.sentry != nil {
		r.sentry.RecordGenerationDuration(ctx, operation, duration, success)
		if usage.Model != "" {
			r.sentry.RecordTokenUsage(ctx, usage.Model, usage.TotalTokens, usage.InputTokens, usage.OutputTokens, usage.ReasoningTokens)
		}
	}
	if r.cloudwatch != nil {
		r.cloudwatch.RecordGenerationDuration(operation, duration, success)
		if usage.Model != "" {
			r.cloudwatch.RecordTokenUsage(usage.Model, usage.Provider, usage.TotalTokens, usage.InputTokens, usage.OutputTokens, usage.ReasoningTokens)
		}
	}
}

// RecordSuggestionBatch records one suggestion batch
func (r *Recorder) RecordSuggestionBatch(duration time.Duration, success, stale bool) {
	if r == nil {
		return
	}
	if r.sentry != nil {
		r.sentry.RecordPerformanceMetric("suggestions.batch", duration, map[string]interface{}{
			"success": success,
			"stale":   stale,
		})
	}
	if r.cloudwatch != nil {
		r.cloudwatch.RecordSuggestionBatch(duration, success, stale)
	}
}

// Usage is the token accounting of one call, tagged with the model that served it
type Usage struct {
	Model           string
	Provider        string
	InputTokens     int
	OutputTokens    int
	ReasoningTokens int
	TotalTokens     int
}
