package ai

import "context"

// GenerateOptions are the per-request settings of a completion. Model is
// filled in by the client from its configuration.
type GenerateOptions struct {
	Model         string
	SystemPrompts []string
	Temperature   float64
	// Thinking is passed through as the reasoning effort ("low", "medium",
	// "high") for models that support it. Empty leaves it unset.
	Thinking string
}

// GenerateOption adjusts GenerateOptions.
type GenerateOption func(*GenerateOptions)

func WithSystemPrompts(prompts ...string) GenerateOption {
	return func(o *GenerateOptions) { o.SystemPrompts = prompts }
}

func WithTemperature(temp float64) GenerateOption {
	return func(o *GenerateOptions) { o.Temperature = temp }
}

func WithThinking(effort string) GenerateOption {
	return func(o *GenerateOptions) { o.Thinking = effort }
}

// ApplyOptions resolves opts on top of defaults.
func ApplyOptions(defaults GenerateOptions, opts ...GenerateOption) GenerateOptions {
	for _, o := range opts {
		o(&defaults)
	}
	return defaults
}

// ModelMetrics accumulates usage over the requests of one client.
type ModelMetrics struct {
	Requests       int     `json:"requests"`
	InputTokens    int     `json:"input_tokens"`
	OutputTokens   int     `json:"output_tokens"`
	TotalTokens    int     `json:"total_tokens"`
	DurationMs     int64   `json:"duration_ms"`
	TokenPerSecond float32 `json:"tokens_per_second"`
}

// GraphAIClient is the language model boundary of the graph builder.
// GenerateCompletionWithFormat constrains the answer to the JSON schema of
// out (see GenerateSchema) and decodes it into out, which must be a pointer.
type GraphAIClient interface {
	GenerateCompletion(ctx context.Context, prompt string, opts ...GenerateOption) (string, error)
	GenerateCompletionWithFormat(
		ctx context.Context,
		name, description, prompt string,
		out any,
		opts ...GenerateOption,
	) error

	ResetMetrics()
	GetMetrics() ModelMetrics
}
