package translate

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/cueline/cueline/internal/timeline"
)

// single cue text to translate
type Item struct {
	Index int    `json:"index"`
	Text  string `json:"text"`
}

// translated cue text
type Result struct {
	Index int    `json:"index"`
	Text  string `json:"text"`
}

// interface for cue text translation
type Translator interface {
	Translate(ctx context.Context, items []Item) ([]Result, error)
}

// translation service provider
type Provider string

const (
	ProviderOpenAI    Provider = "openai"
	ProviderAnthropic Provider = "anthropic"
	ProviderGemini    Provider = "gemini"
)

const DefaultBatchSize = 50

type Options struct {
	SourceLanguage string
	TargetLanguage string
	Model          string
	Prompt         string
	BatchSize      int // items per API request (default 50)
}

func (o Options) batchSize() int {
	if o.BatchSize > 0 {
		return o.BatchSize
	}
	return DefaultBatchSize
}

// creates a Translator based on provider
func Factory(
	ctx context.Context,
	provider Provider,
	apiKey string,
	opts Options,
) (Translator, error) {
	if opts.TargetLanguage == "" {
		return nil, fmt.Errorf("target language is required")
	}

	switch provider {
	case ProviderOpenAI:
		return NewOpenAITranslator(ctx, apiKey, opts)
	case ProviderAnthropic:
		return NewAnthropicTranslator(ctx, apiKey, opts)
	case ProviderGemini:
		return NewGeminiTranslator(ctx, apiKey, opts)
	default:
		return nil, fmt.Errorf("unsupported translation provider: %s", provider)
	}
}

// Items converts a cue list into translation items keyed by position.
func Items(cues []timeline.Cue) []Item {
	items := make([]Item, 0, len(cues))
	for i, cue := range cues {
		items = append(items, Item{Index: i, Text: cue.Text})
	}
	return items
}

// Apply writes translated texts back onto a copy of the cue list, leaving
// timing untouched.
func Apply(cues []timeline.Cue, results []Result) ([]timeline.Cue, error) {
	out := make([]timeline.Cue, len(cues))
	copy(out, cues)

	for _, r := range results {
		if r.Index < 0 || r.Index >= len(out) {
			return nil, fmt.Errorf("translation result index %d out of range", r.Index)
		}
		out[r.Index].Text = r.Text
	}
	return out, nil
}

// BuildPrompt creates the translation prompt shared by all LLM providers
func BuildPrompt(opts Options, items []Item) string {
	var sb strings.Builder

	if opts.SourceLanguage != "" {
		sb.WriteString(fmt.Sprintf(
			"Translate the following %s subtitle texts to %s.\n\n",
			opts.SourceLanguage,
			opts.TargetLanguage,
		))
	} else {
		sb.WriteString(fmt.Sprintf(
			"Translate the following subtitle texts to %s.\n\n",
			opts.TargetLanguage,
		))
	}

	sb.WriteString("IMPORTANT INSTRUCTIONS:\n")
	sb.WriteString("1. Translate ONLY the text content, preserving the meaning.\n")
	sb.WriteString("2. Keep any formatting tags unchanged.\n")
	sb.WriteString("3. Preserve line breaks in the same positions.\n")
	sb.WriteString("4. Return ONLY a JSON array with the same structure.\n")
	sb.WriteString("5. Each object must have 'index' and 'text' fields.\n")
	sb.WriteString("6. The 'index' values must match the input indices exactly.\n")
	sb.WriteString("7. Do not add any explanation or markdown formatting.\n\n")

	if opts.Prompt != "" {
		sb.WriteString(fmt.Sprintf("Additional instructions: %s\n\n", opts.Prompt))
	}

	sb.WriteString("Input JSON:\n")
	inputJSON, _ := json.MarshalIndent(items, "", "  ")
	sb.Write(inputJSON)
	sb.WriteString("\n\nOutput the translated JSON array only:")

	return sb.String()
}

// runs fn over fixed-size slices of items and reassembles the results in
// index order
func translateInBatches(
	ctx context.Context,
	items []Item,
	size int,
	fn func(context.Context, []Item) ([]Result, error),
) ([]Result, error) {
	if len(items) == 0 {
		return []Result{}, nil
	}

	var all []Result
	for i := 0; i < len(items); i += size {
		end := i + size
		if end > len(items) {
			end = len(items)
		}

		results, err := fn(ctx, items[i:end])
		if err != nil {
			return nil, fmt.Errorf("batch %d failed: %w", i/size, err)
		}
		all = append(all, results...)
	}

	return all, nil
}
