package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cueline/cueline/internal/translate"
)

var translateCmd = &cobra.Command{
	Use:   "translate [project-id]",
	Short: "Translate a project's cue texts using AI",
	Long: `Translate every cue's text to another language, keeping all timing
untouched.

Examples:
  cueline translate 4f1c... --target-language spanish
  cueline translate 4f1c... --target-language ja --provider anthropic`,
	Args: cobra.ExactArgs(1),
	RunE: runTranslate,
}

func init() {
	rootCmd.AddCommand(translateCmd)

	translateCmd.Flags().
		StringP("target-language", "t", "", "Target language for translation (required)")
	translateCmd.Flags().
		StringP("language", "l", "", "Source language of the cues")
	translateCmd.Flags().
		StringP("api-key", "k", "", "API key (or set OPENAI_API_KEY/ANTHROPIC_API_KEY/GEMINI_API_KEY)")
	translateCmd.Flags().
		String("provider", "", "Translation provider (openai, anthropic, gemini)")
	translateCmd.Flags().
		String("model", "", "Model to use (provider-specific, uses sensible defaults)")
	translateCmd.Flags().
		String("prompt", "", "Additional translation instructions")
	translateCmd.Flags().
		Int("batch-size", 0, "Number of cues per API request")

	_ = translateCmd.MarkFlagRequired("target-language")
}

func runTranslate(cmd *cobra.Command, args []string) error {
	targetLanguage, _ := cmd.Flags().GetString("target-language")
	sourceLanguage, _ := cmd.Flags().GetString("language")
	apiKey, _ := cmd.Flags().GetString("api-key")
	providerFlag, _ := cmd.Flags().GetString("provider")
	model, _ := cmd.Flags().GetString("model")
	prompt, _ := cmd.Flags().GetString("prompt")
	batchSize, _ := cmd.Flags().GetInt("batch-size")

	if providerFlag == "" {
		providerFlag = cfg.Translate.Provider
	}
	provider := translate.Provider(providerFlag)

	if model == "" {
		model = cfg.Translate.Model
	}
	if batchSize == 0 {
		batchSize = cfg.Translate.BatchSize
	}
	if apiKey == "" {
		apiKey = apiKeyFor(provider)
	}
	if apiKey == "" {
		return fmt.Errorf("API key is required for provider %s", provider)
	}

	store, err := openStore()
	if err != nil {
		return err
	}
	defer func() {
		_ = store.Close()
	}()

	ctx := context.Background()
	proj, err := store.Get(ctx, args[0])
	if err != nil {
		return err
	}
	if len(proj.Cues) == 0 {
		return fmt.Errorf("project %s has no cues to translate", proj.ID)
	}

	translator, err := translate.Factory(ctx, provider, apiKey, translate.Options{
		SourceLanguage: sourceLanguage,
		TargetLanguage: targetLanguage,
		Model:          model,
		Prompt:         prompt,
		BatchSize:      batchSize,
	})
	if err != nil {
		return err
	}

	logger.Infow("Translating cues",
		"project", proj.ID,
		"provider", provider,
		"target", targetLanguage,
		"cues", len(proj.Cues),
	)

	results, err := translator.Translate(ctx, translate.Items(proj.Cues))
	if err != nil {
		return fmt.Errorf("translation failed: %w", err)
	}

	updated, err := translate.Apply(proj.Cues, results)
	if err != nil {
		return err
	}

	if err := store.SaveCues(ctx, proj.ID, updated); err != nil {
		return err
	}

	fmt.Printf("Translated %d cues to %s\n", len(updated), targetLanguage)
	return nil
}

func apiKeyFor(provider translate.Provider) string {
	switch provider {
	case translate.ProviderOpenAI:
		return os.Getenv("OPENAI_API_KEY")
	case translate.ProviderAnthropic:
		return os.Getenv("ANTHROPIC_API_KEY")
	case translate.ProviderGemini:
		return os.Getenv("GEMINI_API_KEY")
	default:
		return ""
	}
}
