package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"forumpulse/internal/config"
	"forumpulse/internal/generate"
	"forumpulse/internal/llm"
	"forumpulse/internal/render"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Run the full pipeline and generate LinkedIn posts",
	Long: `Scan the configured forums, rank threads by relevance, extract insights
from their discussions, and generate a LinkedIn post for each of the top
threads using Gemini. Generated posts are written alongside the scan
artifacts for manual review before publishing.

Requires GEMINI_API_KEY (or gemini.api_key in the config file).

Example:
  forumpulse generate
  forumpulse generate --style professional
  forumpulse generate --max-posts 5 --min-relevance 0.3`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		applyScanFlags(cmd, cfg)

		result, err := runPipeline(cmd, cfg, false)
		if err != nil {
			return err
		}

		fmt.Println(render.SummaryReport(result.Run))
		if len(result.Run.Posts) > 0 {
			fmt.Println(render.FormatPostsForReview(result.Run.Posts))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(generateCmd)
	addScanFlags(generateCmd)
	generateCmd.Flags().String("style", "", "pin every post to one style instead of rotating (professional, empathetic, educational, storytelling)")
	generateCmd.Flags().String("model", "", "Gemini model override")
}

// buildGenerator constructs the LLM-backed post orchestrator.
func buildGenerator(cmd *cobra.Command, cfg *config.Config) (*generate.Orchestrator, error) {
	model := cfg.Gemini.Model
	if flagModel, _ := cmd.Flags().GetString("model"); flagModel != "" {
		model = flagModel
	}

	client, err := llm.NewClient(cmd.Context(), model)
	if err != nil {
		return nil, err
	}

	orchestrator := generate.NewOrchestrator(client, generate.DefaultStyles)
	if style, _ := cmd.Flags().GetString("style"); style != "" {
		style = strings.ToLower(style)
		valid := false
		for _, s := range generate.DefaultStyles {
			if s == style {
				valid = true
				break
			}
		}
		if !valid {
			return nil, fmt.Errorf("unknown style %q (choose one of: %s)", style, strings.Join(generate.DefaultStyles, ", "))
		}
		orchestrator.PinStyle(style)
	}
	return orchestrator, nil
}
