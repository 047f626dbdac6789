package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"forumpulse/internal/config"
	"forumpulse/internal/fetch"
	"forumpulse/internal/logger"
	"forumpulse/internal/pipeline"
	"forumpulse/internal/render"
	"forumpulse/internal/sources"
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Scan sources and rank threads without generating posts",
	Long: `Scan the configured forums, score every thread against the legal and
translation vocabularies, and write the ranked results and summary report.
No LLM calls are made; use this to review what a full run would pick up.

Example:
  forumpulse scan
  forumpulse scan --limit 50 --min-relevance 0.3
  forumpulse scan --sources dubai,UAE`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		applyScanFlags(cmd, cfg)

		result, err := runPipeline(cmd, cfg, true)
		if err != nil {
			return err
		}

		fmt.Println(render.SummaryReport(result.Run))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(scanCmd)
	addScanFlags(scanCmd)
}

// addScanFlags registers the flags shared by scan and generate.
func addScanFlags(cmd *cobra.Command) {
	cmd.Flags().StringSlice("sources", nil, "forums to scan (default is the built-in UAE set)")
	cmd.Flags().Int("limit", 0, "threads fetched per source per sort order")
	cmd.Flags().Float64("min-relevance", -1, "combined relevance threshold")
	cmd.Flags().Int("max-posts", 0, "number of top threads to analyze")
	cmd.Flags().String("output", "", "artifact output directory")
}

// applyScanFlags overlays explicitly-set flags onto the loaded config.
func applyScanFlags(cmd *cobra.Command, cfg *config.Config) {
	if cmd.Flags().Changed("sources") {
		cfg.Scan.Sources, _ = cmd.Flags().GetStringSlice("sources")
	}
	if cmd.Flags().Changed("limit") {
		cfg.Scan.PerSourceLimit, _ = cmd.Flags().GetInt("limit")
	}
	if cmd.Flags().Changed("min-relevance") {
		cfg.Scan.MinRelevance, _ = cmd.Flags().GetFloat64("min-relevance")
	}
	if cmd.Flags().Changed("max-posts") {
		cfg.Scan.MaxPosts, _ = cmd.Flags().GetInt("max-posts")
	}
	if cmd.Flags().Changed("output") {
		cfg.Output.Directory, _ = cmd.Flags().GetString("output")
	}
}

// runPipeline assembles and executes the pipeline for scan and generate.
func runPipeline(cmd *cobra.Command, cfg *config.Config, skipGeneration bool) (*pipeline.Result, error) {
	scanner := sources.NewScanner(fetch.NewClient(), scorerFromConfig(cfg))

	var generator pipeline.PostGenerator
	if !skipGeneration {
		g, err := buildGenerator(cmd, cfg)
		if err != nil {
			return nil, err
		}
		generator = g
	}

	pipeCfg := &pipeline.Config{
		Sources:         sourcesFromConfig(cfg),
		PerSourceLimit:  cfg.Scan.PerSourceLimit,
		MinRelevance:    cfg.Scan.MinRelevance,
		MaxPosts:        cfg.Scan.MaxPosts,
		CommentsPerPost: cfg.Scan.CommentsPerPost,
		OutputDir:       cfg.Output.Directory,
		SkipGeneration:  skipGeneration,
	}

	result, err := pipeline.NewPipeline(scanner, generator, pipeCfg).Run(cmd.Context())
	if err != nil {
		logger.Error("Pipeline run failed", err)
		return nil, err
	}
	return result, nil
}
