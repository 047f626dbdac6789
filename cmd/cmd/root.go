package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"forumpulse/internal/config"
	"forumpulse/internal/relevance"
	"forumpulse/internal/sources"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "forumpulse",
	Short: "Forumpulse scans UAE community forums for legal-translation leads",
	Long: `Forumpulse scans UAE community forums for discussions about legal
translation, attestation, and document services, ranks them by relevance,
and turns the best threads into ready-to-publish LinkedIn posts.

Typical usage:
  forumpulse scan                  # scan and rank only, no post generation
  forumpulse generate              # full pipeline including post generation
  forumpulse post "text" --method zapier
  forumpulse profiles
  forumpulse pending`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.forumpulse.yaml)")
}

// loadConfig reads the configuration honoring the --config flag.
func loadConfig() (*config.Config, error) {
	return config.Load(cfgFile)
}

// scorerFromConfig builds the relevance scorer, applying any vocabulary
// overrides from the config file.
func scorerFromConfig(cfg *config.Config) *relevance.Scorer {
	legal := cfg.Keywords.Legal
	if len(legal) == 0 {
		legal = relevance.LegalKeywords
	}
	translation := cfg.Keywords.Translation
	if len(translation) == 0 {
		translation = relevance.TranslationKeywords
	}
	return relevance.NewScorer(legal, translation)
}

// sourcesFromConfig resolves the source list, falling back to the
// built-in UAE set.
func sourcesFromConfig(cfg *config.Config) []string {
	if len(cfg.Scan.Sources) > 0 {
		return cfg.Scan.Sources
	}
	return sources.DefaultSources
}
