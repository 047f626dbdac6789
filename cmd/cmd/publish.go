package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"forumpulse/internal/config"
	"forumpulse/internal/publish"
)

var postCmd = &cobra.Command{
	Use:   "post [text]",
	Short: "Publish a post through the configured backend",
	Long: `Publish text to LinkedIn through the configured backend: a Zapier or
Make webhook, the LinkedIn API directly, or Ayrshare. With no explicit
--method, the first backend with credentials wins, free options first.

Example:
  forumpulse post "Looking for attestation advice? ..."
  forumpulse post --file output/posts_20250115_090000.txt
  forumpulse post "..." --schedule 2025-01-16T09:00:00Z --method ayrshare`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		text, err := postText(cmd, args)
		if err != nil {
			return err
		}

		publisher, err := publisherFromConfig(cmd, cfg)
		if err != nil {
			return err
		}

		scheduleAt, _ := cmd.Flags().GetString("schedule")
		if scheduleAt == "" {
			result, err := publisher.PostNow(cmd.Context(), text)
			if err != nil {
				return fmt.Errorf("publish failed: %w", err)
			}
			fmt.Printf("✓ Posted (%s)\n", result.Status)
			return nil
		}

		at, err := time.Parse(time.RFC3339, scheduleAt)
		if err != nil {
			return fmt.Errorf("invalid --schedule time %q, want RFC 3339 (e.g. 2025-01-16T09:00:00Z): %w", scheduleAt, err)
		}
		result, err := publisher.SchedulePost(cmd.Context(), text, at)
		if errors.Is(err, publish.ErrSchedulingUnsupported) {
			return fmt.Errorf("the selected backend cannot schedule posts; use --method ayrshare, zapier, or make, or post immediately")
		}
		if err != nil {
			return fmt.Errorf("schedule failed: %w", err)
		}
		fmt.Printf("✓ Scheduled for %s (%s)\n", at.Format(time.RFC3339), result.Status)
		return nil
	},
}

var profilesCmd = &cobra.Command{
	Use:   "profiles",
	Short: "List accounts connected to the publishing backend",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		publisher, err := publisherFromConfig(cmd, cfg)
		if err != nil {
			return err
		}

		profiles, err := publisher.Profiles(cmd.Context())
		if err != nil {
			return err
		}
		if len(profiles) == 0 {
			fmt.Println("No connected profiles.")
			return nil
		}
		for _, p := range profiles {
			fmt.Printf("%-12s %-24s %s\n", p.Service, p.Username, p.ID)
		}
		return nil
	},
}

var pendingCmd = &cobra.Command{
	Use:   "pending",
	Short: "List scheduled posts that have not been published yet",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		publisher, err := publisherFromConfig(cmd, cfg)
		if err != nil {
			return err
		}

		pending, err := publisher.PendingPosts(cmd.Context())
		if err != nil {
			return err
		}
		if len(pending) == 0 {
			fmt.Println("No pending posts.")
			return nil
		}
		for _, p := range pending {
			preview := p.Text
			if len(preview) > 60 {
				preview = preview[:57] + "..."
			}
			fmt.Printf("%-20s %s  %s\n", p.ID, p.ScheduledAt.Format(time.RFC3339), preview)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(postCmd)
	rootCmd.AddCommand(profilesCmd)
	rootCmd.AddCommand(pendingCmd)

	for _, cmd := range []*cobra.Command{postCmd, profilesCmd, pendingCmd} {
		cmd.Flags().String("method", "", "publishing backend (auto, zapier, make, linkedin, ayrshare)")
	}
	postCmd.Flags().String("file", "", "read the post text from a file instead of the argument")
	postCmd.Flags().String("schedule", "", "schedule the post for a future RFC 3339 time instead of posting now")
}

// postText resolves the text to publish from the argument or --file.
func postText(cmd *cobra.Command, args []string) (string, error) {
	file, _ := cmd.Flags().GetString("file")
	if file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("failed to read post file: %w", err)
		}
		return strings.TrimSpace(string(data)), nil
	}
	if len(args) == 0 || strings.TrimSpace(args[0]) == "" {
		return "", fmt.Errorf("nothing to post: pass the text as an argument or use --file")
	}
	return args[0], nil
}

// publisherFromConfig selects a backend from the --method flag and the
// configured credentials.
func publisherFromConfig(cmd *cobra.Command, cfg *config.Config) (publish.Publisher, error) {
	method := cfg.Publish.Method
	if flagMethod, _ := cmd.Flags().GetString("method"); flagMethod != "" {
		method = flagMethod
	}

	return publish.Select(method, publish.Credentials{
		ZapierWebhookURL:    cfg.Publish.ZapierWebhookURL,
		MakeWebhookURL:      cfg.Publish.MakeWebhookURL,
		AyrshareAPIKey:      cfg.Publish.AyrshareAPIKey,
		LinkedInAccessToken: cfg.Publish.LinkedInAccessToken,
		LinkedInPersonID:    cfg.Publish.LinkedInPersonID,
	})
}
