package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	gh "github.com/bai-admin/boardbot/internal/integrations/github"
)

var bootstrapRepo string

// defaultLabels is the label vocabulary the classifier's built-in rules
// produce, with the repository's original colors.
var defaultLabels = []struct {
	name, color, description string
}{
	{"infrastructure", "0366d6", "Infrastructure related changes"},
	{"configuration", "fbca04", "Configuration and setup tasks"},
	{"maintenance", "d4c5f9", "Maintenance and cleanup tasks"},
	{"high-priority", "b60205", "High priority tasks"},
	{"documentation", "0075ca", "Documentation updates"},
}

// bootstrapCmd represents the bootstrap command
var bootstrapCmd = &cobra.Command{
	Use:   "bootstrap",
	Short: "Create the label vocabulary in a repository",
	Long: `Ensure the labels the classifier produces exist in the repository.
Existing labels are left untouched, so the command is safe to re-run.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runBootstrap()
	},
}

func init() {
	rootCmd.AddCommand(bootstrapCmd)

	bootstrapCmd.Flags().StringVar(&bootstrapRepo, "repo", "", "Target repository as owner/name (required)")
	_ = bootstrapCmd.MarkFlagRequired("repo")
}

func runBootstrap() error {
	cfg := loadConfig()

	parts := strings.Split(bootstrapRepo, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return fmt.Errorf("invalid --repo format: expected 'owner/name', got %q", bootstrapRepo)
	}
	org, repo := parts[0], parts[1]

	if cfg.GitHub.Token == "" {
		return fmt.Errorf("a GitHub token is required to create labels")
	}

	ctx := context.Background()
	client := gh.NewClient(ctx, cfg.GitHub.Token)

	for _, l := range defaultLabels {
		created, err := client.EnsureLabel(ctx, org, repo, l.name, l.color, l.description)
		if err != nil {
			return err
		}
		if created {
			fmt.Printf("Created label %s\n", l.name)
		} else if verbose {
			fmt.Printf("Label %s already exists\n", l.name)
		}
	}

	fmt.Printf("Repository %s/%s is ready\n", org, repo)
	return nil
}
