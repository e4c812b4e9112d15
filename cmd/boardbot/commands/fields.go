package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	gh "github.com/bai-admin/boardbot/internal/integrations/github"
)

var (
	fieldsProjectID string
	fieldsFieldName string
)

// fieldsCmd represents the fields command
var fieldsCmd = &cobra.Command{
	Use:   "fields",
	Short: "Discover a project's field and status option IDs",
	Long: `List a ProjectV2 board's fields and single-select options with their
opaque identifiers, and print a ready-to-paste config snippet for the
status field. Run this once per deployment to fill in the project
section of the config.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runFields()
	},
}

func init() {
	rootCmd.AddCommand(fieldsCmd)

	fieldsCmd.Flags().StringVar(&fieldsProjectID, "project", "", "ProjectV2 node ID (default from config)")
	fieldsCmd.Flags().StringVar(&fieldsFieldName, "field", "Status", "Name of the status field to build the snippet for")
}

func runFields() error {
	cfg := loadConfig()

	projectID := fieldsProjectID
	if projectID == "" {
		projectID = cfg.Project.ID
	}
	if projectID == "" {
		return fmt.Errorf("no project ID: pass --project or configure project.id")
	}

	if cfg.GitHub.Token == "" {
		return fmt.Errorf("a GitHub token is required to query project fields")
	}

	ctx := context.Background()
	projects := gh.NewProjectsClient(ctx, cfg.GitHub.Token)

	fields, err := projects.ProjectFields(ctx, projectID)
	if err != nil {
		return fmt.Errorf("failed to list project fields: %w", err)
	}

	var statusField *gh.Field
	for i := range fields {
		f := &fields[i]
		fmt.Printf("%s  %s\n", f.ID, f.Name)
		for _, opt := range f.Options {
			fmt.Printf("  %s  %s\n", opt.ID, opt.Name)
		}
		if strings.EqualFold(f.Name, fieldsFieldName) && len(f.Options) > 0 {
			statusField = f
		}
	}

	if statusField == nil {
		fmt.Printf("\nNo single-select field named %q found; no snippet generated.\n", fieldsFieldName)
		return nil
	}

	fmt.Printf("\n# config snippet\nproject:\n  id: %s\n  status_field_id: %s\n  options:\n", projectID, statusField.ID)
	for _, key := range []string{"todo", "in_progress", "review", "done"} {
		if opt := matchOption(statusField.Options, key); opt != "" {
			fmt.Printf("    %s: %s\n", key, opt)
		} else {
			fmt.Printf("    %s: # no matching option\n", key)
		}
	}
	return nil
}

// matchOption pairs a config key with a field option by loose name
// match, covering the common board vocabularies ("Todo", "Backlog",
// "In Progress", "Review/QA", "Done").
func matchOption(options []gh.FieldOption, key string) string {
	aliases := map[string][]string{
		"todo":        {"todo", "backlog", "ready"},
		"in_progress": {"progress", "doing"},
		"review":      {"review", "qa"},
		"done":        {"done", "complete"},
	}

	for _, opt := range options {
		name := strings.ToLower(opt.Name)
		for _, alias := range aliases[key] {
			if strings.Contains(name, alias) {
				return opt.ID
			}
		}
	}
	return ""
}
