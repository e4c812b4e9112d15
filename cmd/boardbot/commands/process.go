package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/bai-admin/boardbot/internal/core/config"
	"github.com/bai-admin/boardbot/internal/core/event"
	"github.com/bai-admin/boardbot/internal/core/pipeline"
	gh "github.com/bai-admin/boardbot/internal/integrations/github"
	"github.com/bai-admin/boardbot/internal/steps"
	"github.com/bai-admin/boardbot/internal/tui"
)

var (
	eventFile string
	eventName string
	dryRun    bool
	workflow  string
)

// processCmd represents the process command
var processCmd = &cobra.Command{
	Use:   "process",
	Short: "Process a single webhook event through the pipeline",
	Long: `Process a single GitHub webhook event through the Boardbot pipeline.
Under GitHub Actions the payload path and event name are taken from
GITHUB_EVENT_PATH and GITHUB_EVENT_NAME; both can be overridden by flags.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runProcess()
	},
}

func init() {
	rootCmd.AddCommand(processCmd)

	processCmd.Flags().StringVar(&eventFile, "event", "", "Path to the webhook payload JSON (default $GITHUB_EVENT_PATH)")
	processCmd.Flags().StringVar(&eventName, "event-name", "", "Webhook event name, e.g. issues (default $GITHUB_EVENT_NAME)")
	processCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Run in dry-run mode (no GitHub writes)")
	processCmd.Flags().StringVar(&workflow, "workflow", "", "Workflow preset to run (default from config, else issue-triage)")
}

func runProcess() error {
	cfg := loadConfig()

	ev, err := loadEvent(eventFile, eventName)
	if err != nil {
		return err
	}

	deps := buildDependencies(context.Background(), cfg, dryRun)
	stepNames := pipeline.ResolveSteps(cfg.Steps, effectiveWorkflow(cfg))

	// In CI there is no terminal worth drawing on; log plainly.
	isCI := os.Getenv("CI") == "true" || os.Getenv("GITHUB_ACTIONS") == "true"
	if isCI {
		result := runPipeline(deps, stepNames, ev, cfg, nil)
		fmt.Println(summarize(result))
		return runError(result)
	}

	// Buffered so the pipeline can finish even after the TUI stops
	// receiving; each step emits at most two status messages.
	statusChan := make(chan tui.StepMsg, 2*len(stepNames))
	model := tui.NewModel(stepNames, statusChan)
	p := tea.NewProgram(model)

	var result *pipeline.Result
	done := make(chan struct{})
	go func() {
		defer close(done)
		result = runPipeline(deps, stepNames, ev, cfg, statusChan)
		close(statusChan)
	}()

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}

	// The TUI returns early on the quit key or its activity timeout;
	// wait for the pipeline before reading its result.
	<-done

	fmt.Println(summarize(result))
	return runError(result)
}

// loadEvent reads and normalizes the webhook payload, resolving the path
// and event name from flags first, then from the Actions environment.
func loadEvent(file, name string) (*event.Event, error) {
	if file == "" {
		file = os.Getenv("GITHUB_EVENT_PATH")
	}
	if file == "" {
		return nil, fmt.Errorf("no event payload: pass --event or set GITHUB_EVENT_PATH")
	}

	if name == "" {
		name = os.Getenv("GITHUB_EVENT_NAME")
	}
	if name == "" {
		return nil, fmt.Errorf("no event name: pass --event-name or set GITHUB_EVENT_NAME")
	}

	payload, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read event payload: %w", err)
	}

	return event.Parse(name, payload)
}

// buildDependencies wires the GitHub clients from the configured token.
// Without a token the pipeline still runs; the executor records the
// missing client as a failed action outcome.
func buildDependencies(ctx context.Context, cfg *config.Config, dryRun bool) *pipeline.Dependencies {
	deps := &pipeline.Dependencies{DryRun: dryRun}

	token := cfg.GitHub.Token
	if token == "" {
		fmt.Println("Warning: no GitHub token in config or GITHUB_TOKEN, mutations will fail")
		return deps
	}

	deps.Tracker = gh.NewClient(ctx, token)
	deps.Board = gh.NewProjectsClient(ctx, token)
	return deps
}

func effectiveWorkflow(cfg *config.Config) string {
	if workflow != "" {
		return workflow
	}
	return cfg.Workflow
}

// reportingStep wraps a step and reports its progress on statusChan.
type reportingStep struct {
	pipeline.Step
	notify func(step string, status tui.StepStatus, message string)
}

func (s *reportingStep) Run(ctx *pipeline.Context) error {
	s.notify(s.Name(), tui.StatusStarted, "")

	err := s.Step.Run(ctx)
	switch {
	case errors.Is(err, pipeline.ErrSkipPipeline):
		s.notify(s.Name(), tui.StatusSkipped, ctx.Result.SkipReason)
	case err != nil:
		s.notify(s.Name(), tui.StatusError, err.Error())
	default:
		s.notify(s.Name(), tui.StatusSuccess, "")
	}
	return err
}

// runPipeline builds the named steps from the registry and runs them,
// reporting progress on statusChan when one is provided.
func runPipeline(deps *pipeline.Dependencies, stepNames []string, ev *event.Event, cfg *config.Config, statusChan chan<- tui.StepMsg) *pipeline.Result {
	registry := pipeline.NewRegistry()
	steps.RegisterAll(registry)

	pctx := pipeline.NewContext(context.Background(), ev, cfg)

	notify := func(step string, status tui.StepStatus, message string) {
		if statusChan == nil {
			return
		}
		statusChan <- tui.StepMsg{Step: step, Status: status, Message: message}
	}

	built, err := registry.BuildFromNames(stepNames, deps)
	if err != nil {
		pctx.Result.Errors = append(pctx.Result.Errors, err)
		return pctx.Result
	}

	p := pipeline.New()
	for _, step := range built.Steps() {
		p.AddStep(&reportingStep{Step: step, notify: notify})
	}

	if err := p.Run(pctx); err != nil {
		pctx.Result.Errors = append(pctx.Result.Errors, err)
	}
	return pctx.Result
}

// summarize renders a run result for humans and workflow logs.
func summarize(r *pipeline.Result) string {
	if r == nil {
		return "No result recorded"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Run %s (%s)", r.RunID, r.EventType)

	if r.Skipped {
		fmt.Fprintf(&b, "\nSkipped: %s", r.SkipReason)
		return b.String()
	}

	if len(r.LabelsApplied) > 0 {
		fmt.Fprintf(&b, "\nLabels applied: %s", strings.Join(r.LabelsApplied, ", "))
	}
	if len(r.AssigneesAdded) > 0 {
		fmt.Fprintf(&b, "\nAssignees added: %s", strings.Join(r.AssigneesAdded, ", "))
	}
	for _, tr := range r.Transitioned {
		fmt.Fprintf(&b, "\nMoved issue #%d to %s", tr.IssueNumber, tr.Target)
	}
	if len(r.LabelsApplied) == 0 && len(r.AssigneesAdded) == 0 && len(r.Transitioned) == 0 && len(r.Errors) == 0 {
		b.WriteString("\nNo actions taken")
	}
	for _, msg := range r.ErrorStrings() {
		fmt.Fprintf(&b, "\nError: %s", msg)
	}

	return b.String()
}

// runError converts accumulated action failures into the command's exit
// status.
func runError(r *pipeline.Result) error {
	if r == nil || len(r.Errors) == 0 {
		return nil
	}
	return fmt.Errorf("%d action(s) failed", len(r.Errors))
}
