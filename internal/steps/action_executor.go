// Package steps provides the action executor step.
package steps

import (
	"fmt"
	"log"

	"github.com/bai-admin/boardbot/internal/core/board"
	"github.com/bai-admin/boardbot/internal/core/pipeline"
	"github.com/bai-admin/boardbot/internal/core/rules"
)

// ActionExecutor applies the planned classification actions and board
// transitions through the tracker. Every mutation is attempted exactly
// once; a failed mutation is recorded and the remaining ones still run.
type ActionExecutor struct {
	tracker pipeline.Tracker
	board   pipeline.Board
	dryRun  bool
}

// NewActionExecutor creates a new action executor step.
func NewActionExecutor(deps *pipeline.Dependencies) *ActionExecutor {
	return &ActionExecutor{
		tracker: deps.Tracker,
		board:   deps.Board,
		dryRun:  deps.DryRun,
	}
}

// Name returns the step name.
func (s *ActionExecutor) Name() string {
	return "action_executor"
}

// Run executes the planned work. Each mutation is independent: failures
// are recorded in Result.Errors and the remaining mutations still run,
// so the step itself never aborts the pipeline.
func (s *ActionExecutor) Run(ctx *pipeline.Context) error {
	labels, assignees := splitActions(ctx.Actions)

	// Dry runs record the planned outcome without touching GitHub, so
	// batch replays still produce a usable report.
	if s.dryRun {
		for _, a := range ctx.Actions {
			log.Printf("[action_executor] DRY RUN: would apply %s to issue #%d", a, ctx.Event.IssueNumber)
		}
		for _, tr := range ctx.Transitions {
			log.Printf("[action_executor] DRY RUN: would move issue #%d to %s", tr.IssueNumber, tr.Target)
		}
		ctx.Result.LabelsApplied = labels
		ctx.Result.AssigneesAdded = assignees
		ctx.Result.Transitioned = ctx.Transitions
		return nil
	}

	s.applyLabels(ctx, labels)
	s.applyAssignees(ctx, assignees)
	s.applyTransitions(ctx)

	return nil
}

// splitActions partitions classification actions, preserving rule order
// so the tracker sees writes in the order rules were declared.
func splitActions(actions []rules.Action) (labels, assignees []string) {
	for _, a := range actions {
		switch a.Kind {
		case rules.KindAddLabel:
			labels = append(labels, a.Label)
		case rules.KindAddAssignee:
			assignees = append(assignees, a.Assignee)
		}
	}
	return labels, assignees
}

func (s *ActionExecutor) applyLabels(ctx *pipeline.Context, labels []string) {
	if len(labels) == 0 {
		return
	}
	if s.tracker == nil {
		ctx.Result.Errors = append(ctx.Result.Errors, fmt.Errorf("no GitHub client, cannot add labels"))
		return
	}

	ev := ctx.Event
	if err := s.tracker.AddLabels(ctx.Ctx, ev.Org, ev.Repo, ev.IssueNumber, labels); err != nil {
		ctx.Result.Errors = append(ctx.Result.Errors, fmt.Errorf("add labels: %w", err))
		return
	}
	ctx.Result.LabelsApplied = labels
	log.Printf("[action_executor] Added labels %v to issue #%d", labels, ev.IssueNumber)
}

func (s *ActionExecutor) applyAssignees(ctx *pipeline.Context, assignees []string) {
	if len(assignees) == 0 {
		return
	}
	if s.tracker == nil {
		ctx.Result.Errors = append(ctx.Result.Errors, fmt.Errorf("no GitHub client, cannot add assignees"))
		return
	}

	ev := ctx.Event
	if err := s.tracker.AddAssignees(ctx.Ctx, ev.Org, ev.Repo, ev.IssueNumber, assignees); err != nil {
		ctx.Result.Errors = append(ctx.Result.Errors, fmt.Errorf("add assignees: %w", err))
		return
	}
	ctx.Result.AssigneesAdded = assignees
	log.Printf("[action_executor] Added assignees %v to issue #%d", assignees, ev.IssueNumber)
}

// applyTransitions moves each planned issue independently: a failure on
// one linked issue must not prevent attempting the remaining ones.
func (s *ActionExecutor) applyTransitions(ctx *pipeline.Context) {
	if len(ctx.Transitions) == 0 {
		return
	}
	if s.board == nil {
		ctx.Result.Errors = append(ctx.Result.Errors, fmt.Errorf("no projects client, cannot move board items"))
		return
	}

	project := ctx.Config.Project
	for _, tr := range ctx.Transitions {
		optionID := board.OptionID(project.Options, tr.Target)
		if optionID == "" {
			ctx.Result.Errors = append(ctx.Result.Errors,
				fmt.Errorf("issue #%d: no option ID configured for status %q", tr.IssueNumber, tr.Target))
			continue
		}

		itemID, err := s.board.EnsureItem(ctx.Ctx, project.ID, tr.IssueNodeID)
		if err != nil {
			ctx.Result.Errors = append(ctx.Result.Errors,
				fmt.Errorf("issue #%d: failed to resolve project item: %w", tr.IssueNumber, err))
			continue
		}

		if err := s.board.SetItemStatus(ctx.Ctx, project.ID, itemID, project.StatusFieldID, optionID); err != nil {
			ctx.Result.Errors = append(ctx.Result.Errors,
				fmt.Errorf("issue #%d: failed to set status: %w", tr.IssueNumber, err))
			continue
		}

		ctx.Result.Transitioned = append(ctx.Result.Transitioned, tr)
		log.Printf("[action_executor] Moved issue #%d to %s", tr.IssueNumber, tr.Target)
	}
}
