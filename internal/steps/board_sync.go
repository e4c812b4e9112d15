// Package steps provides the board sync step.
package steps

import (
	"fmt"
	"log"

	"github.com/bai-admin/boardbot/internal/core/board"
	"github.com/bai-admin/boardbot/internal/core/pipeline"
)

// BoardSync plans project-board status transitions for the event. For
// ready-for-review pull requests the transition fans out over the PR's
// linked issues, resolved fresh from the tracker on every run.
type BoardSync struct {
	board pipeline.Board
}

// NewBoardSync creates a new board sync step.
func NewBoardSync(deps *pipeline.Dependencies) *BoardSync {
	return &BoardSync{
		board: deps.Board,
	}
}

// Name returns the step name.
func (s *BoardSync) Name() string {
	return "board_sync"
}

// Run plans the transitions. A transition is planned regardless of the
// item's prior status: the status field is a single-select write, so the
// tracker makes re-applying the same value a no-op.
func (s *BoardSync) Run(ctx *pipeline.Context) error {
	target, ok := board.TargetFor(ctx.Event.Type)
	if !ok {
		log.Printf("[board_sync] No transition defined for %s", ctx.Event.Type)
		return nil
	}

	if !ctx.Config.Project.Complete() {
		log.Printf("[board_sync] Project not configured, board automation disabled")
		return nil
	}

	if !board.FansOut(ctx.Event.Type) {
		ctx.Transitions = append(ctx.Transitions, pipeline.Transition{
			IssueNodeID: ctx.Event.IssueNodeID,
			IssueNumber: ctx.Event.IssueNumber,
			Target:      target,
		})
		log.Printf("[board_sync] Issue #%d -> %s", ctx.Event.IssueNumber, target)
		return nil
	}

	if s.board == nil {
		log.Printf("[board_sync] No projects client, cannot resolve linked issues")
		return nil
	}

	linked, err := s.board.LinkedIssues(ctx.Ctx, ctx.Event.PRNodeID)
	if err != nil {
		return fmt.Errorf("failed to resolve linked issues for PR #%d: %w", ctx.Event.PRNumber, err)
	}

	if len(linked) == 0 {
		log.Printf("[board_sync] PR #%d links no issues, nothing to move", ctx.Event.PRNumber)
		return nil
	}

	for _, issue := range linked {
		ctx.Transitions = append(ctx.Transitions, pipeline.Transition{
			IssueNodeID: issue.NodeID,
			IssueNumber: issue.Number,
			Target:      target,
		})
		log.Printf("[board_sync] PR #%d: issue #%d -> %s", ctx.Event.PRNumber, issue.Number, target)
	}
	return nil
}
