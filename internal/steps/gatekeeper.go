// Package steps contains the modular pipeline steps.
// Each step implements the pipeline.Step interface.
package steps

import (
	"log"
	"strings"

	"github.com/bai-admin/boardbot/internal/core/config"
	"github.com/bai-admin/boardbot/internal/core/event"
	"github.com/bai-admin/boardbot/internal/core/pipeline"
)

// Gatekeeper filters out events the engine has no business processing:
// unhandled verbs, deliveries triggered by the bot's own mutations, and
// repositories outside the allowlist.
type Gatekeeper struct{}

// NewGatekeeper creates a new gatekeeper step.
func NewGatekeeper(deps *pipeline.Dependencies) *Gatekeeper {
	return &Gatekeeper{}
}

// Name returns the step name.
func (s *Gatekeeper) Name() string {
	return "gatekeeper"
}

// Run checks the event and repository against configuration.
func (s *Gatekeeper) Run(ctx *pipeline.Context) error {
	ev := ctx.Event

	if ev.Type == event.Unknown {
		log.Printf("[gatekeeper] Unhandled event, skipping")
		ctx.Result.Skipped = true
		ctx.Result.SkipReason = "unhandled event"
		return pipeline.ErrSkipPipeline
	}

	// Adding a label re-delivers a "labeled" event with the bot as
	// sender; without this check the engine would chase its own tail.
	if ev.Sender != "" && isBotSender(ev.Sender, ctx.Config.BotUsers) {
		log.Printf("[gatekeeper] Skipping event from bot sender %q", ev.Sender)
		ctx.Result.Skipped = true
		ctx.Result.SkipReason = "event triggered by bot"
		return pipeline.ErrSkipPipeline
	}

	// If repositories list is empty, allow all (single-repo mode)
	if len(ctx.Config.Repositories) == 0 {
		return nil
	}

	repoConfig := findRepoConfig(ctx.Config, ev.Org, ev.Repo)
	if repoConfig == nil {
		ctx.Result.Skipped = true
		ctx.Result.SkipReason = "repository not configured"
		return pipeline.ErrSkipPipeline
	}

	if !repoConfig.Enabled {
		ctx.Result.Skipped = true
		ctx.Result.SkipReason = "repository processing disabled"
		return pipeline.ErrSkipPipeline
	}

	log.Printf("[gatekeeper] Repository %s/%s is enabled, proceeding", ev.Org, ev.Repo)
	return nil
}

// isBotSender returns true if the given username matches a known bot
// pattern or is in the user-configured bot_users list.
func isBotSender(sender string, configBotUsers []string) bool {
	if strings.HasSuffix(sender, "[bot]") {
		return true
	}
	for _, u := range configBotUsers {
		if strings.EqualFold(sender, u) {
			return true
		}
	}
	return false
}

// findRepoConfig looks up the repository configuration.
func findRepoConfig(cfg *config.Config, org, repo string) *config.RepositoryConfig {
	for i := range cfg.Repositories {
		rc := &cfg.Repositories[i]
		if rc.Org == org && rc.Repo == repo {
			return rc
		}
	}
	return nil
}
