package commands

import (
	"encoding/json"
	"testing"

	"github.com/bai-admin/boardbot/internal/core/config"
	"github.com/bai-admin/boardbot/internal/core/pipeline"
)

func TestReplayOne(t *testing.T) {
	stepNames, _ := pipeline.GetPreset("issue-triage")
	deps := &pipeline.Dependencies{DryRun: true}
	cfg := config.Default()

	t.Run("valid event", func(t *testing.T) {
		rec := RecordedEvent{EventName: "issues", Payload: json.RawMessage(issuePayload)}

		entry := replayOne(3, rec, deps, stepNames, cfg)
		if entry.Index != 3 {
			t.Errorf("Expected index 3, got %d", entry.Index)
		}
		if entry.Error != "" || len(entry.Errors) != 0 {
			t.Fatalf("Expected clean replay, got %q / %v", entry.Error, entry.Errors)
		}
		if entry.Result == nil || len(entry.Result.LabelsApplied) != 2 {
			t.Errorf("Expected planned labels in the report, got %+v", entry.Result)
		}
	})

	t.Run("malformed payload", func(t *testing.T) {
		rec := RecordedEvent{EventName: "issues", Payload: json.RawMessage(`{"issue": "not an object"`)}

		entry := replayOne(0, rec, deps, stepNames, cfg)
		if entry.Error == "" {
			t.Error("Expected parse failure to be reported")
		}
		if entry.Result != nil {
			t.Errorf("Expected no result for unparseable event, got %+v", entry.Result)
		}
	})
}
