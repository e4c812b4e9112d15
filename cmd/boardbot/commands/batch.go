package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"github.com/bai-admin/boardbot/internal/core/config"
	"github.com/bai-admin/boardbot/internal/core/event"
	"github.com/bai-admin/boardbot/internal/core/pipeline"
)

var (
	batchFile    string
	batchOutFile string
	batchWorkers int
	batchFlow    string
)

// RecordedEvent is one archived webhook delivery in a batch file.
type RecordedEvent struct {
	EventName string          `json:"event_name"`
	Payload   json.RawMessage `json:"payload"`
}

// BatchReport is the JSON output of a batch run.
type BatchReport struct {
	ProcessedAt time.Time    `json:"processed_at"`
	Total       int          `json:"total"`
	Successful  int          `json:"successful"`
	Failed      int          `json:"failed"`
	Results     []BatchEntry `json:"results"`
}

// BatchEntry is the outcome for one recorded event.
type BatchEntry struct {
	Index  int              `json:"index"`
	Result *pipeline.Result `json:"result,omitempty"`
	Errors []string         `json:"errors,omitempty"`
	Error  string           `json:"error,omitempty"`
}

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Replay recorded webhook events through the pipeline",
	Long: `Replay a JSON file of recorded webhook deliveries through the pipeline
in dry-run mode and emit a JSON report. Useful for tuning a rule set
against real traffic before letting it write to GitHub.

The input file is a JSON array of {"event_name": ..., "payload": ...}
objects, where payload is the raw webhook body.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runBatch()
	},
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().StringVar(&batchFile, "file", "", "Path to the recorded events JSON file (required)")
	batchCmd.Flags().StringVar(&batchOutFile, "out", "", "Write the report to this file instead of stdout")
	batchCmd.Flags().IntVar(&batchWorkers, "workers", 4, "Number of concurrent workers")
	batchCmd.Flags().StringVar(&batchFlow, "workflow", "", "Workflow preset to run")
	_ = batchCmd.MarkFlagRequired("file")
}

func runBatch() error {
	cfg := loadConfig()

	data, err := os.ReadFile(batchFile)
	if err != nil {
		return fmt.Errorf("failed to read batch file: %w", err)
	}

	var recorded []RecordedEvent
	if err := json.Unmarshal(data, &recorded); err != nil {
		return fmt.Errorf("failed to parse batch file: %w", err)
	}

	wf := batchFlow
	if wf == "" {
		wf = cfg.Workflow
	}
	stepNames := pipeline.ResolveSteps(cfg.Steps, wf)

	// Replays never write to GitHub, so no clients are wired; the
	// executor's dry-run path only logs.
	deps := &pipeline.Dependencies{DryRun: true}

	workers := batchWorkers
	if workers < 1 {
		workers = 1
	}

	jobs := make(chan int)
	entries := make([]BatchEntry, len(recorded))

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				entries[i] = replayOne(i, recorded[i], deps, stepNames, cfg)
			}
		}()
	}

	for i := range recorded {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	report := BatchReport{
		ProcessedAt: time.Now().UTC(),
		Total:       len(recorded),
		Results:     entries,
	}
	for _, e := range entries {
		if e.Error == "" && len(e.Errors) == 0 {
			report.Successful++
		} else {
			report.Failed++
		}
	}

	out, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}

	if batchOutFile != "" {
		if err := os.WriteFile(batchOutFile, out, 0o644); err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
		fmt.Printf("Wrote report for %d event(s) to %s\n", report.Total, batchOutFile)
		return nil
	}

	fmt.Println(string(out))
	return nil
}

func replayOne(index int, rec RecordedEvent, deps *pipeline.Dependencies, stepNames []string, cfg *config.Config) BatchEntry {
	ev, err := event.Parse(rec.EventName, rec.Payload)
	if err != nil {
		return BatchEntry{Index: index, Error: err.Error()}
	}

	result := runPipeline(deps, stepNames, ev, cfg, nil)
	return BatchEntry{
		Index:  index,
		Result: result,
		Errors: result.ErrorStrings(),
	}
}
