package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/David-Botos/data-triage/pkg/audit"
	"github.com/David-Botos/data-triage/pkg/cleaner"
	"github.com/David-Botos/data-triage/pkg/dataset"
	"github.com/David-Botos/data-triage/pkg/model"
	"github.com/David-Botos/data-triage/pkg/nlp"
	"github.com/David-Botos/data-triage/pkg/profiler"
)

var (
	cleanCommand string
	cleanAll     bool
	cleanOutput  string
)

var cleanCmd = &cobra.Command{
	Use:   "clean <file.csv>",
	Short: "Apply remediations to a CSV file and write the cleaned result",
	Args:  cobra.ExactArgs(1),
	RunE:  runClean,
}

func init() {
	cleanCmd.Flags().StringVar(&cleanCommand, "command", "", `free-text command, e.g. "fix all missing values"`)
	cleanCmd.Flags().BoolVar(&cleanAll, "all", false, "apply the recommended default fix for every issue")
	cleanCmd.Flags().StringVarP(&cleanOutput, "output", "o", "", "output path (default <output_dir>/clean_<file>)")
	rootCmd.AddCommand(cleanCmd)
}

func runClean(cmd *cobra.Command, args []string) error {
	if cleanCommand == "" && !cleanAll {
		return fmt.Errorf("provide --command or --all to select fixes")
	}

	d, err := dataset.ReadFile(args[0])
	if err != nil {
		return err
	}

	p, err := profiler.NewProfiler(log)
	if err != nil {
		return err
	}
	issues := p.Analyze(d)
	if len(issues) == 0 {
		fmt.Println("No quality issues detected; nothing to clean.")
		return nil
	}

	var fixes []model.FixRequest
	if cleanCommand != "" {
		fixes = nlp.Interpret(cleanCommand, issues)
	} else {
		fixes = nlp.Narrate(issues).RecommendedActions
	}
	if len(fixes) == 0 {
		fmt.Println("No actions matched the request; nothing to clean.")
		return nil
	}

	c, err := cleaner.NewCleaner(log)
	if err != nil {
		return err
	}
	cleaned, auditLog, skipped, err := c.Apply(d, fixes, model.IndexIssues(issues))
	if err != nil {
		return err
	}

	outPath := cleanOutput
	if outPath == "" {
		if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
		outPath = filepath.Join(cfg.OutputDir, "clean_"+filepath.Base(args[0]))
	}
	if err := dataset.WriteFile(cleaned, outPath); err != nil {
		return err
	}

	fmt.Printf("Cleaned %s: %d rows -> %d rows\n", args[0], d.NumRows(), cleaned.NumRows())
	for _, entry := range auditLog {
		fmt.Printf("  - %s\n", entry)
	}
	for _, skip := range skipped {
		fmt.Printf("  ! skipped %s (%s): %s\n", skip.IssueID, skip.StrategyCode, skip.Reason)
	}

	remaining := p.Analyze(cleaned)
	fmt.Printf("Remaining issues: %d\n", len(remaining))
	for _, rec := range cleaner.RecommendCharts(cleaned) {
		fmt.Printf("  chart: %s\n", rec)
	}
	fmt.Printf("Wrote %s\n", outPath)

	if cfg.AuditDSN != "" {
		if err := persistAudit(filepath.Base(args[0]), auditLog); err != nil {
			// The cleaned file is already on disk; losing the audit copy is
			// not fatal
			fmt.Fprintf(os.Stderr, "Warning: failed to persist audit trail: %v\n", err)
		}
	}
	return nil
}

func persistAudit(datasetName string, entries []string) error {
	recorder, err := audit.NewRecorder(cfg.AuditDSN, log)
	if err != nil {
		return err
	}
	defer recorder.Close()
	return recorder.Record(context.Background(), uuid.New().String(), datasetName, entries)
}
