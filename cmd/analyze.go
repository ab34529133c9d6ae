package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/David-Botos/data-triage/pkg/dataset"
	"github.com/David-Botos/data-triage/pkg/nlp"
	"github.com/David-Botos/data-triage/pkg/profiler"
)

var analyzeJSON bool

var analyzeCmd = &cobra.Command{
	Use:   "analyze <file.csv>",
	Short: "Profile a CSV file and report data-quality issues",
	Args:  cobra.ExactArgs(1),
	RunE:  runAnalyze,
}

func init() {
	analyzeCmd.Flags().BoolVar(&analyzeJSON, "json", false, "emit the full profile as JSON")
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	d, err := dataset.ReadFile(args[0])
	if err != nil {
		return err
	}

	p, err := profiler.NewProfiler(log)
	if err != nil {
		return err
	}
	profile := p.Profile(d, filepath.Base(args[0]))

	if analyzeJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(profile)
	}

	fmt.Printf("%s: %d rows, %d columns\n\n", profile.Filename, profile.TotalRows, profile.TotalColumns)
	if len(profile.Issues) == 0 {
		fmt.Println("No quality issues detected.")
		return nil
	}

	for _, issue := range profile.Issues {
		fmt.Printf("[%s] %s\n", issue.Severity, issue.Description)
		fmt.Printf("        %s\n", issue.Impact)
		for _, s := range issue.Strategies {
			fmt.Printf("        - %s (%s): %s\n", s.Name, s.ActionCode, s.Description)
		}
	}

	insight := nlp.Narrate(profile.Issues)
	fmt.Printf("\n%s\n", insight.InsightText)
	return nil
}
