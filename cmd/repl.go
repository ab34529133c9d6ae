package cmd

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/David-Botos/data-triage/pkg/cleaner"
	"github.com/David-Botos/data-triage/pkg/dataset"
	"github.com/David-Botos/data-triage/pkg/profiler"
	"github.com/David-Botos/data-triage/pkg/session"
)

var replCmd = &cobra.Command{
	Use:   "repl <file.csv>",
	Short: "Interactively triage a CSV file with free-text commands",
	Long: `Loads the file into a session and loops: you type a command ("fix all
missing values", "fix high severity issues", ...), the matching fixes are
applied, and the dataset is re-analyzed - until no issues remain or you quit.

Other commands: "show" lists current issues, "export <path>" writes the
current dataset, "quit" exits.`,
	Args: cobra.ExactArgs(1),
	RunE: runRepl,
}

func init() {
	rootCmd.AddCommand(replCmd)
}

func runRepl(cmd *cobra.Command, args []string) error {
	d, err := dataset.ReadFile(args[0])
	if err != nil {
		return err
	}

	p, err := profiler.NewProfiler(log)
	if err != nil {
		return err
	}
	c, err := cleaner.NewCleaner(log)
	if err != nil {
		return err
	}
	store, err := session.NewStore(p, c, log)
	if err != nil {
		return err
	}

	profile, err := store.Create(d, filepath.Base(args[0]))
	if err != nil {
		return err
	}
	defer store.Delete(profile.SessionID)

	insight, err := store.Insight(profile.SessionID)
	if err != nil {
		return err
	}
	fmt.Println(insight.InsightText)

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())

		switch {
		case line == "":
			continue
		case line == "quit" || line == "exit":
			return nil
		case line == "show":
			if err := showIssues(store, profile.SessionID); err != nil {
				return err
			}
			continue
		case strings.HasPrefix(line, "export "):
			path := strings.TrimSpace(strings.TrimPrefix(line, "export "))
			if err := exportSession(store, profile.SessionID, path); err != nil {
				fmt.Printf("export failed: %v\n", err)
			}
			continue
		}

		fixes, err := store.Interpret(profile.SessionID, line)
		if err != nil {
			return err
		}
		if len(fixes) == 0 {
			fmt.Println("I didn't recognize that request. Try \"fix all missing values\" or \"show\".")
			continue
		}

		report, err := store.ApplyFixes(profile.SessionID, fixes)
		if err != nil {
			return err
		}
		for _, entry := range report.ActionsTaken {
			fmt.Printf("  - %s\n", entry)
		}
		fmt.Printf("%d rows -> %d rows, %d issues remaining\n",
			report.RowsBefore, report.RowsAfter, len(report.RemainingIssues))
		if len(report.RemainingIssues) == 0 {
			fmt.Println("Dataset is clean. Use \"export <path>\" to save it.")
		}
	}
}

func showIssues(store *session.Store, id string) error {
	issues, err := store.Issues(id)
	if err != nil {
		return err
	}
	if len(issues) == 0 {
		fmt.Println("No issues.")
		return nil
	}
	for _, issue := range issues {
		fmt.Printf("[%s] %s\n", issue.Severity, issue.Description)
	}
	return nil
}

func exportSession(store *session.Store, id, path string) error {
	d, err := store.Dataset(id)
	if err != nil {
		return err
	}
	if err := dataset.WriteFile(d, path); err != nil {
		return err
	}
	fmt.Printf("Wrote %s\n", path)
	return nil
}
