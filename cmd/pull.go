package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/David-Botos/data-triage/pkg/connector"
	"github.com/David-Botos/data-triage/pkg/dataset"
)

var (
	pullSource string
	pullQuery  string
	pullOutput string
)

var pullCmd = &cobra.Command{
	Use:   "pull",
	Short: "Fetch a dataset from a configured warehouse into a CSV file",
	RunE:  runPull,
}

func init() {
	pullCmd.Flags().StringVar(&pullSource, "source", "postgres", "dataset source: postgres or snowflake")
	pullCmd.Flags().StringVar(&pullQuery, "query", "", "SQL query producing the dataset")
	pullCmd.Flags().StringVarP(&pullOutput, "output", "o", "dataset.csv", "output CSV path")
	pullCmd.MarkFlagRequired("query")
	rootCmd.AddCommand(pullCmd)
}

func runPull(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	factory := connector.NewConnectorFactory(cfg, log)
	conn, err := factory.Create(ctx, pullSource)
	if err != nil {
		return err
	}
	defer conn.Close()

	if err := conn.Validate(); err != nil {
		return err
	}

	d, err := conn.FetchDataset(ctx, pullQuery)
	if err != nil {
		return err
	}
	if err := dataset.WriteFile(d, pullOutput); err != nil {
		return err
	}

	fmt.Printf("Wrote %d rows, %d columns to %s\n", d.NumRows(), d.NumCols(), pullOutput)
	return nil
}
