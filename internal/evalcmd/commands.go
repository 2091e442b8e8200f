package evalcmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRunCmd creates the run command for evaluating a recognizer against a
// labelled dataset
func NewRunCmd() *cobra.Command {
	var opts runOptions

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Evaluate field extraction against a labelled ID-card dataset",
		Long: `Runs the configured recognizer over every sample in a labelled dataset and
compares the extracted fields with the ground truth.

The dataset is a Parquet or JSONL file with the columns id, image_path,
full_name, id_number, issue_date and address. Relative image paths are
resolved against the dataset's directory. Results are written as YAML.`,
		Example: `  # Evaluate 10 samples with Ollama
  idcapture eval run --dataset ./ids/labels.jsonl --sample 10 --provider ollama

  # Evaluate a parquet dataset with Gemini, four requests at a time
  idcapture eval run --dataset ./ids/labels.parquet --provider gemini --concurrency 4`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := os.Stat(opts.datasetPath); os.IsNotExist(err) {
				return fmt.Errorf("dataset file not found: %s", opts.datasetPath)
			}
			if opts.concurrency < 1 {
				opts.concurrency = 1
			}
			return executeRun(cmd.Context(), cmd.OutOrStdout(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.datasetPath, "dataset", "", "Path to a labelled dataset (.parquet or .jsonl)")
	cmd.Flags().IntVar(&opts.sampleSize, "sample", -1, "Number of samples to evaluate (-1 for all)")
	cmd.Flags().IntVar(&opts.concurrency, "concurrency", 1, "Number of concurrent recognitions")
	cmd.Flags().StringVar(&opts.provider, "provider", "", "Recognition provider (mock, gemini, openai, ollama); defaults to config")
	cmd.Flags().StringVar(&opts.model, "model", "", "Model name (defaults to provider's default)")
	cmd.Flags().StringVar(&opts.configPath, "config", "", "Path to a YAML config file")
	cmd.Flags().StringVar(&opts.outputDir, "output", "evals", "Directory for the YAML results file")

	_ = cmd.MarkFlagRequired("dataset")
	return cmd
}

// NewReportCmd creates the report command for printing a saved evaluation
func NewReportCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "report <results.yaml>",
		Short: "Print a saved evaluation",
		Example: `  idcapture eval report evals/gemini-2.5-flash-2026-01-02_03-04-05.yaml
  idcapture eval report evals/gpt-4o-2026-01-02_03-04-05.yaml --format csv`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return executeReport(cmd.OutOrStdout(), args[0], format)
		},
	}

	cmd.Flags().StringVar(&format, "format", "text", "Output format (text, json, csv)")
	return cmd
}
