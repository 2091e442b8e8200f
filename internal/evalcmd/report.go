package evalcmd

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"

	"github.com/lehigh-university-libraries/idcapture/internal/eval/metrics"
	"github.com/lehigh-university-libraries/idcapture/internal/eval/results"
)

func executeReport(out io.Writer, path, format string) error {
	spec, err := results.Load(path)
	if err != nil {
		return fmt.Errorf("failed to load results: %w", err)
	}

	switch format {
	case "text":
		return printTextReport(out, spec)
	case "json":
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")
		return encoder.Encode(spec)
	case "csv":
		return printCSVReport(out, spec)
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
}

func printTextReport(out io.Writer, spec *results.EvalSpec) error {
	if spec.Summary != nil {
		spec.Summary.PrintSummary(out, spec.Config.Provider, spec.Config.Model)
	}

	fmt.Fprintln(out, "\nDetailed Results:")
	fmt.Fprintln(out, "========================================")

	for i, result := range spec.Results {
		fmt.Fprintf(out, "\n[%d] Sample ID: %s (%s)\n", i+1, result.Identifier, result.ImagePath)

		if result.Error != "" {
			fmt.Fprintf(out, "  Error: %s\n", result.Error)
			continue
		}

		fmt.Fprintf(out, "  Overall Score: %.2f%%\n", result.OverallScore*100)
		for _, name := range metrics.FieldNames {
			match, ok := result.Fields[name]
			if !ok {
				continue
			}
			fmt.Fprintf(out, "    %s: %.2f%% (%s)\n", name, match.Score*100, match.Method)
			if match.Score < 0.8 {
				fmt.Fprintf(out, "      Expected: %s\n", truncate(match.Expected, 80))
				fmt.Fprintf(out, "      Actual:   %s\n", truncate(match.Actual, 80))
			}
		}
	}
	return nil
}

func printCSVReport(out io.Writer, spec *results.EvalSpec) error {
	writer := csv.NewWriter(out)

	header := []string{"ID", "Overall Score", "Error"}
	header = append(header, metrics.FieldNames...)
	if err := writer.Write(header); err != nil {
		return err
	}

	for _, result := range spec.Results {
		row := []string{result.Identifier, fmt.Sprintf("%.4f", result.OverallScore), result.Error}
		for _, name := range metrics.FieldNames {
			row = append(row, fmt.Sprintf("%.4f", result.Fields[name].Score))
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen-3]) + "..."
}
