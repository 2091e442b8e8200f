package cmd

import (
	"github.com/lehigh-university-libraries/idcapture/internal/evalcmd"
	"github.com/spf13/cobra"
)

func newEvalCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "eval",
		Short: "Field extraction evaluation tools",
		Long: `Evaluation tools for measuring how accurately a recognizer extracts
identity-card fields, compared against labelled ground truth.`,
	}

	cmd.AddCommand(evalcmd.NewRunCmd())
	cmd.AddCommand(evalcmd.NewReportCmd())

	return cmd
}
