package cmd

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "idcapture",
		Short: "Identity-document capture with LLM-powered field extraction",
		Long: `idcapture reads an identity-card image, extracts the holder's name, ID number,
issue date and address, and lets an operator review and save the result.

It also ships an evaluation CLI for measuring extraction accuracy against a
labelled dataset.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Load .env file if present (ignore errors)
			_ = godotenv.Load()
		},
	}

	cmd.AddCommand(newServeCmd())
	cmd.AddCommand(newProcessCmd())
	cmd.AddCommand(newEvalCmd())

	return cmd
}
