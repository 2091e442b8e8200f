package cmd

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/lehigh-university-libraries/idcapture/internal/config"
	"github.com/lehigh-university-libraries/idcapture/internal/images"
	"github.com/lehigh-university-libraries/idcapture/internal/ocr"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newProcessCmd() *cobra.Command {
	var output string
	var configPath string

	cmd := &cobra.Command{
		Use:   "process <image>",
		Short: "Recognize a single ID-card image",
		Example: `  idcapture process cmnd.jpg
  RECOGNITION_PROVIDER=openai idcapture process cmnd.jpg --output json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			setupLogger(cfg)

			recognizer, err := ocr.NewRecognizer(cfg.Recognition)
			if err != nil {
				return err
			}

			file, err := images.Load(args[0])
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			if cfg.Recognition.Timeout > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, cfg.Recognition.Timeout)
				defer cancel()
			}

			result, err := recognizer.ProcessImage(ctx, file)
			if err != nil {
				return err
			}

			var out []byte
			switch output {
			case "yaml":
				out, err = yaml.Marshal(result)
			case "json":
				out, err = json.MarshalIndent(result, "", "  ")
				out = append(out, '\n')
			default:
				return fmt.Errorf("unsupported output format: %s", output)
			}
			if err != nil {
				return fmt.Errorf("failed to encode result: %w", err)
			}

			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "yaml", "Output format (yaml or json)")
	cmd.Flags().StringVar(&configPath, "config", "", "Path to a YAML config file")

	return cmd
}
