package results

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/lehigh-university-libraries/idcapture/internal/eval/metrics"
	"gopkg.in/yaml.v3"
)

// EvalConfig represents the configuration section of the eval YAML
type EvalConfig struct {
	Provider    string  `yaml:"provider"`
	Model       string  `yaml:"model"`
	Temperature float64 `yaml:"temperature"`
	DatasetPath string  `yaml:"datasetpath"`
	SampleSize  int     `yaml:"samplesize"`
	Timestamp   string  `yaml:"timestamp"`
}

// EvalResult represents a single evaluation result
type EvalResult struct {
	Identifier     string                        `yaml:"identifier"`
	ImagePath      string                        `yaml:"imagepath"`
	FullText       string                        `yaml:"fulltext,omitempty"`
	OverallScore   float64                       `yaml:"overallscore"`
	Fields         map[string]metrics.FieldMatch `yaml:"fields,omitempty"`
	ProcessingTime time.Duration                 `yaml:"processingtime"`
	Error          string                        `yaml:"error,omitempty"`
}

// EvalSpec represents the complete evaluation file
type EvalSpec struct {
	Config  EvalConfig       `yaml:"config"`
	Summary *metrics.Summary `yaml:"summary"`
	Results []EvalResult     `yaml:"results"`
}

// NewEvalSpec builds the report for a finished run
func NewEvalSpec(cfg EvalConfig, results []metrics.EvaluationResult) *EvalSpec {
	if cfg.Timestamp == "" {
		cfg.Timestamp = time.Now().Format("2006-01-02_15-04-05")
	}

	spec := &EvalSpec{
		Config:  cfg,
		Summary: metrics.Aggregate(results),
		Results: make([]EvalResult, 0, len(results)),
	}

	for _, r := range results {
		evalResult := EvalResult{
			Identifier:     r.ID,
			ImagePath:      r.ImagePath,
			FullText:       r.FullText,
			ProcessingTime: r.ProcessingTime,
			Error:          r.Error,
		}
		if r.Comparison != nil {
			evalResult.OverallScore = r.Comparison.OverallScore
			evalResult.Fields = r.Comparison.Fields
		}
		spec.Results = append(spec.Results, evalResult)
	}
	return spec
}

// Save writes the report to <dir>/<model>-<timestamp>.yaml and returns the path
func (s *EvalSpec) Save(dir string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create evals directory: %w", err)
	}

	model := strings.NewReplacer("/", "_", ":", "_").Replace(s.Config.Model)
	if model == "" {
		model = s.Config.Provider
	}
	filename := filepath.Join(dir, fmt.Sprintf("%s-%s.yaml", model, s.Config.Timestamp))

	data, err := yaml.Marshal(s)
	if err != nil {
		return "", fmt.Errorf("failed to marshal YAML: %w", err)
	}

	if err := os.WriteFile(filename, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write YAML file: %w", err)
	}
	return filename, nil
}

// Load reads a report written by Save
func Load(path string) (*EvalSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read eval file: %w", err)
	}

	var spec EvalSpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("failed to parse eval file: %w", err)
	}
	return &spec, nil
}
