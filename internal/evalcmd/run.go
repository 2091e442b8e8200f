package evalcmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/lehigh-university-libraries/idcapture/internal/config"
	"github.com/lehigh-university-libraries/idcapture/internal/eval/dataset"
	"github.com/lehigh-university-libraries/idcapture/internal/eval/metrics"
	"github.com/lehigh-university-libraries/idcapture/internal/eval/results"
	"github.com/lehigh-university-libraries/idcapture/internal/images"
	"github.com/lehigh-university-libraries/idcapture/internal/ocr"
)

type runOptions struct {
	datasetPath string
	sampleSize  int
	concurrency int
	provider    string
	model       string
	configPath  string
	outputDir   string
}

func executeRun(ctx context.Context, out io.Writer, opts runOptions) error {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if opts.provider != "" {
		cfg.Recognition.Provider = opts.provider
	}
	if opts.model != "" {
		cfg.Recognition.Model = opts.model
	}
	cfg.Recognition.Model = ocr.ModelFor(cfg.Recognition)

	recognizer, err := ocr.NewRecognizer(cfg.Recognition)
	if err != nil {
		return err
	}

	slog.Info("Starting evaluation run", "dataset", opts.datasetPath, "provider", cfg.Recognition.Provider, "model", cfg.Recognition.Model)

	samples, err := dataset.NewLoader(opts.datasetPath).Load(opts.sampleSize)
	if err != nil {
		return fmt.Errorf("failed to load dataset: %w", err)
	}
	slog.Info("Processing samples", "samples", len(samples), "concurrency", opts.concurrency)

	runResults := evaluateSamples(ctx, recognizer, samples, opts.concurrency, cfg.Recognition.Timeout)

	spec := results.NewEvalSpec(results.EvalConfig{
		Provider:    cfg.Recognition.Provider,
		Model:       cfg.Recognition.Model,
		Temperature: cfg.Recognition.Temperature,
		DatasetPath: opts.datasetPath,
		SampleSize:  len(samples),
	}, runResults)

	path, err := spec.Save(opts.outputDir)
	if err != nil {
		return fmt.Errorf("failed to save results: %w", err)
	}

	spec.Summary.PrintSummary(out, spec.Config.Provider, spec.Config.Model)
	fmt.Fprintf(out, "\nResults saved to: %s\n", path)
	return nil
}

// evaluateSamples recognises every sample with at most concurrency calls in
// flight. Results keep dataset order. Once ctx is done, samples still waiting
// for a slot are recorded as failed without being loaded.
func evaluateSamples(ctx context.Context, recognizer ocr.Recognizer, samples []dataset.Sample, concurrency int, timeout time.Duration) []metrics.EvaluationResult {
	if concurrency < 1 {
		concurrency = 1
	}

	out := make([]metrics.EvaluationResult, len(samples))
	var wg sync.WaitGroup
	semaphore := make(chan struct{}, concurrency)

	for i, sample := range samples {
		wg.Add(1)
		go func(idx int, sample dataset.Sample) {
			defer wg.Done()
			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			if err := ctx.Err(); err != nil {
				out[idx] = metrics.EvaluationResult{ID: sample.ID, ImagePath: sample.ImagePath, Error: err.Error()}
				return
			}

			slog.Info("Processing sample", "id", sample.ID, "progress", fmt.Sprintf("%d/%d", idx+1, len(samples)))
			out[idx] = evaluateSample(ctx, recognizer, sample, timeout)
		}(i, sample)
	}

	wg.Wait()
	return out
}

func evaluateSample(ctx context.Context, recognizer ocr.Recognizer, sample dataset.Sample, timeout time.Duration) metrics.EvaluationResult {
	result := metrics.EvaluationResult{
		ID:        sample.ID,
		ImagePath: sample.ImagePath,
	}

	file, err := images.Load(sample.ImagePath)
	if err != nil {
		result.Error = err.Error()
		return result
	}

	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	start := time.Now()
	recognition, err := recognizer.ProcessImage(ctx, file)
	result.ProcessingTime = time.Since(start)
	if err != nil {
		slog.Warn("Recognition failed", "id", sample.ID, "error", err)
		result.Error = err.Error()
		return result
	}

	result.FullText = recognition.FullText
	result.Comparison = metrics.Compare(sample.Expected(), recognition.ExtractedData)
	return result
}
