package metrics

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"
)

// EvaluationResult is the outcome of recognising one dataset sample
type EvaluationResult struct {
	ID             string
	ImagePath      string
	FullText       string
	Comparison     *Comparison
	ProcessingTime time.Duration
	Error          string
}

// FieldStats contains statistics for one extracted field
type FieldStats struct {
	ExactMatches  int       `yaml:"exactmatches"`
	FuzzyMatches  int       `yaml:"fuzzymatches"`
	MissingFields int       `yaml:"missingfields"`
	AverageScore  float64   `yaml:"averagescore"`
	Scores        []float64 `yaml:"-"`
}

// Summary aggregates a run
type Summary struct {
	TotalRecords          int                   `yaml:"totalrecords"`
	SuccessCount          int                   `yaml:"successcount"`
	FailureCount          int                   `yaml:"failurecount"`
	AverageScore          float64               `yaml:"averagescore"`
	MedianScore           float64               `yaml:"medianscore"`
	MinScore              float64               `yaml:"minscore"`
	MaxScore              float64               `yaml:"maxscore"`
	Fields                map[string]FieldStats `yaml:"fields"`
	AverageProcessingTime time.Duration         `yaml:"averageprocessingtime"`
	TotalProcessingTime   time.Duration         `yaml:"totalprocessingtime"`
}

// Aggregate summarises a set of evaluation results. Failed samples count
// toward the totals but not toward any score.
func Aggregate(results []EvaluationResult) *Summary {
	summary := &Summary{
		TotalRecords: len(results),
		Fields:       make(map[string]FieldStats, len(FieldNames)),
	}

	var scores []float64
	var successDuration time.Duration
	for _, result := range results {
		summary.TotalProcessingTime += result.ProcessingTime

		if result.Error != "" || result.Comparison == nil {
			summary.FailureCount++
			continue
		}

		summary.SuccessCount++
		successDuration += result.ProcessingTime
		scores = append(scores, result.Comparison.OverallScore)

		for name, match := range result.Comparison.Fields {
			stats := summary.Fields[name]
			aggregateFieldStats(&stats, match)
			summary.Fields[name] = stats
		}
	}

	if len(scores) == 0 {
		return summary
	}

	summary.AverageScore = calculateAverage(scores)
	sort.Float64s(scores)
	mid := len(scores) / 2
	if len(scores)%2 == 0 {
		summary.MedianScore = (scores[mid-1] + scores[mid]) / 2
	} else {
		summary.MedianScore = scores[mid]
	}
	summary.MinScore = scores[0]
	summary.MaxScore = scores[len(scores)-1]
	summary.AverageProcessingTime = successDuration / time.Duration(summary.SuccessCount)

	for name, stats := range summary.Fields {
		stats.AverageScore = calculateAverage(stats.Scores)
		summary.Fields[name] = stats
	}
	return summary
}

func aggregateFieldStats(stats *FieldStats, match FieldMatch) {
	stats.Scores = append(stats.Scores, match.Score)

	switch match.Method {
	case MethodExact, MethodBothMissing:
		stats.ExactMatches++
	case MethodFuzzy:
		stats.FuzzyMatches++
	case MethodActualMissing, MethodExpectedMissing:
		stats.MissingFields++
	}
}

func calculateAverage(scores []float64) float64 {
	if len(scores) == 0 {
		return 0.0
	}

	sum := 0.0
	for _, score := range scores {
		sum += score
	}
	return sum / float64(len(scores))
}

// PrintSummary writes a human-readable summary
func (s *Summary) PrintSummary(w io.Writer, provider, model string) {
	fmt.Fprintln(w, "\n"+strings.Repeat("=", 70))
	fmt.Fprintln(w, "ID CAPTURE EVALUATION SUMMARY")
	fmt.Fprintln(w, strings.Repeat("=", 70))
	fmt.Fprintf(w, "Provider: %s\n", provider)
	fmt.Fprintf(w, "Model: %s\n", model)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "PROCESSING STATISTICS")
	fmt.Fprintln(w, strings.Repeat("-", 70))
	fmt.Fprintf(w, "Total Records: %d\n", s.TotalRecords)
	if s.TotalRecords > 0 {
		fmt.Fprintf(w, "Successful: %d (%.1f%%)\n", s.SuccessCount, float64(s.SuccessCount)/float64(s.TotalRecords)*100)
		fmt.Fprintf(w, "Failed: %d (%.1f%%)\n", s.FailureCount, float64(s.FailureCount)/float64(s.TotalRecords)*100)
	}
	fmt.Fprintf(w, "Average Processing Time: %s\n", s.AverageProcessingTime)
	fmt.Fprintf(w, "Total Processing Time: %s\n", s.TotalProcessingTime)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "FIELD-LEVEL ACCURACY")
	fmt.Fprintln(w, strings.Repeat("-", 70))
	for _, name := range FieldNames {
		stats, ok := s.Fields[name]
		if !ok {
			continue
		}
		fmt.Fprintf(w, "\n%s:\n", name)
		fmt.Fprintf(w, "  Average Score: %.2f%% (%.3f)\n", stats.AverageScore*100, stats.AverageScore)
		fmt.Fprintf(w, "  Exact Matches: %d\n", stats.ExactMatches)
		fmt.Fprintf(w, "  Fuzzy Matches: %d\n", stats.FuzzyMatches)
		fmt.Fprintf(w, "  Missing Fields: %d\n", stats.MissingFields)
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "OVERALL SCORE")
	fmt.Fprintln(w, strings.Repeat("-", 70))
	fmt.Fprintf(w, "Average: %.2f%%  Median: %.2f%%  Min: %.2f%%  Max: %.2f%%\n",
		s.AverageScore*100, s.MedianScore*100, s.MinScore*100, s.MaxScore*100)
	fmt.Fprintln(w, strings.Repeat("=", 70))
}
