package manifest

import (
	"fmt"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/dtnitsch/wikilinks/pkg/storage"
)

// BuildSummary turns a run result into its summary. The input size is only
// filled in when the input is a regular file.
func BuildSummary(result RunResult, s *storage.Storage) RunSummary {
	summary := RunSummary{
		GeneratedAt: time.Now().Format(time.RFC3339),
		Input:       result.Input,
		Format:      result.Format,
		Output:      result.Output,
		RunID:       result.RunID,
		Pages:       result.Pages,
		Links:       result.Links,
		DurationMS:  result.Duration.Milliseconds(),
		Status:      StatusSuccess,
	}

	if result.Err != nil {
		summary.Status = StatusError
		summary.ErrorMessage = result.Err.Error()
	}

	if stats, err := s.GetFileStats(result.Input); err == nil {
		summary.InputSizeBytes = stats.SizeBytes
	}

	return summary
}

// WriteSummary builds the summary for result and saves it as YAML at path.
func WriteSummary(path string, result RunResult, s *storage.Storage) (RunSummary, error) {
	summary := BuildSummary(result, s)

	data, err := yaml.Marshal(summary)
	if err != nil {
		return summary, fmt.Errorf("error marshalling summary: %w", err)
	}
	if err := s.SaveFile(path, data); err != nil {
		return summary, fmt.Errorf("error saving summary: %w", err)
	}
	return summary, nil
}
