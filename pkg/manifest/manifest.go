package manifest

import "time"

const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// RunSummary represents the structure of the summary YAML file.
// It records what a dump run read, what it produced and how it ended.
type RunSummary struct {
	GeneratedAt    string `yaml:"generated_at"`
	Input          string `yaml:"input"`
	InputSizeBytes int64  `yaml:"input_size_bytes,omitempty"`
	Format         string `yaml:"format"`
	Output         string `yaml:"output,omitempty"`
	RunID          int64  `yaml:"run_id,omitempty"`
	Pages          int64  `yaml:"pages"`
	Links          int64  `yaml:"links"`
	DurationMS     int64  `yaml:"duration_ms"`
	Status         string `yaml:"status"` // "success" or "error"
	ErrorMessage   string `yaml:"error_message,omitempty"`
}

// RunResult is what the dump command knows once the stream is done.
type RunResult struct {
	Input    string
	Format   string
	Output   string
	RunID    int64
	Pages    int64
	Links    int64
	Duration time.Duration
	Err      error
}
