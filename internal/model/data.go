package model

import "time"

// ExportJob names the files one export run reads and writes
type ExportJob struct {
	InputPath  string `json:"input_path"`
	OutputPath string `json:"output_path"`
}

// ExportResult represents the result of an export operation
type ExportResult struct {
	Type        string    `json:"type"` // "json"
	Path        string    `json:"path"`
	RecordCount int       `json:"record_count"` // countries written
	Bytes       int64     `json:"bytes"`
	Success     bool      `json:"success"`
	Error       string    `json:"error,omitempty"`
	Timestamp   time.Time `json:"timestamp"`
}
