package model

import "time"

// Run statuses, in the order a successful run goes through them
const (
	StatusPending   = "pending"
	StatusIngesting = "ingesting"
	StatusComputing = "computing"
	StatusExporting = "exporting"
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

// RunReport counts what happened to the rows of one input file
type RunReport struct {
	RowsRead             int           `json:"rows_read"`
	CountryRows          int           `json:"country_rows"`
	DroppedRows          int           `json:"dropped_rows"`
	CountriesWithoutData int           `json:"countries_without_data"`
	Duration             time.Duration `json:"duration"`
}

// Run is one recorded export run
type Run struct {
	ID         string    `json:"id"`
	InputPath  string    `json:"input_path"`
	OutputPath string    `json:"output_path"`
	Status     string    `json:"status"`
	Countries  int       `json:"countries"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// RunError is a fatal error recorded against a run
type RunError struct {
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// RunLog is a stage log line recorded against a run
type RunLog struct {
	Stage     string                 `json:"stage"`
	Level     string                 `json:"level"`
	Message   string                 `json:"message"`
	Details   map[string]interface{} `json:"details,omitempty"`
	CreatedAt time.Time              `json:"created_at"`
}
