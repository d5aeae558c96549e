package pipeline

import (
	"gdp-pipeline/internal/logger"
	"gdp-pipeline/internal/metrics"
	"gdp-pipeline/internal/model"
	"gdp-pipeline/internal/store"
	"time"

	"go.uber.org/zap"
)

// StageTiming records how long one stage of a run took
type StageTiming struct {
	Stage    string        `json:"stage"`
	Start    time.Time     `json:"start"`
	Duration time.Duration `json:"duration"`
}

// RunTracker follows a run through its stages. It always feeds the metrics;
// it persists status and stage logs only for runs with an id while the
// history store is open. Store failures are logged and never fail the run.
type RunTracker struct {
	RunID     string
	StartTime time.Time
	Stages    []StageTiming
	persist   bool
	current   *StageTiming
}

// NewRunTracker creates a tracker for runID; an empty id is never persisted
func NewRunTracker(runID string) *RunTracker {
	return &RunTracker{
		RunID:     runID,
		StartTime: time.Now(),
		persist:   runID != "" && store.Enabled(),
	}
}

// StartStage marks the start of a stage and moves the run to status
func (rt *RunTracker) StartStage(stage, status string) {
	rt.current = &StageTiming{Stage: stage, Start: time.Now()}
	if !rt.persist {
		return
	}
	rt.check(store.UpdateRunStatus(rt.RunID, status))
	rt.check(store.SaveRunLog(rt.RunID, stage, "info", "Starting "+stage+" stage", nil))
}

// EndStage closes the current stage
func (rt *RunTracker) EndStage(details map[string]interface{}) {
	if rt.current == nil {
		return
	}
	stage := *rt.current
	stage.Duration = time.Since(stage.Start)
	rt.Stages = append(rt.Stages, stage)
	rt.current = nil

	if !rt.persist {
		return
	}
	if details == nil {
		details = make(map[string]interface{})
	}
	details["duration_ms"] = stage.Duration.Milliseconds()
	rt.check(store.SaveRunLog(rt.RunID, stage.Stage, "info", stage.Stage+" stage completed", details))
}

// Complete records a successful run
func (rt *RunTracker) Complete(countries int) {
	metrics.RunsTotal.WithLabelValues(model.StatusCompleted).Inc()
	metrics.RunDurationMs.Observe(float64(time.Since(rt.StartTime).Milliseconds()))
	metrics.CountriesExported.Set(float64(countries))
	if rt.persist {
		rt.check(store.SaveRunResult(rt.RunID, countries))
	}
}

// Fail records a failed run and the error that stopped it
func (rt *RunTracker) Fail(err error) {
	metrics.RunsTotal.WithLabelValues(model.StatusFailed).Inc()
	metrics.RunDurationMs.Observe(float64(time.Since(rt.StartTime).Milliseconds()))

	stage := ""
	if rt.current != nil {
		stage = rt.current.Stage
	}
	logger.L().Error("export_run_failed",
		zap.String("run_id", rt.RunID),
		zap.String("stage", stage),
		zap.Error(err))

	if !rt.persist {
		return
	}
	rt.check(store.UpdateRunStatus(rt.RunID, model.StatusFailed))
	rt.check(store.SaveRunError(rt.RunID, err))
	rt.check(store.SaveRunLog(rt.RunID, stage, "error", err.Error(), nil))
}

func (rt *RunTracker) check(err error) {
	if err != nil {
		logger.L().Warn("run_history_write_error", zap.String("run_id", rt.RunID), zap.Error(err))
	}
}
