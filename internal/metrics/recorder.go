package metrics

import "time"

// Stage names of the build pipeline.
const (
	StageRead   = "read"
	StageIndex  = "index"
	StageOrder  = "order"
	StageMerge  = "merge"
	StageWrite  = "write"
	StageVerify = "verify"
)

// BuildOutcome enumerates final build statuses.
type BuildOutcome string

const (
	OutcomeSuccess BuildOutcome = "success"
	OutcomeFailed  BuildOutcome = "failed"
)

// Recorder defines observability hooks for builds.
type Recorder interface {
	ObserveStageDuration(stage string, d time.Duration)
	ObserveBuildDuration(d time.Duration)
	IncBuildOutcome(outcome BuildOutcome)
	AddPagesWritten(lang string, n int)
	IncSkippedLanguage()
}

// NoopRecorder is a Recorder that does nothing (default when metrics not configured).
type NoopRecorder struct{}

func (NoopRecorder) ObserveStageDuration(string, time.Duration) {}
func (NoopRecorder) ObserveBuildDuration(time.Duration)         {}
func (NoopRecorder) IncBuildOutcome(BuildOutcome)               {}
func (NoopRecorder) AddPagesWritten(string, int)                {}
func (NoopRecorder) IncSkippedLanguage()                        {}
