package engine

import "time"

// WorkerState represents the lifecycle state of a worker.
type WorkerState int

const (
	WorkerIdle WorkerState = iota
	WorkerRunning
	WorkerStopped
)

func (s WorkerState) String() string {
	switch s {
	case WorkerRunning:
		return "running"
	case WorkerStopped:
		return "stopped"
	default:
		return "idle"
	}
}

// SamplerInfo summarizes sampler progress.
type SamplerInfo struct {
	State       WorkerState
	Rounds      int
	Samples     int
	Failures    int
	WriteErrors int
	LastSample  time.Time
}

// RendererInfo summarizes renderer progress.
type RendererInfo struct {
	State      WorkerState
	Cycles     int
	Charts     int
	Errors     int
	LastRender time.Time
}

// Outcome tells how a run ended.
type Outcome int

const (
	// Completed means the sampler reached its round ceiling.
	Completed Outcome = iota
	// Interrupted means the run was cancelled from outside.
	Interrupted
)
