package pipeline

import "time"

// Status captures progress state of one phase.
type Status string

const (
	// StatusQueued indicates the phase has not started yet.
	StatusQueued Status = "queued"
	// StatusWorking indicates the phase is running.
	StatusWorking Status = "working"
	// StatusDone indicates the phase finished.
	StatusDone Status = "done"
	// StatusError indicates the phase or its callback failed.
	StatusError Status = "error"
	// StatusSkipped indicates an earlier stop or failure kept the phase from running.
	StatusSkipped Status = "skipped"
)

// Event reports progress for one phase of a run.
type Event struct {
	Phase   Phase
	Status  Status
	Err     error
	Elapsed time.Duration
}

// ProgressSink consumes progress events.
type ProgressSink interface {
	OnEvent(Event)
}

// ChannelSink forwards events into a channel.
type ChannelSink struct {
	Ch chan<- Event
}

func (s ChannelSink) OnEvent(evt Event) {
	if s.Ch == nil {
		return
	}
	s.Ch <- evt
}
