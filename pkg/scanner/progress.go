package scanner

// Progress is one step of a scan, suitable for streaming to a client. Events
// are emitted in order on the channel supplied via Options.Progress.
type Progress struct {
	Stage   string `json:"stage"`
	Percent int    `json:"percent"`
	Message string `json:"message,omitempty"`
}

// emit sends a progress event without blocking the scan. Callers that want
// every event should supply a sufficiently buffered channel; a full channel
// drops the event rather than stalling recognition work.
func emit(ch chan<- Progress, stage string, percent int, message string) {
	if ch == nil {
		return
	}
	select {
	case ch <- Progress{Stage: stage, Percent: percent, Message: message}:
	default:
	}
}
