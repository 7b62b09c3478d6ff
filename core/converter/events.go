package converter

// Event is the worker-to-caller notification protocol. Three event kinds
// flow over a per-run channel: a ProgressEvent per item, an ErrorEvent per
// failed item (informational only), and exactly one CompleteEvent after
// the last item.
type Event interface {
	isEvent()
}

// ProgressEvent is emitted once per item, strictly after that item's
// terminal status is known. Percent is 0-100 and non-decreasing across a
// run.
type ProgressEvent struct {
	Percent int
	Message string
}

// ErrorEvent is a secondary live-logging notification for one failed
// item. The authoritative per-item outcome is the entry in the
// CompleteEvent's results.
type ErrorEvent struct {
	Message string
}

// CompleteEvent carries the full result map, one entry per submitted
// item. It is the last event of a run; the channel closes after it.
type CompleteEvent struct {
	Results BatchResult
}

func (ProgressEvent) isEvent() {}
func (ErrorEvent) isEvent()    {}
func (CompleteEvent) isEvent() {}
