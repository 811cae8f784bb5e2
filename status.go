package linkcollect

import "fmt"

// Status is the one-line state shown by a presentation surface.
type Status string

// Fixed status texts.
const (
	StatusReady      Status = "Ready"
	StatusCollecting Status = "Collecting..."
	StatusStopping   Status = "Stopping..."
	StatusError      Status = "Error"
	StatusNoLinks    Status = "No links found"
	StatusNotSaved   Status = "Done (not saved)"
)

// DoneStatus returns the status of a saved run with n links.
func DoneStatus(n int) Status {
	return Status(fmt.Sprintf("Done — %d links", n))
}

// StatusFor returns the status that follows a finished run.
// An input error returns the surface to StatusReady.
func StatusFor(o Outcome, saveErr error) Status {
	switch o.Kind {
	case OutcomeSuccess:
		if saveErr != nil {
			return StatusNotSaved
		}
		return DoneStatus(len(o.Links))
	case OutcomeEmpty:
		return StatusNoLinks
	default:
		if ErrorCode(o.Err) == EINVALID {
			return StatusReady
		}
		return StatusError
	}
}
