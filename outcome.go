package linkcollect

import "strings"

// OutcomeKind tags the result of one collection run.
type OutcomeKind int

// Outcome kinds.
const (
	OutcomeFailure OutcomeKind = iota
	OutcomeEmpty
	OutcomeSuccess
)

// String returns the lowercase name of the kind.
func (k OutcomeKind) String() string {
	switch k {
	case OutcomeSuccess:
		return "success"
	case OutcomeEmpty:
		return "empty"
	default:
		return "failure"
	}
}

// NoLinksText is the rendered text of an empty outcome.
const NoLinksText = "No links found."

// Outcome is the result of one collection run.
// Links is set only for OutcomeSuccess; Err only for OutcomeFailure.
// A returned Outcome is owned by the caller.
type Outcome struct {
	Kind  OutcomeKind
	Links []string
	Err   error
}

// NewOutcome returns OutcomeSuccess for a non-empty list and OutcomeEmpty otherwise.
func NewOutcome(links []string) Outcome {
	if len(links) == 0 {
		return Outcome{Kind: OutcomeEmpty}
	}
	return Outcome{Kind: OutcomeSuccess, Links: links}
}

// FailedOutcome wraps err in an OutcomeFailure outcome.
func FailedOutcome(err error) Outcome {
	return Outcome{Kind: OutcomeFailure, Err: err}
}

// Message returns the user-facing failure message, or "" when the run did not fail.
func (o Outcome) Message() string {
	if o.Kind != OutcomeFailure {
		return ""
	}
	msg := ErrorMessage(o.Err)
	if ErrorCode(o.Err) == EINVALID {
		return msg
	}
	return "Failed to fetch links: " + msg
}

// Text renders the outcome for display: the links one per line, NoLinksText
// for an empty page, or the failure message.
func (o Outcome) Text() string {
	switch o.Kind {
	case OutcomeSuccess:
		return strings.Join(o.Links, "\n")
	case OutcomeEmpty:
		return NoLinksText
	default:
		return o.Message()
	}
}
