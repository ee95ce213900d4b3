package moderation

import (
	"net/http"
	"strings"
)

// Hint refines how a Failure is presented to the staff member. It does not
// change how the failure is handled.
type Hint int

const (
	HintNone Hint = iota
	HintTargetNotFound
	HintServiceUnavailable
)

func Classify(f Failure) Hint {
	msg := strings.ToLower(f.Message)

	switch {
	case f.StatusCode == http.StatusNotFound, strings.Contains(msg, "404"), strings.Contains(msg, "not found"):
		return HintTargetNotFound
	case f.StatusCode == http.StatusServiceUnavailable, strings.Contains(msg, "service unavailable"):
		return HintServiceUnavailable
	default:
		return HintNone
	}
}

func (h Hint) String() string {
	switch h {
	case HintTargetNotFound:
		return "target_not_found"
	case HintServiceUnavailable:
		return "service_unavailable"
	default:
		return "none"
	}
}

// Advice is a short follow-up line for the staff member, empty for HintNone.
func (h Hint) Advice() string {
	switch h {
	case HintTargetNotFound:
		return "That player could not be found. Check the spelling or use their UUID."
	case HintServiceUnavailable:
		return "The moderation service is unavailable right now. Try again in a moment."
	default:
		return ""
	}
}
