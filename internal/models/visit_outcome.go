package models

// VisitStatus classifies a single candidate visit.
type VisitStatus int

const (
	VisitUnmatched VisitStatus = iota
	VisitMatched
	VisitErrored
)

// String returns string representation of VisitStatus
func (s VisitStatus) String() string {
	switch s {
	case VisitMatched:
		return "matched"
	case VisitUnmatched:
		return "unmatched"
	case VisitErrored:
		return "errored"
	default:
		return "unknown"
	}
}

// VisitOutcome is produced exactly once per candidate by the visit stage.
type VisitOutcome struct {
	Candidate       Candidate   `json:"candidate"`
	Status          VisitStatus `json:"status"`
	SecondarySignal bool        `json:"secondary_signal"`
	ErrorDetail     string      `json:"error_detail,omitempty"`
}

// NewErroredOutcome builds the outcome recorded for a visit that never produced content.
func NewErroredOutcome(candidate Candidate, detail string) VisitOutcome {
	return VisitOutcome{
		Candidate:   candidate,
		Status:      VisitErrored,
		ErrorDetail: detail,
	}
}
