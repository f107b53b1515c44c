package models

// Match is a candidate whose rendered content referenced the target.
type Match struct {
	Label           string `json:"name"`
	Location        string `json:"link"`
	SecondarySignal bool   `json:"auto"`
}

// Failure describes an errored visit. Only serialized when failures are exposed.
type Failure struct {
	Location string `json:"link"`
	Reason   string `json:"reason"`
}

// ScanResult is the aggregated outcome of one scan request.
type ScanResult struct {
	Matches      []Match   `json:"groups"`
	TotalVisited int       `json:"scanned"`
	Failures     []Failure `json:"failures,omitempty"`
}

// MatchCount returns the number of matched candidates.
func (sr *ScanResult) MatchCount() int {
	return len(sr.Matches)
}

// ErroredCount returns the number of visits that failed.
func (sr *ScanResult) ErroredCount() int {
	return len(sr.Failures)
}
